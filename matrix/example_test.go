package matrix_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hachtel/matrix"
)

// ExampleSolve estimates one unknown from two observations of variance 1
// through the augmented system and prints the correction and multipliers.
func ExampleSolve() {
	h := mat.NewDense(2, 1, []float64{1, 1})
	a, _ := matrix.Saddle(h, []float64{1, 1})
	b, _ := matrix.SaddleRHS(1, []float64{1, 3})

	y, err := matrix.Solve(a, b, matrix.DefaultConditionGate)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	dx, lambda, _ := matrix.Split(y, 1)
	fmt.Printf("dx=%.3f lambda=[%.3f %.3f]\n", dx[0], lambda[0], lambda[1])
	// Output:
	// dx=2.000 lambda=[-1.000 1.000]
}
