package measurement_test

import (
	"fmt"

	"github.com/katalvlaran/hachtel/measurement"
	"github.com/katalvlaran/hachtel/network"
)

type flatState struct{ statuses []float64 }

func (flatState) VRe(int) float64             { return 1 }
func (flatState) VIm(int) float64             { return 0 }
func (f flatState) Status(branch int) float64 { return f.statuses[branch] }

// ExampleGradient prints the nonzero Jacobian entries of an active flow
// measurement at a state where the far bus lags by a small angle.
func ExampleGradient() {
	net, _ := network.New(2)
	_, _ = net.AddBranch(1, 2, 0, -10)

	m := measurement.Flow(measurement.Pf, 1, 2, 0, 0.01)
	grad, err := measurement.Gradient(net, flatState{statuses: []float64{1}}, m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range grad {
		fmt.Printf("%v[%d] %+.1f\n", p.Var.Block, p.Var.Index, p.Value)
	}
	// Output:
	// VRe[1] +0.0
	// VIm[1] +10.0
	// VRe[2] +0.0
	// VIm[2] -10.0
	// B[0] +0.0
}
