// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opFactorize = "Factorize"
	opSolve     = "Solve"
	opInverse   = "Inverse"
	opRank      = "Rank"
)

// DefaultConditionGate is the largest condition number accepted as solvable.
// It matches gonum's own ill-conditioning threshold.
const DefaultConditionGate = mat.ConditionTolerance

// Factorization is an LU decomposition with partial pivoting of a square
// matrix that passed the condition gate. It is immutable after Factorize and
// may be reused for several right-hand sides.
type Factorization struct {
	lu      mat.LU
	n       int
	cond    float64
	maxCond float64
}

// Factorize computes P·A = L·U and rejects A when it is exactly singular or
// its estimated condition number exceeds maxCond.
//
// Pivoting is required: the augmented system has a zero leading block, so
// an unpivoted elimination breaks down on its first pivot.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrBadCondition, ErrSingular.
// Complexity: O(n³).
func Factorize(a *mat.Dense, maxCond float64) (*Factorization, error) {
	if err := validateCondition(maxCond); err != nil {
		return nil, fmt.Errorf("%s: %w", opFactorize, err)
	}
	if err := ValidateSquare(a); err != nil {
		return nil, fmt.Errorf("%s: %w", opFactorize, err)
	}
	if err := ValidateFinite(a); err != nil {
		return nil, fmt.Errorf("%s: %w", opFactorize, err)
	}

	f := &Factorization{maxCond: maxCond}
	f.n, _ = a.Dims()
	f.lu.Factorize(a)
	f.cond = f.lu.Cond()
	if math.IsInf(f.cond, 1) || math.IsNaN(f.cond) || f.cond > maxCond {
		return nil, fmt.Errorf("%s: cond=%g > %g: %w", opFactorize, f.cond, maxCond, ErrSingular)
	}

	return f, nil
}

// Cond returns the estimated condition number of the factorized matrix.
func (f *Factorization) Cond() float64 {
	return f.cond
}

// Size returns the order of the factorized matrix.
func (f *Factorization) Size() int {
	return f.n
}

// Solve returns y with A·y = b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrSingular.
func (f *Factorization) Solve(b mat.Vector) (*mat.VecDense, error) {
	if b == nil {
		return nil, fmt.Errorf("%s: %w", opSolve, ErrNilMatrix)
	}
	if b.Len() != f.n {
		return nil, fmt.Errorf("%s: len %d, want %d: %w", opSolve, b.Len(), f.n, ErrDimensionMismatch)
	}

	y := mat.NewVecDense(f.n, nil)
	if err := f.lu.SolveVecTo(y, false, b); err != nil && !f.tolerable(err) {
		return nil, fmt.Errorf("%s: %v: %w", opSolve, err, ErrSingular)
	}
	if err := ValidateFiniteVec(y.RawVector().Data); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}

	return y, nil
}

// Inverse returns A⁻¹ by solving against the identity with the stored factors.
//
// Errors: ErrSingular.
// Complexity: O(n³).
func (f *Factorization) Inverse() (*mat.Dense, error) {
	eye := mat.NewDiagDense(f.n, nil)
	for i := 0; i < f.n; i++ {
		eye.SetDiag(i, 1)
	}

	inv := mat.NewDense(f.n, f.n, nil)
	if err := f.lu.SolveTo(inv, false, eye); err != nil && !f.tolerable(err) {
		return nil, fmt.Errorf("%s: %v: %w", opInverse, err, ErrSingular)
	}

	return inv, nil
}

// tolerable reports whether err is only gonum's ill-conditioning warning for
// a condition number the gate already accepted.
func (f *Factorization) tolerable(err error) bool {
	var c mat.Condition
	if errors.As(err, &c) {
		return float64(c) <= f.maxCond
	}

	return false
}

// Solve factorizes a and solves a·y = b in one step.
func Solve(a *mat.Dense, b mat.Vector, maxCond float64) (*mat.VecDense, error) {
	f, err := Factorize(a, maxCond)
	if err != nil {
		return nil, err
	}

	return f.Solve(b)
}

// Inverse factorizes a and returns its inverse.
func Inverse(a *mat.Dense, maxCond float64) (*mat.Dense, error) {
	f, err := Factorize(a, maxCond)
	if err != nil {
		return nil, err
	}

	return f.Inverse()
}

// Rank returns the numerical rank of m: the number of singular values
// greater than rcond times the largest one.
//
// Errors: ErrNilMatrix, ErrNaNInf, ErrFactorization.
// Complexity: O(min(r,c)·r·c).
func Rank(m mat.Matrix, rcond float64) (int, error) {
	if err := ValidateFinite(m); err != nil {
		return 0, fmt.Errorf("%s: %w", opRank, err)
	}
	if math.IsNaN(rcond) || rcond < 0 {
		return 0, fmt.Errorf("%s: rcond=%v: %w", opRank, rcond, ErrBadCondition)
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDNone); !ok {
		return 0, fmt.Errorf("%s: %w", opRank, ErrFactorization)
	}

	return svd.Rank(rcond), nil
}
