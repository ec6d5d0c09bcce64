// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hachtel/matrix"
)

// twoObservations is H for one unknown observed twice.
func twoObservations() *mat.Dense {
	return mat.NewDense(2, 1, []float64{1, 1})
}

func TestSaddle_Layout(t *testing.T) {
	h := mat.NewDense(2, 3, []float64{
		1, 0, 2,
		0, 3, 0,
	})
	a, err := matrix.Saddle(h, []float64{0.5, 0})
	require.NoError(t, err)

	want := mat.NewDense(5, 5, []float64{
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 3,
		0, 0, 0, 2, 0,
		1, 0, 2, 0.5, 0,
		0, 3, 0, 0, 0,
	})
	assert.True(t, mat.Equal(want, a), "got\n%v", mat.Formatted(a))
	assert.True(t, mat.Equal(a, a.T()), "augmented matrix is symmetric")
}

func TestSaddle_Errors(t *testing.T) {
	_, err := matrix.Saddle(nil, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.Saddle(twoObservations(), []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Saddle(twoObservations(), []float64{1, math.NaN()})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.Saddle(mat.NewDense(1, 1, []float64{math.Inf(1)}), []float64{1})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestSolve_WeightedMean(t *testing.T) {
	a, err := matrix.Saddle(twoObservations(), []float64{1, 1})
	require.NoError(t, err)
	b, err := matrix.SaddleRHS(1, []float64{1, 3})
	require.NoError(t, err)

	y, err := matrix.Solve(a, b, matrix.DefaultConditionGate)
	require.NoError(t, err)

	dx, lambda, err := matrix.Split(y, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2}, dx, 1e-12)
	assert.InDeltaSlice(t, []float64{-1, 1}, lambda, 1e-12)
}

func TestSolve_ExactRowIsHonoured(t *testing.T) {
	a, err := matrix.Saddle(twoObservations(), []float64{0, 1})
	require.NoError(t, err)
	b, err := matrix.SaddleRHS(1, []float64{1, 3})
	require.NoError(t, err)

	y, err := matrix.Solve(a, b, matrix.DefaultConditionGate)
	require.NoError(t, err)
	dx, lambda, err := matrix.Split(y, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, dx[0], 1e-12, "exact row pins the estimate")
	assert.InDeltaSlice(t, []float64{-2, 2}, lambda, 1e-12)
}

func TestFactorize_Singular(t *testing.T) {
	h := mat.NewDense(2, 2, []float64{
		1, 0,
		1, 0,
	})
	a, err := matrix.Saddle(h, []float64{1, 1})
	require.NoError(t, err)

	_, err = matrix.Factorize(a, matrix.DefaultConditionGate)
	assert.ErrorIs(t, err, matrix.ErrSingular, "column 2 is observed by no row")
}

func TestFactorize_ConditionGate(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0, 0, 1e-9})

	f, err := matrix.Factorize(a, matrix.DefaultConditionGate)
	require.NoError(t, err)
	assert.InEpsilon(t, 1e9, f.Cond(), 1e-6)
	assert.Equal(t, 2, f.Size())

	_, err = matrix.Factorize(a, 1e6)
	assert.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.Factorize(a, 0.5)
	assert.ErrorIs(t, err, matrix.ErrBadCondition)

	_, err = matrix.Factorize(mat.NewDense(2, 3, nil), matrix.DefaultConditionGate)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestFactorization_InverseAndReuse(t *testing.T) {
	a, err := matrix.Saddle(twoObservations(), []float64{1, 1})
	require.NoError(t, err)
	f, err := matrix.Factorize(a, matrix.DefaultConditionGate)
	require.NoError(t, err)

	inv, err := f.Inverse()
	require.NoError(t, err)
	var prod mat.Dense
	prod.Mul(a, inv)
	eye := mat.NewDiagDense(3, []float64{1, 1, 1})
	assert.True(t, mat.EqualApprox(&prod, eye, 1e-12))

	inv2, err := matrix.Inverse(a, matrix.DefaultConditionGate)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(inv, inv2, 1e-14))

	for _, rhs := range [][]float64{{0, 1, 3}, {0, -2, 2}} {
		y, solveErr := f.Solve(mat.NewVecDense(3, rhs))
		require.NoError(t, solveErr)
		var check mat.VecDense
		check.MulVec(a, y)
		assert.InDeltaSlice(t, rhs, check.RawVector().Data, 1e-12)
	}

	_, err = f.Solve(mat.NewVecDense(2, nil))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestRank(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, 2,
		2, 4,
		0, 0,
	})
	r, err := matrix.Rank(m, 1e-12)
	require.NoError(t, err)
	assert.Equal(t, 1, r)

	r, err = matrix.Rank(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), 1e-12)
	require.NoError(t, err)
	assert.Equal(t, 2, r)

	_, err = matrix.Rank(m, -1)
	assert.ErrorIs(t, err, matrix.ErrBadCondition)
}

func TestSelectRowsAndDiagonal(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	sub, err := matrix.SelectRows(m, []int{2, 0})
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 3, []float64{7, 8, 9, 1, 2, 3}), sub))

	_, err = matrix.SelectRows(m, []int{3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.SelectRows(m, nil)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	d, err := matrix.Diagonal(m, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 9}, d)

	_, err = matrix.Diagonal(m, 2, 2)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestSplit_Errors(t *testing.T) {
	_, _, err := matrix.Split(nil, 1)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, _, err = matrix.Split(mat.NewVecDense(2, nil), 3)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.SaddleRHS(0, nil)
	assert.ErrorIs(t, err, matrix.ErrBadShape)
}
