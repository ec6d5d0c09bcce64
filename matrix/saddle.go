// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	opSaddle     = "Saddle"
	opSaddleRHS  = "SaddleRHS"
	opSplit      = "Split"
	opSelectRows = "SelectRows"
	opDiagonal   = "Diagonal"
)

// Saddle assembles the (n+m)×(n+m) augmented matrix
//
//	A = [[0, Hᵀ], [H, diag(r)]]
//
// from the m×n Jacobian h and the m row variances r. Zero entries of r are
// kept as exact zeros.
//
// Implementation:
//   - Stage 1: validate h (non-nil, finite) and r (length m, finite).
//   - Stage 2: allocate A zeroed; copy H into the lower-left block and Hᵀ into
//     the upper-right block element by element; write r on the trailing diagonal.
//
// Complexity: O((n+m)²) memory, O(m·n) writes.
func Saddle(h *mat.Dense, r []float64) (*mat.Dense, error) {
	if err := ValidateFinite(h); err != nil {
		return nil, fmt.Errorf("%s: %w", opSaddle, err)
	}
	m, n := h.Dims()
	if err := ValidateVecLen(r, m); err != nil {
		return nil, fmt.Errorf("%s: %w", opSaddle, err)
	}
	if err := ValidateFiniteVec(r); err != nil {
		return nil, fmt.Errorf("%s: %w", opSaddle, err)
	}

	size := n + m
	a := mat.NewDense(size, size, nil)
	var i, j int
	var v float64
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			v = h.At(i, j)
			if v == 0 {
				continue
			}
			a.Set(n+i, j, v) // H
			a.Set(j, n+i, v) // Hᵀ
		}
		a.Set(n+i, n+i, r[i])
	}

	return a, nil
}

// SaddleRHS returns b = [0_n; dz] for an augmented system with n state columns.
func SaddleRHS(n int, dz []float64) (*mat.VecDense, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: n=%d: %w", opSaddleRHS, n, ErrBadShape)
	}
	if n+len(dz) == 0 {
		return nil, fmt.Errorf("%s: empty system: %w", opSaddleRHS, ErrBadShape)
	}
	if err := ValidateFiniteVec(dz); err != nil {
		return nil, fmt.Errorf("%s: %w", opSaddleRHS, err)
	}

	b := mat.NewVecDense(n+len(dz), nil)
	for i, v := range dz {
		b.SetVec(n+i, v)
	}

	return b, nil
}

// Split cuts the solution y of an augmented system into the state correction
// (first n entries) and the Lagrange multipliers (the rest). Both are copies.
func Split(y mat.Vector, n int) (dx, lambda []float64, err error) {
	if y == nil {
		return nil, nil, fmt.Errorf("%s: %w", opSplit, ErrNilMatrix)
	}
	total := y.Len()
	if n < 0 || n > total {
		return nil, nil, fmt.Errorf("%s: n=%d of %d: %w", opSplit, n, total, ErrDimensionMismatch)
	}

	dx = make([]float64, n)
	lambda = make([]float64, total-n)
	var i int
	for i = 0; i < n; i++ {
		dx[i] = y.AtVec(i)
	}
	for i = n; i < total; i++ {
		lambda[i-n] = y.AtVec(i)
	}

	return dx, lambda, nil
}

// SelectRows copies the listed rows of m, in the given order, into a new
// matrix. It is used to rank-test subsets of Jacobian rows.
func SelectRows(m *mat.Dense, rows []int) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opSelectRows, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no rows: %w", opSelectRows, ErrBadShape)
	}
	r, c := m.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for i, row := range rows {
		if row < 0 || row >= r {
			return nil, fmt.Errorf("%s: row %d of %d: %w", opSelectRows, row, r, ErrDimensionMismatch)
		}
		out.SetRow(i, m.RawRowView(row))
	}

	return out, nil
}

// Diagonal returns a[from+k, from+k] for k in [0, size).
func Diagonal(a mat.Matrix, from, size int) ([]float64, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, fmt.Errorf("%s: %w", opDiagonal, err)
	}
	n, _ := a.Dims()
	if from < 0 || size < 0 || from+size > n {
		return nil, fmt.Errorf("%s: [%d,%d) of %d: %w", opDiagonal, from, from+size, n, ErrDimensionMismatch)
	}

	out := make([]float64, size)
	for k := range out {
		out[k] = a.At(from+k, from+k)
	}

	return out, nil
}
