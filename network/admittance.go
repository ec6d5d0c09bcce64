// SPDX-License-Identifier: MIT
// Package: network
//
// admittance.go: ingestion of dense conductance/susceptance matrices.
//
// Contract:
//   • G and B are square, same size N ≥ 1.
//   • G[i][j] == G[j][i] and B[i][j] == B[j][i] within symmetryTol (relative).
//   • Diagonal entries are ignored (series branches only).
//   • Pair (i,j), i<j, is a candidate branch iff G[i][j] != 0 or B[i][j] != 0.
//
// Determinism:
//   • Branches are emitted row-major over the upper triangle, so the canonical
//     order is (1,2), (1,3), …, (1,N), (2,3), …

package network

import (
	"fmt"
	"math"
)

const methodFromMatrices = "FromAdmittanceMatrices"

// symmetryTol is the relative tolerance applied when comparing (i,j) with (j,i).
const symmetryTol = 1e-12

// FromAdmittanceMatrices builds a network from per-pair conductance and
// susceptance matrices (0-based rows map to bus numbers 1..N).
//
// Errors: ErrDimensionMismatch, ErrInvalidAdmittance, ErrAsymmetricAdmittance.
// Complexity: O(N²).
func FromAdmittanceMatrices(g, b [][]float64) (*Network, error) {
	n := len(g)
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", methodFromMatrices, ErrTooFewBuses)
	}
	if len(b) != n {
		return nil, fmt.Errorf("%s: G is %d rows, B is %d: %w", methodFromMatrices, n, len(b), ErrDimensionMismatch)
	}
	var i, j int
	for i = 0; i < n; i++ {
		if len(g[i]) != n || len(b[i]) != n {
			return nil, fmt.Errorf("%s: row %d: %w", methodFromMatrices, i, ErrDimensionMismatch)
		}
	}
	if err := ValidateSymmetric(g, b); err != nil {
		return nil, fmt.Errorf("%s: %w", methodFromMatrices, err)
	}

	net, err := New(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodFromMatrices, err)
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if g[i][j] == 0 && b[i][j] == 0 {
				continue // no physical line
			}
			if _, err = net.AddBranch(i+1, j+1, g[i][j], b[i][j]); err != nil {
				return nil, fmt.Errorf("%s: %w", methodFromMatrices, err)
			}
		}
	}

	return net, nil
}

// ValidateSymmetric checks that both matrices are finite and symmetric
// within symmetryTol. Shapes must already be square and equal.
//
// Errors: ErrInvalidAdmittance, ErrAsymmetricAdmittance.
// Complexity: O(N²) over the upper triangle.
func ValidateSymmetric(g, b [][]float64) error {
	n := len(g)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if !isFinite(g[i][j]) || !isFinite(g[j][i]) || !isFinite(b[i][j]) || !isFinite(b[j][i]) {
				return fmt.Errorf("pair (%d,%d): %w", i+1, j+1, ErrInvalidAdmittance)
			}
			if !closeRel(g[i][j], g[j][i]) {
				return fmt.Errorf("conductance (%d,%d)=%g vs (%d,%d)=%g: %w",
					i+1, j+1, g[i][j], j+1, i+1, g[j][i], ErrAsymmetricAdmittance)
			}
			if !closeRel(b[i][j], b[j][i]) {
				return fmt.Errorf("susceptance (%d,%d)=%g vs (%d,%d)=%g: %w",
					i+1, j+1, b[i][j], j+1, i+1, b[j][i], ErrAsymmetricAdmittance)
			}
		}
	}

	return nil
}

func closeRel(x, y float64) bool {
	scale := math.Max(math.Abs(x), math.Abs(y))
	if scale == 0 {
		return true
	}

	return math.Abs(x-y) <= symmetryTol*scale
}
