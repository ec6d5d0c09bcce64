// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for shape, nil and finiteness checks.
//  - Return sentinels wrapped with the validator tag so call sites stay uniform.
//
// Determinism & Performance:
//  - All checks are pure and allocate nothing.
//  - Finiteness scans are O(r·c).

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps err with a validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures m is a non-nil, non-empty matrix.
func ValidateNotNil(m mat.Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*mat.Dense); ok && (d == nil || d.IsEmpty()) {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare ensures m is non-nil and r == c.
func ValidateSquare(m mat.Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if r, c := m.Dims(); r != c {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", r, c, ErrNonSquare))
	}

	return nil
}

// ValidateVecLen ensures x is non-nil with exactly n entries.
func ValidateVecLen(x []float64, n int) error {
	if x == nil && n > 0 {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("len %d, want %d: %w", len(x), n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateFinite ensures every entry of m is finite.
// Complexity: O(r·c).
func ValidateFinite(m mat.Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateFinite", err)
	}
	r, c := m.Dims()
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("[%d,%d]=%v: %w", i, j, v, ErrNaNInf))
			}
		}
	}

	return nil
}

// ValidateFiniteVec ensures every entry of x is finite.
func ValidateFiniteVec(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateFiniteVec", fmt.Errorf("[%d]=%v: %w", i, v, ErrNaNInf))
		}
	}

	return nil
}

// validateCondition ensures the condition gate is a number ≥ 1 (+Inf allowed).
func validateCondition(maxCond float64) error {
	if math.IsNaN(maxCond) || maxCond < 1 {
		return validatorErrorf("validateCondition", fmt.Errorf("%v: %w", maxCond, ErrBadCondition))
	}

	return nil
}
