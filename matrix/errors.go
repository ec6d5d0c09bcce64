// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..." so it greps across logs.
// Callers wrap with fmt.Errorf("ctx: %w", ErrX) and match with errors.Is.

package matrix

import "errors"

var (
	// ErrNilMatrix indicates a nil matrix or vector argument.
	ErrNilMatrix = errors.New("matrix: nil argument")

	// ErrBadShape indicates a requested shape with a non-positive dimension.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrDimensionMismatch indicates operands of incompatible size.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare indicates a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf indicates a NaN or ±Inf entry where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular indicates an exactly singular matrix, or one whose condition
	// number exceeds the configured gate.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrBadCondition indicates a condition gate that is NaN or below 1.
	ErrBadCondition = errors.New("matrix: condition gate must be >= 1")

	// ErrFactorization indicates that a decomposition failed to converge.
	ErrFactorization = errors.New("matrix: factorization failed")
)
