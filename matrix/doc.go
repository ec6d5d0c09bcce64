// SPDX-License-Identifier: MIT

// Package matrix holds the dense linear algebra of the augmented (Hachtel)
// estimation system on top of gonum:
//
//	    ┌          ┐ ┌   ┐   ┌    ┐
//	    │ 0     Hᵀ │ │ δx│   │ 0  │
//	    │ H     R  │ │ λ │ = │ Δz │
//	    └          ┘ └   ┘   └    ┘
//
// H is the m×n Jacobian and R = diag(r) the row covariance. Rows with r=0 are
// exact equality constraints; they stay exact because A is factorized as an
// indefinite saddle-point matrix and never reduced to normal equations.
//
// What this package provides:
//
//   - Saddle / SaddleRHS: assemble A and b.
//   - Factorize: LU with partial pivoting (gonum mat.LU) plus a condition
//     number gate; Factorization.Solve and Factorization.Inverse reuse it.
//   - Solve / Inverse: one-shot helpers over Factorize.
//   - Rank: numerical rank via SVD, used to explain singular systems.
//   - SelectRows, Diagonal: small helpers for diagnostics and post-processing.
//
// Determinism:
//
//	Every routine is deterministic for identical input. No goroutines.
//
// Errors (sentinel, match with errors.Is):
//
//   - ErrNilMatrix          nil matrix or vector argument.
//   - ErrBadShape           zero or negative dimension.
//   - ErrDimensionMismatch  operands of incompatible size.
//   - ErrNonSquare          a square matrix was required.
//   - ErrNaNInf             NaN or ±Inf entry.
//   - ErrSingular           exactly singular, or condition number above the gate.
//   - ErrBadCondition       a condition gate that is NaN or below 1.
//   - ErrFactorization      SVD did not converge.
package matrix
