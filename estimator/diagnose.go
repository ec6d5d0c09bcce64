// SPDX-License-Identifier: MIT

package estimator

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hachtel/matrix"
)

// rankTol is the relative singular-value cutoff of the rank tests.
const rankTol = 1e-10

// Diagnosis explains why the augmented matrix could not be factorized.
//
// A = [[0,Hᵀ],[H,R]] is nonsingular when H has full column rank and the rows
// of H with zero variance (exact rows) are linearly independent. The
// diagnosis tests both conditions.
type Diagnosis struct {
	// Unobserved lists state variables no row depends on ("VIm[3]").
	Unobserved []string

	// JacobianRank is rank(H); Columns is 2N+E.
	JacobianRank int
	Columns      int

	// ExactRows counts zero-variance rows; ExactRank is their rank.
	ExactRows int
	ExactRank int

	// UnderDetermined is set when rank(H) < Columns: too few independent
	// measurements for the unknowns.
	UnderDetermined bool

	// OverConstrained is set when the exact rows are linearly dependent.
	OverConstrained bool

	// Suspected lists the row blocks most likely responsible, in block order.
	Suspected []RowBlock
}

// BlockNames returns the suspected blocks as strings.
func (d *Diagnosis) BlockNames() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.Suspected))
	for i, b := range d.Suspected {
		out[i] = b.String()
	}

	return out
}

// Diagnose inspects H and the row variances r of a singular system.
//
// Implementation:
//   - Stage 1: all-zero columns of H are unobserved variables; rank(H) via SVD.
//     A rank deficit points at the measurement block.
//   - Stage 2: rank of the exact rows. If they are dependent, each block
//     holding exact rows is removed in turn; a block whose removal restores
//     independence is suspected. If no single block does, every block with
//     exact rows is suspected.
//
// Rank failures (SVD non-convergence) leave the affected fields at zero.
func Diagnose(l *Layout, h *mat.Dense, r []float64) *Diagnosis {
	d := &Diagnosis{Columns: l.Cols()}
	rows, cols := h.Dims()

	// Stage 1: observability.
	var i, j int
	for j = 0; j < cols; j++ {
		observed := false
		for i = 0; i < rows; i++ {
			if h.At(i, j) != 0 {
				observed = true
				break
			}
		}
		if !observed {
			d.Unobserved = append(d.Unobserved, l.ColLabel(j))
		}
	}
	if rk, err := matrix.Rank(h, rankTol); err == nil {
		d.JacobianRank = rk
	}
	d.UnderDetermined = d.JacobianRank < cols || len(d.Unobserved) > 0

	// Stage 2: consistency of exact rows.
	exact := make([]int, 0, rows)
	for i = 0; i < rows && i < len(r); i++ {
		if r[i] == 0 {
			exact = append(exact, i)
		}
	}
	d.ExactRows = len(exact)
	d.ExactRank = rowRank(h, exact)
	d.OverConstrained = d.ExactRank < d.ExactRows

	suspected := make(map[RowBlock]bool, 3)
	if d.UnderDetermined {
		suspected[RowMeasurement] = true
	}
	if d.OverConstrained {
		present := make(map[RowBlock]bool, 3)
		for _, row := range exact {
			present[l.RowBlockOf(row)] = true
		}
		found := false
		for _, blk := range []RowBlock{RowMeasurement, RowStructural, RowOperational} {
			if !present[blk] {
				continue
			}
			rest := make([]int, 0, len(exact))
			for _, row := range exact {
				if l.RowBlockOf(row) != blk {
					rest = append(rest, row)
				}
			}
			if rowRank(h, rest) == len(rest) {
				suspected[blk] = true
				found = true
			}
		}
		if !found {
			for blk := range present {
				suspected[blk] = true
			}
		}
	}
	for _, blk := range []RowBlock{RowMeasurement, RowStructural, RowOperational} {
		if suspected[blk] {
			d.Suspected = append(d.Suspected, blk)
		}
	}

	return d
}

// rowRank returns the rank of the listed rows of h (0 for no rows).
func rowRank(h *mat.Dense, rows []int) int {
	if len(rows) == 0 {
		return 0
	}
	sub, err := matrix.SelectRows(h, rows)
	if err != nil {
		return 0
	}
	rk, err := matrix.Rank(sub, rankTol)
	if err != nil {
		return 0
	}

	return rk
}
