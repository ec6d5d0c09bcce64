// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hachtel/measurement"
)

// BuildJacobian returns H (Rows × Cols) at state st.
//
// Measurement rows hold the closed-form partials of each prediction. The two
// structural rows carry a unit entry at the slack VRe and VIm columns. Each
// operational row carries a unit entry at its branch status column.
//
// Entries not listed by measurement.Gradient are zero, so repeated calls at
// the same state produce bit-identical matrices.
//
// Complexity: O(m·deg + E) writes over an O(Rows·Cols) zeroed allocation.
func BuildJacobian(l *Layout, st measurement.State) (*mat.Dense, error) {
	h := mat.NewDense(l.Rows(), l.Cols(), nil)

	for i, m := range l.ms {
		grad, err := measurement.Gradient(l.net, st, m)
		if err != nil {
			return nil, fmt.Errorf("BuildJacobian: row %d: %w", i, err)
		}
		for _, p := range grad {
			h.Set(i, l.Col(p.Var), p.Value)
		}
	}

	h.Set(l.RowSlackRe(), l.ColVRe(l.slack), 1)
	h.Set(l.RowSlackIm(), l.ColVIm(l.slack), 1)

	for e := 0; e < l.branches; e++ {
		h.Set(l.RowStatus(e), l.ColStatus(e), 1)
	}

	return h, nil
}
