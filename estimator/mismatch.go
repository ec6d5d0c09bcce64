// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"

	"github.com/katalvlaran/hachtel/measurement"
)

// ComputeMismatch returns Δz = target − prediction in Layout row order:
//
//	[ z_i − h_i(x) ]        for every measurement
//	[ slack.Re − VRe[s] ]
//	[ slack.Im − VIm[s] ]
//	[ assumed_e − B[e] ]    for every branch
//
// Errors: ErrAssumption, and any measurement.Predict failure.
func ComputeMismatch(l *Layout, st measurement.State, slack measurement.Voltage, assumption []float64) ([]float64, error) {
	if len(assumption) != l.branches {
		return nil, fmt.Errorf("ComputeMismatch: len %d, want %d: %w", len(assumption), l.branches, ErrAssumption)
	}

	dz := make([]float64, l.Rows())
	for i, m := range l.ms {
		pred, err := measurement.Predict(l.net, st, m)
		if err != nil {
			return nil, fmt.Errorf("ComputeMismatch: row %d: %w", i, err)
		}
		dz[i] = m.Value - pred
	}

	dz[l.RowSlackRe()] = slack.Re - st.VRe(l.slack)
	dz[l.RowSlackIm()] = slack.Im - st.VIm(l.slack)

	for e, want := range assumption {
		dz[l.RowStatus(e)] = want - st.Status(e)
	}

	return dz, nil
}
