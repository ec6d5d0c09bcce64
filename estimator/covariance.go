// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"math"
)

// Covariance returns the diagonal of R in Layout row order.
//
// Measurement rows carry their own variance (zero for exact measurements).
// Structural rows are exact. Operational rows are exact unless the branch is
// listed in suspects, in which case suspectVariance lets the measurements
// pull its status away from the assumption.
func Covariance(l *Layout, suspects []int, suspectVariance float64) ([]float64, error) {
	if math.IsNaN(suspectVariance) || math.IsInf(suspectVariance, 0) || suspectVariance < 0 {
		return nil, fmt.Errorf("Covariance: suspect variance %v: %w", suspectVariance, ErrOptionViolation)
	}

	r := make([]float64, l.Rows())
	for i, m := range l.ms {
		r[i] = m.Variance
	}
	for _, e := range suspects {
		if e < 0 || e >= l.branches {
			return nil, fmt.Errorf("Covariance: suspect branch %d of %d: %w", e, l.branches, ErrOptionViolation)
		}
		r[l.RowStatus(e)] = suspectVariance
	}

	return r, nil
}
