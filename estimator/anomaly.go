// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hachtel/matrix"
)

// NormalizedMultipliers returns |λ_i| / sqrt(V_ii) for every constraint row,
// where V is the trailing block of inv = A⁻¹ starting at column cols.
// A row whose V_ii is not positive gets 0: its multiplier carries no
// statistical information (e.g. a structural row the state fully absorbs).
//
// Errors: matrix.ErrDimensionMismatch when lambda does not fit inv.
func NormalizedMultipliers(inv *mat.Dense, lambda []float64, cols int) ([]float64, error) {
	v, err := matrix.Diagonal(inv, cols, len(lambda))
	if err != nil {
		return nil, fmt.Errorf("NormalizedMultipliers: %w", err)
	}

	out := make([]float64, len(lambda))
	for i, l := range lambda {
		if !(v[i] > 0) {
			continue
		}
		out[i] = math.Abs(l) / math.Sqrt(v[i])
	}

	return out, nil
}

// Anomaly is one branch ranked by how strongly the measurements contradict
// its assumed status.
type Anomaly struct {
	Branch     int
	ID         string
	Normalized float64
	Assumed    float64
	Estimated  float64
}

// RankAnomalies orders the branches of a converged run by normalized
// multiplier, largest first; ties keep canonical branch order. It returns
// nil when the run has no normalized multipliers.
func RankAnomalies(res *Result) []Anomaly {
	if res == nil || res.layout == nil || len(res.Normalized) != res.layout.Branches() {
		return nil
	}

	out := make([]Anomaly, len(res.Normalized))
	for e, v := range res.Normalized {
		out[e] = Anomaly{
			Branch:     e,
			ID:         res.BranchIDs[e],
			Normalized: v,
			Assumed:    res.Assumption[e],
			Estimated:  res.State[res.layout.ColStatus(e)],
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Normalized > out[j].Normalized
	})

	return out
}

// TopAnomaly returns the branch with the largest normalized multiplier.
//
// Errors: ErrNilResult; ErrNotConverged when res carries no multipliers.
func TopAnomaly(res *Result) (Anomaly, error) {
	if res == nil {
		return Anomaly{}, ErrNilResult
	}
	ranked := RankAnomalies(res)
	if len(ranked) == 0 {
		return Anomaly{}, fmt.Errorf("TopAnomaly: status %s: %w", res.Status, ErrNotConverged)
	}

	return ranked[0], nil
}

// Suspicious returns the ranked anomalies whose normalized multiplier is at
// least threshold.
func Suspicious(res *Result, threshold float64) []Anomaly {
	ranked := RankAnomalies(res)
	n := sort.Search(len(ranked), func(i int) bool {
		return ranked[i].Normalized < threshold
	})

	return ranked[:n]
}
