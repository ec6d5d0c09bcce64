// SPDX-License-Identifier: MIT

package estimator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Hypothesis is one alternative topology assumption for the same network and
// measurements.
type Hypothesis struct {
	Name       string
	Assumption []float64
	Suspects   []string
}

// HypothesisResult pairs a hypothesis with the outcome of its run.
type HypothesisResult struct {
	Hypothesis Hypothesis
	Result     *Result
}

// EvaluateHypotheses solves base once per hypothesis, replacing the topology
// assumption (and adding the hypothesis suspects), at most Parallelism runs at
// a time. Results keep the input order.
//
// Every run owns its own state vector; the network and measurements are
// shared read-only. The first input error cancels the remaining runs and is
// returned. ctx is checked before each run starts; a run in progress is
// bounded only by MaxIterations.
func EvaluateHypotheses(ctx context.Context, base Problem, hs []Hypothesis, opts ...Option) ([]HypothesisResult, error) {
	o := gatherOptions(opts...)
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("EvaluateHypotheses: %w", err)
	}

	out := make([]HypothesisResult, len(hs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Parallelism)

	for i := range hs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			h := hs[i]
			p := base
			p.Assumption = h.Assumption

			runOpts := append(append([]Option(nil), opts...),
				WithSuspectBranches(h.Suspects...),
				WithLogger(o.Logger.With(zap.String("hypothesis", h.Name))),
			)
			res, err := Estimate(p, runOpts...)
			if err != nil {
				return fmt.Errorf("hypothesis %q: %w", h.Name, err)
			}
			out[i] = HypothesisResult{Hypothesis: h, Result: res}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("EvaluateHypotheses: %w", err)
	}

	return out, nil
}

// Best returns the converged hypothesis whose largest normalized multiplier
// is smallest, i.e. the assumption the measurements contradict least.
// ok is false when no hypothesis converged.
func Best(results []HypothesisResult) (best HypothesisResult, ok bool) {
	bestScore := 0.0
	for _, hr := range results {
		if !hr.Result.Converged() {
			continue
		}
		score := 0.0
		if top, err := TopAnomaly(hr.Result); err == nil {
			score = top.Normalized
		}
		if !ok || score < bestScore {
			best, bestScore, ok = hr, score, true
		}
	}

	return best, ok
}
