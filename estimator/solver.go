// SPDX-License-Identifier: MIT

package estimator

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hachtel/matrix"
	"github.com/katalvlaran/hachtel/measurement"
)

// run owns everything mutable about one estimation. Nothing in it is shared
// with other runs, so independent runs may execute concurrently.
type run struct {
	opts       Options
	layout     *Layout
	slackV     measurement.Voltage
	assumption []float64
	r          []float64
	x          []float64
	log        *zap.Logger
}

// Estimate runs the Hachtel iteration for p.
//
// Implementation:
//   - Stage 1: validate options (ErrOptionViolation) and input data
//     (ErrDataInconsistency) before any iteration.
//   - Stage 2: x ← flat start (or WithInitialState); R from measurement
//     variances, exact structural/operational rows, relaxed suspects.
//   - Stage 3: repeat up to MaxIterations:
//     H(x), Δz(x), A = [[0,Hᵀ],[H,R]], b = [0;Δz], solve A·y = b,
//     x ← x + δx; stop when iteration > 0 and ‖δx‖₂ < Tolerance.
//   - Stage 4: on convergence invert the last A and normalize λ.
//
// Numerical outcomes (CONVERGED, DIVERGED, SINGULAR) are reported in the
// Result with a nil error. A non-nil error always means the input was
// rejected and no iteration ran.
//
// Complexity: O(k·(m+2+E+2N+E)³) for k iterations (dense LU).
func Estimate(p Problem, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("Estimate: %w", err)
	}

	rn, err := newRun(p, o)
	if err != nil {
		return nil, fmt.Errorf("Estimate: %w", err)
	}

	return rn.execute(), nil
}

// newRun performs every data-integrity check and prepares the run.
func newRun(p Problem, o Options) (*run, error) {
	if p.Network == nil {
		return nil, fmt.Errorf("%w: %w", ErrDataInconsistency, ErrNilNetwork)
	}
	if err := p.Network.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataInconsistency, err)
	}
	l, err := NewLayout(p.Network, p.Measurements, p.Slack)
	if err != nil {
		return nil, err
	}
	if !finite(p.SlackVoltage.Re) || !finite(p.SlackVoltage.Im) {
		return nil, fmt.Errorf("slack voltage %v: %w: %w", p.SlackVoltage, ErrDataInconsistency, ErrSlackBus)
	}
	if err = validateAssumption(l, p.Assumption); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataInconsistency, err)
	}

	suspects := make([]int, 0, len(o.Suspects))
	for _, id := range o.Suspects {
		idx, idErr := p.Network.IndexOfID(id)
		if idErr != nil {
			return nil, fmt.Errorf("suspect %q: %w: %w", id, ErrDataInconsistency, idErr)
		}
		suspects = append(suspects, idx)
	}
	r, err := Covariance(l, suspects, o.SuspectVariance)
	if err != nil {
		return nil, err
	}

	var x []float64
	if o.InitialState != nil {
		if err = validateInitialState(l, o.InitialState); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataInconsistency, err)
		}
		x = append([]float64(nil), o.InitialState...)
	} else if x, err = FlatStart(l, p.Assumption); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataInconsistency, err)
	}

	return &run{
		opts:       o,
		layout:     l,
		slackV:     p.SlackVoltage,
		assumption: append([]float64(nil), p.Assumption...),
		r:          r,
		x:          x,
	}, nil
}

// execute drives INITIALIZED → ITERATING → {CONVERGED, DIVERGED, SINGULAR}.
func (rn *run) execute() *Result {
	l := rn.layout
	res := &Result{
		RunID:        uuid.New(),
		Status:       StatusInitialized,
		LastStepNorm: math.Inf(1),
		Condition:    math.NaN(),
		Assumption:   rn.assumption,
		BranchIDs:    l.BranchIDs(),
		RowLabels:    rowLabels(l),
		StepNorms:    make([]float64, 0, rn.opts.MaxIterations),
		layout:       l,
	}
	rn.log = rn.opts.Logger.With(zap.String("run_id", res.RunID.String()))
	rn.log.Debug("estimation started",
		zap.Int("buses", l.Buses()),
		zap.Int("branches", l.Branches()),
		zap.Int("measurements", len(l.Measurements())),
		zap.Int("rows", l.Rows()),
		zap.Int("cols", l.Cols()),
	)

	res.Status = StatusIterating
	var (
		iter   int
		f      *matrix.Factorization
		lambda []float64
		norm   float64
		h      *mat.Dense
	)
	for iter = 0; iter < rn.opts.MaxIterations; iter++ {
		st, _ := NewState(l, rn.x)

		// Stage A: linearize at x.
		var err error
		h, err = BuildJacobian(l, st)
		if err != nil {
			rn.fail(res, StatusDiverged, err)
			break
		}
		dz, err := ComputeMismatch(l, st, rn.slackV, rn.assumption)
		if err != nil {
			rn.fail(res, StatusDiverged, err)
			break
		}

		// Stage B: assemble and factorize the augmented system.
		a, err := matrix.Saddle(h, rn.r)
		if err != nil {
			rn.fail(res, StatusDiverged, err)
			break
		}
		b, err := matrix.SaddleRHS(l.Cols(), dz)
		if err != nil {
			rn.fail(res, StatusDiverged, err)
			break
		}
		f, err = matrix.Factorize(a, rn.opts.ConditionGate)
		if err != nil {
			if errors.Is(err, matrix.ErrSingular) {
				rn.singular(res, h, err)
			} else {
				rn.fail(res, StatusDiverged, err)
			}
			break
		}
		res.Condition = f.Cond()
		y, err := f.Solve(b)
		if err != nil {
			if errors.Is(err, matrix.ErrSingular) {
				rn.singular(res, h, err)
			} else {
				rn.fail(res, StatusDiverged, err)
			}
			break
		}

		// Stage C: apply the correction.
		var dx []float64
		dx, lambda, _ = matrix.Split(y, l.Cols())
		floats.Add(rn.x, dx)
		norm = floats.Norm(dx, 2)
		res.StepNorms = append(res.StepNorms, norm)
		res.LastStepNorm = norm
		res.Iterations++
		rn.log.Debug("iteration",
			zap.Int("iter", iter),
			zap.Float64("step_norm", norm),
			zap.Float64("cond", res.Condition),
		)

		if iter > 0 && norm < rn.opts.Tolerance {
			res.Status = StatusConverged
			break
		}
	}

	res.State = append([]float64(nil), rn.x...)

	switch res.Status {
	case StatusIterating:
		res.Status = StatusDiverged
		rn.log.Warn("estimation did not converge",
			zap.Int("iterations", res.Iterations),
			zap.Float64("last_step_norm", res.LastStepNorm),
		)
	case StatusConverged:
		rn.postProcess(res, f, lambda)
	}

	return res
}

// postProcess computes the normalized multipliers from the final A.
func (rn *run) postProcess(res *Result, f *matrix.Factorization, lambda []float64) {
	res.Multipliers = lambda
	inv, err := f.Inverse()
	if err != nil {
		rn.log.Warn("covariance of multipliers unavailable", zap.Error(err))
		rn.log.Info("estimation converged", zap.Int("iterations", res.Iterations))

		return
	}
	res.RowNormalized, err = NormalizedMultipliers(inv, lambda, rn.layout.Cols())
	if err != nil {
		rn.log.Warn("normalized multipliers unavailable", zap.Error(err))
	} else {
		res.Normalized = res.RowNormalized[rn.layout.RowStatus(0):]
	}

	fields := []zap.Field{
		zap.Int("iterations", res.Iterations),
		zap.Float64("last_step_norm", res.LastStepNorm),
	}
	if top, topErr := TopAnomaly(res); topErr == nil {
		fields = append(fields,
			zap.String("top_branch", top.ID),
			zap.Float64("top_normalized", top.Normalized),
		)
	}
	rn.log.Info("estimation converged", fields...)
}

// singular records a failed factorization and its diagnosis.
func (rn *run) singular(res *Result, h *mat.Dense, cause error) {
	res.Status = StatusSingular
	res.Condition = math.Inf(1)
	res.Diagnosis = Diagnose(rn.layout, h, rn.r)
	rn.log.Warn("augmented system is singular",
		zap.Int("iterations", res.Iterations),
		zap.Strings("suspected_blocks", res.Diagnosis.BlockNames()),
		zap.Strings("unobserved", res.Diagnosis.Unobserved),
		zap.Error(cause),
	)
}

// fail records a numerical breakdown other than singularity.
func (rn *run) fail(res *Result, status Status, cause error) {
	res.Status = status
	rn.log.Warn("estimation aborted",
		zap.Stringer("status", status),
		zap.Int("iterations", res.Iterations),
		zap.Error(cause),
	)
}

func rowLabels(l *Layout) []string {
	out := make([]string, l.Rows())
	for i := range out {
		out[i] = l.RowLabel(i)
	}

	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
