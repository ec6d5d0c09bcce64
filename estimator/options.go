// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/hachtel/matrix"
)

// Defaults. Single source of truth for DefaultOptions and the CLI config.
const (
	// DefaultMaxIterations caps the number of linear solves per run.
	DefaultMaxIterations = 20

	// DefaultTolerance is the convergence threshold on ‖δx‖₂.
	DefaultTolerance = 1e-7

	// DefaultSuspectVariance is the operational-row variance of a suspect branch.
	DefaultSuspectVariance = 100.0

	// DefaultStatusThreshold splits estimated statuses into closed (≥) and open.
	DefaultStatusThreshold = 0.5

	// DefaultConditionGate is the largest accepted condition number of A.
	DefaultConditionGate = matrix.DefaultConditionGate
)

// Options configures one estimation run.
//
// MaxIterations   – linear solves allowed before the run is DIVERGED. Must be ≥ 1.
// Tolerance       – convergence threshold on the step norm. Must be > 0.
// SuspectVariance – variance of operational rows for suspect branches. Must be > 0.
// StatusThreshold – closed/open decision level used by reports. Must be in (0, 1).
// ConditionGate   – condition numbers above this make the system SINGULAR. Must be ≥ 1.
// Parallelism     – concurrent runs in EvaluateHypotheses. Must be ≥ 1.
// InitialState    – optional warm start of length 2N+E; nil means flat start.
// Suspects        – branch ids whose assumption is relaxed.
// Logger          – structured logger; nil is replaced by a no-op logger.
type Options struct {
	MaxIterations   int
	Tolerance       float64
	SuspectVariance float64
	StatusThreshold float64
	ConditionGate   float64
	Parallelism     int
	InitialState    []float64
	Suspects        []string
	Logger          *zap.Logger
}

// Option represents a functional option for configuring a run.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations:   DefaultMaxIterations,
		Tolerance:       DefaultTolerance,
		SuspectVariance: DefaultSuspectVariance,
		StatusThreshold: DefaultStatusThreshold,
		ConditionGate:   DefaultConditionGate,
		Parallelism:     runtime.GOMAXPROCS(0),
		Logger:          zap.NewNop(),
	}
}

// WithMaxIterations sets the iteration cap.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// WithTolerance sets the convergence threshold on ‖δx‖₂.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		o.Tolerance = tol
	}
}

// WithSuspectVariance sets the operational-row variance of suspect branches.
func WithSuspectVariance(v float64) Option {
	return func(o *Options) {
		o.SuspectVariance = v
	}
}

// WithStatusThreshold sets the closed/open decision level.
func WithStatusThreshold(t float64) Option {
	return func(o *Options) {
		o.StatusThreshold = t
	}
}

// WithConditionGate sets the largest accepted condition number.
func WithConditionGate(c float64) Option {
	return func(o *Options) {
		o.ConditionGate = c
	}
}

// WithParallelism bounds concurrent runs in EvaluateHypotheses.
func WithParallelism(n int) Option {
	return func(o *Options) {
		o.Parallelism = n
	}
}

// WithInitialState starts from x instead of the flat start. x is copied.
func WithInitialState(x []float64) Option {
	return func(o *Options) {
		o.InitialState = append([]float64(nil), x...)
	}
}

// WithSuspectBranches relaxes the operational constraint of the given
// branches ("3_4"). Repeated calls accumulate.
func WithSuspectBranches(ids ...string) Option {
	return func(o *Options) {
		o.Suspects = append(o.Suspects, ids...)
	}
}

// WithLogger attaches a structured logger. Each run adds a run_id field.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// gatherOptions applies user options over the defaults.
func gatherOptions(user ...Option) Options {
	o := DefaultOptions()
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}

// validate checks option ranges; failures wrap ErrOptionViolation.
func (o Options) validate() error {
	switch {
	case o.MaxIterations < 1:
		return fmt.Errorf("MaxIterations=%d: %w", o.MaxIterations, ErrOptionViolation)
	case !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0):
		return fmt.Errorf("Tolerance=%v: %w", o.Tolerance, ErrOptionViolation)
	case !(o.SuspectVariance > 0) || math.IsInf(o.SuspectVariance, 0):
		return fmt.Errorf("SuspectVariance=%v: %w", o.SuspectVariance, ErrOptionViolation)
	case !(o.StatusThreshold > 0 && o.StatusThreshold < 1):
		return fmt.Errorf("StatusThreshold=%v: %w", o.StatusThreshold, ErrOptionViolation)
	case math.IsNaN(o.ConditionGate) || o.ConditionGate < 1:
		return fmt.Errorf("ConditionGate=%v: %w", o.ConditionGate, ErrOptionViolation)
	case o.Parallelism < 1:
		return fmt.Errorf("Parallelism=%d: %w", o.Parallelism, ErrOptionViolation)
	}

	return nil
}
