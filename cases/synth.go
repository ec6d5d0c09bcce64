// SPDX-License-Identifier: MIT

package cases

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hachtel/measurement"
	"github.com/katalvlaran/hachtel/network"
)

// RNG stream ids derived from one seed.
const (
	streamProfile uint64 = 1
	streamNoise   uint64 = 2
)

// SynthOptions controls measurement synthesis.
//
// Amplitude is the half-width of the uniform noise in standard deviations:
// each value is perturbed by u·sqrt(variance), u ∈ [-Amplitude, Amplitude].
// Zero yields exact model values. Exact meters (variance 0) never get noise.
type SynthOptions struct {
	Seed      int64
	Amplitude float64
}

// DefaultParams returns the parameters used for generated cases when the
// caller has no preference.
func DefaultParams() Params {
	return Params{
		Size:     6,
		Seed:     0,
		Spread:   0.03,
		Variance: 0.01,
	}
}

// FullPlan meters everything: P, Q and V2 at every bus, then Pf and Qf on
// both sides of every branch in canonical order. Values are zero.
func FullPlan(net *network.Network, variance float64) measurement.Set {
	plan := make(measurement.Set, 0, 3*net.BusCount()+4*net.BranchCount())
	var bus int
	for bus = 1; bus <= net.BusCount(); bus++ {
		plan = append(plan,
			measurement.Injection(measurement.P, bus, 0, variance),
			measurement.Injection(measurement.Q, bus, 0, variance),
			measurement.VoltageSquared(bus, 0, variance),
		)
	}
	for _, br := range net.Branches() {
		plan = append(plan,
			measurement.Flow(measurement.Pf, br.From, br.To, 0, variance),
			measurement.Flow(measurement.Qf, br.From, br.To, 0, variance),
			measurement.Flow(measurement.Pf, br.To, br.From, 0, variance),
			measurement.Flow(measurement.Qf, br.To, br.From, 0, variance),
		)
	}

	return plan
}

// Synthesize evaluates every meter of plan at the known state snap and
// returns the resulting measurement set, optionally with seeded noise.
//
// Errors: ErrSnapshotShape, ErrBadNoise, and plan validation errors.
func Synthesize(net *network.Network, snap Snapshot, plan measurement.Set, opts SynthOptions) (measurement.Set, error) {
	if err := snap.Check(net); err != nil {
		return nil, fmt.Errorf("Synthesize: %w", err)
	}
	if opts.Amplitude < 0 || math.IsNaN(opts.Amplitude) || math.IsInf(opts.Amplitude, 0) {
		return nil, fmt.Errorf("Synthesize: amplitude %v: %w", opts.Amplitude, ErrBadNoise)
	}
	if err := plan.Validate(net); err != nil {
		return nil, fmt.Errorf("Synthesize: %w", err)
	}

	rng := rngFromSeed(deriveSeed(opts.Seed, streamNoise))
	out := make(measurement.Set, len(plan))
	for i, m := range plan {
		v, err := measurement.Predict(net, snap, m)
		if err != nil {
			return nil, fmt.Errorf("Synthesize: %w", err)
		}
		if opts.Amplitude > 0 && !m.Exact() {
			v += uniform(rng, opts.Amplitude) * math.Sqrt(m.Variance)
		}
		m.Value = v
		out[i] = m
	}

	return out, nil
}
