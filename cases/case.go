// SPDX-License-Identifier: MIT

package cases

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/hachtel/estimator"
	"github.com/katalvlaran/hachtel/measurement"
	"github.com/katalvlaran/hachtel/network"
)

// Case bundles everything a driver needs for one estimation.
type Case struct {
	Name         string
	Network      *network.Network
	Measurements measurement.Set

	// Truth is the actual branch status; Assumption is what the estimator is told.
	Truth      []float64
	Assumption []float64

	Slack        int
	SlackVoltage measurement.Voltage
}

// Problem returns the estimator input for c.
func (c *Case) Problem() estimator.Problem {
	return estimator.Problem{
		Network:      c.Network,
		Measurements: c.Measurements,
		Assumption:   append([]float64(nil), c.Assumption...),
		Slack:        c.Slack,
		SlackVoltage: c.SlackVoltage,
	}
}

// WithFlipped returns a copy of c whose assumption has the named branches
// flipped relative to the truth.
func (c *Case) WithFlipped(ids ...string) (*Case, error) {
	flipped, err := Flip(c.Network, c.Truth, ids...)
	if err != nil {
		return nil, err
	}
	out := *c
	out.Assumption = flipped

	return &out, nil
}

// Params parameterizes generated cases in ByName.
type Params struct {
	Size      int     // ring buses, or grid side
	Seed      int64   // operating point and noise seed
	Spread    float64 // voltage deviation of the operating point
	Variance  float64 // measurement variance
	Amplitude float64 // noise amplitude in standard deviations (0 = exact)
}

type factory func(Params) (*Case, error)

var registry = map[string]factory{
	"demo": func(Params) (*Case, error) { return Demo() },
	"fourbus": func(p Params) (*Case, error) {
		return FourBusRoundTrip(SynthOptions{Seed: p.Seed, Amplitude: p.Amplitude})
	},
	"ring": func(p Params) (*Case, error) {
		net, err := Ring(p.Size, defaultLineG, defaultLineB)
		if err != nil {
			return nil, err
		}
		return Generated("ring", net, p)
	},
	"grid": func(p Params) (*Case, error) {
		net, err := Grid(p.Size, p.Size, defaultLineG, defaultLineB)
		if err != nil {
			return nil, err
		}
		return Generated("grid", net, p)
	},
}

// Names lists the case names accepted by ByName, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// ByName builds a named case.
//
// Errors: ErrUnknownCase, and generator/synthesis errors.
func ByName(name string, p Params) (*Case, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("ByName(%q): %w", name, ErrUnknownCase)
	}

	return f(p)
}
