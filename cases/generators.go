// SPDX-License-Identifier: MIT
// Package: cases
//
// generators.go: synthetic networks.
//
// Contract:
//   • Ring(n): n ≥ 3 buses, branches (1,2), (2,3), …, (n-1,n), (n,1) in that order.
//   • Grid(rows, cols): rows·cols ≥ 2 buses numbered row-major from 1; for each
//     bus emit Right then Bottom neighbour when present.
//   • Every branch gets the same admittance g + j·b.
//
// Determinism:
//   • Fixed emission order, so canonical branch indices are reproducible.

package cases

import (
	"fmt"

	"github.com/katalvlaran/hachtel/measurement"
	"github.com/katalvlaran/hachtel/network"
)

const (
	methodRing = "Ring"
	methodGrid = "Grid"
	minRing    = 3
	minGridDim = 1
)

// Typical per-unit admittance of a short transmission line.
const (
	defaultLineG = 0.1
	defaultLineB = -10.0
)

// Ring returns an n-bus cycle.
func Ring(n int, g, b float64) (*network.Network, error) {
	if n < minRing {
		return nil, fmt.Errorf("%s: n=%d (must be ≥ %d): %w", methodRing, n, minRing, ErrTooFewBuses)
	}
	net, err := network.New(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRing, err)
	}
	for i := 1; i <= n; i++ {
		j := i%n + 1
		if _, err = net.AddBranch(i, j, g, b); err != nil {
			return nil, fmt.Errorf("%s: %w", methodRing, err)
		}
	}

	return net, nil
}

// Grid returns a rows×cols orthogonal grid.
func Grid(rows, cols int, g, b float64) (*network.Network, error) {
	if rows < minGridDim || cols < minGridDim || rows*cols < 2 {
		return nil, fmt.Errorf("%s: rows=%d, cols=%d: %w", methodGrid, rows, cols, ErrTooFewBuses)
	}
	net, err := network.New(rows * cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodGrid, err)
	}
	bus := func(r, c int) int { return r*cols + c + 1 }

	var r, c int
	for r = 0; r < rows; r++ {
		for c = 0; c < cols; c++ {
			if c+1 < cols {
				if _, err = net.AddBranch(bus(r, c), bus(r, c+1), g, b); err != nil {
					return nil, fmt.Errorf("%s: %w", methodGrid, err)
				}
			}
			if r+1 < rows {
				if _, err = net.AddBranch(bus(r, c), bus(r+1, c), g, b); err != nil {
					return nil, fmt.Errorf("%s: %w", methodGrid, err)
				}
			}
		}
	}

	return net, nil
}

// Perturbed returns an operating point near flat: the slack bus at 1 + j0,
// every other bus at (1 + u₁) + j·u₂ with u uniform in [-spread, spread],
// and every branch closed.
func Perturbed(net *network.Network, slack int, seed int64, spread float64) Snapshot {
	rng := rngFromSeed(deriveSeed(seed, streamProfile))
	snap := Snapshot{
		Voltages: make([]measurement.Voltage, net.BusCount()),
		Statuses: AllClosed(net.BranchCount()),
	}
	for i := range snap.Voltages {
		re, im := 1+uniform(rng, spread), uniform(rng, spread)
		if i+1 == slack {
			re, im = 1, 0
		}
		snap.Voltages[i] = measurement.Voltage{Re: re, Im: im}
	}

	return snap
}

// Generated builds a case on net from p: Perturbed operating point with slack
// bus 1, FullPlan meters and Synthesize values.
func Generated(name string, net *network.Network, p Params) (*Case, error) {
	const slack = 1
	snap := Perturbed(net, slack, p.Seed, p.Spread)
	ms, err := Synthesize(net, snap, FullPlan(net, p.Variance), SynthOptions{Seed: p.Seed, Amplitude: p.Amplitude})
	if err != nil {
		return nil, err
	}

	return &Case{
		Name:         name,
		Network:      net,
		Measurements: ms,
		Truth:        append([]float64(nil), snap.Statuses...),
		Assumption:   append([]float64(nil), snap.Statuses...),
		Slack:        slack,
		SlackVoltage: snap.Voltages[slack-1],
	}, nil
}
