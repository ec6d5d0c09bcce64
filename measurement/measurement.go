// SPDX-License-Identifier: MIT

package measurement

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hachtel/network"
)

// Measurement is one observation of the network. It is immutable once built.
//
// Bus is the measured bus for P, Q and V2, and the sending end for Pf and Qf.
// To is the receiving end of a flow and zero for bus kinds.
type Measurement struct {
	Kind     Kind    `yaml:"kind"`
	Bus      int     `yaml:"bus"`
	To       int     `yaml:"to,omitempty"`
	Value    float64 `yaml:"value"`
	Variance float64 `yaml:"variance"`
}

// Injection returns a P or Q injection measurement at bus.
func Injection(kind Kind, bus int, value, variance float64) Measurement {
	return Measurement{Kind: kind, Bus: bus, Value: value, Variance: variance}
}

// Flow returns a Pf or Qf measurement on the side of branch from→to at from.
func Flow(kind Kind, from, to int, value, variance float64) Measurement {
	return Measurement{Kind: kind, Bus: from, To: to, Value: value, Variance: variance}
}

// VoltageSquared returns a V2 measurement at bus.
func VoltageSquared(bus int, value, variance float64) Measurement {
	return Measurement{Kind: V2, Bus: bus, Value: value, Variance: variance}
}

// ZeroInjection returns the exact pair P=0, Q=0 for a bus with no load or
// generation attached.
func ZeroInjection(bus int) []Measurement {
	return []Measurement{
		{Kind: P, Bus: bus},
		{Kind: Q, Bus: bus},
	}
}

// Exact reports whether m is an equality constraint (zero variance).
func (m Measurement) Exact() bool {
	return m.Variance == 0
}

// Location formats the measured place: "3" for a bus, "2_3" for a flow.
func (m Measurement) Location() string {
	if m.Kind.IsFlow() {
		return network.BranchID(m.Bus, m.To)
	}

	return fmt.Sprintf("%d", m.Bus)
}

// String formats m as "<kind>@<location>".
func (m Measurement) String() string {
	return m.Kind.String() + "@" + m.Location()
}

// Validate checks m against net: kind, finite value, variance ≥ 0, buses in
// range and, for flows, an existing candidate branch.
func (m Measurement) Validate(net *network.Network) error {
	if net == nil {
		return ErrNilNetwork
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("%v: %w", m.Kind, ErrUnknownKind)
	}
	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return fmt.Errorf("%s: value %v: %w", m, m.Value, ErrNonFiniteValue)
	}
	if m.Variance < 0 || math.IsNaN(m.Variance) || math.IsInf(m.Variance, 0) {
		return fmt.Errorf("%s: variance %v: %w", m, m.Variance, ErrBadVariance)
	}
	if !net.HasBus(m.Bus) {
		return fmt.Errorf("%s: bus %d: %w", m, m.Bus, network.ErrUnknownBus)
	}
	if !m.Kind.IsFlow() {
		if m.To != 0 {
			return fmt.Errorf("%s: far bus %d on a bus measurement: %w", m, m.To, ErrBadLocation)
		}

		return nil
	}
	if m.To == 0 {
		return fmt.Errorf("%s: %w", m, ErrBadLocation)
	}
	if !net.HasBus(m.To) {
		return fmt.Errorf("%s: bus %d: %w", m, m.To, network.ErrUnknownBus)
	}
	if _, ok := net.IndexOf(m.Bus, m.To); !ok {
		return fmt.Errorf("%s: %w", m, network.ErrUnknownBranch)
	}

	return nil
}

// Set is an ordered measurement collection. Its order is the row order of
// the measurement block in the Jacobian and the mismatch vector.
type Set []Measurement

// Validate checks every measurement and reports the first failure with its
// position.
func (s Set) Validate(net *network.Network) error {
	if net == nil {
		return ErrNilNetwork
	}
	for i, m := range s {
		if err := m.Validate(net); err != nil {
			return fmt.Errorf("measurement[%d]: %w", i, err)
		}
	}

	return nil
}

// Values returns the observed values in set order.
func (s Set) Values() []float64 {
	out := make([]float64, len(s))
	for i, m := range s {
		out[i] = m.Value
	}

	return out
}

// Variances returns the variances in set order.
func (s Set) Variances() []float64 {
	out := make([]float64, len(s))
	for i, m := range s {
		out[i] = m.Variance
	}

	return out
}

// ExactCount returns how many measurements have zero variance.
func (s Set) ExactCount() int {
	var n int
	for _, m := range s {
		if m.Exact() {
			n++
		}
	}

	return n
}
