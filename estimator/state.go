// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hachtel/measurement"
)

// State is a view of a state vector x = [VRe; VIm; B] through a Layout.
// It implements measurement.State. The vector is shared, not copied.
type State struct {
	layout *Layout
	x      []float64
}

var _ measurement.State = (*State)(nil)

// NewState wraps x, which must have length 2N+E.
func NewState(l *Layout, x []float64) (*State, error) {
	if len(x) != l.Cols() {
		return nil, fmt.Errorf("NewState: len %d, want %d: %w", len(x), l.Cols(), ErrStateLength)
	}

	return &State{layout: l, x: x}, nil
}

// VRe returns the real voltage part of bus.
func (s *State) VRe(bus int) float64 { return s.x[s.layout.ColVRe(bus)] }

// VIm returns the imaginary voltage part of bus.
func (s *State) VIm(bus int) float64 { return s.x[s.layout.ColVIm(bus)] }

// Status returns the continuous status of branch.
func (s *State) Status(branch int) float64 { return s.x[s.layout.ColStatus(branch)] }

// Vector returns a copy of the underlying state vector.
func (s *State) Vector() []float64 {
	out := make([]float64, len(s.x))
	copy(out, s.x)

	return out
}

// FlatStart returns the initial state: unit real voltage, zero imaginary
// voltage at every bus, and every branch status at its assumed value.
// The assumption is used unmodified.
func FlatStart(l *Layout, assumption []float64) ([]float64, error) {
	if err := validateAssumption(l, assumption); err != nil {
		return nil, fmt.Errorf("FlatStart: %w", err)
	}

	x := make([]float64, l.Cols())
	var bus int
	for bus = 1; bus <= l.Buses(); bus++ {
		x[l.ColVRe(bus)] = 1
	}
	copy(x[l.ColStatus(0):], assumption)

	return x, nil
}

func validateAssumption(l *Layout, assumption []float64) error {
	if len(assumption) != l.Branches() {
		return fmt.Errorf("len %d, want %d: %w", len(assumption), l.Branches(), ErrAssumption)
	}
	for e, v := range assumption {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("branch %d = %v: %w", e, v, ErrAssumption)
		}
	}

	return nil
}

func validateInitialState(l *Layout, x []float64) error {
	if len(x) != l.Cols() {
		return fmt.Errorf("len %d, want %d: %w", len(x), l.Cols(), ErrStateLength)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s = %v: %w", l.ColLabel(i), v, ErrNonFiniteState)
		}
	}

	return nil
}
