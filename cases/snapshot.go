// SPDX-License-Identifier: MIT

package cases

import (
	"fmt"

	"github.com/katalvlaran/hachtel/measurement"
	"github.com/katalvlaran/hachtel/network"
)

// Snapshot is a known operating point: one voltage per bus (index bus-1) and
// one status per branch in canonical order. It implements measurement.State.
type Snapshot struct {
	Voltages []measurement.Voltage
	Statuses []float64
}

var _ measurement.State = Snapshot{}

// VRe returns the real voltage part of bus.
func (s Snapshot) VRe(bus int) float64 { return s.Voltages[bus-1].Re }

// VIm returns the imaginary voltage part of bus.
func (s Snapshot) VIm(bus int) float64 { return s.Voltages[bus-1].Im }

// Status returns the status of branch.
func (s Snapshot) Status(branch int) float64 { return s.Statuses[branch] }

// Vector flattens the snapshot into the estimator's column order
// [VRe(1..N); VIm(1..N); B(0..E-1)].
func (s Snapshot) Vector() []float64 {
	n := len(s.Voltages)
	x := make([]float64, 2*n+len(s.Statuses))
	for i, v := range s.Voltages {
		x[i] = v.Re
		x[n+i] = v.Im
	}
	copy(x[2*n:], s.Statuses)

	return x
}

// Check verifies the snapshot has one voltage per bus and one status per branch.
func (s Snapshot) Check(net *network.Network) error {
	if len(s.Voltages) != net.BusCount() || len(s.Statuses) != net.BranchCount() {
		return fmt.Errorf("%d voltages, %d statuses for %d buses, %d branches: %w",
			len(s.Voltages), len(s.Statuses), net.BusCount(), net.BranchCount(), ErrSnapshotShape)
	}

	return nil
}

// AllClosed returns a status vector of n ones.
func AllClosed(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
