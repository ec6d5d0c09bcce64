// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/hachtel/measurement"
	"github.com/katalvlaran/hachtel/network"
)

// Status is the state of the iterative solver.
type Status uint8

const (
	// StatusInitialized: state vector set, no iteration run yet.
	StatusInitialized Status = iota
	// StatusIterating: corrections are being applied.
	StatusIterating
	// StatusConverged: ‖δx‖ fell below tolerance after the first iteration.
	StatusConverged
	// StatusDiverged: the iteration cap was reached, or the state blew up.
	StatusDiverged
	// StatusSingular: the augmented matrix could not be factorized.
	StatusSingular
)

var statusNames = [...]string{
	StatusInitialized: "INITIALIZED",
	StatusIterating:   "ITERATING",
	StatusConverged:   "CONVERGED",
	StatusDiverged:    "DIVERGED",
	StatusSingular:    "SINGULAR",
}

// String returns the upper-case status name.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}

	return fmt.Sprintf("Status(%d)", uint8(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further iteration will happen.
func (s Status) Terminal() bool {
	return s == StatusConverged || s == StatusDiverged || s == StatusSingular
}

// Problem is the read-only input of one estimation run.
type Problem struct {
	// Network holds buses, candidate branches and admittances.
	Network *network.Network

	// Measurements in row order.
	Measurements measurement.Set

	// Assumption is the prior status of every branch in canonical order.
	Assumption []float64

	// Slack is the reference bus and SlackVoltage its fixed voltage.
	Slack        int
	SlackVoltage measurement.Voltage
}

// Result is the outcome of a run. Numerical failures are reported here
// through Status, never as errors.
type Result struct {
	// RunID identifies the run in logs.
	RunID uuid.UUID

	Status Status

	// Iterations is the number of linear solves performed.
	Iterations int

	// StepNorms holds ‖δx‖₂ of every solve in order.
	StepNorms []float64

	// LastStepNorm is the final entry of StepNorms, or +Inf before any solve.
	LastStepNorm float64

	// Condition is the condition number of the last factorized A (+Inf if singular).
	Condition float64

	// State is the final state vector [VRe; VIm; B].
	State []float64

	// Assumption echoes the topology assumption of the run.
	Assumption []float64

	// BranchIDs lists the branch identifiers in canonical order.
	BranchIDs []string

	// RowLabels names every constraint row (measurement, structural, operational).
	RowLabels []string

	// Multipliers is λ from the last solve, one per row. Set on CONVERGED.
	Multipliers []float64

	// RowNormalized is |λ_i|/sqrt(V_ii) for every row. Set on CONVERGED.
	RowNormalized []float64

	// Normalized is the operational slice of RowNormalized, one per branch.
	Normalized []float64

	// Diagnosis explains a SINGULAR run; nil otherwise.
	Diagnosis *Diagnosis

	layout *Layout
}

// Converged reports whether the run reached StatusConverged.
func (r *Result) Converged() bool {
	return r != nil && r.Status == StatusConverged
}

// Voltage returns the estimated voltage of bus.
func (r *Result) Voltage(bus int) (measurement.Voltage, error) {
	if r == nil || r.layout == nil {
		return measurement.Voltage{}, ErrNilResult
	}
	if !r.layout.Network().HasBus(bus) {
		return measurement.Voltage{}, fmt.Errorf("Voltage(%d): %w", bus, network.ErrUnknownBus)
	}

	return measurement.Voltage{
		Re: r.State[r.layout.ColVRe(bus)],
		Im: r.State[r.layout.ColVIm(bus)],
	}, nil
}

// BranchStatus returns the estimated status of the branch with the given id.
func (r *Result) BranchStatus(id string) (float64, error) {
	if r == nil || r.layout == nil {
		return 0, ErrNilResult
	}
	idx, err := r.layout.Network().IndexOfID(id)
	if err != nil {
		return 0, fmt.Errorf("BranchStatus: %w", err)
	}

	return r.State[r.layout.ColStatus(idx)], nil
}

// Layout returns the ordering the run used.
func (r *Result) Layout() *Layout {
	return r.layout
}
