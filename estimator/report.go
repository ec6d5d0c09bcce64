// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/google/uuid"

	"github.com/katalvlaran/hachtel/measurement"
)

// BusEstimate is the estimated voltage of one bus.
type BusEstimate struct {
	Bus       int     `yaml:"bus"`
	VRe       float64 `yaml:"vre"`
	VIm       float64 `yaml:"vim"`
	Magnitude float64 `yaml:"magnitude"`
	AngleDeg  float64 `yaml:"angle_deg"`
}

// BranchEstimate is the estimated status and power flow of one branch.
// Flows include the status factor; From/To follow the branch orientation.
type BranchEstimate struct {
	Index      int     `yaml:"index"`
	ID         string  `yaml:"id"`
	Assumed    float64 `yaml:"assumed"`
	Status     float64 `yaml:"status"`
	Closed     bool    `yaml:"closed"`
	Normalized float64 `yaml:"normalized"`
	PFrom      float64 `yaml:"p_from"`
	QFrom      float64 `yaml:"q_from"`
	PTo        float64 `yaml:"p_to"`
	QTo        float64 `yaml:"q_to"`
}

// MeasurementEstimate compares one measurement with its model value at the
// estimated state.
type MeasurementEstimate struct {
	Label      string  `yaml:"label"`
	Measured   float64 `yaml:"measured"`
	Estimated  float64 `yaml:"estimated"`
	Residual   float64 `yaml:"residual"`
	Variance   float64 `yaml:"variance"`
	Normalized float64 `yaml:"normalized"`
}

// Report is the derived, human-oriented view of a Result.
type Report struct {
	RunID        uuid.UUID             `yaml:"run_id"`
	Status       Status                `yaml:"status"`
	Iterations   int                   `yaml:"iterations"`
	LastStepNorm float64               `yaml:"last_step_norm"`
	Buses        []BusEstimate         `yaml:"buses"`
	Branches     []BranchEstimate      `yaml:"branches"`
	Measurements []MeasurementEstimate `yaml:"measurements"`

	// Objective is Σ (z − h(x))² / σ² over measurements with non-zero variance.
	Objective float64 `yaml:"objective"`
}

// NewReport evaluates bus voltages, branch statuses and flows, and
// measurement residuals at the final state of res. Multiplier columns are
// filled only for converged runs. threshold splits closed (≥) from open.
//
// Errors: ErrNilResult; measurement.Predict failures (none for a layout that
// validated).
func NewReport(res *Result, threshold float64) (*Report, error) {
	if res == nil || res.layout == nil {
		return nil, ErrNilResult
	}
	l := res.layout
	st, err := NewState(l, res.State)
	if err != nil {
		return nil, fmt.Errorf("NewReport: %w", err)
	}

	rep := &Report{
		RunID:        res.RunID,
		Status:       res.Status,
		Iterations:   res.Iterations,
		LastStepNorm: res.LastStepNorm,
		Buses:        make([]BusEstimate, 0, l.Buses()),
		Branches:     make([]BranchEstimate, 0, l.Branches()),
		Measurements: make([]MeasurementEstimate, 0, len(l.Measurements())),
	}

	// Stage 1: buses.
	var bus int
	for bus = 1; bus <= l.Buses(); bus++ {
		v := complex(st.VRe(bus), st.VIm(bus))
		rep.Buses = append(rep.Buses, BusEstimate{
			Bus:       bus,
			VRe:       real(v),
			VIm:       imag(v),
			Magnitude: cmplx.Abs(v),
			AngleDeg:  cmplx.Phase(v) * 180 / math.Pi,
		})
	}

	// Stage 2: branches.
	net := l.Network()
	for e, br := range net.Branches() {
		be := BranchEstimate{
			Index:   e,
			ID:      br.ID,
			Assumed: res.Assumption[e],
			Status:  st.Status(e),
		}
		be.Closed = be.Status >= threshold
		if len(res.Normalized) == l.Branches() {
			be.Normalized = res.Normalized[e]
		}
		flows := [...]measurement.Measurement{
			measurement.Flow(measurement.Pf, br.From, br.To, 0, 0),
			measurement.Flow(measurement.Qf, br.From, br.To, 0, 0),
			measurement.Flow(measurement.Pf, br.To, br.From, 0, 0),
			measurement.Flow(measurement.Qf, br.To, br.From, 0, 0),
		}
		var vals [4]float64
		for k, m := range flows {
			if vals[k], err = measurement.Predict(net, st, m); err != nil {
				return nil, fmt.Errorf("NewReport: %w", err)
			}
		}
		be.PFrom, be.QFrom, be.PTo, be.QTo = vals[0], vals[1], vals[2], vals[3]
		rep.Branches = append(rep.Branches, be)
	}

	// Stage 3: measurements.
	for i, m := range l.Measurements() {
		pred, predErr := measurement.Predict(net, st, m)
		if predErr != nil {
			return nil, fmt.Errorf("NewReport: %w", predErr)
		}
		me := MeasurementEstimate{
			Label:     m.String(),
			Measured:  m.Value,
			Estimated: pred,
			Residual:  m.Value - pred,
			Variance:  m.Variance,
		}
		if len(res.RowNormalized) == l.Rows() {
			me.Normalized = res.RowNormalized[i]
		}
		if !m.Exact() {
			rep.Objective += me.Residual * me.Residual / m.Variance
		}
		rep.Measurements = append(rep.Measurements, me)
	}

	return rep, nil
}
