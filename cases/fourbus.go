// SPDX-License-Identifier: MIT

package cases

import (
	"github.com/katalvlaran/hachtel/measurement"
	"github.com/katalvlaran/hachtel/network"
)

// fourBusG and fourBusB are the per-pair conductance and susceptance of the
// four-bus system. Pair (1,3) has no line.
var (
	fourBusG = [][]float64{
		{0, 0.09999, 0, 0.049995},
		{0.09999, 0, 0.011111, 0.124922},
		{0, 0.011111, 0, 0.09999},
		{0.049995, 0.124922, 0.09999, 0},
	}
	fourBusB = [][]float64{
		{0, -9.999, 0, -4.9995},
		{-9.999, 0, -3.333296, -4.996877},
		{0, -3.333296, 0, -9.999},
		{-4.9995, -4.996877, -9.999, 0},
	}
)

const (
	fourBusSlack    = 2
	fourBusVariance = 0.05
)

// FlippedDemoBranch is the branch whose status the demonstration case gets wrong.
const FlippedDemoBranch = "3_4"

// FourBus returns the four-bus network with candidate branches, in canonical
// order, 1_2, 1_4, 2_3, 2_4, 3_4.
func FourBus() (*network.Network, error) {
	return network.FromAdmittanceMatrices(fourBusG, fourBusB)
}

// Demo returns the demonstration case: twelve field measurements of the
// four-bus system, slack bus 2 fixed at 1.3 + j0, and an assumption that
// wrongly reports branch 3_4 as open.
func Demo() (*Case, error) {
	net, err := FourBus()
	if err != nil {
		return nil, err
	}
	c := &Case{
		Name:    "demo",
		Network: net,
		Measurements: measurement.Set{
			measurement.Injection(measurement.P, 1, 3.0, fourBusVariance),
			measurement.Injection(measurement.P, 2, 2.0, fourBusVariance),
			measurement.Injection(measurement.P, 3, -1.5, fourBusVariance),
			measurement.Injection(measurement.P, 4, -3.0, fourBusVariance),
			measurement.Injection(measurement.Q, 3, -1.0, fourBusVariance),
			measurement.Injection(measurement.Q, 4, -1.0, fourBusVariance),
			measurement.VoltageSquared(1, 1.1, fourBusVariance),
			measurement.VoltageSquared(4, 1.03298, fourBusVariance),
			measurement.Flow(measurement.Pf, 2, 3, 1.153624, fourBusVariance),
			measurement.Flow(measurement.Pf, 2, 4, 1.588139, fourBusVariance),
			measurement.Flow(measurement.Pf, 3, 4, -0.348346, fourBusVariance),
			measurement.Flow(measurement.Qf, 1, 2, -2.158516, fourBusVariance),
		},
		Truth:        AllClosed(net.BranchCount()),
		Slack:        fourBusSlack,
		SlackVoltage: measurement.Voltage{Re: 1.3},
	}

	return c.WithFlipped(FlippedDemoBranch)
}

// FourBusSnapshot is a plausible operating point of the four-bus system with
// every branch closed and bus 2 at 1 + j0.
func FourBusSnapshot() Snapshot {
	return Snapshot{
		Voltages: []measurement.Voltage{
			{Re: 1.05, Im: -0.05},
			{Re: 1.0, Im: 0},
			{Re: 0.97, Im: -0.08},
			{Re: 0.98, Im: -0.06},
		},
		Statuses: AllClosed(5),
	}
}

// FourBusPlan places the twelve demonstration meters (values left at zero).
func FourBusPlan() measurement.Set {
	return measurement.Set{
		measurement.Injection(measurement.P, 1, 0, fourBusVariance),
		measurement.Injection(measurement.P, 2, 0, fourBusVariance),
		measurement.Injection(measurement.P, 3, 0, fourBusVariance),
		measurement.Injection(measurement.P, 4, 0, fourBusVariance),
		measurement.Injection(measurement.Q, 3, 0, fourBusVariance),
		measurement.Injection(measurement.Q, 4, 0, fourBusVariance),
		measurement.VoltageSquared(1, 0, fourBusVariance),
		measurement.VoltageSquared(4, 0, fourBusVariance),
		measurement.Flow(measurement.Pf, 2, 3, 0, fourBusVariance),
		measurement.Flow(measurement.Pf, 2, 4, 0, fourBusVariance),
		measurement.Flow(measurement.Pf, 3, 4, 0, fourBusVariance),
		measurement.Flow(measurement.Qf, 1, 2, 0, fourBusVariance),
	}
}

// FourBusRoundTrip encodes FourBusSnapshot through FourBusPlan. With zero
// amplitude the measurements are exact model values.
func FourBusRoundTrip(opts SynthOptions) (*Case, error) {
	net, err := FourBus()
	if err != nil {
		return nil, err
	}
	snap := FourBusSnapshot()
	ms, err := Synthesize(net, snap, FourBusPlan(), opts)
	if err != nil {
		return nil, err
	}

	return &Case{
		Name:         "fourbus",
		Network:      net,
		Measurements: ms,
		Truth:        append([]float64(nil), snap.Statuses...),
		Assumption:   append([]float64(nil), snap.Statuses...),
		Slack:        fourBusSlack,
		SlackVoltage: snap.Voltages[fourBusSlack-1],
	}, nil
}
