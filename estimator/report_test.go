package estimator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hachtel/estimator"
)

func TestNewReport_RoundTrip(t *testing.T) {
	c := roundTripCase(t)
	res, err := estimator.Estimate(c.Problem())
	require.NoError(t, err)
	require.True(t, res.Converged())

	rep, err := estimator.NewReport(res, estimator.DefaultStatusThreshold)
	require.NoError(t, err)
	assert.Equal(t, res.RunID, rep.RunID)
	assert.Equal(t, estimator.StatusConverged, rep.Status)

	require.Len(t, rep.Buses, 4)
	b3 := rep.Buses[2]
	assert.Equal(t, 3, b3.Bus)
	assert.InDelta(t, math.Hypot(0.97, -0.08), b3.Magnitude, 1e-9)
	assert.InDelta(t, math.Atan2(-0.08, 0.97)*180/math.Pi, b3.AngleDeg, 1e-7)
	assert.InDelta(t, 0, rep.Buses[1].AngleDeg, 1e-9, "slack angle")

	require.Len(t, rep.Branches, 5)
	net := c.Network
	for e, br := range rep.Branches {
		assert.True(t, br.Closed, br.ID)
		assert.Equal(t, e, br.Index)

		// Series losses: P_from + P_to = g·|V_from − V_to|².
		line := net.Branches()[e]
		vf, err := res.Voltage(line.From)
		require.NoError(t, err)
		vt, err := res.Voltage(line.To)
		require.NoError(t, err)
		dRe, dIm := vf.Re-vt.Re, vf.Im-vt.Im
		assert.InDelta(t, line.G*(dRe*dRe+dIm*dIm), br.PFrom+br.PTo, 1e-9, br.ID)
	}

	// Pf@2_3 is metered in the plan.
	pf23 := rep.Measurements[8]
	assert.Equal(t, "Pf@2_3", pf23.Label)
	assert.InDelta(t, pf23.Measured, rep.Branches[2].PFrom, 1e-9)

	require.Len(t, rep.Measurements, len(c.Measurements))
	for _, m := range rep.Measurements {
		assert.InDelta(t, 0, m.Residual, 1e-8, m.Label)
	}
	assert.InDelta(t, 0, rep.Objective, 1e-10)
}

func TestNewReport_FlippedBranch(t *testing.T) {
	c, err := roundTripCase(t).WithFlipped("3_4")
	require.NoError(t, err)
	res, err := estimator.Estimate(c.Problem())
	require.NoError(t, err)

	rep, err := estimator.NewReport(res, estimator.DefaultStatusThreshold)
	require.NoError(t, err)

	br := rep.Branches[4]
	assert.Equal(t, "3_4", br.ID)
	assert.False(t, br.Closed)
	assert.Equal(t, 0.0, br.Assumed)
	assert.InDelta(t, 1.2042, br.Normalized, 1e-3)
	assert.InDelta(t, 0, br.PFrom, 1e-9, "open branch carries no flow")
	assert.Greater(t, rep.Objective, 0.0)
}

func TestNewReport_NotConverged(t *testing.T) {
	res, err := estimator.Estimate(roundTripCase(t).Problem(), estimator.WithMaxIterations(1))
	require.NoError(t, err)
	require.Equal(t, estimator.StatusDiverged, res.Status)

	rep, err := estimator.NewReport(res, estimator.DefaultStatusThreshold)
	require.NoError(t, err)
	for _, br := range rep.Branches {
		assert.Zero(t, br.Normalized)
	}
	for _, m := range rep.Measurements {
		assert.Zero(t, m.Normalized)
	}
}

func TestNewReport_Nil(t *testing.T) {
	_, err := estimator.NewReport(nil, 0.5)
	assert.ErrorIs(t, err, estimator.ErrNilResult)

	_, err = estimator.NewReport(&estimator.Result{}, 0.5)
	assert.ErrorIs(t, err, estimator.ErrNilResult)
}
