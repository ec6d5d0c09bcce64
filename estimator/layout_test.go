// SPDX-License-Identifier: MIT

package estimator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hachtel/cases"
	"github.com/katalvlaran/hachtel/estimator"
	"github.com/katalvlaran/hachtel/measurement"
	"github.com/katalvlaran/hachtel/network"
)

func demoLayout(t *testing.T) (*cases.Case, *estimator.Layout) {
	t.Helper()
	c, err := cases.Demo()
	require.NoError(t, err)
	l, err := estimator.NewLayout(c.Network, c.Measurements, c.Slack)
	require.NoError(t, err)

	return c, l
}

func TestLayout_Ordering(t *testing.T) {
	_, l := demoLayout(t)

	assert.Equal(t, 2*4+5, l.Cols())
	assert.Equal(t, 12+2+5, l.Rows())
	assert.Equal(t, 2, l.ColVRe(3))
	assert.Equal(t, 6, l.ColVIm(3))
	assert.Equal(t, 12, l.ColStatus(4))
	assert.Equal(t, 12, l.RowSlackRe())
	assert.Equal(t, 13, l.RowSlackIm())
	assert.Equal(t, 18, l.RowStatus(4))

	assert.Equal(t, "Pf@3_4", l.RowLabel(10))
	assert.Equal(t, "slack.VRe@2", l.RowLabel(12))
	assert.Equal(t, "slack.VIm@2", l.RowLabel(13))
	assert.Equal(t, "status@3_4", l.RowLabel(18))
	assert.Equal(t, "VIm[4]", l.ColLabel(7))
	assert.Equal(t, "B[1_4]", l.ColLabel(9))

	assert.Equal(t, estimator.RowMeasurement, l.RowBlockOf(11))
	assert.Equal(t, estimator.RowStructural, l.RowBlockOf(13))
	assert.Equal(t, estimator.RowOperational, l.RowBlockOf(14))
	assert.Equal(t, []string{"1_2", "1_4", "2_3", "2_4", "3_4"}, l.BranchIDs())
}

func TestNewLayout_DataInconsistency(t *testing.T) {
	c, err := cases.Demo()
	require.NoError(t, err)

	_, err = estimator.NewLayout(c.Network, c.Measurements, 5)
	assert.ErrorIs(t, err, estimator.ErrDataInconsistency)
	assert.ErrorIs(t, err, estimator.ErrSlackBus)

	bad := append(measurement.Set{}, c.Measurements...)
	bad = append(bad, measurement.Flow(measurement.Pf, 1, 3, 0.1, 0.05))
	_, err = estimator.NewLayout(c.Network, bad, c.Slack)
	assert.ErrorIs(t, err, estimator.ErrDataInconsistency)
	assert.ErrorIs(t, err, network.ErrUnknownBranch)

	_, err = estimator.NewLayout(nil, c.Measurements, c.Slack)
	assert.ErrorIs(t, err, estimator.ErrNilNetwork)
}

func TestBuildJacobian_StructureAndDeterminism(t *testing.T) {
	c, l := demoLayout(t)
	x, err := estimator.FlatStart(l, c.Assumption)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1, 0}, x, "flat start keeps the assumption")

	st, err := estimator.NewState(l, x)
	require.NoError(t, err)
	h, err := estimator.BuildJacobian(l, st)
	require.NoError(t, err)

	rows, cols := h.Dims()
	assert.Equal(t, l.Rows(), rows)
	assert.Equal(t, l.Cols(), cols)

	// Structural rows: unit entries at the slack voltage columns only.
	for j := 0; j < cols; j++ {
		wantRe, wantIm := 0.0, 0.0
		if j == l.ColVRe(2) {
			wantRe = 1
		}
		if j == l.ColVIm(2) {
			wantIm = 1
		}
		assert.Equal(t, wantRe, h.At(l.RowSlackRe(), j))
		assert.Equal(t, wantIm, h.At(l.RowSlackIm(), j))
	}
	// Operational rows: identity on the status block.
	for e := 0; e < l.Branches(); e++ {
		for j := 0; j < cols; j++ {
			want := 0.0
			if j == l.ColStatus(e) {
				want = 1
			}
			assert.Equal(t, want, h.At(l.RowStatus(e), j))
		}
	}
	// P@1 does not depend on bus 3 (no line 1-3) nor on branches away from bus 1.
	assert.Zero(t, h.At(0, l.ColVRe(3)))
	assert.Zero(t, h.At(0, l.ColVIm(3)))
	assert.Zero(t, h.At(0, l.ColStatus(2)))
	// Bus kinds never touch another bus: V2@1.
	for j := 0; j < cols; j++ {
		if j != l.ColVRe(1) && j != l.ColVIm(1) {
			assert.Zero(t, h.At(6, j))
		}
	}

	again, err := estimator.BuildJacobian(l, st)
	require.NoError(t, err)
	assert.Equal(t, h.RawMatrix().Data, again.RawMatrix().Data)
}

func TestComputeMismatch(t *testing.T) {
	c, l := demoLayout(t)
	x, err := estimator.FlatStart(l, c.Assumption)
	require.NoError(t, err)
	st, err := estimator.NewState(l, x)
	require.NoError(t, err)

	dz, err := estimator.ComputeMismatch(l, st, c.SlackVoltage, c.Truth)
	require.NoError(t, err)
	require.Len(t, dz, l.Rows())

	assert.InDelta(t, 1.1-1.0, dz[6], 1e-15, "V2@1 at flat start")
	assert.InDelta(t, 0.3, dz[l.RowSlackRe()], 1e-15)
	assert.Zero(t, dz[l.RowSlackIm()])
	assert.Equal(t, []float64{0, 0, 0, 0, 1}, dz[l.RowStatus(0):], "truth minus the flipped flat start")

	// At a flat profile no power flows, so power residuals equal the observations.
	for i := 0; i < 6; i++ {
		assert.InDelta(t, c.Measurements[i].Value, dz[i], 1e-12, c.Measurements[i].String())
	}

	_, err = estimator.ComputeMismatch(l, st, c.SlackVoltage, []float64{1})
	assert.ErrorIs(t, err, estimator.ErrAssumption)
}

func TestCovariance(t *testing.T) {
	_, l := demoLayout(t)

	r, err := estimator.Covariance(l, nil, 100)
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		assert.Equal(t, 0.05, r[i])
	}
	assert.Equal(t, make([]float64, 7), r[12:], "structural and operational rows are exact")

	r, err = estimator.Covariance(l, []int{4}, 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, r[l.RowStatus(4)])
	assert.Zero(t, r[l.RowStatus(3)])

	_, err = estimator.Covariance(l, []int{5}, 100)
	assert.ErrorIs(t, err, estimator.ErrOptionViolation)
}

func TestNewState_Length(t *testing.T) {
	_, l := demoLayout(t)
	_, err := estimator.NewState(l, make([]float64, 3))
	assert.ErrorIs(t, err, estimator.ErrStateLength)

	_, err = estimator.FlatStart(l, []float64{1, 1, 1, 1, 2})
	assert.ErrorIs(t, err, estimator.ErrAssumption)
}
