// SPDX-License-Identifier: MIT

package network_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hachtel/network"
)

// ------------------------------------------------------------------------
// 1. Construction and validation.
// ------------------------------------------------------------------------

func TestNew_TooFewBuses(t *testing.T) {
	_, err := network.New(0)
	assert.ErrorIs(t, err, network.ErrTooFewBuses)
}

func TestAddBranch_Validation(t *testing.T) {
	net, err := network.New(3)
	require.NoError(t, err)

	_, err = net.AddBranch(0, 2, 1, -10)
	assert.ErrorIs(t, err, network.ErrUnknownBus, "bus 0 is outside [1,N]")

	_, err = net.AddBranch(1, 4, 1, -10)
	assert.ErrorIs(t, err, network.ErrUnknownBus, "bus 4 is outside [1,N]")

	_, err = net.AddBranch(2, 2, 1, -10)
	assert.ErrorIs(t, err, network.ErrSelfLoop)

	_, err = net.AddBranch(1, 2, math.NaN(), -10)
	assert.ErrorIs(t, err, network.ErrInvalidAdmittance)

	_, err = net.AddBranch(1, 2, 1, math.Inf(-1))
	assert.ErrorIs(t, err, network.ErrInvalidAdmittance)

	idx, err := net.AddBranch(1, 2, 1, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = net.AddBranch(2, 1, 1, -10)
	assert.ErrorIs(t, err, network.ErrDuplicateBranch, "reverse pair is the same branch")
}

// ------------------------------------------------------------------------
// 2. Canonical ordering and symmetric lookup.
// ------------------------------------------------------------------------

func TestCanonicalOrderAndLookup(t *testing.T) {
	net, err := network.New(4)
	require.NoError(t, err)

	pairs := [][2]int{{1, 2}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}
	for i, p := range pairs {
		idx, addErr := net.AddBranch(p[0], p[1], 0.1*float64(i+1), -float64(i+1))
		require.NoError(t, addErr)
		assert.Equal(t, i, idx, "indices follow insertion order")
	}

	ids := make([]string, 0, len(pairs))
	for _, br := range net.Branches() {
		ids = append(ids, br.ID)
	}
	assert.Equal(t, []string{"1_2", "1_4", "2_3", "2_4", "3_4"}, ids)

	for i, p := range pairs {
		fwd, ok := net.IndexOf(p[0], p[1])
		require.True(t, ok)
		rev, ok := net.IndexOf(p[1], p[0])
		require.True(t, ok)
		assert.Equal(t, i, fwd)
		assert.Equal(t, fwd, rev)

		g1, b1, ok := net.Admittance(p[0], p[1])
		require.True(t, ok)
		g2, b2, ok := net.Admittance(p[1], p[0])
		require.True(t, ok)
		assert.Equal(t, g1, g2, "conductance is symmetric")
		assert.Equal(t, b1, b2, "susceptance is symmetric")
	}

	_, _, ok := net.Admittance(1, 3)
	assert.False(t, ok, "absent pair has no admittance")

	idx, err := net.IndexOfID("4_3")
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	_, err = net.IndexOfID("1_3")
	assert.ErrorIs(t, err, network.ErrUnknownBranch)
}

func TestNeighbors_OrderedByBranchIndex(t *testing.T) {
	net, err := network.New(4)
	require.NoError(t, err)
	_, _ = net.AddBranch(2, 4, 0, -1)
	_, _ = net.AddBranch(1, 2, 0, -2)
	_, _ = net.AddBranch(3, 2, 0, -3)

	nbs, err := net.Neighbors(2)
	require.NoError(t, err)
	require.Len(t, nbs, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{nbs[0].Branch, nbs[1].Branch, nbs[2].Branch})
	assert.Equal(t, []int{4, 1, 3}, []int{nbs[0].Bus, nbs[1].Bus, nbs[2].Bus})

	_, err = net.Neighbors(5)
	assert.ErrorIs(t, err, network.ErrUnknownBus)
}

func TestParseBranchID(t *testing.T) {
	from, to, err := network.ParseBranchID("3_4")
	require.NoError(t, err)
	assert.Equal(t, 3, from)
	assert.Equal(t, 4, to)

	for _, bad := range []string{"", "3", "3-4", "a_4", "3_b", "1_2_3"} {
		_, _, err = network.ParseBranchID(bad)
		assert.ErrorIs(t, err, network.ErrBadBranchID, "id %q", bad)
	}
	assert.Equal(t, "12_7", network.BranchID(12, 7))
}

// ------------------------------------------------------------------------
// 3. Matrix ingestion and the symmetry precondition.
// ------------------------------------------------------------------------

func TestFromAdmittanceMatrices(t *testing.T) {
	g := [][]float64{
		{0, 0.1, 0},
		{0.1, 0, 0.2},
		{0, 0.2, 0},
	}
	b := [][]float64{
		{0, -10, 0},
		{-10, 0, -5},
		{0, -5, 0},
	}
	net, err := network.FromAdmittanceMatrices(g, b)
	require.NoError(t, err)
	assert.Equal(t, 3, net.BusCount())
	assert.Equal(t, 2, net.BranchCount())

	br, err := net.Branch(1)
	require.NoError(t, err)
	assert.Equal(t, network.Branch{ID: "2_3", From: 2, To: 3, G: 0.2, B: -5}, br)

	_, err = net.Branch(2)
	assert.ErrorIs(t, err, network.ErrUnknownBranch)
}

func TestFromAdmittanceMatrices_Asymmetric(t *testing.T) {
	g := [][]float64{{0, 0.1}, {0.1, 0}}
	b := [][]float64{{0, -10}, {-9, 0}}
	_, err := network.FromAdmittanceMatrices(g, b)
	assert.ErrorIs(t, err, network.ErrAsymmetricAdmittance)

	g = [][]float64{{0, 0.1}, {0.2, 0}}
	b = [][]float64{{0, -10}, {-10, 0}}
	_, err = network.FromAdmittanceMatrices(g, b)
	assert.ErrorIs(t, err, network.ErrAsymmetricAdmittance)
}

func TestFromAdmittanceMatrices_Shape(t *testing.T) {
	_, err := network.FromAdmittanceMatrices(nil, nil)
	assert.ErrorIs(t, err, network.ErrTooFewBuses)

	_, err = network.FromAdmittanceMatrices([][]float64{{0, 1}, {1, 0}}, [][]float64{{0, 1}})
	assert.ErrorIs(t, err, network.ErrDimensionMismatch)

	_, err = network.FromAdmittanceMatrices([][]float64{{0, 1}, {1}}, [][]float64{{0, 1}, {1, 0}})
	assert.ErrorIs(t, err, network.ErrDimensionMismatch)

	_, err = network.FromAdmittanceMatrices([][]float64{{0, math.NaN()}, {math.NaN(), 0}}, [][]float64{{0, 1}, {1, 0}})
	assert.ErrorIs(t, err, network.ErrInvalidAdmittance)
}

// ------------------------------------------------------------------------
// 4. Connectivity.
// ------------------------------------------------------------------------

func TestIslandsAndValidate(t *testing.T) {
	net, err := network.New(5)
	require.NoError(t, err)
	_, _ = net.AddBranch(1, 2, 0, -1)
	_, _ = net.AddBranch(4, 3, 0, -1)

	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, net.Islands())
	assert.False(t, net.Connected())
	assert.ErrorIs(t, net.Validate(), network.ErrIsolatedBus, "bus 5 has no branch")

	_, _ = net.AddBranch(2, 3, 0, -1)
	_, _ = net.AddBranch(5, 1, 0, -1)
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}}, net.Islands())
	assert.True(t, net.Connected())
	assert.NoError(t, net.Validate())
}

func TestValidate_SingleBus(t *testing.T) {
	net, err := network.New(1)
	require.NoError(t, err)
	assert.NoError(t, net.Validate())
}
