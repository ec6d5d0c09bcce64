// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"strconv"
	"strings"
)

// branchIDSep separates the two bus numbers of a branch identifier ("3_4").
const branchIDSep = "_"

// Branch is one candidate connection between two buses.
//
// From/To keep the orientation the branch was declared with; the admittance
// is shared by both directions.
type Branch struct {
	// ID is the canonical identifier "<From>_<To>".
	ID string

	// From and To are bus numbers in [1, N].
	From int
	To   int

	// G is the series conductance (real part of the admittance), per-unit.
	G float64

	// B is the series susceptance (imaginary part of the admittance), per-unit.
	B float64
}

// Other returns the far end of the branch as seen from bus, and false when
// bus is not an endpoint.
func (br Branch) Other(bus int) (int, bool) {
	switch bus {
	case br.From:
		return br.To, true
	case br.To:
		return br.From, true
	default:
		return 0, false
	}
}

// Neighbor describes a branch incident to a bus, oriented away from that bus.
type Neighbor struct {
	// Branch is the canonical index of the candidate branch.
	Branch int

	// Bus is the far-end bus number.
	Bus int

	// G and B are the branch admittance parts.
	G float64
	B float64
}

// pairKey is an ordered bus pair used for O(1) branch lookup.
// Both orientations of every branch are stored.
type pairKey struct {
	from int
	to   int
}

// BranchID formats the canonical identifier of the branch from→to.
func BranchID(from, to int) string {
	return strconv.Itoa(from) + branchIDSep + strconv.Itoa(to)
}

// ParseBranchID splits "<from>_<to>" into its two bus numbers.
// It does not check that the buses exist in any network.
func ParseBranchID(id string) (from, to int, err error) {
	parts := strings.Split(id, branchIDSep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("ParseBranchID(%q): %w", id, ErrBadBranchID)
	}
	if from, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("ParseBranchID(%q): %w", id, ErrBadBranchID)
	}
	if to, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("ParseBranchID(%q): %w", id, ErrBadBranchID)
	}

	return from, to, nil
}
