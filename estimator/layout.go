// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"

	"github.com/katalvlaran/hachtel/measurement"
	"github.com/katalvlaran/hachtel/network"
)

// RowBlock names a block of rows of the Jacobian and the mismatch vector.
type RowBlock uint8

const (
	// RowMeasurement rows hold one measurement each, in set order.
	RowMeasurement RowBlock = iota
	// RowStructural rows pin the slack voltage (real, then imaginary).
	RowStructural
	// RowOperational rows tie each branch status to its assumed value.
	RowOperational
)

// String returns "measurement", "structural" or "operational".
func (b RowBlock) String() string {
	switch b {
	case RowMeasurement:
		return "measurement"
	case RowStructural:
		return "structural"
	case RowOperational:
		return "operational"
	default:
		return fmt.Sprintf("RowBlock(%d)", uint8(b))
	}
}

// Layout is the single canonical ordering of state columns and constraint
// rows shared by the Jacobian, the mismatch vector and the covariance.
//
// Columns: VRe[1..N], VIm[1..N], B[0..E-1].
// Rows:    measurements 0..m-1, slack VRe at m, slack VIm at m+1, B[e] at m+2+e.
//
// A Layout is immutable and safe for concurrent use. It keeps references to
// the network and the measurement set, which must not change during a run.
type Layout struct {
	net   *network.Network
	ms    measurement.Set
	slack int

	buses    int
	branches int
}

// NewLayout validates the inputs against each other and fixes the ordering.
//
// Errors: ErrNilNetwork, ErrSlackBus, and the measurement/network sentinels
// from Set.Validate; all wrapped with ErrDataInconsistency.
func NewLayout(net *network.Network, ms measurement.Set, slack int) (*Layout, error) {
	if net == nil {
		return nil, fmt.Errorf("NewLayout: %w: %w", ErrDataInconsistency, ErrNilNetwork)
	}
	if !net.HasBus(slack) {
		return nil, fmt.Errorf("NewLayout: slack bus %d: %w: %w", slack, ErrDataInconsistency, ErrSlackBus)
	}
	if err := ms.Validate(net); err != nil {
		return nil, fmt.Errorf("NewLayout: %w: %w", ErrDataInconsistency, err)
	}

	return &Layout{
		net:      net,
		ms:       ms,
		slack:    slack,
		buses:    net.BusCount(),
		branches: net.BranchCount(),
	}, nil
}

// Network returns the network the layout was built for.
func (l *Layout) Network() *network.Network { return l.net }

// Measurements returns the measurement set in row order.
func (l *Layout) Measurements() measurement.Set { return l.ms }

// Slack returns the slack bus number.
func (l *Layout) Slack() int { return l.slack }

// Buses returns N.
func (l *Layout) Buses() int { return l.buses }

// Branches returns E.
func (l *Layout) Branches() int { return l.branches }

// Cols returns the state length 2N+E.
func (l *Layout) Cols() int { return 2*l.buses + l.branches }

// Rows returns m+2+E.
func (l *Layout) Rows() int { return len(l.ms) + 2 + l.branches }

// ColVRe returns the column of VRe[bus].
func (l *Layout) ColVRe(bus int) int { return bus - 1 }

// ColVIm returns the column of VIm[bus].
func (l *Layout) ColVIm(bus int) int { return l.buses + bus - 1 }

// ColStatus returns the column of B[branch].
func (l *Layout) ColStatus(branch int) int { return 2*l.buses + branch }

// Col maps a model variable to its column.
func (l *Layout) Col(v measurement.Var) int {
	switch v.Block {
	case measurement.BlockVRe:
		return l.ColVRe(v.Index)
	case measurement.BlockVIm:
		return l.ColVIm(v.Index)
	default:
		return l.ColStatus(v.Index)
	}
}

// RowSlackRe returns the structural row of the slack real voltage.
func (l *Layout) RowSlackRe() int { return len(l.ms) }

// RowSlackIm returns the structural row of the slack imaginary voltage.
func (l *Layout) RowSlackIm() int { return len(l.ms) + 1 }

// RowStatus returns the operational row of branch.
func (l *Layout) RowStatus(branch int) int { return len(l.ms) + 2 + branch }

// RowBlockOf returns the block that row belongs to.
func (l *Layout) RowBlockOf(row int) RowBlock {
	switch {
	case row < len(l.ms):
		return RowMeasurement
	case row < len(l.ms)+2:
		return RowStructural
	default:
		return RowOperational
	}
}

// RowLabel names a row for logs and reports: "P@1", "slack.VRe@2",
// "status@3_4".
func (l *Layout) RowLabel(row int) string {
	switch {
	case row < 0 || row >= l.Rows():
		return fmt.Sprintf("row(%d)", row)
	case row < len(l.ms):
		return l.ms[row].String()
	case row == l.RowSlackRe():
		return fmt.Sprintf("slack.VRe@%d", l.slack)
	case row == l.RowSlackIm():
		return fmt.Sprintf("slack.VIm@%d", l.slack)
	default:
		br, _ := l.net.Branch(row - len(l.ms) - 2)

		return "status@" + br.ID
	}
}

// ColLabel names a column: "VRe[3]", "VIm[3]", "B[3_4]".
func (l *Layout) ColLabel(col int) string {
	switch {
	case col < 0 || col >= l.Cols():
		return fmt.Sprintf("col(%d)", col)
	case col < l.buses:
		return fmt.Sprintf("VRe[%d]", col+1)
	case col < 2*l.buses:
		return fmt.Sprintf("VIm[%d]", col-l.buses+1)
	default:
		br, _ := l.net.Branch(col - 2*l.buses)

		return "B[" + br.ID + "]"
	}
}

// BranchIDs returns the branch identifiers in canonical order.
func (l *Layout) BranchIDs() []string {
	brs := l.net.Branches()
	out := make([]string, len(brs))
	for i, br := range brs {
		out[i] = br.ID
	}

	return out
}
