// SPDX-License-Identifier: MIT

package cases

import (
	"fmt"

	"github.com/katalvlaran/hachtel/network"
)

// Flip returns a copy of assumption with the status of every named branch
// replaced by 1 − status. It injects topology errors for tests and demos.
//
// Errors: network.ErrBadBranchID, network.ErrUnknownBranch, ErrSnapshotShape.
func Flip(net *network.Network, assumption []float64, ids ...string) ([]float64, error) {
	if len(assumption) != net.BranchCount() {
		return nil, fmt.Errorf("Flip: len %d, want %d: %w", len(assumption), net.BranchCount(), ErrSnapshotShape)
	}
	out := append([]float64(nil), assumption...)
	for _, id := range ids {
		idx, err := net.IndexOfID(id)
		if err != nil {
			return nil, fmt.Errorf("Flip: %w", err)
		}
		out[idx] = 1 - out[idx]
	}

	return out, nil
}
