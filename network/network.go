// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"
	"sync"
)

// Method tags for error context.
const (
	methodNew       = "New"
	methodAddBranch = "AddBranch"
	methodBranch    = "Branch"
	methodNeighbors = "Neighbors"
	methodValidate  = "Validate"
)

// Network is a set of buses and candidate branches with symmetric admittance.
//
// The zero value is not usable; construct with New or FromAdmittanceMatrices.
type Network struct {
	mu sync.RWMutex // guards branches, index and adj

	buses    int
	branches []Branch        // canonical enumeration order
	index    map[pairKey]int // (from,to) and (to,from) → branch index
	adj      [][]Neighbor    // adj[bus-1], ascending branch index
}

// New returns an empty network with buses numbered 1..n.
// Complexity: O(n).
func New(n int) (*Network, error) {
	if n < 1 {
		return nil, fmt.Errorf("%s(%d): %w", methodNew, n, ErrTooFewBuses)
	}

	return &Network{
		buses: n,
		index: make(map[pairKey]int),
		adj:   make([][]Neighbor, n),
	}, nil
}

// AddBranch appends a candidate branch from→to with admittance g + j·b and
// returns its canonical index. The index is stable for the network's lifetime.
//
// Errors: ErrUnknownBus, ErrSelfLoop, ErrInvalidAdmittance, ErrDuplicateBranch.
// Complexity: O(1) amortized.
func (n *Network) AddBranch(from, to int, g, b float64) (int, error) {
	if err := n.checkBus(from); err != nil {
		return -1, fmt.Errorf("%s(%d→%d): %w", methodAddBranch, from, to, err)
	}
	if err := n.checkBus(to); err != nil {
		return -1, fmt.Errorf("%s(%d→%d): %w", methodAddBranch, from, to, err)
	}
	if from == to {
		return -1, fmt.Errorf("%s(%d→%d): %w", methodAddBranch, from, to, ErrSelfLoop)
	}
	if !isFinite(g) || !isFinite(b) {
		return -1, fmt.Errorf("%s(%d→%d): g=%v b=%v: %w", methodAddBranch, from, to, g, b, ErrInvalidAdmittance)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, dup := n.index[pairKey{from, to}]; dup {
		return -1, fmt.Errorf("%s(%d→%d): %w", methodAddBranch, from, to, ErrDuplicateBranch)
	}

	idx := len(n.branches)
	n.branches = append(n.branches, Branch{
		ID:   BranchID(from, to),
		From: from,
		To:   to,
		G:    g,
		B:    b,
	})
	n.index[pairKey{from, to}] = idx
	n.index[pairKey{to, from}] = idx
	n.adj[from-1] = append(n.adj[from-1], Neighbor{Branch: idx, Bus: to, G: g, B: b})
	n.adj[to-1] = append(n.adj[to-1], Neighbor{Branch: idx, Bus: from, G: g, B: b})

	return idx, nil
}

// BusCount returns N.
func (n *Network) BusCount() int {
	return n.buses
}

// BranchCount returns the number of candidate branches E.
func (n *Network) BranchCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.branches)
}

// Branch returns the branch at canonical index i.
func (n *Network) Branch(i int) (Branch, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if i < 0 || i >= len(n.branches) {
		return Branch{}, fmt.Errorf("%s(%d): %w", methodBranch, i, ErrUnknownBranch)
	}

	return n.branches[i], nil
}

// Branches returns a copy of all branches in canonical order.
func (n *Network) Branches() []Branch {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Branch, len(n.branches))
	copy(out, n.branches)

	return out
}

// IndexOf returns the canonical index of the branch joining from and to,
// in either orientation.
func (n *Network) IndexOf(from, to int) (int, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	idx, ok := n.index[pairKey{from, to}]

	return idx, ok
}

// IndexOfID resolves a "<from>_<to>" identifier to its canonical index.
// The reversed identifier resolves to the same branch.
func (n *Network) IndexOfID(id string) (int, error) {
	from, to, err := ParseBranchID(id)
	if err != nil {
		return -1, err
	}
	idx, ok := n.IndexOf(from, to)
	if !ok {
		return -1, fmt.Errorf("IndexOfID(%q): %w", id, ErrUnknownBranch)
	}

	return idx, nil
}

// Admittance returns (g, b) of the branch joining from and to. The result is
// identical for both orientations. ok is false when no candidate branch exists,
// which models "no physical line".
func (n *Network) Admittance(from, to int) (g, b float64, ok bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	idx, found := n.index[pairKey{from, to}]
	if !found {
		return 0, 0, false
	}
	br := n.branches[idx]

	return br.G, br.B, true
}

// Neighbors returns the branches incident to bus, oriented away from it,
// in ascending canonical branch order.
//
// Errors: ErrUnknownBus.
func (n *Network) Neighbors(bus int) ([]Neighbor, error) {
	if err := n.checkBus(bus); err != nil {
		return nil, fmt.Errorf("%s(%d): %w", methodNeighbors, bus, err)
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	src := n.adj[bus-1]
	out := make([]Neighbor, len(src))
	copy(out, src)

	return out, nil
}

// HasBus reports whether bus is in [1, N].
func (n *Network) HasBus(bus int) bool {
	return bus >= 1 && bus <= n.buses
}

// Validate checks the data-integrity preconditions of an estimation run:
// for N > 1 every bus must be touched by at least one candidate branch.
//
// Errors: ErrIsolatedBus (wrapped with the first offending bus).
func (n *Network) Validate() error {
	if n.buses == 1 {
		return nil
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	for i := 0; i < n.buses; i++ {
		if len(n.adj[i]) == 0 {
			return fmt.Errorf("%s: bus %d: %w", methodValidate, i+1, ErrIsolatedBus)
		}
	}

	return nil
}

func (n *Network) checkBus(bus int) error {
	if !n.HasBus(bus) {
		return fmt.Errorf("bus %d not in [1,%d]: %w", bus, n.buses, ErrUnknownBus)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
