// SPDX-License-Identifier: MIT

package network

import "sort"

// Islands partitions the buses into connected components over the candidate
// branches, ignoring branch status. Each island is sorted ascending and the
// islands are ordered by their smallest bus.
//
// Breadth-first search from every unvisited bus, in ascending bus order.
// Complexity: O(N + E).
func (n *Network) Islands() [][]int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	visited := make([]bool, n.buses)
	islands := make([][]int, 0, 1)
	queue := make([]int, 0, n.buses)

	var start, head int
	for start = 1; start <= n.buses; start++ {
		if visited[start-1] {
			continue
		}
		visited[start-1] = true
		queue = append(queue[:0], start)
		island := make([]int, 0, 4)

		for head = 0; head < len(queue); head++ {
			bus := queue[head]
			island = append(island, bus)
			for _, nb := range n.adj[bus-1] {
				if visited[nb.Bus-1] {
					continue
				}
				visited[nb.Bus-1] = true
				queue = append(queue, nb.Bus)
			}
		}
		sort.Ints(island)
		islands = append(islands, island)
	}

	return islands
}

// Connected reports whether all buses lie in a single island.
func (n *Network) Connected() bool {
	return len(n.Islands()) == 1
}
