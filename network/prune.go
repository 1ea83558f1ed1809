package network

import (
	"sort"

	"github.com/cartograph/cartograph/rng"
)

// CreatePrunedNetwork returns a new Network keeping at most maxEdges
// undirected edges. It allocates an NNodes² tie-break table and is only
// suitable for small graphs; callers are responsible for that choice.
//
// Edges strictly above the threshold weight are always kept. Edges at the
// threshold are kept based on a deterministic per-pair pseudorandom value
// drawn from a pre-materialised NNodes²-long table, so the result is
// reproducible for a fixed seed regardless of edge iteration order.
//
// If maxEdges is large enough that no edge would be removed, CreatePrunedNetwork
// returns a Network equal in content to n.
//
// Complexity: O(NEdges log NEdges) to rank weights, O(NNodes²) to
// materialise the tie-break table.
func (n *Network) CreatePrunedNetwork(maxEdges int, seed *rng.Rng) (*Network, error) {
	if maxEdges < 0 {
		return nil, invalidParameterf("maxEdges must be >= 0, got %d", maxEdges)
	}

	undirected := n.NEdges / 2
	if maxEdges >= undirected {
		return n.cloneTopology(), nil
	}

	rank := undirected - maxEdges
	// The threshold is the smallest weight among the top maxEdges entries of
	// the ascending weight list. With maxEdges == 0, rank equals the list
	// length; clamp to the last index rather than index past the end.
	weights := n.undirectedEdgeWeights()
	sort.Float64s(weights)
	idx := rank
	if idx < 0 {
		idx = 0
	}
	if idx >= len(weights) {
		idx = len(weights) - 1
	}
	threshold := weights[idx]

	countBelow := 0
	countAt := 0
	for _, w := range weights {
		switch {
		case w < threshold:
			countBelow++
		case w == threshold:
			countAt++
		}
	}
	countAbove := len(weights) - countBelow - countAt
	keepFromTies := maxEdges - countAbove
	if keepFromTies < 0 {
		keepFromTies = 0
	}
	if keepFromTies > countAt {
		keepFromTies = countAt
	}

	table := make([]float64, n.NNodes*n.NNodes)
	for i := range table {
		table[i] = seed.Uniform()
	}
	pairRandom := func(u, v int) float64 {
		lo, hi := u, v
		if lo > hi {
			lo, hi = hi, lo
		}

		return table[lo*n.NNodes+hi]
	}

	rThreshold := n.tieBreakThreshold(threshold, keepFromTies, pairRandom)

	return n.buildPruned(threshold, rThreshold, pairRandom)
}

// undirectedEdgeWeights returns the weight of each undirected edge once
// (from the i<j half of the adjacency).
func (n *Network) undirectedEdgeWeights() []float64 {
	out := make([]float64, 0, n.NEdges/2)
	for i := 0; i < n.NNodes; i++ {
		for k, j := range n.NeighborsOf(i) {
			if j > i {
				out = append(out, n.EdgeWeightsOf(i)[k])
			}
		}
	}

	return out
}

// tieBreakThreshold returns the r-value such that exactly keep of the
// threshold-weight undirected edges have pairRandom(u,v) >= the returned
// value. If keep <= 0, every tie is dropped (returns +Inf-like sentinel);
// if keep covers every tied edge, every tie is kept (returns -1, below any
// possible Uniform() draw).
func (n *Network) tieBreakThreshold(threshold float64, keep int, pairRandom func(u, v int) float64) float64 {
	if keep <= 0 {
		return 2 // no Uniform() draw is ever >= 2; every tie is dropped
	}

	var rValues []float64
	for i := 0; i < n.NNodes; i++ {
		for k, j := range n.NeighborsOf(i) {
			if j > i && n.EdgeWeightsOf(i)[k] == threshold {
				rValues = append(rValues, pairRandom(i, j))
			}
		}
	}
	if keep >= len(rValues) {
		return -1 // every Uniform() draw is >= -1; every tie is kept
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(rValues)))

	return rValues[keep-1]
}

// buildPruned assembles the CSR arrays for the pruned network: edges above
// threshold are always kept, edges at threshold are kept iff their
// pairRandom value is >= rThreshold. Node weights carry over from n
// unchanged (pruning only removes edges, never touches node weights) and
// n's self-link mass is folded in directly, since FromEdges only ever sees
// the filtered edge list and would otherwise reset both to their defaults.
func (n *Network) buildPruned(threshold, rThreshold float64, pairRandom func(u, v int) float64) (*Network, error) {
	var u, v []int
	var w []float64
	for i := 0; i < n.NNodes; i++ {
		for k, j := range n.NeighborsOf(i) {
			if j <= i {
				continue
			}
			wij := n.EdgeWeightsOf(i)[k]
			keep := wij > threshold || (wij == threshold && pairRandom(i, j) >= rThreshold)
			if !keep {
				continue
			}
			u = append(u, i)
			v = append(v, j)
			w = append(w, wij)
		}
	}

	pruned, err := FromEdges(n.NNodes, u, v, w, WithNodeWeights(n.NodeWeights))
	if err != nil {
		return nil, err
	}
	pruned.TotalEdgeWeightSelfLinks = n.TotalEdgeWeightSelfLinks

	return pruned, nil
}

// cloneTopology returns a Network with the same CSR arrays and node
// weights as n, copied rather than aliased.
func (n *Network) cloneTopology() *Network {
	return &Network{
		NNodes:                   n.NNodes,
		NEdges:                   n.NEdges,
		NodeWeights:              append([]float64(nil), n.NodeWeights...),
		FirstNeighborIndices:     append([]int(nil), n.FirstNeighborIndices...),
		Neighbors:                append([]int(nil), n.Neighbors...),
		EdgeWeights:              append([]float64(nil), n.EdgeWeights...),
		TotalEdgeWeightSelfLinks: n.TotalEdgeWeightSelfLinks,
	}
}
