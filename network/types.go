// Package network implements the immutable compressed-sparse-row (CSR)
// weighted-graph representation that every other package in this module
// builds on.
//
// A *Network is fully built by one of the constructors (FromEdges,
// FromAdjacency) and never mutated afterwards: normalisation, pruning,
// subnetwork extraction and reduction each return a *new* Network rather
// than editing one in place. A Network can therefore be safely read from
// multiple call sites, since nothing ever writes to it again after
// construction.
//
// Self-links (edges from a node to itself) are never stored in the CSR
// adjacency; their total weight is folded into TotalEdgeWeightSelfLinks, a
// single scalar. Self-links contribute only to the additive constant in the
// CPM/modularity quality function, never to a move gain.
package network

// Network is an immutable CSR-encoded undirected weighted graph.
//
// Invariants (checked by checkIntegrity when integrity checking is
// requested at construction time; never re-checked afterwards since the
// type is immutable):
//
//   - FirstNeighborIndices has length NNodes+1, is non-decreasing,
//     FirstNeighborIndices[0] == 0 and FirstNeighborIndices[NNodes] == NEdges.
//   - Neighbors has length NEdges; for each node i, the slice
//     Neighbors[FirstNeighborIndices[i]:FirstNeighborIndices[i+1]] is
//     strictly increasing and contains no value equal to i (no self-loops).
//   - EdgeWeights has length NEdges and is symmetric: if j appears in i's
//     slice with weight w, i appears in j's slice with the same weight.
//   - NEdges counts each undirected edge twice.
type Network struct {
	NNodes                   int
	NEdges                   int
	NodeWeights              []float64
	FirstNeighborIndices     []int
	Neighbors                []int
	EdgeWeights              []float64
	TotalEdgeWeightSelfLinks float64
}

// Degree returns the number of neighbours of node i.
//
// Complexity: O(1).
func (n *Network) Degree(i int) int {
	return n.FirstNeighborIndices[i+1] - n.FirstNeighborIndices[i]
}

// NeighborsOf returns node i's neighbour-id slice, ascending, no duplicates.
// The returned slice aliases Network's backing array and must not be
// mutated by the caller.
//
// Complexity: O(1).
func (n *Network) NeighborsOf(i int) []int {
	return n.Neighbors[n.FirstNeighborIndices[i]:n.FirstNeighborIndices[i+1]]
}

// EdgeWeightsOf returns node i's per-neighbour edge-weight slice, aligned
// index-for-index with NeighborsOf(i). The returned slice aliases Network's
// backing array and must not be mutated by the caller.
//
// Complexity: O(1).
func (n *Network) EdgeWeightsOf(i int) []float64 {
	return n.EdgeWeights[n.FirstNeighborIndices[i]:n.FirstNeighborIndices[i+1]]
}

// TotalNodeWeight returns the sum of all node weights.
//
// Complexity: O(NNodes).
func (n *Network) TotalNodeWeight() float64 {
	var total float64
	for _, w := range n.NodeWeights {
		total += w
	}

	return total
}

// TotalEdgeWeight returns half the sum of EdgeWeights — the total weight of
// the undirected edge set, excluding self-links.
//
// Complexity: O(NEdges).
func (n *Network) TotalEdgeWeight() float64 {
	var total float64
	for _, w := range n.EdgeWeights {
		total += w
	}

	return total / 2
}
