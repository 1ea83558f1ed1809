package network

import "sort"

// Option configures a Network constructor: explicit or edge-derived node
// weights, pre-sorted input, or skipping the integrity check.
type Option func(*config)

type config struct {
	nodeWeights      []float64
	weightsFromEdges bool
	sorted           bool
	checkIntegrity   bool
}

func newConfig(opts ...Option) *config {
	cfg := &config{checkIntegrity: true}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithNodeWeights supplies explicit per-node weights. Mutually exclusive
// with WithNodeWeightsFromEdges; if both are given, the last one applied
// wins.
func WithNodeWeights(w []float64) Option {
	return func(cfg *config) {
		cfg.nodeWeights = w
		cfg.weightsFromEdges = false
	}
}

// WithNodeWeightsFromEdges sets each node's weight to the sum of its
// incident edge weights (excluding self-links).
func WithNodeWeightsFromEdges() Option {
	return func(cfg *config) {
		cfg.weightsFromEdges = true
		cfg.nodeWeights = nil
	}
}

// WithSorted tells the constructor the edge list is already symmetrised
// (both (u,v) and (v,u) present for u != v) and lexicographically sorted by
// (u,v), skipping that O(E log E) preprocessing step.
func WithSorted() Option {
	return func(cfg *config) { cfg.sorted = true }
}

// WithoutIntegrityCheck skips the O(NNodes+NEdges) post-construction
// validation pass. Use only when the caller has already established the
// invariants by construction (e.g. output of another package function in
// this module).
func WithoutIntegrityCheck() Option {
	return func(cfg *config) { cfg.checkIntegrity = false }
}

// rawEdge is a directed (from,to,weight) triple used while assembling CSR
// arrays.
type rawEdge struct {
	from, to int
	weight   float64
}

// FromEdges builds a Network from an edge list. u, v and (optionally) w
// must have equal length; a nil w defaults every edge weight to 1.
//
// When the edge list is not already sorted (WithSorted not given), the
// builder symmetrises it — emitting both (u,v) and (v,u) for u != v — then
// sorts lexicographically by (from,to) and merges duplicate directed edges
// by summing their weights. Self-links (u == v) are never stored in the
// CSR; their weights accumulate into TotalEdgeWeightSelfLinks.
//
// Complexity: O(E log E) when sorting is required, O(NNodes+NEdges)
// otherwise.
func FromEdges(nNodes int, u, v []int, w []float64, opts ...Option) (*Network, error) {
	if nNodes < 0 {
		return nil, invalidParameterf("nNodes must be >= 0, got %d", nNodes)
	}
	if len(u) != len(v) {
		return nil, invalidParameterf("u and v must have equal length (%d != %d)", len(u), len(v))
	}
	if w != nil && len(w) != len(u) {
		return nil, invalidParameterf("w must have the same length as u/v (%d != %d)", len(w), len(u))
	}

	cfg := newConfig(opts...)

	var selfLinkWeight float64
	edges := make([]rawEdge, 0, 2*len(u))
	for i := range u {
		from, to := u[i], v[i]
		if from < 0 || from >= nNodes || to < 0 || to >= nNodes {
			return nil, invalidParameterf("edge endpoint out of range [0,%d): (%d,%d)", nNodes, from, to)
		}
		weight := 1.0
		if w != nil {
			weight = w[i]
		}
		if from == to {
			selfLinkWeight += weight

			continue
		}
		edges = append(edges, rawEdge{from, to, weight})
		if !cfg.sorted {
			edges = append(edges, rawEdge{to, from, weight})
		}
	}

	if !cfg.sorted {
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].from != edges[j].from {
				return edges[i].from < edges[j].from
			}

			return edges[i].to < edges[j].to
		})
		edges = mergeDuplicateEdges(edges)
	}

	firstNeighborIndices, neighbors, edgeWeights, err := edgesToCSR(nNodes, edges)
	if err != nil {
		return nil, err
	}

	n := &Network{
		NNodes:                   nNodes,
		NEdges:                   len(neighbors),
		FirstNeighborIndices:     firstNeighborIndices,
		Neighbors:                neighbors,
		EdgeWeights:              edgeWeights,
		TotalEdgeWeightSelfLinks: selfLinkWeight,
	}
	if err := assignNodeWeights(n, cfg); err != nil {
		return nil, err
	}

	if cfg.checkIntegrity {
		if err := checkIntegrity(n); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// mergeDuplicateEdges sums the weights of adjacent equal (from,to) pairs in
// a sorted edge slice, so the CSR builder never emits duplicate neighbours.
func mergeDuplicateEdges(edges []rawEdge) []rawEdge {
	if len(edges) == 0 {
		return edges
	}

	merged := edges[:1]
	for _, e := range edges[1:] {
		last := &merged[len(merged)-1]
		if last.from == e.from && last.to == e.to {
			last.weight += e.weight

			continue
		}
		merged = append(merged, e)
	}

	return merged
}

// edgesToCSR streams a sorted, symmetrised, duplicate-free edge list into
// CSR arrays.
func edgesToCSR(nNodes int, edges []rawEdge) (firstNeighborIndices, neighbors []int, edgeWeights []float64, err error) {
	firstNeighborIndices = make([]int, nNodes+1)
	neighbors = make([]int, len(edges))
	edgeWeights = make([]float64, len(edges))

	node := 0
	for i, e := range edges {
		for node < e.from {
			node++
			firstNeighborIndices[node] = i
		}
		neighbors[i] = e.to
		edgeWeights[i] = e.weight
	}
	for node < nNodes {
		node++
		firstNeighborIndices[node] = len(edges)
	}

	return firstNeighborIndices, neighbors, edgeWeights, nil
}

// assignNodeWeights fills n.NodeWeights per the resolved config: explicit
// weights, weights derived from incident edges, or the default of 1.
func assignNodeWeights(n *Network, cfg *config) error {
	switch {
	case cfg.weightsFromEdges:
		n.NodeWeights = make([]float64, n.NNodes)
		for i := 0; i < n.NNodes; i++ {
			var total float64
			for _, w := range n.EdgeWeightsOf(i) {
				total += w
			}
			n.NodeWeights[i] = total
		}
	case cfg.nodeWeights != nil:
		if len(cfg.nodeWeights) != n.NNodes {
			return invalidParameterf("node weights length %d != NNodes %d", len(cfg.nodeWeights), n.NNodes)
		}
		n.NodeWeights = append([]float64(nil), cfg.nodeWeights...)
	default:
		n.NodeWeights = make([]float64, n.NNodes)
		for i := range n.NodeWeights {
			n.NodeWeights[i] = 1
		}
	}

	return nil
}

// FromAdjacency builds a Network directly from pre-built CSR arrays. The
// caller-supplied slices are copied, never aliased, so the resulting
// Network is safe to treat as immutable regardless of what the caller does
// with its own copies afterwards.
//
// Complexity: O(NNodes+NEdges), plus the integrity check's cost when
// requested.
func FromAdjacency(nNodes int, firstNeighborIndices, neighbors []int, edgeWeights []float64, selfLinkWeight float64, opts ...Option) (*Network, error) {
	if nNodes < 0 {
		return nil, invalidParameterf("nNodes must be >= 0, got %d", nNodes)
	}
	if len(firstNeighborIndices) != nNodes+1 {
		return nil, invalidParameterf("firstNeighborIndices length %d != NNodes+1 (%d)", len(firstNeighborIndices), nNodes+1)
	}
	if len(neighbors) != len(edgeWeights) {
		return nil, invalidParameterf("neighbors length %d != edgeWeights length %d", len(neighbors), len(edgeWeights))
	}

	cfg := newConfig(opts...)

	n := &Network{
		NNodes:                   nNodes,
		NEdges:                   len(neighbors),
		FirstNeighborIndices:     append([]int(nil), firstNeighborIndices...),
		Neighbors:                append([]int(nil), neighbors...),
		EdgeWeights:              append([]float64(nil), edgeWeights...),
		TotalEdgeWeightSelfLinks: selfLinkWeight,
	}
	if err := assignNodeWeights(n, cfg); err != nil {
		return nil, err
	}

	if cfg.checkIntegrity {
		if err := checkIntegrity(n); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// checkIntegrity validates the invariants documented on Network. It names
// the specific violated invariant in the returned error.
func checkIntegrity(n *Network) error {
	if len(n.FirstNeighborIndices) != n.NNodes+1 {
		return invalidNetworkf("firstNeighborIndices has wrong length %d, want %d", len(n.FirstNeighborIndices), n.NNodes+1)
	}
	if n.FirstNeighborIndices[0] != 0 {
		return invalidNetworkf("firstNeighborIndices[0] must be 0, got %d", n.FirstNeighborIndices[0])
	}
	if n.FirstNeighborIndices[n.NNodes] != n.NEdges {
		return invalidNetworkf("firstNeighborIndices[NNodes] must equal NEdges (%d != %d)", n.FirstNeighborIndices[n.NNodes], n.NEdges)
	}
	for i := 0; i < n.NNodes; i++ {
		if n.FirstNeighborIndices[i] > n.FirstNeighborIndices[i+1] {
			return invalidNetworkf("firstNeighborIndices not non-decreasing at node %d", i)
		}
	}
	if len(n.Neighbors) != n.NEdges || len(n.EdgeWeights) != n.NEdges {
		return invalidNetworkf("neighbors/edgeWeights length mismatch with NEdges %d", n.NEdges)
	}

	for i := 0; i < n.NNodes; i++ {
		nbrs := n.NeighborsOf(i)
		for k, j := range nbrs {
			if j < 0 || j >= n.NNodes {
				return invalidNetworkf("node %d has out-of-range neighbour %d", i, j)
			}
			if j == i {
				return invalidNetworkf("node %d has a self-loop in its adjacency", i)
			}
			if k > 0 && nbrs[k-1] >= j {
				return invalidNetworkf("node %d's neighbours are not strictly increasing", i)
			}
		}
	}

	for i := 0; i < n.NNodes; i++ {
		nbrs, ws := n.NeighborsOf(i), n.EdgeWeightsOf(i)
		for k, j := range nbrs {
			rev := n.NeighborsOf(j)
			idx := sort.SearchInts(rev, i)
			if idx >= len(rev) || rev[idx] != i {
				return invalidNetworkf("edge (%d,%d) has no reverse edge (%d,%d)", i, j, j, i)
			}
			if n.EdgeWeightsOf(j)[idx] != ws[k] {
				return invalidNetworkf("edge (%d,%d) weight %v != reverse edge weight %v", i, j, ws[k], n.EdgeWeightsOf(j)[idx])
			}
		}
	}

	if len(n.NodeWeights) != n.NNodes {
		return invalidNetworkf("nodeWeights length %d != NNodes %d", len(n.NodeWeights), n.NNodes)
	}
	for i, w := range n.NodeWeights {
		if w < 0 {
			return invalidNetworkf("node %d has negative weight %v", i, w)
		}
	}

	return nil
}
