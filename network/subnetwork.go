package network

// SubnetworkScratch holds reusable buffers for extracting many subnetworks
// from the same Network (one per cluster, typically) without a fresh
// allocation per cluster.
//
// NodeMap must have length equal to the parent Network's NNodes; Neighbors
// and EdgeWeights must each have length at least the parent Network's
// NEdges. NewSubnetworkScratch sizes them correctly.
type SubnetworkScratch struct {
	// NodeMap maps an original node id to its id within the subnetwork
	// currently being built, or -1 if the node is not a member. Reset
	// incrementally (only the touched entries) between calls.
	NodeMap []int
	// neighbors is the staging area extractInto's counting pass writes
	// relabelled neighbour ids into; edgeWeights is allocated alongside it
	// but not written. The returned Network's CSR arrays are freshly
	// allocated, right-sized slices filled from the parent Network.
	neighbors   []int
	edgeWeights []float64
}

// NewSubnetworkScratch allocates scratch buffers sized for repeated
// subnetwork extraction from a Network with the given NNodes and NEdges.
func NewSubnetworkScratch(nNodes, nEdges int) *SubnetworkScratch {
	nodeMap := make([]int, nNodes)
	for i := range nodeMap {
		nodeMap[i] = -1
	}

	return &SubnetworkScratch{
		NodeMap:     nodeMap,
		neighbors:   make([]int, nEdges),
		edgeWeights: make([]float64, nEdges),
	}
}

// CreateSubnetwork returns the induced subgraph on nodes, relabelled
// 0..len(nodes)-1 in the order given. CreateSubnetwork allocates its own
// scratch; for extracting many subnetworks from the same Network (e.g. one
// per cluster) use CreateSubnetworksByCluster with a shared
// SubnetworkScratch instead.
//
// Complexity: O(len(nodes) + sum of degrees of nodes).
func (n *Network) CreateSubnetwork(nodes []int) *Network {
	scratch := NewSubnetworkScratch(n.NNodes, n.NEdges)

	return n.extractInto(nodes, scratch)
}

// CreateSubnetworksByCluster returns one subnetwork per cluster in
// 0..nClusters-1, induced on the nodes whose nodeCluster value equals that
// cluster id, relabelled 0..k-1 in ascending original-id order. A
// singleton cluster produces a one-node subnetwork with empty adjacency.
//
// scratch is reused across clusters to avoid O(NNodes) or O(NEdges)
// allocation per cluster; pass a SubnetworkScratch sized for this Network
// via NewSubnetworkScratch.
//
// Complexity: O(NNodes + NEdges) total across all clusters.
func (n *Network) CreateSubnetworksByCluster(nodeCluster []int, nClusters int, scratch *SubnetworkScratch) []*Network {
	membersByCluster := make([][]int, nClusters)
	for i, c := range nodeCluster {
		membersByCluster[c] = append(membersByCluster[c], i)
	}

	out := make([]*Network, nClusters)
	for c, members := range membersByCluster {
		out[c] = n.extractInto(members, scratch)
	}

	return out
}

// extractInto builds the induced subgraph on nodes using scratch's
// NodeMap to translate original ids to subnetwork-local ids, then copies
// out a right-sized, freshly allocated CSR into the returned Network.
func (n *Network) extractInto(nodes []int, scratch *SubnetworkScratch) *Network {
	for newID, oldID := range nodes {
		scratch.NodeMap[oldID] = newID
	}

	k := len(nodes)
	firstNeighborIndices := make([]int, k+1)
	edgeCount := 0

	// First pass: count edges per subnetwork node so we can size the
	// final arrays exactly (scratch.neighbors is only an
	// upper-bound-sized staging area).
	for newID, oldID := range nodes {
		for _, j := range n.NeighborsOf(oldID) {
			if scratch.NodeMap[j] >= 0 {
				scratch.neighbors[edgeCount] = scratch.NodeMap[j]
				edgeCount++
			}
		}
		firstNeighborIndices[newID+1] = edgeCount
	}

	neighbors := make([]int, edgeCount)
	edgeWeights := make([]float64, edgeCount)
	pos := 0
	for _, oldID := range nodes {
		nbrs, ws := n.NeighborsOf(oldID), n.EdgeWeightsOf(oldID)
		for idx, j := range nbrs {
			if scratch.NodeMap[j] >= 0 {
				neighbors[pos] = scratch.NodeMap[j]
				edgeWeights[pos] = ws[idx]
				pos++
			}
		}
	}

	nodeWeights := make([]float64, k)
	for newID, oldID := range nodes {
		nodeWeights[newID] = n.NodeWeights[oldID]
	}

	for _, oldID := range nodes {
		scratch.NodeMap[oldID] = -1
	}

	return &Network{
		NNodes:                   k,
		NEdges:                   edgeCount,
		NodeWeights:              nodeWeights,
		FirstNeighborIndices:     firstNeighborIndices,
		Neighbors:                neighbors,
		EdgeWeights:              edgeWeights,
		TotalEdgeWeightSelfLinks: 0,
	}
}
