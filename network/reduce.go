package network

import "sort"

// CreateReducedNetwork returns the quotient graph with one super-node per
// cluster in 0..nClusters-1. Super-node
// weight is the sum of its members' node weights; inter-cluster edge
// weight is the sum of inter-cluster edge weights between the two
// clusters; intra-cluster edge weights fold into the reduced network's
// TotalEdgeWeightSelfLinks, alongside this Network's own self-link total.
//
// Complexity: O(NNodes + NEdges log d) where d is the maximum number of
// distinct neighbouring clusters any single cluster touches (the log
// factor sorts each cluster's touched-neighbour list before emitting CSR
// rows in ascending order).
func (n *Network) CreateReducedNetwork(nodeCluster []int, nClusters int) *Network {
	membersByCluster := make([][]int, nClusters)
	for i, c := range nodeCluster {
		membersByCluster[c] = append(membersByCluster[c], i)
	}

	nodeWeights := make([]float64, nClusters)
	for c, members := range membersByCluster {
		var total float64
		for _, i := range members {
			total += n.NodeWeights[i]
		}
		nodeWeights[c] = total
	}

	accum := make([]float64, nClusters)
	touched := make([]int, 0, nClusters)
	inTouched := make([]bool, nClusters)

	selfLinkWeight := n.TotalEdgeWeightSelfLinks
	firstNeighborIndices := make([]int, nClusters+1)
	var allNeighbors []int
	var allWeights []float64

	for c, members := range membersByCluster {
		touched = touched[:0]
		for _, i := range members {
			for k, j := range n.NeighborsOf(i) {
				cj := nodeCluster[j]
				w := n.EdgeWeightsOf(i)[k]
				if cj == c {
					selfLinkWeight += w

					continue
				}
				if !inTouched[cj] {
					inTouched[cj] = true
					touched = append(touched, cj)
				}
				accum[cj] += w
			}
		}

		sort.Ints(touched)
		for _, cj := range touched {
			allNeighbors = append(allNeighbors, cj)
			allWeights = append(allWeights, accum[cj])
			accum[cj] = 0
			inTouched[cj] = false
		}
		firstNeighborIndices[c+1] = len(allNeighbors)
	}

	return &Network{
		NNodes:                   nClusters,
		NEdges:                   len(allNeighbors),
		NodeWeights:              nodeWeights,
		FirstNeighborIndices:     firstNeighborIndices,
		Neighbors:                allNeighbors,
		EdgeWeights:              allWeights,
		TotalEdgeWeightSelfLinks: selfLinkWeight,
	}
}
