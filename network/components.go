package network

import (
	"sort"

	"github.com/cartograph/cartograph/clustering"
)

// IdentifyComponents labels each node with its connected component via
// BFS, then returns a Clustering whose cluster ids are ordered by
// decreasing component size — ties broken by the smallest original node id
// in the component, so the result is deterministic independent of map
// iteration order.
//
// Complexity: O(NNodes + NEdges).
func (n *Network) IdentifyComponents() *clustering.Clustering {
	componentOf := make([]int, n.NNodes)
	for i := range componentOf {
		componentOf[i] = -1
	}

	nComponents := 0
	queue := make([]int, 0, n.NNodes)
	for start := 0; start < n.NNodes; start++ {
		if componentOf[start] != -1 {
			continue
		}

		componentOf[start] = nComponents
		queue = queue[:0]
		queue = append(queue, start)
		for head := 0; head < len(queue); head++ {
			node := queue[head]
			for _, nbr := range n.NeighborsOf(node) {
				if componentOf[nbr] == -1 {
					componentOf[nbr] = nComponents
					queue = append(queue, nbr)
				}
			}
		}
		nComponents++
	}

	size := make([]int, nComponents)
	firstNode := make([]int, nComponents)
	for c := range firstNode {
		firstNode[c] = n.NNodes
	}
	for i, c := range componentOf {
		size[c]++
		if i < firstNode[c] {
			firstNode[c] = i
		}
	}

	order := make([]int, nComponents)
	for c := range order {
		order[c] = c
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := order[a], order[b]
		if size[ca] != size[cb] {
			return size[ca] > size[cb]
		}

		return firstNode[ca] < firstNode[cb]
	})

	rank := make([]int, nComponents)
	for newID, oldID := range order {
		rank[oldID] = newID
	}

	clusters := make([]int, n.NNodes)
	for i, c := range componentOf {
		clusters[i] = rank[c]
	}

	return clustering.NewFrom(clusters)
}
