// Package localmove implements the three node-reassignment passes the
// multilevel drivers call at each level: standard local moving (a fixed
// permutation cycled until stable), fast queued local moving (a
// destabilisation queue replacing the permutation cycle), and stochastic
// local merging (Leiden's refinement pass over a singleton clustering).
package localmove

import (
	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

// FastLocalMoving runs the Leiden inner loop: identical move
// rule to StandardLocalMoving, but the work set is an explicit queue rather
// than a fixed-length permutation cycle. All nodes start enqueued, in a
// random order, and marked unstable. Dequeuing and handling a node marks it
// stable; an actual move re-destabilises any stable neighbour whose cluster
// differs from the node's new cluster, re-enqueuing it. The queue is a ring
// buffer reusing the initial permutation's backing array, since it can never
// hold more than NNodes entries at once.
//
// Complexity: O(NEdges) amortised, typically far fewer full scans than
// StandardLocalMoving since only destabilised nodes are revisited.
func FastLocalMoving(n *network.Network, c *clustering.Clustering, q quality.CPM, seed *rng.Rng) bool {
	if n.NNodes == 0 {
		return false
	}

	queue := randomPermutation(n.NNodes, seed)
	stable := make([]bool, n.NNodes)
	s := newMoveState(n, c, q)

	head, count := 0, n.NNodes
	anyMove := false

	for count > 0 {
		j := queue[head%n.NNodes]
		head = (head + 1) % n.NNodes
		count--
		stable[j] = true

		oldCluster := s.removeNode(j)
		candidates := s.collectNeighboringClusters(j)
		best := s.bestCandidate(j, oldCluster, candidates)
		s.placeNode(j, best)
		s.resetTouched()

		if best == oldCluster {
			continue
		}
		anyMove = true

		for _, v := range n.NeighborsOf(j) {
			if c.Clusters[v] != best && stable[v] {
				stable[v] = false
				tail := (head + count) % n.NNodes
				queue[tail] = v
				count++
			}
		}
	}

	s.finish()

	return anyMove
}
