package localmove

import (
	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

// StandardLocalMoving runs the Louvain inner loop: nodes are
// cycled through in a fixed random permutation, repeatedly, each moving to
// whichever neighbouring cluster (or a fresh empty one) maximises CPM gain,
// defaulting to staying put on ties. The pass terminates once a full cycle
// of the permutation produces no move, at which point c is updated in place
// (with empty clusters compacted) and StandardLocalMoving reports whether
// any node ever moved.
//
// Complexity: O(NEdges) per full unproductive cycle in the worst case,
// amortised; typically converges in a small constant number of cycles.
func StandardLocalMoving(n *network.Network, c *clustering.Clustering, q quality.CPM, seed *rng.Rng) bool {
	if n.NNodes == 0 {
		return false
	}

	perm := randomPermutation(n.NNodes, seed)
	s := newMoveState(n, c, q)

	anyMove := false
	nUnstable := n.NNodes
	for i := 0; nUnstable > 0; i = (i + 1) % n.NNodes {
		j := perm[i]

		oldCluster := s.removeNode(j)
		candidates := s.collectNeighboringClusters(j)
		best := s.bestCandidate(j, oldCluster, candidates)
		s.placeNode(j, best)
		s.resetTouched()

		nUnstable--
		if best != oldCluster {
			anyMove = true
			nUnstable = n.NNodes
		}
	}

	s.finish()

	return anyMove
}
