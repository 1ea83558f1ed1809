package localmove

import (
	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
)

// moveState holds the running per-cluster totals and scratch accumulators
// shared by standard local moving (§4.4) and fast local moving (§4.5): both
// algorithms move one node at a time between clusters of the same network
// and differ only in how they pick the next node to visit.
//
// Cluster ids are bounded above by n.NNodes (the degenerate case where every
// node ends up in its own cluster), so clusterWeight/nNodesPerCluster are
// sized to n.NNodes up front rather than grown during the run.
type moveState struct {
	n *network.Network
	c *clustering.Clustering
	q quality.CPM

	clusterWeight    []float64
	nNodesPerCluster []int

	// unusedClusters is a stack of cluster ids emptied during the run, and
	// thus available for a node to move into; top() falls back to
	// nextFreshID when the stack is empty, the sentinel that lets a node
	// always have a never-yet-used empty cluster as a candidate.
	unusedClusters []int
	nextFreshID    int

	edgeWeightPerCluster []float64
	touchedClusters      []int
	touchedMark          []bool
}

func newMoveState(n *network.Network, c *clustering.Clustering, q quality.CPM) *moveState {
	s := &moveState{
		n:                    n,
		c:                    c,
		q:                    q,
		clusterWeight:        make([]float64, n.NNodes),
		nNodesPerCluster:     make([]int, n.NNodes),
		nextFreshID:          c.NClusters,
		edgeWeightPerCluster: make([]float64, n.NNodes),
		touchedMark:          make([]bool, n.NNodes),
	}
	for i, cl := range c.Clusters {
		s.clusterWeight[cl] += n.NodeWeights[i]
		s.nNodesPerCluster[cl]++
	}

	return s
}

// top returns the most recently emptied cluster id still unused, or
// nextFreshID when there is none, without consuming it.
func (s *moveState) top() int {
	if len(s.unusedClusters) > 0 {
		return s.unusedClusters[len(s.unusedClusters)-1]
	}

	return s.nextFreshID
}

// consumeTop records that the current top() has just been occupied by a
// node, advancing past it for the next caller.
func (s *moveState) consumeTop() {
	if len(s.unusedClusters) > 0 {
		s.unusedClusters = s.unusedClusters[:len(s.unusedClusters)-1]
		return
	}
	s.nextFreshID++
}

// removeNode removes node j from its current cluster, pushing that cluster
// onto unusedClusters if it becomes empty, and returns j's former cluster id.
func (s *moveState) removeNode(j int) int {
	ci := s.c.Clusters[j]
	s.clusterWeight[ci] -= s.n.NodeWeights[j]
	s.nNodesPerCluster[ci]--
	if s.nNodesPerCluster[ci] == 0 {
		s.unusedClusters = append(s.unusedClusters, ci)
	}

	return ci
}

// collectNeighboringClusters scans j's adjacency, accumulating incident edge
// weight per neighbouring cluster into edgeWeightPerCluster and recording
// which cluster ids were touched (for later reset). The fresh-cluster
// sentinel top() is always appended as a candidate.
func (s *moveState) collectNeighboringClusters(j int) []int {
	s.touchedClusters = s.touchedClusters[:0]
	for k, v := range s.n.NeighborsOf(j) {
		cl := s.c.Clusters[v]
		s.edgeWeightPerCluster[cl] += s.n.EdgeWeightsOf(j)[k]
		if !s.touchedMark[cl] {
			s.touchedMark[cl] = true
			s.touchedClusters = append(s.touchedClusters, cl)
		}
	}

	fresh := s.top()
	if !s.touchedMark[fresh] {
		s.touchedMark[fresh] = true
		s.touchedClusters = append(s.touchedClusters, fresh)
	}

	return s.touchedClusters
}

// resetTouched clears the accumulators touched by collectNeighboringClusters,
// to be called after the node has been placed.
func (s *moveState) resetTouched() {
	for _, cl := range s.touchedClusters {
		s.edgeWeightPerCluster[cl] = 0
		s.touchedMark[cl] = false
	}
}

// bestCandidate returns the cluster id maximising ΔQ among candidates,
// defaulting to stay (the node's former cluster, currentCluster). The gain
// of currentCluster is evaluated first whether or not it appears in
// candidates, and another cluster replaces it only on strictly greater gain,
// so a node prefers its old cluster when another cluster offers equal gain.
func (s *moveState) bestCandidate(j, currentCluster int, candidates []int) int {
	best := currentCluster
	bestGain := s.q.MoveGain(s.edgeWeightPerCluster[currentCluster], s.n.NodeWeights[j], s.clusterWeight[currentCluster])

	for _, cl := range candidates {
		if cl == currentCluster {
			continue
		}
		gain := s.q.MoveGain(s.edgeWeightPerCluster[cl], s.n.NodeWeights[j], s.clusterWeight[cl])
		if gain > bestGain {
			bestGain = gain
			best = cl
		}
	}

	return best
}

// placeNode assigns node j to cluster target, updating running totals and
// consuming the fresh-cluster sentinel if target was it.
func (s *moveState) placeNode(j, target int) {
	if target == s.top() {
		s.consumeTop()
	}
	s.clusterWeight[target] += s.n.NodeWeights[j]
	s.nNodesPerCluster[target]++
	s.c.Clusters[j] = target
	if target+1 > s.c.NClusters {
		s.c.NClusters = target + 1
	}
}

// finish sets the clustering's NClusters to the upper bound of ids ever used
// and compacts away empty clusters.
func (s *moveState) finish() {
	if s.nextFreshID > s.c.NClusters {
		s.c.NClusters = s.nextFreshID
	}
	s.c.RemoveEmptyClusters()
}
