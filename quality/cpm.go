// Package quality implements the CPM/Modularity clustering quality function
// and the VOS/LinLog layout quality function as two small tagged variants:
// the optimiser reads the tag once before its hot loop rather than
// dispatching through an interface on every move.
package quality

import (
	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/network"
)

// ClusteringKind selects which clustering quality function CPM represents
// once Modularity has been rewritten to it.
type ClusteringKind int

const (
	// KindCPM is the Constant Potts Model.
	KindCPM ClusteringKind = iota
	// KindModularity is CPM with node weights set to incident edge weight
	// and resolution rescaled by 1/(2W+S); RescaleModularityToCPM performs
	// this rewrite so the rest of the module only ever sees KindCPM.
	KindModularity
)

// CPM is the Constant Potts Model quality function, resolution γ.
// Modularity is represented as CPM over a rewritten network — see
// RescaleModularityToCPM — so this type never branches on ClusteringKind
// internally; KindModularity exists purely as the external configuration
// enum callers choose from.
type CPM struct {
	Resolution float64
}

// CPMOption configures a CPM quality function built by NewCPM.
type CPMOption func(*CPM)

// WithResolution sets γ (default 1, via DefaultCPM).
func WithResolution(gamma float64) CPMOption {
	return func(q *CPM) { q.Resolution = gamma }
}

// DefaultCPM returns the CPM quality function at resolution 1.
func DefaultCPM() CPM {
	return CPM{Resolution: 1}
}

// NewCPM builds a CPM quality function from DefaultCPM, applying opts in
// order.
func NewCPM(opts ...CPMOption) CPM {
	q := DefaultCPM()
	for _, opt := range opts {
		opt(&q)
	}

	return q
}

// Calc computes the CPM quality of clustering c over network n:
//
//	Q = [ Σ_{ci=cj} a_ij + S - γ Σ_k w(k)² ] / (2W + S)
//
// Complexity: O(NEdges + NClusters).
func (q CPM) Calc(n *network.Network, c *clustering.Clustering) float64 {
	var withinClusterWeight float64
	for i := 0; i < n.NNodes; i++ {
		ci := c.Clusters[i]
		for k, j := range n.NeighborsOf(i) {
			if c.Clusters[j] == ci {
				withinClusterWeight += n.EdgeWeightsOf(i)[k]
			}
		}
	}

	clusterWeight := make([]float64, c.NClusters)
	for i, cl := range c.Clusters {
		clusterWeight[cl] += n.NodeWeights[i]
	}
	var weightPenalty float64
	for _, w := range clusterWeight {
		weightPenalty += w * w
	}

	numerator := withinClusterWeight + n.TotalEdgeWeightSelfLinks - q.Resolution*weightPenalty
	denominator := 2*n.TotalEdgeWeight() + n.TotalEdgeWeightSelfLinks
	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}

// MoveGain returns ΔQ(j → C') for moving node j (already removed from its
// current cluster) into a candidate cluster whose total node weight,
// excluding j, is clusterWeightExcludingNode, and to which j has
// edgeWeightToCluster total incident edge weight:
//
//	ΔQ = edgeWeightToCluster − γ · nodeWeight · clusterWeightExcludingNode
//
// Complexity: O(1).
func (q CPM) MoveGain(edgeWeightToCluster, nodeWeight, clusterWeightExcludingNode float64) float64 {
	return edgeWeightToCluster - q.Resolution*nodeWeight*clusterWeightExcludingNode
}

// RescaleModularityToCPM rewrites a Modularity run at user resolution
// gammaUser into an equivalent CPM run: a new Network whose node weights
// are each node's total incident edge weight, and an effective resolution
// gammaUser/(2W+S) computed on the *original* network.
//
// Complexity: O(NEdges).
func RescaleModularityToCPM(n *network.Network, gammaUser float64) (rescaled *network.Network, effectiveResolution float64) {
	denom := 2*n.TotalEdgeWeight() + n.TotalEdgeWeightSelfLinks

	nodeWeights := make([]float64, n.NNodes)
	for i := 0; i < n.NNodes; i++ {
		var total float64
		for _, w := range n.EdgeWeightsOf(i) {
			total += w
		}
		nodeWeights[i] = total
	}

	rescaled = &network.Network{
		NNodes:                   n.NNodes,
		NEdges:                   n.NEdges,
		NodeWeights:              nodeWeights,
		FirstNeighborIndices:     n.FirstNeighborIndices,
		Neighbors:                n.Neighbors,
		EdgeWeights:              n.EdgeWeights,
		TotalEdgeWeightSelfLinks: n.TotalEdgeWeightSelfLinks,
	}

	if denom == 0 {
		return rescaled, 0
	}

	return rescaled, gammaUser / denom
}
