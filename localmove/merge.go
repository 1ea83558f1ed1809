package localmove

import (
	"fmt"
	"math"

	"github.com/cartograph/cartograph/arrayutil"
	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

// MergeConfig configures LocalMerging: Resolution is the CPM γ used for both
// the well-connectedness test and the ΔQ computation; Randomness (θ) governs
// how sharply the probabilistic choice among well-connected candidates
// concentrates on the best one (θ→0 behaves close to greedy).
type MergeConfig struct {
	Resolution float64
	Randomness float64
}

// MergeOption configures a MergeConfig built by NewMergeConfig.
type MergeOption func(*MergeConfig)

// WithMergeResolution sets γ (default 1, via DefaultMergeConfig).
func WithMergeResolution(gamma float64) MergeOption {
	return func(c *MergeConfig) { c.Resolution = gamma }
}

// WithRandomness sets θ (default 0.01, via DefaultMergeConfig).
func WithRandomness(theta float64) MergeOption {
	return func(c *MergeConfig) { c.Randomness = theta }
}

// DefaultMergeConfig returns resolution 1, randomness 0.01.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{Resolution: 1, Randomness: 0.01}
}

// NewMergeConfig builds a MergeConfig from DefaultMergeConfig, applying
// opts in order.
func NewMergeConfig(opts ...MergeOption) MergeConfig {
	c := DefaultMergeConfig()
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// LocalMerging runs Leiden's refinement pass over a singleton
// clustering c of network n (c.NClusters must equal n.NNodes). Nodes are
// visited in random order; a node belonging to a singleton cluster that is
// well-connected may merge into any well-connected candidate cluster (its
// own singleton, or a neighbour's cluster), chosen probabilistically among
// non-negative-gain candidates weighted by exp(ΔQ/θ), falling back to the
// strict best candidate if the normalising constant overflows. Once a
// cluster receives an outside node it is no longer a singleton, and no node
// belonging to it may move on a later visit in this same pass.
//
// Complexity: O(NEdges) — one pass over nodes and their adjacency.
func LocalMerging(n *network.Network, c *clustering.Clustering, cfg MergeConfig, seed *rng.Rng) error {
	if cfg.Randomness <= 0 {
		return fmt.Errorf("%w: randomness (%v) must be positive", ErrInvalidParameter, cfg.Randomness)
	}
	if n.NNodes == 0 {
		return nil
	}

	q := quality.CPM{Resolution: cfg.Resolution}
	totalNodeWeight := n.TotalNodeWeight()

	clusterWeight := make([]float64, n.NNodes)
	externalWeight := make([]float64, n.NNodes)
	isSingleton := make([]bool, n.NNodes)
	for i := range isSingleton {
		isSingleton[i] = true
		clusterWeight[i] = n.NodeWeights[i]
		externalWeight[i] = arrayutil.Sum(n.EdgeWeightsOf(i))
	}

	wellConnected := func(k int) bool {
		nk := clusterWeight[k]
		return externalWeight[k] >= cfg.Resolution*nk*(totalNodeWeight-nk)
	}

	edgeWeightToCluster := make([]float64, n.NNodes)
	touched := make([]int, 0, n.NNodes)
	touchedMark := make([]bool, n.NNodes)

	order := randomPermutation(n.NNodes, seed)
	for _, j := range order {
		k := c.Clusters[j]
		if !isSingleton[k] || !wellConnected(k) {
			continue
		}

		clusterWeight[k] -= n.NodeWeights[j]
		externalWeight[k] = 0

		touched = touched[:0]
		for idx, v := range n.NeighborsOf(j) {
			cl := c.Clusters[v]
			edgeWeightToCluster[cl] += n.EdgeWeightsOf(j)[idx]
			if !touchedMark[cl] {
				touchedMark[cl] = true
				touched = append(touched, cl)
			}
		}
		if !touchedMark[k] {
			touchedMark[k] = true
			touched = append(touched, k)
		}

		best := k
		bestGain := q.MoveGain(edgeWeightToCluster[k], n.NodeWeights[j], clusterWeight[k])

		candidates := make([]int, 0, len(touched))
		cumT := make([]float64, 0, len(touched))
		var tFinal float64
		for _, cl := range touched {
			if !wellConnected(cl) {
				continue
			}
			gain := q.MoveGain(edgeWeightToCluster[cl], n.NodeWeights[j], clusterWeight[cl])
			if gain > bestGain {
				bestGain = gain
				best = cl
			}
			if gain >= 0 {
				tFinal += arrayutil.FastExp(gain / cfg.Randomness)
				candidates = append(candidates, cl)
				cumT = append(cumT, tFinal)
			}
		}

		chosen := best
		if len(candidates) > 0 && !math.IsInf(tFinal, 0) && !math.IsNaN(tFinal) {
			r := seed.Uniform() * tFinal
			idx := arrayutil.BinarySearch(0, len(cumT), r, func(i int) float64 { return cumT[i] })
			if idx < len(candidates) {
				chosen = candidates[idx]
			}
		}

		totalIncident := arrayutil.Sum(n.EdgeWeightsOf(j))
		externalWeight[chosen] += totalIncident - 2*edgeWeightToCluster[chosen]
		clusterWeight[chosen] += n.NodeWeights[j]
		c.Clusters[j] = chosen
		if chosen != k {
			isSingleton[chosen] = false
		}

		for _, cl := range touched {
			edgeWeightToCluster[cl] = 0
			touchedMark[cl] = false
		}
	}

	c.RemoveEmptyClusters()

	return nil
}
