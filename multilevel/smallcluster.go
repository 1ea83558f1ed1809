package multilevel

import (
	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/network"
)

// RemoveSmallClusters repeatedly merges the non-empty cluster with the
// fewest member nodes, while its node count stays below minSize, into the
// neighbouring cluster maximising (inter-cluster edge weight)/(neighbour's
// total node weight); a cluster whose candidates tie, or that has no
// neighbours, is left as is. Runs on the reduced network so each merge
// decision costs O(n_clusters).
func RemoveSmallClusters(n *network.Network, c *clustering.Clustering, minSize int) {
	mergeSmallClusters(n, c, float64(minSize), false)
}

// RemoveLowWeightClusters is RemoveSmallClusters' weight-based variant:
// the threshold applies to each cluster's total node weight rather than
// its node count.
func RemoveLowWeightClusters(n *network.Network, c *clustering.Clustering, minWeight float64) {
	mergeSmallClusters(n, c, minWeight, true)
}

func mergeSmallClusters(n *network.Network, c *clustering.Clustering, threshold float64, useWeight bool) {
	nClusters := c.NClusters
	if nClusters == 0 {
		return
	}

	reduced := n.CreateReducedNetwork(c.Clusters, c.NClusters)

	weight := make([]float64, nClusters)
	copy(weight, reduced.NodeWeights)

	size := weight
	if !useWeight {
		size = make([]float64, nClusters)
		for _, cl := range c.Clusters {
			size[cl]++
		}
	}
	sizeIsWeight := useWeight

	adj := make([]map[int]float64, nClusters)
	for i := range adj {
		nbrs, ws := reduced.NeighborsOf(i), reduced.EdgeWeightsOf(i)
		adj[i] = make(map[int]float64, len(nbrs))
		for k, j := range nbrs {
			adj[i][j] = ws[k]
		}
	}

	alive := make([]bool, nClusters)
	for i := range alive {
		alive[i] = true
	}
	excluded := make([]bool, nClusters)
	parent := make([]int, nClusters)
	for i := range parent {
		parent[i] = i
	}

	for {
		small := smallestBelowThreshold(size, alive, excluded, threshold)
		if small == -1 {
			break
		}

		nbr, ok := bestMergeTarget(adj[small], weight)
		if !ok {
			excluded[small] = true
			continue
		}

		mergeClusterInto(adj, size, weight, sizeIsWeight, alive, parent, small, nbr)
	}

	for i, cl := range c.Clusters {
		c.Clusters[i] = resolve(parent, cl)
	}
	c.NClusters = nClusters
	c.RemoveEmptyClusters()
}

// smallestBelowThreshold returns the alive, non-excluded cluster with the
// smallest size below threshold, breaking ties by ascending cluster id, or
// -1 if none qualifies.
func smallestBelowThreshold(size []float64, alive, excluded []bool, threshold float64) int {
	best := -1
	for i, s := range size {
		if !alive[i] || excluded[i] || s >= threshold {
			continue
		}
		if best == -1 || s < size[best] {
			best = i
		}
	}

	return best
}

// bestMergeTarget returns the neighbour maximising edgeWeight/weight[nbr],
// reporting ok=false if there are no neighbours or the maximum is tied.
func bestMergeTarget(neighbors map[int]float64, weight []float64) (nbr int, ok bool) {
	best := -1
	var bestRatio float64
	tie := false
	for v, w := range neighbors {
		ratio := w / weight[v]
		switch {
		case best == -1 || ratio > bestRatio:
			best, bestRatio, tie = v, ratio, false
		case ratio == bestRatio:
			tie = true
		}
	}
	if best == -1 || tie {
		return 0, false
	}

	return best, true
}

// mergeClusterInto folds small's size, weight and adjacency into big,
// relinking small's neighbours to point at big, and records the merge in
// parent for later path resolution. sizeIsWeight indicates size and weight
// alias the same slice (the node-weight-threshold variant), so the weight
// update must not be applied twice.
func mergeClusterInto(adj []map[int]float64, size, weight []float64, sizeIsWeight bool, alive []bool, parent []int, small, big int) {
	size[big] += size[small]
	if !sizeIsWeight {
		weight[big] += weight[small]
	}
	for v, w := range adj[small] {
		if v == big {
			continue
		}
		adj[big][v] += w
		adj[v][big] += w
		delete(adj[v], small)
	}
	delete(adj[big], small)
	adj[small] = nil
	alive[small] = false
	parent[small] = big
}

// resolve follows the union-find chain to the final surviving cluster id,
// compressing the path as it goes.
func resolve(parent []int, x int) int {
	root := x
	for parent[root] != root {
		root = parent[root]
	}
	for parent[x] != root {
		parent[x], x = root, parent[x]
	}

	return root
}
