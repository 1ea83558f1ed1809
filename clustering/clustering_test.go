package clustering_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartograph/cartograph/clustering"
)

func TestNewSingleton(t *testing.T) {
	c := clustering.NewSingleton(4)
	require.Equal(t, []int{0, 1, 2, 3}, c.Clusters)
	require.Equal(t, 4, c.NClusters)
}

func TestNewFrom(t *testing.T) {
	c := clustering.NewFrom([]int{0, 0, 2})
	require.Equal(t, 3, c.NClusters)
}

func TestSetClusterWidensNClusters(t *testing.T) {
	c := clustering.NewSingleton(3)
	c.SetCluster(0, 5)
	require.Equal(t, 6, c.NClusters)
}

func TestRemoveEmptyClustersCompactsToContiguousRange(t *testing.T) {
	c := clustering.NewFrom([]int{0, 3, 3, 7})
	c.RemoveEmptyClusters()
	require.Equal(t, 3, c.NClusters)

	seen := map[int]bool{}
	for _, cl := range c.Clusters {
		require.GreaterOrEqual(t, cl, 0)
		require.Less(t, cl, c.NClusters)
		seen[cl] = true
	}
	require.Len(t, seen, 3)
}

func TestRemoveEmptyClustersIdempotentAfterOrderByNNodes(t *testing.T) {
	c := clustering.NewFrom([]int{0, 0, 1, 2, 2, 2})
	c.RemoveEmptyClusters()
	c.OrderByNNodes()
	before := append([]int(nil), c.Clusters...)
	beforeN := c.NClusters

	c.RemoveEmptyClusters()
	c.OrderByNNodes()
	require.Equal(t, before, c.Clusters)
	require.Equal(t, beforeN, c.NClusters)
}

func TestOrderByNNodesDescendingWithStableTieBreak(t *testing.T) {
	// cluster 0: 1 node, cluster 1: 2 nodes, cluster 2: 2 nodes, cluster 3: 1 node
	c := clustering.NewFrom([]int{0, 1, 1, 2, 2, 3})
	c.OrderByNNodes()
	require.Equal(t, 4, c.NClusters)

	counts := make([]int, c.NClusters)
	for _, cl := range c.Clusters {
		counts[cl]++
	}
	// descending order: the two size-2 clusters must rank ahead of the
	// two size-1 clusters.
	require.Equal(t, 2, counts[0])
	require.Equal(t, 2, counts[1])
	require.Equal(t, 1, counts[2])
	require.Equal(t, 1, counts[3])
	// stable tie break: original cluster 1 (first 2-node cluster seen)
	// ranks ahead of original cluster 2.
	require.Equal(t, 1, c.Clusters[1])
	require.Equal(t, 0, c.Clusters[3])
}

func TestOrderByWeightDropsZeroWeightClusters(t *testing.T) {
	c := clustering.NewFrom([]int{0, 1, 2})
	c.OrderByWeight([]float64{1, 0, 5})
	require.Equal(t, 2, c.NClusters)
}

func TestNodesPerCluster(t *testing.T) {
	c := clustering.NewFrom([]int{0, 1, 0, 1})
	buckets := c.NodesPerCluster()
	require.Equal(t, [][]int{{0, 2}, {1, 3}}, buckets)
}

func TestMergeClusters(t *testing.T) {
	inner := clustering.NewFrom([]int{0, 0, 1, 1})
	outer := clustering.NewFrom([]int{5, 9})
	inner.MergeClusters(outer)
	require.Equal(t, []int{5, 5, 9, 9}, inner.Clusters)
	require.Equal(t, outer.NClusters, inner.NClusters)
}

func TestClone(t *testing.T) {
	c := clustering.NewSingleton(3)
	clone := c.Clone()
	clone.SetCluster(0, 99)
	require.NotEqual(t, c.Clusters[0], clone.Clusters[0])
}
