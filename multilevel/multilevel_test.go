package multilevel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/localmove"
	"github.com/cartograph/cartograph/multilevel"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

func twoTriangles(t *testing.T) *network.Network {
	t.Helper()
	n, err := network.FromEdges(6,
		[]int{0, 1, 2, 2, 3, 5, 4},
		[]int{1, 2, 0, 3, 5, 4, 3},
		nil)
	require.NoError(t, err)

	return n
}

func TestLouvainFindsTwoTriangles(t *testing.T) {
	n := twoTriangles(t)
	c := clustering.NewSingleton(n.NNodes)
	q := quality.CPM{Resolution: 0.3}

	multilevel.Louvain(n, c, q, 0, rng.NewRng(7))

	require.Equal(t, c.Clusters[0], c.Clusters[1])
	require.Equal(t, c.Clusters[1], c.Clusters[2])
	require.Equal(t, c.Clusters[3], c.Clusters[4])
	require.Equal(t, c.Clusters[4], c.Clusters[5])
	require.NotEqual(t, c.Clusters[0], c.Clusters[3])
	require.Greater(t, q.Calc(n, c), 0.0)
}

func TestLouvainRespectsFixedIterationCount(t *testing.T) {
	n := twoTriangles(t)
	c := clustering.NewSingleton(n.NNodes)
	q := quality.CPM{Resolution: 0.3}

	require.NotPanics(t, func() {
		multilevel.Louvain(n, c, q, 1, rng.NewRng(7))
	})
	for _, cl := range c.Clusters {
		require.GreaterOrEqual(t, cl, 0)
		require.Less(t, cl, c.NClusters)
	}
}

func TestLeidenFindsTwoTriangles(t *testing.T) {
	n := twoTriangles(t)
	c := clustering.NewSingleton(n.NNodes)
	q := quality.CPM{Resolution: 0.3}
	mergeCfg := localmove.MergeConfig{Resolution: 0.3, Randomness: 0.01}

	multilevel.Leiden(n, c, q, mergeCfg, 0, rng.NewRng(11))

	require.Equal(t, c.Clusters[0], c.Clusters[1])
	require.Equal(t, c.Clusters[1], c.Clusters[2])
	require.Equal(t, c.Clusters[3], c.Clusters[4])
	require.Equal(t, c.Clusters[4], c.Clusters[5])
	require.NotEqual(t, c.Clusters[0], c.Clusters[3])
	require.Greater(t, q.Calc(n, c), 0.0)
}

func TestRemoveSmallClustersMergesIntoBestNeighbor(t *testing.T) {
	// Nodes 0,1,2 form a strongly-connected triangle; node 3 dangles off 0
	// with a single light edge, and node 4 dangles off 1 with a heavier one.
	n, err := network.FromEdges(5,
		[]int{0, 1, 2, 0, 1},
		[]int{1, 2, 0, 3, 4},
		[]float64{5, 5, 5, 1, 3})
	require.NoError(t, err)

	c := clustering.NewFrom([]int{0, 0, 0, 1, 2})
	multilevel.RemoveSmallClusters(n, c, 2)

	require.Equal(t, c.Clusters[3], c.Clusters[0])
	require.Equal(t, c.Clusters[4], c.Clusters[0])
}

func TestRemoveSmallClustersNoOpAboveThreshold(t *testing.T) {
	n := twoTriangles(t)
	c := clustering.NewFrom([]int{0, 0, 0, 1, 1, 1})
	before := append([]int(nil), c.Clusters...)

	multilevel.RemoveSmallClusters(n, c, 1)

	require.Equal(t, before, c.Clusters)
}
