package localmove_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/localmove"
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

func TestStandardLocalMovingFindsTwoTriangles(t *testing.T) {
	n := twoTriangles(t)
	c := clustering.NewSingleton(n.NNodes)
	q := quality.CPM{Resolution: 0.3}

	moved := localmove.StandardLocalMoving(n, c, q, rng.NewRng(1))
	require.True(t, moved)

	require.Equal(t, c.Clusters[0], c.Clusters[1])
	require.Equal(t, c.Clusters[1], c.Clusters[2])
	require.Equal(t, c.Clusters[3], c.Clusters[4])
	require.Equal(t, c.Clusters[4], c.Clusters[5])
	require.NotEqual(t, c.Clusters[0], c.Clusters[3])

	require.Greater(t, q.Calc(n, c), 0.0)
}

func TestStandardLocalMovingNoMoveOnAlreadyOptimalClustering(t *testing.T) {
	n := twoTriangles(t)
	c := clustering.NewFrom([]int{0, 0, 0, 1, 1, 1})
	q := quality.CPM{Resolution: 0.3}

	moved := localmove.StandardLocalMoving(n, c, q, rng.NewRng(99))
	require.False(t, moved)
	require.Equal(t, c.Clusters[0], c.Clusters[1])
	require.Equal(t, c.Clusters[1], c.Clusters[2])
}

func TestFastLocalMovingFindsTwoTriangles(t *testing.T) {
	n := twoTriangles(t)
	c := clustering.NewSingleton(n.NNodes)
	q := quality.CPM{Resolution: 0.3}

	moved := localmove.FastLocalMoving(n, c, q, rng.NewRng(2))
	require.True(t, moved)
	require.Equal(t, c.Clusters[0], c.Clusters[1])
	require.Equal(t, c.Clusters[1], c.Clusters[2])
	require.Equal(t, c.Clusters[3], c.Clusters[4])
	require.Equal(t, c.Clusters[4], c.Clusters[5])
	require.NotEqual(t, c.Clusters[0], c.Clusters[3])
}

func TestFastLocalMovingAndStandardAgreeOnQuality(t *testing.T) {
	n := twoTriangles(t)
	q := quality.CPM{Resolution: 0.3}

	cStd := clustering.NewSingleton(n.NNodes)
	localmove.StandardLocalMoving(n, cStd, q, rng.NewRng(5))

	cFast := clustering.NewSingleton(n.NNodes)
	localmove.FastLocalMoving(n, cFast, q, rng.NewRng(5))

	require.InDelta(t, q.Calc(n, cStd), q.Calc(n, cFast), 1e-9)
}

func TestLocalMergingRejectsNonPositiveRandomness(t *testing.T) {
	n := twoTriangles(t)
	c := clustering.NewSingleton(n.NNodes)
	err := localmove.LocalMerging(n, c, localmove.MergeConfig{Resolution: 0.1, Randomness: 0}, rng.NewRng(1))
	require.ErrorIs(t, err, localmove.ErrInvalidParameter)
}

func TestLocalMergingProducesValidClustering(t *testing.T) {
	n := twoTriangles(t)
	c := clustering.NewSingleton(n.NNodes)

	err := localmove.LocalMerging(n, c, localmove.MergeConfig{Resolution: 0.1, Randomness: 0.01}, rng.NewRng(3))
	require.NoError(t, err)

	for _, cl := range c.Clusters {
		require.GreaterOrEqual(t, cl, 0)
		require.Less(t, cl, c.NClusters)
	}
}

func TestLocalMergingLeavesIsolatedNodeSingleton(t *testing.T) {
	n, err := network.FromEdges(3, []int{0}, []int{1}, []float64{1})
	require.NoError(t, err)
	c := clustering.NewSingleton(n.NNodes)

	err = localmove.LocalMerging(n, c, localmove.MergeConfig{Resolution: 1, Randomness: 0.1}, rng.NewRng(4))
	require.NoError(t, err)

	require.NotEqual(t, c.Clusters[0], c.Clusters[2])
	require.NotEqual(t, c.Clusters[1], c.Clusters[2])
}
