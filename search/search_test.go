package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/gradient"
	"github.com/cartograph/cartograph/localmove"
	"github.com/cartograph/cartograph/multilevel"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
	"github.com/cartograph/cartograph/search"
)

func karateLike(t *testing.T) *network.Network {
	t.Helper()
	n, err := network.FromEdges(6,
		[]int{0, 1, 2, 2, 3, 5, 4},
		[]int{1, 2, 0, 3, 5, 4, 3},
		nil)
	require.NoError(t, err)

	return n
}

func TestLeidenWithAssociationStrengthFindsTwoTriangles(t *testing.T) {
	// Association strength divides by the product of node weights, so the
	// network carries each node's total edge weight as its node weight.
	raw, err := network.FromEdges(6,
		[]int{0, 1, 2, 2, 3, 5, 4},
		[]int{1, 2, 0, 3, 5, 4, 3},
		nil, network.WithNodeWeightsFromEdges())
	require.NoError(t, err)
	normalized := raw.CreateNormalized(network.NormalizationAssociationStrength)

	cfg := search.NewClusteringConfig(
		search.WithAlgorithm(search.Leiden),
		search.WithClusteringQuality(quality.NewCPM(quality.WithResolution(0.2))),
		search.WithRandomStarts(5),
		search.WithMergeConfig(localmove.NewMergeConfig(localmove.WithMergeResolution(0.2), localmove.WithRandomness(0.01))),
	)

	c, q, err := search.RunClustering(normalized, cfg, rng.NewRng(42))
	require.NoError(t, err)
	require.Greater(t, q, 0.0)

	require.Equal(t, c.Clusters[0], c.Clusters[1])
	require.Equal(t, c.Clusters[1], c.Clusters[2])
	require.Equal(t, c.Clusters[3], c.Clusters[4])
	require.Equal(t, c.Clusters[4], c.Clusters[5])
	require.NotEqual(t, c.Clusters[0], c.Clusters[3])
	require.Equal(t, 2, c.NClusters)
}

func TestIdentifyComponentsOrdersBySizeThenOriginalID(t *testing.T) {
	n, err := network.FromEdges(4, []int{0, 2}, []int{1, 3}, nil)
	require.NoError(t, err)

	c := n.IdentifyComponents()
	require.Equal(t, []int{0, 0, 1, 1}, c.Clusters)
}

func TestModularityRescalingMatchesIndependentlyBuiltModularityNetwork(t *testing.T) {
	n := karateLike(t)
	gammaUser := 0.5

	rescaled, gammaEff := quality.RescaleModularityToCPM(n, gammaUser)

	nativeModularityNetwork, err := network.FromAdjacency(
		n.NNodes, n.FirstNeighborIndices, n.Neighbors, n.EdgeWeights, n.TotalEdgeWeightSelfLinks,
		network.WithNodeWeightsFromEdges())
	require.NoError(t, err)

	require.Equal(t, nativeModularityNetwork.NodeWeights, rescaled.NodeWeights)
	require.InDelta(t, gammaUser/(2*n.TotalEdgeWeight()+n.TotalEdgeWeightSelfLinks), gammaEff, 1e-12)

	cRescaled := clustering.NewSingleton(n.NNodes)
	multilevel.Louvain(rescaled, cRescaled, quality.CPM{Resolution: gammaEff}, 0, rng.NewRng(7))

	cNative := clustering.NewSingleton(n.NNodes)
	multilevel.Louvain(nativeModularityNetwork, cNative, quality.CPM{Resolution: gammaEff}, 0, rng.NewRng(7))

	require.Equal(t, cRescaled.Clusters, cNative.Clusters)
}

func TestRunLayoutStandardizesWinner(t *testing.T) {
	n := karateLike(t)
	q, err := quality.NewVOS(quality.KindVOS, quality.WithEdgeWeightIncrement(0.01))
	require.NoError(t, err)

	cfg := search.NewLayoutConfig(
		search.WithLayoutQuality(q),
		search.WithLayoutRandomStarts(3),
		search.WithGradientConfig(gradient.NewConfig(
			gradient.WithInitialStepSize(0.5),
			gradient.WithStepReduction(0.5),
			gradient.WithRequiredImprovements(2),
			gradient.WithMaxIterations(20),
			gradient.WithMinStepSize(1e-6),
		)),
		search.WithStandardize(true),
	)

	l, energy, err := search.RunLayout(n, cfg, rng.NewRng(13))
	require.NoError(t, err)
	require.NotNil(t, l)
	require.InDelta(t, 1.0, l.MeanPairwiseDistance(), 1e-6)
	_ = energy
}

func TestRunClusteringRejectsEmptyNetwork(t *testing.T) {
	n, err := network.FromEdges(0, nil, nil, nil)
	require.NoError(t, err)

	_, _, err = search.RunClustering(n, search.ClusteringConfig{NRandomStarts: 1}, rng.NewRng(1))
	require.ErrorIs(t, err, search.ErrInvalidParameter)
}

func TestRunClusteringRejectsUninitialisedNetwork(t *testing.T) {
	_, _, err := search.RunClustering(nil, search.ClusteringConfig{NRandomStarts: 1}, rng.NewRng(1))
	require.ErrorIs(t, err, search.ErrUninitialised)
}
