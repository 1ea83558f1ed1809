package quality_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/layout"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
)

func TestCPMSingletonClusteringZeroResolutionHasZeroQuality(t *testing.T) {
	n, err := network.FromEdges(6, []int{0, 1, 2, 2, 3, 5, 4}, []int{1, 2, 0, 3, 5, 4, 3}, nil)
	require.NoError(t, err)

	singleton := clustering.NewSingleton(n.NNodes)
	q := quality.CPM{Resolution: 0}
	require.InDelta(t, 0.0, q.Calc(n, singleton), 1e-12)
}

func TestCPMMoveGain(t *testing.T) {
	q := quality.CPM{Resolution: 0.5}
	gain := q.MoveGain(3.0, 2.0, 4.0)
	require.InDelta(t, 3.0-0.5*2.0*4.0, gain, 1e-12)
}

func TestRescaleModularityMatchesCPMOnRescaledNetwork(t *testing.T) {
	n, err := network.FromEdges(6, []int{0, 1, 2, 2, 3, 5, 4}, []int{1, 2, 0, 3, 5, 4, 3}, nil)
	require.NoError(t, err)

	rescaled, gammaEff := quality.RescaleModularityToCPM(n, 0.8)
	c := clustering.NewFrom([]int{0, 0, 0, 1, 1, 1})

	cpmOnRescaled := quality.CPM{Resolution: gammaEff}.Calc(rescaled, c)
	// Modularity at γ=0.8: 2m=14, within-cluster weight (both directions)
	// 12, each triangle's total degree 7, so Q = (12 − 0.8·(49+49)/14)/14.
	require.InDelta(t, (12-0.8*98/14)/14, cpmOnRescaled, 1e-12)
}

func TestVOSRejectsAttractionNotExceedingRepulsion(t *testing.T) {
	_, err := quality.NewVOS(quality.KindVOS, quality.WithAttraction(1), quality.WithRepulsion(1))
	require.ErrorIs(t, err, quality.ErrInvalidParameter)
}

func TestVOSEnergyDecreasesAsConnectedNodesMoveCloser(t *testing.T) {
	n, err := network.FromEdges(2, []int{0}, []int{1}, []float64{1})
	require.NoError(t, err)

	q, err := quality.NewVOS(quality.KindVOS)
	require.NoError(t, err)

	far := layout.NewFromCoords([]float64{0, 10}, []float64{0, 0})
	near := layout.NewFromCoords([]float64{0, 1}, []float64{0, 0})

	require.Less(t, q.Calc(n, near), q.Calc(n, far))
}

func TestLinLogIgnoresConfiguredAttractionRepulsion(t *testing.T) {
	n, err := network.FromEdges(2, []int{0}, []int{1}, []float64{1})
	require.NoError(t, err)

	l := layout.NewFromCoords([]float64{0, 2}, []float64{0, 0})
	a := quality.VOS{Kind: quality.KindLinLog, Attraction: 5, Repulsion: 5}
	b := quality.VOS{Kind: quality.KindLinLog, Attraction: 99, Repulsion: -99}
	require.InDelta(t, a.Calc(n, l), b.Calc(n, l), 1e-9)
}
