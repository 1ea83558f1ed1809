package gradient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartograph/cartograph/gradient"
	"github.com/cartograph/cartograph/layout"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

func TestRunRejectsInvalidConfig(t *testing.T) {
	n, err := network.FromEdges(2, []int{0}, []int{1}, []float64{1})
	require.NoError(t, err)
	l := layout.NewRandom(2, rng.NewRng(1))
	q, err := quality.NewVOS(quality.KindVOS)
	require.NoError(t, err)

	_, _, err = gradient.Run(n, l, q, gradient.NewConfig(
		gradient.WithStepReduction(1.5),
		gradient.WithMaxIterations(10),
	), rng.NewRng(1))
	require.ErrorIs(t, err, gradient.ErrInvalidParameter)
}

func TestRunDecreasesEnergyOnConnectedPair(t *testing.T) {
	n, err := network.FromEdges(2, []int{0}, []int{1}, []float64{1})
	require.NoError(t, err)
	q, err := quality.NewVOS(quality.KindVOS)
	require.NoError(t, err)

	l := layout.NewFromCoords([]float64{0, 5}, []float64{0, 0})
	before := q.Calc(n, l)

	final, sweeps, err := gradient.Run(n, l, q, gradient.Config{
		InitialStepSize:      0.5,
		StepReduction:        0.5,
		RequiredImprovements: 2,
		MaxIterations:        50,
		MinStepSize:          1e-6,
	}, rng.NewRng(3))
	require.NoError(t, err)
	require.Greater(t, sweeps, 0)
	require.Less(t, final, before)
}

func TestRunStopsAtMaxIterations(t *testing.T) {
	n, err := network.FromEdges(3,
		[]int{0, 1},
		[]int{1, 2},
		nil)
	require.NoError(t, err)
	q, err := quality.NewVOS(quality.KindVOS, quality.WithEdgeWeightIncrement(0.01))
	require.NoError(t, err)
	l := layout.NewRandom(3, rng.NewRng(9))

	_, sweeps, err := gradient.Run(n, l, q, gradient.Config{
		InitialStepSize:      0.1,
		StepReduction:        0.9,
		RequiredImprovements: 1000000,
		MaxIterations:        3,
		MinStepSize:          1e-9,
	}, rng.NewRng(9))
	require.NoError(t, err)
	require.Equal(t, 3, sweeps)
}
