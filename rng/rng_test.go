package rng_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartograph/cartograph/rng"
)

func TestUniformRangeAndDeterminism(t *testing.T) {
	a := rng.NewRng(42)
	b := rng.NewRng(42)

	for i := 0; i < 1000; i++ {
		va := a.Uniform()
		vb := b.Uniform()
		require.Equal(t, va, vb, "same seed must reproduce the same stream")
		require.GreaterOrEqual(t, va, 0.0)
		require.Less(t, va, 1.0)
	}
}

func TestUniformIntRange(t *testing.T) {
	r := rng.NewRng(7)
	for i := 0; i < 2000; i++ {
		v := r.UniformInt(13)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 13)
	}
}

func TestUniformIntPowerOfTwoRange(t *testing.T) {
	r := rng.NewRng(7)
	for i := 0; i < 2000; i++ {
		v := r.UniformInt(16)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 16)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := rng.NewRng(1)
	b := rng.NewRng(2)

	same := true
	for i := 0; i < 16; i++ {
		if a.Uniform() != b.Uniform() {
			same = false

			break
		}
	}
	require.False(t, same, "distinct seeds should not produce an identical short prefix")
}

func TestUniformIntPanicsOnNonPositiveBound(t *testing.T) {
	r := rng.NewRng(1)
	require.Panics(t, func() { r.UniformInt(0) })
	require.Panics(t, func() { r.UniformInt(-1) })
}
