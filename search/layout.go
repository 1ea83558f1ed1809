package search

import (
	"fmt"
	"math"

	"github.com/cartograph/cartograph/gradient"
	"github.com/cartograph/cartograph/layout"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

// LayoutConfig configures RunLayout.
type LayoutConfig struct {
	Quality quality.VOS

	// NRandomStarts is R: the number of independent random-initial-layout
	// runs; the one with minimum VOS/LinLog energy is kept (the energy is
	// minimised, unlike clustering quality which is maximised).
	NRandomStarts int
	Gradient      gradient.Config

	// Standardize, if true, standardises the winning layout; Dilate
	// controls whether standardisation also rescales to unit mean pairwise
	// distance.
	Standardize bool
	Dilate      bool
}

// LayoutOption configures a LayoutConfig built by NewLayoutConfig.
type LayoutOption func(*LayoutConfig)

// WithLayoutQuality sets the VOS/LinLog quality function.
func WithLayoutQuality(q quality.VOS) LayoutOption {
	return func(cfg *LayoutConfig) { cfg.Quality = q }
}

// WithLayoutRandomStarts sets R, the number of independent random-initial-
// layout runs (default 1).
func WithLayoutRandomStarts(r int) LayoutOption {
	return func(cfg *LayoutConfig) { cfg.NRandomStarts = r }
}

// WithGradientConfig sets the gradient descent configuration (default
// gradient.DefaultConfig()).
func WithGradientConfig(g gradient.Config) LayoutOption {
	return func(cfg *LayoutConfig) { cfg.Gradient = g }
}

// WithStandardize enables standardisation of the winning layout, and
// whether it also rescales to unit mean pairwise distance (default both
// false).
func WithStandardize(dilate bool) LayoutOption {
	return func(cfg *LayoutConfig) {
		cfg.Standardize = true
		cfg.Dilate = dilate
	}
}

// DefaultLayoutConfig returns one random start, gradient descent at its
// package defaults, and no standardisation.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		NRandomStarts: 1,
		Gradient:      gradient.DefaultConfig(),
	}
}

// NewLayoutConfig builds a LayoutConfig from DefaultLayoutConfig, applying
// opts in order.
func NewLayoutConfig(opts ...LayoutOption) LayoutConfig {
	cfg := DefaultLayoutConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// RunLayout performs NRandomStarts independent gradient descent runs, each
// starting from a fresh random layout of n, and keeps the one with minimum
// final energy. seed drives every random start and every descent sweep in
// sequence, sharing one stream.
//
// Complexity: O(NRandomStarts) gradient descent runs, each O(NNodes²) per
// sweep.
func RunLayout(n *network.Network, cfg LayoutConfig, seed *rng.Rng) (*layout.Layout, float64, error) {
	if n == nil {
		return nil, 0, ErrUninitialised
	}
	if n.NNodes == 0 {
		return nil, 0, fmt.Errorf("%w: network has an empty node set", ErrInvalidParameter)
	}
	if cfg.NRandomStarts <= 0 {
		return nil, 0, fmt.Errorf("%w: nRandomStarts (%d) must be positive", ErrInvalidParameter, cfg.NRandomStarts)
	}

	var best *layout.Layout
	bestEnergy := math.Inf(1)

	for i := 0; i < cfg.NRandomStarts; i++ {
		l := layout.NewRandom(n.NNodes, seed)
		energy, _, err := gradient.Run(n, l, cfg.Quality, cfg.Gradient, seed)
		if err != nil {
			return nil, 0, err
		}
		if energy < bestEnergy {
			best, bestEnergy = l, energy
		}
	}

	if cfg.Standardize {
		best.Standardize(cfg.Dilate)
	}

	return best, bestEnergy, nil
}
