// Package search implements the multi-random-start orchestration layer:
// run R random starts of a clustering or layout algorithm and keep the
// best, then apply the documented post-processing (cluster ordering and
// small-cluster removal for clustering; standardisation for layout).
package search

import (
	"fmt"

	"github.com/cartograph/cartograph/clustering"
	"github.com/cartograph/cartograph/localmove"
	"github.com/cartograph/cartograph/multilevel"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

// ClusteringAlgorithm selects the multilevel driver RunClustering uses.
type ClusteringAlgorithm int

const (
	// Leiden runs multilevel.Leiden.
	Leiden ClusteringAlgorithm = iota
	// Louvain runs multilevel.Louvain.
	Louvain
)

// ClusteringConfig configures RunClustering.
type ClusteringConfig struct {
	Algorithm ClusteringAlgorithm
	Quality   quality.CPM

	// NRandomStarts is R: the number of independent singleton-start runs;
	// the one with maximum quality is kept.
	NRandomStarts int
	// NIterations is passed through to the multilevel driver's outer loop
	// (0 means run until no improvement).
	NIterations int
	// MergeConfig configures Leiden's refinement phase; unused for Louvain.
	MergeConfig localmove.MergeConfig

	// MinClusterSize, if > 0, runs small-cluster removal on the winning
	// clustering after ordering.
	MinClusterSize int
}

// ClusteringOption configures a ClusteringConfig built by
// NewClusteringConfig.
type ClusteringOption func(*ClusteringConfig)

// WithAlgorithm selects the multilevel driver (default Leiden).
func WithAlgorithm(a ClusteringAlgorithm) ClusteringOption {
	return func(cfg *ClusteringConfig) { cfg.Algorithm = a }
}

// WithClusteringQuality sets the CPM quality function (default
// quality.DefaultCPM()).
func WithClusteringQuality(q quality.CPM) ClusteringOption {
	return func(cfg *ClusteringConfig) { cfg.Quality = q }
}

// WithRandomStarts sets R, the number of independent singleton-start runs
// (default 1).
func WithRandomStarts(r int) ClusteringOption {
	return func(cfg *ClusteringConfig) { cfg.NRandomStarts = r }
}

// WithClusteringIterations sets the multilevel driver's outer-loop bound
// (default 0, run until no improvement).
func WithClusteringIterations(n int) ClusteringOption {
	return func(cfg *ClusteringConfig) { cfg.NIterations = n }
}

// WithMergeConfig sets Leiden's refinement configuration (default
// localmove.DefaultMergeConfig()).
func WithMergeConfig(mc localmove.MergeConfig) ClusteringOption {
	return func(cfg *ClusteringConfig) { cfg.MergeConfig = mc }
}

// WithMinClusterSize enables small-cluster removal on the winning
// clustering (default 0, disabled).
func WithMinClusterSize(n int) ClusteringOption {
	return func(cfg *ClusteringConfig) { cfg.MinClusterSize = n }
}

// DefaultClusteringConfig returns Leiden, one random start, quality and
// merge configuration at their package defaults, and no small-cluster
// removal.
func DefaultClusteringConfig() ClusteringConfig {
	return ClusteringConfig{
		Algorithm:     Leiden,
		Quality:       quality.DefaultCPM(),
		NRandomStarts: 1,
		MergeConfig:   localmove.DefaultMergeConfig(),
	}
}

// NewClusteringConfig builds a ClusteringConfig from
// DefaultClusteringConfig, applying opts in order.
func NewClusteringConfig(opts ...ClusteringOption) ClusteringConfig {
	cfg := DefaultClusteringConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// RunClustering performs NRandomStarts independent runs of the configured
// algorithm, each starting from a singleton clustering of n, and keeps the
// one with maximum CPM quality. The winner is then reordered by descending
// cluster size (Clustering.OrderByNNodes) and, if MinClusterSize > 0, has
// small clusters merged away. seed drives every random start in sequence,
// sharing one stream rather than one per start.
//
// Complexity: O(NRandomStarts) multilevel runs, each amortised O(NEdges
// log NNodes) in practice.
func RunClustering(n *network.Network, cfg ClusteringConfig, seed *rng.Rng) (*clustering.Clustering, float64, error) {
	if n == nil {
		return nil, 0, ErrUninitialised
	}
	if n.NNodes == 0 {
		return nil, 0, fmt.Errorf("%w: network has an empty node set", ErrInvalidParameter)
	}
	if cfg.NRandomStarts <= 0 {
		return nil, 0, fmt.Errorf("%w: nRandomStarts (%d) must be positive", ErrInvalidParameter, cfg.NRandomStarts)
	}

	var best *clustering.Clustering
	bestQuality := 0.0

	for i := 0; i < cfg.NRandomStarts; i++ {
		c := clustering.NewSingleton(n.NNodes)
		switch cfg.Algorithm {
		case Louvain:
			multilevel.Louvain(n, c, cfg.Quality, cfg.NIterations, seed)
		default:
			multilevel.Leiden(n, c, cfg.Quality, cfg.MergeConfig, cfg.NIterations, seed)
		}

		q := cfg.Quality.Calc(n, c)
		if best == nil || q > bestQuality {
			best, bestQuality = c, q
		}
	}

	best.OrderByNNodes()
	if cfg.MinClusterSize > 0 {
		multilevel.RemoveSmallClusters(n, best, cfg.MinClusterSize)
	}

	return best, cfg.Quality.Calc(n, best), nil
}
