// Package cartograph implements two multilevel network-analysis
// pipelines: community detection by Constant Potts Model or Modularity
// quality, and two-dimensional force-directed layout by VOS or LinLog
// energy.
//
// Both pipelines share one immutable graph representation and drive
// through the same multi-random-start orchestration:
//
//	arrayutil/  — closed-form numeric kernels (fast exp/pow, median, binary search)
//	rng/        — deterministic 48-bit linear-congruential generator
//	network/    — immutable CSR network: construction, normalisation, pruning, reduction
//	clustering/ — cluster assignment container and cluster-level operations
//	layout/     — 2D coordinate container and geometric post-processing
//	quality/    — CPM/Modularity and VOS/LinLog quality functions
//	localmove/  — standard and fast local moving, stochastic local merging
//	multilevel/ — Louvain and Leiden drivers, small-cluster removal
//	gradient/   — step-size-adaptive gradient descent for layout
//	search/     — random-start orchestration and post-processing entry points
//
// Start at search.RunClustering or search.RunLayout; both take a
// network.Network built with network.FromEdges or network.FromAdjacency
// and a rng.Rng seed, and return a best-of-R result plus its quality.
package cartograph
