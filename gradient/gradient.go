// Package gradient implements the VOS/LinLog layout's step-size-adaptive
// gradient descent optimiser, driven by the quality.VOS energy and
// closed-form pairwise gradient coefficient.
package gradient

import (
	"fmt"
	"math"

	"github.com/cartograph/cartograph/arrayutil"
	"github.com/cartograph/cartograph/layout"
	"github.com/cartograph/cartograph/network"
	"github.com/cartograph/cartograph/quality"
	"github.com/cartograph/cartograph/rng"
)

// Config configures a gradient descent run. StepReduction must lie in
// (0,1): it is the factor the step size is divided by after
// RequiredImprovements consecutive improving sweeps (so the step grows),
// and the factor it is multiplied by after a non-improving sweep (so the
// step shrinks).
type Config struct {
	InitialStepSize      float64
	StepReduction        float64
	RequiredImprovements int
	MaxIterations        int
	MinStepSize          float64
}

// Option configures a Config built by NewConfig.
type Option func(*Config)

// WithInitialStepSize sets the starting step size η (default 1).
func WithInitialStepSize(eta float64) Option {
	return func(c *Config) { c.InitialStepSize = eta }
}

// WithStepReduction sets the step growth/shrink factor (default 0.9).
func WithStepReduction(factor float64) Option {
	return func(c *Config) { c.StepReduction = factor }
}

// WithRequiredImprovements sets how many consecutive improving sweeps grow
// the step size (default 5).
func WithRequiredImprovements(n int) Option {
	return func(c *Config) { c.RequiredImprovements = n }
}

// WithMaxIterations caps the number of sweeps (default 1000).
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

// WithMinStepSize sets the step size floor that stops the descent early
// (default 1e-3).
func WithMinStepSize(eta float64) Option {
	return func(c *Config) { c.MinStepSize = eta }
}

// DefaultConfig returns the reference gradient descent defaults.
func DefaultConfig() Config {
	return Config{
		InitialStepSize:      1,
		StepReduction:        0.9,
		RequiredImprovements: 5,
		MaxIterations:        1000,
		MinStepSize:          0.001,
	}
}

// NewConfig builds a Config from DefaultConfig, applying opts in order.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

func (cfg Config) validate() error {
	if cfg.StepReduction <= 0 || cfg.StepReduction >= 1 {
		return fmt.Errorf("%w: stepReduction (%v) must lie in (0,1)", ErrInvalidParameter, cfg.StepReduction)
	}
	if cfg.RequiredImprovements <= 0 {
		return fmt.Errorf("%w: requiredImprovements (%v) must be positive", ErrInvalidParameter, cfg.RequiredImprovements)
	}
	if cfg.InitialStepSize <= 0 {
		return fmt.Errorf("%w: initialStepSize (%v) must be positive", ErrInvalidParameter, cfg.InitialStepSize)
	}

	return nil
}

// minDistance guards the d=0 degeneracy: coincident points contribute no
// gradient rather than dividing by zero.
const minDistance = 1e-12

// Run mutates l in place via gradient descent on q's energy over n,
// stopping when either cfg.MaxIterations full sweeps have run or the
// adaptive step size drops below cfg.MinStepSize. It returns the final
// energy and the number of sweeps performed.
//
// Complexity: O(NNodes²) per sweep (the closed-form gradient sums over all
// pairs, not just edges, because of the repulsive term).
func Run(n *network.Network, l *layout.Layout, q quality.VOS, cfg Config, seed *rng.Rng) (float64, int, error) {
	if err := cfg.validate(); err != nil {
		return 0, 0, err
	}
	if n.NNodes == 0 {
		return 0, 0, nil
	}

	alpha, rho := q.ResolvedExponents()
	eta := cfg.InitialStepSize
	eOld := math.Inf(1)
	improvements := 0

	visited := make([]bool, n.NNodes)
	edgeWeightTo := make([]float64, n.NNodes)

	sweeps := 0
	for ; sweeps < cfg.MaxIterations && eta >= cfg.MinStepSize; sweeps++ {
		perm := randomPermutation(n.NNodes, seed)
		for i := range visited {
			visited[i] = false
		}

		var eNew float64
		for _, k := range perm {
			gx, gy := sweepNode(n, l, q, alpha, rho, k, visited, edgeWeightTo, &eNew)

			norm := math.Hypot(gx, gy)
			if norm > 0 {
				l.X[k] -= eta * gx / norm
				l.Y[k] -= eta * gy / norm
			}
			visited[k] = true
		}

		if eNew < eOld {
			improvements++
			if improvements >= cfg.RequiredImprovements {
				eta /= cfg.StepReduction
				improvements = 0
			}
		} else {
			eta *= cfg.StepReduction
			improvements = 0
		}
		eOld = eNew
	}

	return eOld, sweeps, nil
}

// sweepNode computes node k's gradient against every other node l != k
// (closed form), accumulating k's share of the total energy
// into *energy by counting each unordered pair exactly once: pairs where
// the other endpoint has already been visited this sweep were already
// counted from that endpoint's turn. edgeWeightTo is scratch sized NNodes,
// populated with k's incident edge weights and cleared again before return.
func sweepNode(n *network.Network, lay *layout.Layout, q quality.VOS, alpha, rho float64, k int, visited []bool, edgeWeightTo []float64, energy *float64) (gx, gy float64) {
	for idx, v := range n.NeighborsOf(k) {
		edgeWeightTo[v] = n.EdgeWeightsOf(k)[idx]
	}

	for other := 0; other < n.NNodes; other++ {
		if other == k {
			continue
		}
		d := lay.Distance(k, other)
		if d < minDistance {
			continue
		}

		w := edgeWeightTo[other]
		coeff := q.PairGradientCoefficient(w, n.NodeWeights[k], n.NodeWeights[other], d)
		dx := lay.X[k] - lay.X[other]
		dy := lay.Y[k] - lay.Y[other]
		gx += coeff * dx
		gy += coeff * dy

		if !visited[other] {
			*energy += pairEnergy(w, q.EdgeWeightIncrement, n.NodeWeights[k], n.NodeWeights[other], d, alpha, rho)
		}
	}

	for _, v := range n.NeighborsOf(k) {
		edgeWeightTo[v] = 0
	}

	return gx, gy
}

// pairEnergy returns one unordered pair's contribution to the layout
// energy: (a_kl + β)·f_α(d) − n_k·n_l·f_ρ(d).
func pairEnergy(edgeWeight, beta, nk, nl, d, alpha, rho float64) float64 {
	return (edgeWeight+beta)*fK(d, alpha) - nk*nl*fK(d, rho)
}

// fK evaluates f_k(d) = d^k/k for k != 0, or log(d) for k == 0 — the same
// closed form quality.VOS.Calc uses internally.
func fK(d, k float64) float64 {
	if k == 0 {
		return math.Log(d)
	}

	return arrayutil.FastPow(d, k) / k
}

func randomPermutation(n int, seed *rng.Rng) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := seed.UniformInt(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm
}
