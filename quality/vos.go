package quality

import (
	"errors"
	"fmt"
	"math"

	"github.com/cartograph/cartograph/arrayutil"
	"github.com/cartograph/cartograph/layout"
	"github.com/cartograph/cartograph/network"
)

// ErrInvalidParameter indicates a VOS configuration violates the
// constraint that attraction must exceed repulsion.
var ErrInvalidParameter = errors.New("quality: invalid parameter")

// LayoutKind selects between the VOS and LinLog layout quality functions.
type LayoutKind int

const (
	// KindVOS weights edges by Attraction/Repulsion as configured.
	KindVOS LayoutKind = iota
	// KindLinLog is the VOS energy's attraction=0, repulsion=0 limit: both
	// the attractive and repulsive terms use f_0(d) = log(d) instead of
	// d^k/k.
	KindLinLog
)

// VOS is the layout quality function. Attraction must
// exceed Repulsion; EdgeWeightIncrement (β) is typically a small positive
// constant when the network is disconnected, so components still attract
// weakly.
type VOS struct {
	Kind                LayoutKind
	Attraction          float64
	Repulsion           float64
	EdgeWeightIncrement float64
}

// VOSOption configures a VOS quality function built by NewVOS.
type VOSOption func(*VOS)

// WithAttraction sets the attraction exponent α (ignored for KindLinLog).
func WithAttraction(alpha float64) VOSOption {
	return func(q *VOS) { q.Attraction = alpha }
}

// WithRepulsion sets the repulsion exponent ρ (ignored for KindLinLog).
func WithRepulsion(rho float64) VOSOption {
	return func(q *VOS) { q.Repulsion = rho }
}

// WithEdgeWeightIncrement sets β, the constant added to every edge weight
// in the attractive term (typically a small positive value so disconnected
// components still attract weakly).
func WithEdgeWeightIncrement(beta float64) VOSOption {
	return func(q *VOS) { q.EdgeWeightIncrement = beta }
}

// DefaultVOS returns kind's reference defaults: attraction 2, repulsion 0,
// no edge weight increment.
func DefaultVOS(kind LayoutKind) VOS {
	return VOS{Kind: kind, Attraction: 2, Repulsion: 0}
}

// NewVOS builds a VOS quality function for kind from DefaultVOS(kind),
// applying opts in order, and validates the result. For KindLinLog,
// Attraction and Repulsion are ignored (forced to 0 by resolvedAlphaRho)
// but EdgeWeightIncrement still applies.
func NewVOS(kind LayoutKind, opts ...VOSOption) (VOS, error) {
	q := DefaultVOS(kind)
	for _, opt := range opts {
		opt(&q)
	}

	alpha, rho := q.resolvedAlphaRho()
	if q.Kind != KindLinLog && alpha <= rho {
		return VOS{}, fmt.Errorf("%w: attraction (%v) must exceed repulsion (%v)", ErrInvalidParameter, alpha, rho)
	}

	return q, nil
}

// resolvedAlphaRho returns the (attraction, repulsion) exponents actually
// used in the energy/gradient formulas: the configured values for KindVOS,
// or (0,0) for KindLinLog.
func (q VOS) resolvedAlphaRho() (alpha, rho float64) {
	if q.Kind == KindLinLog {
		return 0, 0
	}

	return q.Attraction, q.Repulsion
}

// ResolvedExponents exports resolvedAlphaRho for callers outside this
// package (the gradient descent optimiser accumulates energy inline during
// its sweep rather than calling Calc again, and needs the same exponents
// Calc and PairGradientCoefficient use).
func (q VOS) ResolvedExponents() (alpha, rho float64) {
	return q.resolvedAlphaRho()
}

// fK evaluates f_k(d) = d^k/k for k != 0, or log(d) for k == 0.
func fK(d, k float64) float64 {
	if k == 0 {
		return math.Log(d)
	}

	return arrayutil.FastPow(d, k) / k
}

// Calc computes the VOS/LinLog energy of layout l over network n, to be
// minimised. Coincident points (distance 0) contribute their f_k(0) term
// for the repulsion/attraction sums exactly as the reference formula does
// (an accepted degeneracy: random initialisation should not produce
// repeated coincident points, so this is never exercised by the gradient
// descent's own guarded pairwise terms).
//
// Complexity: O(NNodes² + NEdges).
func (q VOS) Calc(n *network.Network, l *layout.Layout) float64 {
	alpha, rho := q.resolvedAlphaRho()

	var attraction, repulsion float64
	for i := 0; i < n.NNodes; i++ {
		for k, j := range n.NeighborsOf(i) {
			if j <= i {
				continue
			}
			d := l.Distance(i, j)
			attraction += n.EdgeWeightsOf(i)[k] * fK(d, alpha)
		}
	}

	for i := 0; i < n.NNodes; i++ {
		for j := i + 1; j < n.NNodes; j++ {
			d := l.Distance(i, j)
			attraction += q.EdgeWeightIncrement * fK(d, alpha)
			repulsion += n.NodeWeights[i] * n.NodeWeights[j] * fK(d, rho)
		}
	}

	return attraction - repulsion
}

// PairGradientCoefficient returns the scalar multiplying (x_k − x_l) (and
// analogously (y_k − y_l)) in the closed-form gradient:
//
//	(a_kl + β) · d^(α−2) − n_k·n_l · d^(ρ−2)
//
// edgeWeight is a_kl (0 if k,l are not adjacent); dist must be strictly
// positive — callers guard the d=0 degeneracy before calling.
//
// Complexity: O(1).
func (q VOS) PairGradientCoefficient(edgeWeight, nk, nl, dist float64) float64 {
	alpha, rho := q.resolvedAlphaRho()

	return (edgeWeight+q.EdgeWeightIncrement)*arrayutil.FastPow(dist, alpha-2) - nk*nl*arrayutil.FastPow(dist, rho-2)
}
