// Package layout implements the two-dimensional coordinate container that
// the gradient-descent optimiser mutates and that geometric
// post-processing standardises.
package layout

import (
	"math"

	"github.com/cartograph/cartograph/arrayutil"
	"github.com/cartograph/cartograph/rng"
)

// Layout holds one (x,y) coordinate pair per node.
type Layout struct {
	X []float64
	Y []float64
}

// NewRandom returns a Layout with n nodes placed uniformly at random in
// [-1,1]².
//
// Complexity: O(n).
func NewRandom(n int, seed *rng.Rng) *Layout {
	l := &Layout{X: make([]float64, n), Y: make([]float64, n)}
	for i := 0; i < n; i++ {
		l.X[i] = 2*seed.Uniform() - 1
		l.Y[i] = 2*seed.Uniform() - 1
	}

	return l
}

// NewFromCoords wraps caller-supplied coordinates. x and y must have equal
// length; NewFromCoords panics otherwise, since a length mismatch is a
// programming error in the caller, not a recoverable runtime condition.
func NewFromCoords(x, y []float64) *Layout {
	if len(x) != len(y) {
		panic("layout: x and y must have equal length")
	}

	return &Layout{X: append([]float64(nil), x...), Y: append([]float64(nil), y...)}
}

// N returns the number of nodes in the layout.
func (l *Layout) N() int {
	return len(l.X)
}

// Clone returns a deep copy.
func (l *Layout) Clone() *Layout {
	return &Layout{
		X: append([]float64(nil), l.X...),
		Y: append([]float64(nil), l.Y...),
	}
}

// Distance returns the Euclidean distance between nodes i and j.
func (l *Layout) Distance(i, j int) float64 {
	dx := l.X[i] - l.X[j]
	dy := l.Y[i] - l.Y[j]

	return math.Hypot(dx, dy)
}

// MeanPairwiseDistance returns the mean Euclidean distance over all
// unordered pairs of nodes.
//
// Complexity: O(n²).
func (l *Layout) MeanPairwiseDistance() float64 {
	n := l.N()
	if n < 2 {
		return 0
	}

	var total float64
	var count int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			total += l.Distance(i, j)
			count++
		}
	}

	return total / float64(count)
}

// Standardize translates the layout to centroid zero, rotates it by the
// principal eigenvector of its coordinate covariance (maximising variance
// along x), flips each axis whose median coordinate is positive, and, if
// dilate is true, rescales so the mean pairwise distance is 1.
//
// Complexity: O(n) for translate/rotate/flip, O(n²) for the dilation
// normalisation's mean-pairwise-distance pass.
func (l *Layout) Standardize(dilate bool) {
	l.translateToCentroid()
	l.rotateByPrincipalAxis()
	l.flipToNegativeMedians()
	if dilate {
		l.dilateToUnitMeanDistance()
	}
}

func (l *Layout) translateToCentroid() {
	n := l.N()
	if n == 0 {
		return
	}
	meanX := arrayutil.Sum(l.X) / float64(n)
	meanY := arrayutil.Sum(l.Y) / float64(n)
	for i := 0; i < n; i++ {
		l.X[i] -= meanX
		l.Y[i] -= meanY
	}
}

// rotateByPrincipalAxis rotates the (already centred) layout so the axis
// of maximum variance aligns with x, using the closed-form eigenvector of
// the 2x2 coordinate covariance matrix [[sxx,sxy],[sxy,syy]].
func (l *Layout) rotateByPrincipalAxis() {
	n := l.N()
	if n == 0 {
		return
	}

	var sxx, syy, sxy float64
	for i := 0; i < n; i++ {
		sxx += l.X[i] * l.X[i]
		syy += l.Y[i] * l.Y[i]
		sxy += l.X[i] * l.Y[i]
	}

	if sxy == 0 && sxx >= syy {
		return // already axis-aligned with x carrying at least as much variance
	}

	// Closed-form principal eigenvector angle of a symmetric 2x2 matrix.
	theta := 0.5 * math.Atan2(2*sxy, sxx-syy)
	cos, sin := math.Cos(theta), math.Sin(theta)

	for i := 0; i < n; i++ {
		x, y := l.X[i], l.Y[i]
		l.X[i] = cos*x + sin*y
		l.Y[i] = -sin*x + cos*y
	}
}

func (l *Layout) flipToNegativeMedians() {
	if arrayutil.Median(l.X) > 0 {
		for i := range l.X {
			l.X[i] = -l.X[i]
		}
	}
	if arrayutil.Median(l.Y) > 0 {
		for i := range l.Y {
			l.Y[i] = -l.Y[i]
		}
	}
}

func (l *Layout) dilateToUnitMeanDistance() {
	mean := l.MeanPairwiseDistance()
	if mean == 0 {
		return
	}
	for i := range l.X {
		l.X[i] /= mean
		l.Y[i] /= mean
	}
}
