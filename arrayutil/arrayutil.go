// Package arrayutil provides small numeric helpers shared by the network,
// quality, localmove, multilevel and gradient packages: sums, medians,
// min/max, a binary search over a monotone prefix, and the fast exponential
// and power approximations the reference algorithms are defined in terms of.
//
// None of these helpers allocate beyond what the caller passes in, and none
// mutate their inputs.
package arrayutil

import (
	"math"
	"sort"
)

// Sum returns the sum of a. Sum(nil) and Sum([]float64{}) both return 0.
//
// Complexity: O(n).
func Sum(a []float64) float64 {
	var total float64
	for _, v := range a {
		total += v
	}

	return total
}

// Median returns the median of a, copying and sorting a scratch slice so the
// caller's slice is left untouched. Median(nil) returns 0.
//
// Complexity: O(n log n) time, O(n) space.
func Median(a []float64) float64 {
	n := len(a)
	if n == 0 {
		return 0
	}

	scratch := make([]float64, n)
	copy(scratch, a)
	sort.Float64s(scratch)

	mid := n / 2
	if n%2 == 1 {
		return scratch[mid]
	}

	return (scratch[mid-1] + scratch[mid]) / 2
}

// Min returns the smaller of a and b.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}

// Max returns the larger of a and b.
func Max(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}

// MinInt returns the smaller of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

// MaxInt returns the larger of a and b.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// BinarySearch returns the smallest index i in [lo,hi) such that cum(i) >=
// target, assuming cum is non-decreasing over [lo,hi). Returns hi if no such
// index exists. Used by local merging (§4.6) to sample from a cumulative
// weight table.
//
// Complexity: O(log(hi-lo)).
func BinarySearch(lo, hi int, target float64, cum func(int) float64) int {
	for lo < hi {
		mid := lo + (hi-lo)/2
		if cum(mid) >= target {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo
}

// fastExpScale and fastExpFolds implement the 8-fold squaring approximation
// of e^x used in local merging's candidate-weighting loop: compute
// 1+x/256 once, then square it 8 times. This trades a small amount of
// accuracy for avoiding math.Exp's transcendental cost in a loop executed
// once per candidate cluster per node.
const (
	fastExpScale = 256.0
	fastExpFolds = 8
	fastExpClamp = -256.0
)

// FastExp approximates math.Exp(x) via repeated squaring of (1 + x/256).
// For x < -256 the result is clamped to 0: there 1+x/256 is negative, and
// squaring it would make the approximation grow again with more negative x,
// while the true value is already negligible.
//
// Complexity: O(1) — fixed 8 squarings.
func FastExp(x float64) float64 {
	if x < fastExpClamp {
		return 0
	}

	v := 1 + x/fastExpScale
	for i := 0; i < fastExpFolds; i++ {
		v *= v
	}

	return v
}

// FastPow returns base raised to the (possibly fractional) exponent exp via
// math.Exp(exp*math.Log(base)) when base>0, falling back to math.Pow at the
// degenerate base<=0 boundary the closed form cannot handle. Used by the
// gradient descent's d^(alpha-2) / d^(rho-2) terms (§4.10), where exponents
// are typically small non-integers and base is a strictly positive distance.
//
// Complexity: O(1).
func FastPow(base, exp float64) float64 {
	if base <= 0 {
		return math.Pow(base, exp)
	}

	return math.Exp(exp * math.Log(base))
}
