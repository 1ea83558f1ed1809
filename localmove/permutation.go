package localmove

import "github.com/cartograph/cartograph/rng"

// randomPermutation returns a uniformly random permutation of [0,n) via an
// in-place Fisher-Yates shuffle.
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
