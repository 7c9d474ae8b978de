package comb

import (
	"math"
	"math/bits"
)

// Binomial returns C(n, k), the number of k-element subsets of an n-element
// set. It returns 0 when k < 0 or k > n and saturates at math.MaxUint64 when
// the result does not fit.
func Binomial(n, k int) uint64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := 0; i < k; i++ {
		// result*(n-i) is divisible by (i+1): it equals C(n, i+1) * (i+1).
		hi, lo := bits.Mul64(result, uint64(n-i))
		if hi >= uint64(i+1) {
			return math.MaxUint64
		}
		result, _ = bits.Div64(hi, lo, uint64(i+1))
	}
	return result
}

// BlockSize returns the number of k-combinations of [1, n] whose leading
// value is first, i.e. C(n-first, k-1). It is 0 for an empty block.
func BlockSize(n, k, first int) uint64 {
	if first < 1 || first > n-k+1 {
		return 0
	}
	return Binomial(n-first, k-1)
}
