// Package comb enumerates K-combinations of [1, N] in lexicographic order.
//
// An Enumerator holds a single mutable ascending tuple and advances it in
// place, so a full pass over all C(N, K) combinations allocates nothing after
// construction. Advance costs O(K) in the worst case and O(1) amortized.
//
//	e, _ := comb.NewEnumerator(5, 3)
//	for {
//	    fmt.Println(e.Current()) // [1 2 3], [1 2 4], ... [3 4 5]
//	    if !e.Advance() {
//	        break
//	    }
//	}
//
// # Blocks
//
// For parallel work the universe can be split into contiguous blocks by the
// leading value: NewBlock(n, k, first) visits exactly the combinations whose
// first element is first. Blocks for first = 1..N-K+1 are disjoint, each one
// is already in lexicographic order, and concatenating them in order of first
// reproduces the full lexicographic sequence.
//
// # Counting
//
// Binomial computes C(n, k) exactly in uint64 and saturates on overflow.
// BlockSize(n, k, first) is C(n-first, k-1).
package comb
