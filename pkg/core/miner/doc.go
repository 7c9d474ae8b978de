// Package miner computes the rows of a universe that were never observed.
//
// A Miner owns a membership trie for one configuration. Observed rows are
// inserted first (the build phase); Compute then walks the whole universe of
// C(N, K) combinations once, in lexicographic order, and collects every
// combination the trie does not contain.
//
//	cfg, _ := row.NewConfig(5, 3)
//	m := miner.New(cfg)
//	_ = m.InsertNumbers([]int{1, 2, 4})
//	_ = m.InsertNumbers([]int{2, 4, 5})
//	missing, _ := m.Compute(ctx)
//
// # Parallelism
//
// Once the build phase is over the trie is read-only, so ComputeWith can split
// the universe into blocks by leading value (see comb.NewBlock), scan blocks
// on independent workers with private buffers, and concatenate the per-block
// results in block order. The output is identical to a sequential run.
//
// InsertConcurrent parallelizes the build phase by building one sub-trie per
// worker over disjoint chunks of the input and merging them afterwards; no
// lock is shared between workers.
//
// # Cancellation and limits
//
// The enumeration loop checks its context every few thousand candidates and
// can stop after a maximum number of missing rows (Options.Limit).
package miner
