// Package trie implements a fixed-depth membership trie over ascending
// integer paths, used as the set index for rows.
//
// Every stored path has exactly the trie's depth (the row length K); each
// level branches on a value in [1, maxNumber]. Only path existence is
// recorded: there is no payload, and the final level stores a leaf marker
// instead of a node. If a child is absent at depth d, no stored path shares
// that depth-d prefix, so Contains stops at the first missing child.
//
// # Node representations
//
// Nodes live in an index-addressed arena behind the Store interface. The
// representation is chosen per trie:
//
//   - KindDense: a flat slot array of width maxNumber per node; O(1) descent,
//     O(maxNumber) memory per node. Good for modest N with wide branching.
//   - KindSparse: a presence bitmap plus a popcount-compressed child slice;
//     O(1) rank descent, memory proportional to the children present.
//   - KindSorted: sorted key and child slices with binary search;
//     O(log branching) descent, the smallest footprint for sparse data.
//   - KindAuto: dense for maxNumber <= 64, sparse otherwise.
//
// # Lifecycle
//
// A trie is built by a single writer (Insert, Merge) and then only read
// (Contains, Walk). Reads are safe from many goroutines once writing has
// stopped; interleaving reads and writes is not.
//
// # Debugging
//
// ToDOT and RenderSVG draw small tries with Graphviz.
package trie
