package trie

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// sparseNode records which values have children in a bitmap and stores the
// children compactly: the child for value v sits at index rank(v)-1.
type sparseNode struct {
	present *bitset.BitSet
	kids    []NodeID
}

type sparseStore struct {
	width uint
	nodes []sparseNode
}

func newSparseStore(width, capacity int) *sparseStore {
	return &sparseStore{
		width: uint(width),
		nodes: make([]sparseNode, 0, max(capacity, 1)),
	}
}

func (s *sparseStore) Alloc() NodeID {
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, sparseNode{present: bitset.New(s.width + 1)})
	return id
}

func (s *sparseStore) Child(node NodeID, value int) NodeID {
	n := &s.nodes[node]
	v := uint(value)
	if !n.present.Test(v) {
		return noChild
	}
	return n.kids[n.present.Rank(v)-1]
}

func (s *sparseStore) SetChild(node NodeID, value int, child NodeID) {
	n := &s.nodes[node]
	v := uint(value)
	if n.present.Test(v) {
		n.kids[n.present.Rank(v)-1] = child
		return
	}
	n.present.Set(v)
	n.kids = slices.Insert(n.kids, int(n.present.Rank(v))-1, child)
}

func (s *sparseStore) Each(node NodeID, fn func(int, NodeID) bool) {
	n := &s.nodes[node]
	idx := 0
	for v, ok := n.present.NextSet(0); ok; v, ok = n.present.NextSet(v + 1) {
		if !fn(int(v), n.kids[idx]) {
			return
		}
		idx++
	}
}

func (s *sparseStore) Nodes() int { return len(s.nodes) }

func (s *sparseStore) Bytes() int {
	total := cap(s.nodes) * 32
	for i := range s.nodes {
		total += len(s.nodes[i].present.Bytes())*8 + cap(s.nodes[i].kids)*4
	}
	return total
}
