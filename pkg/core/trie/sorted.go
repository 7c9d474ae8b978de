package trie

import "slices"

// sortedNode keeps parallel slices of ascending values and their children.
type sortedNode struct {
	keys []int32
	kids []NodeID
}

type sortedStore struct {
	nodes []sortedNode
}

func newSortedStore(capacity int) *sortedStore {
	return &sortedStore{nodes: make([]sortedNode, 0, max(capacity, 1))}
}

func (s *sortedStore) Alloc() NodeID {
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, sortedNode{})
	return id
}

func (s *sortedStore) Child(node NodeID, value int) NodeID {
	n := &s.nodes[node]
	i, found := slices.BinarySearch(n.keys, int32(value))
	if !found {
		return noChild
	}
	return n.kids[i]
}

func (s *sortedStore) SetChild(node NodeID, value int, child NodeID) {
	n := &s.nodes[node]
	i, found := slices.BinarySearch(n.keys, int32(value))
	if found {
		n.kids[i] = child
		return
	}
	n.keys = slices.Insert(n.keys, i, int32(value))
	n.kids = slices.Insert(n.kids, i, child)
}

func (s *sortedStore) Each(node NodeID, fn func(int, NodeID) bool) {
	n := &s.nodes[node]
	for i, k := range n.keys {
		if !fn(int(k), n.kids[i]) {
			return
		}
	}
}

func (s *sortedStore) Nodes() int { return len(s.nodes) }

func (s *sortedStore) Bytes() int {
	total := cap(s.nodes) * 48
	for i := range s.nodes {
		total += cap(s.nodes[i].keys)*4 + cap(s.nodes[i].kids)*4
	}
	return total
}
