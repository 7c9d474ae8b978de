package trie

import "slices"

// denseStore keeps every node as width consecutive slots in one flat slice,
// so node n's child for value v lives at slots[n*width+v-1].
type denseStore struct {
	width int
	slots []NodeID
}

func newDenseStore(width, capacity int) *denseStore {
	return &denseStore{
		width: width,
		slots: make([]NodeID, 0, width*max(capacity, 1)),
	}
}

func (s *denseStore) Alloc() NodeID {
	id := NodeID(len(s.slots) / s.width)
	s.slots = slices.Grow(s.slots, s.width)
	s.slots = s.slots[:len(s.slots)+s.width]
	clear(s.slots[len(s.slots)-s.width:])
	return id
}

func (s *denseStore) Child(node NodeID, value int) NodeID {
	return s.slots[int(node)*s.width+value-1]
}

func (s *denseStore) SetChild(node NodeID, value int, child NodeID) {
	s.slots[int(node)*s.width+value-1] = child
}

func (s *denseStore) Each(node NodeID, fn func(int, NodeID) bool) {
	base := int(node) * s.width
	for i, c := range s.slots[base : base+s.width] {
		if c != noChild && !fn(i+1, c) {
			return
		}
	}
}

func (s *denseStore) Nodes() int { return len(s.slots) / s.width }

func (s *denseStore) Bytes() int { return cap(s.slots) * 4 }
