package trie

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/rowminer/pkg/errors"
)

// NodeID addresses a node in a Store arena. The root is always node 0.
type NodeID uint32

const (
	rootID NodeID = 0
	// noChild marks an absent child. The root is never anyone's child, so 0
	// is free to mean "none".
	noChild NodeID = 0
	// leafID marks the end of a stored path at the last level.
	leafID NodeID = math.MaxUint32
	// maxNodes keeps arena ids clear of leafID.
	maxNodes = math.MaxUint32 - 1
)

// Store is the node arena behind a Trie. Values are in [1, width]; a child
// is either another node, or the leaf marker on the last level.
type Store interface {
	// Alloc appends an empty node and returns its id.
	Alloc() NodeID
	// Child returns the child of node for value, or 0 if absent.
	Child(node NodeID, value int) NodeID
	// SetChild links value to child under node.
	SetChild(node NodeID, value int, child NodeID)
	// Each calls fn for every child of node in ascending value order until
	// fn returns false.
	Each(node NodeID, fn func(value int, child NodeID) bool)
	// Nodes returns the number of allocated nodes.
	Nodes() int
	// Bytes estimates the memory held by the arena.
	Bytes() int
}

// Kind selects a Store implementation.
type Kind int

const (
	KindAuto Kind = iota
	KindDense
	KindSparse
	KindSorted
)

// autoDenseLimit is the largest maxNumber for which KindAuto picks dense nodes.
const autoDenseLimit = 64

var kindNames = map[Kind]string{
	KindAuto:   "auto",
	KindDense:  "dense",
	KindSparse: "sparse",
	KindSorted: "sorted",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a name such as "dense" into a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	if s == "" {
		return KindAuto, nil
	}
	return KindAuto, errors.New(errors.ErrCodeInvalidInput,
		"unknown node representation %q (want auto, dense, sparse or sorted)", s)
}

// resolve replaces KindAuto with the concrete kind for width.
func (k Kind) resolve(width int) Kind {
	if k != KindAuto {
		return k
	}
	if width <= autoDenseLimit {
		return KindDense
	}
	return KindSparse
}

// NewStore returns an empty arena of the given kind for values in [1, width].
func NewStore(kind Kind, width, capacity int) Store {
	switch kind.resolve(width) {
	case KindSparse:
		return newSparseStore(width, capacity)
	case KindSorted:
		return newSortedStore(capacity)
	default:
		return newDenseStore(width, capacity)
	}
}
