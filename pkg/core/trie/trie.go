package trie

import (
	"github.com/matzehuels/rowminer/pkg/errors"
)

// Trie is a set of fixed-length integer paths.
//
// Every path has length Depth() and values in [1, MaxNumber()]. The zero
// value is not usable; create one with New.
type Trie struct {
	maxNumber int
	depth     int
	kind      Kind
	store     Store
	size      int
}

type options struct {
	kind     Kind
	capacity int
}

// Option configures a Trie.
type Option func(*options)

// WithKind selects the node representation. The default is KindAuto.
func WithKind(k Kind) Option {
	return func(o *options) { o.kind = k }
}

// WithCapacity pre-sizes the arena for about n internal nodes.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// New returns an empty trie for paths of length depth over [1, maxNumber].
// It fails with ErrCodeInvalidConfiguration unless 1 <= depth <= maxNumber.
func New(maxNumber, depth int, opts ...Option) (*Trie, error) {
	if maxNumber < 1 || depth < 1 || depth > maxNumber {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration,
			"trie of depth %d over [1, %d]: need 1 <= depth <= maxNumber", depth, maxNumber)
	}
	o := options{kind: KindAuto}
	for _, opt := range opts {
		opt(&o)
	}
	kind := o.kind.resolve(maxNumber)
	t := &Trie{
		maxNumber: maxNumber,
		depth:     depth,
		kind:      kind,
		store:     NewStore(kind, maxNumber, o.capacity),
	}
	t.store.Alloc() // root
	return t, nil
}

// MaxNumber returns the largest value a path may contain.
func (t *Trie) MaxNumber() int { return t.maxNumber }

// Depth returns the length of every stored path.
func (t *Trie) Depth() int { return t.depth }

// Kind returns the resolved node representation.
func (t *Trie) Kind() Kind { return t.kind }

// Len returns the number of distinct stored paths.
func (t *Trie) Len() int { return t.size }

// Nodes returns the number of internal nodes, including the root.
func (t *Trie) Nodes() int { return t.store.Nodes() }

// validate checks a path before any node is created, so a rejected insert
// leaves no partial prefix behind.
func (t *Trie) validate(path []int) error {
	if len(path) != t.depth {
		return errors.New(errors.ErrCodeRowLengthMismatch,
			"path length %d, must be exactly %d", len(path), t.depth)
	}
	for _, v := range path {
		if v < 1 || v > t.maxNumber {
			return errors.New(errors.ErrCodeOutOfRange,
				"value %d outside [1, %d]", v, t.maxNumber)
		}
	}
	return nil
}

// Insert adds path to the trie and reports whether it was new. Inserting a
// path that is already present changes nothing.
//
// Insert fails with ErrCodeRowLengthMismatch if len(path) != Depth(),
// ErrCodeOutOfRange for a value outside [1, MaxNumber()], and
// ErrCodeCapacityExceeded if the arena is full.
func (t *Trie) Insert(path []int) (bool, error) {
	if err := t.validate(path); err != nil {
		return false, err
	}
	node := rootID
	last := t.depth - 1
	for _, v := range path[:last] {
		child := t.store.Child(node, v)
		if child == noChild {
			if uint64(t.store.Nodes()) >= maxNodes {
				return false, errors.New(errors.ErrCodeCapacityExceeded,
					"trie arena is full (%d nodes)", t.store.Nodes())
			}
			child = t.store.Alloc()
			t.store.SetChild(node, v, child)
		}
		node = child
	}
	if t.store.Child(node, path[last]) == leafID {
		return false, nil
	}
	t.store.SetChild(node, path[last], leafID)
	t.size++
	return true, nil
}

// Contains reports whether path is stored. Paths of the wrong length or with
// out-of-range values are never stored.
func (t *Trie) Contains(path []int) bool {
	if len(path) != t.depth {
		return false
	}
	node := rootID
	last := t.depth - 1
	for i, v := range path {
		if v < 1 || v > t.maxNumber {
			return false
		}
		child := t.store.Child(node, v)
		if child == noChild {
			return false
		}
		if i == last {
			return child == leafID
		}
		node = child
	}
	return false
}

// Walk calls fn for every stored path in lexicographic order until fn
// returns false. The slice passed to fn is reused between calls.
func (t *Trie) Walk(fn func(path []int) bool) {
	buf := make([]int, t.depth)
	t.walk(rootID, 0, buf, fn)
}

func (t *Trie) walk(node NodeID, depth int, buf []int, fn func([]int) bool) bool {
	keepGoing := true
	t.store.Each(node, func(v int, child NodeID) bool {
		buf[depth] = v
		if child == leafID {
			keepGoing = fn(buf)
		} else {
			keepGoing = t.walk(child, depth+1, buf, fn)
		}
		return keepGoing
	})
	return keepGoing
}

// Paths returns copies of all stored paths in lexicographic order.
func (t *Trie) Paths() [][]int {
	out := make([][]int, 0, t.size)
	t.Walk(func(p []int) bool {
		out = append(out, append([]int(nil), p...))
		return true
	})
	return out
}

// Merge inserts every path of src into t. Both tries must have the same
// depth and maxNumber.
func (t *Trie) Merge(src *Trie) error {
	if src.depth != t.depth {
		return errors.New(errors.ErrCodeRowLengthMismatch,
			"merge depth %d into depth %d", src.depth, t.depth)
	}
	if src.maxNumber != t.maxNumber {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"merge maxNumber %d into maxNumber %d", src.maxNumber, t.maxNumber)
	}
	var err error
	src.Walk(func(p []int) bool {
		_, err = t.Insert(p)
		return err == nil
	})
	return err
}

// Stats summarizes a trie's size.
type Stats struct {
	Paths int    `json:"paths"`
	Nodes int    `json:"nodes"`
	Bytes int    `json:"bytes"`
	Kind  string `json:"kind"`
}

// Stats returns the current size summary.
func (t *Trie) Stats() Stats {
	return Stats{
		Paths: t.size,
		Nodes: t.store.Nodes(),
		Bytes: t.store.Bytes(),
		Kind:  t.kind.String(),
	}
}
