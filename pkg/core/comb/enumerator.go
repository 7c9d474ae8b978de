package comb

import (
	"iter"
	"slices"

	"github.com/matzehuels/rowminer/pkg/errors"
)

// Enumerator walks ascending k-tuples over [1, n] in lexicographic order.
//
// The zero value is not usable; create one with NewEnumerator or NewBlock.
// An Enumerator is not safe for concurrent use: give each worker its own.
type Enumerator struct {
	n, k  int
	t     []int
	fixed int // positions [0, fixed) never change
	done  bool
}

// NewEnumerator returns an enumerator positioned at the first combination
// [1, 2, ..., k]. It fails with ErrCodeInvalidConfiguration unless
// 1 <= k <= n.
func NewEnumerator(n, k int) (*Enumerator, error) {
	if err := check(n, k); err != nil {
		return nil, err
	}
	e := &Enumerator{n: n, k: k, t: make([]int, k)}
	e.Reset()
	return e, nil
}

// NewBlock returns an enumerator over the combinations whose leading value is
// first, positioned at [first, first+1, ..., first+k-1]. It fails with
// ErrCodeOutOfRange unless 1 <= first <= n-k+1.
func NewBlock(n, k, first int) (*Enumerator, error) {
	if err := check(n, k); err != nil {
		return nil, err
	}
	if first < 1 || first > n-k+1 {
		return nil, errors.New(errors.ErrCodeOutOfRange,
			"block first(%d) outside [1, %d]", first, n-k+1)
	}
	e := &Enumerator{n: n, k: k, t: make([]int, k), fixed: 1}
	e.t[0] = first
	e.Reset()
	return e, nil
}

func check(n, k int) error {
	if n < 1 || k < 1 || k > n {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"combinations of %d out of %d: need 1 <= k <= n", k, n)
	}
	return nil
}

// Reset rewinds the enumerator to its first combination.
func (e *Enumerator) Reset() {
	start := 1
	if e.fixed > 0 {
		start = e.t[0]
	}
	for i := range e.t {
		e.t[i] = start + i
	}
	e.done = false
}

// Current returns the current combination. The slice is owned by the
// enumerator and is overwritten by Advance; use slices.Clone to keep it.
func (e *Enumerator) Current() []int { return e.t }

// Done reports whether Advance has signalled exhaustion.
func (e *Enumerator) Done() bool { return e.done }

// Advance moves to the next combination in lexicographic order and reports
// whether one exists. After the last combination [n-k+1, ..., n] (or the last
// of a block) it returns false and keeps returning false; Current is then
// left at the last combination.
func (e *Enumerator) Advance() bool {
	if e.done {
		return false
	}
	t, last := e.t, e.k-1
	for i := last; i >= e.fixed; i-- {
		if t[i] < e.n-(last-i) {
			t[i]++
			for j := i + 1; j <= last; j++ {
				t[j] = t[j-1] + 1
			}
			return true
		}
	}
	e.done = true
	return false
}

// All returns an iterator over the remaining combinations, starting with the
// current one. Yielded slices are reused between iterations.
func (e *Enumerator) All() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if e.done {
			return
		}
		for {
			if !yield(e.t) {
				return
			}
			if !e.Advance() {
				return
			}
		}
	}
}

// Combinations returns an iterator over every k-combination of [1, n] in
// lexicographic order. Each yielded slice is a fresh copy. It yields nothing
// for an invalid (n, k).
func Combinations(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		e, err := NewEnumerator(n, k)
		if err != nil {
			return
		}
		for c := range e.All() {
			if !yield(slices.Clone(c)) {
				return
			}
		}
	}
}

// Blocks returns the leading values that partition the k-combinations of
// [1, n]: 1, 2, ..., n-k+1.
func Blocks(n, k int) []int {
	if check(n, k) != nil {
		return nil
	}
	out := make([]int, n-k+1)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
