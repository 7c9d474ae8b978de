package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rowminer/pkg/errors"
)

var allKinds = []Kind{KindDense, KindSparse, KindSorted}

func newTrie(t *testing.T, n, k int, kind Kind) *Trie {
	t.Helper()
	tr, err := New(n, k, WithKind(kind))
	require.NoError(t, err)
	return tr
}

func TestNew_Invalid(t *testing.T) {
	for _, tc := range [][2]int{{0, 1}, {5, 0}, {3, 4}} {
		_, err := New(tc[0], tc[1])
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration), "New(%d, %d)", tc[0], tc[1])
	}
}

func TestTrie_InsertContains(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			tr := newTrie(t, 5, 3, kind)

			for _, p := range [][]int{{1, 2, 4}, {2, 4, 5}, {1, 3, 5}, {3, 4, 5}} {
				added, err := tr.Insert(p)
				require.NoError(t, err)
				assert.True(t, added)
			}

			assert.True(t, tr.Contains([]int{1, 2, 4}))
			assert.True(t, tr.Contains([]int{3, 4, 5}))
			assert.False(t, tr.Contains([]int{1, 2, 3}))
			assert.False(t, tr.Contains([]int{1, 2, 5}), "shared prefix, different leaf")
			assert.False(t, tr.Contains([]int{4, 5, 1}), "missing first level")
			assert.False(t, tr.Contains([]int{1, 2}), "wrong length")
			assert.False(t, tr.Contains([]int{1, 2, 9}), "out of range")
			assert.Equal(t, 4, tr.Len())
		})
	}
}

func TestTrie_InsertIdempotent(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			tr := newTrie(t, 6, 3, kind)

			added, err := tr.Insert([]int{1, 4, 6})
			require.NoError(t, err)
			require.True(t, added)
			nodes := tr.Nodes()

			added, err = tr.Insert([]int{1, 4, 6})
			require.NoError(t, err)
			assert.False(t, added)
			assert.Equal(t, 1, tr.Len())
			assert.Equal(t, nodes, tr.Nodes(), "no additional state")
		})
	}
}

func TestTrie_InsertErrors(t *testing.T) {
	tr := newTrie(t, 5, 3, KindDense)

	_, err := tr.Insert([]int{1, 2})
	assert.True(t, errors.Is(err, errors.ErrCodeRowLengthMismatch))

	_, err = tr.Insert([]int{1, 2, 3, 4})
	assert.True(t, errors.Is(err, errors.ErrCodeRowLengthMismatch))

	_, err = tr.Insert([]int{1, 2, 6})
	assert.True(t, errors.Is(err, errors.ErrCodeOutOfRange))

	_, err = tr.Insert([]int{0, 2, 3})
	assert.True(t, errors.Is(err, errors.ErrCodeOutOfRange))

	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 1, tr.Nodes(), "rejected inserts leave only the root")
}

func TestTrie_DepthOne(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			tr := newTrie(t, 4, 1, kind)
			_, err := tr.Insert([]int{3})
			require.NoError(t, err)
			assert.True(t, tr.Contains([]int{3}))
			assert.False(t, tr.Contains([]int{2}))
			assert.Equal(t, 1, tr.Nodes())
		})
	}
}

func TestTrie_WalkLexicographic(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			tr := newTrie(t, 5, 3, kind)
			for _, p := range [][]int{{3, 4, 5}, {1, 3, 5}, {2, 4, 5}, {1, 2, 4}} {
				_, err := tr.Insert(p)
				require.NoError(t, err)
			}
			want := [][]int{{1, 2, 4}, {1, 3, 5}, {2, 4, 5}, {3, 4, 5}}
			assert.Equal(t, want, tr.Paths())
		})
	}
}

func TestTrie_WalkStops(t *testing.T) {
	tr := newTrie(t, 5, 2, KindSparse)
	for _, p := range [][]int{{1, 2}, {1, 3}, {2, 3}} {
		_, _ = tr.Insert(p)
	}
	calls := 0
	tr.Walk(func([]int) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)
}

func TestTrie_RepresentationsAgree(t *testing.T) {
	paths := [][]int{
		{1, 2, 3, 4}, {1, 2, 3, 9}, {2, 5, 7, 8}, {6, 7, 8, 9}, {1, 5, 6, 9}, {3, 4, 8, 9},
	}
	tries := make([]*Trie, len(allKinds))
	for i, kind := range allKinds {
		tries[i] = newTrie(t, 9, 4, kind)
		for _, p := range paths {
			_, err := tries[i].Insert(p)
			require.NoError(t, err)
		}
	}
	for i := 1; i < len(tries); i++ {
		assert.Equal(t, tries[0].Paths(), tries[i].Paths(), "kind %s", tries[i].Kind())
		assert.Equal(t, tries[0].Nodes(), tries[i].Nodes(), "kind %s", tries[i].Kind())
	}
}

func TestTrie_Merge(t *testing.T) {
	a := newTrie(t, 6, 2, KindDense)
	b := newTrie(t, 6, 2, KindSorted)
	_, _ = a.Insert([]int{1, 2})
	_, _ = a.Insert([]int{3, 4})
	_, _ = b.Insert([]int{3, 4})
	_, _ = b.Insert([]int{5, 6})

	require.NoError(t, a.Merge(b))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5, 6}}, a.Paths())
	assert.Equal(t, 3, a.Len())
}

func TestTrie_MergeMismatch(t *testing.T) {
	a := newTrie(t, 6, 2, KindDense)
	b := newTrie(t, 6, 3, KindDense)
	c := newTrie(t, 7, 2, KindDense)

	assert.True(t, errors.Is(a.Merge(b), errors.ErrCodeRowLengthMismatch))
	assert.True(t, errors.Is(a.Merge(c), errors.ErrCodeInvalidConfiguration))
}

func TestKind(t *testing.T) {
	for _, name := range []string{"auto", "dense", "sparse", "sorted", "DENSE"} {
		_, err := ParseKind(name)
		assert.NoError(t, err, name)
	}
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindAuto, k)

	_, err = ParseKind("btree")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	assert.Equal(t, KindDense, KindAuto.resolve(40))
	assert.Equal(t, KindSparse, KindAuto.resolve(90))
	assert.Equal(t, KindSorted, KindSorted.resolve(40))

	tr, err := New(90, 3)
	require.NoError(t, err)
	assert.Equal(t, KindSparse, tr.Kind())
}

func TestTrie_Stats(t *testing.T) {
	tr := newTrie(t, 5, 3, KindDense)
	_, _ = tr.Insert([]int{1, 2, 3})
	s := tr.Stats()
	assert.Equal(t, 1, s.Paths)
	assert.Equal(t, 3, s.Nodes)
	assert.Equal(t, "dense", s.Kind)
	assert.Positive(t, s.Bytes)
}

func TestTrie_ToDOT(t *testing.T) {
	tr := newTrie(t, 5, 2, KindDense)
	_, _ = tr.Insert([]int{1, 2})
	_, _ = tr.Insert([]int{1, 3})

	dot := tr.ToDOT()
	assert.Contains(t, dot, "digraph Trie {")
	assert.Contains(t, dot, "n0 -> n1 [label=\"1\"]")
	assert.Contains(t, dot, "n1 -> n2 [label=\"2\"]")
	assert.Contains(t, dot, "n1 -> n3 [label=\"3\"]")
	assert.Contains(t, dot, "doublecircle")
}
