package row

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/rowminer/pkg/errors"
)

// Row is a fixed-capacity, always-sorted sequence of distinct numbers in
// [1, cfg.MaxNumber()]. Its capacity is cfg.RowLength().
//
// Row is a value object: it is not safe for concurrent mutation, and
// inserting it into a trie does not retain it.
type Row struct {
	cfg     Config
	numbers []int
}

// New returns an empty row for cfg.
func New(cfg Config) *Row {
	return &Row{
		cfg:     cfg,
		numbers: make([]int, 0, cfg.rowLength),
	}
}

// FromNumbers returns a row holding numbers, appended in the given order.
// The first rejected number aborts construction.
func FromNumbers(cfg Config, numbers ...int) (*Row, error) {
	r := New(cfg)
	for _, n := range numbers {
		if err := r.Append(n); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustFromNumbers is like FromNumbers but panics on error.
func MustFromNumbers(cfg Config, numbers ...int) *Row {
	r, err := FromNumbers(cfg, numbers...)
	if err != nil {
		panic(err)
	}
	return r
}

// Append inserts number into the row, keeping the populated prefix sorted.
//
// Append fails with:
//   - ErrCodeOutOfRange if number is outside [1, MaxNumber]
//   - ErrCodeCapacityExceeded if the row already holds RowLength numbers
//   - ErrCodeDuplicateNumber if number is already present
func (r *Row) Append(number int) error {
	if number < 1 {
		return errors.New(errors.ErrCodeOutOfRange, "number(%d) < 1", number)
	}
	if number > r.cfg.maxNumber {
		return errors.New(errors.ErrCodeOutOfRange,
			"number(%d) > maxNumber(%d)", number, r.cfg.maxNumber)
	}
	if len(r.numbers) == r.cfg.rowLength {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"row cannot accommodate more than %d numbers", r.cfg.rowLength)
	}
	i, found := slices.BinarySearch(r.numbers, number)
	if found {
		return errors.New(errors.ErrCodeDuplicateNumber,
			"number(%d) is already in row %s", number, r)
	}
	r.numbers = slices.Insert(r.numbers, i, number)
	return nil
}

// At returns the number at index, counting from the smallest.
// It fails with ErrCodeIndexOutOfRange if index is not in [0, Len()).
func (r *Row) At(index int) (int, error) {
	if index < 0 {
		return 0, errors.New(errors.ErrCodeIndexOutOfRange, "index(%d) < 0", index)
	}
	if index >= len(r.numbers) {
		return 0, errors.New(errors.ErrCodeIndexOutOfRange,
			"index(%d) >= size(%d)", index, len(r.numbers))
	}
	return r.numbers[index], nil
}

// Len returns the number of values currently in the row.
func (r *Row) Len() int { return len(r.numbers) }

// Full reports whether the row holds RowLength values.
func (r *Row) Full() bool { return len(r.numbers) == r.cfg.rowLength }

// Config returns the configuration the row was created with.
func (r *Row) Config() Config { return r.cfg }

// Numbers returns a copy of the populated, ascending values.
func (r *Row) Numbers() []int { return slices.Clone(r.numbers) }

// Reset empties the row so the buffer can be reused.
func (r *Row) Reset() { r.numbers = r.numbers[:0] }

// Equal reports whether r and other have the same row length and identical
// ordered values.
func (r *Row) Equal(other *Row) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.cfg.rowLength == other.cfg.rowLength && slices.Equal(r.numbers, other.numbers)
}

// Compare compares rows lexicographically by their ordered values.
// The result is -1, 0 or +1; a proper prefix sorts first.
func (r *Row) Compare(other *Row) int {
	return slices.Compare(r.numbers, other.numbers)
}

// String formats the row as comma-separated numbers, e.g. "1,2,4".
func (r *Row) String() string {
	var sb strings.Builder
	for i, n := range r.numbers {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}

// Strings formats each row with String.
func Strings(rows []*Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return out
}
