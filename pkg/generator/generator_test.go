package generator

import (
	"testing"

	"github.com/matzehuels/rowminer/pkg/core/row"
)

func TestGenerator_RowsAreValid(t *testing.T) {
	cfg := row.MustConfig(40, 7)
	gen := New(cfg, 1)

	for i, r := range gen.Rows(500) {
		if !r.Full() {
			t.Fatalf("row %d not full: %v", i, r)
		}
		nums := r.Numbers()
		for j, n := range nums {
			if n < 1 || n > 40 {
				t.Errorf("row %d: number %d out of range", i, n)
			}
			if j > 0 && nums[j-1] >= n {
				t.Errorf("row %d not strictly ascending: %v", i, nums)
			}
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	cfg := row.MustConfig(20, 5)
	a := New(cfg, 7).Rows(50)
	b := New(cfg, 7).Rows(50)
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("row %d = %v, want %v", i, b[i], a[i])
		}
	}

	c := New(cfg, 8).Rows(50)
	same := true
	for i := range a {
		if !a[i].Equal(c[i]) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}

func TestGenerator_FullRow(t *testing.T) {
	cfg := row.MustConfig(4, 4)
	gen := New(cfg, 3)
	for range 10 {
		if got := gen.Row().String(); got != "1,2,3,4" {
			t.Errorf("Row() = %s, want 1,2,3,4", got)
		}
	}
}

func TestGenerator_CoversPool(t *testing.T) {
	cfg := row.MustConfig(6, 1)
	gen := New(cfg, 11)
	seen := make(map[string]bool)
	for _, r := range gen.Rows(200) {
		seen[r.String()] = true
	}
	if len(seen) != 6 {
		t.Errorf("distinct rows = %d, want 6", len(seen))
	}
}

func TestGenerator_RowsNonPositive(t *testing.T) {
	gen := New(row.MustConfig(5, 3), 1)
	if got := gen.Rows(0); got != nil {
		t.Errorf("Rows(0) = %v, want nil", got)
	}
	if got := gen.Seed(); got != 1 {
		t.Errorf("Seed() = %d, want 1", got)
	}
}
