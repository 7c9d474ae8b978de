package miner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/core/trie"
	"github.com/matzehuels/rowminer/pkg/errors"
)

// Miner collects observed rows and computes the missing ones.
//
// Insert methods must not run concurrently with each other or with Compute.
// Compute itself may be called repeatedly.
type Miner struct {
	cfg      row.Config
	trie     *trie.Trie
	trieOpts []trie.Option
}

// New returns an empty miner for cfg. Trie options select the node
// representation. cfg must be valid (see row.NewConfig).
func New(cfg row.Config, opts ...trie.Option) *Miner {
	t, err := trie.New(cfg.MaxNumber(), cfg.RowLength(), opts...)
	if err != nil {
		// Only reachable with a zero Config.
		panic(err)
	}
	return &Miner{cfg: cfg, trie: t, trieOpts: opts}
}

// Config returns the miner's configuration.
func (m *Miner) Config() row.Config { return m.cfg }

// Trie returns the membership trie. Callers must treat it as read-only.
func (m *Miner) Trie() *trie.Trie { return m.trie }

// Len returns the number of distinct rows inserted.
func (m *Miner) Len() int { return m.trie.Len() }

// checkRow validates r against the miner's configuration.
func (m *Miner) checkRow(r *row.Row) error {
	if r == nil {
		return errors.New(errors.ErrCodeInvalidInput, "row is nil")
	}
	if got := r.Config().RowLength(); got != m.cfg.RowLength() {
		return errors.New(errors.ErrCodeRowLengthMismatch,
			"wrong length of a row (%d), must be exactly %d", got, m.cfg.RowLength())
	}
	if r.Len() != m.cfg.RowLength() {
		return errors.New(errors.ErrCodeRowLengthMismatch,
			"row %s holds %d numbers, must be exactly %d", r, r.Len(), m.cfg.RowLength())
	}
	return nil
}

// Insert adds an observed row. Inserting the same row twice has no effect.
//
// Insert fails with ErrCodeRowLengthMismatch if the row's configured length
// or its current size differs from the miner's row length, and with
// ErrCodeOutOfRange if it holds a number above the miner's maxNumber.
func (m *Miner) Insert(r *row.Row) error {
	if err := m.checkRow(r); err != nil {
		return err
	}
	_, err := m.trie.Insert(r.Numbers())
	return err
}

// InsertAll inserts rows in order and stops at the first rejected row.
// Rows before the rejected one stay inserted.
func (m *Miner) InsertAll(rows []*row.Row) error {
	for i, r := range rows {
		if err := m.Insert(r); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// InsertNumbers inserts a raw tuple. The numbers may be in any order; they
// are validated and sorted through a row.Row first.
func (m *Miner) InsertNumbers(numbers []int) error {
	if len(numbers) != m.cfg.RowLength() {
		return errors.New(errors.ErrCodeRowLengthMismatch,
			"tuple of %d numbers, must be exactly %d", len(numbers), m.cfg.RowLength())
	}
	r, err := row.FromNumbers(m.cfg, numbers...)
	if err != nil {
		return err
	}
	return m.Insert(r)
}

// InsertConcurrent inserts rows using up to workers goroutines. Each worker
// builds a private sub-trie over a contiguous chunk of rows; the sub-tries are
// merged into the miner's trie afterwards. If workers <= 0, runtime.NumCPU()
// is used. On error nothing is merged.
func (m *Miner) InsertConcurrent(ctx context.Context, rows []*row.Row, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || len(rows) < 2*workers {
		return m.InsertAll(rows)
	}

	chunk := (len(rows) + workers - 1) / workers
	parts := make([]*trie.Trie, 0, workers)
	for start := 0; start < len(rows); start += chunk {
		t, err := trie.New(m.cfg.MaxNumber(), m.cfg.RowLength(), m.trieOpts...)
		if err != nil {
			return err
		}
		parts = append(parts, t)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		start := i * chunk
		end := min(start+chunk, len(rows))
		g.Go(func() error {
			for j, r := range rows[start:end] {
				if j%checkInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if err := m.checkRow(r); err != nil {
					return fmt.Errorf("row %d: %w", start+j, err)
				}
				if _, err := part.Insert(r.Numbers()); err != nil {
					return fmt.Errorf("row %d: %w", start+j, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, part := range parts {
		if err := m.trie.Merge(part); err != nil {
			return err
		}
	}
	return nil
}

// Compute returns every row of the universe that was not inserted, in
// ascending lexicographic order. It runs sequentially.
func (m *Miner) Compute(ctx context.Context) ([]*row.Row, error) {
	res, err := m.ComputeWith(ctx, Options{Workers: 1})
	if err != nil {
		return nil, err
	}
	return res.Missing, nil
}

// Missing reports whether the full row r is absent from the observed set.
func (m *Miner) Missing(r *row.Row) (bool, error) {
	if err := m.checkRow(r); err != nil {
		return false, err
	}
	return !m.trie.Contains(r.Numbers()), nil
}
