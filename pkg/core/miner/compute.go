package miner

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rowminer/pkg/core/comb"
	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/errors"
)

// checkInterval is how many candidates are scanned between context checks.
const checkInterval = 4096

// Options controls a Compute run.
type Options struct {
	// Workers is the number of goroutines scanning blocks of the universe.
	// 1 scans sequentially; 0 or less uses runtime.NumCPU().
	Workers int

	// Limit caps the missing rows returned. 0 means no limit.
	Limit int

	// Progress, if set, receives the number of candidates a worker has
	// checked since its last report. It is called from worker goroutines and
	// must be safe for concurrent use.
	Progress func(checked uint64)
}

// Result is the outcome of a Compute run.
type Result struct {
	// Missing holds the missing rows in ascending lexicographic order.
	Missing []*row.Row
	// Checked is the number of candidates tested against the trie.
	Checked uint64
	// Universe is C(N, K).
	Universe uint64
	// Truncated is set when more than Limit rows are missing.
	Truncated bool
}

// ComputeWith enumerates the universe according to opts.
//
// With a Limit, Truncated reports whether more than Limit rows are missing,
// independent of the worker count. If ctx is cancelled the scan stops and the
// context's error is returned, wrapped with ErrCodeCanceled.
func (m *Miner) ComputeWith(ctx context.Context, opts Options) (*Result, error) {
	n, k := m.cfg.MaxNumber(), m.cfg.RowLength()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if opts.Limit < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "limit(%d) < 0", opts.Limit)
	}

	blocks := comb.Blocks(n, k)
	results := make([]blockResult, len(blocks))

	if workers == 1 {
		e, err := comb.NewEnumerator(n, k)
		if err != nil {
			return nil, err
		}
		results = results[:1]
		if err := m.scan(ctx, e, opts, nil, &results[0]); err != nil {
			return nil, err
		}
	} else {
		var lim *blockLimiter
		if opts.Limit > 0 {
			lim = newBlockLimiter(len(blocks), opts.Limit)
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, first := range blocks {
			g.Go(func() error {
				if lim.skip(i) {
					return nil
				}
				e, err := comb.NewBlock(n, k, first)
				if err != nil {
					return err
				}
				var stop func() bool
				if lim != nil {
					stop = func() bool { return lim.skip(i) }
				}
				if err := m.scan(gctx, e, opts, stop, &results[i]); err != nil {
					return err
				}
				lim.finish(i, len(results[i].missing))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	res := &Result{Universe: m.cfg.UniverseSize()}
	for i := range results {
		res.Checked += results[i].checked
		if opts.Limit > 0 && len(res.Missing) > opts.Limit {
			continue
		}
		res.Missing = append(res.Missing, results[i].missing...)
	}
	if opts.Limit > 0 && len(res.Missing) > opts.Limit {
		res.Missing = res.Missing[:opts.Limit]
		res.Truncated = true
	}
	return res, nil
}

type blockResult struct {
	missing []*row.Row
	checked uint64
}

// blockLimiter stops blocks whose rows can no longer reach the output once
// earlier blocks hold more than limit missing rows. A nil limiter never stops.
type blockLimiter struct {
	mu     sync.Mutex
	limit  int
	counts []int // -1 while a block is running
	cutoff atomic.Int64
}

func newBlockLimiter(blocks, limit int) *blockLimiter {
	l := &blockLimiter{limit: limit, counts: make([]int, blocks)}
	for i := range l.counts {
		l.counts[i] = -1
	}
	l.cutoff.Store(int64(blocks))
	return l
}

// skip reports whether block i lies past the cutoff.
func (l *blockLimiter) skip(i int) bool {
	return l != nil && int64(i) > l.cutoff.Load()
}

// finish records the rows found by block i and moves the cutoff to the first
// block at which finished blocks alone exceed the limit.
func (l *blockLimiter) finish(i, missing int) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[i] = missing
	sum := 0
	for j, c := range l.counts {
		if c > 0 {
			sum += c
		}
		if sum > l.limit {
			if int64(j) < l.cutoff.Load() {
				l.cutoff.Store(int64(j))
			}
			return
		}
	}
}

// scan drives one enumerator to exhaustion, testing every candidate,
// including the last one, against the trie. With a Limit it stops once
// Limit+1 rows are missing; stop, if set, ends the scan early.
func (m *Miner) scan(ctx context.Context, e *comb.Enumerator, opts Options, stop func() bool, out *blockResult) error {
	var sinceReport uint64
	for {
		cur := e.Current()
		out.checked++
		sinceReport++
		if !m.trie.Contains(cur) {
			r, err := row.FromNumbers(m.cfg, cur...)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "materialize %v", cur)
			}
			out.missing = append(out.missing, r)
			if opts.Limit > 0 && len(out.missing) > opts.Limit {
				break
			}
			if stop != nil && stop() {
				break
			}
		}

		if sinceReport == checkInterval {
			if err := ctx.Err(); err != nil {
				return errors.Wrap(errors.ErrCodeCanceled, err, "scan stopped after %d candidates", out.checked)
			}
			if opts.Progress != nil {
				opts.Progress(sinceReport)
			}
			sinceReport = 0
			if stop != nil && stop() {
				break
			}
		}

		if !e.Advance() {
			break
		}
	}
	if opts.Progress != nil && sinceReport > 0 {
		opts.Progress(sinceReport)
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCanceled, err, "scan stopped after %d candidates", out.checked)
	}
	return nil
}
