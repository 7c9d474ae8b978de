package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/rowminer/pkg/cache"
	"github.com/matzehuels/rowminer/pkg/core/miner"
	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/core/trie"
	"github.com/matzehuels/rowminer/pkg/generator"
	rowio "github.com/matzehuels/rowminer/pkg/io"
	"github.com/matzehuels/rowminer/pkg/observability"
	"github.com/matzehuels/rowminer/pkg/sink"
)

// TTLResult is how long a computed result stays cached.
const TTLResult = 7 * 24 * time.Hour

// Runner executes mining runs with result caching.
//
// A Runner holds no per-run state; multiple goroutines can share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects DefaultKeyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedResult is the cache encoding of a run's output.
type cachedResult struct {
	Missing   [][]int    `json:"missing"`
	Truncated bool       `json:"truncated"`
	Distinct  int        `json:"distinct"`
	Checked   uint64     `json:"checked"`
	Trie      trie.Stats `json:"trie"`
}

// Execute runs load → build → compute, consulting the cache between load
// and build.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	logger := opts.Logger
	cfg := opts.Config()

	result := &Result{
		RunID:  uuid.NewString(),
		Config: cfg,
	}
	result.Stats.Universe = cfg.UniverseSize()

	loadStart := time.Now()
	rows, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Observed = len(rows)
	result.DatasetHash = DatasetHash(rows)
	result.Stats.LoadTime = time.Since(loadStart)

	logger.Info("loaded rows",
		"rows", len(rows),
		"source", opts.Source(),
		"duration", result.Stats.LoadTime)

	key := r.Keyer.ResultKey(cfg.String(), result.DatasetHash, opts.ResultKeyOpts())
	if !opts.Refresh && r.lookup(ctx, logger, key, cfg, result) {
		logger.Info("result cached", "missing", len(result.Missing))
		return result, nil
	}

	m := miner.New(cfg, trie.WithKind(opts.Kind()), trie.WithCapacity(trieCapacity(len(rows), cfg)))

	buildStart := time.Now()
	observability.Miner().OnBuildStart(ctx, cfg.String(), len(rows))
	if opts.Concurrent {
		err = m.InsertConcurrent(ctx, rows, opts.Workers)
	} else {
		err = m.InsertAll(rows)
	}
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Miner().OnBuildComplete(ctx, cfg.String(), m.Trie().Nodes(), result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Distinct = m.Len()
	result.Stats.Trie = m.Trie().Stats()

	logger.Info("built trie",
		"distinct", result.Distinct,
		"nodes", result.Stats.Trie.Nodes,
		"kind", result.Stats.Trie.Kind,
		"duration", result.Stats.BuildTime)

	computeStart := time.Now()
	observability.Miner().OnComputeStart(ctx, cfg.String(), result.Stats.Universe)
	res, err := m.ComputeWith(ctx, miner.Options{
		Workers:  opts.Workers,
		Limit:    opts.Limit,
		Progress: opts.Progress,
	})
	result.Stats.ComputeTime = time.Since(computeStart)
	missing := 0
	if res != nil {
		missing = len(res.Missing)
	}
	observability.Miner().OnComputeComplete(ctx, cfg.String(), missing, result.Stats.ComputeTime, err)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	result.Missing = res.Missing
	result.Truncated = res.Truncated
	result.Stats.Checked = res.Checked

	logger.Info("computed missing rows",
		"missing", len(res.Missing),
		"checked", res.Checked,
		"truncated", res.Truncated,
		"duration", result.Stats.ComputeTime)

	r.store(ctx, logger, key, result)
	return result, nil
}

// Load returns the dataset selected by opts. Options must be validated.
func (r *Runner) Load(ctx context.Context, opts Options) ([]*row.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := opts.Config()
	switch {
	case len(opts.Rows) > 0:
		return rowio.FromTuples(opts.Rows, cfg)
	case opts.Input != "":
		return rowio.ReadFile(opts.Input, cfg)
	default:
		return generator.New(cfg, opts.Seed).Rows(opts.Generate), nil
	}
}

// lookup fills result from the cache. Unreadable entries count as misses.
func (r *Runner) lookup(ctx context.Context, logger *log.Logger, key string, cfg row.Config, result *Result) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "err", err)
		return false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return false
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		observability.Cache().OnCacheMiss(ctx, key)
		return false
	}
	missing, err := rowio.FromTuples(cached.Missing, cfg)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, key)
		return false
	}

	observability.Cache().OnCacheHit(ctx, key)
	result.Missing = missing
	result.Truncated = cached.Truncated
	result.Distinct = cached.Distinct
	result.Stats.Checked = cached.Checked
	result.Stats.Trie = cached.Trie
	result.CacheHit = true
	return true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, key string, result *Result) {
	data, err := json.Marshal(cachedResult{
		Missing:   rowio.Tuples(result.Missing),
		Truncated: result.Truncated,
		Distinct:  result.Distinct,
		Checked:   result.Stats.Checked,
		Trie:      result.Stats.Trie,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, TTLResult); err != nil {
		logger.Warn("cache store failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// trieCapacity estimates the internal node count, capped so that large
// datasets grow the arena on demand instead of reserving it upfront.
func trieCapacity(rows int, cfg row.Config) int {
	const maxPrealloc = 1 << 16
	return min(rows*(cfg.RowLength()-1)+1, maxPrealloc)
}

// DatasetHash fingerprints the set of distinct rows in a dataset, so row
// order and repeated rows do not change it.
func DatasetHash(rows []*row.Row) string {
	lines := row.Strings(rows)
	slices.Sort(lines)
	return cache.HashLines(slices.Compact(lines))
}

// Batch packages the missing rows for a sink.
func (res *Result) Batch() sink.Batch {
	return sink.Batch{
		RunID:  res.RunID,
		Config: res.Config,
		Rows:   res.Missing,
	}
}
