// Package pipeline runs a complete mining job: load a dataset, build the
// membership trie, enumerate the universe and collect the missing rows.
//
// The CLI and the HTTP API both go through a [Runner], so caching, logging
// and defaults behave the same at every entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    MaxNumber: 40,
//	    RowLength: 7,
//	    Input:     "draws.txt",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Missing), "rows never drawn")
//
// # Datasets
//
// Exactly one source provides the observed rows: inline Rows, an Input file
// read through pkg/io, or Generate rows drawn from a seeded generator. When
// none is set, DefaultGenerate rows are generated.
//
// # Configuration Files
//
// [LoadOptions] reads Options from TOML:
//
//	max_number = 40
//	row_length = 7
//	input      = "draws.txt"
//	workers    = 8
//	store      = "sparse"
package pipeline

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/rowminer/pkg/cache"
	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/core/trie"
	"github.com/matzehuels/rowminer/pkg/errors"
)

// Defaults shared by the CLI, the API and configuration files.
const (
	DefaultMaxNumber = 40
	DefaultRowLength = 7
	DefaultGenerate  = 1000
	DefaultSeed      = uint64(42)
	DefaultStore     = "auto"
)

// Options configures a mining run.
type Options struct {
	MaxNumber int `toml:"max_number" json:"max_number"`
	RowLength int `toml:"row_length" json:"row_length"`

	// Dataset sources; at most one may be set.
	Rows     [][]int `toml:"rows" json:"rows,omitempty"`
	Input    string  `toml:"input" json:"input,omitempty"`
	Generate int     `toml:"generate" json:"generate,omitempty"`
	Seed     uint64  `toml:"seed" json:"seed,omitempty"`

	// Execution
	Workers    int    `toml:"workers" json:"workers,omitempty"`
	Concurrent bool   `toml:"concurrent" json:"concurrent,omitempty"` // parallel trie build
	Limit      int    `toml:"limit" json:"limit,omitempty"`
	Store      string `toml:"store" json:"store,omitempty"`
	Refresh    bool   `toml:"refresh" json:"refresh,omitempty"`

	// Progress receives checked-candidate counts during the scan.
	Progress func(checked uint64) `toml:"-" json:"-"`
	// Logger receives this run's stage logs; nil uses the runner's logger.
	Logger *log.Logger `toml:"-" json:"-"`

	validated bool
}

// Result is the outcome of a mining run.
type Result struct {
	RunID       string
	Config      row.Config
	DatasetHash string

	// Observed is the number of dataset rows; Distinct counts them once each.
	Observed int
	Distinct int

	Missing   []*row.Row
	Truncated bool
	CacheHit  bool

	Stats Stats
}

// Stats holds timing and size figures for a run.
type Stats struct {
	LoadTime    time.Duration `json:"load_time"`
	BuildTime   time.Duration `json:"build_time"`
	ComputeTime time.Duration `json:"compute_time"`
	Checked     uint64        `json:"checked"`
	Universe    uint64        `json:"universe"`
	Trie        trie.Stats    `json:"trie"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxNumber == 0 {
		o.MaxNumber = DefaultMaxNumber
	}
	if o.RowLength == 0 {
		o.RowLength = DefaultRowLength
	}
	if _, err := row.NewConfig(o.MaxNumber, o.RowLength); err != nil {
		return err
	}

	sources := 0
	if len(o.Rows) > 0 {
		sources++
	}
	if o.Input != "" {
		sources++
		if err := errors.ValidateFilePath(o.Input); err != nil {
			return err
		}
	}
	if o.Generate != 0 {
		sources++
	}
	if sources > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "rows, input and generate are mutually exclusive")
	}
	if o.Generate < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "generate(%d) < 0", o.Generate)
	}
	if sources == 0 {
		o.Generate = DefaultGenerate
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}

	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers(%d) < 0", o.Workers)
	}
	if o.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "limit(%d) < 0", o.Limit)
	}
	if o.Store == "" {
		o.Store = DefaultStore
	}
	if _, err := trie.ParseKind(o.Store); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// Config returns the row configuration. Options must be validated.
func (o *Options) Config() row.Config {
	return row.MustConfig(o.MaxNumber, o.RowLength)
}

// Kind returns the trie node representation. Options must be validated.
func (o *Options) Kind() trie.Kind {
	k, _ := trie.ParseKind(o.Store)
	return k
}

// Source names the dataset source for logs.
func (o *Options) Source() string {
	switch {
	case len(o.Rows) > 0:
		return "inline"
	case o.Input != "":
		return o.Input
	default:
		return fmt.Sprintf("generator(seed=%d)", o.Seed)
	}
}

// ResultKeyOpts returns the options that distinguish cached results.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{Limit: o.Limit}
}

// LoadOptions reads options from a TOML file. Unknown keys are an error.
func LoadOptions(path string) (Options, error) {
	var opts Options
	if err := errors.ValidateFilePath(path); err != nil {
		return opts, err
	}
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, errors.New(errors.ErrCodeInvalidFormat, "%s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}

// Merge overlays the non-zero fields of override onto o.
func (o *Options) Merge(override Options) {
	if override.MaxNumber != 0 {
		o.MaxNumber = override.MaxNumber
	}
	if override.RowLength != 0 {
		o.RowLength = override.RowLength
	}
	if len(override.Rows) > 0 || override.Input != "" || override.Generate != 0 {
		o.Rows, o.Input, o.Generate = override.Rows, override.Input, override.Generate
	}
	if override.Seed != 0 {
		o.Seed = override.Seed
	}
	if override.Workers != 0 {
		o.Workers = override.Workers
	}
	if override.Limit != 0 {
		o.Limit = override.Limit
	}
	if override.Store != "" {
		o.Store = override.Store
	}
	o.Concurrent = o.Concurrent || override.Concurrent
	o.Refresh = o.Refresh || override.Refresh
	if override.Progress != nil {
		o.Progress = override.Progress
	}
	if override.Logger != nil {
		o.Logger = override.Logger
	}
}
