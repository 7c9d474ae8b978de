// Package cli implements the rowminer command-line interface.
//
// # Commands
//
//   - mine: compute the rows missing from a dataset (file or generated)
//   - demo: the small 5-number, 3-per-row walkthrough
//   - trie: render the membership trie of a few rows as DOT or SVG
//   - serve: run the HTTP API
//   - cache: inspect or clear the local result cache
//
// # Logging
//
// All commands log through a charmbracelet/log logger on stderr. --verbose
// (-v) switches to debug level and also routes miner, cache and HTTP hook
// events to the log.
//
// # Configuration
//
// --config points at a TOML file holding pipeline.Options; flags given on the
// command line override values from the file.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rowminer/pkg/cache"
	"github.com/matzehuels/rowminer/pkg/observability"
	"github.com/matzehuels/rowminer/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "rowminer"

	// redisPrefix namespaces rowminer keys in a shared Redis.
	redisPrefix = "rowminer:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// EnableHooks routes observability events to the CLI logger at debug level.
func (c *CLI) EnableHooks() {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetMinerHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
}

// cacheFlags selects the result cache backend of a command.
type cacheFlags struct {
	noCache  bool
	redisURL string
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cf cacheFlags, keyer cache.Keyer) (*pipeline.Runner, error) {
	store, err := newCache(cf)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(cf cacheFlags) (cache.Cache, error) {
	switch {
	case cf.noCache:
		return cache.NewNullCache(), nil
	case cf.redisURL != "":
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: cf.redisURL, Prefix: redisPrefix})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/rowminer/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// baseOptions returns the options from --config, or zero options.
func (c *CLI) baseOptions() (pipeline.Options, error) {
	if c.configPath == "" {
		return pipeline.Options{}, nil
	}
	opts, err := pipeline.LoadOptions(c.configPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return opts, nil
}
