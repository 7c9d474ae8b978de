package cli

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rowminer/pkg/pipeline"
	"github.com/matzehuels/rowminer/pkg/sink"
)

// mineFlags holds the output and backend flags of the mine command. Run
// options live in pipeline.Options.
type mineFlags struct {
	output string
	format string
	cache  cacheFlags

	mongoURI        string
	mongoDatabase   string
	mongoCollection string
}

// mineCommand creates the mine command.
func (c *CLI) mineCommand() *cobra.Command {
	var (
		opts  pipeline.Options
		flags mineFlags
	)

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Compute the rows missing from a dataset",
		Long: `Compute every row of the universe that does not occur in the dataset.

The dataset is read from --input (text, one row per line, or JSON), or drawn
from a seeded generator with --generate. Missing rows are written to --output,
or to stdout when no output file is given. With --mongo-uri every missing row
is also stored as a document.

Results are cached by configuration and dataset, so re-running on the same
data is instant. Use --refresh to recompute.`,
		Example: `  # Rows never drawn in a 7-of-40 lottery history
  rowminer mine -n 40 -k 7 -i draws.txt -o missing.txt

  # Benchmark on one million generated rows using 8 workers
  rowminer mine -n 40 -k 7 -g 1000000 -w 8 --concurrent -o missing.txt

  # Options from a file, limit overridden on the command line
  rowminer --config run.toml mine --limit 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := c.baseOptions()
			if err != nil {
				return err
			}
			base.Merge(changedOptions(cmd, opts))
			return c.runMine(cmd.Context(), base, flags)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.MaxNumber, "max", "n", pipeline.DefaultMaxNumber, "largest number in a row")
	f.IntVarP(&opts.RowLength, "length", "k", pipeline.DefaultRowLength, "numbers per row")
	f.StringVarP(&opts.Input, "input", "i", "", "dataset file (.json or text)")
	f.IntVarP(&opts.Generate, "generate", "g", 0, "generate this many random rows instead of reading a file")
	f.Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "generator seed")
	f.IntVarP(&opts.Workers, "workers", "w", 0, "worker goroutines (0 = all CPUs)")
	f.BoolVar(&opts.Concurrent, "concurrent", false, "build the trie in parallel")
	f.IntVar(&opts.Limit, "limit", 0, "stop after this many missing rows (0 = all)")
	f.StringVar(&opts.Store, "store", pipeline.DefaultStore, "trie nodes: auto, dense, sparse, sorted")
	f.BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	f.StringVarP(&flags.output, "output", "o", "", "output file (.json or text); stdout if empty")
	f.StringVar(&flags.format, "format", "text", "stdout format: text or json")
	f.BoolVar(&flags.cache.noCache, "no-cache", false, "disable caching")
	f.StringVar(&flags.cache.redisURL, "redis", "", "cache results in Redis at this URL")
	f.StringVar(&flags.mongoURI, "mongo-uri", "", "also store missing rows in MongoDB")
	f.StringVar(&flags.mongoDatabase, "mongo-db", appName, "MongoDB database")
	f.StringVar(&flags.mongoCollection, "mongo-collection", "missing_rows", "MongoDB collection")

	return cmd
}

// changedOptions keeps only the option flags the user set explicitly, so
// unset flags do not override a config file.
func changedOptions(cmd *cobra.Command, opts pipeline.Options) pipeline.Options {
	var out pipeline.Options
	f := cmd.Flags()
	if f.Changed("max") {
		out.MaxNumber = opts.MaxNumber
	}
	if f.Changed("length") {
		out.RowLength = opts.RowLength
	}
	if f.Changed("input") {
		out.Input = opts.Input
	}
	if f.Changed("generate") {
		out.Generate = opts.Generate
	}
	if f.Changed("seed") {
		out.Seed = opts.Seed
	}
	if f.Changed("workers") {
		out.Workers = opts.Workers
	}
	if f.Changed("limit") {
		out.Limit = opts.Limit
	}
	if f.Changed("store") {
		out.Store = opts.Store
	}
	out.Concurrent = opts.Concurrent
	out.Refresh = opts.Refresh
	return out
}

func (c *CLI) runMine(ctx context.Context, opts pipeline.Options, flags mineFlags) error {
	format, err := sink.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	opts.Logger = c.Logger.With("config", opts.Config().String())

	sinks, err := c.openSinks(ctx, flags, format)
	if err != nil {
		return err
	}
	defer func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				c.Logger.Warn("close output", "err", err)
			}
		}
	}()

	runner, err := c.newRunner(flags.cache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cfg := opts.Config()
	universe := cfg.UniverseSize()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Mining %s...", cfg))
	var checked atomic.Uint64
	opts.Progress = func(n uint64) {
		done := checked.Add(n)
		spinner.SetMessage(fmt.Sprintf("Scanning %s: %.1f%%", cfg, 100*float64(done)/float64(universe)))
	}

	spinner.Start()
	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Mining failed")
		return err
	}
	spinner.Stop()
	prog.done("Mined " + cfg.String())
	c.Logger.Debug("scan throughput", "candidates_per_sec", int(rowsPerSecond(res.Stats.Checked, res.Stats.ComputeTime)))

	for _, s := range sinks {
		if err := s.Write(ctx, res.Batch()); err != nil {
			return fmt.Errorf("write missing rows: %w", err)
		}
	}

	if flags.output == "" {
		return nil
	}
	printMineResult(res, flags)
	return nil
}

// openSinks opens the destinations selected by flags.
func (c *CLI) openSinks(ctx context.Context, flags mineFlags, format sink.Format) ([]sink.Sink, error) {
	var sinks []sink.Sink
	if flags.output != "" {
		fs, err := sink.NewFileSink(flags.output)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
	} else {
		sinks = append(sinks, sink.NewWriterSink(os.Stdout, format))
	}

	if flags.mongoURI != "" {
		ms, err := sink.NewMongoSink(ctx, sink.MongoConfig{
			URI:        flags.mongoURI,
			Database:   flags.mongoDatabase,
			Collection: flags.mongoCollection,
		})
		if err != nil {
			for _, s := range sinks {
				_ = s.Close()
			}
			return nil, err
		}
		sinks = append(sinks, ms)
	}
	return sinks, nil
}

func printMineResult(res *pipeline.Result, flags mineFlags) {
	printSuccess("Found %s missing rows", StyleNumber.Render(fmt.Sprint(len(res.Missing))))
	printRunStats(len(res.Missing), res.Distinct, res.Stats.Universe, res.CacheHit)
	if res.Truncated {
		printWarning("Output truncated by --limit")
	}
	printKeyValue("Run", res.RunID)
	printKeyValue("Config", res.Config.String())
	if !res.CacheHit {
		printKeyValue("Load", formatDuration(res.Stats.LoadTime))
		printKeyValue("Build", formatDuration(res.Stats.BuildTime))
		printKeyValue("Compute", formatDuration(res.Stats.ComputeTime))
		printKeyValue("Trie", fmt.Sprintf("%d nodes, %s (%s)", res.Stats.Trie.Nodes, formatBytes(res.Stats.Trie.Bytes), res.Stats.Trie.Kind))
	}
	printFile(flags.output)
	if flags.mongoURI != "" {
		printFile(flags.mongoDatabase + "." + flags.mongoCollection)
	}
}

// formatBytes renders n in binary units.
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// rowsPerSecond reports throughput for debug logs.
func rowsPerSecond(n uint64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
