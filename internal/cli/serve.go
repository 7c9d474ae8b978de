package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rowminer/pkg/api"
	"github.com/matzehuels/rowminer/pkg/cache"
)

const shutdownTimeout = 10 * time.Second

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		cf    cacheFlags
		apiCf api.Config
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the miner over HTTP",
		Long: `Serve the miner over HTTP.

  GET  /healthz
  GET  /v1/version
  GET  /v1/universe?max=N&length=K
  POST /v1/missing

Results are cached like the mine command's; use --redis to share a cache
between several servers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, cf, apiCf)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&cf.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&cf.redisURL, "redis", "", "cache results in Redis at this URL")
	cmd.Flags().Uint64Var(&apiCf.MaxUniverse, "max-universe", api.DefaultMaxUniverse, "largest universe a request may scan")
	cmd.Flags().IntVarP(&apiCf.Workers, "workers", "w", 0, "worker goroutines per request (0 = all CPUs)")
	cmd.Flags().DurationVar(&apiCf.Timeout, "timeout", api.DefaultTimeout, "per-request timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, cf cacheFlags, apiCfg api.Config) error {
	runner, err := c.newRunner(cf, cache.NewScopedKeyer(nil, "api:"))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(runner, c.Logger, apiCfg).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
