package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// logger. The CLI registers it when --verbose is set.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnBuildStart(_ context.Context, config string, rows int) {
	h.logger.Debug("build started", "config", config, "rows", rows)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, config string, nodes int, d time.Duration, err error) {
	h.logger.Debug("build finished", "config", config, "nodes", nodes, "duration", d, "err", err)
}

func (h *LogHooks) OnComputeStart(_ context.Context, config string, universe uint64) {
	h.logger.Debug("compute started", "config", config, "universe", universe)
}

func (h *LogHooks) OnComputeComplete(_ context.Context, config string, missing int, d time.Duration, err error) {
	h.logger.Debug("compute finished", "config", config, "missing", missing, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ MinerHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
