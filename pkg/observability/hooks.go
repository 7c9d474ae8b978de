// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; applications decide
// where the events go by registering implementations at startup. Every hook
// defaults to a no-op, so libraries never depend on a metrics backend.
//
// # Usage
//
// Register hooks once, before mining starts:
//
//	func main() {
//	    observability.SetMinerHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks around their stages:
//
//	observability.Miner().OnBuildStart(ctx, cfg, len(rows))
//	// ... build the trie ...
//	observability.Miner().OnBuildComplete(ctx, cfg, nodes, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// MinerHooks receives events from the two mining phases.
type MinerHooks interface {
	// Build phase: rows inserted into the membership trie.
	OnBuildStart(ctx context.Context, config string, rows int)
	OnBuildComplete(ctx context.Context, config string, nodes int, duration time.Duration, err error)

	// Compute phase: the universe enumerated against the trie.
	OnComputeStart(ctx context.Context, config string, universe uint64)
	OnComputeComplete(ctx context.Context, config string, missing int, duration time.Duration, err error)
}

// CacheHooks receives events from result cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
}

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopMinerHooks is a no-op implementation of MinerHooks.
type NoopMinerHooks struct{}

func (NoopMinerHooks) OnBuildStart(context.Context, string, int)                            {}
func (NoopMinerHooks) OnBuildComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopMinerHooks) OnComputeStart(context.Context, string, uint64)                       {}
func (NoopMinerHooks) OnComputeComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                     {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	minerHooks MinerHooks = NoopMinerHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetMinerHooks registers miner hooks. A nil h is ignored.
func SetMinerHooks(h MinerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		minerHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Miner returns the registered miner hooks.
func Miner() MinerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return minerHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	minerHooks = NoopMinerHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
