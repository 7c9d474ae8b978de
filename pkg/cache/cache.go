// Package cache stores computed missing-row results between runs.
//
// A mining run is a pure function of its configuration and its dataset, so
// a result can be reused whenever both match. Keys are derived by a [Keyer]
// from the configuration, a hash of the dataset and the options that change
// the output (such as a result limit).
//
// # Backends
//
//   - [FileCache]: entries as JSON files in a local directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP API
//   - [NullCache]: stores nothing, for tests or when caching is disabled
//
// All backends honor a TTL; a zero TTL means the entry never expires.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiration.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
