// Package cache stores derived pipeline data: computed scenes and rendered
// artifacts. It never holds user data that cannot be recomputed.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: shared cache on a Redis server
//   - [MongoCache]: shared cache in a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// Wrap any backend with [Instrument] to report hits, misses and writes to
// the registered [observability.CacheHooks].
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect the
// cached value, so changing a flag never returns a stale entry:
//
//	key := keyer.LayoutKey(cache.Hash(input), cache.LayoutKeyOpts{Chart: "pie"})
//
// [observability.CacheHooks]: github.com/matzehuels/prism/pkg/observability.CacheHooks
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
