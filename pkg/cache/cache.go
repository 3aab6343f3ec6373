// Package cache stores rendered artifacts between runs.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a local directory. The CLI default.
//   - [RedisCache]: a Redis server shared by API instances.
//   - [NullCache]: caches nothing.
//
// # Keys
//
// Keys come from a [Keyer] so that every component derives them the same
// way. [ScopedKeyer] prefixes keys when several deployments share one Redis:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
//	key := keyer.ArtifactKey(contentHash, cache.ArtifactKeyOpts{Kind: "card", Width: 360})
package cache

import (
	"context"
	"time"
)

// Default TTLs by artifact kind.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLGraph    = 24 * time.Hour
)

// Cache is implemented by every backend. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
