package cache

import (
	"context"
	"fmt"

	"github.com/milestone-dev/milestone/pkg/config"
)

// Open returns the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Cache) (Cache, error) {
	switch cfg.Backend {
	case config.CacheFile, "":
		return NewFileCache(cfg.Dir)
	case config.CacheRedis:
		return NewRedisCache(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.Prefix,
		})
	case config.CacheNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Clear empties c if the backend supports it.
func Clear(ctx context.Context, c Cache) (int, error) {
	switch v := c.(type) {
	case *FileCache:
		return v.Clear()
	case Clearer:
		return v.Clear(ctx)
	}
	return 0, fmt.Errorf("cache backend %T cannot be cleared", c)
}
