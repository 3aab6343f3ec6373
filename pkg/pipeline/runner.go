package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/milestone-dev/milestone/pkg/cache"
	"github.com/milestone-dev/milestone/pkg/observability"
)

// Runner renders artifacts with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no per-request state, so multiple goroutines can share
// one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind default expiry when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Key returns the cache key for req after applying defaults.
func (r *Runner) Key(req Request) (string, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return "", err
	}
	return r.key(req)
}

func (r *Runner) key(req Request) (string, error) {
	hash, err := cache.HashJSON(snapshot(req))
	if err != nil {
		return "", fmt.Errorf("hash %s snapshot: %w", req.Kind, err)
	}
	return r.Keyer.ArtifactKey(hash, req.keyOpts()), nil
}

// Render returns the artifact for req and whether it came from the cache.
// Cache failures are logged and never fail the render.
func (r *Runner) Render(ctx context.Context, req Request) ([]byte, bool, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	kind := string(req.Kind)

	key, err := r.key(req)
	if err != nil {
		return nil, false, err
	}

	if !req.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "kind", kind, "error", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, kind)
			r.Logger.Debug("render cache hit", "kind", kind, "bytes", len(data))
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, kind)
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, kind)
	data, err := RenderArtifact(ctx, req)
	observability.Render().OnRenderComplete(ctx, kind, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", kind, err)
	}

	r.Logger.Debug("rendered artifact", "kind", kind, "bytes", len(data), "duration", time.Since(start))

	ttl := req.ttl()
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, kind, len(data))
	}

	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
