package cache

import (
	"context"
	"time"
)

// NullCache backs the "none" cache setting. Every lookup misses and writes
// are dropped, so each render runs the full pipeline.
type NullCache struct{}

var (
	_ Cache   = NullCache{}
	_ Clearer = NullCache{}
)

func NewNullCache() NullCache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

// Clear reports zero removed entries.
func (NullCache) Clear(context.Context) (int, error) { return 0, nil }

func (NullCache) Close() error { return nil }
