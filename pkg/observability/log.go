package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug log lines.
// The CLI installs it in verbose mode.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to log.Default() when
// logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

// Install registers h for every event category.
func (h *LogHooks) Install() {
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
	SetStoreHooks(h)
}

func (h *LogHooks) OnRenderStart(_ context.Context, kind string) {
	h.logger.Debug("render start", "kind", kind)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, kind string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "kind", kind, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "kind", kind, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *LogHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnSave(_ context.Context, backend, id string, err error) {
	if err != nil {
		h.logger.Debug("save failed", "backend", backend, "id", id, "err", err)
		return
	}
	h.logger.Debug("saved", "backend", backend, "id", id)
}

func (h *LogHooks) OnDelete(_ context.Context, backend, id string, err error) {
	if err != nil {
		h.logger.Debug("delete failed", "backend", backend, "id", id, "err", err)
		return
	}
	h.logger.Debug("deleted", "backend", backend, "id", id)
}

var (
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
	_ StoreHooks  = (*LogHooks)(nil)
)
