// Package api serves the project catalogue over HTTP.
//
// Routes are mounted on a chi router. GET /healthz is always open; every
// route under /api requires "Authorization: Bearer <token>" when a token is
// configured. Errors are returned as {"error": ..., "code": ...} with the
// status derived from the error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/milestone-dev/milestone/pkg/config"
	"github.com/milestone-dev/milestone/pkg/pipeline"
	"github.com/milestone-dev/milestone/pkg/resume"
	"github.com/milestone-dev/milestone/pkg/store"
)

// Server is the HTTP API.
type Server struct {
	router chi.Router
	store  store.Store
	runner *pipeline.Runner
	resume *resume.Loader
	token  string
	render config.Render
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithToken requires the bearer token on every /api route.
func WithToken(token string) Option { return func(s *Server) { s.token = token } }

// WithRenderDefaults sets the geometry used when a request gives none.
func WithRenderDefaults(r config.Render) Option { return func(s *Server) { s.render = r } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// NewServer returns a server backed by st. A nil runner renders without a
// cache.
func NewServer(st store.Store, runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		store:  st,
		runner: runner,
		render: config.Default().Render,
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	s.resume = resume.NewLoader(st, s.logger)
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/projects", s.handleListProjects)
		r.Post("/projects", s.handleCreateProject)
		r.Route("/projects/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetProject)
			r.Patch("/", s.handleUpdateProject)
			r.Delete("/", s.handleDeleteProject)
			r.Post("/favorite", s.handleToggleFavorite)
			r.Post("/cleanup", s.handleCleanup)

			r.Get("/sections", s.handleListSections)
			r.Post("/sections/{section}", s.handleAddSection)
			r.Delete("/sections/{section}", s.handleDeleteSection)

			r.Post("/items/{field}", s.handleAddItem)
			r.Put("/items/{field}/{index}", s.handleSetItem)
			r.Delete("/items/{field}/{index}", s.handleRemoveItem)

			r.Put("/thumbnail", s.handlePutThumbnail)
			r.Post("/images", s.handleAddImage)
			r.Delete("/images/{index}", s.handleRemoveImage)

			r.Get("/card.svg", s.handleCard)
			r.Get("/chips.svg", s.handleChips)
		})

		r.Get("/timeline", s.handleTimeline)
		r.Get("/timeline.svg", s.handleTimelineSVG)
		r.Get("/graph.svg", s.handleGraphSVG)

		r.Put("/resume", s.handlePutResume)
		r.Get("/resume", s.handleGetResume)
	})

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
