// Package server exposes a live wire graph over HTTP for inspection and
// scripted editing.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/render/dot"
)

// Server owns one engine. Every request holds the mutex for its whole
// duration, which makes the server the engine's single editing thread.
type Server struct {
	mu       sync.Mutex
	eng      *engine.Engine
	renderer dot.Renderer
	logger   *log.Logger
}

// Options configures a Server.
type Options struct {
	Renderer dot.Renderer
	Logger   *log.Logger
}

// New wraps eng. The caller must not use eng directly once the server is
// handling requests.
func New(eng *engine.Engine, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Renderer.Logger == nil {
		opts.Renderer.Logger = logger
	}
	return &Server{eng: eng, renderer: opts.Renderer, logger: logger}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/version", s.handleVersion)
	r.Route("/graph", func(r chi.Router) {
		r.Get("/", s.handleGraph)
		r.Get("/nets", s.handleNets)
		r.Get("/hit", s.handleHit)
		r.Post("/steps", s.handleStep)
	})
	r.Get("/graph.dot", s.handleDOT)
	r.Get("/graph.svg", s.handleSVG)

	// Short aliases.
	r.Get("/nets", s.handleNets)
	r.Get("/hit", s.handleHit)
	r.Post("/steps", s.handleStep)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
