// Package server implements the treap HTTP API.
//
// The API exposes named trees over a small REST surface:
//
//	POST   /v1/trees             create or replace a named tree
//	GET    /v1/trees             list stored trees
//	GET    /v1/trees/{name}      fetch the JSON tree document
//	GET    /v1/trees/{name}/art  fetch the rendered text art
//	GET    /v1/trees/{name}/dot  fetch the DOT graph
//	DELETE /v1/trees/{name}      remove a stored tree
//	GET    /healthz              liveness probe
//
// Handlers run builds and renders through pipeline.Runner, so repeated art
// and DOT requests are served from the configured cache.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/sphaso/treap/pkg/cache"
	"github.com/sphaso/treap/pkg/pipeline"
	"github.com/sphaso/treap/pkg/store"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8080"

// shutdownTimeout bounds how long Start waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Config holds server dependencies and settings.
type Config struct {
	// Addr is the listen address (host:port). Defaults to DefaultAddr.
	Addr string

	// Store persists named trees. Defaults to an in-memory store.
	Store store.Store

	// Cache backs the render pipeline. Nil disables caching.
	Cache cache.Cache

	// Logger receives request and error logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server serves the treap HTTP API.
type Server struct {
	addr   string
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server from the given configuration.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{
		addr:   cfg.Addr,
		store:  cfg.Store,
		runner: pipeline.NewRunner(cfg.Cache, nil, cfg.Logger),
		logger: cfg.Logger,
	}
}

// Router builds the chi router with all middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/trees", func(r chi.Router) {
			r.Get("/", s.handleListTrees)
			r.Post("/", s.handleCreateTree)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.handleGetTree)
				r.Delete("/", s.handleDeleteTree)
				r.Get("/art", s.handleGetArt)
				r.Get("/dot", s.handleGetDOT)
			})
		})
	})

	return r
}

// Start listens until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

// Close releases the store and the pipeline cache.
func (s *Server) Close() error {
	runnerErr := s.runner.Close()
	storeErr := s.store.Close()
	if runnerErr != nil {
		return runnerErr
	}
	return storeErr
}
