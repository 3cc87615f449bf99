// Package server exposes a ripple registry over HTTP and WebSocket.
//
// The server is an outer surface, not part of the propagation core: it reads
// snapshots, performs merge-sets, and registers watch connections as
// ordinary store subscribers. Derived stores are read-only through this
// surface.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ripple-dev/ripple/pkg/ripple"
)

// Server serves a registry's stores over HTTP and WebSocket.
type Server struct {
	registry *ripple.Registry
	config   *Config
	logger   *slog.Logger

	upgrader websocket.Upgrader
	router   chi.Router

	httpServer *http.Server
}

// New creates a server for the given registry.
func New(registry *ripple.Registry, config *Config) *Server {
	s := &Server{
		registry: registry,
		config:   config.withDefaults(),
		logger:   slog.Default().With("component", "server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	s.router = s.routes()
	return s
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SetLogger replaces the server's logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Handler returns the HTTP handler, for mounting or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes builds the chi router.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealthz)
	if s.config.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/stores", func(r chi.Router) {
		r.Get("/", s.handleListStores)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGetStore)
			r.Post("/", s.handleSetStore)
			r.Get("/path/*", s.handleGetPath)
			r.Get("/watch", s.handleWatch)
		})
	})

	return r
}

// Run starts the server and blocks until SIGINT/SIGTERM or a listen error.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:         s.config.Address,
		Handler:      s,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
