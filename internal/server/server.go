// Package server exposes the parse and format pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes bounds a request body.
const maxBodyBytes = 4 << 20

// Config holds configuration for the HTTP server.
type Config struct {
	Addr    string // host:port to listen on
	Dialect string // source dialect when a request names none
	Logger  *slog.Logger
}

// Server is the HTTP front end of the SQL pipeline.
type Server struct {
	addr     string
	dialect  string
	logger   *slog.Logger
	listener net.Listener
}

// New creates a server. A nil logger discards output.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	dialectName := cfg.Dialect
	if dialectName == "" {
		dialectName = "generic"
	}
	return &Server{addr: cfg.Addr, dialect: dialectName, logger: logger}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		requestID,
		s.logRequests,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/dialects", s.handleDialects)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			r.Post("/parse", s.handleParse)
			r.Post("/format", s.handleFormat)
			r.Post("/tokens", s.handleTokens)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, requestError("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, requestError("method %s not allowed", r.Method))
	})
	return r
}

// Listen binds the listen address. Serve calls it when needed; calling
// it first lets callers learn the bound address of ":0".
func (s *Server) Listen() (net.Addr, error) {
	if s.listener != nil {
		return s.listener.Addr(), nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.listener = ln
	return ln.Addr(), nil
}

// Serve runs the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}
	s.logger.Info("starting server", "addr", "http://"+addr.String(), "dialect", s.dialect)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
