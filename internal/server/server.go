// Main HTTP server implementation
//
// Responsibilities:
// - HTTP server setup and configuration
// - Route registration and handler binding
// - Middleware application
// - Server lifecycle management
// - Connection handling optimizations

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/streamforge/hlsplaylist/internal/telemetry"
)

// Server wraps an http.Server with the timeout/shutdown policy from
// Options.
type Server struct {
	http   *http.Server
	logger telemetry.Logger
	opts   Options
}

// New creates a Server from opts.
func New(opts Options, logger telemetry.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         opts.Addr,
			Handler:      opts.Handler,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		logger: logger,
		opts:   opts,
	}
}

// ListenAndServe starts the server, blocking until it stops. A clean
// shutdown (triggered by Shutdown) returns nil instead of
// http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server starting", "addr", s.opts.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.http.Shutdown(ctx)
}
