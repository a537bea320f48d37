// Server configuration options
//
// Defines the available server options and their defaults:
// - Listen addresses and ports
// - TLS configuration
// - Timeouts (read, write, idle)
// - Connection limits
// - Keep-alive settings

package server

import (
	"net/http"
	"time"

	"github.com/streamforge/hlsplaylist/internal/config"
)

// Options configures the HTTP server's listener and timeouts, built from
// config.ServerConfig plus the composed handler.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Handler         http.Handler
}

// FromConfig builds Options from cfg, with handler (the composed
// proxy/API router) as Handler.
func FromConfig(cfg *config.ServerConfig, handler http.Handler) Options {
	return Options{
		Addr:            cfg.Addr,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     90 * time.Second,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Handler:         handler,
	}
}
