// Graceful shutdown implementation
//
// Handles clean termination:
// - Stop accepting new connections
// - Wait for active requests to complete
// - Timeout for lingering connections
// - Resource cleanup

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WaitForSignal blocks until SIGINT or SIGTERM is received, then runs s's
// graceful shutdown bounded by its configured ShutdownTimeout.
func WaitForSignal(s *Server) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
