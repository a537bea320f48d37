// Redis health monitoring
//
// Ensures Redis availability:
// - Connection checking
// - Circuit breaking
// - Health status reporting
// - Auto-recovery

package redis

import (
	"context"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Health tracks Redis reachability with a simple consecutive-failure
// circuit breaker: once failureThreshold pings fail in a row, the breaker
// opens and callers can skip Redis calls until it auto-recovers on the
// next successful ping.
type Health struct {
	client           *goredis.Client
	failureThreshold int

	mu          sync.RWMutex
	consecutive int
	open        bool
	lastErr     error
	lastChecked time.Time
}

// NewHealth creates a health checker for client. failureThreshold<=0
// defaults to 3.
func NewHealth(client *goredis.Client, failureThreshold int) *Health {
	if failureThreshold <= 0 {
		failureThreshold = 3
	}
	return &Health{client: client, failureThreshold: failureThreshold}
}

// Check pings Redis and updates the breaker state accordingly.
func (h *Health) Check(ctx context.Context) error {
	err := Ping(ctx, h.client)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastChecked = time.Now()
	h.lastErr = err

	if err != nil {
		h.consecutive++
		if h.consecutive >= h.failureThreshold {
			h.open = true
		}
		return err
	}

	h.consecutive = 0
	h.open = false
	return nil
}

// Available reports whether the breaker is closed, i.e. Redis calls should
// be attempted.
func (h *Health) Available() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.open
}

// Status summarizes the breaker's current state for a health endpoint.
type Status struct {
	Available   bool      `json:"available"`
	Consecutive int       `json:"consecutive_failures"`
	LastChecked time.Time `json:"last_checked"`
	LastError   string    `json:"last_error,omitempty"`
}

// Status returns the current breaker state for reporting.
func (h *Health) Status() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s := Status{
		Available:   !h.open,
		Consecutive: h.consecutive,
		LastChecked: h.lastChecked,
	}
	if h.lastErr != nil {
		s.LastError = h.lastErr.Error()
	}
	return s
}

// StartMonitor runs Check on interval until ctx is cancelled, allowing the
// breaker to auto-recover from a transient outage without waiting for the
// next real request to notice.
func (h *Health) StartMonitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Check(ctx)
			}
		}
	}()
}
