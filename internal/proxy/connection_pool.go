// HTTP client connection pooling
//
// Manages HTTP client connections to origin:
// - Persistent connection pooling
// - Connection reuse
// - Idle connection management
// - Connection health checking

package proxy

import (
	"net/http"

	"github.com/streamforge/hlsplaylist/internal/config"
)

// NewOriginClient builds the pooled http.Client used for every origin
// fetch, sized from cfg so idle connections are reused across requests
// instead of dialing fresh on every playlist/segment pull.
func NewOriginClient(cfg *config.OriginConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:          cfg.MaxIdleConns,
			MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
			MaxConnsPerHost:       cfg.MaxConnsPerHost,
			IdleConnTimeout:       cfg.IdleConnTimeout,
			TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
			ExpectContinueTimeout: cfg.ExpectContinueTimeout,
		},
	}
}
