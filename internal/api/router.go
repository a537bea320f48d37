// API routes definition
//
// Management API routing:
// - Route definitions
// - Handler mapping
// - Version management
// - Authentication requirements

package api

import (
	"net/http"
)

// Router manages API routes
type Router struct {
	mux *http.ServeMux
}

// NewRouter creates a new API router
func NewRouter() *Router {
	return &Router{
		mux: http.NewServeMux(),
	}
}

// Handler returns the HTTP handler for the router
func (r *Router) Handler() http.Handler {
	return r.mux
}

// RegisterHealthCheck registers a health check endpoint
func (r *Router) RegisterHealthCheck() {
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		WriteResponse(w, http.StatusOK, NewResponse(true, "OK", nil))
	})
}

// RegisterStatsEndpoint registers a stats endpoint
func (r *Router) RegisterStatsEndpoint(stats func() map[string]interface{}) {
	r.mux.HandleFunc("/stats", func(w http.ResponseWriter, req *http.Request) {
		WriteJSON(w, http.StatusOK, stats())
	})
}

// RegisterMetricsEndpoint registers a metrics endpoint
func (r *Router) RegisterMetricsEndpoint(metrics func() map[string]interface{}) {
	r.mux.HandleFunc("/metrics", func(w http.ResponseWriter, req *http.Request) {
		WriteJSON(w, http.StatusOK, metrics())
	})
}

// RegisterVersionEndpoint registers a version endpoint
func (r *Router) RegisterVersionEndpoint(version, buildTime, gitCommit string) {
	r.mux.HandleFunc("/version", func(w http.ResponseWriter, req *http.Request) {
		info := map[string]string{
			"version":   version,
			"buildTime": buildTime,
			"gitCommit": gitCommit,
		}
		WriteJSON(w, http.StatusOK, info)
	})
}

// RegisterPlaylistEndpoints registers the /playlist and /playlist.json
// debug/fetch endpoints.
func (r *Router) RegisterPlaylistEndpoints(fetch Fetcher) {
	r.mux.HandleFunc("/playlist", PlaylistHandler(fetch))
	r.mux.HandleFunc("/playlist.json", PlaylistJSONHandler(fetch))
}

// RegisterCacheEndpoints registers /cache/stats (open) and
// /admin/cache/clear (wrapped by wrap, typically JWT auth).
func (r *Router) RegisterCacheEndpoints(statsGetter func() interface{}, clearFunc func() error, wrap func(http.Handler) http.Handler) {
	r.mux.HandleFunc("/cache/stats", CacheStatsHandler(statsGetter))

	var clearHandler http.Handler = CacheClearHandler(clearFunc)
	if wrap != nil {
		clearHandler = wrap(clearHandler)
	}
	r.mux.Handle("/admin/cache/clear", clearHandler)
}

// RegisterPlayersEndpoint registers the /players endpoint.
func (r *Router) RegisterPlayersEndpoint(playersGetter func() interface{}) {
	r.mux.HandleFunc("/players", PlayersHandler(playersGetter))
}

// RegisterPrometheusMetrics mounts a Prometheus exposition handler at
// /metrics. RegisterMetricsEndpoint uses the same pattern, and
// http.ServeMux panics when a pattern is registered twice, so only one of
// the two can be registered on a Router.
func (r *Router) RegisterPrometheusMetrics(handler http.Handler) {
	r.mux.Handle("/metrics", handler)
}

// Handle registers an arbitrary handler under pattern, for wiring routes
// this router doesn't have a dedicated Register* method for.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}