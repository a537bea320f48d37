// Main proxy request handler
//
// Core request processing logic:
// - Request path analysis
// - Playlist vs segment request detection
// - Appropriate handler dispatch
// - Error handling

package proxy

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/streamforge/hlsplaylist/internal/api"
	"github.com/streamforge/hlsplaylist/internal/cache"
	"github.com/streamforge/hlsplaylist/internal/config"
	"github.com/streamforge/hlsplaylist/internal/jwt"
	"github.com/streamforge/hlsplaylist/internal/playlist"
	"github.com/streamforge/hlsplaylist/internal/redis"
	"github.com/streamforge/hlsplaylist/internal/telemetry"
)

// Common errors
var (
	ErrNoTargetURL      = errors.New("no target URL provided")
	ErrInvalidTargetURL = errors.New("invalid target URL")
	ErrOriginError      = errors.New("origin server error")
	ErrParsingPlaylist  = errors.New("error parsing playlist")
)

// Handler handles proxy requests
type Handler struct {
	config         *config.Config
	jwtExtractor   *jwt.Extractor
	jwtValidator   *jwt.Validator
	cache          cache.Cache
	logger         telemetry.Logger
	metrics        telemetry.Metrics
	playlistParser *playlist.Parser
	redisTracker   *redis.Tracker
	originClient   *http.Client
}

// HandlerOptions contains options for creating a new handler
type HandlerOptions struct {
	Config       *config.Config
	Cache        cache.Cache
	Logger       telemetry.Logger
	Metrics      telemetry.Metrics
	RedisTracker *redis.Tracker
}

// NewHandler creates a new proxy handler
func NewHandler(opts HandlerOptions) *Handler {
	originClient := NewOriginClient(&opts.Config.Origin)

	jwtExtractor := jwt.NewExtractor(&opts.Config.JWT)
	jwtValidator := jwt.NewValidator(&opts.Config.JWT, opts.Cache)

	return &Handler{
		config:         opts.Config,
		jwtExtractor:   jwtExtractor,
		jwtValidator:   jwtValidator,
		cache:          opts.Cache,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
		playlistParser: playlist.NewParser(),
		redisTracker:   opts.RedisTracker,
		originClient:   originClient,
	}
}

// ServeHTTP resolves the requested playlist or segment against the
// configured origin, serving a cached copy when one is fresh and
// rewriting playlist bodies through playlist.Parser otherwise.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	token, err := h.jwtExtractor.Extract(r)
	if err != nil {
		h.handleError(w, r, err, http.StatusUnauthorized)
		return
	}

	claims, err := h.jwtValidator.ValidateToken(token)
	if err != nil {
		h.handleError(w, r, err, http.StatusUnauthorized)
		return
	}

	playerID, err := claims.GetPlayerID()
	if err != nil && !errors.Is(err, jwt.ErrPlayerIDMissing) {
		h.logger.Warn("failed to get player ID from token", "error", err.Error())
	}
	if h.redisTracker != nil && playerID != "" {
		h.redisTracker.TrackPlayer(playerID, r.URL.Path, r.Header.Get("User-Agent"))
	}

	targetURL, err := h.getTargetURL(r)
	if err != nil {
		h.handleError(w, r, err, http.StatusBadRequest)
		return
	}

	isM3U8 := playlist.IsM3U8(targetURL.Path)

	// Cache key covers the resolved origin URL plus the caller's token:
	// a rewritten playlist's variant URIs embed the token, so a shared
	// cache entry must not cross tokens.
	keyPrefix := "segment:"
	if isM3U8 {
		keyPrefix = "playlist:"
	}
	cacheKey := cache.ForOrigin(targetURL.String(), token, cache.WithPrefix(keyPrefix), cache.WithHash())

	if h.config.Cache.Enabled {
		if h.serveFromCache(w, cacheKey, isM3U8) {
			h.metrics.IncCounter("cache.hit")
			h.metrics.ObserveRequestDuration(r.URL.Path, time.Since(startTime))
			return
		}
		h.metrics.IncCounter("cache.miss")
	}

	originHeaders := make(http.Header)
	h.copyHeaders(r.Header, originHeaders)

	originResp, err := fetchOrigin(r.Context(), h.originClient, targetURL.String(), originHeaders, h.config.Origin.MaxRetries)
	if err != nil {
		h.handleOriginError(w, r, err, targetURL.String())
		return
	}

	if originResp.StatusCode >= http.StatusBadRequest {
		originResp.Body.Close()
		h.handleError(w, r, fmt.Errorf("%w: status %d", ErrOriginError, originResp.StatusCode), originResp.StatusCode)
		return
	}

	if isM3U8 {
		h.handlePlaylist(w, r, originResp, targetURL, token, cacheKey)
	} else {
		h.handleRawContent(w, r, originResp, cacheKey)
	}

	h.metrics.ObserveRequestDuration(r.URL.Path, time.Since(startTime))
}

// serveFromCache writes a cached entry to w and reports whether one was
// found.
func (h *Handler) serveFromCache(w http.ResponseWriter, key cache.Key, isM3U8 bool) bool {
	cached, found := h.cache.Get(key)
	if !found {
		return false
	}
	body, ok := cached.([]byte)
	if !ok {
		return false
	}

	contentType := "application/octet-stream"
	if isM3U8 {
		contentType = "application/vnd.apple.mpegurl"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("X-Cache", "HIT")
	w.Write(body)
	return true
}

// handlePlaylist rewrites an origin playlist's segment/variant URIs to
// point back through this proxy and caches the rewritten body with a TTL
// scaled to the playlist's own volatility.
func (h *Handler) handlePlaylist(w http.ResponseWriter, r *http.Request, originResp *http.Response, targetURL *url.URL, token string, cacheKey cache.Key) {
	defer originResp.Body.Close()

	procOptions := playlist.ProcessorOptions{
		TokenParamName: h.config.JWT.ParamName,
		PathParamName:  "url",
		UsePathParam:   false,
	}

	proxyURL := &url.URL{
		Scheme: r.URL.Scheme,
		Host:   r.URL.Host,
		Path:   r.URL.Path,
	}

	processedContent, err := h.playlistParser.ParseAndProcessResponse(
		originResp.Body,
		targetURL,
		proxyURL,
		token,
		procOptions,
	)
	if err != nil {
		h.handleError(w, r, fmt.Errorf("%w: %v", ErrParsingPlaylist, err), http.StatusInternalServerError)
		return
	}

	contentType := originResp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/vnd.apple.mpegurl"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(processedContent)))
	w.Header().Set("X-Cache", "MISS")
	h.copyHeadersToResponse(originResp.Header, w.Header())

	if h.config.Cache.Enabled {
		base := cache.TTLForPlaylist(processedContent, h.config.Cache.TTLMaster, h.config.Cache.TTLMedia)
		ttl := cache.Jitter(base, h.config.Cache.JitterFraction)
		h.cache.Set(cacheKey, processedContent, ttl)
	}

	w.Write(processedContent)
}

// handleRawContent proxies a segment or other non-playlist body through
// unmodified, caching it at the media TTL.
func (h *Handler) handleRawContent(w http.ResponseWriter, r *http.Request, originResp *http.Response, cacheKey cache.Key) {
	defer originResp.Body.Close()

	w.Header().Set("Content-Type", originResp.Header.Get("Content-Type"))
	w.Header().Set("Content-Length", originResp.Header.Get("Content-Length"))
	w.Header().Set("X-Cache", "MISS")
	h.copyHeadersToResponse(originResp.Header, w.Header())

	contentBytes, err := io.ReadAll(originResp.Body)
	if err != nil {
		h.handleError(w, r, err, http.StatusInternalServerError)
		return
	}

	if h.config.Cache.Enabled {
		ttl := cache.Jitter(h.config.Cache.TTLMedia, h.config.Cache.JitterFraction)
		h.cache.Set(cacheKey, contentBytes, ttl)
	}

	w.Write(contentBytes)
}

// getTargetURL extracts the target URL from the request
func (h *Handler) getTargetURL(r *http.Request) (*url.URL, error) {
	if targetStr := r.URL.Query().Get("url"); targetStr != "" {
		targetURL, err := url.Parse(targetStr)
		if err != nil {
			return nil, ErrInvalidTargetURL
		}
		return targetURL, nil
	}

	originBaseURL := h.config.Origin.BaseURL
	if originBaseURL == "" {
		return nil, ErrNoTargetURL
	}

	baseURL, err := url.Parse(originBaseURL)
	if err != nil {
		return nil, ErrInvalidTargetURL
	}

	return baseURL.ResolveReference(&url.URL{Path: r.URL.Path, RawQuery: r.URL.RawQuery}), nil
}

// Fetch retrieves raw origin content for targetURL, implementing
// api.Fetcher so the /playlist and /playlist.json debug endpoints can
// reuse the proxy's origin client and retry policy.
func (h *Handler) Fetch(r *http.Request, targetURL string) ([]byte, error) {
	resp, err := fetchOrigin(r.Context(), h.originClient, targetURL, nil, h.config.Origin.MaxRetries)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status %d", ErrOriginError, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// handleOriginError classifies a transport-level fetchOrigin failure
// (timeout, connection refused, ...) into the ProxyError that best
// describes it before reporting it.
func (h *Handler) handleOriginError(w http.ResponseWriter, r *http.Request, err error, originURL string) {
	proxyErr := ClassifyOriginError(err, originURL)
	h.logger.Error("origin fetch failed", "error", err.Error(), "path", r.URL.Path, "origin_url", originURL, "status", proxyErr.Code)
	h.metrics.IncCounter("error." + strconv.Itoa(proxyErr.Code))

	apiErr := api.NewError(proxyErr.Message, "origin_error", proxyErr.Code).WithDetails(proxyErr.LogFields)
	api.WriteError(w, apiErr)
}

// statusMessages maps a response status to the generic message reported
// for errors that don't carry their own (e.g. a bad request before the
// target URL or token is even known).
var statusMessages = map[int]string{
	http.StatusBadRequest:   "Bad request",
	http.StatusUnauthorized: "Unauthorized",
	http.StatusForbidden:    "Forbidden",
	http.StatusNotFound:     "Not found",
	http.StatusBadGateway:   "Origin server error",
}

// handleError reports err to the client and the logs/metrics backend.
// JWT errors carry their own status code and message; everything else
// falls back to a generic message for statusCode.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	h.logger.Error("proxy error", "error", err.Error(), "path", r.URL.Path, "status", statusCode)
	h.metrics.IncCounter("error." + strconv.Itoa(statusCode))

	var tokenErr *jwt.TokenError
	if errors.As(err, &tokenErr) {
		apiErr := api.NewError(tokenErr.Error(), "token_error", tokenErr.StatusCode)
		api.WriteError(w, apiErr)
		return
	}

	message, ok := statusMessages[statusCode]
	if !ok {
		message = "Internal server error"
	}

	api.WriteError(w, api.NewError(message, "proxy_error", statusCode))
}

// copyHeaders copies non-internal headers from an inbound request onto
// the outbound origin request.
func (h *Handler) copyHeaders(src, dst http.Header) {
	for k, vv := range src {
		if strings.HasPrefix(strings.ToLower(k), "x-") {
			continue
		}
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}

// copyHeadersToResponse copies origin response headers onto the client
// response, skipping the ones this handler sets itself.
func (h *Handler) copyHeadersToResponse(src, dst http.Header) {
	for k, vv := range src {
		lk := strings.ToLower(k)
		if lk == "content-length" || lk == "content-type" {
			continue
		}
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}
