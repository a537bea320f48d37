// JWT token extraction from requests
//
// Extracts JWT tokens from various sources:
// - URL query parameters
// - Authorization headers
// - Format normalization
// Cookies are not consulted.

package jwt

import (
	"net/http"

	"github.com/streamforge/hlsplaylist/internal/config"
	"github.com/streamforge/hlsplaylist/pkg/jwtheader"
)

// Extractor pulls a bearer token out of an inbound request.
type Extractor struct {
	opts jwtheader.ExtractOptions
}

// NewExtractor creates an Extractor configured from cfg.
func NewExtractor(cfg *config.JWTConfig) *Extractor {
	return &Extractor{opts: jwtheader.ExtractOptions{
		HeaderName: cfg.HeaderName,
		ParamName:  cfg.ParamName,
	}}
}

// Extract returns the raw token string from r, trying the configured
// header before falling back to the query parameter.
func (e *Extractor) Extract(r *http.Request) (string, error) {
	token, err := jwtheader.FromRequest(r, e.opts)
	if err != nil {
		return "", NewExtractionError(err)
	}
	if !jwtheader.IsValidJWT(token) {
		return "", NewTokenInvalidError()
	}
	return token, nil
}
