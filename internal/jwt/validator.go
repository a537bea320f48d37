// JWT validation logic
//
// JWT token validation:
// - Signature verification
// - Claims validation
// - Expiration checking
// - Issuer validation
// - Caching of validation results

package jwt

import (
	"errors"
	"time"

	"github.com/streamforge/hlsplaylist/internal/cache"
	"github.com/streamforge/hlsplaylist/internal/config"
	"github.com/streamforge/hlsplaylist/pkg/jwtheader"
)

// Validator verifies tokens against the configured HMAC secret (no JWKS URL
// is passed on, so RS* tokens fail verification) and caches
// the resulting Claims so a player's repeated polling of the same token
// doesn't re-verify a signature on every request.
type Validator struct {
	opts      jwtheader.ValidationOptions
	namespace string
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewValidator creates a Validator configured from cfg. c may be nil, in
// which case every call re-verifies the token.
func NewValidator(cfg *config.JWTConfig, c cache.Cache) *Validator {
	return &Validator{
		opts: jwtheader.ValidationOptions{
			Secret:          cfg.Secret,
			RequiredClaims:  cfg.RequiredClaims,
			Issuer:          cfg.Issuer,
			Audience:        cfg.Audience,
			ClaimsNamespace: cfg.Namespace,
			AllowedAlgs:     cfg.AllowedAlgs,
		},
		namespace: cfg.Namespace,
		cache:     c,
		cacheTTL:  cfg.CacheTTL,
	}
}

// ValidateToken verifies tokenString and returns its Claims, using the
// cache to skip re-verification of a token seen within cacheTTL.
func (v *Validator) ValidateToken(tokenString string) (*Claims, error) {
	key := cache.FromString("jwt:" + tokenString)

	if v.cache != nil {
		if cached, ok := v.cache.Get(key); ok {
			if claims, ok := cached.(*Claims); ok {
				if !claims.IsExpired() {
					return claims, nil
				}
				v.cache.Delete(key)
			}
		}
	}

	raw, err := jwtheader.ParseAndVerify(tokenString, v.opts)
	if err != nil {
		if errors.Is(err, jwtheader.ErrInvalidAlgorithm) {
			return nil, NewTokenUnsupportedError(err)
		}
		return nil, NewValidationError(err)
	}

	claims := NewClaims(raw, v.namespace)
	if claims.IsExpired() {
		return nil, NewTokenExpiredError()
	}

	if v.cache != nil && v.cacheTTL > 0 {
		v.cache.Set(key, claims, v.cacheTTL)
	}

	return claims, nil
}
