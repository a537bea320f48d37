// JWT validation middleware
//
// JWT checking for secure routes:
// - Token extraction
// - Token validation
// - Auth failure handling
// - JWT context propagation

package middleware

import (
	"context"
	"net/http"

	"github.com/streamforge/hlsplaylist/internal/api"
	"github.com/streamforge/hlsplaylist/internal/jwt"
)

type claimsKey struct{}

// ClaimsFromContext returns the Claims attached by JWTAuth, if any.
func ClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*jwt.Claims)
	return claims
}

// JWTAuth guards admin/control routes that aren't playlist proxy traffic
// but still need a valid token, e.g. the cache-clear endpoint.
func JWTAuth(extractor *jwt.Extractor, validator *jwt.Validator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractor.Extract(r)
			if err != nil {
				writeTokenError(w, err)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				writeTokenError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeTokenError(w http.ResponseWriter, err error) {
	if tokenErr, ok := err.(*jwt.TokenError); ok {
		api.WriteError(w, api.NewError(tokenErr.Error(), "token_error", tokenErr.StatusCode))
		return
	}
	api.WriteError(w, api.NewError(err.Error(), "token_error", http.StatusUnauthorized))
}
