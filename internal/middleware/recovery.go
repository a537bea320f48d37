// Panic recovery middleware
//
// Prevents server crashes from panics:
// - Panic catching
// - Error logging
// - Client error responses
// - Stack trace capture

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/streamforge/hlsplaylist/internal/api"
	"github.com/streamforge/hlsplaylist/internal/telemetry"
)

// Recovery returns a middleware that recovers from panics in the handler
// chain, logs the stack trace, and returns a 500 instead of letting the
// server crash the connection.
func Recovery(logger telemetry.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", fmt.Sprintf("%v", rec),
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					api.WriteError(w, api.NewError("internal server error", "panic", http.StatusInternalServerError))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
