// Middleware chaining utility
//
// Support for HTTP middleware chains:
// - Middleware composition
// - Order management
// - Context propagation
// - Chain building helpers

package middleware

import (
	"net/http"
)

// Middleware is a function that wraps an http.Handler
type Middleware func(http.Handler) http.Handler

// Chain represents a chain of middleware
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a new middleware chain
func NewChain(middlewares ...Middleware) Chain {
	return Chain{
		middlewares: append([]Middleware{}, middlewares...),
	}
}

// Then applies the middleware chain to a handler
func (c Chain) Then(h http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h
}

