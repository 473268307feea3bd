package middleware

import "net/http"

// Chain applies middleware in order: the first argument wraps outermost and
// therefore runs first.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
