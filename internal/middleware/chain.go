package middleware

import "net/http"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that requests pass through mws in the order given.
//
//	api := Chain(mux,
//	    RateLimit(600, time.Minute), // sees the request first
//	    RequireAdmin(auth),
//	)
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
