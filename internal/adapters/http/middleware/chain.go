package middleware

import "net/http"

// Chain composes middlewares into one. The first argument is the outermost
// layer: Chain(a, b)(h) is a(b(h)). Nil entries are skipped so optional layers
// can be listed unconditionally.
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			if middlewares[i] == nil {
				continue
			}
			handler = middlewares[i](handler)
		}
		return handler
	}
}
