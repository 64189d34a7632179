package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// NormalizePath strips a single trailing slash before routing, so /todos/
// and /todos reach the same handler. The root path is left alone. It must run
// outside the router.
func NormalizePath() func(http.Handler) http.Handler {
	return chimw.StripSlashes
}
