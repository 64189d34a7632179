package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/domain"
)

// AdminToken rejects every request whose Authorization header is not exactly
// "Bearer <token>" with 401 and a WWW-Authenticate challenge. The comparison
// runs in constant time. token must not be empty.
func AdminToken(token string) func(http.Handler) http.Handler {
	want := []byte("Bearer " + token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(got, want) != 1 {
				w.Header().Set("WWW-Authenticate", "Bearer")
				dto.WriteErrorResponse(w, r, domain.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
