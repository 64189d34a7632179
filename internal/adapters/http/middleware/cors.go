package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/cors"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

var (
	corsMethods = []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	corsHeaders = []string{"Content-Type", "Authorization"}
)

// CORS applies policy. Disabled adds nothing. Permissive answers every origin
// with "*" and still allows credentials, which browsers reject for
// credentialed requests; this is kept as documented behavior. Allow reflects
// the request origin only when it equals one of the configured origins.
func CORS(policy config.CORSPolicy) func(http.Handler) http.Handler {
	switch p := policy.(type) {
	case config.CORSDisabled:
		return func(next http.Handler) http.Handler { return next }
	case config.CORSPermissive:
		return cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   corsMethods,
			AllowedHeaders:   corsHeaders,
			AllowCredentials: true,
		})
	case config.CORSAllow:
		origins := slices.Clone(p.Origins)
		return cors.Handler(cors.Options{
			AllowOriginFunc: func(_ *http.Request, origin string) bool {
				return slices.Contains(origins, origin)
			},
			AllowedMethods:   corsMethods,
			AllowedHeaders:   corsHeaders,
			AllowCredentials: true,
		})
	default:
		panic(fmt.Sprintf("middleware: unknown CORS policy %T", policy))
	}
}
