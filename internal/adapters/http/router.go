// Package http provides the inbound HTTP adapter: routing, the middleware
// pipeline and server lifecycle.
package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/handlers"
)

// NewRouter creates a chi router with every application route registered.
// Unknown paths answer 404 and known paths with the wrong method answer 405.
// The pipeline is applied around the router by NewHandler, not inside it,
// so path normalization happens before route matching.
func NewRouter(todoHandler *handlers.TodoHandler, healthHandler *handlers.HealthHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", healthHandler.Health)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Get("/todos", todoHandler.ListTodos)
	r.Post("/todos", todoHandler.CreateTodo)

	return r
}
