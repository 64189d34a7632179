package http

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// AppState is everything the HTTP surface needs. It is built once at startup
// and never mutated.
type AppState struct {
	Todos  ports.TodoService
	Health ports.HealthRegistry
	Config config.ServerConfig

	// AdminToken gates every route when non-empty.
	AdminToken string
}

// Middlewares returns the request pipeline for state, outermost first. The
// bearer gate is present only when an admin token is configured.
func Middlewares(state AppState, logger *slog.Logger, metrics *telemetry.Metrics) []func(http.Handler) http.Handler {
	var gate func(http.Handler) http.Handler
	if state.AdminToken != "" {
		gate = middleware.AdminToken(state.AdminToken)
	}

	return []func(http.Handler) http.Handler{
		middleware.Recovery(logger),
		middleware.RequestID(state.Config.RequestIDHeader),
		middleware.OpenTelemetry(metrics),
		middleware.Logging(logger),
		gate,
		middleware.Timeout(state.Config.Timeout),
		middleware.NormalizePath(),
		middleware.CORS(state.Config.CORS),
	}
}

// NewHandler builds the complete HTTP handler: the router wrapped in the
// pipeline returned by Middlewares. A nil logger discards output and nil
// metrics skip recording.
func NewHandler(state AppState, logger *slog.Logger, metrics *telemetry.Metrics) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	router := NewRouter(
		handlers.NewTodoHandler(state.Todos),
		handlers.NewHealthHandler(state.Health),
	)

	return middleware.Chain(Middlewares(state, logger, metrics)...)(router)
}
