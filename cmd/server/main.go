// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, migrates the schema, starts the HTTP server, and
// handles graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todo-service/internal/adapters/http"
	"github.com/jsamuelsen11/todo-service/internal/adapters/postgres"
	"github.com/jsamuelsen11/todo-service/internal/app"
	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/database"
	"github.com/jsamuelsen11/todo-service/internal/platform/health"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-service/internal/platform/secrets"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	startupTimeout        = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(config.WithConfigFile(os.Getenv("APP_CONFIG_FILE")))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr,
		slog.String("service", cfg.Telemetry.ServiceName),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStart()

	otel, err := telemetry.Setup(startCtx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	// Flush telemetry on every return path, including startup failures.
	defer func() {
		otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer otelCancel()

		if err := otel.Shutdown(otelCtx); err != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", err))
		}
	}()

	metrics, err := telemetry.NewMetrics(otel.MeterProvider)
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	adminToken, err := resolveAdminToken(startCtx, cfg.Auth)
	if err != nil {
		return fmt.Errorf("resolving admin token: %w", err)
	}

	pool, err := database.Connect(startCtx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := database.Migrate(pool, logger); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, metrics)
	do.ProvideValue(injector, pool)

	registerDependencies(injector, cfg, logger, adminToken)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*postgres.TodoRepository](injector))
	registry.Register(do.MustInvoke[*postgres.Guard](injector))

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// The pool and telemetry are released by the deferred calls.
	logger.Info("shutdown complete")
	return nil
}

// resolveAdminToken reads the bearer token from the environment or, when a
// parameter name is configured, from SSM Parameter Store.
func resolveAdminToken(ctx context.Context, cfg config.AuthConfig) (string, error) {
	if cfg.AdminTokenSSMParameter == "" {
		return secrets.AdminToken(ctx, cfg, nil)
	}

	client, err := secrets.NewSSMClient(ctx)
	if err != nil {
		return "", err
	}
	return secrets.AdminToken(ctx, cfg, client)
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger, adminToken string) {
	do.Provide(injector, func(i do.Injector) (*postgres.TodoRepository, error) {
		pool := do.MustInvoke[*pgxpool.Pool](i)
		return postgres.NewTodoRepository(pool), nil
	})

	do.Provide(injector, func(i do.Injector) (*postgres.Guard, error) {
		repo := do.MustInvoke[*postgres.TodoRepository](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return postgres.NewGuard(repo, cfg.Breaker, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoService, error) {
		guard := do.MustInvoke[*postgres.Guard](i)
		return app.NewTodoService(guard, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (adapthttp.AppState, error) {
		return adapthttp.AppState{
			Todos:      do.MustInvoke[ports.TodoService](i),
			Health:     do.MustInvoke[ports.HealthRegistry](i),
			Config:     cfg.Server,
			AdminToken: adminToken,
		}, nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		state := do.MustInvoke[adapthttp.AppState](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return adapthttp.NewHandler(state, logger, metrics), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
