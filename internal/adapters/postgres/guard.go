package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Operation names used as the db.operation attribute.
const (
	opInsert = "insert"
	opList   = "list"
)

// Metric result values.
const (
	resultSuccess     = "success"
	resultError       = "error"
	resultCanceled    = "canceled"
	resultCircuitOpen = "circuit_open"
)

var (
	_ ports.TodoRepository = (*Guard)(nil)
	_ ports.HealthChecker  = (*Guard)(nil)
)

// Guard wraps a repository with a circuit breaker, tracing and metrics.
// Cancelled or timed-out calls never count towards tripping the breaker.
type Guard struct {
	next    ports.TodoRepository
	breaker *gobreaker.CircuitBreaker[struct{}]
	tracer  trace.Tracer
	metrics *telemetry.Metrics
}

// NewGuard decorates next. If metrics is nil, metric recording is skipped.
func NewGuard(next ports.TodoRepository, cfg config.BreakerConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Guard {
	g := &Guard{
		next:    next,
		tracer:  otel.GetTracerProvider().Tracer(telemetry.InstrumentationName + "/postgres"),
		metrics: metrics,
	}

	g.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "postgres",
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
		// Cancelled calls say nothing about the database: they neither
		// count as failures nor close a half-open breaker.
		IsExcluded: isCanceled,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			if g.metrics != nil {
				g.metrics.BreakerStateChanges.Add(context.Background(), 1,
					metric.WithAttributes(telemetry.AttrBreakerState.String(to.String())))
			}
		},
	})

	return g
}

// Insert implements [ports.TodoRepository].
func (g *Guard) Insert(ctx context.Context, t todo.NewTodo) (*todo.Todo, error) {
	var created *todo.Todo
	err := g.do(ctx, opInsert, "insert todo", func(ctx context.Context) error {
		var err error
		created, err = g.next.Insert(ctx, t)
		return err
	})
	return created, err
}

// ListAll implements [ports.TodoRepository].
func (g *Guard) ListAll(ctx context.Context) ([]todo.Todo, error) {
	var todos []todo.Todo
	err := g.do(ctx, opList, "list todos", func(ctx context.Context) error {
		var err error
		todos, err = g.next.ListAll(ctx)
		return err
	})
	return todos, err
}

// Name implements [ports.HealthChecker].
func (g *Guard) Name() string {
	return "postgres_breaker"
}

// HealthCheck reports the breaker state without touching the database.
func (g *Guard) HealthCheck(_ context.Context) error {
	switch state := g.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return errors.New("postgres: degraded (circuit breaker half-open)")
	case gobreaker.StateOpen:
		return errors.New("postgres: failing (circuit breaker open)")
	default:
		return fmt.Errorf("postgres: unknown circuit breaker state %v", state)
	}
}

func (g *Guard) do(ctx context.Context, op, desc string, fn func(context.Context) error) error {
	start := time.Now()

	ctx, span := g.tracer.Start(ctx, "postgres "+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
			attribute.String("db.sql.table", "todos"),
		),
	)
	defer span.End()

	_, err := g.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, fn(ctx)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &domain.StorageError{Op: desc, Err: err}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	g.recordMetrics(ctx, op, start, err)

	return err
}

// recordMetrics is called outside the breaker so rejections are counted.
func (g *Guard) recordMetrics(ctx context.Context, op string, start time.Time, err error) {
	if g.metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		telemetry.AttrDBOperation.String(op),
		telemetry.AttrResult.String(resultOf(err)),
	)

	// The request context may already be done; the measurement still counts.
	ctx = context.WithoutCancel(ctx)
	g.metrics.DBOperationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	g.metrics.DBOperationTotal.Add(ctx, 1, attrs)
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return resultCircuitOpen
	case isCanceled(err):
		return resultCanceled
	default:
		return resultError
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// toUint32 converts a non-negative int to uint32, clamping at the bounds.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
