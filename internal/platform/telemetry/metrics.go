package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentationName scopes the service's meters and tracers.
const InstrumentationName = "github.com/jsamuelsen11/todo-service"

// Attribute keys used on metric instruments.
var (
	AttrHTTPMethod   = attribute.Key("http.method")
	AttrHTTPStatus   = attribute.Key("http.status_code")
	AttrDBOperation  = attribute.Key("db.operation")
	AttrResult       = attribute.Key("result")
	AttrBreakerState = attribute.Key("breaker.state")
)

// Metrics holds the service's pre-registered instruments.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter

	DBOperationDuration metric.Float64Histogram
	DBOperationTotal    metric.Int64Counter

	BreakerStateChanges metric.Int64Counter
}

// NewMetrics registers every instrument on a meter obtained from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(InstrumentationName)

	var (
		m   Metrics
		err error
	)

	if m.ServerRequestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Duration of incoming HTTP requests"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating http.server.request.duration: %w", err)
	}

	if m.ServerRequestTotal, err = meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of incoming HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("creating http.server.request.total: %w", err)
	}

	if m.DBOperationDuration, err = meter.Float64Histogram(
		"db.client.operation.duration",
		metric.WithDescription("Duration of todo store operations"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating db.client.operation.duration: %w", err)
	}

	if m.DBOperationTotal, err = meter.Int64Counter(
		"db.client.operation.total",
		metric.WithDescription("Total number of todo store operations"),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, fmt.Errorf("creating db.client.operation.total: %w", err)
	}

	if m.BreakerStateChanges, err = meter.Int64Counter(
		"db.client.breaker.state_changes",
		metric.WithDescription("Circuit breaker transitions for the todo store"),
		metric.WithUnit("{transition}"),
	); err != nil {
		return nil, fmt.Errorf("creating db.client.breaker.state_changes: %w", err)
	}

	return &m, nil
}
