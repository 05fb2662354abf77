package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records bus metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records one dispatch call with its strategy,
	// duration and error status.
	RecordDispatch(ctx context.Context, event, strategy string, duration time.Duration, err error)

	// RecordHandlerFailure records a handler error, whether it
	// propagated or was captured by tolerant dispatch.
	RecordHandlerFailure(ctx context.Context, event string)

	// RecordSubscriptionChange records a subscription being added
	// (delta +1) or removed (delta -1).
	RecordSubscriptionChange(ctx context.Context, event string, delta int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches      metric.Int64Counter
	dispatchLatency metric.Float64Histogram
	handlerFailures metric.Int64Counter
	subscriptions   metric.Int64UpDownCounter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("trolleybus")

	dispatches, err := meter.Int64Counter("trolleybus.dispatch.count",
		metric.WithDescription("Number of dispatch calls"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("trolleybus.dispatch.latency_ms",
		metric.WithDescription("Dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	handlerFailures, err := meter.Int64Counter("trolleybus.handler.failures",
		metric.WithDescription("Number of handler errors"),
	)
	if err != nil {
		return nil, err
	}

	subscriptions, err := meter.Int64UpDownCounter("trolleybus.subscriptions.active",
		metric.WithDescription("Number of active subscriptions"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:      dispatches,
		dispatchLatency: dispatchLatency,
		handlerFailures: handlerFailures,
		subscriptions:   subscriptions,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records one dispatch call.
func (m *otelMetrics) RecordDispatch(ctx context.Context, event, strategy string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("event", event),
		attribute.String("strategy", strategy),
		attribute.Bool("success", err == nil),
	}

	m.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.dispatchLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordHandlerFailure records a handler error.
func (m *otelMetrics) RecordHandlerFailure(ctx context.Context, event string) {
	m.handlerFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", event),
	))
}

// RecordSubscriptionChange records a subscription count change.
func (m *otelMetrics) RecordSubscriptionChange(ctx context.Context, event string, delta int) {
	m.subscriptions.Add(ctx, int64(delta), metric.WithAttributes(
		attribute.String("event", event),
	))
}
