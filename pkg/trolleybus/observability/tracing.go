package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the trolleybus tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("trolleybus")

// SpanManager handles trace span lifecycle for dispatch calls.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDispatchSpan starts a span covering one dispatch call.
	// Returns the context with span and the span itself.
	StartDispatchSpan(ctx context.Context, event, strategy string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartDispatchSpan starts a span covering one dispatch call.
func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, event, strategy string) (context.Context, trace.Span) {
	return StartDispatchSpan(ctx, event, strategy)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// Convenience functions that operate on the global tracer.

// StartDispatchSpan starts a span covering one dispatch call.
// Uses the global OTel tracer.
func StartDispatchSpan(ctx context.Context, event, strategy string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "trolleybus.dispatch."+strategy,
		trace.WithAttributes(
			attribute.String("event", event),
			attribute.String("strategy", strategy),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
