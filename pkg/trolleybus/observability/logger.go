// Package observability provides observability features for trolleybus:
// structured logging, metrics, and tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds bus context to a logger.
// Returns a new logger carrying the bus name on every record.
func EnrichLogger(logger *slog.Logger, bus string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("bus", bus))
}

// LogBusStart logs that the bus is firing its start event.
func LogBusStart(logger *slog.Logger, bus string) {
	if logger == nil {
		return
	}
	logger.Info("event bus starting",
		slog.String("bus", bus),
	)
}

// LogBusStop logs that the bus is firing its exit event.
func LogBusStop(logger *slog.Logger, bus string) {
	if logger == nil {
		return
	}
	logger.Info("event bus exiting",
		slog.String("bus", bus),
	)
}

// LogHandlerFailure logs a handler error during fail-fast dispatch.
// Tolerant dispatch returns errors to the caller instead of logging them.
func LogHandlerFailure(logger *slog.Logger, event, handler string, err error) {
	if logger == nil {
		return
	}
	logger.Error("handler failed",
		slog.String("event", event),
		slog.String("handler", handler),
		slog.String("error", err.Error()),
	)
}

// LogNoListeners logs a SendOne call that found no registered handlers.
func LogNoListeners(logger *slog.Logger, event string) {
	if logger == nil {
		return
	}
	logger.Error("no listeners for event",
		slog.String("event", event),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in
// milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
