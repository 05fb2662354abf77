package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := captureLogger()

	enriched := EnrichLogger(logger, "payments")
	enriched.Info("hello")

	assert.Contains(t, buf.String(), "bus=payments")

	assert.Nil(t, EnrichLogger(nil, "payments"))
}

func TestLogBusStartStop(t *testing.T) {
	logger, buf := captureLogger()

	LogBusStart(logger, "payments")
	LogBusStop(logger, "payments")

	out := buf.String()
	assert.Contains(t, out, "event bus starting")
	assert.Contains(t, out, "event bus exiting")
	assert.Equal(t, 2, strings.Count(out, "bus=payments"))
}

func TestLogHandlerFailure(t *testing.T) {
	logger, buf := captureLogger()

	LogHandlerFailure(logger, "user.created", "notify-email", errors.New("smtp down"))

	out := buf.String()
	assert.Contains(t, out, "handler failed")
	assert.Contains(t, out, "event=user.created")
	assert.Contains(t, out, "handler=notify-email")
	assert.Contains(t, out, "smtp down")
}

func TestLogNoListeners(t *testing.T) {
	logger, buf := captureLogger()

	LogNoListeners(logger, "user.created")

	out := buf.String()
	assert.Contains(t, out, "no listeners for event")
	assert.Contains(t, out, "event=user.created")
}

func TestNilLoggerSafe(t *testing.T) {
	// None of these may panic with a nil logger.
	LogBusStart(nil, "b")
	LogBusStop(nil, "b")
	LogHandlerFailure(nil, "e", "h", errors.New("x"))
	LogNoListeners(nil, "e")
}

func TestTimedOperation(t *testing.T) {
	elapsed := TimedOperation()
	time.Sleep(2 * time.Millisecond)

	assert.GreaterOrEqual(t, elapsed(), float64(1))
}
