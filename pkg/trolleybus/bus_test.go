package trolleybus_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/trolleybus/pkg/trolleybus"
)

func TestStartFiresStartHandlers(t *testing.T) {
	bus := trolleybus.New()

	var calls []string
	bus.Subscribe(trolleybus.OnStart, recording(&calls, "boot", nil))

	results, err := bus.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"boot"}, calls)

	// One result per handler, even when the handler returns nothing.
	assert.Equal(t, []any{nil}, results)
}

func TestStartAbortsOnHandlerError(t *testing.T) {
	bus := trolleybus.New()
	errBoot := errors.New("boot failed")

	var calls []string
	bus.Subscribe(trolleybus.OnStart, failing(&calls, "bad", errBoot), trolleybus.WithPriority(10))
	bus.Subscribe(trolleybus.OnStart, recording(&calls, "never", nil), trolleybus.WithPriority(20))

	_, err := bus.Start(context.Background())
	assert.ErrorIs(t, err, errBoot)
	assert.Equal(t, []string{"bad"}, calls)
}

func TestStopRunsEveryExitHandler(t *testing.T) {
	bus := trolleybus.New()
	errCleanup := errors.New("cleanup failed")

	var calls []string
	bus.Subscribe(trolleybus.OnExit, failing(&calls, "bad", errCleanup), trolleybus.WithPriority(10))
	bus.Subscribe(trolleybus.OnExit, recording(&calls, "ok", nil), trolleybus.WithPriority(20))

	results := bus.Stop(context.Background())
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, errCleanup)
	assert.False(t, results[1].IsError())

	// The failing cleanup handler did not block the second one.
	assert.Equal(t, []string{"bad", "ok"}, calls)
}

func TestOnStartedIsNeverFiredInternally(t *testing.T) {
	bus := trolleybus.New()

	var calls []string
	bus.Subscribe(trolleybus.OnStarted, recording(&calls, "started", nil))

	_, err := bus.Start(context.Background())
	require.NoError(t, err)
	bus.Stop(context.Background())

	assert.Empty(t, calls)

	// The hook is available for callers to fire themselves.
	results, err := bus.Broadcast(context.Background(), trolleybus.OnStarted, nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, []string{"started"}, calls)
}

func TestSameNameDistinctIdentity(t *testing.T) {
	first := trolleybus.Define[any, any]("duplicate-name")
	second := trolleybus.Define[any, any]("duplicate-name")

	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, first.Name(), second.Name())

	// They never share a subscription bucket.
	bus := trolleybus.New()
	var calls []string
	bus.Subscribe(first, recording(&calls, "first-only", nil))

	results, err := bus.Broadcast(context.Background(), second, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, calls)
}

func TestIndependentBuses(t *testing.T) {
	evt := trolleybus.Define[any, any]("shared-type")
	busA := trolleybus.New()
	busB := trolleybus.New()

	var calls []string
	busA.Subscribe(evt, recording(&calls, "a", nil))

	results, err := busB.Broadcast(context.Background(), evt, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, calls)
}

func TestDuplicateSubscribeCollapses(t *testing.T) {
	evt := trolleybus.Define[any, any]("dedup")
	bus := trolleybus.New()

	var calls []string
	h := recording(&calls, "once", nil)
	bus.Subscribe(evt, h)
	bus.Subscribe(evt, h)

	results, err := bus.Broadcast(context.Background(), evt, nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, []string{"once"}, calls)
}

func TestResubscribeUpdatesPriority(t *testing.T) {
	evt := trolleybus.Define[any, any]("reprioritized")
	bus := trolleybus.New()

	var calls []string
	h := recording(&calls, "moved", nil)
	bus.Subscribe(evt, h, trolleybus.WithPriority(90))
	bus.Subscribe(evt, recording(&calls, "steady", nil), trolleybus.WithPriority(40))

	// Re-subscribing the same handler keeps one entry but moves it.
	bus.Subscribe(evt, h, trolleybus.WithPriority(1))

	_, err := bus.Broadcast(context.Background(), evt, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"moved", "steady"}, calls)
}

func TestDistinctWrappersAreDistinctHandlers(t *testing.T) {
	evt := trolleybus.Define[any, any]("twins")
	bus := trolleybus.New()

	var count int
	fn := func(_ context.Context, _ any) (any, error) {
		count++
		return nil, nil
	}
	bus.Subscribe(evt, trolleybus.NewHandler(fn))
	bus.Subscribe(evt, trolleybus.NewHandler(fn))

	_, err := bus.Broadcast(context.Background(), evt, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUnsubscribe(t *testing.T) {
	evt := trolleybus.Define[any, any]("leaving")
	bus := trolleybus.New()
	ctx := context.Background()

	var calls []string
	h := recording(&calls, "gone", nil)
	bus.Subscribe(evt, h)
	bus.Unsubscribe(evt, h)

	results, err := bus.Broadcast(ctx, evt, nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	// Unregistered pairs and unknown events are silent no-ops.
	bus.Unsubscribe(evt, h)
	bus.Unsubscribe(trolleybus.Define[any, any]("never-seen"), h)
}

func TestDefaultPriority(t *testing.T) {
	evt := trolleybus.Define[any, any]("defaulted")
	bus := trolleybus.New()

	var calls []string
	bus.Subscribe(evt, recording(&calls, "implicit", nil)) // priority 50
	bus.Subscribe(evt, recording(&calls, "early", nil), trolleybus.WithPriority(10))
	bus.Subscribe(evt, recording(&calls, "late", nil), trolleybus.WithPriority(70))

	_, err := bus.Broadcast(context.Background(), evt, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "implicit", "late"}, calls)
}

func TestWithDefaultPriority(t *testing.T) {
	evt := trolleybus.Define[any, any]("custom-default")
	bus := trolleybus.New(trolleybus.WithDefaultPriority(5))

	var calls []string
	bus.Subscribe(evt, recording(&calls, "default", nil))
	bus.Subscribe(evt, recording(&calls, "explicit", nil), trolleybus.WithPriority(10))

	_, err := bus.Broadcast(context.Background(), evt, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "explicit"}, calls)
}

func TestNilArguments(t *testing.T) {
	bus := trolleybus.New()
	ctx := context.Background()

	// Nil subscribe arguments are ignored rather than panicking.
	bus.Subscribe(nil, trolleybus.NewHandler(func(_ context.Context, _ any) (any, error) { return nil, nil }))
	bus.Subscribe(trolleybus.OnStart, nil)
	bus.Unsubscribe(nil, nil)

	_, err := bus.Broadcast(ctx, nil, nil)
	assert.ErrorIs(t, err, trolleybus.ErrNilEventType)

	_, err = bus.SendOne(ctx, nil, nil)
	assert.ErrorIs(t, err, trolleybus.ErrNilEventType)

	_, err = bus.SendAny(ctx, nil, nil)
	assert.ErrorIs(t, err, trolleybus.ErrNilEventType)

	assert.Nil(t, bus.BroadcastTolerant(ctx, nil, nil))
}

func TestBusLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	evt := trolleybus.Define[any, any]("logged")
	bus := trolleybus.New(
		trolleybus.WithName("test-bus"),
		trolleybus.WithLogger(logger),
	)

	_, err := bus.Start(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "event bus starting")
	assert.Contains(t, buf.String(), "test-bus")

	buf.Reset()
	bus.Subscribe(evt, trolleybus.NewNamedHandler("exploder", func(_ context.Context, _ any) (any, error) {
		return nil, errors.New("kaput")
	}))
	_, err = bus.Broadcast(context.Background(), evt, nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "handler failed")
	assert.Contains(t, buf.String(), "exploder")
	assert.Contains(t, buf.String(), "kaput")

	buf.Reset()
	bus.Stop(context.Background())
	assert.Contains(t, buf.String(), "event bus exiting")

	// Tolerant dispatch returns failures to the caller instead of logging.
	buf.Reset()
	bus.BroadcastTolerant(context.Background(), evt, nil)
	assert.False(t, strings.Contains(buf.String(), "handler failed"))
}
