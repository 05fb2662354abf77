package trolleybus_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/trolleybus/pkg/trolleybus"
)

func TestHandlerString(t *testing.T) {
	named := trolleybus.NewNamedHandler("audit", func(_ context.Context, _ any) (any, error) {
		return nil, nil
	})
	assert.Equal(t, "audit", named.String())

	anon := trolleybus.NewHandler(func(_ context.Context, _ any) (any, error) {
		return nil, nil
	})
	assert.True(t, strings.HasPrefix(anon.String(), "handler("))
}

func TestTypedHandler(t *testing.T) {
	evt := trolleybus.Define[int, int]("doubler")
	bus := trolleybus.New()
	ctx := context.Background()

	bus.Subscribe(evt, trolleybus.TypedHandler(func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	}))

	t.Run("typed payload flows through", func(t *testing.T) {
		result, err := bus.SendOne(ctx, evt, 21)
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("payload type mismatch is a handler error", func(t *testing.T) {
		_, err := bus.SendOne(ctx, evt, "not an int")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected payload type")
	})
}

func TestTypedHandlerNilPayload(t *testing.T) {
	bus := trolleybus.New()
	ctx := context.Background()

	var got string
	bus.Subscribe(trolleybus.OnStart, trolleybus.TypedHandler(func(_ context.Context, s string) (any, error) {
		got = s
		return nil, nil
	}))

	// Lifecycle events dispatch nil; the typed handler sees the zero value.
	_, err := bus.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
