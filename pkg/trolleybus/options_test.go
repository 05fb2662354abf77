package trolleybus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/trolleybus/pkg/trolleybus"
	"github.com/randalmurphal/trolleybus/pkg/trolleybus/config"
)

func TestOptionsFromConfig(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want int
	}{
		{"empty config yields no options", nil, 0},
		{"name only", map[string]any{"name": "payments"}, 1},
		{"all keys", map[string]any{
			"name":             "payments",
			"default_priority": 10,
			"metrics":          true,
			"tracing":          true,
		}, 4},
		{"disabled observability yields no options", map[string]any{
			"metrics": false,
			"tracing": false,
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := trolleybus.OptionsFromConfig(config.New(tt.data))
			assert.Len(t, opts, tt.want)
		})
	}
}

func TestConfigDrivenDefaultPriority(t *testing.T) {
	cfg, err := config.FromYAML([]byte("default_priority: 5\nname: configured\n"))
	require.NoError(t, err)

	bus := trolleybus.New(trolleybus.OptionsFromConfig(cfg)...)
	evt := trolleybus.Define[any, any]("configured-event")

	var calls []string
	bus.Subscribe(evt, recording(&calls, "configured-default", nil))
	bus.Subscribe(evt, recording(&calls, "explicit-ten", nil), trolleybus.WithPriority(10))

	_, err = bus.Broadcast(context.Background(), evt, nil)
	require.NoError(t, err)

	// The yaml default of 5 beats the explicit 10.
	assert.Equal(t, []string{"configured-default", "explicit-ten"}, calls)
}
