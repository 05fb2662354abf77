package trolleybus

import (
	"log/slog"

	"github.com/randalmurphal/trolleybus/pkg/trolleybus/config"
	"github.com/randalmurphal/trolleybus/pkg/trolleybus/observability"
)

// DefaultPriority is the priority assigned to subscriptions that don't
// pass WithPriority, unless the bus was built with WithDefaultPriority.
const DefaultPriority = 50

// busConfig holds configuration for a bus.
type busConfig struct {
	name            string
	logger          *slog.Logger
	metrics         observability.MetricsRecorder
	spans           observability.SpanManager
	defaultPriority int
}

// defaultBusConfig returns the default bus configuration: no logging,
// no-op observability.
func defaultBusConfig() busConfig {
	return busConfig{
		name:            "trolleybus",
		metrics:         observability.NoopMetrics{},
		spans:           observability.NoopSpanManager{},
		defaultPriority: DefaultPriority,
	}
}

// Option configures bus construction.
type Option func(*busConfig)

// WithName sets the bus name used in log attribution.
// Default: "trolleybus"
func WithName(name string) Option {
	return func(c *busConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the diagnostic logger. The bus logs on start, on stop,
// and on handler failures inside fail-fast dispatch. A nil logger (the
// default) disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *busConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics
//
// Example:
//
//	bus := trolleybus.New(trolleybus.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *busConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing sets the span manager used to trace dispatch calls.
// Default: observability.NoopSpanManager
func WithTracing(sm observability.SpanManager) Option {
	return func(c *busConfig) {
		if sm != nil {
			c.spans = sm
		}
	}
}

// WithDefaultPriority sets the priority used by Subscribe calls that
// don't pass WithPriority.
// Default: DefaultPriority (50)
func WithDefaultPriority(p int) Option {
	return func(c *busConfig) {
		c.defaultPriority = p
	}
}

// SubscribeOption configures a single subscription.
type SubscribeOption func(*subscribeConfig)

// subscribeConfig holds configuration for one Subscribe call.
type subscribeConfig struct {
	priority int
}

// WithPriority sets the subscription priority. Lower values run first;
// order among equal priorities is unspecified.
func WithPriority(p int) SubscribeOption {
	return func(c *subscribeConfig) {
		c.priority = p
	}
}

// OptionsFromConfig maps a loaded configuration to bus options.
//
// Recognized keys:
//   - name (string): bus name
//   - default_priority (int): default subscription priority
//   - metrics (bool): enable OTel metrics
//   - tracing (bool): enable OTel dispatch spans
//
// Example:
//
//	cfg, err := config.FromFile("bus.yaml")
//	if err != nil { ... }
//	bus := trolleybus.New(trolleybus.OptionsFromConfig(cfg)...)
func OptionsFromConfig(cfg config.Config) []Option {
	var opts []Option
	if cfg.Has("name") {
		opts = append(opts, WithName(cfg.String("name", "trolleybus")))
	}
	if cfg.Has("default_priority") {
		opts = append(opts, WithDefaultPriority(cfg.Int("default_priority", DefaultPriority)))
	}
	if cfg.Bool("metrics", false) {
		opts = append(opts, WithMetrics(observability.NewMetricsRecorder()))
	}
	if cfg.Bool("tracing", false) {
		opts = append(opts, WithTracing(observability.NewSpanManager()))
	}
	return opts
}
