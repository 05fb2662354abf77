/*
Package trolleybus provides a synchronous, priority-ordered, in-process
event bus.

# Overview

Components register interest in named event types and the bus invokes the
registered handlers, synchronously, in deterministic ascending-priority
order, when an event is fired. Dispatch never leaves the caller's
goroutine: every handler runs to completion (or failure) before the next
one starts, and a handler that never returns blocks the bus forever.

The library is a Go rendition of a classic publish/subscribe dispatcher
with:
  - Definition-time unique event identities (UUID per Define call)
  - Four dispatch strategies with distinct error policies
  - Bus lifecycle events and a declarative subscriber binder
  - OpenTelemetry integration for observability

# Basic Usage

Define event types once, at package initialization, then subscribe and
fire:

	var PriceChanged = trolleybus.Define[float64, any]("price-changed")

	func main() {
	    bus := trolleybus.New()

	    bus.Subscribe(PriceChanged, trolleybus.NewHandler(
	        func(ctx context.Context, payload any) (any, error) {
	            fmt.Println("price is now", payload)
	            return nil, nil
	        }))

	    results, err := bus.Broadcast(context.Background(), PriceChanged, 9.99)
	    if err != nil {
	        log.Fatal(err)
	    }
	    fmt.Println(len(results), "handlers ran")
	}

Event types are identified by the descriptor returned from Define, never
by name: two Define calls with the same name produce independent event
types that never share subscribers.

# Priorities

Subscriptions carry an integer priority; lower runs first. The default is
50 (configurable per bus with WithDefaultPriority):

	bus.Subscribe(PriceChanged, audit, trolleybus.WithPriority(10)) // runs first
	bus.Subscribe(PriceChanged, cache)                              // runs second

Order among handlers with equal priority is unspecified. Handlers are
identified by their *Handler pointer: subscribing the same *Handler to
the same event twice keeps a single registration, while two NewHandler
wrappers around the same function are two distinct handlers.

# Dispatch Strategies

Four strategies share the priority-sorted iteration and differ in their
result and error policy:

  - Broadcast: invoke all; first handler error aborts the rest, is
    logged, and propagates. Mandatory side effects, fail fast.
  - BroadcastTolerant: invoke all; errors are captured per handler in the
    result sequence and never propagate. Best-effort fan-out, used by
    Stop so one failing cleanup handler can't block the rest.
  - SendOne: invoke only the highest-priority handler; zero handlers is
    a *NoListenersError. Exactly one authoritative responder must exist.
  - SendAny: invoke in priority order until a non-nil result appears;
    nil when nobody answers. Try responders in preference order.

# Lifecycle

Every bus pre-registers three built-in events: OnStart (fired by Start,
fail-fast), OnExit (fired by Stop, tolerant), and OnStarted, which the
bus itself never fires - it is a hook for callers to fire once startup
is declared complete.

The Subscriber binder attaches a declared handler set to the lifecycle:

	sub, err := trolleybus.NewSubscriber(bus,
	    trolleybus.Bind(PriceChanged, onPrice, trolleybus.WithPriority(10)),
	    trolleybus.Bind(OrderPlaced, onOrder),
	)

On on-start the subscriber registers every binding; on on-exit it removes
exactly what it registered, leaving no residue. Start/stop cycles repeat
cleanly.

# Concurrency

The bus is single-threaded by construction. Subscribe/Unsubscribe guard
the bucket map, but concurrent mutation of one event's subscriptions
needs external mutual exclusion; dispatch always runs on the calling
goroutine and snapshots the handler list at dispatch start, so handlers
may subscribe and unsubscribe freely without disturbing the in-flight
dispatch. There is no cancellation, no timeout, and no retry.

# Observability

Pass a *slog.Logger with WithLogger for structured diagnostics (bus
start, bus stop, handler failures in fail-fast dispatch). OTel metrics
and dispatch spans are opt-in:

	bus := trolleybus.New(
	    trolleybus.WithLogger(slog.Default()),
	    trolleybus.WithMetrics(observability.NewMetricsRecorder()),
	    trolleybus.WithTracing(observability.NewSpanManager()),
	)

or driven from a YAML file via config.FromFile and OptionsFromConfig.
*/
package trolleybus
