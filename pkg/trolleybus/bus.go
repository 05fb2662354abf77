package trolleybus

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/randalmurphal/trolleybus/pkg/trolleybus/observability"
	"github.com/randalmurphal/trolleybus/pkg/trolleybus/registry"
)

// Bus is a synchronous publish/subscribe dispatcher. It owns the
// subscription registry mapping event identifiers to prioritized handler
// sets and invokes handlers on the caller's goroutine, in ascending
// priority order.
//
// A process may hold several independent buses; they share no state.
// Subscribe and Unsubscribe guard the bucket map but not the buckets
// themselves - callers that mutate subscriptions from multiple goroutines
// need external mutual exclusion. Dispatch snapshots the handler list at
// dispatch start, so registry mutation from inside a handler does not
// affect the in-flight dispatch.
type Bus struct {
	name            string
	logger          *slog.Logger
	metrics         observability.MetricsRecorder
	spans           observability.SpanManager
	defaultPriority int

	buckets *registry.Registry[uuid.UUID, *bucket]
}

// bucket is the subscription set for one event identifier.
type bucket struct {
	priorities map[*Handler]int
}

func newBucket() *bucket {
	return &bucket{priorities: make(map[*Handler]int)}
}

// New creates a bus. The three lifecycle events are pre-registered with
// empty handler sets, so Start and Stop never hit the unknown-event path.
func New(opts ...Option) *Bus {
	cfg := defaultBusConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Bus{
		name:            cfg.name,
		logger:          observability.EnrichLogger(cfg.logger, cfg.name),
		metrics:         cfg.metrics,
		spans:           cfg.spans,
		defaultPriority: cfg.defaultPriority,
		buckets:         registry.New[uuid.UUID, *bucket](),
	}

	for _, t := range []EventType{OnStart, OnStarted, OnExit} {
		b.bucket(t)
	}

	return b
}

// Start fires the on-start event with fail-fast semantics: the first
// misbehaving startup handler aborts startup and its error is returned.
func (b *Bus) Start(ctx context.Context) ([]any, error) {
	observability.LogBusStart(b.logger, b.name)
	return b.Broadcast(ctx, OnStart, nil)
}

// Stop fires the on-exit event with best-effort semantics: every shutdown
// handler runs even if an earlier one fails, and failures come back in
// the result sequence.
func (b *Bus) Stop(ctx context.Context) []Result {
	observability.LogBusStop(b.logger, b.name)
	return b.BroadcastTolerant(ctx, OnExit, nil)
}

// Subscribe registers a handler for an event at the given priority
// (bus default when no WithPriority option is passed; lower runs first).
// The bucket for a previously unseen event is created on first reference.
// Re-subscribing the same *Handler to the same event keeps a single entry
// and updates its priority. A nil event type or handler is ignored.
func (b *Bus) Subscribe(t EventType, h *Handler, opts ...SubscribeOption) {
	if t == nil || h == nil {
		return
	}

	cfg := subscribeConfig{priority: b.defaultPriority}
	for _, opt := range opts {
		opt(&cfg)
	}

	set := b.bucket(t)
	_, existed := set.priorities[h]
	set.priorities[h] = cfg.priority
	if !existed {
		b.metrics.RecordSubscriptionChange(context.Background(), t.Name(), 1)
	}
}

// Unsubscribe removes a handler's subscription along with its priority
// record. Removing an unregistered pair is a silent no-op.
func (b *Bus) Unsubscribe(t EventType, h *Handler) {
	if t == nil || h == nil {
		return
	}
	set, ok := b.buckets.Get(t.ID())
	if !ok {
		return
	}
	if _, existed := set.priorities[h]; !existed {
		return
	}
	delete(set.priorities, h)
	b.metrics.RecordSubscriptionChange(context.Background(), t.Name(), -1)
}

func (b *Bus) bucket(t EventType) *bucket {
	return b.buckets.GetOrCreate(t.ID(), newBucket)
}

// sortedHandlers returns a snapshot of the event's handlers in ascending
// priority order. An event the registry has never seen yields an empty
// slice, not an error. Order among equal priorities is unspecified.
func (b *Bus) sortedHandlers(t EventType) []*Handler {
	set, ok := b.buckets.Get(t.ID())
	if !ok {
		return nil
	}

	type entry struct {
		handler  *Handler
		priority int
	}
	entries := make([]entry, 0, len(set.priorities))
	for h, p := range set.priorities {
		entries = append(entries, entry{handler: h, priority: p})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})

	handlers := make([]*Handler, len(entries))
	for i, e := range entries {
		handlers[i] = e.handler
	}
	return handlers
}
