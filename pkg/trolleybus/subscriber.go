package trolleybus

import "context"

// Binding is declarative handler metadata: an event type, a handler, and
// subscription options. Bindings are inert until a Subscriber binds them
// into a bus in response to the on-start event.
type Binding struct {
	event   EventType
	handler *Handler
	opts    []SubscribeOption
}

// Bind declares that handler should be subscribed to the event when the
// owning Subscriber starts.
func Bind(t EventType, h *Handler, opts ...SubscribeOption) Binding {
	return Binding{event: t, handler: h, opts: opts}
}

// Subscriber binds a fixed set of handlers into a bus in response to the
// bus lifecycle, without manual Subscribe calls: on-start subscribes
// every declared binding, on-exit removes exactly the subscriptions that
// on-start added. Starting and stopping the bus repeatedly is safe.
type Subscriber struct {
	bus      *Bus
	bindings []Binding
	active   []activeSubscription
}

// activeSubscription records one pair added during on-start so that
// on-exit can remove it - never more, never fewer.
type activeSubscription struct {
	event   EventType
	handler *Handler
}

// NewSubscriber creates a subscriber for the given bindings and
// immediately subscribes its own on-start and on-exit handlers to the
// bus, at the default priority. Malformed bindings are rejected here,
// at construction, rather than at bind time.
func NewSubscriber(bus *Bus, bindings ...Binding) (*Subscriber, error) {
	if bus == nil {
		return nil, ErrNilBus
	}
	for _, b := range bindings {
		if b.event == nil {
			return nil, ErrNilEventType
		}
		if b.handler == nil {
			return nil, ErrNilHandler
		}
	}

	s := &Subscriber{bus: bus, bindings: bindings}
	bus.Subscribe(OnStart, NewNamedHandler("subscriber.on-start", s.onStart))
	bus.Subscribe(OnExit, NewNamedHandler("subscriber.on-exit", s.onExit))
	return s, nil
}

func (s *Subscriber) onStart(_ context.Context, _ any) (any, error) {
	for _, b := range s.bindings {
		s.bus.Subscribe(b.event, b.handler, b.opts...)
		s.active = append(s.active, activeSubscription{event: b.event, handler: b.handler})
	}
	return nil, nil
}

func (s *Subscriber) onExit(_ context.Context, _ any) (any, error) {
	for _, a := range s.active {
		s.bus.Unsubscribe(a.event, a.handler)
	}
	s.active = nil
	return nil, nil
}
