package trolleybus

import "context"

// Emitter is a convenience facade for components that hold a bus
// reference: every method forwards to the bus unchanged. It carries no
// state of its own.
type Emitter struct {
	bus *Bus
}

// NewEmitter creates an emitter bound to the bus.
func NewEmitter(bus *Bus) *Emitter {
	return &Emitter{bus: bus}
}

// Broadcast forwards to Bus.Broadcast.
func (e *Emitter) Broadcast(ctx context.Context, t EventType, payload any) ([]any, error) {
	return e.bus.Broadcast(ctx, t, payload)
}

// BroadcastTolerant forwards to Bus.BroadcastTolerant.
func (e *Emitter) BroadcastTolerant(ctx context.Context, t EventType, payload any) []Result {
	return e.bus.BroadcastTolerant(ctx, t, payload)
}

// SendOne forwards to Bus.SendOne.
func (e *Emitter) SendOne(ctx context.Context, t EventType, payload any) (any, error) {
	return e.bus.SendOne(ctx, t, payload)
}

// SendAny forwards to Bus.SendAny.
func (e *Emitter) SendAny(ctx context.Context, t EventType, payload any) (any, error) {
	return e.bus.SendAny(ctx, t, payload)
}
