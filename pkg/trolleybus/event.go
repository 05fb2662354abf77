package trolleybus

import "github.com/google/uuid"

// EventType identifies a category of events the bus can dispatch.
// Descriptors are created once with Define and passed by reference into
// bus operations; they are never instantiated as event values.
type EventType interface {
	// ID returns the unique identifier allocated at definition time.
	ID() uuid.UUID

	// Name returns the display name. It is diagnostic only and plays
	// no part in identity or lookup.
	Name() string
}

// Type is the concrete event type descriptor.
// P is the payload type handlers receive; R is the result type they return.
// The type parameters document the contract of the event - dispatch itself
// is dynamically typed, with TypedHandler providing the checked bridge.
type Type[P, R any] struct {
	id   uuid.UUID
	name string
}

// Define allocates a new event type with a fresh unique identifier.
// Two calls never yield the same identifier, even with the same name.
// Definition cannot fail; call it once per event type at package
// initialization:
//
//	var OrderPlaced = trolleybus.Define[Order, Receipt]("order-placed")
func Define[P, R any](name string) *Type[P, R] {
	return &Type[P, R]{
		id:   uuid.New(),
		name: name,
	}
}

// ID returns the unique identifier allocated at definition time.
func (t *Type[P, R]) ID() uuid.UUID {
	return t.id
}

// Name returns the display name.
func (t *Type[P, R]) Name() string {
	return t.name
}
