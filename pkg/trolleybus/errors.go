package trolleybus

import (
	"errors"
	"fmt"
)

// Sentinel errors for subscriber binding.
var (
	// ErrNilBus indicates NewSubscriber was called without a bus.
	ErrNilBus = errors.New("bus cannot be nil")

	// ErrNilEventType indicates a binding references no event type.
	ErrNilEventType = errors.New("event type cannot be nil")

	// ErrNilHandler indicates a binding carries no handler.
	ErrNilHandler = errors.New("handler cannot be nil")
)

// NoListenersError is returned by SendOne when the target event has no
// registered handlers at call time. The other strategies treat an empty
// handler set as an empty result, never as an error.
type NoListenersError struct {
	// EventName is the display name of the event that had no listeners.
	EventName string
}

// Error implements the error interface.
func (e *NoListenersError) Error() string {
	return fmt.Sprintf("no listeners for %s", e.EventName)
}

// HandlerError wraps an error raised by a handler body with dispatch
// context. Broadcast, SendOne and SendAny return handler failures in this
// form; BroadcastTolerant returns the raw captured error instead.
type HandlerError struct {
	// EventName is the display name of the dispatched event.
	EventName string
	// Handler identifies the failing handler.
	Handler string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s failed on %s: %v", e.Handler, e.EventName, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
