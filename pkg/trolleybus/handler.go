package trolleybus

import (
	"context"
	"fmt"
)

// HandlerFunc is the callable shape every handler reduces to:
// it receives the dispatched payload and returns a result or an error.
// The context carries tracing state only - dispatch never cancels a
// running handler.
type HandlerFunc func(ctx context.Context, payload any) (any, error)

// Handler is a registered invocable. The bus identifies handlers by
// pointer, so wrapping the same function twice with NewHandler yields two
// distinct handlers, while subscribing the same *Handler twice collapses
// to a single registration.
type Handler struct {
	name string
	fn   HandlerFunc
}

// NewHandler wraps fn as a handler.
func NewHandler(fn HandlerFunc) *Handler {
	return &Handler{fn: fn}
}

// NewNamedHandler wraps fn as a handler with a name used in diagnostic
// log lines.
func NewNamedHandler(name string, fn HandlerFunc) *Handler {
	return &Handler{name: name, fn: fn}
}

// String returns the handler's name, or a pointer-derived placeholder
// for anonymous handlers.
func (h *Handler) String() string {
	if h.name != "" {
		return h.name
	}
	return fmt.Sprintf("handler(%p)", h)
}

func (h *Handler) invoke(ctx context.Context, payload any) (any, error) {
	return h.fn(ctx, payload)
}

// TypedHandler adapts a strongly typed function to a handler.
// The payload is asserted to P at dispatch time; a mismatch is reported
// as a handler error. A nil payload (the lifecycle events dispatch nil)
// is delivered as the zero value of P.
func TypedHandler[P, R any](fn func(ctx context.Context, payload P) (R, error)) *Handler {
	return NewHandler(func(ctx context.Context, payload any) (any, error) {
		var p P
		if payload != nil {
			typed, ok := payload.(P)
			if !ok {
				return nil, fmt.Errorf("unexpected payload type %T", payload)
			}
			p = typed
		}
		return fn(ctx, p)
	})
}
