package trolleybus

import (
	"context"
	"time"

	"github.com/randalmurphal/trolleybus/pkg/trolleybus/observability"
)

// Result is one per-handler outcome from tolerant dispatch: either the
// handler's return value or the error it raised.
type Result struct {
	// Value is the handler's result; nil when the handler failed.
	Value any
	// Err is the captured handler error; nil on success.
	Err error
}

// IsError reports whether this entry recorded a handler failure.
func (r Result) IsError() bool {
	return r.Err != nil
}

// Broadcast invokes every handler of the event in ascending priority
// order and collects their results. The first handler error aborts
// dispatch: handlers after it are not invoked, the failure is logged, and
// the error is returned alongside the results gathered so far. An event
// with zero subscribers yields an empty result sequence and no error.
func (b *Bus) Broadcast(ctx context.Context, t EventType, payload any) ([]any, error) {
	if t == nil {
		return nil, ErrNilEventType
	}

	ctx, span := b.spans.StartDispatchSpan(ctx, t.Name(), "broadcast")
	start := time.Now()

	var results []any
	var dispatchErr error
	for _, h := range b.sortedHandlers(t) {
		result, err := h.invoke(ctx, payload)
		if err != nil {
			observability.LogHandlerFailure(b.logger, t.Name(), h.String(), err)
			b.metrics.RecordHandlerFailure(ctx, t.Name())
			dispatchErr = &HandlerError{EventName: t.Name(), Handler: h.String(), Err: err}
			break
		}
		results = append(results, result)
	}

	b.metrics.RecordDispatch(ctx, t.Name(), "broadcast", time.Since(start), dispatchErr)
	b.spans.EndSpanWithError(span, dispatchErr)
	return results, dispatchErr
}

// BroadcastTolerant invokes every handler of the event in ascending
// priority order, capturing errors instead of propagating them: a failing
// handler never prevents later handlers from running. The result sequence
// holds one entry per handler, in invocation order. Captured errors are
// returned to the caller rather than logged.
func (b *Bus) BroadcastTolerant(ctx context.Context, t EventType, payload any) []Result {
	if t == nil {
		return nil
	}

	ctx, span := b.spans.StartDispatchSpan(ctx, t.Name(), "broadcast_tolerant")
	start := time.Now()

	handlers := b.sortedHandlers(t)
	results := make([]Result, 0, len(handlers))
	for _, h := range handlers {
		value, err := h.invoke(ctx, payload)
		if err != nil {
			b.metrics.RecordHandlerFailure(ctx, t.Name())
			results = append(results, Result{Err: err})
			continue
		}
		results = append(results, Result{Value: value})
	}

	b.metrics.RecordDispatch(ctx, t.Name(), "broadcast_tolerant", time.Since(start), nil)
	b.spans.EndSpanWithError(span, nil)
	return results
}

// SendOne invokes only the single highest-priority handler of the event
// and returns its result. An event with zero registered handlers fails
// with *NoListenersError - the one case where an unknown event is an
// error rather than an empty result. A handler error propagates.
func (b *Bus) SendOne(ctx context.Context, t EventType, payload any) (any, error) {
	if t == nil {
		return nil, ErrNilEventType
	}

	ctx, span := b.spans.StartDispatchSpan(ctx, t.Name(), "send_one")
	start := time.Now()

	var result any
	var dispatchErr error
	handlers := b.sortedHandlers(t)
	if len(handlers) == 0 {
		observability.LogNoListeners(b.logger, t.Name())
		dispatchErr = &NoListenersError{EventName: t.Name()}
	} else if value, err := handlers[0].invoke(ctx, payload); err != nil {
		b.metrics.RecordHandlerFailure(ctx, t.Name())
		dispatchErr = &HandlerError{EventName: t.Name(), Handler: handlers[0].String(), Err: err}
	} else {
		result = value
	}

	b.metrics.RecordDispatch(ctx, t.Name(), "send_one", time.Since(start), dispatchErr)
	b.spans.EndSpanWithError(span, dispatchErr)
	return result, dispatchErr
}

// SendAny invokes handlers in ascending priority order until one returns
// a non-nil result, which is returned without invoking the rest. If every
// handler returns nil, or there are none, SendAny returns nil. A handler
// error stops iteration, is logged, and propagates.
func (b *Bus) SendAny(ctx context.Context, t EventType, payload any) (any, error) {
	if t == nil {
		return nil, ErrNilEventType
	}

	ctx, span := b.spans.StartDispatchSpan(ctx, t.Name(), "send_any")
	start := time.Now()

	var result any
	var dispatchErr error
	for _, h := range b.sortedHandlers(t) {
		value, err := h.invoke(ctx, payload)
		if err != nil {
			observability.LogHandlerFailure(b.logger, t.Name(), h.String(), err)
			b.metrics.RecordHandlerFailure(ctx, t.Name())
			dispatchErr = &HandlerError{EventName: t.Name(), Handler: h.String(), Err: err}
			break
		}
		if value != nil {
			result = value
			break
		}
	}

	b.metrics.RecordDispatch(ctx, t.Name(), "send_any", time.Since(start), dispatchErr)
	b.spans.EndSpanWithError(span, dispatchErr)
	return result, dispatchErr
}
