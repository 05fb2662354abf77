package trolleybus

// Built-in lifecycle event types. Every bus pre-registers their
// identifiers at construction.
//
// Start fires OnStart and Stop fires OnExit. OnStarted is never fired by
// the bus itself: it exists for callers to fire once startup is fully
// declared complete, for example after every Subscriber has finished
// registering its handlers.
var (
	// OnStart is fired by Bus.Start with fail-fast dispatch.
	OnStart = Define[any, any]("on-start")

	// OnStarted is defined but never fired internally.
	OnStarted = Define[any, any]("on-started")

	// OnExit is fired by Bus.Stop with tolerant dispatch.
	OnExit = Define[any, any]("on-exit")
)
