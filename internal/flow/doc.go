// Package flow coordinates a single loopback sign-in: it starts the callback
// listener, opens the sign-in window and waits, with a hard deadline, for the
// identity token or error delivered by the listener.
//
// # Lifecycle
//
//	Idle -> Listening          Start
//	     -> AwaitingUser       OpenSignInSurface
//	     -> Resolved | Failed | TimedOut | Abandoned | Canceled    Wait
//	     -> Idle               cleanup (listener stopped, window closed)
//
// Start returns a Session, an owned handle to the flow. Wait consumes it
// exactly once; a second Wait on the same session fails with ErrNoActiveFlow.
// The Coordinator also remembers the current session so callers that cannot
// carry the handle around (a desktop command layer, for instance) can use
// WaitForResult instead.
//
// Only one flow is active at a time. Starting a new flow while another is
// active stops the old listener, abandons its result (its waiter returns
// ErrChannelClosed) and closes its window before the new listener binds.
package flow
