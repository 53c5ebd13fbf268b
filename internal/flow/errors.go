package flow

import (
	"errors"

	"loopauth/internal/callback"
)

var (
	// ErrNoPortAvailable is returned by Start when the whole callback port range is in use.
	ErrNoPortAvailable = callback.ErrNoPortAvailable

	// ErrNoActiveFlow is returned by Wait when there is no unconsumed session.
	ErrNoActiveFlow = errors.New("no OAuth sign-in flow is active")

	// ErrChannelClosed is returned by Wait when the flow ended without a result,
	// because the listener died or the flow was superseded.
	ErrChannelClosed = errors.New("callback channel closed unexpectedly")

	// ErrFlowTimeout is returned by Wait when no result arrived before the deadline.
	ErrFlowTimeout = errors.New("OAuth timeout - user took too long to authenticate")

	// ErrStateMismatch is returned by Wait when a token arrives with a state
	// other than the one the session expects.
	ErrStateMismatch = errors.New("OAuth state mismatch")

	// ErrFlowCanceled is returned by Wait when the caller's context ended first.
	ErrFlowCanceled = errors.New("sign-in flow canceled")

	// ErrInvalidURL is returned by OpenSignInSurface for a URL that is not absolute.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrSurfaceCreationFailed is returned when the window layer refuses to open the sign-in window.
	ErrSurfaceCreationFailed = errors.New("failed to create sign-in window")
)

// CallbackError carries an error reported by the identity provider through
// the result route.
type CallbackError struct {
	Message string
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	return "sign-in failed: " + e.Message
}
