package flow

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"loopauth/internal/callback"
	"loopauth/internal/rendezvous"
	"loopauth/internal/surface"
	"loopauth/pkg/logging"
)

// DefaultTimeout bounds how long Wait blocks for the provider's redirect.
const DefaultTimeout = 300 * time.Second

const subsystem = "Flow"

// Options configures a Coordinator.
type Options struct {
	// Listener selects the loopback host and port range.
	Listener callback.Config

	// Timeout is the hard deadline of Wait, measured from the call. Zero means DefaultTimeout.
	Timeout time.Duration

	// Surfaces opens and closes the sign-in window.
	Surfaces surface.Manager

	// Window is the template of the sign-in window; its URL is filled in by
	// OpenSignInSurface. A zero Label selects surface.SignInWindow.
	Window surface.WindowSpec
}

// Coordinator runs sign-in flows, one at a time.
type Coordinator struct {
	listenerCfg callback.Config
	timeout     time.Duration
	surfaces    surface.Manager
	window      surface.WindowSpec

	mu      sync.Mutex
	current *Session
}

// NewCoordinator creates a Coordinator. Surfaces must not be nil.
func NewCoordinator(opts Options) *Coordinator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Window.Label == "" {
		opts.Window = surface.SignInWindow(nil)
	}
	return &Coordinator{
		listenerCfg: opts.Listener,
		timeout:     opts.Timeout,
		surfaces:    opts.Surfaces,
		window:      opts.Window,
	}
}

// Timeout returns the deadline applied by Wait.
func (c *Coordinator) Timeout() time.Duration {
	return c.timeout
}

// Current returns the active session, if any.
func (c *Coordinator) Current() (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != nil
}

// Start launches a callback listener for a new flow and makes it current.
// An active flow is stopped and abandoned first.
func (c *Coordinator) Start(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev := c.current; prev != nil {
		logging.Warn(subsystem, "Superseding active sign-in flow %s on port %d", prev.ID(), prev.Info().Port)
		c.current = nil
		prev.abandon()
		c.closeSurface()
	}

	cell := rendezvous.New[callback.Outcome]()

	// The listener outlives the Start call; Wait or a later Start stops it.
	l, err := callback.Start(context.WithoutCancel(ctx), c.listenerCfg, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to start OAuth callback listener: %w", err)
	}

	s := newSession(l, cell)
	c.current = s
	logging.Info(subsystem, "Sign-in flow %s listening at %s", s.ID(), s.Info().CallbackURL)
	return s, nil
}

// WaitForResult waits on the current session. See Wait.
func (c *Coordinator) WaitForResult(ctx context.Context) (string, error) {
	c.mu.Lock()
	s := c.current
	c.mu.Unlock()

	if s == nil {
		return "", ErrNoActiveFlow
	}
	return c.Wait(ctx, s)
}

// Wait consumes s and blocks until its result arrives, the flow is abandoned,
// the timeout elapses or ctx ends. The listener is stopped and the sign-in
// window closed on every path out of Wait.
func (c *Coordinator) Wait(ctx context.Context, s *Session) (string, error) {
	if s == nil || !s.take() {
		return "", ErrNoActiveFlow
	}
	defer c.cleanup(s)

	s.setState(StateWaiting)

	waitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outcome, err := s.cell.Wait(waitCtx)
	if err != nil {
		switch {
		case errors.Is(err, rendezvous.ErrAbandoned):
			s.setState(StateAbandoned)
			logging.Warn(subsystem, "Sign-in flow %s ended without a result", s.ID())
			return "", ErrChannelClosed
		case ctx.Err() != nil:
			s.setState(StateCanceled)
			logging.Info(subsystem, "Sign-in flow %s canceled", s.ID())
			return "", fmt.Errorf("%w: %w", ErrFlowCanceled, ctx.Err())
		default:
			s.setState(StateTimedOut)
			logging.Warn(subsystem, "Sign-in flow %s timed out after %s", s.ID(), c.timeout)
			return "", ErrFlowTimeout
		}
	}

	if outcome.IsError() {
		s.setState(StateFailed)
		return "", &CallbackError{Message: outcome.Message()}
	}

	if !s.stateMatches(outcome.State()) {
		s.setState(StateFailed)
		logging.Warn(subsystem, "Sign-in flow %s rejected a token with an unexpected state", s.ID())
		return "", ErrStateMismatch
	}

	s.setState(StateResolved)
	logging.Info(subsystem, "Sign-in flow %s completed after %s", s.ID(), time.Since(s.StartedAt()).Round(time.Millisecond))
	return outcome.Token(), nil
}

// cleanup releases the session's listener, clears it from the coordinator and
// closes the sign-in window. Failures are logged, never returned. A session that
// was superseded leaves the window alone since it now belongs to the new flow.
func (c *Coordinator) cleanup(s *Session) {
	s.listener.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != s {
		return
	}
	c.current = nil
	c.closeSurface()
}

// closeSurface must be called with c.mu held.
func (c *Coordinator) closeSurface() {
	if c.surfaces == nil {
		return
	}
	if err := c.surfaces.Close(c.window.Label); err != nil {
		logging.Debug(subsystem, "Sign-in window %q not closed: %v", c.window.Label, err)
	}
}

// OpenSignInSurface opens the sign-in window at rawURL. It returns as soon as
// the window layer accepted the request.
func (c *Coordinator) OpenSignInSurface(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidURL, rawURL)
	}

	if c.surfaces == nil {
		return fmt.Errorf("%w: no window manager configured", ErrSurfaceCreationFailed)
	}

	spec := c.window
	spec.URL = u
	if err := c.surfaces.Open(spec); err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceCreationFailed, err)
	}

	c.mu.Lock()
	if c.current != nil {
		c.current.setState(StateAwaitingUser)
	}
	c.mu.Unlock()

	logging.Debug(subsystem, "Opened sign-in window %q", spec.Label)
	return nil
}

// AuthURLFunc builds the provider URL for a listener. It returns the URL and
// the state the provider will echo back, or "" to skip the state check.
type AuthURLFunc func(info callback.ServerInfo) (authURL, state string, err error)

// SignIn runs a whole flow: Start, build the provider URL for the callback,
// open the sign-in window and Wait.
func (c *Coordinator) SignIn(ctx context.Context, authURL AuthURLFunc) (string, error) {
	s, err := c.Start(ctx)
	if err != nil {
		return "", err
	}

	rawURL, state, err := authURL(s.Info())
	if err == nil {
		s.ExpectState(state)
		err = c.OpenSignInSurface(rawURL)
	}
	if err != nil {
		c.discard(s)
		return "", err
	}

	return c.Wait(ctx, s)
}

// discard releases a session that will never be waited on.
func (c *Coordinator) discard(s *Session) {
	if !s.take() {
		return
	}
	s.abandon()
	c.cleanup(s)
}
