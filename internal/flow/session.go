package flow

import (
	"sync"
	"time"

	"loopauth/internal/callback"
	"loopauth/internal/rendezvous"

	"github.com/google/uuid"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateListening State = iota
	StateAwaitingUser
	StateWaiting
	StateResolved
	StateFailed
	StateTimedOut
	StateAbandoned
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	case StateAwaitingUser:
		return "awaiting-user"
	case StateWaiting:
		return "waiting"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed-out"
	case StateAbandoned:
		return "abandoned"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has finished.
func (s State) Terminal() bool {
	return s >= StateResolved
}

// Session owns the resources of one sign-in flow: the running listener and
// the consumer side of its result cell.
type Session struct {
	id        string
	startedAt time.Time
	listener  *callback.Listener
	cell      *rendezvous.Cell[callback.Outcome]

	mu            sync.Mutex
	state         State
	consumed      bool
	expectedState string
}

func newSession(l *callback.Listener, cell *rendezvous.Cell[callback.Outcome]) *Session {
	return &Session{
		id:        uuid.NewString(),
		startedAt: time.Now(),
		listener:  l,
		cell:      cell,
		state:     StateListening,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Info returns where the identity provider must redirect to.
func (s *Session) Info() callback.ServerInfo {
	return s.listener.Info()
}

// StartedAt returns when the listener was started.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done is closed once the session's listener has stopped serving.
func (s *Session) Done() <-chan struct{} {
	return s.listener.Done()
}

// ExpectState makes Wait reject a token unless the provider echoed state.
// An empty state turns the check off.
func (s *Session) ExpectState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expectedState = state
}

func (s *Session) stateMatches(got string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expectedState == "" || s.expectedState == got
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Terminal() {
		s.state = state
	}
}

// take claims the consumer side. Only the first call succeeds.
func (s *Session) take() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed {
		return false
	}
	s.consumed = true
	return true
}

// abandon stops the listener and settles the cell without a value.
func (s *Session) abandon() {
	s.listener.Stop()
	s.cell.Abandon()
	s.setState(StateAbandoned)
}
