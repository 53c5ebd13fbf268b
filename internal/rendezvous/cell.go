// Package rendezvous provides a write-once cell used to hand a single value
// from one goroutine to another.
//
// A Cell is resolved at most once. Every resolve attempt after the first is
// ignored, which makes it safe to wire into HTTP handlers that may be hit more
// than once for the same exchange. The consumer side blocks in Wait until the
// cell is resolved, abandoned or the context is done.
package rendezvous

import (
	"context"
	"errors"
	"sync"
)

// ErrAbandoned is returned by Wait when the cell was closed without a value.
var ErrAbandoned = errors.New("rendezvous cell abandoned without a value")

// Cell is a single-slot, write-once handoff between a producer and a consumer.
// The zero value is not usable; create cells with New.
type Cell[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	value     T
	settled   bool
	abandoned bool
}

// New creates an unresolved cell.
func New[T any]() *Cell[T] {
	return &Cell[T]{done: make(chan struct{})}
}

// Resolve stores v if the cell has not been settled yet.
// It reports whether this call was the one that settled the cell.
func (c *Cell[T]) Resolve(v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.settled {
		return false
	}
	c.value = v
	c.settled = true
	close(c.done)
	return true
}

// Abandon settles the cell without a value. Waiters receive ErrAbandoned.
// It reports whether this call settled the cell.
func (c *Cell[T]) Abandon() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.settled {
		return false
	}
	c.settled = true
	c.abandoned = true
	close(c.done)
	return true
}

// Done returns a channel that is closed once the cell is resolved or abandoned.
func (c *Cell[T]) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the cell is settled or ctx is done.
func (c *Cell[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.abandoned {
			var zero T
			return zero, ErrAbandoned
		}
		return c.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
