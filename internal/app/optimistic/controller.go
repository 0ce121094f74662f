// internal/app/optimistic/controller.go

// Package optimistic implements the client-side mutation protocol shared by
// every mutable entity collection: a change becomes visible immediately,
// the authoritative write happens in the background, and any failure
// restores the last confirmed state exactly.
package optimistic

import (
	"context"
	"sync"
)

// Mutation computes the next state from the current one. It must treat its
// input as immutable and return a fresh value.
type Mutation[T any] func(T) T

// Persist performs the authoritative server write for a state the UI is
// already showing. A non-nil error rolls the visible state back.
type Persist[T any] func(context.Context, T) error

// Controller keeps a confirmed state plus an ordered chain of pending
// optimistic deltas. The visible state is always the confirmed state with
// the whole pending chain applied; deltas are serialized, so a second
// mutation issued while one is in flight is computed against the first's
// optimistic result, never against stale confirmed state.
type Controller[T any] struct {
	mu        sync.Mutex
	confirmed T
	visible   T
	clone     func(T) T
	persist   Persist[T]

	queue   []T // snapshots awaiting persistence, oldest first
	running bool
	idle    *sync.Cond
	closed  bool

	errs chan error
}

// New builds a controller around an initial confirmed state. clone must
// produce an independent copy (deep enough that mutations cannot alias the
// confirmed state); persist performs the server write for one snapshot.
func New[T any](initial T, clone func(T) T, persist Persist[T]) *Controller[T] {
	c := &Controller[T]{
		confirmed: clone(initial),
		visible:   clone(initial),
		clone:     clone,
		persist:   persist,
		errs:      make(chan error, 16),
	}
	c.idle = sync.NewCond(&c.mu)
	return c
}

// Apply computes the next visible state synchronously and schedules the
// server write. It never blocks on I/O.
func (c *Controller[T]) Apply(m Mutation[T]) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	next := m(c.clone(c.visible))
	c.visible = next
	c.queue = append(c.queue, c.clone(next))
	if !c.running {
		c.running = true
		go c.drain()
	}
	c.mu.Unlock()
}

// drain persists queued snapshots in order. On the first failure the whole
// pending chain is discarded: later deltas were computed on top of the
// failed one, so they cannot be kept either.
func (c *Controller[T]) drain() {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.running = false
			c.idle.Broadcast()
			c.mu.Unlock()
			return
		}
		snapshot := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		err := c.persist(context.Background(), c.clone(snapshot))

		c.mu.Lock()
		if err != nil {
			c.queue = nil
			c.visible = c.clone(c.confirmed)
			c.mu.Unlock()
			select {
			case c.errs <- err:
			default: // channel full; the newest error is dropped
			}
			continue
		}
		c.confirmed = snapshot
		c.mu.Unlock()
	}
}

// Visible returns the state the UI should render right now.
func (c *Controller[T]) Visible() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clone(c.visible)
}

// Confirmed returns the last server-acknowledged state.
func (c *Controller[T]) Confirmed() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clone(c.confirmed)
}

// Pending reports whether a delta is still in flight.
func (c *Controller[T]) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running || len(c.queue) > 0
}

// Errors is the error-notification channel consumed by a top-level error
// surface; rollbacks have already happened by the time an error arrives.
func (c *Controller[T]) Errors() <-chan error {
	return c.errs
}

// Wait blocks until every queued delta has been persisted or rolled back.
// Tests use it to make the asynchronous protocol deterministic.
func (c *Controller[T]) Wait() {
	c.mu.Lock()
	for c.running || len(c.queue) > 0 {
		c.idle.Wait()
	}
	c.mu.Unlock()
}

// Close stops accepting mutations and waits for in-flight work.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.Wait()
}
