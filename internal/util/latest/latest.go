// Package latest implements a single-writer, latest-value-wins observable.
//
// A Cell holds at most one value. Publish overwrites whatever was there;
// readers see only the most recent value and must tolerate missing
// intermediate ones. The change channel is a coalescing one-slot signal,
// never a full event stream.
package latest

import "sync"

// Cell is a latest-value cell. The zero value is not usable; call New.
type Cell[T any] struct {
	mu      sync.Mutex
	val     T
	set     bool
	changes chan struct{}
}

// New returns an empty cell.
func New[T any]() *Cell[T] {
	return &Cell[T]{changes: make(chan struct{}, 1)}
}

// Publish overwrites the stored value and signals waiting readers.
// It never blocks; a pending, unconsumed signal is coalesced.
func (c *Cell[T]) Publish(v T) {
	c.mu.Lock()
	c.val = v
	c.set = true
	c.mu.Unlock()

	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// Load returns the most recently published value, if any.
func (c *Cell[T]) Load() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.val, c.set
}

// Changes returns a signal channel that receives after a Publish. Consecutive
// publishes may collapse into a single signal; call Load for the value.
func (c *Cell[T]) Changes() <-chan struct{} {
	return c.changes
}
