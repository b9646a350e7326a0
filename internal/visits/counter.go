// Package visits holds the welcome endpoint's visit counter.
package visits

import "sync/atomic"

// Counter is a process-lifetime visit counter.  It starts at zero, is never
// persisted and only moves forward, except through Reset.  The zero value is
// ready to use and safe for concurrent handlers.
type Counter struct {
	n atomic.Int64
}

// NewCounter returns a counter at zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Increment records one visit and returns the count including it.  The add
// and the read are a single atomic operation, so concurrent callers always
// observe distinct values.
func (c *Counter) Increment() int64 {
	return c.n.Add(1)
}

// Value returns the current count without recording a visit.
func (c *Counter) Value() int64 {
	return c.n.Load()
}

// Reset sets the count back to zero.
func (c *Counter) Reset() {
	c.n.Store(0)
}
