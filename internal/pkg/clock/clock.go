// Package clock provides the time sources used by the warehouse.
package clock

import (
	"sync"
	"time"
)

// System reads the wall clock in a fixed location so every terminal derives
// the same calendar day for barcodes and invoice numbers.
type System struct {
	location *time.Location
}

// NewSystem returns a System clock. A nil location means UTC.
func NewSystem(location *time.Location) System {
	if location == nil {
		location = time.UTC
	}
	return System{location: location}
}

// Now returns the current time in the clock's location.
func (c System) Now() time.Time {
	return time.Now().In(c.location)
}

// Manual is a clock that only moves when told to.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock stopped at now.
func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

// Now returns the current manual time.
func (c *Manual) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to now.
func (c *Manual) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
