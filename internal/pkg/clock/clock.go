// Package clock provides time utilities for the application
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/gamemaster/internal/pkg/clock Clock

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed implements Clock returning a constant instant, for tests
type Fixed struct {
	instant time.Time
}

// Now returns the fixed instant
func (c *Fixed) Now() time.Time {
	return c.instant
}

// Advance moves the fixed instant forward
func (c *Fixed) Advance(d time.Duration) {
	c.instant = c.instant.Add(d)
}

// NewFixed returns a clock pinned to the given instant
func NewFixed(instant time.Time) *Fixed {
	return &Fixed{instant: instant}
}
