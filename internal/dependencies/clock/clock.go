package clock

import "time"

// Clock stamps game creation, moves and undos
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC
type System struct{}

var _ Clock = (*System)(nil)

// New creates a wall clock
func New() *System {
	return &System{}
}

// Now returns the current UTC time
func (c *System) Now() time.Time {
	return time.Now().UTC()
}
