package mocks

import (
	"sync"
	"time"

	"github.com/C0deSamurai/verdant-ecstasy/internal/dependencies/clock"
)

// MockClock is a Clock that only moves when told to
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock stopped at t
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the stopped time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set stops the clock at t
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
