package mocks

import (
	"sync"

	"github.com/C0deSamurai/verdant-ecstasy/internal/dependencies/random"
)

// MockRandom replays queued values. An exhausted Intn queue yields 0 and an
// exhausted String queue yields "".
type MockRandom struct {
	mu      sync.Mutex
	ints    []int
	strings []string
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom with empty queues
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn pops the next queued int
func (r *MockRandom) Intn(int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

// String pops the next queued string
func (r *MockRandom) String(int, string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.strings) == 0 {
		return ""
	}
	v := r.strings[0]
	r.strings = r.strings[1:]
	return v
}

// QueueIntn appends values for Intn to return
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, values...)
}

// QueueString appends values for String to return, typically game IDs
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}

// Reset drops everything still queued
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = nil
	r.strings = nil
}
