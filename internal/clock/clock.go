// Package clock supplies the monotonic time source the simulation runs on.
// Times are offsets from the clock's origin, so matches never see wall-clock jumps.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current monotonic time.
type Clock interface {
	Now() time.Duration
}

// System reads the process monotonic clock.
type System struct {
	origin time.Time
}

// NewSystem creates a clock whose origin is the moment of the call.
func NewSystem() *System {
	return &System{origin: time.Now()}
}

// Now returns the time elapsed since the origin.
func (s *System) Now() time.Duration {
	return time.Since(s.origin)
}

// Mock is a controllable clock for tests.
type Mock struct {
	mu  sync.RWMutex
	now time.Duration
}

// NewMock creates a mock clock starting at start.
func NewMock(start time.Duration) *Mock {
	return &Mock{now: start}
}

// Now returns the mocked time.
func (m *Mock) Now() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t. Moving backwards is allowed to exercise clock irregularities.
func (m *Mock) Set(t time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}
