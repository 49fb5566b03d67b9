package timeutil

import (
	"sync"
	"time"
)

// MockClock is a manually advanced Clock for deterministic tests. Timers
// created from it fire only when Advance or Set moves the clock past their
// deadline.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*mockTimer
}

// NewMockClock returns a MockClock frozen at the given instant.
func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *MockClock) NewTimer(d time.Duration) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{
		clock:    c,
		deadline: c.now.Add(d),
		ch:       make(chan time.Time, 1),
	}
	if d <= 0 {
		t.fired = true
		t.ch <- c.now
	} else {
		c.timers = append(c.timers, t)
	}
	return t
}

// Advance moves the clock forward by d, firing every pending timer whose
// deadline has been reached.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.fireDueLocked()
	c.mu.Unlock()
}

// Set jumps the clock to t, firing pending timers along the way.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	if t.After(c.now) {
		c.now = t
	}
	c.fireDueLocked()
	c.mu.Unlock()
}

func (c *MockClock) fireDueLocked() {
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if t.stopped {
			continue
		}
		if !t.deadline.After(c.now) {
			t.fired = true
			select {
			case t.ch <- c.now:
			default:
			}
			continue
		}
		remaining = append(remaining, t)
	}
	c.timers = remaining
}

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	ch       chan time.Time
	fired    bool
	stopped  bool
}

func (t *mockTimer) C() <-chan time.Time { return t.ch }

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

var (
	_ Clock = (*MockClock)(nil)
	_ Clock = realClock{}
)
