package testutil

import (
	"sync"
	"time"
)

// FakeClock provides a deterministic time source for tests.
//
// Every reading advances the clock by a fixed step, so durations
// derived from consecutive readings are stable across runs and report
// transcripts can be compared byte for byte. Unlike the real clock it
// can be reset, letting the same scenario run multiple times with
// identical timings.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type FakeClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	now   time.Time
}

// NewFakeClock creates a clock whose first reading is start and which
// advances by step on every reading.
func NewFakeClock(start time.Time, step time.Duration) *FakeClock {
	return &FakeClock{start: start, step: step, now: start}
}

// Now returns the current instant and advances the clock by one step.
//
// Implements the runner's Clock interface.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Advance moves the clock forward by d without producing a reading.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Reset rewinds the clock to its start instant.
//
// Used for test reuse. The next reading after Reset returns the start
// instant again.
func (c *FakeClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
