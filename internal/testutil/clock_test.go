package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var clockStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestFakeClock_FirstReadingIsStart(t *testing.T) {
	clock := NewFakeClock(clockStart, time.Millisecond)
	assert.Equal(t, clockStart, clock.Now())
}

func TestFakeClock_AdvancesByStep(t *testing.T) {
	clock := NewFakeClock(clockStart, time.Millisecond)

	first := clock.Now()
	second := clock.Now()
	third := clock.Now()

	assert.Equal(t, time.Millisecond, second.Sub(first))
	assert.Equal(t, time.Millisecond, third.Sub(second))
}

func TestFakeClock_Advance(t *testing.T) {
	clock := NewFakeClock(clockStart, time.Millisecond)

	clock.Now()
	clock.Advance(5 * time.Second)

	assert.Equal(t, clockStart.Add(time.Millisecond+5*time.Second), clock.Now())
}

func TestFakeClock_Reset(t *testing.T) {
	clock := NewFakeClock(clockStart, time.Millisecond)

	// Advance clock
	clock.Now()
	clock.Now()
	assert.NotEqual(t, clockStart, clock.Now())

	// Reset
	clock.Reset()
	assert.Equal(t, clockStart, clock.Now())
}

func TestFakeClock_ThreadSafe(t *testing.T) {
	clock := NewFakeClock(clockStart, time.Nanosecond)

	const goroutines = 50
	const readings = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < readings; j++ {
				clock.Now()
			}
		}()
	}
	wg.Wait()

	// Every reading advanced the clock exactly once.
	assert.Equal(t, clockStart.Add(goroutines*readings*time.Nanosecond), clock.Now())
}
