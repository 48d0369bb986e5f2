package game

import (
	"sync"
	"time"
)

// TimeSource supplies monotonic wall time.
type TimeSource interface {
	Now() time.Time
}

// SystemTime is the real monotonic clock.
type SystemTime struct{}

// Now returns time.Now, which carries a monotonic reading.
func (SystemTime) Now() time.Time {
	return time.Now()
}

// ManualTime is a controllable time source for tests and replays.
type ManualTime struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualTime creates a manual time source starting at start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{now: start}
}

// Now returns the current manual time.
func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the manual time forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Clock is pausable game time. While paused, Now is frozen at the pause
// point; after a resume it continues from there, so durations measured in
// game time exclude every pause.
//
// Clock is not safe for concurrent use; the Session guards it.
type Clock struct {
	src      TimeSource
	paused   bool
	pausedAt time.Time     // Real time the current pause started
	offset   time.Duration // Total real time spent paused
}

// NewClock creates a running clock over src.
func NewClock(src TimeSource) *Clock {
	return &Clock{src: src}
}

// Now returns the current game time.
func (c *Clock) Now() time.Time {
	if c.paused {
		return c.pausedAt.Add(-c.offset)
	}
	return c.src.Now().Add(-c.offset)
}

// Pause freezes game time. Pausing a paused clock does nothing.
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.src.Now()
}

// Resume continues game time from the pause point.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.offset += c.src.Now().Sub(c.pausedAt)
	c.paused = false
	c.pausedAt = time.Time{}
}

// Paused reports whether game time is frozen.
func (c *Clock) Paused() bool {
	return c.paused
}
