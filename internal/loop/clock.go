package loop

import "time"

// Clock reports monotonic seconds since the loop started.
type Clock interface {
	Elapsed() float64
}

// SystemClock measures wall time from its creation.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Elapsed returns seconds since the clock started (monotonic reading).
func (c *SystemClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when advanced; used for fixed-rate offline rendering.
type ManualClock struct {
	T float64
}

// Elapsed returns the accumulated time.
func (c *ManualClock) Elapsed() float64 { return c.T }

// Advance moves the clock forward by dt seconds.
func (c *ManualClock) Advance(dt float64) { c.T += dt }
