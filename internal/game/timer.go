package game

import "time"

// Countdown is a per-tick timer. It is advanced explicitly by the simulation,
// never by a scheduled callback.
type Countdown struct {
	remaining time.Duration
}

// NewCountdown returns a countdown that expires after d.
func NewCountdown(d time.Duration) Countdown {
	return Countdown{remaining: d}
}

// Tick advances the countdown by dt. It never goes below zero.
func (c *Countdown) Tick(dt time.Duration) {
	c.remaining -= dt
	if c.remaining < 0 {
		c.remaining = 0
	}
}

// Expired reports whether the countdown has run out.
func (c Countdown) Expired() bool {
	return c.remaining <= 0
}

// Reset restarts the countdown with d remaining.
func (c *Countdown) Reset(d time.Duration) {
	c.remaining = d
}

// Stop expires the countdown immediately.
func (c *Countdown) Stop() {
	c.remaining = 0
}

// Remaining returns the time left before expiry.
func (c Countdown) Remaining() time.Duration {
	return c.remaining
}
