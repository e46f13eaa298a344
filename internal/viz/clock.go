package viz

import "time"

// Clock turns wall-clock time into a whole number of fixed simulation steps.
// Time that would need more than MaxSteps in one call is discarded so a slow
// frame cannot snowball into ever longer catch-up.
type Clock struct {
	Dt       float64
	MaxSteps int

	acc     float64
	dropped int
	last    time.Time
}

func NewClock(dt float64, maxSteps int) *Clock {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Clock{Dt: dt, MaxSteps: maxSteps}
}

// Advance adds elapsed seconds and returns how many steps to run now.
func (c *Clock) Advance(elapsed float64) int {
	if elapsed > 0 {
		c.acc += elapsed
	}
	steps := int(c.acc/c.Dt + 1e-9)
	if steps > c.MaxSteps {
		c.dropped += steps - c.MaxSteps
		steps = c.MaxSteps
		c.acc = 0
		return steps
	}
	c.acc -= float64(steps) * c.Dt
	if c.acc < 0 {
		c.acc = 0
	}
	return steps
}

// Tick advances by the wall time since the previous Tick, scaled by speed.
// The first call only starts the clock.
func (c *Clock) Tick(now time.Time, speed float64) int {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	elapsed := now.Sub(c.last).Seconds() * speed
	c.last = now
	return c.Advance(elapsed)
}

// Alpha is the fraction of a step left in the accumulator, for interpolation.
func (c *Clock) Alpha() float64 { return c.acc / c.Dt }

// Dropped counts the steps discarded to honor MaxSteps.
func (c *Clock) Dropped() int { return c.dropped }

// Reset forgets pending time so the next Tick starts fresh. Dropped keeps
// counting.
func (c *Clock) Reset() {
	c.acc = 0
	c.last = time.Time{}
}
