// Package clock converts wall-clock time into fixed simulation steps.
package clock

import "time"

// DefaultMaxSteps bounds catch-up after a stall.
const DefaultMaxSteps = 5

// FixedStep accumulates elapsed time and releases it in whole periods.
type FixedStep struct {
	period   time.Duration
	maxSteps int
	acc      time.Duration
	ticks    uint64
	dropped  uint64
}

// NewFixedStep creates a stepper. A non-positive maxSteps uses DefaultMaxSteps.
func NewFixedStep(period time.Duration, maxSteps int) *FixedStep {
	if period <= 0 {
		panic("clock: period must be positive")
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &FixedStep{period: period, maxSteps: maxSteps}
}

// Advance adds dt and returns how many steps are due.
// At most maxSteps are returned; the backlog beyond that is discarded.
func (c *FixedStep) Advance(dt time.Duration) int {
	if dt > 0 {
		c.acc += dt
	}

	n := int(c.acc / c.period)
	c.acc -= time.Duration(n) * c.period
	if n > c.maxSteps {
		c.dropped += uint64(n - c.maxSteps)
		n = c.maxSteps
	}
	c.ticks += uint64(n)
	return n
}

// Period returns the step length.
func (c *FixedStep) Period() time.Duration { return c.period }

// Ticks returns the number of steps released so far.
func (c *FixedStep) Ticks() uint64 { return c.ticks }

// Dropped returns the number of steps discarded by the catch-up bound.
func (c *FixedStep) Dropped() uint64 { return c.dropped }

// Until returns the time left before the next step is due.
func (c *FixedStep) Until() time.Duration {
	return c.period - c.acc
}

// Reset clears pending time.
func (c *FixedStep) Reset() {
	c.acc = 0
}
