// Package clock provides the timing primitives the animation engine runs on:
// a virtual-time Scheduler driven by the frontend's frame loop, periodic
// Clocks, and TimerSets that own a fixed group of cancelable timers.
package clock

import "time"

// Clock issues ticks at a fixed rate while running. It keeps no state besides
// its rate and whether it is on.
type Clock struct {
	s     *Scheduler
	rate  time.Duration
	tick  func()
	timer *Timer
}

// NewClock creates a stopped clock that calls tick every rate.
func NewClock(s *Scheduler, rate time.Duration, tick func()) *Clock {
	return &Clock{s: s, rate: rate, tick: tick}
}

// Start begins ticking. Starting a running clock restarts its period.
func (c *Clock) Start() {
	c.Stop()
	c.timer = c.s.Every(c.rate, c.tick)
}

// Stop halts the tick stream.
func (c *Clock) Stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Running reports whether the clock is ticking.
func (c *Clock) Running() bool {
	return c.timer.Active()
}

// Rate returns the tick period.
func (c *Clock) Rate() time.Duration {
	return c.rate
}

// SetRate changes the tick period, restarting the clock if it was running.
func (c *Clock) SetRate(rate time.Duration) {
	c.rate = rate
	if c.Running() {
		c.Start()
	}
}
