package gripedit

import "time"

// Timer is a cancellable deferred callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the
	// timer; false means it already fired or was already stopped.
	Stop() bool
}

// Scheduler schedules deferred callbacks. Callbacks must run on the same
// goroutine that drives input handling.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// FrameClock is a Scheduler driven by the caller's frame loop. Time only
// advances through Advance, and due callbacks fire synchronously inside it,
// so the interaction stays single-threaded.
type FrameClock struct {
	now    time.Duration
	timers []*frameTimer
}

type frameTimer struct {
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *frameTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewFrameClock creates a clock at time zero.
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (c *FrameClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &frameTimer{due: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the total time advanced so far.
func (c *FrameClock) Now() time.Duration {
	return c.now
}

// Pending returns the number of timers that have neither fired nor stopped.
func (c *FrameClock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and fires every due timer in due
// order (ties in scheduling order). A callback may schedule or stop other
// timers; newly due ones fire in the same call.
func (c *FrameClock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}
	for {
		next := -1
		for i, t := range c.timers {
			if t.stopped || t.fired || t.due > c.now {
				continue
			}
			if next < 0 || t.due < c.timers[next].due {
				next = i
			}
		}
		if next < 0 {
			break
		}
		t := c.timers[next]
		t.fired = true
		t.fn()
	}

	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = live
}
