package gesture

import "time"

// Clock stamps events and schedules hold timers.
type Clock interface {
	Now() time.Time
	// AfterFunc calls fn once d has elapsed. fn may run on another goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a scheduled callback returned by Clock.AfterFunc.
type Timer interface {
	// Stop prevents the callback from running if it has not run yet and
	// reports whether it did so.
	Stop() bool
}

type systemClock struct{}

// SystemClock returns a Clock backed by the time package. Its timers fire on
// their own goroutines; a Session only ever observes them through Flush.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// FrameClock is a Clock driven by the game loop instead of wall time.
// Advance moves Now forward and runs the callbacks of timers whose deadline
// has been reached, in scheduling order, on the caller's goroutine.
//
// FrameClock is not safe for concurrent use.
type FrameClock struct {
	now    time.Time
	timers []*frameTimer
}

type frameTimer struct {
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

// Stop cancels the timer if it has not fired yet.
func (t *frameTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewFrameClock creates a frame clock whose Now starts at start.
func NewFrameClock(start time.Time) *FrameClock {
	return &FrameClock{now: start}
}

// Now returns the start time plus everything advanced so far.
func (c *FrameClock) Now() time.Time {
	return c.now
}

// AfterFunc schedules fn to run during the Advance call that moves the clock
// d or more past the current time.
func (c *FrameClock) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	t := &frameTimer{deadline: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by dt and fires due timers.
// Timers scheduled from inside a callback wait for the next Advance.
func (c *FrameClock) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	c.now = c.now.Add(dt)

	n := len(c.timers)
	for i := 0; i < n; i++ {
		t := c.timers[i]
		if t.stopped || t.fired || c.now.Before(t.deadline) {
			continue
		}
		t.fired = true
		t.fn()
	}

	// Compact, keeping timers appended by callbacks.
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

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *FrameClock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
