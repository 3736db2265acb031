package ecs

import "time"

// NominalFrame is the delta a tick sees right after a resume, standing in
// for the wall-clock time spent paused.
const NominalFrame = 33 * time.Millisecond

// clock tracks the tick baseline. now is injectable for tests.
type clock struct {
	now       func() time.Time
	lastTime  time.Time
	deltaTime time.Duration
	nominal   time.Duration
}

func newClock(now func() time.Time) clock {
	return clock{now: now, lastTime: now(), nominal: NominalFrame}
}

// advance moves the baseline to now and returns the elapsed delta.
func (c *clock) advance() time.Duration {
	t := c.now()
	c.deltaTime = t.Sub(c.lastTime)
	c.lastTime = t
	return c.deltaTime
}

// rebase pretends the previous tick happened one nominal frame ago.
func (c *clock) rebase() {
	c.lastTime = c.now().Add(-c.nominal)
}
