package core

import "time"

// Clock is the free-running microsecond counter that drives all step timing.
type Clock interface {
	// Now returns the current time in microseconds. The counter is
	// monotonic and allowed to wrap; callers compare times with unsigned
	// subtraction only.
	Now() uint32

	// Sleep blocks for the given number of microseconds.
	Sleep(us uint32)
}

// WallClock implements Clock on the Go runtime clock. Used by hardware
// targets and host-side soak runs.
type WallClock struct {
	start time.Time
}

// NewWallClock returns a WallClock starting at zero.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() uint32 {
	return uint32(time.Since(c.start).Microseconds())
}

func (c *WallClock) Sleep(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// SimClock is a manually advanced clock for tests. Sleep advances the clock
// so blocking sequences (the identify flash) stay observable without real
// delays.
type SimClock struct {
	now uint32
}

// NewSimClock returns a SimClock at time zero.
func NewSimClock() *SimClock {
	return &SimClock{}
}

func (c *SimClock) Now() uint32 {
	return c.now
}

func (c *SimClock) Sleep(us uint32) {
	c.now += us
}

// Advance moves the clock forward. Wrapping past the uint32 limit is
// intentional and exercised by tests.
func (c *SimClock) Advance(us uint32) {
	c.now += us
}
