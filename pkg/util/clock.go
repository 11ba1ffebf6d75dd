package util

// Clock is the time source consumed by the exchange. Time is an integer tick
// count; only the simulation driver advances it.
type Clock interface {
	// Now returns the current timestamp.
	Now() int64
	// TimeDelta returns ts moved by delta time units. Pure arithmetic.
	TimeDelta(ts int64, delta int64) int64
}

// SimClock is a steppable integer clock for trading environments.
type SimClock struct {
	time int64
	unit int64
}

// NewSimClock creates a clock starting at start with the given unit length.
// A non-positive unit is treated as 1.
func NewSimClock(start, unit int64) *SimClock {
	if unit <= 0 {
		unit = 1
	}
	return &SimClock{time: start, unit: unit}
}

func (c *SimClock) Now() int64 { return c.time }

func (c *SimClock) TimeDelta(ts int64, delta int64) int64 {
	return ts + delta*c.unit
}

// Step advances the clock by n time units.
func (c *SimClock) Step(n int64) {
	c.time += n * c.unit
}
