package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimClockStep(t *testing.T) {
	c := NewSimClock(0, 1)
	require.Equal(t, int64(0), c.Now())

	c.Step(1)
	require.Equal(t, int64(1), c.Now())

	c.Step(5)
	require.Equal(t, int64(6), c.Now())
}

func TestSimClockUnit(t *testing.T) {
	c := NewSimClock(100, 60)
	c.Step(2)
	require.Equal(t, int64(220), c.Now())
	require.Equal(t, int64(280), c.TimeDelta(c.Now(), 1))
	require.Equal(t, int64(160), c.TimeDelta(c.Now(), -1))
}

func TestSimClockNonPositiveUnit(t *testing.T) {
	c := NewSimClock(0, 0)
	c.Step(3)
	require.Equal(t, int64(3), c.Now())
}
