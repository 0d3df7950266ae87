package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNightBoundaries(t *testing.T) {
	assert.True(t, IsNightAt(0.0))
	assert.True(t, IsNightAt(0.09))
	assert.False(t, IsNightAt(0.1))
	assert.False(t, IsNightAt(0.6))
	assert.True(t, IsNightAt(0.61))
}

func TestAdvanceReportsEdgesOnce(t *testing.T) {
	c := New(60*time.Second, 6*time.Second)

	tick := c.Advance(0)
	assert.Equal(t, NoTransition, tick.Transition)
	assert.False(t, tick.IsNight)

	// 0.1 -> 0.6 of the day is daylight
	tick = c.Advance(30 * time.Second)
	assert.Equal(t, NoTransition, tick.Transition)

	tick = c.Advance(time.Second)
	require.True(t, tick.IsNight)
	assert.Equal(t, ToNight, tick.Transition)

	tick = c.Advance(time.Second)
	assert.Equal(t, NoTransition, tick.Transition, "edge must fire once")

	// advance to 0.1 of the next day
	tick = c.Advance(60*time.Second - 32*time.Second + 6*time.Second)
	assert.False(t, tick.IsNight)
	assert.Equal(t, ToDay, tick.Transition)
}

func TestClockStartedAtNightFiresToNight(t *testing.T) {
	c := New(60*time.Second, 50*time.Second)
	tick := c.Advance(16 * time.Millisecond)
	assert.Equal(t, ToNight, tick.Transition)
}

func TestRestoreDoesNotFireTransition(t *testing.T) {
	c := New(60*time.Second, 0)
	c.Restore(50*time.Second, true)
	tick := c.Advance(16 * time.Millisecond)
	assert.Equal(t, NoTransition, tick.Transition)
	assert.True(t, tick.IsNight)
}

func TestTimeOfDayWraps(t *testing.T) {
	c := New(60*time.Second, 0)
	c.Advance(90 * time.Second)
	assert.InDelta(t, 0.5, c.TimeOfDay(), 1e-9)
}

func TestSessionClampsDelta(t *testing.T) {
	s := NewSession()
	f := s.Step(time.Second)
	assert.Equal(t, 100*time.Millisecond, f.Delta)
	assert.Equal(t, 100*time.Millisecond, f.Now)

	f = s.Step(16 * time.Millisecond)
	assert.Equal(t, 116*time.Millisecond, f.Now)
	assert.InDelta(t, 0.96, f.Steps(), 1e-9)
}
