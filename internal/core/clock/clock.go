// Package clock tracks game time and the day/night cycle.
//
// Every timer in the simulation is expressed in elapsed milliseconds so the
// game behaves the same at any frame rate.
package clock

import (
	"math"
	"time"
)

// Transition reports whether the last Advance crossed a day/night edge.
type Transition int

const (
	NoTransition Transition = iota
	ToNight
	ToDay
)

func (t Transition) String() string {
	switch t {
	case ToNight:
		return "to_night"
	case ToDay:
		return "to_day"
	default:
		return "none"
	}
}

// Night falls after 60% of the day and lasts until 10% of the next one.
const (
	duskFraction = 0.6
	dawnFraction = 0.1
)

// IsNightAt reports whether a normalized time of day is night.
func IsNightAt(timeOfDay float64) bool {
	return timeOfDay > duskFraction || timeOfDay < dawnFraction
}

// Tick is the result of advancing the clock by one frame.
type Tick struct {
	TimeOfDay  float64
	IsNight    bool
	Transition Transition
}

// Clock accumulates in-game time.
type Clock struct {
	elapsed   time.Duration
	dayLength time.Duration
	night     bool
}

// New creates a clock starting at the given game time. The previous night
// flag starts false, so a clock created inside the night reports ToNight on
// its first Advance.
func New(dayLength, start time.Duration) *Clock {
	if dayLength <= 0 {
		dayLength = time.Minute
	}
	return &Clock{elapsed: start, dayLength: dayLength}
}

// Advance adds dt to the game time and reports the resulting state.
func (c *Clock) Advance(dt time.Duration) Tick {
	if dt > 0 {
		c.elapsed += dt
	}
	was := c.night
	tod := c.TimeOfDay()
	c.night = IsNightAt(tod)

	tick := Tick{TimeOfDay: tod, IsNight: c.night}
	switch {
	case c.night && !was:
		tick.Transition = ToNight
	case !c.night && was:
		tick.Transition = ToDay
	}
	return tick
}

// TimeOfDay returns the normalized position within the current day, in [0,1).
func (c *Clock) TimeOfDay() float64 {
	ms := float64(c.elapsed) / float64(time.Millisecond)
	day := float64(c.dayLength) / float64(time.Millisecond)
	f := math.Mod(ms, day) / day
	if f < 0 {
		f += 1
	}
	return f
}

// IsNight returns the night flag as of the last Advance (or Restore).
func (c *Clock) IsNight() bool {
	return c.night
}

// Elapsed returns the accumulated game time.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// DayLength returns the configured length of one day.
func (c *Clock) DayLength() time.Duration {
	return c.dayLength
}

// Restore overwrites the clock with persisted values. The night flag is taken
// as given so loading does not fire a spurious transition.
func (c *Clock) Restore(elapsed time.Duration, night bool) {
	c.elapsed = elapsed
	c.night = night
}

// Frame carries the single timestamp and delta every update in a frame reads.
type Frame struct {
	Now   time.Duration // session time, monotonic
	Delta time.Duration
}

// DeltaMs returns the frame delta in milliseconds.
func (f Frame) DeltaMs() float64 {
	return float64(f.Delta) / float64(time.Millisecond)
}

// Seconds returns the frame delta in seconds.
func (f Frame) Seconds() float64 {
	return f.Delta.Seconds()
}

// Steps returns the delta expressed in 60 Hz reference frames. Per-frame
// factors like damping are raised to this power.
func (f Frame) Steps() float64 {
	return f.DeltaMs() / (1000.0 / 60.0)
}

// Session produces Frames from a monotonic source. Deltas above MaxDelta are
// clamped so a stalled window does not teleport entities.
type Session struct {
	now      time.Duration
	MaxDelta time.Duration
}

// NewSession starts a session at time zero.
func NewSession() *Session {
	return &Session{MaxDelta: 100 * time.Millisecond}
}

// Step advances session time by dt and returns the frame.
func (s *Session) Step(dt time.Duration) Frame {
	if dt < 0 {
		dt = 0
	}
	if s.MaxDelta > 0 && dt > s.MaxDelta {
		dt = s.MaxDelta
	}
	s.now += dt
	return Frame{Now: s.now, Delta: dt}
}

// Now returns the current session time.
func (s *Session) Now() time.Duration {
	return s.now
}

// Restore sets the session time, used when loading a save.
func (s *Session) Restore(now time.Duration) {
	s.now = now
}
