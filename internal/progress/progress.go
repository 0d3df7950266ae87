// Package progress tracks what the player has earned: experience and levels,
// the firefly jar used as chest currency, and cat cash.
package progress

import "math"

// Level is the player's experience state.
type Level struct {
	Level  int `json:"level"`
	XP     int `json:"xp"`
	ToNext int `json:"xpToNextLevel"`

	growth float64
}

// NewLevel starts at level 1 with the given first threshold.
func NewLevel(firstThreshold int, growth float64) *Level {
	return &Level{Level: 1, ToNext: firstThreshold, growth: growth}
}

// Gain adds experience and returns how many levels were gained. A single
// award may cross several thresholds; each consumes its threshold and grows
// the next one.
func (l *Level) Gain(amount int) int {
	if amount <= 0 {
		return 0
	}
	l.XP += amount
	gained := 0
	for l.ToNext > 0 && l.XP >= l.ToNext {
		l.XP -= l.ToNext
		l.Level++
		l.ToNext = int(math.Floor(float64(l.ToNext) * l.growth))
		gained++
	}
	return gained
}

// Fraction returns progress towards the next level in [0,1].
func (l *Level) Fraction() float64 {
	if l.ToNext <= 0 {
		return 0
	}
	f := float64(l.XP) / float64(l.ToNext)
	if f > 1 {
		return 1
	}
	return f
}

// Restore overwrites the level state from persisted values.
func (l *Level) Restore(level, xp, toNext int) {
	l.Level = level
	l.XP = xp
	l.ToNext = toNext
}

// Jar is a counter clamped to [0, Cap].
type Jar struct {
	count int
	Cap   int

	// OnChange is called after the count changes (for HUD pulses)
	OnChange func(count int)
}

// NewJar creates an empty jar.
func NewJar(capacity int) *Jar {
	return &Jar{Cap: capacity}
}

// Count returns the current balance.
func (j *Jar) Count() int {
	return j.count
}

// Add puts n units in the jar and returns how many fit.
func (j *Jar) Add(n int) int {
	if n <= 0 {
		return 0
	}
	if j.Cap > 0 && j.count+n > j.Cap {
		n = j.Cap - j.count
	}
	if n > 0 {
		j.count += n
		j.notifyChange()
	}
	return n
}

// CanSpend reports whether the jar holds at least n units.
func (j *Jar) CanSpend(n int) bool {
	return n <= 0 || j.count >= n
}

// Spend removes n units. It fails without change if the balance is short.
func (j *Jar) Spend(n int) bool {
	if n <= 0 {
		return true
	}
	if j.count < n {
		return false
	}
	j.count -= n
	j.notifyChange()
	return true
}

// Set overwrites the balance, clamped into range.
func (j *Jar) Set(n int) {
	if n < 0 {
		n = 0
	}
	if j.Cap > 0 && n > j.Cap {
		n = j.Cap
	}
	j.count = n
	j.notifyChange()
}

func (j *Jar) notifyChange() {
	if j.OnChange != nil {
		j.OnChange(j.count)
	}
}
