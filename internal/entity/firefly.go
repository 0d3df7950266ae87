package entity

import (
	"math"
	"math/rand"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/simulation"
)

// Firefly is a night-only collectible. Pos is its centre.
type Firefly struct {
	Pos        geom.Point
	Hue        float64
	Rainbow    bool
	Size       float64
	XP         int
	Float      float64
	FloatSpeed float64    // radians per second
	Drift      geom.Point // units per second

	// Gone is set when the firefly leaves the population so in-flight
	// projectiles stop homing on it.
	Gone bool
}

// NewFirefly places a firefly at a random point in a w×h world.
func NewFirefly(rng *rand.Rand, w, h float64, cfg simulation.FireflyConfig) *Firefly {
	return &Firefly{
		Pos:        geom.Point{X: rng.Float64() * w, Y: rng.Float64() * h},
		Size:       cfg.Size,
		XP:         cfg.XP,
		Float:      rng.Float64() * 2 * math.Pi,
		FloatSpeed: (0.02 + rng.Float64()*0.03) * 60,
		Drift: geom.Point{
			X: (rng.Float64() - 0.5) * 2 * cfg.Drift,
			Y: (rng.Float64() - 0.5) * 2 * cfg.Drift,
		},
	}
}

// Update drifts the firefly, wrapping around the world edges.
func (ff *Firefly) Update(f clock.Frame, w, h float64) {
	dt := f.Seconds()
	ff.Float += ff.FloatSpeed * dt
	ff.Pos = ff.Pos.Add(ff.Drift.Scale(dt))
	ff.Pos.X = geom.Wrap(ff.Pos.X, w)
	ff.Pos.Y = geom.Wrap(ff.Pos.Y, h)
	if ff.Rainbow {
		ff.Hue = math.Mod(ff.Hue+120*dt, 360)
	}
}

// Hit applies one magic strike: the hue shifts until a full turn makes the
// firefly rainbow, and it grows and becomes worth more.
func (ff *Firefly) Hit(maxSize float64) {
	hue := ff.Hue + 60
	if hue >= 360 {
		ff.Rainbow = true
		ff.Hue = 0
	} else {
		ff.Hue = hue
	}
	ff.Size = math.Min(ff.Size+4, maxSize)
	ff.XP += 5
}

// DisplayHue is the rendered hue. Fireflies start yellow.
func (ff *Firefly) DisplayHue() float64 {
	return math.Mod(60+ff.Hue, 360)
}

// Touches reports whether the player's centre is within radius.
func (ff *Firefly) Touches(p *Player, radius float64) bool {
	return geom.Dist(ff.Pos, p.Center()) < radius
}
