package entity

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/core/palette"
	"chosenoffset.com/cattown/internal/simulation"
)

// Particle is a cosmetic spark.
type Particle struct {
	Pos   geom.Point
	Vel   geom.Point // units per second
	Life  float64    // 1 when born, removed at 0
	Size  float64
	Color color.RGBA
}

// NewParticle launches a particle at angle. speed <= 0 picks a random speed
// from cfg; a zero color picks a random warm hue.
func NewParticle(rng *rand.Rand, pos geom.Point, angle, speed float64, col color.RGBA, cfg simulation.ParticleConfig) *Particle {
	if speed <= 0 {
		speed = cfg.SpeedMin + rng.Float64()*(cfg.SpeedMax-cfg.SpeedMin)
	}
	if col == (color.RGBA{}) {
		col = palette.Hue(30 + rng.Float64()*60)
	}
	return &Particle{
		Pos:   pos,
		Vel:   geom.Polar(angle, speed),
		Life:  1,
		Size:  3 + rng.Float64()*3,
		Color: col,
	}
}

// Update moves the particle and returns false once it has faded out.
func (p *Particle) Update(f clock.Frame, cfg simulation.ParticleConfig) bool {
	dt := f.Seconds()
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Vel.Y += cfg.Gravity * dt
	p.Life -= cfg.Decay * dt
	return p.Life > 0
}

// Burst is a group of particles released together, Delay after the event
// that caused it.
type Burst struct {
	Delay     time.Duration
	Particles []*Particle
}

// OmniBurst sends n particles in every direction.
func OmniBurst(rng *rand.Rand, at geom.Point, n int, cfg simulation.ParticleConfig) []*Particle {
	out := make([]*Particle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewParticle(rng, at, rng.Float64()*2*math.Pi, 0, color.RGBA{}, cfg))
	}
	return out
}

// UpdateParticles advances every particle and drops the dead ones in place.
func UpdateParticles(ps []*Particle, f clock.Frame, cfg simulation.ParticleConfig) []*Particle {
	kept := ps[:0]
	for _, p := range ps {
		if p.Update(f, cfg) {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(ps); i++ {
		ps[i] = nil
	}
	return kept
}
