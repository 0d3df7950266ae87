package entity

import (
	"time"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/simulation"
)

// Outcome is what happened to a projectile in one frame.
type Outcome int

const (
	Flying Outcome = iota
	HitFirefly
	HitChest
	Expired
)

// Projectile is a homing magic bolt. At most one of Firefly and Chest is set.
type Projectile struct {
	Pos    geom.Point
	Angle  float64
	Speed  float64
	Radius float64

	Firefly *Firefly
	Chest   *Chest

	born     time.Duration
	lifetime time.Duration
}

// NewProjectile fires from pos towards aim.
func NewProjectile(pos, aim geom.Point, now time.Duration, cfg simulation.ProjectileConfig) *Projectile {
	return &Projectile{
		Pos:      pos,
		Angle:    geom.Angle(pos, aim),
		Speed:    cfg.Speed,
		Radius:   cfg.Radius,
		born:     now,
		lifetime: cfg.Lifetime.Duration(),
	}
}

// target returns the point to home on, if the target is still valid for the
// current half of the day.
func (p *Projectile) target(night bool) (geom.Point, bool) {
	if night && p.Firefly != nil && !p.Firefly.Gone {
		return p.Firefly.Pos, true
	}
	if !night && p.Chest != nil {
		return p.Chest.Center(), true
	}
	return geom.Point{}, false
}

// Update homes, tests for a hit and moves. Anything but Flying means the
// projectile must be removed this frame; the caller applies the hit.
func (p *Projectile) Update(f clock.Frame, night bool, hitRadius float64) Outcome {
	if at, ok := p.target(night); ok {
		p.Angle = geom.Angle(p.Pos, at)
		if geom.Dist(p.Pos, at) < hitRadius {
			if night {
				return HitFirefly
			}
			return HitChest
		}
	}

	p.Pos = p.Pos.Add(geom.Polar(p.Angle, p.Speed*f.Seconds()))

	if f.Now-p.born > p.lifetime {
		return Expired
	}
	return Flying
}
