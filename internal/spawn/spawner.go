// Package spawn owns the firefly population. Fireflies only come into being
// when night falls and all of them vanish at dawn; in between, single
// fireflies leave when the player catches them.
package spawn

import (
	"math/rand"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/simulation"
)

// Population is the live set of fireflies.
type Population struct {
	fireflies []*entity.Firefly
	cfg       simulation.FireflyConfig
	w, h      float64
	rng       *rand.Rand

	// OnClear runs after the population is cleared, so render caches keyed
	// to fireflies can be dropped.
	OnClear func()
}

// New creates an empty population over a w×h world.
func New(cfg simulation.FireflyConfig, w, h float64, rng *rand.Rand) *Population {
	return &Population{cfg: cfg, w: w, h: h, rng: rng}
}

// Fireflies returns the live fireflies. The slice must not be modified.
func (p *Population) Fireflies() []*entity.Firefly {
	return p.fireflies
}

// Len returns the population size.
func (p *Population) Len() int {
	return len(p.fireflies)
}

// OnTransition reacts to a day/night edge. Nothing else creates or clears
// the population.
func (p *Population) OnTransition(t clock.Transition) {
	switch t {
	case clock.ToNight:
		p.spawn()
	case clock.ToDay:
		p.clear()
	}
}

func (p *Population) spawn() {
	p.markGone()
	p.fireflies = make([]*entity.Firefly, 0, p.cfg.Count)
	for i := 0; i < p.cfg.Count; i++ {
		p.fireflies = append(p.fireflies, entity.NewFirefly(p.rng, p.w, p.h, p.cfg))
	}
}

func (p *Population) clear() {
	p.markGone()
	p.fireflies = nil
	if p.OnClear != nil {
		p.OnClear()
	}
}

func (p *Population) markGone() {
	for _, ff := range p.fireflies {
		ff.Gone = true
	}
}

// Update drifts every firefly and removes the ones the player touches,
// returning them so the caller can pay out.
func (p *Population) Update(f clock.Frame, player *entity.Player) []*entity.Firefly {
	var caught []*entity.Firefly
	kept := p.fireflies[:0]
	for _, ff := range p.fireflies {
		ff.Update(f, p.w, p.h)
		if player != nil && ff.Touches(player, p.cfg.PickupRadius) {
			ff.Gone = true
			caught = append(caught, ff)
			continue
		}
		kept = append(kept, ff)
	}
	for i := len(kept); i < len(p.fireflies); i++ {
		p.fireflies[i] = nil
	}
	p.fireflies = kept
	return caught
}

// Restore replaces the population with persisted fireflies.
func (p *Population) Restore(ffs []*entity.Firefly) {
	p.markGone()
	p.fireflies = append([]*entity.Firefly(nil), ffs...)
}
