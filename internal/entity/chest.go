package entity

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/core/palette"
	"chosenoffset.com/cattown/internal/loot"
	"chosenoffset.com/cattown/internal/progress"
	"chosenoffset.com/cattown/internal/simulation"
)

// Chest holds companions. Everything derived from its tier is fixed when the
// chest is built and only Opened and HitCount change afterwards.
type Chest struct {
	Pos            geom.Point
	Tier           loot.Tier
	Size           float64
	CompanionCount int
	Opened         bool
	HitCount       int

	baseW, baseH float64
}

// NewChest rolls a chest of the given tier at pos.
func NewChest(rng *rand.Rand, pos geom.Point, tier loot.Tier, cfg simulation.ChestConfig) *Chest {
	return &Chest{
		Pos:            pos,
		Tier:           tier,
		Size:           tier.RollSize(rng),
		CompanionCount: tier.RollCompanions(rng),
		baseW:          cfg.Width,
		baseH:          cfg.Height,
	}
}

// RestoreChest rebuilds a chest from persisted fields without re-deriving
// anything from its position.
func RestoreChest(pos geom.Point, tier loot.Tier, size float64, count int, opened bool, cfg simulation.ChestConfig) *Chest {
	return &Chest{
		Pos:            pos,
		Tier:           tier,
		Size:           size,
		CompanionCount: count,
		Opened:         opened,
		baseW:          cfg.Width,
		baseH:          cfg.Height,
	}
}

// Cost returns the firefly price.
func (c *Chest) Cost() int {
	return c.Tier.Cost
}

// Rect returns the chest bounds.
func (c *Chest) Rect() geom.Rect {
	return geom.RectAt(c.Pos, c.baseW*c.Size, c.baseH*c.Size)
}

// Center returns the centre of the chest.
func (c *Chest) Center() geom.Point {
	return c.Rect().Center()
}

// CanOpen reports whether the jar can pay for the chest.
func (c *Chest) CanOpen(jar *progress.Jar) bool {
	return jar.CanSpend(c.Cost())
}

// OpenRules is the configuration an opening draws on.
type OpenRules struct {
	Companion simulation.CompanionConfig
	Chests    simulation.ChestConfig
	Particles simulation.ParticleConfig
}

// Opening is everything a successful Open produces. The caller appends the
// companions, grants the rewards and schedules the bursts.
type Opening struct {
	Companions []*Companion
	XP         int
	Cash       int
	Bursts     []Burst
}

// Open pays for the chest and releases its companions. It fails without any
// change when the chest is already open or the jar is short.
func (c *Chest) Open(jar *progress.Jar, rules OpenRules, now time.Duration, rng *rand.Rand) (*Opening, bool) {
	if c.Opened || !c.CanOpen(jar) {
		return nil, false
	}
	if !jar.Spend(c.Cost()) {
		return nil, false
	}
	c.Opened = true

	center := c.Center()
	op := &Opening{
		XP:   rules.Chests.XPPerCompanion * c.CompanionCount,
		Cash: loot.CashReward(rules.Chests, c.CompanionCount, rng),
	}
	kinds := rules.Companion.Types
	for i := 0; i < c.CompanionCount; i++ {
		kind := kinds[rng.Intn(len(kinds))]
		offset := geom.Point{
			X: (rng.Float64() - 0.5) * rules.Chests.SpawnOffset,
			Y: (rng.Float64() - 0.5) * rules.Chests.SpawnOffset,
		}
		vel := geom.Polar(upCone(rng, math.Pi/3), c.Tier.RollArcSpeed(rng))
		op.Companions = append(op.Companions, NewSpawnedCompanion(
			center.Add(offset), kind, c.Tier.CompanionSize,
			rules.Companion.Size, rules.Companion.Speed,
			vel, now, c.Tier.ArcDuration.Duration(), rng,
		))
	}
	op.Bursts = c.bursts(rng, center, rules.Particles)
	return op, true
}

// upCone returns an angle within spread radians around straight up.
func upCone(rng *rand.Rand, spread float64) float64 {
	return -math.Pi/2 + (rng.Float64()-0.5)*spread
}

// fountain colors for the top tier
var fountainPalette = []color.RGBA{
	palette.HSL(270, 1, 0.6),
	palette.HSL(290, 1, 0.7),
	palette.HSL(310, 1, 0.65),
	palette.HSL(330, 1, 0.75),
	palette.HSL(0, 0, 0.95),
	palette.HSL(50, 1, 0.6),
}

// bursts builds the particle effect for this chest's tier. Speeds in the
// table below are in units per 60 Hz frame.
func (c *Chest) bursts(rng *rand.Rand, center geom.Point, cfg simulation.ParticleConfig) []Burst {
	const perFrame = 60
	w := c.Rect().W
	pick := func() color.RGBA { return fountainPalette[rng.Intn(len(fountainPalette))] }
	speed := func(lo, hi float64) float64 { return (lo + rng.Float64()*(hi-lo)) * perFrame }
	spread := func(width float64) geom.Point {
		return center.Add(geom.Point{X: (rng.Float64() - 0.5) * width})
	}

	switch {
	case c.Tier.Index >= 4:
		wave := func(n int, lo, hi float64) []*Particle {
			ps := make([]*Particle, 0, n)
			for i := 0; i < n; i++ {
				ps = append(ps, NewParticle(rng, center, upCone(rng, math.Pi/3), speed(lo, hi), pick(), cfg))
			}
			return ps
		}
		first := wave(60, 6, 12)
		for i := 0; i < 30; i++ {
			first = append(first, NewParticle(rng, spread(w*0.5), upCone(rng, 0.2), speed(8, 15), pick(), cfg))
		}
		sparkle := make([]*Particle, 0, 20)
		for i := 0; i < 20; i++ {
			sparkle = append(sparkle, NewParticle(rng, center, rng.Float64()*2*math.Pi, speed(3, 6), pick(), cfg))
		}
		return []Burst{
			{Delay: 0, Particles: first},
			{Delay: 150 * time.Millisecond, Particles: wave(40, 5, 10)},
			{Delay: 300 * time.Millisecond, Particles: wave(30, 4, 8)},
			{Delay: 500 * time.Millisecond, Particles: sparkle},
		}

	case c.Tier.Index == 3:
		ps := make([]*Particle, 0, 45)
		for i := 0; i < 30; i++ {
			ps = append(ps, NewParticle(rng, center, rng.Float64()*math.Pi-math.Pi/2, 0, color.RGBA{}, cfg))
		}
		for i := 0; i < 15; i++ {
			ps = append(ps, NewParticle(rng, spread(w), upCone(rng, 0.5), 0, color.RGBA{}, cfg))
		}
		return []Burst{{Particles: ps}}

	case c.Tier.Index == 0:
		return []Burst{{Particles: OmniBurst(rng, center, 25, cfg)}}

	default:
		return []Burst{{Particles: OmniBurst(rng, center, int(20*c.Size), cfg)}}
	}
}

// Strike records a magic hit and reports whether it should open the chest.
// Only free chests can be knocked open.
func (c *Chest) Strike(hitsToOpen int) bool {
	if c.Opened {
		return false
	}
	c.HitCount++
	return c.Cost() == 0 && c.HitCount >= hitsToOpen
}

// InRange reports whether the player's centre is within the interaction
// range of the chest, which grows with chest size.
func (c *Chest) InRange(p *Player, rangePerSize float64) bool {
	return geom.Dist(c.Center(), p.Center()) < rangePerSize*c.Size
}
