package game

import (
	"log"
	"math/rand"
	"time"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/core/sched"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/follow"
	"chosenoffset.com/cattown/internal/loot"
	"chosenoffset.com/cattown/internal/progress"
	"chosenoffset.com/cattown/internal/simulation"
	"chosenoffset.com/cattown/internal/spawn"
	"chosenoffset.com/cattown/internal/world/furnishing"
	"chosenoffset.com/cattown/internal/world/village"
)

// GameState is everything the simulation mutates. The Game owns exactly one
// and passes it to every update.
type GameState struct {
	Config   *simulation.Config
	Village  *village.Village
	Geometry *entity.Geometry
	Table    *loot.Table

	Player      *entity.Player
	Chain       *follow.Chain
	Dropped     []*entity.DroppedCompanion
	Items       []*entity.Item
	Chests      []*entity.Chest
	Fireflies   *spawn.Population
	Projectiles []*entity.Projectile
	Particles   []*entity.Particle

	Level *progress.Level
	Jar   *progress.Jar
	Cash  int

	Clock   *clock.Clock
	Session *clock.Session
	Sky     clock.Tick
	Effects *sched.Queue

	Furniture *furnishing.Layout

	// Indoor mode. While Indoors the player's Pos is in room coordinates
	// and OutdoorPos keeps where they stood in the village.
	Indoors    bool
	HouseID    string
	OutdoorPos geom.Point
	LastExit   time.Duration
	HasExit    bool

	Camera Camera

	rng *rand.Rand
}

// NewGameState generates a fresh world.
func NewGameState(cfg *simulation.Config, rng *rand.Rand) *GameState {
	gen := village.NewGenerator(cfg, rng)
	v := gen.Generate()

	s := &GameState{
		Config:    cfg,
		Village:   v,
		Geometry:  v.Geometry(),
		Table:     loot.NewTable(cfg.Chests),
		Chests:    gen.ScatterChests(v),
		Items:     gen.ScatterItems(v),
		Chain:     follow.New(cfg.Companion),
		Level:     progress.NewLevel(cfg.Progress.FirstThreshold, cfg.Progress.Growth),
		Jar:       progress.NewJar(cfg.Fireflies.JarCap),
		Clock:     clock.New(cfg.Clock.DayLength.Duration(), cfg.Clock.StartTime.Duration()),
		Session:   clock.NewSession(),
		Effects:   sched.New(),
		Fireflies: spawn.New(cfg.Fireflies, v.Width, v.Height, rng),
		Furniture: furnishing.NewLayout(furnishing.DefaultCatalog(), rng),
		rng:       rng,
	}
	spawnAt := v.PlayerSpawn(cfg.Player.Width, cfg.Player.Height, cfg.Player.SpawnBelowFount)
	s.Player = entity.NewPlayer(spawnAt, cfg.Player)
	s.Sky = clock.Tick{TimeOfDay: s.Clock.TimeOfDay(), IsNight: s.Clock.IsNight()}

	log.Printf("World ready: %d chests, %d items", len(s.Chests), len(s.Items))
	return s
}

// Rand returns the simulation's random source.
func (s *GameState) Rand() *rand.Rand {
	return s.rng
}

// GainXP awards experience and returns the number of levels gained. Each
// level gained bursts particles around the player.
func (s *GameState) GainXP(amount int) int {
	gained := s.Level.Gain(amount)
	for i := 0; i < gained; i++ {
		s.Particles = append(s.Particles, entity.OmniBurst(s.rng, s.Player.Center(), s.Config.Progress.LevelBurst, s.Config.Particles)...)
	}
	return gained
}

// OpenChest runs the chest's open protocol and applies what it produced.
// It reports false, changing nothing, when the chest cannot be opened.
func (s *GameState) OpenChest(c *entity.Chest, now time.Duration) (*entity.Opening, bool) {
	op, ok := c.Open(s.Jar, entity.OpenRules{
		Companion: s.Config.Companion,
		Chests:    s.Config.Chests,
		Particles: s.Config.Particles,
	}, now, s.rng)
	if !ok {
		return nil, false
	}
	s.Chain.Append(op.Companions...)
	s.Cash += op.Cash
	s.GainXP(op.XP)
	for _, b := range op.Bursts {
		ps := b.Particles
		s.Effects.After(now, b.Delay, func(time.Duration) {
			s.Particles = append(s.Particles, ps...)
		})
	}
	return op, true
}

// DropTail detaches the last companion. Indoors it stays in the current
// house at the player's room position.
func (s *GameState) DropTail() (*entity.DroppedCompanion, bool) {
	c, ok := s.Chain.PopTail()
	if !ok {
		return nil, false
	}
	var d *entity.DroppedCompanion
	if s.Indoors {
		d = entity.DropInHouse(c, s.HouseID, s.Player.Pos)
	} else {
		d = entity.Drop(c)
	}
	s.Dropped = append(s.Dropped, d)
	return d, true
}

// pickUpDropped rejoins every armed dropped companion the player stands
// next to. Outdoors only companions outside are eligible; indoors only
// residents of the current house.
func (s *GameState) pickUpDropped() int {
	radius := s.Config.Companion.PickupRadius
	picked := 0
	kept := s.Dropped[:0]
	for _, d := range s.Dropped {
		var near bool
		switch {
		case s.Indoors:
			near = d.InHouse && d.HouseID == s.HouseID && geom.Dist(d.HousePos, s.Player.Pos) < radius
		default:
			near = !d.InHouse && geom.Dist(d.Companion.Pos, s.Player.Pos) < radius
		}
		if !near {
			d.Armed = true
		}
		if !near || !d.Armed {
			kept = append(kept, d)
			continue
		}
		at := d.Companion.Pos
		if d.InHouse {
			at = s.OutdoorPos
		}
		s.Chain.Append(d.PickUp(at))
		picked++
	}
	for i := len(kept); i < len(s.Dropped); i++ {
		s.Dropped[i] = nil
	}
	s.Dropped = kept
	return picked
}

// Teleport puts the player below the fountain and the chain on a ring
// around them.
func (s *GameState) Teleport() {
	cfg := s.Config.Player
	s.Player.Pos = s.Village.PlayerSpawn(cfg.Width, cfg.Height, cfg.SpawnBelowFount)
	s.Player.Wake()
	s.Chain.PlaceRing(s.Player.Pos)
}

// nearestFirefly returns the closest live firefly to p.
func (s *GameState) nearestFirefly(p geom.Point) *entity.Firefly {
	var best *entity.Firefly
	bestD := 0.0
	for _, ff := range s.Fireflies.Fireflies() {
		if ff.Gone {
			continue
		}
		if d := geom.Dist(p, ff.Pos); best == nil || d < bestD {
			best, bestD = ff, d
		}
	}
	return best
}

// nearestClosedChest returns the closest unopened chest to p.
func (s *GameState) nearestClosedChest(p geom.Point) *entity.Chest {
	var best *entity.Chest
	bestD := 0.0
	for _, c := range s.Chests {
		if c.Opened {
			continue
		}
		if d := geom.Dist(p, c.Center()); best == nil || d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

// CastMagic fires a homing bolt from the player at the nearest firefly by
// night or the nearest closed chest by day. With no target it flies towards
// aim, or the way the player faces when aim is nil. It reports false during
// the cooldown or in cat form.
func (s *GameState) CastMagic(now time.Duration, aim *geom.Point) bool {
	if !s.Player.CanCast(now) {
		return false
	}
	from := s.Player.Center()
	to := from.Add(geom.Point{X: -1})
	if s.Player.FacingRight {
		to = from.Add(geom.Point{X: 1})
	}
	if aim != nil && *aim != from {
		to = *aim
	}

	p := entity.NewProjectile(from, to, now, s.Config.Projectile)
	if s.Sky.IsNight {
		if ff := s.nearestFirefly(from); ff != nil {
			p.Firefly = ff
			p.Angle = geom.Angle(from, ff.Pos)
		}
	} else if c := s.nearestClosedChest(from); c != nil {
		p.Chest = c
		p.Angle = geom.Angle(from, c.Center())
	}
	s.Projectiles = append(s.Projectiles, p)
	s.Player.MarkCast(now)
	return true
}

// updateProjectiles moves every bolt and applies at most one hit per bolt.
func (s *GameState) updateProjectiles(f clock.Frame) {
	cfg := s.Config
	kept := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		switch p.Update(f, s.Sky.IsNight, cfg.Projectile.HitRadius) {
		case entity.Flying:
			kept = append(kept, p)
		case entity.HitFirefly:
			p.Firefly.Hit(cfg.Fireflies.MaxSize)
			s.Particles = append(s.Particles, entity.OmniBurst(s.rng, p.Firefly.Pos, 8, cfg.Particles)...)
		case entity.HitChest:
			if p.Chest.Strike(cfg.Chests.HitsToOpenBasic) {
				s.OpenChest(p.Chest, f.Now)
			}
		}
	}
	for i := len(kept); i < len(s.Projectiles); i++ {
		s.Projectiles[i] = nil
	}
	s.Projectiles = kept
}

// updateItems advances the hearts and eats the ones the player touches.
// It returns the eaten items.
func (s *GameState) updateItems(f clock.Frame) []*entity.Item {
	ic := s.Config.Items
	var eaten []*entity.Item
	kept := s.Items[:0]
	for _, it := range s.Items {
		it.Update(f)
		if !it.Touches(s.Player, ic.PickupRadius) {
			kept = append(kept, it)
			continue
		}
		eaten = append(eaten, it)
		s.Player.ActivateBoost(f.Now, ic.BoostDuration.Duration(), ic.BoostFactor, it.Kind.Color())
		s.GainXP(it.Kind.XP())
		s.Particles = append(s.Particles, entity.OmniBurst(s.rng, it.Rect().Center(), 10, s.Config.Particles)...)
	}
	for i := len(kept); i < len(s.Items); i++ {
		s.Items[i] = nil
	}
	s.Items = kept
	return eaten
}

// updateFireflies drifts the population and pays out for every catch.
func (s *GameState) updateFireflies(f clock.Frame) []*entity.Firefly {
	caught := s.Fireflies.Update(f, s.Player)
	for _, ff := range caught {
		s.Jar.Add(1)
		s.GainXP(ff.XP)
	}
	return caught
}

// UpdateOutdoors runs one frame of the village simulation in the fixed
// order: clock, spawner, player, chain, pickups, projectiles.
func (s *GameState) UpdateOutdoors(f clock.Frame, in entity.Intent) entity.PlayerEvents {
	s.Sky = s.Clock.Advance(f.Delta)
	s.Fireflies.OnTransition(s.Sky.Transition)

	ev := s.Player.Update(f, in, s.Geometry, s.rng)
	if ev.FellAsleep {
		s.Chain.FormRing(s.Player.Pos)
	}
	s.Chain.Update(f, s.Player)
	s.pickUpDropped()
	for _, d := range s.Dropped {
		if !d.InHouse {
			d.Companion.Animate(f)
		}
	}

	s.updateItems(f)
	s.updateFireflies(f)
	s.updateProjectiles(f)
	return ev
}

// UpdateParticles drains due effects and then moves the particles. It runs
// indoors and out.
func (s *GameState) UpdateParticles(f clock.Frame) {
	s.Effects.Drain(f.Now)
	s.Particles = entity.UpdateParticles(s.Particles, f, s.Config.Particles)
}
