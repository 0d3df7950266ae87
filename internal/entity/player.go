package entity

import (
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/simulation"
)

// IdleState is the cat's animation state.
type IdleState int

const (
	Moving IdleState = iota
	Idle
	Yawn
	Lick
	Sleep
)

func (s IdleState) String() string {
	switch s {
	case Moving:
		return "moving"
	case Idle:
		return "idle"
	case Yawn:
		return "yawn"
	case Lick:
		return "lick"
	case Sleep:
		return "sleep"
	}
	return "unknown"
}

// Intent is the set of direction keys held this frame.
type Intent struct {
	Up, Down, Left, Right bool
}

// Any reports whether any direction is held.
func (i Intent) Any() bool {
	return i.Up || i.Down || i.Left || i.Right
}

// PlayerEvents reports what happened during one Update.
type PlayerEvents struct {
	Moved      bool
	FellAsleep bool
	BoostEnded bool
}

// Player is the controllable character.
type Player struct {
	Pos         geom.Point
	W, H        float64
	IsCat       bool
	Speed       float64
	BaseSpeed   float64
	BoostExpiry time.Duration // 0 = no boost
	BoostColor  string
	FacingRight bool

	Moving    bool
	WalkFrame int
	State     IdleState
	IdleFor   time.Duration

	walkTimer time.Duration
	animStart time.Duration
	lastMagic time.Duration
	hasCast   bool

	cfg simulation.PlayerConfig
}

// NewPlayer creates a player with its top-left corner at pos.
func NewPlayer(pos geom.Point, cfg simulation.PlayerConfig) *Player {
	return &Player{
		Pos:       pos,
		W:         cfg.Width,
		H:         cfg.Height,
		IsCat:     cfg.StartAsCat,
		Speed:     cfg.Speed,
		BaseSpeed: cfg.Speed,
		State:     Idle,
		cfg:       cfg,
	}
}

// Rect returns the sprite bounds.
func (p *Player) Rect() geom.Rect {
	return geom.RectAt(p.Pos, p.W, p.H)
}

// Center returns the centre of the sprite.
func (p *Player) Center() geom.Point {
	return p.Rect().Center()
}

// EffectiveSpeed returns the movement speed in units per second.
func (p *Player) EffectiveSpeed() float64 {
	if p.IsCat {
		return p.Speed * p.cfg.CatMultiplier
	}
	return p.Speed
}

// CollisionBox is a small centred box for the cat and the lower half of the
// sprite for the human.
func (p *Player) CollisionBox() geom.Rect {
	if p.IsCat {
		w := p.W * p.cfg.CatBoxFraction
		h := p.H * p.cfg.CatBoxFraction
		return geom.Rect{X: p.Pos.X + (p.W-w)/2, Y: p.Pos.Y + (p.H-h)/2, W: w, H: h}
	}
	h := p.H * p.cfg.HumanBoxFraction
	return geom.Rect{X: p.Pos.X, Y: p.Pos.Y + p.H - h, W: p.W, H: h}
}

// inDoorway reports whether the player stands in the band in front of b's
// entrance, where the house never blocks.
func (p *Player) inDoorway(b Building) bool {
	if math.Abs(b.Rect.Bottom()-(p.Pos.Y+p.H)) >= p.cfg.DoorBand {
		return false
	}
	return p.Pos.X+p.W > b.Rect.X+p.cfg.DoorInset && p.Pos.X < b.Rect.Right()-p.cfg.DoorInset
}

// Collides reports whether the player's collision box overlaps any building
// or tree trunk.
func (p *Player) Collides(world *Geometry) bool {
	if world == nil {
		return false
	}
	box := p.CollisionBox()
	for _, b := range world.Buildings {
		if p.inDoorway(b) {
			continue
		}
		if box.Intersects(b.Rect) {
			return true
		}
	}
	for _, t := range world.Trees {
		if box.Intersects(t.TrunkBox()) {
			return true
		}
	}
	return false
}

// Update moves the player for one frame and advances the animation state.
func (p *Player) Update(f clock.Frame, in Intent, world *Geometry, rng *rand.Rand) PlayerEvents {
	var ev PlayerEvents

	if p.BoostExpiry > 0 && f.Now > p.BoostExpiry {
		p.Speed = p.BaseSpeed
		p.BoostExpiry = 0
		ev.BoostEnded = true
	}

	prev := p.Pos
	step := p.EffectiveSpeed() * f.Seconds()
	if in.Up {
		p.Pos.Y -= step
	}
	if in.Down {
		p.Pos.Y += step
	}
	if in.Left {
		p.Pos.X -= step
		p.FacingRight = false
	}
	if in.Right {
		p.Pos.X += step
		p.FacingRight = true
	}
	moved := in.Any()

	// no sliding: a blocked diagonal reverts both axes
	if moved && p.Collides(world) {
		p.Pos = prev
	}

	ev.Moved = moved
	ev.FellAsleep = p.animate(f, moved, rng)
	return ev
}

// animate runs the walk cycle and the idle state machine. It returns true on
// the frame the cat falls asleep.
func (p *Player) animate(f clock.Frame, moved bool, rng *rand.Rand) bool {
	p.Moving = moved
	if moved {
		p.walkTimer += f.Delta
		if frame := p.cfg.WalkFrame.Duration(); frame > 0 {
			for p.walkTimer >= frame {
				p.walkTimer -= frame
				p.WalkFrame = (p.WalkFrame + 1) % 2
			}
		}
	} else {
		p.walkTimer = 0
		p.WalkFrame = 0
	}

	if moved || !p.IsCat {
		p.IdleFor = 0
		p.State = Moving
		if !moved {
			p.State = Idle
		}
		return false
	}

	if p.State == Moving {
		p.State = Idle
	}
	p.IdleFor += f.Delta

	switch {
	case p.State == Sleep:
		return false
	case p.IdleFor >= p.cfg.SleepAfter.Duration():
		p.State = Sleep
		return true
	case p.State == Yawn || p.State == Lick:
		if f.Now-p.animStart >= p.cfg.IdleAnimation.Duration() {
			p.State = Idle
		}
	case p.IdleFor > p.cfg.IdleWindowStart.Duration():
		if rng != nil && rng.Float64() < p.idleChance(f) {
			p.State = Yawn
			if rng.Intn(2) == 1 {
				p.State = Lick
			}
			p.animStart = f.Now
		}
	}
	return false
}

// idleChance scales the per-reference-frame probability to this frame's delta.
func (p *Player) idleChance(f clock.Frame) float64 {
	per := float64(p.cfg.IdleChancePer)
	if per <= 0 {
		return p.cfg.IdleChance
	}
	return 1 - math.Pow(1-p.cfg.IdleChance, f.DeltaMs()/per)
}

// Asleep reports whether the cat is in its terminal sleep state.
func (p *Player) Asleep() bool {
	return p.IsCat && p.State == Sleep
}

// Wake clears idle state, used when something other than movement disturbs the cat.
func (p *Player) Wake() {
	p.IdleFor = 0
	p.State = Idle
}

// Transform toggles between human and cat form.
func (p *Player) Transform() {
	p.IsCat = !p.IsCat
	p.Wake()
}

// ActivateBoost multiplies speed until now+d.
func (p *Player) ActivateBoost(now, d time.Duration, factor float64, color string) {
	p.Speed = p.BaseSpeed * factor
	p.BoostExpiry = now + d
	p.BoostColor = color
}

// Boosted reports whether a speed boost is active.
func (p *Player) Boosted() bool {
	return p.BoostExpiry > 0
}

// CanCast reports whether the ranged attack is available. Only the human casts.
func (p *Player) CanCast(now time.Duration) bool {
	if p.IsCat {
		return false
	}
	return !p.hasCast || now-p.lastMagic >= p.cfg.MagicCooldown.Duration()
}

// MarkCast starts the cooldown.
func (p *Player) MarkCast(now time.Duration) {
	p.lastMagic = now
	p.hasCast = true
}

// Restore rebuilds the persisted subset of player state.
func (p *Player) Restore(pos geom.Point, isCat bool, speed, baseSpeed float64, boostExpiry time.Duration, facingRight bool) {
	p.Pos = pos
	p.IsCat = isCat
	p.Speed = speed
	p.BaseSpeed = baseSpeed
	p.BoostExpiry = boostExpiry
	p.FacingRight = facingRight
	p.Wake()
}
