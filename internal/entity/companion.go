package entity

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/core/palette"
)

// companion glow colors at night, by kind
var glowColors = map[string]string{
	"kitten1":  "#FFA500",
	"kitten2":  "#FFA500",
	"kitten3":  "#FFA500",
	"frog":     "#32CD32",
	"squirrel": "#D2691E",
	"puppy":    "#DAA520",
	"bunny":    "#FFB6C1",
}

// GlowColor returns the night glow for a companion kind.
func GlowColor(kind string) color.RGBA {
	if hex, ok := glowColors[kind]; ok {
		return palette.Hex(hex)
	}
	return color.RGBA{255, 255, 255, 255}
}

// Companion is a creature freed from a chest.
type Companion struct {
	Pos    geom.Point
	Kind   string
	Size   float64 // multiplier of the base size
	Base   float64 // base edge length
	Speed  float64 // units per second
	Target geom.Point
	Vel    geom.Point
	Joined bool
	Bob    float64

	spawning  bool
	spawnedAt time.Duration
	spawnFor  time.Duration
}

// NewCompanion creates a companion that is already part of the chain, as
// when it is loaded from a save or picked back up.
func NewCompanion(pos geom.Point, kind string, size, base, speed float64, rng *rand.Rand) *Companion {
	c := &Companion{
		Pos:    pos,
		Kind:   kind,
		Size:   size,
		Base:   base,
		Speed:  speed,
		Target: pos,
		Joined: true,
	}
	if rng != nil {
		c.Bob = rng.Float64() * 2 * math.Pi
	}
	return c
}

// NewSpawnedCompanion creates a companion launched on a spawn arc. It joins
// the chain only once the arc ends and it has caught up.
func NewSpawnedCompanion(pos geom.Point, kind string, size, base, speed float64, vel geom.Point, now, arc time.Duration, rng *rand.Rand) *Companion {
	c := NewCompanion(pos, kind, size, base, speed, rng)
	c.Vel = vel
	c.spawning = vel != (geom.Point{})
	c.Joined = !c.spawning
	c.spawnedAt = now
	c.spawnFor = arc
	return c
}

// Edge returns the side length of the square sprite.
func (c *Companion) Edge() float64 {
	return c.Base * c.Size
}

// Rect returns the sprite bounds.
func (c *Companion) Rect() geom.Rect {
	return geom.RectAt(c.Pos, c.Edge(), c.Edge())
}

// Spawning reports whether the companion is still in its spawn arc.
func (c *Companion) Spawning() bool {
	return c.spawning
}

// StepArc advances the spawn arc and returns true while the arc is running.
// Gravity is in units per second squared; damping is applied per 60 Hz frame.
func (c *Companion) StepArc(f clock.Frame, gravity, damping float64) bool {
	if !c.spawning {
		return false
	}
	if f.Now-c.spawnedAt >= c.spawnFor {
		c.spawning = false
		c.Vel = geom.Point{}
		return false
	}
	dt := f.Seconds()
	c.Pos = c.Pos.Add(c.Vel.Scale(dt))
	c.Vel.Y += gravity * dt
	c.Vel = c.Vel.Scale(math.Pow(damping, f.Steps()))
	c.Animate(f)
	return true
}

// MoveToward steps towards target at speed units per second, stopping once
// within stop units. It never overshoots the target.
func (c *Companion) MoveToward(target geom.Point, speed, stop float64, f clock.Frame) {
	d := geom.Dist(c.Pos, target)
	if d <= stop {
		return
	}
	step := speed * f.Seconds()
	if step > d {
		step = d
	}
	c.Pos = c.Pos.Add(geom.Polar(geom.Angle(c.Pos, target), step))
}

// Animate advances the idle bob.
func (c *Companion) Animate(f clock.Frame) {
	c.Bob += 0.1 * f.Steps()
}

// DroppedCompanion is a companion the player left behind, outdoors or inside
// a house.
type DroppedCompanion struct {
	Companion *Companion

	InHouse  bool
	HouseID  string
	HousePos geom.Point // room coordinates when InHouse

	// Armed is set once the player has been out of pickup range, so a
	// companion is not collected again the moment it is dropped.
	Armed bool

	wanderTo   geom.Point
	nextWander time.Duration
}

// Drop detaches c from the chain at its world position.
func Drop(c *Companion) *DroppedCompanion {
	return &DroppedCompanion{Companion: c}
}

// DropInHouse detaches c inside a house at room position pos.
func DropInHouse(c *Companion, houseID string, pos geom.Point) *DroppedCompanion {
	return &DroppedCompanion{Companion: c, InHouse: true, HouseID: houseID, HousePos: pos, wanderTo: pos}
}

// Wander moves a resident companion around the room, choosing a new spot
// inside room every few seconds.
func (d *DroppedCompanion) Wander(f clock.Frame, room geom.Rect, speed float64, minWait, maxWait time.Duration, rng *rand.Rand) {
	if !d.InHouse {
		return
	}
	if f.Now >= d.nextWander {
		edge := d.Companion.Edge()
		w := math.Max(room.W-edge, 0)
		h := math.Max(room.H-edge, 0)
		d.wanderTo = geom.Point{X: room.X + rng.Float64()*w, Y: room.Y + rng.Float64()*h}
		wait := minWait
		if maxWait > minWait {
			wait += time.Duration(rng.Int63n(int64(maxWait - minWait)))
		}
		d.nextWander = f.Now + wait
	}
	dist := geom.Dist(d.HousePos, d.wanderTo)
	if dist < 1 {
		return
	}
	step := math.Min(speed*f.Seconds(), dist)
	d.HousePos = d.HousePos.Add(geom.Polar(geom.Angle(d.HousePos, d.wanderTo), step))
	d.Companion.Animate(f)
}

// Rect returns the bounds in whichever space the companion lives in.
func (d *DroppedCompanion) Rect() geom.Rect {
	if d.InHouse {
		return geom.RectAt(d.HousePos, d.Companion.Edge(), d.Companion.Edge())
	}
	return d.Companion.Rect()
}

// PickUp returns the companion ready to rejoin the chain at pos.
func (d *DroppedCompanion) PickUp(pos geom.Point) *Companion {
	c := d.Companion
	c.Pos = pos
	c.Target = pos
	c.Joined = true
	c.spawning = false
	c.Vel = geom.Point{}
	return c
}
