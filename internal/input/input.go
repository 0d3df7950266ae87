// Package input turns the backend's level-triggered key and mouse state into
// the edge-triggered actions the game reacts to.
package input

import (
	"github.com/zyedidia/generic/mapset"

	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/render"
)

// Movement keys. Held state is read directly; they never need edges.
var (
	upKeys    = []render.Key{render.KeyUp, render.KeyW}
	downKeys  = []render.Key{render.KeyDown, render.KeyS}
	leftKeys  = []render.Key{render.KeyLeft, render.KeyA}
	rightKeys = []render.Key{render.KeyRight, render.KeyD}
)

// Tracker samples the watched keys once per frame and remembers which were
// down on the previous frame.
type Tracker struct {
	src     render.InputManager
	watched []render.Key

	down    mapset.Set[render.Key]
	pressed mapset.Set[render.Key]

	mouseDown     bool
	mousePressed  bool
	mouseReleased bool
	cursor        geom.Point
}

// New watches the given keys plus the movement keys.
func New(src render.InputManager, keys ...render.Key) *Tracker {
	watched := append([]render.Key(nil), keys...)
	for _, group := range [][]render.Key{upKeys, downKeys, leftKeys, rightKeys} {
		watched = append(watched, group...)
	}
	return &Tracker{
		src:     src,
		watched: watched,
		down:    mapset.New[render.Key](),
		pressed: mapset.New[render.Key](),
	}
}

// Update samples the backend. Call it exactly once at the start of a frame.
func (t *Tracker) Update() {
	now := mapset.New[render.Key]()
	pressed := mapset.New[render.Key]()
	for _, k := range t.watched {
		if !t.src.IsKeyPressed(k) {
			continue
		}
		now.Put(k)
		if !t.down.Has(k) {
			pressed.Put(k)
		}
	}
	t.down = now
	t.pressed = pressed

	x, y := t.src.GetCursorPosition()
	t.cursor = geom.Point{X: float64(x), Y: float64(y)}

	md := t.src.IsMouseButtonPressed(render.MouseButtonLeft)
	t.mousePressed = md && !t.mouseDown
	t.mouseReleased = !md && t.mouseDown
	t.mouseDown = md
}

// Pressed reports whether k went down this frame.
func (t *Tracker) Pressed(k render.Key) bool {
	return t.pressed.Has(k)
}

// AnyPressed reports whether any of keys went down this frame.
func (t *Tracker) AnyPressed(keys ...render.Key) bool {
	for _, k := range keys {
		if t.pressed.Has(k) {
			return true
		}
	}
	return false
}

// Held reports whether k is down.
func (t *Tracker) Held(k render.Key) bool {
	return t.down.Has(k)
}

// Activity reports whether any watched key or the mouse went down this frame.
func (t *Tracker) Activity() bool {
	return t.pressed.Size() > 0 || t.mousePressed
}

// Intent returns the held movement directions.
func (t *Tracker) Intent() entity.Intent {
	return entity.Intent{
		Up:    t.anyHeld(upKeys),
		Down:  t.anyHeld(downKeys),
		Left:  t.anyHeld(leftKeys),
		Right: t.anyHeld(rightKeys),
	}
}

func (t *Tracker) anyHeld(keys []render.Key) bool {
	for _, k := range keys {
		if t.down.Has(k) {
			return true
		}
	}
	return false
}

// Cursor returns the pointer in screen coordinates.
func (t *Tracker) Cursor() geom.Point {
	return t.cursor
}

// Clicked reports whether the left button went down this frame.
func (t *Tracker) Clicked() bool {
	return t.mousePressed
}

// Released reports whether the left button came up this frame.
func (t *Tracker) Released() bool {
	return t.mouseReleased
}

// MouseDown reports whether the left button is held.
func (t *Tracker) MouseDown() bool {
	return t.mouseDown
}
