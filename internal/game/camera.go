package game

import "chosenoffset.com/cattown/internal/core/geom"

// Camera tracks the viewport position for scrolling the village.
type Camera struct {
	X, Y float64 // top-left corner of the viewport in world coords
}

// View returns the visible world rectangle.
func (c Camera) View(w, h int) geom.Rect {
	return geom.Rect{X: c.X, Y: c.Y, W: float64(w), H: float64(h)}
}

// Follow centres the camera on the player, clamped to the world.
func (c *Camera) Follow(target geom.Point, viewW, viewH int, worldW, worldH float64) {
	c.X = target.X - float64(viewW)/2
	c.Y = target.Y - float64(viewH)/2

	if c.X > worldW-float64(viewW) {
		c.X = worldW - float64(viewW)
	}
	if c.Y > worldH-float64(viewH) {
		c.Y = worldH - float64(viewH)
	}
	if c.X < 0 {
		c.X = 0
	}
	if c.Y < 0 {
		c.Y = 0
	}
}

// ToWorld converts a screen point to world coordinates.
func (c Camera) ToWorld(p geom.Point) geom.Point {
	return geom.Point{X: p.X + c.X, Y: p.Y + c.Y}
}
