package game

import (
	"image/color"

	"github.com/zyedidia/generic/mapset"

	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/core/palette"
	"chosenoffset.com/cattown/internal/render"
)

// Layer is one togglable kind of minimap mark.
type Layer int

const (
	LayerTrees Layer = iota
	LayerBuildings
	LayerFountain
	LayerChests
	LayerCompanions
	LayerPlayer
)

var layerNames = []string{"Trees", "Houses", "Fountain", "Chests", "Friends", "You"}

func (l Layer) String() string {
	if l < 0 || int(l) >= len(layerNames) {
		return "unknown"
	}
	return layerNames[l]
}

// Minimap geometry in screen pixels.
const (
	minimapW      = 240.0
	minimapH      = 180.0
	minimapMargin = 16.0
	legendRow     = 16.0
)

var (
	minimapBg       = color.RGBA{20, 40, 20, 200}
	minimapTree     = color.RGBA{30, 90, 40, 255}
	minimapBuilding = color.RGBA{150, 100, 70, 255}
	minimapFountain = color.RGBA{120, 180, 255, 255}
	minimapFriend   = color.RGBA{255, 255, 255, 255}
	minimapPlayer   = color.RGBA{255, 220, 0, 255}
)

// Minimap is the scaled village overview. The static layers are drawn once
// into an offscreen image and redrawn only when their visibility changes.
type Minimap struct {
	Visible bool
	layers  mapset.Set[Layer]

	static render.Image
	dirty  bool
}

// NewMinimap creates a hidden minimap with every layer on.
func NewMinimap() *Minimap {
	m := &Minimap{layers: mapset.New[Layer](), dirty: true}
	for l := LayerTrees; l <= LayerPlayer; l++ {
		m.layers.Put(l)
	}
	return m
}

// Toggle shows or hides the minimap.
func (m *Minimap) Toggle() {
	m.Visible = !m.Visible
}

// Shows reports whether a layer is drawn.
func (m *Minimap) Shows(l Layer) bool {
	return m.layers.Has(l)
}

// ToggleLayer flips one layer.
func (m *Minimap) ToggleLayer(l Layer) {
	if m.layers.Has(l) {
		m.layers.Remove(l)
	} else {
		m.layers.Put(l)
	}
	if l <= LayerFountain {
		m.dirty = true
	}
}

// legendRect is the clickable row for a layer, below the map.
func legendRect(origin geom.Point, l Layer) geom.Rect {
	return geom.Rect{X: origin.X, Y: origin.Y + minimapH + 4 + float64(l)*legendRow, W: minimapW, H: legendRow}
}

// HandleClick toggles the layer whose legend row contains pt. It reports
// whether the click landed on the minimap at all.
func (m *Minimap) HandleClick(pt, origin geom.Point) bool {
	if !m.Visible {
		return false
	}
	for l := LayerTrees; l <= LayerPlayer; l++ {
		if legendRect(origin, l).Contains(pt) {
			m.ToggleLayer(l)
			return true
		}
	}
	return geom.Rect{X: origin.X, Y: origin.Y, W: minimapW, H: minimapH}.Contains(pt)
}

// minimapOrigin is the top-left of the minimap, in the top-right corner.
func (g *Game) minimapOrigin() geom.Point {
	return geom.Point{X: float64(g.ScreenWidth) - minimapW - minimapMargin, Y: 110}
}

// minimapScale maps world units to minimap pixels.
func (g *Game) minimapScale() float64 {
	v := g.State.Village
	return min(minimapW/v.Width, minimapH/v.Height)
}

// renderStatic redraws trees, buildings and the fountain into the cache.
func (g *Game) renderStatic(m *Minimap) {
	if m.static == nil {
		m.static = g.Renderer.NewImage(int(minimapW), int(minimapH))
	}
	m.static.Clear()
	g.Renderer.FillRect(m.static, 0, 0, minimapW, minimapH, minimapBg)

	v := g.State.Village
	k := g.minimapScale()
	if m.Shows(LayerTrees) {
		for _, t := range v.Trees {
			g.Renderer.FillRect(m.static, float32(t.Base.X*k), float32(t.Base.Y*k), 1, 1, minimapTree)
		}
	}
	if m.Shows(LayerBuildings) {
		for _, b := range v.Buildings {
			g.Renderer.FillRect(m.static, float32(b.Rect.X*k), float32(b.Rect.Y*k), float32(max(b.Rect.W*k, 2)), float32(max(b.Rect.H*k, 2)), minimapBuilding)
		}
	}
	if m.Shows(LayerFountain) {
		c := v.Landmark()
		g.Renderer.FillCircle(m.static, float32(c.X*k), float32(c.Y*k), 3, minimapFountain)
	}
	m.dirty = false
}

// drawMinimap draws the overview and its legend onto the screen.
func (g *Game) drawMinimap(screen render.Image) {
	m := g.Minimap
	if !m.Visible {
		return
	}
	if m.dirty || m.static == nil {
		g.renderStatic(m)
	}

	origin := g.minimapOrigin()
	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Translate(origin.X, origin.Y)
	screen.DrawImage(m.static, opts)

	s := g.State
	k := g.minimapScale()
	at := func(p geom.Point) (float32, float32) {
		return float32(origin.X + p.X*k), float32(origin.Y + p.Y*k)
	}
	if m.Shows(LayerChests) {
		for _, c := range s.Chests {
			if c.Opened {
				continue
			}
			x, y := at(c.Center())
			g.Renderer.FillRect(screen, x-1, y-1, 2, 2, palette.Hex(c.Tier.Glow))
		}
	}
	if m.Shows(LayerCompanions) {
		for _, c := range s.Chain.Members() {
			x, y := at(c.Pos)
			g.Renderer.FillCircle(screen, x, y, 1.5, minimapFriend)
		}
	}
	if m.Shows(LayerPlayer) {
		x, y := at(s.Player.Center())
		g.Renderer.FillCircle(screen, x, y, 3, minimapPlayer)
	}
	g.Renderer.StrokeRect(screen, float32(origin.X), float32(origin.Y), minimapW, minimapH, 2, color.White)

	for l := LayerTrees; l <= LayerPlayer; l++ {
		r := legendRect(origin, l)
		mark := "[ ]"
		if m.Shows(l) {
			mark = "[x]"
		}
		g.Renderer.DrawText(screen, mark+" "+l.String(), r.X, r.Y, render.TextOptions{Size: 12, Color: color.White})
	}
}
