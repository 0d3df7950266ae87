package game

import (
	"math"
	"time"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/render"
	"chosenoffset.com/cattown/internal/world/furnishing"
)

// Shop strip layout, in screen pixels.
const (
	shopItemW   = 110.0
	shopItemH   = 140.0
	shopGap     = 12.0
	shopTop     = 40.0 // below the room
	sliderInset = 10.0
	sliderH     = 10.0
	hueSliderY  = 98.0
	sizeSliderY = 118.0
	rotateR     = 10.0
	doorWidth   = 80.0
)

// roomRect is the interior in screen space, leaving the shop strip below.
func (g *Game) roomRect() geom.Rect {
	ic := g.State.Config.Interior
	return geom.Rect{
		X: ic.Margin,
		Y: ic.Margin,
		W: float64(g.ScreenWidth) - 2*ic.Margin,
		H: float64(g.ScreenHeight) - 2*ic.Margin - ic.ShopHeight,
	}
}

// floorRect is the walkable part of the room.
func (g *Game) floorRect() geom.Rect {
	wall := g.State.Config.Interior.Wall
	return g.roomRect().Inset(wall, wall)
}

// doorSpawn is where the player appears after entering: centred, just above
// the door.
func (g *Game) doorSpawn() geom.Point {
	room := g.roomRect()
	p := g.State.Player
	return geom.Point{
		X: room.X + room.W/2 - p.W/2,
		Y: room.Bottom() - g.State.Config.Interior.Wall - p.H - g.State.Config.Interior.DoorClearance,
	}
}

// shopLayout locates the shop's controls for n catalog entries.
type shopLayout struct {
	origin geom.Point
	n      int
}

func (g *Game) shop() shopLayout {
	room := g.roomRect()
	return shopLayout{
		origin: geom.Point{X: room.X + 10, Y: room.Bottom() + shopTop},
		n:      len(g.State.Furniture.Catalog.Definitions),
	}
}

// bounds is the whole shop panel.
func (l shopLayout) bounds() geom.Rect {
	return geom.Rect{
		X: l.origin.X - 15,
		Y: l.origin.Y - 30,
		W: float64(l.n)*(shopItemW+shopGap) + 20,
		H: shopItemH + 40,
	}
}

func (l shopLayout) item(i int) geom.Rect {
	return geom.Rect{X: l.origin.X + float64(i)*(shopItemW+shopGap), Y: l.origin.Y, W: shopItemW, H: shopItemH}
}

func (l shopLayout) hueSlider(i int) geom.Rect {
	it := l.item(i)
	return geom.Rect{X: it.X + sliderInset, Y: it.Y + hueSliderY, W: shopItemW - 2*sliderInset, H: sliderH}
}

func (l shopLayout) sizeSlider(i int) geom.Rect {
	it := l.item(i)
	return geom.Rect{X: it.X + sliderInset, Y: it.Y + sizeSliderY, W: shopItemW - 2*sliderInset, H: sliderH}
}

func (l shopLayout) rotateButton(i int) geom.Point {
	it := l.item(i)
	return geom.Point{X: it.Right() - 20, Y: it.Y + 15}
}

// sliderHit widens a slider's grab area vertically.
func sliderHit(r geom.Rect, p geom.Point) bool {
	return r.Inset(0, -5).Contains(p)
}

// sliderFraction maps a pointer x onto a slider.
func sliderFraction(r geom.Rect, x float64) float64 {
	if r.W <= 0 {
		return 0
	}
	return geom.Clamp((x-r.X)/r.W, 0, 1)
}

type sliderKind int

const (
	noSlider sliderKind = iota
	hueSlider
	sizeSlider
)

// sliderDrag is the shop slider held down, if any.
type sliderDrag struct {
	kind  sliderKind
	index int
}

// enterHouse switches to indoor mode inside b.
func (g *Game) enterHouse(b entity.Building) {
	s := g.State
	s.Indoors = true
	s.HouseID = b.ID
	s.OutdoorPos = s.Player.Pos
	s.Player.Pos = g.doorSpawn()
	s.Player.Wake()
	g.Editor = furnishing.NewEditor(s.Furniture, b.ID)
	g.slider = sliderDrag{}

	if b.IsPlayerHouse() {
		g.ShowMessage("Welcome home!")
	} else {
		g.ShowMessage("You stepped inside")
	}
}

// exitHouse returns to the village where the player went in.
func (g *Game) exitHouse(now time.Duration) {
	s := g.State
	s.Indoors = false
	s.HouseID = ""
	s.Player.Pos = s.OutdoorPos
	s.Player.Wake()
	s.LastExit = now
	s.HasExit = true
	g.Editor = nil
	g.slider = sliderDrag{}
}

// updateIndoors runs one frame inside a house. The world clock and every
// outdoor entity stay paused.
func (g *Game) updateIndoors(f clock.Frame) {
	s := g.State
	if g.Input.Pressed(render.KeyF) {
		s.DropTail()
	}
	if g.Editor != nil {
		if g.Input.Pressed(render.KeyR) {
			g.Editor.Rotate()
		}
		if g.Input.AnyPressed(render.KeyDelete, render.KeyBackspace) {
			g.Editor.Delete()
		}
		g.updateEditorMouse()
	}

	s.Player.Update(f, g.Input.Intent(), nil, s.rng)
	floor := g.floorRect()
	s.Player.Pos.X = geom.Clamp(s.Player.Pos.X, floor.X, floor.Right()-s.Player.W)
	s.Player.Pos.Y = geom.Clamp(s.Player.Pos.Y, floor.Y, floor.Bottom()-s.Player.H)

	ic := s.Config.Interior
	for _, d := range s.Dropped {
		if d.InHouse && d.HouseID == s.HouseID {
			d.Wander(f, floor, ic.WanderSpeed, ic.WanderMin.Duration(), ic.WanderMax.Duration(), s.rng)
		}
	}
	s.pickUpDropped()
}

// updateEditorMouse routes the pointer to the shop strip or the room.
func (g *Game) updateEditorMouse() {
	pt := g.Input.Cursor()
	shop := g.shop()
	ed := g.Editor

	if g.Input.Clicked() {
		switch {
		case shop.bounds().Contains(pt):
			g.shopPress(shop, pt)
		case g.roomRect().Contains(pt):
			if ed.Placing != "" {
				ed.Click(pt)
			} else {
				ed.Press(pt)
				if !ed.Dragging() {
					ed.Click(pt)
				}
			}
		}
	}

	if g.Input.MouseDown() {
		ed.Drag(pt)
		g.dragSlider(shop, pt)
	}
	if g.Input.Released() {
		ed.Release()
		g.slider = sliderDrag{}
	}
}

// shopPress handles a press on the shop strip: rotate button, sliders, or
// the item card itself.
func (g *Game) shopPress(shop shopLayout, pt geom.Point) {
	defs := g.State.Furniture.Catalog.Definitions
	for i, def := range defs {
		if geom.Dist(pt, shop.rotateButton(i)) <= rotateR {
			g.Editor.RotateType(def.Type)
			return
		}
		if sliderHit(shop.hueSlider(i), pt) {
			g.slider = sliderDrag{kind: hueSlider, index: i}
			g.dragSlider(shop, pt)
			return
		}
		if sliderHit(shop.sizeSlider(i), pt) {
			g.slider = sliderDrag{kind: sizeSlider, index: i}
			g.dragSlider(shop, pt)
			return
		}
		if shop.item(i).Contains(pt) {
			g.Editor.Choose(def.Type)
			return
		}
	}
}

func (g *Game) dragSlider(shop shopLayout, pt geom.Point) {
	if g.slider.kind == noSlider {
		return
	}
	def := g.State.Furniture.Catalog.Definitions[g.slider.index]
	switch g.slider.kind {
	case hueSlider:
		g.Editor.SetHue(def.Type, sliderFraction(shop.hueSlider(g.slider.index), pt.X)*360)
	case sizeSlider:
		frac := sliderFraction(shop.sizeSlider(g.slider.index), pt.X)
		g.Editor.SetSize(def.Type, furnishing.MinSize+frac*(furnishing.MaxSize-furnishing.MinSize))
	}
}

// doorRect is the opening drawn in the bottom wall.
func (g *Game) doorRect() geom.Rect {
	room := g.roomRect()
	wall := g.State.Config.Interior.Wall
	return geom.Rect{X: room.X + room.W/2 - doorWidth/2, Y: room.Bottom() - wall, W: doorWidth, H: wall}
}

// wanderBob is the vertical bob of resident companions.
func wanderBob(c *entity.Companion) float64 {
	return math.Sin(c.Bob) * 3
}
