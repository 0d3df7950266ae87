package furnishing

import (
	"log"

	"chosenoffset.com/cattown/internal/core/geom"
)

// Editor is the click/drag state of furniture placement inside one house.
type Editor struct {
	Layout *Layout
	House  string

	// Placing is the shop type waiting to be placed, "" when none.
	Placing string
	// Picked is the selected placed piece.
	Picked   *Placed
	dragging bool
}

// NewEditor creates an editor for a house.
func NewEditor(layout *Layout, house string) *Editor {
	return &Editor{Layout: layout, House: house}
}

// Choose selects a shop type for placement and clears any piece selection.
func (e *Editor) Choose(t string) {
	if e.Layout.Catalog.ByType(t) == nil {
		return
	}
	e.Placing = t
	e.Picked = nil
}

// Press handles a mouse press in the room: it grabs a piece for dragging
// unless a shop type is waiting to be placed.
func (e *Editor) Press(pt geom.Point) {
	if e.Placing != "" {
		return
	}
	if p := e.Layout.HitTest(e.House, pt); p != nil {
		e.Picked = p
		e.dragging = true
	}
}

// Drag moves the grabbed piece so it stays centred on the pointer.
func (e *Editor) Drag(pt geom.Point) {
	if !e.dragging || e.Picked == nil {
		return
	}
	e.Picked.Pos = geom.Point{X: pt.X - e.Picked.W/2, Y: pt.Y - e.Picked.H/2}
}

// Release ends a drag.
func (e *Editor) Release() {
	e.dragging = false
}

// Dragging reports whether a piece is being dragged.
func (e *Editor) Dragging() bool {
	return e.dragging
}

// Click places the waiting shop type, or selects the piece under the
// pointer, or clears the selection.
func (e *Editor) Click(pt geom.Point) {
	if e.dragging {
		return
	}
	if e.Placing != "" {
		if _, err := e.Layout.Place(e.House, e.Placing, pt); err != nil {
			log.Printf("Warning: %v", err)
		}
		e.Layout.Style(e.Placing).Rotation = 0
		e.Placing = ""
		return
	}
	e.Picked = e.Layout.HitTest(e.House, pt)
}

// Rotate turns the waiting shop type, or else the selected piece.
func (e *Editor) Rotate() {
	switch {
	case e.Placing != "":
		st := e.Layout.Style(e.Placing)
		st.Rotation = Rotate(st.Rotation)
	case e.Picked != nil:
		e.Picked.Rotation = Rotate(e.Picked.Rotation)
	}
}

// RotateType turns a type's default rotation, and the selected piece if it
// is of that type.
func (e *Editor) RotateType(t string) {
	st := e.Layout.Style(t)
	st.Rotation = Rotate(st.Rotation)
	if e.Picked != nil && e.Picked.Type == t {
		e.Picked.Rotation = Rotate(e.Picked.Rotation)
	}
}

// Delete removes the selected piece.
func (e *Editor) Delete() {
	if e.Picked == nil {
		return
	}
	e.Layout.Remove(e.House, e.Picked.ID)
	e.Picked = nil
	e.dragging = false
}

// SetHue sets a type's hue and recolors the selected piece if it is of that type.
func (e *Editor) SetHue(t string, hue float64) {
	e.Layout.Style(t).Hue = geom.Clamp(hue, 0, 360)
	if e.Picked != nil && e.Picked.Type == t {
		e.Picked.Hue = e.Layout.Style(t).Hue
	}
}

// SetSize sets a type's size and resizes the selected piece if it is of that type.
func (e *Editor) SetSize(t string, size float64) {
	e.Layout.Style(t).Size = geom.Clamp(size, MinSize, MaxSize)
	if e.Picked != nil && e.Picked.Type == t {
		e.Picked.Size = e.Layout.Style(t).Size
	}
}
