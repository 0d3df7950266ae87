// Package furnishing manages the furniture the player places inside houses:
// the shop catalog, per-house layouts and the per-type style defaults.
package furnishing

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"chosenoffset.com/cattown/internal/core/geom"
)

// Definition is a furniture template offered by the shop.
type Definition struct {
	Type  string  `json:"type"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	W     float64 `json:"width"`
	H     float64 `json:"height"`
}

// Catalog holds the shop's furniture definitions in display order.
type Catalog struct {
	Definitions []*Definition
}

// DefaultCatalog returns the six pieces the shop sells.
func DefaultCatalog() *Catalog {
	return &Catalog{Definitions: []*Definition{
		{Type: "bed", Name: "Bed", Color: "#8B4513", W: 80, H: 100},
		{Type: "table", Name: "Table", Color: "#D2691E", W: 60, H: 60},
		{Type: "chair", Name: "Chair", Color: "#A0522D", W: 40, H: 40},
		{Type: "rug", Name: "Rug", Color: "#DC143C", W: 100, H: 80},
		{Type: "plant", Name: "Plant", Color: "#228B22", W: 30, H: 40},
		{Type: "lamp", Name: "Lamp", Color: "#FFD700", W: 30, H: 50},
	}}
}

// ByType finds a definition, or nil.
func (c *Catalog) ByType(t string) *Definition {
	for _, d := range c.Definitions {
		if d.Type == t {
			return d
		}
	}
	return nil
}

// Style is the hue, size and rotation the next placed piece of a type gets.
type Style struct {
	Hue      float64 `json:"hue"`
	Size     float64 `json:"size"`
	Rotation int     `json:"rotation"`
}

// Size limits of the shop slider.
const (
	MinSize = 0.5
	MaxSize = 2.0
)

// Placed is one piece of furniture inside a house. Pos is the top-left corner
// of the unscaled footprint.
type Placed struct {
	ID       ulid.ULID  `json:"id"`
	Type     string     `json:"type"`
	Pos      geom.Point `json:"pos"`
	W        float64    `json:"width"`
	H        float64    `json:"height"`
	Rotation int        `json:"rotation"`
	Hue      float64    `json:"hue"`
	Size     float64    `json:"size"`
}

// HitRect is the clickable area, centred on the footprint and scaled with
// the piece.
func (p *Placed) HitRect() geom.Rect {
	scale := p.Size * 1.5
	if p.Size == 0 {
		scale = 1.5
	}
	w, h := p.W*scale, p.H*scale
	return geom.Rect{X: p.Pos.X - (w-p.W)/2, Y: p.Pos.Y - (h-p.H)/2, W: w, H: h}
}

// Center returns the centre of the footprint.
func (p *Placed) Center() geom.Point {
	return geom.RectAt(p.Pos, p.W, p.H).Center()
}

// Layout is every house's furniture plus the shared per-type styles.
type Layout struct {
	Catalog *Catalog
	Houses  map[string][]*Placed
	Styles  map[string]*Style

	entropy io.Reader
	now     func() time.Time
}

// NewLayout creates an empty layout. rng feeds the id generator.
func NewLayout(catalog *Catalog, rng *rand.Rand) *Layout {
	l := &Layout{
		Catalog: catalog,
		Houses:  make(map[string][]*Placed),
		Styles:  make(map[string]*Style),
		entropy: ulid.Monotonic(rng, 0),
		now:     time.Now,
	}
	for _, d := range catalog.Definitions {
		l.Styles[d.Type] = &Style{Size: 1}
	}
	return l
}

// Style returns the current style for a furniture type.
func (l *Layout) Style(t string) *Style {
	s, ok := l.Styles[t]
	if !ok {
		s = &Style{Size: 1}
		l.Styles[t] = s
	}
	return s
}

// Furniture returns a house's pieces in placement order.
func (l *Layout) Furniture(houseID string) []*Placed {
	return l.Houses[houseID]
}

// Place adds a piece of type t centred on at, using the type's current style.
func (l *Layout) Place(houseID, t string, at geom.Point) (*Placed, error) {
	def := l.Catalog.ByType(t)
	if def == nil {
		return nil, fmt.Errorf("unknown furniture type %q", t)
	}
	id, err := ulid.New(ulid.Timestamp(l.now()), l.entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate furniture id: %w", err)
	}
	st := l.Style(t)
	p := &Placed{
		ID:       id,
		Type:     t,
		Pos:      geom.Point{X: at.X - def.W/2, Y: at.Y - def.H/2},
		W:        def.W,
		H:        def.H,
		Rotation: st.Rotation,
		Hue:      st.Hue,
		Size:     st.Size,
	}
	l.Houses[houseID] = append(l.Houses[houseID], p)
	return p, nil
}

// Remove deletes a piece by id and reports whether it was found.
func (l *Layout) Remove(houseID string, id ulid.ULID) bool {
	pieces := l.Houses[houseID]
	for i, p := range pieces {
		if p.ID == id {
			l.Houses[houseID] = append(pieces[:i:i], pieces[i+1:]...)
			return true
		}
	}
	return false
}

// HitTest returns the topmost piece under pt, or nil.
func (l *Layout) HitTest(houseID string, pt geom.Point) *Placed {
	pieces := l.Houses[houseID]
	for i := len(pieces) - 1; i >= 0; i-- {
		if pieces[i].HitRect().Contains(pt) {
			return pieces[i]
		}
	}
	return nil
}

// Restore replaces all houses and styles with persisted values.
func (l *Layout) Restore(houses map[string][]*Placed, styles map[string]*Style) {
	l.Houses = make(map[string][]*Placed, len(houses))
	for id, pieces := range houses {
		l.Houses[id] = append([]*Placed(nil), pieces...)
	}
	for t, s := range styles {
		cp := *s
		l.Styles[t] = &cp
	}
}

// Rotate turns a rotation by a quarter.
func Rotate(deg int) int {
	return (deg + 90) % 360
}
