package entity

import (
	"math"
	"math/rand"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
)

// ItemKind is the flavour of heart pickup.
type ItemKind int

const (
	Apple ItemKind = iota
	Orange
	Berry
)

var itemKindNames = []string{"apple", "orange", "berry"}

func (k ItemKind) String() string {
	if k < 0 || int(k) >= len(itemKindNames) {
		return "apple"
	}
	return itemKindNames[k]
}

// ParseItemKind maps a persisted name back to a kind; unknown names are apples.
func ParseItemKind(s string) ItemKind {
	for i, n := range itemKindNames {
		if n == s {
			return ItemKind(i)
		}
	}
	return Apple
}

// XP returns the experience granted on pickup.
func (k ItemKind) XP() int {
	switch k {
	case Orange:
		return 7
	case Berry:
		return 5
	}
	return 10
}

// Color returns the heart color, also used for the boost pulse.
func (k ItemKind) Color() string {
	switch k {
	case Orange:
		return "#FF69B4"
	case Berry:
		return "#FFB6C1"
	}
	return "#FF1493"
}

// Scale returns the heart's draw scale.
func (k ItemKind) Scale() float64 {
	switch k {
	case Orange:
		return 0.85
	case Berry:
		return 0.7
	}
	return 1.0
}

// Item is a heart lying in the world.
type Item struct {
	Pos  geom.Point
	Kind ItemKind
	Size float64
	Bob  float64
}

// NewItem places an item of a random kind at pos.
func NewItem(rng *rand.Rand, pos geom.Point, size float64) *Item {
	return &Item{
		Pos:  pos,
		Kind: ItemKind(rng.Intn(len(itemKindNames))),
		Size: size,
		Bob:  rng.Float64() * 2 * math.Pi,
	}
}

// Rect returns the item bounds.
func (i *Item) Rect() geom.Rect {
	return geom.RectAt(i.Pos, i.Size, i.Size)
}

// Update advances the bob animation.
func (i *Item) Update(f clock.Frame) {
	i.Bob += 0.05 * f.Steps()
}

// Touches reports whether the player is close enough to eat the item.
func (i *Item) Touches(p *Player, radius float64) bool {
	return geom.Dist(i.Rect().Center(), p.Center()) < radius
}
