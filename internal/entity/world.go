// Package entity defines the things that live in the world and how each of
// them changes from one frame to the next. Entities never draw themselves and
// never reach for global state: everything an update needs is passed in.
package entity

import "chosenoffset.com/cattown/internal/core/geom"

// PlayerHouseID names the one building that belongs to the player.
const PlayerHouseID = "player_house"

// Building is a house in the village.
type Building struct {
	ID        string    `json:"id"`
	Rect      geom.Rect `json:"rect"`
	HouseType int       `json:"houseType"`
}

// IsPlayerHouse reports whether b is the player's own home.
func (b Building) IsPlayerHouse() bool {
	return b.ID == PlayerHouseID
}

// Tree is anchored at the bottom centre of its trunk.
type Tree struct {
	Base  geom.Point `json:"base"`
	W     float64    `json:"w"`
	H     float64    `json:"h"`
	Trunk float64    `json:"trunk"`
	Type  int        `json:"type"`
}

// Bounds returns the full sprite rectangle.
func (t Tree) Bounds() geom.Rect {
	return geom.Rect{X: t.Base.X - t.W/2, Y: t.Base.Y - t.H, W: t.W, H: t.H}
}

// TrunkBox is the only part of a tree that blocks movement.
func (t Tree) TrunkBox() geom.Rect {
	w := t.W / 3
	return geom.Rect{X: t.Base.X - w/2, Y: t.Base.Y - t.Trunk, W: w, H: t.Trunk}
}

// Fountain is the landmark at the centre of the village.
type Fountain struct {
	Rect geom.Rect `json:"rect"`
}

// Center returns the landmark point used for tier distances and teleports.
func (f Fountain) Center() geom.Point {
	return f.Rect.Center()
}

// Geometry is the static world the player collides with. A nil *Geometry
// collides with nothing.
type Geometry struct {
	Buildings []Building
	Trees     []Tree
}
