// Package follow moves companions as an ordered chain behind the player.
//
// The first companion trails the player and every later one trails the
// companion directly ahead of it. Members are updated strictly in index
// order within a frame, so each reads its leader's position after the leader
// has already moved.
package follow

import (
	"math"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/simulation"
)

// Chain is the ordered sequence of companions following the player.
type Chain struct {
	members []*entity.Companion
	cfg     simulation.CompanionConfig
}

// New creates an empty chain.
func New(cfg simulation.CompanionConfig) *Chain {
	return &Chain{cfg: cfg}
}

// Append adds companions at the tail in the given order.
func (ch *Chain) Append(cs ...*entity.Companion) {
	ch.members = append(ch.members, cs...)
}

// Len returns the number of members.
func (ch *Chain) Len() int {
	return len(ch.members)
}

// At returns the member at index i.
func (ch *Chain) At(i int) *entity.Companion {
	return ch.members[i]
}

// Members returns the chain in order. The slice must not be modified.
func (ch *Chain) Members() []*entity.Companion {
	return ch.members
}

// PopTail removes and returns the last member.
func (ch *Chain) PopTail() (*entity.Companion, bool) {
	n := len(ch.members)
	if n == 0 {
		return nil, false
	}
	c := ch.members[n-1]
	ch.members[n-1] = nil
	ch.members = ch.members[:n-1]
	return c, true
}

// Reset replaces the whole chain, used when loading a save.
func (ch *Chain) Reset(cs []*entity.Companion) {
	ch.members = append(ch.members[:0:0], cs...)
}

// Leader returns the position member i follows and how far behind it stays.
func (ch *Chain) Leader(i int, player *entity.Player) (geom.Point, float64) {
	if i == 0 {
		return player.Pos, ch.cfg.LeadDistance
	}
	return ch.members[i-1].Pos, ch.cfg.LinkDistance
}

// Update moves every member for one frame, in chain order.
func (ch *Chain) Update(f clock.Frame, player *entity.Player) {
	asleep := player.Asleep()
	for i, c := range ch.members {
		if c.StepArc(f, ch.cfg.Gravity, ch.cfg.Damping) {
			continue
		}
		if asleep {
			c.MoveToward(c.Target, c.Speed*ch.cfg.RingSpeed, ch.cfg.RingThreshold, f)
			c.Animate(f)
			continue
		}

		leader, keep := ch.Leader(i, player)
		d := geom.Dist(c.Pos, leader)
		if !c.Joined {
			if d <= keep+ch.cfg.JoinSlack {
				c.Joined = true
			} else {
				approach(c, leader, c.Speed*ch.cfg.CatchUp, 0, f)
			}
		} else if d > keep {
			approach(c, leader, c.Speed, keep, f)
		}
		c.Animate(f)
	}
}

// approach moves c towards leader but never closer than keep.
func approach(c *entity.Companion, leader geom.Point, speed, keep float64, f clock.Frame) {
	d := geom.Dist(c.Pos, leader)
	step := math.Min(speed*f.Seconds(), d-keep)
	if step <= 0 {
		return
	}
	c.Pos = c.Pos.Add(geom.Polar(geom.Angle(c.Pos, leader), step))
}

// FormRing gives every member a target evenly spaced on a circle around
// center. Members walk there while the player sleeps.
func (ch *Chain) FormRing(center geom.Point) {
	for i, c := range ch.members {
		c.Target = ch.ringPoint(center, i)
	}
}

// PlaceRing puts every member directly on the ring, used after a teleport.
func (ch *Chain) PlaceRing(center geom.Point) {
	for i, c := range ch.members {
		p := ch.ringPoint(center, i)
		c.Pos = p
		c.Target = p
	}
}

func (ch *Chain) ringPoint(center geom.Point, i int) geom.Point {
	a := float64(i) / float64(len(ch.members)) * 2 * math.Pi
	return center.Add(geom.Polar(a, ch.cfg.RingRadius))
}
