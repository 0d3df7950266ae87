// Package interaction decides what the action key does. Every eligible
// target in range becomes a candidate and exactly one candidate wins.
package interaction

import (
	"sort"
	"time"

	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/progress"
	"chosenoffset.com/cattown/internal/simulation"
)

// Kind is what an interaction does when chosen.
type Kind int

const (
	OpenChest Kind = iota
	EnterBuilding
	ExitBuilding
)

func (k Kind) String() string {
	switch k {
	case OpenChest:
		return "open_chest"
	case EnterBuilding:
		return "enter_building"
	case ExitBuilding:
		return "exit_building"
	}
	return "unknown"
}

// Priorities: lower wins.
const (
	PriorityExit     = 0
	PriorityChest    = 1
	PriorityBuilding = 2
)

// Candidate is one eligible interaction.
type Candidate struct {
	Kind     Kind
	Priority int
	Distance float64
	Chest    *entity.Chest
	Building *entity.Building

	order int // input order, breaks exact ties deterministically
}

// Description is the prompt shown to the player.
func (c Candidate) Description() string {
	switch c.Kind {
	case OpenChest:
		return "Press E to open"
	case EnterBuilding:
		if c.Building != nil && c.Building.IsPlayerHouse() {
			return "Press E to enter your house"
		}
		return "Press E to enter"
	case ExitBuilding:
		return "Press E to exit"
	}
	return ""
}

// Scene is what the resolver looks at.
type Scene struct {
	Player    *entity.Player
	Chests    []*entity.Chest
	Buildings []entity.Building
	Jar       *progress.Jar

	Indoors  bool
	Now      time.Duration
	LastExit time.Duration
	HasExit  bool // whether LastExit is meaningful
}

// Resolver collects and ranks candidates.
type Resolver struct {
	cfg simulation.InteractionConfig
}

// NewResolver creates a resolver.
func NewResolver(cfg simulation.InteractionConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// Candidates lists every eligible interaction, best first.
func (r *Resolver) Candidates(s Scene) []Candidate {
	if s.Indoors {
		return []Candidate{{Kind: ExitBuilding, Priority: PriorityExit}}
	}
	if s.Player == nil {
		return nil
	}

	center := s.Player.Center()
	var out []Candidate
	for _, c := range s.Chests {
		if c.Opened || !c.CanOpen(s.Jar) || !c.InRange(s.Player, r.cfg.ChestRange) {
			continue
		}
		out = append(out, Candidate{
			Kind:     OpenChest,
			Priority: PriorityChest,
			Distance: geom.Dist(center, c.Center()),
			Chest:    c,
			order:    len(out),
		})
	}

	cooling := s.HasExit && s.Now-s.LastExit <= r.cfg.ExitCooldown.Duration()
	if !cooling {
		for i := range s.Buildings {
			b := &s.Buildings[i]
			d := geom.Dist(center, b.Rect.Center())
			if d >= r.cfg.BuildingRange {
				continue
			}
			out = append(out, Candidate{
				Kind:     EnterBuilding,
				Priority: PriorityBuilding,
				Distance: d,
				Building: b,
				order:    len(out),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.order < b.order
	})
	return out
}

// Resolve returns the winning candidate, if any.
func (r *Resolver) Resolve(s Scene) (Candidate, bool) {
	cs := r.Candidates(s)
	if len(cs) == 0 {
		return Candidate{}, false
	}
	return cs[0], true
}
