// Package loot holds the chest tier table: how far a chest sits from the
// fountain decides what it costs, how big it is and how many companions it frees.
package loot

import (
	"math"
	"math/rand"

	"chosenoffset.com/cattown/internal/simulation"
)

// Tier describes everything that follows from a chest's tier index.
type Tier struct {
	Index int
	simulation.TierConfig
}

// Table is the ordered list of tiers with the distance step between them.
type Table struct {
	Step  float64
	Tiers []Tier
}

// NewTable builds a table from config.
func NewTable(cfg simulation.ChestConfig) *Table {
	t := &Table{Step: cfg.TierStep, Tiers: make([]Tier, len(cfg.Tiers))}
	for i, tc := range cfg.Tiers {
		t.Tiers[i] = Tier{Index: i, TierConfig: tc}
	}
	return t
}

// Max returns the highest tier index.
func (t *Table) Max() int {
	return len(t.Tiers) - 1
}

// TierForDistance buckets a distance from the landmark into a tier index:
// min(floor(d/step), max).
func (t *Table) TierForDistance(d float64) int {
	if d <= 0 || t.Step <= 0 {
		return 0
	}
	tier := int(math.Floor(d / t.Step))
	if tier > t.Max() {
		return t.Max()
	}
	return tier
}

// Get returns the tier row for an index, clamped into range.
func (t *Table) Get(index int) Tier {
	if index < 0 {
		index = 0
	}
	if index > t.Max() {
		index = t.Max()
	}
	return t.Tiers[index]
}

// RollSize picks the chest size multiplier. Tier rows with zero jitter are exact.
func (t Tier) RollSize(rng *rand.Rand) float64 {
	if t.SizeJitter == 0 {
		return t.SizeBase
	}
	return t.SizeBase + (rng.Float64()-0.5)*2*t.SizeJitter*t.SizeBase
}

// RollCompanions picks how many companions the chest releases.
func (t Tier) RollCompanions(rng *rand.Rand) int {
	if t.MaxCompanions <= t.MinCompanions {
		return t.MinCompanions
	}
	return t.MinCompanions + rng.Intn(t.MaxCompanions-t.MinCompanions+1)
}

// RollArcSpeed picks a launch speed for one spawn arc.
func (t Tier) RollArcSpeed(rng *rand.Rand) float64 {
	return t.ArcSpeedMin + rng.Float64()*(t.ArcSpeedMax-t.ArcSpeedMin)
}

// ShouldSpawn rolls the tier's spawn probability for a valid position.
func (t Tier) ShouldSpawn(rng *rand.Rand) bool {
	return rng.Float64() < t.SpawnProbability
}

// Separation returns the minimum distance between two chests of the given
// tiers. Two basic chests may sit closer together than any other pair.
func Separation(cfg simulation.ChestConfig, a, b int) float64 {
	if a == 0 && b == 0 {
		return cfg.BasicPairGap
	}
	return cfg.PairGap
}

// CashReward returns the cat cash awarded for freeing count companions.
// One roll is made and scaled by the count.
func CashReward(cfg simulation.ChestConfig, count int, rng *rand.Rand) int {
	per := cfg.CashMin
	if cfg.CashSpread > 0 {
		per += rng.Intn(cfg.CashSpread)
	}
	return per * count
}
