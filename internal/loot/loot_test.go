package loot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/cattown/internal/simulation"
)

func newTable() *Table {
	return NewTable(simulation.DefaultConfig().Chests)
}

func TestTierForDistance(t *testing.T) {
	table := newTable()

	cases := []struct {
		d    float64
		want int
	}{
		{0, 0},
		{1999.9, 0},
		{2000, 1},
		{3999, 1},
		{4000, 2},
		{6500, 3},
		{8000, 4},
		{50000, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, table.TierForDistance(tc.d), "distance %.1f", tc.d)
	}
}

func TestTierIsMonotonic(t *testing.T) {
	table := newTable()
	prev := table.TierForDistance(0)
	for d := 0.0; d < 20000; d += 37.5 {
		tier := table.TierForDistance(d)
		assert.GreaterOrEqual(t, tier, prev, "distance %.1f", d)
		prev = tier
	}
}

func TestRollSize(t *testing.T) {
	table := newTable()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		assert.Equal(t, 1.0, table.Get(0).RollSize(rng))

		s := table.Get(4).RollSize(rng)
		assert.InDelta(t, 3.0, s, 0.3+1e-9)
	}
}

func TestRollCompanionsRange(t *testing.T) {
	table := newTable()
	rng := rand.New(rand.NewSource(7))

	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		n := table.Get(4).RollCompanions(rng)
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 7)
		seen[n] = true

		assert.Equal(t, 1, table.Get(2).RollCompanions(rng))
	}
	assert.Len(t, seen, 5)
}

func TestSeparation(t *testing.T) {
	cfg := simulation.DefaultConfig().Chests
	assert.Equal(t, 350.0, Separation(cfg, 0, 0))
	assert.Equal(t, 500.0, Separation(cfg, 0, 1))
	assert.Equal(t, 500.0, Separation(cfg, 3, 4))
}

func TestCashReward(t *testing.T) {
	cfg := simulation.DefaultConfig().Chests
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		cash := CashReward(cfg, 3, rng)
		assert.GreaterOrEqual(t, cash, 45)
		assert.LessOrEqual(t, cash, 72)
	}
}
