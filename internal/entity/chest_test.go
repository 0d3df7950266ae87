package entity

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/loot"
	"chosenoffset.com/cattown/internal/progress"
	"chosenoffset.com/cattown/internal/simulation"
)

func openRules() OpenRules {
	cfg := simulation.DefaultConfig()
	return OpenRules{Companion: cfg.Companion, Chests: cfg.Chests, Particles: cfg.Particles}
}

func newChest(t *testing.T, tier int, seed int64) *Chest {
	t.Helper()
	cfg := simulation.DefaultConfig()
	table := loot.NewTable(cfg.Chests)
	return NewChest(rand.New(rand.NewSource(seed)), geom.Point{X: 500, Y: 500}, table.Get(tier), cfg.Chests)
}

func TestOpenDeductsAndReleases(t *testing.T) {
	c := newChest(t, 1, 1)
	jar := progress.NewJar(999)
	jar.Add(12)

	op, ok := c.Open(jar, openRules(), time.Second, rand.New(rand.NewSource(2)))
	require.True(t, ok)

	assert.True(t, c.Opened)
	assert.Equal(t, 7, jar.Count())
	assert.Len(t, op.Companions, 1)
	assert.Equal(t, 25, op.XP)
	assert.GreaterOrEqual(t, op.Cash, 15)
	assert.LessOrEqual(t, op.Cash, 24)

	comp := op.Companions[0]
	assert.True(t, comp.Spawning())
	assert.False(t, comp.Joined)
	assert.Equal(t, 1.25, comp.Size)
	assert.Less(t, comp.Vel.Y, 0.0, "spawn arc launches upward")
}

func TestOpenIsAtMostOnce(t *testing.T) {
	c := newChest(t, 0, 1)
	jar := progress.NewJar(999)
	jar.Add(3)
	rules := openRules()
	rng := rand.New(rand.NewSource(4))

	_, ok := c.Open(jar, rules, 0, rng)
	require.True(t, ok)

	op, ok := c.Open(jar, rules, 0, rng)
	assert.False(t, ok)
	assert.Nil(t, op)
	assert.Equal(t, 3, jar.Count())
	assert.True(t, c.Opened)
}

func TestOpenFailsWhenShort(t *testing.T) {
	c := newChest(t, 4, 1)
	jar := progress.NewJar(999)
	jar.Add(49)

	op, ok := c.Open(jar, openRules(), 0, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
	assert.Nil(t, op)
	assert.False(t, c.Opened)
	assert.Equal(t, 49, jar.Count())
	assert.False(t, c.CanOpen(jar))
}

func TestTopTierBurstWaves(t *testing.T) {
	c := newChest(t, 4, 9)
	jar := progress.NewJar(999)
	jar.Add(50)

	op, ok := c.Open(jar, openRules(), 0, rand.New(rand.NewSource(3)))
	require.True(t, ok)

	require.Len(t, op.Bursts, 4)
	delays := []time.Duration{0, 150 * time.Millisecond, 300 * time.Millisecond, 500 * time.Millisecond}
	counts := []int{90, 40, 30, 20}
	for i, b := range op.Bursts {
		assert.Equal(t, delays[i], b.Delay)
		assert.Len(t, b.Particles, counts[i])
	}
	assert.GreaterOrEqual(t, len(op.Companions), 3)
	assert.LessOrEqual(t, len(op.Companions), 7)
	assert.Equal(t, c.CompanionCount, len(op.Companions))
}

func TestSingleBurstTiers(t *testing.T) {
	cases := map[int]int{0: 25, 3: 45}
	for tier, want := range cases {
		c := newChest(t, tier, 1)
		jar := progress.NewJar(999)
		jar.Add(100)
		op, ok := c.Open(jar, openRules(), 0, rand.New(rand.NewSource(1)))
		require.True(t, ok)
		require.Len(t, op.Bursts, 1)
		assert.Len(t, op.Bursts[0].Particles, want, "tier %d", tier)
	}
}

func TestStrikeOpensOnlyFreeChests(t *testing.T) {
	free := newChest(t, 0, 1)
	assert.False(t, free.Strike(3))
	assert.False(t, free.Strike(3))
	assert.True(t, free.Strike(3))

	paid := newChest(t, 2, 1)
	for i := 0; i < 5; i++ {
		assert.False(t, paid.Strike(3))
	}
	assert.Equal(t, 5, paid.HitCount)
}

func TestRestoreChestKeepsTierFields(t *testing.T) {
	cfg := simulation.DefaultConfig()
	table := loot.NewTable(cfg.Chests)
	// a tier 3 chest restored right next to the fountain stays tier 3
	c := RestoreChest(geom.Point{X: 1, Y: 1}, table.Get(3), 2.61, 4, false, cfg.Chests)
	assert.Equal(t, 3, c.Tier.Index)
	assert.Equal(t, 20, c.Cost())
	assert.Equal(t, 2.61, c.Size)
	assert.InDelta(t, 72*2.61, c.Rect().W, 1e-9)
}

func TestChestInRangeScalesWithSize(t *testing.T) {
	c := newChest(t, 0, 1)
	p := newPlayer()
	p.Pos = c.Center().Sub(geom.Point{X: p.W / 2, Y: p.H/2 - 79})
	assert.True(t, c.InRange(p, 80))

	p.Pos.Y += 2
	assert.False(t, c.InRange(p, 80))
}
