package entity

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/simulation"
)

func TestProjectileHomesOnFirefly(t *testing.T) {
	cfg := simulation.DefaultConfig()
	ff := &Firefly{Pos: geom.Point{X: 200, Y: 100}, Size: 32, XP: 10}
	p := NewProjectile(geom.Point{}, geom.Point{X: 1}, 0, cfg.Projectile)
	p.Firefly = ff
	s := clock.NewSession()

	out := Flying
	for i := 0; i < 200 && out == Flying; i++ {
		out = p.Update(s.Step(16*time.Millisecond), true, cfg.Projectile.HitRadius)
	}
	assert.Equal(t, HitFirefly, out)
}

func TestProjectileIgnoresChestAtNight(t *testing.T) {
	cfg := simulation.DefaultConfig()
	c := RestoreChest(geom.Point{X: 0, Y: 300}, newChest(t, 0, 1).Tier, 1, 1, false, cfg.Chests)
	p := NewProjectile(geom.Point{}, geom.Point{X: 1}, 0, cfg.Projectile)
	p.Chest = c
	s := clock.NewSession()

	out := Flying
	for i := 0; i < 200 && out == Flying; i++ {
		out = p.Update(s.Step(16*time.Millisecond), true, cfg.Projectile.HitRadius)
	}
	assert.Equal(t, Expired, out)
	assert.Greater(t, p.Pos.X, 900.0, "flew straight along its launch angle")
}

func TestProjectileSkipsGoneFirefly(t *testing.T) {
	cfg := simulation.DefaultConfig()
	ff := &Firefly{Pos: geom.Point{X: 10}, Gone: true}
	p := NewProjectile(geom.Point{}, geom.Point{Y: 1}, 0, cfg.Projectile)
	p.Firefly = ff

	out := p.Update(clock.NewSession().Step(16*time.Millisecond), true, cfg.Projectile.HitRadius)
	assert.Equal(t, Flying, out)
}

func TestFireflyHitTurnsRainbow(t *testing.T) {
	ff := &Firefly{Size: 32, XP: 10}
	for i := 0; i < 5; i++ {
		ff.Hit(64)
	}
	assert.Equal(t, 300.0, ff.Hue)
	assert.False(t, ff.Rainbow)

	ff.Hit(64)
	assert.True(t, ff.Rainbow)
	assert.Zero(t, ff.Hue)
	assert.Equal(t, 56.0, ff.Size)
	assert.Equal(t, 40, ff.XP)

	for i := 0; i < 5; i++ {
		ff.Hit(64)
	}
	assert.Equal(t, 64.0, ff.Size)
}

func TestFireflyWrapsAtWorldEdge(t *testing.T) {
	ff := &Firefly{Pos: geom.Point{X: 1, Y: 50}, Drift: geom.Point{X: -60}}
	ff.Update(clock.NewSession().Step(100*time.Millisecond), 1000, 1000)
	assert.Equal(t, 1000.0, ff.Pos.X)
}

func TestNewFireflyInsideWorld(t *testing.T) {
	cfg := simulation.DefaultConfig().Fireflies
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		ff := NewFirefly(rng, 800, 600, cfg)
		assert.True(t, geom.Rect{W: 800, H: 600}.Contains(ff.Pos))
		assert.LessOrEqual(t, ff.Drift.X, cfg.Drift)
		assert.Equal(t, 10, ff.XP)
	}
}

func TestParticlesDecay(t *testing.T) {
	cfg := simulation.DefaultConfig().Particles
	rng := rand.New(rand.NewSource(1))
	ps := OmniBurst(rng, geom.Point{}, 10, cfg)
	s := clock.NewSession()

	ps = UpdateParticles(ps, s.Step(16*time.Millisecond), cfg)
	assert.Len(t, ps, 10)

	for i := 0; i < 60; i++ {
		ps = UpdateParticles(ps, s.Step(16*time.Millisecond), cfg)
	}
	assert.Empty(t, ps)
}
