package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/cattown/internal/assets"
	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/entity"
)

func (h *harness) draw() {
	h.r.texts = nil
	h.r.shapes = 0
	h.g.Draw(&fakeImage{w: h.g.ScreenWidth, h: h.g.ScreenHeight})
}

func TestDrawVillageBalancesTransforms(t *testing.T) {
	h := newHarness(t, 31)
	h.step(1)
	h.draw()
	assert.Zero(t, h.r.depth)
	assert.Positive(t, h.r.shapes)
	assert.Contains(t, h.r.texts, "Level 1")
	assert.Contains(t, h.r.texts, "Day")

	h.g.Minimap.Toggle()
	h.s.Clock.Restore(40*time.Second, false)
	h.step(1)
	assert.True(t, h.s.Sky.IsNight)
	h.draw()
	assert.Zero(t, h.r.depth)
	assert.Contains(t, h.r.texts, "Night")
	assert.Contains(t, h.r.texts, "[x] Trees")
}

func TestDrawInterior(t *testing.T) {
	h := newHarness(t, 31)
	h.g.enterHouse(h.s.Village.Buildings[0])
	h.g.Editor.Choose("bed")
	h.step(1)
	h.draw()
	assert.Zero(t, h.r.depth)
	assert.Contains(t, h.r.texts, "Press E to Exit")
	assert.Contains(t, h.r.texts, "Furniture Shop")
	assert.Contains(t, h.r.texts, "Press E to exit")
}

func TestFireflyHueCacheClearsAtDawn(t *testing.T) {
	h := newHarness(t, 33)
	h.g.hue(42)
	assert.NotEmpty(t, h.g.hueCache)
	h.s.Fireflies.OnTransition(clock.ToDay)
	assert.Empty(t, h.g.hueCache)
}

func TestPlayerSprite(t *testing.T) {
	p := &entity.Player{IsCat: true, State: entity.Idle}
	assert.Equal(t, assets.Cat, PlayerSprite(p))
	p.State = entity.Sleep
	assert.Equal(t, assets.CatSleeping, PlayerSprite(p))
	p.State, p.WalkFrame = entity.Moving, 1
	assert.Equal(t, assets.CatWalking2, PlayerSprite(p))

	p.IsCat, p.Moving = false, true
	assert.Equal(t, assets.GirlWalking2, PlayerSprite(p))
	p.Moving = false
	assert.Equal(t, assets.GirlWalking1, PlayerSprite(p))
}
