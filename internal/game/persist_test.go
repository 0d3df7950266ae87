package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/render"
	"chosenoffset.com/cattown/internal/save"
)

var saveTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// busy puts a state into a night with something in every collection.
func busy(t *testing.T, h *harness) {
	t.Helper()
	s := h.s
	h.step(10)

	s.Clock.Restore(40*time.Second, true)
	s.Sky = clock.Tick{TimeOfDay: s.Clock.TimeOfDay(), IsNight: true}
	s.Fireflies.OnTransition(clock.ToNight)
	require.NotZero(t, s.Fireflies.Len())

	s.GainXP(150)
	s.Jar.Set(17)
	s.Cash = 240
	s.Player.ActivateBoost(s.Session.Now(), 5*time.Second, 1.5, "#FF6B6B")
	s.Camera = Camera{X: 120, Y: 340}

	s.Chain.Append(h.companion(), h.companion())
	s.Dropped = append(s.Dropped,
		entity.Drop(h.companion()),
		entity.DropInHouse(h.companion(), s.Village.Buildings[0].ID, geom.Point{X: 200, Y: 220}))

	s.Chests[0].HitCount = 2
	s.Chests[1].Opened = true

	b := s.Village.Buildings[0]
	_, err := s.Furniture.Place(b.ID, "bed", geom.Point{X: 300, Y: 300})
	require.NoError(t, err)
	s.Furniture.Style("lamp").Hue = 120
	s.Furniture.Style("rug").Rotation = 270
}

func TestSnapshotApplySnapshotIsStable(t *testing.T) {
	src := newHarness(t, 21)
	busy(t, src)
	first := src.s.Snapshot(saveTime, nil)

	dst := newHarness(t, 99)
	require.NoError(t, dst.s.Apply(first))
	second := dst.s.Snapshot(saveTime, nil)

	assert.Equal(t, first, second)
}

func TestLoadedChestKeepsItsTier(t *testing.T) {
	h := newHarness(t, 21)
	doc := h.s.Snapshot(saveTime, nil)
	near := h.s.Village.Landmark()
	doc.Chests = []save.Chest{{X: near.X, Y: near.Y, Tier: 3, Color: "red", SizeMultiplier: 2.4, FireflyCost: 20, CompanionCount: 4}}

	require.NoError(t, h.s.Apply(doc))
	require.Len(t, h.s.Chests, 1)
	c := h.s.Chests[0]
	assert.Equal(t, 3, c.Tier.Index)
	assert.Equal(t, 20, c.Cost())
	assert.Equal(t, "red", c.Tier.Color)
	assert.Equal(t, 2.4, c.Size)
	assert.Equal(t, 4, c.CompanionCount)
}

func TestFailedApplyLeavesStateUntouched(t *testing.T) {
	h := newHarness(t, 21)
	h.s.Cash = 7
	chests := h.s.Chests
	pos := h.s.Player.Pos

	doc := h.s.Snapshot(saveTime, nil)
	doc.CatCash = 999
	doc.HouseFurniture = map[string][]save.Furniture{"house_1": {{ID: "not-a-ulid", Type: "bed"}}}
	assert.ErrorIs(t, h.s.Apply(doc), save.ErrMalformed)

	doc = h.s.Snapshot(saveTime, nil)
	doc.CatCash = 999
	doc.IsInsideHouse = true
	doc.CurrentHouseID = "nowhere"
	assert.ErrorIs(t, h.s.Apply(doc), save.ErrMalformed)

	doc = h.s.Snapshot(saveTime, nil)
	doc.Version = ""
	assert.ErrorIs(t, h.s.Apply(doc), save.ErrMissingVersion)

	assert.Equal(t, 7, h.s.Cash)
	assert.Equal(t, chests, h.s.Chests)
	assert.Equal(t, pos, h.s.Player.Pos)
}

func TestSaveAndLoadKeys(t *testing.T) {
	h := newHarness(t, 23)
	h.s.Cash = 42
	h.press(render.KeyF5)
	assert.Equal(t, "Game saved", h.lastMessage())

	files, err := filepath.Glob(filepath.Join(h.g.SaveDir, "cattown_save_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	h.s.Cash = 0
	h.press(render.KeyF9)
	assert.Equal(t, "Game loaded", h.lastMessage())
	assert.Equal(t, 42, h.s.Cash)
}

func TestLoadWithoutSave(t *testing.T) {
	h := newHarness(t, 23)
	h.press(render.KeyF9)
	assert.Equal(t, "No saved game found", h.lastMessage())
}

func TestLoadCorruptSaveKeepsGame(t *testing.T) {
	h := newHarness(t, 23)
	h.s.Cash = 5
	path := filepath.Join(h.g.SaveDir, save.FileName(saveTime))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	h.g.Load()
	assert.Equal(t, "Load failed", h.lastMessage())
	assert.Equal(t, 5, h.s.Cash)
}

func TestLoadInsideHouseReentersAtDoor(t *testing.T) {
	h := newHarness(t, 25)
	b := h.s.Village.Buildings[1]
	outside := h.s.Player.Pos
	h.g.enterHouse(b)
	h.g.Save()
	h.g.exitHouse(h.s.Session.Now())
	h.s.Player.Pos = geom.Point{X: 5, Y: 5}

	h.g.Load()
	require.True(t, h.s.Indoors)
	assert.Equal(t, b.ID, h.s.HouseID)
	assert.Equal(t, outside, h.s.OutdoorPos)
	assert.Equal(t, h.g.doorSpawn(), h.s.Player.Pos)
	assert.NotNil(t, h.g.Editor)
}
