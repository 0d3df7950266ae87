package interaction

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/loot"
	"chosenoffset.com/cattown/internal/progress"
	"chosenoffset.com/cattown/internal/simulation"
)

type fixture struct {
	cfg    *simulation.Config
	player *entity.Player
	table  *loot.Table
	jar    *progress.Jar
}

func newFixture() *fixture {
	cfg := simulation.DefaultConfig()
	p := entity.NewPlayer(geom.Point{X: 976, Y: 968}, cfg.Player) // centre (1000, 1000)
	return &fixture{cfg: cfg, player: p, table: loot.NewTable(cfg.Chests), jar: progress.NewJar(999)}
}

// chestAt builds a chest whose centre is at c.
func (f *fixture) chestAt(tier int, c geom.Point) *entity.Chest {
	ch := entity.NewChest(rand.New(rand.NewSource(1)), geom.Point{}, f.table.Get(tier), f.cfg.Chests)
	r := ch.Rect()
	ch.Pos = geom.Point{X: c.X - r.W/2, Y: c.Y - r.H/2}
	return ch
}

func buildingAt(id string, c geom.Point) entity.Building {
	return entity.Building{ID: id, Rect: geom.Rect{X: c.X - 80, Y: c.Y - 70, W: 160, H: 140}}
}

func TestChestBeatsBuildingAtEqualDistance(t *testing.T) {
	f := newFixture()
	r := NewResolver(f.cfg.Interaction)

	chest := f.chestAt(0, geom.Point{X: 1060, Y: 1000})
	house := buildingAt("house_0", geom.Point{X: 940, Y: 1000})

	for i := 0; i < 10; i++ {
		s := Scene{Player: f.player, Chests: []*entity.Chest{chest}, Buildings: []entity.Building{house}, Jar: f.jar}
		got, ok := r.Resolve(s)
		require.True(t, ok)
		assert.Equal(t, OpenChest, got.Kind)
		assert.Same(t, chest, got.Chest)
	}
	assert.Len(t, r.Candidates(Scene{Player: f.player, Chests: []*entity.Chest{chest}, Buildings: []entity.Building{house}, Jar: f.jar}), 2)
}

func TestNearestWinsWithinPriority(t *testing.T) {
	f := newFixture()
	r := NewResolver(f.cfg.Interaction)
	far := f.chestAt(0, geom.Point{X: 1070, Y: 1000})
	near := f.chestAt(0, geom.Point{X: 1000, Y: 1030})

	got, ok := r.Resolve(Scene{Player: f.player, Chests: []*entity.Chest{far, near}, Jar: f.jar})
	require.True(t, ok)
	assert.Same(t, near, got.Chest)
}

func TestUnaffordableAndOpenedChestsAreSkipped(t *testing.T) {
	f := newFixture()
	r := NewResolver(f.cfg.Interaction)
	pricey := f.chestAt(2, geom.Point{X: 1010, Y: 1000})
	opened := f.chestAt(0, geom.Point{X: 1000, Y: 1010})
	opened.Opened = true
	house := buildingAt("house_1", geom.Point{X: 1100, Y: 1000})

	got, ok := r.Resolve(Scene{Player: f.player, Chests: []*entity.Chest{pricey, opened}, Buildings: []entity.Building{house}, Jar: f.jar})
	require.True(t, ok)
	assert.Equal(t, EnterBuilding, got.Kind)
	assert.Equal(t, "house_1", got.Building.ID)
}

func TestNothingInRange(t *testing.T) {
	f := newFixture()
	r := NewResolver(f.cfg.Interaction)
	far := f.chestAt(0, geom.Point{X: 2000, Y: 2000})

	_, ok := r.Resolve(Scene{Player: f.player, Chests: []*entity.Chest{far}, Jar: f.jar})
	assert.False(t, ok)
}

func TestExitCooldownBlocksReentry(t *testing.T) {
	f := newFixture()
	r := NewResolver(f.cfg.Interaction)
	house := buildingAt(entity.PlayerHouseID, geom.Point{X: 1000, Y: 1100})
	s := Scene{
		Player:    f.player,
		Buildings: []entity.Building{house},
		Jar:       f.jar,
		Now:       10 * time.Second,
		LastExit:  10*time.Second - 400*time.Millisecond,
		HasExit:   true,
	}
	_, ok := r.Resolve(s)
	assert.False(t, ok)

	s.Now += 200 * time.Millisecond
	got, ok := r.Resolve(s)
	require.True(t, ok)
	assert.Equal(t, "Press E to enter your house", got.Description())
}

func TestIndoorsAlwaysExits(t *testing.T) {
	f := newFixture()
	r := NewResolver(f.cfg.Interaction)
	chest := f.chestAt(0, geom.Point{X: 1000, Y: 1000})

	got, ok := r.Resolve(Scene{Player: f.player, Chests: []*entity.Chest{chest}, Jar: f.jar, Indoors: true})
	require.True(t, ok)
	assert.Equal(t, ExitBuilding, got.Kind)
}
