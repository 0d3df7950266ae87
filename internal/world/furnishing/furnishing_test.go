package furnishing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/cattown/internal/core/geom"
)

func newLayout() *Layout {
	return NewLayout(DefaultCatalog(), rand.New(rand.NewSource(1)))
}

func TestPlaceCentersOnPointer(t *testing.T) {
	l := newLayout()
	l.Style("bed").Hue = 120
	l.Style("bed").Rotation = 90

	p, err := l.Place("house_0", "bed", geom.Point{X: 200, Y: 300})
	require.NoError(t, err)

	assert.Equal(t, geom.Point{X: 160, Y: 250}, p.Pos)
	assert.Equal(t, 120.0, p.Hue)
	assert.Equal(t, 90, p.Rotation)
	assert.Equal(t, 1.0, p.Size)
	assert.Len(t, l.Furniture("house_0"), 1)
	assert.Empty(t, l.Furniture("house_1"))

	_, err = l.Place("house_0", "throne", geom.Point{})
	assert.Error(t, err)
}

func TestIDsAreUniqueAndOrdered(t *testing.T) {
	l := newLayout()
	a, err := l.Place("h", "chair", geom.Point{})
	require.NoError(t, err)
	b, err := l.Place("h", "chair", geom.Point{})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, -1, a.ID.Compare(b.ID))
}

func TestHitTestTopmostAndScaled(t *testing.T) {
	l := newLayout()
	under, _ := l.Place("h", "rug", geom.Point{X: 100, Y: 100})
	over, _ := l.Place("h", "chair", geom.Point{X: 100, Y: 100})

	assert.Same(t, over, l.HitTest("h", geom.Point{X: 100, Y: 100}))
	// outside the chair's scaled box (60x60) but inside the rug's (150x120)
	assert.Same(t, under, l.HitTest("h", geom.Point{X: 160, Y: 100}))
	assert.Nil(t, l.HitTest("h", geom.Point{X: 500, Y: 500}))
}

func TestRemove(t *testing.T) {
	l := newLayout()
	a, _ := l.Place("h", "lamp", geom.Point{})
	b, _ := l.Place("h", "plant", geom.Point{})

	assert.True(t, l.Remove("h", a.ID))
	assert.False(t, l.Remove("h", a.ID))
	require.Len(t, l.Furniture("h"), 1)
	assert.Same(t, b, l.Furniture("h")[0])
}

func TestEditorFlow(t *testing.T) {
	l := newLayout()
	e := NewEditor(l, "house_2")

	e.Choose("table")
	e.Rotate()
	e.Click(geom.Point{X: 300, Y: 300})
	require.Len(t, l.Furniture("house_2"), 1)
	placed := l.Furniture("house_2")[0]
	assert.Equal(t, 90, placed.Rotation)
	assert.Equal(t, "", e.Placing)
	assert.Equal(t, 0, l.Style("table").Rotation, "rotation resets after placing")

	e.Click(geom.Point{X: 300, Y: 300})
	assert.Same(t, placed, e.Picked)

	e.Rotate()
	assert.Equal(t, 180, placed.Rotation)

	e.Press(geom.Point{X: 300, Y: 300})
	assert.True(t, e.Dragging())
	e.Drag(geom.Point{X: 400, Y: 350})
	e.Release()
	assert.Equal(t, geom.Point{X: 370, Y: 320}, placed.Pos)

	e.SetHue("table", 500)
	assert.Equal(t, 360.0, placed.Hue)
	e.SetSize("table", 0.1)
	assert.Equal(t, MinSize, placed.Size)

	e.Delete()
	assert.Empty(t, l.Furniture("house_2"))
	assert.Nil(t, e.Picked)

	e.Click(geom.Point{X: 10, Y: 10})
	assert.Nil(t, e.Picked)
}
