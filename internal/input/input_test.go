package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/cattown/internal/render"
)

type fakeInput struct {
	keys   map[render.Key]bool
	mouse  bool
	cx, cy int
}

func (f *fakeInput) IsKeyPressed(k render.Key) bool { return f.keys[k] }
func (f *fakeInput) GetCursorPosition() (int, int)  { return f.cx, f.cy }
func (f *fakeInput) IsMouseButtonPressed(b render.MouseButton) bool {
	return b == render.MouseButtonLeft && f.mouse
}

func TestPressedFiresOncePerPress(t *testing.T) {
	src := &fakeInput{keys: map[render.Key]bool{}}
	tr := New(src, render.KeyT)

	src.keys[render.KeyT] = true
	fired := 0
	for i := 0; i < 10; i++ {
		tr.Update()
		if tr.Pressed(render.KeyT) {
			fired++
		}
		assert.True(t, tr.Held(render.KeyT))
	}
	assert.Equal(t, 1, fired, "holding the key must not re-trigger")

	src.keys[render.KeyT] = false
	tr.Update()
	assert.False(t, tr.Pressed(render.KeyT))

	src.keys[render.KeyT] = true
	tr.Update()
	assert.True(t, tr.Pressed(render.KeyT))
}

func TestUnwatchedKeysIgnored(t *testing.T) {
	src := &fakeInput{keys: map[render.Key]bool{render.KeyF9: true}}
	tr := New(src, render.KeyT)
	tr.Update()
	assert.False(t, tr.Pressed(render.KeyF9))
	assert.False(t, tr.Activity())
}

func TestIntentMergesArrowsAndWASD(t *testing.T) {
	src := &fakeInput{keys: map[render.Key]bool{render.KeyW: true, render.KeyRight: true}}
	tr := New(src)
	tr.Update()

	in := tr.Intent()
	assert.True(t, in.Up)
	assert.True(t, in.Right)
	assert.False(t, in.Down)
	assert.False(t, in.Left)
	assert.True(t, tr.Activity())
}

func TestMouseEdges(t *testing.T) {
	src := &fakeInput{keys: map[render.Key]bool{}, cx: 12, cy: 34}
	tr := New(src)

	src.mouse = true
	tr.Update()
	assert.True(t, tr.Clicked())
	assert.True(t, tr.MouseDown())
	assert.Equal(t, 12.0, tr.Cursor().X)
	assert.Equal(t, 34.0, tr.Cursor().Y)

	tr.Update()
	assert.False(t, tr.Clicked())

	src.mouse = false
	tr.Update()
	assert.True(t, tr.Released())
	assert.False(t, tr.MouseDown())
}
