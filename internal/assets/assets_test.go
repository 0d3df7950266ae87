package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/cattown/internal/render"
)

type stubImage struct{ path string }

func (i *stubImage) Bounds() image.Rectangle                          { return image.Rect(0, 0, 8, 8) }
func (i *stubImage) Size() (int, int)                                 { return 8, 8 }
func (i *stubImage) Fill(color.Color)                                 {}
func (i *stubImage) Clear()                                           {}
func (i *stubImage) DrawImage(render.Image, *render.DrawImageOptions) {}
func (i *stubImage) Dispose()                                         {}

type stubLoader struct {
	failIf string
	calls  atomic.Int32
}

func (l *stubLoader) LoadImage(path string) (render.Image, error) {
	l.calls.Add(1)
	if l.failIf != "" && strings.Contains(path, l.failIf) {
		return nil, errors.New("not found")
	}
	return &stubImage{path: path}, nil
}

func TestManifestKeysUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range Manifest() {
		assert.False(t, seen[e.Key], "duplicate key %s", e.Key)
		seen[e.Key] = true
	}
	assert.Len(t, seen, 49)
	assert.True(t, seen[ChestKey("magenta", true)])
	assert.True(t, seen[HouseKey(4, true)])
	assert.True(t, seen[TreeKey(2)])
}

func TestFailedImagesStillOpenGate(t *testing.T) {
	loader := &stubLoader{failIf: "chests/"}
	s := Load(context.Background(), loader, "root", Manifest())
	require.NoError(t, s.Wait())

	assert.True(t, s.Gate().Open())
	assert.Equal(t, 10, s.Gate().Failed())
	assert.EqualValues(t, 49, loader.calls.Load())

	assert.False(t, s.Ready(ChestKey("red", false)))
	assert.True(t, s.Ready(Cat))
	img, ok := s.Image(Cat)
	require.True(t, ok)
	assert.Equal(t, "root/graphics/cat/cat.png", img.(*stubImage).path)
}

func TestCancelledLoadSettles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := Load(ctx, &stubLoader{}, "root", Manifest())
	assert.Error(t, s.Wait())
	assert.True(t, s.Gate().Open())
}

func TestPlaceholderColours(t *testing.T) {
	assert.Equal(t, Palette.Cat, Placeholder(CatSleeping))
	assert.Equal(t, Palette.Fountain, Placeholder(Fountain))
	assert.Equal(t, chestPalette["red"], Placeholder(ChestKey("red", false)))
	assert.Equal(t, Darken(chestPalette["red"], 0.6), Placeholder(ChestKey("red", true)))
	assert.Equal(t, Palette.Unknown, Placeholder("nope"))
}
