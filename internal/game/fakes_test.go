package game

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"chosenoffset.com/cattown/internal/assets"
	"chosenoffset.com/cattown/internal/render"
	"chosenoffset.com/cattown/internal/simulation"
)

func init() {
	render.NewGeoM = func() render.GeoM { return fakeGeoM{} }
}

type fakeGeoM struct{}

func (fakeGeoM) Translate(float64, float64) {}
func (fakeGeoM) Scale(float64, float64)     {}
func (fakeGeoM) Rotate(float64)             {}
func (fakeGeoM) Reset()                     {}

type fakeImage struct{ w, h int }

func (f *fakeImage) Bounds() image.Rectangle                          { return image.Rect(0, 0, f.w, f.h) }
func (f *fakeImage) Size() (int, int)                                 { return f.w, f.h }
func (f *fakeImage) Fill(color.Color)                                 {}
func (f *fakeImage) Clear()                                           {}
func (f *fakeImage) DrawImage(render.Image, *render.DrawImageOptions) {}
func (f *fakeImage) Dispose()                                         {}

// fakeRenderer counts shapes and records text so tests can check what a
// frame drew.
type fakeRenderer struct {
	shapes int
	texts  []string
	depth  int
}

func (r *fakeRenderer) NewImage(w, h int) render.Image { return &fakeImage{w, h} }
func (r *fakeRenderer) DrawSprite(render.Image, render.Image, float64, float64, float64, float64, *render.SpriteOptions) {
	r.shapes++
}
func (r *fakeRenderer) FillCircle(render.Image, float32, float32, float32, color.Color) { r.shapes++ }
func (r *fakeRenderer) StrokeCircle(render.Image, float32, float32, float32, float32, color.Color) {
	r.shapes++
}
func (r *fakeRenderer) FillEllipse(render.Image, float32, float32, float32, float32, color.Color) {
	r.shapes++
}
func (r *fakeRenderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {
	r.shapes++
}
func (r *fakeRenderer) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {
	r.shapes++
}
func (r *fakeRenderer) FillRoundedRect(render.Image, float32, float32, float32, float32, float32, color.Color) {
	r.shapes++
}
func (r *fakeRenderer) StrokeArc(render.Image, float32, float32, float32, float32, float32, float32, color.Color) {
	r.shapes++
}
func (r *fakeRenderer) DrawText(_ render.Image, s string, _, _ float64, _ render.TextOptions) {
	r.texts = append(r.texts, s)
}
func (r *fakeRenderer) MeasureText(s string, size float64) (float64, float64) {
	return float64(len(s)) * size / 2, size
}
func (r *fakeRenderer) PushTransform(render.Transform) { r.depth++ }
func (r *fakeRenderer) PopTransform()                  { r.depth-- }

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

func smallConfig() *simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.World.ForestSamples = 1500
	cfg.Chests.Rounds = 120
	cfg.Fireflies.Count = 40
	cfg.Items.Count = 20
	return cfg
}

type harness struct {
	g  *Game
	s  *GameState
	in *fakeInput
	r  *fakeRenderer
}

func newHarness(t *testing.T, seed int64) *harness {
	t.Helper()
	s := NewGameState(smallConfig(), rand.New(rand.NewSource(seed)))
	in := &fakeInput{keys: map[render.Key]bool{}}
	r := &fakeRenderer{}
	g := NewGame(s, r, in, assets.NewStore(), nil, 1280, 800)
	g.SaveDir = t.TempDir()
	return &harness{g: g, s: s, in: in, r: r}
}

const frame = 16 * time.Millisecond

func (h *harness) step(n int) {
	for i := 0; i < n; i++ {
		h.g.Step(frame)
	}
}

// press taps k for one frame and releases it on the next.
func (h *harness) press(k render.Key) {
	h.in.keys[k] = true
	h.step(1)
	h.in.keys[k] = false
	h.step(1)
}

func (h *harness) lastMessage() string {
	msgs := h.g.Notes.Messages
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Text
}
