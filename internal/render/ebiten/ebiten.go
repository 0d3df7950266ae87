package ebiten

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/zyedidia/generic/stack"
	"golang.org/x/image/font/gofont/goregular"

	"chosenoffset.com/cattown/internal/render"
)

const defaultTextSize = 14

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct {
	face       *text.GoTextFaceSource
	transforms *stack.Stack[render.Transform]
	current    render.Transform
	white      *ebiten.Image
}

// init sets up the global functions for the ebiten render.
func init() {
	render.NewGeoM = func() render.GeoM {
		return NewGeoM()
	}
}

// NewRenderer creates a new Ebiten-based render.
func NewRenderer() render.Renderer {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("Warning: Failed to load font, text disabled: %v", err)
	}
	return &EbitenRenderer{
		face:       src,
		transforms: stack.New[render.Transform](),
		current:    render.Identity,
	}
}

// PushTransform composes t onto the current transform.
func (r *EbitenRenderer) PushTransform(t render.Transform) {
	r.transforms.Push(r.current)
	r.current = r.current.Then(t)
}

// PopTransform restores the transform saved by the matching push.
func (r *EbitenRenderer) PopTransform() {
	if r.transforms.Size() == 0 {
		r.current = render.Identity
		return
	}
	r.current = r.transforms.Pop()
}

func (r *EbitenRenderer) pt(x, y float32) (float32, float32) {
	tx, ty := r.current.Apply(float64(x), float64(y))
	return float32(tx), float32(ty)
}

func (r *EbitenRenderer) scaled(v float32) float32 {
	if r.current.Scale == 0 {
		return v
	}
	return v * float32(r.current.Scale)
}

// NewImage creates a new image with the given dimensions.
func (r *EbitenRenderer) NewImage(width, height int) render.Image {
	return &EbitenImage{img: ebiten.NewImage(width, height)}
}

// FillCircle draws a filled circle on the destination image.
func (r *EbitenRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	x, y = r.pt(x, y)
	vector.DrawFilledCircle(unwrap(dst), x, y, r.scaled(radius), clr, true)
}

// StrokeCircle draws a circle outline on the destination image.
func (r *EbitenRenderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	x, y = r.pt(x, y)
	vector.StrokeCircle(unwrap(dst), x, y, r.scaled(radius), strokeWidth, clr, true)
}

// FillRect draws a filled axis-aligned rectangle.
func (r *EbitenRenderer) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) {
	x, y = r.pt(x, y)
	vector.DrawFilledRect(unwrap(dst), x, y, r.scaled(w), r.scaled(h), clr, false)
}

// StrokeRect draws a rectangle outline.
func (r *EbitenRenderer) StrokeRect(dst render.Image, x, y, w, h float32, strokeWidth float32, clr color.Color) {
	x, y = r.pt(x, y)
	vector.StrokeRect(unwrap(dst), x, y, r.scaled(w), r.scaled(h), strokeWidth, clr, false)
}

// FillEllipse approximates an ellipse with a closed polygon.
func (r *EbitenRenderer) FillEllipse(dst render.Image, cx, cy, rx, ry float32, clr color.Color) {
	const segments = 32
	cx, cy = r.pt(cx, cy)
	rx, ry = r.scaled(rx), r.scaled(ry)

	var path vector.Path
	for i := 0; i < segments; i++ {
		a := float64(i) / segments * 2 * math.Pi
		px := cx + rx*float32(math.Cos(a))
		py := cy + ry*float32(math.Sin(a))
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()
	r.fillPath(dst, &path, clr)
}

// FillRoundedRect draws a filled rectangle with rounded corners.
func (r *EbitenRenderer) FillRoundedRect(dst render.Image, x, y, w, h, radius float32, clr color.Color) {
	x, y = r.pt(x, y)
	w, h, radius = r.scaled(w), r.scaled(h), r.scaled(radius)
	radius = min(radius, w/2, h/2)

	var path vector.Path
	path.MoveTo(x+radius, y)
	path.LineTo(x+w-radius, y)
	path.ArcTo(x+w, y, x+w, y+radius, radius)
	path.LineTo(x+w, y+h-radius)
	path.ArcTo(x+w, y+h, x+w-radius, y+h, radius)
	path.LineTo(x+radius, y+h)
	path.ArcTo(x, y+h, x, y+h-radius, radius)
	path.LineTo(x, y+radius)
	path.ArcTo(x, y, x+radius, y, radius)
	path.Close()
	r.fillPath(dst, &path, clr)
}

// StrokeArc draws an arc outline from start to end (radians, clockwise).
func (r *EbitenRenderer) StrokeArc(dst render.Image, cx, cy, radius, start, end float32, strokeWidth float32, clr color.Color) {
	cx, cy = r.pt(cx, cy)
	radius = r.scaled(radius)

	var path vector.Path
	path.Arc(cx, cy, radius, start, end, vector.Clockwise)
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: strokeWidth})
	r.drawVertices(dst, vs, is, clr)
}

func (r *EbitenRenderer) fillPath(dst render.Image, path *vector.Path, clr color.Color) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r.drawVertices(dst, vs, is, clr)
}

func (r *EbitenRenderer) drawVertices(dst render.Image, vs []ebiten.Vertex, is []uint16, clr color.Color) {
	if r.white == nil {
		r.white = ebiten.NewImage(3, 3)
		r.white.Fill(color.White)
	}
	cr, cg, cb, ca := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(cr) / 0xffff
		vs[i].ColorG = float32(cg) / 0xffff
		vs[i].ColorB = float32(cb) / 0xffff
		vs[i].ColorA = float32(ca) / 0xffff
	}
	sub := r.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	unwrap(dst).DrawTriangles(vs, is, sub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// DrawSprite draws src stretched into the rectangle (x, y, w, h).
func (r *EbitenRenderer) DrawSprite(dst render.Image, src render.Image, x, y, w, h float64, opts *render.SpriteOptions) {
	if src == nil {
		return
	}
	if opts == nil {
		opts = &render.SpriteOptions{}
	}
	if opts.Glow != nil && opts.GlowRadius > 0 {
		r.drawGlow(dst, x+w/2, y+h/2, opts.GlowRadius, opts.Glow)
	}

	img := unwrap(src)
	sw, sh := img.Bounds().Dx(), img.Bounds().Dy()
	if sw == 0 || sh == 0 {
		return
	}

	var geo ebiten.GeoM
	geo.Scale(w/float64(sw), h/float64(sh))
	if opts.FlipX {
		geo.Scale(-1, 1)
		geo.Translate(w, 0)
	}
	if opts.Rotation != 0 {
		geo.Translate(-w/2, -h/2)
		geo.Rotate(opts.Rotation)
		geo.Translate(w/2, h/2)
	}
	geo.Translate(x, y)
	s := r.current.Scale
	if s == 0 {
		s = 1
	}
	geo.Scale(s, s)
	geo.Translate(r.current.TX, r.current.TY)

	alpha := opts.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}

	if opts.HueShift != 0 {
		var cm colorm.ColorM
		cm.RotateHue(opts.HueShift * math.Pi / 180)
		cm.Scale(1, 1, 1, alpha)
		op := &colorm.DrawImageOptions{GeoM: geo, Filter: ebiten.FilterLinear}
		colorm.DrawImage(unwrap(dst), img, cm, op)
		return
	}

	op := &ebiten.DrawImageOptions{GeoM: geo, Filter: ebiten.FilterLinear}
	op.ColorScale.ScaleAlpha(float32(alpha))
	unwrap(dst).DrawImage(img, op)
}

// drawGlow layers translucent circles to fake a radial gradient.
func (r *EbitenRenderer) drawGlow(dst render.Image, cx, cy, radius float64, clr color.Color) {
	const rings = 4
	cr, cg, cb, _ := clr.RGBA()
	for i := rings; i >= 1; i-- {
		f := float64(i) / rings
		a := uint8(40 * (1 - f + 1.0/rings))
		c := color.RGBA{
			R: uint8(uint32(a) * (cr >> 8) / 255),
			G: uint8(uint32(a) * (cg >> 8) / 255),
			B: uint8(uint32(a) * (cb >> 8) / 255),
			A: a,
		}
		r.FillCircle(dst, float32(cx), float32(cy), float32(radius*f), c)
	}
}

// DrawText draws text with the Go Regular face at the requested size.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y float64, opts render.TextOptions) {
	if r.face == nil {
		ebitenutil.DebugPrintAt(unwrap(dst), str, int(x), int(y))
		return
	}
	face := r.faceFor(opts.Size)
	op := &text.DrawOptions{}
	tx, ty := r.current.Apply(x, y)
	op.GeoM.Translate(tx, ty)
	switch opts.Align {
	case render.AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case render.AlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	if opts.Color != nil {
		op.ColorScale.ScaleWithColor(opts.Color)
	}
	text.Draw(unwrap(dst), str, face, op)
}

// MeasureText measures the width and height of text at the given size.
func (r *EbitenRenderer) MeasureText(str string, size float64) (width, height float64) {
	if r.face == nil {
		// Debug font is approximately 6x13 pixels per character
		return float64(len(str)) * 6, 13
	}
	return text.Measure(str, r.faceFor(size), 0)
}

func (r *EbitenRenderer) faceFor(size float64) *text.GoTextFace {
	if size <= 0 {
		size = defaultTextSize
	}
	s := r.current.Scale
	if s == 0 {
		s = 1
	}
	return &text.GoTextFace{Source: r.face, Size: size * s}
}

func unwrap(img render.Image) *ebiten.Image {
	return img.(*EbitenImage).img
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// Dispose releases the image resources.
func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

// DrawImage draws the source image onto this image.
func (i *EbitenImage) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	srcImg := src.(*EbitenImage).img

	if opts == nil {
		i.img.DrawImage(srcImg, nil)
		return
	}

	ebitenOpts := &ebiten.DrawImageOptions{}
	if opts.GeoM != nil {
		ebitenGeoM := opts.GeoM.(*EbitenGeoM)
		ebitenOpts.GeoM = ebitenGeoM.geoM
	}

	i.img.DrawImage(srcImg, ebitenOpts)
}

// WrapEbitenImage wraps an existing ebiten.Image as a render.Image.
func WrapEbitenImage(img *ebiten.Image) render.Image {
	return &EbitenImage{img: img}
}

// EbitenGeoM wraps ebiten's GeoM to implement the render.GeoM interface.
type EbitenGeoM struct {
	geoM ebiten.GeoM
}

// NewGeoM creates a new geometric transformation matrix.
func NewGeoM() render.GeoM {
	return &EbitenGeoM{geoM: ebiten.GeoM{}}
}

// Translate shifts the image by (tx, ty).
func (g *EbitenGeoM) Translate(tx, ty float64) {
	g.geoM.Translate(tx, ty)
}

// Scale scales the image by (sx, sy).
func (g *EbitenGeoM) Scale(sx, sy float64) {
	g.geoM.Scale(sx, sy)
}

// Rotate rotates the image by the given angle in radians.
func (g *EbitenGeoM) Rotate(angle float64) {
	g.geoM.Rotate(angle)
}

// Reset resets the matrix to identity.
func (g *EbitenGeoM) Reset() {
	g.geoM.Reset()
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && ebiten.IsKeyPressed(k)
}

// GetCursorPosition returns the current cursor position.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// IsMouseButtonPressed returns whether the specified mouse button is currently pressed.
func (m *EbitenInputManager) IsMouseButtonPressed(button render.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(mouseButtonToEbiten(button))
}

var keys = map[render.Key]ebiten.Key{
	render.KeyW:         ebiten.KeyW,
	render.KeyA:         ebiten.KeyA,
	render.KeyS:         ebiten.KeyS,
	render.KeyD:         ebiten.KeyD,
	render.KeyE:         ebiten.KeyE,
	render.KeyF:         ebiten.KeyF,
	render.KeyT:         ebiten.KeyT,
	render.KeyM:         ebiten.KeyM,
	render.KeyR:         ebiten.KeyR,
	render.KeyN:         ebiten.KeyN,
	render.KeyB:         ebiten.KeyB,
	render.KeyUp:        ebiten.KeyArrowUp,
	render.KeyDown:      ebiten.KeyArrowDown,
	render.KeyLeft:      ebiten.KeyArrowLeft,
	render.KeyRight:     ebiten.KeyArrowRight,
	render.KeySpace:     ebiten.KeySpace,
	render.KeyEscape:    ebiten.KeyEscape,
	render.KeyDelete:    ebiten.KeyDelete,
	render.KeyBackspace: ebiten.KeyBackspace,
	render.KeyHome:      ebiten.KeyHome,
	render.KeyF5:        ebiten.KeyF5,
	render.KeyF9:        ebiten.KeyF9,
	render.KeyMinus:     ebiten.KeyMinus,
	render.KeyEqual:     ebiten.KeyEqual,
	render.Key0:         ebiten.KeyDigit0,
	render.KeyShift:     ebiten.KeyShift,
}

// mouseButtonToEbiten converts a render.MouseButton to an ebiten.MouseButton.
func mouseButtonToEbiten(button render.MouseButton) ebiten.MouseButton {
	switch button {
	case render.MouseButtonLeft:
		return ebiten.MouseButtonLeft
	case render.MouseButtonRight:
		return ebiten.MouseButtonRight
	case render.MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// EbitenResourceLoader implements the ResourceLoader interface using Ebiten.
type EbitenResourceLoader struct{}

// NewResourceLoader creates a new Ebiten-based resource loader.
func NewResourceLoader() render.ResourceLoader {
	return &EbitenResourceLoader{}
}

// LoadImage loads an image from the specified file path.
func (l *EbitenResourceLoader) LoadImage(path string) (render.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return &EbitenImage{img: img}, nil
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame runs the game loop with the provided game.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	return a.game.Update()
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
