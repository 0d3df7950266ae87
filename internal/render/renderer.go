package render

import (
	"image"
	"image/color"
)

// Align is the horizontal anchor of drawn text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextOptions controls DrawText.
type TextOptions struct {
	Size  float64 // font size in pixels; zero means the backend default
	Align Align
	Color color.Color
}

// SpriteOptions modifies how DrawSprite draws an image. The zero value draws
// the image as is.
type SpriteOptions struct {
	// Rotation in radians around the centre of the destination rectangle.
	Rotation float64
	// HueShift rotates the image hue, in degrees.
	HueShift float64
	// Alpha multiplies the image opacity. Zero is treated as fully opaque;
	// use Hidden to skip drawing.
	Alpha float64
	// FlipX mirrors the image horizontally.
	FlipX bool
	// Glow draws a soft halo of this colour behind the image when non-nil.
	Glow       color.Color
	GlowRadius float64
}

// Transform is an offset and uniform scale applied to every draw call.
type Transform struct {
	TX, TY float64
	Scale  float64
}

// Identity leaves coordinates unchanged.
var Identity = Transform{Scale: 1}

// Then composes t with inner, so inner is applied first.
func (t Transform) Then(inner Transform) Transform {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	is := inner.Scale
	if is == 0 {
		is = 1
	}
	return Transform{
		TX:    inner.TX*s + t.TX,
		TY:    inner.TY*s + t.TY,
		Scale: s * is,
	}
}

// Apply maps a point through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	return x*s + t.TX, y*s + t.TY
}

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
//
// All coordinates pass through the current transform (see PushTransform).
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image
	DrawSprite(dst Image, src Image, x, y, w, h float64, opts *SpriteOptions)

	// Vector operations (for drawing shapes)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	FillEllipse(dst Image, cx, cy, rx, ry float32, clr color.Color)
	FillRect(dst Image, x, y, w, h float32, clr color.Color)
	StrokeRect(dst Image, x, y, w, h float32, strokeWidth float32, clr color.Color)
	FillRoundedRect(dst Image, x, y, w, h, radius float32, clr color.Color)
	StrokeArc(dst Image, cx, cy, radius, start, end float32, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y float64, opts TextOptions)
	MeasureText(text string, size float64) (width, height float64)

	// Transform stack
	PushTransform(t Transform)
	PopTransform()
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// Drawing operations
	DrawImage(src Image, opts *DrawImageOptions)

	// Resource management
	Dispose()
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM
}

// GeoM represents a geometric transformation matrix.
type GeoM interface {
	// Translate shifts the image by (tx, ty).
	Translate(tx, ty float64)

	// Scale scales the image by (sx, sy).
	Scale(sx, sy float64)

	// Rotate rotates the image by the given angle in radians.
	Rotate(angle float64)

	// Reset resets the matrix to identity.
	Reset()
}

// NewGeoM creates a new geometric transformation matrix.
// This is implemented by the specific renderer backend.
var NewGeoM func() GeoM

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyE // Interact key
	KeyF // Drop companion
	KeyT // Transform
	KeyM // Minimap
	KeyR // Rotate furniture
	KeyN // Next track
	KeyB // Previous track
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
	KeyDelete
	KeyBackspace
	KeyHome
	KeyF5
	KeyF9
	KeyMinus
	KeyEqual
	Key0
	KeyShift
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
