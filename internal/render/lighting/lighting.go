// Package lighting derives the sky from the time of day and collects the
// glows that stay bright above the night overlay.
package lighting

import (
	"image/color"
	"math"
)

// nightOverlay is a blue-black veil at 40% opacity, premultiplied.
var nightOverlay = color.RGBA{R: 0, G: 0, B: 12, A: 102}

// Day and night halves of the cycle, as fractions of the day.
const (
	dawn       = 0.1
	dusk       = 0.6
	halfLength = 0.5
)

// LightSource represents a single light source in the game world
type LightSource struct {
	X         float64     // World X position (in pixels)
	Y         float64     // World Y position (in pixels)
	Radius    float64     // Light radius (in pixels)
	Intensity float64     // Light intensity (0.0 to 1.0)
	Color     color.NRGBA // Light color
}

// Tint returns the light colour premultiplied by its intensity.
func (l LightSource) Tint() color.RGBA {
	a := math.Max(0, math.Min(1, l.Intensity))
	return color.RGBA{
		R: uint8(float64(l.Color.R) * a),
		G: uint8(float64(l.Color.G) * a),
		B: uint8(float64(l.Color.B) * a),
		A: uint8(255 * a),
	}
}

// Manager handles all light sources in the game
type Manager struct {
	lights    []LightSource
	timeOfDay float64
	night     bool
}

// NewManager creates a new lighting manager
func NewManager() *Manager {
	return &Manager{lights: make([]LightSource, 0, 64)}
}

// SetSky records the clock state for this frame.
func (m *Manager) SetSky(timeOfDay float64, night bool) {
	m.timeOfDay = timeOfDay
	m.night = night
}

// IsNight reports the last recorded night flag.
func (m *Manager) IsNight() bool {
	return m.night
}

// Overlay returns the veil drawn over the world, and false during the day.
func (m *Manager) Overlay() (color.RGBA, bool) {
	if !m.night {
		return color.RGBA{}, false
	}
	return nightOverlay, true
}

// PhaseRemaining is the fraction of the current day or night still to run,
// from 1 at the start of the phase down to 0 at the next edge.
func (m *Manager) PhaseRemaining() float64 {
	return PhaseRemaining(m.timeOfDay, m.night)
}

// PhaseRemaining computes the countdown for a given time of day.
func PhaseRemaining(timeOfDay float64, night bool) float64 {
	var elapsed float64
	switch {
	case night && timeOfDay >= dusk:
		elapsed = (timeOfDay - dusk) / halfLength
	case night:
		elapsed = (1 - dusk + timeOfDay) / halfLength
	default:
		elapsed = (timeOfDay - dawn) / halfLength
	}
	return math.Max(0, math.Min(1, 1-elapsed))
}

// Add registers a glow for this frame.
func (m *Manager) Add(l LightSource) {
	m.lights = append(m.lights, l)
}

// GetAllLights returns all active light sources
func (m *Manager) GetAllLights() []LightSource {
	return m.lights
}

// Reset drops the glows collected for the previous frame.
func (m *Manager) Reset() {
	m.lights = m.lights[:0]
}
