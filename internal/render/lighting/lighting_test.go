package lighting

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlayOnlyAtNight(t *testing.T) {
	m := NewManager()
	m.SetSky(0.3, false)
	_, ok := m.Overlay()
	assert.False(t, ok)

	m.SetSky(0.8, true)
	c, ok := m.Overlay()
	assert.True(t, ok)
	assert.Equal(t, uint8(102), c.A)
}

func TestPhaseRemaining(t *testing.T) {
	assert.InDelta(t, 1.0, PhaseRemaining(0.1, false), 1e-9)
	assert.InDelta(t, 0.5, PhaseRemaining(0.35, false), 1e-9)
	assert.InDelta(t, 1.0, PhaseRemaining(0.6, true), 1e-9)
	assert.InDelta(t, 0.2, PhaseRemaining(0.0, true), 1e-9)
	assert.InDelta(t, 0.0, PhaseRemaining(0.1, true), 1e-9)
}

func TestLightsResetEachFrame(t *testing.T) {
	m := NewManager()
	m.Add(LightSource{X: 1, Y: 2, Radius: 10, Intensity: 0.5, Color: color.NRGBA{R: 200, G: 100, B: 0, A: 255}})
	assert.Len(t, m.GetAllLights(), 1)
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 0, A: 127}, m.GetAllLights()[0].Tint())

	m.Reset()
	assert.Empty(t, m.GetAllLights())
}
