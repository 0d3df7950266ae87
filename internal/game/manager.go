package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"chosenoffset.com/cattown/internal/assets"
	"chosenoffset.com/cattown/internal/audio"
	"chosenoffset.com/cattown/internal/render"
	"chosenoffset.com/cattown/internal/simulation"
)

// Phase is the top-level screen the manager shows.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePlaying
)

var (
	loadingBg  = color.RGBA{20, 20, 40, 255}
	loadingBar = color.RGBA{255, 200, 80, 255}
)

// Manager shows a loading screen until every image has settled, then builds
// the world and hands frames to the Game.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Phase        Phase
	Game         *Game

	Renderer render.Renderer
	InputMgr render.InputManager
	Assets   *assets.Store
	Music    *audio.Jukebox
	Config   *simulation.Config
	SaveDir  string

	rng *rand.Rand
}

// NewManager creates a manager in the loading phase.
func NewManager(r render.Renderer, input render.InputManager, store *assets.Store, music *audio.Jukebox, cfg *simulation.Config, rng *rand.Rand, width, height int) *Manager {
	return &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		Phase:        PhaseLoading,
		Renderer:     r,
		InputMgr:     input,
		Assets:       store,
		Music:        music,
		Config:       cfg,
		SaveDir:      ".",
		rng:          rng,
	}
}

// Update advances whichever phase is active.
func (m *Manager) Update() error {
	switch m.Phase {
	case PhaseLoading:
		if !m.Assets.Gate().Open() {
			return nil
		}
		if failed := m.Assets.Gate().Failed(); failed > 0 {
			log.Printf("Warning: %d images missing, drawing placeholders", failed)
		}
		m.start()
	case PhasePlaying:
		return m.Game.Update()
	}
	return nil
}

func (m *Manager) start() {
	state := NewGameState(m.Config, m.rng)
	m.Game = NewGame(state, m.Renderer, m.InputMgr, m.Assets, m.Music, m.ScreenWidth, m.ScreenHeight)
	m.Game.SaveDir = m.SaveDir
	m.Game.UpdateCamera()
	m.Phase = PhasePlaying
	log.Printf("Game started")
}

// Draw draws the current phase.
func (m *Manager) Draw(screen render.Image) {
	switch m.Phase {
	case PhaseLoading:
		m.drawLoading(screen)
	case PhasePlaying:
		m.Game.Draw(screen)
	}
}

func (m *Manager) drawLoading(screen render.Image) {
	screen.Fill(loadingBg)
	settled, total := m.Assets.Gate().Progress()
	frac := 1.0
	if total > 0 {
		frac = float64(settled) / float64(total)
	}

	cx, cy := float64(m.ScreenWidth)/2, float64(m.ScreenHeight)/2
	const barW, barH = 400.0, 20.0
	m.Renderer.DrawText(screen, "Clara's Cat Town", cx, cy-80, render.TextOptions{Size: 36, Align: render.AlignCenter, Color: color.White})
	m.Renderer.StrokeRect(screen, float32(cx-barW/2), float32(cy), barW, barH, 2, color.White)
	m.Renderer.FillRect(screen, float32(cx-barW/2), float32(cy), float32(barW*frac), barH, loadingBar)
	m.Renderer.DrawText(screen, fmt.Sprintf("Loading %d/%d", settled, total), cx, cy+barH+12, render.TextOptions{Size: 16, Align: render.AlignCenter, Color: color.White})
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		if m.Game != nil {
			m.Game.ScreenWidth = outsideWidth
			m.Game.ScreenHeight = outsideHeight
			m.Game.UpdateCamera()
		}
	}
	return outsideWidth, outsideHeight
}
