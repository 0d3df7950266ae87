package game

import (
	"fmt"
	"image/color"
	"time"

	"chosenoffset.com/cattown/internal/assets"
	"chosenoffset.com/cattown/internal/audio"
	"chosenoffset.com/cattown/internal/input"
	"chosenoffset.com/cattown/internal/interaction"
	"chosenoffset.com/cattown/internal/render"
	"chosenoffset.com/cattown/internal/render/lighting"
	"chosenoffset.com/cattown/internal/world/furnishing"
)

// titleFade is how long the title card takes to disappear.
const titleFade = 4 * time.Second

// volumeStep is the change per volume key press.
const volumeStep = 0.1

// actionKeys are every key the game reacts to on a press edge.
var actionKeys = []render.Key{
	render.KeyE, render.KeyF, render.KeyT, render.KeyM, render.KeyR,
	render.KeyN, render.KeyB, render.KeySpace, render.KeyEscape,
	render.KeyDelete, render.KeyBackspace, render.KeyHome,
	render.KeyF5, render.KeyF9, render.KeyMinus, render.KeyEqual, render.Key0,
}

// Game wires the simulation to input, audio and drawing.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	State    *GameState
	Renderer render.Renderer
	Input    *input.Tracker
	Assets   *assets.Store
	Lighting *lighting.Manager
	Music    *audio.Jukebox // nil without a playlist
	Resolver *interaction.Resolver
	Minimap  *Minimap
	Editor   *furnishing.Editor // non-nil while indoors

	Notes        Notifier
	InteractHint string

	// SaveDir is where F5 writes and F9 reads.
	SaveDir string

	slider   sliderDrag
	hueCache map[int]color.RGBA

	now      func() time.Time
	lastTick time.Time
}

// NewGame builds a game around an existing state.
func NewGame(state *GameState, r render.Renderer, in render.InputManager, store *assets.Store, music *audio.Jukebox, width, height int) *Game {
	g := &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		State:        state,
		Renderer:     r,
		Input:        input.New(in, actionKeys...),
		Assets:       store,
		Lighting:     lighting.NewManager(),
		Music:        music,
		Resolver:     interaction.NewResolver(state.Config.Interaction),
		Minimap:      NewMinimap(),
		SaveDir:      ".",
		hueCache:     make(map[int]color.RGBA),
		now:          time.Now,
	}
	state.Fireflies.OnClear = g.clearHueCache
	return g
}

// Update advances the game by the wall time since the previous call.
func (g *Game) Update() error {
	t := g.now()
	var dt time.Duration
	if !g.lastTick.IsZero() {
		dt = t.Sub(g.lastTick)
	}
	g.lastTick = t
	g.Step(dt)
	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// Step runs one frame of dt. Every update in the frame reads the same
// timestamp.
func (g *Game) Step(dt time.Duration) {
	s := g.State
	g.Input.Update()
	f := s.Session.Step(dt)

	g.updateMusic()
	if g.Input.Pressed(render.KeyF5) {
		g.Save()
	}
	if g.Input.Pressed(render.KeyF9) {
		g.Load()
	}

	if s.Indoors {
		g.updateIndoors(f)
	} else {
		g.handleOutdoorKeys(f.Now)
		s.UpdateOutdoors(f, g.Input.Intent())
	}
	s.UpdateParticles(f)
	g.updateInteraction(f.Now)
	g.Notes.Update(f.Now)

	g.Lighting.SetSky(s.Sky.TimeOfDay, s.Sky.IsNight)
	g.UpdateCamera()
}

// handleOutdoorKeys applies the one-shot village actions.
func (g *Game) handleOutdoorKeys(now time.Duration) {
	s := g.State
	if g.Input.Pressed(render.KeyM) {
		g.Minimap.Toggle()
	}
	if g.Input.Pressed(render.KeyT) {
		s.Player.Transform()
	}
	if g.Input.Pressed(render.KeyHome) {
		s.Teleport()
		g.ShowMessage("Back to the fountain!")
	}
	if g.Input.Pressed(render.KeyF) {
		s.DropTail()
	}

	clicked := g.Input.Clicked() && !g.Minimap.HandleClick(g.Input.Cursor(), g.minimapOrigin())
	switch {
	case clicked:
		aim := s.Camera.ToWorld(g.Input.Cursor())
		s.CastMagic(now, &aim)
	case g.Input.Pressed(render.KeySpace):
		s.CastMagic(now, nil)
	}
}

// updateInteraction refreshes the prompt and, on the action key's press
// edge, runs the winning interaction once.
func (g *Game) updateInteraction(now time.Duration) {
	s := g.State
	cand, ok := g.Resolver.Resolve(interaction.Scene{
		Player:    s.Player,
		Chests:    s.Chests,
		Buildings: s.Village.Buildings,
		Jar:       s.Jar,
		Indoors:   s.Indoors,
		Now:       now,
		LastExit:  s.LastExit,
		HasExit:   s.HasExit,
	})
	g.InteractHint = ""
	if ok {
		g.InteractHint = cand.Description()
	}
	if !ok || !g.Input.Pressed(render.KeyE) {
		return
	}

	switch cand.Kind {
	case interaction.OpenChest:
		if op, opened := s.OpenChest(cand.Chest, now); opened {
			g.ShowMessage(fmt.Sprintf("Freed %d friend(s)! +%d cat cash", len(op.Companions), op.Cash))
		}
	case interaction.EnterBuilding:
		g.enterHouse(*cand.Building)
	case interaction.ExitBuilding:
		g.exitHouse(now)
	}
}

// updateMusic starts the playlist on the first gesture and handles the
// player controls.
func (g *Game) updateMusic() {
	m := g.Music
	if m == nil {
		return
	}
	if !m.Started() && (g.Input.Activity() || g.Input.Intent().Any()) {
		// a rejected start leaves the jukebox stopped; the next gesture retries
		_ = m.Start()
	}
	switch {
	case g.Input.Pressed(render.KeyN):
		m.Next()
	case g.Input.Pressed(render.KeyB):
		m.Previous()
	case g.Input.Pressed(render.KeyMinus):
		m.SetVolume(m.Volume() - volumeStep)
	case g.Input.Pressed(render.KeyEqual):
		m.SetVolume(m.Volume() + volumeStep)
	case g.Input.Pressed(render.Key0):
		m.ToggleMute()
	}
	m.Update()
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Notes.Show(text, g.State.Session.Now(), messageDuration)
}

// UpdateCamera updates the camera to follow the player outdoors.
func (g *Game) UpdateCamera() {
	s := g.State
	if s.Indoors {
		return
	}
	s.Camera.Follow(s.Player.Center(), g.ScreenWidth, g.ScreenHeight, s.Village.Width, s.Village.Height)
}

// TitleAlpha is the opacity of the title card.
func (g *Game) TitleAlpha() float64 {
	left := titleFade - g.State.Session.Now()
	if left <= 0 {
		return 0
	}
	return float64(left) / float64(titleFade)
}

func (g *Game) clearHueCache() {
	clear(g.hueCache)
}
