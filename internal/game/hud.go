package game

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/cattown/internal/assets"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/core/palette"
	"chosenoffset.com/cattown/internal/render"
)

// HUD layout, in screen pixels.
const (
	hudMargin    = 16.0
	xpBarW       = 200.0
	xpBarH       = 12.0
	jarSize      = 48.0
	dialRadius   = 28.0
	compassR     = 22.0
	noteTop      = 140.0
	noteSpacing  = 34.0
	hintFromBase = 60.0
)

var (
	panelColor   = color.RGBA{0, 0, 0, 150}
	xpColor      = color.RGBA{120, 200, 255, 255}
	xpTrack      = color.RGBA{40, 40, 60, 255}
	cashColor    = color.RGBA{255, 215, 0, 255}
	sunColor     = color.RGBA{255, 200, 40, 255}
	moonColor    = color.RGBA{200, 210, 255, 255}
	compassColor = color.RGBA{255, 120, 120, 255}
)

// drawHUD shows progression, the jar, cash and the day dial.
func (g *Game) drawHUD(screen render.Image) {
	s := g.State
	white := render.TextOptions{Size: 16, Color: color.White}

	g.Renderer.FillRoundedRect(screen, hudMargin/2, hudMargin/2, xpBarW+2*hudMargin, 132, 8, panelColor)
	g.Renderer.DrawText(screen, fmt.Sprintf("Level %d", s.Level.Level), hudMargin, hudMargin, white)
	barY := hudMargin + 24
	g.Renderer.FillRect(screen, hudMargin, float32(barY), xpBarW, xpBarH, xpTrack)
	g.Renderer.FillRect(screen, hudMargin, float32(barY), float32(xpBarW*s.Level.Fraction()), xpBarH, xpColor)
	g.Renderer.DrawText(screen, fmt.Sprintf("XP %d / %d", s.Level.XP, s.Level.ToNext), hudMargin, barY+xpBarH+4, render.TextOptions{Size: 12, Color: color.White})

	jar := geom.Rect{X: hudMargin, Y: barY + 38, W: jarSize, H: jarSize}
	key := assets.JarEmpty
	if s.Jar.Count() > 0 {
		key = assets.JarFull
	}
	g.sprite(screen, key, jar, nil)
	g.Renderer.DrawText(screen, fmt.Sprintf("x %d", s.Jar.Count()), jar.Right()+8, jar.Y+jarSize/2-8, white)
	g.Renderer.DrawText(screen, fmt.Sprintf("%d cat cash", s.Cash), jar.Right()+80, jar.Y+jarSize/2-8, render.TextOptions{Size: 16, Color: cashColor})

	if !s.Indoors {
		g.drawDial(screen)
		g.drawCompass(screen)
	}
	g.drawNowPlaying(screen)
}

// drawDial is a pie that empties as the current day or night runs out.
func (g *Game) drawDial(screen render.Image) {
	cx := float32(float64(g.ScreenWidth) - hudMargin - dialRadius)
	cy := float32(hudMargin + dialRadius)
	clr, label := sunColor, "Day"
	if g.Lighting.IsNight() {
		clr, label = moonColor, "Night"
	}
	g.Renderer.FillCircle(screen, cx, cy, dialRadius, panelColor)
	remain := g.Lighting.PhaseRemaining()
	if remain > 0 {
		start := float32(-math.Pi / 2)
		end := start + float32(2*math.Pi*remain)
		// a stroke as wide as the radius fills the wedge
		g.Renderer.StrokeArc(screen, cx, cy, dialRadius/2, start, end, dialRadius, clr)
	}
	g.Renderer.StrokeCircle(screen, cx, cy, dialRadius, 2, color.White)
	g.Renderer.DrawText(screen, label, float64(cx), float64(cy)+dialRadius+4, render.TextOptions{Size: 12, Align: render.AlignCenter, Color: color.White})
}

// drawCompass points from the player towards the fountain.
func (g *Game) drawCompass(screen render.Image) {
	s := g.State
	c := geom.Point{X: float64(g.ScreenWidth) - hudMargin - 2*dialRadius - 24 - compassR, Y: hudMargin + dialRadius}
	g.Renderer.FillCircle(screen, float32(c.X), float32(c.Y), compassR, panelColor)
	g.Renderer.StrokeCircle(screen, float32(c.X), float32(c.Y), compassR, 2, color.White)

	target := s.Village.Landmark()
	if geom.Dist(s.Player.Center(), target) > 1 {
		tip := c.Add(geom.Polar(geom.Angle(s.Player.Center(), target), compassR-6))
		g.Renderer.FillCircle(screen, float32(tip.X), float32(tip.Y), 5, compassColor)
	}
	g.Renderer.FillCircle(screen, float32(c.X), float32(c.Y), 2, color.White)
}

func (g *Game) drawNowPlaying(screen render.Image) {
	m := g.Music
	if m == nil || !m.Started() {
		return
	}
	t, ok := m.Current()
	if !ok {
		return
	}
	line := "♪ " + t.Name
	if m.Muted() {
		line += " (muted)"
	} else {
		line += fmt.Sprintf(" %d%%", int(math.Round(m.Volume()*100)))
	}
	g.Renderer.DrawText(screen, line, hudMargin, float64(g.ScreenHeight)-hudMargin-14, render.TextOptions{Size: 12, Color: palette.WithAlpha(color.RGBA{255, 255, 255, 255}, 0.8)})
}

// drawUI draws the notifications and the interaction prompt.
func (g *Game) drawUI(screen render.Image) {
	now := g.State.Session.Now()
	cx := float64(g.ScreenWidth) / 2
	for i, msg := range g.Notes.Messages {
		a := msg.Alpha(now)
		if a <= 0 {
			continue
		}
		w, h := g.Renderer.MeasureText(msg.Text, 18)
		y := noteTop + float64(i)*noteSpacing
		g.Renderer.FillRoundedRect(screen, float32(cx-w/2-12), float32(y-6), float32(w+24), float32(h+12), 8, palette.WithAlpha(panelColor, a))
		g.Renderer.DrawText(screen, msg.Text, cx, y, render.TextOptions{
			Size:  18,
			Align: render.AlignCenter,
			Color: palette.WithAlpha(color.RGBA{255, 255, 255, 255}, a),
		})
	}

	if g.InteractHint == "" {
		return
	}
	hint := g.InteractHint
	w, h := g.Renderer.MeasureText(hint, 16)
	y := float64(g.ScreenHeight) - hintFromBase
	if g.State.Indoors {
		y = g.roomRect().Bottom() - hintFromBase
	}
	g.Renderer.FillRoundedRect(screen, float32(cx-w/2-10), float32(y-6), float32(w+20), float32(h+12), 8, panelColor)
	g.Renderer.DrawText(screen, hint, cx, y, render.TextOptions{Size: 16, Align: render.AlignCenter, Color: color.White})
}
