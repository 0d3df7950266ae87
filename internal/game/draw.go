package game

import (
	"image/color"
	"math"
	"strconv"

	"chosenoffset.com/cattown/internal/assets"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/core/palette"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/render"
	"chosenoffset.com/cattown/internal/render/lighting"
	"chosenoffset.com/cattown/internal/world/furnishing"
)

const (
	grassTile = 128.0
	floorTile = 64.0
	heartLobe = 0.25 // lobe offset as a fraction of the heart size
)

var (
	skyDark       = color.RGBA{10, 10, 20, 255}
	wallColor     = color.RGBA{110, 70, 40, 255}
	doorColor     = color.RGBA{60, 35, 20, 255}
	projectileClr = color.RGBA{200, 150, 255, 255}
	selectionClr  = color.RGBA{255, 215, 0, 255}
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	if g.State.Indoors {
		g.drawInterior(screen)
	} else {
		g.drawVillage(screen)
	}
	g.drawHUD(screen)
	g.drawUI(screen)
}

// sprite draws an image into r, or its placeholder colour when the image is
// missing.
func (g *Game) sprite(dst render.Image, key string, r geom.Rect, opts *render.SpriteOptions) {
	if img, ok := g.Assets.Image(key); ok {
		g.Renderer.DrawSprite(dst, img, r.X, r.Y, r.W, r.H, opts)
		return
	}
	if opts != nil && opts.Glow != nil && opts.GlowRadius > 0 {
		c := r.Center()
		g.Renderer.FillCircle(dst, float32(c.X), float32(c.Y), float32(opts.GlowRadius), palette.WithAlpha(toRGBA(opts.Glow), 0.25))
	}
	g.Renderer.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), assets.Placeholder(key))
}

func toRGBA(c color.Color) color.RGBA {
	r, gr, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(gr >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// hue returns the fully saturated colour for a hue, cached per degree for
// the lifetime of one night's fireflies.
func (g *Game) hue(h float64) color.RGBA {
	k := int(math.Mod(h, 360))
	if c, ok := g.hueCache[k]; ok {
		return c
	}
	c := palette.Hue(float64(k))
	g.hueCache[k] = c
	return c
}

// PlayerSprite picks the image for the player's form and animation state.
func PlayerSprite(p *entity.Player) string {
	if !p.IsCat {
		if p.Moving && p.WalkFrame == 1 {
			return assets.GirlWalking2
		}
		return assets.GirlWalking1
	}
	switch p.State {
	case entity.Sleep:
		return assets.CatSleeping
	case entity.Yawn:
		return assets.CatYawning
	case entity.Lick:
		return assets.CatLicking
	case entity.Moving:
		if p.WalkFrame == 1 {
			return assets.CatWalking2
		}
		return assets.CatWalking1
	}
	return assets.Cat
}

func (g *Game) drawVillage(screen render.Image) {
	s := g.State
	view := s.Camera.View(g.ScreenWidth, g.ScreenHeight)
	g.Lighting.Reset()

	screen.Fill(assets.Palette.Grass)
	g.Renderer.PushTransform(render.Transform{TX: -s.Camera.X, TY: -s.Camera.Y, Scale: 1})

	g.drawGrass(screen, view)
	g.sprite(screen, assets.Fountain, s.Village.Fountain.Rect, nil)
	g.drawBuildings(screen, view)
	for _, it := range s.Items {
		if it.Rect().Intersects(view) {
			g.drawHeart(screen, it)
		}
	}
	g.drawChests(screen, view)

	// trees whose base is above the player's feet are behind the player
	feet := s.Player.Pos.Y + s.Player.H
	var front []entity.Tree
	for _, t := range s.Village.Trees {
		if !t.Bounds().Intersects(view) {
			continue
		}
		if t.Base.Y > feet {
			front = append(front, t)
			continue
		}
		g.sprite(screen, assets.TreeKey(t.Type), t.Bounds(), nil)
	}

	g.drawCompanions(screen, view)
	g.drawPlayer(screen)
	for _, p := range s.Projectiles {
		g.Renderer.FillCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius), projectileClr)
	}
	g.drawParticles(screen)
	for _, t := range front {
		g.sprite(screen, assets.TreeKey(t.Type), t.Bounds(), nil)
	}
	g.Renderer.PopTransform()

	if veil, ok := g.Lighting.Overlay(); ok {
		g.Renderer.FillRect(screen, 0, 0, float32(g.ScreenWidth), float32(g.ScreenHeight), veil)
	}

	// glows and fireflies stay bright above the veil
	g.Renderer.PushTransform(render.Transform{TX: -s.Camera.X, TY: -s.Camera.Y, Scale: 1})
	for _, l := range g.Lighting.GetAllLights() {
		g.drawLight(screen, l)
	}
	if s.Sky.IsNight {
		g.drawFireflies(screen, view)
	}
	g.drawTitle(screen)
	g.Renderer.PopTransform()

	g.drawMinimap(screen)
}

func (g *Game) drawGrass(screen render.Image, view geom.Rect) {
	img, ok := g.Assets.Image(assets.Grass)
	if !ok {
		return
	}
	x0 := math.Floor(view.X/grassTile) * grassTile
	y0 := math.Floor(view.Y/grassTile) * grassTile
	for y := y0; y < view.Bottom(); y += grassTile {
		for x := x0; x < view.Right(); x += grassTile {
			g.Renderer.DrawSprite(screen, img, x, y, grassTile, grassTile, nil)
		}
	}
}

func (g *Game) drawBuildings(screen render.Image, view geom.Rect) {
	night := g.State.Sky.IsNight
	for _, b := range g.State.Village.Buildings {
		if !b.Rect.Intersects(view) {
			continue
		}
		g.sprite(screen, assets.HouseKey(b.HouseType, night), b.Rect, nil)
		if night {
			c := b.Rect.Center()
			g.Lighting.Add(lighting.LightSource{X: c.X, Y: c.Y, Radius: b.Rect.W * 0.6, Intensity: 0.35, Color: color.NRGBA{255, 200, 120, 255}})
		}
	}
}

// drawHeart draws an item as a heart made of two lobes and a point.
func (g *Game) drawHeart(screen render.Image, it *entity.Item) {
	c := it.Rect().Center()
	c.Y += math.Sin(it.Bob) * 3
	size := it.Size * it.Kind.Scale()
	clr := palette.Hex(it.Kind.Color())
	r := float32(size / 4)
	g.Renderer.FillCircle(screen, float32(c.X-size*heartLobe), float32(c.Y-size/8), r, clr)
	g.Renderer.FillCircle(screen, float32(c.X+size*heartLobe), float32(c.Y-size/8), r, clr)
	g.Renderer.FillEllipse(screen, float32(c.X), float32(c.Y+size/8), float32(size/2.2), float32(size/3), clr)
}

func (g *Game) drawChests(screen render.Image, view geom.Rect) {
	s := g.State
	for _, c := range s.Chests {
		r := c.Rect()
		if !r.Intersects(view) {
			continue
		}
		var opts *render.SpriteOptions
		if !c.Opened {
			opts = &render.SpriteOptions{Glow: palette.Hex(c.Tier.Glow), GlowRadius: r.W * 0.7}
		}
		g.sprite(screen, assets.ChestKey(c.Tier.Color, c.Opened), r, opts)
		if !c.Opened && c.Cost() > 0 {
			clr := color.RGBA{255, 255, 255, 255}
			if !c.CanOpen(s.Jar) {
				clr = color.RGBA{255, 120, 120, 255}
			}
			g.Renderer.DrawText(screen, strconv.Itoa(c.Cost())+" fireflies", r.X+r.W/2, r.Y-18, render.TextOptions{Size: 12, Align: render.AlignCenter, Color: clr})
		}
	}
}

func (g *Game) drawCompanion(screen render.Image, c *entity.Companion, glow bool) {
	r := c.Rect()
	r.Y += math.Sin(c.Bob) * 3
	g.sprite(screen, assets.FriendKey(c.Kind), r, nil)
	if glow {
		center := r.Center()
		gc := entity.GlowColor(c.Kind)
		g.Lighting.Add(lighting.LightSource{X: center.X, Y: center.Y, Radius: c.Edge() * 0.8, Intensity: 0.5, Color: color.NRGBA{gc.R, gc.G, gc.B, 255}})
	}
}

func (g *Game) drawCompanions(screen render.Image, view geom.Rect) {
	s := g.State
	night := s.Sky.IsNight
	for _, c := range s.Chain.Members() {
		if c.Rect().Intersects(view) {
			g.drawCompanion(screen, c, night)
		}
	}
	for _, d := range s.Dropped {
		if !d.InHouse && d.Companion.Rect().Intersects(view) {
			g.drawCompanion(screen, d.Companion, night)
		}
	}
}

func (g *Game) drawPlayer(screen render.Image) {
	p := g.State.Player
	opts := &render.SpriteOptions{FlipX: !p.FacingRight}
	if p.Boosted() {
		pulse := 0.5 + 0.5*math.Sin(float64(g.State.Session.Now().Milliseconds())/100)
		opts.Glow = palette.Hex(p.BoostColor)
		opts.GlowRadius = p.W * (0.7 + 0.3*pulse)
	}
	g.sprite(screen, PlayerSprite(p), p.Rect(), opts)
}

func (g *Game) drawParticles(screen render.Image) {
	for _, p := range g.State.Particles {
		clr := palette.WithAlpha(p.Color, p.Life)
		g.Renderer.FillCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size*p.Life), clr)
	}
}

func (g *Game) drawLight(screen render.Image, l lighting.LightSource) {
	tint := l.Tint()
	for i := 3; i >= 1; i-- {
		f := float64(i) / 3
		g.Renderer.FillCircle(screen, float32(l.X), float32(l.Y), float32(l.Radius*f), palette.WithAlpha(tint, 0.3*(1-f)+0.1))
	}
}

func (g *Game) drawFireflies(screen render.Image, view geom.Rect) {
	img, hasImg := g.Assets.Image(assets.Firefly)
	for _, ff := range g.State.Fireflies.Fireflies() {
		y := ff.Pos.Y + math.Sin(ff.Float)*5
		r := geom.Rect{X: ff.Pos.X - ff.Size/2, Y: y - ff.Size/2, W: ff.Size, H: ff.Size}
		if !r.Intersects(view) {
			continue
		}
		glow := g.hue(ff.DisplayHue())
		if hasImg {
			g.Renderer.DrawSprite(screen, img, r.X, r.Y, r.W, r.H, &render.SpriteOptions{
				HueShift:   ff.Hue,
				Glow:       glow,
				GlowRadius: ff.Size,
			})
			continue
		}
		g.Renderer.FillCircle(screen, float32(ff.Pos.X), float32(y), float32(ff.Size), palette.WithAlpha(glow, 0.25))
		g.Renderer.FillCircle(screen, float32(ff.Pos.X), float32(y), float32(ff.Size/4), glow)
	}
}

// drawTitle fades the title card out over the fountain.
func (g *Game) drawTitle(screen render.Image) {
	a := g.TitleAlpha()
	if a <= 0 {
		return
	}
	f := g.State.Village.Fountain.Rect
	r := geom.Rect{X: f.X - f.W, Y: f.Y - f.H*1.2, W: f.W * 3, H: f.H}
	if img, ok := g.Assets.Image(assets.Title); ok {
		g.Renderer.DrawSprite(screen, img, r.X, r.Y, r.W, r.H, &render.SpriteOptions{Alpha: a})
		return
	}
	g.Renderer.DrawText(screen, "Clara's Cat Town", r.X+r.W/2, r.Y+r.H/2, render.TextOptions{
		Size:  48,
		Align: render.AlignCenter,
		Color: palette.WithAlpha(assets.Palette.Title, a),
	})
}

func (g *Game) drawInterior(screen render.Image) {
	s := g.State
	room := g.roomRect()
	screen.Fill(skyDark)

	if img, ok := g.Assets.Image(assets.Floorboards); ok {
		for y := room.Y; y < room.Bottom(); y += floorTile {
			for x := room.X; x < room.Right(); x += floorTile {
				w, h := math.Min(floorTile, room.Right()-x), math.Min(floorTile, room.Bottom()-y)
				g.Renderer.DrawSprite(screen, img, x, y, w, h, nil)
			}
		}
	} else {
		g.Renderer.FillRect(screen, float32(room.X), float32(room.Y), float32(room.W), float32(room.H), assets.Palette.Floor)
	}

	wall := float32(s.Config.Interior.Wall)
	rx, ry, rw, rh := float32(room.X), float32(room.Y), float32(room.W), float32(room.H)
	g.Renderer.FillRect(screen, rx, ry, rw, wall, wallColor)
	g.Renderer.FillRect(screen, rx, ry, wall, rh, wallColor)
	g.Renderer.FillRect(screen, rx+rw-wall, ry, wall, rh, wallColor)
	g.Renderer.FillRect(screen, rx, ry+rh-wall, rw, wall, wallColor)
	door := g.doorRect()
	g.Renderer.FillRect(screen, float32(door.X), float32(door.Y), float32(door.W), float32(door.H), doorColor)
	g.Renderer.DrawText(screen, "Press E to Exit", door.X+door.W/2, door.Y-24, render.TextOptions{Size: 14, Align: render.AlignCenter, Color: color.White})

	for _, p := range s.Furniture.Furniture(s.HouseID) {
		g.drawFurniture(screen, p.Type, p.Center(), p.W, p.H, p.Size, p.Rotation, p.Hue, 1)
		if g.Editor != nil && g.Editor.Picked == p {
			hr := p.HitRect()
			g.Renderer.StrokeRect(screen, float32(hr.X), float32(hr.Y), float32(hr.W), float32(hr.H), 2, selectionClr)
		}
	}
	for _, d := range s.Dropped {
		if d.InHouse && d.HouseID == s.HouseID {
			r := d.Rect()
			r.Y += wanderBob(d.Companion)
			g.sprite(screen, assets.FriendKey(d.Companion.Kind), r, nil)
		}
	}
	g.drawPlayer(screen)
	g.drawParticles(screen)

	if g.Editor != nil && g.Editor.Placing != "" {
		if def := s.Furniture.Catalog.ByType(g.Editor.Placing); def != nil {
			st := s.Furniture.Style(def.Type)
			g.drawFurniture(screen, def.Type, g.Input.Cursor(), def.W, def.H, st.Size, st.Rotation, st.Hue, 0.5)
		}
	}
	g.drawShop(screen)
}

// drawFurniture draws a piece centred on c, scaled, rotated and recoloured.
func (g *Game) drawFurniture(screen render.Image, kind string, c geom.Point, w, h, size float64, rotation int, hue, alpha float64) {
	if size == 0 {
		size = 1
	}
	w, h = w*size, h*size
	r := geom.Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
	g.sprite(screen, assets.FurnitureKey(kind), r, &render.SpriteOptions{
		Rotation: float64(rotation) * math.Pi / 180,
		HueShift: hue,
		Alpha:    alpha,
	})
}

func (g *Game) drawShop(screen render.Image) {
	shop := g.shop()
	b := shop.bounds()
	g.Renderer.FillRoundedRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 10, color.RGBA{0, 0, 0, 204})
	g.Renderer.DrawText(screen, "Furniture Shop", shop.origin.X, shop.origin.Y-26, render.TextOptions{Size: 14, Color: selectionClr})

	for i, def := range g.State.Furniture.Catalog.Definitions {
		it := shop.item(i)
		bg := color.RGBA{25, 25, 25, 25}
		if g.Editor != nil && g.Editor.Placing == def.Type {
			bg = color.RGBA{76, 64, 0, 76}
		}
		g.Renderer.FillRoundedRect(screen, float32(it.X), float32(it.Y), float32(it.W), float32(it.H), 8, bg)

		st := g.State.Furniture.Style(def.Type)
		g.drawFurniture(screen, def.Type, geom.Point{X: it.X + it.W/2, Y: it.Y + 45}, def.W*0.6, def.H*0.6, 1, st.Rotation, st.Hue, 1)
		g.Renderer.DrawText(screen, def.Name, it.X+it.W/2, it.Y+78, render.TextOptions{Size: 12, Align: render.AlignCenter, Color: color.White})

		rb := shop.rotateButton(i)
		g.Renderer.StrokeCircle(screen, float32(rb.X), float32(rb.Y), rotateR, 2, color.White)

		hs := shop.hueSlider(i)
		for x := 0.0; x < hs.W; x += 4 {
			g.Renderer.FillRect(screen, float32(hs.X+x), float32(hs.Y), 4, float32(hs.H), g.hue(x/hs.W*360))
		}
		g.drawKnob(screen, hs, st.Hue/360)

		ss := shop.sizeSlider(i)
		g.Renderer.FillRect(screen, float32(ss.X), float32(ss.Y), float32(ss.W), float32(ss.H), color.RGBA{90, 90, 90, 255})
		g.drawKnob(screen, ss, (st.Size-furnishing.MinSize)/(furnishing.MaxSize-furnishing.MinSize))
	}
}

func (g *Game) drawKnob(screen render.Image, r geom.Rect, frac float64) {
	x := r.X + geom.Clamp(frac, 0, 1)*r.W
	g.Renderer.FillCircle(screen, float32(x), float32(r.Y+r.H/2), float32(r.H*0.7), color.White)
}
