package game

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"chosenoffset.com/cattown/internal/audio"
	"chosenoffset.com/cattown/internal/core/clock"
	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/save"
	"chosenoffset.com/cattown/internal/world/furnishing"
)

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func fromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func point(p geom.Point) save.Point {
	return save.Point{X: p.X, Y: p.Y}
}

func companionRecord(c *entity.Companion) save.Companion {
	return save.Companion{X: c.Pos.X, Y: c.Pos.Y, Type: c.Kind, SizeMultiplier: c.Size}
}

// Snapshot captures everything needed to resume the game. Indoors the
// player is recorded at the spot they entered from.
func (s *GameState) Snapshot(at time.Time, music *audio.State) *save.Document {
	p := s.Player
	pos := p.Pos
	if s.Indoors {
		pos = s.OutdoorPos
	}
	doc := &save.Document{
		Version:   save.Version,
		Timestamp: at,
		Player: &save.Player{
			X:                 pos.X,
			Y:                 pos.Y,
			IsCat:             p.IsCat,
			Speed:             p.Speed,
			BaseSpeed:         p.BaseSpeed,
			SpeedBoostEndTime: millis(p.BoostExpiry),
			BoostColor:        p.BoostColor,
			FacingRight:       p.FacingRight,
		},
		Level:         s.Level.Level,
		XP:            s.Level.XP,
		XPToNextLevel: s.Level.ToNext,
		CatCash:       s.Cash,
		FireflyCount:  s.Jar.Count(),

		GameTime:    millis(s.Clock.Elapsed()),
		SessionTime: millis(s.Session.Now()),
		TimeOfDay:   s.Clock.TimeOfDay(),
		IsNight:     s.Clock.IsNight(),
		Camera:      save.Point{X: s.Camera.X, Y: s.Camera.Y},

		HouseFurniture:     make(map[string][]save.Furniture),
		FurnitureHues:      make(map[string]float64),
		FurnitureSizes:     make(map[string]float64),
		FurnitureRotations: make(map[string]int),

		IsInsideHouse:  s.Indoors,
		CurrentHouseID: s.HouseID,
		Audio:          music,
	}

	for _, c := range s.Chain.Members() {
		doc.Companions = append(doc.Companions, companionRecord(c))
	}
	for _, d := range s.Dropped {
		rec := save.Dropped{
			X:         d.Companion.Pos.X,
			Y:         d.Companion.Pos.Y,
			Type:      d.Companion.Kind,
			IsInHouse: d.InHouse,
			Companion: companionRecord(d.Companion),
		}
		if d.InHouse {
			rec.HouseID = d.HouseID
			rec.HouseX, rec.HouseY = d.HousePos.X, d.HousePos.Y
		}
		doc.DroppedCompanions = append(doc.DroppedCompanions, rec)
	}
	for _, it := range s.Items {
		doc.Items = append(doc.Items, save.Item{X: it.Pos.X, Y: it.Pos.Y, Type: it.Kind.String()})
	}
	for _, c := range s.Chests {
		doc.Chests = append(doc.Chests, save.Chest{
			X:              c.Pos.X,
			Y:              c.Pos.Y,
			Opened:         c.Opened,
			Tier:           c.Tier.Index,
			Color:          c.Tier.Color,
			SizeMultiplier: c.Size,
			FireflyCost:    c.Tier.Cost,
			CompanionCount: c.CompanionCount,
			HitCount:       c.HitCount,
		})
	}
	for _, ff := range s.Fireflies.Fireflies() {
		doc.Fireflies = append(doc.Fireflies, save.Firefly{
			X: ff.Pos.X, Y: ff.Pos.Y, Hue: ff.Hue, XPValue: ff.XP, Size: ff.Size, IsRainbow: ff.Rainbow,
		})
	}
	for house, pieces := range s.Furniture.Houses {
		recs := make([]save.Furniture, 0, len(pieces))
		for _, pc := range pieces {
			recs = append(recs, save.Furniture{
				ID:       pc.ID.String(),
				Type:     pc.Type,
				X:        pc.Pos.X,
				Y:        pc.Pos.Y,
				Width:    pc.W,
				Height:   pc.H,
				Rotation: pc.Rotation,
				Hue:      pc.Hue,
				Size:     pc.Size,
			})
		}
		doc.HouseFurniture[house] = recs
	}
	for t, st := range s.Furniture.Styles {
		doc.FurnitureHues[t] = st.Hue
		doc.FurnitureSizes[t] = st.Size
		doc.FurnitureRotations[t] = st.Rotation
	}
	return doc
}

// Apply replaces the running state with a document. Everything is rebuilt
// before the first assignment, so an error leaves the state as it was.
// Apply always leaves the player outdoors; re-entering a saved house is up
// to the caller.
func (s *GameState) Apply(doc *save.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.IsInsideHouse {
		if _, ok := s.Village.Building(doc.CurrentHouseID); !ok {
			return fmt.Errorf("%w: unknown house %q", save.ErrMalformed, doc.CurrentHouseID)
		}
	}

	cc := s.Config.Companion
	companion := func(r save.Companion) *entity.Companion {
		size := r.SizeMultiplier
		if size <= 0 {
			size = 1
		}
		return entity.NewCompanion(geom.Point{X: r.X, Y: r.Y}, r.Type, size, cc.Size, cc.Speed, s.rng)
	}

	chain := make([]*entity.Companion, 0, len(doc.Companions))
	for _, r := range doc.Companions {
		chain = append(chain, companion(r))
	}

	dropped := make([]*entity.DroppedCompanion, 0, len(doc.DroppedCompanions))
	for _, r := range doc.DroppedCompanions {
		rec := r.Companion
		if rec.Type == "" {
			rec = save.Companion{X: r.X, Y: r.Y, Type: r.Type, SizeMultiplier: 1}
		}
		c := companion(rec)
		if r.IsInHouse {
			dropped = append(dropped, entity.DropInHouse(c, r.HouseID, geom.Point{X: r.HouseX, Y: r.HouseY}))
			continue
		}
		dropped = append(dropped, entity.Drop(c))
	}

	items := make([]*entity.Item, 0, len(doc.Items))
	for _, r := range doc.Items {
		items = append(items, &entity.Item{
			Pos:  geom.Point{X: r.X, Y: r.Y},
			Kind: entity.ParseItemKind(r.Type),
			Size: s.Config.Items.Size,
			Bob:  s.rng.Float64() * 2 * math.Pi,
		})
	}

	chests := make([]*entity.Chest, 0, len(doc.Chests))
	for _, r := range doc.Chests {
		tier := s.Table.Get(r.Tier)
		tier.Index = r.Tier
		if r.Color != "" {
			tier.Color = r.Color
		}
		tier.Cost = r.FireflyCost
		size := r.SizeMultiplier
		if size <= 0 {
			size = 1
		}
		c := entity.RestoreChest(geom.Point{X: r.X, Y: r.Y}, tier, size, r.CompanionCount, r.Opened, s.Config.Chests)
		c.HitCount = r.HitCount
		chests = append(chests, c)
	}

	var fireflies []*entity.Firefly
	if doc.IsNight {
		for _, r := range doc.Fireflies {
			ff := entity.NewFirefly(s.rng, 0, 0, s.Config.Fireflies)
			ff.Pos = geom.Point{X: r.X, Y: r.Y}
			ff.Hue = r.Hue
			ff.XP = r.XPValue
			ff.Size = r.Size
			ff.Rainbow = r.IsRainbow
			fireflies = append(fireflies, ff)
		}
	}

	houses := make(map[string][]*furnishing.Placed, len(doc.HouseFurniture))
	for house, recs := range doc.HouseFurniture {
		for _, r := range recs {
			id, err := ulid.Parse(r.ID)
			if err != nil {
				return fmt.Errorf("%w: furniture id %q: %v", save.ErrMalformed, r.ID, err)
			}
			houses[house] = append(houses[house], &furnishing.Placed{
				ID:       id,
				Type:     r.Type,
				Pos:      geom.Point{X: r.X, Y: r.Y},
				W:        r.Width,
				H:        r.Height,
				Rotation: r.Rotation,
				Hue:      r.Hue,
				Size:     r.Size,
			})
		}
	}
	styles := make(map[string]*furnishing.Style)
	style := func(t string) *furnishing.Style {
		st, ok := styles[t]
		if !ok {
			cur := *s.Furniture.Style(t)
			st = &cur
			styles[t] = st
		}
		return st
	}
	for t, h := range doc.FurnitureHues {
		style(t).Hue = h
	}
	for t, sz := range doc.FurnitureSizes {
		style(t).Size = sz
	}
	for t, r := range doc.FurnitureRotations {
		style(t).Rotation = r
	}

	// commit
	pl := doc.Player
	s.Player.Restore(geom.Point{X: pl.X, Y: pl.Y}, pl.IsCat, pl.Speed, pl.BaseSpeed, fromMillis(pl.SpeedBoostEndTime), pl.FacingRight)
	s.Player.BoostColor = pl.BoostColor
	s.Level.Restore(doc.Level, doc.XP, doc.XPToNextLevel)
	s.Cash = doc.CatCash
	s.Jar.Set(doc.FireflyCount)

	s.Session.Restore(fromMillis(doc.SessionTime))
	s.Clock.Restore(fromMillis(doc.GameTime), doc.IsNight)
	s.Sky = clock.Tick{TimeOfDay: s.Clock.TimeOfDay(), IsNight: doc.IsNight}
	s.Camera = Camera{X: doc.Camera.X, Y: doc.Camera.Y}

	s.Chain.Reset(chain)
	s.Dropped = dropped
	s.Items = items
	s.Chests = chests
	s.Fireflies.Restore(fireflies)
	s.Projectiles = nil
	s.Particles = nil
	s.Effects.Clear()
	s.Furniture.Restore(houses, styles)

	s.Indoors = false
	s.HouseID = ""
	s.HasExit = false
	return nil
}

// Save writes the current game to SaveDir.
func (g *Game) Save() {
	var music *audio.State
	if g.Music != nil {
		st := g.Music.State()
		music = &st
	}
	doc := g.State.Snapshot(g.now(), music)
	path, err := save.WriteFile(g.SaveDir, doc)
	if err != nil {
		log.Printf("Warning: Save failed: %v", err)
		g.ShowMessage("Save failed")
		return
	}
	log.Printf("Saved game to %s", path)
	g.ShowMessage("Game saved")
}

// Load restores the newest save in SaveDir. On any error the running game
// is left untouched.
func (g *Game) Load() {
	path, err := save.Latest(g.SaveDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			g.ShowMessage("No saved game found")
			return
		}
		log.Printf("Warning: Load failed: %v", err)
		g.ShowMessage("Load failed")
		return
	}
	doc, err := save.ReadFile(path)
	if err == nil {
		err = g.State.Apply(doc)
	}
	if err != nil {
		log.Printf("Warning: Load failed for %s: %v", path, err)
		g.ShowMessage("Load failed")
		return
	}

	g.Editor = nil
	g.slider = sliderDrag{}
	g.clearHueCache()
	if g.Music != nil && doc.Audio != nil {
		g.Music.Restore(*doc.Audio)
	}
	if doc.IsInsideHouse {
		b, _ := g.State.Village.Building(doc.CurrentHouseID)
		g.enterHouse(b)
	}
	log.Printf("Loaded game from %s", path)
	g.ShowMessage("Game loaded")
}
