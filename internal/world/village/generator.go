// Package village generates the world map: the fountain landmark, the ring
// of houses around it, the village trees and the forest that thickens with
// distance, and the chests and hearts scattered across it all.
package village

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"chosenoffset.com/cattown/internal/core/geom"
	"chosenoffset.com/cattown/internal/entity"
	"chosenoffset.com/cattown/internal/loot"
	"chosenoffset.com/cattown/internal/simulation"
)

// Village is the immutable world geometry.
type Village struct {
	Width     float64
	Height    float64
	Area      geom.Rect // the village proper, free of forest
	Fountain  entity.Fountain
	Buildings []entity.Building
	Trees     []entity.Tree
}

// Geometry returns the collision view of the village.
func (v *Village) Geometry() *entity.Geometry {
	return &entity.Geometry{Buildings: v.Buildings, Trees: v.Trees}
}

// Bounds returns the world rectangle.
func (v *Village) Bounds() geom.Rect {
	return geom.Rect{W: v.Width, H: v.Height}
}

// Landmark returns the fountain centre.
func (v *Village) Landmark() geom.Point {
	return v.Fountain.Center()
}

// Building finds a building by id.
func (v *Village) Building(id string) (entity.Building, bool) {
	for _, b := range v.Buildings {
		if b.ID == id {
			return b, true
		}
	}
	return entity.Building{}, false
}

// PlayerSpawn returns the top-left corner for a player of size w×h standing
// centred below the fountain.
func (v *Village) PlayerSpawn(w, h, below float64) geom.Point {
	f := v.Fountain.Rect
	return geom.Point{X: f.X + f.W/2 - w/2, Y: f.Bottom() + below}
}

// Generator builds villages from a config and a seeded random source.
type Generator struct {
	cfg   *simulation.Config
	table *loot.Table
	rng   *rand.Rand
}

// NewGenerator creates a generator. The same seed always produces the same world.
func NewGenerator(cfg *simulation.Config, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg, table: loot.NewTable(cfg.Chests), rng: rng}
}

// Generate lays out the fountain, houses and trees.
func (g *Generator) Generate() *Village {
	wc := g.cfg.World
	v := &Village{Width: wc.Width, Height: wc.Height}

	center := geom.Point{X: wc.Width / 2, Y: wc.Height / 2}
	v.Area = geom.Rect{
		X: center.X - wc.VillageWidth/2,
		Y: center.Y - wc.VillageHeight/2,
		W: wc.VillageWidth,
		H: wc.VillageHeight,
	}
	v.Fountain = entity.Fountain{Rect: geom.Rect{
		X: center.X - wc.FountainSize/2,
		Y: center.Y - wc.FountainSize/2,
		W: wc.FountainSize,
		H: wc.FountainSize,
	}}

	g.placeHouses(v)
	g.placeVillageTrees(v)
	g.placeForest(v)

	log.Printf("Generated village: %d buildings, %d trees", len(v.Buildings), len(v.Trees))
	return v
}

func (g *Generator) placeHouses(v *Village) {
	wc := g.cfg.World
	if wc.Houses <= 0 {
		return
	}
	f := v.Fountain.Rect
	step := 2 * math.Pi / float64(wc.Houses)

	// the player's house sits at angle zero, pushed one fountain half further out
	v.Buildings = append(v.Buildings, entity.Building{
		ID: entity.PlayerHouseID,
		Rect: geom.Rect{
			X: f.X + f.W + wc.HouseRadius - wc.HouseWidth/2,
			Y: f.Y + f.H - wc.HouseHeight/2,
			W: wc.HouseWidth,
			H: wc.HouseHeight,
		},
		HouseType: 1,
	})

	for i := 1; i < wc.Houses; i++ {
		a := float64(i) * step
		c := f.Center().Add(geom.Polar(a, wc.HouseRadius))
		v.Buildings = append(v.Buildings, entity.Building{
			ID:        fmt.Sprintf("house_%d", i-1),
			Rect:      geom.Rect{X: c.X - wc.HouseWidth/2, Y: c.Y - wc.HouseHeight/2, W: wc.HouseWidth, H: wc.HouseHeight},
			HouseType: 1 + g.rng.Intn(max(wc.HouseTypes, 1)),
		})
	}
}

// treeFits checks the spacing rules shared by village and forest trees.
func (g *Generator) treeFits(v *Village, p geom.Point) bool {
	wc := g.cfg.World
	for _, b := range v.Buildings {
		if geom.Dist(p, b.Rect.Center()) < wc.TreeHouseGap {
			return false
		}
	}
	if geom.Dist(p, v.Landmark()) < wc.TreeFountainGap {
		return false
	}
	for _, t := range v.Trees {
		if geom.Dist(p, t.Base) < wc.TreeGap {
			return false
		}
	}
	return true
}

func (g *Generator) newTree(p geom.Point) entity.Tree {
	return entity.Tree{Base: p, W: 120, H: 160, Trunk: 30, Type: g.rng.Intn(max(g.cfg.World.TreeTypes, 1))}
}

func (g *Generator) placeVillageTrees(v *Village) {
	wc := g.cfg.World
	for i := 0; i < wc.VillageTrees; i++ {
		for attempt := 0; attempt < wc.TreeAttempts; attempt++ {
			p := geom.Point{
				X: v.Area.X + g.rng.Float64()*v.Area.W,
				Y: v.Area.Y + g.rng.Float64()*v.Area.H,
			}
			if g.treeFits(v, p) {
				v.Trees = append(v.Trees, g.newTree(p))
				break
			}
		}
	}
}

// placeForest samples the world outside the village. The chance of keeping
// a sample rises linearly with distance from the centre, reaching its
// maximum halfway to the corners.
func (g *Generator) placeForest(v *Village) {
	wc := g.cfg.World
	center := geom.Point{X: v.Width / 2, Y: v.Height / 2}
	maxDist := math.Hypot(v.Width/2, v.Height/2)

	for i := 0; i < wc.ForestSamples; i++ {
		p := geom.Point{X: g.rng.Float64() * v.Width, Y: g.rng.Float64() * v.Height}
		if p.X > v.Area.X && p.X < v.Area.Right() && p.Y > v.Area.Y && p.Y < v.Area.Bottom() {
			continue
		}
		if !g.treeFits(v, p) {
			continue
		}
		if g.rng.Float64() < ForestChance(geom.Dist(p, center), maxDist, wc) {
			v.Trees = append(v.Trees, g.newTree(p))
		}
	}
}

// ForestChance is the probability of keeping a forest sample at distance d.
func ForestChance(d, maxDist float64, wc simulation.WorldConfig) float64 {
	n := math.Min(d/(maxDist*0.5), 1)
	return wc.ForestMinChance + n*(wc.ForestMaxChance-wc.ForestMinChance)
}

// ScatterChests places chests by rejection sampling. Each round tries a
// bounded number of positions; a valid position still only becomes a chest
// if its tier's spawn roll succeeds.
func (g *Generator) ScatterChests(v *Village) []*entity.Chest {
	cc := g.cfg.Chests
	var chests []*entity.Chest
	landmark := v.Landmark()

	for round := 0; round < cc.Rounds; round++ {
		var (
			pos   geom.Point
			tier  int
			found bool
		)
		for attempt := 0; attempt < cc.Attempts && !found; attempt++ {
			pos = geom.Point{
				X: cc.EdgeMargin + g.rng.Float64()*(v.Width-2*cc.EdgeMargin),
				Y: cc.EdgeMargin + g.rng.Float64()*(v.Height-2*cc.EdgeMargin),
			}
			d := geom.Dist(pos, landmark)
			tier = g.table.TierForDistance(d)
			found = d >= cc.FountainGap && g.chestFits(v, chests, pos, tier)
		}
		if !found {
			continue
		}
		row := g.table.Get(tier)
		if row.ShouldSpawn(g.rng) {
			chests = append(chests, entity.NewChest(g.rng, pos, row, cc))
		}
	}

	log.Printf("Scattered %d chests", len(chests))
	return chests
}

func (g *Generator) chestFits(v *Village, chests []*entity.Chest, p geom.Point, tier int) bool {
	cc := g.cfg.Chests
	for _, b := range v.Buildings {
		// close to a house is fine only when clearly in front of it
		if geom.Dist(p, b.Rect.Min()) < cc.HouseGap && p.Y < b.Rect.Y+cc.HouseFrontGap {
			return false
		}
	}
	for _, t := range v.Trees {
		if geom.Dist(p, t.Base) < cc.TreeGap {
			return false
		}
	}
	for _, c := range chests {
		if geom.Dist(p, c.Pos) < loot.Separation(cc, tier, c.Tier.Index) {
			return false
		}
	}
	return true
}

// ScatterItems drops hearts uniformly over the world.
func (g *Generator) ScatterItems(v *Village) []*entity.Item {
	ic := g.cfg.Items
	items := make([]*entity.Item, 0, ic.Count)
	for i := 0; i < ic.Count; i++ {
		p := geom.Point{X: g.rng.Float64() * v.Width, Y: g.rng.Float64() * v.Height}
		items = append(items, entity.NewItem(g.rng, p, ic.Size))
	}
	return items
}
