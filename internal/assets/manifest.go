// Package assets lists every image the game draws, loads them concurrently
// behind a count-based readiness gate, and supplies flat placeholder colours
// for images that failed.
package assets

import (
	"fmt"
	"path"
	"strings"
)

// Entry maps an image key to its file, relative to the asset root.
type Entry struct {
	Key  string
	Path string
}

// Fixed image keys.
const (
	GirlWalking1 = "girl_walking1"
	GirlWalking2 = "girl_walking2"
	Cat          = "cat"
	CatWalking1  = "cat_walking1"
	CatWalking2  = "cat_walking2"
	CatYawning   = "cat_yawning"
	CatLicking   = "cat_licking_paw"
	CatSleeping  = "cat_sleeping"
	Grass        = "grass_tile"
	Floorboards  = "floorboards"
	Firefly      = "firefly"
	JarEmpty     = "jar_empty"
	JarFull      = "jar_full"
	Fountain     = "cat_fountain"
	Title        = "title"
)

var (
	chestColors    = []string{"purple", "green", "blue", "red", "magenta"}
	friendKinds    = []string{"kitten1", "kitten2", "kitten3", "frog", "squirrel", "puppy", "bunny"}
	furnitureKinds = []string{"bed", "table", "chair", "rug", "plant", "lamp"}
	treeFiles      = []string{"tree1.png", "tree2.png", "pinetree.png"}
)

// HouseKey names the sprite for a house type (1-based), lit or unlit.
func HouseKey(houseType int, lights bool) string {
	if lights {
		return fmt.Sprintf("house%d_lights", houseType)
	}
	return fmt.Sprintf("house%d", houseType)
}

// FriendKey names a companion sprite.
func FriendKey(kind string) string {
	return "friend_" + kind
}

// FurnitureKey names a furniture sprite.
func FurnitureKey(kind string) string {
	return "furniture_" + kind
}

// ChestKey names a chest sprite by tier colour and state.
func ChestKey(color string, opened bool) string {
	if opened {
		return "chest_" + color + "_empty"
	}
	return "chest_" + color + "_full"
}

// TreeKey names a tree sprite by type index.
func TreeKey(treeType int) string {
	return fmt.Sprintf("tree%d", treeType)
}

// Manifest returns the full image list in load order.
func Manifest() []Entry {
	m := []Entry{
		{GirlWalking1, "graphics/girl-walking1.png"},
		{GirlWalking2, "graphics/girl-walking2.png"},
		{Cat, "graphics/cat/cat.png"},
		{CatWalking1, "graphics/cat/cat-walking1.png"},
		{CatWalking2, "graphics/cat/cat-walking2.png"},
		{CatYawning, "graphics/cat/cat-yawning.png"},
		{CatLicking, "graphics/cat/cat-licking-paw.png"},
		{CatSleeping, "graphics/cat/cat-sleeping.png"},
	}
	for t := 1; t <= 4; t++ {
		m = append(m,
			Entry{HouseKey(t, false), fmt.Sprintf("graphics/houses/house%d.png", t)},
			Entry{HouseKey(t, true), fmt.Sprintf("graphics/houses/house%d-with-lights.png", t)},
		)
	}
	for _, k := range friendKinds {
		m = append(m, Entry{FriendKey(k), "graphics/friends/" + k + ".png"})
	}
	for _, k := range furnitureKinds {
		m = append(m, Entry{FurnitureKey(k), "graphics/house-items/" + k + ".png"})
	}
	for _, c := range chestColors {
		m = append(m,
			Entry{ChestKey(c, false), "graphics/chests/" + c + "-chest-full.png"},
			Entry{ChestKey(c, true), "graphics/chests/" + c + "-chest-empty.png"},
		)
	}
	for i, f := range treeFiles {
		m = append(m, Entry{TreeKey(i), path.Join("graphics/trees", f)})
	}
	m = append(m,
		Entry{Grass, "graphics/grass_tile.jpg"},
		Entry{Floorboards, "graphics/floorboards.jpg"},
		Entry{Firefly, "graphics/fireflies/firefly.png"},
		Entry{JarEmpty, "graphics/fireflies/empty-jar.png"},
		Entry{JarFull, "graphics/fireflies/full-jar.png"},
		Entry{Fountain, "graphics/cat/cat-fountain.png"},
		Entry{Title, "graphics/title.png"},
	)
	return m
}

// category returns the key's family, used to pick a placeholder colour.
func category(key string) string {
	switch {
	case strings.HasPrefix(key, "girl"):
		return "girl"
	case strings.HasPrefix(key, "cat_fountain"):
		return "fountain"
	case strings.HasPrefix(key, "cat"):
		return "cat"
	case strings.HasPrefix(key, "house"):
		return "house"
	case strings.HasPrefix(key, "friend_"):
		return "friend"
	case strings.HasPrefix(key, "furniture_"):
		return "furniture"
	case strings.HasPrefix(key, "chest_"):
		return "chest"
	case strings.HasPrefix(key, "tree"):
		return "tree"
	case strings.HasPrefix(key, "jar"):
		return "jar"
	default:
		return key
	}
}
