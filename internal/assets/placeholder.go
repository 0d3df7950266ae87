package assets

import (
	"image/color"
	"strings"
)

// Palette holds the flat colours drawn in place of missing images.
var Palette = struct {
	Girl      color.RGBA
	Cat       color.RGBA
	House     color.RGBA
	Friend    color.RGBA
	Furniture color.RGBA
	Tree      color.RGBA
	Grass     color.RGBA
	Floor     color.RGBA
	Firefly   color.RGBA
	Jar       color.RGBA
	Fountain  color.RGBA
	Title     color.RGBA
	Unknown   color.RGBA
}{
	Girl:      color.RGBA{255, 160, 200, 255}, // Pink dress
	Cat:       color.RGBA{240, 150, 60, 255},  // Ginger
	House:     color.RGBA{150, 100, 70, 255},  // Timber brown
	Friend:    color.RGBA{220, 220, 220, 255},
	Furniture: color.RGBA{180, 140, 100, 255},
	Tree:      color.RGBA{40, 120, 50, 255},
	Grass:     color.RGBA{110, 170, 80, 255},
	Floor:     color.RGBA{160, 120, 80, 255},
	Firefly:   color.RGBA{255, 240, 120, 255},
	Jar:       color.RGBA{190, 220, 230, 255},
	Fountain:  color.RGBA{140, 170, 200, 255},
	Title:     color.RGBA{255, 255, 255, 255},
	Unknown:   color.RGBA{255, 0, 255, 255}, // Magenta so it stands out
}

var chestPalette = map[string]color.RGBA{
	"purple":  {128, 0, 128, 255},
	"green":   {0, 160, 0, 255},
	"blue":    {30, 60, 220, 255},
	"red":     {200, 30, 30, 255},
	"magenta": {255, 0, 255, 255},
}

// Placeholder returns the colour to fill an image's rectangle with when the
// image is not available.
func Placeholder(key string) color.RGBA {
	switch category(key) {
	case "girl":
		return Palette.Girl
	case "cat":
		return Palette.Cat
	case "fountain":
		return Palette.Fountain
	case "house":
		return Palette.House
	case "friend":
		return Palette.Friend
	case "furniture":
		return Palette.Furniture
	case "tree":
		return Palette.Tree
	case "jar":
		return Palette.Jar
	case "chest":
		c := strings.TrimPrefix(key, "chest_")
		c = strings.TrimSuffix(strings.TrimSuffix(c, "_full"), "_empty")
		if col, ok := chestPalette[c]; ok {
			if strings.HasSuffix(key, "_empty") {
				return Darken(col, 0.6)
			}
			return col
		}
	case Grass:
		return Palette.Grass
	case Floorboards:
		return Palette.Floor
	case Firefly:
		return Palette.Firefly
	case Title:
		return Palette.Title
	}
	return Palette.Unknown
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
