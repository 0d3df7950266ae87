// Package placeholders writes flat stand-in art for every image in the asset
// manifest, so the game can run from a checkout without the real graphics.
package placeholders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/cattown/internal/assets"
)

// SpriteSize is the edge of every generated sprite; tiles use TileSize.
const (
	SpriteSize = 64
	TileSize   = 128
)

var (
	transparent = color.RGBA{}
	outline     = color.RGBA{40, 30, 30, 255}
)

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBorderedTile creates a tile with a border
func CreateBorderedTile(fillColor, borderColor color.RGBA, size, borderWidth int) *image.RGBA {
	img := CreateSolidTile(fillColor, size)
	for i := 0; i < borderWidth; i++ {
		for x := 0; x < size; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, size-1-i, borderColor)
		}
		for y := 0; y < size; y++ {
			img.Set(i, y, borderColor)
			img.Set(size-1-i, y, borderColor)
		}
	}
	return img
}

// CreateCircle creates a round sprite on a transparent background.
func CreateCircle(fillColor, outlineColor color.RGBA, size int) *image.RGBA {
	img := CreateSolidTile(transparent, size)
	center := size / 2
	radius := size/2 - 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-center, y-center
			distSq := dx*dx + dy*dy
			if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, outlineColor)
			}
		}
	}
	return img
}

// Sprite picks the stand-in for one manifest key.
func Sprite(key string) *image.RGBA {
	col := assets.Placeholder(key)
	switch {
	case key == assets.Grass || key == assets.Floorboards:
		return CreateSolidTile(col, TileSize)
	case key == assets.Firefly || strings.HasPrefix(key, "friend_") || strings.HasPrefix(key, "tree"):
		return CreateCircle(col, assets.Darken(col, 0.6), SpriteSize)
	case strings.HasSuffix(key, "_lights"):
		return CreateBorderedTile(col, color.RGBA{255, 210, 120, 255}, SpriteSize, 4)
	}
	return CreateBorderedTile(col, outline, SpriteSize, 2)
}

// Encode writes img in the format implied by name's extension.
func Encode(w io.Writer, name string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case ".png":
		return png.Encode(w, img)
	}
	return fmt.Errorf("unsupported image type %q", filepath.Ext(name))
}

// Generate writes a stand-in for every manifest entry under root. Existing
// files are kept unless force is set. It returns how many files it wrote.
func Generate(root string, manifest []assets.Entry, force bool) (int, error) {
	written := 0
	var errs []error
	for _, e := range manifest {
		path := filepath.Join(root, e.Path)
		if !force {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}
		if err := writeFile(path, Sprite(e.Key)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Key, err))
			continue
		}
		written++
	}
	if len(errs) > 0 {
		log.Printf("Warning: %d placeholders failed", len(errs))
	}
	return written, errors.Join(errs...)
}

func writeFile(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(file, path, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
