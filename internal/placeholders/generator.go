// Package placeholders draws stand-in background images for maps whose
// artwork has not been made yet.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"chosenoffset.com/quizfield/internal/world"
)

// ColorPalette defines colors for the generated tiles (meadow theme)
var ColorPalette = struct {
	Grass1 color.RGBA
	Grass2 color.RGBA
	Flower color.RGBA
	Wall   color.RGBA
	Exit   color.RGBA
	Border color.RGBA
}{
	Grass1: color.RGBA{70, 130, 60, 255},
	Grass2: color.RGBA{60, 118, 52, 255},
	Flower: color.RGBA{230, 220, 120, 255},
	Wall:   color.RGBA{120, 110, 100, 255},
	Exit:   color.RGBA{150, 120, 70, 255},
	Border: color.RGBA{80, 72, 64, 255},
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(size int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBorderedTile creates a tile with a border
func CreateBorderedTile(size int, fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolidTile(size, fillColor)
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

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(size int, baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(size, baseColor)

	switch pattern {
	case "dots":
		quarter := size / 4
		threeQuarter := 3 * size / 4
		for _, p := range []image.Point{{quarter, quarter}, {threeQuarter, threeQuarter}} {
			img.Set(p.X, p.Y, patternColor)
		}
	case "diagonal":
		for i := 0; i < size; i++ {
			img.Set(i, i, patternColor)
			img.Set(i, size-1-i, patternColor)
		}
	}

	return img
}

// MapImage lays out one tile per map cell: checkered grass, bordered walls
// and crossed exit tiles.
func MapImage(m *world.MapDescriptor, tileSize int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.Width*tileSize, m.Height*tileSize))

	grass := [2]*image.RGBA{
		CreatePatternedTile(tileSize, ColorPalette.Grass1, ColorPalette.Flower, "dots"),
		CreateSolidTile(tileSize, ColorPalette.Grass2),
	}
	wall := CreateBorderedTile(tileSize, ColorPalette.Wall, ColorPalette.Border, 1)
	exit := CreatePatternedTile(tileSize, ColorPalette.Exit, ColorPalette.Border, "diagonal")

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := world.Position{X: x, Y: y}
			tile := grass[(x+y)%2]
			if m.IsBlocked(p) {
				tile = wall
			} else if _, ok := m.ExitAt(p); ok {
				tile = exit
			}
			dst := image.Rect(x*tileSize, y*tileSize, (x+1)*tileSize, (y+1)*tileSize)
			draw.Draw(img, dst, tile, image.Point{}, draw.Src)
		}
	}
	return img
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// GenerateMissing writes a placeholder for every map in maps whose image is
// named but absent under dir. Existing files are left alone. It returns the
// paths it wrote.
func GenerateMissing(maps *world.Registry, dir string, tileSize int) ([]string, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", tileSize)
	}
	var written []string
	for _, id := range maps.IDs() {
		m, _ := maps.Get(id)
		if m.Image == "" {
			continue
		}
		path := m.Image
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, err
		}
		if err := SavePNG(MapImage(m, tileSize), path); err != nil {
			return written, fmt.Errorf("map %q: %w", id, err)
		}
		written = append(written, path)
	}
	return written, nil
}
