package placeholders

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/quizfield/internal/world"
)

func testMap() *world.MapDescriptor {
	return &world.MapDescriptor{
		ID:      "world",
		Image:   "art/world.png",
		Width:   3,
		Height:  2,
		Blocked: map[world.Position]struct{}{{X: 1, Y: 0}: {}},
		Exits:   map[world.Position]world.Exit{{X: 2, Y: 1}: {Target: "world"}},
	}
}

func TestMapImageTiles(t *testing.T) {
	img := MapImage(testMap(), 8)
	assert.Equal(t, 24, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	// wall tile is bordered
	assert.Equal(t, ColorPalette.Border, img.RGBAAt(8, 0))
	assert.Equal(t, ColorPalette.Wall, img.RGBAAt(12, 4))
	// exit tile has a diagonal
	assert.Equal(t, ColorPalette.Border, img.RGBAAt(16, 8))
	// checkered grass
	assert.Equal(t, ColorPalette.Grass2, img.RGBAAt(1, 9))
}

func TestGenerateMissing(t *testing.T) {
	dir := t.TempDir()
	reg, err := world.NewRegistry(testMap(), &world.MapDescriptor{ID: "plain", Width: 1, Height: 1})
	require.NoError(t, err)

	written, err := GenerateMissing(reg, dir, 4)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "art", "world.png")}, written)

	f, err := os.Open(written[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())

	written, err = GenerateMissing(reg, dir, 4)
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestGenerateMissingRejectsTileSize(t *testing.T) {
	reg, err := world.NewRegistry(testMap())
	require.NoError(t, err)

	_, err = GenerateMissing(reg, t.TempDir(), 0)
	assert.Error(t, err)
}
