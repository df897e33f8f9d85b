package texture_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskwillow/moviemaker/texture"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return name
}

func TestLoadFromPathResolvesAgainstSourceRoot(t *testing.T) {
	dir := t.TempDir()
	rel := writePNG(t, dir, "sprite.png", 4, 4, color.RGBA{10, 20, 30, 255})

	reg := texture.NewRegistry(dir)
	id, err := reg.LoadFromPath(rel, "sprite")
	require.NoError(t, err)
	assert.Equal(t, "sprite", id)

	tex := reg.Get("sprite")
	assert.Equal(t, 4, tex.OriginWidth)
	assert.Equal(t, 4, tex.OriginHeight)
}

func TestLoadFromPathMissingFileErrors(t *testing.T) {
	reg := texture.NewRegistry(t.TempDir())
	_, err := reg.LoadFromPath("nope.png", "x")
	assert.Error(t, err)
}

func TestInsertSynthIsFindableByName(t *testing.T) {
	reg := texture.NewRegistry(t.TempDir())
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	id := reg.InsertSynth(img, "bans-50")

	byName, ok := reg.ByName("bans-50")
	require.True(t, ok)
	assert.Equal(t, id, byName.ID)
}

func TestGetOnUnloadedIDPanics(t *testing.T) {
	reg := texture.NewRegistry(t.TempDir())
	assert.Panics(t, func() {
		reg.Get("missing")
	})
}

func TestLoadFromPathOverwriteKeepsLatest(t *testing.T) {
	dir := t.TempDir()
	small := writePNG(t, dir, "small.png", 2, 2, color.RGBA{1, 1, 1, 255})
	big := writePNG(t, dir, "big.png", 8, 8, color.RGBA{2, 2, 2, 255})

	reg := texture.NewRegistry(dir)
	_, err := reg.LoadFromPath(small, "shared")
	require.NoError(t, err)
	_, err = reg.LoadFromPath(big, "shared")
	require.NoError(t, err)

	assert.Equal(t, 8, reg.Get("shared").OriginWidth)
}
