package ansiart

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestFromImage(t *testing.T) {
	art := FromImage(solid(16, 16, color.RGBA{R: 200, A: 255}), 3, 2)

	assert.Equal(t, "▀▀▀\n▀▀▀\n", Strip(art))
	assert.Equal(t, 3, Width(art))
	assert.Contains(t, art, "\x1b[38;2;")
	assert.Contains(t, art, "\x1b[0m")
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "plain", Strip("plain"))
	assert.Equal(t, "ab", Strip("\x1b[38;2;1;2;3ma\x1b[0mb"))
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lob"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lob", "dm.png"), []byte("x"), 0644))

	p, err := Find(dir, "lob/dm.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lob", "dm.png"), p)

	p, err = Find(dir, "lob/dm")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lob", "dm.png"), p)

	_, err = Find(dir, "lob/missing")
	assert.Error(t, err)

	_, err = Find(dir, "")
	assert.Error(t, err)
}

func TestCached(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "card.png")
	writePNG(t, imgPath, solid(8, 8, color.RGBA{G: 255, A: 255}))
	cacheDir := filepath.Join(dir, "cache")

	art, err := Cached(imgPath, cacheDir)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, Width(art))
	assert.Len(t, strings.Split(strings.TrimSuffix(art, "\n"), "\n"), DefaultHeight)

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".ansi"))

	// A second call reads the cache even after the image is gone.
	require.NoError(t, os.Remove(imgPath))
	again, err := Cached(imgPath, cacheDir)
	require.NoError(t, err)
	assert.Equal(t, art, again)
}

func TestGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Generate(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	_, err = Generate(bad)
	assert.Error(t, err)
}
