package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"encounterhud/pkg/hud/paths"
)

func testCache(t *testing.T) (*Cache, paths.Paths) {
	t.Helper()
	p, err := paths.Resolve(t.TempDir())
	require.NoError(t, err)
	return New(p), p
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestImage_CachesDecodedResult(t *testing.T) {
	c, p := testCache(t)
	writePNG(t, p.FromBase("hero.png"), 8, 8)

	first, err := c.Image("hero.png")
	require.NoError(t, err)
	second, err := c.Image("hero.png")
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestImage_MissingFileErrors(t *testing.T) {
	c, _ := testCache(t)
	_, err := c.Image("nope.png")
	require.Error(t, err)
}

func TestPortrait_ScalesOnce(t *testing.T) {
	c, p := testCache(t)
	writePNG(t, p.FromBase("hero.png"), 64, 32)

	scaled, err := c.Portrait("hero.png", 0.5)
	require.NoError(t, err)
	require.Equal(t, 32, scaled.Bounds().Dx())
	require.Equal(t, 16, scaled.Bounds().Dy())

	again, err := c.Portrait("hero.png", 0.5)
	require.NoError(t, err)
	require.Same(t, scaled, again)
}

func TestPortrait_UnitScaleReturnsOriginal(t *testing.T) {
	c, p := testCache(t)
	writePNG(t, p.FromBase("hero.png"), 10, 10)

	orig, err := c.Image("hero.png")
	require.NoError(t, err)
	same, err := c.Portrait("hero.png", 1)
	require.NoError(t, err)
	require.Same(t, orig, same)
}

func TestInvalidateImages_DropsCache(t *testing.T) {
	c, p := testCache(t)
	writePNG(t, p.FromBase("hero.png"), 4, 4)

	first, err := c.Image("hero.png")
	require.NoError(t, err)
	c.InvalidateImages()
	second, err := c.Image("hero.png")
	require.NoError(t, err)
	require.NotSame(t, first, second)
}

func TestStatusIcons_KeyedByLowercaseStem(t *testing.T) {
	c, p := testCache(t)
	writePNG(t, filepath.Join(p.StatusIconDir(), "Poisoned.png"), 24, 24)
	writePNG(t, filepath.Join(p.StatusIconDir(), "on_fire.png"), 24, 24)

	icon, ok := c.StatusIcon("poisoned")
	require.True(t, ok)
	require.NotNil(t, icon)
	require.True(t, c.HasStatusIcon("on_fire"))
	require.False(t, c.HasStatusIcon("stunned"))
}

func TestStatusIcons_MissingDirectoryHasNoIcons(t *testing.T) {
	c, _ := testCache(t)
	require.False(t, c.HasStatusIcon("poisoned"))
}

func TestStatusIcons_RefreshPicksUpNewFiles(t *testing.T) {
	c, p := testCache(t)
	require.False(t, c.HasStatusIcon("stunned"))

	writePNG(t, filepath.Join(p.StatusIconDir(), "stunned.png"), 24, 24)
	c.RefreshStatusIcons()
	require.True(t, c.HasStatusIcon("stunned"))
}

func TestFace_CachedPerFamilyAndSize(t *testing.T) {
	c, _ := testCache(t)

	a := c.Face("Consolas", 12)
	b := c.Face("Consolas", 12)
	require.Same(t, a, b)

	larger := c.Face("Consolas", 14)
	require.NotSame(t, a, larger)
	require.Same(t, a.Source, larger.Source)
}

func TestFace_MonospaceHintSelectsMonoFallback(t *testing.T) {
	c, _ := testCache(t)

	mono := c.Face("Consolas", 12)
	sans := c.Face("Georgia", 12)
	require.NotSame(t, mono.Source, sans.Source)
}
