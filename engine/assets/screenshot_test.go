package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextScreenshotName(t *testing.T) {
	dir := t.TempDir()
	name, err := NextScreenshotName(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "00000.png"), name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "00000.png"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "00002.png"), nil, 0o644))
	name, err = NextScreenshotName(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "00001.png"), name)
}

func TestFlipVertical(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	dst := FlipVertical(src)
	require.Equal(t, src.Bounds(), dst.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, src.NRGBAAt(x, 2-y), dst.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestSaveScreenshot(t *testing.T) {
	dir := t.TempDir()
	// bottom row red, top row blue
	pixels := []uint8{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	name, err := SaveScreenshot(dir, pixels, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "00000.png"), name)

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b)
	r, _, b, _ = img.At(1, 1).RGBA()
	assert.NotZero(t, r)
	assert.Zero(t, b)

	name, err = SaveScreenshot(dir, pixels, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "00001.png"), name)
}

func TestSaveScreenshotEncodeFailure(t *testing.T) {
	dir := t.TempDir()
	errDisk := errors.New("disk full")
	encodePNG = func(io.Writer, image.Image) error { return errDisk }
	t.Cleanup(func() { encodePNG = png.Encode })

	_, err := SaveScreenshot(dir, make([]uint8, 16), 2, 2)
	require.ErrorIs(t, err, errDisk)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	name, err := NextScreenshotName(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "00000.png"), name)
}

func TestSaveScreenshotShortBuffer(t *testing.T) {
	_, err := SaveScreenshot(t.TempDir(), make([]uint8, 15), 2, 2)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	_, err = SaveScreenshot(t.TempDir(), nil, 0, 2)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}
