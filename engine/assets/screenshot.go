package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/spaghettifunk/shady/engine/core"
)

// Highest screenshot number tried before giving up.
const maxScreenshotIndex = 99999

// Replaced in tests.
var encodePNG = png.Encode

/**
 * @brief Returns the first NNNNN.png in dir that does not exist yet,
 * scanning from 00000. Fails with core.ErrNoFreeFilename when all are taken.
 */
func NextScreenshotName(dir string) (string, error) {
	for i := 0; i <= maxScreenshotIndex; i++ {
		name := filepath.Join(dir, fmt.Sprintf("%05d.png", i))
		_, err := os.Stat(name)
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%s: %w", dir, core.ErrNoFreeFilename)
}

// FlipVertical turns a bottom row first framebuffer read into a top row
// first image.
func FlipVertical(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	s2d := f64.Aff3{
		1, 0, float64(-b.Min.X),
		0, -1, float64(b.Dy() + b.Min.Y),
	}
	draw.NearestNeighbor.Transform(dst, s2d, src, b, draw.Src, nil)
	return dst
}

/**
 * @brief Saves RGBA pixels read back from the framebuffer (bottom row
 * first) as the next free screenshot in dir and returns its path.
 */
func SaveScreenshot(dir string, pixels []uint8, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) < width*height*4 {
		return "", fmt.Errorf("screenshot %dx%d from %d bytes: %w", width, height, len(pixels), core.ErrInvalidConfig)
	}
	name, err := NextScreenshotName(dir)
	if err != nil {
		return "", err
	}
	shot := &image.NRGBA{
		Pix:    pixels[:width*height*4],
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	if err := encodePNG(f, FlipVertical(shot)); err != nil {
		f.Close()
		// a partial file would take the number for good
		os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	core.LogInfo("saved screenshot %s", name)
	return name, nil
}
