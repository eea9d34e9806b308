package loaders

import (
	"image"
	"image/color"
	"testing"

	"github.com/spaghettifunk/shady/engine/math"
	"github.com/stretchr/testify/assert"
)

func TestSampleRGB(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	src.Set(1, 0, color.RGBA{G: 255, A: 255})
	src.Set(0, 1, color.RGBA{B: 255, A: 255})
	src.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img := NewImage("quad", src)

	assert.Equal(t, math.NewVec3(1, 0, 0), img.SampleRGB(math.NewVec2(0, 0)))
	assert.Equal(t, math.NewVec3(0, 1, 0), img.SampleRGB(math.NewVec2(1, 0)))
	assert.Equal(t, math.NewVec3(0, 0, 1), img.SampleRGB(math.NewVec2(0, 1)))
	assert.Equal(t, math.NewVec3(1, 1, 1), img.SampleRGB(math.NewVec2(1, 1)))
	// no filtering, and out of range coordinates clamp
	assert.Equal(t, math.NewVec3(1, 0, 0), img.SampleRGB(math.NewVec2(0.9, 0.4)))
	assert.Equal(t, math.NewVec3(1, 1, 1), img.SampleRGB(math.NewVec2(7, 7)))
	assert.Equal(t, math.NewVec3(1, 0, 0), img.SampleRGB(math.NewVec2(-1, -1)))
}

func TestNewImageFromOffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(4, 4, 7, 6))
	src.SetGray(4, 4, color.Gray{Y: 255})
	img := NewImage("gray", src)

	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(2, 1))
}
