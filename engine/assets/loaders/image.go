package loaders

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

// Image is a decoded picture in 8 bit non-premultiplied RGBA, top row first.
type Image struct {
	Name string
	*image.NRGBA
}

// NewImage converts any decoded image to NRGBA.
func NewImage(name string, src image.Image) *Image {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Image{Name: name, NRGBA: dst}
}

func (img *Image) Width() int  { return img.Rect.Dx() }
func (img *Image) Height() int { return img.Rect.Dy() }

/**
 * @brief Returns the colour at texture coordinate tc in [0,1]. The pixel
 * is (int(s*(W-1)), int(t*(H-1))), without filtering; coordinates
 * outside [0,1] are clamped.
 */
func (img *Image) SampleRGB(tc math.Vec2) math.Vec3 {
	s := math.Clamp(tc.X, 0, 1)
	t := math.Clamp(tc.Y, 0, 1)
	x := int(s * float32(img.Width()-1))
	y := int(t * float32(img.Height()-1))
	c := img.NRGBAAt(x, y)
	return math.NewVec3(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
}

// Texture returns the pixels in the form the renderer uploads.
func (img *Image) Texture() *metadata.Texture {
	return &metadata.Texture{
		Name:   img.Name,
		Width:  uint32(img.Width()),
		Height: uint32(img.Height()),
		Pixels: img.Pix,
	}
}

type ImageLoader struct{}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, core.ErrImageDecode)
	}
	img := NewImage(path, src)
	return &metadata.Resource{
		Name:     img.Name,
		FullPath: path,
		DataSize: uint64(len(img.Pix)),
		Data:     img,
	}, nil
}

func (il *ImageLoader) Unload(*metadata.Resource) error {
	return nil
}
