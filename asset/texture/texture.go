package texture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/achilleasa/kdtrace/asset"
	"github.com/achilleasa/kdtrace/types"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// A decoded texture image stored as 8-bit RGBA.
type Texture struct {
	Width  int
	Height int

	img *image.RGBA
}

// Create a new texture from a Resource. Any format with a registered image
// decoder (png, jpeg, bmp, tiff) is supported.
func New(res *asset.Resource) (*Texture, error) {
	src, _, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %w", res.Path(), err)
	}

	return FromImage(src), nil
}

// Create a texture from an image.
func FromImage(src image.Image) *Texture {
	bounds := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(img, image.Point{}, src, bounds, draw.Src, nil)

	return &Texture{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		img:    img,
	}
}

// Sample the texel nearest to (u, v) and return it as a linear color.
// Coordinates are clamped to [0, 1]; v = 0 selects the top row.
func (t *Texture) Sample(u, v float32) types.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return types.Vec3{}
	}

	x := clampIndex(u, t.Width)
	y := clampIndex(v, t.Height)
	offset := t.img.PixOffset(x, y)
	pix := t.img.Pix[offset : offset+3 : offset+3]
	return types.RGB(pix[0], pix[1], pix[2])
}

func clampIndex(coord float32, size int) int {
	index := int(coord * float32(size))
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}
