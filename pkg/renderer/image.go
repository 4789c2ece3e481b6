package renderer

import (
	"image"

	"github.com/df07/go-skin-raytracer/pkg/core"
)

// Image is a row-major buffer of floating point RGBA pixels
type Image struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewImage allocates an image initialized to transparent black.
// Negative dimensions are treated as zero.
func NewImage(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// Bounds returns the pixel rectangle covered by the image
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// Pixel returns the colour at (x, y)
func (img *Image) Pixel(x, y int) core.Color {
	return img.Pixels[y*img.Width+x]
}

// SetPixel stores the colour at (x, y)
func (img *Image) SetPixel(x, y int, c core.Color) {
	img.Pixels[y*img.Width+x] = c
}
