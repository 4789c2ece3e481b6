package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/df07/go-skin-raytracer/pkg/renderer"
)

// EncodeImage converts a rendered image to 8-bit NRGBA, rounding each clamped channel
func EncodeImage(img *renderer.Image) (*image.NRGBA, error) {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil, errors.New("cannot encode an empty image")
	}

	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Pixel(x, y).Clamp()
			out.SetNRGBA(x, y, color.NRGBA{
				R: toByte(c.R),
				G: toByte(c.G),
				B: toByte(c.B),
				A: toByte(c.A),
			})
		}
	}
	return out, nil
}

func toByte(c float64) uint8 {
	return uint8(c*255.0 + 0.5)
}

// Upscale enlarges an image by an integer factor with nearest-neighbour sampling,
// keeping individual texels crisp. Factors below 2 return the source unchanged.
func Upscale(src *image.NRGBA, factor int) *image.NRGBA {
	if factor < 2 {
		return src
	}

	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// WritePNG encodes the image, upscaled by scale, and writes it to path.
// Parent directories are created as needed.
func WritePNG(path string, img *renderer.Image, scale int) error {
	encoded, err := EncodeImage(img)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", dir)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer file.Close()

	if err := png.Encode(file, Upscale(encoded, scale)); err != nil {
		return errors.Wrapf(err, "failed to encode PNG %s", path)
	}
	return nil
}
