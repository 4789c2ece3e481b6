package loaders

import (
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/scene"
)

// LoadTexture loads a PNG or JPEG file into a texture region with straight alpha
func LoadTexture(filename string) (scene.TextureRegion, error) {
	file, err := os.Open(filename)
	if err != nil {
		return scene.TextureRegion{}, errors.Wrapf(err, "failed to open texture %s", filename)
	}
	defer file.Close()

	tex, err := DecodeTexture(file)
	if err != nil {
		return scene.TextureRegion{}, errors.Wrapf(err, "failed to load texture %s", filename)
	}
	return tex, nil
}

// DecodeTexture decodes an image stream (format auto-detected from the header)
func DecodeTexture(r io.Reader) (scene.TextureRegion, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return scene.TextureRegion{}, errors.Wrap(err, "failed to decode image")
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts any image into a texture region
func TextureFromImage(img image.Image) scene.TextureRegion {
	bounds := img.Bounds()
	tex := scene.NewTextureRegion(bounds.Dx(), bounds.Dy())

	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			// NRGBA64 keeps colour channels independent of alpha
			c := color.NRGBA64Model.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA64)
			tex.Pixels[y*tex.Width+x] = core.NewColorA(
				float64(c.R)/65535.0,
				float64(c.G)/65535.0,
				float64(c.B)/65535.0,
				float64(c.A)/65535.0,
			)
		}
	}

	return tex
}

// ExtractRegion copies the width x height rectangle at (x, y) out of a larger texture
func ExtractRegion(src scene.TextureRegion, x, y, width, height int) (scene.TextureRegion, error) {
	if width <= 0 || height <= 0 {
		return scene.TextureRegion{}, errors.Errorf("invalid region size %dx%d", width, height)
	}
	if x < 0 || y < 0 || x+width > src.Width || y+height > src.Height {
		return scene.TextureRegion{}, errors.Errorf("region (%d,%d %dx%d) outside %dx%d texture",
			x, y, width, height, src.Width, src.Height)
	}

	region := scene.NewTextureRegion(width, height)
	for row := 0; row < height; row++ {
		srcStart := (y+row)*src.Width + x
		copy(region.Pixels[row*width:(row+1)*width], src.Pixels[srcStart:srcStart+width])
	}
	return region, nil
}
