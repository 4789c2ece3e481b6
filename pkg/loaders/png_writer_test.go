package loaders

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/renderer"
)

func TestEncodeImageRounding(t *testing.T) {
	img := renderer.NewImage(2, 1)
	img.SetPixel(0, 0, core.NewColorA(0.5, 1.5, -0.2, 1))
	img.SetPixel(1, 0, core.NewColorA(0.002, 0.998, 0.25, 0))

	out, err := EncodeImage(img)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	c := out.NRGBAAt(0, 0)
	if c.R != 128 || c.G != 255 || c.B != 0 || c.A != 255 {
		t.Errorf("Pixel 0: unexpected %v", c)
	}
	c = out.NRGBAAt(1, 0)
	if c.R != 1 || c.G != 254 || c.B != 64 || c.A != 0 {
		t.Errorf("Pixel 1: unexpected %v", c)
	}
}

func TestEncodeImageRejectsEmpty(t *testing.T) {
	if _, err := EncodeImage(renderer.NewImage(0, 5)); err == nil {
		t.Error("Expected error for zero-width image")
	}
	if _, err := EncodeImage(nil); err == nil {
		t.Error("Expected error for nil image")
	}
}

func TestWritePNGUpscales(t *testing.T) {
	img := renderer.NewImage(2, 2)
	img.SetPixel(0, 0, core.NewColor(1, 0, 0))
	img.SetPixel(1, 1, core.NewColor(0, 0, 1))

	path := filepath.Join(t.TempDir(), "out", "render.png")
	if err := WritePNG(path, img, 3); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if decoded.Bounds().Dx() != 6 || decoded.Bounds().Dy() != 6 {
		t.Fatalf("Expected 6x6 output, got %v", decoded.Bounds())
	}

	// Every pixel of the upscaled top-left block is red
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			r, g, b, a := decoded.At(x, y).RGBA()
			if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
				t.Fatalf("Pixel (%d,%d): expected red, got %d %d %d %d", x, y, r, g, b, a)
			}
		}
	}
	if _, _, b, _ := decoded.At(5, 5).RGBA(); b != 0xffff {
		t.Errorf("Expected blue bottom-right corner, got b=%d", b)
	}
}
