package scene

import "github.com/df07/go-skin-raytracer/pkg/core"

// TextureRegion is a width x height grid of colours sampled with nearest-neighbour lookup
type TextureRegion struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x]
}

// NewTextureRegion creates a region filled with transparent black
func NewTextureRegion(width, height int) TextureRegion {
	return TextureRegion{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// NewSolidTexture creates a 1x1 region of a single colour
func NewSolidTexture(c core.Color) TextureRegion {
	return TextureRegion{Width: 1, Height: 1, Pixels: []core.Color{c}}
}

// Empty reports whether the region has no pixels to sample
func (t TextureRegion) Empty() bool {
	return t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height
}

// Sample returns the texel at (u, v). U maps across the width, V down the height.
// Out-of-range coordinates clamp to the edge; an empty region samples opaque black.
func (t TextureRegion) Sample(u, v float64) core.Color {
	if t.Empty() {
		return core.Black
	}

	x := min(max(int(u*float64(t.Width)), 0), t.Width-1)
	y := min(max(int(v*float64(t.Height)), 0), t.Height-1)

	return t.Pixels[y*t.Width+x]
}

// FullyTransparent reports whether every texel has zero alpha
func (t TextureRegion) FullyTransparent() bool {
	for _, p := range t.Pixels {
		if p.A != 0 {
			return false
		}
	}
	return true
}
