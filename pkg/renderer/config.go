package renderer

import (
	"math"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/shading"
)

// Config contains rendering configuration. Every effect can be toggled independently.
type Config struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	MaxBounces      int // Maximum reflection depth
	SamplesPerPixel int // Anti-aliasing samples per pixel
	TileSize        int // Edge length of a square tile
	ThreadCount     int // Number of workers (0 = CPU count)

	SoftShadows       bool // Sample the area light instead of a single shadow ray
	SoftShadowSamples int

	AOEnabled   bool    // Ambient occlusion on primary hits
	AOSamples   int     // Hemisphere samples per hit
	AORadius    float64 // Maximum occlusion distance
	AOIntensity float64 // Strength of darkening

	DOFEnabled    bool    // Thin-lens depth of field
	Aperture      float64 // Lens radius (0 = pinhole)
	FocusDistance float64 // 0 = focus on the camera target

	GradientBackground bool    // Radial gradient instead of the scene's flat colour
	GradientScale      float64 // Multiplier from UV distance to gradient parameter
	BackgroundCenter   core.Color
	BackgroundEdge     core.Color

	Shading shading.Params
}

// DefaultGradientScale maps the image corners (distance √0.5 from the centre) to the edge colour
var DefaultGradientScale = math.Sqrt2

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           256,
		Height:          256,
		MaxBounces:      3,
		SamplesPerPixel: 1,
		TileSize:        32,
		ThreadCount:     0,

		SoftShadows:       false,
		SoftShadowSamples: 8,

		AOEnabled:   false,
		AOSamples:   8,
		AORadius:    3.0,
		AOIntensity: 0.5,

		DOFEnabled:    false,
		Aperture:      0.5,
		FocusDistance: 0.0,

		GradientBackground: true,
		GradientScale:      DefaultGradientScale,
		BackgroundCenter:   core.NewColor(0.35, 0.45, 0.65),
		BackgroundEdge:     core.NewColor(0.08, 0.08, 0.12),

		Shading: shading.DefaultParams(),
	}
}

// AspectRatio returns width / height, or 1 for a degenerate image
func (c Config) AspectRatio() float64 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1.0
	}
	return float64(c.Width) / float64(c.Height)
}
