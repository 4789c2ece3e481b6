package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/renderer"
	"github.com/df07/go-skin-raytracer/pkg/shading"
)

// Shading presets
const (
	PresetDefault  = "default"
	PresetEnhanced = "enhanced"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	check(c.Render.Width > 0, "render.width must be positive, got %d", c.Render.Width)
	check(c.Render.Height > 0, "render.height must be positive, got %d", c.Render.Height)
	check(c.Render.MaxBounces >= 0, "render.max_bounces must not be negative, got %d", c.Render.MaxBounces)
	check(c.Render.SamplesPerPixel >= 1, "render.samples_per_pixel must be at least 1, got %d", c.Render.SamplesPerPixel)
	check(c.Render.TileSize > 0, "render.tile_size must be positive, got %d", c.Render.TileSize)
	check(c.Render.Threads >= 0, "render.threads must not be negative, got %d", c.Render.Threads)
	check(!c.Shadows.Soft || c.Shadows.Samples >= 1, "shadows.samples must be at least 1, got %d", c.Shadows.Samples)
	check(!c.AO.Enabled || c.AO.Samples >= 1, "ao.samples must be at least 1, got %d", c.AO.Samples)
	check(c.AO.Radius >= 0, "ao.radius must not be negative, got %g", c.AO.Radius)
	check(c.DOF.Aperture >= 0, "dof.aperture must not be negative, got %g", c.DOF.Aperture)
	check(c.Output.Scale >= 1, "output.scale must be at least 1, got %d", c.Output.Scale)
	check(c.Scene.File == "" || c.Scene.Skin == "", "scene.file and scene.skin are mutually exclusive")

	if _, cerr := parseHex(c.Background.Center); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("background.center: %w", cerr))
	}
	if _, cerr := parseHex(c.Background.Edge); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("background.edge: %w", cerr))
	}
	if _, perr := c.ShadingParams(); perr != nil {
		err = multierr.Append(err, perr)
	}

	return err
}

// ShadingParams resolves the preset and explicit overrides into shading parameters.
func (c *Config) ShadingParams() (shading.Params, error) {
	var params shading.Params
	switch c.Shading.Preset {
	case "", PresetDefault:
		params = shading.DefaultParams()
	case PresetEnhanced:
		params = shading.EnhancedParams()
	default:
		return params, fmt.Errorf("unknown shading preset %q", c.Shading.Preset)
	}

	if c.Shading.Kd != nil {
		params.Kd = *c.Shading.Kd
	}
	if c.Shading.Ks != nil {
		params.Ks = *c.Shading.Ks
	}
	if c.Shading.Ambient != nil {
		params.Ambient = *c.Shading.Ambient
	}
	if c.Shading.Shininess != nil {
		params.Shininess = *c.Shading.Shininess
	}
	return params, nil
}

// ToRenderConfig converts the file settings into a renderer configuration.
func (c *Config) ToRenderConfig() (renderer.Config, error) {
	if err := c.Validate(); err != nil {
		return renderer.Config{}, err
	}

	// Validate has already checked these
	center, _ := parseHex(c.Background.Center)
	edge, _ := parseHex(c.Background.Edge)
	params, _ := c.ShadingParams()

	rc := renderer.DefaultConfig()
	rc.Width = c.Render.Width
	rc.Height = c.Render.Height
	rc.MaxBounces = c.Render.MaxBounces
	rc.SamplesPerPixel = c.Render.SamplesPerPixel
	rc.TileSize = c.Render.TileSize
	rc.ThreadCount = c.Render.Threads

	rc.SoftShadows = c.Shadows.Soft
	rc.SoftShadowSamples = c.Shadows.Samples

	rc.AOEnabled = c.AO.Enabled
	rc.AOSamples = c.AO.Samples
	rc.AORadius = c.AO.Radius
	rc.AOIntensity = c.AO.Intensity

	rc.DOFEnabled = c.DOF.Enabled
	rc.Aperture = c.DOF.Aperture
	rc.FocusDistance = c.DOF.FocusDistance

	rc.GradientBackground = c.Background.Gradient
	if c.Background.Scale > 0 {
		rc.GradientScale = c.Background.Scale
	}
	rc.BackgroundCenter = center
	rc.BackgroundEdge = edge

	rc.Shading = params
	return rc, nil
}

func parseHex(hex string) (core.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return core.Color{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return core.NewColor(c.R, c.G, c.B), nil
}
