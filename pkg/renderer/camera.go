package renderer

import (
	"math/rand/v2"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/scene"
)

// minAperture is the lens radius below which the camera is treated as a pinhole
const minAperture = 1e-6

// GenerateDOFRay generates a thin-lens ray for image-plane point (u, v).
// The lens sample is drawn from random so each tile's stream stays deterministic.
func GenerateDOFRay(cam scene.Camera, u, v, aspectRatio, aperture, focusDistance float64, random *rand.Rand) core.Ray {
	pinhole := cam.GenerateRay(u, v, aspectRatio)
	if aperture < minAperture {
		return pinhole
	}

	_, right, up := cam.Basis()

	// Points at the focus distance project to the same pixel from anywhere on the lens
	focusPoint := pinhole.At(focusDistance)

	lensX, lensY := core.SampleDisk(aperture, random.Float64(), random.Float64())
	origin := cam.Position.Add(right.Multiply(lensX)).Add(up.Multiply(lensY))

	return core.NewRay(origin, focusPoint.Subtract(origin).Normalize())
}

// focusDistance resolves the configured focus distance, falling back to the camera target
func focusDistance(cam scene.Camera, cfg Config) float64 {
	if cfg.FocusDistance > 0 {
		return cfg.FocusDistance
	}
	return cam.FocusDistance()
}

// primaryRay returns the camera ray for a sample, replaced by a lens ray when DOF is on
func primaryRay(cam scene.Camera, u, v float64, cfg Config, focus float64, random *rand.Rand) core.Ray {
	if cfg.DOFEnabled && cfg.Aperture > minAperture {
		return GenerateDOFRay(cam, u, v, cfg.AspectRatio(), cfg.Aperture, focus, random)
	}
	return cam.GenerateRay(u, v, cfg.AspectRatio())
}
