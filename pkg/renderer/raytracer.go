package renderer

import (
	"math/rand/v2"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/geometry"
	"github.com/df07/go-skin-raytracer/pkg/scene"
	"github.com/df07/go-skin-raytracer/pkg/shading"
)

const (
	// skinReflectivity is the mirror contribution of the slightly glossy skin material
	skinReflectivity = 0.1

	// reflectEpsilon offsets reflection ray origins to avoid self-intersection
	reflectEpsilon = 1e-3

	// Salts keep AO and soft shadow streams for the same hit point independent
	aoSalt         = 0
	softShadowSalt = 0x9e3779b97f4a7c15

	aoStream = 0xa0
)

// TraceRay returns the colour seen along a ray, recursing for reflections until
// depth exceeds maxBounces. cfg may be nil, which disables soft shadows, AO and
// the gradient background. Misses evaluate the background at the image centre.
func TraceRay(ray core.Ray, sc *scene.Scene, depth, maxBounces int, params shading.Params, cfg *Config) core.Color {
	return traceRay(ray, sc, depth, maxBounces, params, cfg, 0.5, 0.5)
}

// traceRay is TraceRay with the image-space coordinate of the pixel being
// rendered, used to evaluate the gradient background on a miss.
func traceRay(ray core.Ray, sc *scene.Scene, depth, maxBounces int, params shading.Params, cfg *Config, u, v float64) core.Color {
	// Recursion bound: no intersection test past the last bounce
	if depth > maxBounces {
		return BackgroundColor(sc, u, v, cfg)
	}

	hit := geometry.IntersectScene(ray, sc)
	if !hit.Hit {
		return BackgroundColor(sc, u, v, cfg)
	}

	normal := hit.Normal.Normalize()
	viewDir := ray.Origin.Subtract(hit.Point).Normalize()

	shadowFactor := shading.ComputeShadow
	if cfg != nil && cfg.SoftShadows {
		seed := core.HashPoint(hit.Point, softShadowSalt)
		shadowFactor = shading.ComputeSoftShadow(hit.Point, normal, sc.Light, sc, cfg.SoftShadowSamples, seed)
	}

	color := shading.Shade(hit, viewDir, sc.Light, sc, params, shadowFactor)
	alpha := color.A

	if cfg != nil && cfg.AOEnabled && depth == 0 {
		ao := ComputeAO(hit.Point, normal, sc, cfg.AOSamples, cfg.AORadius, core.HashPoint(hit.Point, aoSalt))
		color = color.ScaleRGB(1.0 - cfg.AOIntensity*(1.0-ao))
	}

	if depth < maxBounces {
		d := ray.Direction.Normalize()
		reflectDir := d.Subtract(normal.Multiply(2.0 * d.Dot(normal))).Normalize()
		reflectRay := core.NewRay(hit.Point.Add(normal.Multiply(reflectEpsilon)), reflectDir)

		reflected := traceRay(reflectRay, sc, depth+1, maxBounces, params, cfg, u, v)
		color = color.Multiply(1.0 - skinReflectivity).Add(reflected.Multiply(skinReflectivity))
	}

	// Reflection blending never changes opacity
	return color.Clamp().WithAlpha(alpha)
}

// BackgroundColor returns the colour for a miss at image-space (u, v).
// With a gradient configured it blends from the centre colour to the edge colour
// by the squared, clamped radial distance; otherwise it is the scene's flat colour.
func BackgroundColor(sc *scene.Scene, u, v float64, cfg *Config) core.Color {
	if cfg == nil || !cfg.GradientBackground {
		return sc.BackgroundColor
	}

	scale := cfg.GradientScale
	if scale <= 0 {
		scale = DefaultGradientScale
	}

	du := u - 0.5
	dv := v - 0.5
	t := core.Clamp01(core.NewVec3(du, dv, 0).Length() * scale)
	t *= t

	return cfg.BackgroundCenter.Lerp(cfg.BackgroundEdge, t)
}

// ComputeAO returns the fraction of cosine-weighted hemisphere samples around
// normal that escape within radius: 1 is fully open, 0 fully occluded.
func ComputeAO(point, normal core.Vec3, sc *scene.Scene, samples int, radius float64, seed uint64) float64 {
	if samples <= 0 {
		return 1.0
	}

	n := normal.Normalize()
	origin := point.Add(n.Multiply(reflectEpsilon))
	random := rand.New(rand.NewPCG(seed, aoStream))

	occluded := 0
	for i := 0; i < samples; i++ {
		dir := core.SampleCosineHemisphere(n, random.Float64(), random.Float64())
		hit := geometry.IntersectScene(core.NewRay(origin, dir), sc)
		if hit.Hit && hit.T < radius {
			occluded++
		}
	}

	return 1.0 - float64(occluded)/float64(samples)
}
