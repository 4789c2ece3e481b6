// Package shading implements Blinn-Phong direct lighting with hard and area-light shadows.
package shading

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/geometry"
	"github.com/df07/go-skin-raytracer/pkg/scene"
)

const (
	// ShadowEpsilon offsets shadow ray origins along the normal to avoid self-intersection
	ShadowEpsilon = 1e-3

	// ComputeShadow asks Shade to run the hard shadow test itself
	ComputeShadow = -1.0

	minLightDistance = 1e-6
	minLightRadius   = 1e-4

	// softShadowStream separates soft shadow random streams from other seeded streams
	softShadowStream = 0x5eed5
)

// Params are the coefficients of the Blinn-Phong material model
type Params struct {
	Kd        float64 // Diffuse coefficient
	Ks        float64 // Specular coefficient
	Ambient   float64 // Ambient light coefficient
	Shininess float64 // Specular exponent
}

// DefaultParams returns the standard material coefficients
func DefaultParams() Params {
	return Params{Kd: 0.7, Ks: 0.3, Ambient: 0.1, Shininess: 32}
}

// EnhancedParams returns a softer, brighter tuning for textured skins
func EnhancedParams() Params {
	return Params{Kd: 0.75, Ks: 0.15, Ambient: 0.20, Shininess: 16}
}

// IsInShadow reports whether geometry blocks the segment from point to lightPos
func IsInShadow(point, normal, lightPos core.Vec3, sc *scene.Scene) bool {
	origin := point.Add(normal.Multiply(ShadowEpsilon))

	toLight := lightPos.Subtract(origin)
	distance := toLight.Length()
	if distance < minLightDistance {
		return false
	}

	shadowRay := core.NewRay(origin, toLight.Multiply(1.0/distance))
	hit := geometry.IntersectScene(shadowRay, sc)

	return hit.Hit && hit.T < distance
}

// ComputeSoftShadow estimates light visibility in [0, 1] by sampling a disk of
// light.Radius facing the point. The same seed always yields the same estimate.
func ComputeSoftShadow(point, normal core.Vec3, light scene.Light, sc *scene.Scene, samples int, seed uint64) float64 {
	if samples <= 1 || light.Radius < minLightRadius {
		if IsInShadow(point, normal, light.Position, sc) {
			return 0.0
		}
		return 1.0
	}

	basis := core.NewBasis(point.Subtract(light.Position))
	random := rand.New(rand.NewPCG(seed, softShadowStream))

	unoccluded := 0
	for i := 0; i < samples; i++ {
		// Stratify the angle so the samples spread around the disk
		r1 := (float64(i) + random.Float64()) / float64(samples)
		x, y := core.SampleDisk(light.Radius, r1, random.Float64())

		samplePos := light.Position.
			Add(basis.Tangent.Multiply(x)).
			Add(basis.Bitangent.Multiply(y))

		if !IsInShadow(point, normal, samplePos, sc) {
			unoccluded++
		}
	}

	return float64(unoccluded) / float64(samples)
}

// Shade computes Blinn-Phong lighting for a hit.
// shadowFactor is the light visibility in [0, 1]; pass ComputeShadow to use the hard test.
// Lighting affects RGB only; the texel's alpha is returned unchanged.
func Shade(hit geometry.HitResult, viewDir core.Vec3, light scene.Light, sc *scene.Scene, params Params, shadowFactor float64) core.Color {
	tex := hit.TextureColor

	n := hit.Normal.Normalize()
	l := light.Position.Subtract(hit.Point).Normalize()
	v := viewDir.Normalize()
	h := l.Add(v).Normalize()

	visibility := shadowFactor
	if visibility < 0 {
		visibility = 1.0
		if IsInShadow(hit.Point, n, light.Position, sc) {
			visibility = 0.0
		}
	}

	nDotL := math.Max(0, n.Dot(l))
	nDotH := math.Max(0, n.Dot(h))
	diffuse := params.Kd * nDotL * visibility
	specular := params.Ks * math.Pow(nDotH, params.Shininess) * visibility

	result := core.Color{
		R: params.Ambient*tex.R + diffuse*tex.R*light.Color.R + specular*light.Color.R,
		G: params.Ambient*tex.G + diffuse*tex.G*light.Color.G + specular*light.Color.G,
		B: params.Ambient*tex.B + diffuse*tex.B*light.Color.B + specular*light.Color.B,
	}

	return result.Clamp().WithAlpha(tex.A)
}
