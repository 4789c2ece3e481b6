package geometry

import (
	"math"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/scene"
)

// missingTextureColor marks faces whose triangles were never built
var missingTextureColor = core.NewColor(1, 0, 1)

// HitResult contains information about a ray-mesh intersection
type HitResult struct {
	Hit          bool
	T            float64    // Ray parameter at the hit
	Point        core.Vec3  // World-space hit point
	Normal       core.Vec3  // Surface normal facing away from the surface that was hit
	TextureColor core.Color // Sampled texel, alpha included
	Face         scene.Face // Face whose texture was sampled
	IsOuterLayer bool
}

// faceSample is the resolved face, UV and texel for a point on a box
type faceSample struct {
	face  scene.Face
	color core.Color
}

// IntersectMesh intersects a ray with a mesh treated as its bounding box.
// Texels with zero alpha are see-through: inner meshes miss, outer layers
// fall through to the box's exit face.
func IntersectMesh(ray core.Ray, mesh *scene.Mesh) HitResult {
	if len(mesh.Triangles) == 0 {
		return HitResult{}
	}

	box := mesh.Bounds()
	slab, ok := box.Intersect(ray)
	if !ok {
		return HitResult{}
	}

	tHit := slab.TMin
	axis, minSide := slab.Axis, slab.MinSide

	// Origin inside the box: the visible surface is where the ray leaves it
	if tHit < 0 {
		tHit = slab.TMax
		if tHit < 0 {
			return HitResult{}
		}
		axis, minSide = box.ExitFace(ray)
	}

	point := ray.At(tHit)
	entry := sampleFace(mesh, box, point, axis, minSide)

	if entry.color.A == 0 {
		if !mesh.IsOuterLayer || slab.TMax <= tHit {
			return HitResult{}
		}

		exitAxis, exitMinSide := box.ExitFace(ray)
		exitPoint := ray.At(slab.TMax)
		exit := sampleFace(mesh, box, exitPoint, exitAxis, exitMinSide)
		if exit.color.A <= 0 {
			return HitResult{}
		}

		// Seen from inside, so the normal is flipped toward the incoming ray
		return HitResult{
			Hit:          true,
			T:            slab.TMax,
			Point:        exitPoint,
			Normal:       exit.face.Normal().Negate(),
			TextureColor: exit.color,
			Face:         exit.face,
			IsOuterLayer: true,
		}
	}

	return HitResult{
		Hit:          true,
		T:            tHit,
		Point:        point,
		Normal:       entry.face.Normal(),
		TextureColor: entry.color,
		Face:         entry.face,
		IsOuterLayer: mesh.IsOuterLayer,
	}
}

// IntersectScene returns the closest hit across all meshes in the scene
func IntersectScene(ray core.Ray, sc *scene.Scene) HitResult {
	closest := HitResult{T: math.MaxFloat64}

	for i := range sc.Meshes {
		hit := IntersectMesh(ray, &sc.Meshes[i])
		if hit.Hit && hit.T < closest.T {
			closest = hit
		}
	}

	if !closest.Hit {
		return HitResult{}
	}
	return closest
}

// sampleFace resolves the face at (axis, side), maps the point to its UV and samples the texel
func sampleFace(mesh *scene.Mesh, box core.AABB, point core.Vec3, axis int, minSide bool) faceSample {
	face := scene.FaceFor(axis, minSide)

	texture := mesh.FaceTexture(face)
	if texture == nil {
		return faceSample{face: face, color: missingTextureColor}
	}

	u, v := FaceUV(box, point, face)
	return faceSample{face: face, color: texture.Sample(u, v)}
}

// FaceUV projects a point on a box face into that face's texture space.
// Texture top is world top on the side faces; UVs are clamped to [0, 1].
func FaceUV(box core.AABB, point core.Vec3, face scene.Face) (u, v float64) {
	size := box.Size()
	local := core.NewVec3(
		(point.X-box.Min.X)/nonZero(size.X),
		(point.Y-box.Min.Y)/nonZero(size.Y),
		(point.Z-box.Min.Z)/nonZero(size.Z),
	)

	switch face {
	case scene.FaceFront:
		u, v = local.X, 1-local.Y
	case scene.FaceBack:
		u, v = 1-local.X, 1-local.Y
	case scene.FaceLeft:
		u, v = 1-local.Z, 1-local.Y
	case scene.FaceRight:
		u, v = local.Z, 1-local.Y
	case scene.FaceTop:
		u, v = local.X, local.Z
	case scene.FaceBottom:
		u, v = local.X, 1-local.Z
	}

	return core.Clamp01(u), core.Clamp01(v)
}

func nonZero(extent float64) float64 {
	if extent > 1e-8 {
		return extent
	}
	return 1.0
}
