package core

import "math"

// parallelEpsilon is the direction magnitude below which a ray is treated as parallel to a slab
const parallelEpsilon = 1e-8

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Extend returns an AABB grown to contain point
func (aabb AABB) Extend(point Vec3) AABB {
	return AABB{
		Min: Vec3{math.Min(aabb.Min.X, point.X), math.Min(aabb.Min.Y, point.Y), math.Min(aabb.Min.Z, point.Z)},
		Max: Vec3{math.Max(aabb.Max.X, point.X), math.Max(aabb.Max.Y, point.Y), math.Max(aabb.Max.Z, point.Z)},
	}
}

// Size returns the extent of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// SlabHit describes the parametric interval a ray spends inside an AABB
// and which face produced the entry parameter.
type SlabHit struct {
	TMin    float64 // Entry parameter (negative when the origin is inside)
	TMax    float64 // Exit parameter
	Axis    int     // Axis of the entry face (0=X, 1=Y, 2=Z)
	MinSide bool    // Entry face lies on the min plane of Axis
}

// Intersect runs the slab method and reports the entry/exit interval.
// It returns false when the interval is empty or lies entirely behind the origin.
func (aabb AABB) Intersect(ray Ray) (SlabHit, bool) {
	hit := SlabHit{TMin: -math.MaxFloat64, TMax: math.MaxFloat64}
	constrained := false

	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Parallel rays are bounded only by whether the origin lies inside the slab
		if math.Abs(direction) < parallelEpsilon {
			if origin < min || origin > max {
				return SlabHit{}, false
			}
			continue
		}
		constrained = true

		invDirection := 1.0 / direction
		t0 := (min - origin) * invDirection
		t1 := (max - origin) * invDirection

		enterMin := true
		if t0 > t1 {
			t0, t1 = t1, t0
			enterMin = false
		}

		if t0 > hit.TMin {
			hit.TMin = t0
			hit.Axis = axis
			hit.MinSide = enterMin
		}
		hit.TMax = math.Min(hit.TMax, t1)

		if hit.TMin > hit.TMax || hit.TMax < 0 {
			return SlabHit{}, false
		}
	}

	// A zero direction never leaves the box; there is no meaningful hit
	if !constrained {
		return SlabHit{}, false
	}

	return hit, true
}

// ExitFace recomputes which face the ray leaves the box through.
// Parallel axes are skipped because the ray never crosses their planes.
func (aabb AABB) ExitFace(ray Ray) (axis int, minSide bool) {
	best := math.MaxFloat64

	for i := 0; i < 3; i++ {
		direction := ray.Direction.Axis(i)
		if math.Abs(direction) < parallelEpsilon {
			continue
		}

		invDirection := 1.0 / direction
		t0 := (aabb.Min.Axis(i) - ray.Origin.Axis(i)) * invDirection
		t1 := (aabb.Max.Axis(i) - ray.Origin.Axis(i)) * invDirection

		exitMin := false
		if t0 > t1 {
			t0, t1 = t1, t0
			exitMin = true
		}

		if t1 < best {
			best = t1
			axis = i
			minSide = exitMin
		}
	}

	return axis, minSide
}
