package core

import "math"

// Basis is an orthonormal frame built around a single axis
type Basis struct {
	Tangent   Vec3
	Bitangent Vec3
	Axis      Vec3
}

// NewBasis creates an orthonormal frame whose Axis is the normalized input
func NewBasis(axis Vec3) Basis {
	w := axis.Normalize()

	// Pick a helper vector that is not nearly parallel to w
	var helper Vec3
	if math.Abs(w.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}

	tangent := helper.Cross(w).Normalize()
	bitangent := w.Cross(tangent)

	return Basis{Tangent: tangent, Bitangent: bitangent, Axis: w}
}

// SampleDisk maps two uniform samples to a point in a disk of the given radius.
// The angle is uniform and the radial offset uses sqrt for uniform area density.
func SampleDisk(radius, r1, r2 float64) (x, y float64) {
	angle := 2.0 * math.Pi * r1
	r := radius * math.Sqrt(r2)
	return r * math.Cos(angle), r * math.Sin(angle)
}

// SampleCosineHemisphere returns a cosine-weighted direction around normal.
// In tangent space the normal is the second component: (sqrt(1-r1)cosφ, sqrt(r1), sqrt(1-r1)sinφ).
func SampleCosineHemisphere(normal Vec3, r1, r2 float64) Vec3 {
	phi := 2.0 * math.Pi * r2
	sinTheta := math.Sqrt(1.0 - r1)
	cosTheta := math.Sqrt(r1)

	local := NewVec3(sinTheta*math.Cos(phi), cosTheta, sinTheta*math.Sin(phi))

	basis := NewBasis(normal)
	return basis.Tangent.Multiply(local.X).
		Add(basis.Axis.Multiply(local.Y)).
		Add(basis.Bitangent.Multiply(local.Z))
}

// Prime multipliers used to hash positions into seeds
const (
	hashPrimeX = 73856093
	hashPrimeY = 19349663
	hashPrimeZ = 83492791
)

// HashPoint derives a stable integer seed from a point's coordinates.
// Coordinates are scaled before truncation so nearby points still produce different seeds.
func HashPoint(p Vec3, salt uint64) uint64 {
	const scale = 1024.0
	hx := uint64(int64(p.X*scale)) * hashPrimeX
	hy := uint64(int64(p.Y*scale)) * hashPrimeY
	hz := uint64(int64(p.Z*scale)) * hashPrimeZ
	return (hx ^ hy ^ hz) + salt
}
