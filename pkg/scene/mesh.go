package scene

import "github.com/df07/go-skin-raytracer/pkg/core"

// Face identifies one of the six faces of a box part.
// The character faces +Z, toward the default camera.
type Face int

const (
	FaceFront  Face = iota // +Z
	FaceBack               // -Z
	FaceLeft               // +X (character's left)
	FaceRight              // -X (character's right)
	FaceTop                // +Y
	FaceBottom             // -Y
)

// FaceCount is the number of faces on a box
const FaceCount = 6

var faceNames = [FaceCount]string{"front", "back", "left", "right", "top", "bottom"}

func (f Face) String() string {
	if f < 0 || int(f) >= FaceCount {
		return "unknown"
	}
	return faceNames[f]
}

// FaceFromName maps a face name back to its Face
func FaceFromName(name string) (Face, bool) {
	for i, n := range faceNames {
		if n == name {
			return Face(i), true
		}
	}
	return 0, false
}

// FaceFor returns the face on the given axis (0=X, 1=Y, 2=Z) and side
func FaceFor(axis int, minSide bool) Face {
	switch axis {
	case 0:
		if minSide {
			return FaceRight
		}
		return FaceLeft
	case 1:
		if minSide {
			return FaceBottom
		}
		return FaceTop
	default:
		if minSide {
			return FaceBack
		}
		return FaceFront
	}
}

// Normal returns the outward normal of the face
func (f Face) Normal() core.Vec3 {
	switch f {
	case FaceFront:
		return core.NewVec3(0, 0, 1)
	case FaceBack:
		return core.NewVec3(0, 0, -1)
	case FaceLeft:
		return core.NewVec3(1, 0, 0)
	case FaceRight:
		return core.NewVec3(-1, 0, 0)
	case FaceTop:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(0, -1, 0)
	}
}

// Triangle is half of a box face. Face indexes the owning mesh's texture array.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Normal     core.Vec3
	UV0        [2]float64
	UV1        [2]float64
	UV2        [2]float64
	Face       Face
}

// Mesh is one rectangular box part made of 12 triangles.
// Call UpdateBounds after editing Triangles in place.
type Mesh struct {
	Triangles    []Triangle
	Textures     [FaceCount]TextureRegion // Indexed by Face
	IsOuterLayer bool                     // Semi-transparent overlay shell

	bounds     core.AABB
	haveBounds bool
}

// Bounds returns the AABB of the triangle vertices, cached since the last UpdateBounds
func (m *Mesh) Bounds() core.AABB {
	if m.haveBounds {
		return m.bounds
	}
	return triangleBounds(m.Triangles)
}

// UpdateBounds recomputes the cached AABB from the current triangles
func (m *Mesh) UpdateBounds() {
	m.bounds = triangleBounds(m.Triangles)
	m.haveBounds = true
}

func triangleBounds(tris []Triangle) core.AABB {
	if len(tris) == 0 {
		return core.AABB{}
	}

	bounds := core.NewAABB(tris[0].V0, tris[0].V0)
	for _, tri := range tris {
		bounds = bounds.Extend(tri.V0).Extend(tri.V1).Extend(tri.V2)
	}
	return bounds
}

// FaceTexture returns the texture assigned to a face through its triangles,
// or nil when no triangle carries that face.
func (m *Mesh) FaceTexture(face Face) *TextureRegion {
	for i := range m.Triangles {
		if m.Triangles[i].Face == face {
			return &m.Textures[face]
		}
	}
	return nil
}

// IsFullyTransparent reports whether all six textures have zero alpha everywhere
func IsFullyTransparent(textures [FaceCount]TextureRegion) bool {
	for _, tex := range textures {
		if !tex.FullyTransparent() {
			return false
		}
	}
	return true
}

// NewBoxMesh builds a box centered at center with full extents size.
// A positive offset grows every half-extent and marks the mesh as an outer layer.
func NewBoxMesh(textures [FaceCount]TextureRegion, center, size core.Vec3, offset float64) Mesh {
	mesh := Mesh{
		Triangles:    make([]Triangle, 0, 12),
		Textures:     textures,
		IsOuterLayer: offset > 0,
	}

	hw := size.X/2 + offset
	hh := size.Y/2 + offset
	hd := size.Z/2 + offset

	corner := func(sx, sy, sz float64) core.Vec3 {
		return core.NewVec3(center.X+sx*hw, center.Y+sy*hh, center.Z+sz*hd)
	}

	v000 := corner(-1, -1, -1)
	v100 := corner(1, -1, -1)
	v010 := corner(-1, 1, -1)
	v110 := corner(1, 1, -1)
	v001 := corner(-1, -1, 1)
	v101 := corner(1, -1, 1)
	v011 := corner(-1, 1, 1)
	v111 := corner(1, 1, 1)

	// Quad corners run top-left, top-right, bottom-right, bottom-left as seen from outside
	addFace := func(a, b, c, d core.Vec3, face Face) {
		normal := face.Normal()
		mesh.Triangles = append(mesh.Triangles,
			Triangle{V0: a, V1: b, V2: c, Normal: normal,
				UV0: [2]float64{0, 0}, UV1: [2]float64{1, 0}, UV2: [2]float64{1, 1}, Face: face},
			Triangle{V0: a, V1: c, V2: d, Normal: normal,
				UV0: [2]float64{0, 0}, UV1: [2]float64{1, 1}, UV2: [2]float64{0, 1}, Face: face},
		)
	}

	addFace(v011, v111, v101, v001, FaceFront)
	addFace(v110, v010, v000, v100, FaceBack)
	addFace(v111, v110, v100, v101, FaceLeft)
	addFace(v010, v011, v001, v000, FaceRight)
	addFace(v010, v110, v111, v011, FaceTop)
	addFace(v001, v101, v100, v000, FaceBottom)

	mesh.UpdateBounds()
	return mesh
}

// SolidTextures returns six 1x1 textures of the same colour
func SolidTextures(c core.Color) [FaceCount]TextureRegion {
	var textures [FaceCount]TextureRegion
	for i := range textures {
		textures[i] = NewSolidTexture(c)
	}
	return textures
}
