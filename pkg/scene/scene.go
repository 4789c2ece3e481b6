package scene

import (
	"math"

	"github.com/df07/go-skin-raytracer/pkg/core"
)

// Light is a spherical area light used for direct shading and soft shadows
type Light struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64 // Carried for callers; shading does not scale by it
	Radius    float64 // Area-light radius for soft shadows
}

// Camera is a look-at pinhole camera
type Camera struct {
	Position core.Vec3
	Target   core.Vec3
	Up       core.Vec3
	FOV      float64 // Vertical field of view in degrees
}

// Basis returns the forward, right and up vectors of the look-at frame
func (c Camera) Basis() (forward, right, up core.Vec3) {
	forward = c.Target.Subtract(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// GenerateRay returns the normalized primary ray through image-plane point (u, v).
// u and v are in [0, 1] with v=0 at the top of the image.
func (c Camera) GenerateRay(u, v, aspectRatio float64) core.Ray {
	forward, right, up := c.Basis()

	halfHeight := math.Tan(c.FOV * 0.5 * math.Pi / 180.0)
	halfWidth := halfHeight * aspectRatio

	su := (2.0*u - 1.0) * halfWidth
	sv := (2.0*(1.0-v) - 1.0) * halfHeight

	direction := forward.Add(right.Multiply(su)).Add(up.Multiply(sv)).Normalize()
	return core.NewRay(c.Position, direction)
}

// FocusDistance returns the distance from the camera to its target
func (c Camera) FocusDistance() float64 {
	return c.Target.Subtract(c.Position).Length()
}

// Scene contains all the elements needed for rendering.
// It is read-only for the duration of a render.
type Scene struct {
	Meshes          []Mesh
	Light           Light
	Camera          Camera
	BackgroundColor core.Color
}

// AddMesh appends a mesh to the scene
func (s *Scene) AddMesh(mesh Mesh) {
	s.Meshes = append(s.Meshes, mesh)
}

// TriangleCount returns the total number of triangles across all meshes
func (s *Scene) TriangleCount() int {
	count := 0
	for i := range s.Meshes {
		count += len(s.Meshes[i].Triangles)
	}
	return count
}
