package scene

import "github.com/df07/go-skin-raytracer/pkg/core"

// Part describes the placement of one body part of the character model
type Part struct {
	Name   string
	Center core.Vec3
	Size   core.Vec3
}

// outerLayerOffset is how far an overlay shell extends past its inner part
const outerLayerOffset = 0.5

// CharacterParts returns the standard six-part layout, feet at y=0, facing +Z
func CharacterParts() []Part {
	return []Part{
		{Name: "head", Center: core.NewVec3(0, 28, 0), Size: core.NewVec3(8, 8, 8)},
		{Name: "body", Center: core.NewVec3(0, 18, 0), Size: core.NewVec3(8, 12, 4)},
		{Name: "right_arm", Center: core.NewVec3(-6, 18, 0), Size: core.NewVec3(4, 12, 4)},
		{Name: "left_arm", Center: core.NewVec3(6, 18, 0), Size: core.NewVec3(4, 12, 4)},
		{Name: "right_leg", Center: core.NewVec3(-2, 6, 0), Size: core.NewVec3(4, 12, 4)},
		{Name: "left_leg", Center: core.NewVec3(2, 6, 0), Size: core.NewVec3(4, 12, 4)},
	}
}

// AddPart adds the inner box for a part and, unless it is fully transparent, its outer shell
func (s *Scene) AddPart(part Part, inner, outer [FaceCount]TextureRegion) {
	s.AddMesh(NewBoxMesh(inner, part.Center, part.Size, 0))
	if !IsFullyTransparent(outer) {
		s.AddMesh(NewBoxMesh(outer, part.Center, part.Size, outerLayerOffset))
	}
}

// DefaultLight is placed above and in front of the character
func DefaultLight() Light {
	return Light{
		Position:  core.NewVec3(0, 40, 30),
		Color:     core.NewColor(1, 1, 1),
		Intensity: 1.0,
		Radius:    3.0,
	}
}

// DefaultCamera looks at the character's chest from the front
func DefaultCamera() Camera {
	return Camera{
		Position: core.NewVec3(0, 18, 50),
		Target:   core.NewVec3(0, 18, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      60.0,
	}
}

// DefaultBackgroundColor is the flat background behind the character
var DefaultBackgroundColor = core.NewColor(0.2, 0.3, 0.5)

// PartLayers holds the inner and outer-layer textures of one body part
type PartLayers struct {
	Inner [FaceCount]TextureRegion
	Outer [FaceCount]TextureRegion
}

// NewCharacterScene builds the six-part character with the default light,
// camera and background. Parts missing from layers are left out.
func NewCharacterScene(layers map[string]PartLayers) *Scene {
	s := &Scene{
		Light:           DefaultLight(),
		Camera:          DefaultCamera(),
		BackgroundColor: DefaultBackgroundColor,
	}

	for _, part := range CharacterParts() {
		if l, ok := layers[part.Name]; ok {
			s.AddPart(part, l.Inner, l.Outer)
		}
	}

	return s
}

// NewDefaultScene creates an untextured white character with no overlay layer
func NewDefaultScene() *Scene {
	white := PartLayers{Inner: SolidTextures(core.NewColor(1, 1, 1))}

	layers := make(map[string]PartLayers)
	for _, part := range CharacterParts() {
		layers[part.Name] = white
	}
	return NewCharacterScene(layers)
}
