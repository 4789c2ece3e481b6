package loaders

import (
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/scene"
)

// SceneFile is the YAML description of a character scene.
// Omitted sections fall back to the default scene's light, camera and layout.
type SceneFile struct {
	Background string      `yaml:"background"`
	Light      *LightSpec  `yaml:"light"`
	Camera     *CameraSpec `yaml:"camera"`
	Parts      []PartSpec  `yaml:"parts"`
}

// LightSpec describes the area light
type LightSpec struct {
	Position  []float64 `yaml:"position"`
	Color     string    `yaml:"color"`
	Intensity float64   `yaml:"intensity"`
	Radius    float64   `yaml:"radius"`
}

// CameraSpec describes the look-at camera
type CameraSpec struct {
	Position []float64 `yaml:"position"`
	Target   []float64 `yaml:"target"`
	Up       []float64 `yaml:"up"`
	FOV      float64   `yaml:"fov"`
}

// PartSpec places one box part. Center and size default to the standard
// layout when the name matches a standard part.
type PartSpec struct {
	Name   string     `yaml:"name"`
	Center []float64  `yaml:"center"`
	Size   []float64  `yaml:"size"`
	Inner  LayerSpec  `yaml:"inner"`
	Outer  *LayerSpec `yaml:"outer"`
}

// LayerSpec textures one layer: a flat colour, per-face image files, or both
// (the colour fills faces without a file).
type LayerSpec struct {
	Color    string            `yaml:"color"`
	Alpha    *float64          `yaml:"alpha"`
	Textures map[string]string `yaml:"textures"` // face name -> image path
}

// LoadSceneFile reads a YAML scene description and builds the scene.
// Relative texture paths resolve against the file's directory.
func LoadSceneFile(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scene file %s", path)
	}

	var desc SceneFile
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse scene file %s", path)
	}

	sc, err := desc.Build(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid scene file %s", path)
	}
	return sc, nil
}

// Build converts the description into a scene, loading textures relative to baseDir
func (f SceneFile) Build(baseDir string) (*scene.Scene, error) {
	sc := scene.NewCharacterScene(nil)

	if f.Background != "" {
		bg, err := parseColor(f.Background, nil)
		if err != nil {
			return nil, errors.Wrap(err, "background")
		}
		sc.BackgroundColor = bg
	}

	if f.Light != nil {
		light, err := f.Light.build(sc.Light)
		if err != nil {
			return nil, errors.Wrap(err, "light")
		}
		sc.Light = light
	}

	if f.Camera != nil {
		cam, err := f.Camera.build(sc.Camera)
		if err != nil {
			return nil, errors.Wrap(err, "camera")
		}
		sc.Camera = cam
	}

	parts := f.Parts
	if len(parts) == 0 {
		for _, p := range scene.CharacterParts() {
			parts = append(parts, PartSpec{Name: p.Name})
		}
	}

	for i, spec := range parts {
		if err := spec.addTo(sc, baseDir); err != nil {
			return nil, errors.Wrapf(err, "part %d (%s)", i, spec.Name)
		}
	}

	return sc, nil
}

func (l LightSpec) build(def scene.Light) (scene.Light, error) {
	light := def
	if l.Position != nil {
		p, err := toVec3(l.Position)
		if err != nil {
			return light, errors.Wrap(err, "position")
		}
		light.Position = p
	}
	if l.Color != "" {
		c, err := parseColor(l.Color, nil)
		if err != nil {
			return light, err
		}
		light.Color = c
	}
	if l.Intensity > 0 {
		light.Intensity = l.Intensity
	}
	if l.Radius > 0 {
		light.Radius = l.Radius
	}
	return light, nil
}

func (c CameraSpec) build(def scene.Camera) (scene.Camera, error) {
	cam := def
	for _, field := range []struct {
		name  string
		value []float64
		dst   *core.Vec3
	}{
		{"position", c.Position, &cam.Position},
		{"target", c.Target, &cam.Target},
		{"up", c.Up, &cam.Up},
	} {
		if field.value == nil {
			continue
		}
		v, err := toVec3(field.value)
		if err != nil {
			return cam, errors.Wrap(err, field.name)
		}
		*field.dst = v
	}
	if c.FOV > 0 {
		cam.FOV = c.FOV
	}
	return cam, nil
}

func (p PartSpec) addTo(sc *scene.Scene, baseDir string) error {
	part := scene.Part{Name: p.Name}
	for _, std := range scene.CharacterParts() {
		if std.Name == p.Name {
			part = std
		}
	}

	if p.Center != nil {
		c, err := toVec3(p.Center)
		if err != nil {
			return errors.Wrap(err, "center")
		}
		part.Center = c
	}
	if p.Size != nil {
		s, err := toVec3(p.Size)
		if err != nil {
			return errors.Wrap(err, "size")
		}
		part.Size = s
	}
	if part.Size.X <= 0 || part.Size.Y <= 0 || part.Size.Z <= 0 {
		return errors.Errorf("size %v must be positive", part.Size)
	}

	inner, err := p.Inner.textures(baseDir, core.NewColor(1, 1, 1))
	if err != nil {
		return errors.Wrap(err, "inner layer")
	}

	var outer [scene.FaceCount]scene.TextureRegion
	if p.Outer != nil {
		outer, err = p.Outer.textures(baseDir, core.Color{})
		if err != nil {
			return errors.Wrap(err, "outer layer")
		}
	}

	sc.AddPart(part, inner, outer)
	return nil
}

// textures resolves the six face textures. Faces without a file use the layer
// colour, or fallback when the layer has no colour.
func (l LayerSpec) textures(baseDir string, fallback core.Color) ([scene.FaceCount]scene.TextureRegion, error) {
	var textures [scene.FaceCount]scene.TextureRegion

	fill := fallback
	if l.Color != "" {
		c, err := parseColor(l.Color, l.Alpha)
		if err != nil {
			return textures, err
		}
		fill = c
	}
	for i := range textures {
		textures[i] = scene.NewSolidTexture(fill)
	}

	for name, file := range l.Textures {
		face, ok := scene.FaceFromName(name)
		if !ok {
			return textures, errors.Errorf("unknown face %q", name)
		}
		if !filepath.IsAbs(file) {
			file = filepath.Join(baseDir, file)
		}
		tex, err := LoadTexture(file)
		if err != nil {
			return textures, err
		}
		textures[face] = tex
	}

	return textures, nil
}

// parseColor parses a hex colour such as "#ffcc00" with optional alpha
func parseColor(hex string, alpha *float64) (core.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return core.Color{}, errors.Wrapf(err, "invalid colour %q", hex)
	}
	a := 1.0
	if alpha != nil {
		a = core.Clamp01(*alpha)
	}
	return core.NewColorA(c.R, c.G, c.B, a), nil
}

func toVec3(v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, errors.Errorf("expected 3 components, got %d", len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
