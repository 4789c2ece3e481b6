package loaders

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/scene"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoadSceneFileDefaultsToCharacter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	writeFile(t, path, "background: \"#000000\"\n")

	sc, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}

	if len(sc.Meshes) != len(scene.CharacterParts()) {
		t.Errorf("Expected %d meshes, got %d", len(scene.CharacterParts()), len(sc.Meshes))
	}
	if sc.BackgroundColor != core.NewColor(0, 0, 0) {
		t.Errorf("Expected black background, got %v", sc.BackgroundColor)
	}
	if sc.Camera != scene.DefaultCamera() || sc.Light != scene.DefaultLight() {
		t.Error("Expected default camera and light")
	}
}

func TestLoadSceneFileParts(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "face.png"))

	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, `
light:
  position: [1, 2, 3]
  color: "#ff0000"
camera:
  fov: 45
parts:
  - name: head
    inner:
      color: "#00ff00"
      textures:
        front: face.png
    outer:
      color: "#0000ff"
      alpha: 0.5
  - name: block
    center: [10, 0, 0]
    size: [2, 2, 2]
`)

	sc, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}

	if sc.Light.Position != core.NewVec3(1, 2, 3) || sc.Light.Color != core.NewColor(1, 0, 0) {
		t.Errorf("Unexpected light %+v", sc.Light)
	}
	if sc.Light.Radius != scene.DefaultLight().Radius {
		t.Errorf("Expected default light radius, got %f", sc.Light.Radius)
	}
	if sc.Camera.FOV != 45 || sc.Camera.Position != scene.DefaultCamera().Position {
		t.Errorf("Unexpected camera %+v", sc.Camera)
	}

	// head inner + head outer + block inner
	if len(sc.Meshes) != 3 {
		t.Fatalf("Expected 3 meshes, got %d", len(sc.Meshes))
	}

	head := sc.Meshes[0]
	if head.Textures[scene.FaceFront].Width != 2 {
		t.Errorf("Expected loaded front texture, got %dx%d", head.Textures[scene.FaceFront].Width, head.Textures[scene.FaceFront].Height)
	}
	if head.Textures[scene.FaceBack].Pixels[0] != core.NewColor(0, 1, 0) {
		t.Errorf("Expected green back face, got %v", head.Textures[scene.FaceBack].Pixels[0])
	}
	if bounds := head.Bounds(); bounds.Center() != core.NewVec3(0, 28, 0) {
		t.Errorf("Expected standard head placement, got centre %v", bounds.Center())
	}

	outer := sc.Meshes[1]
	if !outer.IsOuterLayer {
		t.Error("Expected second mesh to be the outer layer")
	}
	if got := outer.Textures[scene.FaceTop].Pixels[0]; math.Abs(got.A-0.5) > 1e-12 || got.B != 1 {
		t.Errorf("Expected half transparent blue overlay, got %v", got)
	}

	block := sc.Meshes[2]
	if block.IsOuterLayer || block.Bounds().Center() != core.NewVec3(10, 0, 0) {
		t.Errorf("Unexpected block mesh bounds %v", block.Bounds())
	}
	if block.Textures[scene.FaceLeft].Pixels[0] != core.NewColor(1, 1, 1) {
		t.Errorf("Expected white default inner texture, got %v", block.Textures[scene.FaceLeft].Pixels[0])
	}
}

func TestLoadSceneFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "parts: [:"},
		{"bad colour", "background: \"not-a-colour\"\n"},
		{"short vector", "light:\n  position: [1, 2]\n"},
		{"unknown part without size", "parts:\n  - name: tail\n"},
		{"unknown face", "parts:\n  - name: head\n    inner:\n      textures:\n        side: x.png\n"},
		{"missing texture", "parts:\n  - name: head\n    inner:\n      textures:\n        front: missing.png\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "scene.yaml")
			writeFile(t, path, tt.content)
			if _, err := LoadSceneFile(path); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := LoadSceneFile(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("Expected error for missing scene file")
	}
}
