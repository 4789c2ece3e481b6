package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/geometry"
	"github.com/df07/go-skin-raytracer/pkg/scene"
	"github.com/df07/go-skin-raytracer/pkg/shading"
)

func colorsClose(a, b core.Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol && math.Abs(a.A-b.A) <= tol
}

func TestTraceRayMissReturnsBackground(t *testing.T) {
	sc := newTestScene()
	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 1, 0))

	got := TraceRay(ray, sc, 0, 3, shading.DefaultParams(), nil)
	if got != sc.BackgroundColor {
		t.Errorf("Expected background %v, got %v", sc.BackgroundColor, got)
	}
}

func TestTraceRayEmptySceneIsBackgroundForAnyBounces(t *testing.T) {
	sc := newTestScene()
	sc.Meshes = nil
	gradient := DefaultConfig()
	gradient.GradientBackground = true

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1)),
		core.NewRay(core.NewVec3(0, 20, 50), core.NewVec3(0.3, -0.2, -1).Normalize()),
	}
	for maxBounces := 0; maxBounces <= 10; maxBounces++ {
		for i, ray := range rays {
			if got := TraceRay(ray, sc, 0, maxBounces, shading.DefaultParams(), nil); got != sc.BackgroundColor {
				t.Errorf("maxBounces=%d ray %d: expected %v, got %v", maxBounces, i, sc.BackgroundColor, got)
			}
			want := BackgroundColor(sc, 0.5, 0.5, &gradient)
			if got := TraceRay(ray, sc, 0, maxBounces, shading.DefaultParams(), &gradient); got != want {
				t.Errorf("maxBounces=%d ray %d with gradient: expected %v, got %v", maxBounces, i, want, got)
			}
		}
	}
}

func TestTraceRayDepthBeyondMaxIsBackground(t *testing.T) {
	sc := newTestScene()
	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1))

	got := TraceRay(ray, sc, 4, 3, shading.DefaultParams(), nil)
	if got != sc.BackgroundColor {
		t.Errorf("Expected background past max depth, got %v", got)
	}
}

func TestTraceRayZeroBouncesIsDirectShading(t *testing.T) {
	sc := newTestScene()
	params := shading.DefaultParams()
	ray := core.NewRay(core.NewVec3(0.3, 0.2, 10), core.NewVec3(0, 0, -1))

	hit := geometry.IntersectScene(ray, sc)
	if !hit.Hit {
		t.Fatal("Expected the ray to hit the box")
	}
	viewDir := ray.Origin.Subtract(hit.Point).Normalize()
	want := shading.Shade(hit, viewDir, sc.Light, sc, params, shading.ComputeShadow)

	got := TraceRay(ray, sc, 0, 0, params, nil)
	if !colorsClose(got, want, 1e-12) {
		t.Errorf("Expected direct shading %v, got %v", want, got)
	}
}

func TestTraceRayReflectionBlendsBackground(t *testing.T) {
	// A head-on ray reflects straight back into the open background
	sc := newTestScene()
	params := shading.DefaultParams()
	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1))

	direct := TraceRay(ray, sc, 0, 0, params, nil)
	want := direct.Multiply(1 - skinReflectivity).Add(sc.BackgroundColor.Multiply(skinReflectivity)).Clamp().WithAlpha(direct.A)

	got := TraceRay(ray, sc, 0, 1, params, nil)
	if !colorsClose(got, want, 1e-12) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTraceRayPreservesAlpha(t *testing.T) {
	sc := newTestScene()
	sc.Meshes = nil
	sc.AddMesh(scene.NewBoxMesh(scene.SolidTextures(core.NewColorA(1, 0.5, 0.5, 0.5)), core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2), 0))

	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1))
	cfg := DefaultConfig()
	cfg.AOEnabled = true

	got := TraceRay(ray, sc, 0, 3, shading.DefaultParams(), &cfg)
	if got.A != 0.5 {
		t.Errorf("Expected alpha 0.5, got %f", got.A)
	}
}

func TestTraceRayOutputIsClamped(t *testing.T) {
	sc := newTestScene()
	params := shading.Params{Kd: 5, Ks: 5, Ambient: 5, Shininess: 1}
	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1))

	got := TraceRay(ray, sc, 0, 2, params, nil)
	for _, c := range []float64{got.R, got.G, got.B, got.A} {
		if c < 0 || c > 1 {
			t.Fatalf("Expected clamped colour, got %v", got)
		}
	}
}

func TestBackgroundColor(t *testing.T) {
	sc := newTestScene()
	cfg := DefaultConfig()

	if got := BackgroundColor(sc, 0.5, 0.5, &cfg); !colorsClose(got, cfg.BackgroundCenter, 1e-12) {
		t.Errorf("Centre: expected %v, got %v", cfg.BackgroundCenter, got)
	}
	if got := BackgroundColor(sc, 0, 0, &cfg); !colorsClose(got, cfg.BackgroundEdge, 1e-9) {
		t.Errorf("Corner: expected %v, got %v", cfg.BackgroundEdge, got)
	}

	// Halfway along the radius the squared falloff gives a quarter blend
	u := 0.5 + 0.25/math.Sqrt2
	want := cfg.BackgroundCenter.Lerp(cfg.BackgroundEdge, 0.0625)
	if got := BackgroundColor(sc, u, 0.5, &cfg); !colorsClose(got, want, 1e-9) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	cfg.GradientBackground = false
	if got := BackgroundColor(sc, 0, 0, &cfg); got != sc.BackgroundColor {
		t.Errorf("Flat: expected %v, got %v", sc.BackgroundColor, got)
	}
	if got := BackgroundColor(sc, 0, 0, nil); got != sc.BackgroundColor {
		t.Errorf("Nil config: expected %v, got %v", sc.BackgroundColor, got)
	}
}

func TestComputeAO(t *testing.T) {
	sc := newTestScene()

	// Facing away from everything
	open := ComputeAO(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), sc, 16, 3, 42)
	if open != 1 {
		t.Errorf("Expected fully open AO, got %f", open)
	}

	// Every direction from inside a closed box reaches a wall
	inside := ComputeAO(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), sc, 16, 10, 42)
	if inside != 0 {
		t.Errorf("Expected fully occluded AO, got %f", inside)
	}

	if got := ComputeAO(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), sc, 0, 10, 42); got != 1 {
		t.Errorf("Expected 1 with no samples, got %f", got)
	}

	a := ComputeAO(core.NewVec3(1.05, 0, 0), core.NewVec3(0, 1, 0), sc, 32, 3, 7)
	b := ComputeAO(core.NewVec3(1.05, 0, 0), core.NewVec3(0, 1, 0), sc, 32, 3, 7)
	if a != b {
		t.Errorf("Expected deterministic AO, got %f and %f", a, b)
	}
	if a <= 0 || a >= 1 {
		t.Errorf("Expected partial occlusion next to the box, got %f", a)
	}
}
