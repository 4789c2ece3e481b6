package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecClose(a, b Vec3) bool {
	return a.Subtract(b).Length() < tolerance
}

func TestVec3Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if got := a.Add(b); got != NewVec3(5, -3, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Subtract(b); got != NewVec3(-3, 7, -3) {
		t.Errorf("Subtract: got %v", got)
	}
	if got := a.Multiply(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Multiply: got %v", got)
	}
	if got := a.Negate(); got != NewVec3(-1, -2, -3) {
		t.Errorf("Negate: got %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot: expected 12, got %v", got)
	}
	if got := a.Cross(b); got != NewVec3(27, 6, -13) {
		t.Errorf("Cross: got %v", got)
	}
	if got := NewVec3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length: expected 5, got %v", got)
	}
	if got := a.Axis(0) + a.Axis(1)*10 + a.Axis(2)*100; got != 321 {
		t.Errorf("Axis: unexpected components of %v", a)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name     string
		input    Vec3
		expected Vec3
	}{
		{"unit x", NewVec3(5, 0, 0), NewVec3(1, 0, 0)},
		{"diagonal", NewVec3(1, 1, 0), NewVec3(1/math.Sqrt2, 1/math.Sqrt2, 0)},
		{"zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
		{"near zero", NewVec3(1e-9, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.Normalize(); !vecClose(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRayAt(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))
	if got := ray.At(1.5); got != NewVec3(1, 3, 0) {
		t.Errorf("Expected (1,3,0), got %v", got)
	}
}

func TestColorOperations(t *testing.T) {
	c := NewColorA(0.5, 1.5, -0.5, 0.25)

	if got := c.Clamp(); got != NewColorA(0.5, 1, 0, 0.25) {
		t.Errorf("Clamp: got %v", got)
	}
	if got := c.ScaleRGB(2); got != NewColorA(1, 3, -1, 0.25) {
		t.Errorf("ScaleRGB must keep alpha: got %v", got)
	}
	if got := c.WithAlpha(1); got.A != 1 || got.R != 0.5 {
		t.Errorf("WithAlpha: got %v", got)
	}
	if got := NewColor(0, 0, 0).Lerp(NewColor(1, 1, 1), 0.25); got != NewColor(0.25, 0.25, 0.25) {
		t.Errorf("Lerp: got %v", got)
	}
	if got := NewColor(0.5, 0.5, 0.5).MultiplyColor(NewColorA(1, 0.5, 0, 0.5)); got != NewColorA(0.5, 0.25, 0, 0.5) {
		t.Errorf("MultiplyColor: got %v", got)
	}
	if Black.A != 1 {
		t.Error("Black must be opaque")
	}
}
