package core

// Color is a linear RGBA colour with components nominally in [0, 1]
type Color struct {
	R, G, B, A float64
}

// Black is opaque black, the colour sampled from an empty texture
var Black = Color{R: 0, G: 0, B: 0, A: 1}

// NewColor creates an opaque colour
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// NewColorA creates a colour with explicit alpha
func NewColorA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Add returns the component-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Subtract returns the component-wise difference
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B, c.A - other.A}
}

// Multiply scales every channel, alpha included
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar, c.A * scalar}
}

// MultiplyColor returns the component-wise product
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// ScaleRGB scales the colour channels and leaves alpha untouched
func (c Color) ScaleRGB(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar, c.A}
}

// WithAlpha returns the colour with its alpha replaced
func (c Color) WithAlpha(alpha float64) Color {
	c.A = alpha
	return c
}

// Lerp linearly interpolates from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1 - t).Add(other.Multiply(t))
}

// Clamp saturates each channel to [0, 1]
func (c Color) Clamp() Color {
	return Color{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

func clamp01(x float64) float64 {
	return max(0.0, min(1.0, x))
}

// Clamp01 saturates a scalar to [0, 1]
func Clamp01(x float64) float64 {
	return clamp01(x)
}
