// Package object holds the simulated entities of the playing field.
package object

import "math"

// Field is the bounded area targets move within, in pixels.
// Edges reflect motion instead of wrapping it.
type Field struct {
	Width  float64
	Height float64
}

// Valid reports whether the field has a usable area.
func (f Field) Valid() bool {
	return f.Width > 0 && f.Height > 0
}

// Limits returns the largest top-left coordinate an object of the given
// size can take while staying fully inside the field.
func (f Field) Limits(size float64) (maxX, maxY float64) {
	return math.Max(0, f.Width-size), math.Max(0, f.Height-size)
}

// ReflectAxis keeps a coordinate inside [0, limit]. On reaching or crossing
// either bound the velocity is negated and the position clamped.
func ReflectAxis(pos, vel *float64, limit float64) {
	if *pos <= 0 || *pos >= limit {
		*vel = -*vel
		*pos = math.Max(0, math.Min(limit, *pos))
	}
}

// ClampAxis clamps a coordinate into [0, limit] without touching velocity.
func ClampAxis(pos *float64, limit float64) {
	*pos = math.Max(0, math.Min(limit, *pos))
}

// SpawnRange returns the interval a spawn coordinate is drawn from on one axis:
// the field interior minus padding on both sides and the object size.
// Padding collapses to zero when the field is too small to honor it.
func SpawnRange(dim, size, padding float64) (lo, span float64) {
	span = dim - size - 2*padding
	if span >= 0 {
		return padding, span
	}
	span = dim - size
	if span < 0 {
		span = 0
	}
	return 0, span
}
