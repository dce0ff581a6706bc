package gripedit

import (
	"fmt"
	"math"
)

// ViewTransform maps world space to screen space:
//
//	screen = Rotate(Rotation) * world * Scale + (OffsetX, OffsetY)
//
// Scale must be > 0. Rotation is in radians and optional; with Rotation == 0
// the conversions reduce to plain scale-and-offset arithmetic.
type ViewTransform struct {
	Scale    float64
	OffsetX  float64
	OffsetY  float64
	Rotation float64
}

// IdentityView is the 1:1 transform with no offset.
var IdentityView = ViewTransform{Scale: 1}

// Validate reports ErrInvalidTransform if the scale is not strictly positive
// or any field is NaN or infinite.
func (t ViewTransform) Validate() error {
	for _, f := range [...]float64{t.Scale, t.OffsetX, t.OffsetY, t.Rotation} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite field in %+v", ErrInvalidTransform, t)
		}
	}
	if t.Scale <= 0 {
		return fmt.Errorf("%w: scale %v must be > 0", ErrInvalidTransform, t.Scale)
	}
	return nil
}

// Viewport is the pixel size of the canvas.
type Viewport struct {
	Width, Height float64
}

// Center returns the screen-space center of the viewport.
func (v Viewport) Center() Vec2 {
	return Vec2{v.Width / 2, v.Height / 2}
}

// Bounds returns the viewport as a screen-space rectangle at the origin.
func (v Viewport) Bounds() Rect {
	return Rect{Width: v.Width, Height: v.Height}
}

// WorldToScreen converts a world-space point to screen space.
// t must have passed Validate.
func WorldToScreen(p Vec2, t ViewTransform) Vec2 {
	if t.Rotation == 0 {
		return Vec2{p.X*t.Scale + t.OffsetX, p.Y*t.Scale + t.OffsetY}
	}
	x, y := transformPoint(viewMatrix(t), p.X, p.Y)
	return Vec2{x, y}
}

// ScreenToWorld converts a screen-space point to world space. It is the exact
// inverse of WorldToScreen and keeps no state between calls.
// t must have passed Validate; a zero scale is undefined.
func ScreenToWorld(p Vec2, t ViewTransform) Vec2 {
	if t.Rotation == 0 {
		return Vec2{(p.X - t.OffsetX) / t.Scale, (p.Y - t.OffsetY) / t.Scale}
	}
	// Undo the offset, rotate back, then divide by the scale.
	dx, dy := p.X-t.OffsetX, p.Y-t.OffsetY
	sin, cos := math.Sincos(t.Rotation)
	return Vec2{(dx*cos + dy*sin) / t.Scale, (dy*cos - dx*sin) / t.Scale}
}

// HitTolerance converts a screen-space radius in pixels to world units so
// grips stay equally easy to hit at every zoom level.
func HitTolerance(pixels float64, t ViewTransform) float64 {
	return pixels / t.Scale
}

// viewMatrix builds the affine matrix for t.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func viewMatrix(t ViewTransform) [6]float64 {
	sin, cos := math.Sincos(t.Rotation)
	s := t.Scale
	return [6]float64{s * cos, s * sin, -s * sin, s * cos, t.OffsetX, t.OffsetY}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
