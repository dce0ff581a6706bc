package gripedit

import (
	"fmt"
	"math"
)

// Zoom limits applied by ZoomAt. Beyond these, float64 precision in the
// screen→world round trip degrades visibly.
const (
	MinScale = 1e-6
	MaxScale = 1e6
)

// ZoomAt returns t scaled by factor about the screen point anchor: the world
// point under anchor stays under anchor. The resulting scale is clamped to
// [MinScale, MaxScale].
func ZoomAt(t ViewTransform, anchor Vec2, factor float64) (ViewTransform, error) {
	if err := t.Validate(); err != nil {
		return t, err
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return t, fmt.Errorf("%w: zoom factor %v", ErrInvalidTransform, factor)
	}
	w := ScreenToWorld(anchor, t)

	next := t
	next.Scale = math.Max(MinScale, math.Min(t.Scale*factor, MaxScale))
	next.OffsetX, next.OffsetY = 0, 0
	sx, sy := transformPoint(viewMatrix(next), w.X, w.Y)
	next.OffsetX = anchor.X - sx
	next.OffsetY = anchor.Y - sy
	return next, nil
}

// Pan returns t shifted by (dx, dy) screen pixels.
func Pan(t ViewTransform, dx, dy float64) ViewTransform {
	t.OffsetX += dx
	t.OffsetY += dy
	return t
}

// FitBounds returns an unrotated transform that centers world in the viewport,
// leaving margin pixels on every side. A degenerate world rect (a point or a
// horizontal/vertical segment) is fitted along whichever axis has extent;
// a single point is centered at scale 1.
func FitBounds(world Rect, vp Viewport, margin float64) (ViewTransform, error) {
	availW := vp.Width - 2*margin
	availH := vp.Height - 2*margin
	if availW <= 0 || availH <= 0 {
		return ViewTransform{}, fmt.Errorf("%w: viewport %vx%v too small for margin %v",
			ErrInvalidTransform, vp.Width, vp.Height, margin)
	}

	scale := math.Inf(1)
	if world.Width > 0 {
		scale = availW / world.Width
	}
	if world.Height > 0 {
		scale = math.Min(scale, availH/world.Height)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	scale = math.Max(MinScale, math.Min(scale, MaxScale))

	c := world.Center()
	vc := vp.Center()
	return ViewTransform{
		Scale:   scale,
		OffsetX: vc.X - c.X*scale,
		OffsetY: vc.Y - c.Y*scale,
	}, nil
}

// VisibleWorldBounds returns the axis-aligned bounding rect of the viewport's
// visible area in world space.
func VisibleWorldBounds(t ViewTransform, vp Viewport) Rect {
	corners := [4]Vec2{
		ScreenToWorld(Vec2{0, 0}, t),
		ScreenToWorld(Vec2{vp.Width, 0}, t),
		ScreenToWorld(Vec2{vp.Width, vp.Height}, t),
		ScreenToWorld(Vec2{0, vp.Height}, t),
	}
	return boundsOf(corners[:])
}
