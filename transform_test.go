package gripedit

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- WorldToScreen / ScreenToWorld ---

func TestWorldToScreenScaleOffset(t *testing.T) {
	v := ViewTransform{Scale: 2, OffsetX: 10, OffsetY: -5}
	assertVec(t, "origin", WorldToScreen(Vec2{0, 0}, v), Vec2{10, -5})
	assertVec(t, "point", WorldToScreen(Vec2{3, 4}, v), Vec2{16, 3})
	assertVec(t, "inverse", ScreenToWorld(Vec2{16, 3}, v), Vec2{3, 4})
}

func TestWorldToScreenRotation90(t *testing.T) {
	v := ViewTransform{Scale: 1, Rotation: math.Pi / 2}
	// +X rotates onto +Y.
	assertVec(t, "x axis", WorldToScreen(Vec2{1, 0}, v), Vec2{0, 1})
	assertVec(t, "y axis", WorldToScreen(Vec2{0, 1}, v), Vec2{-1, 0})
}

func TestScreenWorldRoundTrip(t *testing.T) {
	views := []ViewTransform{
		IdentityView,
		{Scale: 0.5, OffsetX: 320, OffsetY: 240},
		{Scale: 2.5, OffsetX: -100, OffsetY: 40},
		{Scale: 10, OffsetX: 3, OffsetY: 7, Rotation: 0.3},
		{Scale: 0.75, OffsetX: 400, OffsetY: 300, Rotation: -2},
	}
	points := []Vec2{{0, 0}, {1, -1}, {123.456, -789.012}, {-1000, 1000}}

	for _, v := range views {
		for _, p := range points {
			w := ScreenToWorld(WorldToScreen(p, v), v)
			if !approxEqual(w.X, p.X, epsilon) || !approxEqual(w.Y, p.Y, epsilon) {
				t.Errorf("view %+v: world round trip %v -> %v", v, p, w)
			}
			s := WorldToScreen(ScreenToWorld(p, v), v)
			if !approxEqual(s.X, p.X, epsilon) || !approxEqual(s.Y, p.Y, epsilon) {
				t.Errorf("view %+v: screen round trip %v -> %v", v, p, s)
			}
		}
	}
}

func TestViewTransformValidate(t *testing.T) {
	tests := []struct {
		name string
		v    ViewTransform
		ok   bool
	}{
		{"identity", IdentityView, true},
		{"rotated", ViewTransform{Scale: 3, Rotation: 1}, true},
		{"zero scale", ViewTransform{}, false},
		{"negative scale", ViewTransform{Scale: -1}, false},
		{"nan offset", ViewTransform{Scale: 1, OffsetX: math.NaN()}, false},
		{"inf scale", ViewTransform{Scale: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidTransform) {
				t.Errorf("Validate() = %v, want ErrInvalidTransform", err)
			}
		})
	}
}

func TestHitToleranceScalesWithZoom(t *testing.T) {
	assertNear(t, "scale 1", HitTolerance(8, IdentityView), 8)
	assertNear(t, "scale 2", HitTolerance(8, ViewTransform{Scale: 2}), 4)
	assertNear(t, "scale 0.5", HitTolerance(8, ViewTransform{Scale: 0.5}), 16)
}

func TestScreenWorldRoundTripTinyScale(t *testing.T) {
	views := []ViewTransform{
		{Scale: MinScale, OffsetX: 10, OffsetY: 20, Rotation: 0.5},
		{Scale: 5e-7, OffsetX: 10, OffsetY: 20, Rotation: 0.5},
		{Scale: 1e-6, OffsetX: -3, OffsetY: 4, Rotation: -1.2},
	}
	screens := []Vec2{{300, 200}, {0, 0}, {-640, 480}}
	for _, v := range views {
		for _, s := range screens {
			got := WorldToScreen(ScreenToWorld(s, v), v)
			if math.Abs(got.X-s.X) > 1e-6 || math.Abs(got.Y-s.Y) > 1e-6 {
				t.Errorf("scale %g: screen round trip %v -> %v", v.Scale, s, got)
			}
		}
	}
}

func TestScreenToWorldTinyScaleIsNotIdentity(t *testing.T) {
	v := ViewTransform{Scale: 5e-7, OffsetX: 10, OffsetY: 20, Rotation: 0.5}
	w := ScreenToWorld(Vec2{300, 200}, v)
	if math.Abs(w.X-300) < 1 && math.Abs(w.Y-200) < 1 {
		t.Errorf("ScreenToWorld = %v, looks like an identity fallback", w)
	}
}

// --- View helpers ---

func TestZoomAtKeepsAnchor(t *testing.T) {
	views := []ViewTransform{
		IdentityView,
		{Scale: 1.5, OffsetX: 30, OffsetY: -20},
		{Scale: 2, OffsetX: 100, OffsetY: 100, Rotation: 0.7},
	}
	anchor := Vec2{250, 175}
	for _, v := range views {
		before := ScreenToWorld(anchor, v)
		next, err := ZoomAt(v, anchor, 1.25)
		if err != nil {
			t.Fatalf("ZoomAt: %v", err)
		}
		assertNear(t, "scale", next.Scale, v.Scale*1.25)
		assertVec(t, "anchor world point", ScreenToWorld(anchor, next), before)
	}
}

func TestZoomAtClampsAndRejects(t *testing.T) {
	v, err := ZoomAt(ViewTransform{Scale: MaxScale / 2}, Vec2{}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if v.Scale != MaxScale {
		t.Errorf("Scale = %v, want clamp to %v", v.Scale, MaxScale)
	}

	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := ZoomAt(IdentityView, Vec2{}, f); !errors.Is(err, ErrInvalidTransform) {
			t.Errorf("factor %v: err = %v, want ErrInvalidTransform", f, err)
		}
	}
	if _, err := ZoomAt(ViewTransform{}, Vec2{}, 2); !errors.Is(err, ErrInvalidTransform) {
		t.Errorf("invalid view: err = %v, want ErrInvalidTransform", err)
	}
}

func TestPan(t *testing.T) {
	v := Pan(ViewTransform{Scale: 2, OffsetX: 1, OffsetY: 2}, 10, -4)
	if v.OffsetX != 11 || v.OffsetY != -2 || v.Scale != 2 {
		t.Errorf("Pan = %+v", v)
	}
}

func TestFitBounds(t *testing.T) {
	v, err := FitBounds(Rect{X: 0, Y: 0, Width: 100, Height: 50}, Viewport{Width: 200, Height: 200}, 0)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "scale", v.Scale, 2)
	// The world center lands on the viewport center.
	assertVec(t, "center", WorldToScreen(Vec2{50, 25}, v), Vec2{100, 100})
}

func TestFitBoundsDegenerate(t *testing.T) {
	v, err := FitBounds(Rect{X: 5, Y: 5}, Viewport{Width: 100, Height: 100}, 10)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "point scale", v.Scale, 1)
	assertVec(t, "point centered", WorldToScreen(Vec2{5, 5}, v), Vec2{50, 50})

	v, err = FitBounds(Rect{X: 0, Y: 0, Width: 40}, Viewport{Width: 100, Height: 100}, 10)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "segment scale", v.Scale, 2)

	if _, err := FitBounds(Rect{Width: 1, Height: 1}, Viewport{Width: 10, Height: 10}, 5); !errors.Is(err, ErrInvalidTransform) {
		t.Errorf("small viewport: err = %v, want ErrInvalidTransform", err)
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	b := VisibleWorldBounds(ViewTransform{Scale: 2, OffsetX: 100, OffsetY: 50}, vp)
	assertNear(t, "x", b.X, -50)
	assertNear(t, "y", b.Y, -25)
	assertNear(t, "w", b.Width, 400)
	assertNear(t, "h", b.Height, 300)
}
