package gripedit

import "math"

// Vec2 is a 2D point or displacement. Whether it is in world or screen space
// depends on context; convert between the two only through [WorldToScreen]
// and [ScreenToWorld].
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// IsZero reports whether v is exactly (0, 0).
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Lerp returns the point at fraction t along v→o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

func (v Vec2) finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle. X, Y is the minimum corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// boundsOf returns the bounding rectangle of pts. Zero-value for no points.
func boundsOf(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// EntityKind identifies the geometric kind of an [Entity].
type EntityKind uint8

const (
	KindLine             EntityKind = iota + 1 // two endpoints
	KindCircle                                 // center and radius
	KindPolyline                               // open or closed vertex chain
	KindArc                                    // center, radius, start/end angle in degrees
	KindText                                   // insertion point only
	KindAngleMeasurement                       // vertex plus two arm points
)

var kindNames = map[EntityKind]string{
	KindLine:             "line",
	KindCircle:           "circle",
	KindPolyline:         "polyline",
	KindArc:              "arc",
	KindText:             "text",
	KindAngleMeasurement: "angle-measurement",
}

// String returns the wire name of the kind ("line", "angle-measurement", ...).
func (k EntityKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// parseKind is the inverse of String.
func parseKind(s string) (EntityKind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// GripType is the semantic role of a grip.
type GripType uint8

const (
	GripVertex GripType = iota // a single stretchable coordinate
	GripEdge                   // an edge midpoint; stretches both bounding vertices
	GripCenter                 // a center point; usually moves the whole entity
)

func (t GripType) String() string {
	switch t {
	case GripVertex:
		return "vertex"
	case GripEdge:
		return "edge"
	case GripCenter:
		return "center"
	}
	return "unknown"
}

// Phase is the interaction phase of a [StateMachine].
type Phase uint8

const (
	PhaseIdle     Phase = iota // no grip under the pointer
	PhaseHovering              // pointer within tolerance of a grip, warm timer pending
	PhaseWarm                  // hover persisted past the warm delay
	PhaseDragging              // a grip is being dragged
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHovering:
		return "hovering"
	case PhaseWarm:
		return "warm"
	case PhaseDragging:
		return "dragging"
	}
	return "unknown"
}

// GripEventType identifies a kind of interaction event sent to an [EventSink].
type GripEventType uint8

const (
	EventGripEnter GripEventType = iota // pointer moved onto a grip
	EventGripLeave                      // pointer moved off a grip
	EventGripWarm                       // hover persisted past the warm delay
	EventDragStart                      // pointer pressed on a grip
	EventDrag                           // pointer moved while dragging
	EventCommit                         // non-zero drag released and handed to the adapter
	EventCancel                         // drag cancelled by Escape or right-click
)

func (t GripEventType) String() string {
	switch t {
	case EventGripEnter:
		return "grip-enter"
	case EventGripLeave:
		return "grip-leave"
	case EventGripWarm:
		return "grip-warm"
	case EventDragStart:
		return "drag-start"
	case EventDrag:
		return "drag"
	case EventCommit:
		return "commit"
	case EventCancel:
		return "cancel"
	}
	return "unknown"
}
