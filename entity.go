package gripedit

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Entity is one geometric object in the scene. The set of implementations is
// closed: *Line, *Circle, *Polyline, *Arc, *Text and *AngleMeasurement.
//
// Entities are treated as values. Translate, SetVertices and Clone return new
// entities and never modify the receiver, so a snapshot taken before a
// command stays valid for undo.
type Entity interface {
	// ID returns the stable identifier of the entity.
	ID() string
	Kind() EntityKind
	// Vertices returns a copy of the editable coordinate list. Grip indices
	// of stretch grips and edge vertex indices refer to this list.
	Vertices() []Vec2
	// SetVertices returns a copy with the coordinate list replaced. The
	// length must match Vertices().
	SetVertices(v []Vec2) (Entity, error)
	// Translate returns a rigidly moved copy.
	Translate(d Vec2) Entity
	Clone() Entity
	// Bounds returns the world-space bounding rectangle.
	Bounds() Rect

	sealed()
}

// NewEntityID returns a fresh random entity identifier.
func NewEntityID() string {
	return uuid.NewString()
}

func checkVertexCount(e Entity, got int) error {
	if want := len(e.Vertices()); got != want {
		return fmt.Errorf("%w: %s %s has %d vertices, got %d",
			ErrVertexOutOfRange, e.Kind(), e.ID(), want, got)
	}
	return nil
}

// --- Line ---

// Line is a straight segment.
type Line struct {
	EntityID   string
	Start, End Vec2
}

// NewLine creates a line with a generated ID.
func NewLine(start, end Vec2) *Line {
	return &Line{EntityID: NewEntityID(), Start: start, End: end}
}

func (l *Line) ID() string       { return l.EntityID }
func (l *Line) Kind() EntityKind { return KindLine }
func (l *Line) Vertices() []Vec2 { return []Vec2{l.Start, l.End} }
func (l *Line) Clone() Entity    { c := *l; return &c }
func (l *Line) Bounds() Rect     { return boundsOf([]Vec2{l.Start, l.End}) }
func (*Line) sealed()            {}

// Midpoint returns the point halfway between Start and End.
func (l *Line) Midpoint() Vec2 { return l.Start.Lerp(l.End, 0.5) }

func (l *Line) SetVertices(v []Vec2) (Entity, error) {
	if err := checkVertexCount(l, len(v)); err != nil {
		return nil, err
	}
	return &Line{EntityID: l.EntityID, Start: v[0], End: v[1]}, nil
}

func (l *Line) Translate(d Vec2) Entity {
	return &Line{EntityID: l.EntityID, Start: l.Start.Add(d), End: l.End.Add(d)}
}

// --- Circle ---

// Circle is a full circle. Its only vertex is the center.
type Circle struct {
	EntityID string
	Center   Vec2
	Radius   float64
}

// NewCircle creates a circle with a generated ID.
func NewCircle(center Vec2, radius float64) *Circle {
	return &Circle{EntityID: NewEntityID(), Center: center, Radius: radius}
}

func (c *Circle) ID() string       { return c.EntityID }
func (c *Circle) Kind() EntityKind { return KindCircle }
func (c *Circle) Vertices() []Vec2 { return []Vec2{c.Center} }
func (c *Circle) Clone() Entity    { cc := *c; return &cc }
func (*Circle) sealed()            {}

func (c *Circle) Bounds() Rect {
	return Rect{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius, Width: 2 * c.Radius, Height: 2 * c.Radius}
}

func (c *Circle) SetVertices(v []Vec2) (Entity, error) {
	if err := checkVertexCount(c, len(v)); err != nil {
		return nil, err
	}
	return &Circle{EntityID: c.EntityID, Center: v[0], Radius: c.Radius}, nil
}

func (c *Circle) Translate(d Vec2) Entity {
	return &Circle{EntityID: c.EntityID, Center: c.Center.Add(d), Radius: c.Radius}
}

// --- Polyline ---

// Polyline is a chain of vertices, optionally closed back to the first.
type Polyline struct {
	EntityID string
	Points   []Vec2
	Closed   bool
}

// NewPolyline creates a polyline with a generated ID. pts is copied.
func NewPolyline(pts []Vec2, closed bool) *Polyline {
	return &Polyline{EntityID: NewEntityID(), Points: append([]Vec2(nil), pts...), Closed: closed}
}

func (p *Polyline) ID() string       { return p.EntityID }
func (p *Polyline) Kind() EntityKind { return KindPolyline }
func (p *Polyline) Vertices() []Vec2 { return append([]Vec2(nil), p.Points...) }
func (p *Polyline) Bounds() Rect     { return boundsOf(p.Points) }
func (*Polyline) sealed()            {}

func (p *Polyline) Clone() Entity {
	return &Polyline{EntityID: p.EntityID, Points: p.Vertices(), Closed: p.Closed}
}

// EdgeCount returns n for a closed polyline and n-1 for an open one.
// Polylines with fewer than two vertices have no edges.
func (p *Polyline) EdgeCount() int {
	n := len(p.Points)
	switch {
	case n < 2:
		return 0
	case p.Closed:
		return n
	default:
		return n - 1
	}
}

// Edge returns the vertex indices bounding edge i.
func (p *Polyline) Edge(i int) [2]int {
	return [2]int{i, (i + 1) % len(p.Points)}
}

func (p *Polyline) SetVertices(v []Vec2) (Entity, error) {
	if err := checkVertexCount(p, len(v)); err != nil {
		return nil, err
	}
	return &Polyline{EntityID: p.EntityID, Points: append([]Vec2(nil), v...), Closed: p.Closed}, nil
}

func (p *Polyline) Translate(d Vec2) Entity {
	pts := make([]Vec2, len(p.Points))
	for i, v := range p.Points {
		pts[i] = v.Add(d)
	}
	return &Polyline{EntityID: p.EntityID, Points: pts, Closed: p.Closed}
}

// --- Arc ---

// Arc is a circular arc swept counter-clockwise from StartAngle to EndAngle.
// Angles are in degrees; 0° points along +X.
type Arc struct {
	EntityID   string
	Center     Vec2
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// NewArc creates an arc with a generated ID.
func NewArc(center Vec2, radius, startDeg, endDeg float64) *Arc {
	return &Arc{EntityID: NewEntityID(), Center: center, Radius: radius, StartAngle: startDeg, EndAngle: endDeg}
}

func (a *Arc) ID() string       { return a.EntityID }
func (a *Arc) Kind() EntityKind { return KindArc }
func (a *Arc) Vertices() []Vec2 { return []Vec2{a.Center} }
func (a *Arc) Clone() Entity    { c := *a; return &c }
func (*Arc) sealed()            {}

func (a *Arc) SetVertices(v []Vec2) (Entity, error) {
	if err := checkVertexCount(a, len(v)); err != nil {
		return nil, err
	}
	c := *a
	c.Center = v[0]
	return &c, nil
}

func (a *Arc) Translate(d Vec2) Entity {
	c := *a
	c.Center = a.Center.Add(d)
	return &c
}

// PointAt returns the point on the arc's circle at deg degrees.
func (a *Arc) PointAt(deg float64) Vec2 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{a.Center.X + a.Radius*cos, a.Center.Y + a.Radius*sin}
}

// StartPoint returns the point at StartAngle.
func (a *Arc) StartPoint() Vec2 { return a.PointAt(a.StartAngle) }

// EndPoint returns the point at EndAngle.
func (a *Arc) EndPoint() Vec2 { return a.PointAt(a.EndAngle) }

// Sweep returns the counter-clockwise angular extent in (0, 360].
// Equal start and end angles describe a full circle.
func (a *Arc) Sweep() float64 {
	s := normalizeDegrees(a.EndAngle - a.StartAngle)
	if s == 0 {
		return 360
	}
	return s
}

// MidAngle returns the angular bisector of the arc, normalized to [0, 360).
func (a *Arc) MidAngle() float64 {
	return normalizeDegrees(a.StartAngle + a.Sweep()/2)
}

// Bounds includes the endpoints plus every axis extreme crossed by the sweep.
func (a *Arc) Bounds() Rect {
	pts := []Vec2{a.StartPoint(), a.EndPoint()}
	sweep := a.Sweep()
	for q := 0.0; q < 360; q += 90 {
		if normalizeDegrees(q-a.StartAngle) <= sweep {
			pts = append(pts, a.PointAt(q))
		}
	}
	return boundsOf(pts)
}

// normalizeDegrees maps deg into [0, 360).
func normalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// angleOf returns the direction from center to p in degrees, in [0, 360).
func angleOf(center, p Vec2) float64 {
	return normalizeDegrees(math.Atan2(p.Y-center.Y, p.X-center.X) * 180 / math.Pi)
}

// --- Text ---

// Text is a text anchor. Only its insertion point is geometry.
type Text struct {
	EntityID string
	Position Vec2
	Content  string
}

// NewText creates a text anchor with a generated ID.
func NewText(pos Vec2, content string) *Text {
	return &Text{EntityID: NewEntityID(), Position: pos, Content: content}
}

func (t *Text) ID() string       { return t.EntityID }
func (t *Text) Kind() EntityKind { return KindText }
func (t *Text) Vertices() []Vec2 { return []Vec2{t.Position} }
func (t *Text) Clone() Entity    { c := *t; return &c }
func (t *Text) Bounds() Rect     { return Rect{X: t.Position.X, Y: t.Position.Y} }
func (*Text) sealed()            {}

func (t *Text) SetVertices(v []Vec2) (Entity, error) {
	if err := checkVertexCount(t, len(v)); err != nil {
		return nil, err
	}
	c := *t
	c.Position = v[0]
	return &c, nil
}

func (t *Text) Translate(d Vec2) Entity {
	c := *t
	c.Position = t.Position.Add(d)
	return &c
}

// --- AngleMeasurement ---

// AngleMeasurement measures the angle at Vertex between the rays to Point1
// and Point2.
type AngleMeasurement struct {
	EntityID string
	Vertex   Vec2
	Point1   Vec2
	Point2   Vec2
}

// NewAngleMeasurement creates an angle measurement with a generated ID.
func NewAngleMeasurement(vertex, p1, p2 Vec2) *AngleMeasurement {
	return &AngleMeasurement{EntityID: NewEntityID(), Vertex: vertex, Point1: p1, Point2: p2}
}

func (m *AngleMeasurement) ID() string       { return m.EntityID }
func (m *AngleMeasurement) Kind() EntityKind { return KindAngleMeasurement }
func (m *AngleMeasurement) Vertices() []Vec2 { return []Vec2{m.Vertex, m.Point1, m.Point2} }
func (m *AngleMeasurement) Clone() Entity    { c := *m; return &c }
func (m *AngleMeasurement) Bounds() Rect     { return boundsOf(m.Vertices()) }
func (*AngleMeasurement) sealed()            {}

// Degrees returns the measured angle in [0, 180].
func (m *AngleMeasurement) Degrees() float64 {
	a := m.Point1.Sub(m.Vertex)
	b := m.Point2.Sub(m.Vertex)
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return math.Abs(math.Atan2(a.X*b.Y-a.Y*b.X, a.X*b.X+a.Y*b.Y)) * 180 / math.Pi
}

func (m *AngleMeasurement) SetVertices(v []Vec2) (Entity, error) {
	if err := checkVertexCount(m, len(v)); err != nil {
		return nil, err
	}
	return &AngleMeasurement{EntityID: m.EntityID, Vertex: v[0], Point1: v[1], Point2: v[2]}, nil
}

func (m *AngleMeasurement) Translate(d Vec2) Entity {
	return &AngleMeasurement{
		EntityID: m.EntityID,
		Vertex:   m.Vertex.Add(d),
		Point1:   m.Point1.Add(d),
		Point2:   m.Point2.Add(d),
	}
}

// --- Geometry signature ---

type signatureEntry struct {
	id       string
	kind     EntityKind
	vertices int
	grips    int
}

// GeometrySignature captures the shape of a selection: which entities, of
// which kind, with how many vertices and grips. Grip indices computed for one signature
// are meaningless under another.
type GeometrySignature []signatureEntry

// SignatureOf computes the signature of entities in order.
func SignatureOf(entities []Entity) GeometrySignature {
	sig := make(GeometrySignature, len(entities))
	for i, e := range entities {
		sig[i] = signatureEntry{
			id:       e.ID(),
			kind:     e.Kind(),
			vertices: len(e.Vertices()),
			grips:    len(ComputeGrips(e)),
		}
	}
	return sig
}

// Equal reports whether two signatures describe the same shape.
func (s GeometrySignature) Equal(o GeometrySignature) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}
