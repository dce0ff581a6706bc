package gripedit

import "fmt"

// Grip is a draggable control point on an entity.
//
// Index is stable for a given entity shape within one computation and is
// not guaranteed to survive an edit that changes the vertex count.
type Grip struct {
	EntityID string
	Index    int
	Type     GripType
	Position Vec2
	// MovesEntity means dragging translates the whole entity rigidly.
	MovesEntity bool
	// EdgeVertexIndices is set for edge grips: both vertices move together.
	EdgeVertexIndices *[2]int
	// Radial grips set a radius from the release point. Their drag anchor
	// is the grip itself, not the press point.
	Radial bool
}

// Ref returns the identifier the renderer uses to find this grip.
func (g Grip) Ref() GripRef {
	return GripRef{EntityID: g.EntityID, Index: g.Index}
}

// Delta builds the GripDelta for dragging g by d.
func (g Grip) Delta(d Vec2) GripDelta {
	return GripDelta{
		EntityID:          g.EntityID,
		GripIndex:         g.Index,
		Delta:             d,
		MovesEntity:       g.MovesEntity,
		EdgeVertexIndices: g.EdgeVertexIndices,
	}
}

// GripRef identifies a grip without its geometry.
type GripRef struct {
	EntityID string
	Index    int
}

// GripDelta is the result of a completed drag: a world-space displacement
// from the drag anchor to the release point.
type GripDelta struct {
	EntityID          string
	GripIndex         int
	Delta             Vec2
	MovesEntity       bool
	EdgeVertexIndices *[2]int
}

func edge(i, j int) *[2]int { return &[2]int{i, j} }

// ComputeGrips returns the grips of e in a deterministic order.
//
//	line:              start, end, midpoint (edge [0,1])
//	circle:            center (moves), quadrants at 0°, 90°, 180°, 270°
//	polyline:          one vertex grip per vertex, then one edge grip per edge
//	arc:               center (moves), start, end, mid-angle (moves)
//	text:              position (moves)
//	angle-measurement: vertex, point1, point2
func ComputeGrips(e Entity) []Grip {
	id := e.ID()
	switch v := e.(type) {
	case *Line:
		return []Grip{
			{EntityID: id, Index: 0, Type: GripVertex, Position: v.Start},
			{EntityID: id, Index: 1, Type: GripVertex, Position: v.End},
			{EntityID: id, Index: 2, Type: GripEdge, Position: v.Midpoint(), EdgeVertexIndices: edge(0, 1)},
		}

	case *Circle:
		c, r := v.Center, v.Radius
		return []Grip{
			{EntityID: id, Index: 0, Type: GripCenter, Position: c, MovesEntity: true},
			{EntityID: id, Index: 1, Type: GripVertex, Position: Vec2{c.X + r, c.Y}, Radial: true},
			{EntityID: id, Index: 2, Type: GripVertex, Position: Vec2{c.X, c.Y + r}, Radial: true},
			{EntityID: id, Index: 3, Type: GripVertex, Position: Vec2{c.X - r, c.Y}, Radial: true},
			{EntityID: id, Index: 4, Type: GripVertex, Position: Vec2{c.X, c.Y - r}, Radial: true},
		}

	case *Polyline:
		n := len(v.Points)
		grips := make([]Grip, 0, n+v.EdgeCount())
		for i, p := range v.Points {
			grips = append(grips, Grip{EntityID: id, Index: i, Type: GripVertex, Position: p})
		}
		for i := 0; i < v.EdgeCount(); i++ {
			ij := v.Edge(i)
			grips = append(grips, Grip{
				EntityID:          id,
				Index:             n + i,
				Type:              GripEdge,
				Position:          v.Points[ij[0]].Lerp(v.Points[ij[1]], 0.5),
				EdgeVertexIndices: edge(ij[0], ij[1]),
			})
		}
		return grips

	case *Arc:
		return []Grip{
			{EntityID: id, Index: 0, Type: GripCenter, Position: v.Center, MovesEntity: true},
			{EntityID: id, Index: 1, Type: GripVertex, Position: v.StartPoint(), Radial: true},
			{EntityID: id, Index: 2, Type: GripVertex, Position: v.EndPoint(), Radial: true},
			{EntityID: id, Index: 3, Type: GripVertex, Position: v.PointAt(v.MidAngle()), MovesEntity: true},
		}

	case *Text:
		return []Grip{
			{EntityID: id, Index: 0, Type: GripCenter, Position: v.Position, MovesEntity: true},
		}

	case *AngleMeasurement:
		return []Grip{
			{EntityID: id, Index: 0, Type: GripVertex, Position: v.Vertex},
			{EntityID: id, Index: 1, Type: GripVertex, Position: v.Point1},
			{EntityID: id, Index: 2, Type: GripVertex, Position: v.Point2},
		}
	}
	return nil
}

// ComputeSelectionGrips concatenates the grips of every entity in selection
// order. This order is the hit-test tie-break order.
func ComputeSelectionGrips(entities []Entity) []Grip {
	var grips []Grip
	for _, e := range entities {
		grips = append(grips, ComputeGrips(e)...)
	}
	return grips
}

// ApplyDelta returns the entity that committing d against e would produce.
// e is not modified. A zero delta returns a clone.
//
// Edge deltas move both edge vertices, moving deltas translate everything,
// and anything else stretches the single coordinate behind the grip. For
// circles and arcs a stretch recomputes radius (and the dragged angle) from
// the new cursor position.
func ApplyDelta(e Entity, d GripDelta) (Entity, error) {
	if e.ID() != d.EntityID {
		return nil, fmt.Errorf("%w: delta for %s applied to %s", ErrEntityNotFound, d.EntityID, e.ID())
	}
	if d.Delta.IsZero() {
		return e.Clone(), nil
	}
	if !d.Delta.finite() {
		return nil, fmt.Errorf("%w: non-finite delta %v", ErrDegenerateGeometry, d.Delta)
	}

	switch {
	case d.EdgeVertexIndices != nil:
		verts := e.Vertices()
		i, j := d.EdgeVertexIndices[0], d.EdgeVertexIndices[1]
		if !inRange(i, len(verts)) || !inRange(j, len(verts)) {
			return nil, fmt.Errorf("%w: edge [%d,%d] on %s with %d vertices",
				ErrVertexOutOfRange, i, j, e.ID(), len(verts))
		}
		verts[i] = verts[i].Add(d.Delta)
		if j != i {
			verts[j] = verts[j].Add(d.Delta)
		}
		return e.SetVertices(verts)

	case d.MovesEntity:
		return e.Translate(d.Delta), nil
	}

	switch v := e.(type) {
	case *Circle:
		if d.GripIndex < 1 || d.GripIndex > 4 {
			return nil, fmt.Errorf("%w: circle grip %d", ErrVertexOutOfRange, d.GripIndex)
		}
		cursor := ComputeGrips(v)[d.GripIndex].Position.Add(d.Delta)
		r := v.Center.Dist(cursor)
		if r == 0 {
			return nil, fmt.Errorf("%w: circle %s radius would be 0", ErrDegenerateGeometry, v.EntityID)
		}
		c := *v
		c.Radius = r
		return &c, nil

	case *Arc:
		var from Vec2
		switch d.GripIndex {
		case 1:
			from = v.StartPoint()
		case 2:
			from = v.EndPoint()
		default:
			return nil, fmt.Errorf("%w: arc stretch grip %d", ErrVertexOutOfRange, d.GripIndex)
		}
		cursor := from.Add(d.Delta)
		r := v.Center.Dist(cursor)
		if r == 0 {
			return nil, fmt.Errorf("%w: arc %s radius would be 0", ErrDegenerateGeometry, v.EntityID)
		}
		a := *v
		a.Radius = r
		if d.GripIndex == 1 {
			a.StartAngle = angleOf(v.Center, cursor)
		} else {
			a.EndAngle = angleOf(v.Center, cursor)
		}
		return &a, nil
	}

	verts := e.Vertices()
	if !inRange(d.GripIndex, len(verts)) {
		return nil, fmt.Errorf("%w: grip %d on %s with %d vertices",
			ErrVertexOutOfRange, d.GripIndex, e.ID(), len(verts))
	}
	verts[d.GripIndex] = verts[d.GripIndex].Add(d.Delta)
	return e.SetVertices(verts)
}

func inRange(i, n int) bool { return i >= 0 && i < n }
