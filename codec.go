package gripedit

import (
	"encoding/json"
	"fmt"
)

// entityJSON is the wire form of every entity kind. Only the fields of the
// named kind are populated.
type entityJSON struct {
	Kind       string  `json:"kind"`
	ID         string  `json:"id"`
	Start      *Vec2   `json:"start,omitempty"`
	End        *Vec2   `json:"end,omitempty"`
	Center     *Vec2   `json:"center,omitempty"`
	Radius     float64 `json:"radius,omitempty"`
	Vertices   []Vec2  `json:"vertices,omitempty"`
	Closed     bool    `json:"closed,omitempty"`
	StartAngle float64 `json:"startAngle,omitempty"`
	EndAngle   float64 `json:"endAngle,omitempty"`
	Position   *Vec2   `json:"position,omitempty"`
	Content    string  `json:"content,omitempty"`
	Vertex     *Vec2   `json:"vertex,omitempty"`
	Point1     *Vec2   `json:"point1,omitempty"`
	Point2     *Vec2   `json:"point2,omitempty"`
}

func vp(v Vec2) *Vec2 { return &v }

// MarshalEntity encodes e as JSON.
func MarshalEntity(e Entity) ([]byte, error) {
	w := entityJSON{Kind: e.Kind().String(), ID: e.ID()}
	switch v := e.(type) {
	case *Line:
		w.Start, w.End = vp(v.Start), vp(v.End)
	case *Circle:
		w.Center, w.Radius = vp(v.Center), v.Radius
	case *Polyline:
		w.Vertices, w.Closed = v.Vertices(), v.Closed
	case *Arc:
		w.Center, w.Radius = vp(v.Center), v.Radius
		w.StartAngle, w.EndAngle = v.StartAngle, v.EndAngle
	case *Text:
		w.Position, w.Content = vp(v.Position), v.Content
	case *AngleMeasurement:
		w.Vertex, w.Point1, w.Point2 = vp(v.Vertex), vp(v.Point1), vp(v.Point2)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, e)
	}
	return json.Marshal(w)
}

// UnmarshalEntity decodes an entity produced by MarshalEntity.
func UnmarshalEntity(data []byte) (Entity, error) {
	var w entityJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	return w.entity()
}

// UnmarshalEntities decodes a JSON array of entities.
func UnmarshalEntities(data []byte) ([]Entity, error) {
	var ws []entityJSON
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode entities: %w", err)
	}
	out := make([]Entity, 0, len(ws))
	for i := range ws {
		e, err := ws[i].entity()
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (w *entityJSON) entity() (Entity, error) {
	kind, ok := parseKind(w.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, w.Kind)
	}
	if w.ID == "" {
		return nil, fmt.Errorf("decode %s: missing id", w.Kind)
	}
	req := func(name string, p *Vec2) (Vec2, error) {
		if p == nil {
			return Vec2{}, fmt.Errorf("decode %s %s: missing %s", w.Kind, w.ID, name)
		}
		return *p, nil
	}

	switch kind {
	case KindLine:
		s, err := req("start", w.Start)
		if err != nil {
			return nil, err
		}
		e, err := req("end", w.End)
		if err != nil {
			return nil, err
		}
		return &Line{EntityID: w.ID, Start: s, End: e}, nil
	case KindCircle:
		c, err := req("center", w.Center)
		if err != nil {
			return nil, err
		}
		return &Circle{EntityID: w.ID, Center: c, Radius: w.Radius}, nil
	case KindPolyline:
		return &Polyline{EntityID: w.ID, Points: append([]Vec2(nil), w.Vertices...), Closed: w.Closed}, nil
	case KindArc:
		c, err := req("center", w.Center)
		if err != nil {
			return nil, err
		}
		return &Arc{EntityID: w.ID, Center: c, Radius: w.Radius, StartAngle: w.StartAngle, EndAngle: w.EndAngle}, nil
	case KindText:
		p, err := req("position", w.Position)
		if err != nil {
			return nil, err
		}
		return &Text{EntityID: w.ID, Position: p, Content: w.Content}, nil
	case KindAngleMeasurement:
		v, err := req("vertex", w.Vertex)
		if err != nil {
			return nil, err
		}
		p1, err := req("point1", w.Point1)
		if err != nil {
			return nil, err
		}
		p2, err := req("point2", w.Point2)
		if err != nil {
			return nil, err
		}
		return &AngleMeasurement{EntityID: w.ID, Vertex: v, Point1: p1, Point2: p2}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, w.Kind)
}
