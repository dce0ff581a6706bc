package ebitengrip

import (
	"image/color"
	"math"

	"github.com/phanxgames/gripedit"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Style controls overlay colors and sizes. Sizes are in screen pixels.
type Style struct {
	Stroke      color.RGBA
	Preview     color.RGBA
	GripCold    color.RGBA
	GripWarm    color.RGBA
	GripHot     color.RGBA
	StrokeWidth float32
	GripSize    float32
}

// DefaultStyle returns the standard overlay style.
func DefaultStyle() Style {
	return Style{
		Stroke:      color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff},
		Preview:     color.RGBA{R: 0x4a, G: 0xa8, B: 0xff, A: 0xff},
		GripCold:    color.RGBA{R: 0x30, G: 0x60, B: 0xff, A: 0xff},
		GripWarm:    color.RGBA{R: 0xff, G: 0x60, B: 0x90, A: 0xff},
		GripHot:     color.RGBA{R: 0xff, G: 0x20, B: 0x20, A: 0xff},
		StrokeWidth: 1.5,
		GripSize:    8,
	}
}

// arcSegments is the number of line segments used per full turn.
const arcSegments = 64

// DrawOverlay draws the selected entities, the live drag preview and the
// grips of c onto dst.
func DrawOverlay(dst *ebiten.Image, c *gripedit.Controller, st Style) {
	view := c.View()
	preview, dragging := c.PreviewEntity()

	for _, e := range c.Entities() {
		if dragging && e.ID() == preview.ID() {
			continue
		}
		drawEntity(dst, e, view, st.Stroke, st.StrokeWidth)
	}
	if dragging {
		drawEntity(dst, preview, view, st.Preview, st.StrokeWidth)
	}

	vs := c.VisualState()
	half := st.GripSize / 2
	for _, g := range c.Grips() {
		if dragging && g.EntityID == preview.ID() {
			continue
		}
		clr := GripColor(g.Ref(), vs, st)
		p := gripedit.WorldToScreen(g.Position, view)
		x, y := float32(p.X)-half, float32(p.Y)-half
		vector.DrawFilledRect(dst, x, y, st.GripSize, st.GripSize, clr, false)
		vector.StrokeRect(dst, x, y, st.GripSize, st.GripSize, 1, color.Black, false)
	}
	if dragging {
		for _, g := range gripedit.ComputeGrips(preview) {
			clr := st.GripCold
			if vs.Active != nil && g.Index == vs.Active.Index {
				clr = st.GripHot
			}
			p := gripedit.WorldToScreen(g.Position, view)
			vector.DrawFilledRect(dst, float32(p.X)-half, float32(p.Y)-half, st.GripSize, st.GripSize, clr, false)
		}
	}
}

// GripColor returns the fill color of the grip ref: hot while dragged,
// cold blended toward warm by the warm level while hovered, cold otherwise.
func GripColor(ref gripedit.GripRef, vs gripedit.VisualState, st Style) color.RGBA {
	switch {
	case vs.Active != nil && *vs.Active == ref:
		return st.GripHot
	case vs.Hovered != nil && *vs.Hovered == ref && vs.Phase == gripedit.PhaseWarm:
		return lerpColor(st.GripCold, st.GripWarm, vs.WarmLevel)
	}
	return st.GripCold
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func drawEntity(dst *ebiten.Image, e gripedit.Entity, view gripedit.ViewTransform, clr color.Color, w float32) {
	line := func(a, b gripedit.Vec2) {
		p := gripedit.WorldToScreen(a, view)
		q := gripedit.WorldToScreen(b, view)
		vector.StrokeLine(dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), w, clr, true)
	}

	switch v := e.(type) {
	case *gripedit.Line:
		line(v.Start, v.End)
	case *gripedit.Polyline:
		for i := 0; i < v.EdgeCount(); i++ {
			ij := v.Edge(i)
			line(v.Points[ij[0]], v.Points[ij[1]])
		}
	case *gripedit.Circle:
		c := gripedit.WorldToScreen(v.Center, view)
		vector.StrokeCircle(dst, float32(c.X), float32(c.Y), float32(v.Radius*view.Scale), w, clr, true)
	case *gripedit.Arc:
		sweep := v.Sweep()
		n := int(math.Ceil(sweep / 360 * arcSegments))
		if n < 1 {
			n = 1
		}
		prev := v.StartPoint()
		for i := 1; i <= n; i++ {
			next := v.PointAt(v.StartAngle + sweep*float64(i)/float64(n))
			line(prev, next)
			prev = next
		}
	case *gripedit.AngleMeasurement:
		line(v.Vertex, v.Point1)
		line(v.Vertex, v.Point2)
	case *gripedit.Text:
		// Text rendering belongs to the host; mark the anchor only.
		p := gripedit.WorldToScreen(v.Position, view)
		vector.StrokeLine(dst, float32(p.X)-4, float32(p.Y), float32(p.X)+4, float32(p.Y), w, clr, true)
		vector.StrokeLine(dst, float32(p.X), float32(p.Y)-4, float32(p.X), float32(p.Y)+4, w, clr, true)
	}
}
