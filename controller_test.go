package gripedit

import (
	"errors"
	"testing"
	"time"
)

func newTestController(t *testing.T, entities ...Entity) (*Controller, *MemoryStore, *History) {
	t.Helper()
	store := NewMemoryStore(entities...)
	history := NewHistory(10)
	c, err := NewController(store, history, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]string, len(entities))
	for i, e := range entities {
		ids[i] = e.ID()
	}
	c.SetSelection(ids...)
	return c, store, history
}

func TestNewControllerRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HitTolerancePixels = 0
	if _, err := NewController(NewMemoryStore(), NewHistory(1), cfg); err == nil {
		t.Error("expected config error")
	}
}

func TestControllerLineMidpointDrag(t *testing.T) {
	c, store, history := newTestController(t, &Line{EntityID: "l", Start: Vec2{0, 0}, End: Vec2{10, 0}})

	if !c.PointerDown(Vec2{5, 0}) {
		t.Fatal("press on midpoint not consumed")
	}
	c.PointerMove(Vec2{5, 3}, Vec2{5, 3})
	c.PointerUp(Vec2{5, 3})

	got := get[*Line](t, store, "l")
	assertVec(t, "start", got.Start, Vec2{0, 3})
	assertVec(t, "end", got.End, Vec2{10, 3})
	if history.Len() != 1 {
		t.Errorf("history len = %d, want 1", history.Len())
	}
	// Grips follow the committed geometry.
	assertVec(t, "midpoint grip", c.Grips()[2].Position, Vec2{5, 3})
}

func TestControllerCircleRadiusDrag(t *testing.T) {
	c, store, _ := newTestController(t, &Circle{EntityID: "c", Center: Vec2{0, 0}, Radius: 10})
	c.PointerDown(Vec2{10, 0})
	c.PointerMove(Vec2{20, 0}, Vec2{20, 0})
	c.PointerUp(Vec2{20, 0})

	got := get[*Circle](t, store, "c")
	assertNear(t, "radius", got.Radius, 20)
	assertVec(t, "center", got.Center, Vec2{0, 0})
}

func TestControllerRadiusFollowsReleaseCursor(t *testing.T) {
	c, store, _ := newTestController(t, &Circle{EntityID: "c", Center: Vec2{0, 0}, Radius: 10})
	// Press off the quadrant grip but within tolerance.
	if !c.PointerDown(Vec2{10.5, 0}) {
		t.Fatal("press near quadrant not consumed")
	}
	c.PointerMove(Vec2{20, 0}, Vec2{20, 0})
	if p, ok := c.PreviewEntity(); !ok || p.(*Circle).Radius != 20 {
		t.Errorf("preview = %v, %v; want radius 20", p, ok)
	}
	c.PointerUp(Vec2{20, 0})
	assertNear(t, "radius", get[*Circle](t, store, "c").Radius, 20)
}

func TestControllerArcEndpointFollowsReleaseCursor(t *testing.T) {
	arc := &Arc{EntityID: "a", Center: Vec2{0, 0}, Radius: 10, StartAngle: 0, EndAngle: 90}
	c, store, _ := newTestController(t, arc)
	c.PointerDown(Vec2{10, 0.5})
	c.PointerUp(Vec2{-15, 0})

	got := get[*Arc](t, store, "a")
	assertNear(t, "radius", got.Radius, 15)
	assertNear(t, "start angle", got.StartAngle, 180)
	assertNear(t, "end angle", got.EndAngle, 90)
}

func TestControllerNoOpDragLeavesHistory(t *testing.T) {
	c, store, history := newTestController(t, square())
	c.PointerDown(Vec2{10, 10})
	c.PointerUp(Vec2{10, 10})
	if history.Len() != 0 || store.Writes() != 0 {
		t.Errorf("history %d, writes %d", history.Len(), store.Writes())
	}
	if c.LastCommitError() != nil {
		t.Errorf("LastCommitError = %v", c.LastCommitError())
	}
}

func TestControllerCancelLeavesGeometry(t *testing.T) {
	sq := square()
	c, store, history := newTestController(t, sq)
	before, _ := MarshalEntity(sq)

	c.PointerDown(Vec2{10, 0})
	c.PointerMove(Vec2{30, 30}, Vec2{30, 30})
	if _, ok := c.PreviewEntity(); !ok {
		t.Fatal("no preview while dragging")
	}
	if !c.Escape() {
		t.Fatal("escape not consumed")
	}
	c.PointerUp(Vec2{30, 30})

	cur, _ := store.Entity("sq")
	after, _ := MarshalEntity(cur)
	if string(after) != string(before) {
		t.Errorf("geometry changed:\n got %s\nwant %s", after, before)
	}
	if c.Phase() != PhaseIdle || history.Len() != 0 || store.Writes() != 0 {
		t.Errorf("phase %v, history %d, writes %d", c.Phase(), history.Len(), store.Writes())
	}
}

func TestControllerPreviewDoesNotWrite(t *testing.T) {
	c, store, _ := newTestController(t, testLine())
	c.PointerDown(Vec2{100, 0})
	c.PointerMove(Vec2{100, 40}, Vec2{100, 40})

	p, ok := c.PreviewEntity()
	if !ok {
		t.Fatal("no preview")
	}
	assertVec(t, "preview end", p.(*Line).End, Vec2{100, 40})
	if store.Writes() != 0 {
		t.Error("preview wrote to the store")
	}
	if d := c.DragPreview(); d == nil || d.GripIndex != 1 || d.MovesEntity {
		t.Errorf("DragPreview = %+v", d)
	}
}

func TestControllerSingleActiveGrip(t *testing.T) {
	c, _, _ := newTestController(t, testLine(), &Circle{EntityID: "c", Center: Vec2{100, 0}, Radius: 5})
	steps := []func(){
		func() { c.PointerMove(Vec2{100, 0}, Vec2{100, 0}) },
		func() { c.PointerDown(Vec2{100, 0}) },
		func() { c.PointerMove(Vec2{105, 0}, Vec2{105, 0}) },
		func() { c.PointerDown(Vec2{0, 0}) },
		func() { c.PointerUp(Vec2{105, 0}) },
		func() { c.PointerDown(Vec2{0, 0}) },
		func() { c.RightClick() },
	}
	for i, step := range steps {
		step()
		vs := c.VisualState()
		if (vs.Active != nil) != (vs.Phase == PhaseDragging) {
			t.Errorf("step %d: active %v in phase %v", i, vs.Active, vs.Phase)
		}
	}
}

func TestControllerSignatureChangeResets(t *testing.T) {
	c, store, _ := newTestController(t, square())
	c.PointerDown(Vec2{10, 10})
	if c.Phase() != PhaseDragging {
		t.Fatal("not dragging")
	}

	// Another tool inserts a vertex while the drag is live.
	grown := &Polyline{EntityID: "sq", Points: []Vec2{{0, 0}, {5, -5}, {10, 0}, {10, 10}, {0, 10}}, Closed: true}
	if err := store.Update(grown); err != nil {
		t.Fatal(err)
	}
	c.Refresh()

	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle after shape change", c.Phase())
	}
	if len(c.Grips()) != 10 {
		t.Errorf("grips = %d, want 10", len(c.Grips()))
	}
}

func TestControllerRefreshKeepsDragOnSameShape(t *testing.T) {
	c, store, _ := newTestController(t, square())
	c.PointerDown(Vec2{10, 10})
	moved := square().Translate(Vec2{1, 1})
	store.Update(moved)
	c.Refresh()
	if c.Phase() != PhaseDragging {
		t.Errorf("phase = %v, want dragging", c.Phase())
	}
}

func TestControllerEntityDeletedMidDrag(t *testing.T) {
	c, store, history := newTestController(t, testLine())
	c.PointerDown(Vec2{100, 0})
	store.Remove("l")
	c.PointerUp(Vec2{90, 0})

	if !errors.Is(c.LastCommitError(), ErrEntityNotFound) {
		t.Errorf("LastCommitError = %v, want ErrEntityNotFound", c.LastCommitError())
	}
	if c.Phase() != PhaseIdle || history.Len() != 0 {
		t.Errorf("phase %v, history %d", c.Phase(), history.Len())
	}
	if len(c.Grips()) != 0 {
		t.Errorf("grips of deleted entity survive: %d", len(c.Grips()))
	}
}

func TestControllerShapeChangedMidDragWithoutRefresh(t *testing.T) {
	c, store, history := newTestController(t, square())
	if !c.PointerDown(Vec2{10, 5}) {
		t.Fatal("press on edge [1,2] not consumed")
	}
	c.PointerMove(Vec2{13, 5}, Vec2{13, 5})

	// Another tool drops vertex 0; nobody calls Refresh.
	shrunk := &Polyline{EntityID: "sq", Points: []Vec2{{10, 0}, {10, 10}, {0, 10}}, Closed: true}
	if err := store.Update(shrunk); err != nil {
		t.Fatal(err)
	}
	c.PointerUp(Vec2{13, 5})

	if !errors.Is(c.LastCommitError(), ErrSelectionChanged) {
		t.Errorf("LastCommitError = %v, want ErrSelectionChanged", c.LastCommitError())
	}
	got := get[*Polyline](t, store, "sq")
	want := []Vec2{{10, 0}, {10, 10}, {0, 10}}
	if len(got.Points) != len(want) {
		t.Fatalf("points = %v, want %v", got.Points, want)
	}
	for i := range want {
		assertVec(t, "point", got.Points[i], want[i])
	}
	if history.Len() != 0 {
		t.Errorf("history len = %d, want 0", history.Len())
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", c.Phase())
	}
	if n := len(c.Grips()); n != 6 {
		t.Errorf("grips = %d, want 6 after refresh", n)
	}
}

func TestControllerSetSelectionResets(t *testing.T) {
	c, _, _ := newTestController(t, testLine(), &Text{EntityID: "t", Position: Vec2{0, 50}})
	c.PointerMove(Vec2{100, 0}, Vec2{100, 0})
	c.SetSelection("t", "missing")
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v", c.Phase())
	}
	if len(c.Entities()) != 1 || len(c.Grips()) != 1 {
		t.Errorf("entities %d, grips %d", len(c.Entities()), len(c.Grips()))
	}
	if sel := c.Selection(); len(sel) != 2 {
		t.Errorf("Selection = %v", sel)
	}
}

func TestControllerScreenInput(t *testing.T) {
	c, store, _ := newTestController(t, testLine())
	if err := c.SetView(ViewTransform{Scale: 2, OffsetX: 50, OffsetY: 50}); err != nil {
		t.Fatal(err)
	}
	// World (100,0) is screen (250,50).
	if !c.HandleScreenMove(Vec2{252, 50}) {
		t.Fatal("screen move near grip not consumed")
	}
	c.HandleScreenDown(Vec2{250, 50})
	c.HandleScreenMove(Vec2{250, 70})
	c.HandleScreenUp(Vec2{250, 70})

	assertVec(t, "end", get[*Line](t, store, "l").End, Vec2{100, 10})
}

func TestControllerSetViewRejectsInvalid(t *testing.T) {
	c, _, _ := newTestController(t)
	if err := c.SetView(ViewTransform{Scale: 0}); !errors.Is(err, ErrInvalidTransform) {
		t.Errorf("err = %v", err)
	}
	if c.View() != IdentityView {
		t.Errorf("View = %+v, want identity", c.View())
	}
}

func TestControllerWarmViaUpdate(t *testing.T) {
	c, _, _ := newTestController(t, testLine())
	var warm int
	c.OnEvent(func(e GripEvent) {
		if e.Type == EventGripWarm {
			warm++
		}
	})
	c.PointerMove(Vec2{0, 0}, Vec2{0, 0})
	for i := 0; i < 59; i++ {
		c.Update(time.Second / 60)
	}
	if c.Phase() != PhaseHovering {
		t.Fatalf("phase = %v after 59 frames", c.Phase())
	}
	c.Update(time.Second / 30)
	if c.Phase() != PhaseWarm || warm != 1 {
		t.Errorf("phase %v, warm events %d", c.Phase(), warm)
	}
	c.Update(time.Second)
	if lvl := c.VisualState().WarmLevel; !approxEqual(lvl, 1, 1e-6) {
		t.Errorf("WarmLevel = %v", lvl)
	}
}

func TestControllerUndoThenRefresh(t *testing.T) {
	c, _, history := newTestController(t, testLine())
	c.PointerDown(Vec2{100, 0})
	c.PointerUp(Vec2{80, 0})
	assertVec(t, "grip after commit", c.Grips()[1].Position, Vec2{80, 0})

	history.Undo()
	c.Refresh()
	assertVec(t, "grip after undo", c.Grips()[1].Position, Vec2{100, 0})
}
