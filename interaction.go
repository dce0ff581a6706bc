package gripedit

import (
	"github.com/tanema/gween"
)

// InteractionState is the mutable interaction state of one selection set.
// Active is non-nil if and only if Phase is PhaseDragging.
type InteractionState struct {
	Phase   Phase
	Hovered *GripRef
	Active  *GripRef
	// Anchor is the world position recorded at pointer-down, or the grip
	// position for radial grips.
	Anchor Vec2
	// Current is the latest world position seen while dragging.
	Current Vec2
}

// VisualState is what the renderer needs to color grips: identifiers only.
type VisualState struct {
	Phase   Phase
	Hovered *GripRef
	Active  *GripRef
	// WarmLevel fades from 0 to 1 after the hovered grip turns warm.
	WarmLevel float64
}

// DragPreview describes an in-progress drag so the renderer can draw the
// entity following the cursor. Nothing is written to the scene until release.
type DragPreview struct {
	GripDelta
	Anchor  Vec2
	Current Vec2
}

// StateMachine runs the grip interaction:
//
//	idle --(proximity)--> hovering --(timer)--> warm
//	idle/hovering/warm --(pointer down on grip)--> dragging
//	dragging --(pointer up, Δ≠0)--> commit --> idle
//	dragging --(pointer up, Δ=0)--> idle
//	dragging --(escape | right-click)--> idle
//	hovering/warm --(pointer leaves)--> idle
//
// All methods must be called from one goroutine, the same one that drives
// the Scheduler.
type StateMachine struct {
	cfg   Config
	sched Scheduler
	view  ViewTransform
	grips []Grip

	state      InteractionState
	activeGrip Grip

	warmTimer Timer
	warmTween *gween.Tween
	warmLevel float64
	// hoverGen is bumped on every hover exit so a timer callback that slipped
	// past Stop can tell it is stale.
	hoverGen uint64

	commit   func(GripDelta)
	sink     EventSink
	handlers handlerRegistry
}

// NewStateMachine creates an idle state machine. commit receives every
// completed non-zero drag; it may be nil.
func NewStateMachine(cfg Config, sched Scheduler, commit func(GripDelta)) *StateMachine {
	return &StateMachine{
		cfg:    cfg,
		sched:  sched,
		view:   IdentityView,
		commit: commit,
	}
}

// SetView sets the view used to derive the world-space hit tolerance. The
// caller guarantees t is valid.
func (m *StateMachine) SetView(t ViewTransform) {
	m.view = t
}

// SetGrips replaces the grips hit-tested by pointer events. It does not
// change the phase; callers reset when the selection's shape changed.
func (m *StateMachine) SetGrips(grips []Grip) {
	m.grips = grips
}

// Grips returns the current grips. The returned slice MUST NOT be mutated.
func (m *StateMachine) Grips() []Grip {
	return m.grips
}

// SetEventSink sets the optional event sink.
func (m *StateMachine) SetEventSink(sink EventSink) {
	m.sink = sink
}

// OnEvent registers a callback for every interaction event.
func (m *StateMachine) OnEvent(fn func(GripEvent)) CallbackHandle {
	return m.handlers.add(fn)
}

// State returns a copy of the interaction state.
func (m *StateMachine) State() InteractionState {
	s := m.state
	s.Hovered = copyRef(s.Hovered)
	s.Active = copyRef(s.Active)
	return s
}

// Phase returns the current phase.
func (m *StateMachine) Phase() Phase {
	return m.state.Phase
}

// VisualState returns the hover/active identifiers for rendering.
func (m *StateMachine) VisualState() VisualState {
	return VisualState{
		Phase:     m.state.Phase,
		Hovered:   copyRef(m.state.Hovered),
		Active:    copyRef(m.state.Active),
		WarmLevel: m.warmLevel,
	}
}

// DragPreview returns the live drag, or nil when not dragging.
func (m *StateMachine) DragPreview() *DragPreview {
	if m.state.Phase != PhaseDragging {
		return nil
	}
	return &DragPreview{
		GripDelta: m.activeGrip.Delta(m.state.Current.Sub(m.state.Anchor)),
		Anchor:    m.state.Anchor,
		Current:   m.state.Current,
	}
}

// ActiveGrip returns the grip being dragged.
func (m *StateMachine) ActiveGrip() (Grip, bool) {
	return m.activeGrip, m.state.Phase == PhaseDragging
}

// Update advances the warm highlight fade by dt seconds.
func (m *StateMachine) Update(dt float64) {
	if m.warmTween == nil {
		return
	}
	v, done := m.warmTween.Update(float32(dt))
	m.warmLevel = float64(v)
	if done {
		m.warmTween = nil
	}
}

// PointerMove handles pointer movement. It reports whether the event was
// consumed: always while dragging, and while over a grip otherwise.
func (m *StateMachine) PointerMove(world, screen Vec2) bool {
	if m.state.Phase == PhaseDragging {
		m.state.Current = world
		m.emit(EventDrag, m.activeGrip.Ref(), world, world.Sub(m.state.Anchor))
		return true
	}

	idx, ok := m.hit(world)
	if !ok {
		if m.state.Phase != PhaseIdle {
			Logger().Debug("grip leave", "screen", screen)
			m.leaveHover(world)
		}
		return false
	}

	ref := m.grips[idx].Ref()
	if m.state.Hovered != nil && *m.state.Hovered == ref {
		return true
	}
	if m.state.Hovered != nil {
		m.leaveHover(world)
	}
	m.enterHover(ref, world)
	return true
}

// PointerDown starts a drag when world is within tolerance of a grip.
// Hovering first is not required.
func (m *StateMachine) PointerDown(world Vec2) bool {
	if m.state.Phase == PhaseDragging {
		return true
	}
	idx, ok := m.hit(world)
	if !ok {
		return false
	}

	m.stopWarm()
	g := m.grips[idx]
	ref := g.Ref()
	m.activeGrip = g
	m.state.Hovered = &ref
	active := ref
	m.state.Active = &active
	m.state.Anchor = world
	if g.Radial {
		m.state.Anchor = g.Position
	}
	m.state.Current = world
	m.setPhase(PhaseDragging)
	m.emit(EventDragStart, ref, world, Vec2{})
	return true
}

// PointerUp ends a drag. A non-zero displacement is handed to the commit
// function; a zero one is dropped. Either way the machine returns to idle.
func (m *StateMachine) PointerUp(world Vec2) bool {
	if m.state.Phase != PhaseDragging {
		return false
	}
	delta := world.Sub(m.state.Anchor)
	g := m.activeGrip
	m.Reset()

	if delta.IsZero() {
		Logger().Debug("grip drag released without movement", "entity", g.EntityID, "grip", g.Index)
		return true
	}
	m.emit(EventCommit, g.Ref(), world, delta)
	if m.commit != nil {
		m.commit(g.Delta(delta))
	}
	return true
}

// Escape cancels an in-progress drag. Nothing is committed.
func (m *StateMachine) Escape() bool {
	return m.cancel()
}

// RightClick cancels an in-progress drag, like Escape.
func (m *StateMachine) RightClick() bool {
	return m.cancel()
}

// Reset returns to idle, clearing hover, drag and any pending warm timer.
func (m *StateMachine) Reset() {
	m.stopWarm()
	m.setPhase(PhaseIdle)
	m.state = InteractionState{}
	m.activeGrip = Grip{}
}

func (m *StateMachine) cancel() bool {
	if m.state.Phase != PhaseDragging {
		return false
	}
	g := m.activeGrip
	current := m.state.Current
	m.Reset()
	m.emit(EventCancel, g.Ref(), current, Vec2{})
	return true
}

func (m *StateMachine) hit(world Vec2) (int, bool) {
	return HitTest(m.grips, world, HitTolerance(m.cfg.HitTolerancePixels, m.view))
}

func (m *StateMachine) enterHover(ref GripRef, world Vec2) {
	m.state.Hovered = &ref
	m.setPhase(PhaseHovering)
	m.emit(EventGripEnter, ref, world, Vec2{})

	gen := m.hoverGen
	m.warmTimer = m.sched.AfterFunc(m.cfg.WarmDelay, func() {
		if gen != m.hoverGen || m.state.Phase != PhaseHovering {
			return
		}
		m.warmTimer = nil
		m.setPhase(PhaseWarm)
		m.warmLevel = 0
		m.warmTween = gween.New(0, 1, float32(m.cfg.WarmFade.Seconds()), m.cfg.WarmEase)
		m.emit(EventGripWarm, *m.state.Hovered, world, Vec2{})
	})
}

func (m *StateMachine) leaveHover(world Vec2) {
	prev := m.state.Hovered
	m.stopWarm()
	m.state.Hovered = nil
	m.setPhase(PhaseIdle)
	if prev != nil {
		m.emit(EventGripLeave, *prev, world, Vec2{})
	}
}

func (m *StateMachine) stopWarm() {
	m.hoverGen++
	if m.warmTimer != nil {
		m.warmTimer.Stop()
		m.warmTimer = nil
	}
	m.warmTween = nil
	m.warmLevel = 0
}

func (m *StateMachine) setPhase(p Phase) {
	if m.state.Phase == p {
		return
	}
	Logger().Debug("grip phase", "from", m.state.Phase.String(), "to", p.String())
	m.state.Phase = p
}

func (m *StateMachine) emit(t GripEventType, ref GripRef, world, delta Vec2) {
	e := GripEvent{
		Type:      t,
		EntityID:  ref.EntityID,
		GripIndex: ref.Index,
		World:     world,
		Delta:     delta,
	}
	m.handlers.fire(e)
	if m.sink != nil {
		m.sink.EmitEvent(e)
	}
}

func copyRef(r *GripRef) *GripRef {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
