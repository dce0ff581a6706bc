package gripedit

import (
	"fmt"
	"time"
)

// Controller owns the grip interaction for one canvas: the current
// selection, the view, the state machine and the commit path. It replaces
// any app-wide interaction singleton; create one per canvas and call
// SetSelection whenever the selection changes.
type Controller struct {
	cfg     Config
	store   SceneStore
	adapter *CommitAdapter
	clock   *FrameClock
	sm      *StateMachine
	view    ViewTransform

	selection []string
	entities  []Entity
	signature GeometrySignature

	lastErr error
}

// NewController creates a controller reading entities from store and
// committing drags through history.
func NewController(store SceneStore, history CommandHistory, cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:     cfg,
		store:   store,
		adapter: NewCommitAdapter(store, history),
		clock:   NewFrameClock(),
		view:    IdentityView,
	}
	c.sm = NewStateMachine(cfg, c.clock, c.commit)
	return c, nil
}

// SetSelection replaces the selection set. IDs the store does not know are
// skipped. The interaction always returns to idle.
func (c *Controller) SetSelection(ids ...string) {
	c.selection = append(c.selection[:0:0], ids...)
	c.sm.Reset()
	c.reload()
}

// Selection returns the selected IDs.
func (c *Controller) Selection() []string {
	return append([]string(nil), c.selection...)
}

// Entities returns the resolved selected entities, as of the last refresh.
func (c *Controller) Entities() []Entity {
	out := make([]Entity, len(c.entities))
	for i, e := range c.entities {
		out[i] = e.Clone()
	}
	return out
}

// Refresh re-reads the selection from the store and recomputes grips. Call
// it after any change made outside the controller (undo, redo, another
// tool). If the selection's shape changed, the interaction resets to idle
// because grip indices may no longer mean the same thing.
func (c *Controller) Refresh() {
	prev := c.signature
	c.reload()
	if !prev.Equal(c.signature) && c.sm.Phase() != PhaseIdle {
		Logger().Debug("grip selection shape changed, resetting interaction")
		c.sm.Reset()
	}
}

func (c *Controller) reload() {
	c.entities = c.entities[:0]
	for _, id := range c.selection {
		e, ok := c.store.Entity(id)
		if !ok {
			Logger().Debug("selected entity missing from store", "entity", id)
			continue
		}
		c.entities = append(c.entities, e)
	}
	c.signature = SignatureOf(c.entities)
	c.sm.SetGrips(ComputeSelectionGrips(c.entities))
}

// SetView sets the view transform. Invalid transforms are rejected and the
// previous view is kept.
func (c *Controller) SetView(t ViewTransform) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.view = t
	c.sm.SetView(t)
	return nil
}

// View returns the current view transform.
func (c *Controller) View() ViewTransform {
	return c.view
}

// PointerMove forwards a pointer move in world and screen coordinates.
func (c *Controller) PointerMove(world, screen Vec2) bool {
	return c.sm.PointerMove(world, screen)
}

// PointerDown forwards a primary-button press.
func (c *Controller) PointerDown(world Vec2) bool {
	return c.sm.PointerDown(world)
}

// PointerUp forwards a primary-button release.
func (c *Controller) PointerUp(world Vec2) bool {
	return c.sm.PointerUp(world)
}

// Escape forwards the Escape key.
func (c *Controller) Escape() bool {
	return c.sm.Escape()
}

// RightClick forwards a secondary-button click.
func (c *Controller) RightClick() bool {
	return c.sm.RightClick()
}

// HandleScreenMove converts a screen position through the view and forwards it.
func (c *Controller) HandleScreenMove(screen Vec2) bool {
	return c.sm.PointerMove(ScreenToWorld(screen, c.view), screen)
}

// HandleScreenDown converts a screen position through the view and forwards it.
func (c *Controller) HandleScreenDown(screen Vec2) bool {
	return c.sm.PointerDown(ScreenToWorld(screen, c.view))
}

// HandleScreenUp converts a screen position through the view and forwards it.
func (c *Controller) HandleScreenUp(screen Vec2) bool {
	return c.sm.PointerUp(ScreenToWorld(screen, c.view))
}

// Update advances the warm timer and highlight by dt. Call it once per frame.
func (c *Controller) Update(dt time.Duration) {
	c.clock.Advance(dt)
	c.sm.Update(dt.Seconds())
}

// Phase returns the interaction phase.
func (c *Controller) Phase() Phase {
	return c.sm.Phase()
}

// State returns a copy of the interaction state.
func (c *Controller) State() InteractionState {
	return c.sm.State()
}

// VisualState returns the grip identifiers the renderer highlights.
func (c *Controller) VisualState() VisualState {
	return c.sm.VisualState()
}

// DragPreview returns the live drag, or nil.
func (c *Controller) DragPreview() *DragPreview {
	return c.sm.DragPreview()
}

// PreviewEntity returns the dragged entity as it would look if released
// now. The scene is not touched.
func (c *Controller) PreviewEntity() (Entity, bool) {
	p := c.sm.DragPreview()
	if p == nil {
		return nil, false
	}
	for _, e := range c.entities {
		if e.ID() != p.EntityID {
			continue
		}
		next, err := ApplyDelta(e, p.GripDelta)
		if err != nil {
			return nil, false
		}
		return next, true
	}
	return nil, false
}

// Grips returns the grips of the current selection.
func (c *Controller) Grips() []Grip {
	return append([]Grip(nil), c.sm.Grips()...)
}

// OnEvent registers a callback for interaction events.
func (c *Controller) OnEvent(fn func(GripEvent)) CallbackHandle {
	return c.sm.OnEvent(fn)
}

// SetEventSink sets an optional sink receiving every interaction event.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sm.SetEventSink(sink)
}

// LastCommitError returns the error of the most recent commit, or nil if it
// succeeded. A failed commit changes nothing in the scene.
func (c *Controller) LastCommitError() error {
	return c.lastErr
}

// Clock returns the frame clock that drives the warm timer.
func (c *Controller) Clock() *FrameClock {
	return c.clock
}

func (c *Controller) commit(d GripDelta) {
	if c.selectionChanged(d.EntityID) {
		c.lastErr = fmt.Errorf("%w: grip %d on %s", ErrSelectionChanged, d.GripIndex, d.EntityID)
		Logger().Warn("grip commit dropped", "entity", d.EntityID, "grip", d.GripIndex, "err", c.lastErr)
		c.Refresh()
		return
	}
	c.lastErr = c.adapter.Commit(d)
	if c.lastErr != nil {
		Logger().Warn("grip commit rejected", "entity", d.EntityID, "grip", d.GripIndex, "err", c.lastErr)
	}
	c.Refresh()
}

// selectionChanged re-reads the selection and compares its signature with the
// one the drag started from. A missing dragged entity is left to the adapter.
func (c *Controller) selectionChanged(id string) bool {
	if _, ok := c.store.Entity(id); !ok {
		return false
	}
	current := make([]Entity, 0, len(c.selection))
	for _, sid := range c.selection {
		if e, ok := c.store.Entity(sid); ok {
			current = append(current, e)
		}
	}
	return !SignatureOf(current).Equal(c.signature)
}
