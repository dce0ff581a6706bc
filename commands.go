package gripedit

import (
	"errors"
	"fmt"
)

// Command is a reversible scene mutation handed to a CommandHistory.
type Command interface {
	Execute() error
	Undo() error
	// Label is a short human-readable name for history menus.
	Label() string
}

var errNotExecuted = errors.New("gripedit: undo before execute")

func lookup(store SceneStore, id string) (Entity, error) {
	e, ok := store.Entity(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}
	return e, nil
}

// --- MoveEntityCommand ---

// MoveEntityCommand translates a whole entity rigidly. The first Execute
// snapshots the entity; Undo and redo write the snapshots back, so undo is
// exact rather than a reverse translation.
type MoveEntityCommand struct {
	store  SceneStore
	id     string
	delta  Vec2
	before Entity
	after  Entity
}

// NewMoveEntityCommand creates a command translating entity id by delta.
func NewMoveEntityCommand(store SceneStore, id string, delta Vec2) *MoveEntityCommand {
	return &MoveEntityCommand{store: store, id: id, delta: delta}
}

func (c *MoveEntityCommand) Label() string { return "Move entity" }

// Delta returns the translation.
func (c *MoveEntityCommand) Delta() Vec2 { return c.delta }

func (c *MoveEntityCommand) Execute() error {
	if c.after == nil {
		cur, err := lookup(c.store, c.id)
		if err != nil {
			return err
		}
		c.before = cur.Clone()
		c.after = cur.Translate(c.delta)
	}
	return c.store.Update(c.after.Clone())
}

func (c *MoveEntityCommand) Undo() error {
	if c.before == nil {
		return errNotExecuted
	}
	return c.store.Update(c.before.Clone())
}

// --- MoveVertexCommand ---

// MoveVertexCommand moves one vertex of a multi-vertex entity, carrying its
// old and new positions.
type MoveVertexCommand struct {
	store  SceneStore
	id     string
	index  int
	oldPos Vec2
	newPos Vec2
}

// NewMoveVertexCommand creates a command setting vertex index of entity id
// from oldPos to newPos.
func NewMoveVertexCommand(store SceneStore, id string, index int, oldPos, newPos Vec2) *MoveVertexCommand {
	return &MoveVertexCommand{store: store, id: id, index: index, oldPos: oldPos, newPos: newPos}
}

func (c *MoveVertexCommand) Label() string { return "Move vertex" }

// Index returns the vertex index.
func (c *MoveVertexCommand) Index() int { return c.index }

// OldPosition returns the position restored by Undo.
func (c *MoveVertexCommand) OldPosition() Vec2 { return c.oldPos }

// NewPosition returns the position written by Execute.
func (c *MoveVertexCommand) NewPosition() Vec2 { return c.newPos }

func (c *MoveVertexCommand) Execute() error { return c.set(c.newPos) }
func (c *MoveVertexCommand) Undo() error    { return c.set(c.oldPos) }

func (c *MoveVertexCommand) set(p Vec2) error {
	return writeVertices(c.store, c.id, []int{c.index}, []Vec2{p})
}

// --- MoveVerticesCommand ---

// MoveVerticesCommand moves several vertices of one entity in a single store
// write: either all of them change or none do.
type MoveVerticesCommand struct {
	store   SceneStore
	id      string
	indices []int
	oldPos  []Vec2
	newPos  []Vec2
}

// NewMoveVerticesCommand creates a command moving the vertices at indices
// from oldPos to newPos. The three slices must have equal length.
func NewMoveVerticesCommand(store SceneStore, id string, indices []int, oldPos, newPos []Vec2) *MoveVerticesCommand {
	return &MoveVerticesCommand{
		store:   store,
		id:      id,
		indices: append([]int(nil), indices...),
		oldPos:  append([]Vec2(nil), oldPos...),
		newPos:  append([]Vec2(nil), newPos...),
	}
}

func (c *MoveVerticesCommand) Label() string { return "Move vertices" }

// Indices returns the moved vertex indices.
func (c *MoveVerticesCommand) Indices() []int { return append([]int(nil), c.indices...) }

func (c *MoveVerticesCommand) Execute() error {
	return writeVertices(c.store, c.id, c.indices, c.newPos)
}

func (c *MoveVerticesCommand) Undo() error {
	return writeVertices(c.store, c.id, c.indices, c.oldPos)
}

// writeVertices reads the entity once, replaces every listed vertex and
// writes it back with one Update call.
func writeVertices(store SceneStore, id string, indices []int, pos []Vec2) error {
	if len(indices) != len(pos) {
		return fmt.Errorf("gripedit: %d indices for %d positions", len(indices), len(pos))
	}
	e, err := lookup(store, id)
	if err != nil {
		return err
	}
	verts := e.Vertices()
	for k, i := range indices {
		if !inRange(i, len(verts)) {
			return fmt.Errorf("%w: vertex %d on %s with %d vertices", ErrVertexOutOfRange, i, id, len(verts))
		}
		verts[i] = pos[k]
	}
	next, err := e.SetVertices(verts)
	if err != nil {
		return err
	}
	return store.Update(next)
}

// --- ReshapeCommand ---

// ReshapeCommand swaps an entity between two snapshots. It covers edits that
// are not plain coordinate moves, such as a circle radius or an arc angle.
type ReshapeCommand struct {
	store  SceneStore
	before Entity
	after  Entity
}

// NewReshapeCommand creates a command replacing before with after. Both
// must carry the same ID.
func NewReshapeCommand(store SceneStore, before, after Entity) *ReshapeCommand {
	return &ReshapeCommand{store: store, before: before.Clone(), after: after.Clone()}
}

func (c *ReshapeCommand) Label() string { return "Reshape " + c.after.Kind().String() }

// After returns a copy of the geometry written by Execute.
func (c *ReshapeCommand) After() Entity { return c.after.Clone() }

func (c *ReshapeCommand) Execute() error { return c.swap(c.after) }
func (c *ReshapeCommand) Undo() error    { return c.swap(c.before) }

func (c *ReshapeCommand) swap(e Entity) error {
	if _, err := lookup(c.store, e.ID()); err != nil {
		return err
	}
	return c.store.Update(e.Clone())
}
