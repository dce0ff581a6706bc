package gripedit

import "fmt"

// SceneStore is the external collection that owns entities. Update must
// replace the stored entity with e in one atomic write; it reports
// ErrEntityNotFound if no entity has e.ID().
type SceneStore interface {
	Entity(id string) (Entity, bool)
	Update(e Entity) error
}

// CommandHistory executes commands and keeps them for undo/redo. The
// adapter only ever calls Execute.
type CommandHistory interface {
	Execute(cmd Command) error
}

// CommitAdapter turns completed drags into reversible commands. It keeps no
// history of its own.
type CommitAdapter struct {
	store   SceneStore
	history CommandHistory
}

// NewCommitAdapter creates an adapter writing to store through history.
func NewCommitAdapter(store SceneStore, history CommandHistory) *CommitAdapter {
	return &CommitAdapter{store: store, history: history}
}

// Commit builds the command for d and executes it through the history.
//
//   - With EdgeVertexIndices, both edge vertices move by d.Delta in one write.
//   - With MovesEntity, the whole entity translates.
//   - Otherwise the single coordinate behind the grip moves (for circles and
//     arcs: radius and angle are recomputed).
//
// A zero delta returns ErrNoOp and a NaN or infinite one returns
// ErrDegenerateGeometry; nothing reaches the history. A missing
// entity or out-of-range vertex returns an error and nothing is written.
func (a *CommitAdapter) Commit(d GripDelta) error {
	if d.Delta.IsZero() {
		return ErrNoOp
	}
	if !d.Delta.finite() {
		return fmt.Errorf("%w: non-finite delta %v", ErrDegenerateGeometry, d.Delta)
	}
	e, err := lookup(a.store, d.EntityID)
	if err != nil {
		return err
	}
	cmd, err := a.command(e, d)
	if err != nil {
		return err
	}
	if err := a.history.Execute(cmd); err != nil {
		return fmt.Errorf("commit %s on %s: %w", cmd.Label(), d.EntityID, err)
	}
	Logger().Debug("grip commit", "command", cmd.Label(), "entity", d.EntityID, "grip", d.GripIndex,
		"dx", d.Delta.X, "dy", d.Delta.Y)
	return nil
}

func (a *CommitAdapter) command(e Entity, d GripDelta) (Command, error) {
	id := e.ID()

	if d.EdgeVertexIndices != nil {
		verts := e.Vertices()
		i, j := d.EdgeVertexIndices[0], d.EdgeVertexIndices[1]
		if !inRange(i, len(verts)) || !inRange(j, len(verts)) {
			return nil, fmt.Errorf("%w: edge [%d,%d] on %s with %d vertices",
				ErrVertexOutOfRange, i, j, id, len(verts))
		}
		indices := []int{i, j}
		if i == j {
			indices = indices[:1]
		}
		oldPos := make([]Vec2, len(indices))
		newPos := make([]Vec2, len(indices))
		for k, vi := range indices {
			oldPos[k] = verts[vi]
			newPos[k] = verts[vi].Add(d.Delta)
		}
		return NewMoveVerticesCommand(a.store, id, indices, oldPos, newPos), nil
	}

	if d.MovesEntity {
		return NewMoveEntityCommand(a.store, id, d.Delta), nil
	}

	switch e.(type) {
	case *Circle, *Arc:
		after, err := ApplyDelta(e, d)
		if err != nil {
			return nil, err
		}
		return NewReshapeCommand(a.store, e, after), nil
	}

	verts := e.Vertices()
	if !inRange(d.GripIndex, len(verts)) {
		return nil, fmt.Errorf("%w: grip %d on %s with %d vertices",
			ErrVertexOutOfRange, d.GripIndex, id, len(verts))
	}
	old := verts[d.GripIndex]
	return NewMoveVertexCommand(a.store, id, d.GripIndex, old, old.Add(d.Delta)), nil
}
