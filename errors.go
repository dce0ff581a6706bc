package gripedit

import "errors"

var (
	// ErrInvalidTransform is returned when a ViewTransform has a non-positive
	// or non-finite scale, or non-finite offsets.
	ErrInvalidTransform = errors.New("gripedit: invalid view transform")

	// ErrEntityNotFound is returned when a commit or command targets an entity
	// the scene store no longer holds.
	ErrEntityNotFound = errors.New("gripedit: entity not found")

	// ErrVertexOutOfRange is returned when a grip or edge refers to a vertex
	// index outside the entity's current vertex list.
	ErrVertexOutOfRange = errors.New("gripedit: vertex index out of range")

	// ErrDegenerateGeometry is returned when applying a delta would produce an
	// unusable shape (for example a zero radius).
	ErrDegenerateGeometry = errors.New("gripedit: degenerate geometry")

	// ErrSelectionChanged is returned when the selection's geometry signature
	// changed between drag start and release. The drag is dropped.
	ErrSelectionChanged = errors.New("gripedit: selection geometry changed during drag")

	// ErrNoOp is returned when a delta would not change anything.
	ErrNoOp = errors.New("gripedit: no-op delta")

	// ErrUnknownKind is returned by the codec for an unrecognized entity kind.
	ErrUnknownKind = errors.New("gripedit: unknown entity kind")
)
