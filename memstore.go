package gripedit

import "fmt"

// MemoryStore is a SceneStore held in memory. Entities are cloned on the way
// in and out, so callers never share geometry with the store.
type MemoryStore struct {
	entities map[string]Entity
	order    []string
	writes   int
}

// NewMemoryStore creates a store holding clones of entities.
func NewMemoryStore(entities ...Entity) *MemoryStore {
	s := &MemoryStore{entities: make(map[string]Entity, len(entities))}
	for _, e := range entities {
		// Duplicate IDs keep the first entity.
		_ = s.Add(e)
	}
	return s
}

// Add inserts e. It fails if the ID is already present.
func (s *MemoryStore) Add(e Entity) error {
	if _, ok := s.entities[e.ID()]; ok {
		return fmt.Errorf("gripedit: duplicate entity id %s", e.ID())
	}
	s.entities[e.ID()] = e.Clone()
	s.order = append(s.order, e.ID())
	return nil
}

// Remove deletes the entity with id. It reports whether it existed.
func (s *MemoryStore) Remove(id string) bool {
	if _, ok := s.entities[id]; !ok {
		return false
	}
	delete(s.entities, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Entity returns a clone of the entity with id.
func (s *MemoryStore) Entity(id string) (Entity, bool) {
	e, ok := s.entities[id]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Update replaces the stored entity with a clone of e.
func (s *MemoryStore) Update(e Entity) error {
	old, ok := s.entities[e.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, e.ID())
	}
	if old.Kind() != e.Kind() {
		return fmt.Errorf("gripedit: cannot replace %s %s with %s", old.Kind(), e.ID(), e.Kind())
	}
	s.entities[e.ID()] = e.Clone()
	s.writes++
	return nil
}

// All returns clones of every entity in insertion order.
func (s *MemoryStore) All() []Entity {
	out := make([]Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id].Clone())
	}
	return out
}

// Len returns the number of entities.
func (s *MemoryStore) Len() int {
	return len(s.order)
}

// Writes returns how many successful Update calls the store has seen.
func (s *MemoryStore) Writes() int {
	return s.writes
}
