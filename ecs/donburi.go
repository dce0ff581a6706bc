package ecs

import (
	"fmt"

	"github.com/phanxgames/gripedit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// GripEventType is the Donburi event type for grip interaction events.
// Subscribe to this in your ECS systems to receive hover, warm, drag and
// commit events.
var GripEventType = events.NewEventType[gripedit.GripEvent]()

// ShapeData holds one drawing entity.
type ShapeData struct {
	Entity gripedit.Entity
}

// Shape is the component carrying a drawing entity.
var Shape = donburi.NewComponentType[ShapeData]()

var shapeQuery = donburi.NewQuery(filter.Contains(Shape))

// DonburiStore is a [gripedit.SceneStore] backed by a Donburi world.
// Entities are cloned on the way in and out.
type DonburiStore struct {
	world donburi.World
	index map[string]donburi.Entity
}

// NewDonburiStore creates a store over world. Entries that already carry the
// Shape component are indexed by their entity ID.
func NewDonburiStore(world donburi.World) *DonburiStore {
	s := &DonburiStore{world: world, index: make(map[string]donburi.Entity)}
	shapeQuery.Each(world, func(entry *donburi.Entry) {
		if e := Shape.Get(entry).Entity; e != nil {
			s.index[e.ID()] = entry.Entity()
		}
	})
	return s
}

// World returns the underlying world.
func (s *DonburiStore) World() donburi.World {
	return s.world
}

// Add creates a world entry holding a clone of e.
func (s *DonburiStore) Add(e gripedit.Entity) (donburi.Entity, error) {
	if _, ok := s.index[e.ID()]; ok {
		return 0, fmt.Errorf("ecs: duplicate entity id %s", e.ID())
	}
	ent := s.world.Create(Shape)
	Shape.SetValue(s.world.Entry(ent), ShapeData{Entity: e.Clone()})
	s.index[e.ID()] = ent
	return ent, nil
}

// Remove deletes the entry holding id. It reports whether it existed.
func (s *DonburiStore) Remove(id string) bool {
	ent, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	if s.world.Valid(ent) {
		s.world.Remove(ent)
	}
	return true
}

func (s *DonburiStore) entry(id string) (*donburi.Entry, bool) {
	ent, ok := s.index[id]
	if !ok || !s.world.Valid(ent) {
		return nil, false
	}
	return s.world.Entry(ent), true
}

// Entity implements [gripedit.SceneStore].
func (s *DonburiStore) Entity(id string) (gripedit.Entity, bool) {
	entry, ok := s.entry(id)
	if !ok {
		return nil, false
	}
	e := Shape.Get(entry).Entity
	if e == nil {
		return nil, false
	}
	return e.Clone(), true
}

// Update implements [gripedit.SceneStore].
func (s *DonburiStore) Update(e gripedit.Entity) error {
	entry, ok := s.entry(e.ID())
	if !ok {
		return fmt.Errorf("%w: %s", gripedit.ErrEntityNotFound, e.ID())
	}
	old := Shape.Get(entry).Entity
	if old != nil && old.Kind() != e.Kind() {
		return fmt.Errorf("ecs: cannot replace %s %s with %s", old.Kind(), e.ID(), e.Kind())
	}
	Shape.SetValue(entry, ShapeData{Entity: e.Clone()})
	return nil
}

// Len returns the number of indexed entities.
func (s *DonburiStore) Len() int {
	return len(s.index)
}

type eventSink struct {
	world donburi.World
}

// NewEventSink returns a [gripedit.EventSink] that publishes every grip
// event to GripEventType. Events are queued; call
// GripEventType.ProcessEvents or events.ProcessAllEvents to deliver them.
func NewEventSink(world donburi.World) gripedit.EventSink {
	return &eventSink{world: world}
}

func (s *eventSink) EmitEvent(event gripedit.GripEvent) {
	GripEventType.Publish(s.world, event)
}
