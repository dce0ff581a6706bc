package gripedit

// EventSink receives interaction events, for example to forward them into an
// ECS world (see the ecs package).
type EventSink interface {
	EmitEvent(event GripEvent)
}

// GripEvent carries one interaction event.
type GripEvent struct {
	Type      GripEventType
	EntityID  string
	GripIndex int
	// World is the pointer position in world space when the event fired.
	World Vec2
	// Delta is the displacement from the drag anchor (EventDrag, EventCommit).
	Delta Vec2
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(GripEvent)
}

type handlerRegistry struct {
	handlers []eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered event callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(fn func(GripEvent)) CallbackHandle {
	r.nextID++
	r.handlers = append(r.handlers, eventHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r}
}

func (r *handlerRegistry) fire(e GripEvent) {
	for _, h := range r.handlers {
		h.fn(e)
	}
}
