package gripedit

// History is an in-memory CommandHistory with undo/redo. Executing a new
// command after an undo discards the redo branch; once capacity is exceeded
// the oldest command is dropped.
type History struct {
	done   []Command
	undone []Command
	max    int
}

// NewHistory creates a history keeping at most capacity commands.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{max: capacity}
}

// Execute runs cmd and records it. A failing command is not recorded.
func (h *History) Execute(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.done = append(h.done, cmd)
	if len(h.done) > h.max {
		h.done[0] = nil
		h.done = h.done[1:]
	}
	h.undone = h.undone[:0]
	return nil
}

// CanUndo returns true if there is a command to undo.
func (h *History) CanUndo() bool {
	return len(h.done) > 0
}

// CanRedo returns true if there is an undone command to redo.
func (h *History) CanRedo() bool {
	return len(h.undone) > 0
}

// Undo reverts the most recent command. With nothing to undo it does nothing.
// If the command's Undo fails it stays on the undo stack.
func (h *History) Undo() error {
	if !h.CanUndo() {
		return nil
	}
	cmd := h.done[len(h.done)-1]
	if err := cmd.Undo(); err != nil {
		return err
	}
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, cmd)
	return nil
}

// Redo re-executes the most recently undone command.
func (h *History) Redo() error {
	if !h.CanRedo() {
		return nil
	}
	cmd := h.undone[len(h.undone)-1]
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, cmd)
	return nil
}

// Len returns the number of undoable commands.
func (h *History) Len() int {
	return len(h.done)
}

// Labels returns the labels of the undoable commands, oldest first.
func (h *History) Labels() []string {
	labels := make([]string, len(h.done))
	for i, c := range h.done {
		labels[i] = c.Label()
	}
	return labels
}

// Clear drops all history.
func (h *History) Clear() {
	h.done = nil
	h.undone = nil
}
