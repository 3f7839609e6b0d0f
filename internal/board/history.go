package board

// History records locally committed actions and replays them for undo and
// redo. The stacks are strictly local: remote edits are applied to the store
// directly and never pass through here, so an undo can only ever revert this
// user's own actions.
type History struct {
	store *Store
	undo  []Action
	redo  []Action
}

func NewHistory(st *Store) *History {
	return &History{store: st}
}

// Execute applies the action, pushes it on the undo stack and discards any
// redoable future. It returns the committed action so the caller can hand it
// to a broadcast subscriber; the history itself knows nothing about the
// network.
func (h *History) Execute(a Action) Action {
	a.Apply(h.store)
	h.undo = append(h.undo, a)
	h.redo = h.redo[:0]
	return a
}

// Undo reverses the most recent committed action and reports whether
// anything was undone. The original action moves to the redo stack.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	a := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	a.Invert().Apply(h.store)
	h.redo = append(h.redo, a)
	return true
}

// Redo reapplies the most recently undone action. Only Execute clears the
// redo stack, so repeated undo/redo walks the same timeline.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	a := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	a.Apply(h.store)
	h.undo = append(h.undo, a)
	return true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
