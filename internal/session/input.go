package session

import (
	"github.com/Lulu110106/projet-Rpaint/internal/board"
	"github.com/Lulu110106/projet-Rpaint/internal/geom"
)

// The pointer methods are the one dispatch point per gesture phase: each
// switches on the active tool exactly once, and the front end never needs
// to know what the tools mean.

// PointerPressed starts a gesture at p.
func (s *Session) PointerPressed(p geom.Point) {
	switch s.tool {
	case ToolBrush, ToolLine:
		s.current = []geom.Point{p}
	case ToolEraser:
		s.eraseAt(p)
	case ToolSelect:
		s.selectPress(p)
	}
}

// PointerDragged extends the gesture to p.
func (s *Session) PointerDragged(p geom.Point) {
	switch s.tool {
	case ToolBrush:
		if len(s.current) > 0 {
			s.current = append(s.current, p)
		}
	case ToolLine:
		// A line is always its anchor and the latest point.
		if len(s.current) > 0 {
			s.current = []geom.Point{s.current[0], p}
		}
	case ToolEraser:
		s.eraseAt(p)
	case ToolSelect:
		s.selectDrag(p)
	}
}

// PointerReleased ends the gesture, committing whatever it produced.
func (s *Session) PointerReleased() {
	switch s.tool {
	case ToolBrush, ToolLine:
		s.finishStroke()
	case ToolSelect:
		s.selectRelease()
	}
}

// PointerClicked handles a tap that never became a drag, for front ends
// that report those separately.
func (s *Session) PointerClicked(p geom.Point) {
	switch s.tool {
	case ToolEraser:
		s.eraseAt(p)
	case ToolSelect:
		if i, ok := s.store.HitStroke(p, selectThreshold); ok {
			s.selection.Set([]int{i})
		} else {
			s.selection.Clear()
		}
	}
}

// KeyChord dispatches one resolved keyboard shortcut.
func (s *Session) KeyChord(c Chord) {
	switch c {
	case ChordUndo:
		s.Undo()
	case ChordRedo:
		s.Redo()
	case ChordCopy:
		s.CopySelected()
	case ChordPaste:
		s.Paste()
	case ChordDelete:
		s.DeleteSelected()
	}
}

func (s *Session) selectPress(p geom.Point) {
	// Grabbing inside any selected stroke's box moves the whole
	// selection.
	for _, i := range s.selection.Indices() {
		if r, ok := s.store.BoundingRect(i); ok && r.Contains(p) {
			s.startDrag(p)
			return
		}
	}
	if i, ok := s.store.HitStroke(p, selectThreshold); ok {
		if !s.selection.Contains(i) {
			s.selection.Set([]int{i})
		}
		s.startDrag(p)
		return
	}
	// Empty space anchors a rubber band and forgets the old selection.
	s.selection.Clear()
	s.selecting = true
	s.selStart = p
	s.selRectActive = false
}

func (s *Session) startDrag(p geom.Point) {
	s.dragging = true
	s.dragLast = p
	s.dragDX, s.dragDY = 0, 0
}

func (s *Session) selectDrag(p geom.Point) {
	if s.dragging {
		// Translate optimistically so the strokes follow the pointer,
		// accumulating the total for the commit on release.
		dx := p.X - s.dragLast.X
		dy := p.Y - s.dragLast.Y
		for _, i := range s.selection.Indices() {
			s.store.TranslateAt(i, dx, dy)
		}
		s.dragDX += dx
		s.dragDY += dy
		s.dragLast = p
		return
	}
	if s.selecting {
		s.selRect = geom.RectFromPoints(s.selStart, p)
		s.selRectActive = true
	}
}

func (s *Session) selectRelease() {
	if s.dragging {
		if s.dragDX != 0 || s.dragDY != 0 {
			// Rewind the optimistic drag, then commit the whole
			// displacement as one action.
			indices := s.selection.Indices()
			for _, i := range indices {
				s.store.TranslateAt(i, -s.dragDX, -s.dragDY)
			}
			s.commit(board.Move{Indices: indices, DX: s.dragDX, DY: s.dragDY})
		}
		s.dragging = false
		s.dragDX, s.dragDY = 0, 0
		return
	}
	if s.selecting {
		if s.selRectActive {
			s.selection.Set(s.store.StrokesInRect(s.selRect))
		}
		s.selecting = false
		s.selRectActive = false
	}
}

// finishStroke commits the in-progress stroke. A stroke needs at least two
// points; a press with no drag leaves nothing behind.
func (s *Session) finishStroke() {
	defer func() { s.current = nil }()
	if len(s.current) < 2 {
		return
	}
	stroke := board.Stroke{
		Points: append([]geom.Point(nil), s.current...),
		Color:  s.brushColor,
		Width:  s.brushWidth,
	}
	s.commit(board.Create{
		Indices: []int{s.store.Len()},
		Strokes: []board.Stroke{stroke},
	})
}

// eraseAt deletes the first stroke within the brush width of p, one stroke
// per event so a sweep erases piece by piece.
func (s *Session) eraseAt(p geom.Point) {
	i, ok := s.store.HitStroke(p, s.brushWidth)
	if !ok {
		return
	}
	st, _ := s.store.StrokeAt(i)
	s.commit(board.Delete{Indices: []int{i}, Strokes: []board.Stroke{st.Clone()}})
}
