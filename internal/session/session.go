// Package session wires the board core to the network and to whatever front
// end feeds it input. Everything here runs in one interactive context: the
// session owns Store, History and Selection outright, never blocks, and
// never shares them with a network goroutine.
package session

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/Lulu110106/projet-Rpaint/internal/board"
	"github.com/Lulu110106/projet-Rpaint/internal/geom"
	"github.com/Lulu110106/projet-Rpaint/internal/net"
	"github.com/Lulu110106/projet-Rpaint/internal/wire"
)

// Session routes committed local actions to the transport and applies what
// peers send back. All methods must be called from the same goroutine.
type Session struct {
	store     *board.Store
	history   *board.History
	selection board.Selection

	tool       Tool
	brushColor color.NRGBA
	brushWidth float32

	current   []geom.Point
	clipboard []board.Stroke

	dragging bool
	dragLast geom.Point
	dragDX   float32
	dragDY   float32

	selecting     bool
	selStart      geom.Point
	selRect       geom.Rect
	selRectActive bool

	transport *net.Transport
	peers     map[string]struct{}
	status    string
}

// New builds a session around a fresh board. The transport may be nil for a
// purely offline board.
func New(t *net.Transport) *Session {
	st := board.NewStore()
	return &Session{
		store:      st,
		history:    board.NewHistory(st),
		brushColor: color.NRGBA{R: 0, G: 150, B: 255, A: 255},
		brushWidth: 4,
		transport:  t,
		peers:      make(map[string]struct{}),
		status:     "offline",
	}
}

func (s *Session) Store() *board.Store      { return s.store }
func (s *Session) Tool() Tool               { return s.tool }
func (s *Session) BrushColor() color.NRGBA  { return s.brushColor }
func (s *Session) BrushWidth() float32      { return s.brushWidth }
func (s *Session) CanUndo() bool            { return s.history.CanUndo() }
func (s *Session) CanRedo() bool            { return s.history.CanRedo() }
func (s *Session) SelectedIndices() []int   { return s.selection.Indices() }
func (s *Session) Status() string           { return s.status }

// Peers reports how many distinct peers look alive. Advisory only; presence
// over lossy datagrams is a heuristic, not membership.
func (s *Session) Peers() int { return len(s.peers) }

// Preview returns the in-progress stroke for rendering, if any.
func (s *Session) Preview() (board.Stroke, bool) {
	if len(s.current) == 0 {
		return board.Stroke{}, false
	}
	return board.Stroke{Points: s.current, Color: s.brushColor, Width: s.brushWidth}, true
}

// RubberBand returns the selection rectangle being dragged out, if any.
func (s *Session) RubberBand() (geom.Rect, bool) {
	if !s.selecting || !s.selRectActive {
		return geom.Rect{}, false
	}
	return s.selRect, true
}

// SelectionBounds returns one highlight rectangle per selected stroke.
func (s *Session) SelectionBounds() []geom.Rect {
	var rects []geom.Rect
	for _, i := range s.selection.Indices() {
		if r, ok := s.store.BoundingRect(i); ok {
			rects = append(rects, r)
		}
	}
	return rects
}

// SetTool switches the active tool, dropping any half-finished gesture.
// Leaving the select tool abandons the selection.
func (s *Session) SetTool(t Tool) {
	if s.tool == ToolSelect && t != ToolSelect {
		s.selection.Clear()
		s.selecting = false
		s.selRectActive = false
		s.dragging = false
	}
	s.current = nil
	s.tool = t
}

func (s *Session) SetBrushColor(c color.NRGBA) { s.brushColor = c }

func (s *Session) SetBrushWidth(w float32) {
	if w > 0 {
		s.brushWidth = w
	}
}

// ApplyColorToSelection recolors the selected strokes as one undoable step.
func (s *Session) ApplyColorToSelection() {
	c := s.brushColor
	s.modifySelection(func(st *board.Stroke) { st.Color = c })
}

// ApplyWidthToSelection applies the brush width to the selected strokes as
// one undoable step.
func (s *Session) ApplyWidthToSelection() {
	w := s.brushWidth
	s.modifySelection(func(st *board.Stroke) { st.Width = w })
}

func (s *Session) modifySelection(patch func(*board.Stroke)) {
	var (
		indices []int
		before  []board.Stroke
		after   []board.Stroke
	)
	for _, i := range s.selection.Indices() {
		orig, ok := s.store.StrokeAt(i)
		if !ok {
			continue
		}
		b := orig.Clone()
		a := orig.Clone()
		patch(&a)
		indices = append(indices, i)
		before = append(before, b)
		after = append(after, a)
	}
	if len(indices) == 0 {
		return
	}
	s.commit(board.Modify{Indices: indices, Before: before, After: after})
}

// Undo rolls back the most recent local action. The selection is dropped
// because its indices may no longer point at the same strokes.
func (s *Session) Undo() {
	if s.history.Undo() {
		s.selection.Clear()
	}
}

// Redo reapplies the most recently undone action.
func (s *Session) Redo() {
	s.history.Redo()
}

// CopySelected snapshots the selected strokes, in selection order, into the
// clipboard and best-effort onto the system clipboard.
func (s *Session) CopySelected() {
	var copied []board.Stroke
	for _, i := range s.selection.Indices() {
		if st, ok := s.store.StrokeAt(i); ok {
			copied = append(copied, st.Clone())
		}
	}
	if len(copied) == 0 {
		return
	}
	s.clipboard = copied
	exportClipboard(copied)
}

// Paste inserts the clipboard contents shifted by the paste offset, selects
// the pasted range, and keeps the shifted copies as the new clipboard so a
// repeated paste cascades.
func (s *Session) Paste() {
	if len(s.clipboard) == 0 {
		s.clipboard = importClipboard()
	}
	if len(s.clipboard) == 0 {
		return
	}
	base := s.store.Len()
	indices := make([]int, 0, len(s.clipboard))
	pasted := make([]board.Stroke, 0, len(s.clipboard))
	for k, st := range s.clipboard {
		indices = append(indices, base+k)
		pasted = append(pasted, st.Translated(pasteOffset, pasteOffset))
	}
	s.commit(board.Create{Indices: indices, Strokes: pasted})

	next := make([]board.Stroke, len(pasted))
	for k, st := range pasted {
		next[k] = st.Clone()
	}
	s.clipboard = next
	s.selection.Set(indices)
}

// DeleteSelected removes the selected strokes as one undoable action.
func (s *Session) DeleteSelected() {
	idx := s.selection.Indices()
	sort.Ints(idx)
	var (
		indices []int
		strokes []board.Stroke
	)
	for _, i := range idx {
		if st, ok := s.store.StrokeAt(i); ok {
			indices = append(indices, i)
			strokes = append(strokes, st.Clone())
		}
	}
	s.selection.Clear()
	if len(indices) == 0 {
		return
	}
	s.commit(board.Delete{Indices: indices, Strokes: strokes})
}

// ClearAll deletes every stroke in one undoable action. Peers get a single
// Clear message rather than the full index list.
func (s *Session) ClearAll() {
	n := s.store.Len()
	if n == 0 {
		return
	}
	indices := make([]int, n)
	strokes := make([]board.Stroke, n)
	for i := 0; i < n; i++ {
		indices[i] = i
		st, _ := s.store.StrokeAt(i)
		strokes[i] = st.Clone()
	}
	s.history.Execute(board.Delete{Indices: indices, Strokes: strokes})
	s.sendMsg(wire.Clear{})
	s.selection.Clear()
}

// commit applies the action through the history, then broadcasts what was
// committed. The history itself knows nothing about the network.
func (s *Session) commit(a board.Action) {
	committed := s.history.Execute(a)
	for _, m := range wire.MessagesFor(committed) {
		s.sendMsg(m)
	}
}

// sendMsg encodes and sends one message. A failure is logged and kept as
// the session status, never retried; the committed local state stands.
func (s *Session) sendMsg(m wire.Message) {
	if s.transport == nil || !s.transport.Connected() {
		return
	}
	if err := s.transport.Send(wire.Encode(m)); err != nil {
		log.Printf("[session] send failed: %v", err)
		s.status = fmt.Sprintf("send failed: %v", err)
	}
}

// DrainNetwork applies every event the transport queued since the last
// tick.
func (s *Session) DrainNetwork() {
	if s.transport == nil {
		return
	}
	for _, e := range s.transport.DrainEvents() {
		s.HandleEvent(e)
	}
}

// HandleEvent applies one network event. Exported so the daemon can feed
// discovery and snapshot-service events through the same path.
func (s *Session) HandleEvent(e net.Event) {
	switch e := e.(type) {
	case net.MessageEvent:
		s.applyRemote(e.Msg)
	case net.PeerDiscoveredEvent:
		s.peers[e.ID] = struct{}{}
		s.status = fmt.Sprintf("%d peer(s) online", len(s.peers))
	case net.PeerExpiredEvent:
		delete(s.peers, e.ID)
		s.status = fmt.Sprintf("%d peer(s) online", len(s.peers))
	case net.ConnectedEvent:
		s.status = "connected"
	case net.DisconnectedEvent:
		s.peers = make(map[string]struct{})
		s.status = "offline"
	case net.SnapshotRequestEvent:
		s.answerSnapshot(e.Reply)
	}
}

// applyRemote mutates the store directly; peer edits are never undoable
// locally. Indices a peer sends may be stale, in which case the store's
// bounds checks turn the edit into a no-op.
func (s *Session) applyRemote(m wire.Message) {
	switch m := m.(type) {
	case wire.DrawLine:
		s.store.Append(board.Stroke{
			Points: m.Points,
			Color:  wire.UnpackColor(m.Color),
			Width:  m.Width,
		})
	case wire.Delete:
		idx := append([]int(nil), m.Indices...)
		sort.Sort(sort.Reverse(sort.IntSlice(idx)))
		for _, i := range idx {
			s.store.RemoveAt(i)
		}
	case wire.Modify:
		for k, i := range m.Indices {
			st, ok := s.store.StrokeAt(i)
			if !ok {
				continue
			}
			patched := st.Clone()
			if k < len(m.Colors) {
				patched.Color = wire.UnpackColor(m.Colors[k])
			}
			if k < len(m.Widths) {
				patched.Width = m.Widths[k]
			}
			s.store.ReplaceAt(i, patched)
		}
	case wire.Move:
		for _, i := range m.Indices {
			s.store.TranslateAt(i, m.DeltaX, m.DeltaY)
		}
	case wire.Clear:
		s.store.Clear()
	case wire.Sync:
		if err := s.ApplySnapshot(m.LinesData); err != nil {
			log.Printf("[session] bad sync payload: %v", err)
		}
	}
}

// answerSnapshot serves the current board as one encoded Sync frame. The
// reply channel is buffered by the requester, so the single send never
// blocks.
func (s *Session) answerSnapshot(reply chan []byte) {
	data, err := wire.MarshalStrokes(s.store.Strokes())
	if err != nil {
		log.Printf("[session] snapshot marshal: %v", err)
		return
	}
	reply <- wire.Encode(wire.Sync{LinesData: string(data)})
}

// ApplySnapshot replaces the whole board with a decoded snapshot. The
// history is left alone; entries that reference strokes the snapshot
// dropped degrade to no-ops through the store's bounds checks.
func (s *Session) ApplySnapshot(data string) error {
	strokes, err := wire.UnmarshalStrokes([]byte(data))
	if err != nil {
		return fmt.Errorf("apply snapshot: %w", err)
	}
	s.store.ReplaceAll(strokes)
	log.Printf("[session] board replaced by snapshot, %d strokes", len(strokes))
	return nil
}
