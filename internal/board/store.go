package board

import "github.com/Lulu110106/projet-Rpaint/internal/geom"

// Store is the ordered stroke sequence. Strokes are addressed by position,
// and every index operation treats an out-of-range index as a silent no-op.
// That tolerance is what keeps undo/redo and remote edits harmless when the
// local and remote views of the board have briefly diverged.
type Store struct {
	strokes []Stroke
}

func NewStore() *Store {
	return &Store{}
}

// Len returns the number of strokes on the board.
func (st *Store) Len() int {
	return len(st.strokes)
}

// StrokeAt returns the stroke at index i. The returned value shares its point
// slice with the store; callers that keep it should Clone it.
func (st *Store) StrokeAt(i int) (Stroke, bool) {
	if i < 0 || i >= len(st.strokes) {
		return Stroke{}, false
	}
	return st.strokes[i], true
}

// Strokes returns the strokes in draw order. The slice is a copy but the
// point data is shared; callers must not mutate it.
func (st *Store) Strokes() []Stroke {
	out := make([]Stroke, len(st.strokes))
	copy(out, st.strokes)
	return out
}

// Append adds a stroke at the end of the board.
func (st *Store) Append(s Stroke) {
	st.strokes = append(st.strokes, s)
}

// InsertAt places a stroke at index i, shifting later strokes up. i may be
// Len (an append); anything else out of range is ignored.
func (st *Store) InsertAt(i int, s Stroke) {
	if i < 0 || i > len(st.strokes) {
		return
	}
	st.strokes = append(st.strokes, Stroke{})
	copy(st.strokes[i+1:], st.strokes[i:])
	st.strokes[i] = s
}

// RemoveAt deletes the stroke at index i, shifting later strokes down.
func (st *Store) RemoveAt(i int) {
	if i < 0 || i >= len(st.strokes) {
		return
	}
	st.strokes = append(st.strokes[:i], st.strokes[i+1:]...)
}

// ReplaceAt swaps the stroke at index i for s.
func (st *Store) ReplaceAt(i int, s Stroke) {
	if i < 0 || i >= len(st.strokes) {
		return
	}
	st.strokes[i] = s
}

// TranslateAt moves every point of the stroke at index i by (dx, dy).
func (st *Store) TranslateAt(i int, dx, dy float32) {
	if i < 0 || i >= len(st.strokes) {
		return
	}
	st.strokes[i].Translate(dx, dy)
}

// BoundingRect returns the hit rectangle of the stroke at index i.
func (st *Store) BoundingRect(i int) (geom.Rect, bool) {
	if i < 0 || i >= len(st.strokes) {
		return geom.Rect{}, false
	}
	return st.strokes[i].Bounds()
}

// Clear removes every stroke.
func (st *Store) Clear() {
	st.strokes = nil
}

// ReplaceAll swaps the whole board for the given strokes, as a received
// snapshot or a loaded file does.
func (st *Store) ReplaceAll(strokes []Stroke) {
	st.strokes = strokes
}
