package board

import "github.com/Lulu110106/projet-Rpaint/internal/geom"

// Selection is the set of store indices the next edit will target. It is a
// plain index set; clearing rules (on undo, on tool change, on rectangle
// select) belong to the session driving it.
type Selection struct {
	indices []int
}

// Set replaces the selection with the given indices.
func (s *Selection) Set(indices []int) {
	s.indices = append(s.indices[:0], indices...)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.indices = s.indices[:0]
}

// Indices returns the selected indices in selection order. The slice is a
// copy and safe to keep.
func (s *Selection) Indices() []int {
	out := make([]int, len(s.indices))
	copy(out, s.indices)
	return out
}

func (s *Selection) Contains(i int) bool {
	for _, idx := range s.indices {
		if idx == i {
			return true
		}
	}
	return false
}

func (s *Selection) Len() int      { return len(s.indices) }
func (s *Selection) IsEmpty() bool { return len(s.indices) == 0 }

// HitStroke returns the index of the first stroke whose path passes within
// threshold of p. Distance is measured to each consecutive segment; a
// single-point stroke is measured to that point.
func (st *Store) HitStroke(p geom.Point, threshold float32) (int, bool) {
	for i, s := range st.strokes {
		if strokeHit(s, p, threshold) {
			return i, true
		}
	}
	return 0, false
}

func strokeHit(s Stroke, p geom.Point, threshold float32) bool {
	if len(s.Points) == 1 {
		return p.Dist(s.Points[0]) < threshold
	}
	for i := 1; i < len(s.Points); i++ {
		if geom.DistToSegment(p, s.Points[i-1], s.Points[i]) < threshold {
			return true
		}
	}
	return false
}

// StrokesInRect returns the indices of every stroke with at least one point
// inside r, in draw order.
func (st *Store) StrokesInRect(r geom.Rect) []int {
	var hits []int
	for i, s := range st.strokes {
		for _, p := range s.Points {
			if r.Contains(p) {
				hits = append(hits, i)
				break
			}
		}
	}
	return hits
}
