// Package board implements the drawing surface: the ordered stroke store,
// reversible actions with their undo/redo history, and the spatial queries
// behind selection and erasing.
package board

import (
	"image/color"

	"github.com/Lulu110106/projet-Rpaint/internal/geom"
)

// boundsMargin pads every stroke's hit rectangle so thin strokes stay easy
// to grab.
const boundsMargin = 5

// Stroke is one continuous drawn path. Point order is draw order.
type Stroke struct {
	Points []geom.Point
	Color  color.NRGBA
	Width  float32
}

// Clone returns a copy that shares no memory with the original.
func (s Stroke) Clone() Stroke {
	points := make([]geom.Point, len(s.Points))
	copy(points, s.Points)
	s.Points = points
	return s
}

// Translate moves every point by (dx, dy) in place.
func (s *Stroke) Translate(dx, dy float32) {
	for i := range s.Points {
		s.Points[i] = s.Points[i].Add(dx, dy)
	}
}

// Translated returns a moved deep copy, leaving the original untouched.
func (s Stroke) Translated(dx, dy float32) Stroke {
	c := s.Clone()
	c.Translate(dx, dy)
	return c
}

// Bounds returns the stroke's hit rectangle: the union of its points expanded
// by half the stroke width plus a fixed margin. ok is false for a stroke with
// no points.
func (s Stroke) Bounds() (geom.Rect, bool) {
	if len(s.Points) == 0 {
		return geom.Rect{}, false
	}
	r := geom.Rect{Min: s.Points[0], Max: s.Points[0]}
	for _, p := range s.Points[1:] {
		r = r.ExtendWith(p)
	}
	return r.Expand(s.Width/2 + boundsMargin), true
}
