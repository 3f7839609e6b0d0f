// Package geom holds the small amount of 2D math the board needs.
package geom

import "math"

type Point struct{ X, Y float32 }

// Add returns the point translated by (dx, dy).
func (p Point) Add(dx, dy float32) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Dist returns the Euclidean distance to q.
func (p Point) Dist(q Point) float32 {
	dx := float64(q.X - p.X)
	dy := float64(q.Y - p.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

func (p Point) distSq(q Point) float32 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return dx*dx + dy*dy
}

// DistToSegment returns the distance from p to the closest point on the
// segment ab. The projection parameter is clamped to [0,1], so points past
// either end measure against the nearest endpoint.
func DistToSegment(p, a, b Point) float32 {
	l2 := a.distSq(b)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(Point{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	})
}

// Rect is an axis-aligned rectangle with Min <= Max on both axes.
type Rect struct {
	Min Point
	Max Point
}

// RectFromPoints builds a normalized rectangle from two opposite corners,
// in any order.
func RectFromPoints(a, b Point) Rect {
	r := Rect{Min: a, Max: a}
	return r.ExtendWith(b)
}

// ExtendWith grows the rectangle just enough to also cover p.
func (r Rect) ExtendWith(p Point) Rect {
	if p.X < r.Min.X {
		r.Min.X = p.X
	}
	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	}
	if p.X > r.Max.X {
		r.Max.X = p.X
	}
	if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}
	return r
}

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float32) Rect {
	r.Min.X -= m
	r.Min.Y -= m
	r.Max.X += m
	r.Max.Y += m
	return r
}

// Contains reports whether p lies inside the rectangle, borders included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether the two rectangles share any area.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Max.X < o.Min.X || o.Max.X < r.Min.X ||
		r.Max.Y < o.Min.Y || o.Max.Y < r.Min.Y)
}

func (r Rect) Width() float32  { return r.Max.X - r.Min.X }
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }
