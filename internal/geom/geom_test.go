package geom

import "testing"

func TestDistToSegment(t *testing.T) {
	a := Point{0, 0}
	b := Point{10, 0}

	if d := DistToSegment(Point{5, 3}, a, b); d != 3 {
		t.Errorf("perpendicular distance = %v, want 3", d)
	}
	if d := DistToSegment(Point{15, 0}, a, b); d != 5 {
		t.Errorf("clamped distance past the end = %v, want 5", d)
	}
	if d := DistToSegment(Point{-4, 0}, a, b); d != 4 {
		t.Errorf("clamped distance before the start = %v, want 4", d)
	}
	if d := DistToSegment(Point{0, 0}, a, b); d != 0 {
		t.Errorf("distance on the segment = %v, want 0", d)
	}
}

func TestDistToSegmentDegenerate(t *testing.T) {
	// Zero-length segment falls back to plain point distance.
	a := Point{2, 2}
	if d := DistToSegment(Point{2, 7}, a, a); d != 5 {
		t.Errorf("distance to zero-length segment = %v, want 5", d)
	}
}

func TestRectFromPoints(t *testing.T) {
	r := RectFromPoints(Point{10, 2}, Point{3, 8})
	want := Rect{Min: Point{3, 2}, Max: Point{10, 8}}
	if r != want {
		t.Fatalf("RectFromPoints normalized to %+v, want %+v", r, want)
	}
	if r.Width() != 7 || r.Height() != 6 {
		t.Errorf("size = %vx%v, want 7x6", r.Width(), r.Height())
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromPoints(Point{0, 0}, Point{10, 10})
	for _, p := range []Point{{5, 5}, {0, 0}, {10, 10}, {0, 10}} {
		if !r.Contains(p) {
			t.Errorf("Contains(%+v) = false, want true", p)
		}
	}
	for _, p := range []Point{{-1, 5}, {5, 11}, {10.5, 10}} {
		if r.Contains(p) {
			t.Errorf("Contains(%+v) = true, want false", p)
		}
	}
}

func TestRectExpandAndOverlaps(t *testing.T) {
	r := RectFromPoints(Point{4, 4}, Point{6, 6}).Expand(2)
	want := Rect{Min: Point{2, 2}, Max: Point{8, 8}}
	if r != want {
		t.Fatalf("Expand(2) = %+v, want %+v", r, want)
	}

	other := RectFromPoints(Point{7, 7}, Point{12, 12})
	if !r.Overlaps(other) {
		t.Errorf("expected %+v to overlap %+v", r, other)
	}
	far := RectFromPoints(Point{20, 20}, Point{30, 30})
	if r.Overlaps(far) {
		t.Errorf("expected %+v not to overlap %+v", r, far)
	}
}
