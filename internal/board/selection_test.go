package board

import (
	"reflect"
	"testing"

	"github.com/Lulu110106/projet-Rpaint/internal/geom"
)

func TestHitStroke(t *testing.T) {
	st := NewStore()
	st.Append(testStroke(1, 4, 0, 0, 10, 0))

	if i, ok := st.HitStroke(geom.Point{X: 5, Y: 3}, 10); !ok || i != 0 {
		t.Errorf("query 3px off the path: got (%d, %v), want (0, true)", i, ok)
	}
	// The threshold is strict: exactly on it is a miss.
	if _, ok := st.HitStroke(geom.Point{X: 5, Y: 10}, 10); ok {
		t.Error("query exactly at the threshold distance should miss")
	}
	if _, ok := st.HitStroke(geom.Point{X: 5, Y: 30}, 10); ok {
		t.Error("query far from the path should miss")
	}
	// Past the endpoint the distance is to the endpoint itself.
	if _, ok := st.HitStroke(geom.Point{X: 15, Y: 0}, 4); ok {
		t.Error("query 5px past the end should miss a 4px threshold")
	}
	if i, ok := st.HitStroke(geom.Point{X: 15, Y: 0}, 6); !ok || i != 0 {
		t.Errorf("query 5px past the end with a 6px threshold: got (%d, %v), want (0, true)", i, ok)
	}
}

func TestHitStrokeSinglePoint(t *testing.T) {
	st := NewStore()
	st.Append(testStroke(1, 4, 5, 5))

	if i, ok := st.HitStroke(geom.Point{X: 5, Y: 8}, 4); !ok || i != 0 {
		t.Errorf("single-point stroke: got (%d, %v), want (0, true)", i, ok)
	}
	if _, ok := st.HitStroke(geom.Point{X: 5, Y: 10}, 4); ok {
		t.Error("single-point stroke hit past the threshold")
	}
}

func TestHitStrokeFirstMatchWins(t *testing.T) {
	st := NewStore()
	st.Append(testStroke(1, 4, 0, 0, 10, 0))
	st.Append(testStroke(2, 4, 0, 1, 10, 1))

	if i, ok := st.HitStroke(geom.Point{X: 5, Y: 0}, 10); !ok || i != 0 {
		t.Errorf("overlapping strokes: got (%d, %v), want the earlier index 0", i, ok)
	}
}

func TestStrokesInRect(t *testing.T) {
	st := NewStore()
	st.Append(testStroke(1, 4, 1, 1, 2, 2))     // inside
	st.Append(testStroke(2, 4, 50, 50, 60, 60)) // outside
	st.Append(testStroke(3, 4, 40, 40, 5, 5))   // one endpoint inside

	r := geom.RectFromPoints(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 10})
	got := st.StrokesInRect(r)
	if !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("StrokesInRect = %v, want [0 2]", got)
	}

	empty := geom.RectFromPoints(geom.Point{X: 100, Y: 100}, geom.Point{X: 110, Y: 110})
	if got := st.StrokesInRect(empty); len(got) != 0 {
		t.Fatalf("StrokesInRect over empty area = %v, want none", got)
	}
}

func TestSelectionSetClearContains(t *testing.T) {
	var sel Selection
	if !sel.IsEmpty() {
		t.Fatal("zero-value selection is not empty")
	}

	sel.Set([]int{3, 1})
	if sel.Len() != 2 || !sel.Contains(3) || !sel.Contains(1) || sel.Contains(2) {
		t.Fatalf("selection after Set = %v", sel.Indices())
	}

	// Set replaces rather than adds.
	sel.Set([]int{2})
	if !reflect.DeepEqual(sel.Indices(), []int{2}) {
		t.Fatalf("Set did not replace: %v", sel.Indices())
	}

	sel.Clear()
	if !sel.IsEmpty() {
		t.Fatal("selection not empty after Clear")
	}
}
