package board

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/Lulu110106/projet-Rpaint/internal/geom"
)

// testStroke builds a stroke from (x, y) pairs with a recognizable color.
func testStroke(tag uint8, width float32, coords ...float32) Stroke {
	if len(coords)%2 != 0 {
		panic("testStroke: odd coordinate count")
	}
	points := make([]geom.Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		points = append(points, geom.Point{X: coords[i], Y: coords[i+1]})
	}
	return Stroke{
		Points: points,
		Color:  color.NRGBA{R: tag, A: 255},
		Width:  width,
	}
}

// snapshot deep-copies the store contents for before/after comparison.
func snapshot(st *Store) []Stroke {
	strokes := st.Strokes()
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	return out
}

func seedStore(n int) *Store {
	st := NewStore()
	for i := 0; i < n; i++ {
		x := float32(i * 100)
		st.Append(testStroke(uint8(i+1), 4, x, 0, x+10, 0))
	}
	return st
}

func TestStoreInsertRemoveReplace(t *testing.T) {
	st := NewStore()
	a := testStroke(1, 4, 0, 0, 10, 0)
	b := testStroke(2, 4, 0, 10, 10, 10)
	c := testStroke(3, 4, 0, 20, 10, 20)

	st.Append(a)
	st.Append(c)
	st.InsertAt(1, b)
	if st.Len() != 3 {
		t.Fatalf("Len = %d, want 3", st.Len())
	}
	got, ok := st.StrokeAt(1)
	if !ok || !reflect.DeepEqual(got, b) {
		t.Fatalf("StrokeAt(1) = %+v, %v, want the inserted stroke", got, ok)
	}

	st.RemoveAt(0)
	got, _ = st.StrokeAt(0)
	if !reflect.DeepEqual(got, b) {
		t.Fatalf("after RemoveAt(0) the first stroke is %+v, want %+v", got, b)
	}

	d := testStroke(4, 8, 5, 5)
	st.ReplaceAt(1, d)
	got, _ = st.StrokeAt(1)
	if !reflect.DeepEqual(got, d) {
		t.Fatalf("ReplaceAt left %+v, want %+v", got, d)
	}

	// InsertAt at Len is an append.
	st.InsertAt(st.Len(), a)
	got, _ = st.StrokeAt(st.Len() - 1)
	if !reflect.DeepEqual(got, a) {
		t.Fatalf("InsertAt(Len) did not append, tail = %+v", got)
	}
}

func TestStoreOutOfRangeIsNoOp(t *testing.T) {
	st := seedStore(2)
	before := snapshot(st)

	st.RemoveAt(-1)
	st.RemoveAt(2)
	st.ReplaceAt(5, testStroke(9, 1, 0, 0))
	st.TranslateAt(-3, 10, 10)
	st.TranslateAt(7, 10, 10)
	st.InsertAt(-1, testStroke(9, 1, 0, 0))
	st.InsertAt(3, testStroke(9, 1, 0, 0))

	if !reflect.DeepEqual(snapshot(st), before) {
		t.Fatalf("out-of-range operations changed the store: %+v", st.Strokes())
	}
	if _, ok := st.StrokeAt(2); ok {
		t.Error("StrokeAt(2) reported ok on a 2-stroke store")
	}
	if _, ok := st.BoundingRect(2); ok {
		t.Error("BoundingRect(2) reported ok on a 2-stroke store")
	}
}

func TestStoreTranslateAt(t *testing.T) {
	st := seedStore(1)
	st.TranslateAt(0, 3, -2)
	got, _ := st.StrokeAt(0)
	want := []geom.Point{{X: 3, Y: -2}, {X: 13, Y: -2}}
	if !reflect.DeepEqual(got.Points, want) {
		t.Fatalf("points after translate = %+v, want %+v", got.Points, want)
	}
}

func TestStoreBoundingRect(t *testing.T) {
	st := NewStore()
	st.Append(testStroke(1, 4, 0, 0, 10, 4))

	r, ok := st.BoundingRect(0)
	if !ok {
		t.Fatal("BoundingRect(0) not ok")
	}
	// Half the width plus the fixed 5px margin on every side.
	want := geom.Rect{Min: geom.Point{X: -7, Y: -7}, Max: geom.Point{X: 17, Y: 11}}
	if r != want {
		t.Fatalf("BoundingRect = %+v, want %+v", r, want)
	}
}

func TestStoreClearAndReplaceAll(t *testing.T) {
	st := seedStore(3)
	st.Clear()
	if st.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", st.Len())
	}

	strokes := []Stroke{testStroke(1, 4, 0, 0, 1, 1), testStroke(2, 4, 2, 2, 3, 3)}
	st.ReplaceAll(strokes)
	if !reflect.DeepEqual(st.Strokes(), strokes) {
		t.Fatalf("ReplaceAll left %+v, want %+v", st.Strokes(), strokes)
	}
}
