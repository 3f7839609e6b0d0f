package board

import "sort"

// Action is one reversible edit to the Store. An action is built once, when
// an interaction completes, and is immutable afterwards; the history applies
// it, inverts it for undo, and hands it to the caller for broadcast. The set
// of actions is closed: Create, Delete, Modify and Move.
type Action interface {
	// Apply performs the edit against the store.
	Apply(st *Store)
	// Invert returns the action that exactly reverses this one.
	Invert() Action
}

// Create inserts strokes at the recorded positions. Recording the exact
// positions, not just a count, keeps the inverse correct even when a remote
// append lands between the create and its undo.
type Create struct {
	Indices []int
	Strokes []Stroke
}

// Delete removes the strokes at the given positions. Strokes caches their
// pre-removal content so the inverse can restore them.
type Delete struct {
	Indices []int
	Strokes []Stroke
}

// Modify replaces stroke content in place; the stroke count is unchanged.
type Modify struct {
	Indices []int
	Before  []Stroke
	After   []Stroke
}

// Move translates every point of the referenced strokes by a fixed offset.
type Move struct {
	Indices []int
	DX, DY  float32
}

// Apply inserts ascending so earlier insertions don't shift later targets.
func (a Create) Apply(st *Store) {
	for _, p := range sortedPairs(a.Indices, a.Strokes) {
		st.InsertAt(p.index, p.stroke)
	}
}

func (a Create) Invert() Action {
	return Delete{Indices: a.Indices, Strokes: a.Strokes}
}

// Apply removes descending so earlier removals don't invalidate later
// indices in the same batch.
func (a Delete) Apply(st *Store) {
	pairs := sortedPairs(a.Indices, nil)
	for i := len(pairs) - 1; i >= 0; i-- {
		st.RemoveAt(pairs[i].index)
	}
}

func (a Delete) Invert() Action {
	return Create{Indices: a.Indices, Strokes: a.Strokes}
}

func (a Modify) Apply(st *Store) {
	for i, idx := range a.Indices {
		if i < len(a.After) {
			st.ReplaceAt(idx, a.After[i])
		}
	}
}

func (a Modify) Invert() Action {
	return Modify{Indices: a.Indices, Before: a.After, After: a.Before}
}

func (a Move) Apply(st *Store) {
	for _, idx := range a.Indices {
		st.TranslateAt(idx, a.DX, a.DY)
	}
}

func (a Move) Invert() Action {
	return Move{Indices: a.Indices, DX: -a.DX, DY: -a.DY}
}

type indexedStroke struct {
	index  int
	stroke Stroke
}

// sortedPairs pairs each index with its stroke (when given) and returns the
// pairs ordered by ascending index, leaving the action's own slices alone.
func sortedPairs(indices []int, strokes []Stroke) []indexedStroke {
	pairs := make([]indexedStroke, len(indices))
	for i, idx := range indices {
		pairs[i].index = idx
		if i < len(strokes) {
			pairs[i].stroke = strokes[i]
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].index < pairs[j].index })
	return pairs
}
