// Package wire defines what peers exchange: a small tagged message set, a
// checksummed binary frame around it, and the JSON snapshot document used for
// full-board transfers, board files and the clipboard.
package wire

import (
	"image/color"

	"github.com/Lulu110106/projet-Rpaint/internal/board"
	"github.com/Lulu110106/projet-Rpaint/internal/geom"
)

// Message is the closed set of payloads peers broadcast. Colors travel
// packed (see PackColor); coordinates and widths travel as float32.
type Message interface {
	tag() byte
}

// DrawLine announces one finished stroke.
type DrawLine struct {
	Points []geom.Point
	Color  uint32
	Width  float32
}

// Delete removes the strokes at the given positions of the receiver's board.
type Delete struct {
	Indices []int
}

// Modify patches color and width of the strokes at the given positions. The
// three slices are parallel.
type Modify struct {
	Indices []int
	Colors  []uint32
	Widths  []float32
}

// Move translates the strokes at the given positions by a fixed offset.
type Move struct {
	Indices []int
	DeltaX  float32
	DeltaY  float32
}

// Clear empties the whole board.
type Clear struct{}

// Sync carries a full board snapshot as a JSON document (see MarshalStrokes).
type Sync struct {
	LinesData string
}

const (
	tagDrawLine byte = iota + 1
	tagDelete
	tagModify
	tagMove
	tagClear
	tagSync
)

func (DrawLine) tag() byte { return tagDrawLine }
func (Delete) tag() byte   { return tagDelete }
func (Modify) tag() byte   { return tagModify }
func (Move) tag() byte     { return tagMove }
func (Clear) tag() byte    { return tagClear }
func (Sync) tag() byte     { return tagSync }

// PackColor packs a color into the protocol's single value, channel order
// alpha-red-green-blue with alpha in the highest byte.
func PackColor(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// UnpackColor is the inverse of PackColor.
func UnpackColor(v uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

// MessagesFor maps a committed action to the messages that tell peers about
// it. A Create becomes one DrawLine per stroke; the other actions map one to
// one. Note the Modify message carries only color and width patches, which
// is all the protocol can say about a content change.
func MessagesFor(a board.Action) []Message {
	switch a := a.(type) {
	case board.Create:
		msgs := make([]Message, 0, len(a.Strokes))
		for _, s := range a.Strokes {
			msgs = append(msgs, DrawLine{
				Points: s.Points,
				Color:  PackColor(s.Color),
				Width:  s.Width,
			})
		}
		return msgs
	case board.Delete:
		return []Message{Delete{Indices: a.Indices}}
	case board.Modify:
		colors := make([]uint32, len(a.After))
		widths := make([]float32, len(a.After))
		for i, s := range a.After {
			colors[i] = PackColor(s.Color)
			widths[i] = s.Width
		}
		return []Message{Modify{Indices: a.Indices, Colors: colors, Widths: widths}}
	case board.Move:
		return []Message{Move{Indices: a.Indices, DeltaX: a.DX, DeltaY: a.DY}}
	}
	return nil
}
