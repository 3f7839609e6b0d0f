package wire

import (
	"encoding/json"

	"github.com/Lulu110106/projet-Rpaint/internal/board"
	"github.com/Lulu110106/projet-Rpaint/internal/geom"
)

// snapshotStroke is the JSON shape shared by Sync payloads, board files and
// the clipboard bridge: points as [x,y] pairs, the packed color, the width.
type snapshotStroke struct {
	Points [][2]float32 `json:"points"`
	Color  uint32       `json:"color"`
	Width  float32      `json:"width"`
}

// MarshalStrokes renders strokes as a compact snapshot document.
func MarshalStrokes(strokes []board.Stroke) ([]byte, error) {
	return json.Marshal(toSnapshot(strokes))
}

// MarshalStrokesIndent is MarshalStrokes for files people might read.
func MarshalStrokesIndent(strokes []board.Stroke) ([]byte, error) {
	return json.MarshalIndent(toSnapshot(strokes), "", "  ")
}

// UnmarshalStrokes parses a snapshot document back into strokes.
func UnmarshalStrokes(data []byte) ([]board.Stroke, error) {
	var snap []snapshotStroke
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	strokes := make([]board.Stroke, 0, len(snap))
	for _, ss := range snap {
		points := make([]geom.Point, len(ss.Points))
		for i, p := range ss.Points {
			points[i] = geom.Point{X: p[0], Y: p[1]}
		}
		strokes = append(strokes, board.Stroke{
			Points: points,
			Color:  UnpackColor(ss.Color),
			Width:  ss.Width,
		})
	}
	return strokes, nil
}

func toSnapshot(strokes []board.Stroke) []snapshotStroke {
	snap := make([]snapshotStroke, 0, len(strokes))
	for _, s := range strokes {
		points := make([][2]float32, len(s.Points))
		for i, p := range s.Points {
			points[i] = [2]float32{p.X, p.Y}
		}
		snap = append(snap, snapshotStroke{
			Points: points,
			Color:  PackColor(s.Color),
			Width:  s.Width,
		})
	}
	return snap
}
