package session

import (
	"log"

	"github.com/atotto/clipboard"

	"github.com/Lulu110106/projet-Rpaint/internal/board"
	"github.com/Lulu110106/projet-Rpaint/internal/wire"
)

// exportClipboard mirrors copied strokes onto the system clipboard as
// snapshot JSON. Best effort: headless hosts have no clipboard, and the
// in-session clipboard works without one.
func exportClipboard(strokes []board.Stroke) {
	data, err := wire.MarshalStrokes(strokes)
	if err != nil {
		log.Printf("[session] clipboard marshal: %v", err)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		log.Printf("[session] clipboard write: %v", err)
	}
}

// importClipboard pulls strokes back off the system clipboard, when it
// holds our snapshot JSON.
func importClipboard() []board.Stroke {
	text, err := clipboard.ReadAll()
	if err != nil || text == "" {
		return nil
	}
	strokes, err := wire.UnmarshalStrokes([]byte(text))
	if err != nil {
		return nil
	}
	return strokes
}
