package session

import (
	"fmt"
	"log"
	"os"

	"github.com/Lulu110106/projet-Rpaint/internal/wire"
)

// SaveBoard writes the current board to path as indented snapshot JSON.
func (s *Session) SaveBoard(path string) error {
	data, err := wire.MarshalStrokesIndent(s.store.Strokes())
	if err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	log.Printf("[session] saved %d strokes to %s", s.store.Len(), path)
	return nil
}

// LoadBoard replaces the board with a saved snapshot. Like a remote Sync,
// loading is not undoable.
func (s *Session) LoadBoard(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	strokes, err := wire.UnmarshalStrokes(data)
	if err != nil {
		return fmt.Errorf("load board %s: %w", path, err)
	}
	s.store.ReplaceAll(strokes)
	log.Printf("[session] loaded %d strokes from %s", len(strokes), path)
	return nil
}
