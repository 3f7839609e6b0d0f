package session

// Tool selects how pointer input is interpreted.
type Tool int

const (
	ToolBrush Tool = iota
	ToolLine
	ToolEraser
	ToolSelect
)

func (t Tool) String() string {
	switch t {
	case ToolLine:
		return "line"
	case ToolEraser:
		return "eraser"
	case ToolSelect:
		return "select"
	}
	return "brush"
}

// Chord is a keyboard shortcut already resolved by the input layer.
type Chord int

const (
	ChordUndo Chord = iota
	ChordRedo
	ChordCopy
	ChordPaste
	ChordDelete
)

const (
	// selectThreshold is how close a click must land to a stroke for the
	// select tool to pick it.
	selectThreshold = 10

	// pasteOffset shifts pasted strokes so they never land exactly on
	// their source.
	pasteOffset = 20
)
