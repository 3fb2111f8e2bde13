package history

import (
	"time"

	"github.com/dshills/richedit/internal/richtext"
)

// Snapshot is a document and selection at one point in time.
type Snapshot struct {
	Doc       *richtext.Text
	Selection richtext.Range
}

// Change is one undoable edit.
type Change struct {
	// Description names the edit, e.g. "toggle bold".
	Description string

	Before Snapshot
	After  Snapshot
}

// OperationInfo describes an entry on the undo or redo stack.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}
