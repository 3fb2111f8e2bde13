// Package history provides undo/redo for document edits.
//
// Styled-text documents are treated as values: every edit produces a new
// document. History therefore records snapshots rather than inverse
// operations. A Change holds the document and selection before and after
// an edit; Undo hands back the "before" snapshot and Redo the "after".
//
// Changes pushed between BeginGroup and EndGroup collapse into one undo
// unit that spans from the first change's before state to the last
// change's after state.
//
// History is safe for concurrent use.
package history
