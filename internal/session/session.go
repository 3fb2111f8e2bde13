// Package session ties a document, its selection, an undo history and the
// toggle engine together into the command surface a UI drives.
//
// Every command returns the resulting document; nothing is reported
// through callbacks.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/richedit/internal/history"
	"github.com/dshills/richedit/internal/richtext"
	"github.com/dshills/richedit/internal/toggle"
)

// Session is one editing session over a document.
type Session struct {
	mu sync.Mutex

	id      uuid.UUID
	doc     *richtext.Text
	sel     richtext.Range
	history *history.History
	engine  *toggle.Engine
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithEngine sets the toggle engine.
func WithEngine(e *toggle.Engine) Option {
	return func(s *Session) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithHistory sets the undo history.
func WithHistory(h *history.History) Option {
	return func(s *Session) {
		if h != nil {
			s.history = h
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New starts a session over doc with a caret at offset 0. The session
// takes ownership of doc.
func New(doc *richtext.Text, opts ...Option) *Session {
	s := &Session{
		id:     uuid.New(),
		doc:    doc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = history.New(history.DefaultMaxEntries)
	}
	if s.engine == nil {
		s.engine = toggle.New(toggle.WithLogger(s.logger))
	}
	s.logger = s.logger.With("session", s.id.String())
	return s
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Document returns the current document.
func (s *Session) Document() *richtext.Text {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Selection returns the current selection.
func (s *Session) Selection() richtext.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// History returns the undo history.
func (s *Session) History() *history.History {
	return s.history
}

// Select sets the selection after checking it against the document.
func (s *Session) Select(r richtext.Range) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.doc.CheckRange(r); err != nil {
		return err
	}
	s.sel = r
	return nil
}

// Toggle toggles axis over the selection and records the change.
func (s *Session) Toggle(axis toggle.Axis) (*richtext.Text, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.engine.Toggle(s.doc, s.sel, axis)
	if err != nil {
		return nil, err
	}
	if next.Equal(s.doc) {
		return s.doc, nil
	}
	s.commit("toggle "+axis.String(), next, s.sel)
	return next, nil
}

// ToggleBold toggles bold over the selection.
func (s *Session) ToggleBold() (*richtext.Text, error) { return s.Toggle(toggle.AxisBold) }

// ToggleItalic toggles italic over the selection.
func (s *Session) ToggleItalic() (*richtext.Text, error) { return s.Toggle(toggle.AxisItalic) }

// ToggleUnderline toggles underline over the selection.
func (s *Session) ToggleUnderline() (*richtext.Text, error) { return s.Toggle(toggle.AxisUnderline) }

// ToggleStrikethrough toggles strikethrough over the selection.
func (s *Session) ToggleStrikethrough() (*richtext.Text, error) {
	return s.Toggle(toggle.AxisStrikethrough)
}

// ToggleSubscript toggles subscript over the selection.
func (s *Session) ToggleSubscript() (*richtext.Text, error) { return s.Toggle(toggle.AxisSubscript) }

// ToggleSuperscript toggles superscript over the selection.
func (s *Session) ToggleSuperscript() (*richtext.Text, error) {
	return s.Toggle(toggle.AxisSuperscript)
}

// State reports the axis state over the selection.
func (s *Session) State(axis toggle.Axis) (toggle.AxisState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State(s.doc, s.sel, axis)
}

// Replace replaces the selected text with text. The selection becomes a
// caret after the inserted text.
func (s *Session) Replace(text string) (*richtext.Text, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	if err := next.Replace(s.sel, text); err != nil {
		return nil, err
	}
	inserted := richtext.New(text, richtext.Attributes{}).Len()
	caret := min(s.sel.Start+inserted, next.Len())
	s.commit(fmt.Sprintf("replace %s", s.sel), next, richtext.NewRange(caret, caret))
	return next, nil
}

// Undo restores the state before the last change.
func (s *Session) Undo() (*richtext.Text, error) {
	snap, err := s.history.Undo()
	if err != nil {
		return nil, err
	}
	return s.restore(snap), nil
}

// Redo re-applies the last undone change.
func (s *Session) Redo() (*richtext.Text, error) {
	snap, err := s.history.Redo()
	if err != nil {
		return nil, err
	}
	return s.restore(snap), nil
}

func (s *Session) restore(snap history.Snapshot) *richtext.Text {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = snap.Doc
	s.sel = snap.Selection
	return s.doc
}

// commit records the change from the current state to next. The caller
// holds the lock.
func (s *Session) commit(desc string, next *richtext.Text, sel richtext.Range) {
	s.history.Push(history.Change{
		Description: desc,
		Before:      history.Snapshot{Doc: s.doc, Selection: s.sel},
		After:       history.Snapshot{Doc: next, Selection: sel},
	})
	s.doc = next
	s.sel = sel
	s.logger.Debug("document changed", "change", desc, "runs", next.RunCount())
}
