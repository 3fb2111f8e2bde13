package toggle

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/dshills/richedit/internal/font"
	"github.com/dshills/richedit/internal/richtext"
)

// Engine applies all-or-nothing style toggles to selections.
//
// A selection that is uniformly on for an axis is turned off; anything
// else, including a mixed selection, is turned fully on. The input
// document is never modified: every call returns a new one.
type Engine struct {
	resolver *font.Resolver
	ctx      *font.DisplayContext
	metrics  ScriptMetrics
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver sets the resolver that supplies the fallback body font.
func WithResolver(r *font.Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.resolver = r
		}
	}
}

// WithDisplayContext sets the display context for fallback fonts.
func WithDisplayContext(ctx *font.DisplayContext) Option {
	return func(e *Engine) {
		e.ctx = ctx
	}
}

// WithScriptMetrics overrides the sub/superscript ratios. Invalid metrics
// are ignored.
func WithScriptMetrics(m ScriptMetrics) Option {
	return func(e *Engine) {
		if m.Validate() == nil {
			e.metrics = m
		}
	}
}

// WithLogger sets the logger used to report font recoveries.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		metrics: DefaultScriptMetrics(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.resolver == nil {
		e.resolver = font.NewResolver(font.WithLogger(e.logger))
	}
	return e
}

// Metrics returns the sub/superscript ratios in use.
func (e *Engine) Metrics() ScriptMetrics {
	return e.metrics
}

// Toggle flips axis over sel and returns the new document. A caret
// selection returns an unchanged copy.
func (e *Engine) Toggle(doc *richtext.Text, sel richtext.Range, axis Axis) (*richtext.Text, error) {
	if !axis.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAxis, axis)
	}
	runs, err := doc.RunsIn(sel)
	if err != nil {
		return nil, err
	}
	out := doc.Clone()
	if len(runs) == 0 {
		return out, nil
	}

	target := !e.allSet(runs, axis)
	fallback := e.resolver.Default(e.ctx)
	err = out.Apply(sel, func(a richtext.Attributes) richtext.Attributes {
		if e.isSet(a, axis) == target {
			return a
		}
		return e.set(a, axis, target, fallback)
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("style toggled", "axis", axis.String(), "range", sel.String(), "on", target, "runs", out.RunCount())
	return out, nil
}

// State reports whether axis is off, on or mixed over sel. A caret or
// empty selection is off.
func (e *Engine) State(doc *richtext.Text, sel richtext.Range, axis Axis) (AxisState, error) {
	if !axis.Valid() {
		return StateOff, fmt.Errorf("%w: %v", ErrUnknownAxis, axis)
	}
	runs, err := doc.RunsIn(sel)
	if err != nil {
		return StateOff, err
	}
	on := 0
	for _, r := range runs {
		if e.isSet(r.Attrs, axis) {
			on++
		}
	}
	switch {
	case on == 0:
		return StateOff, nil
	case on == len(runs):
		return StateOn, nil
	default:
		return StateMixed, nil
	}
}

// ToggleBold toggles bold over sel.
func (e *Engine) ToggleBold(doc *richtext.Text, sel richtext.Range) (*richtext.Text, error) {
	return e.Toggle(doc, sel, AxisBold)
}

// ToggleItalic toggles italic over sel.
func (e *Engine) ToggleItalic(doc *richtext.Text, sel richtext.Range) (*richtext.Text, error) {
	return e.Toggle(doc, sel, AxisItalic)
}

// ToggleUnderline toggles a single underline over sel.
func (e *Engine) ToggleUnderline(doc *richtext.Text, sel richtext.Range) (*richtext.Text, error) {
	return e.Toggle(doc, sel, AxisUnderline)
}

// ToggleStrikethrough toggles a single strikethrough over sel.
func (e *Engine) ToggleStrikethrough(doc *richtext.Text, sel richtext.Range) (*richtext.Text, error) {
	return e.Toggle(doc, sel, AxisStrikethrough)
}

// ToggleSubscript toggles subscript over sel.
func (e *Engine) ToggleSubscript(doc *richtext.Text, sel richtext.Range) (*richtext.Text, error) {
	return e.Toggle(doc, sel, AxisSubscript)
}

// ToggleSuperscript toggles superscript over sel.
func (e *Engine) ToggleSuperscript(doc *richtext.Text, sel richtext.Range) (*richtext.Text, error) {
	return e.Toggle(doc, sel, AxisSuperscript)
}

func (e *Engine) allSet(runs []richtext.Run, axis Axis) bool {
	for _, r := range runs {
		if !e.isSet(r.Attrs, axis) {
			return false
		}
	}
	return len(runs) > 0
}

func (e *Engine) isSet(a richtext.Attributes, axis Axis) bool {
	switch axis {
	case AxisBold:
		d, ok := e.peekFont(a)
		return ok && d.IsBold()
	case AxisItalic:
		d, ok := e.peekFont(a)
		return ok && d.IsItalic()
	case AxisUnderline:
		return a.Underline != richtext.LineNone
	case AxisStrikethrough:
		return a.Strikethrough != richtext.LineNone
	case AxisSubscript:
		return PositionOf(a) == PositionSubscript
	case AxisSuperscript:
		return PositionOf(a) == PositionSuperscript
	}
	return false
}

// peekFont returns the run's font without logging; a missing font reads
// as neither bold nor italic.
func (e *Engine) peekFont(a richtext.Attributes) (font.Descriptor, bool) {
	d, err := a.ResolvedFont(font.Descriptor{})
	if err != nil || d.IsZero() {
		return font.Descriptor{}, false
	}
	return d, true
}

// fontFor returns the run's font, substituting fallback when the run has
// none or carries an unusable foreign font.
func (e *Engine) fontFor(a richtext.Attributes, fallback font.Descriptor) font.Descriptor {
	d, err := a.ResolvedFont(fallback)
	switch {
	case err != nil:
		e.logger.Warn("run font unusable, using default body font", "error", err)
	case a.Font.IsZero() && a.Native == nil:
		e.logger.Warn("run has no font, using default body font", "font", fallback.String())
	}
	return d
}

func (e *Engine) set(a richtext.Attributes, axis Axis, on bool, fallback font.Descriptor) richtext.Attributes {
	switch axis {
	case AxisBold:
		a.Font = e.fontFor(a, fallback).WithBold(on)
		a.Native = nil
	case AxisItalic:
		a.Font = e.fontFor(a, fallback).WithItalic(on)
		a.Native = nil
	case AxisUnderline:
		a.Underline = lineStyle(on)
	case AxisStrikethrough:
		a.Strikethrough = lineStyle(on)
	case AxisSubscript, AxisSuperscript:
		want := PositionSubscript
		if axis == AxisSuperscript {
			want = PositionSuperscript
		}
		if PositionOf(a) != PositionNormal {
			a = e.leaveScript(a, fallback)
		}
		if on {
			a = e.enterScript(a, want, fallback)
		}
	}
	return a
}

// enterScript shrinks the font and shifts the baseline. The run must be
// at the normal position.
func (e *Engine) enterScript(a richtext.Attributes, p Position, fallback font.Descriptor) richtext.Attributes {
	d := e.fontFor(a, fallback)
	ratio := e.metrics.SuperscriptOffset
	if p == PositionSubscript {
		ratio = e.metrics.SubscriptOffset
	}
	a.BaselineOffset = richtext.Float(round4(ratio * d.Size()))
	a.Font = d.WithSize(d.Size() * e.metrics.Scale)
	a.Native = nil
	return a
}

// leaveScript restores the font size and clears the baseline offset. The
// shrunk size is kept at full precision, so dividing it back lands within
// float noise of the original; that noise is snapped away when the
// original sat on the resolver's size grid.
func (e *Engine) leaveScript(a richtext.Attributes, fallback font.Descriptor) richtext.Attributes {
	d := e.fontFor(a, fallback)
	a.Font = d.WithSize(restoreSize(d.Size(), e.metrics.Scale))
	a.Native = nil
	a.BaselineOffset = nil
	return a
}

func restoreSize(size, scale float64) float64 {
	restored := size / scale
	if snapped := font.RoundSize(restored); math.Abs(snapped-restored) < 1e-9 {
		return snapped
	}
	return restored
}

func lineStyle(on bool) richtext.LineStyle {
	if on {
		return richtext.LineSingle
	}
	return richtext.LineNone
}
