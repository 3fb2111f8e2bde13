// Package render draws styled text onto a terminal screen.
//
// Terminals cannot vary glyph size or baseline, so fonts map to cell
// attributes: bold and italic traits become bold and italic cells and
// sub/superscript text is drawn dim. Decorations and colors map directly.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/richedit/internal/font"
	"github.com/dshills/richedit/internal/richtext"
)

// Area is the screen rectangle text is drawn into.
type Area struct {
	X, Y          int
	Width, Height int
}

// Renderer draws documents with an optional highlighted selection.
type Renderer struct {
	highlight richtext.Color
	amount    float64
	base      tcell.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighlight sets the selection highlight color and how strongly it is
// blended into the text background.
func WithHighlight(c richtext.Color, amount float64) Option {
	return func(r *Renderer) {
		r.highlight = c
		r.amount = amount
	}
}

// WithBaseStyle sets the style of cells without attributes.
func WithBaseStyle(s tcell.Style) Option {
	return func(r *Renderer) {
		r.base = s
	}
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		highlight: richtext.RGB(60, 90, 160),
		amount:    1,
		base:      tcell.StyleDefault,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Draw renders doc into area without a selection and returns the number
// of lines used.
func Draw(screen tcell.Screen, doc *richtext.Text, area Area) int {
	return New().Draw(screen, doc, area, richtext.Range{})
}

// StyleFor converts run attributes to a cell style.
func StyleFor(a richtext.Attributes) tcell.Style {
	return styleFor(tcell.StyleDefault, a)
}

func styleFor(style tcell.Style, a richtext.Attributes) tcell.Style {
	if a.Foreground.IsSet() {
		style = style.Foreground(tcellColor(a.Foreground))
	}
	if a.Background.IsSet() {
		style = style.Background(tcellColor(a.Background))
	}

	d, err := a.ResolvedFont(font.Descriptor{})
	if err == nil && !d.IsZero() {
		if d.IsBold() || d.EffectiveWeight() >= font.WeightSemibold {
			style = style.Bold(true)
		}
		if d.IsItalic() {
			style = style.Italic(true)
		}
	}

	switch a.Underline {
	case richtext.LineNone:
	case richtext.LineDouble:
		style = style.Underline(tcell.UnderlineStyleDouble)
	default:
		style = style.Underline(true)
	}
	if a.Strikethrough != richtext.LineNone {
		style = style.StrikeThrough(true)
	}
	if a.BaselineOffset != nil && *a.BaselineOffset != 0 {
		style = style.Dim(true)
	}
	return style
}

func tcellColor(c richtext.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw renders doc into area, highlighting sel, and returns the number
// of lines used. Text wraps at the area width; lines past the area height
// are not drawn but still counted.
func (r *Renderer) Draw(screen tcell.Screen, doc *richtext.Text, area Area, sel richtext.Range) int {
	if area.Width <= 0 {
		return 0
	}
	runs := doc.Runs()
	run := 0
	x, line := 0, 0

	g := uniseg.NewGraphemes(doc.String())
	for idx := 0; g.Next(); idx++ {
		for run < len(runs)-1 && runs[run].Range.End <= idx {
			run++
		}
		cluster := g.Str()
		if cluster == "\n" || cluster == "\r\n" {
			x = 0
			line++
			continue
		}
		width := g.Width()
		if width == 0 {
			continue
		}
		if x+width > area.Width && x > 0 {
			x = 0
			line++
		}

		attrs := runs[run].Attrs
		if sel.Contains(idx) {
			attrs = r.highlighted(attrs)
		}
		if line < area.Height {
			rs := []rune(cluster)
			screen.SetContent(area.X+x, area.Y+line, rs[0], rs[1:], styleFor(r.base, attrs))
		}
		x += width
	}
	return line + 1
}

func (r *Renderer) highlighted(a richtext.Attributes) richtext.Attributes {
	bg := a.Background
	if !bg.IsSet() {
		a.Background = r.highlight
		return a
	}
	a.Background = bg.Blend(r.highlight, r.amount)
	return a
}
