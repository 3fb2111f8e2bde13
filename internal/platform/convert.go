package platform

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/dshills/richedit/internal/font"
	"github.com/dshills/richedit/internal/richtext"
)

// Export converts doc into platform rich text, one span per run.
func Export(doc *richtext.Text) RichText {
	s := doc.String()
	rt := RichText{Text: s}
	units := utf16Offsets(s)
	for _, run := range doc.Runs() {
		start, end, _ := doc.ByteRange(run.Range)
		rt.Spans = append(rt.Spans, Span{
			Location:   units[start],
			Length:     units[end] - units[start],
			Attributes: dictionary(run.Attrs),
		})
	}
	return rt
}

func dictionary(a richtext.Attributes) Dictionary {
	d := Dictionary{}
	switch {
	case !a.Font.IsZero():
		d[KeyFont] = font.ToNative(a.Font)
	case a.Native != nil:
		d[KeyFont] = *a.Native
	}
	if a.Foreground.IsSet() {
		d[KeyForegroundColor] = a.Foreground
	}
	if a.Background.IsSet() {
		d[KeyBackgroundColor] = a.Background
	}
	if a.Underline != richtext.LineNone {
		d[KeyUnderline] = int(a.Underline)
	}
	if a.Strikethrough != richtext.LineNone {
		d[KeyStrikethrough] = int(a.Strikethrough)
	}
	if a.Kern != nil {
		d[KeyKern] = *a.Kern
	}
	if a.Tracking != nil {
		d[KeyTracking] = *a.Tracking
	}
	if a.BaselineOffset != nil {
		d[KeyBaselineOffset] = *a.BaselineOffset
	}
	return d
}

// ImportOption configures Import.
type ImportOption func(*importer)

// WithLogger sets the logger used to report opaque fonts.
func WithLogger(l *slog.Logger) ImportOption {
	return func(im *importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// WithStyleTable sets the table used to map system font names back to
// text styles. Imports default to the standard table.
func WithStyleTable(t *font.StyleTable) ImportOption {
	return func(im *importer) {
		if t != nil {
			im.table = t
		}
	}
}

type importer struct {
	logger *slog.Logger
	table  *font.StyleTable
}

// Import converts platform rich text back into a document. Spans must be
// sorted and non-overlapping; uncovered text gets empty attributes. Fonts
// that cannot be turned into descriptors are kept as Attributes.Native.
func Import(rt RichText, opts ...ImportOption) (*richtext.Text, error) {
	im := &importer{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		table:  font.DefaultStyleTable(),
	}
	for _, opt := range opts {
		opt(im)
	}

	units := utf16Offsets(rt.Text)
	total := units[len(rt.Text)]
	toByte := byteOffsets(rt.Text, total)

	spans := slices.Clone(rt.Spans)
	slices.SortStableFunc(spans, func(a, b Span) int { return cmp.Compare(a.Location, b.Location) })

	var b richtext.Builder
	pos := 0
	for i, sp := range spans {
		if sp.Length < 0 || sp.Location < pos || sp.Location > total || sp.Length > total-sp.Location {
			return nil, fmt.Errorf("%w: span %d {%d %d} in text of %d units", ErrMalformed, i, sp.Location, sp.Length, total)
		}
		attrs, err := im.attributes(sp.Attributes)
		if err != nil {
			return nil, fmt.Errorf("span %d: %w", i, err)
		}
		start, end := toByte[sp.Location], toByte[sp.Location+sp.Length]
		if start < 0 || end < 0 {
			return nil, fmt.Errorf("%w: span %d splits a surrogate pair", ErrMalformed, i)
		}
		b.WriteString(rt.Text[b.Len():start], richtext.Attributes{})
		b.WriteString(rt.Text[start:end], attrs)
		pos = sp.Location + sp.Length
	}
	b.WriteString(rt.Text[b.Len():], richtext.Attributes{})
	return b.Text(), nil
}

func (im *importer) attributes(d Dictionary) (richtext.Attributes, error) {
	var a richtext.Attributes
	for key, v := range d {
		switch key {
		case KeyFont:
			n, ok := v.(font.NativeFont)
			if !ok {
				return a, typeError(key, v)
			}
			desc, err := im.table.FromNative(n)
			if err != nil {
				im.logger.Warn("keeping opaque font", "family", n.Family, "error", err)
				a.Native = &n
				continue
			}
			a.Font = desc
		case KeyForegroundColor, KeyBackgroundColor:
			c, ok := v.(richtext.Color)
			if !ok {
				return a, typeError(key, v)
			}
			if key == KeyForegroundColor {
				a.Foreground = c
			} else {
				a.Background = c
			}
		case KeyUnderline, KeyStrikethrough:
			n, ok := v.(int)
			style := richtext.LineStyle(n)
			if !ok || n < 0 || n > 0xff || !style.Valid() {
				return a, typeError(key, v)
			}
			if key == KeyUnderline {
				a.Underline = style
			} else {
				a.Strikethrough = style
			}
		case KeyKern, KeyTracking, KeyBaselineOffset:
			f, ok := v.(float64)
			if !ok {
				return a, typeError(key, v)
			}
			switch key {
			case KeyKern:
				a.Kern = richtext.Float(f)
			case KeyTracking:
				a.Tracking = richtext.Float(f)
			default:
				a.BaselineOffset = richtext.Float(f)
			}
		default:
			im.logger.Debug("ignoring unknown attribute", "key", string(key))
		}
	}
	return a, nil
}

func typeError(key Key, v any) error {
	return fmt.Errorf("%w: %s has unexpected value %v (%T)", ErrMalformed, key, v, v)
}

// utf16Offsets maps every byte offset of s (including len(s)) to the
// number of UTF-16 code units before it.
func utf16Offsets(s string) []int {
	out := make([]int, len(s)+1)
	units := 0
	for i, r := range s {
		n := utf16RuneLen(r)
		if n < 0 {
			n = 1
		}
		size := utf8.RuneLen(r)
		if r == utf8.RuneError {
			_, size = utf8.DecodeRuneInString(s[i:])
		}
		for k := 0; k < size; k++ {
			out[i+k] = units
		}
		units += n
	}
	out[len(s)] = units
	return out
}

// byteOffsets maps UTF-16 offsets 0..total to byte offsets; offsets in the
// middle of a surrogate pair map to -1.
func byteOffsets(s string, total int) []int {
	out := make([]int, total+1)
	for i := range out {
		out[i] = -1
	}
	units := 0
	for i, r := range s {
		out[units] = i
		n := utf16RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
	}
	out[total] = len(s)
	return out
}
