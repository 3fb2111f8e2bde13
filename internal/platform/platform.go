// Package platform converts styled text to and from a platform rich-text
// representation: a string plus attribute dictionaries keyed by span.
//
// Span locations and lengths count UTF-16 code units, as native attributed
// strings do. Fonts cross the boundary as font.NativeFont values; fonts
// that cannot be converted back into descriptors are kept opaque.
package platform

import "github.com/dshills/richedit/internal/font"

// Key is an attribute dictionary key.
type Key string

// Attribute keys.
const (
	KeyFont            Key = "NSFont"
	KeyForegroundColor Key = "NSColor"
	KeyBackgroundColor Key = "NSBackgroundColor"
	KeyUnderline       Key = "NSUnderline"
	KeyStrikethrough   Key = "NSStrikethrough"
	KeyKern            Key = "NSKern"
	KeyTracking        Key = "NSTracking"
	KeyBaselineOffset  Key = "NSBaselineOffset"
)

// Keys lists every key in serialization order.
var Keys = []Key{
	KeyFont,
	KeyForegroundColor,
	KeyBackgroundColor,
	KeyUnderline,
	KeyStrikethrough,
	KeyKern,
	KeyTracking,
	KeyBaselineOffset,
}

// Dictionary holds the attributes of one span. Values are
// font.NativeFont for KeyFont, richtext.Color for the color keys, int for
// the line style keys and float64 for the rest.
type Dictionary map[Key]any

// Span is a run of the platform string.
type Span struct {
	Location   int
	Length     int
	Attributes Dictionary
}

// RichText is a platform attributed string.
type RichText struct {
	Text  string
	Spans []Span
}

// Symbolic trait bits as platform font descriptors report them.
const (
	symbolicItalic = 1 << 0
	symbolicBold   = 1 << 1
)

func symbolicTraits(t font.Traits) int {
	v := 0
	if t.Has(font.TraitItalic) {
		v |= symbolicItalic
	}
	if t.Has(font.TraitBold) {
		v |= symbolicBold
	}
	return v
}

func traitsFromSymbolic(v int) font.Traits {
	t := font.TraitNone
	if v&symbolicItalic != 0 {
		t = t.With(font.TraitItalic)
	}
	if v&symbolicBold != 0 {
		t = t.With(font.TraitBold)
	}
	return t
}
