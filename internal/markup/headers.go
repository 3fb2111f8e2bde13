package markup

import (
	"fmt"

	"github.com/dshills/richedit/internal/font"
)

// MaxHeadingLevel is the deepest heading level markdown supports.
const MaxHeadingLevel = 6

// Headers maps heading levels to font specs. Index 0 is the body font used
// for paragraphs and list items; indexes 1 to 6 are heading levels.
type Headers [MaxHeadingLevel + 1]font.Spec

// DefaultHeaders returns body, largeTitle, title, title2, title3,
// headline and subheadline for levels 0 to 6.
func DefaultHeaders() Headers {
	return Headers{
		font.System(font.StyleBody),
		font.System(font.StyleLargeTitle),
		font.System(font.StyleTitle),
		font.System(font.StyleTitle2),
		font.System(font.StyleTitle3),
		font.System(font.StyleHeadline),
		font.System(font.StyleSubheadline),
	}
}

// Spec returns the spec for level, falling back to the body entry and
// then to the system body style.
func (h Headers) Spec(level int) font.Spec {
	if level >= 0 && level <= MaxHeadingLevel && h[level] != nil {
		return h[level]
	}
	if h[0] != nil {
		return h[0]
	}
	return font.System(font.StyleBody)
}

// ParseHeaders builds Headers from spec strings keyed by level. Missing
// levels keep their defaults.
func ParseHeaders(specs map[int]string) (Headers, error) {
	h := DefaultHeaders()
	for level, s := range specs {
		if level < 0 || level > MaxHeadingLevel {
			return h, fmt.Errorf("heading level %d out of range 0..%d", level, MaxHeadingLevel)
		}
		spec, err := font.ParseSpec(s)
		if err != nil {
			return h, fmt.Errorf("heading level %d: %w", level, err)
		}
		h[level] = spec
	}
	return h, nil
}
