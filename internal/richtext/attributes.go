package richtext

import (
	"fmt"
	"strings"

	"github.com/dshills/richedit/internal/font"
)

// LineStyle is an underline or strikethrough style. Values match the
// platform's raw style constants.
type LineStyle uint8

// Line styles. LineNone means the decoration is absent.
const (
	LineNone   LineStyle = 0x00
	LineSingle LineStyle = 0x01
	LineThick  LineStyle = 0x02
	LineDouble LineStyle = 0x09
)

// String returns the style name.
func (s LineStyle) String() string {
	switch s {
	case LineNone:
		return "none"
	case LineSingle:
		return "single"
	case LineThick:
		return "thick"
	case LineDouble:
		return "double"
	default:
		return fmt.Sprintf("line(%#x)", uint8(s))
	}
}

// Valid returns true for a known line style.
func (s LineStyle) Valid() bool {
	switch s {
	case LineNone, LineSingle, LineThick, LineDouble:
		return true
	}
	return false
}

// Key names one attribute of a run.
type Key uint8

// Attribute keys.
const (
	KeyFont Key = iota
	KeyForeground
	KeyBackground
	KeyUnderline
	KeyStrikethrough
	KeyKern
	KeyTracking
	KeyBaselineOffset
)

var keyNames = [...]string{
	KeyFont:           "font",
	KeyForeground:     "foreground",
	KeyBackground:     "background",
	KeyUnderline:      "underline",
	KeyStrikethrough:  "strikethrough",
	KeyKern:           "kern",
	KeyTracking:       "tracking",
	KeyBaselineOffset: "baselineOffset",
}

// String returns the key name.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", uint8(k))
}

// Attributes is the attribute set shared by every position of a run.
// Zero-valued fields are absent.
type Attributes struct {
	// Font is the resolved font. The zero Descriptor means no font.
	Font font.Descriptor

	// Native is a font in a foreign representation, kept when it could
	// not be converted into a Descriptor. Ignored when Font is set.
	Native *font.NativeFont

	Foreground    Color
	Background    Color
	Underline     LineStyle
	Strikethrough LineStyle

	// Kern, Tracking and BaselineOffset are in points; nil means absent.
	Kern           *float64
	Tracking       *float64
	BaselineOffset *float64
}

// Float returns a pointer to v for the optional numeric attributes.
func Float(v float64) *float64 {
	return &v
}

// Equal reports whether a and b are identical attribute sets.
func (a Attributes) Equal(b Attributes) bool {
	return a.Font == b.Font &&
		nativeEqual(a.Native, b.Native) &&
		a.Foreground == b.Foreground &&
		a.Background == b.Background &&
		a.Underline == b.Underline &&
		a.Strikethrough == b.Strikethrough &&
		floatEqual(a.Kern, b.Kern) &&
		floatEqual(a.Tracking, b.Tracking) &&
		floatEqual(a.BaselineOffset, b.BaselineOffset)
}

// Get returns the value stored under key. Absent optional numbers are
// returned as a nil *float64.
func (a Attributes) Get(key Key) (any, error) {
	switch key {
	case KeyFont:
		return a.Font, nil
	case KeyForeground:
		return a.Foreground, nil
	case KeyBackground:
		return a.Background, nil
	case KeyUnderline:
		return a.Underline, nil
	case KeyStrikethrough:
		return a.Strikethrough, nil
	case KeyKern:
		return a.Kern, nil
	case KeyTracking:
		return a.Tracking, nil
	case KeyBaselineOffset:
		return a.BaselineOffset, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKey, key)
	}
}

// With returns a copy with key set to value. Setting a font drops any
// foreign font. Numeric keys accept float64, *float64 or nil (clears).
func (a Attributes) With(key Key, value any) (Attributes, error) {
	switch key {
	case KeyFont:
		d, ok := value.(font.Descriptor)
		if !ok {
			return a, typeError(key, value)
		}
		a.Font = d
		a.Native = nil
	case KeyForeground, KeyBackground:
		c, ok := value.(Color)
		if !ok {
			return a, typeError(key, value)
		}
		if key == KeyForeground {
			a.Foreground = c
		} else {
			a.Background = c
		}
	case KeyUnderline, KeyStrikethrough:
		s, ok := value.(LineStyle)
		if !ok || !s.Valid() {
			return a, typeError(key, value)
		}
		if key == KeyUnderline {
			a.Underline = s
		} else {
			a.Strikethrough = s
		}
	case KeyKern, KeyTracking, KeyBaselineOffset:
		f, err := optionalFloat(key, value)
		if err != nil {
			return a, err
		}
		switch key {
		case KeyKern:
			a.Kern = f
		case KeyTracking:
			a.Tracking = f
		default:
			a.BaselineOffset = f
		}
	default:
		return a, fmt.Errorf("%w: %v", ErrUnknownKey, key)
	}
	return a, nil
}

// ResolvedFont returns the run's font: Font when set, else a descriptor
// derived from Native, else fallback. When Native cannot be converted the
// fallback is returned together with the conversion error.
func (a Attributes) ResolvedFont(fallback font.Descriptor) (font.Descriptor, error) {
	if !a.Font.IsZero() {
		return a.Font, nil
	}
	if a.Native == nil {
		return fallback, nil
	}
	d, err := font.FromNative(*a.Native)
	if err != nil {
		return fallback, err
	}
	return d, nil
}

// String returns a compact description of the set attributes.
func (a Attributes) String() string {
	var parts []string
	switch {
	case !a.Font.IsZero():
		parts = append(parts, a.Font.String())
	case a.Native != nil:
		parts = append(parts, fmt.Sprintf("native(%s %gpt)", a.Native.Family, a.Native.PointSize))
	}
	if a.Foreground.IsSet() {
		parts = append(parts, "fg="+a.Foreground.Hex())
	}
	if a.Background.IsSet() {
		parts = append(parts, "bg="+a.Background.Hex())
	}
	if a.Underline != LineNone {
		parts = append(parts, "underline="+a.Underline.String())
	}
	if a.Strikethrough != LineNone {
		parts = append(parts, "strike="+a.Strikethrough.String())
	}
	if a.Kern != nil {
		parts = append(parts, fmt.Sprintf("kern=%g", *a.Kern))
	}
	if a.Tracking != nil {
		parts = append(parts, fmt.Sprintf("tracking=%g", *a.Tracking))
	}
	if a.BaselineOffset != nil {
		parts = append(parts, fmt.Sprintf("baseline=%g", *a.BaselineOffset))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func optionalFloat(key Key, value any) (*float64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		return Float(v), nil
	case *float64:
		if v == nil {
			return nil, nil
		}
		return Float(*v), nil
	default:
		return nil, typeError(key, value)
	}
}

func typeError(key Key, value any) error {
	return fmt.Errorf("%w: %v cannot hold %T", ErrAttributeType, key, value)
}

func floatEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func nativeEqual(a, b *font.NativeFont) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Family == b.Family &&
		a.PointSize == b.PointSize &&
		a.Traits == b.Traits &&
		a.TextStyle == b.TextStyle &&
		floatEqual(a.Weight, b.Weight) &&
		floatEqual(a.Width, b.Width)
}
