package font

import (
	"fmt"
	"strconv"
	"strings"
)

// Spec is an abstract font description resolved by a Resolver.
// The implementations are SystemStyle, NamedFamily and Modified.
type Spec interface {
	fmt.Stringer
	isSpec()
}

// SystemStyle is the system font for a text style, optionally with its
// weight or width overridden.
type SystemStyle struct {
	Style  TextStyle
	Weight Weight
	Width  Width
}

// NamedFamily is a concrete family at a fixed size. When Scales is set the
// size follows dynamic type for ScalesWith.
type NamedFamily struct {
	Name       string
	Size       float64
	Scales     bool
	ScalesWith TextStyle
}

// ModifierKind selects what a Modifier changes.
type ModifierKind uint8

// Modifier kinds.
const (
	ModItalic ModifierKind = iota
	ModBold
	ModWeight
	ModWidth
)

// Modifier is one step applied to a resolved base font.
type Modifier struct {
	Kind   ModifierKind
	Weight Weight // for ModWeight
	Width  Width  // for ModWidth
}

// Modified applies Modifier to Base.
type Modified struct {
	Base     Spec
	Modifier Modifier
}

func (SystemStyle) isSpec() {}
func (NamedFamily) isSpec() {}
func (Modified) isSpec() {}

// System returns the system spec for a text style.
func System(style TextStyle) Spec {
	return SystemStyle{Style: style}
}

// Named returns a fixed-size named family spec.
func Named(name string, size float64) Spec {
	return NamedFamily{Name: name, Size: size}
}

// NamedScaling returns a named family spec that scales like style.
func NamedScaling(name string, size float64, style TextStyle) Spec {
	return NamedFamily{Name: name, Size: size, Scales: true, ScalesWith: style}
}

// Italic wraps base with the italic modifier.
func Italic(base Spec) Spec {
	return Modified{Base: base, Modifier: Modifier{Kind: ModItalic}}
}

// Bold wraps base with the bold modifier.
func Bold(base Spec) Spec {
	return Modified{Base: base, Modifier: Modifier{Kind: ModBold}}
}

// WithWeight wraps base with a weight override.
func WithWeight(base Spec, w Weight) Spec {
	return Modified{Base: base, Modifier: Modifier{Kind: ModWeight, Weight: w}}
}

// WithWidth wraps base with a width override.
func WithWidth(base Spec, w Width) Spec {
	return Modified{Base: base, Modifier: Modifier{Kind: ModWidth, Width: w}}
}

func (s SystemStyle) String() string {
	out := s.Style.String()
	if s.Weight != WeightUnset {
		out += " weight=" + s.Weight.String()
	}
	if s.Width != WidthUnset {
		out += " width=" + s.Width.String()
	}
	return out
}

func (s NamedFamily) String() string {
	out := "family:" + s.Name + "@" + strconv.FormatFloat(s.Size, 'g', -1, 64)
	if s.Scales {
		out += "/" + s.ScalesWith.String()
	}
	return out
}

func (s Modified) String() string {
	base := "<nil>"
	if s.Base != nil {
		base = s.Base.String()
	}
	return base + " " + s.Modifier.String()
}

func (m Modifier) String() string {
	switch m.Kind {
	case ModItalic:
		return "italic"
	case ModBold:
		return "bold"
	case ModWeight:
		return "weight=" + m.Weight.String()
	case ModWidth:
		return "width=" + m.Width.String()
	default:
		return fmt.Sprintf("modifier(%d)", m.Kind)
	}
}

// ParseSpec parses the textual form produced by Spec.String.
//
// The first field is a text style name ("title2") or a family reference
// "family:NAME@SIZE" with an optional "/STYLE" suffix for dynamic type
// scaling. Remaining fields are modifiers applied in order: "bold",
// "italic", "weight=NAME" and "width=NAME". Family names cannot contain
// whitespace.
func ParseSpec(s string) (Spec, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty spec", ErrUnresolvableFontSpec)
	}

	var spec Spec
	head := fields[0]
	if rest, ok := strings.CutPrefix(head, "family:"); ok {
		named, err := parseNamed(rest)
		if err != nil {
			return nil, err
		}
		spec = named
	} else {
		style, err := ParseTextStyle(head)
		if err != nil {
			return nil, err
		}
		spec = System(style)
	}

	for _, f := range fields[1:] {
		key, value, hasValue := strings.Cut(f, "=")
		switch strings.ToLower(key) {
		case "bold":
			spec = Bold(spec)
		case "italic":
			spec = Italic(spec)
		case "weight":
			if !hasValue {
				return nil, fmt.Errorf("%w: weight needs a value", ErrUnresolvableFontSpec)
			}
			w, err := ParseWeight(value)
			if err != nil {
				return nil, err
			}
			spec = WithWeight(spec, w)
		case "width":
			if !hasValue {
				return nil, fmt.Errorf("%w: width needs a value", ErrUnresolvableFontSpec)
			}
			w, err := ParseWidth(value)
			if err != nil {
				return nil, err
			}
			spec = WithWidth(spec, w)
		default:
			return nil, fmt.Errorf("%w: unknown modifier %q", ErrUnresolvableFontSpec, f)
		}
	}
	return spec, nil
}

func parseNamed(s string) (Spec, error) {
	name, rest, ok := strings.Cut(s, "@")
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: family reference %q needs NAME@SIZE", ErrUnresolvableFontSpec, s)
	}
	sizeText, styleText, scales := strings.Cut(rest, "/")
	size, err := strconv.ParseFloat(sizeText, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad size %q", ErrUnresolvableFontSpec, sizeText)
	}
	if !scales {
		return Named(name, size), nil
	}
	style, err := ParseTextStyle(styleText)
	if err != nil {
		return nil, err
	}
	return NamedScaling(name, size, style), nil
}
