package font

import (
	"fmt"
	"math"
)

// Family identifies a font family. SystemFamily marks fonts derived from a
// text style rather than a named family.
type Family string

// SystemFamily is the family of style-based system fonts.
const SystemFamily Family = ""

// IsSystem returns true for the system family.
func (f Family) IsSystem() bool {
	return f == SystemFamily
}

// Descriptor is an immutable description of a concrete font.
// The zero value means "no font" and reports IsZero.
type Descriptor struct {
	family Family
	size   float64
	traits Traits
	weight Weight
	width  Width
	style  TextStyle

	// styleWeight is the base style's default weight, captured when the
	// descriptor was built so EffectiveWeight needs no table lookup.
	styleWeight Weight
}

// NewDescriptor returns a system descriptor for style at the given size,
// using the default style table for the style's default weight.
func NewDescriptor(style TextStyle, size float64) (Descriptor, error) {
	return newDescriptor(DefaultStyleTable(), SystemFamily, style, size)
}

// NewNamedDescriptor returns a descriptor for a named family. The style is
// the one the family scales with (body when it does not scale).
func NewNamedDescriptor(name string, style TextStyle, size float64) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, fmt.Errorf("%w: empty family name", ErrUnresolvableFontSpec)
	}
	return newDescriptor(DefaultStyleTable(), Family(name), style, size)
}

func newDescriptor(table *StyleTable, family Family, style TextStyle, size float64) (Descriptor, error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidPointSize, size)
	}
	m, ok := table.Metrics(style)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrUnknownTextStyle, style)
	}
	return Descriptor{
		family:      family,
		size:        size,
		style:       style,
		styleWeight: m.Weight,
	}, nil
}

// IsZero returns true for the zero Descriptor.
func (d Descriptor) IsZero() bool {
	return d.size == 0
}

// Family returns the font family.
func (d Descriptor) Family() Family { return d.family }

// Size returns the point size.
func (d Descriptor) Size() float64 { return d.size }

// Traits returns the symbolic traits.
func (d Descriptor) Traits() Traits { return d.traits }

// Weight returns the explicit weight, or WeightUnset.
func (d Descriptor) Weight() Weight { return d.weight }

// Width returns the explicit width, or WidthUnset.
func (d Descriptor) Width() Width { return d.width }

// Style returns the base text style.
func (d Descriptor) Style() TextStyle { return d.style }

// IsBold returns true if the bold trait is set.
func (d Descriptor) IsBold() bool { return d.traits.Has(TraitBold) }

// IsItalic returns true if the italic trait is set.
func (d Descriptor) IsItalic() bool { return d.traits.Has(TraitItalic) }

// EffectiveWeight returns the weight glyphs are drawn with: the explicit
// weight if any, else bold for the bold trait, else the style default.
func (d Descriptor) EffectiveWeight() Weight {
	if d.weight != WeightUnset {
		return d.weight
	}
	if d.IsBold() && d.styleWeight < WeightBold {
		return WeightBold
	}
	if d.styleWeight == WeightUnset {
		return WeightRegular
	}
	return d.styleWeight
}

// EffectiveWidth returns the explicit width or standard.
func (d Descriptor) EffectiveWidth() Width {
	if d.width == WidthUnset {
		return WidthStandard
	}
	return d.width
}

// WithSize returns a copy at a new point size. Non-positive sizes leave the
// descriptor unchanged.
func (d Descriptor) WithSize(size float64) Descriptor {
	if size > 0 && !math.IsInf(size, 0) {
		d.size = size
	}
	return d
}

// sizePrecision is the grid resolved point sizes are snapped to.
const sizePrecision = 1e4

// RoundSize snaps a point size to 1/10000 pt. Sizes produced by the
// resolver are always on this grid.
func RoundSize(size float64) float64 {
	return math.Round(size*sizePrecision) / sizePrecision
}

// Scaled returns a copy with the point size multiplied by factor.
func (d Descriptor) Scaled(factor float64) Descriptor {
	return d.WithSize(d.size * factor)
}

// WithTraits returns a copy with the trait set replaced.
func (d Descriptor) WithTraits(t Traits) Descriptor {
	d.traits = t
	return d
}

// WithBold returns a copy with the bold trait set or cleared. Setting it
// also forces an explicit bold weight unless a heavier weight is set, since
// some renderers ignore the trait alone at title sizes. Clearing it resets
// the weight to the style default.
func (d Descriptor) WithBold(on bool) Descriptor {
	if !on {
		d.traits = d.traits.Without(TraitBold)
		d.weight = WeightUnset
		return d
	}
	d.traits = d.traits.With(TraitBold)
	base := d.weight
	if base == WeightUnset {
		base = d.styleWeight
	}
	if base < WeightBold {
		d = d.WithWeight(WeightBold)
	}
	return d
}

// WithItalic returns a copy with the italic trait set or cleared. The
// weight is left alone.
func (d Descriptor) WithItalic(on bool) Descriptor {
	if on {
		d.traits = d.traits.With(TraitItalic)
	} else {
		d.traits = d.traits.Without(TraitItalic)
	}
	return d
}

// WithWeight returns a copy with the weight axis overridden.
// The style's own default weight is stored as unset so that descriptors
// drawing the same glyphs compare equal. The bold trait keeps a lighter
// explicit weight.
func (d Descriptor) WithWeight(w Weight) Descriptor {
	if w == d.styleWeight && (!d.IsBold() || w >= WeightBold) {
		w = WeightUnset
	}
	d.weight = w
	return d
}

// WithWidth returns a copy with the width axis overridden.
func (d Descriptor) WithWidth(w Width) Descriptor {
	d.width = w
	return d
}

// String returns a compact description such as "body 17pt bold|italic w=bold".
func (d Descriptor) String() string {
	if d.IsZero() {
		return "<no font>"
	}
	name := d.style.String()
	if !d.family.IsSystem() {
		name = string(d.family) + "/" + name
	}
	s := fmt.Sprintf("%s %gpt %s", name, d.size, d.traits)
	if d.weight != WeightUnset {
		s += " w=" + d.weight.String()
	}
	if d.width != WidthUnset {
		s += " wd=" + d.width.String()
	}
	return s
}
