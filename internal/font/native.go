package font

import (
	"fmt"
	"math"
)

// NativeFont is a font from a foreign representation. Only the metrics a
// platform font object exposes are available.
type NativeFont struct {
	// Family is the family name reported by the font. System fonts report
	// the platform text-style name, e.g. "UICTFontTextStyleBody".
	Family string

	// PointSize is the font size in points.
	PointSize float64

	// Traits are the symbolic traits.
	Traits Traits

	// TextStyle is the platform text-style attribute, empty when absent.
	TextStyle string

	// Weight and Width are the numeric trait values, nil when not reported.
	Weight *float64
	Width  *float64
}

// FromNative derives a best-effort Descriptor from a foreign font using
// the default style table. Axes the font does not report are left unset.
// ErrMixedRepresentation is returned when not even a usable point size is
// available.
func FromNative(n NativeFont) (Descriptor, error) {
	return DefaultStyleTable().FromNative(n)
}

// FromNative is like the package-level FromNative but takes style default
// weights from t, so descriptors resolved against t convert back equal.
func (t *StyleTable) FromNative(n NativeFont) (Descriptor, error) {
	if !(n.PointSize > 0) || math.IsInf(n.PointSize, 0) {
		return Descriptor{}, fmt.Errorf("%w: point size %v", ErrMixedRepresentation, n.PointSize)
	}

	family := Family(n.Family)
	style := StyleBody
	if n.TextStyle != "" {
		if s, err := ParseTextStyle(n.TextStyle); err == nil {
			style = s
		}
	}
	if s, err := ParseTextStyle(n.Family); err == nil {
		// The family is itself a text style: a system font.
		family = SystemFamily
		if n.TextStyle == "" {
			style = s
		}
	}

	d, err := newDescriptor(t, family, style, n.PointSize)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrMixedRepresentation, err)
	}
	d = d.WithTraits(n.Traits & (TraitBold | TraitItalic))
	if n.Weight != nil {
		d = d.WithWeight(WeightFromValue(*n.Weight))
	}
	if n.Width != nil {
		d = d.WithWidth(WidthFromValue(*n.Width))
	}
	return d, nil
}

// ToNative describes d the way a platform font object would.
func ToNative(d Descriptor) NativeFont {
	n := NativeFont{
		Family:    string(d.family),
		PointSize: d.size,
		Traits:    d.traits,
		TextStyle: d.style.PlatformName(),
	}
	if d.family.IsSystem() {
		n.Family = d.style.PlatformName()
	}
	if d.weight != WeightUnset {
		v := d.weight.Value()
		n.Weight = &v
	}
	if d.width != WidthUnset {
		v := d.width.Value()
		n.Width = &v
	}
	return n
}
