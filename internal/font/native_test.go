package font

import (
	"errors"
	"testing"
)

func TestFromNativeSystemFont(t *testing.T) {
	n := NativeFont{
		Family:    "UICTFontTextStyleTitle1",
		PointSize: 28,
		Traits:    TraitBold,
	}
	d, err := FromNative(n)
	if err != nil {
		t.Fatalf("FromNative failed: %v", err)
	}
	if !d.Family().IsSystem() || d.Style() != StyleTitle {
		t.Errorf("expected system title, got %v", d)
	}
	if !d.IsBold() || d.Weight() != WeightUnset {
		t.Errorf("expected bold trait without weight, got %v", d)
	}
}

func TestFromNativeNamedFont(t *testing.T) {
	w := 0.3
	d, err := FromNative(NativeFont{Family: "Georgia", PointSize: 14, Weight: &w})
	if err != nil {
		t.Fatalf("FromNative failed: %v", err)
	}
	if d.Family() != "Georgia" || d.Style() != StyleBody {
		t.Errorf("unexpected descriptor %v", d)
	}
	if d.Weight() != WeightSemibold {
		t.Errorf("Weight() = %v, want semibold", d.Weight())
	}
}

func TestFromNativeUnusable(t *testing.T) {
	if _, err := FromNative(NativeFont{Family: "Opaque"}); !errors.Is(err, ErrMixedRepresentation) {
		t.Errorf("expected ErrMixedRepresentation, got %v", err)
	}
}

func TestNativeRoundTrip(t *testing.T) {
	r := NewResolver()
	specs := []Spec{
		System(StyleBody),
		Bold(Italic(System(StyleHeadline))),
		WithWidth(WithWeight(System(StyleCaption2), WeightRegular), WidthExpanded),
		Named("Georgia", 18),
		Italic(NamedScaling("Menlo", 13, StyleFootnote)),
	}
	for _, s := range specs {
		d, err := r.Resolve(s, nil)
		if err != nil {
			t.Fatalf("Resolve(%v) failed: %v", s, err)
		}
		back, err := FromNative(ToNative(d))
		if err != nil {
			t.Fatalf("FromNative failed: %v", err)
		}
		if back != d {
			t.Errorf("round trip of %v gave %v", d, back)
		}
	}
}
