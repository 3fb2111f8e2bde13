package richtext

import (
	"errors"
	"testing"

	"github.com/dshills/richedit/internal/font"
)

func TestSetAttributeSplitsAndMerges(t *testing.T) {
	txt := New("Hello, world!", bodyAttrs(t))

	if err := txt.SetAttribute(NewRange(2, 5), KeyUnderline, LineSingle); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	expectRanges(t, txt, NewRange(0, 2), NewRange(2, 5), NewRange(5, 13))
	if txt.Runs()[1].Attrs.Underline != LineSingle {
		t.Errorf("middle run = %v, want underlined", txt.Runs()[1])
	}
	requirePartition(t, txt)

	if err := txt.SetAttribute(NewRange(0, 13), KeyUnderline, LineSingle); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	expectRanges(t, txt, NewRange(0, 13))
	requirePartition(t, txt)
}

func TestSetAttributeIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		r     Range
		key   Key
		value any
	}{
		{"underline", NewRange(1, 4), KeyUnderline, LineSingle},
		{"color", NewRange(0, 13), KeyForeground, ColorLink},
		{"kern", NewRange(6, 13), KeyKern, 1.5},
		{"clear baseline", NewRange(3, 9), KeyBaselineOffset, nil},
		{"caret", NewRange(4, 4), KeyStrikethrough, LineDouble},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txt := New("Hello, world!", bodyAttrs(t))
			if err := txt.SetAttribute(NewRange(5, 8), KeyBackground, ColorWhite); err != nil {
				t.Fatalf("SetAttribute failed: %v", err)
			}

			if err := txt.SetAttribute(tt.r, tt.key, tt.value); err != nil {
				t.Fatalf("SetAttribute failed: %v", err)
			}
			once := txt.Clone()
			if err := txt.SetAttribute(tt.r, tt.key, tt.value); err != nil {
				t.Fatalf("SetAttribute failed: %v", err)
			}
			if !once.Equal(txt) {
				t.Errorf("second application changed runs:\n%s\nvs\n%s", once.Dump(), txt.Dump())
			}
			requirePartition(t, txt)
		})
	}
}

func TestSetAttributeErrorsLeaveTextUnchanged(t *testing.T) {
	txt := New("Hello", bodyAttrs(t))
	before := txt.Clone()

	tests := []struct {
		r     Range
		key   Key
		value any
		want  error
	}{
		{NewRange(3, 9), KeyUnderline, LineSingle, ErrRangeOutOfBounds},
		{NewRange(3, 1), KeyUnderline, LineSingle, ErrRangeInvalid},
		{NewRange(0, 2), KeyUnderline, "single", ErrAttributeType},
		{NewRange(0, 2), KeyFont, 17.0, ErrAttributeType},
		{NewRange(0, 2), KeyKern, 3, ErrAttributeType},
		{NewRange(0, 2), Key(99), nil, ErrUnknownKey},
	}
	for _, tt := range tests {
		if err := txt.SetAttribute(tt.r, tt.key, tt.value); !errors.Is(err, tt.want) {
			t.Errorf("SetAttribute(%v, %v, %v) = %v, want %v", tt.r, tt.key, tt.value, err, tt.want)
		}
	}
	if !before.Equal(txt) {
		t.Errorf("failed calls changed the text:\n%s", txt.Dump())
	}
}

func TestSetAttributeMergesDefaultWeight(t *testing.T) {
	txt := New("Hello, world!", bodyAttrs(t))
	regular := bodyAttrs(t).Font.WithWeight(font.WeightRegular)
	if err := txt.SetAttribute(NewRange(0, 5), KeyFont, regular); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	expectRanges(t, txt, NewRange(0, 13))
}

func TestAttributePartitions(t *testing.T) {
	txt := New("Hello, world!", bodyAttrs(t))
	if err := txt.SetAttribute(NewRange(0, 5), KeyUnderline, LineSingle); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}

	segs, err := txt.Attribute(NewRange(3, 8), KeyUnderline)
	if err != nil {
		t.Fatalf("Attribute failed: %v", err)
	}
	want := []Segment{
		{Range: NewRange(3, 5), Value: LineSingle},
		{Range: NewRange(5, 8), Value: LineNone},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %v", len(segs), len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, segs[i], want[i])
		}
	}

	segs, err = txt.Attribute(NewRange(4, 4), KeyUnderline)
	if err != nil || len(segs) != 0 {
		t.Errorf("caret Attribute() = %v, %v; want no segments", segs, err)
	}

	if _, err := txt.Attribute(NewRange(0, 20), KeyUnderline); !errors.Is(err, ErrRangeOutOfBounds) {
		t.Errorf("expected ErrRangeOutOfBounds, got %v", err)
	}
}

func TestApplyPreservesOtherAttributes(t *testing.T) {
	txt := New("abcdef", bodyAttrs(t))
	if err := txt.SetAttribute(NewRange(0, 6), KeyForeground, ColorLink); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	if err := txt.SetAttribute(NewRange(2, 4), KeyKern, Float(2)); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}

	a, err := txt.AttributesAt(3)
	if err != nil {
		t.Fatalf("AttributesAt failed: %v", err)
	}
	if a.Foreground != ColorLink {
		t.Errorf("Foreground = %v, want link", a.Foreground)
	}
	if a.Kern == nil || *a.Kern != 2 {
		t.Errorf("Kern = %v, want 2", a.Kern)
	}
	if a.Font.Size() != 17 {
		t.Errorf("Size() = %v, want 17", a.Font.Size())
	}
}

func TestAttributesWithFontDropsNative(t *testing.T) {
	a := Attributes{Native: &font.NativeFont{Family: "Foo", PointSize: 12}}
	d, err := font.NewDescriptor(font.StyleBody, 17)
	if err != nil {
		t.Fatalf("NewDescriptor failed: %v", err)
	}

	next, err := a.With(KeyFont, d)
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	if next.Native != nil || next.Font != d {
		t.Errorf("With(font) = %v", next)
	}
}

func TestResolvedFont(t *testing.T) {
	fallback, err := font.NewDescriptor(font.StyleBody, 17)
	if err != nil {
		t.Fatalf("NewDescriptor failed: %v", err)
	}

	if d, err := (Attributes{}).ResolvedFont(fallback); err != nil || d != fallback {
		t.Errorf("empty attributes resolved to %v, %v", d, err)
	}

	native := Attributes{Native: &font.NativeFont{Family: "Georgia", PointSize: 12, Traits: font.TraitItalic}}
	d, err := native.ResolvedFont(fallback)
	if err != nil {
		t.Fatalf("ResolvedFont failed: %v", err)
	}
	if d.Size() != 12 || !d.IsItalic() {
		t.Errorf("native resolved to %v", d)
	}

	broken := Attributes{Native: &font.NativeFont{Family: "Georgia"}}
	d, err = broken.ResolvedFont(fallback)
	if !errors.Is(err, font.ErrMixedRepresentation) {
		t.Errorf("expected ErrMixedRepresentation, got %v", err)
	}
	if d != fallback {
		t.Errorf("broken font resolved to %v, want fallback", d)
	}
}

func TestAttributesEqual(t *testing.T) {
	a := Attributes{Kern: Float(1)}
	b := Attributes{Kern: Float(1)}
	if !a.Equal(b) {
		t.Error("equal kern values should compare equal")
	}
	b.Kern = Float(2)
	if a.Equal(b) {
		t.Error("different kern values should differ")
	}
	b.Kern = nil
	if a.Equal(b) {
		t.Error("set and unset kern should differ")
	}
}
