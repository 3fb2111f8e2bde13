package platform

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/dshills/richedit/internal/font"
	"github.com/dshills/richedit/internal/richtext"
)

func sampleDoc(t *testing.T) *richtext.Text {
	t.Helper()
	res := font.NewResolver()
	body := res.Default(nil)
	title, err := res.Resolve(font.Bold(font.System(font.StyleTitle)), nil)
	if err != nil {
		t.Fatalf("Resolve title failed: %v", err)
	}
	georgia, err := res.Resolve(font.WithWidth(font.Italic(font.Named("Georgia", 14)), font.WidthCondensed), nil)
	if err != nil {
		t.Fatalf("Resolve Georgia failed: %v", err)
	}

	var b richtext.Builder
	b.WriteString("Title\n", richtext.Attributes{Font: title})
	b.WriteString("plain ", richtext.Attributes{Font: body})
	b.WriteString("link", richtext.Attributes{Font: body, Underline: richtext.LineSingle, Foreground: richtext.ColorLink})
	b.WriteString(" 🇩🇪 ", richtext.Attributes{Font: body, Background: richtext.RGB(255, 255, 0), Strikethrough: richtext.LineDouble})
	b.WriteString("x2", richtext.Attributes{Font: body.WithSize(12.75), BaselineOffset: richtext.Float(6.8)})
	b.WriteString(" serif", richtext.Attributes{Font: georgia, Kern: richtext.Float(1.5), Tracking: richtext.Float(-0.25)})
	b.WriteString(" opaque", richtext.Attributes{Native: &font.NativeFont{Family: "Mystery", Traits: font.TraitBold}})
	b.WriteString(" bare", richtext.Attributes{})
	doc := b.Text()
	if err := doc.Validate(); err != nil {
		t.Fatalf("sample document invalid: %v", err)
	}
	return doc
}

func mustImport(t *testing.T, rt RichText, opts ...ImportOption) *richtext.Text {
	t.Helper()
	doc, err := Import(rt, opts...)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	return doc
}

func TestExportUsesUTF16Units(t *testing.T) {
	doc := richtext.New("a🇩🇪b", richtext.Attributes{})
	if err := doc.SetAttribute(richtext.NewRange(1, 2), richtext.KeyUnderline, richtext.LineSingle); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}

	rt := Export(doc)
	if len(rt.Spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(rt.Spans))
	}
	if first := rt.Spans[0]; first.Location != 0 || first.Length != 1 || len(first.Attributes) != 0 {
		t.Errorf("first span = %+v", first)
	}
	// The flag is two surrogate pairs.
	if flag := rt.Spans[1]; flag.Location != 1 || flag.Length != 4 || flag.Attributes[KeyUnderline] != 1 {
		t.Errorf("flag span = %+v", flag)
	}
	if rt.Spans[2].Location != 5 {
		t.Errorf("last span location = %d, want 5", rt.Spans[2].Location)
	}
}

func TestExportDictionary(t *testing.T) {
	rt := Export(sampleDoc(t))
	if rt.Text != sampleDoc(t).String() {
		t.Errorf("Text = %q", rt.Text)
	}

	n, ok := rt.Spans[0].Attributes[KeyFont].(font.NativeFont)
	if !ok {
		t.Fatalf("first span font = %T", rt.Spans[0].Attributes[KeyFont])
	}
	if n.Family != "UICTFontTextStyleTitle1" || n.PointSize != 28 {
		t.Errorf("native font = %+v", n)
	}
	if !n.Traits.Has(font.TraitBold) {
		t.Error("expected bold trait")
	}
	if n.Weight == nil || *n.Weight != font.WeightBold.Value() {
		t.Errorf("Weight = %v, want %v", n.Weight, font.WeightBold.Value())
	}
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDoc(t)
	back := mustImport(t, Export(doc))
	if !doc.Equal(back) {
		t.Errorf("round trip mismatch\nwant:\n%s\ngot:\n%s", doc.Dump(), back.Dump())
	}
}

func TestRoundTripWithStyleTable(t *testing.T) {
	table, err := font.NewStyleTable(map[font.TextStyle]font.StyleMetrics{
		font.StyleHeadline: {Size: 18, Weight: font.WeightBold},
	})
	if err != nil {
		t.Fatalf("NewStyleTable failed: %v", err)
	}
	res := font.NewResolver(font.WithStyleTable(table))
	head, err := res.Resolve(font.Italic(font.System(font.StyleHeadline)), nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	doc := richtext.New("News", richtext.Attributes{Font: head})

	back := mustImport(t, Export(doc), WithStyleTable(table))
	if !doc.Equal(back) {
		t.Errorf("round trip mismatch\nwant:\n%s\ngot:\n%s", doc.Dump(), back.Dump())
	}
	if got := back.Runs()[0].Attrs.Font.EffectiveWeight(); got != font.WeightBold {
		t.Errorf("EffectiveWeight() = %v, want bold", got)
	}

	// Without the table the style default comes from the built-in metrics.
	plain := mustImport(t, Export(doc))
	if got := plain.Runs()[0].Attrs.Font.EffectiveWeight(); got != font.WeightSemibold {
		t.Errorf("default-table EffectiveWeight() = %v, want semibold", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleDoc(t)
	data, err := Marshal(Export(doc))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	rt, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(rt, Export(doc)) {
		t.Errorf("Unmarshal mismatch:\n got %+v\nwant %+v", rt, Export(doc))
	}

	back := mustImport(t, rt)
	if !doc.Equal(back) {
		t.Errorf("round trip mismatch\nwant:\n%s\ngot:\n%s", doc.Dump(), back.Dump())
	}
}

func assertJSON(t *testing.T, got []byte, want string) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("invalid JSON %s: %v", got, err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("invalid expected JSON: %v", err)
	}
	if !reflect.DeepEqual(g, w) {
		t.Errorf("JSON = %s, want %s", got, want)
	}
}

func TestMarshalShape(t *testing.T) {
	doc := richtext.New("Hi", richtext.Attributes{Underline: richtext.LineSingle, Kern: richtext.Float(2)})
	data, err := Marshal(Export(doc))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	assertJSON(t, data, `{"text":"Hi","spans":[{"location":0,"length":2,"attributes":{"NSUnderline":1,"NSKern":2}}]}`)

	data, err = Marshal(RichText{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	assertJSON(t, data, `{"text":"","spans":[]}`)
}

func TestImportFillsGaps(t *testing.T) {
	rt := RichText{
		Text: "abcdef",
		Spans: []Span{
			{Location: 2, Length: 2, Attributes: Dictionary{KeyUnderline: 1}},
		},
	}
	runs := mustImport(t, rt).Runs()
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[1].Range != richtext.NewRange(2, 4) || runs[1].Attrs.Underline != richtext.LineSingle {
		t.Errorf("middle run = %v", runs[1])
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name string
		rt   RichText
	}{
		{"overlap", RichText{Text: "abcd", Spans: []Span{{Location: 0, Length: 3}, {Location: 2, Length: 2}}}},
		{"past end", RichText{Text: "ab", Spans: []Span{{Location: 1, Length: 5}}}},
		{"start past end", RichText{Text: "ab", Spans: []Span{{Location: 3, Length: 0}}}},
		{"negative", RichText{Text: "ab", Spans: []Span{{Location: 1, Length: -1}}}},
		{"negative location", RichText{Text: "ab", Spans: []Span{{Location: -1, Length: 1}}}},
		{"location overflow", RichText{Text: "ab", Spans: []Span{{Location: math.MaxInt, Length: 1}}}},
		{"length overflow", RichText{Text: "ab", Spans: []Span{{Location: 1, Length: math.MaxInt}}}},
		{"min location", RichText{Text: "ab", Spans: []Span{{Location: 0, Length: 1}, {Location: math.MinInt, Length: 1}}}},
		{"surrogate split", RichText{Text: "🇩", Spans: []Span{{Location: 0, Length: 1}}}},
		{"bad font", RichText{Text: "ab", Spans: []Span{{Location: 0, Length: 2, Attributes: Dictionary{KeyFont: "Helvetica"}}}}},
		{"bad underline", RichText{Text: "ab", Spans: []Span{{Location: 0, Length: 2, Attributes: Dictionary{KeyUnderline: 7}}}}},
		{"bad kern", RichText{Text: "ab", Spans: []Span{{Location: 0, Length: 2, Attributes: Dictionary{KeyKern: "1"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Import(tt.rt); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestImportHugeSpanFromJSON(t *testing.T) {
	rt, err := Unmarshal([]byte(`{"text":"ab","spans":[{"location":9223372036854775807,"length":1}]}`))
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, err := Import(rt); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestImportKeepsOpaqueFont(t *testing.T) {
	native := font.NativeFont{Family: "Mystery", PointSize: 0}
	doc := mustImport(t, RichText{Text: "ab", Spans: []Span{{Location: 0, Length: 2, Attributes: Dictionary{KeyFont: native}}}})
	a := doc.Runs()[0].Attrs
	if !a.Font.IsZero() {
		t.Errorf("Font = %v, want zero", a.Font)
	}
	if a.Native == nil || a.Native.Family != "Mystery" {
		t.Errorf("Native = %+v", a.Native)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	for _, in := range []string{
		`not json`,
		`{"spans":[]}`,
		`{"text":"a","spans":{}}`,
		`{"text":"a","spans":[{"location":"0","length":1}]}`,
		`{"text":"a","spans":[{"location":0,"length":1,"attributes":[]}]}`,
		`{"text":"a","spans":[{"location":0,"length":1,"attributes":{"NSColor":"#zzzzzz"}}]}`,
		`{"text":"a","spans":[{"location":0,"length":1,"attributes":{"NSFont":"Helvetica"}}]}`,
	} {
		if _, err := Unmarshal([]byte(in)); !errors.Is(err, ErrMalformed) {
			t.Errorf("Unmarshal(%s): expected ErrMalformed, got %v", in, err)
		}
	}
}

func TestUnmarshalIgnoresUnknownKeys(t *testing.T) {
	rt, err := Unmarshal([]byte(`{"text":"a","spans":[{"location":0,"length":1,"attributes":{"NSLink":"http://x","NSUnderline":1}}]}`))
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if want := (Dictionary{KeyUnderline: 1}); !reflect.DeepEqual(rt.Spans[0].Attributes, want) {
		t.Errorf("Attributes = %v, want %v", rt.Spans[0].Attributes, want)
	}
}
