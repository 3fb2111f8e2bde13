package platform

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/richedit/internal/font"
	"github.com/dshills/richedit/internal/richtext"
)

// Marshal encodes rt as JSON:
//
//	{"text":"Hi","spans":[{"location":0,"length":2,"attributes":{"NSFont":{...},"NSUnderline":1}}]}
func Marshal(rt RichText) ([]byte, error) {
	buf := []byte(`{}`)
	buf, err := sjson.SetBytes(buf, "text", rt.Text)
	if err != nil {
		return nil, err
	}
	buf, err = sjson.SetRawBytes(buf, "spans", []byte(`[]`))
	if err != nil {
		return nil, err
	}
	for i, sp := range rt.Spans {
		prefix := fmt.Sprintf("spans.%d.", i)
		if buf, err = sjson.SetBytes(buf, prefix+"location", sp.Location); err != nil {
			return nil, err
		}
		if buf, err = sjson.SetBytes(buf, prefix+"length", sp.Length); err != nil {
			return nil, err
		}
		if buf, err = sjson.SetRawBytes(buf, prefix+"attributes", []byte(`{}`)); err != nil {
			return nil, err
		}
		for _, key := range Keys {
			v, ok := sp.Attributes[key]
			if !ok {
				continue
			}
			if buf, err = setAttribute(buf, prefix+"attributes."+string(key), key, v); err != nil {
				return nil, fmt.Errorf("span %d: %w", i, err)
			}
		}
	}
	return buf, nil
}

func setAttribute(buf []byte, path string, key Key, v any) ([]byte, error) {
	switch v := v.(type) {
	case font.NativeFont:
		return setFont(buf, path, v)
	case richtext.Color:
		return sjson.SetBytes(buf, path, v.Hex())
	case int, float64:
		return sjson.SetBytes(buf, path, v)
	default:
		return nil, typeError(key, v)
	}
}

func setFont(buf []byte, path string, n font.NativeFont) ([]byte, error) {
	fields := []struct {
		name  string
		value any
		skip  bool
	}{
		{"family", n.Family, false},
		{"pointSize", n.PointSize, false},
		{"symbolicTraits", symbolicTraits(n.Traits), false},
		{"textStyle", n.TextStyle, n.TextStyle == ""},
		{"weight", deref(n.Weight), n.Weight == nil},
		{"width", deref(n.Width), n.Width == nil},
	}
	var err error
	for _, f := range fields {
		if f.skip {
			continue
		}
		if buf, err = sjson.SetBytes(buf, path+"."+f.name, f.value); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Unmarshal decodes the JSON produced by Marshal.
func Unmarshal(data []byte) (RichText, error) {
	if !gjson.ValidBytes(data) {
		return RichText{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	text := root.Get("text")
	if text.Type != gjson.String {
		return RichText{}, fmt.Errorf("%w: missing text", ErrMalformed)
	}
	rt := RichText{Text: text.String()}

	spans := root.Get("spans")
	if spans.Exists() && !spans.IsArray() {
		return RichText{}, fmt.Errorf("%w: spans is not an array", ErrMalformed)
	}
	var err error
	spans.ForEach(func(idx, value gjson.Result) bool {
		var sp Span
		sp, err = parseSpan(value)
		if err != nil {
			err = fmt.Errorf("span %d: %w", idx.Int(), err)
			return false
		}
		rt.Spans = append(rt.Spans, sp)
		return true
	})
	if err != nil {
		return RichText{}, err
	}
	return rt, nil
}

func parseSpan(v gjson.Result) (Span, error) {
	loc, length := v.Get("location"), v.Get("length")
	if loc.Type != gjson.Number || length.Type != gjson.Number {
		return Span{}, fmt.Errorf("%w: location and length must be numbers", ErrMalformed)
	}
	sp := Span{Location: int(loc.Int()), Length: int(length.Int()), Attributes: Dictionary{}}

	attrs := v.Get("attributes")
	if !attrs.Exists() {
		return sp, nil
	}
	if !attrs.IsObject() {
		return Span{}, fmt.Errorf("%w: attributes is not an object", ErrMalformed)
	}
	var err error
	attrs.ForEach(func(k, val gjson.Result) bool {
		key := Key(k.String())
		var parsed any
		parsed, err = parseAttribute(key, val)
		if err != nil {
			return false
		}
		if parsed != nil {
			sp.Attributes[key] = parsed
		}
		return true
	})
	if err != nil {
		return Span{}, err
	}
	return sp, nil
}

func parseAttribute(key Key, v gjson.Result) (any, error) {
	switch key {
	case KeyFont:
		return parseFont(v)
	case KeyForegroundColor, KeyBackgroundColor:
		if v.Type != gjson.String {
			return nil, typeError(key, v.Raw)
		}
		c, err := richtext.ParseColor(v.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
		}
		return c, nil
	case KeyUnderline, KeyStrikethrough:
		if v.Type != gjson.Number {
			return nil, typeError(key, v.Raw)
		}
		return int(v.Int()), nil
	case KeyKern, KeyTracking, KeyBaselineOffset:
		if v.Type != gjson.Number {
			return nil, typeError(key, v.Raw)
		}
		return v.Float(), nil
	default:
		// Unknown attributes are dropped, as a text view would.
		return nil, nil
	}
}

func parseFont(v gjson.Result) (font.NativeFont, error) {
	if !v.IsObject() {
		return font.NativeFont{}, typeError(KeyFont, v.Raw)
	}
	n := font.NativeFont{
		Family:    v.Get("family").String(),
		PointSize: v.Get("pointSize").Float(),
		Traits:    traitsFromSymbolic(int(v.Get("symbolicTraits").Int())),
		TextStyle: v.Get("textStyle").String(),
	}
	if w := v.Get("weight"); w.Exists() {
		n.Weight = richtext.Float(w.Float())
	}
	if w := v.Get("width"); w.Exists() {
		n.Width = richtext.Float(w.Float())
	}
	return n, nil
}
