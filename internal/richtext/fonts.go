package richtext

import "github.com/dshills/richedit/internal/font"

// FontResolver resolves font specs. *font.Resolver implements it.
type FontResolver interface {
	ResolveOrFallback(spec font.Spec, ctx *font.DisplayContext) font.Descriptor
	Default(ctx *font.DisplayContext) font.Descriptor
}

// SetWholeDocumentFont resolves spec once and applies it to every run.
func (t *Text) SetWholeDocumentFont(spec font.Spec, res FontResolver, ctx *font.DisplayContext) {
	d := res.ResolveOrFallback(spec, ctx)
	_ = t.Apply(NewRange(0, t.Len()), func(a Attributes) Attributes {
		a.Font = d
		a.Native = nil
		return a
	})
}

// SetBold makes every run bold with an explicit bold weight. Runs without
// a usable font get the default body font first.
func (t *Text) SetBold(res FontResolver, ctx *font.DisplayContext) {
	t.mapFonts(res, ctx, func(d font.Descriptor) font.Descriptor {
		return d.WithBold(true)
	})
}

// SetItalic makes every run italic, keeping weights.
func (t *Text) SetItalic(res FontResolver, ctx *font.DisplayContext) {
	t.mapFonts(res, ctx, func(d font.Descriptor) font.Descriptor {
		return d.WithItalic(true)
	})
}

func (t *Text) mapFonts(res FontResolver, ctx *font.DisplayContext, fn func(font.Descriptor) font.Descriptor) {
	fallback := res.Default(ctx)
	_ = t.Apply(NewRange(0, t.Len()), func(a Attributes) Attributes {
		d, _ := a.ResolvedFont(fallback)
		a.Font = fn(d)
		a.Native = nil
		return a
	})
}
