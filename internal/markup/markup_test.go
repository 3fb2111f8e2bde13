package markup

import (
	"testing"

	"github.com/dshills/richedit/internal/font"
	"github.com/dshills/richedit/internal/richtext"
)

func parse(t *testing.T, src string, opts ...Option) *richtext.Text {
	t.Helper()
	doc, err := NewParser(opts...).Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	if err := doc.Validate(); err != nil {
		t.Fatalf("Parse(%q) produced invalid text: %v", src, err)
	}
	return doc
}

func attrsAt(t *testing.T, doc *richtext.Text, offset int) richtext.Attributes {
	t.Helper()
	a, err := doc.AttributesAt(offset)
	if err != nil {
		t.Fatalf("AttributesAt(%d) failed: %v", offset, err)
	}
	return a
}

func expectText(t *testing.T, doc *richtext.Text, want string) {
	t.Helper()
	if got := doc.String(); got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}

func TestHeadingsAndParagraphs(t *testing.T) {
	doc := parse(t, "# Title\n\nSome body.\n\n### Small\n")
	expectText(t, doc, "Title\nSome body.\nSmall")

	if d := attrsAt(t, doc, 0).Font; d.Style() != font.StyleLargeTitle || d.Size() != 34 {
		t.Errorf("heading font = %v, want largeTitle 34pt", d)
	}
	if s := attrsAt(t, doc, 6).Font.Style(); s != font.StyleBody {
		t.Errorf("paragraph style = %v, want body", s)
	}
	if s := attrsAt(t, doc, len("Title\nSome body.\n")).Font.Style(); s != font.StyleTitle2 {
		t.Errorf("h3 style = %v, want title2", s)
	}
}

func TestBlockSeparatorTakesNextBlockFont(t *testing.T) {
	doc := parse(t, "para\n\n## Head\n")
	expectText(t, doc, "para\nHead")
	if s := attrsAt(t, doc, 4).Font.Style(); s != font.StyleTitle {
		t.Errorf("separator style = %v, want title", s)
	}
}

func TestInlineStyles(t *testing.T) {
	doc := parse(t, "a **b** *c* ~~d~~ `e` [f](http://x)")
	expectText(t, doc, "a b c d e f")

	if attrsAt(t, doc, 0).Font.IsBold() {
		t.Error("plain text should not be bold")
	}
	if b := attrsAt(t, doc, 2).Font; !b.IsBold() || b.Weight() != font.WeightBold {
		t.Errorf("strong font = %v", b)
	}
	if !attrsAt(t, doc, 4).Font.IsItalic() {
		t.Error("emphasis should be italic")
	}
	if attrsAt(t, doc, 6).Strikethrough != richtext.LineSingle {
		t.Error("strikethrough missing")
	}
	if f := attrsAt(t, doc, 8).Font.Family(); f != font.Family(CodeFamily) {
		t.Errorf("code family = %q, want %q", f, CodeFamily)
	}
	if link := attrsAt(t, doc, 10); link.Underline != richtext.LineSingle || link.Foreground != richtext.ColorLink {
		t.Errorf("link attrs = %v", link)
	}
}

func TestNestedEmphasis(t *testing.T) {
	doc := parse(t, "***both***")
	if d := attrsAt(t, doc, 0).Font; !d.IsBold() || !d.IsItalic() {
		t.Errorf("font = %v, want bold italic", d)
	}
}

func TestEmphasisInHeadingKeepsHeadingStyle(t *testing.T) {
	doc := parse(t, "# A *b*")
	if d := attrsAt(t, doc, 2).Font; d.Style() != font.StyleLargeTitle || !d.IsItalic() {
		t.Errorf("font = %v, want italic largeTitle", d)
	}
}

func TestCodeBlock(t *testing.T) {
	doc := parse(t, "intro\n\n```\nx := 1\ny := 2\n```\n")
	expectText(t, doc, "intro\nx := 1\ny := 2")
	if f := attrsAt(t, doc, 6).Font.Family(); f != font.Family(CodeFamily) {
		t.Errorf("code block family = %q", f)
	}
}

func TestLists(t *testing.T) {
	expectText(t, parse(t, "- one\n- two\n\n1. first\n2. second\n"), "• one\n• two\n1. first\n2. second")
}

func TestSoftAndHardBreaks(t *testing.T) {
	expectText(t, parse(t, "one\ntwo  \nthree"), "one two\nthree")
}

func TestNFCNormalization(t *testing.T) {
	doc := parse(t, "Cafe\u0301")
	expectText(t, doc, "Caf\u00e9")
	if doc.Len() != 4 {
		t.Errorf("Len() = %d, want 4", doc.Len())
	}
}

func TestCustomHeaders(t *testing.T) {
	h, err := ParseHeaders(map[int]string{1: "family:Georgia@30 bold"})
	if err != nil {
		t.Fatalf("ParseHeaders failed: %v", err)
	}

	doc, err := ParseStyledMarkup([]byte("# Big\n\nsmall"), h, font.NewResolver(), nil)
	if err != nil {
		t.Fatalf("ParseStyledMarkup failed: %v", err)
	}
	if d := attrsAt(t, doc, 0).Font; d.Family() != "Georgia" || d.Size() != 30 || !d.IsBold() {
		t.Errorf("heading font = %v, want bold Georgia 30pt", d)
	}

	for _, bad := range []map[int]string{{7: "body"}, {1: "family:"}} {
		if _, err := ParseHeaders(bad); err == nil {
			t.Errorf("ParseHeaders(%v): expected error", bad)
		}
	}
}

func TestDisplayContextScalesHeadings(t *testing.T) {
	ctx := &font.DisplayContext{Category: font.SizeExtraExtraExtraLarge}
	doc := parse(t, "# Head\n\nbody", WithDisplayContext(ctx))
	if got := attrsAt(t, doc, 0).Font.Size(); got != font.RoundSize(34*23.0/17) {
		t.Errorf("heading size = %v, want %v", got, font.RoundSize(34*23.0/17))
	}
	if got := attrsAt(t, doc, 5).Font.Size(); got != 23 {
		t.Errorf("body size = %v, want 23", got)
	}
}

func TestHeadersSpecFallback(t *testing.T) {
	var h Headers
	if got := h.Spec(3); got != font.System(font.StyleBody) {
		t.Errorf("empty headers Spec(3) = %v, want body", got)
	}
	def := DefaultHeaders()
	if def.Spec(2) != def[2] {
		t.Errorf("Spec(2) = %v, want %v", def.Spec(2), def[2])
	}
	if def.Spec(9) != def[0] {
		t.Errorf("Spec(9) = %v, want %v", def.Spec(9), def[0])
	}
}

func TestEmpty(t *testing.T) {
	if doc := parse(t, ""); doc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", doc.Len())
	}
}
