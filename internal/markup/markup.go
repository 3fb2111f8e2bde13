// Package markup builds styled text from markdown.
//
// Headings take the font spec configured for their level, emphasis adds
// italic or bold, strikethrough and links become decorations, and code is
// set in a monospaced family. Every block after the first starts on a new
// line.
package markup

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/richedit/internal/font"
	"github.com/dshills/richedit/internal/richtext"
)

// CodeFamily is the monospaced family used for code.
const CodeFamily = "Menlo"

// Parser converts markdown into richtext.
type Parser struct {
	md        goldmark.Markdown
	headers   Headers
	resolver  *font.Resolver
	ctx       *font.DisplayContext
	codeFont  font.Spec
	linkColor richtext.Color
	bullet    string
	logger    *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithHeaders sets the heading font specs.
func WithHeaders(h Headers) Option {
	return func(p *Parser) {
		p.headers = h
	}
}

// WithResolver sets the font resolver.
func WithResolver(r *font.Resolver) Option {
	return func(p *Parser) {
		if r != nil {
			p.resolver = r
		}
	}
}

// WithDisplayContext sets the display context fonts are resolved for.
func WithDisplayContext(ctx *font.DisplayContext) Option {
	return func(p *Parser) {
		p.ctx = ctx
	}
}

// WithCodeFont sets the spec used for code spans and blocks.
func WithCodeFont(spec font.Spec) Option {
	return func(p *Parser) {
		if spec != nil {
			p.codeFont = spec
		}
	}
}

// WithLinkColor sets the link foreground color.
func WithLinkColor(c richtext.Color) Option {
	return func(p *Parser) {
		p.linkColor = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a parser with the default headers.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		md:        goldmark.New(goldmark.WithExtensions(extension.Strikethrough)),
		headers:   DefaultHeaders(),
		codeFont:  font.NamedScaling(CodeFamily, 15, font.StyleBody),
		linkColor: richtext.ColorLink,
		bullet:    "• ",
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.resolver == nil {
		p.resolver = font.NewResolver(font.WithLogger(p.logger))
	}
	return p
}

// ParseStyledMarkup parses src with the given headers.
func ParseStyledMarkup(src []byte, headers Headers, res *font.Resolver, ctx *font.DisplayContext) (*richtext.Text, error) {
	return NewParser(WithHeaders(headers), WithResolver(res), WithDisplayContext(ctx)).Parse(src)
}

// Parse converts src. The input is NFC normalized first.
func (p *Parser) Parse(src []byte) (*richtext.Text, error) {
	src = norm.NFC.Bytes(src)
	doc := p.md.Parser().Parse(text.NewReader(src))

	w := &walker{p: p, src: src, fonts: make(map[string]font.Descriptor)}
	if err := ast.Walk(doc, w.visit); err != nil {
		return nil, err
	}
	out := w.b.Text()
	p.logger.Debug("markup parsed", "blocks", w.blocks, "runs", out.RunCount(), "length", out.Len())
	return out, nil
}

type style struct {
	spec   font.Spec
	strike bool
	link   bool
	code   bool
}

type walker struct {
	p      *Parser
	src    []byte
	b      richtext.Builder
	stack  []style
	blocks int
	prefix string
	fonts  map[string]font.Descriptor
}

func (w *walker) top() style {
	if len(w.stack) == 0 {
		return style{spec: w.p.headers.Spec(0)}
	}
	return w.stack[len(w.stack)-1]
}

func (w *walker) push(s style) {
	w.stack = append(w.stack, s)
}

func (w *walker) pop() {
	if len(w.stack) > 0 {
		w.stack = w.stack[:len(w.stack)-1]
	}
}

func (w *walker) resolve(spec font.Spec) font.Descriptor {
	key := spec.String()
	if d, ok := w.fonts[key]; ok {
		return d
	}
	d := w.p.resolver.ResolveOrFallback(spec, w.p.ctx)
	w.fonts[key] = d
	return d
}

func (w *walker) attrs(s style) richtext.Attributes {
	spec := s.spec
	if s.code {
		spec = w.p.codeFont
	}
	a := richtext.Attributes{Font: w.resolve(spec)}
	if s.strike {
		a.Strikethrough = richtext.LineSingle
	}
	if s.link {
		a.Underline = richtext.LineSingle
		a.Foreground = w.p.linkColor
	}
	return a
}

func (w *walker) write(s string) {
	w.b.WriteString(s, w.attrs(w.top()))
}

// startBlock separates a block from the previous one and emits a pending
// list marker.
func (w *walker) startBlock(s style) {
	if w.blocks > 0 {
		w.b.WriteString("\n", w.attrs(s))
	}
	w.blocks++
	if w.prefix != "" {
		w.b.WriteString(w.prefix, w.attrs(style{spec: s.spec}))
		w.prefix = ""
	}
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Heading:
		if entering {
			s := style{spec: w.p.headers.Spec(n.Level)}
			w.startBlock(s)
			w.push(s)
		} else {
			w.pop()
		}
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			s := style{spec: w.p.headers.Spec(0)}
			w.startBlock(s)
			w.push(s)
		} else {
			w.pop()
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			s := style{spec: w.p.headers.Spec(0), code: true}
			w.startBlock(s)
			w.push(s)
			w.writeLines(n)
			w.pop()
		}
		return ast.WalkSkipChildren, nil
	case *ast.HTMLBlock, *ast.RawHTML, *ast.ThematicBreak:
		return ast.WalkSkipChildren, nil
	case *ast.ListItem:
		if entering {
			w.prefix = w.listMarker(n)
		}
	case *ast.Emphasis:
		if entering {
			s := w.top()
			if n.Level >= 2 {
				s.spec = font.Bold(s.spec)
			} else {
				s.spec = font.Italic(s.spec)
			}
			w.push(s)
		} else {
			w.pop()
		}
	case *east.Strikethrough:
		if entering {
			s := w.top()
			s.strike = true
			w.push(s)
		} else {
			w.pop()
		}
	case *ast.Link:
		if entering {
			s := w.top()
			s.link = true
			w.push(s)
		} else {
			w.pop()
		}
	case *ast.AutoLink:
		if entering {
			s := w.top()
			s.link = true
			w.push(s)
			w.write(string(n.Label(w.src)))
			w.pop()
		}
		return ast.WalkSkipChildren, nil
	case *ast.CodeSpan:
		if entering {
			s := w.top()
			s.code = true
			w.push(s)
		} else {
			w.pop()
		}
	case *ast.Text:
		if entering {
			w.write(string(n.Segment.Value(w.src)))
			switch {
			case n.HardLineBreak():
				w.write("\n")
			case n.SoftLineBreak():
				w.write(" ")
			}
		}
	case *ast.String:
		if entering {
			w.write(string(n.Value))
		}
	}
	return ast.WalkContinue, nil
}

func (w *walker) writeLines(n ast.Node) {
	lines := n.Lines()
	var body []byte
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		body = append(body, seg.Value(w.src)...)
	}
	for len(body) > 0 && body[len(body)-1] == '\n' {
		body = body[:len(body)-1]
	}
	w.write(string(body))
}

func (w *walker) listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return w.p.bullet
	}
	idx := list.Start
	for c := list.FirstChild(); c != nil && c != ast.Node(item); c = c.NextSibling() {
		idx++
	}
	return strconv.Itoa(idx) + ". "
}
