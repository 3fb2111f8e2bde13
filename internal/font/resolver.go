package font

import (
	"fmt"
	"io"
	"log/slog"
)

// MaxSpecDepth bounds how many modifiers may wrap a base spec.
const MaxSpecDepth = 64

// Resolver turns Specs into Descriptors against a style table.
type Resolver struct {
	table  *StyleTable
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStyleTable sets the style table used for system styles.
func WithStyleTable(t *StyleTable) Option {
	return func(r *Resolver) {
		if t != nil {
			r.table = t
		}
	}
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver using the default style table.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		table:  DefaultStyleTable(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the resolver's style table.
func (r *Resolver) Table() *StyleTable {
	return r.table
}

// Default returns the default body font for ctx.
func (r *Resolver) Default(ctx *DisplayContext) Descriptor {
	d, err := r.resolveSystem(SystemStyle{Style: StyleBody}, ctx)
	if err != nil {
		// The table always carries a positive body size.
		panic(fmt.Sprintf("font: default body font unresolvable: %v", err))
	}
	return d
}

// Resolve resolves spec for ctx. A nil ctx applies no dynamic type scaling.
func (r *Resolver) Resolve(spec Spec, ctx *DisplayContext) (Descriptor, error) {
	return r.resolve(spec, ctx, 0)
}

// ResolveOrFallback resolves spec, falling back to the nearest resolvable
// ancestor in the modifier chain and finally to the default body font.
// Fallbacks are logged at warn level.
func (r *Resolver) ResolveOrFallback(spec Spec, ctx *DisplayContext) Descriptor {
	current := spec
	for {
		d, err := r.Resolve(current, ctx)
		if err == nil {
			return d
		}
		r.logger.Warn("font spec unresolvable, falling back",
			"spec", specString(current), "error", err)

		m, ok := current.(Modified)
		if !ok || m.Base == nil {
			return r.Default(ctx)
		}
		current = m.Base
	}
}

func (r *Resolver) resolve(spec Spec, ctx *DisplayContext, depth int) (Descriptor, error) {
	if depth > MaxSpecDepth {
		return Descriptor{}, fmt.Errorf("%w: nesting deeper than %d", ErrUnresolvableFontSpec, MaxSpecDepth)
	}

	switch s := spec.(type) {
	case nil:
		return Descriptor{}, fmt.Errorf("%w: nil spec", ErrUnresolvableFontSpec)
	case SystemStyle:
		return r.resolveSystem(s, ctx)
	case NamedFamily:
		return r.resolveNamed(s, ctx)
	case Modified:
		base, err := r.resolve(s.Base, ctx, depth+1)
		if err != nil {
			return Descriptor{}, err
		}
		return applyModifier(base, s.Modifier)
	default:
		return Descriptor{}, fmt.Errorf("%w: unsupported spec %T", ErrUnresolvableFontSpec, spec)
	}
}

func (r *Resolver) resolveSystem(s SystemStyle, ctx *DisplayContext) (Descriptor, error) {
	m, ok := r.table.Metrics(s.Style)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrUnresolvableFontSpec, s.Style)
	}
	d, err := newDescriptor(r.table, SystemFamily, s.Style, RoundSize(m.Size*ctx.Scale()))
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrUnresolvableFontSpec, err)
	}
	if s.Weight != WeightUnset {
		if !s.Weight.Valid() {
			return Descriptor{}, fmt.Errorf("%w: weight %v", ErrUnresolvableFontSpec, s.Weight)
		}
		d = d.WithWeight(s.Weight)
	}
	if s.Width != WidthUnset {
		if !s.Width.Valid() {
			return Descriptor{}, fmt.Errorf("%w: width %v", ErrUnresolvableFontSpec, s.Width)
		}
		d = d.WithWidth(s.Width)
	}
	return d, nil
}

func (r *Resolver) resolveNamed(s NamedFamily, ctx *DisplayContext) (Descriptor, error) {
	if s.Name == "" {
		return Descriptor{}, fmt.Errorf("%w: empty family name", ErrUnresolvableFontSpec)
	}
	size := s.Size
	style := StyleBody
	if s.Scales {
		if !s.ScalesWith.Valid() {
			return Descriptor{}, fmt.Errorf("%w: %v", ErrUnresolvableFontSpec, s.ScalesWith)
		}
		style = s.ScalesWith
		size = RoundSize(size * ctx.Scale())
	}
	d, err := newDescriptor(r.table, Family(s.Name), style, size)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: family %s: %v", ErrUnresolvableFontSpec, s.Name, err)
	}
	return d, nil
}

// applyModifier applies one modifier step. Italic never touches the
// resolved weight; bold forces an explicit bold weight.
func applyModifier(base Descriptor, m Modifier) (Descriptor, error) {
	switch m.Kind {
	case ModItalic:
		return base.WithItalic(true), nil
	case ModBold:
		return base.WithBold(true), nil
	case ModWeight:
		if !m.Weight.Valid() {
			return Descriptor{}, fmt.Errorf("%w: weight %v", ErrUnresolvableFontSpec, m.Weight)
		}
		return base.WithWeight(m.Weight), nil
	case ModWidth:
		if !m.Width.Valid() {
			return Descriptor{}, fmt.Errorf("%w: width %v", ErrUnresolvableFontSpec, m.Width)
		}
		return base.WithWidth(m.Width), nil
	default:
		return Descriptor{}, fmt.Errorf("%w: %v", ErrUnresolvableFontSpec, m)
	}
}

func specString(s Spec) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}
