// Package font describes fonts the way a text editor needs them: as
// immutable descriptors (family, point size, traits, weight, width and base
// text style) produced by resolving an abstract font specification.
//
// # Specifications
//
// A Spec is a small expression tree. Leaves name a system text style or a
// concrete family; Modified nodes wrap a base spec with one modifier:
//
//	spec := font.Italic(font.Bold(font.System(font.StyleTitle)))
//
// Resolution is order-respecting: the innermost base resolves first and each
// modifier is applied on the way out.
//
//	r := font.NewResolver()
//	d, err := r.Resolve(spec, nil)
//
// Italic never erases a weight established by an inner modifier; Bold never
// drops an italic trait.
//
// # Style table
//
// Default point sizes and weights per text style live in a StyleTable that is
// built once and never mutated. DefaultStyleTable mirrors the platform's
// "Large" content size category; configuration may build a replacement with
// NewStyleTable before any resolver is created.
//
// # Foreign fonts
//
// Fonts that arrive from another representation are described by NativeFont,
// which exposes only inspectable metrics. FromNative derives a best-effort
// Descriptor from it.
package font
