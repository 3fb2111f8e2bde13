package richtext

import (
	"sort"
	"strings"
)

// byteRun is a run addressed in bytes, used while the text changes and
// grapheme boundaries are not yet known.
type byteRun struct {
	start, end int
	attrs      Attributes
}

func (t *Text) byteRuns() []byteRun {
	out := make([]byteRun, 0, len(t.runs))
	for _, r := range t.runs {
		out = append(out, byteRun{
			start: t.bounds[r.Range.Start],
			end:   t.bounds[r.Range.End],
			attrs: r.Attrs,
		})
	}
	return out
}

// rebuild replaces the content with s and the byte-addressed runs. A
// cluster that spans a run boundary belongs to the earlier run.
func (t *Text) rebuild(s string, brs []byteRun) {
	bounds := graphemeBounds(s)
	toGrapheme := func(b int) int {
		return sort.SearchInts(bounds, b)
	}
	runs := make([]Run, 0, len(brs))
	for _, br := range brs {
		r := NewRange(toGrapheme(br.start), toGrapheme(br.end))
		if r.IsEmpty() {
			continue
		}
		runs = append(runs, Run{Range: r, Attrs: br.attrs})
	}
	t.text = s
	t.bounds = bounds
	t.runs = mergeRuns(runs)
}

// Builder assembles a Text from styled pieces.
type Builder struct {
	buf  strings.Builder
	runs []byteRun
}

// WriteString appends s with attrs.
func (b *Builder) WriteString(s string, attrs Attributes) {
	if s == "" {
		return
	}
	start := b.buf.Len()
	b.buf.WriteString(s)
	b.runs = append(b.runs, byteRun{start: start, end: b.buf.Len(), attrs: attrs})
}

// Len returns the number of bytes written.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Text returns the assembled text. The builder may keep being used.
func (b *Builder) Text() *Text {
	t := &Text{}
	t.rebuild(b.buf.String(), append([]byteRun(nil), b.runs...))
	return t
}

// Append concatenates other onto t. Boundary runs with equal attributes
// are merged.
func (t *Text) Append(other *Text) {
	brs := t.byteRuns()
	shift := len(t.text)
	for _, br := range other.byteRuns() {
		br.start += shift
		br.end += shift
		brs = append(brs, br)
	}
	t.rebuild(t.text+other.text, brs)
}

// Slice returns a new text holding r with its attributes.
func (t *Text) Slice(r Range) (*Text, error) {
	runs, err := t.RunsIn(r)
	if err != nil {
		return nil, err
	}
	s, _ := t.TextIn(r)
	out := &Text{text: s, bounds: graphemeBounds(s)}
	for _, run := range runs {
		run.Range = run.Range.Shift(-r.Start)
		out.runs = append(out.runs, run)
	}
	return out, nil
}

// Replace substitutes s for the text in r. Inserted text takes the
// attributes of the run it extends: the first replaced run, else the run
// before the insertion point, else the first run.
func (t *Text) Replace(r Range, s string) error {
	if err := t.CheckRange(r); err != nil {
		return err
	}
	attrs := t.inheritedAttributes(r)
	bs, be := t.bounds[r.Start], t.bounds[r.End]

	var brs []byteRun
	for _, br := range t.byteRuns() {
		if br.start < bs {
			head := br
			head.end = min(head.end, bs)
			brs = append(brs, head)
		}
	}
	if s != "" {
		brs = append(brs, byteRun{start: bs, end: bs + len(s), attrs: attrs})
	}
	delta := len(s) - (be - bs)
	for _, br := range t.byteRuns() {
		if br.end > be {
			tail := br
			tail.start = max(tail.start, be) + delta
			tail.end += delta
			brs = append(brs, tail)
		}
	}
	t.rebuild(t.text[:bs]+s+t.text[be:], brs)
	return nil
}

// Insert inserts s at offset.
func (t *Text) Insert(offset int, s string) error {
	return t.Replace(NewRange(offset, offset), s)
}

// Delete removes the text in r.
func (t *Text) Delete(r Range) error {
	return t.Replace(r, "")
}

func (t *Text) inheritedAttributes(r Range) Attributes {
	switch {
	case len(t.runs) == 0:
		return Attributes{}
	case !r.IsEmpty():
		return t.runs[t.runAt(r.Start)].Attrs
	case r.Start == 0:
		return t.runs[0].Attrs
	default:
		return t.runs[t.runAt(r.Start-1)].Attrs
	}
}
