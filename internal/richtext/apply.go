package richtext

import "slices"

// Segment is one partition of a range read with Attribute.
type Segment struct {
	Range Range
	Value any
}

// split ensures a run boundary at offset and returns the index of the run
// that starts there. Offsets at 0 or Len() need no split.
func (t *Text) split(offset int) int {
	i := t.runAt(offset)
	if i >= len(t.runs) || t.runs[i].Range.Start == offset {
		return i
	}
	head := t.runs[i]
	tail := head
	head.Range.End = offset
	tail.Range.Start = offset
	t.runs[i] = head
	t.runs = slices.Insert(t.runs, i+1, tail)
	return i + 1
}

// Apply transforms the attributes of every position in r with fn. Runs
// straddling the range are split first and equal neighbors merged after.
// An empty range is a no-op.
func (t *Text) Apply(r Range, fn func(Attributes) Attributes) error {
	if err := t.CheckRange(r); err != nil {
		return err
	}
	if r.IsEmpty() {
		return nil
	}
	i := t.split(r.Start)
	j := t.split(r.End)
	for k := i; k < j; k++ {
		t.runs[k].Attrs = fn(t.runs[k].Attrs)
	}
	t.mergeWindow(i, j)
	return nil
}

// mergeWindow merges equal runs around the modified window [i, j).
func (t *Text) mergeWindow(i, j int) {
	lo := max(i-1, 0)
	hi := min(j+1, len(t.runs))
	merged := mergeRuns(slices.Clone(t.runs[lo:hi]))
	t.runs = slices.Replace(t.runs, lo, hi, merged...)
}

// SetAttribute sets key to value over r. The value is type checked before
// anything changes. Setting the same value twice yields the same runs.
func (t *Text) SetAttribute(r Range, key Key, value any) error {
	if err := t.CheckRange(r); err != nil {
		return err
	}
	if _, err := (Attributes{}).With(key, value); err != nil {
		return err
	}
	return t.Apply(r, func(a Attributes) Attributes {
		next, _ := a.With(key, value)
		return next
	})
}

// SetAttributes replaces the whole attribute set over r.
func (t *Text) SetAttributes(r Range, attrs Attributes) error {
	return t.Apply(r, func(Attributes) Attributes { return attrs })
}

// Attribute returns the value of key for every run intersecting r,
// clipped to r.
func (t *Text) Attribute(r Range, key Key) ([]Segment, error) {
	if _, err := (Attributes{}).Get(key); err != nil {
		return nil, err
	}
	runs, err := t.RunsIn(r)
	if err != nil {
		return nil, err
	}
	segs := make([]Segment, 0, len(runs))
	for _, run := range runs {
		v, _ := run.Attrs.Get(key)
		segs = append(segs, Segment{Range: run.Range, Value: v})
	}
	return segs, nil
}

// RunsIn returns the runs intersecting r with ranges clipped to r. An
// empty range yields no runs.
func (t *Text) RunsIn(r Range) ([]Run, error) {
	if err := t.CheckRange(r); err != nil {
		return nil, err
	}
	if r.IsEmpty() {
		return nil, nil
	}
	var out []Run
	for i := t.runAt(r.Start); i < len(t.runs); i++ {
		run := t.runs[i]
		if run.Range.Start >= r.End {
			break
		}
		run.Range = run.Range.Intersect(r)
		out = append(out, run)
	}
	return out, nil
}

// AttributesAt returns the attributes at offset.
func (t *Text) AttributesAt(offset int) (Attributes, error) {
	if err := t.CheckRange(NewRange(offset, offset+1)); err != nil {
		return Attributes{}, err
	}
	return t.runs[t.runAt(offset)].Attrs, nil
}
