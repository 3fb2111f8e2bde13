package richtext

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rivo/uniseg"
)

// Run is a maximal span of text sharing one attribute set.
type Run struct {
	Range Range
	Attrs Attributes
}

// String returns a description such as "[0:5) {body 17pt bold}".
func (r Run) String() string {
	return r.Range.String() + " " + r.Attrs.String()
}

// Text is a string plus the runs that partition it. Offsets are grapheme
// cluster indices. Every exported mutation validates its arguments first
// and leaves the runs sorted, non-empty, contiguous and merged.
type Text struct {
	text   string
	bounds []int // byte offset of each grapheme start, plus len(text)
	runs   []Run
}

// New creates a text covered by a single run with attrs.
func New(s string, attrs Attributes) *Text {
	t := &Text{text: s, bounds: graphemeBounds(s)}
	if n := t.Len(); n > 0 {
		t.runs = []Run{{Range: NewRange(0, n), Attrs: attrs}}
	}
	return t
}

// FromRuns creates a text from explicit runs. The runs must partition the
// text; adjacent runs with equal attributes are merged.
func FromRuns(s string, runs []Run) (*Text, error) {
	t := &Text{text: s, bounds: graphemeBounds(s), runs: slices.Clone(runs)}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.runs = mergeRuns(t.runs)
	return t, nil
}

// Len returns the number of grapheme clusters.
func (t *Text) Len() int {
	return len(t.bounds) - 1
}

// String returns the plain text.
func (t *Text) String() string {
	return t.text
}

// Runs returns a copy of the runs.
func (t *Text) Runs() []Run {
	return slices.Clone(t.runs)
}

// RunCount returns the number of runs.
func (t *Text) RunCount() int {
	return len(t.runs)
}

// Clone returns an independent copy.
func (t *Text) Clone() *Text {
	return &Text{
		text:   t.text,
		bounds: slices.Clone(t.bounds),
		runs:   slices.Clone(t.runs),
	}
}

// Equal reports whether t and o hold the same text and runs.
func (t *Text) Equal(o *Text) bool {
	if t.text != o.text || len(t.runs) != len(o.runs) {
		return false
	}
	for i := range t.runs {
		if t.runs[i].Range != o.runs[i].Range || !t.runs[i].Attrs.Equal(o.runs[i].Attrs) {
			return false
		}
	}
	return true
}

// Validate checks that the runs partition [0, Len()).
func (t *Text) Validate() error {
	pos := 0
	for i, r := range t.runs {
		if r.Range.Start != pos {
			return fmt.Errorf("%w: run %d starts at %d, want %d", ErrInvalidRuns, i, r.Range.Start, pos)
		}
		if r.Range.End <= r.Range.Start {
			return fmt.Errorf("%w: run %d is empty or inverted %s", ErrInvalidRuns, i, r.Range)
		}
		pos = r.Range.End
	}
	if pos != t.Len() {
		return fmt.Errorf("%w: runs cover %d of %d", ErrInvalidRuns, pos, t.Len())
	}
	return nil
}

// CheckRange validates r against the text length.
func (t *Text) CheckRange(r Range) error {
	if r.End < r.Start {
		return fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	if r.Start < 0 || r.End > t.Len() {
		return fmt.Errorf("%w: %s in text of length %d", ErrRangeOutOfBounds, r, t.Len())
	}
	return nil
}

// ByteRange converts a grapheme range to byte offsets into String().
func (t *Text) ByteRange(r Range) (int, int, error) {
	if err := t.CheckRange(r); err != nil {
		return 0, 0, err
	}
	return t.bounds[r.Start], t.bounds[r.End], nil
}

// TextIn returns the plain text of r.
func (t *Text) TextIn(r Range) (string, error) {
	start, end, err := t.ByteRange(r)
	if err != nil {
		return "", err
	}
	return t.text[start:end], nil
}

// Dump returns one line per run: range, quoted text and attributes.
func (t *Text) Dump() string {
	var b strings.Builder
	for _, r := range t.runs {
		s, _ := t.TextIn(r.Range)
		fmt.Fprintf(&b, "%s %q %s\n", r.Range, s, r.Attrs)
	}
	return b.String()
}

// runAt returns the index of the run containing offset.
func (t *Text) runAt(offset int) int {
	i, _ := slices.BinarySearchFunc(t.runs, offset, func(r Run, off int) int {
		switch {
		case r.Range.End <= off:
			return -1
		case r.Range.Start > off:
			return 1
		}
		return 0
	})
	return i
}

func graphemeBounds(s string) []int {
	bounds := make([]int, 0, len(s)+1)
	state := -1
	pos := 0
	rest := s
	for len(rest) > 0 {
		bounds = append(bounds, pos)
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
	}
	return append(bounds, pos)
}

// mergeRuns coalesces adjacent runs with equal attributes.
func mergeRuns(runs []Run) []Run {
	if len(runs) < 2 {
		return runs
	}
	out := runs[:1]
	for _, r := range runs[1:] {
		last := &out[len(out)-1]
		if last.Attrs.Equal(r.Attrs) && last.Range.End == r.Range.Start {
			last.Range.End = r.Range.End
			continue
		}
		out = append(out, r)
	}
	return out
}
