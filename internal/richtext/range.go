package richtext

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a span of grapheme offsets. Start is inclusive, End is
// exclusive: [Start, End).
type Range struct {
	Start int
	End   int
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// ParseRange parses "START:END" as produced by Range.Spec.
func ParseRange(s string) (Range, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Range{}, fmt.Errorf("%w: %q is not START:END", ErrRangeInvalid, s)
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return Range{}, fmt.Errorf("%w: bad start %q", ErrRangeInvalid, a)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return Range{}, fmt.Errorf("%w: bad end %q", ErrRangeInvalid, b)
	}
	r := NewRange(start, end)
	if !r.IsValid() {
		return Range{}, fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	return r, nil
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Spec returns the "START:END" form accepted by ParseRange.
func (r Range) Spec() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// Len returns the number of positions in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (0 <= Start <= End).
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange returns true if the given range is entirely within this range.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps returns true if this range overlaps with another range.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Intersect returns the intersection of two ranges, or an empty range if they don't overlap.
func (r Range) Intersect(other Range) Range {
	start := max(r.Start, other.Start)
	end := min(r.End, other.End)
	if start >= end {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: end}
}

// Shift returns a new range shifted by the given delta.
func (r Range) Shift(delta int) Range {
	return Range{
		Start: r.Start + delta,
		End:   r.End + delta,
	}
}
