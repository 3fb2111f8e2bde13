package font

import (
	"fmt"
	"math"
	"strings"
)

// Traits is a set of symbolic font traits.
type Traits uint8

// Symbolic trait flags.
const (
	TraitNone   Traits = 0
	TraitBold   Traits = 1 << 0
	TraitItalic Traits = 1 << 1
)

// Has returns true if the set contains every trait in t.
func (ts Traits) Has(t Traits) bool {
	return ts&t == t && t != TraitNone
}

// With returns a new set with t added.
func (ts Traits) With(t Traits) Traits {
	return ts | t
}

// Without returns a new set with t removed.
func (ts Traits) Without(t Traits) Traits {
	return ts &^ t
}

// String returns a readable form such as "bold|italic".
func (ts Traits) String() string {
	var parts []string
	if ts.Has(TraitBold) {
		parts = append(parts, "bold")
	}
	if ts.Has(TraitItalic) {
		parts = append(parts, "italic")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Weight is the heaviness axis of a font. WeightUnset means the base
// style's default applies.
type Weight uint8

// Font weights, lightest to heaviest.
const (
	WeightUnset Weight = iota
	WeightUltraLight
	WeightThin
	WeightLight
	WeightRegular
	WeightMedium
	WeightSemibold
	WeightBold
	WeightHeavy
	WeightBlack
)

var weightNames = [...]string{
	WeightUnset:      "unset",
	WeightUltraLight: "ultralight",
	WeightThin:       "thin",
	WeightLight:      "light",
	WeightRegular:    "regular",
	WeightMedium:     "medium",
	WeightSemibold:   "semibold",
	WeightBold:       "bold",
	WeightHeavy:      "heavy",
	WeightBlack:      "black",
}

// Numeric weight values on the platform's -1..1 scale.
var weightValues = [...]float64{
	WeightUltraLight: -0.8,
	WeightThin:       -0.6,
	WeightLight:      -0.4,
	WeightRegular:    0,
	WeightMedium:     0.23,
	WeightSemibold:   0.3,
	WeightBold:       0.4,
	WeightHeavy:      0.56,
	WeightBlack:      0.62,
}

// String returns the weight name.
func (w Weight) String() string {
	if int(w) < len(weightNames) {
		return weightNames[w]
	}
	return fmt.Sprintf("weight(%d)", uint8(w))
}

// Valid returns true for a concrete, known weight.
func (w Weight) Valid() bool {
	return w >= WeightUltraLight && w <= WeightBlack
}

// Value returns the numeric weight. Unset and unknown weights report regular.
func (w Weight) Value() float64 {
	if !w.Valid() {
		return 0
	}
	return weightValues[w]
}

// WeightFromValue maps a numeric weight to the nearest named weight.
func WeightFromValue(v float64) Weight {
	best := WeightRegular
	bestDist := math.Inf(1)
	for w := WeightUltraLight; w <= WeightBlack; w++ {
		d := math.Abs(weightValues[w] - v)
		if d < bestDist {
			best, bestDist = w, d
		}
	}
	return best
}

// ParseWeight parses a weight name such as "semibold".
func ParseWeight(s string) (Weight, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for w := WeightUltraLight; w <= WeightBlack; w++ {
		if weightNames[w] == name {
			return w, nil
		}
	}
	return WeightUnset, fmt.Errorf("%w: %q", ErrUnknownWeight, s)
}

// Width is the horizontal proportion axis of a font.
type Width uint8

// Font widths, narrowest to widest.
const (
	WidthUnset Width = iota
	WidthCompressed
	WidthCondensed
	WidthStandard
	WidthExpanded
)

var widthNames = [...]string{
	WidthUnset:      "unset",
	WidthCompressed: "compressed",
	WidthCondensed:  "condensed",
	WidthStandard:   "standard",
	WidthExpanded:   "expanded",
}

var widthValues = [...]float64{
	WidthCompressed: -0.3,
	WidthCondensed:  -0.2,
	WidthStandard:   0,
	WidthExpanded:   0.2,
}

// String returns the width name.
func (w Width) String() string {
	if int(w) < len(widthNames) {
		return widthNames[w]
	}
	return fmt.Sprintf("width(%d)", uint8(w))
}

// Valid returns true for a concrete, known width.
func (w Width) Valid() bool {
	return w >= WidthCompressed && w <= WidthExpanded
}

// Value returns the numeric width. Unset and unknown widths report standard.
func (w Width) Value() float64 {
	if !w.Valid() {
		return 0
	}
	return widthValues[w]
}

// WidthFromValue maps a numeric width to the nearest named width.
func WidthFromValue(v float64) Width {
	best := WidthStandard
	bestDist := math.Inf(1)
	for w := WidthCompressed; w <= WidthExpanded; w++ {
		d := math.Abs(widthValues[w] - v)
		if d < bestDist {
			best, bestDist = w, d
		}
	}
	return best
}

// ParseWidth parses a width name such as "condensed".
func ParseWidth(s string) (Width, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for w := WidthCompressed; w <= WidthExpanded; w++ {
		if widthNames[w] == name {
			return w, nil
		}
	}
	return WidthUnset, fmt.Errorf("%w: %q", ErrUnknownWidth, s)
}
