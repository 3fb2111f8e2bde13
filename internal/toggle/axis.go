package toggle

import (
	"fmt"
	"strings"
)

// Axis is a style dimension that can be toggled over a selection.
type Axis uint8

// Toggle axes.
const (
	AxisBold Axis = iota
	AxisItalic
	AxisUnderline
	AxisStrikethrough
	AxisSubscript
	AxisSuperscript
	axisCount
)

var axisNames = [...]string{
	AxisBold:          "bold",
	AxisItalic:        "italic",
	AxisUnderline:     "underline",
	AxisStrikethrough: "strikethrough",
	AxisSubscript:     "subscript",
	AxisSuperscript:   "superscript",
}

// String returns the axis name.
func (a Axis) String() string {
	if a < axisCount {
		return axisNames[a]
	}
	return fmt.Sprintf("axis(%d)", uint8(a))
}

// Valid returns true for a known axis.
func (a Axis) Valid() bool {
	return a < axisCount
}

// Axes returns every axis in declaration order.
func Axes() []Axis {
	out := make([]Axis, 0, axisCount)
	for a := Axis(0); a < axisCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAxis parses an axis name. "strike", "sub" and "super" are accepted
// as short forms.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bold", "b":
		return AxisBold, nil
	case "italic", "i":
		return AxisItalic, nil
	case "underline", "u":
		return AxisUnderline, nil
	case "strikethrough", "strike":
		return AxisStrikethrough, nil
	case "subscript", "sub":
		return AxisSubscript, nil
	case "superscript", "super", "sup":
		return AxisSuperscript, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// AxisState summarizes an axis over a selection.
type AxisState uint8

// Axis states.
const (
	StateOff AxisState = iota
	StateOn
	StateMixed
)

// String returns "off", "on" or "mixed".
func (s AxisState) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateOn:
		return "on"
	case StateMixed:
		return "mixed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}
