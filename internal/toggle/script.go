package toggle

import (
	"fmt"
	"math"

	"github.com/dshills/richedit/internal/richtext"
)

// Default sub/superscript metrics.
const (
	ScriptScale       = 0.75
	SuperscriptOffset = 0.4
	SubscriptOffset   = -0.3
)

// ScriptMetrics controls sub/superscript rendering. Offsets are fractions
// of the point size before shrinking.
type ScriptMetrics struct {
	Scale             float64
	SuperscriptOffset float64
	SubscriptOffset   float64
}

// DefaultScriptMetrics returns the standard ratios.
func DefaultScriptMetrics() ScriptMetrics {
	return ScriptMetrics{
		Scale:             ScriptScale,
		SuperscriptOffset: SuperscriptOffset,
		SubscriptOffset:   SubscriptOffset,
	}
}

// Validate checks that the scale is in (0, 1] and the offsets point the
// right way.
func (m ScriptMetrics) Validate() error {
	if !(m.Scale > 0 && m.Scale <= 1) {
		return fmt.Errorf("%w: scale %v", ErrInvalidScriptMetrics, m.Scale)
	}
	if !(m.SuperscriptOffset > 0) {
		return fmt.Errorf("%w: superscript offset %v", ErrInvalidScriptMetrics, m.SuperscriptOffset)
	}
	if !(m.SubscriptOffset < 0) {
		return fmt.Errorf("%w: subscript offset %v", ErrInvalidScriptMetrics, m.SubscriptOffset)
	}
	return nil
}

// Position is the vertical script state of a run.
type Position int8

// Script positions, derived from the baseline offset sign.
const (
	PositionSubscript   Position = -1
	PositionNormal      Position = 0
	PositionSuperscript Position = 1
)

// String returns the position name.
func (p Position) String() string {
	switch p {
	case PositionSubscript:
		return "subscript"
	case PositionSuperscript:
		return "superscript"
	}
	return "normal"
}

// PositionOf reports the script position of attrs.
func PositionOf(a richtext.Attributes) Position {
	switch {
	case a.BaselineOffset == nil || *a.BaselineOffset == 0:
		return PositionNormal
	case *a.BaselineOffset > 0:
		return PositionSuperscript
	default:
		return PositionSubscript
	}
}

// round4 trims float noise from derived metrics.
func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
