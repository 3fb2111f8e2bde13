package richtext

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color attribute. The zero value means "not set": the
// renderer's default color applies.
type Color struct {
	R, G, B uint8
	Set     bool
}

// Common colors.
var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)
	ColorLink  = RGB(0, 122, 255)
)

// RGB creates a color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// ParseColor parses "#RRGGBB" or the short "#RGB" form.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// IsSet returns true if the color carries a value.
func (c Color) IsSet() bool {
	return c.Set
}

// Colorful converts the color for blending and space conversions.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Hex returns "#rrggbb", or "" when the color is not set.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return c.Colorful().Hex()
}

// Blend mixes c toward other in Lab space. Unset colors are returned as is.
func (c Color) Blend(other Color, amount float64) Color {
	if !c.Set || !other.Set {
		return c
	}
	r, g, b := c.Colorful().BlendLab(other.Colorful(), amount).Clamped().RGB255()
	return RGB(r, g, b)
}

// String returns the hex form or "default".
func (c Color) String() string {
	if !c.Set {
		return "default"
	}
	return c.Hex()
}
