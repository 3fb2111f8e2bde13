package font

import (
	"fmt"
	"strings"
)

// TextStyle is a semantic text style whose size and default weight come
// from the style table.
type TextStyle uint8

// Text styles. The zero value is body.
const (
	StyleBody TextStyle = iota
	StyleLargeTitle
	StyleTitle
	StyleTitle2
	StyleTitle3
	StyleHeadline
	StyleSubheadline
	StyleCallout
	StyleFootnote
	StyleCaption
	StyleCaption2

	styleCount
)

var styleNames = [styleCount]string{
	StyleBody:        "body",
	StyleLargeTitle:  "largeTitle",
	StyleTitle:       "title",
	StyleTitle2:      "title2",
	StyleTitle3:      "title3",
	StyleHeadline:    "headline",
	StyleSubheadline: "subheadline",
	StyleCallout:     "callout",
	StyleFootnote:    "footnote",
	StyleCaption:     "caption",
	StyleCaption2:    "caption2",
}

// Family names the platform reports for style-based system fonts.
var stylePlatformNames = [styleCount]string{
	StyleBody:        "UICTFontTextStyleBody",
	StyleLargeTitle:  "UICTFontTextStyleTitle0",
	StyleTitle:       "UICTFontTextStyleTitle1",
	StyleTitle2:      "UICTFontTextStyleTitle2",
	StyleTitle3:      "UICTFontTextStyleTitle3",
	StyleHeadline:    "UICTFontTextStyleHeadline",
	StyleSubheadline: "UICTFontTextStyleSubhead",
	StyleCallout:     "UICTFontTextStyleCallout",
	StyleFootnote:    "UICTFontTextStyleFootnote",
	StyleCaption:     "UICTFontTextStyleCaption1",
	StyleCaption2:    "UICTFontTextStyleCaption2",
}

// String returns the style name.
func (s TextStyle) String() string {
	if s < styleCount {
		return styleNames[s]
	}
	return fmt.Sprintf("style(%d)", uint8(s))
}

// Valid returns true for a known style.
func (s TextStyle) Valid() bool {
	return s < styleCount
}

// PlatformName returns the family name the platform uses for the style.
func (s TextStyle) PlatformName() string {
	if s < styleCount {
		return stylePlatformNames[s]
	}
	return ""
}

// AllStyles returns every text style in declaration order.
func AllStyles() []TextStyle {
	out := make([]TextStyle, 0, styleCount)
	for s := StyleBody; s < styleCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParseTextStyle accepts a style name ("title2") or a platform family name
// ("UICTFontTextStyleTitle2"). Matching is case-insensitive.
func ParseTextStyle(name string) (TextStyle, error) {
	n := strings.TrimSpace(name)
	for _, s := range AllStyles() {
		if strings.EqualFold(styleNames[s], n) || strings.EqualFold(stylePlatformNames[s], n) {
			return s, nil
		}
	}
	return StyleBody, fmt.Errorf("%w: %q", ErrUnknownTextStyle, name)
}

// StyleMetrics holds the default point size and weight of a text style.
type StyleMetrics struct {
	Size   float64
	Weight Weight
}

// StyleTable maps text styles to their default metrics. A table is never
// mutated after construction.
type StyleTable struct {
	metrics [styleCount]StyleMetrics
}

var defaultTable = &StyleTable{metrics: [styleCount]StyleMetrics{
	StyleLargeTitle:  {Size: 34, Weight: WeightRegular},
	StyleTitle:       {Size: 28, Weight: WeightRegular},
	StyleTitle2:      {Size: 22, Weight: WeightRegular},
	StyleTitle3:      {Size: 20, Weight: WeightRegular},
	StyleHeadline:    {Size: 17, Weight: WeightSemibold},
	StyleBody:        {Size: 17, Weight: WeightRegular},
	StyleCallout:     {Size: 16, Weight: WeightRegular},
	StyleSubheadline: {Size: 15, Weight: WeightRegular},
	StyleFootnote:    {Size: 13, Weight: WeightRegular},
	StyleCaption:     {Size: 12, Weight: WeightRegular},
	StyleCaption2:    {Size: 11, Weight: WeightRegular},
}}

// DefaultStyleTable returns the built-in table for the "Large" content size.
func DefaultStyleTable() *StyleTable {
	return defaultTable
}

// NewStyleTable returns a copy of the default table with overrides applied.
// An override with WeightUnset keeps the default weight.
func NewStyleTable(overrides map[TextStyle]StyleMetrics) (*StyleTable, error) {
	t := &StyleTable{metrics: defaultTable.metrics}
	for style, m := range overrides {
		if !style.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTextStyle, style)
		}
		if !(m.Size > 0) {
			return nil, fmt.Errorf("style %s: %w", style, ErrInvalidPointSize)
		}
		if m.Weight != WeightUnset && !m.Weight.Valid() {
			return nil, fmt.Errorf("style %s: %w", style, ErrUnknownWeight)
		}
		if m.Weight == WeightUnset {
			m.Weight = t.metrics[style].Weight
		}
		t.metrics[style] = m
	}
	return t, nil
}

// Metrics returns the metrics for a style.
func (t *StyleTable) Metrics(s TextStyle) (StyleMetrics, bool) {
	if !s.Valid() {
		return StyleMetrics{}, false
	}
	return t.metrics[s], true
}

// SizeCategory is the user's preferred content size.
type SizeCategory uint8

// Content size categories. The zero value is the platform default, large.
const (
	SizeLarge SizeCategory = iota
	SizeExtraSmall
	SizeSmall
	SizeMedium
	SizeExtraLarge
	SizeExtraExtraLarge
	SizeExtraExtraExtraLarge
	SizeAccessibilityMedium
	SizeAccessibilityLarge
	SizeAccessibilityExtraLarge
	SizeAccessibilityExtraExtraLarge
	SizeAccessibilityExtraExtraExtraLarge

	sizeCategoryCount
)

var sizeCategoryNames = [sizeCategoryCount]string{
	SizeLarge:                             "large",
	SizeExtraSmall:                        "xSmall",
	SizeSmall:                             "small",
	SizeMedium:                            "medium",
	SizeExtraLarge:                        "xLarge",
	SizeExtraExtraLarge:                   "xxLarge",
	SizeExtraExtraExtraLarge:              "xxxLarge",
	SizeAccessibilityMedium:               "accessibility1",
	SizeAccessibilityLarge:                "accessibility2",
	SizeAccessibilityExtraLarge:           "accessibility3",
	SizeAccessibilityExtraExtraLarge:      "accessibility4",
	SizeAccessibilityExtraExtraExtraLarge: "accessibility5",
}

// Body point size for each category; other styles scale proportionally.
var sizeCategoryBody = [sizeCategoryCount]float64{
	SizeLarge:                             17,
	SizeExtraSmall:                        14,
	SizeSmall:                             15,
	SizeMedium:                            16,
	SizeExtraLarge:                        19,
	SizeExtraExtraLarge:                   21,
	SizeExtraExtraExtraLarge:              23,
	SizeAccessibilityMedium:               28,
	SizeAccessibilityLarge:                33,
	SizeAccessibilityExtraLarge:           40,
	SizeAccessibilityExtraExtraLarge:      47,
	SizeAccessibilityExtraExtraExtraLarge: 53,
}

// String returns the category name.
func (c SizeCategory) String() string {
	if c < sizeCategoryCount {
		return sizeCategoryNames[c]
	}
	return fmt.Sprintf("sizeCategory(%d)", uint8(c))
}

// ParseSizeCategory parses a category name such as "xLarge".
func ParseSizeCategory(name string) (SizeCategory, error) {
	n := strings.TrimSpace(name)
	for c := SizeLarge; c < sizeCategoryCount; c++ {
		if strings.EqualFold(sizeCategoryNames[c], n) {
			return c, nil
		}
	}
	return SizeLarge, fmt.Errorf("unknown size category %q", name)
}

// DisplayContext carries the environment fonts are resolved for.
type DisplayContext struct {
	Category SizeCategory
}

// Scale returns the dynamic type scaling factor for the context.
// A nil context does not scale.
func (c *DisplayContext) Scale() float64 {
	if c == nil || c.Category >= sizeCategoryCount {
		return 1
	}
	return sizeCategoryBody[c.Category] / sizeCategoryBody[SizeLarge]
}
