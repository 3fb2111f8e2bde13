package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dshills/richedit/internal/font"
	"github.com/dshills/richedit/internal/history"
	"github.com/dshills/richedit/internal/logging"
	"github.com/dshills/richedit/internal/markup"
	"github.com/dshills/richedit/internal/richtext"
	"github.com/dshills/richedit/internal/script"
	"github.com/dshills/richedit/internal/toggle"
)

// Section accessors decode a snapshot of one part of the tree. A malformed
// value falls back to its default and is recorded in Errors.

// ScriptConfig holds settings for the Lua runner.
type ScriptConfig struct {
	// Timeout bounds a single script run.
	Timeout time.Duration
}

// HistoryConfig holds undo settings.
type HistoryConfig struct {
	// MaxEntries caps the undo stack. Zero selects the default.
	MaxEntries int
}

// MarkupConfig holds markdown ingestion settings.
type MarkupConfig struct {
	// CodeFont is the spec used for code spans and blocks.
	CodeFont font.Spec
	// LinkColor is the foreground applied to links.
	LinkColor richtext.Color
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	d := logging.DefaultConfig()
	return logging.Config{
		Level:      c.getStringOr("logging.level", d.Level),
		Format:     c.getStringOr("logging.format", d.Format),
		File:       c.getStringOr("logging.file", d.File),
		MaxSize:    c.getIntOr("logging.maxSize", d.MaxSize),
		MaxBackups: c.getIntOr("logging.maxBackups", d.MaxBackups),
	}
}

// Display returns the display context fonts are resolved for.
func (c *Config) Display() *font.DisplayContext {
	name := c.getStringOr("display.sizeCategory", "large")
	cat, err := font.ParseSizeCategory(name)
	if err != nil {
		c.recordConfigError("display.sizeCategory", fmt.Errorf("%w: %v", ErrInvalidValue, err))
	}
	return &font.DisplayContext{Category: cat}
}

// StyleTable returns the text style table with the styles.<name> overrides
// applied. Each override has a size and an optional weight name.
func (c *Config) StyleTable() *font.StyleTable {
	v, ok := c.Get("styles")
	if !ok {
		return font.DefaultStyleTable()
	}
	section, ok := v.(map[string]any)
	if !ok {
		c.recordConfigError("styles", typeError("styles", "table", v))
		return font.DefaultStyleTable()
	}

	overrides := make(map[font.TextStyle]font.StyleMetrics, len(section))
	for name := range section {
		path := "styles." + name
		style, err := font.ParseTextStyle(name)
		if err != nil {
			c.recordConfigError(path, fmt.Errorf("%w: %v", ErrInvalidValue, err))
			continue
		}
		def, _ := font.DefaultStyleTable().Metrics(style)
		m := font.StyleMetrics{Size: c.getFloatOr(path+".size", def.Size)}
		if w := c.getStringOr(path+".weight", ""); w != "" {
			weight, err := font.ParseWeight(w)
			if err != nil {
				c.recordConfigError(path+".weight", fmt.Errorf("%w: %v", ErrInvalidValue, err))
			} else {
				m.Weight = weight
			}
		}
		overrides[style] = m
	}

	table, err := font.NewStyleTable(overrides)
	if err != nil {
		c.recordConfigError("styles", fmt.Errorf("%w: %v", ErrInvalidValue, err))
		return font.DefaultStyleTable()
	}
	return table
}

// Resolver returns a font resolver over StyleTable.
func (c *Config) Resolver(opts ...font.Option) *font.Resolver {
	return font.NewResolver(append([]font.Option{font.WithStyleTable(c.StyleTable())}, opts...)...)
}

// Headers returns the heading font specs. Keys of the headers table are
// heading levels 0 (body) through 6.
func (c *Config) Headers() markup.Headers {
	raw, err := c.GetStringMap("headers")
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError("headers", err)
		}
		return markup.DefaultHeaders()
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	specs := make(map[int]string, len(raw))
	for _, k := range keys {
		level, err := strconv.Atoi(k)
		if err != nil {
			c.recordConfigError("headers."+k, fmt.Errorf("%w: heading level must be a number", ErrInvalidValue))
			continue
		}
		specs[level] = raw[k]
	}

	h, err := markup.ParseHeaders(specs)
	if err != nil {
		c.recordConfigError("headers", fmt.Errorf("%w: %v", ErrInvalidValue, err))
		return markup.DefaultHeaders()
	}
	return h
}

// ScriptMetrics returns the sub/superscript ratios.
func (c *Config) ScriptMetrics() toggle.ScriptMetrics {
	d := toggle.DefaultScriptMetrics()
	m := toggle.ScriptMetrics{
		Scale:             c.getFloatOr("script.scale", d.Scale),
		SuperscriptOffset: c.getFloatOr("script.superscriptOffset", d.SuperscriptOffset),
		SubscriptOffset:   c.getFloatOr("script.subscriptOffset", d.SubscriptOffset),
	}
	if err := m.Validate(); err != nil {
		c.recordConfigError("script", err)
		return d
	}
	return m
}

// Script returns the Lua runner settings.
func (c *Config) Script() ScriptConfig {
	timeout := c.getDurationOr("script.timeout", script.DefaultTimeout)
	if timeout <= 0 {
		c.recordConfigError("script.timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
		timeout = script.DefaultTimeout
	}
	return ScriptConfig{Timeout: timeout}
}

// History returns the undo settings.
func (c *Config) History() HistoryConfig {
	n := c.getIntOr("history.maxEntries", history.DefaultMaxEntries)
	if n < 0 {
		c.recordConfigError("history.maxEntries", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
		n = history.DefaultMaxEntries
	}
	return HistoryConfig{MaxEntries: n}
}

// Markup returns the markdown ingestion settings.
func (c *Config) Markup() MarkupConfig {
	cfg := MarkupConfig{
		CodeFont:  font.NamedScaling(markup.CodeFamily, 15, font.StyleBody),
		LinkColor: richtext.ColorLink,
	}
	if s := c.getStringOr("markup.codeFont", ""); s != "" {
		spec, err := font.ParseSpec(s)
		if err != nil {
			c.recordConfigError("markup.codeFont", fmt.Errorf("%w: %v", ErrInvalidValue, err))
		} else {
			cfg.CodeFont = spec
		}
	}
	if s := c.getStringOr("markup.linkColor", ""); s != "" {
		col, err := richtext.ParseColor(s)
		if err != nil {
			c.recordConfigError("markup.linkColor", fmt.Errorf("%w: %v", ErrInvalidValue, err))
		} else {
			cfg.LinkColor = col
		}
	}
	return cfg
}
