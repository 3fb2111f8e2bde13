// Package config loads richedit settings from defaults, a TOML or YAML file
// and RICHEDIT_ environment variables, in increasing priority.
//
// A Config is frozen once loaded. Section accessors such as Display and
// ScriptMetrics decode typed values for the components that need them.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/richedit/internal/config/loader"
)

// maxIncludeDepth bounds nested @include directives in TOML files.
const maxIncludeDepth = 8

// Config is a merged, read-only configuration tree.
type Config struct {
	data map[string]any

	mu   sync.Mutex
	errs []error
}

type options struct {
	file    string
	fs      loader.FileSystem
	prefix  string
	environ func() []string
}

// Option configures Load.
type Option func(*options)

// WithFile sets the configuration file. A missing explicit file is an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithFS sets the file system the configuration file is read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnviron replaces os.Environ as the environment source.
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		if environ != nil {
			o.environ = environ
		}
	}
}

// Load merges defaults, the configuration file and the environment, then
// decodes every section once so that malformed values fail early.
func Load(opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS(), prefix: loader.DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	data := defaultConfig()

	if o.file != "" {
		if _, err := o.fs.Stat(o.file); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, o.file)
		}
		fileConfig, err := loadFile(o.fs, o.file)
		if err != nil {
			return nil, err
		}
		data = loader.DeepMerge(data, fileConfig)
	}

	env := loader.NewEnvLoader(o.prefix)
	if o.environ != nil {
		env.SetEnviron(o.environ)
	}
	envConfig, err := env.Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	data = loader.DeepMerge(data, envConfig)

	c := New(data)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func loadFile(fsys loader.FileSystem, path string) (map[string]any, error) {
	l, err := loader.ForPath(fsys, path)
	if err != nil {
		return nil, err
	}
	if tl, ok := l.(*loader.TOMLLoader); ok {
		return tl.LoadWithIncludes(path, maxIncludeDepth)
	}
	return l.LoadFrom(path)
}

// New wraps an already merged tree. The map is cloned.
func New(data map[string]any) *Config {
	if data == nil {
		data = map[string]any{}
	}
	return &Config{data: loader.Clone(data)}
}

// Default returns the built-in configuration.
func Default() *Config {
	return New(defaultConfig())
}

// Validate decodes every section and reports all problems found.
func (c *Config) Validate() error {
	c.mu.Lock()
	c.errs = nil
	c.mu.Unlock()

	_ = c.Logging()
	_ = c.Display()
	_ = c.StyleTable()
	_ = c.Headers()
	_ = c.ScriptMetrics()
	_ = c.Script()
	_ = c.History()
	_ = c.Markup()

	return errors.Join(c.Errors()...)
}

// Errors returns the problems recorded by section accessors.
func (c *Config) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, fmt.Errorf("%s: %w", path, err))
}

// Get returns the raw value at a dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	return loader.GetPath(c.data, path)
}

// Map returns a copy of the merged tree.
func (c *Config) Map() map[string]any {
	return loader.Clone(c.data)
}

// GetString returns a string setting.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", typeError(path, "string", v)
	}
	return s, nil
}

// GetInt returns an integer setting.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val == float64(int(val)) {
			return int(val), nil
		}
	}
	return 0, typeError(path, "int", v)
}

// GetFloat returns a numeric setting.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int64:
		return float64(val), nil
	case int:
		return float64(val), nil
	}
	return 0, typeError(path, "float", v)
}

// GetBool returns a boolean setting.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, typeError(path, "bool", v)
	}
	return b, nil
}

// GetDuration returns a duration setting given as a string such as "2s",
// a time.Duration, or a whole number of milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case int64:
		return time.Duration(val) * time.Millisecond, nil
	case int:
		return time.Duration(val) * time.Millisecond, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return d, nil
	}
	return 0, typeError(path, "duration", v)
}

// GetStringMap returns a table of strings.
func (c *Config) GetStringMap(path string) (map[string]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeError(path, "table", v)
	}
	out := make(map[string]string, len(m))
	for k, raw := range m {
		s, ok := raw.(string)
		if !ok {
			return nil, typeError(path+"."+k, "string", raw)
		}
		out[k] = s
	}
	return out, nil
}

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getFloatOr(path string, defaultValue float64) float64 {
	v, err := c.GetFloat(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

// defaultConfig returns the built-in settings tree.
func defaultConfig() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level":      "info",
			"format":     "text",
			"file":       "",
			"maxSize":    int64(10),
			"maxBackups": int64(5),
		},
		"display": map[string]any{
			"sizeCategory": "large",
		},
		"script": map[string]any{
			"scale":             0.75,
			"superscriptOffset": 0.4,
			"subscriptOffset":   -0.3,
			"timeout":           "5s",
		},
		"history": map[string]any{
			"maxEntries": int64(1000),
		},
		"markup": map[string]any{
			"codeFont":  "family:Menlo@15/body",
			"linkColor": "#007aff",
		},
	}
}
