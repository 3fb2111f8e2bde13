package loader

import (
	"testing"
	"time"
)

func envLoader(prefix string, env ...string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := envLoader("RICHEDIT_",
		"RICHEDIT_LOG_LEVEL=debug",
		"RICHEDIT_SIZE_CATEGORY=xxLarge",
		"RICHEDIT_SCRIPT_SCALE=0.6",
		"OTHER_VAR=ignored",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := GetPath(config, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v", v)
	}
	if v, _ := GetPath(config, "display.sizeCategory"); v != "xxLarge" {
		t.Errorf("display.sizeCategory = %v", v)
	}
	if v, _ := GetPath(config, "script.scale"); v != 0.6 {
		t.Errorf("script.scale = %v", v)
	}
	if _, ok := config["other"]; ok {
		t.Error("unprefixed variable loaded")
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	l := envLoader("RICHEDIT_",
		"RICHEDIT_SCRIPT_SUPERSCRIPT_OFFSET=0.5",
		"RICHEDIT_HISTORY_MAX_ENTRIES=20",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := GetPath(config, "script.superscriptOffset"); v != 0.5 {
		t.Errorf("script.superscriptOffset = %v", v)
	}
	if v, _ := GetPath(config, "history.maxEntries"); v != int64(20) {
		t.Errorf("history.maxEntries = %v (%T)", v, v)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("RICHEDIT_")
	tests := []struct {
		env  string
		want string
	}{
		{"RICHEDIT_LOGGING_LEVEL", "logging.level"},
		{"RICHEDIT_SCRIPT_TIMEOUT", "script.timeout"},
		{"RICHEDIT_HISTORY_MAX_ENTRIES", "history.maxEntries"},
		{"RICHEDIT_DEBUG", "debug"},
		{"RICHEDIT_", ""},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestEnvLoader_parseValue(t *testing.T) {
	l := NewEnvLoader("RICHEDIT_")
	tests := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"YES", true},
		{"off", false},
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"0.75", 0.75},
		{"2s", 2 * time.Second},
		{"hello", "hello"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := l.parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}

	arr, ok := l.parseValue(`["a","b"]`).([]any)
	if !ok || len(arr) != 2 {
		t.Errorf("parseValue(JSON array) = %v", arr)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := envLoader("RICHEDIT_", "RICHEDIT_THEME=dark")
	l.AddMapping("RICHEDIT_THEME", "render.theme")

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := GetPath(config, "render.theme"); v != "dark" {
		t.Errorf("render.theme = %v", v)
	}
}
