package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Play.Preset != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[play]
preset = "square"
sides = ["CAT", "DOG", "BIR"]
record = false

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Play.Preset == nil || *cfg.Play.Preset != "square" {
		t.Fatalf("unexpected preset %v", cfg.Play.Preset)
	}
	if len(cfg.Play.Sides) != 3 {
		t.Fatalf("expected 3 sides, got %v", cfg.Play.Sides)
	}
	if cfg.Play.Record == nil || *cfg.Play.Record {
		t.Fatalf("expected record=false")
	}
	if cfg.Play.Dictionary != nil {
		t.Fatalf("expected dictionary unset")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level %v", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[play]\nboard = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestResolvePuzzle(t *testing.T) {
	def, err := ResolvePuzzle("", nil)
	if err != nil {
		t.Fatalf("default preset: %v", err)
	}
	if def.Name != "hexagon" {
		t.Fatalf("expected hexagon default, got %q", def.Name)
	}
	def, err = ResolvePuzzle("square", ParseSides(" ab, cd ,ef,"))
	if err != nil {
		t.Fatalf("custom sides: %v", err)
	}
	if def.Name != "custom" || def.String() != "AB/CD/EF" {
		t.Fatalf("expected custom sides to win, got %s %s", def.Name, def)
	}
	if _, err := ResolvePuzzle("", []string{"AB", "C"}); err == nil {
		t.Fatalf("expected ragged sides error")
	}
	if _, err := ResolvePuzzle("nonagon", nil); err == nil {
		t.Fatalf("expected unknown preset error")
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "lboxed", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultWordListPath("en"); got != filepath.Join("/cfg", "lboxed", "words", "en.txt") {
		t.Fatalf("unexpected word list path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "lboxed", "lboxed.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "lboxed", "lboxed.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
