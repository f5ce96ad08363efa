// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/puzzle"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play PlayConfig `toml:"play"`
	Log  LogConfig  `toml:"log"`
}

// PlayConfig maps play-related settings.
type PlayConfig struct {
	Preset     *string  `toml:"preset"`
	Sides      []string `toml:"sides"`
	Dictionary *string  `toml:"dictionary"`
	Record     *bool    `toml:"record"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ResolvePuzzle picks the board to play. Explicit sides win over a preset
// name; an empty name selects the default preset.
func ResolvePuzzle(preset string, sides []string) (puzzle.Definition, error) {
	if len(sides) > 0 {
		def, err := puzzle.New("custom", sides...)
		if err != nil {
			return puzzle.Definition{}, fmt.Errorf("invalid sides: %w", err)
		}
		return def, nil
	}
	if strings.TrimSpace(preset) == "" {
		preset = puzzle.DefaultPreset
	}
	return puzzle.Preset(preset)
}

// ParseSides splits a comma-separated side list such as "CAT,DOG,BIR".
func ParseSides(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
