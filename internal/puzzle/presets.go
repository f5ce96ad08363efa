package puzzle

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultPreset is the board used when nothing else is configured.
const DefaultPreset = "hexagon"

var presets = map[string]Definition{
	"hexagon":  MustNew("hexagon", "CAT", "DOG", "BIR", "FLE", "SUN", "MPH"),
	"square":   MustNew("square", "GAT", "LEF", "IND", "ROS"),
	"triangle": MustNew("triangle", "STRA", "ELPN", "COMD"),
}

// Preset returns a built-in board by name.
func Preset(name string) (Definition, error) {
	def, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Definition{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return def.Clone(), nil
}

// PresetNames lists the built-in boards in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
