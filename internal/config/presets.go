package config

import (
	"fmt"
	"strings"
)

// Preset is a named set of physics and brush overrides.
type Preset string

const (
	PresetNone    Preset = ""
	PresetClassic Preset = "classic" // Truncated velocity, as the first sandbox did it
	PresetSmooth  Preset = "smooth"
	PresetHeavy   Preset = "heavy"
	PresetFine    Preset = "fine"
)

// Presets lists the named presets in display order.
func Presets() []Preset {
	return []Preset{PresetClassic, PresetSmooth, PresetHeavy, PresetFine}
}

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if p == PresetNone {
		return p, nil
	}
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return PresetNone, fmt.Errorf("config: unknown preset %q (want one of %v)", s, Presets())
}

// ApplyPreset modifies the config based on a preset.
func ApplyPreset(cfg *SandConfig, preset Preset) {
	switch preset {
	case PresetClassic:
		cfg.Physics.Gravity = 0.5
		cfg.Physics.CarryRemainder = false
	case PresetSmooth:
		cfg.Physics.Gravity = 0.5
		cfg.Physics.CarryRemainder = true
	case PresetHeavy:
		cfg.Physics.Gravity = 1.0
	case PresetFine:
		cfg.Brush.SpawnRadius = 2
		cfg.Brush.SpawnChance = 0.75
	}
}
