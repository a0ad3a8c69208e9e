package config

import (
	_ "embed"
)

//go:embed defaults/sand.yaml
var defaultSandYAML []byte

// DefaultSandConfig returns the built-in sandbox configuration.
func DefaultSandConfig() SandConfig {
	return SandConfig{
		Grid: GridConfig{
			CellSize: 5,
		},
		Physics: PhysicsConfig{
			Gravity:        0.5,
			CarryRemainder: true,
		},
		Brush: BrushConfig{
			SpawnRadius: 3,
			EraseRadius: 2,
			SpawnChance: 0.5,
			RateLimitMs: 50,
		},
	}
}
