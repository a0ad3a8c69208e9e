// Package config provides YAML-based sandbox configuration loading and
// physics presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/sandfall/internal/sand"
)

// SandConfig contains all configuration for the sandbox.
type SandConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Physics PhysicsConfig `yaml:"physics"`
	Brush   BrushConfig   `yaml:"brush"`
}

// GridConfig defines the grid geometry.
type GridConfig struct {
	CellSize int `yaml:"cell_size"` // Pixels per cell in the GUI
	Cols     int `yaml:"cols"`      // 0 = derive from the screen
	Rows     int `yaml:"rows"`      // 0 = derive from the screen
}

// PhysicsConfig defines the falling rule parameters.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	CarryRemainder bool    `yaml:"carry_remainder"`
}

// BrushConfig defines the pointer brush.
type BrushConfig struct {
	SpawnRadius int     `yaml:"spawn_radius"`
	EraseRadius int     `yaml:"erase_radius"`
	SpawnChance float64 `yaml:"spawn_chance"`
	RateLimitMs int     `yaml:"rate_limit_ms"`
}

// RateLimit returns the brush interval as a duration.
func (b BrushConfig) RateLimit() time.Duration {
	return time.Duration(b.RateLimitMs) * time.Millisecond
}

// Validate checks the configuration for values the engine cannot use.
func (c SandConfig) Validate() error {
	var errs []error
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size must be positive, got %d", c.Grid.CellSize))
	}
	if c.Grid.Cols < 0 || c.Grid.Rows < 0 {
		errs = append(errs, fmt.Errorf("grid.cols and grid.rows must not be negative"))
	}
	if c.Physics.Gravity < 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must not be negative, got %g", c.Physics.Gravity))
	}
	if c.Brush.SpawnRadius < 0 || c.Brush.EraseRadius < 0 {
		errs = append(errs, fmt.Errorf("brush radii must not be negative"))
	}
	if c.Brush.SpawnChance < 0 || c.Brush.SpawnChance > 1 {
		errs = append(errs, fmt.Errorf("brush.spawn_chance must be in [0,1], got %g", c.Brush.SpawnChance))
	}
	if c.Brush.RateLimitMs < 0 {
		errs = append(errs, fmt.Errorf("brush.rate_limit_ms must not be negative, got %d", c.Brush.RateLimitMs))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Dimensions returns the grid size, preferring explicit cols/rows and
// falling back to the given screen-derived size.
func (c SandConfig) Dimensions(cols, rows int) (int, int) {
	if c.Grid.Cols > 0 {
		cols = c.Grid.Cols
	}
	if c.Grid.Rows > 0 {
		rows = c.Grid.Rows
	}
	return cols, rows
}

// EngineConfig converts the YAML configuration into an engine config of the
// given size. cellSize overrides grid.cell_size when positive; the terminal
// front-end maps one cell to one character half.
func (c SandConfig) EngineConfig(cols, rows, cellSize int) sand.Config {
	if cellSize <= 0 {
		cellSize = c.Grid.CellSize
	}
	cols, rows = c.Dimensions(cols, rows)
	return sand.Config{
		Cols:     cols,
		Rows:     rows,
		CellSize: cellSize,
		Physics: sand.Physics{
			Gravity:        c.Physics.Gravity,
			CarryRemainder: c.Physics.CarryRemainder,
		},
		Brush: sand.BrushSettings{
			SpawnRadius: c.Brush.SpawnRadius,
			EraseRadius: c.Brush.EraseRadius,
			SpawnChance: c.Brush.SpawnChance,
			RateLimit:   c.Brush.RateLimit(),
		},
	}
}
