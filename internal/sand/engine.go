// Package sand implements the falling-sand simulation engine.
//
// The engine owns a dense occupancy Grid and a Registry of active particles
// that is kept in exact agreement with it. Every tick the Brush applies the
// pointer (spawn on left button, erase on right button), then the Scheduler
// settles each particle once. The package has no terminal or window
// dependencies; front-ends feed it core.InputFrame values and draw it
// through a Renderer.
package sand

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/sandfall/internal/core"
)

// Config holds everything needed to build an engine.
type Config struct {
	Cols     int
	Rows     int
	CellSize int // Screen units per cell, used for pointer mapping and drawing
	Physics  Physics
	Brush    BrushSettings
}

// DefaultConfig returns the classic settings for a grid of the given size.
func DefaultConfig(cols, rows int) Config {
	return Config{
		Cols:     cols,
		Rows:     rows,
		CellSize: 5,
		Physics: Physics{
			Gravity:        0.5,
			CarryRemainder: true,
		},
		Brush: BrushSettings{
			SpawnRadius: 3,
			EraseRadius: 2,
			SpawnChance: 0.5,
			RateLimit:   50 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration can build an engine.
func (c Config) Validate() error {
	switch {
	case c.Cols <= 0 || c.Rows <= 0:
		return fmt.Errorf("sand: grid must be at least 1x1, got %dx%d", c.Cols, c.Rows)
	case c.CellSize <= 0:
		return fmt.Errorf("sand: cell size must be positive, got %d", c.CellSize)
	case c.Physics.Gravity < 0:
		return fmt.Errorf("sand: gravity must not be negative, got %g", c.Physics.Gravity)
	case c.Brush.SpawnRadius < 0 || c.Brush.EraseRadius < 0:
		return fmt.Errorf("sand: brush radii must not be negative")
	case c.Brush.SpawnChance < 0 || c.Brush.SpawnChance > 1:
		return fmt.Errorf("sand: spawn chance must be in [0,1], got %g", c.Brush.SpawnChance)
	case c.Brush.RateLimit < 0:
		return fmt.Errorf("sand: rate limit must not be negative, got %s", c.Brush.RateLimit)
	}
	return nil
}

// Stats are running totals over the engine's lifetime.
type Stats struct {
	Ticks      uint64
	Spawned    int
	Erased     int
	PeakActive int
}

// TickResult is returned by Engine.Tick.
type TickResult struct {
	Tick   uint64
	Brush  BrushResult
	Step   StepStats
	Active int
}

// Engine is a complete sand simulation.
type Engine struct {
	cfg       Config
	rng       *rand.Rand
	grid      *Grid
	reg       *Registry
	scheduler *Scheduler
	brush     *Brush
	stats     Stats
}

// New builds an engine. The seed drives every random choice, so two engines
// built with the same config and seed and fed the same inputs stay identical.
func New(cfg Config, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	grid := NewGrid(cfg.Cols, cfg.Rows)
	reg := NewRegistry(grid)

	return &Engine{
		cfg:       cfg,
		rng:       rng,
		grid:      grid,
		reg:       reg,
		scheduler: NewScheduler(reg, cfg.Physics, rng),
		brush:     NewBrush(reg, cfg.Brush, cfg.CellSize, rng),
	}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Grid returns the occupancy grid.
func (e *Engine) Grid() *Grid { return e.grid }

// Registry returns the particle registry.
func (e *Engine) Registry() *Registry { return e.reg }

// Brush returns the brush controller.
func (e *Engine) Brush() *Brush { return e.brush }

// Rand returns the engine's random source, for seeding scenes.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// Stats returns the running totals.
func (e *Engine) Stats() Stats { return e.stats }

// Tick runs one full simulation tick: the brush pass for the given input,
// then one settling pass over every active particle.
func (e *Engine) Tick(in core.InputFrame, now time.Time) TickResult {
	brush := e.Paint(in, now)
	step := e.scheduler.Step()
	e.stats.Ticks++

	return TickResult{
		Tick:   e.stats.Ticks,
		Brush:  brush,
		Step:   step,
		Active: e.reg.Len(),
	}
}

// Paint runs only the brush pass. Front-ends use it while paused.
func (e *Engine) Paint(in core.InputFrame, now time.Time) BrushResult {
	res := e.brush.Apply(in.Pointer, now)
	e.stats.Spawned += res.Spawned
	e.stats.Erased += res.Erased
	if n := e.reg.Len(); n > e.stats.PeakActive {
		e.stats.PeakActive = n
	}
	return res
}

// Insert adds a particle outside of the brush, e.g. when seeding a scene.
func (e *Engine) Insert(c Coord) error {
	if _, err := e.reg.Insert(c); err != nil {
		return err
	}
	if n := e.reg.Len(); n > e.stats.PeakActive {
		e.stats.PeakActive = n
	}
	return nil
}

// Settle places a resting particle, bypassing the falling phase.
func (e *Engine) Settle(c Coord) error {
	id, err := e.reg.Insert(c)
	if err != nil {
		return err
	}
	p, _ := e.reg.Get(id)
	p.Mode = ModeDrift
	if n := e.reg.Len(); n > e.stats.PeakActive {
		e.stats.PeakActive = n
	}
	return nil
}

// Clear removes every particle.
func (e *Engine) Clear() {
	e.reg.Clear()
	e.brush.ResetLimits()
}
