package sand

import (
	"time"

	"github.com/vovakirdan/sandfall/internal/core"
)

// Brush radius limits accepted by SetRadius.
const (
	MinBrushRadius = 1
	MaxBrushRadius = 32
)

// BrushSettings configures the spawn/erase brush.
type BrushSettings struct {
	SpawnRadius int
	EraseRadius int
	SpawnChance float64       // Probability that a free cell in the square gets a grain
	RateLimit   time.Duration // Minimum time between two spawns (and two erases)
}

// BrushResult reports what a brush pass changed.
type BrushResult struct {
	Spawned int
	Erased  int
}

// Brush turns pointer state into spawn and erase mutations.
type Brush struct {
	reg      *Registry
	rng      Rand
	settings BrushSettings
	cellSize int

	spawnLimit *RateLimiter
	eraseLimit *RateLimiter
}

// NewBrush creates a brush over the registry. Pointer coordinates are divided
// by cellSize to find the grid cell under the pointer.
func NewBrush(reg *Registry, settings BrushSettings, cellSize int, rng Rand) *Brush {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Brush{
		reg:        reg,
		rng:        rng,
		settings:   settings,
		cellSize:   cellSize,
		spawnLimit: NewRateLimiter(settings.RateLimit),
		eraseLimit: NewRateLimiter(settings.RateLimit),
	}
}

// Settings returns the current brush settings.
func (b *Brush) Settings() BrushSettings {
	return b.settings
}

// SetRadius changes both radii by delta, keeping them within limits.
func (b *Brush) SetRadius(delta int) {
	b.settings.SpawnRadius = core.Clamp(b.settings.SpawnRadius+delta, MinBrushRadius, MaxBrushRadius)
	b.settings.EraseRadius = core.Clamp(b.settings.EraseRadius+delta, MinBrushRadius, MaxBrushRadius)
}

// CellAt converts a pointer position in screen units to a grid cell.
func (b *Brush) CellAt(x, y int) Coord {
	return C(floorDiv(x, b.cellSize), floorDiv(y, b.cellSize))
}

// Apply spawns while the left button is held and erases while the right
// button is held. Each operation is rate limited on its own.
func (b *Brush) Apply(p core.Pointer, now time.Time) BrushResult {
	var res BrushResult
	if !p.Active {
		return res
	}
	center := b.CellAt(p.X, p.Y)

	if p.Left && b.spawnLimit.Allow(now) {
		res.Spawned = b.Spawn(center, b.settings.SpawnRadius)
	}
	if p.Right && b.eraseLimit.Allow(now) {
		res.Erased = b.Erase(center, b.settings.EraseRadius)
	}
	return res
}

// Spawn visits the square [-radius, radius) around center and inserts a
// particle into each free in-bounds cell with probability SpawnChance.
// Returns the number of particles created.
func (b *Brush) Spawn(center Coord, radius int) int {
	spawned := 0
	for dx := -radius; dx < radius; dx++ {
		for dy := -radius; dy < radius; dy++ {
			if b.rng.Float64() >= b.settings.SpawnChance {
				continue
			}
			if _, err := b.reg.Insert(center.Add(dx, dy)); err == nil {
				spawned++
			}
		}
	}
	return spawned
}

// Erase removes every particle in the square [-radius, radius) around center.
// Returns the number of particles removed.
func (b *Brush) Erase(center Coord, radius int) int {
	erased := 0
	for dx := -radius; dx < radius; dx++ {
		for dy := -radius; dy < radius; dy++ {
			if b.reg.RemoveAt(center.Add(dx, dy)) {
				erased++
			}
		}
	}
	return erased
}

// ResetLimits lets the next spawn and erase fire immediately.
func (b *Brush) ResetLimits() {
	b.spawnLimit.Reset()
	b.eraseLimit.Reset()
}

// floorDiv divides rounding toward negative infinity, so pointers left of or
// above the grid map to negative cells instead of cell 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
