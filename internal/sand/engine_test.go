package sand

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/sandfall/internal/core"
)

func newTestEngine(t *testing.T, cols, rows int, gravity float64) *Engine {
	t.Helper()
	cfg := DefaultConfig(cols, rows)
	cfg.Physics.Gravity = gravity
	e, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func runTicks(e *Engine, n int) {
	var in core.InputFrame
	now := time.Unix(0, 0)
	for i := 0; i < n; i++ {
		e.Tick(in, now.Add(time.Duration(i)*time.Second/30))
	}
}

func TestEngineSingleGrainSettles(t *testing.T) {
	e := newTestEngine(t, 10, 10, 1)
	if err := e.Insert(C(5, 0)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	runTicks(e, 20)

	p, ok := e.Registry().At(C(5, 9))
	if !ok {
		t.Fatal("grain did not reach (5,9)")
	}
	if p.Mode != ModeDrift {
		t.Errorf("mode = %v, expected drift", p.Mode)
	}
	if got := e.Grid().OccupiedCount(); got != 1 {
		t.Errorf("OccupiedCount() = %d, expected 1", got)
	}
	checkInvariants(t, e.Registry())
}

func TestEngineGrainDriftsOffAPile(t *testing.T) {
	e := newTestEngine(t, 10, 10, 1)
	e.Settle(C(4, 9))
	e.Settle(C(5, 9))
	e.Insert(C(5, 0))

	runTicks(e, 30)

	if !e.Grid().IsOccupied(C(6, 9)) {
		t.Errorf("third grain should slide to (6,9), occupied: %v", e.Grid().OccupiedCoords())
	}
	if e.Grid().IsOccupied(C(5, 8)) {
		t.Error("third grain should not rest on top of the pile")
	}
	if got := e.Registry().Len(); got != 3 {
		t.Errorf("Len() = %d, expected 3", got)
	}
	checkInvariants(t, e.Registry())
}

func TestEngineEraseThenSpawn(t *testing.T) {
	e := newTestEngine(t, 10, 10, 1)
	e.Settle(C(3, 9))

	if n := e.Brush().Erase(C(3, 9), 1); n != 1 {
		t.Fatalf("Erase() = %d, expected 1", n)
	}
	if e.Grid().IsOccupied(C(3, 9)) {
		t.Error("grid still occupied after erase")
	}
	if _, ok := e.Registry().At(C(3, 9)); ok {
		t.Error("registry still tracks erased grain")
	}
	if err := e.Insert(C(3, 9)); err != nil {
		t.Errorf("Insert() after erase error = %v", err)
	}
	checkInvariants(t, e.Registry())
}

func TestEngineCornerSpawnStaysInBounds(t *testing.T) {
	cfg := DefaultConfig(10, 10)
	cfg.Brush.SpawnChance = 1
	cfg.Brush.SpawnRadius = 8
	e, err := New(cfg, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	in := core.InputFrame{Pointer: core.Pointer{X: -3, Y: -3, Left: true, Active: true}}
	res := e.Tick(in, time.Unix(0, 0))

	// Cells (0..6, 0..6) are inside the brush square around (-1,-1)
	if res.Brush.Spawned != 49 {
		t.Errorf("Spawned = %d, expected 49", res.Brush.Spawned)
	}
	checkInvariants(t, e.Registry())
}

func TestEngineInvariantsUnderRandomInput(t *testing.T) {
	cfg := DefaultConfig(24, 18)
	cfg.CellSize = 1
	cfg.Brush.RateLimit = 0
	e, err := New(cfg, 99)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	driver := e.Rand()
	now := time.Unix(0, 0)
	lastRow := make(map[ParticleID]int)

	for tick := 0; tick < 400; tick++ {
		in := core.InputFrame{Pointer: core.Pointer{
			X:      driver.Intn(30) - 3,
			Y:      driver.Intn(24) - 3,
			Left:   driver.Intn(3) != 0,
			Right:  driver.Intn(5) == 0,
			Active: true,
		}}
		e.Tick(in, now.Add(time.Duration(tick)*10*time.Millisecond))
		checkInvariants(t, e.Registry())

		e.Registry().Each(func(p *Particle) {
			if p.Mode != ModeFalling {
				delete(lastRow, p.ID)
				return
			}
			if prev, ok := lastRow[p.ID]; ok && p.Pos.Y < prev {
				t.Fatalf("tick %d: falling grain %d rose from %d to %d", tick, p.ID, prev, p.Pos.Y)
			}
			lastRow[p.ID] = p.Pos.Y
		})
	}

	stats := e.Stats()
	if stats.Ticks != 400 {
		t.Errorf("Ticks = %d, expected 400", stats.Ticks)
	}
	if stats.Spawned-stats.Erased != e.Registry().Len() {
		t.Errorf("spawned %d - erased %d != active %d", stats.Spawned, stats.Erased, e.Registry().Len())
	}
}

func TestEngineDeterministic(t *testing.T) {
	run := func() Snapshot {
		cfg := DefaultConfig(16, 16)
		cfg.CellSize = 1
		e, err := New(cfg, 1234)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		now := time.Unix(0, 0)
		for i := 0; i < 120; i++ {
			in := core.InputFrame{Pointer: core.Pointer{X: 8, Y: 2, Left: i < 40, Active: true}}
			e.Tick(in, now.Add(time.Duration(i)*20*time.Millisecond))
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different snapshots:\n%+v\n%+v", a, b)
	}
	if a.Active == 0 {
		t.Error("expected some grains to be spawned")
	}
	if a.Falling+a.Drifting != a.Active {
		t.Errorf("falling %d + drifting %d != active %d", a.Falling, a.Drifting, a.Active)
	}
}

func TestEngineClear(t *testing.T) {
	e := newTestEngine(t, 10, 10, 1)
	e.Insert(C(1, 1))
	e.Settle(C(2, 9))
	e.Clear()

	if e.Registry().Len() != 0 || e.Grid().OccupiedCount() != 0 {
		t.Error("Clear() should empty the engine")
	}
	checkInvariants(t, e.Registry())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"zero cols", func(c *Config) { c.Cols = 0 }, true},
		{"zero cell size", func(c *Config) { c.CellSize = 0 }, true},
		{"negative gravity", func(c *Config) { c.Physics.Gravity = -1 }, true},
		{"negative radius", func(c *Config) { c.Brush.EraseRadius = -1 }, true},
		{"chance above one", func(c *Config) { c.Brush.SpawnChance = 1.5 }, true},
		{"negative rate", func(c *Config) { c.Brush.RateLimit = -time.Second }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig(10, 10)
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if _, err := New(cfg, 1); (err != nil) != tc.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

type recordingRenderer struct {
	cells []Coord
	size  int
}

func (r *recordingRenderer) FillCell(x, y, size int, mode Mode) {
	r.cells = append(r.cells, C(x, y))
	r.size = size
}

func TestEngineRender(t *testing.T) {
	e := newTestEngine(t, 10, 10, 1)
	e.Insert(C(1, 2))
	e.Settle(C(3, 9))

	r := &recordingRenderer{}
	e.Render(r)

	expected := []Coord{C(5, 10), C(15, 45)}
	if !reflect.DeepEqual(r.cells, expected) {
		t.Errorf("rendered %v, expected %v", r.cells, expected)
	}
	if r.size != 5 {
		t.Errorf("size = %d, expected 5", r.size)
	}
}
