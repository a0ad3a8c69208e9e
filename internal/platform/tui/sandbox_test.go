package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/sand"
	"github.com/vovakirdan/sandfall/internal/storage"
)

// floorScene settles one grain in the bottom-left corner.
type floorScene struct{}

func (floorScene) ID() string          { return "floor" }
func (floorScene) Title() string       { return "Floor" }
func (floorScene) Description() string { return "one resting grain" }
func (floorScene) Seed(e *sand.Engine, _ int64) {
	e.Settle(sand.C(0, e.Grid().H-1))
}

func newTestSandbox(t *testing.T, store *storage.Store) SandboxModel {
	t.Helper()
	cfg := config.DefaultSandConfig()
	cfg.Brush.SpawnChance = 1
	cfg.Brush.RateLimitMs = 0

	return NewSandboxModel(floorScene{}, Options{
		Config:  cfg,
		Runtime: core.RuntimeConfig{ScreenW: 20, ScreenH: 12, TickRate: 30, Seed: 7},
		Store:   store,
	})
}

func step(t *testing.T, m SandboxModel, msg tea.Msg) (SandboxModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SandboxModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm, cmd
}

func tick(t *testing.T, m SandboxModel, n int) SandboxModel {
	t.Helper()
	start := time.Unix(100, 0)
	for i := 0; i < n; i++ {
		m, _ = step(t, m, TickMsg{At: start.Add(time.Duration(i) * time.Second), Gen: m.tickGen})
	}
	return m
}

func TestSandboxBuildsEngineFromScreen(t *testing.T) {
	m := newTestSandbox(t, nil)

	cfg := m.Engine().Config()
	if cfg.Cols != 20 || cfg.Rows != 20 || cfg.CellSize != 1 {
		t.Errorf("engine %dx%d cell %d, expected 20x20 cell 1", cfg.Cols, cfg.Rows, cfg.CellSize)
	}
	if m.Engine().Registry().Len() != 1 {
		t.Error("scene was not seeded")
	}
}

func TestSandboxMousePours(t *testing.T) {
	m := newTestSandbox(t, nil)

	m, _ = step(t, m, tea.MouseMsg{X: 10, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(t, m, 1)

	// Spawn radius 3 around cell (10,4) fits inside the grid
	if got := m.Engine().Stats().Spawned; got != 36 {
		t.Errorf("Spawned = %d, expected 36", got)
	}

	m, _ = step(t, m, tea.MouseMsg{X: 10, Y: 2, Action: tea.MouseActionRelease})
	before := m.Engine().Stats().Spawned
	m = tick(t, m, 3)
	if m.Engine().Stats().Spawned != before {
		t.Error("released pointer should not pour")
	}
}

func TestSandboxPauseAndStep(t *testing.T) {
	m := newTestSandbox(t, nil)

	m, _ = step(t, m, runeKey('p'))
	if !m.Paused() {
		t.Fatal("p should pause")
	}
	m = tick(t, m, 3)
	if got := m.Engine().Stats().Ticks; got != 0 {
		t.Errorf("paused engine ticked %d times", got)
	}

	m, _ = step(t, m, runeKey('n'))
	m = tick(t, m, 2)
	if got := m.Engine().Stats().Ticks; got != 1 {
		t.Errorf("step should run exactly one tick, got %d", got)
	}

	m, _ = step(t, m, runeKey('p'))
	m = tick(t, m, 2)
	if got := m.Engine().Stats().Ticks; got != 3 {
		t.Errorf("Ticks = %d after resume, expected 3", got)
	}
}

func TestSandboxClearAndBrushKeys(t *testing.T) {
	m := newTestSandbox(t, nil)

	m, _ = step(t, m, runeKey(']'))
	m = tick(t, m, 1)
	if r := m.Engine().Brush().Settings().SpawnRadius; r != 4 {
		t.Errorf("SpawnRadius = %d, expected 4", r)
	}

	m, _ = step(t, m, runeKey('['))
	m, _ = step(t, m, runeKey('c'))
	m = tick(t, m, 1)
	if r := m.Engine().Brush().Settings().SpawnRadius; r != 3 {
		t.Errorf("SpawnRadius = %d, expected 3", r)
	}
	if n := m.Engine().Registry().Len(); n != 0 {
		t.Errorf("Len() = %d after clear, expected 0", n)
	}
}

func TestSandboxIgnoresStaleTicks(t *testing.T) {
	m := newTestSandbox(t, nil)

	m, cmd := step(t, m, TickMsg{At: time.Unix(0, 0), Gen: m.tickGen + 1})
	if cmd != nil {
		t.Error("stale tick should not schedule another")
	}
	if m.Engine().Stats().Ticks != 0 {
		t.Error("stale tick advanced the engine")
	}
}

func TestSandboxResizeRebuilds(t *testing.T) {
	m := newTestSandbox(t, nil)
	m = tick(t, m, 2)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 30, Height: 8})
	cfg := m.Engine().Config()
	if cfg.Cols != 30 || cfg.Rows != 12 {
		t.Errorf("engine %dx%d after resize, expected 30x12", cfg.Cols, cfg.Rows)
	}
	if m.Engine().Stats().Ticks != 0 {
		t.Error("resize should start a fresh engine")
	}
}

func TestSandboxQuitSavesSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestSandbox(t, store)
	m = tick(t, m, 5)

	m, cmd := step(t, m, runeKey('q'))
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q should quit")
	}

	sessions, err := store.RecentSessions("floor", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	if s := sessions[0]; s.Ticks != 5 || s.Cols != 20 || s.Rows != 20 || s.FinalActive != 1 {
		t.Errorf("unexpected session %+v", s)
	}

	// Saving is idempotent
	m.saveSession()
	sessions, _ = store.RecentSessions("floor", 10)
	if len(sessions) != 1 {
		t.Errorf("session saved %d times", len(sessions))
	}
}

func TestSandboxBack(t *testing.T) {
	m := newTestSandbox(t, nil)
	_, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("back should quit a standalone sandbox")
	}

	m = newTestSandbox(t, nil)
	m.embedded = true
	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || !m.BackToMenu() {
		t.Error("back inside a session should hand control to the parent")
	}
}

func TestSandboxView(t *testing.T) {
	m := newTestSandbox(t, nil)
	m, _ = step(t, m, tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionMotion})
	m = tick(t, m, 1)

	view := m.View()
	for _, want := range []string{"Floor", "tick 1", "grains 1", "brush 3", "running", "┌", "▄"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 12 {
		t.Errorf("View() has %d lines, expected 12", lines)
	}
}
