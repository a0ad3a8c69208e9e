package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/sand"
	"github.com/vovakirdan/sandfall/internal/storage"
)

// hudLines is the number of terminal rows below the sand: status and help.
const hudLines = 2

// Options bundles everything a sandbox session needs besides its scene.
type Options struct {
	Config  config.SandConfig
	Preset  config.Preset
	Runtime core.RuntimeConfig
	Store   *storage.Store // May be nil; sessions are then not recorded
	Logger  *log.Logger    // May be nil
}

// SandboxModel is the Bubble Tea model running one sandbox.
type SandboxModel struct {
	scene     registry.Scene
	opts      Options
	engine    *sand.Engine
	screen    *core.Screen
	canvas    *HalfBlockCanvas
	keyMapper *KeyMapper
	help      help.Model
	frame     core.InputFrame
	started   time.Time
	tickGen   uint64
	paused    bool
	embedded  bool // Back returns to a parent model instead of quitting
	err       error
	quitting  bool
	back      bool
	saved     bool
}

// NewSandboxModel creates a sandbox for the given scene.
func NewSandboxModel(scene registry.Scene, opts Options) SandboxModel {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	km := NewKeyMapper()
	h := help.New()
	h.Width = opts.Runtime.ScreenW

	m := SandboxModel{
		scene:     scene,
		opts:      opts,
		keyMapper: km,
		help:      h,
		frame:     core.NewInputFrame(),
		tickGen:   nextTickGen(),
	}
	m.rebuild()
	return m
}

// viewRows is the number of terminal rows used for sand.
func (m SandboxModel) viewRows() int {
	return core.Max(1, m.opts.Runtime.ScreenH-hudLines)
}

// rebuild creates a fresh engine sized to the current screen and seeds the
// scene into it.
func (m *SandboxModel) rebuild() {
	width, rows := m.opts.Runtime.ScreenW, m.viewRows()
	m.screen = core.NewScreen(width, rows)
	m.canvas = NewHalfBlockCanvas(width, rows)

	cfg := m.opts.Config.EngineConfig(width, rows*2, 1)
	engine, err := sand.New(cfg, m.opts.Runtime.Seed)
	if err != nil {
		m.engine, m.err = nil, err
		m.opts.Logger.Error("cannot build engine", "error", err)
		return
	}
	m.scene.Seed(engine, m.opts.Runtime.Seed)

	m.engine, m.err = engine, nil
	m.started = time.Now()
	m.saved = false
	m.opts.Logger.Debug("engine ready",
		"scene", m.scene.ID(),
		"cols", cfg.Cols,
		"rows", cfg.Rows,
		"grains", engine.Registry().Len(),
	)
}

// Init starts the tick loop.
func (m SandboxModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m SandboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouse(msg, &m.frame.Pointer, m.viewRows())
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m SandboxModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "error", err)
		} else {
			m.opts.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	switch m.keyMapper.MapKey(msg) {
	case core.ActionQuit:
		m.saveSession()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.saveSession()
		m.back = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	case core.ActionNone:
		return m, nil
	case core.ActionPause:
		m.paused = !m.paused
	default:
		m.keyMapper.MapKeyToFrame(msg, &m.frame)
	}

	return m, nil
}

// handleResize rebuilds the engine for the new terminal size. Sand is
// ephemeral, so the finished run is recorded and a new one starts.
func (m SandboxModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.opts.Runtime.ScreenW && msg.Height == m.opts.Runtime.ScreenH && m.engine != nil {
		return m, nil
	}
	m.saveSession()
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.rebuild()
	return m, nil
}

// handleTick applies queued actions and advances the simulation.
func (m SandboxModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, tickCmd(m.opts.Runtime.TickRate, m.tickGen)
	}

	if m.frame.Has(core.ActionClear) {
		m.engine.Clear()
	}
	if m.frame.Has(core.ActionBrushGrow) {
		m.engine.Brush().SetRadius(1)
	}
	if m.frame.Has(core.ActionBrushShrink) {
		m.engine.Brush().SetRadius(-1)
	}

	// The brush keeps painting while paused; only settling stops
	if !m.paused || m.frame.Has(core.ActionStep) {
		m.engine.Tick(m.frame, now)
	} else {
		m.engine.Paint(m.frame, now)
	}

	m.frame.Clear()
	return m, tickCmd(m.opts.Runtime.TickRate, m.tickGen)
}

// saveSession records the run in the store once. Runs that never ticked
// are not recorded.
func (m *SandboxModel) saveSession() {
	if m.saved || m.engine == nil {
		return
	}
	m.saved = true

	if m.engine.Stats().Ticks == 0 || m.opts.Store == nil {
		return
	}

	sess := storage.SessionFromEngine(m.scene.ID(), string(m.opts.Preset), m.opts.Runtime.Seed,
		m.engine, time.Since(m.started))
	if _, err := m.opts.Store.SaveSession(sess); err != nil {
		m.opts.Logger.Warn("could not save session", "error", err)
		return
	}
	m.opts.Logger.Info("session saved", "scene", sess.SceneID, "ticks", sess.Ticks, "peak", sess.PeakActive)
}

// saveScreenshot writes the current screen as plain text.
func (m SandboxModel) saveScreenshot() (string, error) {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".sandfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// draw renders the cursor and the sand into the screen buffer.
func (m SandboxModel) draw() {
	m.screen.Clear()
	if m.engine == nil {
		return
	}

	m.drawCursor()
	m.canvas.Reset()
	m.engine.Render(m.canvas)
	m.canvas.Flush(m.screen)
}

// drawCursor outlines the spawn square around the pointer.
func (m SandboxModel) drawCursor() {
	p := m.frame.Pointer
	if !p.Active {
		return
	}
	brush := m.engine.Brush()
	r := brush.Settings().SpawnRadius
	c := brush.CellAt(p.X, p.Y)

	top := floorHalf(c.Y - r)
	bottom := floorHalf(c.Y + r - 1)
	m.screen.DrawBox(core.NewRect(c.X-r, top, 2*r, bottom-top+1), core.ColorCursor)
}

// floorHalf maps a grid row to its terminal row.
func floorHalf(row int) int {
	if row < 0 {
		return (row - 1) / 2
	}
	return row / 2
}

// statusLine summarizes the simulation for the HUD.
func (m SandboxModel) statusLine() string {
	if m.engine == nil {
		return fmt.Sprintf(" %s: %v", m.scene.Title(), m.err)
	}
	snap := m.engine.Snapshot()
	state := "running"
	if m.paused {
		state = "PAUSED"
	}
	return fmt.Sprintf(" %s | tick %d | grains %d (%d falling) | brush %d | %s",
		m.scene.Title(), snap.Tick, snap.Active, snap.Falling, snap.SpawnRadius, state)
}

// View renders the sand, status line and help bar.
func (m SandboxModel) View() string {
	if m.quitting || (m.back && m.embedded) {
		return ""
	}

	m.draw()

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(colorStyles[core.ColorHUD].Render(m.statusLine()))
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

// Engine returns the running engine, or nil if it could not be built.
func (m SandboxModel) Engine() *sand.Engine {
	return m.engine
}

// Paused reports whether settling is suspended.
func (m SandboxModel) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m SandboxModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m SandboxModel) BackToMenu() bool {
	return m.back
}

// Run starts a standalone sandbox program for the scene.
func Run(scene registry.Scene, opts Options) error {
	model := NewSandboxModel(scene, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drives the brush
	)

	_, err := p.Run()
	return err
}
