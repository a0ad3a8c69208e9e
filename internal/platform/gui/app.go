//go:build ebiten

package gui

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/sand"
	"github.com/vovakirdan/sandfall/internal/storage"
)

var (
	backgroundColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
	sandColor       = color.RGBA{0xe1, 0xbf, 0x92, 0xff}
	restingColor    = color.RGBA{0xc2, 0xa0, 0x72, 0xff}
	cursorColor     = color.RGBA{0x80, 0x80, 0x80, 0xff}
)

// imageRenderer draws each particle as a filled square.
type imageRenderer struct {
	dst *ebiten.Image
}

func (r imageRenderer) FillCell(x, y, size int, mode sand.Mode) {
	clr := restingColor
	if mode == sand.ModeFalling {
		clr = sandColor
	}
	vector.DrawFilledRect(r.dst, float32(x), float32(y), float32(size), float32(size), clr, false)
}

// Game adapts a sand engine to the ebiten.Game interface.
type Game struct {
	scene    registry.Scene
	opts     Options
	engine   *sand.Engine
	frame    core.InputFrame
	started  time.Time
	paused   bool
	tickOnce bool
	saved    bool
}

// New builds the engine for the scene and seeds it.
func New(scene registry.Scene, opts Options) (*Game, error) {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	cols, rows := opts.gridSize()
	engine, err := sand.New(opts.Config.EngineConfig(cols, rows, 0), opts.Seed)
	if err != nil {
		return nil, err
	}
	scene.Seed(engine, opts.Seed)

	return &Game{
		scene:   scene,
		opts:    opts,
		engine:  engine,
		frame:   core.NewInputFrame(),
		started: time.Now(),
	}, nil
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.engine.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.engine.Brush().SetRadius(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.engine.Brush().SetRadius(-1)
	}

	x, y := ebiten.CursorPosition()
	w, h := g.Layout(0, 0)
	g.frame.Pointer = core.Pointer{
		X:      x,
		Y:      y,
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Active: core.NewRect(0, 0, w, h).Contains(x, y),
	}

	now := time.Now()
	if !g.paused || g.tickOnce {
		g.engine.Tick(g.frame, now)
		g.tickOnce = false
	} else {
		g.engine.Paint(g.frame, now)
	}
	return nil
}

// Draw renders the particles, the brush outline and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.engine.Render(imageRenderer{dst: screen})

	if p := g.frame.Pointer; p.Active {
		size := g.engine.Config().CellSize
		r := g.engine.Brush().Settings().SpawnRadius
		c := g.engine.Brush().CellAt(p.X, p.Y)
		vector.StrokeRect(screen,
			float32((c.X-r)*size), float32((c.Y-r)*size),
			float32(2*r*size), float32(2*r*size),
			1, cursorColor, false)
	}

	snap := g.engine.Snapshot()
	state := ""
	if g.paused {
		state = "  PAUSED"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  tick %d  grains %d  brush %d  %.0f fps%s",
		g.scene.Title(), snap.Tick, snap.Active, snap.SpawnRadius, ebiten.ActualFPS(), state))
}

// Layout returns the logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.engine.Config()
	return cfg.Cols * cfg.CellSize, cfg.Rows * cfg.CellSize
}

// saveSession records the run once.
func (g *Game) saveSession() {
	if g.saved || g.opts.Store == nil || g.engine.Stats().Ticks == 0 {
		return
	}
	g.saved = true

	sess := storage.SessionFromEngine(g.scene.ID(), string(g.opts.Preset), g.opts.Seed, g.engine, time.Since(g.started))
	if _, err := g.opts.Store.SaveSession(sess); err != nil {
		g.opts.Logger.Warn("could not save session", "error", err)
		return
	}
	g.opts.Logger.Info("session saved", "scene", sess.SceneID, "ticks", sess.Ticks)
}

// Run opens the window and blocks until it is closed.
func Run(scene registry.Scene, opts Options) error {
	g, err := New(scene, opts)
	if err != nil {
		return err
	}

	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("sandfall - " + scene.Title())
	if opts.TickRate > 0 {
		ebiten.SetTPS(opts.TickRate)
	}

	err = ebiten.RunGame(g)
	g.saveSession()
	return err
}
