// sandfall is a falling-sand sandbox for the terminal, the desktop and SSH.
//
// Usage:
//
//	sandfall list               - List available scenes
//	sandfall play [scene]       - Open a scene in the terminal
//	sandfall menu               - Pick scenes interactively
//	sandfall gui [scene]        - Open a scene in a window (ebiten builds)
//	sandfall serve              - Start the SSH server
//	sandfall sessions [scene]   - Show recorded sessions
//
// Global flags:
//
//	--fps <rate>        - Simulation ticks per second (default: 30)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Sessions database (default: ~/.sandfall/sessions.db)
//	--config <path>     - Custom sand YAML
//	--preset <name>     - classic, smooth, heavy or fine
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/storage"

	// Import terrain to register the built-in scenes
	_ "github.com/vovakirdan/sandfall/internal/terrain"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagPreset  string
	flagVerbose bool
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sandfall",
	Short: "sandfall - pour sand with your mouse",
	Long: `sandfall is a falling-sand sandbox. Hold the left mouse button to
pour grains, hold the right button to erase them, and watch them pile up.

Available commands:
  list      - Show all available scenes
  play      - Open a scene in the terminal
  menu      - Interactive scene picker
  gui       - Open a scene in a window
  serve     - Start SSH server for remote play
  sessions  - View recorded sessions

Examples:
  sandfall play
  sandfall play dunes --preset heavy
  sandfall menu --fps 60
  sandfall serve --ssh :2222
  sandfall sessions rain`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Simulation ticks per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sandfall/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom sand config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Physics preset: classic, smooth, heavy, fine")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// newLogger builds the command logger. Interactive commands own the terminal,
// so they only log when --log-file is set.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	var out io.Writer = os.Stderr
	cleanup := func() {}

	switch {
	case flagLogFile != "":
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, cleanup, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, cleanup, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		cleanup = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "sandfall",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, cleanup, nil
}

// loadSandConfig resolves the sand config and applies --preset.
func loadSandConfig() (config.SandConfig, config.Preset, error) {
	cfg, err := config.LoadSand(flagConfig)
	if err != nil {
		return cfg, config.PresetNone, err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, config.PresetNone, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// runtimeConfig sizes the runtime config from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the sessions database. A missing database only disables
// session recording.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		return nil
	}
	return store
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
