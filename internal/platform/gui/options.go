// Package gui runs the sandbox in a window with Ebitengine. The window is
// only compiled with the ebiten build tag; other builds get a stub that
// reports the missing tag.
package gui

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/storage"
)

// Default grid size when the configuration leaves it open: 800x600 pixels at
// the default cell size of 5.
const (
	DefaultCols = 160
	DefaultRows = 120
)

// ErrNoGUI is returned by Run in builds without the ebiten tag.
var ErrNoGUI = errors.New("gui: built without the ebiten tag; rebuild with -tags ebiten")

// Options configures a GUI session.
type Options struct {
	Config   config.SandConfig
	Preset   config.Preset
	Seed     int64
	TickRate int
	Store    *storage.Store // May be nil
	Logger   *log.Logger    // May be nil
}

// gridSize returns the grid dimensions for the window.
func (o Options) gridSize() (cols, rows int) {
	return o.Config.Dimensions(DefaultCols, DefaultRows)
}
