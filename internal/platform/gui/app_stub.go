//go:build !ebiten

package gui

import "github.com/vovakirdan/sandfall/internal/registry"

// Run reports that the GUI is unavailable in this build.
func Run(registry.Scene, Options) error {
	return ErrNoGUI
}
