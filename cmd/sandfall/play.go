package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/platform/tui"
	"github.com/vovakirdan/sandfall/internal/registry"
)

const defaultScene = "empty"

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Open a scene in the terminal",
	Long: `Open a sandbox in the terminal. Without a scene the grid starts empty.

Controls:
  Left mouse      - Pour sand
  Right mouse     - Erase sand
  P/Space         - Pause
  N               - Step one tick while paused
  C               - Clear the grid
  ]/[             - Grow/shrink the brush
  Ctrl+S          - Save a screenshot
  Q/Ctrl+C        - Quit

Examples:
  sandfall play
  sandfall play dunes --seed 42
  sandfall play rain --preset smooth
  sandfall play --config ./my-sand.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	sceneID := defaultScene
	if len(args) > 0 {
		sceneID = args[0]
	}

	if !registry.Exists(sceneID) {
		return fmt.Errorf("unknown scene %q; run 'sandfall list' to see available scenes", sceneID)
	}

	cfg, preset, err := loadSandConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	scene, err := registry.Create(sceneID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting sandbox", "scene", sceneID, "preset", preset, "seed", flagSeed)
	if err := tui.Run(scene, tui.Options{
		Config:  cfg,
		Preset:  preset,
		Runtime: runtimeConfig(),
		Store:   store,
		Logger:  logger,
	}); err != nil {
		return fmt.Errorf("cannot run sandbox: %w", err)
	}
	return nil
}
