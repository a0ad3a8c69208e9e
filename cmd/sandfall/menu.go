package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/platform/tui"
	"github.com/vovakirdan/sandfall/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start sandfall with a scene picker menu",
	Long: `Start sandfall in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to open a scene.
Leaving a sandbox with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Open scene
  Tab/H        - Session history
  Q            - Quit

Examples:
  sandfall menu
  sandfall menu --fps 60
  sandfall menu --db ./sessions.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	sandCfg, preset, err := loadSandConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.SceneID == "" {
			return nil
		}

		scene, err := registry.Create(menuResult.SceneID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
			continue
		}

		// A fixed --seed replays the same scene every time
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("starting sandbox", "scene", menuResult.SceneID, "seed", cfg.Seed)
		if err := tui.Run(scene, tui.Options{
			Config:  sandCfg,
			Preset:  preset,
			Runtime: cfg,
			Store:   store,
			Logger:  logger,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running sandbox: %v\n", err)
		}
	}
}
