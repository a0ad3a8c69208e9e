package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [scene]",
	Short: "Show recorded sessions",
	Long: `Display recent sandbox sessions and per-scene totals.

Examples:
  sandfall sessions
  sandfall sessions dunes --limit 5
  sandfall sessions rain --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	sessionsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded sessions")
}

func runSessions(_ *cobra.Command, args []string) error {
	sceneID := ""
	if len(args) > 0 {
		sceneID = args[0]
		if !registry.Exists(sceneID) {
			return fmt.Errorf("unknown scene %q; run 'sandfall list' to see available scenes", sceneID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open sessions database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(sceneID); err != nil {
			return err
		}
		fmt.Println("Sessions cleared.")
		return nil
	}

	sessions, err := store.RecentSessions(sceneID, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve sessions: %w", err)
	}

	if sceneID == "" {
		fmt.Println("Recent sessions - all scenes")
	} else {
		fmt.Printf("Recent sessions - %s\n", sceneID)
	}
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'sandfall play' to start one.")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %8s  %8s  %8s  %8s  %s\n",
		"Date", "Scene", "Ticks", "Poured", "Erased", "Peak", "Time")
	fmt.Printf("  %-16s  %-8s  %8s  %8s  %8s  %8s  %s\n",
		"----", "-----", "-----", "------", "------", "----", "----")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-8s  %8d  %8d  %8d  %8d  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.SceneID,
			s.Ticks, s.Spawned, s.Erased, s.PeakActive, s.Duration.Round(time.Second))
	}

	fmt.Println()
	return printStats(store, sceneID)
}

func printStats(store *storage.Store, sceneID string) error {
	if sceneID != "" {
		stats, err := store.GetSceneStats(sceneID)
		if err != nil {
			return err
		}
		fmt.Printf("Sessions: %d  Grains poured: %d  Peak: %d\n",
			stats.Sessions, stats.TotalSpawned, stats.PeakActive)
		return nil
	}

	all, err := store.GetAllSceneStats()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		stats := all[id]
		fmt.Printf("%-8s  sessions: %d  poured: %d  peak: %d\n",
			id, stats.Sessions, stats.TotalSpawned, stats.PeakActive)
	}
	return nil
}
