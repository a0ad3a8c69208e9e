package storage

import (
	"time"

	"github.com/vovakirdan/sandfall/internal/sand"
)

// SessionFromEngine builds the record of a run from the engine's totals.
func SessionFromEngine(sceneID, preset string, seed int64, e *sand.Engine, elapsed time.Duration) Session {
	cfg := e.Config()
	stats := e.Stats()
	return Session{
		SceneID:     sceneID,
		Preset:      preset,
		Seed:        seed,
		Cols:        cfg.Cols,
		Rows:        cfg.Rows,
		Ticks:       int64(stats.Ticks),
		Spawned:     stats.Spawned,
		Erased:      stats.Erased,
		PeakActive:  stats.PeakActive,
		FinalActive: e.Registry().Len(),
		Duration:    elapsed,
	}
}
