package terrain

import (
	"testing"
	"time"

	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/sand"
)

func TestBuiltinScenesRegistered(t *testing.T) {
	tests := []struct {
		id        string
		wantEmpty bool
	}{
		{"empty", true},
		{"dunes", false},
		{"rain", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tt.id, err)
			}
			if s.ID() != tt.id {
				t.Errorf("ID() = %q, expected %q", s.ID(), tt.id)
			}

			e := newEngine(t, 50, 30)
			s.Seed(e, 3)
			if got := e.Registry().Len() == 0; got != tt.wantEmpty {
				t.Errorf("after Seed() Len() = %d", e.Registry().Len())
			}

			// The simulation keeps its invariants from a seeded start
			var in core.InputFrame
			start := time.Unix(0, 0)
			for i := 0; i < 50; i++ {
				e.Tick(in, start.Add(time.Duration(i)*time.Second/30))
			}
			if e.Grid().OccupiedCount() != e.Registry().Len() {
				t.Error("grid and registry disagree after seeding")
			}
		})
	}
}

func TestSceneList(t *testing.T) {
	ids := make(map[string]bool)
	for _, info := range registry.List() {
		ids[info.ID] = true
	}
	for _, id := range []string{"empty", "dunes", "rain"} {
		if !ids[id] {
			t.Errorf("List() missing %q", id)
		}
	}
}

var _ registry.Scene = dunesScene{}
var _ Target = (*sand.Engine)(nil)
