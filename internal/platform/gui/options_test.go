package gui

import (
	"errors"
	"testing"

	"github.com/vovakirdan/sandfall/internal/config"
)

func TestGridSize(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		wantCols   int
		wantRows   int
	}{
		{"defaults", 0, 0, DefaultCols, DefaultRows},
		{"explicit", 40, 30, 40, 30},
		{"cols only", 50, 0, 50, DefaultRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultSandConfig()
			cfg.Grid.Cols, cfg.Grid.Rows = tt.cols, tt.rows
			cols, rows := Options{Config: cfg}.gridSize()
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("gridSize() = %dx%d, expected %dx%d", cols, rows, tt.wantCols, tt.wantRows)
			}
		})
	}
}

func TestErrNoGUIIsComparable(t *testing.T) {
	wrapped := errors.Join(errors.New("gui command"), ErrNoGUI)
	if !errors.Is(wrapped, ErrNoGUI) {
		t.Error("ErrNoGUI should survive wrapping")
	}
}
