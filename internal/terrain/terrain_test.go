package terrain

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/sandfall/internal/sand"
)

func newEngine(t *testing.T, cols, rows int) *sand.Engine {
	t.Helper()
	e, err := sand.New(sand.DefaultConfig(cols, rows), 1)
	if err != nil {
		t.Fatalf("sand.New() failed: %v", err)
	}
	return e
}

func TestHeightmapBoundsAndDeterminism(t *testing.T) {
	opts := DefaultDuneOptions()
	a := Heightmap(120, 40, 7, opts)
	b := Heightmap(120, 40, 7, opts)

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should give the same heightmap")
	}
	for x, h := range a {
		if h < 0 || h > 40 {
			t.Fatalf("column %d height %d outside [0,40]", x, h)
		}
	}
}

func TestHeightmapClampsExtremes(t *testing.T) {
	h := Heightmap(30, 10, 3, DuneOptions{Base: 5, Amplitude: 0, Scale: 0.1})
	for x, v := range h {
		if v != 10 {
			t.Errorf("column %d = %d, expected clamp to 10", x, v)
		}
	}
}

func TestDunesSettleOnTheFloor(t *testing.T) {
	e := newEngine(t, 60, 30)
	placed := Dunes(e, 11, DefaultDuneOptions())

	if placed == 0 {
		t.Fatal("Dunes() placed no grains")
	}
	if placed != e.Registry().Len() {
		t.Errorf("placed %d, registry has %d", placed, e.Registry().Len())
	}

	// Every grain rests and columns are solid from the floor up
	g := e.Grid()
	e.Registry().Each(func(p *sand.Particle) {
		if p.Mode != sand.ModeDrift {
			t.Fatalf("grain at %v is %v, expected drift", p.Pos, p.Mode)
		}
		for y := p.Pos.Y; y < g.H; y++ {
			if !g.IsOccupied(sand.C(p.Pos.X, y)) {
				t.Fatalf("gap below grain at %v", p.Pos)
			}
		}
	})
}

func TestRainStaysInUpperThird(t *testing.T) {
	e := newEngine(t, 40, 30)
	placed := Rain(e, rand.New(rand.NewSource(5)), 0.2)

	if placed == 0 || placed > 40*10*2/10 {
		t.Errorf("Rain() placed %d grains", placed)
	}
	e.Registry().Each(func(p *sand.Particle) {
		if p.Pos.Y >= 10 {
			t.Fatalf("grain at %v is below the upper third", p.Pos)
		}
		if p.Mode != sand.ModeFalling {
			t.Fatalf("rain grain at %v should be falling", p.Pos)
		}
	})
}

func TestRainTinyGrid(t *testing.T) {
	e := newEngine(t, 2, 2)
	if n := Rain(e, rand.New(rand.NewSource(1)), 1); n < 1 || n > 2 {
		t.Errorf("Rain() on 2x2 placed %d, expected 1 or 2", n)
	}
}
