// Package terrain seeds engines with procedural starting sand.
package terrain

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/sand"
)

// Target receives generated grains. *sand.Engine satisfies it.
type Target interface {
	Grid() *sand.Grid
	Insert(c sand.Coord) error
	Settle(c sand.Coord) error
}

// DuneOptions shapes the Perlin heightmap.
type DuneOptions struct {
	Base      float64 // Mean height as a fraction of the grid height
	Amplitude float64 // Height variation as a fraction of the grid height
	Scale     float64 // Noise samples per column; smaller is smoother
}

// DefaultDuneOptions returns gentle rolling dunes.
func DefaultDuneOptions() DuneOptions {
	return DuneOptions{Base: 0.25, Amplitude: 0.15, Scale: 0.04}
}

// Heightmap returns a pile height in cells for every column.
func Heightmap(cols, rows int, seed int64, opts DuneOptions) []int {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	heights := make([]int, cols)
	for x := range heights {
		n := noise.Noise1D(float64(x) * opts.Scale)
		h := (opts.Base + n*opts.Amplitude) * float64(rows)
		heights[x] = core.Clamp(int(math.Round(h)), 0, rows)
	}
	return heights
}

// Dunes fills the bottom of the grid with resting sand following the
// heightmap. Returns the number of grains placed.
func Dunes(t Target, seed int64, opts DuneOptions) int {
	g := t.Grid()
	placed := 0
	for x, h := range Heightmap(g.W, g.H, seed, opts) {
		for y := g.H - h; y < g.H; y++ {
			if t.Settle(sand.C(x, y)) == nil {
				placed++
			}
		}
	}
	return placed
}

// Rain scatters falling grains over the upper third of the grid. density is
// the fraction of those cells that receive a grain. Returns the number of
// grains placed.
func Rain(t Target, rng *rand.Rand, density float64) int {
	g := t.Grid()
	band := g.H / 3
	if band < 1 {
		band = 1
	}
	want := int(float64(g.W*band) * density)

	placed := 0
	for i := 0; i < want; i++ {
		c := sand.C(rng.Intn(g.W), rng.Intn(band))
		// Collisions are skipped, which thins the rain slightly
		if t.Insert(c) == nil {
			placed++
		}
	}
	return placed
}
