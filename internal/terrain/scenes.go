package terrain

import (
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/sand"
)

const rainDensity = 0.15

func init() {
	registry.Register("empty", func() registry.Scene { return emptyScene{} })
	registry.Register("dunes", func() registry.Scene { return dunesScene{} })
	registry.Register("rain", func() registry.Scene { return rainScene{} })
}

type emptyScene struct{}

func (emptyScene) ID() string               { return "empty" }
func (emptyScene) Title() string            { return "Empty" }
func (emptyScene) Description() string      { return "A blank grid to paint on" }
func (emptyScene) Seed(*sand.Engine, int64) {}

type dunesScene struct{}

func (dunesScene) ID() string          { return "dunes" }
func (dunesScene) Title() string       { return "Dunes" }
func (dunesScene) Description() string { return "Rolling hills of resting sand" }

func (dunesScene) Seed(e *sand.Engine, seed int64) {
	Dunes(e, seed, DefaultDuneOptions())
}

type rainScene struct{}

func (rainScene) ID() string          { return "rain" }
func (rainScene) Title() string       { return "Rain" }
func (rainScene) Description() string { return "Grains scattered in the sky, falling" }

func (rainScene) Seed(e *sand.Engine, _ int64) {
	Rain(e, e.Rand(), rainDensity)
}
