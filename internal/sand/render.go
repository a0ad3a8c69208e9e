package sand

// Renderer draws occupied cells. It never feeds back into the simulation.
type Renderer interface {
	// FillCell draws one filled square of size x size screen units whose
	// top-left corner is at (x, y).
	FillCell(x, y, size int, mode Mode)
}

// Render draws every active particle in insertion order at
// (col*cellSize, row*cellSize).
func (e *Engine) Render(r Renderer) {
	size := e.cfg.CellSize
	e.reg.Each(func(p *Particle) {
		r.FillCell(p.Pos.X*size, p.Pos.Y*size, size, p.Mode)
	})
}
