package sand

// Snapshot captures the engine state for determinism tests and the HUD.
type Snapshot struct {
	Tick        uint64
	Cols        int
	Rows        int
	Active      int
	Falling     int
	Drifting    int
	SpawnRadius int
	EraseRadius int
	Positions   []Coord // Active particle positions in insertion order
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	brush := e.brush.Settings()
	snap := Snapshot{
		Tick:        e.stats.Ticks,
		Cols:        e.grid.W,
		Rows:        e.grid.H,
		Active:      e.reg.Len(),
		SpawnRadius: brush.SpawnRadius,
		EraseRadius: brush.EraseRadius,
		Positions:   make([]Coord, 0, e.reg.Len()),
	}
	e.reg.Each(func(p *Particle) {
		switch p.Mode {
		case ModeFalling:
			snap.Falling++
		case ModeDrift:
			snap.Drifting++
		}
		snap.Positions = append(snap.Positions, p.Pos)
	})
	return snap
}
