package sand

import "sort"

// StepStats summarizes what happened during one settling pass.
type StepStats struct {
	Moved  int // Particles that changed cell
	Landed int // Particles that switched from falling to drift
	Still  int // Particles that stayed put
}

// Scheduler runs the settling pass over all active particles.
type Scheduler struct {
	reg     *Registry
	physics Physics
	rng     Rand

	order   []int          // Column processing order, reshuffled every pass
	columns [][]ParticleID // Per-column buckets, reused between passes
}

// NewScheduler creates a scheduler for the registry's grid.
func NewScheduler(reg *Registry, phys Physics, rng Rand) *Scheduler {
	w := reg.Grid().W
	order := make([]int, w)
	for i := range order {
		order[i] = i
	}
	return &Scheduler{
		reg:     reg,
		physics: phys,
		rng:     rng,
		order:   order,
		columns: make([][]ParticleID, w),
	}
}

// Physics returns the physics parameters in use.
func (s *Scheduler) Physics() Physics {
	return s.physics
}

// ColumnOrder returns the column order used by the most recent pass.
func (s *Scheduler) ColumnOrder() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Step settles every active particle once.
//
// Columns are visited in a fresh uniform random order; inside a column the
// particles are visited bottom to top by their row at the start of the pass.
// Each particle is decided and applied before the next one is looked at, so
// the grid and registry agree after every single move.
func (s *Scheduler) Step() StepStats {
	var stats StepStats

	s.shuffle()
	s.bucket()

	for _, col := range s.order {
		for _, id := range s.columns[col] {
			p, ok := s.reg.Get(id)
			if !ok {
				continue
			}
			s.apply(p, Decide(*p, s.reg.Grid(), s.physics, s.rng), &stats)
		}
	}
	return stats
}

// apply writes one action back into the registry.
func (s *Scheduler) apply(p *Particle, a Action, stats *StepStats) {
	from := p.Pos
	if a.Moves(from) && !s.reg.Move(p.ID, a.To) {
		// Destination taken: the particle holds its cell this tick.
		stats.Still++
		return
	}

	p.Velocity = a.Velocity
	p.remainder = a.Remainder
	if a.Kind == ActionLand && p.Mode == ModeFalling {
		stats.Landed++
	}
	p.Mode = a.Mode

	if p.Pos != from {
		stats.Moved++
	} else {
		stats.Still++
	}
}

// shuffle regenerates the column order with a Fisher-Yates shuffle.
func (s *Scheduler) shuffle() {
	for i := range s.order {
		s.order[i] = i
	}
	for i := len(s.order) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.order[i], s.order[j] = s.order[j], s.order[i]
	}
}

// bucket groups active particles by column, bottom row first.
func (s *Scheduler) bucket() {
	for i := range s.columns {
		s.columns[i] = s.columns[i][:0]
	}
	s.reg.Each(func(p *Particle) {
		s.columns[p.Pos.X] = append(s.columns[p.Pos.X], p.ID)
	})
	for _, ids := range s.columns {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool {
			pi, _ := s.reg.Get(ids[i])
			pj, _ := s.reg.Get(ids[j])
			return pi.Pos.Y > pj.Pos.Y
		})
	}
}
