package sand

import "errors"

var (
	// ErrOutOfBounds is returned when inserting outside the grid.
	ErrOutOfBounds = errors.New("sand: coordinate out of bounds")
	// ErrOccupied is returned when inserting into a taken cell.
	ErrOccupied = errors.New("sand: cell already occupied")
)

// Registry tracks active particles and keeps the grid in agreement with them.
//
// A cell is occupied in the grid iff exactly one registered particle sits
// on it. All mutations go through Insert, RemoveAt and Move, which update
// both sides together.
type Registry struct {
	grid      *Grid
	particles map[ParticleID]*Particle
	byCell    []ParticleID // Reverse index, same layout as the grid
	order     []ParticleID // Insertion order, may contain removed IDs
	removed   int          // Removed IDs still present in order
	nextID    ParticleID
}

// NewRegistry creates an empty registry bound to the given grid.
func NewRegistry(grid *Grid) *Registry {
	return &Registry{
		grid:      grid,
		particles: make(map[ParticleID]*Particle),
		byCell:    make([]ParticleID, grid.W*grid.H),
	}
}

// Grid returns the occupancy grid this registry maintains.
func (r *Registry) Grid() *Grid {
	return r.grid
}

// Len returns the number of active particles.
func (r *Registry) Len() int {
	return len(r.particles)
}

// Insert creates a falling particle at rest velocity on an empty cell.
func (r *Registry) Insert(c Coord) (ParticleID, error) {
	if !r.grid.InBounds(c) {
		return 0, ErrOutOfBounds
	}
	if r.grid.IsOccupied(c) {
		return 0, ErrOccupied
	}

	r.nextID++
	id := r.nextID
	r.particles[id] = &Particle{ID: id, Pos: c, Mode: ModeFalling}
	r.byCell[r.grid.index(c)] = id
	r.order = append(r.order, id)
	r.grid.Set(c, true)
	return id, nil
}

// RemoveAt deletes the particle on c. Returns false if there is none.
func (r *Registry) RemoveAt(c Coord) bool {
	if !r.grid.InBounds(c) {
		return false
	}
	idx := r.grid.index(c)
	id := r.byCell[idx]
	if id == 0 {
		return false
	}

	delete(r.particles, id)
	r.byCell[idx] = 0
	r.grid.Set(c, false)

	r.removed++
	if r.removed > len(r.order)/2 {
		r.compact()
	}
	return true
}

// Move relocates a particle. The destination must be empty and in bounds;
// otherwise nothing changes and false is returned.
func (r *Registry) Move(id ParticleID, to Coord) bool {
	p, ok := r.particles[id]
	if !ok {
		return false
	}
	if p.Pos == to {
		return true
	}
	if r.grid.IsOccupied(to) {
		return false
	}

	from := p.Pos
	r.grid.Set(from, false)
	r.byCell[r.grid.index(from)] = 0

	r.grid.Set(to, true)
	r.byCell[r.grid.index(to)] = id
	p.Pos = to
	return true
}

// Get returns the particle with the given ID.
func (r *Registry) Get(id ParticleID) (*Particle, bool) {
	p, ok := r.particles[id]
	return p, ok
}

// At returns the particle occupying c, if any.
func (r *Registry) At(c Coord) (*Particle, bool) {
	if !r.grid.InBounds(c) {
		return nil, false
	}
	id := r.byCell[r.grid.index(c)]
	if id == 0 {
		return nil, false
	}
	return r.particles[id], true
}

// Active returns the IDs of all active particles in insertion order.
func (r *Registry) Active() []ParticleID {
	ids := make([]ParticleID, 0, len(r.particles))
	for _, id := range r.order {
		if _, ok := r.particles[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Each calls fn for every active particle in insertion order.
// fn must not insert or remove particles.
func (r *Registry) Each(fn func(p *Particle)) {
	for _, id := range r.order {
		if p, ok := r.particles[id]; ok {
			fn(p)
		}
	}
}

// Clear removes every particle and empties the grid.
func (r *Registry) Clear() {
	r.particles = make(map[ParticleID]*Particle)
	for i := range r.byCell {
		r.byCell[i] = 0
	}
	r.order = r.order[:0]
	r.removed = 0
	r.grid.Clear()
}

// compact drops removed IDs from the insertion order.
func (r *Registry) compact() {
	kept := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.particles[id]; ok {
			kept = append(kept, id)
		}
	}
	r.order = kept
	r.removed = 0
}
