package sand

// Mode is the movement phase of a particle.
type Mode int

const (
	// ModeFalling accumulates velocity and drops straight down.
	ModeFalling Mode = iota
	// ModeDrift has landed and only slides diagonally down.
	ModeDrift
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeFalling:
		return "falling"
	case ModeDrift:
		return "drift"
	default:
		return "unknown"
	}
}

// ParticleID identifies an active particle. The zero value is never issued.
type ParticleID uint64

// Particle is a single grain bound to one occupied cell.
type Particle struct {
	ID       ParticleID
	Pos      Coord
	Velocity float64 // Accumulated fall speed in cells per tick
	Mode     Mode

	// remainder holds the fractional part of the fall distance that has
	// not been turned into whole rows yet. Only used when carrying.
	remainder float64
}
