package sand

import "math"

// Rand is the source of randomness used by the simulation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Physics holds the tunables of the settling rule.
type Physics struct {
	Gravity float64 // Velocity gained per tick while falling

	// CarryRemainder keeps the fractional part of each tick's fall distance
	// and adds it to the next tick. When false the fraction is dropped every
	// tick, which reproduces the slow start of the classic simulation.
	CarryRemainder bool
}

// ActionKind is the type of move a particle makes in one tick.
type ActionKind int

const (
	ActionNone  ActionKind = iota // Stays put
	ActionFall                    // Falling straight down (possibly zero rows)
	ActionLand                    // Snaps to its landing row and starts drifting
	ActionDrift                   // Slides one cell diagonally down
)

// String returns a human-readable name for the action.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "None"
	case ActionFall:
		return "Fall"
	case ActionLand:
		return "Land"
	case ActionDrift:
		return "Drift"
	default:
		return "Unknown"
	}
}

// Action is the outcome of Decide: where the particle goes and the state it
// carries afterwards.
type Action struct {
	Kind      ActionKind
	To        Coord
	Velocity  float64
	Remainder float64
	Mode      Mode
}

// Moves reports whether applying the action changes the particle's cell.
func (a Action) Moves(from Coord) bool {
	return a.Kind != ActionNone && a.To != from
}

// Decide computes the next action for a particle. It only reads the grid.
//
// Falling particles compare their projected row (row + floor(velocity))
// against the landing row. While strictly above it they gain gravity and
// drop floor(velocity) rows, never past the landing row; otherwise they
// snap onto the landing row and switch to drift.
//
// Drifting particles pick a random side d and try (x+d, y+1), then
// (x-d, y+1). Cells outside the grid count as occupied.
func Decide(p Particle, grid *Grid, phys Physics, rng Rand) Action {
	if p.Mode == ModeFalling {
		return decideFall(p, grid, phys)
	}
	return decideDrift(p, grid, rng)
}

func decideFall(p Particle, grid *Grid, phys Physics) Action {
	landing := grid.LandingRow(p.Pos)
	projected := p.Pos.Y + int(math.Floor(p.Velocity))

	if projected >= landing {
		return Action{
			Kind:     ActionLand,
			To:       C(p.Pos.X, landing),
			Velocity: p.Velocity,
			Mode:     ModeDrift,
		}
	}

	velocity := p.Velocity + phys.Gravity
	distance := velocity
	if phys.CarryRemainder {
		distance += p.remainder
	}
	rows := int(math.Floor(distance))
	remainder := 0.0
	if phys.CarryRemainder {
		remainder = distance - float64(rows)
	}

	row := p.Pos.Y + rows
	if row > landing {
		row = landing
	}
	return Action{
		Kind:      ActionFall,
		To:        C(p.Pos.X, row),
		Velocity:  velocity,
		Remainder: remainder,
		Mode:      ModeFalling,
	}
}

func decideDrift(p Particle, grid *Grid, rng Rand) Action {
	d := 1
	if rng.Intn(2) == 0 {
		d = -1
	}

	if a := p.Pos.Add(d, 1); !grid.IsOccupied(a) {
		return Action{Kind: ActionDrift, To: a, Velocity: p.Velocity, Mode: ModeDrift}
	}
	if b := p.Pos.Add(-d, 1); !grid.IsOccupied(b) {
		return Action{Kind: ActionDrift, To: b, Velocity: p.Velocity, Mode: ModeDrift}
	}
	return Action{Kind: ActionNone, To: p.Pos, Velocity: p.Velocity, Mode: ModeDrift}
}
