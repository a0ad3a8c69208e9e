package sand

import "testing"

// fixedRand returns the same values every call.
type fixedRand struct {
	intn  int
	float float64
}

func (r fixedRand) Intn(n int) int {
	if r.intn >= n {
		return n - 1
	}
	return r.intn
}

func (r fixedRand) Float64() float64 { return r.float }

// checkInvariants verifies occupancy agreement, no overlap and containment.
func checkInvariants(t *testing.T, reg *Registry) {
	t.Helper()
	grid := reg.Grid()

	seen := make(map[Coord]ParticleID)
	reg.Each(func(p *Particle) {
		if !grid.InBounds(p.Pos) {
			t.Fatalf("particle %d left the grid at %v", p.ID, p.Pos)
		}
		if other, dup := seen[p.Pos]; dup {
			t.Fatalf("particles %d and %d share %v", other, p.ID, p.Pos)
		}
		seen[p.Pos] = p.ID
	})

	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			c := C(x, y)
			_, tracked := seen[c]
			if grid.IsOccupied(c) != tracked {
				t.Fatalf("grid occupied=%v at %v but registry tracked=%v", grid.IsOccupied(c), c, tracked)
			}
			if p, ok := reg.At(c); ok != tracked || (ok && p.Pos != c) {
				t.Fatalf("reverse index disagrees at %v", c)
			}
		}
	}
	if grid.OccupiedCount() != reg.Len() {
		t.Fatalf("grid has %d occupied cells, registry has %d particles", grid.OccupiedCount(), reg.Len())
	}
}
