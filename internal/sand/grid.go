package sand

// Grid is the dense occupancy store of the simulation.
// Cells are stored in row-major order: index = y*W + x.
//
// Grid is the ground truth for "is this cell occupied". Lookups outside
// the grid behave as a wall: they report occupied, so nothing can fall
// or drift off the simulated area.
type Grid struct {
	W     int    // Number of columns
	H     int    // Number of rows
	cells []bool // Flat occupancy array, length W*H
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:     w,
		H:     h,
		cells: make([]bool, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// IsOccupied reports whether the cell is taken.
// Out-of-bounds coordinates are always occupied.
func (g *Grid) IsOccupied(c Coord) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.cells[g.index(c)]
}

// Set writes the occupancy of a cell.
// Out-of-bounds coordinates are silently ignored.
func (g *Grid) Set(c Coord, occupied bool) {
	if !g.InBounds(c) {
		return
	}
	g.cells[g.index(c)] = occupied
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	count := 0
	for _, occupied := range g.cells {
		if occupied {
			count++
		}
	}
	return count
}

// OccupiedCoords returns all occupied coordinates, ordered by row then column.
func (g *Grid) OccupiedCoords() []Coord {
	coords := make([]Coord, 0)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.cells[y*g.W+x] {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// LandingRow returns the lowest empty row reachable by falling straight down
// from c without crossing an occupied cell. When the cell below c is blocked
// the result is c.Y.
func (g *Grid) LandingRow(c Coord) int {
	row := c.Y
	for next := c.Below(); !g.IsOccupied(next); next = next.Below() {
		row = next.Y
	}
	return row
}
