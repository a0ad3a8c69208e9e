package sand

import "fmt"

// Coord is a cell coordinate on the sand grid.
// X is the column and grows to the right, Y is the row and grows downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Below returns the cell directly underneath.
func (c Coord) Below() Coord {
	return Coord{X: c.X, Y: c.Y + 1}
}
