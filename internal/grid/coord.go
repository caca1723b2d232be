package grid

import (
	"fmt"
	"slices"
)

// Coord is an integer tile coordinate. X grows east, Y grows north.
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{x, y}.
func C(x, y int) Coord { return Coord{X: x, Y: y} }

// Add returns c+o.
func (c Coord) Add(o Coord) Coord { return Coord{c.X + o.X, c.Y + o.Y} }

// Sub returns c-o.
func (c Coord) Sub(o Coord) Coord { return Coord{c.X - o.X, c.Y - o.Y} }

// Manhattan returns |dx|+|dy|.
func (c Coord) Manhattan(o Coord) int {
	return absInt(c.X-o.X) + absInt(c.Y-o.Y)
}

// Chebyshev returns max(|dx|,|dy|).
func (c Coord) Chebyshev(o Coord) int {
	return max(absInt(c.X-o.X), absInt(c.Y-o.Y))
}

// IsOrthogonalTo reports whether o is one orthogonal step from c.
func (c Coord) IsOrthogonalTo(o Coord) bool {
	return c.Manhattan(o) == 1
}

// IsDiagonalTo reports whether o is one diagonal step from c.
func (c Coord) IsDiagonalTo(o Coord) bool {
	return absInt(c.X-o.X) == 1 && absInt(c.Y-o.Y) == 1
}

// Less is the engine's total order on coordinates: row-major, Y then X.
// Every tie-break between otherwise equal candidates goes through it.
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// SortCoords sorts cs in place using Less.
func SortCoords(cs []Coord) {
	slices.SortFunc(cs, func(a, b Coord) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
