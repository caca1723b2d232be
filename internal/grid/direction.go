package grid

// Direction is one of the eight compass steps.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
	directionCount
)

// Orthogonal directions come first so that 4-connected iteration is a
// prefix of 8-connected iteration. Neighbour order is part of the engine's
// determinism: changing it changes which of several equal paths is found.
var dirOffsets = [directionCount]Coord{
	North:     {0, 1},
	East:      {1, 0},
	South:     {0, -1},
	West:      {-1, 0},
	NorthEast: {1, 1},
	SouthEast: {1, -1},
	SouthWest: {-1, -1},
	NorthWest: {-1, 1},
}

var dirNames = [directionCount]string{
	"N", "E", "S", "W", "NE", "SE", "SW", "NW",
}

// Offset returns the coordinate delta of one step in d.
func (d Direction) Offset() Coord {
	if d >= directionCount {
		return Coord{}
	}
	return dirOffsets[d]
}

// Diagonal reports whether d is a diagonal step.
func (d Direction) Diagonal() bool { return d >= NorthEast && d < directionCount }

func (d Direction) String() string {
	if d >= directionCount {
		return "?"
	}
	return dirNames[d]
}

// Orthogonals lists N, E, S, W in evaluation order.
func Orthogonals() []Direction { return []Direction{North, East, South, West} }

// Directions returns the step directions for 4- or 8-connectivity.
func Directions(diagonals bool) []Direction {
	if diagonals {
		return []Direction{North, East, South, West, NorthEast, SouthEast, SouthWest, NorthWest}
	}
	return Orthogonals()
}
