package nav

import (
	"strings"

	"github.com/Garsondee/tactics-core/internal/grid"
)

// Step costs. A diagonal step approximates 10·√2.
const (
	OrthogonalCost = 10
	DiagonalCost   = 14
)

// StepCost returns the cost of moving between two adjacent tiles.
func StepCost(from, to grid.Coord) int {
	if from.IsDiagonalTo(to) {
		return DiagonalCost
	}
	return OrthogonalCost
}

// Path is the result of a route search. Tiles runs start→end, trimmed by the
// Inclusion the search was asked for. Reached distinguishes "no route"
// from a route that was found but trims to nothing.
type Path struct {
	Tiles   []grid.Coord
	Cost    int
	Reached bool
}

// Len returns the number of tiles in the path.
func (p Path) Len() int { return len(p.Tiles) }

// Empty reports whether the path holds no tiles.
func (p Path) Empty() bool { return len(p.Tiles) == 0 }

// Last returns the final tile of the path.
func (p Path) Last() (grid.Coord, bool) {
	if len(p.Tiles) == 0 {
		return grid.Coord{}, false
	}
	return p.Tiles[len(p.Tiles)-1], true
}

func (p Path) String() string {
	if !p.Reached {
		return "no path"
	}
	parts := make([]string, len(p.Tiles))
	for i, c := range p.Tiles {
		parts[i] = c.String()
	}
	return strings.Join(parts, "->")
}

// trim drops endpoints from a full start→end route according to incl.
func trim(full []grid.Coord, incl grid.Inclusion) []grid.Coord {
	lo, hi := 0, len(full)
	if !incl.IncludesStart() && hi > lo {
		lo++
	}
	if !incl.IncludesEnd() && hi > lo {
		hi--
	}
	return full[lo:hi]
}
