package nav

import (
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/sirupsen/logrus"
)

// heuristicFunc estimates the remaining cost between two tiles.
type heuristicFunc func(a, b grid.Coord, diagonals bool) int

// defaultHeuristic is admissible for both connectivities: Manhattan·10 on a
// 4-connected board, octile distance on an 8-connected one.
func defaultHeuristic(a, b grid.Coord, diagonals bool) int {
	if !diagonals {
		return a.Manhattan(b) * OrthogonalCost
	}
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	lo, hi := min(dx, dy), max(dx, dy)
	return lo*DiagonalCost + (hi-lo)*OrthogonalCost
}

func manhattanHeuristic(a, b grid.Coord, _ bool) int {
	return a.Manhattan(b) * OrthogonalCost
}

type config struct {
	heuristic heuristicFunc
	log       *logrus.Entry
}

func defaultConfig() config {
	return config{heuristic: defaultHeuristic, log: logger.Component("nav")}
}

// Option configures a Pathfinder or MovementRange.
type Option func(*config)

// WithManhattanHeuristic uses Manhattan·10 on every board. On 8-connected
// boards it overestimates diagonal routes, so the returned path may not be
// the cheapest.
func WithManhattanHeuristic() Option {
	return func(c *config) { c.heuristic = manhattanHeuristic }
}

// WithLogger routes search logging to entry.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *config) {
		if entry != nil {
			c.log = entry
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
