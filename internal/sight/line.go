package sight

import (
	"iter"

	"github.com/Garsondee/tactics-core/internal/grid"
)

// Sample yields the tiles a straight line from start to end passes
// through: one per step of the longer axis, each rounded to the nearest
// tile with halves rounded up. Rounding works on the absolute position, so
// the same tiles come back when start and end are swapped. Sample never consults a
// board and may yield coordinates off it. The sequence can be ranged over
// any number of times.
func Sample(start, end grid.Coord, incl grid.Inclusion) iter.Seq[grid.Coord] {
	return func(yield func(grid.Coord) bool) {
		d := end.Sub(start)
		n := max(abs(d.X), abs(d.Y))
		if n == 0 {
			if incl.IncludesStart() || incl.IncludesEnd() {
				yield(start)
			}
			return
		}
		if incl.IncludesStart() && !yield(start) {
			return
		}
		last := n
		if !incl.IncludesEnd() {
			last = n - 1
		}
		for i := 1; i <= last; i++ {
			c := grid.C(roundDiv(start.X*n+i*d.X, n), roundDiv(start.Y*n+i*d.Y, n))
			if !yield(c) {
				return
			}
		}
	}
}

// Line collects Sample into a slice.
func Line(start, end grid.Coord, incl grid.Inclusion) []grid.Coord {
	var out []grid.Coord
	for c := range Sample(start, end, incl) {
		out = append(out, c)
	}
	return out
}

// Steps is the number of samples on the longer axis between a and b.
func Steps(a, b grid.Coord) int {
	return a.Chebyshev(b)
}

// roundDiv returns num/den rounded to nearest, halves up. den must be
// positive.
func roundDiv(num, den int) int {
	return floorDiv(2*num+den, 2*den)
}

func floorDiv(num, den int) int {
	q := num / den
	if num%den != 0 && (num < 0) != (den < 0) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
