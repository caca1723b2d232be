package sight

import (
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/sirupsen/logrus"
)

// Eye describes an observer for one visibility query.
type Eye struct {
	Pos   grid.Coord
	Range int
	// Obstacles is the terrain that stops this observer's sight.
	Obstacles grid.TerrainSet
	// UnitsBlock makes occupied tiles between observer and target opaque.
	UnitsBlock bool
}

// NewEye builds an eye with the default obstacle set.
func NewEye(pos grid.Coord, rng int) Eye {
	return Eye{Pos: pos, Range: rng, Obstacles: grid.DefaultObstacles()}
}

// Visibility answers line-of-sight questions against one board.
type Visibility struct {
	g   *grid.Grid
	log *logrus.Entry
}

// NewVisibility returns a Visibility reading terrain and occupancy from g.
func NewVisibility(g *grid.Grid) *Visibility {
	return &Visibility{g: g, log: logger.Component("sight")}
}

// HasSightOn reports whether eye sees target. The observer's own tile is
// always visible. Otherwise the line between them (endpoints excluded) must
// fit in range and cross no obstacle; a sample off the board blocks.
func (v *Visibility) HasSightOn(eye Eye, target grid.Coord) bool {
	if target == eye.Pos {
		return true
	}
	samples := 0
	for c := range Sample(eye.Pos, target, grid.WithoutStartAndEnd) {
		samples++
		if v.blocks(eye, c) {
			return false
		}
	}
	return samples+1 <= eye.Range
}

func (v *Visibility) blocks(eye Eye, c grid.Coord) bool {
	t := v.g.At(c)
	if t == nil {
		return true
	}
	if eye.Obstacles.Has(t.Terrain) {
		return true
	}
	return eye.UnitsBlock && t.Occupied()
}

// VisibleTiles returns every tile within eye.Range (Chebyshev) that the eye
// can see. The observer's own tile is always a member.
func (v *Visibility) VisibleTiles(eye Eye) grid.CoordSet {
	out := grid.NewCoordSet(eye.Pos)
	for _, c := range v.g.TilesAround(eye.Pos, eye.Range) {
		if v.HasSightOn(eye, c) {
			out.Add(c)
		}
	}
	return out
}

// BlockedAt returns the first tile that stops eye from seeing target, or
// false when the line is clear. A target beyond range with a clear line
// reports false as well.
func (v *Visibility) BlockedAt(eye Eye, target grid.Coord) (grid.Coord, bool) {
	for c := range Sample(eye.Pos, target, grid.WithoutStartAndEnd) {
		if v.blocks(eye, c) {
			return c, true
		}
	}
	return grid.Coord{}, false
}
