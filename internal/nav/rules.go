package nav

import "github.com/Garsondee/tactics-core/internal/grid"

// TraversalRules is the per-query admission policy: which terrain may be
// entered, which occupied tiles block, and whether diagonal steps exist.
// A TraversalRules value is immutable once built.
type TraversalRules struct {
	allowed   grid.TerrainSet
	blockers  grid.CoordSet
	diagonals bool
}

// NewRules copies its inputs.
func NewRules(allowed grid.TerrainSet, blockers []grid.Coord, diagonals bool) TraversalRules {
	return TraversalRules{
		allowed:   allowed,
		blockers:  grid.NewCoordSet(blockers...),
		diagonals: diagonals,
	}
}

// Walkable is the rule set for an unobstructed mover on default terrain.
func Walkable(diagonals bool) TraversalRules {
	return NewRules(grid.DefaultWalkable(), nil, diagonals)
}

// Allows reports whether terrain t may be entered.
func (r TraversalRules) Allows(t grid.TerrainType) bool { return r.allowed.Has(t) }

// Blocks reports whether an occupant on c bars entry.
func (r TraversalRules) Blocks(c grid.Coord) bool { return r.blockers.Has(c) }

// Diagonals reports whether 8-connectivity is in effect.
func (r TraversalRules) Diagonals() bool { return r.diagonals }

// Allowed returns the allowed terrain set.
func (r TraversalRules) Allowed() grid.TerrainSet { return r.allowed }

// Blockers lists the blocking coordinates in Coord.Less order.
func (r TraversalRules) Blockers() []grid.Coord { return r.blockers.Sorted() }

// WithBlockers returns a copy of r whose blocker set is replaced by cs.
func (r TraversalRules) WithBlockers(cs []grid.Coord) TraversalRules {
	return NewRules(r.allowed, cs, r.diagonals)
}

// passable is the terrain-and-blocker test shared by admission and the
// corner-cutting check.
func (r TraversalRules) passable(g *grid.Grid, c grid.Coord) bool {
	t, ok := g.Terrain(c)
	return ok && r.Allows(t) && !r.Blocks(c)
}

// cutsCorner reports whether the diagonal step from→to squeezes past an
// impassable orthogonal tile.
func (r TraversalRules) cutsCorner(g *grid.Grid, from, to grid.Coord) bool {
	if !from.IsDiagonalTo(to) {
		return false
	}
	return !r.passable(g, grid.C(to.X, from.Y)) || !r.passable(g, grid.C(from.X, to.Y))
}
