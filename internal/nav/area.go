package nav

import (
	"fmt"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/heap"
)

// Area is the set of tiles reachable within a movement budget, with the
// number of steps needed to reach each. The origin is never a member.
type Area struct {
	Origin grid.Coord
	Budget int
	costs  map[grid.Coord]int
	// parents spans every tile the fill reached, including any later
	// dropped by Filter, so routes through them stay intact.
	parents map[grid.Coord]grid.Coord
}

// Contains reports whether c is reachable.
func (a Area) Contains(c grid.Coord) bool {
	_, ok := a.costs[c]
	return ok
}

// CostTo returns the step count to c.
func (a Area) CostTo(c grid.Coord) (int, bool) {
	v, ok := a.costs[c]
	return v, ok
}

// Len returns the number of reachable tiles.
func (a Area) Len() int { return len(a.costs) }

// Coords lists the reachable tiles in Coord.Less order.
func (a Area) Coords() []grid.Coord {
	out := make([]grid.Coord, 0, len(a.costs))
	for c := range a.costs {
		out = append(out, c)
	}
	grid.SortCoords(out)
	return out
}

// Set returns the reachable tiles as a CoordSet.
func (a Area) Set() grid.CoordSet {
	s := grid.NewCoordSet()
	for c := range a.costs {
		s.Add(c)
	}
	return s
}

// Filter returns a copy of a holding only the tiles keep accepts.
func (a Area) Filter(keep func(c grid.Coord) bool) Area {
	out := Area{Origin: a.Origin, Budget: a.Budget, costs: make(map[grid.Coord]int, len(a.costs)), parents: a.parents}
	for c, v := range a.costs {
		if keep(c) {
			out.costs[c] = v
		}
	}
	return out
}

// Route returns the step-minimal route from the origin to c, origin
// excluded. The bool is false when c is not in the area.
func (a Area) Route(c grid.Coord) ([]grid.Coord, bool) {
	if !a.Contains(c) {
		return nil, false
	}
	var out []grid.Coord
	for at := c; at != a.Origin; at = a.parents[at] {
		out = append(out, at)
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out, true
}

type frontierItem struct {
	idx  int
	cost int
	seq  int
}

func frontierBefore(a, b frontierItem) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.seq < b.seq
}

// MovementRange computes bounded-cost reachability over one board. Every
// step costs one movement point, diagonal or not.
type MovementRange struct {
	g    *grid.Grid
	pool *arenaPool
	cfg  config
}

// NewMovementRange builds a movement range calculator for g.
func NewMovementRange(g *grid.Grid, opts ...Option) *MovementRange {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &MovementRange{g: g, pool: newArenaPool(g.Len()), cfg: cfg}
}

// ComputeArea returns every tile reachable from origin in at most budget
// steps. Occupied tiles in the rule set's blockers are never entered.
func (mr *MovementRange) ComputeArea(origin grid.Coord, budget int, rules TraversalRules) (Area, error) {
	if !mr.g.InBounds(origin) {
		mr.cfg.log.WithField("origin", origin).Warn("movement range origin off the board")
		return Area{}, fmt.Errorf("%w: origin %v outside %dx%d board", ErrInvalidInput, origin, mr.g.Cols(), mr.g.Rows())
	}
	if budget < 0 {
		return Area{}, fmt.Errorf("%w: negative budget %d", ErrInvalidInput, budget)
	}
	area := Area{Origin: origin, Budget: budget, costs: make(map[grid.Coord]int), parents: make(map[grid.Coord]grid.Coord)}
	if budget == 0 {
		return area, nil
	}

	a := mr.pool.get()
	defer mr.pool.put(a)

	g := mr.g
	frontier := heap.New[frontierItem](frontierBefore)
	seq := 0
	oi := g.Index(origin)
	a.record(oi, 0, noParent)
	frontier.Push(frontierItem{idx: oi})

	var nbrs []grid.Coord
	for frontier.Size() > 0 {
		cur, _ := frontier.Pop()
		if best, _ := a.known(cur.idx); cur.cost > best {
			continue
		}
		if cur.cost >= budget {
			continue
		}
		at := g.CoordOf(cur.idx)
		nbrs = g.Neighbors(at, rules.Diagonals(), nbrs[:0])
		for _, n := range nbrs {
			if !rules.passable(g, n) || rules.cutsCorner(g, at, n) {
				continue
			}
			ni := g.Index(n)
			cost := cur.cost + 1
			if prev, ok := a.known(ni); ok && prev <= cost {
				continue
			}
			a.record(ni, cost, cur.idx)
			seq++
			frontier.Push(frontierItem{idx: ni, cost: cost, seq: seq})
		}
	}

	for _, i := range a.touched {
		if i != oi {
			c := g.CoordOf(i)
			area.costs[c] = a.cost[i]
			area.parents[c] = g.CoordOf(a.parent[i])
		}
	}
	mr.cfg.log.WithFields(logrus.Fields{"origin": origin, "budget": budget, "tiles": area.Len()}).Debug("movement area computed")
	return area, nil
}
