package nav

import (
	"fmt"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/heap"
)

// openItem is one entry of the A* open set. Entries are never updated in
// place; a cheaper rediscovery pushes a new entry and the stale one is
// skipped when popped.
type openItem struct {
	idx int
	g   int
	f   int
	seq int
}

// openBefore orders by f ascending, ties by insertion sequence.
func openBefore(a, b openItem) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// Pathfinder runs weighted A* searches over one board.
type Pathfinder struct {
	g    *grid.Grid
	pool *arenaPool
	cfg  config
}

// NewPathfinder builds a pathfinder for g. Terrain may change between
// searches; board dimensions may not.
func NewPathfinder(g *grid.Grid, opts ...Option) *Pathfinder {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Pathfinder{g: g, pool: newArenaPool(g.Len()), cfg: cfg}
}

// FindPath returns the cheapest route from start to end under rules.
// An unreachable end yields a Path with Reached false and a nil error;
// off-board endpoints yield ErrInvalidInput.
func (pf *Pathfinder) FindPath(start, end grid.Coord, rules TraversalRules, incl grid.Inclusion) (Path, error) {
	if !pf.g.InBounds(start) || !pf.g.InBounds(end) {
		pf.cfg.log.WithFields(logrus.Fields{"start": start, "end": end}).Warn("path request off the board")
		return Path{}, fmt.Errorf("%w: path %v -> %v outside %dx%d board", ErrInvalidInput, start, end, pf.g.Cols(), pf.g.Rows())
	}
	if start == end {
		p := Path{Reached: true}
		if incl.IncludesStart() || incl.IncludesEnd() {
			p.Tiles = []grid.Coord{start}
		}
		return p, nil
	}

	a := pf.pool.get()
	defer pf.pool.put(a)

	full, cost, ok := pf.search(a, start, end, rules)
	if !ok {
		pf.cfg.log.WithFields(logrus.Fields{"start": start, "end": end}).Debug("no path")
		return Path{}, nil
	}
	pf.cfg.log.WithFields(logrus.Fields{"start": start, "end": end, "cost": cost, "steps": len(full) - 1}).Debug("path found")
	return Path{Tiles: trim(full, incl), Cost: cost, Reached: true}, nil
}

func (pf *Pathfinder) search(a *arena, start, end grid.Coord, rules TraversalRules) ([]grid.Coord, int, bool) {
	g := pf.g
	endIdx := g.Index(end)
	diag := rules.Diagonals()

	open := heap.New[openItem](openBefore)
	seq := 0
	push := func(idx, cost int, at grid.Coord) {
		open.Push(openItem{idx: idx, g: cost, f: cost + pf.cfg.heuristic(at, end, diag), seq: seq})
		seq++
	}

	startIdx := g.Index(start)
	a.record(startIdx, 0, noParent)
	push(startIdx, 0, start)

	var nbrs []grid.Coord
	for open.Size() > 0 {
		cur, _ := open.Pop()
		if best, _ := a.known(cur.idx); cur.g > best {
			continue
		}
		at := g.CoordOf(cur.idx)
		nbrs = g.Neighbors(at, diag, nbrs[:0])
		for _, n := range nbrs {
			if !pf.admit(at, n, end, rules) {
				continue
			}
			ni := g.Index(n)
			cost := cur.g + StepCost(at, n)
			if prev, ok := a.known(ni); ok && prev <= cost {
				continue
			}
			a.record(ni, cost, cur.idx)
			if ni == endIdx {
				return pf.reconstruct(a, endIdx), cost, true
			}
			push(ni, cost, n)
		}
	}
	return nil, 0, false
}

// admit applies the admission rules in order: terrain, blockers (the end
// tile is exempt), then corner cutting.
func (pf *Pathfinder) admit(from, to, end grid.Coord, rules TraversalRules) bool {
	t, _ := pf.g.Terrain(to)
	if !rules.Allows(t) {
		return false
	}
	if rules.Blocks(to) && to != end {
		return false
	}
	return !rules.cutsCorner(pf.g, from, to)
}

func (pf *Pathfinder) reconstruct(a *arena, endIdx int) []grid.Coord {
	var out []grid.Coord
	for i := endIdx; i != noParent; i = a.parent[i] {
		out = append(out, pf.g.CoordOf(i))
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}
