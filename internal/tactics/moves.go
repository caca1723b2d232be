package tactics

import (
	"fmt"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/nav"
	"github.com/Garsondee/tactics-core/internal/unit"
	"github.com/sirupsen/logrus"
)

// MoveArea returns the tiles unit id can end a move on this turn: reachable
// within its remaining movement points and not occupied.
func (e *Engine) MoveArea(id grid.UnitID) (nav.Area, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, err := e.livingLocked(id)
	if err != nil {
		return nav.Area{}, err
	}
	return e.moveAreaLocked(u)
}

func (e *Engine) moveAreaLocked(u *unit.Unit) (nav.Area, error) {
	area, err := e.mr.ComputeArea(u.Pos, u.MovePoints, e.roster.RulesFor(u, e.cfg.pass))
	if err != nil {
		return nav.Area{}, err
	}
	return area.Filter(func(c grid.Coord) bool { return !e.g.At(c).Occupied() }), nil
}

// PathTo returns the route unit id would walk to dest, origin excluded.
// The route ignores the unit's movement points.
func (e *Engine) PathTo(id grid.UnitID, dest grid.Coord) (nav.Path, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, err := e.livingLocked(id)
	if err != nil {
		return nav.Path{}, err
	}
	return e.pf.FindPath(u.Pos, dest, e.roster.RulesFor(u, e.cfg.pass), grid.WithEnd)
}

// BeginMove validates dest against the unit's movement area and starts the
// unit walking. The walk itself advances one tile per Tick.
func (e *Engine) BeginMove(id grid.UnitID, dest grid.Coord) (nav.Path, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, err := e.livingLocked(id)
	if err != nil {
		return nav.Path{}, err
	}
	if u.Moving() {
		return nav.Path{}, fmt.Errorf("%w: %s", unit.ErrAlreadyMoving, u)
	}
	t, ok := e.g.Terrain(dest)
	if !ok {
		return nav.Path{}, fmt.Errorf("%w: destination %v off the board", nav.ErrInvalidInput, dest)
	}
	if !u.Walkable.Has(t) {
		return nav.Path{}, fmt.Errorf("%w: %s cannot enter %s at %v", ErrNotWalkable, u, t, dest)
	}
	area, err := e.moveAreaLocked(u)
	if err != nil {
		return nav.Path{}, err
	}
	if !area.Contains(dest) {
		e.cfg.log.WithFields(logrus.Fields{"unit": u.String(), "dest": dest, "points": u.MovePoints}).Debug("move rejected")
		return nav.Path{}, fmt.Errorf("%w: %s to %v", ErrUnreachable, u, dest)
	}
	path, err := e.pf.FindPath(u.Pos, dest, e.roster.RulesFor(u, e.cfg.pass), grid.WithEnd)
	if err != nil {
		return nav.Path{}, err
	}
	if !path.Reached {
		return nav.Path{}, fmt.Errorf("%w: no route for %s to %v", ErrUnreachable, u, dest)
	}
	if len(path.Tiles) > u.MovePoints {
		// The cheapest route takes more steps than the unit has points
		// for; walk the fewest-steps route from the area instead.
		route, _ := area.Route(dest)
		path = nav.Path{Tiles: route, Cost: routeCost(u.Pos, route), Reached: true}
	}
	ev, err := u.BeginMove(path.Tiles)
	if err != nil {
		return nav.Path{}, err
	}
	e.occupancyChanged(u.ID)
	e.record(u, CatMove, ev.Kind.String(), fmt.Sprintf("%v->%v", u.Pos, dest), float64(len(path.Tiles)))
	return path, nil
}

func routeCost(from grid.Coord, route []grid.Coord) int {
	cost := 0
	for _, c := range route {
		cost += nav.StepCost(from, c)
		from = c
	}
	return cost
}

// Tick advances every moving unit by one tile, in ID order. A unit whose
// next tile has been taken halts where it stands.
func (e *Engine) Tick() []unit.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tick++
	var events []unit.Event
	for _, u := range e.roster.Living() {
		next, ok := u.Mover.Peek()
		if !ok {
			continue
		}
		if occ := e.g.Occupant(next); occ != grid.NoUnit && occ != u.ID && e.blocksStep(u, occ, len(u.Mover.Remaining()) == 1) {
			ev := u.Halt()
			events = append(events, ev)
			e.record(u, CatMove, ev.Kind.String(), fmt.Sprintf("%v blocked by %d", next, occ), 0)
			continue
		}
		// A unit passing through a tile held by someone it may pass does
		// not take the tile over.
		e.releaseTile(u)
		evs := u.Step()
		if e.g.Occupant(u.Pos) == grid.NoUnit {
			e.g.SetOccupant(u.Pos, u.ID)
		}
		e.occupancyChanged(u.ID)
		for _, ev := range evs {
			e.record(u, CatMove, ev.Kind.String(), fmt.Sprintf("%v->%v", ev.From, ev.To), float64(u.MovePoints))
		}
		events = append(events, evs...)
	}
	return events
}

// blocksStep reports whether occupant occ stops u from entering its tile.
// The last tile of a route must be free; earlier tiles follow the pass
// policy.
func (e *Engine) blocksStep(u *unit.Unit, occ grid.UnitID, last bool) bool {
	if last {
		return true
	}
	o, ok := e.roster.Get(occ)
	if !ok {
		return true
	}
	switch e.cfg.pass {
	case unit.PassEverybody:
		return false
	case unit.PassAllies:
		return o.Team != u.Team
	default:
		return true
	}
}

// RunMoves ticks until no unit is moving or maxTicks is reached, and
// returns every event emitted.
func (e *Engine) RunMoves(maxTicks int) []unit.Event {
	var all []unit.Event
	for i := 0; i < maxTicks && e.anyMoving(); i++ {
		all = append(all, e.Tick()...)
	}
	return all
}

func (e *Engine) anyMoving() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, u := range e.roster.Living() {
		if u.Moving() {
			return true
		}
	}
	return false
}

// NewTurn restores every unit's movement points.
func (e *Engine) NewTurn() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, u := range e.roster.All() {
		u.NewTurn()
	}
}

// ApproachTile picks the tile unit id should move to in order to get as
// close as possible to target this turn: the reachable tile (or the unit's
// own tile) with the smallest Chebyshev distance to target, then the
// fewest steps, then the lowest coordinate in row-major order.
func (e *Engine) ApproachTile(id grid.UnitID, target grid.Coord) (grid.Coord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, err := e.livingLocked(id)
	if err != nil {
		return grid.Coord{}, err
	}
	if !e.g.InBounds(target) {
		return grid.Coord{}, fmt.Errorf("%w: target %v off the board", nav.ErrInvalidInput, target)
	}
	area, err := e.moveAreaLocked(u)
	if err != nil {
		return grid.Coord{}, err
	}
	best, bestDist, bestCost := u.Pos, u.Pos.Chebyshev(target), 0
	for _, c := range area.Coords() {
		d := c.Chebyshev(target)
		cost, _ := area.CostTo(c)
		switch {
		case d < bestDist,
			d == bestDist && cost < bestCost,
			d == bestDist && cost == bestCost && c.Less(best):
			best, bestDist, bestCost = c, d, cost
		}
	}
	return best, nil
}
