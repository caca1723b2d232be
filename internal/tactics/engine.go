package tactics

import (
	"fmt"
	"sync"

	"github.com/Garsondee/tactics-core/internal/cover"
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/nav"
	"github.com/Garsondee/tactics-core/internal/sight"
	"github.com/Garsondee/tactics-core/internal/unit"
	"github.com/sirupsen/logrus"
)

// Engine is the single authority over one board. Queries take the read
// lock; anything that changes terrain, cover, occupancy or units takes the
// write lock.
type Engine struct {
	mu sync.RWMutex

	g      *grid.Grid
	roster *unit.Roster
	pf     *nav.Pathfinder
	mr     *nav.MovementRange
	vis    *sight.Visibility
	fog    *sight.Fog
	cov    *cover.Evaluator

	cfg  config
	tick int
}

// New builds an engine over g. The engine takes ownership of g.
func New(g *grid.Grid, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	roster := unit.NewRoster()
	roster.UnitsBlock = cfg.unitsBlock
	vis := sight.NewVisibility(g)
	return &Engine{
		g:      g,
		roster: roster,
		pf:     nav.NewPathfinder(g, cfg.navOpts...),
		mr:     nav.NewMovementRange(g, cfg.navOpts...),
		vis:    vis,
		fog:    sight.NewFog(vis, roster, cfg.vision),
		cov:    cover.NewEvaluator(g),
		cfg:    cfg,
	}
}

// Journal returns the engine's event journal.
func (e *Engine) Journal() *Journal { return e.cfg.journal }

// PassPolicy returns the configured pass policy.
func (e *Engine) PassPolicy() unit.PassPolicy { return e.cfg.pass }

// TeamPolicy returns the configured team policy.
func (e *Engine) TeamPolicy() sight.TeamPolicy { return e.cfg.team }

// CurrentTick returns the number of completed movement ticks.
func (e *Engine) CurrentTick() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tick
}

// View runs fn with read access to the board and roster. fn must not keep
// references past its return or mutate anything.
func (e *Engine) View(fn func(g *grid.Grid, r *unit.Roster)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.g, e.roster)
}

// Bounds returns the board size.
func (e *Engine) Bounds() (cols, rows int) {
	return e.g.Cols(), e.g.Rows()
}

// AddUnit places a new unit on the board and returns its ID.
func (e *Engine) AddUnit(s unit.Spec) (grid.UnitID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tile := e.g.At(s.Pos)
	if tile == nil {
		return grid.NoUnit, fmt.Errorf("%w: unit at %v off the board", nav.ErrInvalidInput, s.Pos)
	}
	if tile.Occupied() {
		return grid.NoUnit, fmt.Errorf("%w: %v held by unit %d", ErrOccupied, s.Pos, tile.Occupant)
	}
	u, err := e.roster.Add(unit.New(s))
	if err != nil {
		return grid.NoUnit, err
	}
	if !u.Walkable.Has(tile.Terrain) {
		e.cfg.log.WithFields(logrus.Fields{"unit": u.String(), "terrain": tile.Terrain}).Warn("unit placed on terrain it cannot walk")
	}
	tile.Occupant = u.ID
	e.occupancyChanged(u.ID)
	e.record(u, CatUnit, "spawn", s.Pos.String(), 0)
	e.cfg.log.WithFields(logrus.Fields{"unit": u.String(), "team": u.Team, "pos": u.Pos}).Info("unit added")
	return u.ID, nil
}

// Kill removes a unit from play. Its tile is freed and vision updated.
func (e *Engine) Kill(id grid.UnitID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, err := e.livingLocked(id)
	if err != nil {
		return err
	}
	u.Mover.Halt()
	u.Alive = false
	e.releaseTile(u)
	e.occupancyChanged(u.ID)
	e.record(u, CatUnit, "killed", u.Pos.String(), 0)
	return nil
}

// Unit returns a snapshot of unit id.
func (e *Engine) Unit(id grid.UnitID) (unit.Unit, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, ok := e.roster.Get(id)
	if !ok {
		return unit.Unit{}, false
	}
	return *u, true
}

// UnitByName returns a snapshot of the first unit named name.
func (e *Engine) UnitByName(name string) (unit.Unit, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, u := range e.roster.All() {
		if u.Name == name {
			return *u, true
		}
	}
	return unit.Unit{}, false
}

// Units returns snapshots of every unit ordered by ID.
func (e *Engine) Units() []unit.Unit {
	e.mu.RLock()
	defer e.mu.RUnlock()
	all := e.roster.All()
	out := make([]unit.Unit, len(all))
	for i, u := range all {
		out[i] = *u
	}
	return out
}

// SetTerrain changes the terrain at c. Every cached fog set is dropped.
func (e *Engine) SetTerrain(c grid.Coord, t grid.TerrainType) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.g.InBounds(c) {
		return fmt.Errorf("%w: %v off the board", nav.ErrInvalidInput, c)
	}
	e.g.SetTerrain(c, t)
	e.fog.MarkAllDirty()
	e.cfg.journal.Add(Entry{Tick: e.tick, Unit: "--", Team: "--", Category: CatBoard, Key: "terrain", Value: fmt.Sprintf("%v %s", c, t)})
	return nil
}

// SetCover places or removes a cover object at c.
func (e *Engine) SetCover(c grid.Coord, cv grid.CoverType) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.g.InBounds(c) {
		return fmt.Errorf("%w: %v off the board", nav.ErrInvalidInput, c)
	}
	e.g.SetCover(c, cv)
	e.cfg.journal.Add(Entry{Tick: e.tick, Unit: "--", Team: "--", Category: CatBoard, Key: "cover", Value: fmt.Sprintf("%v %s", c, cv)})
	return nil
}

func (e *Engine) unitLocked(id grid.UnitID) (*unit.Unit, error) {
	u, ok := e.roster.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, id)
	}
	return u, nil
}

func (e *Engine) livingLocked(id grid.UnitID) (*unit.Unit, error) {
	u, err := e.unitLocked(id)
	if err != nil {
		return nil, err
	}
	if !u.Alive {
		return nil, fmt.Errorf("%w: %s", unit.ErrDead, u)
	}
	return u, nil
}

// occupancyChanged invalidates fog after a unit appeared, moved or died.
// With units blocking sight every observer may be affected.
func (e *Engine) occupancyChanged(id grid.UnitID) {
	if e.cfg.unitsBlock {
		e.fog.MarkAllDirty()
		return
	}
	e.fog.MarkDirty(id)
}

// releaseTile clears u's claim on its tile. A living unit still standing
// there, such as one halted while passing through, takes the tile over.
func (e *Engine) releaseTile(u *unit.Unit) {
	if e.g.Occupant(u.Pos) != u.ID {
		return
	}
	e.g.ClearOccupant(u.Pos)
	for _, o := range e.roster.Living() {
		if o.ID != u.ID && o.Pos == u.Pos {
			e.g.SetOccupant(o.Pos, o.ID)
			return
		}
	}
}

func (e *Engine) record(u *unit.Unit, category, key, value string, num float64) {
	e.cfg.journal.Add(Entry{
		Tick:     e.tick,
		Unit:     u.String(),
		Team:     fmt.Sprint(u.Team),
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   num,
	})
}
