package tactics

import (
	"fmt"

	"github.com/Garsondee/tactics-core/internal/cover"
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/nav"
	"github.com/Garsondee/tactics-core/internal/unit"
)

// CanSee reports whether unit id has line of sight on target.
func (e *Engine) CanSee(id grid.UnitID, target grid.Coord) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, err := e.livingLocked(id)
	if err != nil {
		return false, err
	}
	if !e.g.InBounds(target) {
		return false, fmt.Errorf("%w: target %v off the board", nav.ErrInvalidInput, target)
	}
	ok := e.vis.HasSightOn(u.Eye(e.cfg.unitsBlock), target)
	e.cfg.journal.AddVerbose(Entry{Tick: e.tick, Unit: u.String(), Team: fmt.Sprint(u.Team), Category: CatVision, Key: "sight", Value: fmt.Sprintf("%v %v", target, ok)})
	return ok, nil
}

// VisibleTiles returns the fog-of-war set for unit id under the engine's
// vision mode.
func (e *Engine) VisibleTiles(id grid.UnitID) (grid.CoordSet, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if _, err := e.unitLocked(id); err != nil {
		return grid.CoordSet{}, err
	}
	return e.fog.VisibleFor(id), nil
}

// TeamVisibleTiles returns the union of what a team's living units see.
func (e *Engine) TeamVisibleTiles(team grid.TeamID) grid.CoordSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fog.VisibleForTeam(team)
}

// IsUnitVisible reports whether target is shown to team observer under the
// engine's team policy. Dead units are never shown.
func (e *Engine) IsUnitVisible(observer grid.TeamID, target grid.UnitID) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, err := e.unitLocked(target)
	if err != nil {
		return false, err
	}
	if !t.Alive {
		return false, nil
	}
	return e.cfg.team.Reveals(observer, t.Team, t.Pos, e.fog.VisibleForTeam(observer)), nil
}

// VisibleUnits returns the living units shown to team observer, ordered
// by ID.
func (e *Engine) VisibleUnits(observer grid.TeamID) []unit.Unit {
	e.mu.RLock()
	defer e.mu.RUnlock()
	seen := e.fog.VisibleForTeam(observer)
	var out []unit.Unit
	for _, u := range e.roster.Living() {
		if e.cfg.team.Reveals(observer, u.Team, u.Pos, seen) {
			out = append(out, *u)
		}
	}
	return out
}

// CoverAgainst returns the cover unit id has against a shooter at attacker.
func (e *Engine) CoverAgainst(id grid.UnitID, attacker grid.Coord) (cover.Info, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, err := e.livingLocked(id)
	if err != nil {
		return cover.Info{}, err
	}
	return e.cov.Against(u.Pos, attacker, u.AcceptCover), nil
}

// CoverState returns the resting cover of unit id against every living
// enemy that currently sees it.
func (e *Engine) CoverState(id grid.UnitID) (cover.State, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, err := e.livingLocked(id)
	if err != nil {
		return cover.State{}, err
	}
	var threats []grid.Coord
	for _, en := range e.roster.Enemies(u) {
		if e.vis.HasSightOn(en.Eye(e.cfg.unitsBlock), u.Pos) {
			threats = append(threats, en.Pos)
		}
	}
	st := e.cov.CoverState(u.Pos, threats, u.AcceptCover)
	e.cfg.journal.AddVerbose(Entry{
		Tick: e.tick, Unit: u.String(), Team: fmt.Sprint(u.Team), Category: CatCover, Key: "state",
		Value: fmt.Sprintf("covered=%v threats=%d exposed=%d", st.Covered, st.Threats, len(st.Exposed)), NumVal: float64(st.Threats),
	})
	return st, nil
}

// HitChance scales base (percent) for a shot from attacker at target. A
// target the attacker cannot see cannot be hit.
func (e *Engine) HitChance(attacker, target grid.UnitID, base int) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, err := e.livingLocked(attacker)
	if err != nil {
		return 0, err
	}
	t, err := e.livingLocked(target)
	if err != nil {
		return 0, err
	}
	if !e.vis.HasSightOn(a.Eye(e.cfg.unitsBlock), t.Pos) {
		return 0, nil
	}
	info := e.cov.Against(t.Pos, a.Pos, t.AcceptCover)
	return cover.ApplyToHit(base, info), nil
}
