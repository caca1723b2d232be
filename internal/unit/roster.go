package unit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/nav"
	"github.com/Garsondee/tactics-core/internal/sight"
)

// PassPolicy decides which occupied tiles a mover may walk through.
type PassPolicy uint8

const (
	// PassNobody: every other living unit blocks.
	PassNobody PassPolicy = iota
	// PassAllies: allies may be walked through, enemies block.
	PassAllies
	// PassEverybody: nobody blocks.
	PassEverybody
)

func (p PassPolicy) String() string {
	switch p {
	case PassNobody:
		return "nobody"
	case PassAllies:
		return "allies"
	case PassEverybody:
		return "everybody"
	default:
		return fmt.Sprintf("PassPolicy(%d)", p)
	}
}

// ParsePassPolicy accepts the names printed by String.
func ParsePassPolicy(s string) (PassPolicy, error) {
	switch strings.ToLower(s) {
	case "", "nobody":
		return PassNobody, nil
	case "allies":
		return PassAllies, nil
	case "everybody":
		return PassEverybody, nil
	}
	return 0, fmt.Errorf("unknown pass policy %q", s)
}

// Roster owns the units of a match, keyed by ID.
type Roster struct {
	units map[grid.UnitID]*Unit
	next  grid.UnitID
	// UnitsBlock makes occupied tiles opaque to every unit's sight.
	UnitsBlock bool
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{units: make(map[grid.UnitID]*Unit), next: 1}
}

// Add registers u. A zero ID is assigned the next free one.
func (r *Roster) Add(u *Unit) (*Unit, error) {
	if u.ID == grid.NoUnit {
		for r.units[r.next] != nil {
			r.next++
		}
		u.ID = r.next
		r.next++
	}
	if _, ok := r.units[u.ID]; ok {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateUnit, u.ID)
	}
	r.units[u.ID] = u
	return u, nil
}

// Get returns the unit with id.
func (r *Roster) Get(id grid.UnitID) (*Unit, bool) {
	u, ok := r.units[id]
	return u, ok
}

// Len returns the number of units, living or dead.
func (r *Roster) Len() int { return len(r.units) }

// All returns every unit ordered by ID.
func (r *Roster) All() []*Unit {
	out := make([]*Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b *Unit) int { return int(a.ID) - int(b.ID) })
	return out
}

// Living returns the living units ordered by ID.
func (r *Roster) Living() []*Unit {
	return slices.DeleteFunc(r.All(), func(u *Unit) bool { return !u.Alive })
}

// Allies returns the living units on u's team other than u.
func (r *Roster) Allies(u *Unit) []*Unit {
	return slices.DeleteFunc(r.Living(), func(o *Unit) bool { return o.ID == u.ID || o.Team != u.Team })
}

// Enemies returns the living units on other teams.
func (r *Roster) Enemies(u *Unit) []*Unit {
	return slices.DeleteFunc(r.Living(), func(o *Unit) bool { return o.Team == u.Team })
}

// Teams lists the distinct teams in ascending order.
func (r *Roster) Teams() []grid.TeamID {
	var out []grid.TeamID
	for _, u := range r.All() {
		if !slices.Contains(out, u.Team) {
			out = append(out, u.Team)
		}
	}
	slices.Sort(out)
	return out
}

// Blockers returns the tiles mover may not pass through under p.
func (r *Roster) Blockers(mover *Unit, p PassPolicy) []grid.Coord {
	if p == PassEverybody {
		return nil
	}
	var out []grid.Coord
	for _, o := range r.Living() {
		if o.ID == mover.ID {
			continue
		}
		if p == PassAllies && o.Team == mover.Team {
			continue
		}
		out = append(out, o.Pos)
	}
	return out
}

// RulesFor builds mover's traversal rules under p.
func (r *Roster) RulesFor(mover *Unit, p PassPolicy) nav.TraversalRules {
	return mover.Rules(r.Blockers(mover, p))
}

// Spotter implements sight.Roster.
func (r *Roster) Spotter(id grid.UnitID) (sight.Spotter, bool) {
	u, ok := r.units[id]
	if !ok {
		return sight.Spotter{}, false
	}
	return r.spotter(u), true
}

// Spotters implements sight.Roster.
func (r *Roster) Spotters(team grid.TeamID) []sight.Spotter {
	var out []sight.Spotter
	for _, u := range r.All() {
		if u.Team == team {
			out = append(out, r.spotter(u))
		}
	}
	return out
}

func (r *Roster) spotter(u *Unit) sight.Spotter {
	return sight.Spotter{ID: u.ID, Team: u.Team, Eye: u.Eye(r.UnitsBlock), Alive: u.Alive}
}
