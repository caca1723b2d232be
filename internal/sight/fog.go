package sight

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/sirupsen/logrus"
)

// VisionMode selects whose sight a unit's fog is built from.
type VisionMode uint8

const (
	// SingleVision: each unit sees only what it sees itself.
	SingleVision VisionMode = iota
	// GroupVision: each unit sees the union of what its living allies see.
	GroupVision
)

func (m VisionMode) String() string {
	switch m {
	case SingleVision:
		return "single"
	case GroupVision:
		return "group"
	default:
		return fmt.Sprintf("VisionMode(%d)", m)
	}
}

// ParseVisionMode accepts "single" or "group".
func ParseVisionMode(s string) (VisionMode, error) {
	switch strings.ToLower(s) {
	case "", "single":
		return SingleVision, nil
	case "group":
		return GroupVision, nil
	}
	return 0, fmt.Errorf("unknown vision mode %q", s)
}

// Spotter is the part of a unit fog needs.
type Spotter struct {
	ID    grid.UnitID
	Team  grid.TeamID
	Eye   Eye
	Alive bool
}

// Roster resolves spotters for the fog.
type Roster interface {
	Spotter(id grid.UnitID) (Spotter, bool)
	Spotters(team grid.TeamID) []Spotter
}

type fogEntry struct {
	tiles grid.CoordSet
	dirty bool
}

// Fog caches visible-tile sets per unit and per team. Entries are marked
// dirty by the engine whenever the board changes under them and are
// recomputed in full on the next read.
type Fog struct {
	vis    *Visibility
	roster Roster
	mode   VisionMode
	log    *logrus.Entry

	mu         sync.Mutex
	units      map[grid.UnitID]*fogEntry
	teams      map[grid.TeamID]*fogEntry
	recomputes int
}

// NewFog builds an empty fog over vis.
func NewFog(vis *Visibility, roster Roster, mode VisionMode) *Fog {
	return &Fog{
		vis:    vis,
		roster: roster,
		mode:   mode,
		log:    vis.log.WithField("mode", mode.String()),
		units:  make(map[grid.UnitID]*fogEntry),
		teams:  make(map[grid.TeamID]*fogEntry),
	}
}

// Mode returns the vision mode.
func (f *Fog) Mode() VisionMode { return f.mode }

// MarkDirty invalidates the cached sets of unit id and of its team.
func (f *Fog) MarkDirty(id grid.UnitID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.units[id]; ok {
		e.dirty = true
	}
	if s, ok := f.roster.Spotter(id); ok {
		if e, ok := f.teams[s.Team]; ok {
			e.dirty = true
		}
	}
}

// MarkAllDirty invalidates every cached set.
func (f *Fog) MarkAllDirty() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.units {
		e.dirty = true
	}
	for _, e := range f.teams {
		e.dirty = true
	}
}

// VisibleFor returns the tiles unit id currently sees under the fog's
// vision mode. Dead or unknown units see nothing in SingleVision.
func (f *Fog) VisibleFor(id grid.UnitID) grid.CoordSet {
	s, ok := f.roster.Spotter(id)
	if !ok {
		return grid.NewCoordSet()
	}
	if f.mode == GroupVision {
		return f.VisibleForTeam(s.Team)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unitSetLocked(s).Clone()
}

// VisibleForTeam returns the union of what the team's living units see.
func (f *Fog) VisibleForTeam(team grid.TeamID) grid.CoordSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.teams[team]
	if ok && !e.dirty {
		return e.tiles.Clone()
	}
	union := grid.NewCoordSet()
	members := 0
	for _, s := range f.roster.Spotters(team) {
		if !s.Alive {
			continue
		}
		members++
		union.Union(f.unitSetLocked(s))
	}
	f.teams[team] = &fogEntry{tiles: union}
	f.log.WithFields(logrus.Fields{"team": team, "spotters": members, "tiles": union.Len()}).Debug("team fog recomputed")
	return union.Clone()
}

// Sees reports whether unit id currently sees c.
func (f *Fog) Sees(id grid.UnitID, c grid.Coord) bool {
	return f.VisibleFor(id).Has(c)
}

// Recomputes returns how many per-unit sets have been rebuilt.
func (f *Fog) Recomputes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recomputes
}

func (f *Fog) unitSetLocked(s Spotter) grid.CoordSet {
	if !s.Alive {
		return grid.NewCoordSet()
	}
	e, ok := f.units[s.ID]
	if ok && !e.dirty {
		return e.tiles
	}
	tiles := f.vis.VisibleTiles(s.Eye)
	f.units[s.ID] = &fogEntry{tiles: tiles}
	f.recomputes++
	f.log.WithFields(logrus.Fields{"unit": s.ID, "pos": s.Eye.Pos, "tiles": tiles.Len()}).Debug("unit fog recomputed")
	return tiles
}
