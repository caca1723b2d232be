package unit

import (
	"fmt"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/nav"
	"github.com/Garsondee/tactics-core/internal/sight"
)

// Unit is one piece on the board together with the movement, vision and
// cover capabilities the spatial queries need.
type Unit struct {
	ID   grid.UnitID
	Name string
	Team grid.TeamID
	Pos  grid.Coord

	MovePoints    int
	MaxMovePoints int
	VisionRange   int
	// Obstacles is the terrain that stops this unit's sight.
	Obstacles grid.TerrainSet
	// Walkable is the terrain this unit may enter.
	Walkable  grid.TerrainSet
	Diagonals bool
	// AcceptCover is the cover this unit knows how to use.
	AcceptCover grid.CoverSet
	Alive       bool

	Mover Mover
}

// Spec holds the authored attributes of a unit; New fills in defaults.
type Spec struct {
	Name        string
	Team        grid.TeamID
	Pos         grid.Coord
	MovePoints  int
	VisionRange int
	Obstacles   *grid.TerrainSet
	Walkable    *grid.TerrainSet
	Diagonals   bool
	AcceptCover *grid.CoverSet
}

// Defaults for units built without explicit attributes.
const (
	DefaultMovePoints  = 4
	DefaultVisionRange = 6
)

// New builds a living unit from s. The ID is assigned by the roster.
func New(s Spec) *Unit {
	u := &Unit{
		Name:        s.Name,
		Team:        s.Team,
		Pos:         s.Pos,
		MovePoints:  s.MovePoints,
		VisionRange: s.VisionRange,
		Obstacles:   grid.DefaultObstacles(),
		Walkable:    grid.DefaultWalkable(),
		Diagonals:   s.Diagonals,
		AcceptCover: grid.AllCovers(),
		Alive:       true,
	}
	if u.MovePoints <= 0 {
		u.MovePoints = DefaultMovePoints
	}
	if u.VisionRange <= 0 {
		u.VisionRange = DefaultVisionRange
	}
	if s.Obstacles != nil {
		u.Obstacles = *s.Obstacles
	}
	if s.Walkable != nil {
		u.Walkable = *s.Walkable
	}
	if s.AcceptCover != nil {
		u.AcceptCover = *s.AcceptCover
	}
	u.MaxMovePoints = u.MovePoints
	return u
}

func (u *Unit) String() string {
	if u.Name != "" {
		return fmt.Sprintf("%s#%d", u.Name, u.ID)
	}
	return fmt.Sprintf("unit#%d", u.ID)
}

// Eye returns the unit's vision for a sight query.
func (u *Unit) Eye(unitsBlock bool) sight.Eye {
	return sight.Eye{Pos: u.Pos, Range: u.VisionRange, Obstacles: u.Obstacles, UnitsBlock: unitsBlock}
}

// Rules returns the unit's traversal rules with the given blockers.
func (u *Unit) Rules(blockers []grid.Coord) nav.TraversalRules {
	return nav.NewRules(u.Walkable, blockers, u.Diagonals)
}

// Moving reports whether the unit is walking a path.
func (u *Unit) Moving() bool { return u.Mover.State() == Moving }

// BeginMove starts walking path (origin excluded). Each tile costs one
// movement point, so the path may not be longer than MovePoints.
func (u *Unit) BeginMove(path []grid.Coord) (Event, error) {
	if !u.Alive {
		return Event{}, ErrDead
	}
	if len(path) == 0 {
		return Event{}, ErrEmptyPath
	}
	if len(path) > u.MovePoints {
		return Event{}, fmt.Errorf("%w: path of %d tiles, %d points left", ErrNoMovePoints, len(path), u.MovePoints)
	}
	prev := u.Pos
	for _, c := range path {
		if !prev.IsOrthogonalTo(c) && !(u.Diagonals && prev.IsDiagonalTo(c)) {
			return Event{}, fmt.Errorf("%w: %v -> %v", ErrBrokenPath, prev, c)
		}
		prev = c
	}
	if err := u.Mover.Start(path); err != nil {
		return Event{}, err
	}
	return Event{Kind: EventStarted, Unit: u.ID, From: u.Pos, To: u.Pos}, nil
}

// Step enters the next tile of the path, deducting one movement point. It
// returns the Entered event and, on the last tile, an Arrived event.
func (u *Unit) Step() []Event {
	if u.Mover.State() != Moving {
		return nil
	}
	from := u.Pos
	to, arrived := u.Mover.Advance()
	u.Pos = to
	u.MovePoints--
	evs := []Event{{Kind: EventEntered, Unit: u.ID, From: from, To: to}}
	if arrived {
		evs = append(evs, Event{Kind: EventArrived, Unit: u.ID, From: from, To: to})
	}
	return evs
}

// Halt stops the unit on its current tile.
func (u *Unit) Halt() Event {
	u.Mover.Halt()
	return Event{Kind: EventHalted, Unit: u.ID, From: u.Pos, To: u.Pos}
}

// NewTurn restores movement points and settles an arrived mover.
func (u *Unit) NewTurn() {
	u.MovePoints = u.MaxMovePoints
	u.Mover.Settle()
}
