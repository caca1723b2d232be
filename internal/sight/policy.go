package sight

import (
	"fmt"
	"strings"

	"github.com/Garsondee/tactics-core/internal/grid"
)

// TeamPolicy decides whether a unit is shown to an observing team.
type TeamPolicy uint8

const (
	// Everybody shows every unit to every team.
	Everybody TeamPolicy = iota
	// AlliesOnly shows a team its own units and nothing else.
	AlliesOnly
	// InView shows a team its own units plus enemies standing on a tile the
	// team currently sees.
	InView
)

func (p TeamPolicy) String() string {
	switch p {
	case Everybody:
		return "everybody"
	case AlliesOnly:
		return "allies"
	case InView:
		return "in-view"
	default:
		return fmt.Sprintf("TeamPolicy(%d)", p)
	}
}

// ParseTeamPolicy accepts the names printed by String.
func ParseTeamPolicy(s string) (TeamPolicy, error) {
	switch strings.ToLower(s) {
	case "everybody":
		return Everybody, nil
	case "allies", "allies-only":
		return AlliesOnly, nil
	case "", "in-view", "inview":
		return InView, nil
	}
	return 0, fmt.Errorf("unknown team policy %q", s)
}

// Reveals reports whether a unit of team target standing on pos is shown to
// team observer, given the set of tiles the observer currently sees.
func (p TeamPolicy) Reveals(observer, target grid.TeamID, pos grid.Coord, seen grid.CoordSet) bool {
	switch p {
	case Everybody:
		return true
	case AlliesOnly:
		return observer == target
	default:
		return observer == target || seen.Has(pos)
	}
}
