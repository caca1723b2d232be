package cover

import (
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/sirupsen/logrus"
)

// State is the resting cover of a tile against every enemy that sees it.
type State struct {
	// Covered holds only when the tile is covered from every threat. With
	// no threats it holds when any acceptable cover is adjacent.
	Covered bool
	// Threats is the number of enemies considered.
	Threats int
	// Exposed lists the threats the tile is not covered from.
	Exposed []grid.Coord
	// Nearby is the most protective adjacent cover, whether or not it
	// currently faces a threat. It is not evaluated against any viewer, so
	// Nearby.Covered stays false. HasNearby is false when there is none.
	Nearby    Info
	HasNearby bool
}

// CoverState evaluates covered against each of threats, which should be the
// enemies that can see the tile. Cover is all or none: a single exposed
// threat leaves the tile uncovered.
func (e *Evaluator) CoverState(covered grid.Coord, threats []grid.Coord, accept grid.CoverSet) State {
	st := State{Threats: len(threats)}
	for _, c := range e.Candidates(covered, accept) {
		if !st.HasNearby || c.Protection < st.Nearby.Protection {
			st.Nearby, st.HasNearby = c, true
		}
	}
	if !st.HasNearby {
		st.Exposed = append(st.Exposed, threats...)
		return st
	}
	for _, t := range threats {
		info, _ := e.EvaluateCoverAt(covered, t, accept)
		if !info.Covered {
			st.Exposed = append(st.Exposed, t)
		}
	}
	st.Covered = len(st.Exposed) == 0
	e.log.WithFields(logrus.Fields{
		"covered": covered, "threats": st.Threats, "exposed": len(st.Exposed), "result": st.Covered,
	}).Debug("cover state")
	return st
}

// Against returns the cover a shooter at attacker faces. With no acceptable
// cover adjacent the result is uncovered at full protection percent.
func (e *Evaluator) Against(covered, attacker grid.Coord, accept grid.CoverSet) Info {
	info, ok := e.EvaluateCoverAt(covered, attacker, accept)
	if !ok {
		return Info{Protection: grid.CoverNone.ProtectionPercent()}
	}
	return info
}
