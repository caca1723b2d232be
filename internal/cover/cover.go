package cover

import (
	"math"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/sirupsen/logrus"
)

// Info describes the cover a tile gets from one adjacent cover object.
type Info struct {
	// Covered is true when the cover protects against the viewer it was
	// evaluated for.
	Covered bool
	Type    grid.CoverType
	// Facing is the side of the covered tile the cover object stands on.
	Facing grid.Direction
	// Anchor is the tile holding the cover object.
	Anchor grid.Coord
	// Protection is the percent of hit chance that still passes.
	Protection int
}

// Evaluator answers cover questions against one board.
type Evaluator struct {
	g   *grid.Grid
	log *logrus.Entry
}

// NewEvaluator returns an Evaluator reading cover objects from g.
func NewEvaluator(g *grid.Grid) *Evaluator {
	return &Evaluator{g: g, log: logger.Component("cover")}
}

// Candidates returns the cover objects on the orthogonal neighbours of
// covered whose type is in accept, in North, East, South, West order.
func (e *Evaluator) Candidates(covered grid.Coord, accept grid.CoverSet) []Info {
	var out []Info
	for _, d := range grid.Orthogonals() {
		anchor := covered.Add(d.Offset())
		t := e.g.At(anchor)
		if t == nil || !t.HasCover() || !accept.Has(t.Cover) {
			continue
		}
		out = append(out, Info{
			Type:       t.Cover,
			Facing:     d,
			Anchor:     anchor,
			Protection: t.Cover.ProtectionPercent(),
		})
	}
	return out
}

// EvaluateCoverAt picks the best adjacent cover for a unit on covered
// against viewer. A cover that protects beats one that does not; among
// equals the lower protection percent wins, then the first found. The bool
// is false when no acceptable cover stands next to covered.
func (e *Evaluator) EvaluateCoverAt(covered, viewer grid.Coord, accept grid.CoverSet) (Info, bool) {
	var (
		best  Info
		found bool
	)
	for _, c := range e.Candidates(covered, accept) {
		c.Covered = Protects(covered, c.Anchor, c.Type, viewer)
		if !found || better(c, best) {
			best, found = c, true
		}
	}
	if found {
		e.log.WithFields(logrus.Fields{
			"covered": covered, "viewer": viewer, "anchor": best.Anchor, "protects": best.Covered,
		}).Debug("cover evaluated")
	}
	return best, found
}

func better(a, b Info) bool {
	if a.Covered != b.Covered {
		return a.Covered
	}
	return a.Protection < b.Protection
}

// Protects reports whether a cover of type ct on anchor shields covered
// from viewer: the angle between covered→anchor and covered→viewer must be
// within half the cover's covering angle. A viewer on the covered tile is
// never shielded against.
func Protects(covered, anchor grid.Coord, ct grid.CoverType, viewer grid.Coord) bool {
	if viewer == covered || ct == grid.CoverNone {
		return false
	}
	return AngleTo(covered, anchor, viewer) <= ct.CoveringAngle()/2+1e-9
}

// AngleTo returns the angle in degrees, in [0,180], between the directions
// from origin to a and from origin to b.
func AngleTo(origin, a, b grid.Coord) float64 {
	fa, fb := a.Sub(origin), b.Sub(origin)
	ha := math.Atan2(float64(fa.Y), float64(fa.X))
	hb := math.Atan2(float64(fb.Y), float64(fb.X))
	return math.Abs(normalizeAngle(hb-ha)) * 180 / math.Pi
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// ApplyToHit scales a hit chance (percent) by the cover in info.
func ApplyToHit(chance int, info Info) int {
	if !info.Covered {
		return chance
	}
	return chance * info.Protection / 100
}

// ProtectedTiles lists the on-board tiles a cover object on anchor shields:
// its orthogonal neighbours.
func (e *Evaluator) ProtectedTiles(anchor grid.Coord) []grid.Coord {
	var out []grid.Coord
	for _, d := range grid.Orthogonals() {
		c := anchor.Add(d.Offset())
		if e.g.InBounds(c) {
			out = append(out, c)
		}
	}
	return out
}
