package board

import (
	"fmt"
	"strings"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/tactics"
	"github.com/Garsondee/tactics-core/internal/unit"
)

// Overlay glyphs.
const (
	GlyphPath   = '*'
	GlyphArea   = ':'
	GlyphHidden = '?'
	GlyphHalf   = 'h'
	GlyphFull   = 'H'
)

// Overlay decorates a rendered board. Zero fields draw nothing.
type Overlay struct {
	Area grid.CoordSet
	Path []grid.Coord
	// Visible, when set, hides every tile outside it.
	Visible *grid.CoordSet
	// Marks draws arbitrary glyphs on top of everything but units.
	Marks map[grid.Coord]byte
}

// UnitGlyph is the letter a unit is drawn with: A for team 1, B for team 2
// and so on.
func UnitGlyph(team grid.TeamID) byte {
	return 'A' + byte((int(team)+25)%26)
}

// Render draws g as text, north at the top, with Y labels on the left and
// X digits underneath.
func Render(g *grid.Grid, units []unit.Unit, ov Overlay) string {
	cells := make([]byte, g.Len())
	for i := range cells {
		t := g.TileAt(i)
		cells[i] = t.Terrain.Glyph()
		if t.Terrain == grid.Basic {
			switch t.Cover {
			case grid.CoverHalf:
				cells[i] = GlyphHalf
			case grid.CoverFull:
				cells[i] = GlyphFull
			}
		}
	}
	ov.Area.Each(func(c grid.Coord) {
		if i := g.Index(c); i >= 0 {
			cells[i] = GlyphArea
		}
	})
	for _, c := range ov.Path {
		if i := g.Index(c); i >= 0 {
			cells[i] = GlyphPath
		}
	}
	for c, b := range ov.Marks {
		if i := g.Index(c); i >= 0 {
			cells[i] = b
		}
	}
	if ov.Visible != nil {
		for i := range cells {
			if !ov.Visible.Has(g.CoordOf(i)) {
				cells[i] = GlyphHidden
			}
		}
	}
	for _, u := range units {
		if !u.Alive {
			continue
		}
		if i := g.Index(u.Pos); i >= 0 && (ov.Visible == nil || ov.Visible.Has(u.Pos)) {
			cells[i] = UnitGlyph(u.Team)
		}
	}

	var sb strings.Builder
	for y := g.Rows() - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%3d ", y)
		sb.Write(cells[y*g.Cols() : (y+1)*g.Cols()])
		sb.WriteByte('\n')
	}
	sb.WriteString("    ")
	for x := 0; x < g.Cols(); x++ {
		sb.WriteByte(byte('0' + x%10))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// RenderEngine draws the engine's current board.
func RenderEngine(e *tactics.Engine, ov Overlay) string {
	var out string
	e.View(func(g *grid.Grid, r *unit.Roster) {
		all := r.All()
		units := make([]unit.Unit, len(all))
		for i, u := range all {
			units[i] = *u
		}
		out = Render(g, units, ov)
	})
	return out
}

// Legend describes the glyphs Render uses.
func Legend() string {
	var sb strings.Builder
	for _, t := range grid.AllTerrain() {
		fmt.Fprintf(&sb, "%c %s\n", t.Glyph(), t)
	}
	fmt.Fprintf(&sb, "%c half cover\n%c full cover\n", GlyphHalf, GlyphFull)
	fmt.Fprintf(&sb, "%c movement area\n%c path\n%c hidden\n", GlyphArea, GlyphPath, GlyphHidden)
	sb.WriteString("A-Z units by team\n")
	return sb.String()
}
