package viewer

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/unit"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

var (
	backgroundColor = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	gridLineColor   = color.RGBA{R: 0, G: 0, B: 0, A: 60}
	areaColor       = color.RGBA{R: 60, G: 200, B: 90, A: 70}
	fogColor        = color.RGBA{R: 5, G: 5, B: 8, A: 190}
	hoverColor      = color.RGBA{R: 255, G: 255, B: 255, A: 90}
	panelColor      = color.RGBA{R: 15, G: 18, B: 15, A: 220}
)

// terrainColor is the fill for each terrain type.
func terrainColor(t grid.TerrainType) color.Color {
	switch t {
	case grid.Basic:
		return colornames.Darkolivegreen
	case grid.Hole:
		return colornames.Black
	case grid.BigObstacle:
		return colornames.Dimgray
	case grid.LowObstacle:
		return colornames.Saddlebrown
	case grid.Water:
		return colornames.Steelblue
	default:
		return colornames.Magenta
	}
}

// teamColor is the unit fill for a team.
func teamColor(team grid.TeamID) color.Color {
	switch team {
	case 1:
		return colornames.Royalblue
	case 2:
		return colornames.Crimson
	case 3:
		return colornames.Gold
	default:
		return colornames.Orchid
	}
}

func coverColor(ct grid.CoverType) color.Color {
	if ct == grid.CoverFull {
		return colornames.Lightgray
	}
	return colornames.Khaki
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	ts := float32(v.tileSize)

	v.engine.View(func(g *grid.Grid, r *unit.Roster) {
		for i := 0; i < g.Len(); i++ {
			c := g.CoordOf(i)
			t := g.TileAt(i)
			x, y := v.tileOrigin(c)
			vector.FillRect(screen, x, y, ts, ts, terrainColor(t.Terrain), false)
			vector.StrokeRect(screen, x, y, ts, ts, 1, gridLineColor, false)
			if v.showCover && t.HasCover() {
				inset := ts / 4
				vector.FillRect(screen, x+inset, y+inset, ts-2*inset, ts-2*inset, coverColor(t.Cover), false)
			}
			if v.area.Has(c) {
				vector.FillRect(screen, x, y, ts, ts, areaColor, false)
			}
		}
		v.drawPreview(screen, r)
		for _, u := range r.Living() {
			if v.shown != nil && !v.shown[u.ID] {
				continue
			}
			v.drawUnit(screen, u)
		}
		if v.showFog {
			for i := 0; i < g.Len(); i++ {
				c := g.CoordOf(i)
				if !v.seen.Has(c) {
					x, y := v.tileOrigin(c)
					vector.FillRect(screen, x, y, ts, ts, fogColor, false)
				}
			}
		}
	})

	if v.hovering {
		x, y := v.tileOrigin(v.hover)
		vector.StrokeRect(screen, x, y, ts, ts, 2, hoverColor, false)
	}
	v.drawHUD(screen)
}

// drawPreview draws the hovered path as a line through tile centres.
func (v *Viewer) drawPreview(screen *ebiten.Image, r *unit.Roster) {
	if len(v.preview.Tiles) == 0 {
		return
	}
	u, ok := r.Get(v.selected)
	if !ok {
		return
	}
	px, py := v.tileCenter(u.Pos)
	for _, c := range v.preview.Tiles {
		cx, cy := v.tileCenter(c)
		vector.StrokeLine(screen, px, py, cx, cy, 3, colornames.Yellow, true)
		vector.FillCircle(screen, cx, cy, 3, colornames.Yellow, true)
		px, py = cx, cy
	}
}

func (v *Viewer) drawUnit(screen *ebiten.Image, u *unit.Unit) {
	cx, cy := v.tileCenter(u.Pos)
	rad := float32(v.tileSize) * 0.35
	vector.FillCircle(screen, cx, cy, rad, teamColor(u.Team), true)
	if u.ID == v.selected {
		vector.StrokeCircle(screen, cx, cy, rad+3, 2, colornames.White, true)
	}
	ebitenutil.DebugPrintAt(screen, u.Name[:min(len(u.Name), 3)], int(cx-rad), int(cy-6))
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	cols, _ := v.engine.Bounds()
	x := v.offX*2 + cols*v.tileSize
	y := v.offY
	vector.FillRect(screen, float32(x), float32(y), hudWidth, float32(v.height-2*margin), panelColor, false)

	lines := []string{
		fmt.Sprintf("tick %d", v.engine.CurrentTick()),
		"selected: " + v.selectedLabel(),
	}
	if v.hovering {
		line := fmt.Sprintf("hover %v", v.hover)
		if v.preview.Reached {
			line += fmt.Sprintf(" cost %d", v.preview.Cost)
		}
		lines = append(lines, line)
	}
	if v.hasHoverCover {
		if v.hoverCover.Covered {
			lines = append(lines, fmt.Sprintf("cover vs hover: %s %s %d%%",
				v.hoverCover.Type, v.hoverCover.Facing, v.hoverCover.Protection))
		} else {
			lines = append(lines, "cover vs hover: exposed")
		}
	}
	if v.showFog {
		lines = append(lines, fmt.Sprintf("fog: team %d", v.fogTeam))
	}
	if v.autoplay {
		lines = append(lines, "autoplay")
	}
	lines = append(lines, "", v.status)
	if v.showHUD {
		lines = append(lines, "",
			"click   select / move",
			"space   tick",
			"P       autoplay",
			"N       new turn",
			"M F C   area fog cover",
			"tab     fog team",
			"R       copy report",
			"esc     deselect",
			"H       hide keys",
		)
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x+8, y+6+i*16)
	}
}
