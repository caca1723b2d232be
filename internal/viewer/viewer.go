// Package viewer is an interactive ebiten front end over a tactics engine:
// select a unit, preview its movement area and path, walk it, and inspect
// fog of war and cover as the board changes.
package viewer

import (
	"fmt"

	"github.com/Garsondee/tactics-core/internal/cover"
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/Garsondee/tactics-core/internal/nav"
	"github.com/Garsondee/tactics-core/internal/tactics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTileSize = 40
	hudWidth        = 260
	margin          = 16
	// ticksEvery is the number of frames between engine ticks while
	// autoplay is on.
	ticksEvery = 8
)

// Viewer implements ebiten.Game.
type Viewer struct {
	engine   *tactics.Engine
	tileSize int
	offX     int
	offY     int
	width    int
	height   int

	selected grid.UnitID
	hover    grid.Coord
	hovering bool

	// Overlay toggles.
	showArea  bool
	showFog   bool
	showCover bool
	showHUD   bool
	fogTeam   grid.TeamID

	autoplay bool
	frames   int

	// Derived each Update from the engine and the toggles above.
	area    grid.CoordSet
	preview nav.Path
	seen    grid.CoordSet
	shown   map[grid.UnitID]bool
	// hoverCover is the selected unit's cover against a shooter on the
	// hovered tile.
	hoverCover    cover.Info
	hasHoverCover bool

	status        string
	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
	log           *logrus.Entry
}

// New creates a viewer over e. A non-positive tileSize uses the default.
func New(e *tactics.Engine, tileSize int) *Viewer {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	cols, rows := e.Bounds()
	v := &Viewer{
		engine:    e,
		tileSize:  tileSize,
		offX:      margin,
		offY:      margin,
		showArea:  true,
		showCover: true,
		showHUD:   true,
		fogTeam:   1,
		prevKeys:  map[ebiten.Key]bool{},
		log:       logger.Component("viewer"),
	}
	v.width = margin*3 + cols*tileSize + hudWidth
	v.height = max(margin*2+rows*tileSize, 360)
	v.status = "click a unit to select it"
	return v
}

// WindowSize is the size the window should open at.
func (v *Viewer) WindowSize() (int, int) { return v.width, v.height }

// Engine returns the engine being viewed.
func (v *Viewer) Engine() *tactics.Engine { return v.engine }

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	v.handleInput()
	if v.autoplay {
		v.frames++
		if v.frames%ticksEvery == 0 && v.anyMoving() {
			v.tick()
		}
	}
	v.refresh()
	return nil
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

func (v *Viewer) anyMoving() bool {
	for _, u := range v.engine.Units() {
		if u.Alive && u.Moving() {
			return true
		}
	}
	return false
}

func (v *Viewer) tick() {
	for _, ev := range v.engine.Tick() {
		v.log.WithField("tick", v.engine.CurrentTick()).Debug(ev.String())
		v.status = ev.String()
	}
}

// refresh recomputes the overlays for the current selection and hover.
func (v *Viewer) refresh() {
	v.area, v.preview = grid.CoordSet{}, nav.Path{}
	v.hasHoverCover = false
	v.seen, v.shown = grid.CoordSet{}, nil
	if v.showFog {
		v.seen = v.engine.TeamVisibleTiles(v.fogTeam)
		v.shown = map[grid.UnitID]bool{}
		for _, u := range v.engine.VisibleUnits(v.fogTeam) {
			v.shown[u.ID] = true
		}
	}

	u, ok := v.engine.Unit(v.selected)
	if !ok || !u.Alive {
		return
	}
	if v.showArea && !u.Moving() {
		if a, err := v.engine.MoveArea(u.ID); err == nil {
			v.area = a.Set()
		}
	}
	if !v.hovering || v.hover == u.Pos {
		return
	}
	if v.area.Has(v.hover) {
		if p, err := v.engine.PathTo(u.ID, v.hover); err == nil && p.Reached {
			v.preview = p
		}
	}
	if info, err := v.engine.CoverAgainst(u.ID, v.hover); err == nil {
		v.hoverCover, v.hasHoverCover = info, true
	}
}

// selectedLabel describes the selected unit for the HUD.
func (v *Viewer) selectedLabel() string {
	u, ok := v.engine.Unit(v.selected)
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%s team %d mp %d/%d %s", u.String(), u.Team, u.MovePoints, u.MaxMovePoints, u.Mover.State())
}
