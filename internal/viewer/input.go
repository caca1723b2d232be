package viewer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/tactics"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

// handleInput processes keys (edge-triggered) and mouse clicks.
func (v *Viewer) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !v.prevKeys[k]
	}

	if pressed(ebiten.KeySpace) {
		v.tick()
	}
	if pressed(ebiten.KeyP) {
		v.autoplay = !v.autoplay
	}
	if pressed(ebiten.KeyN) {
		v.engine.NewTurn()
		v.status = "new turn"
	}
	if pressed(ebiten.KeyM) {
		v.showArea = !v.showArea
	}
	if pressed(ebiten.KeyF) {
		v.showFog = !v.showFog
	}
	if pressed(ebiten.KeyC) {
		v.showCover = !v.showCover
	}
	if pressed(ebiten.KeyH) {
		v.showHUD = !v.showHUD
	}
	if pressed(ebiten.KeyTab) {
		v.cycleFogTeam()
	}
	if pressed(ebiten.KeyEscape) {
		v.selected = grid.NoUnit
	}
	if pressed(ebiten.KeyR) {
		v.copyReport()
	}

	mx, my := ebiten.CursorPosition()
	v.hover, v.hovering = v.tileAt(mx, my)

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !v.prevMouseLeft && v.hovering {
		v.click(v.hover)
	}
	v.prevMouseLeft = left
	v.prevKeys = currentKeys
}

// click selects the unit on c, or orders the selected unit to move there.
func (v *Viewer) click(c grid.Coord) {
	for _, u := range v.engine.Units() {
		if u.Alive && u.Pos == c {
			v.selected = u.ID
			v.status = "selected " + u.String()
			return
		}
	}
	if v.selected == grid.NoUnit {
		return
	}
	p, err := v.engine.BeginMove(v.selected, c)
	switch {
	case err == nil:
		v.status = fmt.Sprintf("moving %d tiles, cost %d", p.Len(), p.Cost)
	case errors.Is(err, tactics.ErrUnreachable), errors.Is(err, tactics.ErrNotWalkable):
		v.status = "cannot move there"
	default:
		v.status = err.Error()
	}
}

// cycleFogTeam switches the fog overlay to the next team on the board.
func (v *Viewer) cycleFogTeam() {
	var teams []grid.TeamID
	seen := map[grid.TeamID]bool{}
	for _, u := range v.engine.Units() {
		if !seen[u.Team] {
			seen[u.Team] = true
			teams = append(teams, u.Team)
		}
	}
	if len(teams) == 0 {
		return
	}
	slices.Sort(teams)
	next := teams[0]
	for _, t := range teams {
		if t > v.fogTeam {
			next = t
			break
		}
	}
	v.fogTeam = next
	v.status = fmt.Sprintf("fog for team %d", next)
}

func (v *Viewer) copyReport() {
	if err := clipboard.WriteAll(v.Report()); err != nil {
		v.log.WithError(err).Warn("clipboard unavailable")
		v.status = "clipboard unavailable"
		return
	}
	v.status = "report copied"
}
