package viewer

import (
	"os"
	"strings"
	"testing"

	"github.com/Garsondee/tactics-core/internal/board"
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/Garsondee/tactics-core/internal/unit"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newViewer(t *testing.T) *Viewer {
	t.Helper()
	e, err := board.New(
		board.WithSize(6, 4),
		board.WithCover(grid.CoverHalf, grid.C(1, 2)),
		board.WithUnit(unit.Spec{Name: "alpha", Team: 1, Pos: grid.C(1, 1), MovePoints: 2}),
		board.WithUnit(unit.Spec{Name: "bravo", Team: 2, Pos: grid.C(1, 3)}),
	)
	if err != nil {
		t.Fatal(err)
	}
	return New(e, 10)
}

func TestTileMapping_NorthUp(t *testing.T) {
	v := newViewer(t)
	c, ok := v.tileAt(v.offX+1, v.offY+1)
	if !ok || c != grid.C(0, 3) {
		t.Fatalf("top-left pixel maps to %v %v, want (0,3)", c, ok)
	}
	for _, want := range []grid.Coord{grid.C(0, 0), grid.C(5, 3), grid.C(2, 1)} {
		x, y := v.tileOrigin(want)
		got, ok := v.tileAt(int(x)+5, int(y)+5)
		if !ok || got != want {
			t.Fatalf("round trip of %v gave %v", want, got)
		}
	}
	if _, ok := v.tileAt(v.offX+60, v.offY); ok {
		t.Fatal("pixel right of the board should not map to a tile")
	}
	if _, ok := v.tileAt(0, 0); ok {
		t.Fatal("margin should not map to a tile")
	}
}

func TestWindowSize(t *testing.T) {
	v := newViewer(t)
	w, h := v.WindowSize()
	if w != margin*3+60+hudWidth || h != 360 {
		t.Fatalf("window %dx%d", w, h)
	}
	if lw, lh := v.Layout(1, 1); lw != w || lh != h {
		t.Fatal("layout should be fixed")
	}
}

func TestClick_SelectThenMove(t *testing.T) {
	v := newViewer(t)
	v.click(grid.C(1, 1))
	if v.selected != 1 {
		t.Fatalf("selected %d", v.selected)
	}

	v.hover, v.hovering = grid.C(3, 1), true
	v.refresh()
	if !v.area.Has(grid.C(3, 1)) || v.area.Has(grid.C(4, 1)) {
		t.Fatal("area should reach two tiles and no further")
	}
	if !v.preview.Reached || v.preview.Cost != 20 {
		t.Fatalf("preview %+v", v.preview)
	}

	v.click(grid.C(3, 1))
	v.tick()
	v.tick()
	u, _ := v.Engine().Unit(1)
	if u.Pos != grid.C(3, 1) {
		t.Fatalf("unit at %v", u.Pos)
	}

	v.click(grid.C(5, 0))
	if v.status != "cannot move there" {
		t.Fatalf("status %q", v.status)
	}
}

func TestRefresh_HoverCover(t *testing.T) {
	v := newViewer(t)
	v.selected = 1
	v.hover, v.hovering = grid.C(1, 3), true
	v.refresh()
	if !v.hasHoverCover || !v.hoverCover.Covered || v.hoverCover.Protection != 60 {
		t.Fatalf("hover cover %+v", v.hoverCover)
	}
}

func TestFog(t *testing.T) {
	v := newViewer(t)
	v.showFog = true
	v.refresh()
	if !v.seen.Has(grid.C(1, 1)) {
		t.Fatal("team 1 should see its own tile")
	}
	if !v.shown[1] {
		t.Fatal("own unit should be shown")
	}

	v.cycleFogTeam()
	if v.fogTeam != 2 {
		t.Fatalf("fog team %d", v.fogTeam)
	}
	v.cycleFogTeam()
	if v.fogTeam != 1 {
		t.Fatalf("fog team should wrap, got %d", v.fogTeam)
	}
}

func TestReport(t *testing.T) {
	v := newViewer(t)
	v.selected = 1
	v.refresh()
	r := v.Report()
	if !strings.Contains(r, "selected alpha#1") {
		t.Fatalf("report missing selection:\n%s", r)
	}
	if !strings.Contains(r, string(board.GlyphArea)) {
		t.Fatalf("report missing area overlay:\n%s", r)
	}
	if !strings.Contains(r, "spawn") {
		t.Fatalf("report missing journal:\n%s", r)
	}
}
