package cover

import (
	"testing"

	"github.com/Garsondee/tactics-core/internal/grid"
)

func TestEvaluateCoverAt_EnemyInsideCone(t *testing.T) {
	g := grid.New(5, 5)
	g.SetCover(grid.C(1, 2), grid.CoverHalf)
	e := NewEvaluator(g)

	info, ok := e.EvaluateCoverAt(grid.C(1, 1), grid.C(1, 5), grid.AllCovers())
	if !ok {
		t.Fatal("expected an adjacent cover")
	}
	if !info.Covered {
		t.Fatal("enemy straight north should be inside the cone")
	}
	if info.Anchor != grid.C(1, 2) || info.Facing != grid.North || info.Type != grid.CoverHalf {
		t.Fatalf("unexpected info %+v", info)
	}

	info, ok = e.EvaluateCoverAt(grid.C(1, 1), grid.C(5, 1), grid.AllCovers())
	if !ok || info.Covered {
		t.Fatalf("enemy due east is 90 degrees off, expected uncovered, got %+v", info)
	}
}

func TestEvaluateCoverAt_NoCandidates(t *testing.T) {
	g := grid.New(5, 5)
	g.SetCover(grid.C(2, 2), grid.CoverFull) // diagonal, does not count
	e := NewEvaluator(g)
	if _, ok := e.EvaluateCoverAt(grid.C(1, 1), grid.C(4, 4), grid.AllCovers()); ok {
		t.Fatal("diagonal cover objects do not protect")
	}
	g.SetCover(grid.C(1, 2), grid.CoverHalf)
	if _, ok := e.EvaluateCoverAt(grid.C(1, 1), grid.C(1, 4), grid.Covers(grid.CoverFull)); ok {
		t.Fatal("unaccepted cover type should be ignored")
	}
}

func TestEvaluateCoverAt_ProtectingBeatsStronger(t *testing.T) {
	g := grid.New(5, 5)
	g.SetCover(grid.C(2, 3), grid.CoverHalf) // north of (2,2)
	g.SetCover(grid.C(2, 1), grid.CoverFull) // south of (2,2)
	e := NewEvaluator(g)
	info, _ := e.EvaluateCoverAt(grid.C(2, 2), grid.C(2, 4), grid.AllCovers())
	if !info.Covered || info.Type != grid.CoverHalf {
		t.Fatalf("half cover facing the enemy should win over full cover behind, got %+v", info)
	}
}

func TestEvaluateCoverAt_LowerPercentWins(t *testing.T) {
	g := grid.New(5, 5)
	g.SetCover(grid.C(2, 3), grid.CoverHalf)
	g.SetCover(grid.C(3, 2), grid.CoverFull)
	e := NewEvaluator(g)
	// (4,4) is 45 degrees from both north and east.
	info, _ := e.EvaluateCoverAt(grid.C(2, 2), grid.C(4, 4), grid.AllCovers())
	if !info.Covered || info.Type != grid.CoverFull {
		t.Fatalf("full cover should be preferred, got %+v", info)
	}
}

func TestEvaluateCoverAt_TieFirstFound(t *testing.T) {
	g := grid.New(5, 5)
	g.SetCover(grid.C(2, 3), grid.CoverHalf)
	g.SetCover(grid.C(3, 2), grid.CoverHalf)
	e := NewEvaluator(g)
	info, _ := e.EvaluateCoverAt(grid.C(2, 2), grid.C(4, 4), grid.AllCovers())
	if info.Facing != grid.North {
		t.Fatalf("north candidate is found first, got %s", info.Facing)
	}
}

func TestCoverState_AllOrNone(t *testing.T) {
	g := grid.New(6, 6)
	g.SetCover(grid.C(2, 3), grid.CoverFull)
	e := NewEvaluator(g)
	at := grid.C(2, 2)

	st := e.CoverState(at, []grid.Coord{grid.C(2, 5)}, grid.AllCovers())
	if !st.Covered {
		t.Fatal("covered against the single northern threat")
	}
	if st.Nearby.Covered {
		t.Fatal("the verdict belongs on State, not on the nearby cover")
	}

	st = e.CoverState(at, []grid.Coord{grid.C(2, 5), grid.C(5, 2)}, grid.AllCovers())
	if st.Covered {
		t.Fatal("an exposed flank must leave the tile uncovered")
	}
	if len(st.Exposed) != 1 || st.Exposed[0] != grid.C(5, 2) {
		t.Fatalf("expected (5,2) exposed, got %v", st.Exposed)
	}
	if !st.HasNearby || st.Nearby.Type != grid.CoverFull {
		t.Fatal("nearby cover should still be surfaced")
	}
}

func TestCoverState_NoThreats(t *testing.T) {
	g := grid.New(4, 4)
	e := NewEvaluator(g)
	if st := e.CoverState(grid.C(1, 1), nil, grid.AllCovers()); st.Covered || st.HasNearby {
		t.Fatal("open ground is never covered")
	}
	g.SetCover(grid.C(0, 1), grid.CoverHalf)
	if st := e.CoverState(grid.C(1, 1), nil, grid.AllCovers()); !st.Covered {
		t.Fatal("resting next to cover with nobody watching counts as covered")
	}
}

func TestApplyToHit(t *testing.T) {
	if got := ApplyToHit(80, Info{Covered: true, Protection: 30}); got != 24 {
		t.Fatalf("expected 24, got %d", got)
	}
	if got := ApplyToHit(80, Info{Covered: false, Protection: 30}); got != 80 {
		t.Fatalf("uncovered chance should pass through, got %d", got)
	}
}

func TestAngleTo(t *testing.T) {
	o := grid.C(0, 0)
	if a := AngleTo(o, grid.C(0, 1), grid.C(1, 0)); a < 89.9 || a > 90.1 {
		t.Fatalf("expected 90, got %f", a)
	}
	if a := AngleTo(o, grid.C(0, 1), grid.C(0, -3)); a < 179.9 {
		t.Fatalf("expected 180, got %f", a)
	}
}
