package unit

import (
	"errors"
	"slices"
	"testing"

	"github.com/Garsondee/tactics-core/internal/grid"
)

func TestNew_Defaults(t *testing.T) {
	u := New(Spec{Name: "scout", Team: 1, Pos: grid.C(2, 2)})
	if u.MovePoints != DefaultMovePoints || u.MaxMovePoints != DefaultMovePoints {
		t.Fatalf("expected default move points, got %d/%d", u.MovePoints, u.MaxMovePoints)
	}
	if u.VisionRange != DefaultVisionRange || !u.Alive {
		t.Fatal("expected a living unit with default vision")
	}
	if !u.Walkable.Has(grid.Basic) || u.Walkable.Has(grid.Water) {
		t.Fatalf("unexpected walkable set %s", u.Walkable)
	}
	water := grid.Terrains(grid.Basic, grid.Water)
	swimmer := New(Spec{Walkable: &water})
	if !swimmer.Walkable.Has(grid.Water) {
		t.Fatal("explicit walkable set ignored")
	}
}

func TestMover_Lifecycle(t *testing.T) {
	u := New(Spec{Pos: grid.C(0, 0), MovePoints: 3})
	u.ID = 5
	if u.Mover.State() != Idle {
		t.Fatal("new unit should be idle")
	}
	ev, err := u.BeginMove([]grid.Coord{grid.C(1, 0), grid.C(2, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != EventStarted || ev.Unit != 5 || !u.Moving() {
		t.Fatalf("unexpected start event %v", ev)
	}
	if _, err := u.BeginMove([]grid.Coord{grid.C(0, 1)}); !errors.Is(err, ErrAlreadyMoving) {
		t.Fatalf("expected ErrAlreadyMoving, got %v", err)
	}

	evs := u.Step()
	if len(evs) != 1 || evs[0].Kind != EventEntered || u.Pos != grid.C(1, 0) || u.MovePoints != 2 {
		t.Fatalf("first step wrong: %v pos %v mp %d", evs, u.Pos, u.MovePoints)
	}
	evs = u.Step()
	if len(evs) != 2 || evs[1].Kind != EventArrived || u.Pos != grid.C(2, 0) {
		t.Fatalf("second step should arrive: %v", evs)
	}
	if u.Mover.State() != Arrived || u.MovePoints != 1 {
		t.Fatalf("expected arrived with 1 point left, got %s %d", u.Mover.State(), u.MovePoints)
	}
	if evs := u.Step(); evs != nil {
		t.Fatal("stepping an arrived unit does nothing")
	}

	u.NewTurn()
	if u.Mover.State() != Idle || u.MovePoints != 3 {
		t.Fatal("new turn should settle and restore points")
	}
}

func TestBeginMove_Validation(t *testing.T) {
	u := New(Spec{Pos: grid.C(0, 0), MovePoints: 2})
	if _, err := u.BeginMove(nil); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
	if _, err := u.BeginMove([]grid.Coord{grid.C(1, 0), grid.C(2, 0), grid.C(3, 0)}); !errors.Is(err, ErrNoMovePoints) {
		t.Fatalf("expected ErrNoMovePoints, got %v", err)
	}
	if _, err := u.BeginMove([]grid.Coord{grid.C(1, 1)}); !errors.Is(err, ErrBrokenPath) {
		t.Fatalf("diagonal step without diagonals should fail, got %v", err)
	}
	u.Alive = false
	if _, err := u.BeginMove([]grid.Coord{grid.C(1, 0)}); !errors.Is(err, ErrDead) {
		t.Fatalf("expected ErrDead, got %v", err)
	}
}

func TestMover_Halt(t *testing.T) {
	u := New(Spec{Pos: grid.C(0, 0)})
	u.BeginMove([]grid.Coord{grid.C(1, 0), grid.C(2, 0)})
	if rem := u.Mover.Remaining(); len(rem) != 2 {
		t.Fatalf("expected 2 remaining, got %v", rem)
	}
	ev := u.Halt()
	if ev.Kind != EventHalted || u.Mover.State() != Arrived || u.Pos != grid.C(0, 0) {
		t.Fatalf("halt should stop in place, got %v", ev)
	}
}

func rosterFixture() (*Roster, *Unit, *Unit, *Unit) {
	r := NewRoster()
	a, _ := r.Add(New(Spec{Name: "a", Team: 1, Pos: grid.C(0, 0)}))
	b, _ := r.Add(New(Spec{Name: "b", Team: 1, Pos: grid.C(1, 0)}))
	e, _ := r.Add(New(Spec{Name: "e", Team: 2, Pos: grid.C(2, 0)}))
	return r, a, b, e
}

func TestRoster_IDsAndQueries(t *testing.T) {
	r, a, b, e := rosterFixture()
	if a.ID != 1 || b.ID != 2 || e.ID != 3 {
		t.Fatalf("ids not assigned in order: %d %d %d", a.ID, b.ID, e.ID)
	}
	if _, err := r.Add(&Unit{ID: 2}); !errors.Is(err, ErrDuplicateUnit) {
		t.Fatalf("expected ErrDuplicateUnit, got %v", err)
	}
	if allies := r.Allies(a); len(allies) != 1 || allies[0] != b {
		t.Fatalf("allies of a: %v", allies)
	}
	if enemies := r.Enemies(a); len(enemies) != 1 || enemies[0] != e {
		t.Fatalf("enemies of a: %v", enemies)
	}
	e.Alive = false
	if len(r.Enemies(a)) != 0 {
		t.Fatal("dead units are not enemies")
	}
	if !slices.Equal(r.Teams(), []grid.TeamID{1, 2}) {
		t.Fatalf("teams: %v", r.Teams())
	}
}

func TestRoster_PassPolicy(t *testing.T) {
	r, a, _, _ := rosterFixture()
	if got := r.Blockers(a, PassNobody); !slices.Equal(got, []grid.Coord{grid.C(1, 0), grid.C(2, 0)}) {
		t.Fatalf("nobody: %v", got)
	}
	if got := r.Blockers(a, PassAllies); !slices.Equal(got, []grid.Coord{grid.C(2, 0)}) {
		t.Fatalf("allies: %v", got)
	}
	if got := r.Blockers(a, PassEverybody); len(got) != 0 {
		t.Fatalf("everybody: %v", got)
	}
	rules := r.RulesFor(a, PassAllies)
	if !rules.Blocks(grid.C(2, 0)) || rules.Blocks(grid.C(1, 0)) {
		t.Fatal("rules blocker set wrong")
	}
}

func TestRoster_Spotters(t *testing.T) {
	r, a, _, _ := rosterFixture()
	r.UnitsBlock = true
	s, ok := r.Spotter(a.ID)
	if !ok || s.Eye.Pos != a.Pos || !s.Eye.UnitsBlock || s.Team != 1 {
		t.Fatalf("unexpected spotter %+v", s)
	}
	if n := len(r.Spotters(1)); n != 2 {
		t.Fatalf("expected 2 spotters on team 1, got %d", n)
	}
}
