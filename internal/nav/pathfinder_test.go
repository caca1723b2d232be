package nav

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/Garsondee/tactics-core/internal/grid"
)

func assertArenasNeutral(t *testing.T, p *arenaPool) {
	t.Helper()
	for _, a := range p.idle() {
		if len(a.touched) != 0 {
			t.Fatalf("arena returned with %d touched slots", len(a.touched))
		}
		for i := range a.cost {
			if a.cost[i] != noCost || a.parent[i] != noParent {
				t.Fatalf("arena slot %d not neutral: cost=%d parent=%d", i, a.cost[i], a.parent[i])
			}
		}
	}
}

// assertValidPath checks adjacency, admission and the cost sum of a full
// start→end route.
func assertValidPath(t *testing.T, g *grid.Grid, p Path, rules TraversalRules) {
	t.Helper()
	if !p.Reached || len(p.Tiles) == 0 {
		t.Fatalf("expected a route, got %v", p)
	}
	sum := 0
	for i := 1; i < len(p.Tiles); i++ {
		from, to := p.Tiles[i-1], p.Tiles[i]
		if !from.IsOrthogonalTo(to) && !(rules.Diagonals() && from.IsDiagonalTo(to)) {
			t.Fatalf("step %v->%v is not a legal move", from, to)
		}
		terr, _ := g.Terrain(to)
		if !rules.Allows(terr) {
			t.Fatalf("step onto %v enters forbidden terrain %s", to, terr)
		}
		if rules.Blocks(to) && i != len(p.Tiles)-1 {
			t.Fatalf("route passes through blocker %v", to)
		}
		if rules.cutsCorner(g, from, to) {
			t.Fatalf("step %v->%v cuts a corner", from, to)
		}
		sum += StepCost(from, to)
	}
	if sum != p.Cost {
		t.Fatalf("route cost %d does not match step sum %d", p.Cost, sum)
	}
}

func TestFindPath_StraightLine(t *testing.T) {
	g := grid.New(5, 5)
	pf := NewPathfinder(g)
	rules := Walkable(false)
	p, err := pf.FindPath(grid.C(0, 0), grid.C(4, 0), rules, grid.WithStartAndEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Tiles) != 5 {
		t.Fatalf("expected 4 steps (5 tiles), got %v", p)
	}
	if p.Cost != 40 {
		t.Fatalf("expected cost 40, got %d", p.Cost)
	}
	for i, c := range p.Tiles {
		if c != grid.C(i, 0) {
			t.Fatalf("expected straight route along row 0, got %v", p)
		}
	}
	assertValidPath(t, g, p, rules)
	assertArenasNeutral(t, pf.pool)
}

func TestFindPath_DetoursAroundHole(t *testing.T) {
	g := grid.New(5, 5)
	g.SetTerrain(grid.C(2, 0), grid.Hole)
	pf := NewPathfinder(g)
	rules := Walkable(false)
	p, err := pf.FindPath(grid.C(0, 0), grid.C(4, 0), rules, grid.WithStartAndEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Tiles)-1 != 6 || p.Cost != 60 {
		t.Fatalf("expected 6 steps costing 60, got %d steps cost %d: %v", len(p.Tiles)-1, p.Cost, p)
	}
	if slices.Contains(p.Tiles, grid.C(2, 0)) {
		t.Fatal("route crosses the hole")
	}
	assertValidPath(t, g, p, rules)
	assertArenasNeutral(t, pf.pool)
}

func TestFindPath_NoRouteOnSingleRow(t *testing.T) {
	g := grid.New(5, 1)
	g.SetTerrain(grid.C(2, 0), grid.Hole)
	pf := NewPathfinder(g)
	p, err := pf.FindPath(grid.C(0, 0), grid.C(4, 0), Walkable(false), grid.WithStartAndEnd)
	if err != nil {
		t.Fatalf("no route is not an error: %v", err)
	}
	if p.Reached || !p.Empty() {
		t.Fatalf("expected empty result, got %v", p)
	}
	assertArenasNeutral(t, pf.pool)
}

func TestFindPath_OffBoard(t *testing.T) {
	g := grid.New(5, 5)
	pf := NewPathfinder(g)
	_, err := pf.FindPath(grid.C(0, 0), grid.C(9, 9), Walkable(false), grid.WithStartAndEnd)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	_, err = pf.FindPath(grid.C(-1, 0), grid.C(1, 1), Walkable(false), grid.WithStartAndEnd)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	assertArenasNeutral(t, pf.pool)
}

func TestFindPath_StartEqualsEnd(t *testing.T) {
	g := grid.New(3, 3)
	pf := NewPathfinder(g)
	c := grid.C(1, 1)
	for _, incl := range []grid.Inclusion{grid.WithStartAndEnd, grid.WithStart, grid.WithEnd} {
		p, err := pf.FindPath(c, c, Walkable(false), incl)
		if err != nil || !p.Reached || len(p.Tiles) != 1 || p.Tiles[0] != c {
			t.Fatalf("%s: expected [%v], got %v (err %v)", incl, c, p, err)
		}
	}
	p, _ := pf.FindPath(c, c, Walkable(false), grid.WithoutStartAndEnd)
	if !p.Reached || !p.Empty() {
		t.Fatalf("expected reached empty path, got %+v", p)
	}
}

func TestFindPath_InclusionTrimsEndpoints(t *testing.T) {
	g := grid.New(5, 1)
	pf := NewPathfinder(g)
	from, to := grid.C(0, 0), grid.C(3, 0)
	cases := map[grid.Inclusion][]grid.Coord{
		grid.WithStartAndEnd:    {grid.C(0, 0), grid.C(1, 0), grid.C(2, 0), grid.C(3, 0)},
		grid.WithStart:          {grid.C(0, 0), grid.C(1, 0), grid.C(2, 0)},
		grid.WithEnd:            {grid.C(1, 0), grid.C(2, 0), grid.C(3, 0)},
		grid.WithoutStartAndEnd: {grid.C(1, 0), grid.C(2, 0)},
	}
	for incl, want := range cases {
		p, err := pf.FindPath(from, to, Walkable(false), incl)
		if err != nil {
			t.Fatalf("%s: %v", incl, err)
		}
		if !slices.Equal(p.Tiles, want) {
			t.Fatalf("%s: expected %v got %v", incl, want, p.Tiles)
		}
		if p.Cost != 30 {
			t.Fatalf("%s: cost should not depend on inclusion, got %d", incl, p.Cost)
		}
	}
}

func TestFindPath_Diagonal(t *testing.T) {
	g := grid.New(5, 5)
	pf := NewPathfinder(g)
	rules := Walkable(true)
	p, err := pf.FindPath(grid.C(0, 0), grid.C(3, 3), rules, grid.WithStartAndEnd)
	if err != nil {
		t.Fatal(err)
	}
	if p.Cost != 42 || len(p.Tiles) != 4 {
		t.Fatalf("expected three diagonal steps costing 42, got cost %d: %v", p.Cost, p)
	}
	assertValidPath(t, g, p, rules)
}

func TestFindPath_NoCornerCutting(t *testing.T) {
	g := grid.New(3, 3)
	g.SetTerrain(grid.C(1, 0), grid.BigObstacle)
	pf := NewPathfinder(g)
	rules := NewRules(grid.DefaultWalkable(), nil, true)
	p, err := pf.FindPath(grid.C(0, 0), grid.C(1, 1), rules, grid.WithStartAndEnd)
	if err != nil {
		t.Fatal(err)
	}
	if p.Cost != 20 {
		t.Fatalf("diagonal past an obstacle must not be taken, got cost %d: %v", p.Cost, p)
	}
	assertValidPath(t, g, p, rules)

	// An occupied corner blocks the squeeze just like terrain.
	g2 := grid.New(3, 3)
	pf2 := NewPathfinder(g2)
	rules2 := NewRules(grid.DefaultWalkable(), []grid.Coord{grid.C(0, 1)}, true)
	p2, _ := pf2.FindPath(grid.C(0, 0), grid.C(1, 1), rules2, grid.WithStartAndEnd)
	if p2.Cost != 20 {
		t.Fatalf("diagonal past an occupied tile must not be taken, got %v", p2)
	}
}

func TestFindPath_OccupiedEndAllowed(t *testing.T) {
	g := grid.New(5, 1)
	pf := NewPathfinder(g)
	rules := NewRules(grid.DefaultWalkable(), []grid.Coord{grid.C(4, 0)}, false)
	p, err := pf.FindPath(grid.C(0, 0), grid.C(4, 0), rules, grid.WithStartAndEnd)
	if err != nil || !p.Reached {
		t.Fatalf("occupied end tile should still be reachable: %v %v", p, err)
	}

	rules = NewRules(grid.DefaultWalkable(), []grid.Coord{grid.C(2, 0)}, false)
	p, _ = pf.FindPath(grid.C(0, 0), grid.C(4, 0), rules, grid.WithStartAndEnd)
	if p.Reached {
		t.Fatalf("occupied intermediate tile should block, got %v", p)
	}
	assertArenasNeutral(t, pf.pool)
}

func TestFindPath_ForbiddenEndTerrain(t *testing.T) {
	g := grid.New(5, 1)
	g.SetTerrain(grid.C(4, 0), grid.Water)
	pf := NewPathfinder(g)
	p, _ := pf.FindPath(grid.C(0, 0), grid.C(4, 0), Walkable(false), grid.WithStartAndEnd)
	if p.Reached {
		t.Fatal("water end tile should not be reachable for a walker")
	}
	swim := NewRules(grid.Terrains(grid.Basic, grid.Water), nil, false)
	p, _ = pf.FindPath(grid.C(0, 0), grid.C(4, 0), swim, grid.WithStartAndEnd)
	if !p.Reached {
		t.Fatal("swimmer should reach the water tile")
	}
}

func mazeBoard() *grid.Grid {
	g := grid.New(8, 8)
	for _, c := range []grid.Coord{
		grid.C(1, 1), grid.C(2, 1), grid.C(3, 1), grid.C(5, 1),
		grid.C(3, 3), grid.C(4, 3), grid.C(5, 3), grid.C(6, 3),
		grid.C(1, 5), grid.C(2, 5), grid.C(4, 5), grid.C(6, 6),
	} {
		g.SetTerrain(c, grid.BigObstacle)
	}
	g.SetTerrain(grid.C(0, 4), grid.Hole)
	return g
}

func TestFindPath_Deterministic(t *testing.T) {
	g := mazeBoard()
	for _, diag := range []bool{false, true} {
		pf := NewPathfinder(g)
		rules := Walkable(diag)
		first, err := pf.FindPath(grid.C(0, 0), grid.C(7, 7), rules, grid.WithStartAndEnd)
		if err != nil {
			t.Fatal(err)
		}
		assertValidPath(t, g, first, rules)
		for i := 0; i < 5; i++ {
			again, _ := pf.FindPath(grid.C(0, 0), grid.C(7, 7), rules, grid.WithStartAndEnd)
			if !slices.Equal(first.Tiles, again.Tiles) || first.Cost != again.Cost {
				t.Fatalf("run %d differs: %v vs %v", i, first, again)
			}
		}
		assertArenasNeutral(t, pf.pool)
	}
}

func TestFindPath_ConcurrentQueries(t *testing.T) {
	g := mazeBoard()
	pf := NewPathfinder(g)
	rules := Walkable(true)
	want, _ := pf.FindPath(grid.C(0, 0), grid.C(7, 7), rules, grid.WithStartAndEnd)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := pf.FindPath(grid.C(0, 0), grid.C(7, 7), rules, grid.WithStartAndEnd)
			if !slices.Equal(got.Tiles, want.Tiles) {
				errs <- got.String()
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatalf("concurrent query diverged: %s", e)
	}
	assertArenasNeutral(t, pf.pool)
}

func TestFindPath_ManhattanOption(t *testing.T) {
	g := grid.New(5, 5)
	pf := NewPathfinder(g, WithManhattanHeuristic())
	rules := Walkable(true)
	p, err := pf.FindPath(grid.C(0, 0), grid.C(4, 2), rules, grid.WithStartAndEnd)
	if err != nil || !p.Reached {
		t.Fatalf("expected a route: %v %v", p, err)
	}
	assertValidPath(t, g, p, rules)
}
