package grid

import "testing"

func TestNew_AllBasic(t *testing.T) {
	g := New(5, 4)
	if g.Len() != 20 {
		t.Fatalf("expected 20 tiles, got %d", g.Len())
	}
	g.Each(func(tile *Tile) {
		if tile.Terrain != Basic {
			t.Fatalf("tile %v: expected basic terrain, got %s", tile.Coord, tile.Terrain)
		}
		if tile.Occupied() || tile.HasCover() {
			t.Fatalf("tile %v should start empty", tile.Coord)
		}
	})
	if got := g.At(C(3, 2)).Coord; got != C(3, 2) {
		t.Fatalf("tile coordinate mismatch: %v", got)
	}
}

func TestGrid_OutOfBounds(t *testing.T) {
	g := New(5, 5)
	for _, c := range []Coord{C(-1, 0), C(0, -1), C(5, 0), C(0, 5)} {
		if g.InBounds(c) {
			t.Fatalf("%v should be out of bounds", c)
		}
		if g.At(c) != nil {
			t.Fatalf("At(%v) should be nil", c)
		}
		if g.Index(c) != -1 {
			t.Fatalf("Index(%v) should be -1", c)
		}
	}
	g.SetTerrain(C(-1, -1), Hole) // ignored
}

func TestGrid_IndexRoundTrip(t *testing.T) {
	g := New(7, 3)
	for i := 0; i < g.Len(); i++ {
		if g.Index(g.CoordOf(i)) != i {
			t.Fatalf("index %d did not round-trip", i)
		}
	}
}

func TestGrid_NeighborsOrder(t *testing.T) {
	g := New(5, 5)
	got := g.Neighbors(C(2, 2), false, nil)
	want := []Coord{C(2, 3), C(3, 2), C(2, 1), C(1, 2)}
	if len(got) != len(want) {
		t.Fatalf("expected %d neighbours, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("neighbour %d: expected %v got %v", i, want[i], got[i])
		}
	}
	if n := len(g.Neighbors(C(2, 2), true, nil)); n != 8 {
		t.Fatalf("expected 8 neighbours with diagonals, got %d", n)
	}
	if n := len(g.Neighbors(C(0, 0), true, nil)); n != 3 {
		t.Fatalf("corner should have 3 neighbours, got %d", n)
	}
}

func TestGrid_TilesAroundClipped(t *testing.T) {
	g := New(5, 5)
	got := g.TilesAround(C(0, 0), 2)
	if len(got) != 9 {
		t.Fatalf("expected 3x3 clipped square, got %d tiles", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Less(got[i]) {
			t.Fatalf("tiles not row-major at %d: %v", i, got)
		}
	}
	if g.TilesAround(C(2, 2), -1) != nil {
		t.Fatal("negative radius should yield nothing")
	}
}

func TestGrid_Occupancy(t *testing.T) {
	g := New(3, 3)
	g.SetOccupant(C(1, 1), 7)
	if g.Occupant(C(1, 1)) != 7 {
		t.Fatal("occupant not recorded")
	}
	cp := g.Clone()
	g.ClearOccupant(C(1, 1))
	if g.At(C(1, 1)).Occupied() {
		t.Fatal("occupant not cleared")
	}
	if cp.Occupant(C(1, 1)) != 7 {
		t.Fatal("clone should not share tiles")
	}
}

func TestCoord_Distances(t *testing.T) {
	a, b := C(1, 1), C(4, 3)
	if a.Manhattan(b) != 5 {
		t.Fatalf("manhattan: got %d", a.Manhattan(b))
	}
	if a.Chebyshev(b) != 3 {
		t.Fatalf("chebyshev: got %d", a.Chebyshev(b))
	}
	if !a.IsDiagonalTo(C(2, 2)) || a.IsOrthogonalTo(C(2, 2)) {
		t.Fatal("(2,2) is diagonal to (1,1)")
	}
}

func TestTerrainTable(t *testing.T) {
	if !Basic.Walkable() || Hole.Walkable() || Water.Walkable() {
		t.Fatal("walkability table wrong")
	}
	if !BigObstacle.BlocksSight() || LowObstacle.BlocksSight() {
		t.Fatal("sight table wrong")
	}
	if BigObstacle.DefaultCover() != CoverFull || LowObstacle.DefaultCover() != CoverHalf {
		t.Fatal("default cover table wrong")
	}
	for _, tt := range AllTerrain() {
		back, ok := TerrainFromGlyph(tt.Glyph())
		if !ok || back != tt {
			t.Fatalf("glyph %q did not map back to %s", tt.Glyph(), tt)
		}
		parsed, err := ParseTerrain(tt.String())
		if err != nil || parsed != tt {
			t.Fatalf("ParseTerrain(%q) = %v, %v", tt.String(), parsed, err)
		}
	}
	if _, err := ParseTerrain("lava"); err == nil {
		t.Fatal("expected error for unknown terrain")
	}
}

func TestTerrainSet(t *testing.T) {
	s := Terrains(Basic, Water)
	if !s.Has(Water) || s.Has(Hole) {
		t.Fatalf("unexpected membership in %s", s)
	}
	s = s.Without(Water)
	if s.Has(Water) {
		t.Fatal("Without did not remove")
	}
	if DefaultWalkable() != Terrains(Basic) {
		t.Fatalf("default walkable: %s", DefaultWalkable())
	}
}

func TestCoverTable(t *testing.T) {
	if CoverFull.ProtectionPercent() >= CoverHalf.ProtectionPercent() {
		t.Fatal("full cover should let less through than half cover")
	}
	if CoverNone.ProtectionPercent() != 100 {
		t.Fatal("no cover should let everything through")
	}
	if AllCovers().Has(CoverNone) {
		t.Fatal("CoverNone is never a set member")
	}
	if _, err := ParseCover("FULL"); err != nil {
		t.Fatalf("ParseCover: %v", err)
	}
}

func TestCoordSet_ZeroValue(t *testing.T) {
	var s CoordSet
	if s.Len() != 0 || s.Has(C(0, 0)) || len(s.Sorted()) != 0 {
		t.Fatal("zero set should be empty")
	}
	s.Remove(C(0, 0))
	s.Add(C(1, 1))
	if !s.Has(C(1, 1)) || s.Len() != 1 {
		t.Fatal("Add on a zero set should work")
	}
	var u CoordSet
	u.Union(s)
	if !u.Has(C(1, 1)) {
		t.Fatal("Union into a zero set should work")
	}
}

func TestCoordSet(t *testing.T) {
	s := NewCoordSet(C(2, 1), C(0, 0))
	s.Add(C(1, 0))
	s.Add(C(2, 1))
	if s.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", s.Len())
	}
	got := s.Sorted()
	want := []Coord{C(0, 0), C(1, 0), C(2, 1)}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted[%d]: expected %v got %v", i, want[i], got[i])
		}
	}
	cp := s.Clone()
	s.Remove(C(0, 0))
	if !cp.Has(C(0, 0)) || s.Has(C(0, 0)) {
		t.Fatal("clone should be independent")
	}
	if !s.SubsetOf(cp) || cp.SubsetOf(s) {
		t.Fatal("subset relation wrong")
	}
	var zero CoordSet
	if zero.Has(C(0, 0)) || zero.Len() != 0 {
		t.Fatal("zero set should be empty")
	}
}
