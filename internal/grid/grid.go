package grid

// Grid is the rectangular board. Tiles are stored row-major:
// index = y*cols + x. Terrain is authored once; occupancy changes as units
// move. Grid itself does no locking: writers (the tactics engine) must not
// mutate it while a query runs.
type Grid struct {
	cols  int
	rows  int
	tiles []Tile
}

// New creates a cols×rows grid of basic terrain.
func New(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	g := &Grid{cols: cols, rows: rows, tiles: make([]Tile, cols*rows)}
	for i := range g.tiles {
		g.tiles[i].Coord = g.CoordOf(i)
	}
	return g
}

// Cols returns the board width.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the board height.
func (g *Grid) Rows() int { return g.rows }

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// InBounds reports whether c lies on the board.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.cols && c.Y >= 0 && c.Y < g.rows
}

// Index returns the row-major index of c, or -1 when off the board.
func (g *Grid) Index(c Coord) int {
	if !g.InBounds(c) {
		return -1
	}
	return c.Y*g.cols + c.X
}

// CoordOf is the inverse of Index.
func (g *Grid) CoordOf(i int) Coord {
	if g.cols == 0 {
		return Coord{}
	}
	return Coord{X: i % g.cols, Y: i / g.cols}
}

// At returns the tile at c, or nil when c is off the board.
func (g *Grid) At(c Coord) *Tile {
	i := g.Index(c)
	if i < 0 {
		return nil
	}
	return &g.tiles[i]
}

// TileAt returns the tile at index i.
func (g *Grid) TileAt(i int) *Tile { return &g.tiles[i] }

// Terrain returns the terrain at c and whether c resolved to a tile.
func (g *Grid) Terrain(c Coord) (TerrainType, bool) {
	t := g.At(c)
	if t == nil {
		return 0, false
	}
	return t.Terrain, true
}

// SetTerrain changes the terrain at c. Off-board writes are ignored.
func (g *Grid) SetTerrain(c Coord, t TerrainType) {
	if tile := g.At(c); tile != nil {
		tile.Terrain = t
	}
}

// SetCover places (or with CoverNone removes) a cover object at c.
func (g *Grid) SetCover(c Coord, cv CoverType) {
	if tile := g.At(c); tile != nil {
		tile.Cover = cv
	}
}

// SetOccupant records id as standing on c.
func (g *Grid) SetOccupant(c Coord, id UnitID) {
	if tile := g.At(c); tile != nil {
		tile.Occupant = id
	}
}

// ClearOccupant empties c.
func (g *Grid) ClearOccupant(c Coord) {
	g.SetOccupant(c, NoUnit)
}

// Occupant returns the unit on c (NoUnit if empty or off the board).
func (g *Grid) Occupant(c Coord) UnitID {
	if t := g.At(c); t != nil {
		return t.Occupant
	}
	return NoUnit
}

// Neighbors appends the in-bounds neighbours of c to dst in Directions
// order and returns the extended slice.
func (g *Grid) Neighbors(c Coord, diagonals bool, dst []Coord) []Coord {
	for _, d := range Directions(diagonals) {
		n := c.Add(d.Offset())
		if g.InBounds(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

// TilesAround returns every on-board coordinate within Chebyshev distance
// radius of c (c included), row-major.
func (g *Grid) TilesAround(c Coord, radius int) []Coord {
	if radius < 0 {
		return nil
	}
	minX, maxX := max(0, c.X-radius), min(g.cols-1, c.X+radius)
	minY, maxY := max(0, c.Y-radius), min(g.rows-1, c.Y+radius)
	if minX > maxX || minY > maxY {
		return nil
	}
	out := make([]Coord, 0, (maxX-minX+1)*(maxY-minY+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			out = append(out, Coord{x, y})
		}
	}
	return out
}

// Each calls fn for every tile, row-major.
func (g *Grid) Each(fn func(t *Tile)) {
	for i := range g.tiles {
		fn(&g.tiles[i])
	}
}

// Clone returns a deep copy of the board.
func (g *Grid) Clone() *Grid {
	cp := &Grid{cols: g.cols, rows: g.rows, tiles: make([]Tile, len(g.tiles))}
	copy(cp.tiles, g.tiles)
	return cp
}
