package grid

// UnitID references a unit standing on a tile. The engine does not own units;
// the grid only records who is where.
type UnitID int

// NoUnit marks an empty tile.
const NoUnit UnitID = 0

// Tile is one cell of the board. Tiles carry static terrain, an optional
// cover object and the current occupant. Search bookkeeping is kept outside
// the tile, in per-query arenas.
type Tile struct {
	Coord    Coord
	Terrain  TerrainType
	Cover    CoverType
	Occupant UnitID
}

// Occupied reports whether a unit stands on the tile.
func (t *Tile) Occupied() bool { return t.Occupant != NoUnit }

// HasCover reports whether a cover object stands on the tile.
func (t *Tile) HasCover() bool { return t.Cover != CoverNone }

// TeamID groups units that share vision and do not block each other when
// the pass policy allows.
type TeamID int
