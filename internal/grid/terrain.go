package grid

import (
	"fmt"
	"strings"
)

// TerrainType identifies the base surface of a tile. Behaviour per type lives
// in terrainTable; adding a kind means adding a row there.
type TerrainType uint8

const (
	Basic            TerrainType = iota // open ground
	Hole                                // pit / missing floor
	BigObstacle                         // wall, pillar, container
	LowObstacle                         // crate, sandbags, low wall
	Water                               // deep water
	terrainTypeCount                    // sentinel
)

type terrainInfo struct {
	name        string
	glyph       byte
	walkable    bool // default for unit traversal rules
	blocksSight bool // default for unit visual obstacles
	cover       CoverType
}

var terrainTable = [terrainTypeCount]terrainInfo{
	Basic:       {name: "basic", glyph: '.', walkable: true},
	Hole:        {name: "hole", glyph: 'o'},
	BigObstacle: {name: "big-obstacle", glyph: '#', blocksSight: true, cover: CoverFull},
	LowObstacle: {name: "low-obstacle", glyph: 'n', cover: CoverHalf},
	Water:       {name: "water", glyph: '~'},
}

func (t TerrainType) info() terrainInfo {
	if t >= terrainTypeCount {
		return terrainInfo{name: "unknown", glyph: '?'}
	}
	return terrainTable[t]
}

func (t TerrainType) String() string { return t.info().name }

// Glyph returns the layout character for t.
func (t TerrainType) Glyph() byte { return t.info().glyph }

// Walkable reports whether units may enter t under default rules.
func (t TerrainType) Walkable() bool { return t.info().walkable }

// BlocksSight reports whether t is a visual obstacle under default rules.
func (t TerrainType) BlocksSight() bool { return t.info().blocksSight }

// DefaultCover is the cover object a board builder places on t.
func (t TerrainType) DefaultCover() CoverType { return t.info().cover }

// TerrainFromGlyph maps a layout character back to its terrain.
func TerrainFromGlyph(g byte) (TerrainType, bool) {
	for t := TerrainType(0); t < terrainTypeCount; t++ {
		if terrainTable[t].glyph == g {
			return t, true
		}
	}
	return 0, false
}

// ParseTerrain accepts a terrain name as printed by String.
func ParseTerrain(name string) (TerrainType, error) {
	for t := TerrainType(0); t < terrainTypeCount; t++ {
		if terrainTable[t].name == strings.ToLower(name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown terrain %q", name)
}

// AllTerrain lists every terrain kind in declaration order.
func AllTerrain() []TerrainType {
	out := make([]TerrainType, 0, terrainTypeCount)
	for t := TerrainType(0); t < terrainTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// TerrainSet is a set of terrain kinds packed into a bitmask.
type TerrainSet uint32

// Terrains builds a set from kinds.
func Terrains(ts ...TerrainType) TerrainSet {
	var s TerrainSet
	for _, t := range ts {
		s = s.With(t)
	}
	return s
}

// With returns s ∪ {t}.
func (s TerrainSet) With(t TerrainType) TerrainSet { return s | 1<<t }

// Without returns s \ {t}.
func (s TerrainSet) Without(t TerrainType) TerrainSet { return s &^ (1 << t) }

// Has reports t ∈ s.
func (s TerrainSet) Has(t TerrainType) bool { return s&(1<<t) != 0 }

// Slice lists the members of s in declaration order.
func (s TerrainSet) Slice() []TerrainType {
	var out []TerrainType
	for t := TerrainType(0); t < terrainTypeCount; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s TerrainSet) String() string {
	names := make([]string, 0, terrainTypeCount)
	for _, t := range s.Slice() {
		names = append(names, t.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// DefaultWalkable is the set of terrain a unit may enter with no overrides.
func DefaultWalkable() TerrainSet {
	var s TerrainSet
	for t := TerrainType(0); t < terrainTypeCount; t++ {
		if terrainTable[t].walkable {
			s = s.With(t)
		}
	}
	return s
}

// DefaultObstacles is the set of terrain that blocks sight by default.
func DefaultObstacles() TerrainSet {
	var s TerrainSet
	for t := TerrainType(0); t < terrainTypeCount; t++ {
		if terrainTable[t].blocksSight {
			s = s.With(t)
		}
	}
	return s
}
