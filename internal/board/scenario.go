package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/sight"
	"github.com/Garsondee/tactics-core/internal/unit"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// Board size limits.
const (
	MinSize = 1
	MaxSize = 128
)

// Scenario is a board authored as JSON. Layout rows are listed north to
// south: the first row is the highest Y.
type Scenario struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Layout      []string `json:"layout"`

	Covers []CoverSpec `json:"covers,omitempty"`
	Units  []UnitSpec  `json:"units,omitempty"`

	PassPolicy      string `json:"pass_policy,omitempty"`
	TeamPolicy      string `json:"team_policy,omitempty"`
	VisionMode      string `json:"vision_mode,omitempty"`
	UnitsBlockSight bool   `json:"units_block_sight,omitempty"`
	// NoTerrainCover stops obstacles from carrying their default cover.
	NoTerrainCover bool `json:"no_terrain_cover,omitempty"`
}

// CoverSpec places a cover object.
type CoverSpec struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Type string `json:"type"`
}

// UnitSpec places a unit.
type UnitSpec struct {
	Name        string   `json:"name"`
	Team        int      `json:"team"`
	X           int      `json:"x"`
	Y           int      `json:"y"`
	MovePoints  int      `json:"move_points,omitempty"`
	VisionRange int      `json:"vision_range,omitempty"`
	Diagonals   bool     `json:"diagonals,omitempty"`
	Walkable    []string `json:"walkable,omitempty"`
	Obstacles   []string `json:"obstacles,omitempty"`
	Cover       []string `json:"cover,omitempty"`
}

// Size returns the board dimensions the layout describes.
func (s *Scenario) Size() (cols, rows int) {
	if len(s.Layout) == 0 {
		return 0, 0
	}
	return len(s.Layout[0]), len(s.Layout)
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, path)
		}
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Validate checks layout shape, glyphs, unit and cover placement and
// policy names.
func Validate(s *Scenario) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
	}
	if s.Name == "" {
		return invalid("name is required")
	}
	cols, rows := s.Size()
	if rows < MinSize || rows > MaxSize {
		return invalid("layout must have between %d and %d rows, got %d", MinSize, MaxSize, rows)
	}
	if cols < MinSize || cols > MaxSize {
		return invalid("layout rows must have between %d and %d columns, got %d", MinSize, MaxSize, cols)
	}
	for i, row := range s.Layout {
		if len(row) != cols {
			return invalid("row %d has %d columns, expected %d", i+1, len(row), cols)
		}
		for j := 0; j < len(row); j++ {
			if _, ok := grid.TerrainFromGlyph(row[j]); !ok {
				return invalid("unknown terrain glyph %q at row %d, col %d", row[j], i+1, j+1)
			}
		}
	}
	inBounds := func(x, y int) bool { return x >= 0 && x < cols && y >= 0 && y < rows }

	for i, c := range s.Covers {
		if !inBounds(c.X, c.Y) {
			return invalid("cover %d at (%d,%d) is off the board", i+1, c.X, c.Y)
		}
		if _, err := grid.ParseCover(c.Type); err != nil {
			return invalid("cover %d: %v", i+1, err)
		}
	}

	seen := make(map[grid.Coord]string)
	for i, u := range s.Units {
		if !inBounds(u.X, u.Y) {
			return invalid("unit %d (%s) at (%d,%d) is off the board", i+1, u.Name, u.X, u.Y)
		}
		at := grid.C(u.X, u.Y)
		if other, ok := seen[at]; ok {
			return invalid("units %s and %s share %v", other, u.Name, at)
		}
		seen[at] = u.Name
		if u.MovePoints < 0 || u.VisionRange < 0 {
			return invalid("unit %s has negative move points or vision range", u.Name)
		}
		if _, err := terrainSet(u.Walkable); err != nil {
			return invalid("unit %s walkable: %v", u.Name, err)
		}
		if _, err := terrainSet(u.Obstacles); err != nil {
			return invalid("unit %s obstacles: %v", u.Name, err)
		}
		if _, err := coverSet(u.Cover); err != nil {
			return invalid("unit %s cover: %v", u.Name, err)
		}
	}

	if _, err := unit.ParsePassPolicy(s.PassPolicy); err != nil {
		return invalid("%v", err)
	}
	if _, err := sight.ParseTeamPolicy(s.TeamPolicy); err != nil {
		return invalid("%v", err)
	}
	if _, err := sight.ParseVisionMode(s.VisionMode); err != nil {
		return invalid("%v", err)
	}
	return nil
}

func terrainSet(names []string) (*grid.TerrainSet, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var s grid.TerrainSet
	for _, n := range names {
		t, err := grid.ParseTerrain(n)
		if err != nil {
			return nil, err
		}
		s = s.With(t)
	}
	return &s, nil
}

func coverSet(names []string) (*grid.CoverSet, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var cs []grid.CoverType
	for _, n := range names {
		c, err := grid.ParseCover(n)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	s := grid.Covers(cs...)
	return &s, nil
}
