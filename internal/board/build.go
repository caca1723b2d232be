package board

import (
	"fmt"

	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/sight"
	"github.com/Garsondee/tactics-core/internal/tactics"
	"github.com/Garsondee/tactics-core/internal/unit"
)

// builder collects board construction state across option passes.
type builder struct {
	cols, rows   int
	layout       []string
	terrain      map[grid.Coord]grid.TerrainType
	covers       map[grid.Coord]grid.CoverType
	terrainCover bool
	engineOpts   []tactics.Option
	units        []unit.Spec
	g            *grid.Grid
	err          error
}

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra  optionKind = iota // size, layout, terrain, cover, policies; applied first
	optUnit                     // units; applied after the grid is built
)

// Option is a builder function applied during New.
type Option struct {
	kind optionKind
	fn   func(*builder)
}

// WithSize sets the board dimensions. Ignored when a layout is given.
func WithSize(cols, rows int) Option {
	return Option{optInfra, func(b *builder) {
		b.cols, b.rows = cols, rows
	}}
}

// WithLayout sets terrain from glyph rows, north first.
func WithLayout(rows ...string) Option {
	return Option{optInfra, func(b *builder) {
		b.layout = rows
	}}
}

// WithTerrain overrides the terrain of individual tiles.
func WithTerrain(t grid.TerrainType, cs ...grid.Coord) Option {
	return Option{optInfra, func(b *builder) {
		for _, c := range cs {
			b.terrain[c] = t
		}
	}}
}

// WithCover places cover objects.
func WithCover(ct grid.CoverType, cs ...grid.Coord) Option {
	return Option{optInfra, func(b *builder) {
		for _, c := range cs {
			b.covers[c] = ct
		}
	}}
}

// WithTerrainCover controls whether obstacles carry their default cover.
func WithTerrainCover(on bool) Option {
	return Option{optInfra, func(b *builder) {
		b.terrainCover = on
	}}
}

// WithEngine forwards options to the engine.
func WithEngine(opts ...tactics.Option) Option {
	return Option{optInfra, func(b *builder) {
		b.engineOpts = append(b.engineOpts, opts...)
	}}
}

// WithUnit adds a unit.
func WithUnit(s unit.Spec) Option {
	return Option{optUnit, func(b *builder) {
		b.units = append(b.units, s)
	}}
}

// New builds an engine from options in ordered passes:
//  1. Infrastructure (size or layout, terrain, cover, engine options)
//  2. Grid
//  3. Units
func New(opts ...Option) (*tactics.Engine, error) {
	b := &builder{
		cols:         8,
		rows:         8,
		terrain:      make(map[grid.Coord]grid.TerrainType),
		covers:       make(map[grid.Coord]grid.CoverType),
		terrainCover: true,
	}
	for _, o := range opts {
		if o.kind == optInfra {
			o.fn(b)
		}
	}
	if err := b.buildGrid(); err != nil {
		return nil, err
	}
	e := tactics.New(b.g, b.engineOpts...)
	for _, o := range opts {
		if o.kind == optUnit {
			o.fn(b)
		}
	}
	for _, s := range b.units {
		if _, err := e.AddUnit(s); err != nil {
			return nil, fmt.Errorf("place %q: %w", s.Name, err)
		}
	}
	return e, nil
}

func (b *builder) buildGrid() error {
	if len(b.layout) > 0 {
		b.cols, b.rows = len(b.layout[0]), len(b.layout)
	}
	if b.cols < MinSize || b.rows < MinSize || b.cols > MaxSize || b.rows > MaxSize {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidScenario, b.cols, b.rows)
	}
	b.g = grid.New(b.cols, b.rows)
	for i, row := range b.layout {
		if len(row) != b.cols {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidScenario, i+1, len(row), b.cols)
		}
		y := b.rows - 1 - i
		for x := 0; x < len(row); x++ {
			t, ok := grid.TerrainFromGlyph(row[x])
			if !ok {
				return fmt.Errorf("%w: unknown glyph %q", ErrInvalidScenario, row[x])
			}
			b.g.SetTerrain(grid.C(x, y), t)
		}
	}
	for c, t := range b.terrain {
		b.g.SetTerrain(c, t)
	}
	if b.terrainCover {
		b.g.Each(func(t *grid.Tile) {
			if !t.HasCover() {
				t.Cover = t.Terrain.DefaultCover()
			}
		})
	}
	for c, ct := range b.covers {
		b.g.SetCover(c, ct)
	}
	return nil
}

// Build turns a validated scenario into an engine. extra options are
// applied after the scenario's own.
func Build(s *Scenario, extra ...Option) (*tactics.Engine, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	return New(append(opts, extra...)...)
}

// Options converts the scenario into builder options.
func (s *Scenario) Options() ([]Option, error) {
	pass, err := unit.ParsePassPolicy(s.PassPolicy)
	if err != nil {
		return nil, err
	}
	team, err := sight.ParseTeamPolicy(s.TeamPolicy)
	if err != nil {
		return nil, err
	}
	mode, err := sight.ParseVisionMode(s.VisionMode)
	if err != nil {
		return nil, err
	}
	opts := []Option{
		WithLayout(s.Layout...),
		WithTerrainCover(!s.NoTerrainCover),
		WithEngine(
			tactics.WithPassPolicy(pass),
			tactics.WithTeamPolicy(team),
			tactics.WithVisionMode(mode),
			tactics.WithUnitsBlockSight(s.UnitsBlockSight),
		),
	}
	for _, c := range s.Covers {
		ct, err := grid.ParseCover(c.Type)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCover(ct, grid.C(c.X, c.Y)))
	}
	for _, u := range s.Units {
		walk, err := terrainSet(u.Walkable)
		if err != nil {
			return nil, err
		}
		obst, err := terrainSet(u.Obstacles)
		if err != nil {
			return nil, err
		}
		acc, err := coverSet(u.Cover)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithUnit(unit.Spec{
			Name:        u.Name,
			Team:        grid.TeamID(u.Team),
			Pos:         grid.C(u.X, u.Y),
			MovePoints:  u.MovePoints,
			VisionRange: u.VisionRange,
			Diagonals:   u.Diagonals,
			Walkable:    walk,
			Obstacles:   obst,
			AcceptCover: acc,
		}))
	}
	return opts, nil
}
