// Command tactics-report loads a scenario and answers spatial queries about
// it from the terminal: movement areas, paths, line of sight, fog and
// cover, rendered as ASCII boards. The serve subcommand exposes the same
// queries over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Garsondee/tactics-core/internal/board"
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/Garsondee/tactics-core/internal/server"
	"github.com/Garsondee/tactics-core/internal/tactics"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "tactics-report",
		Usage: "query a tactical scenario from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "directory holding scenario files",
				Value:   board.DefaultConfigDir,
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "scenario",
				Aliases: []string{"s"},
				Usage:   "scenario name",
				Value:   "skirmish",
			},
			&cli.StringFlag{
				Name:    "unit",
				Aliases: []string{"u"},
				Usage:   "unit id or name",
				Value:   "1",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			// .env is optional.
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintln(os.Stderr, "warning: loading .env:", err)
			}
			logger.InitWithOutput(os.Stderr)
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list the scenarios in the config directory",
				Action: runList,
			},
			{
				Name:  "render",
				Usage: "draw the board",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "fog-team", Usage: "hide what this team cannot see (0 shows everything)"},
					&cli.BoolFlag{Name: "legend", Usage: "print the glyph legend"},
				},
				Action: runRender,
			},
			{
				Name:   "area",
				Usage:  "show the unit's movement area",
				Action: runArea,
			},
			{
				Name:   "path",
				Usage:  "show the unit's path to a tile",
				Flags:  coordFlags(),
				Action: runPath,
			},
			{
				Name:   "sight",
				Usage:  "check line of sight from the unit to a tile and show its fog",
				Flags:  coordFlags(),
				Action: runSight,
			},
			{
				Name:  "cover",
				Usage: "show the unit's cover, against a shooter tile when --x and --y are given",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "x", Value: -1},
					&cli.IntFlag{Name: "y", Value: -1},
				},
				Action: runCover,
			},
			{
				Name:  "move",
				Usage: "move the unit to a tile and run the board until it stops",
				Flags: append(coordFlags(),
					&cli.IntFlag{Name: "ticks", Usage: "tick limit", Value: 64},
				),
				Action: runMove,
			},
			{
				Name:  "serve",
				Usage: "serve the probe API over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8080", Sources: cli.EnvVars("TACTICS_ADDR")},
				},
				Action: runServe,
			},
		},
	}
}

func coordFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "x", Required: true},
		&cli.IntFlag{Name: "y", Required: true},
	}
}

func flagCoord(cmd *cli.Command) grid.Coord {
	return grid.C(int(cmd.Int("x")), int(cmd.Int("y")))
}

// load builds the engine for the selected scenario.
func load(cmd *cli.Command) (*tactics.Engine, *board.Manager, error) {
	m, err := board.NewManager(cmd.String("config-dir"))
	if err != nil {
		return nil, nil, err
	}
	s, err := m.Get(cmd.String("scenario"))
	if err != nil {
		return nil, nil, err
	}
	e, err := board.Build(s)
	if err != nil {
		return nil, nil, err
	}
	return e, m, nil
}

// resolveUnit accepts a numeric id or a unit name.
func resolveUnit(e *tactics.Engine, ref string) (grid.UnitID, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if _, ok := e.Unit(grid.UnitID(n)); ok {
			return grid.UnitID(n), nil
		}
		return grid.NoUnit, fmt.Errorf("%w: %d", tactics.ErrUnknownUnit, n)
	}
	u, ok := e.UnitByName(ref)
	if !ok {
		return grid.NoUnit, fmt.Errorf("%w: %q", tactics.ErrUnknownUnit, ref)
	}
	return u.ID, nil
}

func loadUnit(cmd *cli.Command) (*tactics.Engine, grid.UnitID, error) {
	e, _, err := load(cmd)
	if err != nil {
		return nil, grid.NoUnit, err
	}
	id, err := resolveUnit(e, cmd.String("unit"))
	if err != nil {
		return nil, grid.NoUnit, err
	}
	return e, id, nil
}

func out(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func runList(ctx context.Context, cmd *cli.Command) error {
	m, err := board.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}
	names, err := m.List()
	if err != nil {
		return err
	}
	w := out(cmd)
	for _, n := range names {
		s, _ := m.Get(n)
		cols, rows := s.Size()
		fmt.Fprintf(w, "%-14s %2dx%-2d %d units  %s\n", n, cols, rows, len(s.Units), s.Description)
	}
	return nil
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	e, _, err := load(cmd)
	if err != nil {
		return err
	}
	w := out(cmd)
	ov := board.Overlay{}
	if team := cmd.Int("fog-team"); team > 0 {
		seen := e.TeamVisibleTiles(grid.TeamID(team))
		ov.Visible = &seen
	}
	fmt.Fprint(w, board.RenderEngine(e, ov))
	printUnits(w, e)
	if cmd.Bool("legend") {
		fmt.Fprintln(w)
		fmt.Fprint(w, board.Legend())
	}
	return nil
}

func printUnits(w io.Writer, e *tactics.Engine) {
	for _, u := range e.Units() {
		state := "alive"
		if !u.Alive {
			state = "dead"
		}
		fmt.Fprintf(w, "%c %-12s team %d at %v mp %d vision %d %s\n",
			board.UnitGlyph(u.Team), u.String(), u.Team, u.Pos, u.MovePoints, u.VisionRange, state)
	}
}

func runArea(ctx context.Context, cmd *cli.Command) error {
	e, id, err := loadUnit(cmd)
	if err != nil {
		return err
	}
	area, err := e.MoveArea(id)
	if err != nil {
		return err
	}
	w := out(cmd)
	fmt.Fprint(w, board.RenderEngine(e, board.Overlay{Area: area.Set()}))
	fmt.Fprintf(w, "%d tiles reachable with %d points\n", area.Len(), area.Budget)
	return nil
}

func runPath(ctx context.Context, cmd *cli.Command) error {
	e, id, err := loadUnit(cmd)
	if err != nil {
		return err
	}
	p, err := e.PathTo(id, flagCoord(cmd))
	if err != nil {
		return err
	}
	w := out(cmd)
	fmt.Fprint(w, board.RenderEngine(e, board.Overlay{Path: p.Tiles}))
	fmt.Fprintln(w, p)
	return nil
}

func runSight(ctx context.Context, cmd *cli.Command) error {
	e, id, err := loadUnit(cmd)
	if err != nil {
		return err
	}
	target := flagCoord(cmd)
	ok, err := e.CanSee(id, target)
	if err != nil {
		return err
	}
	seen, err := e.VisibleTiles(id)
	if err != nil {
		return err
	}
	w := out(cmd)
	fmt.Fprint(w, board.RenderEngine(e, board.Overlay{Visible: &seen}))
	verdict := "cannot see"
	if ok {
		verdict = "can see"
	}
	fmt.Fprintf(w, "unit %d %s %v (%d tiles visible)\n", id, verdict, target, seen.Len())
	return nil
}

func runCover(ctx context.Context, cmd *cli.Command) error {
	e, id, err := loadUnit(cmd)
	if err != nil {
		return err
	}
	w := out(cmd)
	if x, y := cmd.Int("x"), cmd.Int("y"); x >= 0 && y >= 0 {
		info, err := e.CoverAgainst(id, grid.C(int(x), int(y)))
		if err != nil {
			return err
		}
		if !info.Covered {
			fmt.Fprintf(w, "exposed to (%d,%d)\n", x, y)
			return nil
		}
		fmt.Fprintf(w, "%s cover from %v facing %s, %d%% to-hit\n", info.Type, info.Anchor, info.Facing, info.Protection)
		return nil
	}

	st, err := e.CoverState(id)
	if err != nil {
		return err
	}
	verdict := "uncovered"
	if st.Covered {
		verdict = "covered"
	}
	fmt.Fprintf(w, "%s against %d threats", verdict, st.Threats)
	if len(st.Exposed) > 0 {
		fmt.Fprintf(w, ", exposed to %v", st.Exposed)
	}
	fmt.Fprintln(w)
	if st.HasNearby {
		fmt.Fprintf(w, "nearby %s cover at %v\n", st.Nearby.Type, st.Nearby.Anchor)
	}
	return nil
}

func runMove(ctx context.Context, cmd *cli.Command) error {
	e, id, err := loadUnit(cmd)
	if err != nil {
		return err
	}
	dest := flagCoord(cmd)
	p, err := e.BeginMove(id, dest)
	if err != nil {
		return err
	}
	w := out(cmd)
	fmt.Fprintf(w, "route %v\n", p)
	for _, ev := range e.RunMoves(int(cmd.Int("ticks"))) {
		fmt.Fprintln(w, ev)
	}
	fmt.Fprint(w, board.RenderEngine(e, board.Overlay{}))
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	e, m, err := load(cmd)
	if err != nil {
		return err
	}
	log := logger.Component("serve")
	srv := &http.Server{
		Addr:              cmd.String("addr"),
		Handler:           server.New(e, m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithField("addr", srv.Addr).WithField("scenario", cmd.String("scenario")).Info("serving probe API")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
