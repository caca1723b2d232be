// Command tactics-viewer opens a scenario in an interactive window.
package main

import (
	"flag"
	"os"

	"github.com/Garsondee/tactics-core/internal/board"
	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/Garsondee/tactics-core/internal/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	log := logger.Component("viewer")

	dir := flag.String("config-dir", "", "scenario directory (default $CONFIG_DIR or ./configs)")
	scenario := flag.String("scenario", "skirmish", "scenario name")
	tile := flag.Int("tile", viewer.DefaultTileSize, "tile size in pixels")
	flag.Parse()

	m, err := board.NewManager(*dir)
	if err != nil {
		log.WithError(err).Fatal("scenario directory")
	}
	s, err := m.Get(*scenario)
	if err != nil {
		log.WithError(err).Fatal("load scenario")
	}
	e, err := board.Build(s)
	if err != nil {
		log.WithError(err).Fatal("build scenario")
	}

	v := viewer.New(e, *tile)
	w, h := v.WindowSize()
	ebiten.SetWindowTitle("Tactics - " + s.Name)
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(v); err != nil {
		log.WithError(err).Error("viewer exited")
		os.Exit(1)
	}
}
