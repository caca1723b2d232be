package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/Garsondee/tactics-core/internal/board"
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/Garsondee/tactics-core/internal/nav"
	"github.com/Garsondee/tactics-core/internal/tactics"
	"github.com/Garsondee/tactics-core/internal/unit"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server exposes read-mostly probes over one engine as JSON.
type Server struct {
	mu       sync.RWMutex
	engine   *tactics.Engine
	scenario string

	scenarios *board.Manager
	router    *mux.Router
	log       *logrus.Entry
}

// New creates a probe server. scenarios may be nil, in which case the
// scenario routes answer 404.
func New(e *tactics.Engine, scenarios *board.Manager) *Server {
	s := &Server{
		engine:    e,
		scenarios: scenarios,
		router:    mux.NewRouter(),
		log:       logger.Component("server"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/board", s.handleBoard).Methods("GET")
	api.HandleFunc("/units", s.handleUnits).Methods("GET")
	api.HandleFunc("/units/{id}/area", s.handleArea).Methods("GET")
	api.HandleFunc("/units/{id}/path", s.handlePath).Methods("GET")
	api.HandleFunc("/units/{id}/sight", s.handleSight).Methods("GET")
	api.HandleFunc("/units/{id}/visible", s.handleVisible).Methods("GET")
	api.HandleFunc("/units/{id}/cover", s.handleCover).Methods("GET")
	api.HandleFunc("/units/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/tick", s.handleTick).Methods("POST")
	api.HandleFunc("/journal", s.handleJournal).Methods("GET")

	api.HandleFunc("/scenarios", s.handleListScenarios).Methods("GET")
	api.HandleFunc("/scenarios/{name}/load", s.handleLoadScenario).Methods("POST")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Engine returns the engine currently served.
func (s *Server) Engine() *tactics.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondEngineError maps engine errors onto HTTP statuses.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, tactics.ErrUnknownUnit), errors.Is(err, board.ErrScenarioNotFound):
		status = http.StatusNotFound
	case errors.Is(err, nav.ErrInvalidInput), errors.Is(err, board.ErrInvalidScenario):
		status = http.StatusBadRequest
	case errors.Is(err, tactics.ErrUnreachable), errors.Is(err, tactics.ErrOccupied),
		errors.Is(err, tactics.ErrNotWalkable),
		errors.Is(err, unit.ErrAlreadyMoving), errors.Is(err, unit.ErrDead):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	respondError(w, status, err.Error())
}

func unitID(r *http.Request) (grid.UnitID, error) {
	n, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return grid.NoUnit, errors.New("unit id must be an integer")
	}
	return grid.UnitID(n), nil
}

func queryCoord(r *http.Request) (grid.Coord, error) {
	x, errX := strconv.Atoi(r.URL.Query().Get("x"))
	y, errY := strconv.Atoi(r.URL.Query().Get("y"))
	if errX != nil || errY != nil {
		return grid.Coord{}, errors.New("x and y query parameters are required integers")
	}
	return grid.C(x, y), nil
}
