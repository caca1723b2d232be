package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Garsondee/tactics-core/internal/board"
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/unit"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type boardResponse struct {
	Scenario string    `json:"scenario,omitempty"`
	Cols     int       `json:"cols"`
	Rows     int       `json:"rows"`
	Tick     int       `json:"tick"`
	Render   string    `json:"render"`
	Units    []unitDTO `json:"units"`
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	e, name := s.engine, s.scenario
	s.mu.RUnlock()

	ov := board.Overlay{}
	if team := r.URL.Query().Get("team"); team != "" {
		n, err := strconv.Atoi(team)
		if err != nil {
			respondError(w, http.StatusBadRequest, "team must be an integer")
			return
		}
		seen := e.TeamVisibleTiles(grid.TeamID(n))
		ov.Visible = &seen
	}

	cols, rows := e.Bounds()
	respondJSON(w, http.StatusOK, boardResponse{
		Scenario: name,
		Cols:     cols,
		Rows:     rows,
		Tick:     e.CurrentTick(),
		Render:   board.RenderEngine(e, ov),
		Units:    unitsOf(e.Units()),
	})
}

func unitsOf(us []unit.Unit) []unitDTO {
	out := make([]unitDTO, len(us))
	for i, u := range us {
		out[i] = toUnit(u)
	}
	return out
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, unitsOf(s.Engine().Units()))
}

type areaResponse struct {
	Unit   int        `json:"unit"`
	Origin coordDTO   `json:"origin"`
	Budget int        `json:"budget"`
	Tiles  []coordDTO `json:"tiles"`
}

func (s *Server) handleArea(w http.ResponseWriter, r *http.Request) {
	id, err := unitID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	area, err := s.Engine().MoveArea(id)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, areaResponse{
		Unit:   int(id),
		Origin: toCoord(area.Origin),
		Budget: area.Budget,
		Tiles:  toCoords(area.Coords()),
	})
}

type pathResponse struct {
	Tiles   []coordDTO `json:"tiles"`
	Cost    int        `json:"cost"`
	Reached bool       `json:"reached"`
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	id, err := unitID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dest, err := queryCoord(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := s.Engine().PathTo(id, dest)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pathResponse{Tiles: toCoords(p.Tiles), Cost: p.Cost, Reached: p.Reached})
}

type sightResponse struct {
	Unit    int      `json:"unit"`
	Target  coordDTO `json:"target"`
	Visible bool     `json:"visible"`
}

func (s *Server) handleSight(w http.ResponseWriter, r *http.Request) {
	id, err := unitID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	target, err := queryCoord(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	ok, err := s.Engine().CanSee(id, target)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sightResponse{Unit: int(id), Target: toCoord(target), Visible: ok})
}

type visibleResponse struct {
	Unit  int        `json:"unit"`
	Tiles []coordDTO `json:"tiles"`
	Units []unitDTO  `json:"units"`
}

func (s *Server) handleVisible(w http.ResponseWriter, r *http.Request) {
	id, err := unitID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	e := s.Engine()
	u, ok := e.Unit(id)
	if !ok {
		respondError(w, http.StatusNotFound, "unit not found")
		return
	}
	tiles, err := e.VisibleTiles(id)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visibleResponse{
		Unit:  int(id),
		Tiles: toCoords(tiles.Sorted()),
		Units: unitsOf(e.VisibleUnits(u.Team)),
	})
}

type coverStateResponse struct {
	Covered bool       `json:"covered"`
	Threats int        `json:"threats"`
	Exposed []coordDTO `json:"exposed"`
	Nearby  *coverDTO  `json:"nearby,omitempty"`
}

// handleCover answers the resting cover state, or the cover against a
// single shooter when x and y are given.
func (s *Server) handleCover(w http.ResponseWriter, r *http.Request) {
	id, err := unitID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	e := s.Engine()
	if r.URL.Query().Has("x") || r.URL.Query().Has("y") {
		attacker, err := queryCoord(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		info, err := e.CoverAgainst(id, attacker)
		if err != nil {
			s.respondEngineError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toCover(info))
		return
	}

	st, err := e.CoverState(id)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	resp := coverStateResponse{Covered: st.Covered, Threats: st.Threats, Exposed: toCoords(st.Exposed)}
	if st.HasNearby {
		n := toCover(st.Nearby)
		resp.Nearby = &n
	}
	respondJSON(w, http.StatusOK, resp)
}

type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
	// Run ticks the board until every unit has stopped.
	Run bool `json:"run"`
}

type moveResponse struct {
	Path   pathResponse `json:"path"`
	Events []eventDTO   `json:"events,omitempty"`
}

// maxRunTicks bounds a move request that asks to run to completion.
const maxRunTicks = 256

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id, err := unitID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e := s.Engine()
	p, err := e.BeginMove(id, grid.C(req.X, req.Y))
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	resp := moveResponse{Path: pathResponse{Tiles: toCoords(p.Tiles), Cost: p.Cost, Reached: p.Reached}}
	if req.Run {
		resp.Events = toEvents(e.RunMoves(maxRunTicks))
	}
	respondJSON(w, http.StatusOK, resp)
}

type tickResponse struct {
	Tick   int        `json:"tick"`
	Events []eventDTO `json:"events"`
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	e := s.Engine()
	if r.URL.Query().Get("turn") == "new" {
		e.NewTurn()
	}
	evs := e.Tick()
	respondJSON(w, http.StatusOK, tickResponse{Tick: e.CurrentTick(), Events: toEvents(evs)})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, s.Engine().Journal().Filter(q.Get("category"), q.Get("key")))
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	if s.scenarios == nil {
		respondError(w, http.StatusNotFound, "no scenario directory configured")
		return
	}
	names, err := s.scenarios.List()
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"scenarios": names})
}

func (s *Server) handleLoadScenario(w http.ResponseWriter, r *http.Request) {
	if s.scenarios == nil {
		respondError(w, http.StatusNotFound, "no scenario directory configured")
		return
	}
	name := mux.Vars(r)["name"]
	sc, err := s.scenarios.Get(name)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	e, err := board.Build(sc)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.mu.Lock()
	s.engine, s.scenario = e, sc.Name
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"scenario": sc.Name, "units": len(e.Units())}).Info("scenario loaded")
	respondJSON(w, http.StatusOK, map[string]any{"scenario": sc.Name, "units": unitsOf(e.Units())})
}
