package server

import (
	"github.com/Garsondee/tactics-core/internal/cover"
	"github.com/Garsondee/tactics-core/internal/grid"
	"github.com/Garsondee/tactics-core/internal/unit"
)

type coordDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func toCoord(c grid.Coord) coordDTO { return coordDTO{X: c.X, Y: c.Y} }

func toCoords(cs []grid.Coord) []coordDTO {
	out := make([]coordDTO, len(cs))
	for i, c := range cs {
		out[i] = toCoord(c)
	}
	return out
}

type unitDTO struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Team        int      `json:"team"`
	Pos         coordDTO `json:"pos"`
	MovePoints  int      `json:"move_points"`
	VisionRange int      `json:"vision_range"`
	State       string   `json:"state"`
	Alive       bool     `json:"alive"`
}

func toUnit(u unit.Unit) unitDTO {
	return unitDTO{
		ID:          int(u.ID),
		Name:        u.Name,
		Team:        int(u.Team),
		Pos:         toCoord(u.Pos),
		MovePoints:  u.MovePoints,
		VisionRange: u.VisionRange,
		State:       u.Mover.State().String(),
		Alive:       u.Alive,
	}
}

type coverDTO struct {
	Covered    bool     `json:"covered"`
	Type       string   `json:"type"`
	Facing     string   `json:"facing,omitempty"`
	Anchor     coordDTO `json:"anchor"`
	Protection int      `json:"protection"`
}

func toCover(i cover.Info) coverDTO {
	d := coverDTO{Covered: i.Covered, Type: i.Type.String(), Anchor: toCoord(i.Anchor), Protection: i.Protection}
	if i.Type != grid.CoverNone {
		d.Facing = i.Facing.String()
	}
	return d
}

type eventDTO struct {
	Kind string   `json:"kind"`
	Unit int      `json:"unit"`
	From coordDTO `json:"from"`
	To   coordDTO `json:"to"`
}

func toEvents(evs []unit.Event) []eventDTO {
	out := make([]eventDTO, len(evs))
	for i, e := range evs {
		out[i] = eventDTO{Kind: e.Kind.String(), Unit: int(e.Unit), From: toCoord(e.From), To: toCoord(e.To)}
	}
	return out
}
