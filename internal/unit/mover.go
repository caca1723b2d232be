package unit

import (
	"fmt"

	"github.com/Garsondee/tactics-core/internal/grid"
)

// MoveState is the stepwise movement state of a unit.
type MoveState uint8

const (
	Idle MoveState = iota
	Moving
	Arrived
)

func (s MoveState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case Arrived:
		return "arrived"
	default:
		return fmt.Sprintf("MoveState(%d)", s)
	}
}

// EventKind classifies movement events.
type EventKind uint8

const (
	// EventStarted: the unit left Idle with a path.
	EventStarted EventKind = iota
	// EventEntered: the unit entered the next tile of its path.
	EventEntered
	// EventArrived: the unit entered the last tile of its path.
	EventArrived
	// EventHalted: the next tile was taken and the unit stopped short.
	EventHalted
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventEntered:
		return "entered"
	case EventArrived:
		return "arrived"
	case EventHalted:
		return "halted"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

// Event is emitted by a unit's movement. From and To are the tiles on either
// side of the step; Started carries the origin in both.
type Event struct {
	Kind EventKind
	Unit grid.UnitID
	From grid.Coord
	To   grid.Coord
}

func (e Event) String() string {
	return fmt.Sprintf("unit %d %s %v->%v", e.Unit, e.Kind, e.From, e.To)
}

// Mover walks a path one tile per tick: Idle → Moving → Arrived. Arrived
// returns to Idle on Settle or when a new path starts.
type Mover struct {
	state MoveState
	path  []grid.Coord
	next  int
}

// State returns the current movement state.
func (m *Mover) State() MoveState { return m.state }

// Start loads path (origin excluded). The mover must not be Moving.
func (m *Mover) Start(path []grid.Coord) error {
	if m.state == Moving {
		return ErrAlreadyMoving
	}
	if len(path) == 0 {
		return ErrEmptyPath
	}
	m.path = append(m.path[:0], path...)
	m.next = 0
	m.state = Moving
	return nil
}

// Peek returns the tile the next Advance enters.
func (m *Mover) Peek() (grid.Coord, bool) {
	if m.state != Moving {
		return grid.Coord{}, false
	}
	return m.path[m.next], true
}

// Advance consumes the next tile. arrived is true when it was the last.
func (m *Mover) Advance() (entered grid.Coord, arrived bool) {
	entered = m.path[m.next]
	m.next++
	if m.next == len(m.path) {
		m.state = Arrived
		m.path = m.path[:0]
		return entered, true
	}
	return entered, false
}

// Halt stops the mover where it stands.
func (m *Mover) Halt() {
	if m.state == Moving {
		m.state = Arrived
		m.path = m.path[:0]
	}
}

// Settle returns an Arrived mover to Idle.
func (m *Mover) Settle() {
	if m.state == Arrived {
		m.state = Idle
	}
}

// Remaining returns the tiles still to enter.
func (m *Mover) Remaining() []grid.Coord {
	if m.state != Moving {
		return nil
	}
	out := make([]grid.Coord, len(m.path)-m.next)
	copy(out, m.path[m.next:])
	return out
}
