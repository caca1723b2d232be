package tactics

import "errors"

var (
	ErrUnknownUnit = errors.New("tactics: unknown unit")
	ErrOccupied    = errors.New("tactics: tile occupied")
	ErrUnreachable = errors.New("tactics: destination outside movement area")
	ErrNotWalkable = errors.New("tactics: terrain not walkable")
)
