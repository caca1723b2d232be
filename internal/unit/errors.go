package unit

import "errors"

var (
	ErrDuplicateUnit = errors.New("unit: duplicate id")
	ErrAlreadyMoving = errors.New("unit: already moving")
	ErrEmptyPath     = errors.New("unit: empty path")
	ErrBrokenPath    = errors.New("unit: path is not a chain of adjacent tiles")
	ErrNoMovePoints  = errors.New("unit: not enough movement points")
	ErrDead          = errors.New("unit: dead")
)
