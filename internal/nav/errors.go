package nav

import "errors"

// ErrInvalidInput is returned for coordinates off the board and negative
// budgets. Not finding a route is not an error.
var ErrInvalidInput = errors.New("nav: invalid input")
