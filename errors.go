package cubesim

import (
	"errors"

	"github.com/SeamusWaldron/cubesim/internal/anim"
	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// Sentinel errors for the cubesim package.
var (
	// Turn errors
	ErrInvalidLayer     = cube.ErrInvalidLayer
	ErrInvalidDirection = cube.ErrInvalidDirection
	ErrRotationBusy     = anim.ErrBusy

	// Frame errors
	ErrInvalidTimeDelta = anim.ErrInvalidTimeDelta

	// Parsing errors
	ErrInvalidNotation = errors.New("cubesim: invalid move notation")
	ErrHalfTurn        = errors.New("cubesim: half turns must be split into quarter turns")
)
