package cubesim

import (
	"strings"
	"time"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// Re-exported model types.
type (
	Axis  = cube.Axis
	Layer = cube.Layer
	Coord = cube.Coord
	Color = cube.Color
	Net   = cube.Net
)

// Net face indices.
const (
	NetU = cube.U
	NetD = cube.D
	NetF = cube.F
	NetB = cube.B
	NetR = cube.R
	NetL = cube.L
)

// Axes.
const (
	AxisX = cube.X
	AxisY = cube.Y
	AxisZ = cube.Z
)

// Face represents a turnable layer in standard notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back

	FaceM Face = "M" // Middle slice between L and R, turns like L
	FaceE Face = "E" // Equator slice between U and D, turns like D
	FaceS Face = "S" // Standing slice between F and B, turns like F
)

// faceLayers maps each face to its layer and to the direction of a
// clockwise turn looking at that face.
var faceLayers = map[Face]struct {
	layer cube.Layer
	cw    int
}{
	FaceR: {cube.Layer{Axis: cube.X, Slice: 2}, 1},
	FaceL: {cube.Layer{Axis: cube.X, Slice: 0}, -1},
	FaceU: {cube.Layer{Axis: cube.Y, Slice: 2}, 1},
	FaceD: {cube.Layer{Axis: cube.Y, Slice: 0}, -1},
	FaceF: {cube.Layer{Axis: cube.Z, Slice: 2}, 1},
	FaceB: {cube.Layer{Axis: cube.Z, Slice: 0}, -1},
	FaceM: {cube.Layer{Axis: cube.X, Slice: 1}, -1},
	FaceE: {cube.Layer{Axis: cube.Y, Slice: 1}, -1},
	FaceS: {cube.Layer{Axis: cube.Z, Slice: 1}, 1},
}

// faceOrder fixes the lookup order for MoveForTurn.
var faceOrder = []Face{FaceR, FaceL, FaceU, FaceD, FaceF, FaceB, FaceM, FaceE, FaceS}

// Layer returns the layer turned by f.
func (f Face) Layer() (Layer, bool) {
	fl, ok := faceLayers[f]
	return fl.layer, ok
}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Move represents a single cube move with face, turn direction, and optional timestamp.
type Move struct {
	Face Face      // Which layer to turn
	Turn Turn      // Direction and amount
	Time time.Time // When the move occurred (optional)
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
		// Double is its own inverse
	}
	return inv
}

// WithTime returns a copy of the move with the specified timestamp.
func (m Move) WithTime(t time.Time) Move {
	m.Time = t
	return m
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Quarter returns the layer and grid direction of a quarter-turn move.
// Half turns return ErrHalfTurn; split them with Quarters first.
func (m Move) Quarter() (Layer, int, error) {
	fl, ok := faceLayers[m.Face]
	if !ok {
		return Layer{}, 0, ErrInvalidNotation
	}
	switch m.Turn {
	case CW:
		return fl.layer, fl.cw, nil
	case CCW:
		return fl.layer, -fl.cw, nil
	case Double:
		return Layer{}, 0, ErrHalfTurn
	default:
		return Layer{}, 0, ErrInvalidNotation
	}
}

// Quarters splits m into quarter-turn moves: a half turn becomes two
// clockwise quarter turns, anything else is returned as is.
func (m Move) Quarters() []Move {
	if m.Turn == Double {
		q := m
		q.Turn = CW
		return []Move{q, q}
	}
	return []Move{m}
}

// MoveForTurn names a quarter turn of a layer in notation.
func MoveForTurn(l Layer, direction int) Move {
	for _, f := range faceOrder {
		fl := faceLayers[f]
		if fl.layer != l {
			continue
		}
		if direction == fl.cw {
			return Move{Face: f, Turn: CW}
		}
		return Move{Face: f, Turn: CCW}
	}
	return Move{}
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2, M, E', S2
// Returns ErrInvalidNotation if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	// Extract face
	face := Face(strings.ToUpper(s[:1]))
	if _, ok := faceLayers[face]; !ok {
		return Move{}, ErrInvalidNotation
	}

	// Extract turn
	turn := CW // Default is clockwise
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, ErrInvalidNotation
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// The first invalid token aborts parsing.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
