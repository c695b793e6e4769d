// Package cube provides the 3x3x3 cubie model of a Rubik's cube: colors,
// cubies, the grid that holds them and the quarter-turn permutation.
package cube

// Color represents a facelet color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

// Colors lists every facelet color in declaration order.
var Colors = [6]Color{White, Yellow, Green, Blue, Red, Orange}

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Name returns the lower-case color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Orange:
		return "orange"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the six facelet colors.
func (c Color) Valid() bool {
	return c <= Orange
}

// solvedColor returns the color shown in direction d on a solved cube.
// The table is keyed by outward direction only, never by position.
func solvedColor(d Direction) Color {
	switch d {
	case PosX:
		return Red
	case NegX:
		return Orange
	case PosY:
		return White
	case NegY:
		return Yellow
	case PosZ:
		return Green
	case NegZ:
		return Blue
	default:
		return White
	}
}

// SolvedColor returns the color facing direction d when the cube is solved.
func SolvedColor(d Direction) Color {
	return solvedColor(d)
}
