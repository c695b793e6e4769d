package cube

import "strings"

// Face identifies one side of the cube in a facelet net.
type Face int

const (
	U Face = 0 // Up (White)
	D Face = 1 // Down (Yellow)
	F Face = 2 // Front (Green)
	B Face = 3 // Back (Blue)
	R Face = 4 // Right (Red)
	L Face = 5 // Left (Orange)
)

// Faces lists the net faces in index order.
var Faces = [6]Face{U, D, F, B, R, L}

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case F:
		return "F"
	case B:
		return "B"
	case R:
		return "R"
	case L:
		return "L"
	default:
		return "?"
	}
}

// Direction returns the outward direction of f.
func (f Face) Direction() Direction {
	switch f {
	case U:
		return PosY
	case D:
		return NegY
	case F:
		return PosZ
	case B:
		return NegZ
	case R:
		return PosX
	default:
		return NegX
	}
}

// Slot returns the grid coordinate behind facelet index i (0..8) of face f.
// Faces are laid out row-major as seen looking straight at them with Up at
// the top (for U: Back at the top, for D: Front at the top):
//
//	0 1 2
//	3 4 5
//	6 7 8
func (f Face) Slot(i int) Coord {
	row, col := i/Size, i%Size
	switch f {
	case U:
		return Coord{X: col, Y: 2, Z: row}
	case D:
		return Coord{X: col, Y: 0, Z: 2 - row}
	case F:
		return Coord{X: col, Y: 2 - row, Z: 2}
	case B:
		return Coord{X: 2 - col, Y: 2 - row, Z: 0}
	case R:
		return Coord{X: 2, Y: 2 - row, Z: 2 - col}
	default:
		return Coord{X: 0, Y: 2 - row, Z: col}
	}
}

// Net is the visible surface of the cube: Facelets[face][position] = color.
type Net struct {
	Facelets [6][9]Color
}

// Net projects the grid onto its six visible faces.
func (g *Grid) Net() Net {
	var n Net
	for _, f := range Faces {
		d := f.Direction()
		for i := 0; i < 9; i++ {
			n.Facelets[f][i] = g.At(f.Slot(i)).Color(d)
		}
	}
	return n
}

// IsSolved returns true if each face shows a single color.
func (n Net) IsSolved() bool {
	for _, f := range Faces {
		for i := 1; i < 9; i++ {
			if n.Facelets[f][i] != n.Facelets[f][0] {
				return false
			}
		}
	}
	return true
}

// Count returns how many visible facelets show color c.
func (n Net) Count(c Color) int {
	count := 0
	for _, f := range Faces {
		for _, fc := range n.Facelets[f] {
			if fc == c {
				count++
			}
		}
	}
	return count
}

// String returns a text representation of the net:
//
//	      U
//	L F R B
//	      D
func (n Net) String() string {
	var sb strings.Builder

	writeRow := func(face Face, row int) {
		for col := 0; col < Size; col++ {
			sb.WriteString(n.Facelets[face][row*Size+col].String())
			sb.WriteByte(' ')
		}
	}

	for row := 0; row < Size; row++ {
		sb.WriteString("      ")
		writeRow(U, row)
		sb.WriteByte('\n')
	}
	for row := 0; row < Size; row++ {
		for _, face := range []Face{L, F, R, B} {
			writeRow(face, row)
		}
		sb.WriteByte('\n')
	}
	for row := 0; row < Size; row++ {
		sb.WriteString("      ")
		writeRow(D, row)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// String returns the text net of the grid.
func (g *Grid) String() string {
	return g.Net().String()
}
