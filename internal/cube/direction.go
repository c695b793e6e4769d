package cube

import "fmt"

// Axis is one of the three cube axes. +X points right, +Y up, +Z towards
// the viewer (front).
type Axis int

const (
	X Axis = 0
	Y Axis = 1
	Z Axis = 2
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid reports whether a is X, Y or Z.
func (a Axis) Valid() bool {
	return a >= X && a <= Z
}

// Direction is an outward facelet direction.
type Direction int

const (
	PosX Direction = 0 // Right
	NegX Direction = 1 // Left
	PosY Direction = 2 // Up
	NegY Direction = 3 // Down
	PosZ Direction = 4 // Front
	NegZ Direction = 5 // Back
)

// Directions lists the six outward directions in index order.
var Directions = [6]Direction{PosX, NegX, PosY, NegY, PosZ, NegZ}

func (d Direction) String() string {
	switch d {
	case PosX:
		return "+X"
	case NegX:
		return "-X"
	case PosY:
		return "+Y"
	case NegY:
		return "-Y"
	case PosZ:
		return "+Z"
	case NegZ:
		return "-Z"
	default:
		return "?"
	}
}

// Axis returns the axis d is parallel to.
func (d Direction) Axis() Axis {
	return Axis(d / 2)
}

// Positive reports whether d points along the positive end of its axis.
func (d Direction) Positive() bool {
	return d%2 == 0
}

// Vec returns the unit vector of d.
func (d Direction) Vec() Vec {
	var v Vec
	if d.Positive() {
		v[d.Axis()] = 1
	} else {
		v[d.Axis()] = -1
	}
	return v
}

// directionOf maps a unit vector back to its direction.
func directionOf(v Vec) Direction {
	for a := X; a <= Z; a++ {
		switch v[a] {
		case 1:
			return Direction(a * 2)
		case -1:
			return Direction(a*2 + 1)
		}
	}
	panic(fmt.Sprintf("cube: %v is not a unit axis vector", v))
}

// Vec is an integer 3-vector.
type Vec [3]int

// rotate turns v a quarter turn about axis. turn +1 is clockwise seen from
// the positive end of the axis: the orthogonal components (u, v), taken in
// cyclic order (X: y,z  Y: z,x  Z: x,y), map to (v, -u). turn -1 maps them
// to (-v, u).
//
// Both slot coordinates and facelet directions go through this function,
// so the cubie permutation and the color permutation share one sign.
func rotate(p Vec, axis Axis, turn int) Vec {
	ui := (axis + 1) % 3
	vi := (axis + 2) % 3
	u, v := p[ui], p[vi]
	out := p
	if turn > 0 {
		out[ui], out[vi] = v, -u
	} else {
		out[ui], out[vi] = -v, u
	}
	return out
}
