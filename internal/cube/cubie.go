package cube

import "fmt"

// Coord is a grid coordinate with every component in {0,1,2}.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Valid reports whether every component of c is in {0,1,2}.
func (c Coord) Valid() bool {
	return c.X >= 0 && c.X < Size && c.Y >= 0 && c.Y < Size && c.Z >= 0 && c.Z < Size
}

// Component returns the component of c along axis.
func (c Coord) Component(axis Axis) int {
	switch axis {
	case X:
		return c.X
	case Y:
		return c.Y
	default:
		return c.Z
	}
}

// centered returns c relative to the middle cubie.
func (c Coord) centered() Vec {
	return Vec{c.X - 1, c.Y - 1, c.Z - 1}
}

func coordOf(v Vec) Coord {
	return Coord{X: v[0] + 1, Y: v[1] + 1, Z: v[2] + 1}
}

// OnShell reports whether the facelet of a cubie at c facing d is on the
// outside of the cube.
func (c Coord) OnShell(d Direction) bool {
	comp := c.Component(d.Axis())
	if d.Positive() {
		return comp == Size-1
	}
	return comp == 0
}

// Cubie is one of the 27 unit blocks.
type Cubie struct {
	// Home is the slot the cubie occupies when the cube is solved.
	Home Coord
	// Faces[direction] = color currently facing that direction.
	Faces [6]Color
}

// newCubie creates a cubie in its solved orientation.
func newCubie(home Coord) Cubie {
	c := Cubie{Home: home}
	for _, d := range Directions {
		c.Faces[d] = solvedColor(d)
	}
	return c
}

// Color returns the color facing direction d.
func (c Cubie) Color(d Direction) Color {
	return c.Faces[d]
}

// relabel returns the cubie after a quarter turn about axis: each color
// moves to the rotated direction. Directions parallel to axis map to
// themselves under rotate, so their colors stay put.
func (c Cubie) relabel(axis Axis, turn int) Cubie {
	out := c
	for _, d := range Directions {
		out.Faces[directionOf(rotate(d.Vec(), axis, turn))] = c.Faces[d]
	}
	return out
}
