package cube

import (
	"errors"
	"fmt"
)

// Size is the number of cubies along each edge.
const Size = 3

var (
	ErrInvalidLayer     = errors.New("cube: invalid layer")
	ErrInvalidDirection = errors.New("cube: invalid turn direction")
)

// Layer selects the 9 cubies whose component along Axis equals Slice.
type Layer struct {
	Axis  Axis
	Slice int
}

// LayerCount is the number of distinct layers (3 axes x 3 slices).
const LayerCount = 9

// LayerByID returns the layer with numeric id axis*3+slice.
func LayerByID(id int) (Layer, error) {
	if id < 0 || id >= LayerCount {
		return Layer{}, fmt.Errorf("%w: id %d", ErrInvalidLayer, id)
	}
	return Layer{Axis: Axis(id / Size), Slice: id % Size}, nil
}

// ID returns the numeric id of l.
func (l Layer) ID() int {
	return int(l.Axis)*Size + l.Slice
}

func (l Layer) String() string {
	return fmt.Sprintf("%s%d", l.Axis, l.Slice)
}

// Validate returns ErrInvalidLayer if the axis or slice is out of range.
func (l Layer) Validate() error {
	if !l.Axis.Valid() {
		return fmt.Errorf("%w: axis %d", ErrInvalidLayer, int(l.Axis))
	}
	if l.Slice < 0 || l.Slice >= Size {
		return fmt.Errorf("%w: slice %d", ErrInvalidLayer, l.Slice)
	}
	return nil
}

// Contains reports whether c lies in the layer.
func (l Layer) Contains(c Coord) bool {
	return c.Component(l.Axis) == l.Slice
}

// ValidateTurn returns ErrInvalidDirection unless turn is +1 or -1.
func ValidateTurn(turn int) error {
	if turn != 1 && turn != -1 {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, turn)
	}
	return nil
}

// SelectLayer returns the 9 coordinates of the layer.
func SelectLayer(l Layer) ([9]Coord, error) {
	var out [9]Coord
	if err := l.Validate(); err != nil {
		return out, err
	}
	i := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for z := 0; z < Size; z++ {
				c := Coord{X: x, Y: y, Z: z}
				if l.Contains(c) {
					out[i] = c
					i++
				}
			}
		}
	}
	return out, nil
}

// RotateCoord returns where a cubie at c lands after a quarter turn about
// axis. The coordinate is recentered on the middle cubie before rotating.
func RotateCoord(c Coord, axis Axis, turn int) Coord {
	return coordOf(rotate(c.centered(), axis, turn))
}

// Grid is the 3x3x3 arrangement of cubies, indexed [x][y][z].
// Grid is a value type: assignment copies the whole cube.
type Grid struct {
	cubies [Size][Size][Size]Cubie
}

// New creates a solved grid with White on top and Green in front.
func New() *Grid {
	g := &Grid{}
	g.Reset()
	return g
}

// Reset returns the grid to the solved state.
func (g *Grid) Reset() {
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for z := 0; z < Size; z++ {
				g.cubies[x][y][z] = newCubie(Coord{X: x, Y: y, Z: z})
			}
		}
	}
}

// Clone creates a copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := *g
	return &clone
}

// Equal reports whether both grids hold the same cubies in the same slots
// with the same orientation.
func (g *Grid) Equal(other *Grid) bool {
	return g.cubies == other.cubies
}

// At returns the cubie in slot c.
func (g *Grid) At(c Coord) Cubie {
	return g.cubies[c.X][c.Y][c.Z]
}

// Each calls fn for every slot in x, y, z order until fn returns false.
func (g *Grid) Each(fn func(Coord, Cubie) bool) {
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for z := 0; z < Size; z++ {
				if !fn(Coord{X: x, Y: y, Z: z}, g.cubies[x][y][z]) {
					return
				}
			}
		}
	}
}

// IsSolved returns true if every face of the cube shows a single color.
// Orientation of the hidden core and of whole-cube rotations is ignored.
func (g *Grid) IsSolved() bool {
	return g.Net().IsSolved()
}

// IsHome returns true if every cubie sits in its home slot with its solved
// orientation, which is the state New returns.
func (g *Grid) IsHome() bool {
	home := true
	g.Each(func(c Coord, cb Cubie) bool {
		home = cb == newCubie(c)
		return home
	})
	return home
}

// Commit applies a quarter turn of layer l to the grid.
// turn: 1 = clockwise seen from the positive end of the axis, -1 = counter-clockwise.
func (g *Grid) Commit(l Layer, turn int) error {
	coords, err := SelectLayer(l)
	if err != nil {
		return err
	}
	if err := ValidateTurn(turn); err != nil {
		return err
	}

	next := g.cubies
	for _, c := range coords {
		to := RotateCoord(c, l.Axis, turn)
		next[to.X][to.Y][to.Z] = g.cubies[c.X][c.Y][c.Z].relabel(l.Axis, turn)
	}
	g.cubies = next
	return nil
}
