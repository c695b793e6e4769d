package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// FaceletScale shrinks each sticker inside its cubie face so the gaps
// between cubies stay visible.
const FaceletScale = 0.92

// Drawer is the draw primitive of the graphics host. The quad it draws is
// the unit square centered at (0, 0, 0.5) facing +Z.
type Drawer interface {
	Draw(model mgl32.Mat4, color mgl32.Vec4)
}

// DrawerFunc adapts a function to Drawer.
type DrawerFunc func(model mgl32.Mat4, color mgl32.Vec4)

// Draw calls f.
func (f DrawerFunc) Draw(model mgl32.Mat4, color mgl32.Vec4) {
	f(model, color)
}

// AxisVec returns the unit vector of a cube axis.
func AxisVec(a cube.Axis) mgl32.Vec3 {
	switch a {
	case cube.X:
		return mgl32.Vec3{1, 0, 0}
	case cube.Y:
		return mgl32.Vec3{0, 1, 0}
	default:
		return mgl32.Vec3{0, 0, 1}
	}
}

// Normal returns the unit vector of an outward direction.
func Normal(d cube.Direction) mgl32.Vec3 {
	v := d.Vec()
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Resting returns the model transform of a cubie sitting in slot c, with
// the cube centered on the origin.
func Resting(c cube.Coord) mgl32.Mat4 {
	return mgl32.Translate3D(float32(c.X-1), float32(c.Y-1), float32(c.Z-1))
}

// LayerRotation returns the rotation of a layer swept angle degrees into a
// turn. A +1 turn is clockwise seen from the positive end of the axis,
// which is a negative right-handed angle.
func LayerRotation(axis cube.Axis, direction int, angle float64) mgl32.Mat4 {
	rad := mgl32.DegToRad(float32(-float64(direction) * angle))
	return mgl32.HomogRotate3D(rad, AxisVec(axis))
}

// Transient returns the model transform of a cubie in slot c while its
// layer is angle degrees into a turn.
func Transient(c cube.Coord, axis cube.Axis, direction int, angle float64) mgl32.Mat4 {
	return LayerRotation(axis, direction, angle).Mul4(Resting(c))
}

// orient turns the +Z facing quad to face d.
func orient(d cube.Direction) mgl32.Mat4 {
	const quarter = math.Pi / 2
	switch d {
	case cube.PosX:
		return mgl32.HomogRotate3DY(quarter)
	case cube.NegX:
		return mgl32.HomogRotate3DY(-quarter)
	case cube.PosY:
		return mgl32.HomogRotate3DX(-quarter)
	case cube.NegY:
		return mgl32.HomogRotate3DX(quarter)
	case cube.NegZ:
		return mgl32.HomogRotate3DY(math.Pi)
	default:
		return mgl32.Ident4()
	}
}

// Facelet returns the model transform of the sticker facing d on a cubie
// with transform model.
func Facelet(model mgl32.Mat4, d cube.Direction) mgl32.Mat4 {
	return model.Mul4(orient(d)).Mul4(mgl32.Scale3D(FaceletScale, FaceletScale, 1))
}

// DrawCubie draws every sticker of a cubie resting in slot at that is on
// the outside of the cube. It returns the number of draws issued.
func DrawCubie(d Drawer, at cube.Coord, model mgl32.Mat4, faces [6]cube.Color) int {
	n := 0
	for _, dir := range cube.Directions {
		if !at.OnShell(dir) {
			continue
		}
		d.Draw(Facelet(model, dir), ColorOf(faces[dir]))
		n++
	}
	return n
}
