package cubesim

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

type countingDrawer struct {
	calls  int
	colors map[mgl32.Vec4]int
}

func (d *countingDrawer) Draw(_ mgl32.Mat4, color mgl32.Vec4) {
	if d.colors == nil {
		d.colors = make(map[mgl32.Vec4]int)
	}
	d.calls++
	d.colors[color]++
}

func tickThrough(t *testing.T, c *RubiksCube, steps int) {
	t.Helper()
	dt := c.TurnDuration() / time.Duration(steps)
	for i := 0; i < steps; i++ {
		require.NoError(t, c.Tick(dt))
	}
}

func TestNewCubeIsSolved(t *testing.T) {
	c := New()
	assert.True(t, c.IsSolved())
	assert.False(t, c.Busy())

	for v := range c.Cubies() {
		assert.Equal(t, v.Coord, v.Home)
		for _, d := range cube.Directions {
			assert.Equal(t, cube.SolvedColor(d), v.Faces[d], "cubie %s direction %s", v.Coord, d)
		}
	}
}

func TestBottomLayerEndToEnd(t *testing.T) {
	c := New()
	bottom := Layer{Axis: AxisY, Slice: 0}

	for turn := 1; turn <= 4; turn++ {
		require.NoError(t, c.BeginRotate(bottom, 1))
		assert.True(t, c.Busy())
		tickThrough(t, c, 10)
		assert.False(t, c.Busy(), "turn %d should have finished", turn)

		if turn == 1 {
			views := map[Coord]CubieView{}
			for v := range c.Cubies() {
				views[v.Coord] = v
			}

			// The +X bottom edge swings round to the front.
			edge := views[Coord{X: 1, Y: 0, Z: 2}]
			assert.Equal(t, Coord{X: 2, Y: 0, Z: 1}, edge.Home)
			assert.Equal(t, cube.Red, edge.Faces[cube.PosZ])
			assert.Equal(t, cube.Yellow, edge.Faces[cube.NegY])

			// The -X-Z corner moves to +X-Z.
			corner := views[Coord{X: 2, Y: 0, Z: 0}]
			assert.Equal(t, Coord{X: 0, Y: 0, Z: 0}, corner.Home)
			assert.Equal(t, cube.Orange, corner.Faces[cube.NegZ])
			assert.Equal(t, cube.Blue, corner.Faces[cube.PosX])

			// Nothing above the layer moved.
			for v := range c.Cubies() {
				if v.Coord.Y > 0 {
					assert.Equal(t, v.Coord, v.Home)
				}
			}
			assert.False(t, c.IsSolved())
		}
	}

	assert.True(t, c.IsSolved())
	for v := range c.Cubies() {
		assert.Equal(t, v.Coord, v.Home)
	}
}

func TestBusyGateLeavesCubeUnchanged(t *testing.T) {
	c := New()
	require.NoError(t, c.BeginRotate(Layer{Axis: AxisX, Slice: 2}, 1))
	require.NoError(t, c.Tick(c.TurnDuration()/3))

	before, ok := c.Active()
	require.True(t, ok)
	net := c.Net()

	err := c.BeginRotate(Layer{Axis: AxisZ, Slice: 0}, -1)
	assert.ErrorIs(t, err, ErrRotationBusy)

	after, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Equal(t, net, c.Net())

	assert.ErrorIs(t, c.Apply(U), ErrRotationBusy)
	assert.ErrorIs(t, c.Reset(), ErrRotationBusy)
}

func TestInvalidLayer(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.BeginRotate(Layer{Axis: AxisY, Slice: 3}, 1), ErrInvalidLayer)
	assert.ErrorIs(t, c.BeginRotate(Layer{Axis: Axis(7), Slice: 0}, 1), ErrInvalidLayer)
	assert.ErrorIs(t, c.BeginRotate(Layer{Axis: AxisY, Slice: 0}, 0), ErrInvalidDirection)
	assert.ErrorIs(t, c.BeginRotateID(9, 1), ErrInvalidLayer)
	assert.False(t, c.Busy())
}

func TestTickZeroIsIdempotent(t *testing.T) {
	c := New()
	require.NoError(t, c.Tick(0))
	assert.False(t, c.Busy())

	require.NoError(t, c.BeginMove(R))
	require.NoError(t, c.Tick(c.TurnDuration()/4))
	a, _ := c.Active()
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Tick(0))
	}
	b, _ := c.Active()
	assert.Equal(t, a.Angle, b.Angle)
}

func TestNegativeTickRejected(t *testing.T) {
	c := New()
	require.NoError(t, c.BeginMove(U))
	require.NoError(t, c.Tick(c.TurnDuration()/2))
	a, _ := c.Active()

	assert.ErrorIs(t, c.Tick(-time.Millisecond), ErrInvalidTimeDelta)
	assert.ErrorIs(t, c.TickSeconds(-0.01), ErrInvalidTimeDelta)

	b, ok := c.Active()
	require.True(t, ok)
	assert.InDelta(t, a.Angle, b.Angle, 1e-9)
	assert.InDelta(t, 45.0, b.Angle, 1e-9)
}

func TestFirstTickAdvancesSameFrame(t *testing.T) {
	c := New()
	require.NoError(t, c.BeginMove(F))
	require.NoError(t, c.Tick(16*time.Millisecond))
	a, ok := c.Active()
	require.True(t, ok)
	assert.Greater(t, a.Angle, 0.0)
	assert.Equal(t, F, a.Move)
}

func TestCubiesIteratorIsRestartable(t *testing.T) {
	c := New()
	require.NoError(t, c.BeginMove(R))
	require.NoError(t, c.Tick(c.TurnDuration()/2))

	seq := c.Cubies()
	for pass := 0; pass < 2; pass++ {
		total, moving := 0, 0
		seen := map[Coord]bool{}
		for v := range seq {
			total++
			seen[v.Coord] = true
			if v.Moving {
				moving++
				assert.Equal(t, 2, v.Coord.X)
			}
		}
		assert.Equal(t, 27, total)
		assert.Len(t, seen, 27)
		assert.Equal(t, 9, moving)
	}

	// Early break stops the sequence.
	n := 0
	for range seq {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestIterateDoesNotMutate(t *testing.T) {
	c := New()
	require.NoError(t, c.ApplyNotation("R U F'"))
	require.NoError(t, c.BeginMove(D))
	require.NoError(t, c.Tick(c.TurnDuration()/3))

	net := c.Net()
	for range c.Cubies() {
	}
	c.Draw(&countingDrawer{})
	assert.Equal(t, net, c.Net())
}

func TestDrawVisibleFacelets(t *testing.T) {
	c := New()
	d := &countingDrawer{}
	assert.Equal(t, 54, c.Draw(d))
	assert.Equal(t, 54, d.calls)
	assert.Len(t, d.colors, 6)
	for _, n := range d.colors {
		assert.Equal(t, 9, n)
	}

	require.NoError(t, c.BeginMove(L))
	require.NoError(t, c.Tick(c.TurnDuration()/2))
	assert.Equal(t, 54, c.Draw(&countingDrawer{}))
}

func TestSnapCommitsWholeTurn(t *testing.T) {
	c := New()
	require.NoError(t, c.BeginMove(R))
	require.NoError(t, c.Tick(c.TurnDuration()/5))
	require.NoError(t, c.Snap())
	assert.False(t, c.Busy())

	want := New()
	require.NoError(t, want.Apply(R))
	assert.Equal(t, want.Net(), c.Net())
}

func TestApplySexyMoveSixTimes(t *testing.T) {
	c := New()
	for i := 0; i < 6; i++ {
		require.NoError(t, c.Apply(SexyMove...))
		if i < 5 {
			assert.False(t, c.IsSolved(), "iteration %d", i)
		}
	}
	assert.True(t, c.IsSolved())
}

func TestApplyMatchesAnimation(t *testing.T) {
	for _, m := range append(append([]Move{}, Commands...), SliceCommands...) {
		t.Run(m.Notation(), func(t *testing.T) {
			animated := New()
			require.NoError(t, animated.BeginMove(m))
			tickThrough(t, animated, 4)

			instant := New()
			require.NoError(t, instant.Apply(m))
			assert.Equal(t, instant.Net(), animated.Net())
		})
	}
}

func TestTurnCallback(t *testing.T) {
	var got []Move
	c := New(WithTurnCallback(func(m Move) { got = append(got, m) }))

	require.NoError(t, c.Apply(R2, UPrime))
	require.NoError(t, c.BeginMove(M))
	tickThrough(t, c, 2)

	require.Len(t, got, 4)
	assert.Equal(t, "R R U' M", FormatMoves(got))
	assert.False(t, got[0].Time.IsZero())
}

func TestWithTurnDuration(t *testing.T) {
	c := New(WithTurnDuration(100 * time.Millisecond))
	assert.Equal(t, 100*time.Millisecond, c.TurnDuration())

	c = New(WithTurnDuration(-time.Second))
	assert.Equal(t, 250*time.Millisecond, c.TurnDuration())

	c = New(WithTurnDuration(100 * time.Millisecond))
	require.NoError(t, c.BeginMove(U))
	require.NoError(t, c.TickSeconds(0.1))
	assert.False(t, c.Busy())
}

func TestResetAfterScramble(t *testing.T) {
	c := New()
	require.NoError(t, c.Apply(TPerm...))
	assert.False(t, c.IsSolved())
	require.NoError(t, c.Reset())
	assert.True(t, c.IsSolved())
}

func TestFrontFaceColorsOnNet(t *testing.T) {
	c := New()
	require.NoError(t, c.Apply(R))
	net := c.Net()
	// R lifts the front's right column onto U.
	assert.Equal(t, cube.Green, net.Facelets[NetU][2])
	assert.Equal(t, cube.Green, net.Facelets[NetU][5])
	assert.Equal(t, cube.Green, net.Facelets[NetU][8])
	assert.Equal(t, cube.Yellow, net.Facelets[NetF][8])
}

func TestTickSecondsAtSixtyHertzCompletesTurn(t *testing.T) {
	c := New()
	require.NoError(t, c.BeginRotate(Layer{Axis: AxisY, Slice: 0}, 1))
	for i := 0; i < 15; i++ {
		require.NoError(t, c.TickSeconds(1.0/60.0))
	}
	assert.False(t, c.Busy())

	want := New()
	require.NoError(t, want.BeginRotate(Layer{Axis: AxisY, Slice: 0}, 1))
	require.NoError(t, want.Snap())
	assert.Equal(t, want.Net(), c.Net())
}
