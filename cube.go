package cubesim

import (
	"fmt"
	"iter"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubesim/internal/anim"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/render"
)

// Drawer is the draw primitive of the graphics host. It receives one call
// per visible facelet with the facelet's model transform and RGBA color.
type Drawer interface {
	Draw(model mgl32.Mat4, color mgl32.Vec4)
}

// CubieView is what a render pass needs to know about one cubie.
type CubieView struct {
	Coord Coord      // Slot the cubie rests in
	Home  Coord      // Slot the cubie occupies when solved
	Model mgl32.Mat4 // Resting transform, or the transient one while its layer turns
	Faces [6]Color   // Colors indexed by outward direction +X,-X,+Y,-Y,+Z,-Z
	// Moving is set while the cubie's layer is animating.
	Moving bool
}

// ActiveTurn describes the turn currently animating.
type ActiveTurn struct {
	Move      Move
	Layer     Layer
	Direction int
	Angle     float64 // degrees swept so far
}

// RubiksCube is an animated 3x3x3 cube. The logical state changes only when
// a turn finishes animating (or is applied instantly); in between, the
// turning layer is drawn with a transient rotation.
//
// A RubiksCube is not safe for concurrent use. The host owns it and drives
// it from its frame loop.
type RubiksCube struct {
	grid   *cube.Grid
	engine *anim.Engine
	config *config
	log    logrus.FieldLogger
}

// New creates a solved cube with no turn in progress.
func New(opts ...Option) *RubiksCube {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &RubiksCube{
		grid:   cube.New(),
		config: cfg,
		log:    cfg.logger,
	}
	engine, err := anim.New(cfg.turnDuration, c.commit)
	if err != nil {
		c.log.WithError(err).Warn("using default turn duration")
		engine, _ = anim.New(anim.DefaultDuration, c.commit)
	}
	c.engine = engine
	return c
}

// commit is the only path that mutates the grid.
func (c *RubiksCube) commit(t anim.Turn) error {
	if err := c.grid.Commit(t.Layer, t.Direction); err != nil {
		return err
	}
	move := MoveForTurn(t.Layer, t.Direction).WithTime(time.Now())
	c.log.WithFields(logrus.Fields{
		"layer":     t.Layer.String(),
		"direction": t.Direction,
		"move":      move.Notation(),
	}).Debug("turn committed")
	if c.config.onTurn != nil {
		c.config.onTurn(move)
	}
	return nil
}

// BeginRotate starts animating a quarter turn of layer. direction +1 turns
// clockwise as seen from the positive end of the layer's axis.
// It returns ErrRotationBusy while another turn is animating; the request
// is dropped and the cube is left unchanged.
func (c *RubiksCube) BeginRotate(layer Layer, direction int) error {
	if err := c.engine.Begin(anim.Turn{Layer: layer, Direction: direction}); err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{
		"layer":     layer.String(),
		"direction": direction,
	}).Debug("turn started")
	return nil
}

// BeginRotateID is BeginRotate with a numeric layer id (axis*3 + slice).
func (c *RubiksCube) BeginRotateID(id int, direction int) error {
	layer, err := cube.LayerByID(id)
	if err != nil {
		return err
	}
	return c.BeginRotate(layer, direction)
}

// BeginMove starts animating a quarter-turn move.
// Half turns return ErrHalfTurn: feed them through a Sequencer.
func (c *RubiksCube) BeginMove(m Move) error {
	layer, dir, err := m.Quarter()
	if err != nil {
		return fmt.Errorf("%s: %w", m.Notation(), err)
	}
	return c.BeginRotate(layer, dir)
}

// Tick advances the animating turn by the frame time dt, committing it
// once it has swept 90 degrees. Tick is a no-op when idle or when dt is
// zero. A negative dt returns ErrInvalidTimeDelta and leaves the turn as
// it was.
func (c *RubiksCube) Tick(dt time.Duration) error {
	_, err := c.engine.Tick(dt)
	if err != nil {
		c.log.WithError(err).WithField("dt", dt).Error("rejected frame time")
	}
	return err
}

// TickSeconds is Tick for hosts that measure frame time in float seconds.
// NaN, infinite and negative values return ErrInvalidTimeDelta.
func (c *RubiksCube) TickSeconds(dt float64) error {
	_, err := c.engine.TickSeconds(dt)
	if err != nil {
		c.log.WithError(err).WithField("dt", dt).Error("rejected frame time")
	}
	return err
}

// Snap finishes the animating turn immediately, committing all of it.
func (c *RubiksCube) Snap() error {
	_, err := c.engine.Snap()
	return err
}

// Busy returns true while a turn is animating.
func (c *RubiksCube) Busy() bool {
	return c.engine.State() == anim.InProgress
}

// Active returns the turn currently animating, if any.
func (c *RubiksCube) Active() (ActiveTurn, bool) {
	t, ok := c.engine.Active()
	if !ok {
		return ActiveTurn{}, false
	}
	return ActiveTurn{
		Move:      MoveForTurn(t.Layer, t.Direction),
		Layer:     t.Layer,
		Direction: t.Direction,
		Angle:     c.engine.Angle(),
	}, true
}

// TurnDuration returns how long one animated quarter turn takes.
func (c *RubiksCube) TurnDuration() time.Duration {
	return c.engine.Duration()
}

// Apply commits moves instantly, without animation. It returns
// ErrRotationBusy if a turn is animating. Moves before an invalid one stay
// applied.
func (c *RubiksCube) Apply(moves ...Move) error {
	if c.Busy() {
		return ErrRotationBusy
	}
	for _, m := range moves {
		for _, q := range m.Quarters() {
			layer, dir, err := q.Quarter()
			if err != nil {
				return fmt.Errorf("%s: %w", m.Notation(), err)
			}
			if err := c.commit(anim.Turn{Layer: layer, Direction: dir}); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyNotation parses and applies a notation string such as "R U R' U'".
func (c *RubiksCube) ApplyNotation(notation string) error {
	moves, err := ParseMoves(notation)
	if err != nil {
		return err
	}
	return c.Apply(moves...)
}

// Reset returns the cube to the solved state. It returns ErrRotationBusy
// if a turn is animating.
func (c *RubiksCube) Reset() error {
	if c.Busy() {
		return ErrRotationBusy
	}
	c.grid.Reset()
	return nil
}

// IsSolved returns true if each face shows a single color.
func (c *RubiksCube) IsSolved() bool {
	return c.grid.IsSolved()
}

// Net returns the visible facelets, Facelets[face][position], with faces
// ordered U, D, F, B, R, L.
func (c *RubiksCube) Net() Net {
	return c.grid.Net()
}

// String returns a text net of the cube.
func (c *RubiksCube) String() string {
	return c.grid.String()
}

// Cubies returns the 27 cubies with their current transforms. The sequence
// reads the cube when iterated, so one value can be ranged over every frame.
func (c *RubiksCube) Cubies() iter.Seq[CubieView] {
	return func(yield func(CubieView) bool) {
		turn, moving := c.engine.Active()
		angle := c.engine.Angle()
		c.grid.Each(func(at cube.Coord, cb cube.Cubie) bool {
			v := CubieView{
				Coord: at,
				Home:  cb.Home,
				Model: render.Resting(at),
				Faces: cb.Faces,
			}
			if moving && turn.Layer.Contains(at) {
				v.Model = render.Transient(at, turn.Layer.Axis, turn.Direction, angle)
				v.Moving = true
			}
			return yield(v)
		})
	}
}

// Draw issues one draw call per visible facelet and returns the count.
func (c *RubiksCube) Draw(d Drawer) int {
	n := 0
	for v := range c.Cubies() {
		n += render.DrawCubie(d, v.Coord, v.Model, v.Faces)
	}
	return n
}
