// Package anim drives quarter-turn animations. An Engine holds at most one
// turn in flight, advances it from per-frame time deltas and hands the turn
// back to its owner for commit once the layer has swept the full 90 degrees.
package anim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// QuarterTurn is the sweep of one turn in degrees.
const QuarterTurn = 90.0

// DefaultDuration is how long a quarter turn takes unless configured.
const DefaultDuration = 250 * time.Millisecond

var (
	ErrBusy             = errors.New("anim: rotation in progress")
	ErrInvalidTimeDelta = errors.New("anim: invalid time delta")
	ErrInvalidDuration  = errors.New("anim: turn duration must be positive")
)

// State is the engine state.
type State int

const (
	Idle State = iota
	InProgress
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

// Turn is a quarter turn of one layer. Direction is +1 or -1.
type Turn struct {
	Layer     cube.Layer
	Direction int
}

func (t Turn) String() string {
	sign := "+"
	if t.Direction < 0 {
		sign = "-"
	}
	return t.Layer.String() + sign
}

// Frame is the engine state after one tick.
type Frame struct {
	Turn  Turn
	Angle float64 // degrees swept so far, in [0, 90]
	// Done is set on the tick that completed and committed Turn.
	Done bool
}

// CommitFunc applies a finished turn to the logical cube.
type CommitFunc func(Turn) error

// Engine is the Idle / InProgress state machine for one layer animation.
// It never mutates cube state itself; commit is called exactly once per
// turn, when the sweep reaches 90 degrees.
type Engine struct {
	duration time.Duration
	commit   CommitFunc

	state   State
	turn    Turn
	elapsed time.Duration
}

// New creates an idle engine. duration is the time a quarter turn takes.
func New(duration time.Duration, commit CommitFunc) (*Engine, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	return &Engine{
		duration: duration,
		commit:   commit,
	}, nil
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Duration returns the time a quarter turn takes.
func (e *Engine) Duration() time.Duration {
	return e.duration
}

// Active returns the turn in flight, if any.
func (e *Engine) Active() (Turn, bool) {
	return e.turn, e.state == InProgress
}

// Angle returns the degrees swept by the turn in flight, 0 when idle.
func (e *Engine) Angle() float64 {
	if e.state != InProgress {
		return 0
	}
	if e.elapsed >= e.duration {
		return QuarterTurn
	}
	return QuarterTurn * float64(e.elapsed) / float64(e.duration)
}

// Progress returns the completed fraction of the turn in flight.
func (e *Engine) Progress() float64 {
	return e.Angle() / QuarterTurn
}

// Begin starts animating t. It returns ErrBusy if a turn is in flight;
// the engine is left untouched in that case.
func (e *Engine) Begin(t Turn) error {
	if e.state == InProgress {
		return fmt.Errorf("%w: %v", ErrBusy, e.turn)
	}
	if err := t.Layer.Validate(); err != nil {
		return err
	}
	if err := cube.ValidateTurn(t.Direction); err != nil {
		return err
	}
	e.state = InProgress
	e.turn = t
	e.elapsed = 0
	return nil
}

// Tick advances the turn in flight by dt. When the sweep reaches 90
// degrees the turn is committed and the engine returns to Idle. A zero dt
// changes nothing. Ticking an idle engine is a no-op.
func (e *Engine) Tick(dt time.Duration) (Frame, error) {
	if dt < 0 {
		return e.frame(), fmt.Errorf("%w: %v", ErrInvalidTimeDelta, dt)
	}
	if e.state != InProgress {
		return Frame{}, nil
	}

	// elapsed is clamped so the sweep never overshoots.
	if dt >= e.duration-e.elapsed {
		e.elapsed = e.duration
	} else {
		e.elapsed += dt
	}

	if e.elapsed < e.duration {
		return e.frame(), nil
	}
	return e.finish()
}

// TickSeconds is Tick for hosts that measure frame time in float seconds.
// NaN, infinite and negative values are rejected without touching state.
func (e *Engine) TickSeconds(dt float64) (Frame, error) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return e.frame(), fmt.Errorf("%w: %v", ErrInvalidTimeDelta, dt)
	}
	if dt >= e.duration.Seconds() {
		return e.Tick(e.duration)
	}
	// Rounded so frame times summing to the duration complete the turn.
	return e.Tick(time.Duration(math.Round(dt * float64(time.Second))))
}

// Snap completes the turn in flight immediately. The full permutation is
// committed; a turn is never left half applied.
func (e *Engine) Snap() (Frame, error) {
	if e.state != InProgress {
		return Frame{}, nil
	}
	e.elapsed = e.duration
	return e.finish()
}

func (e *Engine) finish() (Frame, error) {
	t := e.turn
	if e.commit != nil {
		if err := e.commit(t); err != nil {
			return e.frame(), fmt.Errorf("commit %v: %w", t, err)
		}
	}
	e.state = Idle
	e.turn = Turn{}
	e.elapsed = 0
	return Frame{Turn: t, Angle: QuarterTurn, Done: true}, nil
}

func (e *Engine) frame() Frame {
	if e.state != InProgress {
		return Frame{}
	}
	return Frame{Turn: e.turn, Angle: e.Angle()}
}
