package cubesim

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubesim/internal/anim"
)

// Option configures RubiksCube behavior.
type Option func(*config)

type config struct {
	turnDuration time.Duration
	logger       logrus.FieldLogger
	onTurn       func(Move)
}

func defaultConfig() *config {
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	return &config{
		turnDuration: anim.DefaultDuration,
		logger:       silent,
	}
}

// WithTurnDuration sets how long one animated quarter turn takes.
// Non-positive durations are ignored.
func WithTurnDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.turnDuration = d
		}
	}
}

// WithLogger sets the logger for turn and frame diagnostics.
// By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTurnCallback registers a callback fired after every committed quarter
// turn, animated or applied instantly.
func WithTurnCallback(cb func(Move)) Option {
	return func(c *config) {
		c.onTurn = cb
	}
}
