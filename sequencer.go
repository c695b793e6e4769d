package cubesim

import "errors"

// Sequencer feeds scripted moves to a RubiksCube one quarter turn at a
// time, starting the next turn only once the previous one has finished.
// It is host-side plumbing for scrambles, replays and smart-cube input;
// RubiksCube itself drops turns requested mid-animation.
type Sequencer struct {
	pending []Move
}

// NewSequencer creates an empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Push appends moves to the script. Half turns are split into two quarter
// turns.
func (s *Sequencer) Push(moves ...Move) {
	for _, m := range moves {
		s.pending = append(s.pending, m.Quarters()...)
	}
}

// Len returns the number of quarter turns still to play.
func (s *Sequencer) Len() int {
	return len(s.pending)
}

// Clear drops every pending move.
func (s *Sequencer) Clear() {
	s.pending = nil
}

// Pending returns a copy of the remaining quarter turns.
func (s *Sequencer) Pending() []Move {
	out := make([]Move, len(s.pending))
	copy(out, s.pending)
	return out
}

// Feed starts the next pending turn if the cube is idle. It reports
// whether a turn was started. Call it once per frame before Tick.
// A move the cube rejects as invalid is dropped and its error returned.
func (s *Sequencer) Feed(c *RubiksCube) (bool, error) {
	if len(s.pending) == 0 || c.Busy() {
		return false, nil
	}
	next := s.pending[0]
	err := c.BeginMove(next)
	if errors.Is(err, ErrRotationBusy) {
		return false, nil
	}
	s.pending = s.pending[1:]
	if err != nil {
		return false, err
	}
	return true, nil
}
