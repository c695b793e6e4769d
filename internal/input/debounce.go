package input

import "time"

// EdgeTrigger turns polled key levels into press edges. Hosts that can
// read whether a key is down each frame call Update once per key per
// frame; it reports true only on the frame the key goes down.
type EdgeTrigger struct {
	down map[string]bool
}

// NewEdgeTrigger creates a trigger with every key up.
func NewEdgeTrigger() *EdgeTrigger {
	return &EdgeTrigger{down: make(map[string]bool)}
}

// Update records the level of key and reports a rising edge.
func (e *EdgeTrigger) Update(key string, pressed bool) bool {
	was := e.down[key]
	if pressed {
		e.down[key] = true
	} else {
		delete(e.down, key)
	}
	return pressed && !was
}

// Held reports whether key was down at the last Update.
func (e *EdgeTrigger) Held(key string) bool {
	return e.down[key]
}

// Reset releases every key.
func (e *EdgeTrigger) Reset() {
	clear(e.down)
}

// DefaultHold covers the initial auto-repeat delay of common terminals.
const DefaultHold = 500 * time.Millisecond

// RepeatFilter debounces event-stream input such as terminal key
// messages, which carry no release event. An event for the same key
// within the hold window of the previous one is treated as auto-repeat.
// Every event, accepted or not, restarts the window, so a key held down
// keeps being filtered.
type RepeatFilter struct {
	hold time.Duration
	last map[string]time.Time
}

// NewRepeatFilter creates a filter. A non-positive hold uses DefaultHold.
func NewRepeatFilter(hold time.Duration) *RepeatFilter {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &RepeatFilter{hold: hold, last: make(map[string]time.Time)}
}

// Accept reports whether the event for key at time at is a fresh press.
func (f *RepeatFilter) Accept(key string, at time.Time) bool {
	prev, seen := f.last[key]
	f.last[key] = at
	if !seen {
		return true
	}
	return at.Sub(prev) >= f.hold
}

// Hold returns the hold window.
func (f *RepeatFilter) Hold() time.Duration {
	return f.hold
}
