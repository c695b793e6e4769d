// Package input maps key presses to turn commands and debounces them so a
// held key starts at most one turn.
package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/SeamusWaldron/cubesim"
)

// ErrHalfTurn is returned when a key is bound to a half turn. A key press
// is one quarter turn.
var ErrHalfTurn = errors.New("input: key bound to a half turn")

// Keymap binds key names to quarter-turn moves.
type Keymap struct {
	bindings map[string]cubesim.Move
}

// DefaultKeymap binds r l u d f b m e s to clockwise turns and their
// upper case letters to counter-clockwise turns.
func DefaultKeymap() *Keymap {
	k := &Keymap{bindings: make(map[string]cubesim.Move)}
	for _, m := range append(append([]cubesim.Move{}, cubesim.Commands...), cubesim.SliceCommands...) {
		key := strings.ToLower(string(m.Face))
		if m.Turn == cubesim.CCW {
			key = strings.ToUpper(key)
		}
		k.bindings[key] = m
	}
	return k
}

// Bind maps key to m, replacing any previous binding.
func (k *Keymap) Bind(key string, m cubesim.Move) error {
	if key == "" {
		return fmt.Errorf("input: empty key for %s", m)
	}
	if _, _, err := m.Quarter(); err != nil {
		if errors.Is(err, cubesim.ErrHalfTurn) {
			return fmt.Errorf("%w: %s = %s", ErrHalfTurn, key, m)
		}
		return fmt.Errorf("input: bind %q: %w", key, err)
	}
	k.bindings[key] = m
	return nil
}

// Unbind removes the binding for key.
func (k *Keymap) Unbind(key string) {
	delete(k.bindings, key)
}

// Lookup returns the move bound to key.
func (k *Keymap) Lookup(key string) (cubesim.Move, bool) {
	m, ok := k.bindings[key]
	return m, ok
}

// Len returns the number of bound keys.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Keys returns the bound keys in sorted order.
func (k *Keymap) Keys() []string {
	keys := make([]string, 0, len(k.bindings))
	for key := range k.bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Override applies key -> notation pairs on top of the current bindings.
// An empty notation unbinds the key.
func (k *Keymap) Override(keys map[string]string) error {
	for key, notation := range keys {
		if strings.TrimSpace(notation) == "" {
			k.Unbind(key)
			continue
		}
		m, err := cubesim.ParseMove(notation)
		if err != nil {
			return fmt.Errorf("input: key %q: %w", key, err)
		}
		if err := k.Bind(key, m); err != nil {
			return err
		}
	}
	return nil
}

// Help returns one "key=move" entry per binding, sorted by key.
func (k *Keymap) Help() string {
	var b strings.Builder
	for i, key := range k.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", key, k.bindings[key])
	}
	return b.String()
}

type keymapFile struct {
	Keys map[string]string `toml:"keys"`
}

// ParseKeymap reads a TOML document with a [keys] table and applies it
// over the default keymap.
//
//	[keys]
//	j = "U"
//	J = "U'"
//	m = ""
func ParseKeymap(data []byte) (*Keymap, error) {
	var f keymapFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("input: parse keymap: %w", err)
	}
	k := DefaultKeymap()
	if err := k.Override(f.Keys); err != nil {
		return nil, err
	}
	return k, nil
}
