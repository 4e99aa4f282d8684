package engine

import "strings"

// KeyTracker maintains the ordered set of currently held keyboard keys,
// most-recently-pressed last.
//
// Release pops the most recent press regardless of which key the device
// actually reported released. That matches how people hold modifier chords
// in practice, but overlapping chords released out of order will
// desynchronize the tracker until all keys are up. Known limitation.
type KeyTracker struct {
	held []string
}

// Press records keyID as held. The KEY_ prefix is dropped and the name
// lowercased, so KEY_LEFTCTRL is tracked as "leftctrl".
func (t *KeyTracker) Press(keyID string) {
	t.held = append(t.held, normalizeKey(keyID))
}

// Release removes and returns the most recently pressed key, or "" when
// nothing is held.
func (t *KeyTracker) Release() string {
	if len(t.held) == 0 {
		return ""
	}
	last := t.held[len(t.held)-1]
	t.held = t.held[:len(t.held)-1]
	return last
}

// Label returns the held keys joined with "+" in press order, or "" when
// nothing is held.
func (t *KeyTracker) Label() string {
	return strings.Join(t.held, "+")
}

// Empty reports whether no keys are held.
func (t *KeyTracker) Empty() bool {
	return len(t.held) == 0
}

// Reset clears all held state.
func (t *KeyTracker) Reset() {
	t.held = nil
}

func normalizeKey(keyID string) string {
	return strings.ToLower(strings.TrimPrefix(keyID, "KEY_"))
}
