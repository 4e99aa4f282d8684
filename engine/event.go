package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Event names emitted by `libinput debug-events` that the engine consumes.
// Everything else on the stream (DEVICE_ADDED, POINTER_MOTION, ...) is noise.
const (
	EvKeyboardKey = "KEYBOARD_KEY"
	EvPointerBtn  = "POINTER_BUTTON"
	EvSwipeBegin  = "GESTURE_SWIPE_BEGIN"
	EvSwipeUpdate = "GESTURE_SWIPE_UPDATE"
	EvSwipeEnd    = "GESTURE_SWIPE_END"
	EvPinchBegin  = "GESTURE_PINCH_BEGIN"
	EvPinchUpdate = "GESTURE_PINCH_UPDATE"
	EvPinchEnd    = "GESTURE_PINCH_END"
)

// RawEvent is one tokenized line from the device event stream.
type RawEvent struct {
	Device  string   // kernel node tag, e.g. "event7"
	Name    string   // event name, e.g. "GESTURE_SWIPE_UPDATE"
	Time    float64  // seconds since the stream started
	Primary string   // finger count, KEY_* name, or BTN_* name
	Params  []string // remaining tokens on the line
}

// Pressed reports whether a KEYBOARD_KEY or POINTER_BUTTON event is a press.
func (e RawEvent) Pressed() bool {
	for _, p := range e.Params {
		switch strings.TrimSuffix(p, ",") {
		case "pressed":
			return true
		case "released":
			return false
		}
	}
	return false
}

// ParseEvent tokenizes one libinput debug-events line. Lines for events the
// engine does not consume, and lines too short to carry an event, return
// ok=false without an error; genuinely malformed lines of interest return an
// error so the caller can log them.
//
// Representative input:
//
//	event7   GESTURE_SWIPE_UPDATE +2.04s  3  0.25/ 4.03 ( 0.33/ 5.07 unaccelerated)
//	event4   KEYBOARD_KEY         +1.04s  KEY_LEFTCTRL (29) pressed
//	event7   POINTER_BUTTON       +4.05s  BTN_LEFT (272) pressed, seat count: 1
func ParseEvent(line string) (RawEvent, bool, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || !strings.HasPrefix(fields[0], "event") {
		return RawEvent{}, false, nil
	}

	name := fields[1]
	if !interesting(name) {
		return RawEvent{}, false, nil
	}

	if len(fields) < 4 {
		return RawEvent{}, false, fmt.Errorf("truncated %s event: %q", name, line)
	}

	ts, err := parseTimestamp(fields[2])
	if err != nil {
		return RawEvent{}, false, fmt.Errorf("bad timestamp in %q: %v", line, err)
	}

	return RawEvent{
		Device:  fields[0],
		Name:    name,
		Time:    ts,
		Primary: fields[3],
		Params:  fields[4:],
	}, true, nil
}

func interesting(name string) bool {
	switch name {
	case EvKeyboardKey, EvPointerBtn,
		EvSwipeBegin, EvSwipeUpdate, EvSwipeEnd,
		EvPinchBegin, EvPinchUpdate, EvPinchEnd:
		return true
	}
	return false
}

// parseTimestamp parses libinput's "+12.345s" relative timestamps.
func parseTimestamp(tok string) (float64, error) {
	tok = strings.TrimPrefix(tok, "+")
	tok = strings.TrimSuffix(tok, "s")
	return strconv.ParseFloat(tok, 64)
}

// parseSwipeDeltas extracts the accelerated dx/dy pair from a swipe update's
// parameter tokens. libinput prints them as "dx/dy" but pads with spaces, so
// the pair may arrive split across tokens.
func parseSwipeDeltas(params []string) (dx, dy float64, err error) {
	joined := strings.Join(params, " ")
	if i := strings.IndexByte(joined, '('); i >= 0 {
		joined = joined[:i]
	}
	parts := strings.Split(joined, "/")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("no delta pair in %q", strings.Join(params, " "))
	}
	dx, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad dx in %q: %v", parts[0], err)
	}
	dy, err = strconv.ParseFloat(strings.TrimSpace(strings.Fields(parts[1])[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad dy in %q: %v", parts[1], err)
	}
	return dx, dy, nil
}

// parsePinchParams extracts the absolute scale ratio and rotation angle from
// a pinch update's parameter tokens. They trail the parenthesized
// unaccelerated deltas as "scale @ angle".
func parsePinchParams(params []string) (scale, angle float64, err error) {
	joined := strings.Join(params, " ")
	if i := strings.IndexByte(joined, ')'); i >= 0 {
		joined = joined[i+1:]
	}
	parts := strings.Split(joined, "@")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("no scale/angle pair in %q", strings.Join(params, " "))
	}
	scale, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad scale in %q: %v", parts[0], err)
	}
	angle, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad angle in %q: %v", parts[1], err)
	}
	return scale, angle, nil
}
