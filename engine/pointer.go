package engine

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// tapTimeout is how long after a release the session waits for another
	// press of the same button before classifying.
	tapTimeout = 500 * time.Millisecond

	// tapMergeWindow is the maximum gap (stream time) between a release and
	// the next press for the press to extend the running tap count.
	tapMergeWindow = 0.3
)

type pointerState int

const (
	pointerIdle pointerState = iota
	pointerActive
	pointerDebouncing
)

// pointerSession counts same-button taps. Unlike swipe and pinch, the stream
// has no END event for taps; the session lingers in a debouncing state after
// each release and a timer decides when the count is final. The timer fires
// as a message on the engine's own event channel, so "timer fired" and
// "button pressed again" are ordered by the channel, never by wall clock.
type pointerSession struct {
	state       pointerState
	button      string
	taps        int
	releaseTime float64 // stream time of the last release

	timerGen int // current timer generation; stale firings are ignored
	timer    *time.Timer
}

func (p *pointerSession) active() bool { return p.state != pointerIdle }

func normalizeButton(btn string) string {
	return strings.ToLower(btn)
}

// press handles a POINTER_BUTTON press. If the press continues a debouncing
// session of the same button within the merge window, it resumes that
// session; a different button finalizes the old session first. Returns the
// finalized old session's (motion, qualifier) when a finalization happened.
func (e *Engine) pointerPress(ev RawEvent) {
	p := e.pointer
	btn := normalizeButton(ev.Primary)

	if p.state == pointerDebouncing {
		if p.button == btn && ev.Time-p.releaseTime <= tapMergeWindow {
			e.cancelTapTimer()
			p.state = pointerActive
			return
		}
		// different button, or too slow: the old session is done
		e.finalizePointer()
	}

	p.state = pointerActive
	p.button = btn
	p.taps = 0
}

// release handles a POINTER_BUTTON release: bump the count and (re-)arm the
// debounce timer.
func (e *Engine) pointerRelease(ev RawEvent) {
	p := e.pointer
	if p.state != pointerActive {
		return
	}
	p.taps++
	p.releaseTime = ev.Time
	p.state = pointerDebouncing
	e.armTapTimer()
}

// armTapTimer starts a fresh single-shot debounce timer, cancelling any
// previous one for the session. The firing posts a message back onto the
// engine channel tagged with a generation; only the current generation is
// honored, which makes cancellation idempotent.
func (e *Engine) armTapTimer() {
	p := e.pointer
	e.cancelTapTimer()
	p.timerGen++
	gen := p.timerGen
	p.timer = time.AfterFunc(tapTimeout, func() {
		e.post(tapTimerMsg{gen: gen})
	})
}

// cancelTapTimer stops any outstanding timer. Safe to call when none is
// armed or when the timer already fired; a late firing carries a stale
// generation and is dropped by the run loop.
func (e *Engine) cancelTapTimer() {
	p := e.pointer
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.timerGen++
}

// tapTimerFired handles a debounce timer message from the engine channel.
func (e *Engine) tapTimerFired(msg tapTimerMsg) {
	p := e.pointer
	if p.state != pointerDebouncing || msg.gen != p.timerGen {
		return
	}
	e.finalizePointer()
}

// finalizePointer classifies the accumulated tap count and completes the
// gesture. Unsupported counts are logged and dropped without dispatch.
func (e *Engine) finalizePointer() {
	p := e.pointer
	if p.state == pointerIdle {
		return
	}
	taps, btn := p.taps, p.button
	p.state = pointerIdle
	p.taps = 0
	e.cancelTapTimer()

	if taps == 0 {
		return
	}
	motion, err := ClassifyTaps(taps)
	if err != nil {
		log.Errorf("pointer gesture dropped: %v", err)
		return
	}
	e.complete(KindPointer, motion, btn)
}
