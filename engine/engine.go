package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mobile-next/gesturecli/types"
)

// AppResolver supplies the executable name owning the currently focused
// window. It is queried fresh on every gesture completion.
type AppResolver interface {
	ActiveApp() string
}

// message is the union of things the run loop consumes. Raw device events
// and debounce-timer firings travel on the same ordered channel, so the
// press-vs-timer race is resolved by channel order, not wall clock.
type message interface{}

type eventMsg struct{ ev RawEvent }
type tapTimerMsg struct{ gen int }
type streamClosedMsg struct{}

// Options configures an Engine.
type Options struct {
	// SwipeThreshold is the minimum accumulated swipe distance (same units
	// as the stream deltas) before a swipe classifies. Zero accepts any
	// nonzero movement.
	SwipeThreshold float64

	// Focus resolves the focused application name. Nil means every gesture
	// resolves against the global scope only.
	Focus AppResolver

	// Listener, if set, receives a record of every completed gesture
	// (dispatched or not). Called on the event thread.
	Listener func(types.CompletedGesture)
}

// Engine owns all gesture state: the key tracker, one session per gesture
// kind, and the label of the last completed gesture. All mutation happens on
// the single goroutine running Run; only Status reads cross goroutines.
type Engine struct {
	table      *BindingTable
	dispatcher *Dispatcher
	focus      AppResolver
	listener   func(types.CompletedGesture)

	keys        KeyTracker
	lastGesture string

	swipe   *swipeSession
	pinch   *pinchSession
	pointer *pointerSession

	msgs chan message
	done chan struct{}

	statusMu sync.Mutex
	status   Status
}

// Status is a point-in-time snapshot of engine state, safe to read from any
// goroutine.
type Status struct {
	LastGesture string `json:"lastGesture,omitempty"`
	HeldKeys    string `json:"heldKeys,omitempty"`
	Gestures    uint64 `json:"gestures"`
	Dispatched  uint64 `json:"dispatched"`
}

// New creates an Engine over an already-validated binding table.
func New(table *BindingTable, dispatcher *Dispatcher, opts Options) *Engine {
	return &Engine{
		table:      table,
		dispatcher: dispatcher,
		focus:      opts.Focus,
		listener:   opts.Listener,
		swipe:      &swipeSession{minDistSq: opts.SwipeThreshold * opts.SwipeThreshold},
		pinch:      &pinchSession{},
		pointer:    &pointerSession{},
		msgs:       make(chan message, 16),
		done:       make(chan struct{}),
	}
}

// Table returns the engine's binding table.
func (e *Engine) Table() *BindingTable { return e.table }

// Status returns a snapshot of the engine's state.
func (e *Engine) Status() Status {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	return e.status
}

// post delivers a message to the run loop. It gives up once the loop has
// exited so that late timer firings cannot block forever.
func (e *Engine) post(m message) {
	select {
	case e.msgs <- m:
	case <-e.done:
	}
}

// Run consumes the event stream until it closes. This is the single event
// thread: every state mutation happens here, in strict arrival order.
func (e *Engine) Run(events <-chan RawEvent) error {
	go func() {
		for ev := range events {
			e.post(eventMsg{ev})
		}
		e.post(streamClosedMsg{})
	}()

	for m := range e.msgs {
		switch msg := m.(type) {
		case eventMsg:
			e.handle(msg.ev)
		case tapTimerMsg:
			e.tapTimerFired(msg)
		case streamClosedMsg:
			e.cancelTapTimer()
			close(e.done)
			log.Info("event stream closed, stopping")
			return nil
		}
	}
	return nil
}

// handle routes one raw event to the key tracker or the owning session.
func (e *Engine) handle(ev RawEvent) {
	switch ev.Name {
	case EvKeyboardKey:
		if ev.Pressed() {
			e.keys.Press(ev.Primary)
		} else {
			// a held key coming up commits any in-progress gesture with the
			// data it has, while the key still counts as held
			e.forceFinalize()
			e.keys.Release()
		}
		e.mirrorStatus()
	case EvPointerBtn:
		if ev.Pressed() {
			e.pointerPress(ev)
		} else {
			e.pointerRelease(ev)
		}
	case EvSwipeBegin:
		e.swipe.begin(ev)
	case EvSwipeUpdate:
		if err := e.swipe.update(ev); err != nil {
			log.Warnf("ignoring swipe update: %v", err)
		}
	case EvSwipeEnd:
		e.finalizeSwipe()
	case EvPinchBegin:
		e.pinch.begin(ev)
	case EvPinchUpdate:
		if err := e.pinch.update(ev); err != nil {
			log.Warnf("ignoring pinch update: %v", err)
		}
	case EvPinchEnd:
		e.finalizePinch()
	}
}

func (e *Engine) finalizeSwipe() {
	if !e.swipe.active() {
		return
	}
	if motion, qual, ok := e.swipe.end(e.table); ok {
		e.complete(KindSwipe, motion, qual)
	}
}

func (e *Engine) finalizePinch() {
	if !e.pinch.active() {
		return
	}
	if motion, qual, ok := e.pinch.end(e.table); ok {
		e.complete(KindPinch, motion, qual)
	}
}

// forceFinalize ends every active session immediately.
func (e *Engine) forceFinalize() {
	e.finalizeSwipe()
	e.finalizePinch()
	e.finalizePointer()
}

// complete resolves and dispatches one classified gesture. The last-gesture
// label is updated exactly once, after resolution has used the previous
// value as the trigger.
func (e *Engine) complete(kind Kind, motion, qualifier string) {
	held := e.keys.Label()
	trigger := e.lastGesture

	app := ""
	if e.focus != nil {
		app = e.focus.ActiveApp()
	}

	cmds, matchedScope, ok := e.table.Resolve(app, kind, motion, qualifier, held, trigger)
	if ok {
		e.dispatcher.Dispatch(cmds)
	} else {
		log.Debugf("no binding: app=%q kind=%s motion=%s qualifier=%q held=%q trigger=%q",
			app, kind, motion, qualifier, held, trigger)
	}

	e.lastGesture = string(kind) + " " + motion
	e.mirrorStatus()

	e.statusMu.Lock()
	e.status.Gestures++
	if ok {
		e.status.Dispatched++
	}
	e.statusMu.Unlock()

	if e.listener != nil {
		rec := types.CompletedGesture{
			ID:         uuid.NewString(),
			Kind:       string(kind),
			Motion:     motion,
			Qualifier:  qualifier,
			HeldKeys:   held,
			Trigger:    trigger,
			App:        app,
			Scope:      matchedScope,
			Dispatched: ok,
			Timestamp:  time.Now(),
		}
		for _, c := range cmds {
			rec.Commands = append(rec.Commands, c.String())
		}
		e.listener(rec)
	}
}

func (e *Engine) mirrorStatus() {
	e.statusMu.Lock()
	e.status.LastGesture = e.lastGesture
	e.status.HeldKeys = e.keys.Label()
	e.statusMu.Unlock()
}
