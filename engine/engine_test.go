package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobile-next/gesturecli/types"
)

type recordingRunner struct {
	mu      sync.Mutex
	started []Command
}

func (r *recordingRunner) Start(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, c)
	return nil
}

func (r *recordingRunner) commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.started...)
}

type staticFocus string

func (s staticFocus) ActiveApp() string { return string(s) }

func newTestEngine(table *BindingTable, app string) (*Engine, *recordingRunner) {
	runner := &recordingRunner{}
	eng := New(table, NewDispatcher(runner, false), Options{Focus: staticFocus(app)})
	return eng, runner
}

func keyEvent(ts float64, key, state string) RawEvent {
	return RawEvent{Device: "event4", Name: EvKeyboardKey, Time: ts, Primary: key, Params: []string{"(29)", state}}
}

func buttonEvent(ts float64, btn, state string) RawEvent {
	return RawEvent{Device: "event7", Name: EvPointerBtn, Time: ts, Primary: btn, Params: []string{"(272)", state + ",", "seat", "count:", "1"}}
}

func swipeUpdate(ts float64, dx, dy string) RawEvent {
	return RawEvent{Device: "event7", Name: EvSwipeUpdate, Time: ts, Primary: "3", Params: []string{dx + "/", dy}}
}

func TestEngine_SwipeThroughRun(t *testing.T) {
	table := NewBindingTable()
	table.Add(GlobalScope, KindSwipe, BindingKey{Motion: "left", Qualifier: "3"}, cmds("swipe-left-cmd"))

	eng, runner := newTestEngine(table, "")

	events := make(chan RawEvent, 8)
	events <- RawEvent{Name: EvSwipeBegin, Time: 1.0, Primary: "3"}
	events <- swipeUpdate(1.1, "-6.00", "0.50")
	events <- swipeUpdate(1.2, "-4.00", "0.25")
	events <- RawEvent{Name: EvSwipeEnd, Time: 1.3, Primary: "3"}
	close(events)

	require.NoError(t, eng.Run(events))

	started := runner.commands()
	require.Len(t, started, 1)
	assert.Equal(t, "swipe-left-cmd", started[0].Program)
	assert.Equal(t, "swipe left", eng.Status().LastGesture)
	assert.Equal(t, uint64(1), eng.Status().Gestures)
	assert.Equal(t, uint64(1), eng.Status().Dispatched)
}

func TestEngine_HeldKeyBinding(t *testing.T) {
	table := NewBindingTable()
	table.Add(GlobalScope, KindSwipe, BindingKey{Motion: "right", Qualifier: "3", HeldKeys: "leftctrl"}, cmds("chorded"))

	eng, runner := newTestEngine(table, "")

	eng.handle(keyEvent(0.5, "KEY_LEFTCTRL", "pressed"))
	eng.handle(RawEvent{Name: EvSwipeBegin, Time: 1.0, Primary: "3"})
	eng.handle(swipeUpdate(1.1, "8.00", "0.00"))
	eng.handle(RawEvent{Name: EvSwipeEnd, Time: 1.2, Primary: "3"})

	started := runner.commands()
	require.Len(t, started, 1)
	assert.Equal(t, "chorded", started[0].Program)
}

func TestEngine_KeyReleaseForcesFinalize(t *testing.T) {
	table := NewBindingTable()
	table.Add(GlobalScope, KindSwipe, BindingKey{Motion: "right", Qualifier: "3", HeldKeys: "leftctrl"}, cmds("chorded"))

	eng, runner := newTestEngine(table, "")

	eng.handle(keyEvent(0.5, "KEY_LEFTCTRL", "pressed"))
	eng.handle(RawEvent{Name: EvSwipeBegin, Time: 1.0, Primary: "3"})
	eng.handle(swipeUpdate(1.1, "8.00", "0.00"))
	// no GESTURE_SWIPE_END: releasing the held key commits the gesture, and
	// the key still counts as held for resolution
	eng.handle(keyEvent(1.2, "KEY_LEFTCTRL", "released"))

	started := runner.commands()
	require.Len(t, started, 1)
	assert.Equal(t, "chorded", started[0].Program)
	assert.True(t, eng.keys.Empty(), "key should be released after the forced finalize")

	// a late END must not re-dispatch
	eng.handle(RawEvent{Name: EvSwipeEnd, Time: 1.3, Primary: "3"})
	assert.Len(t, runner.commands(), 1)
}

func TestEngine_TriggerChaining(t *testing.T) {
	table := NewBindingTable()
	table.Add(GlobalScope, KindSwipe, BindingKey{Motion: "left", Qualifier: "3"}, cmds("first"))
	table.Add(GlobalScope, KindPinch, BindingKey{Motion: "in", Trigger: "swipe left"}, cmds("chained"))

	eng, runner := newTestEngine(table, "")

	eng.handle(RawEvent{Name: EvSwipeBegin, Time: 1.0, Primary: "3"})
	eng.handle(swipeUpdate(1.1, "-9.00", "0.00"))
	eng.handle(RawEvent{Name: EvSwipeEnd, Time: 1.2, Primary: "3"})

	eng.handle(RawEvent{Name: EvPinchBegin, Time: 2.0, Primary: "2"})
	eng.handle(RawEvent{Name: EvPinchUpdate, Time: 2.1, Primary: "2",
		Params: []string{"0.00/", "0.00", "(0.00/0.00", "unaccelerated)", "0.80", "@", "0.00"}})
	eng.handle(RawEvent{Name: EvPinchEnd, Time: 2.2, Primary: "2"})

	started := runner.commands()
	require.Len(t, started, 2)
	assert.Equal(t, "first", started[0].Program)
	assert.Equal(t, "chained", started[1].Program)
	assert.Equal(t, "pinch in", eng.Status().LastGesture)
}

func TestEngine_AppScopeResolution(t *testing.T) {
	table := NewBindingTable()
	table.Add(GlobalScope, KindSwipe, BindingKey{Motion: "left", Qualifier: "3"}, cmds("global"))
	table.Add("firefox", KindSwipe, BindingKey{Motion: "left", Qualifier: "3"}, cmds("firefox"))

	eng, runner := newTestEngine(table, "firefox")

	eng.handle(RawEvent{Name: EvSwipeBegin, Time: 1.0, Primary: "3"})
	eng.handle(swipeUpdate(1.1, "-9.00", "0.00"))
	eng.handle(RawEvent{Name: EvSwipeEnd, Time: 1.2, Primary: "3"})

	started := runner.commands()
	require.Len(t, started, 1)
	assert.Equal(t, "firefox", started[0].Program)
}

func TestEngine_ListenerReceivesUnmatchedGestures(t *testing.T) {
	table := NewBindingTable()

	var got []types.CompletedGesture
	runner := &recordingRunner{}
	eng := New(table, NewDispatcher(runner, false), Options{
		Listener: func(g types.CompletedGesture) { got = append(got, g) },
	})

	eng.handle(RawEvent{Name: EvSwipeBegin, Time: 1.0, Primary: "4"})
	eng.handle(swipeUpdate(1.1, "0.00", "9.00"))
	eng.handle(RawEvent{Name: EvSwipeEnd, Time: 1.2, Primary: "4"})

	require.Len(t, got, 1)
	assert.Equal(t, "swipe", got[0].Kind)
	assert.Equal(t, "down", got[0].Motion)
	assert.Equal(t, "4", got[0].Qualifier)
	assert.False(t, got[0].Dispatched)
	assert.NotEmpty(t, got[0].ID)
	assert.Empty(t, runner.commands())
}

func TestEngine_PinchDeclineDoesNotTouchLastGesture(t *testing.T) {
	table := NewBindingTable()
	table.Add(GlobalScope, KindSwipe, BindingKey{Motion: "left", Qualifier: "3"}, cmds("a"))

	eng, runner := newTestEngine(table, "")

	eng.handle(RawEvent{Name: EvSwipeBegin, Time: 1.0, Primary: "3"})
	eng.handle(swipeUpdate(1.1, "-9.00", "0.00"))
	eng.handle(RawEvent{Name: EvSwipeEnd, Time: 1.2, Primary: "3"})

	// pinch with zero net scale declines, so the last-gesture label survives
	eng.handle(RawEvent{Name: EvPinchBegin, Time: 2.0, Primary: "2"})
	eng.handle(RawEvent{Name: EvPinchUpdate, Time: 2.1, Primary: "2",
		Params: []string{"0.00/", "0.00", "(0.00/0.00", "unaccelerated)", "1.00", "@", "0.00"}})
	eng.handle(RawEvent{Name: EvPinchEnd, Time: 2.2, Primary: "2"})

	assert.Equal(t, "swipe left", eng.Status().LastGesture)
	assert.Len(t, runner.commands(), 1)
}
