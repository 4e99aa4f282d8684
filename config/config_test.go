package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobile-next/gesturecli/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gesturecli.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
[settings]
swipe_threshold = 2.5

[global]
swipe left 3 = _internal ws_down
swipe right 3 = _internal ws_up
swipe left_up 4 +leftctrl = playerctl next
pinch in = xdotool key ctrl+minus
pinch clockwise = xdotool key r
pointer double_tap btn_middle @swipe.left = xdotool key ctrl+w

[firefox]
swipe left 3 = xdotool key alt+Right ; xdotool key F5
`)

	table, settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, settings.SwipeThreshold)

	cmds, scope, ok := table.Resolve("", engine.KindSwipe, "left", "3", "", "")
	require.True(t, ok)
	assert.Equal(t, engine.GlobalScope, scope)
	require.Len(t, cmds, 1)
	assert.Equal(t, engine.InternalProgram, cmds[0].Program)
	assert.Equal(t, []string{"ws_down"}, cmds[0].Args)

	// app scope with a two-command value
	cmds, scope, ok = table.Resolve("firefox", engine.KindSwipe, "left", "3", "", "")
	require.True(t, ok)
	assert.Equal(t, "firefox", scope)
	require.Len(t, cmds, 2)
	assert.Equal(t, "xdotool key alt+Right", cmds[0].String())
	assert.Equal(t, "xdotool key F5", cmds[1].String())

	// held keys and triggers end up in the binding key
	cmds, _, ok = table.Resolve("", engine.KindSwipe, "left_up", "4", "leftctrl", "")
	require.True(t, ok)
	assert.Equal(t, "playerctl next", cmds[0].String())

	_, _, ok = table.Resolve("", engine.KindPointer, "double_tap", "btn_middle", "", "swipe left")
	assert.True(t, ok)
	_, _, ok = table.Resolve("", engine.KindPointer, "double_tap", "btn_middle", "", "")
	assert.False(t, ok, "trigger-gated binding matched without the trigger")

	// oblique and rotation bindings flip the per-kind flags
	assert.True(t, table.HasOblique(engine.KindSwipe))
	assert.True(t, table.HasOblique(engine.KindPinch))
}

func TestLoad_CommandValueKeepsSemicolonSplit(t *testing.T) {
	path := writeConfig(t, `
[global]
pinch out = sh -c echo ; notify-send done
`)
	table, _, err := Load(path)
	require.NoError(t, err)

	cmds, _, ok := table.Resolve("", engine.KindPinch, "out", "", "", "")
	require.True(t, ok)
	require.Len(t, cmds, 2)
	assert.Equal(t, "sh -c echo", cmds[0].String())
	assert.Equal(t, "notify-send done", cmds[1].String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"binding outside any section", "swipe left 3 = foo\n"},
		{"unsupported kind", "[global]\nshape circle = foo\n"},
		{"unsupported motion", "[global]\nswipe sideways = foo\n"},
		{"missing motion", "[global]\nswipe = foo\n"},
		{"pinch qualifier", "[global]\npinch in 3 = foo\n"},
		{"swipe qualifier out of range", "[global]\nswipe left 6 = foo\n"},
		{"swipe qualifier not a number", "[global]\nswipe left btn_left = foo\n"},
		{"pointer qualifier not a button", "[global]\npointer tap 2 = foo\n"},
		{"empty command list", "[global]\nswipe left 3 = ;\n"},
		{"bad trigger shape", "[global]\npinch in @swipeleft = foo\n"},
		{"trigger with bad motion", "[global]\npinch in @swipe.sideways = foo\n"},
		{"duplicate qualifier", "[global]\nswipe left 3 4 = foo\n"},
		{"duplicate held clause", "[global]\nswipe left +a +b = foo\n"},
		{"unknown setting", "[settings]\ntap_timeout = 1\n"},
		{"negative threshold", "[settings]\nswipe_threshold = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_QualifierlessBindingsAreGeneric(t *testing.T) {
	path := writeConfig(t, `
[global]
swipe left = foo
pointer tap = bar
`)
	table, _, err := Load(path)
	require.NoError(t, err)

	// a generic binding matches whatever finger count or button arrives
	for _, fingers := range []string{"3", "4"} {
		cmds, _, ok := table.Resolve("", engine.KindSwipe, "left", fingers, "", "")
		require.True(t, ok, "fingers=%s", fingers)
		assert.Equal(t, "foo", cmds[0].Program)
	}
	cmds, _, ok := table.Resolve("", engine.KindPointer, "tap", "btn_right", "", "")
	require.True(t, ok)
	assert.Equal(t, "bar", cmds[0].Program)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.conf"))
	assert.Error(t, err)
}

func TestLoad_SelectorIsCaseInsensitive(t *testing.T) {
	path := writeConfig(t, `
[Global]
SWIPE Left 3 = foo
`)
	table, _, err := Load(path)
	require.NoError(t, err)
	_, scope, ok := table.Resolve("", engine.KindSwipe, "left", "3", "", "")
	require.True(t, ok)
	assert.Equal(t, engine.GlobalScope, scope)
}
