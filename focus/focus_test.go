package focus

import (
	"errors"
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/stretchr/testify/assert"
)

func fakeResolver(output func(name string, args ...string) ([]byte, error)) *Resolver {
	cache, _ := lru.New[string, string](cacheSize)
	return &Resolver{cache: cache, output: output}
}

func TestActiveApp(t *testing.T) {
	classLookups := 0
	r := fakeResolver(func(name string, args ...string) ([]byte, error) {
		switch args[0] {
		case "getactivewindow":
			return []byte("69206018\n"), nil
		case "getwindowclassname":
			classLookups++
			assert.Equal(t, "69206018", args[1])
			return []byte("Firefox\n"), nil
		}
		return nil, errors.New("unexpected call")
	})

	assert.Equal(t, "firefox", r.ActiveApp())
	assert.Equal(t, "firefox", r.ActiveApp())
	assert.Equal(t, 1, classLookups, "class name should come from the cache on repeat calls")
}

func TestActiveApp_WindowChangeMissesCache(t *testing.T) {
	windowID := "100"
	r := fakeResolver(func(name string, args ...string) ([]byte, error) {
		switch args[0] {
		case "getactivewindow":
			return []byte(windowID), nil
		case "getwindowclassname":
			if args[1] == "100" {
				return []byte("Alacritty"), nil
			}
			return []byte("Zulip"), nil
		}
		return nil, errors.New("unexpected call")
	})

	assert.Equal(t, "alacritty", r.ActiveApp())
	windowID = "200"
	assert.Equal(t, "zulip", r.ActiveApp())
}

func TestActiveApp_Failures(t *testing.T) {
	r := fakeResolver(func(string, ...string) ([]byte, error) {
		return nil, errors.New("cannot open display")
	})
	assert.Equal(t, "", r.ActiveApp())

	r = fakeResolver(func(name string, args ...string) ([]byte, error) {
		if args[0] == "getactivewindow" {
			return []byte("123"), nil
		}
		return nil, errors.New("window gone")
	})
	assert.Equal(t, "", r.ActiveApp())

	// blank window id
	r = fakeResolver(func(name string, args ...string) ([]byte, error) {
		return []byte("\n"), nil
	})
	assert.Equal(t, "", r.ActiveApp())
}
