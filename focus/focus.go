// Package focus resolves the application owning the currently focused
// window. The window id is looked up fresh on every call (focus changes
// between gestures); the id→class mapping is stable and cached.
package focus

import (
	"os/exec"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
)

const cacheSize = 128

// Resolver implements engine.AppResolver via xdotool.
type Resolver struct {
	cache *lru.Cache[string, string]
	// output runs a command and returns stdout; swapped out in tests
	output func(name string, args ...string) ([]byte, error)
}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	cache, _ := lru.New[string, string](cacheSize)
	return &Resolver{
		cache: cache,
		output: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
	}
}

// ActiveApp returns the lower-cased class name of the focused window, or ""
// when it cannot be determined. Failures are debug-logged, never fatal: an
// empty name simply resolves gestures against the global scope only.
func (r *Resolver) ActiveApp() string {
	out, err := r.output("xdotool", "getactivewindow")
	if err != nil {
		log.Debugf("focus lookup failed: %v", err)
		return ""
	}
	windowID := strings.TrimSpace(string(out))
	if windowID == "" {
		return ""
	}

	if name, ok := r.cache.Get(windowID); ok {
		return name
	}

	out, err = r.output("xdotool", "getwindowclassname", windowID)
	if err != nil {
		log.Debugf("class lookup for window %s failed: %v", windowID, err)
		return ""
	}
	name := strings.ToLower(strings.TrimSpace(string(out)))
	if name != "" {
		r.cache.Add(windowID, name)
	}
	return name
}
