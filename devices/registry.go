package devices

import (
	"sync"

	"github.com/mobile-next/gesturecli/utils"
)

// SourceRegistry tracks spawned event sources so they can be torn down on
// SIGINT/SIGTERM.
type SourceRegistry struct {
	mu      sync.RWMutex
	sources map[string]*EventSource
}

// NewSourceRegistry creates a new registry instance.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		sources: make(map[string]*EventSource),
	}
}

// Register adds an event source to the registry for cleanup tracking.
func (r *SourceRegistry) Register(name string, src *EventSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = src
}

// CleanupAll stops all registered sources.
func (r *SourceRegistry) CleanupAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, src := range r.sources {
		if err := src.Stop(); err != nil {
			utils.Verbose("Error stopping event source %s: %v", name, err)
		}
	}
	r.sources = make(map[string]*EventSource)
}
