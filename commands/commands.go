package commands

import (
	"sync"

	"github.com/mobile-next/gesturecli/devices"
)

// sourceRegistry holds the registry for event-source cleanup tracking.
// It is set once at application startup via SetRegistry and used to stop
// spawned libinput readers during graceful shutdown.
var sourceRegistry *devices.SourceRegistry

// SetRegistry sets the global event-source registry for cleanup tracking.
// This should be called once at application startup (main.go).
func SetRegistry(registry *devices.SourceRegistry) {
	sourceRegistry = registry
}

// GetRegistry returns the current event-source registry.
// Returns nil if SetRegistry has not been called yet.
func GetRegistry() *devices.SourceRegistry {
	return sourceRegistry
}

var (
	cleanupMu sync.Mutex
	cleanups  []func()
)

// RegisterCleanup adds a shutdown hook. Hooks run on SIGINT/SIGTERM, where
// deferred calls in RunE never get a chance (main exits the process).
func RegisterCleanup(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanups = append(cleanups, fn)
}

// RunCleanups runs the registered hooks in reverse registration order, once.
func RunCleanups() {
	cleanupMu.Lock()
	hooks := cleanups
	cleanups = nil
	cleanupMu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}
