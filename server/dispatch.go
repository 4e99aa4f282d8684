package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mobile-next/gesturecli/commands"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

var errMethodNotFound = errors.New("method not found")

// GetMethodRegistry returns a map of method names to handler functions
// This is used by both the HTTP /rpc endpoint and WebSocket clients
func GetMethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"status":          handleStatus,
		"last_gesture":    handleLastGesture,
		"bindings":        handleBindings,
		"devices":         handleDevicesList,
		"doctor":          handleDoctor,
		"server.shutdown": handleShutdown,
	}
}

// Execute dispatches a method call using the registry
func Execute(method string, params json.RawMessage) (interface{}, error) {
	registry := GetMethodRegistry()

	handler, exists := registry[method]
	if !exists {
		return nil, errMethodNotFound
	}

	return handler(params)
}

func handleStatus(json.RawMessage) (interface{}, error) {
	if currentEngine == nil {
		return nil, fmt.Errorf("no engine attached to this server")
	}
	return currentEngine.Status(), nil
}

func handleLastGesture(json.RawMessage) (interface{}, error) {
	if currentEngine == nil {
		return nil, fmt.Errorf("no engine attached to this server")
	}
	return map[string]string{"lastGesture": currentEngine.Status().LastGesture}, nil
}

func handleBindings(json.RawMessage) (interface{}, error) {
	if currentEngine != nil {
		return commands.DumpTable(currentEngine.Table()), nil
	}
	response := commands.BindingsCommand(commands.BindingsRequest{ConfigPath: configPath})
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleDevicesList(json.RawMessage) (interface{}, error) {
	response := commands.DevicesCommand("")
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleDoctor(json.RawMessage) (interface{}, error) {
	response := commands.DoctorCommand("dev")
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleShutdown(json.RawMessage) (interface{}, error) {
	// reply first, then stop accepting connections
	go Shutdown()
	return map[string]string{"status": "shutting down"}, nil
}
