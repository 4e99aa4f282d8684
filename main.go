package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mobile-next/gesturecli/cli"
	"github.com/mobile-next/gesturecli/commands"
	"github.com/mobile-next/gesturecli/devices"
)

func main() {
	// create source registry so spawned libinput readers are stopped on exit
	registry := devices.NewSourceRegistry()
	commands.SetRegistry(registry)

	// setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	// wait for command completion or signal
	select {
	case <-sigChan:
		// stop the libinput child; the engine then sees EOF and drains
		registry.CleanupAll()
		// release the pidfile and any other hooks deferred calls would miss
		commands.RunCleanups()
		os.Exit(0)
	case err := <-done:
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
