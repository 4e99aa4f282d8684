package engine

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// WorkspaceSwitcher implements the `_internal ws_up|ws_down` built-in: it
// queries wmctrl for the current desktop and switches to the neighbor,
// clamped to the desktop count.
type WorkspaceSwitcher struct {
	// output runs a command and returns its combined output; swapped out in
	// tests
	output func(name string, args ...string) ([]byte, error)
}

func NewWorkspaceSwitcher() *WorkspaceSwitcher {
	return &WorkspaceSwitcher{
		output: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
	}
}

// Run executes one internal command.
func (w *WorkspaceSwitcher) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing internal command")
	}

	var delta int
	switch args[0] {
	case "ws_up":
		delta = 1
	case "ws_down":
		delta = -1
	default:
		return fmt.Errorf("unknown internal command %q", args[0])
	}

	current, count, err := w.desktops()
	if err != nil {
		return err
	}

	target := current + delta
	if target < 0 {
		target = 0
	}
	if target > count-1 {
		target = count - 1
	}
	if target == current {
		return nil
	}

	_, err = w.output("wmctrl", "-s", strconv.Itoa(target))
	return err
}

// desktops parses `wmctrl -d` output: one line per desktop, the active one
// marked with "*" in the second column.
func (w *WorkspaceSwitcher) desktops() (current, count int, err error) {
	out, err := w.output("wmctrl", "-d")
	if err != nil {
		return 0, 0, fmt.Errorf("wmctrl -d: %v", err)
	}

	current = -1
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if fields[1] == "*" {
			current = count
		}
		count++
	}
	if count == 0 || current < 0 {
		return 0, 0, fmt.Errorf("could not determine current desktop from wmctrl output")
	}
	return current, count, nil
}
