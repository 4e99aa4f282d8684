//go:build windows

package utils

import (
	"os/exec"
)

// ConfigureDetachedProcAttr is a no-op on Windows since process groups
// work differently there; the engine itself only targets libinput systems.
func ConfigureDetachedProcAttr(cmd *exec.Cmd) {
	// No-op on Windows
}
