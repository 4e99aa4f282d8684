package engine

import (
	"os/exec"

	log "github.com/sirupsen/logrus"

	"github.com/mobile-next/gesturecli/utils"
)

// InternalProgram is the reserved program name that routes a command to
// built-in dispatcher logic instead of an external process.
const InternalProgram = "_internal"

// Runner launches one external command without blocking the caller.
type Runner interface {
	Start(cmd Command) error
}

// ExecRunner launches commands as detached child processes: no shell, no
// captured output, no wait.
type ExecRunner struct{}

func (ExecRunner) Start(c Command) error {
	cmd := exec.Command(c.Program, c.Args...)
	utils.ConfigureDetachedProcAttr(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap the child so it doesn't linger as a zombie
	go func() { _ = cmd.Wait() }()
	return nil
}

// Dispatcher hands resolved command lists to the runner, or only logs them
// in dry-run mode. Launch failures are logged and never stop the list.
type Dispatcher struct {
	runner   Runner
	internal *WorkspaceSwitcher
	dryRun   bool
}

// NewDispatcher creates a dispatcher. A nil runner gets the default
// ExecRunner.
func NewDispatcher(runner Runner, dryRun bool) *Dispatcher {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Dispatcher{
		runner:   runner,
		internal: NewWorkspaceSwitcher(),
		dryRun:   dryRun,
	}
}

// Dispatch runs each command in order, independently.
func (d *Dispatcher) Dispatch(cmds CommandList) {
	for _, c := range cmds {
		if d.dryRun {
			utils.Info("DRYRUN: %s", c)
			continue
		}
		utils.Verbose("launching: %s", c)
		if c.Program == InternalProgram {
			if err := d.internal.Run(c.Args); err != nil {
				log.Errorf("internal command %v failed: %v", c.Args, err)
			}
			continue
		}
		if err := d.runner.Start(c); err != nil {
			log.Errorf("failed to launch %s: %v", c.Program, err)
		}
	}
}
