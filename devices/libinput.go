package devices

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"

	log "github.com/sirupsen/logrus"

	"github.com/mobile-next/gesturecli/engine"
	"github.com/mobile-next/gesturecli/utils"
)

// EventSource streams tokenized events from a spawned
// `libinput debug-events` child process.
type EventSource struct {
	cmd    *exec.Cmd
	events chan engine.RawEvent
}

// debugEventsArgs builds the debug-events argument list. --show-keycodes is
// mandatory: without it libinput masks key names (KEY_LEFTCTRL and friends
// print as "***") and held-key chords can never match.
func debugEventsArgs(deviceNode string) []string {
	args := []string{"--show-keycodes"}
	if deviceNode != "" {
		args = append(args, "--device", deviceNode)
	}
	return args
}

// libinputCommand locates the debug-events tool. Older stacks ship it as a
// standalone libinput-debug-events binary.
func libinputCommand(deviceNode string) (*exec.Cmd, error) {
	if _, err := exec.LookPath("libinput"); err == nil {
		args := append([]string{"debug-events"}, debugEventsArgs(deviceNode)...)
		return exec.Command("libinput", args...), nil
	}
	if _, err := exec.LookPath("libinput-debug-events"); err == nil {
		return exec.Command("libinput-debug-events", debugEventsArgs(deviceNode)...), nil
	}
	return nil, fmt.Errorf("libinput debug-events not found in PATH")
}

// StartEventSource spawns the libinput reader. deviceNode may be empty to
// listen on all devices. The returned source's channel closes when the
// stream ends.
func StartEventSource(deviceNode string) (*EventSource, error) {
	cmd, err := libinputCommand(deviceNode)
	if err != nil {
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open libinput stdout: %v", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %v", cmd.Path, err)
	}
	utils.Verbose("started %v (pid %d)", cmd.Args, cmd.Process.Pid)

	s := &EventSource{
		cmd:    cmd,
		events: make(chan engine.RawEvent, 16),
	}
	go s.read(stdout)
	return s, nil
}

// Events returns the stream of tokenized events. The channel closes on
// stream EOF, which is the engine's only legitimate shutdown condition.
func (s *EventSource) Events() <-chan engine.RawEvent {
	return s.events
}

func (s *EventSource) read(r io.Reader) {
	defer close(s.events)
	defer s.cmd.Wait()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ev, ok, err := engine.ParseEvent(scanner.Text())
		if err != nil {
			log.Warnf("skipping malformed event line: %v", err)
			continue
		}
		if !ok {
			continue
		}
		s.events <- ev
	}
	if err := scanner.Err(); err != nil {
		log.Errorf("event stream read error: %v", err)
	}
}

// Stop kills the child process. The reader goroutine then sees EOF and
// closes the event channel.
func (s *EventSource) Stop() error {
	if s.cmd.Process == nil {
		return nil
	}
	return s.cmd.Process.Kill()
}
