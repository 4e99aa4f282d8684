package devices

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

const procInputDevices = "/proc/bus/input/devices"

// InputDevice is one record from /proc/bus/input/devices.
type InputDevice struct {
	Name     string   `json:"name"`
	Node     string   `json:"node"` // /dev/input/eventN, "" if none
	Handlers []string `json:"handlers"`
	EV       uint64   `json:"ev"` // event-type capability bits
}

var touchpadName = regexp.MustCompile(`(?i)touch ?pad|track ?pad`)

// event-type bits from linux/input-event-codes.h
const (
	evKey = 1 << 0x01
	evAbs = 1 << 0x03
)

// List enumerates input devices from the kernel.
func List() ([]InputDevice, error) {
	f, err := os.Open(procInputDevices)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", procInputDevices, err)
	}
	defer f.Close()
	return ParseProcDevices(f)
}

// ParseProcDevices parses the blank-line-separated blocks of
// /proc/bus/input/devices.
func ParseProcDevices(r io.Reader) ([]InputDevice, error) {
	var devices []InputDevice
	var cur InputDevice
	seen := false

	flush := func() {
		if seen {
			devices = append(devices, cur)
		}
		cur = InputDevice{}
		seen = false
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		if len(line) < 3 {
			continue
		}
		seen = true
		value := strings.TrimSpace(line[2:])
		switch line[0] {
		case 'N':
			cur.Name = strings.Trim(strings.TrimPrefix(value, "Name="), `"`)
		case 'H':
			cur.Handlers = strings.Fields(strings.TrimPrefix(value, "Handlers="))
			for _, h := range cur.Handlers {
				if strings.HasPrefix(h, "event") {
					cur.Node = "/dev/input/" + h
				}
			}
		case 'B':
			if strings.HasPrefix(value, "EV=") {
				fmt.Sscanf(strings.TrimPrefix(value, "EV="), "%x", &cur.EV)
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return devices, nil
}

// IsTouchpad reports whether the device looks like a touchpad: a matching
// name, or failing that, a pointer advertising both key and absolute axes.
func (d InputDevice) IsTouchpad() bool {
	if touchpadName.MatchString(d.Name) {
		return true
	}
	return d.EV&evKey != 0 && d.EV&evAbs != 0 && hasHandler(d.Handlers, "mouse")
}

// FindTouchpad picks the gesture device. want, if non-empty, selects by
// exact node or case-insensitive name substring instead of the heuristic.
func FindTouchpad(devs []InputDevice, want string) (InputDevice, error) {
	if want != "" {
		for _, d := range devs {
			if d.Node == want || strings.Contains(strings.ToLower(d.Name), strings.ToLower(want)) {
				return d, nil
			}
		}
		return InputDevice{}, fmt.Errorf("no input device matching %q", want)
	}

	// prefer devices named like a touchpad over the capability fallback
	for _, d := range devs {
		if touchpadName.MatchString(d.Name) && d.Node != "" {
			return d, nil
		}
	}
	for _, d := range devs {
		if d.IsTouchpad() && d.Node != "" {
			return d, nil
		}
	}
	return InputDevice{}, fmt.Errorf("no touchpad found among %d input devices", len(devs))
}

func hasHandler(handlers []string, prefix string) bool {
	for _, h := range handlers {
		if strings.HasPrefix(h, prefix) {
			return true
		}
	}
	return false
}
