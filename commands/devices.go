package commands

import (
	"github.com/mobile-next/gesturecli/devices"
)

// DeviceListEntry is one input device with its selection marker.
type DeviceListEntry struct {
	devices.InputDevice
	Touchpad bool `json:"touchpad"`
	Selected bool `json:"selected"`
}

// DevicesCommand enumerates input devices and marks the one the engine
// would read gestures from.
func DevicesCommand(want string) *CommandResponse {
	devs, err := devices.List()
	if err != nil {
		return NewErrorResponse(err)
	}

	selected, selErr := devices.FindTouchpad(devs, want)

	var entries []DeviceListEntry
	for _, d := range devs {
		entries = append(entries, DeviceListEntry{
			InputDevice: d,
			Touchpad:    d.IsTouchpad(),
			Selected:    selErr == nil && d.Node == selected.Node && d.Name == selected.Name,
		})
	}
	return NewSuccessResponse(entries)
}
