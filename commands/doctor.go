package commands

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// DoctorInfo reports the health of the engine's external collaborators.
type DoctorInfo struct {
	GestureCLIVersion string   `json:"gesturecli_version"`
	OS                string   `json:"os"`
	LibinputPath      string   `json:"libinput_path,omitempty"`
	LibinputVersion   string   `json:"libinput_version,omitempty"`
	XdotoolPath       string   `json:"xdotool_path,omitempty"`
	WmctrlPath        string   `json:"wmctrl_path,omitempty"`
	ProcInputReadable bool     `json:"proc_input_readable"`
	Problems          []string `json:"problems,omitempty"`
}

// DoctorCommand checks that the external tools the engine shells out to are
// present. Missing optional tools (xdotool, wmctrl) degrade features;
// missing libinput is a blocker.
func DoctorCommand(version string) *CommandResponse {
	info := DoctorInfo{
		GestureCLIVersion: version,
		OS:                runtime.GOOS,
	}

	if path, err := exec.LookPath("libinput"); err == nil {
		info.LibinputPath = path
		if out, err := exec.Command("libinput", "--version").CombinedOutput(); err == nil {
			info.LibinputVersion = strings.TrimSpace(string(out))
		}
	} else if path, err := exec.LookPath("libinput-debug-events"); err == nil {
		info.LibinputPath = path
	} else {
		info.Problems = append(info.Problems, "libinput not found in PATH; the engine cannot read device events")
	}

	if path, err := exec.LookPath("xdotool"); err == nil {
		info.XdotoolPath = path
	} else {
		info.Problems = append(info.Problems, "xdotool not found; per-application scopes fall back to global")
	}

	if path, err := exec.LookPath("wmctrl"); err == nil {
		info.WmctrlPath = path
	} else {
		info.Problems = append(info.Problems, "wmctrl not found; _internal workspace commands will fail")
	}

	if f, err := os.Open("/proc/bus/input/devices"); err == nil {
		info.ProcInputReadable = true
		f.Close()
	} else {
		info.Problems = append(info.Problems, "/proc/bus/input/devices not readable; device listing unavailable")
	}

	return NewSuccessResponse(info)
}
