package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mobile-next/gesturecli/commands"
	"github.com/mobile-next/gesturecli/config"
	"github.com/mobile-next/gesturecli/daemon"
	"github.com/mobile-next/gesturecli/devices"
	"github.com/mobile-next/gesturecli/engine"
	"github.com/mobile-next/gesturecli/focus"
	"github.com/mobile-next/gesturecli/types"
	"github.com/mobile-next/gesturecli/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the gesture engine",
	Long:  `Starts the event loop: reads device events from libinput, recognizes gestures, and dispatches the bound commands. Runs until the event stream closes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		isDaemon, _ := cmd.Flags().GetBool("daemon")
		if isDaemon && !daemon.IsChild() {
			child, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}
			if child != nil {
				fmt.Printf("Gesture engine daemon spawned (pid %d)\n", child.Pid)
			}
			return nil
		}

		release, err := daemon.LockPidFile()
		if err != nil {
			return err
		}
		defer release()
		// the deferred call never runs when main exits on a signal
		commands.RegisterCleanup(release)

		eng, src, err := buildEngine(nil)
		if err != nil {
			return err
		}
		return eng.Run(src.Events())
	},
}

// buildEngine wires config, event source, focus resolver and dispatcher into
// a ready-to-run engine. listener may be nil.
func buildEngine(listener func(types.CompletedGesture)) (*engine.Engine, *devices.EventSource, error) {
	table, settings, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, nil, err
	}

	// by default listen on all devices: gestures come from the touchpad but
	// held keys come from the keyboard
	node := ""
	if deviceName != "" {
		devs, err := devices.List()
		if err != nil {
			return nil, nil, err
		}
		dev, err := devices.FindTouchpad(devs, deviceName)
		if err != nil {
			return nil, nil, err
		}
		node = dev.Node
		utils.Verbose("restricting event stream to %s (%s)", dev.Name, dev.Node)
	}

	src, err := devices.StartEventSource(node)
	if err != nil {
		return nil, nil, err
	}
	if registry := commands.GetRegistry(); registry != nil {
		registry.Register("libinput", src)
	}

	dispatcher := engine.NewDispatcher(nil, dryRun)
	eng := engine.New(table, dispatcher, engine.Options{
		SwipeThreshold: settings.SwipeThreshold,
		Focus:          focus.NewResolver(),
		Listener:       listener,
	})
	return eng, src, nil
}

// resolveConfigPath returns the --config value or the default XDG location.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "gesturecli", "gesturecli.conf")
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the bindings config file")
	runCmd.Flags().StringVar(&deviceName, "device", "", "restrict the event stream to one input device (node or name substring)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log resolved commands instead of running them")
	runCmd.Flags().BoolP("daemon", "d", false, "run the engine in daemon mode (background)")
}
