package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mobile-next/gesturecli/commands"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List input devices",
	Long:  `Enumerates the kernel's input devices and marks the touchpad the engine would read gestures from.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		response := commands.DevicesCommand(deviceName)
		printJson(response)
		if response.Status == "error" {
			return fmt.Errorf("%s", response.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().StringVar(&deviceName, "device", "", "select a device by node or name substring instead of the touchpad heuristic")
}
