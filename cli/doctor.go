package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mobile-next/gesturecli/commands"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run system diagnostics",
	Long:  `Performs system diagnostics for better troubleshooting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		response := commands.DoctorCommand(GetVersion())
		printJson(response)
		if response.Status == "error" {
			return fmt.Errorf("%s", response.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
