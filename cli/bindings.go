package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mobile-next/gesturecli/commands"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Show the parsed binding table",
	Long:  `Loads and validates the bindings config file, then prints the resulting binding table grouped by application scope.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		response := commands.BindingsCommand(commands.BindingsRequest{ConfigPath: resolveConfigPath()})
		printJson(response)
		if response.Status == "error" {
			return fmt.Errorf("%s", response.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bindingsCmd)
	bindingsCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the bindings config file")
}
