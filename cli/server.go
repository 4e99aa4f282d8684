package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mobile-next/gesturecli/commands"
	"github.com/mobile-next/gesturecli/daemon"
	"github.com/mobile-next/gesturecli/server"
	"github.com/mobile-next/gesturecli/utils"
)

const defaultServerAddress = "localhost:12600"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server management commands",
	Long:  `Commands for managing the gesturecli status server.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gesture engine with the status server",
	Long:  `Runs the gesture engine and serves its state over JSON-RPC, with a WebSocket feed of completed gestures.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr := cmd.Flag("listen").Value.String()
		if listenAddr == "" {
			listenAddr = defaultServerAddress
		}

		// GetBool cannot fail for defined flags
		enableCORS, _ := cmd.Flags().GetBool("cors")
		isDaemon, _ := cmd.Flags().GetBool("daemon")

		if isDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("Server daemon spawned, attempting to listen on %s\n", listenAddr)
			return nil
		}

		release, err := daemon.LockPidFile()
		if err != nil {
			return err
		}
		defer release()
		commands.RegisterCleanup(release)

		eng, src, err := buildEngine(server.Broadcast)
		if err != nil {
			// serve config/device diagnostics even when the engine can't start
			utils.Info("engine unavailable: %v", err)
			return server.StartServer(listenAddr, enableCORS, nil, resolveConfigPath())
		}

		go func() {
			if err := eng.Run(src.Events()); err != nil {
				utils.Info("engine stopped: %v", err)
			}
		}()

		return server.StartServer(listenAddr, enableCORS, eng, resolveConfigPath())
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the daemonized gesturecli server",
	Long:  `Connects to the server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = defaultServerAddress
		}

		err := daemon.KillServer(addr)
		if err != nil {
			return err
		}

		fmt.Printf("Server shutdown command sent successfully\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)

	// server start flags
	serverStartCmd.Flags().String("listen", "", "Address to listen on (e.g., 'localhost:12600' or '0.0.0.0:13000')")
	serverStartCmd.Flags().Bool("cors", false, "Enable CORS support")
	serverStartCmd.Flags().BoolP("daemon", "d", false, "Run server in daemon mode (background)")
	serverStartCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the bindings config file")
	serverStartCmd.Flags().StringVar(&deviceName, "device", "", "restrict the event stream to one input device")
	serverStartCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log resolved commands instead of running them")

	// server kill flags
	serverKillCmd.Flags().String("listen", "", fmt.Sprintf("Address of server to kill (default: %s)", defaultServerAddress))
}
