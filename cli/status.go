package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mobile-next/gesturecli/server"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running gesturecli server",
	Long:  `Sends a status request to a running gesturecli server and prints the result.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = defaultServerAddress
		}

		result, err := callServer(addr, "status")
		if err != nil {
			return err
		}
		printJson(result)
		return nil
	},
}

// callServer posts one JSON-RPC request and returns the result field.
func callServer(addr, method string) (interface{}, error) {
	if !strings.Contains(addr, ":") {
		addr = "localhost:" + addr
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	reqBody := server.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		ID:      1,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post("http://"+addr+"/rpc", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	var rpcResp server.JSONRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("invalid server response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("server error: %v", rpcResp.Error)
	}
	return rpcResp.Result, nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().String("listen", "", fmt.Sprintf("Address of the server (default: %s)", defaultServerAddress))
}
