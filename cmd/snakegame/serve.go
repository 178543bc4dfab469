package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/qicun/SnakeGame/internal/config"
	"github.com/qicun/SnakeGame/internal/platform/tui"
)

var (
	flagServeAddr    string
	flagServeHostKey string
	flagServeConfig  string
	flagServeIdle    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over SSH",
	Long: `Run an SSH server so people can play remotely:

  snakegame serve --addr :23234

Then connect with:

  ssh -p 23234 yourname@yourhost

Each session gets its own game sized to the connecting terminal;
scores are recorded under the SSH username.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":23234", "Address to listen on")
	serveCmd.Flags().StringVar(&flagServeHostKey, "host-key", "", "Path to SSH host key (default: ~/.snakegame/host_key)")
	serveCmd.Flags().StringVarP(&flagServeConfig, "config", "c", "", "Path to game config file")
	serveCmd.Flags().DurationVar(&flagServeIdle, "idle-timeout", 30*time.Minute, "Disconnect idle sessions after this duration")
}

func runServe(cmd *cobra.Command, args []string) {
	fileCfg, err := config.Load(flagServeConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagServeAddr
	srvCfg.HostKeyPath = flagServeHostKey
	srvCfg.DBPath = flagDBPath
	srvCfg.GameConfig = fileCfg
	srvCfg.IdleTimeout = flagServeIdle

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
