package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-frogger/internal/platform/tui"
)

var (
	flagHost        string
	flagPort        int
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the frogger SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own independent game. All connections share
one scoreboard, kept in memory until the server stops.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.frogger/host_key

Examples:
  frogger serve                           # Listen on :23234 with auto-generated key
  frogger serve --port 2222               # Listen on port 2222
  frogger serve --host 127.0.0.1          # Local connections only
  frogger serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", "", "Interface to listen on (empty = all)")
	serveCmd.Flags().IntVar(&flagPort, "port", 23234, "SSH port")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagPort <= 0 || flagPort > 65535 {
		return fmt.Errorf("invalid port %d", flagPort)
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = net.JoinHostPort(flagHost, strconv.Itoa(flagPort))
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	serverCfg.Game = cfg
	serverCfg.Logger = newLogger("frogger-ssh", os.Stderr)

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting frogger SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %d\n", flagPort)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
