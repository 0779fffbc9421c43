package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pastelhq/pastel/internal/bridge"
	"github.com/pastelhq/pastel/internal/copilot"
	"github.com/pastelhq/pastel/internal/logger"
)

var hostSocketPath string

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Run the assistant companion process",
	Long: `Host runs the assistant companion process the TUI talks to over a
unix socket. It keeps a Copilot CLI session warm so assistant requests
do not pay a process startup on every question.

Leave it running in another terminal; the TUI detects the socket on
startup.`,
	RunE: runHost,
}

func init() {
	defaultSocket := os.Getenv(bridge.SocketPathEnv)
	if defaultSocket == "" {
		defaultSocket = bridge.DefaultSocketPath()
	}
	hostCmd.Flags().StringVar(&hostSocketPath, "socket", defaultSocket, "Unix socket path to listen on")
	rootCmd.AddCommand(hostCmd)
}

func runHost(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logger.HostLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()

	avail := copilot.CheckAvailability()
	if !avail.CLIInstalled {
		fmt.Fprintln(os.Stderr, "Warning: Copilot CLI not found; assistant requests will report it as missing.")
	} else if !avail.CLIAuthenticated {
		fmt.Fprintln(os.Stderr, "Warning: Copilot CLI is not authenticated; run 'gh auth login' first.")
	}

	service := copilot.NewService()
	defer service.Stop()

	server, err := bridge.NewServer(hostSocketPath, copilot.NewHandler(service))
	if err != nil {
		return fmt.Errorf("error starting host: %w", err)
	}
	server.Start()

	fmt.Printf("pastel host listening on %s\n", server.SocketPath())
	fmt.Println("Press Ctrl+C to stop.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\nShutting down.")
	return server.Close()
}
