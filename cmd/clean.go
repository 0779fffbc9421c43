package cmd

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pastelhq/pastel/internal/bridge"
	"github.com/pastelhq/pastel/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and any stale host socket",
	Long: `Clean removes pastel's log files from /tmp and deletes a leftover host
socket file when no host is listening on it.

It will prompt for confirmation before proceeding unless the --yes flag
is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	staleSocket := staleSocketPath()

	fmt.Println("This will remove:")
	fmt.Println("  - pastel log files in /tmp")
	if staleSocket != "" {
		fmt.Printf("  - stale host socket %s\n", staleSocket)
	}

	if !skipConfirm {
		fmt.Print("\nProceed? [y/N] ")
		reader := bufio.NewReader(input)
		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		return fmt.Errorf("error clearing logs: %w", err)
	}
	fmt.Printf("Removed %d log file(s).\n", logsCleared)

	if staleSocket != "" {
		if err := os.Remove(staleSocket); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error removing stale socket: %w", err)
		}
		fmt.Printf("Removed stale socket %s.\n", staleSocket)
	}

	return nil
}

// staleSocketPath returns the host socket path if a socket file exists
// there with nothing accepting connections, or "" when there is
// nothing to clean. A live host's socket is left alone.
func staleSocketPath() string {
	path := os.Getenv(bridge.SocketPathEnv)
	if path == "" {
		path = bridge.DefaultSocketPath()
	}
	info, err := os.Stat(path)
	if err != nil || info.Mode()&os.ModeSocket == 0 {
		return ""
	}
	conn, err := net.DialTimeout("unix", path, time.Second)
	if err != nil {
		return path
	}
	conn.Close()
	return ""
}
