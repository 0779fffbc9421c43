// Package copilot manages the GitHub Copilot CLI for AI-powered
// reading assistance. It is the host half of the assistant: the
// `pastel host` process uses this package to serve bridge commands,
// while the TUI only ever talks to the bridge.
//
// The feature is conditionally enabled based on whether the CLI is
// installed and authenticated on the user's machine.
package copilot

import (
	"os/exec"
	"strings"
)

// User-facing availability messages.
const (
	MsgReady            = "GitHub Copilot is ready"
	MsgRunning          = "AI assistant ready"
	MsgNotAuthenticated = "GitHub CLI not authenticated. Run 'gh auth login' to enable AI assistant."
	MsgNotInstalled     = "GitHub Copilot CLI not found. Install it to enable AI assistant."
)

// cmdOutput runs a probe command and returns its combined output.
// Swapped out in tests.
var cmdOutput = func(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// lookPath resolves a binary on PATH. Swapped out in tests.
var lookPath = exec.LookPath

// Availability is the result of probing the CLI and auth state.
type Availability struct {
	CLIInstalled     bool   `json:"cli_installed"`
	CLIAuthenticated bool   `json:"cli_authenticated"`
	Available        bool   `json:"available"`
	Message          string `json:"message"`
}

// isCLIInstalled reports whether the standalone copilot binary or the
// gh extension responds to --version.
func isCLIInstalled() bool {
	if _, err := cmdOutput("copilot", "--version"); err == nil {
		return true
	}
	if _, err := cmdOutput("gh", "copilot", "--version"); err == nil {
		return true
	}
	return false
}

// isGHAuthenticated reports whether the GitHub CLI has an active
// login. gh exits non-zero for some states that still include a valid
// account, so the output is parsed regardless of exit status.
func isGHAuthenticated() bool {
	out, err := cmdOutput("gh", "auth", "status")
	if err != nil && len(out) == 0 {
		return false
	}
	return parseAuthStatus(string(out))
}

// parseAuthStatus reports whether gh auth status output shows an
// active login.
func parseAuthStatus(output string) bool {
	return strings.Contains(output, "Logged in to") &&
		strings.Contains(output, "Active account: true")
}

// CheckAvailability probes the Copilot CLI and GitHub auth state and
// maps the combination to a user-facing message.
func CheckAvailability() Availability {
	installed := isCLIInstalled()
	authenticated := isGHAuthenticated()

	av := Availability{
		CLIInstalled:     installed,
		CLIAuthenticated: authenticated,
	}
	switch {
	case installed && authenticated:
		av.Available = true
		av.Message = MsgReady
	case installed:
		av.Message = MsgNotAuthenticated
	default:
		av.Message = MsgNotInstalled
	}
	return av
}

// cliCommand returns the binary and leading args for running the
// Copilot CLI, preferring the standalone binary over the gh
// extension.
func cliCommand() (string, []string) {
	if _, err := lookPath("copilot"); err == nil {
		return "copilot", nil
	}
	return "gh", []string{"copilot"}
}
