package copilot

import (
	"fmt"
	"strings"
	"testing"
)

type stubResult struct {
	out []byte
	err error
}

// stubCommands replaces cmdOutput with a map lookup keyed by the full
// command line. Unlisted commands fail as if the binary were missing.
func stubCommands(t *testing.T, outputs map[string]stubResult) {
	t.Helper()
	orig := cmdOutput
	cmdOutput = func(name string, args ...string) ([]byte, error) {
		key := strings.Join(append([]string{name}, args...), " ")
		if r, ok := outputs[key]; ok {
			return r.out, r.err
		}
		return nil, fmt.Errorf("%s: executable file not found in $PATH", name)
	}
	t.Cleanup(func() { cmdOutput = orig })
}

const ghAuthLoggedIn = `github.com
  ✓ Logged in to github.com account octocat (keyring)
  - Active account: true
  - Git operations protocol: https`

// ============================================================================
// Auth status parsing
// ============================================================================

func TestParseAuthStatus(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{"active login", ghAuthLoggedIn, true},
		{"logged in but inactive", "Logged in to github.com\nActive account: false", false},
		{"not logged in", "You are not logged into any GitHub hosts.", false},
		{"empty output", "", false},
		{"active without login line", "Active account: true", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseAuthStatus(tt.output); got != tt.want {
				t.Errorf("parseAuthStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsGHAuthenticated_NonZeroExitStillParsed(t *testing.T) {
	// gh auth status historically exited non-zero in some valid
	// states; the output decides, not the exit code.
	stubCommands(t, map[string]stubResult{
		"gh auth status": {out: []byte(ghAuthLoggedIn), err: fmt.Errorf("exit status 1")},
	})

	if !isGHAuthenticated() {
		t.Error("expected authenticated when output shows an active login")
	}
}

// ============================================================================
// Availability
// ============================================================================

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name          string
		outputs       map[string]stubResult
		wantInstalled bool
		wantAuth      bool
		wantAvailable bool
		wantMessage   string
	}{
		{
			name: "ready",
			outputs: map[string]stubResult{
				"copilot --version": {out: []byte("copilot 1.0.0")},
				"gh auth status":    {out: []byte(ghAuthLoggedIn)},
			},
			wantInstalled: true,
			wantAuth:      true,
			wantAvailable: true,
			wantMessage:   MsgReady,
		},
		{
			name: "installed via gh extension",
			outputs: map[string]stubResult{
				"gh copilot --version": {out: []byte("gh-copilot 1.2.0")},
				"gh auth status":       {out: []byte(ghAuthLoggedIn)},
			},
			wantInstalled: true,
			wantAuth:      true,
			wantAvailable: true,
			wantMessage:   MsgReady,
		},
		{
			name: "not authenticated",
			outputs: map[string]stubResult{
				"copilot --version": {out: []byte("copilot 1.0.0")},
				"gh auth status":    {out: []byte("You are not logged into any GitHub hosts.")},
			},
			wantInstalled: true,
			wantAuth:      false,
			wantAvailable: false,
			wantMessage:   MsgNotAuthenticated,
		},
		{
			name:          "not installed",
			outputs:       map[string]stubResult{},
			wantInstalled: false,
			wantAuth:      false,
			wantAvailable: false,
			wantMessage:   MsgNotInstalled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubCommands(t, tt.outputs)

			av := CheckAvailability()
			if av.CLIInstalled != tt.wantInstalled {
				t.Errorf("CLIInstalled = %v, want %v", av.CLIInstalled, tt.wantInstalled)
			}
			if av.CLIAuthenticated != tt.wantAuth {
				t.Errorf("CLIAuthenticated = %v, want %v", av.CLIAuthenticated, tt.wantAuth)
			}
			if av.Available != tt.wantAvailable {
				t.Errorf("Available = %v, want %v", av.Available, tt.wantAvailable)
			}
			if av.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", av.Message, tt.wantMessage)
			}
		})
	}
}

// ============================================================================
// CLI selection
// ============================================================================

func TestCLICommand_PrefersStandaloneBinary(t *testing.T) {
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if name == "copilot" {
			return "/usr/local/bin/copilot", nil
		}
		return "", fmt.Errorf("not found")
	}
	t.Cleanup(func() { lookPath = orig })

	name, leading := cliCommand()
	if name != "copilot" {
		t.Errorf("expected standalone binary, got %q", name)
	}
	if len(leading) != 0 {
		t.Errorf("expected no leading args, got %v", leading)
	}
}

func TestCLICommand_FallsBackToGHExtension(t *testing.T) {
	orig := lookPath
	lookPath = func(name string) (string, error) {
		return "", fmt.Errorf("not found")
	}
	t.Cleanup(func() { lookPath = orig })

	name, leading := cliCommand()
	if name != "gh" {
		t.Errorf("expected gh fallback, got %q", name)
	}
	if len(leading) != 1 || leading[0] != "copilot" {
		t.Errorf("expected [copilot] leading args, got %v", leading)
	}
}
