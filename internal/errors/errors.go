// Package errors provides structured error types for the Pastel application.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindIO
	KindNetwork
	KindConfig
	KindBridge
	KindCopilot
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindBridge:
		return "bridge error"
	case KindCopilot:
		return "copilot error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for Pastel.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Hacker News API errors
func ItemNotFound(id int) error {
	return E(Op("hn.Item"), KindNotFound, fmt.Sprintf("item %d not found", id))
}

func FeedFetchFailed(feed string, err error) error {
	return E(Op("hn.Stories"), KindNetwork, fmt.Sprintf("failed to fetch %s feed", feed), err)
}

func SearchFailed(query string, err error) error {
	return E(Op("hn.Search"), KindNetwork, fmt.Sprintf("search for %q failed", query), err)
}

func UserNotFound(username string) error {
	return E(Op("hn.User"), KindNotFound, fmt.Sprintf("user %s not found", username))
}

func ArticleFetchFailed(url string, err error) error {
	return E(Op("hn.ArticleContent"), KindNetwork, fmt.Sprintf("failed to fetch article at %s", url), err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Bridge errors
func BridgeUnavailable() error {
	return E(Op("bridge.Detect"), KindBridge, "no host socket found")
}

func BridgeDialFailed(path string, err error) error {
	return E(Op("bridge.Dial"), KindBridge, fmt.Sprintf("failed to connect to host socket %s", path), err)
}

func BridgeRequestFailed(command string, err error) error {
	return E(Op("bridge.Invoke"), KindBridge, fmt.Sprintf("command %s failed", command), err)
}

// Copilot errors
func CopilotNotRunning() error {
	return E(Op("copilot.Ask"), KindCopilot, "copilot service is not running")
}

func CopilotStartFailed(err error) error {
	return E(Op("copilot.Start"), KindCopilot, "failed to start copilot CLI", err)
}

func CopilotTimeout() error {
	return E(Op("copilot.Ask"), KindTimeout, "timed out waiting for copilot response")
}

// CLI prerequisite errors
func CLINotFound(name string) error {
	return E(Op("cli.Check"), KindNotFound, fmt.Sprintf("required CLI tool '%s' not found in PATH", name))
}
