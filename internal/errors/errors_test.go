package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindPermission, "permission denied"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindConfig, "configuration error"},
		{KindBridge, "bridge error"},
		{KindCopilot, "copilot error"},
		{KindTimeout, "timeout"},
		{Kind(999), "unknown error"}, // Unknown kind
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Op: "test.Op", Err: underlying}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", got, underlying)
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name       string
		args       []interface{}
		wantOp     Op
		wantKind   Kind
		wantHasErr bool
	}{
		{
			name:       "with all args",
			args:       []interface{}{Op("test.Op"), KindNotFound, "context", errors.New("error")},
			wantOp:     "test.Op",
			wantKind:   KindNotFound,
			wantHasErr: true,
		},
		{
			name:       "with op and kind",
			args:       []interface{}{Op("test.Op"), KindInvalid, "just a message"},
			wantOp:     "test.Op",
			wantKind:   KindInvalid,
			wantHasErr: true, // Context becomes the error when no error is provided
		},
		{
			name:       "with just error",
			args:       []interface{}{errors.New("simple error")},
			wantOp:     "",
			wantKind:   KindUnknown,
			wantHasErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("E() returned %T, want *Error", err)
			}

			if e.Op != tt.wantOp {
				t.Errorf("E().Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("E().Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if (e.Err != nil) != tt.wantHasErr {
				t.Errorf("E().Err nil = %v, want nil = %v", e.Err == nil, !tt.wantHasErr)
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{
			name:     "matching kind",
			err:      E(Op("test"), KindNotFound, "not found"),
			kind:     KindNotFound,
			expected: true,
		},
		{
			name:     "non-matching kind",
			err:      E(Op("test"), KindNotFound, "not found"),
			kind:     KindInvalid,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("regular error"),
			kind:     KindNotFound,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			kind:     KindNotFound,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("wrapped: %w", E(Op("test"), KindTimeout, "timeout")),
			kind:     KindTimeout,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.kind); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "structured error",
			err:      E(Op("test"), KindNotFound, "not found"),
			expected: KindNotFound,
		},
		{
			name:     "regular error",
			err:      errors.New("regular error"),
			expected: KindUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetKind(tt.err); got != tt.expected {
				t.Errorf("GetKind() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestItemNotFound(t *testing.T) {
	err := ItemNotFound(8863)

	if !Is(err, KindNotFound) {
		t.Error("ItemNotFound should return KindNotFound error")
	}

	if e, ok := err.(*Error); ok {
		if e.Op != "hn.Item" {
			t.Errorf("Op = %q, want %q", e.Op, "hn.Item")
		}
	} else {
		t.Error("ItemNotFound should return *Error")
	}
}

func TestFeedFetchFailed(t *testing.T) {
	underlying := errors.New("connection refused")
	err := FeedFetchFailed("topstories", underlying)

	if !Is(err, KindNetwork) {
		t.Error("FeedFetchFailed should return KindNetwork error")
	}

	if !errors.Is(err, underlying) {
		t.Error("FeedFetchFailed should wrap the underlying error")
	}
}

func TestSearchFailed(t *testing.T) {
	underlying := errors.New("bad gateway")
	err := SearchFailed("rust", underlying)

	if !Is(err, KindNetwork) {
		t.Error("SearchFailed should return KindNetwork error")
	}
}

func TestConfigLoadFailed(t *testing.T) {
	underlying := errors.New("file not found")
	err := ConfigLoadFailed("/path/to/config", underlying)

	if !Is(err, KindConfig) {
		t.Error("ConfigLoadFailed should return KindConfig error")
	}
}

func TestConfigSaveFailed(t *testing.T) {
	underlying := errors.New("permission denied")
	err := ConfigSaveFailed("/path/to/config", underlying)

	if !Is(err, KindConfig) {
		t.Error("ConfigSaveFailed should return KindConfig error")
	}
}

func TestConfigInvalid(t *testing.T) {
	err := ConfigInvalid("unknown feed name")

	if !Is(err, KindInvalid) {
		t.Error("ConfigInvalid should return KindInvalid error")
	}
}

func TestBridgeUnavailable(t *testing.T) {
	err := BridgeUnavailable()

	if !Is(err, KindBridge) {
		t.Error("BridgeUnavailable should return KindBridge error")
	}
}

func TestBridgeDialFailed(t *testing.T) {
	underlying := errors.New("no such file or directory")
	err := BridgeDialFailed("/tmp/pastel-host.sock", underlying)

	if !Is(err, KindBridge) {
		t.Error("BridgeDialFailed should return KindBridge error")
	}

	if !errors.Is(err, underlying) {
		t.Error("BridgeDialFailed should wrap the underlying error")
	}
}

func TestBridgeRequestFailed(t *testing.T) {
	underlying := errors.New("broken pipe")
	err := BridgeRequestFailed("copilot_ask", underlying)

	if !Is(err, KindBridge) {
		t.Error("BridgeRequestFailed should return KindBridge error")
	}
}

func TestCopilotNotRunning(t *testing.T) {
	err := CopilotNotRunning()

	if !Is(err, KindCopilot) {
		t.Error("CopilotNotRunning should return KindCopilot error")
	}
}

func TestCopilotStartFailed(t *testing.T) {
	underlying := errors.New("copilot not found in PATH")
	err := CopilotStartFailed(underlying)

	if !Is(err, KindCopilot) {
		t.Error("CopilotStartFailed should return KindCopilot error")
	}
}

func TestCopilotTimeout(t *testing.T) {
	err := CopilotTimeout()

	if !Is(err, KindTimeout) {
		t.Error("CopilotTimeout should return KindTimeout error")
	}
}

func TestCLINotFound(t *testing.T) {
	err := CLINotFound("gh")

	if !Is(err, KindNotFound) {
		t.Error("CLINotFound should return KindNotFound error")
	}

	if e, ok := err.(*Error); ok {
		if e.Op != "cli.Check" {
			t.Errorf("Op = %q, want %q", e.Op, "cli.Check")
		}
	}
}

func TestErrorChaining(t *testing.T) {
	// Test that errors can be properly chained and unwrapped
	innerErr := errors.New("original error")
	middleErr := E(Op("middle.Op"), KindIO, innerErr)
	outerErr := E(Op("outer.Op"), KindConfig, middleErr)

	// Should be able to unwrap to find inner error
	if !errors.Is(outerErr, innerErr) {
		t.Error("Should be able to find inner error through chain")
	}

	// Kind should be from the outer error
	if GetKind(outerErr) != KindConfig {
		t.Error("GetKind should return outer error's kind")
	}
}
