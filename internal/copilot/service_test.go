package copilot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pastelhq/pastel/internal/errors"
)

// ============================================================================
// Lifecycle
// ============================================================================

func TestNewService_NotRunning(t *testing.T) {
	s := NewService()
	if s.Running() {
		t.Error("new service should not be running")
	}
}

func TestService_AskBeforeStart(t *testing.T) {
	s := NewService()

	_, err := s.Ask(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error when service is not running")
	}
	if !errors.Is(err, errors.KindCopilot) {
		t.Errorf("expected KindCopilot, got %v", errors.GetKind(err))
	}
}

func TestService_StopWhenNotRunning(t *testing.T) {
	s := NewService()
	// Must not panic or block.
	s.Stop()
	s.Stop()
}

func TestService_StartWithoutCLI(t *testing.T) {
	stubCommands(t, map[string]stubResult{})

	s := NewService()
	err := s.Start()
	if err == nil {
		t.Fatal("expected error when CLI is not installed")
	}
	if !errors.Is(err, errors.KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", errors.GetKind(err))
	}
	if s.Running() {
		t.Error("service should not be running after failed start")
	}
}

func TestService_StartWithoutAuth(t *testing.T) {
	stubCommands(t, map[string]stubResult{
		"copilot --version": {out: []byte("copilot 1.0.0")},
		"gh auth status":    {out: []byte("You are not logged into any GitHub hosts.")},
	})

	s := NewService()
	err := s.Start()
	if err == nil {
		t.Fatal("expected error when gh is not authenticated")
	}
	if !errors.Is(err, errors.KindPermission) {
		t.Errorf("expected KindPermission, got %v", errors.GetKind(err))
	}
}

// ============================================================================
// CLI arguments
// ============================================================================

func TestBuildArgs(t *testing.T) {
	args := buildArgs()

	if args[0] != "--stdio" {
		t.Errorf("expected --stdio first, got %q", args[0])
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--system-prompt") {
		t.Error("args missing --system-prompt")
	}
	if !strings.Contains(joined, "Hacker News reader assistant") {
		t.Error("args missing the system prompt content")
	}
}

// ============================================================================
// Response collection
// ============================================================================

func feedEvents(events ...sessionEvent) chan sessionEvent {
	ch := make(chan sessionEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}
	return ch
}

func TestCollectResponse_AccumulatesDeltas(t *testing.T) {
	ch := feedEvents(
		sessionEvent{Type: eventDelta, Delta: "Hello"},
		sessionEvent{Type: eventDelta, Delta: ", "},
		sessionEvent{Type: eventDelta, Delta: "world"},
		sessionEvent{Type: eventIdle},
	)

	got, err := collectResponse(context.Background(), ch, time.Second)
	if err != nil {
		t.Fatalf("collectResponse failed: %v", err)
	}
	if got != "Hello, world" {
		t.Errorf("got %q, want %q", got, "Hello, world")
	}
}

func TestCollectResponse_FullMessageFallback(t *testing.T) {
	ch := feedEvents(
		sessionEvent{Type: eventMessage, Content: "complete answer"},
		sessionEvent{Type: eventIdle},
	)

	got, err := collectResponse(context.Background(), ch, time.Second)
	if err != nil {
		t.Fatalf("collectResponse failed: %v", err)
	}
	if got != "complete answer" {
		t.Errorf("got %q, want %q", got, "complete answer")
	}
}

func TestCollectResponse_DeltasWinOverFullMessage(t *testing.T) {
	// When deltas streamed first, the trailing full message is an
	// echo and must not be double-counted.
	ch := feedEvents(
		sessionEvent{Type: eventDelta, Delta: "streamed"},
		sessionEvent{Type: eventMessage, Content: "streamed"},
		sessionEvent{Type: eventIdle},
	)

	got, err := collectResponse(context.Background(), ch, time.Second)
	if err != nil {
		t.Fatalf("collectResponse failed: %v", err)
	}
	if got != "streamed" {
		t.Errorf("got %q, want %q", got, "streamed")
	}
}

func TestCollectResponse_SessionError(t *testing.T) {
	ch := feedEvents(
		sessionEvent{Type: eventDelta, Delta: "partial"},
		sessionEvent{Type: eventError, Message: "model overloaded"},
	)

	_, err := collectResponse(context.Background(), ch, time.Second)
	if err == nil {
		t.Fatal("expected error from session_error event")
	}
	if !errors.Is(err, errors.KindCopilot) {
		t.Errorf("expected KindCopilot, got %v", errors.GetKind(err))
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("error should carry the session message, got %v", err)
	}
}

func TestCollectResponse_ProcessExit(t *testing.T) {
	ch := make(chan sessionEvent)
	close(ch)

	_, err := collectResponse(context.Background(), ch, time.Second)
	if err == nil {
		t.Fatal("expected error when event channel closes mid-response")
	}
	if !errors.Is(err, errors.KindCopilot) {
		t.Errorf("expected KindCopilot, got %v", errors.GetKind(err))
	}
}

func TestCollectResponse_InactivityTimeout(t *testing.T) {
	ch := make(chan sessionEvent) // never delivers

	start := time.Now()
	_, err := collectResponse(context.Background(), ch, 20*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, errors.KindTimeout) {
		t.Errorf("expected KindTimeout, got %v", errors.GetKind(err))
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}

func TestCollectResponse_ContextCancelled(t *testing.T) {
	ch := make(chan sessionEvent)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collectResponse(ctx, ch, time.Second)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if !errors.Is(err, errors.KindTimeout) {
		t.Errorf("expected KindTimeout, got %v", errors.GetKind(err))
	}
}
