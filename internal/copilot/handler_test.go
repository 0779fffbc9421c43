package copilot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/pastelhq/pastel/internal/bridge"
	"github.com/pastelhq/pastel/internal/errors"
	"github.com/pastelhq/pastel/internal/logger"
)

// fakeAsker stands in for the Service so handler tests never touch a
// real subprocess.
type fakeAsker struct {
	running  bool
	started  bool
	stopped  bool
	startErr error
	askReply string
	askErr   error
	prompts  []string
}

func (f *fakeAsker) Start() error {
	f.started = true
	if f.startErr != nil {
		return f.startErr
	}
	f.running = true
	return nil
}

func (f *fakeAsker) Stop() {
	f.stopped = true
	f.running = false
}

func (f *fakeAsker) Running() bool { return f.running }

func (f *fakeAsker) Ask(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.askErr != nil {
		return "", f.askErr
	}
	return f.askReply, nil
}

func newTestHandler(fake *fakeAsker) *Handler {
	return &Handler{
		service: fake,
		log:     logger.ComponentLogger("Copilot"),
	}
}

func readyStubs() map[string]stubResult {
	return map[string]stubResult{
		"copilot --version": {out: []byte("copilot 1.0.0")},
		"gh auth status":    {out: []byte(ghAuthLoggedIn)},
	}
}

// ============================================================================
// Check
// ============================================================================

func TestHandler_Check_NotInstalled(t *testing.T) {
	stubCommands(t, map[string]stubResult{})
	h := newTestHandler(&fakeAsker{})

	result, err := h.Handle(context.Background(), bridge.CmdCheck, nil)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	status, ok := result.(bridge.Status)
	if !ok {
		t.Fatalf("expected Status result, got %T", result)
	}
	if status.Available || status.Running || status.CLIInstalled {
		t.Errorf("expected all-false status, got %+v", status)
	}
	if status.Message != MsgNotInstalled {
		t.Errorf("Message = %q, want %q", status.Message, MsgNotInstalled)
	}
}

func TestHandler_Check_ReadyNotRunning(t *testing.T) {
	stubCommands(t, readyStubs())
	h := newTestHandler(&fakeAsker{running: false})

	result, err := h.Handle(context.Background(), bridge.CmdCheck, nil)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	status := result.(bridge.Status)
	if !status.Available {
		t.Error("expected available status")
	}
	if status.Running {
		t.Error("expected not running")
	}
	if status.Message != MsgReady {
		t.Errorf("Message = %q, want %q", status.Message, MsgReady)
	}
}

func TestHandler_Check_Running(t *testing.T) {
	stubCommands(t, readyStubs())
	h := newTestHandler(&fakeAsker{running: true})

	result, _ := h.Handle(context.Background(), bridge.CmdCheck, nil)
	status := result.(bridge.Status)
	if !status.Running {
		t.Error("expected running status")
	}
	if status.Message != MsgRunning {
		t.Errorf("Message = %q, want %q", status.Message, MsgRunning)
	}
}

// ============================================================================
// Init
// ============================================================================

func TestHandler_Init_NotAvailable(t *testing.T) {
	stubCommands(t, map[string]stubResult{})
	fake := &fakeAsker{}
	h := newTestHandler(fake)

	result, err := h.Handle(context.Background(), bridge.CmdInit, nil)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	status := result.(bridge.Status)
	if status.Available {
		t.Error("expected unavailable status")
	}
	if fake.started {
		t.Error("service should not start when CLI is unavailable")
	}
}

func TestHandler_Init_StartsService(t *testing.T) {
	stubCommands(t, readyStubs())
	fake := &fakeAsker{}
	h := newTestHandler(fake)

	result, err := h.Handle(context.Background(), bridge.CmdInit, nil)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	status := result.(bridge.Status)
	if !fake.started {
		t.Error("expected service to be started")
	}
	if !status.Available || !status.Running {
		t.Errorf("expected available running status, got %+v", status)
	}
	if status.Message != MsgRunning {
		t.Errorf("Message = %q, want %q", status.Message, MsgRunning)
	}
}

func TestHandler_Init_StartFailure(t *testing.T) {
	stubCommands(t, readyStubs())
	fake := &fakeAsker{startErr: fmt.Errorf("spawn failed")}
	h := newTestHandler(fake)

	_, err := h.Handle(context.Background(), bridge.CmdInit, nil)
	if err == nil {
		t.Fatal("expected start error to propagate")
	}
}

// ============================================================================
// Content commands
// ============================================================================

func TestHandler_ContentCommands(t *testing.T) {
	tests := []struct {
		name       string
		command    string
		args       string
		wantPrompt string
	}{
		{
			name:       "summarize",
			command:    bridge.CmdSummarize,
			args:       `{"context":{"title":"Go 2 announced","score":900,"comment_count":512}}`,
			wantPrompt: "Title: Go 2 announced",
		},
		{
			name:       "analyze discussion",
			command:    bridge.CmdAnalyzeDiscussion,
			args:       `{"context":{"story_title":"Go 2 announced","comment_count":512,"top_comments":[{"author":"rsc","text_preview":"finally","reply_count":3}]}}`,
			wantPrompt: "1. rsc (3 replies)",
		},
		{
			name:       "explain",
			command:    bridge.CmdExplain,
			args:       `{"text":"GC pause","context":"Talking about Go runtime latency."}`,
			wantPrompt: "Term: \"GC pause\"",
		},
		{
			name:       "draft reply",
			command:    bridge.CmdDraftReply,
			args:       `{"context":{"parent_comment":"Generics ruined Go","parent_author":"grumpy","story_title":"Go 2 announced"}}`,
			wantPrompt: "Comment by grumpy",
		},
		{
			name:       "ask",
			command:    bridge.CmdAsk,
			args:       `{"prompt":"What is a goroutine?"}`,
			wantPrompt: "What is a goroutine?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAsker{running: true, askReply: "an answer"}
			h := newTestHandler(fake)

			result, err := h.Handle(context.Background(), tt.command, json.RawMessage(tt.args))
			if err != nil {
				t.Fatalf("Handle failed: %v", err)
			}

			resp, ok := result.(bridge.AssistantResponse)
			if !ok {
				t.Fatalf("expected AssistantResponse, got %T", result)
			}
			if resp.Content != "an answer" {
				t.Errorf("Content = %q, want %q", resp.Content, "an answer")
			}

			if len(fake.prompts) != 1 {
				t.Fatalf("expected 1 prompt, got %d", len(fake.prompts))
			}
			if !strings.Contains(fake.prompts[0], tt.wantPrompt) {
				t.Errorf("prompt missing %q:\n%s", tt.wantPrompt, fake.prompts[0])
			}
		})
	}
}

func TestHandler_ContentCommand_AskError(t *testing.T) {
	fake := &fakeAsker{running: true, askErr: errors.CopilotTimeout()}
	h := newTestHandler(fake)

	_, err := h.Handle(context.Background(), bridge.CmdAsk, json.RawMessage(`{"prompt":"hi"}`))
	if err == nil {
		t.Fatal("expected ask error to propagate")
	}
	if !errors.Is(err, errors.KindTimeout) {
		t.Errorf("expected KindTimeout, got %v", errors.GetKind(err))
	}
}

func TestHandler_BadArgs(t *testing.T) {
	h := newTestHandler(&fakeAsker{running: true})

	_, err := h.Handle(context.Background(), bridge.CmdSummarize, json.RawMessage(`"not an object"`))
	if err == nil {
		t.Fatal("expected error for malformed args")
	}
	if !errors.Is(err, errors.KindInvalid) {
		t.Errorf("expected KindInvalid, got %v", errors.GetKind(err))
	}
}

// ============================================================================
// Shutdown and unknown commands
// ============================================================================

func TestHandler_Shutdown(t *testing.T) {
	fake := &fakeAsker{running: true}
	h := newTestHandler(fake)

	result, err := h.Handle(context.Background(), bridge.CmdShutdown, nil)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
	if !fake.stopped {
		t.Error("expected service to be stopped")
	}
}

func TestHandler_UnknownCommand(t *testing.T) {
	h := newTestHandler(&fakeAsker{})

	_, err := h.Handle(context.Background(), "copilot_dance", nil)
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !errors.Is(err, errors.KindInvalid) {
		t.Errorf("expected KindInvalid, got %v", errors.GetKind(err))
	}
}
