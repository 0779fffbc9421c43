package copilot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pastelhq/pastel/internal/bridge"
	"github.com/pastelhq/pastel/internal/errors"
	"github.com/pastelhq/pastel/internal/logger"
)

// asker is the slice of Service the handler needs. Narrowed for
// tests.
type asker interface {
	Start() error
	Stop()
	Running() bool
	Ask(ctx context.Context, prompt string) (string, error)
}

// Handler dispatches bridge commands to the copilot service.
type Handler struct {
	service asker
	log     *slog.Logger
}

// Compile-time check that Handler satisfies bridge.Handler.
var _ bridge.Handler = (*Handler)(nil)

// NewHandler creates a handler backed by service.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		log:     logger.ComponentLogger("Copilot"),
	}
}

// Handle executes one bridge command.
func (h *Handler) Handle(ctx context.Context, command string, args json.RawMessage) (any, error) {
	const op = errors.Op("copilot.Handle")

	switch command {
	case bridge.CmdCheck:
		return h.status(), nil

	case bridge.CmdInit:
		return h.initialize()

	case bridge.CmdShutdown:
		h.service.Stop()
		return nil, nil

	case bridge.CmdSummarize:
		var p bridge.SummarizeArgs
		if err := json.Unmarshal(args, &p); err != nil {
			return nil, errors.E(op, errors.KindInvalid, "bad summarize args", err)
		}
		return h.respond(ctx, SummarizePrompt(p.Context))

	case bridge.CmdAnalyzeDiscussion:
		var p bridge.AnalyzeDiscussionArgs
		if err := json.Unmarshal(args, &p); err != nil {
			return nil, errors.E(op, errors.KindInvalid, "bad analyze args", err)
		}
		return h.respond(ctx, AnalyzeDiscussionPrompt(p.Context))

	case bridge.CmdExplain:
		var p bridge.ExplainArgs
		if err := json.Unmarshal(args, &p); err != nil {
			return nil, errors.E(op, errors.KindInvalid, "bad explain args", err)
		}
		return h.respond(ctx, ExplainPrompt(p.Text, p.Context))

	case bridge.CmdDraftReply:
		var p bridge.DraftReplyArgs
		if err := json.Unmarshal(args, &p); err != nil {
			return nil, errors.E(op, errors.KindInvalid, "bad draft reply args", err)
		}
		return h.respond(ctx, DraftReplyPrompt(p.Context))

	case bridge.CmdAsk:
		var p bridge.AskArgs
		if err := json.Unmarshal(args, &p); err != nil {
			return nil, errors.E(op, errors.KindInvalid, "bad ask args", err)
		}
		return h.respond(ctx, p.Prompt)

	default:
		return nil, errors.E(op, errors.KindInvalid, fmt.Sprintf("unknown command %q", command))
	}
}

// status reports the current service state without starting anything.
func (h *Handler) status() bridge.Status {
	availability := CheckAvailability()
	running := h.service.Running()

	message := availability.Message
	if running {
		message = MsgRunning
	}

	return bridge.Status{
		Available:        availability.Available,
		Running:          running,
		CLIInstalled:     availability.CLIInstalled,
		CLIAuthenticated: availability.CLIAuthenticated,
		Message:          message,
	}
}

// initialize starts the service when the CLI is usable. An unusable
// CLI is not an error; the status carries the reason to the TUI.
func (h *Handler) initialize() (bridge.Status, error) {
	availability := CheckAvailability()

	if !availability.Available {
		return bridge.Status{
			Available:        false,
			Running:          false,
			CLIInstalled:     availability.CLIInstalled,
			CLIAuthenticated: availability.CLIAuthenticated,
			Message:          availability.Message,
		}, nil
	}

	if err := h.service.Start(); err != nil {
		return bridge.Status{}, err
	}

	return bridge.Status{
		Available:        true,
		Running:          true,
		CLIInstalled:     true,
		CLIAuthenticated: true,
		Message:          MsgRunning,
	}, nil
}

// respond runs one prompt through the service.
func (h *Handler) respond(ctx context.Context, prompt string) (bridge.AssistantResponse, error) {
	content, err := h.service.Ask(ctx, prompt)
	if err != nil {
		return bridge.AssistantResponse{}, err
	}
	return bridge.AssistantResponse{Content: content}, nil
}
