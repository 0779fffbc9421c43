// Package assistant is the TUI-side client for the AI reading
// assistant. It talks to a `pastel host` process through a
// bridge.Invoker and never lets a transport failure reach the caller:
// status calls degrade to an unavailable Status and content calls
// return nil. The UI decides how to present both.
package assistant

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/pastelhq/pastel/internal/bridge"
	"github.com/pastelhq/pastel/internal/errors"
	"github.com/pastelhq/pastel/internal/logger"
	"github.com/pastelhq/pastel/internal/report"
)

// BridgeAbsentMessage is the status message when no host socket was
// detected at startup.
const BridgeAbsentMessage = "AI assistant requires the desktop app"

// Fallback messages for failures that carry no text of their own.
const (
	checkFailedMessage = "Check failed"
	initFailedMessage  = "Failed to initialize"
)

// Client mediates all assistant traffic for the UI. Construct one with
// New and share it; methods are safe for concurrent use since Bubble
// Tea commands run on their own goroutines.
type Client struct {
	invoker  bridge.Invoker
	reporter report.Reporter
	log      *slog.Logger

	mu          sync.RWMutex
	initialized bool
	available   bool
	lastStatus  bridge.Status
}

// Option configures a Client.
type Option func(*Client)

// WithReporter routes swallowed failures to r in addition to the log.
func WithReporter(r report.Reporter) Option {
	return func(c *Client) {
		if r != nil {
			c.reporter = r
		}
	}
}

// New creates a client over the given invoker. A nil invoker means no
// host was detected; every method then degrades without touching the
// network.
func New(invoker bridge.Invoker, opts ...Option) *Client {
	c := &Client{
		invoker:  invoker,
		reporter: report.Nop{},
		log:      logger.ComponentLogger("Assistant"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// bridgeAbsent reports whether there is no host to talk to. The app
// only hands us an invoker when bridge.Detect found a live socket.
func (c *Client) bridgeAbsent() bool {
	return c.invoker == nil
}

func absentStatus() bridge.Status {
	return bridge.Status{Message: BridgeAbsentMessage}
}

// setStatus records the latest status and availability, returning the
// status for convenient tail calls.
func (c *Client) setStatus(status bridge.Status, available bool) bridge.Status {
	c.mu.Lock()
	c.lastStatus = status
	c.available = available
	c.mu.Unlock()
	return status
}

// degraded builds the unavailable status for a failed call, preferring
// the error's own message.
func degraded(err error, fallback string) bridge.Status {
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	return bridge.Status{Message: msg}
}

// call issues one command and decodes the result into out when out is
// non-nil.
func (c *Client) call(ctx context.Context, command string, args, out any) error {
	result, err := c.invoker.Invoke(ctx, command, args)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(result, out)
}

// Check queries the host for CLI availability without starting
// anything. It works before Init and never fails: a transport error
// becomes an unavailable status carrying the error text.
func (c *Client) Check(ctx context.Context) bridge.Status {
	if c.bridgeAbsent() {
		return c.setStatus(absentStatus(), false)
	}

	var status bridge.Status
	if err := c.call(ctx, bridge.CmdCheck, nil, &status); err != nil {
		c.log.Warn("Availability check failed", "error", err)
		c.reporter.Report(ctx, "assistant.Check", err)
		return c.setStatus(degraded(err, checkFailedMessage), false)
	}

	return c.setStatus(status, status.Available)
}

// Init asks the host to start the assistant service. On success the
// client adopts the returned availability; on failure it stays
// uninitialized with a degraded status.
func (c *Client) Init(ctx context.Context) bridge.Status {
	if c.bridgeAbsent() {
		return c.setStatus(absentStatus(), false)
	}

	var status bridge.Status
	if err := c.call(ctx, bridge.CmdInit, nil, &status); err != nil {
		c.log.Warn("Initialization failed", "error", err)
		c.reporter.Report(ctx, "assistant.Init", err)
		return c.setStatus(degraded(err, initFailedMessage), false)
	}

	c.mu.Lock()
	c.initialized = true
	c.mu.Unlock()

	c.log.Info("Assistant initialized", "available", status.Available)
	return c.setStatus(status, status.Available)
}

// IsAvailable reports whether the last check or init found a working
// assistant.
func (c *Client) IsAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available
}

// IsInitialized reports whether Init has succeeded.
func (c *Client) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// LastStatus returns the most recent status from Check or Init.
func (c *Client) LastStatus() bridge.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastStatus
}

// Summarize asks for a story summary. Returns nil when the assistant
// is unavailable or the request fails.
func (c *Client) Summarize(ctx context.Context, story bridge.StoryContext) *string {
	if !c.IsAvailable() {
		c.log.Debug("Summarize skipped, assistant unavailable")
		return nil
	}
	return c.content(ctx, "assistant.Summarize", bridge.CmdSummarize, bridge.SummarizeArgs{Context: story})
}

// AnalyzeDiscussion asks for a discussion analysis.
func (c *Client) AnalyzeDiscussion(ctx context.Context, discussion bridge.DiscussionContext) *string {
	if !c.IsAvailable() {
		c.log.Debug("AnalyzeDiscussion skipped, assistant unavailable")
		return nil
	}
	return c.content(ctx, "assistant.AnalyzeDiscussion", bridge.CmdAnalyzeDiscussion, bridge.AnalyzeDiscussionArgs{Context: discussion})
}

// Explain asks for an explanation of selected text. contextLine names
// where the text came from and may be empty.
func (c *Client) Explain(ctx context.Context, text, contextLine string) *string {
	if !c.IsAvailable() {
		return nil
	}
	return c.content(ctx, "assistant.Explain", bridge.CmdExplain, bridge.ExplainArgs{Text: text, Context: contextLine})
}

// DraftReply asks for reply suggestions to a comment.
func (c *Client) DraftReply(ctx context.Context, reply bridge.ReplyContext) *string {
	if !c.IsAvailable() {
		c.log.Debug("DraftReply skipped, assistant unavailable")
		return nil
	}
	return c.content(ctx, "assistant.DraftReply", bridge.CmdDraftReply, bridge.DraftReplyArgs{Context: reply})
}

// Ask sends a freeform prompt.
func (c *Client) Ask(ctx context.Context, prompt string) *string {
	if !c.IsAvailable() {
		return nil
	}
	return c.content(ctx, "assistant.Ask", bridge.CmdAsk, bridge.AskArgs{Prompt: prompt})
}

// content runs one content command and fails soft: any error is logged
// and reported, and the caller sees nil.
func (c *Client) content(ctx context.Context, op errors.Op, command string, args any) *string {
	var resp bridge.AssistantResponse
	if err := c.call(ctx, command, args, &resp); err != nil {
		c.log.Warn("Assistant request failed", "command", command, "error", err)
		c.reporter.Report(ctx, op, err)
		return nil
	}
	return &resp.Content
}

// Shutdown stops the host's assistant service. A client that never
// initialized has nothing to stop. Failures are swallowed; local state
// is cleared either way.
func (c *Client) Shutdown(ctx context.Context) {
	if c.bridgeAbsent() {
		return
	}

	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return
	}
	c.initialized = false
	c.available = false
	c.mu.Unlock()

	if err := c.call(ctx, bridge.CmdShutdown, nil, nil); err != nil {
		c.log.Warn("Shutdown failed", "error", err)
		c.reporter.Report(ctx, "assistant.Shutdown", err)
	}
}
