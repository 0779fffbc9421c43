// Package bridge carries assistant commands between the TUI and the
// `pastel host` companion process over a unix socket. Each request is
// a single line of JSON; the host answers with a single response line.
// The payload types here are the wire contract shared by both sides.
package bridge

import (
	"encoding/json"
	"time"
)

// Command names understood by the host.
const (
	CmdCheck             = "copilot_check"
	CmdInit              = "copilot_init"
	CmdSummarize         = "copilot_summarize"
	CmdAnalyzeDiscussion = "copilot_analyze_discussion"
	CmdExplain           = "copilot_explain"
	CmdDraftReply        = "copilot_draft_reply"
	CmdAsk               = "copilot_ask"
	CmdShutdown          = "copilot_shutdown"
)

// Socket communication constants
const (
	// SocketReadTimeout is how long the host waits for the next
	// request line before re-checking for shutdown.
	SocketReadTimeout = 10 * time.Second

	// SocketWriteTimeout bounds writes on both sides so neither
	// process blocks indefinitely on a wedged peer.
	SocketWriteTimeout = 10 * time.Second

	// ResponseTimeout is how long the TUI waits for a response.
	// Generation can legitimately take a while, so this must exceed
	// the host's own per-command timeout.
	ResponseTimeout = 2 * time.Minute

	// CommandTimeout bounds a single command execution on the host.
	CommandTimeout = 90 * time.Second
)

// Request is one command sent to the host. Args carries the
// command-specific payload, already encoded.
type Request struct {
	ID      string          `json:"id"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response is the host's reply to a Request. Exactly one of Result or
// Error is set.
type Response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Status describes the assistant service, returned by check and init.
type Status struct {
	Available        bool   `json:"available"`
	Running          bool   `json:"running"`
	CLIInstalled     bool   `json:"cli_installed"`
	CLIAuthenticated bool   `json:"cli_authenticated"`
	Message          string `json:"message"`
}

// StoryContext carries story metadata for summarize requests.
type StoryContext struct {
	Title        string `json:"title"`
	URL          string `json:"url,omitempty"`
	Domain       string `json:"domain,omitempty"`
	Score        int    `json:"score"`
	CommentCount int    `json:"comment_count"`
	Author       string `json:"author,omitempty"`
	Text         string `json:"text,omitempty"`
}

// DiscussionContext carries a thread snapshot for analysis requests.
type DiscussionContext struct {
	StoryTitle   string           `json:"story_title"`
	CommentCount int              `json:"comment_count"`
	TopComments  []CommentSummary `json:"top_comments"`
}

// CommentSummary is one top-level comment in a DiscussionContext.
type CommentSummary struct {
	Author      string `json:"author"`
	TextPreview string `json:"text_preview"`
	ReplyCount  int    `json:"reply_count"`
}

// ReplyContext carries the parent comment for draft-reply requests.
// UserDraft is omitted when the user has nothing drafted yet.
type ReplyContext struct {
	ParentComment string `json:"parent_comment"`
	ParentAuthor  string `json:"parent_author"`
	StoryTitle    string `json:"story_title"`
	UserDraft     string `json:"user_draft,omitempty"`
}

// AssistantResponse is the payload returned by every content command.
type AssistantResponse struct {
	Content string `json:"content"`
}

// Args wrappers, matching the host's named command parameters.
type (
	SummarizeArgs struct {
		Context StoryContext `json:"context"`
	}
	AnalyzeDiscussionArgs struct {
		Context DiscussionContext `json:"context"`
	}
	ExplainArgs struct {
		Text    string `json:"text"`
		Context string `json:"context,omitempty"`
	}
	DraftReplyArgs struct {
		Context ReplyContext `json:"context"`
	}
	AskArgs struct {
		Prompt string `json:"prompt"`
	}
)
