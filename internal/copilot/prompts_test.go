package copilot

import (
	"strings"
	"testing"

	"github.com/pastelhq/pastel/internal/bridge"
)

// ============================================================================
// Summarize
// ============================================================================

func TestSummarizePrompt_FullContext(t *testing.T) {
	prompt := SummarizePrompt(bridge.StoryContext{
		Title:        "Rust 2.0 Released",
		URL:          "https://blog.rust-lang.org/2.0",
		Domain:       "blog.rust-lang.org",
		Score:        512,
		CommentCount: 384,
		Author:       "steveklabnik",
	})

	if !strings.HasPrefix(prompt, "Summarize what this Hacker News story is likely about:") {
		t.Errorf("unexpected prompt opening: %q", prompt[:60])
	}
	for _, want := range []string{
		"Title: Rust 2.0 Released",
		"URL: https://blog.rust-lang.org/2.0",
		"Domain: blog.rust-lang.org",
		"Score: 512 points, 384 comments",
		"If it's an Ask HN or Show HN",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSummarizePrompt_SelfPost(t *testing.T) {
	prompt := SummarizePrompt(bridge.StoryContext{
		Title:        "Ask HN: How do you take notes?",
		Score:        97,
		CommentCount: 210,
		Text:         "I've tried every app and keep coming back to paper.",
	})

	if strings.Contains(prompt, "URL:") {
		t.Error("prompt should omit URL line for self posts")
	}
	if strings.Contains(prompt, "Domain:") {
		t.Error("prompt should omit Domain line for self posts")
	}
	if !strings.Contains(prompt, "Story text:\nI've tried every app") {
		t.Error("prompt missing story text section")
	}
}

// ============================================================================
// Analyze discussion
// ============================================================================

func TestAnalyzeDiscussionPrompt(t *testing.T) {
	prompt := AnalyzeDiscussionPrompt(bridge.DiscussionContext{
		StoryTitle:   "The case against microservices",
		CommentCount: 412,
		TopComments: []bridge.CommentSummary{
			{Author: "pg", TextPreview: "Monoliths age better than people think.", ReplyCount: 12},
			{Author: "tptacek", TextPreview: "Depends entirely on team size.", ReplyCount: 8},
		},
	})

	for _, want := range []string{
		"Story: The case against microservices",
		"Total comments: 412",
		"1. pg (12 replies):\n\"Monoliths age better than people think.\"",
		"2. tptacek (8 replies):\n\"Depends entirely on team size.\"",
		"What are the main viewpoints or themes?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAnalyzeDiscussionPrompt_NoComments(t *testing.T) {
	prompt := AnalyzeDiscussionPrompt(bridge.DiscussionContext{
		StoryTitle:   "Quiet thread",
		CommentCount: 0,
	})

	if !strings.Contains(prompt, "Top-level comments:\n") {
		t.Error("prompt missing comments header")
	}
	if !strings.Contains(prompt, "Provide a brief analysis") {
		t.Error("prompt missing analysis instructions")
	}
}

// ============================================================================
// Explain
// ============================================================================

func TestExplainPrompt_WithContext(t *testing.T) {
	prompt := ExplainPrompt("CRDT", "We used CRDTs to sync editor state across clients.")

	if !strings.Contains(prompt, "in the context of a Hacker News discussion") {
		t.Error("expected contextual variant")
	}
	if !strings.Contains(prompt, "Term: \"CRDT\"") {
		t.Error("prompt missing quoted term")
	}
	if !strings.Contains(prompt, "Context: We used CRDTs") {
		t.Error("prompt missing context line")
	}
}

func TestExplainPrompt_WithoutContext(t *testing.T) {
	prompt := ExplainPrompt("CRDT", "")

	if strings.Contains(prompt, "Context:") {
		t.Error("bare variant should not carry a context line")
	}
	if !strings.Contains(prompt, "Explain this term/concept for a Hacker News reader") {
		t.Error("expected bare variant opening")
	}
}

// ============================================================================
// Draft reply
// ============================================================================

func TestDraftReplyPrompt_FreshReply(t *testing.T) {
	prompt := DraftReplyPrompt(bridge.ReplyContext{
		ParentComment: "Static typing is a crutch.",
		ParentAuthor:  "dynlang4ever",
		StoryTitle:    "Why we rewrote in Go",
	})

	for _, want := range []string{
		"Story: Why we rewrote in Go",
		"Comment by dynlang4ever:\n\"Static typing is a crutch.\"",
		"Suggest 2-3 different angles",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "User's draft so far") {
		t.Error("fresh reply should not include a draft section")
	}
}

func TestDraftReplyPrompt_ImprovesDraft(t *testing.T) {
	prompt := DraftReplyPrompt(bridge.ReplyContext{
		ParentComment: "Static typing is a crutch.",
		ParentAuthor:  "dynlang4ever",
		StoryTitle:    "Why we rewrote in Go",
		UserDraft:     "Types are documentation that can't go stale.",
	})

	if !strings.Contains(prompt, "User's draft so far:\n\"Types are documentation that can't go stale.\"") {
		t.Error("prompt missing user draft section")
	}
	if !strings.Contains(prompt, "maintaining the user's voice") {
		t.Error("prompt missing improvement instructions")
	}
	if strings.Contains(prompt, "Suggest 2-3 different angles") {
		t.Error("draft variant should not suggest fresh angles")
	}
}

// ============================================================================
// System prompt
// ============================================================================

func TestSystemPrompt_Sections(t *testing.T) {
	for _, want := range []string{"<your_role>", "<your_style>", "<constraints>"} {
		if !strings.Contains(systemPrompt, want) {
			t.Errorf("system prompt missing %s section", want)
		}
	}
}
