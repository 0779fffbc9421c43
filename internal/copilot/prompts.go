package copilot

import (
	"fmt"
	"strings"

	"github.com/pastelhq/pastel/internal/bridge"
)

// systemPrompt frames every session. The CLI replaces its default
// system message with this one.
const systemPrompt = `You are a knowledgeable Hacker News reader assistant.

<your_role>
- Summarize linked articles concisely (2-3 paragraphs unless asked for more)
- Explain technical concepts mentioned in stories or comments
- Analyze discussion threads for key viewpoints and sentiment
- Provide context for references to tech history, companies, or people
- Help draft thoughtful, HN-appropriate replies
</your_role>

<your_style>
- Neutral, informative tone (like a well-read HN commenter)
- When summarizing discussions, represent multiple viewpoints fairly
- Keep summaries concise; expand only when asked
- For explanations, assume technical competence but not domain expertise
- Never be condescending or overly enthusiastic
- Use markdown formatting for structure (headers, lists, bold)
</your_style>

<constraints>
- When summarizing articles, work with the title/URL/domain context provided
- For discussion analysis, cite specific perspectives fairly
- Keep replies HN-appropriate: substantive, not snarky
- Be concise - HN readers value brevity
</constraints>`

// SummarizePrompt builds the article summary prompt. It works from
// metadata alone when no story text is available.
func SummarizePrompt(ctx bridge.StoryContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize what this Hacker News story is likely about:\n\nTitle: %s\n", ctx.Title)

	if ctx.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", ctx.URL)
	}
	if ctx.Domain != "" {
		fmt.Fprintf(&b, "Domain: %s\n", ctx.Domain)
	}
	if ctx.Text != "" {
		fmt.Fprintf(&b, "\nStory text:\n%s\n", ctx.Text)
	}

	fmt.Fprintf(&b, "\nScore: %d points, %d comments\n", ctx.Score, ctx.CommentCount)
	b.WriteString("\nProvide a concise summary (2-3 paragraphs) of what this article likely covers based on the title and context. If it's an Ask HN or Show HN, explain the nature of the post.")
	return b.String()
}

// AnalyzeDiscussionPrompt builds the thread analysis prompt.
func AnalyzeDiscussionPrompt(ctx bridge.DiscussionContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this Hacker News discussion:\n\nStory: %s\nTotal comments: %d\n\nTop-level comments:\n",
		ctx.StoryTitle, ctx.CommentCount)

	for i, comment := range ctx.TopComments {
		fmt.Fprintf(&b, "\n%d. %s (%d replies):\n\"%s\"\n",
			i+1, comment.Author, comment.ReplyCount, comment.TextPreview)
	}

	b.WriteString("\nProvide a brief analysis of this discussion:\n1. What are the main viewpoints or themes?\n2. Are there areas of agreement or contention?\n3. Any particularly notable perspectives?")
	return b.String()
}

// ExplainPrompt builds the term explanation prompt. context is the
// surrounding text the term was selected from, and may be empty.
func ExplainPrompt(text, context string) string {
	if context != "" {
		return fmt.Sprintf("Explain this term/concept in the context of a Hacker News discussion:\n\nTerm: \"%s\"\nContext: %s\n\nProvide a brief explanation (1-2 paragraphs) that would help a technically-competent reader who may not be familiar with this specific topic.",
			text, context)
	}
	return fmt.Sprintf("Explain this term/concept for a Hacker News reader:\n\nTerm: \"%s\"\n\nProvide a brief explanation (1-2 paragraphs) that would help a technically-competent reader.",
		text)
}

// DraftReplyPrompt builds the reply drafting prompt. With a user
// draft it asks for improvements; without one it asks for angles.
func DraftReplyPrompt(ctx bridge.ReplyContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Help draft a thoughtful reply to this Hacker News comment:\n\nStory: %s\n\nComment by %s:\n\"%s\"\n",
		ctx.StoryTitle, ctx.ParentAuthor, ctx.ParentComment)

	if ctx.UserDraft != "" {
		fmt.Fprintf(&b, "\nUser's draft so far:\n\"%s\"\n", ctx.UserDraft)
		b.WriteString("\nHelp improve and expand this draft while maintaining the user's voice.")
	} else {
		b.WriteString("\nSuggest 2-3 different angles for a thoughtful reply, with a brief draft for each. Keep them substantive but not too long.")
	}
	return b.String()
}
