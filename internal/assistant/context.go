package assistant

import (
	"unicode/utf8"

	"github.com/pastelhq/pastel/internal/bridge"
	"github.com/pastelhq/pastel/internal/hn"
)

const (
	// commentPreviewLimit caps each comment preview sent for
	// discussion analysis.
	commentPreviewLimit = 200

	// topCommentLimit is how many top-level comments the analysis
	// context includes.
	topCommentLimit = 10

	// draftMinLength is the selection length above which selected
	// text counts as a draft reply rather than a stray swipe.
	draftMinLength = 10
)

// NewStoryContext builds the summarize payload from a story.
func NewStoryContext(item *hn.Item) bridge.StoryContext {
	return bridge.StoryContext{
		Title:        item.Title,
		URL:          item.URL,
		Domain:       item.Domain(),
		Score:        item.Score,
		CommentCount: item.Descendants,
		Author:       item.By,
		Text:         item.PlainText(),
	}
}

// NewDiscussionContext builds the analysis payload from a story and
// its loaded thread. Only top-level comments feed the analysis, capped
// at topCommentLimit with previews capped at commentPreviewLimit.
func NewDiscussionContext(item *hn.Item, comments []*hn.Comment) bridge.DiscussionContext {
	dc := bridge.DiscussionContext{
		StoryTitle:   item.Title,
		CommentCount: item.Descendants,
	}
	for _, c := range comments {
		if c.Depth != 0 {
			continue
		}
		dc.TopComments = append(dc.TopComments, bridge.CommentSummary{
			Author:      c.By,
			TextPreview: hn.Truncate(hn.CollapseWhitespace(c.PlainText()), commentPreviewLimit),
			ReplyCount:  len(c.Kids),
		})
		if len(dc.TopComments) == topCommentLimit {
			break
		}
	}
	return dc
}

// NewReplyContext builds the draft-reply payload. selected becomes the
// user's draft only when it is long enough to plausibly be one.
func NewReplyContext(parentAuthor, parentBody, storyTitle, selected string) bridge.ReplyContext {
	rc := bridge.ReplyContext{
		ParentComment: parentBody,
		ParentAuthor:  parentAuthor,
		StoryTitle:    storyTitle,
	}
	if utf8.RuneCountInString(selected) > draftMinLength {
		rc.UserDraft = selected
	}
	return rc
}
