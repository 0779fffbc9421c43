package app

import (
	"github.com/pastelhq/pastel/internal/hn"
)

// StartupModalMsg is sent on first launch to trigger the welcome modal
type StartupModalMsg struct{}

// StoriesLoadedMsg is sent when the first page of a feed finishes loading
type StoriesLoadedMsg struct {
	Feed    hn.Feed
	Stories []*hn.Item
	HasMore bool
	Err     error
}

// MoreStoriesLoadedMsg is sent when an infinite-scroll page finishes loading
type MoreStoriesLoadedMsg struct {
	Feed    hn.Feed
	Stories []*hn.Item
	HasMore bool
	Err     error
}

// StoryLoadedMsg is sent when a story and its comment thread finish loading
type StoryLoadedMsg struct {
	StoryID  int
	Story    *hn.Item
	Comments []*hn.Comment
	Err      error
}

// SearchResultsMsg is sent when an Algolia search completes
type SearchResultsMsg struct {
	Query   string
	Results []hn.SearchResult
	Total   int
	Err     error
}

// ArticleLoadedMsg is sent when a linked page's readable text has been
// fetched for the story view
type ArticleLoadedMsg struct {
	StoryID int
	Article *hn.Article
	Err     error
}

// UserLoadedMsg is sent when a user profile fetch completes
type UserLoadedMsg struct {
	Username string
	User     *hn.User
	Err      error
}
