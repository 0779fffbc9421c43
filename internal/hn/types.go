// Package hn is a client for the official Hacker News Firebase API and
// the Algolia search API. Responses are cached in-process so paging
// through feeds and re-opening stories does not hammer the network.
package hn

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Feed identifies one of the fixed story feeds exposed by the API.
type Feed string

const (
	FeedTop  Feed = "topstories"
	FeedNew  Feed = "newstories"
	FeedBest Feed = "beststories"
	FeedAsk  Feed = "askstories"
	FeedShow Feed = "showstories"
	FeedJobs Feed = "jobstories"
)

// Feeds returns all feeds in display order.
func Feeds() []Feed {
	return []Feed{FeedTop, FeedNew, FeedBest, FeedAsk, FeedShow, FeedJobs}
}

// ParseFeed maps a feed name from config or a command line flag to a
// Feed. Unknown names return an error so callers can fall back.
func ParseFeed(name string) (Feed, error) {
	for _, f := range Feeds() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown feed %q", name)
}

// DisplayName returns the human-readable name shown in the UI.
func (f Feed) DisplayName() string {
	switch f {
	case FeedTop:
		return "Top"
	case FeedNew:
		return "New"
	case FeedBest:
		return "Best"
	case FeedAsk:
		return "Ask"
	case FeedShow:
		return "Show"
	case FeedJobs:
		return "Jobs"
	default:
		return string(f)
	}
}

// Item is a single Hacker News item: story, comment, job, poll, or
// poll option. Fields mirror the Firebase API schema.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Title       string `json:"title"`
	Descendants int    `json:"descendants"`
	Kids        []int  `json:"kids"`
	Parent      int    `json:"parent"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// IsStory reports whether the item is a story or job posting.
func (it *Item) IsStory() bool {
	return it.Type == "story" || it.Type == "job" || it.Type == "poll"
}

// IsComment reports whether the item is a comment.
func (it *Item) IsComment() bool {
	return it.Type == "comment"
}

// Domain returns the hostname of the item's URL with any leading
// "www." stripped, or empty string for self posts.
func (it *Item) Domain() string {
	if it.URL == "" {
		return ""
	}
	u, err := url.Parse(it.URL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// PlainText returns the item's HTML body as readable plain text.
func (it *Item) PlainText() string {
	return PlainText(it.Text)
}

// Age renders the item's timestamp relative to now, like "3h ago".
func (it *Item) Age(now time.Time) string {
	return RelativeTime(it.Time, now)
}

// Comment is an item positioned within a discussion thread. Depth is
// zero for top-level comments.
type Comment struct {
	Item
	Depth int
}

// User is a Hacker News user profile.
type User struct {
	ID        string `json:"id"`
	Created   int64  `json:"created"`
	Karma     int    `json:"karma"`
	About     string `json:"about"`
	Submitted []int  `json:"submitted"`
}

// SearchResult is one hit from the Algolia search API, flattened to
// the fields the UI needs.
type SearchResult struct {
	ID          int
	Title       string
	Author      string
	Points      int
	NumComments int
	Time        int64
	URL         string
	IsComment   bool
}

// SearchResponse is a single page of search results.
type SearchResponse struct {
	Results     []SearchResult
	Total       int
	Page        int
	Pages       int
	HitsPerPage int
}

// RelativeTime renders a Unix timestamp as a short age like "3h ago".
func RelativeTime(unix int64, now time.Time) string {
	d := now.Sub(time.Unix(unix, 0))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}
