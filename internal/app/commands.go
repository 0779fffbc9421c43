package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pastelhq/pastel/internal/hn"
	"github.com/pastelhq/pastel/internal/ui/modals"
)

// loadFeedCmd fetches the first page of a feed.
func (m *Model) loadFeedCmd(feed hn.Feed) tea.Cmd {
	client := m.hnClient
	limit := m.config.GetPageSize()
	return func() tea.Msg {
		page, err := client.StoriesPage(context.Background(), feed, 0, limit)
		if err != nil {
			return StoriesLoadedMsg{Feed: feed, Err: err}
		}
		return StoriesLoadedMsg{Feed: feed, Stories: page.Stories, HasMore: page.HasMore}
	}
}

// loadMoreCmd fetches the next page of the active feed.
func (m *Model) loadMoreCmd(feed hn.Feed, offset int) tea.Cmd {
	client := m.hnClient
	limit := m.config.GetPageSize()
	return func() tea.Msg {
		page, err := client.StoriesPage(context.Background(), feed, offset, limit)
		if err != nil {
			return MoreStoriesLoadedMsg{Feed: feed, Err: err}
		}
		return MoreStoriesLoadedMsg{Feed: feed, Stories: page.Stories, HasMore: page.HasMore}
	}
}

// loadStoryCmd fetches a story and its comment thread.
func (m *Model) loadStoryCmd(id int) tea.Cmd {
	client := m.hnClient
	return func() tea.Msg {
		story, comments, err := client.StoryWithComments(context.Background(), id, commentDepth)
		return StoryLoadedMsg{StoryID: id, Story: story, Comments: comments, Err: err}
	}
}

// searchCmd runs an Algolia story search for the search modal.
func (m *Model) searchCmd(query, sortName string) tea.Cmd {
	client := m.hnClient
	sort := hn.SortRelevance
	if sortName == modals.SearchSortDate {
		sort = hn.SortDate
	}
	return func() tea.Msg {
		resp, err := client.Search(context.Background(), query, 0, sort, hn.FilterStories)
		if err != nil {
			return SearchResultsMsg{Query: query, Err: err}
		}
		return SearchResultsMsg{Query: query, Results: resp.Results, Total: resp.Total}
	}
}

// loadUserCmd fetches a user profile for the profile modal.
func (m *Model) loadUserCmd(username string) tea.Cmd {
	client := m.hnClient
	return func() tea.Msg {
		user, err := client.User(context.Background(), username)
		return UserLoadedMsg{Username: username, User: user, Err: err}
	}
}

// loadArticleCmd fetches the readable text of a story's linked page.
func (m *Model) loadArticleCmd(storyID int, url string) tea.Cmd {
	client := m.hnClient
	return func() tea.Msg {
		article, err := client.ArticleContent(context.Background(), url)
		return ArticleLoadedMsg{StoryID: storyID, Article: article, Err: err}
	}
}

// quitCmd stops the assistant service on the host, then quits. The
// shutdown is bounded so a hung host cannot stall exit.
func (m *Model) quitCmd() tea.Cmd {
	panel := m.Panel()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		panel.Shutdown(ctx)
		return tea.QuitMsg{}
	}
}
