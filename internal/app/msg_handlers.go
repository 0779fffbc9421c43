package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pastelhq/pastel/internal/hn"
	"github.com/pastelhq/pastel/internal/logger"
	"github.com/pastelhq/pastel/internal/notification"
	"github.com/pastelhq/pastel/internal/ui"
	"github.com/pastelhq/pastel/internal/ui/modals"
)

// handleStoriesLoaded installs the first page of a feed. Results for a
// feed that is no longer active are discarded.
func (m *Model) handleStoriesLoaded(msg StoriesLoadedMsg) {
	if msg.Feed != m.sidebar.Active() {
		return
	}

	m.sidebar.SetLoading(false)
	m.storyList.SetLoading(false)

	if msg.Err != nil {
		logger.ComponentLogger("App").Error("Failed to load feed",
			"feed", string(msg.Feed), "error", msg.Err)
		return
	}

	m.storyList.SetStories(msg.Stories, msg.HasMore)
}

// handleMoreStoriesLoaded appends an infinite-scroll page.
func (m *Model) handleMoreStoriesLoaded(msg MoreStoriesLoadedMsg) {
	if msg.Feed != m.sidebar.Active() {
		return
	}

	m.storyList.SetLoadingMore(false)

	if msg.Err != nil {
		logger.ComponentLogger("App").Error("Failed to load more stories",
			"feed", string(msg.Feed), "error", msg.Err)
		return
	}

	m.storyList.AppendStories(msg.Stories, msg.HasMore)
}

// handleStoryLoaded installs a fetched story and thread into the story
// view and binds it as the assistant's context. A fetch that lands
// after the user navigated elsewhere is discarded.
func (m *Model) handleStoryLoaded(msg StoryLoadedMsg) {
	if msg.StoryID != m.pendingStoryID || m.view != ui.ViewStory {
		return
	}

	m.storyView.SetLoading(false)

	if msg.Err != nil {
		logger.ComponentLogger("App").Error("Failed to load story",
			"id", msg.StoryID, "error", msg.Err)
		return
	}

	m.storyView.SetStory(msg.Story, msg.Comments)
	m.panel.SetContext(msg.Story, msg.Comments)
	if msg.Story != nil {
		m.header.SetStory(msg.Story.Title, msg.Story.Domain())
	}
}

// handleArticleLoaded binds the fetched article text, unless the user
// already moved to another story.
func (m *Model) handleArticleLoaded(msg ArticleLoadedMsg) {
	if msg.StoryID != m.pendingStoryID || m.view != ui.ViewStory {
		return
	}

	if msg.Err != nil {
		logger.ComponentLogger("App").Error("Failed to fetch article",
			"id", msg.StoryID, "error", msg.Err)
		m.storyView.SetArticle(nil)
		return
	}

	m.storyView.SetArticle(msg.Article)
}

// handleSearchResults fills the search modal, if it is still open.
func (m *Model) handleSearchResults(msg SearchResultsMsg) {
	search, ok := m.modal.State.(*modals.SearchState)
	if !ok || search.LastQuery != msg.Query {
		return
	}

	if msg.Err != nil {
		search.SetSearchError(msg.Err.Error())
		return
	}

	now := time.Now()
	matches := make([]modals.StoryMatch, 0, len(msg.Results))
	for _, r := range msg.Results {
		matches = append(matches, modals.StoryMatch{
			ID:          r.ID,
			Title:       r.Title,
			Author:      r.Author,
			Points:      r.Points,
			NumComments: r.NumComments,
			Age:         hn.RelativeTime(r.Time, now),
		})
	}
	search.SetResults(matches, msg.Total)
}

// handleUserLoaded fills the profile modal, if it is still open.
func (m *Model) handleUserLoaded(msg UserLoadedMsg) {
	profile, ok := m.modal.State.(*modals.UserState)
	if !ok || profile.Username != msg.Username {
		return
	}

	if msg.Err != nil {
		profile.SetLoadError(msg.Err.Error())
		return
	}
	if msg.User == nil {
		profile.SetLoadError("user not found")
		return
	}

	created := time.Unix(msg.User.Created, 0).Format("January 2, 2006")
	profile.SetProfile(msg.User.Karma, created, msg.User.About)
}

// handleSelectionAction dispatches a chosen selection-menu action to
// the assistant, binding the current story first so the request carries
// its context.
func (m *Model) handleSelectionAction(msg ui.SelectionActionMsg) (tea.Model, tea.Cmd) {
	m.panel.SetContext(m.storyView.Story(), m.storyView.Comments())

	switch msg.Action {
	case ui.ActionExplain:
		return m, m.panel.RunExplain(msg.Text)

	case ui.ActionDraftReply:
		if msg.Capture == nil {
			return m, nil
		}
		return m, m.panel.RunDraftReply(msg.Text, msg.Capture.Author, msg.Capture.Body)
	}

	return m, nil
}

// handleAssistantResponse delivers a completed request to the panel.
// When the panel was force-closed while the request was in flight, the
// reply is kept in the transcript and surfaced as a desktop
// notification instead.
func (m *Model) handleAssistantResponse(msg ui.AssistantResponseMsg) (tea.Model, tea.Cmd) {
	notify := m.panel.HandleResponse(msg)
	if notify && m.config.GetNotificationsEnabled() {
		return m, func() tea.Msg {
			if err := notification.ReplyReady(); err != nil {
				logger.ComponentLogger("App").Debug("Notification failed", "error", err)
			}
			return nil
		}
	}
	return m, nil
}
