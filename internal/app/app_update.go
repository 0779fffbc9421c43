package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/pastelhq/pastel/internal/keys"
	"github.com/pastelhq/pastel/internal/logger"
	"github.com/pastelhq/pastel/internal/ui"
	"github.com/pastelhq/pastel/internal/ui/modals"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if cmd := m.routeMouseEvent(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case StartupModalMsg:
		m.modal.Show(modals.NewWelcomeState())

	case StoriesLoadedMsg:
		m.handleStoriesLoaded(msg)

	case MoreStoriesLoadedMsg:
		m.handleMoreStoriesLoaded(msg)

	case StoryLoadedMsg:
		m.handleStoryLoaded(msg)

	case ArticleLoadedMsg:
		m.handleArticleLoaded(msg)

	case SearchResultsMsg:
		m.handleSearchResults(msg)

	case UserLoadedMsg:
		m.handleUserLoaded(msg)

	case ui.SelectionActionMsg:
		return m.handleSelectionAction(msg)

	case ui.AssistantStatusMsg:
		m.panel.HandleStatus(msg)

	case ui.AssistantResponseMsg:
		return m.handleAssistantResponse(msg)

	case ui.AssistantTickMsg:
		if cmd := m.panel.HandleTick(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.StoriesTickMsg:
		cmds = append(cmds, m.routeTick(msg))

	case ui.SelectionFlashTickMsg:
		var cmd tea.Cmd
		m.storyView, cmd = m.storyView.Update(msg)
		cmds = append(cmds, cmd)
		m.panel, cmd = m.panel.Update(msg)
		cmds = append(cmds, cmd)

	case modals.HelpShortcutTriggeredMsg:
		m.modal.Hide()
		if model, cmd, handled := m.ExecuteShortcut(msg.Key); handled {
			return model, cmd
		}
	}

	return m, tea.Batch(cmds...)
}

// routeTick forwards the spinner tick to whichever components animate.
// The components themselves reschedule the tick only while loading, so
// at most one next tick is kept.
func (m *Model) routeTick(msg ui.StoriesTickMsg) tea.Cmd {
	var next tea.Cmd
	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	if cmd != nil {
		next = cmd
	}
	m.storyList, cmd = m.storyList.Update(msg)
	if cmd != nil {
		next = cmd
	}
	m.storyView, cmd = m.storyView.Update(msg)
	if cmd != nil {
		next = cmd
	}
	return next
}

// handleKey is the top-level keyboard dispatch.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Ctrl+C always quits
	if key == keys.CtrlC {
		return m, m.quitCmd()
	}

	// Modal captures everything while visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// The selection action menu captures navigation while open
	if m.view == ui.ViewStory && m.storyView.Menu().Visible() {
		var cmd tea.Cmd
		m.storyView, cmd = m.storyView.Update(msg)
		return m, cmd
	}

	// Assistant prompt focused: most keys are typing
	if m.focus == FocusAssistant {
		return m.handleAssistantKey(msg)
	}

	// Registered shortcuts
	if model, cmd, handled := m.ExecuteShortcut(key); handled {
		return model, cmd
	}

	// Everything else goes to the focused component
	return m.routeKeyToFocused(msg)
}

// handleAssistantKey routes keys while the assistant prompt has focus.
func (m *Model) handleAssistantKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Enter:
		return m, m.panel.SendFreeform()
	case keys.Tab:
		m.setFocus(FocusStory)
		return m, nil
	case keys.Escape:
		if m.panel.IsOpen() {
			m.panel.Close()
			m.setFocus(FocusStory)
		}
		return m, nil
	case keys.Alt1:
		return m, m.panel.RunQuickAction(0)
	case keys.Alt2:
		return m, m.panel.RunQuickAction(1)
	case keys.Alt3:
		return m, m.panel.RunQuickAction(2)
	case keys.CtrlY:
		return m, m.panel.CopySelection()
	}

	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

// routeKeyToFocused delegates unhandled keys to the focused component
// and runs the infinite-scroll check after story list navigation.
func (m *Model) routeKeyToFocused(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case FocusSidebar:
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd

	case FocusStories:
		m.storyList, cmd = m.storyList.Update(msg)
		if more := m.maybeLoadMore(); more != nil {
			return m, tea.Batch(cmd, more)
		}
		return m, cmd

	case FocusStory:
		m.storyView, cmd = m.storyView.Update(msg)
		return m, cmd
	}

	return m, nil
}

// maybeLoadMore kicks off the next feed page when the selection nears
// the end of the loaded stories.
func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.storyList.NearEnd() || !m.storyList.HasMore() || m.storyList.IsLoadingMore() {
		return nil
	}
	m.storyList.SetLoadingMore(true)
	return tea.Batch(
		m.loadMoreCmd(m.sidebar.Active(), m.storyList.Len()),
		ui.StoriesTick(),
	)
}

// setFocus moves keyboard focus between components.
func (m *Model) setFocus(focus Focus) {
	m.focus = focus
	m.sidebar.SetFocused(focus == FocusSidebar)
	m.storyList.SetFocused(focus == FocusStories)
	m.storyView.SetFocused(focus == FocusStory)
	m.panel.SetFocused(focus == FocusAssistant)
}

// toggleFocus cycles focus within the current view.
func (m *Model) toggleFocus() {
	switch m.view {
	case ui.ViewStories:
		if m.focus == FocusSidebar {
			m.setFocus(FocusStories)
		} else {
			m.setFocus(FocusSidebar)
		}
	case ui.ViewStory:
		if m.panel.IsOpen() {
			if m.focus == FocusAssistant {
				m.setFocus(FocusStory)
			} else {
				m.setFocus(FocusAssistant)
			}
		}
	}
}

// openSelectedStory switches to the story view and fetches the thread.
func (m *Model) openSelectedStory() tea.Cmd {
	story := m.storyList.Selected()
	if story == nil {
		return nil
	}
	return m.openStoryID(story.ID, story.Title, story.Domain())
}

// openStoryID switches to the story view and fetches the given story's
// thread. Title and domain render in the header while the fetch runs.
func (m *Model) openStoryID(id int, title, domain string) tea.Cmd {
	logger.ComponentLogger("App").Debug("Opening story", "id", id)

	m.view = ui.ViewStory
	m.pendingStoryID = id
	m.header.SetStory(title, domain)
	m.storyView.SetLoading(true)
	m.setFocus(FocusStory)
	m.applyAssistantVisibility()
	m.updateSizes()

	return tea.Batch(m.loadStoryCmd(id), ui.StoriesTick())
}

// closeStory returns to the stories view.
func (m *Model) closeStory() {
	m.view = ui.ViewStories
	m.pendingStoryID = 0
	m.header.SetFeed(m.sidebar.Active().DisplayName())
	m.panel.ClearContext()
	m.setFocus(FocusStories)
	m.applyAssistantVisibility()
	m.updateSizes()
}
