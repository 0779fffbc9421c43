package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/pastelhq/pastel/internal/ui"
)

// routeMouseEvent routes mouse events to the pane under the pointer,
// translating screen coordinates into pane-local ones.
func (m *Model) routeMouseEvent(msg tea.Msg) tea.Cmd {
	if m.modal.IsVisible() {
		return nil
	}

	switch m.view {
	case ui.ViewStory:
		return m.routeStoryViewMouse(msg)
	default:
		return m.routeStoriesViewMouse(msg)
	}
}

// headerOffset is the rows above the content area. Zen mode has no header.
func (m *Model) headerOffset() int {
	if m.zenMode {
		return 0
	}
	return ui.HeaderHeight
}

// routeStoriesViewMouse handles the feed sidebar and story list panes.
func (m *Model) routeStoriesViewMouse(msg tea.Msg) tea.Cmd {
	sidebarWidth := m.sidebar.Width()

	switch mouseMsg := msg.(type) {
	case tea.MouseWheelMsg:
		if mouseMsg.X > sidebarWidth {
			var cmd tea.Cmd
			m.storyList, cmd = m.storyList.Update(mouseMsg)
			return cmd
		}

	case tea.MouseClickMsg:
		// Clicking a pane moves focus to it
		if mouseMsg.X <= sidebarWidth {
			m.setFocus(FocusSidebar)
		} else {
			m.setFocus(FocusStories)
		}
	}

	return nil
}

// routeStoryViewMouse handles the story pane and the assistant panel,
// including drag text selection in both.
func (m *Model) routeStoryViewMouse(msg tea.Msg) tea.Cmd {
	storyWidth := ui.GetViewContext().StoryWidth(m.panel.IsOpen())
	headerOffset := m.headerOffset()

	inAssistant := func(x int) bool {
		return m.panel.IsOpen() && x >= storyWidth
	}

	switch mouseMsg := msg.(type) {
	case tea.MouseWheelMsg:
		if inAssistant(mouseMsg.X) {
			var cmd tea.Cmd
			m.panel, cmd = m.panel.Update(mouseMsg)
			return cmd
		}
		var cmd tea.Cmd
		m.storyView, cmd = m.storyView.Update(mouseMsg)
		return cmd

	case tea.MouseClickMsg:
		if inAssistant(mouseMsg.X) {
			m.setFocus(FocusAssistant)
			return m.panel.HandleMousePress(mouseMsg.X-storyWidth, mouseMsg.Y-headerOffset)
		}
		if m.panel.IsOpen() && m.focus == FocusAssistant {
			m.setFocus(FocusStory)
		}
		return m.storyView.HandleMousePress(mouseMsg.X, mouseMsg.Y-headerOffset)

	case tea.MouseMotionMsg:
		if inAssistant(mouseMsg.X) {
			m.panel.HandleMouseMotion(mouseMsg.X-storyWidth, mouseMsg.Y-headerOffset)
			return nil
		}
		m.storyView.HandleMouseMotion(mouseMsg.X, mouseMsg.Y-headerOffset)

	case tea.MouseReleaseMsg:
		if inAssistant(mouseMsg.X) {
			m.panel.HandleMouseRelease()
			return nil
		}
		m.storyView.HandleMouseRelease()
	}

	return nil
}
