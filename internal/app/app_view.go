package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pastelhq/pastel/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Update footer context for conditional bindings
	m.updateFooterContext()

	content := m.contentView()

	var view string
	if m.zenMode {
		view = content
	} else {
		view = lipgloss.JoinVertical(
			lipgloss.Left,
			m.header.View(),
			content,
			m.footer.View(),
		)
	}

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	return view
}

// contentView renders the panel area for the current view.
func (m *Model) contentView() string {
	switch m.view {
	case ui.ViewStory:
		if m.panel.IsOpen() {
			return lipgloss.JoinHorizontal(
				lipgloss.Top,
				m.storyView.View(),
				m.panel.View(),
			)
		}
		return m.storyView.View()

	default:
		return lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.sidebar.View(),
			m.storyList.View(),
		)
	}
}

// updateFooterContext updates the footer with current context for conditional bindings
func (m *Model) updateFooterContext() {
	hasSelection := m.storyView.HasSelection()
	menuVisible := m.view == ui.ViewStory && m.storyView.Menu().Visible()
	m.footer.SetContext(
		m.view,
		m.focus == FocusSidebar,
		m.panel.IsOpen(),
		m.focus == FocusAssistant,
		m.zenMode,
		hasSelection,
		menuVisible,
	)
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.SetZenMode(m.zenMode)
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.storyList.SetSize(ctx.ListWidth, ctx.ContentHeight)
	m.storyView.SetSize(ctx.StoryWidth(m.panel.IsOpen()), ctx.ContentHeight)
	m.panel.SetSize(ctx.AssistantWidth, ctx.ContentHeight)
}
