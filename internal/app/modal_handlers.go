package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/pastelhq/pastel/internal/keys"
	"github.com/pastelhq/pastel/internal/ui"
	"github.com/pastelhq/pastel/internal/ui/modals"
)

// handleModalKey routes keys while a modal is visible. Enter and escape
// mean something different per modal, so they are handled here; other
// keys delegate to the modal state.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch state := m.modal.State.(type) {
	case *modals.WelcomeState:
		return m.handleWelcomeModalKey(msg)
	case *modals.SearchState:
		return m.handleSearchModalKey(msg, state)
	case *modals.SettingsState:
		return m.handleSettingsModalKey(msg, state)
	case *modals.HelpState:
		return m.handleHelpModalKey(msg, state)
	case *modals.UserState:
		return m.handleUserModalKey(msg)
	}

	if msg.String() == keys.Escape {
		m.modal.Hide()
		return m, nil
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleWelcomeModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Enter, keys.Escape:
		m.config.MarkWelcomeShown()
		if err := m.config.Save(); err != nil {
			m.modal.SetError("Failed to save config: " + err.Error())
			return m, nil
		}
		m.modal.Hide()
	}
	return m, nil
}

func (m *Model) handleSearchModalKey(msg tea.KeyPressMsg, state *modals.SearchState) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.CtrlS:
		state.ToggleSort()
		if state.Query() != "" {
			state.BeginSearch()
			return m, m.searchCmd(state.LastQuery, state.Sort)
		}
		return m, nil

	case keys.Enter:
		if state.NeedsSearch() {
			state.BeginSearch()
			return m, m.searchCmd(state.LastQuery, state.Sort)
		}
		if sel := state.Selected(); sel != nil {
			m.modal.Hide()
			return m, m.openStoryID(sel.ID, sel.Title, "")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleSettingsModalKey(msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		return m.applySettings(state)
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// applySettings persists the settings form and applies what takes
// effect immediately. The zen default only applies on next launch.
func (m *Model) applySettings(state *modals.SettingsState) (tea.Model, tea.Cmd) {
	if state.ThemeChanged() {
		theme := state.GetSelectedTheme()
		ui.SetThemeByName(theme)
		m.config.SetTheme(theme)
	}

	m.config.SetDefaultFeed(state.GetDefaultFeed())
	m.config.SetPageSize(state.GetPageSize())
	m.config.SetNotificationsEnabled(state.GetNotificationsEnabled())
	m.config.SetZenMode(state.GetZenDefault())

	if err := m.config.Save(); err != nil {
		m.modal.SetError("Failed to save settings: " + err.Error())
		return m, nil
	}

	m.modal.Hide()
	return m, nil
}

func (m *Model) handleHelpModalKey(msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	if !state.IsFiltering() {
		switch msg.String() {
		case keys.Escape:
			m.modal.Hide()
			return m, nil

		case keys.Enter:
			if sc := state.GetSelectedShortcut(); sc != nil {
				key := sc.Key
				return m, func() tea.Msg {
					return modals.HelpShortcutTriggeredMsg{Key: key}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleUserModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape, keys.Enter:
		m.modal.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}
