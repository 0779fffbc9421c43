package app

import (
	"os/exec"
	"runtime"

	tea "charm.land/bubbletea/v2"

	"github.com/pastelhq/pastel/internal/hn"
	"github.com/pastelhq/pastel/internal/logger"
	"github.com/pastelhq/pastel/internal/ui"
	"github.com/pastelhq/pastel/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key         string                              // The key binding (e.g., "z", "ctrl+s")
	DisplayKey  string                              // Display name in help; defaults to Key
	Description string                              // Human-readable description
	Category    string                              // Section for help modal grouping
	Handler     func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition   func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation    = "Navigation"
	CategoryStories       = "Stories"
	CategoryReading       = "Reading"
	CategoryAssistant     = "Assistant"
	CategoryConfiguration = "Configuration"
	CategoryGeneral       = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryStories,
	CategoryReading,
	CategoryAssistant,
	CategoryConfiguration,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help
// modal and be executable from both direct key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         "tab",
		DisplayKey:  "Tab",
		Description: "Switch focus between panes",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:         "enter",
		DisplayKey:  "Enter",
		Description: "Open the selected feed or story",
		Category:    CategoryNavigation,
		Handler:     shortcutActivate,
		Condition: func(m *Model) bool {
			return m.focus == FocusSidebar || m.focus == FocusStories
		},
	},
	{
		Key:         "esc",
		DisplayKey:  "Esc",
		Description: "Back to the story list",
		Category:    CategoryNavigation,
		Handler:     shortcutBack,
		Condition:   func(m *Model) bool { return m.view == ui.ViewStory },
	},

	// Stories
	{
		Key:         "/",
		Description: "Search stories",
		Category:    CategoryStories,
		Handler:     shortcutSearch,
	},
	{
		Key:         "u",
		Description: "View the selected story's author",
		Category:    CategoryStories,
		Handler:     shortcutUserProfile,
		Condition:   func(m *Model) bool { return m.currentAuthor() != "" },
	},

	// Reading
	{
		Key:         "o",
		Description: "Open the story link in your browser",
		Category:    CategoryReading,
		Handler:     shortcutOpenLink,
		Condition:   func(m *Model) bool { return m.currentStoryURL() != "" },
	},
	{
		Key:         "r",
		Description: "Fetch the linked article into the pane",
		Category:    CategoryReading,
		Handler:     shortcutFetchArticle,
		Condition: func(m *Model) bool {
			return m.view == ui.ViewStory && m.currentStoryURL() != "" &&
				m.storyView.Article() == nil && !m.storyView.IsArticleLoading()
		},
	},
	{
		Key:         "y",
		Description: "Copy the highlighted text",
		Category:    CategoryReading,
		Handler:     shortcutCopySelection,
		Condition: func(m *Model) bool {
			return m.view == ui.ViewStory && m.storyView.HasSelection()
		},
	},
	{
		Key:         "z",
		Description: "Toggle zen mode",
		Category:    CategoryReading,
		Handler:     shortcutToggleZen,
	},

	// Assistant
	{
		Key:         "a",
		Description: "Toggle the reading assistant",
		Category:    CategoryAssistant,
		Handler:     shortcutToggleAssistant,
		Condition:   func(m *Model) bool { return m.panel.Eligible() || m.panel.IsOpen() },
	},

	// Configuration
	{
		Key:         "s",
		Description: "Open settings",
		Category:    CategoryConfiguration,
		Handler:     shortcutSettings,
	},

	// General
	{
		Key:         "q",
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// displayOnlyShortcuts appear in the help modal but are handled by the
// focused component or the assistant key router, not the registry.
var displayOnlyShortcuts = []Shortcut{
	{Key: "j/k", Description: "Move down / up", Category: CategoryNavigation},
	{Key: "g/G", Description: "Jump to top / bottom", Category: CategoryNavigation},
	{Key: "ctrl+d/u", DisplayKey: "Ctrl+D/U", Description: "Half page down / up", Category: CategoryNavigation},
	{Key: "mouse drag", Description: "Select text in the story pane", Category: CategoryReading},
	{Key: "alt+1..3", DisplayKey: "Alt+1..3", Description: "Run an assistant quick action", Category: CategoryAssistant},
	{Key: "ctrl+y", DisplayKey: "Ctrl+Y", Description: "Copy text selected in the assistant pane", Category: CategoryAssistant},
	{Key: "?", Description: "Show this help", Category: CategoryGeneral},
	{Key: "ctrl+c", DisplayKey: "Ctrl+C", Description: "Quit immediately", Category: CategoryGeneral},
}

// isShortcutApplicable reports whether a shortcut's guards pass in the
// current application state.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	return s.Condition == nil || s.Condition(m)
}

// ExecuteShortcut looks up and runs the shortcut bound to key. The third
// return reports whether the key was handled; an unhandled key propagates
// to the focused component.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	// Help is defined outside the registry to avoid an init cycle with
	// getApplicableHelpSections.
	if key == "?" {
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help modal sections from shortcuts
// that are applicable in the current application state.
func (m *Model) getApplicableHelpSections() []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range ShortcutRegistry {
		if !m.isShortcutApplicable(s) {
			continue
		}
		add(s)
	}

	for _, s := range displayOnlyShortcuts {
		// Assistant hints only make sense where the panel can appear
		if s.Category == CategoryAssistant && !m.panel.Eligible() && !m.panel.IsOpen() {
			continue
		}
		add(s)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// currentAuthor is the author of whatever story the user is on.
func (m *Model) currentAuthor() string {
	if m.view == ui.ViewStory {
		if story := m.storyView.Story(); story != nil {
			return story.By
		}
		return ""
	}
	if story := m.storyList.Selected(); story != nil {
		return story.By
	}
	return ""
}

// currentStoryURL is the external link of whatever story the user is on.
func (m *Model) currentStoryURL() string {
	if m.view == ui.ViewStory {
		if story := m.storyView.Story(); story != nil {
			return story.URL
		}
		return ""
	}
	if story := m.storyList.Selected(); story != nil {
		return story.URL
	}
	return ""
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	m.toggleFocus()
	return m, nil
}

func shortcutActivate(m *Model) (tea.Model, tea.Cmd) {
	if m.focus == FocusSidebar {
		return m, m.activateSelectedFeed()
	}
	return m, m.openSelectedStory()
}

func shortcutBack(m *Model) (tea.Model, tea.Cmd) {
	if m.storyView.HasSelection() {
		m.storyView.ClearSelection()
		return m, nil
	}
	m.closeStory()
	return m, nil
}

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewSearchState())
	return m, nil
}

func shortcutUserProfile(m *Model) (tea.Model, tea.Cmd) {
	author := m.currentAuthor()
	m.modal.Show(modals.NewUserState(author))
	return m, m.loadUserCmd(author)
}

func shortcutOpenLink(m *Model) (tea.Model, tea.Cmd) {
	return m, openInBrowser(m.currentStoryURL())
}

func shortcutFetchArticle(m *Model) (tea.Model, tea.Cmd) {
	story := m.storyView.Story()
	if story == nil || story.URL == "" {
		return m, nil
	}
	m.storyView.SetArticleLoading()
	return m, m.loadArticleCmd(story.ID, story.URL)
}

func shortcutCopySelection(m *Model) (tea.Model, tea.Cmd) {
	return m, m.storyView.CopySelection()
}

func shortcutToggleZen(m *Model) (tea.Model, tea.Cmd) {
	m.zenMode = !m.zenMode
	m.applyAssistantVisibility()
	m.updateSizes()
	return m, nil
}

func shortcutToggleAssistant(m *Model) (tea.Model, tea.Cmd) {
	opening := !m.panel.IsOpen()
	if opening {
		m.panel.SetContext(m.storyView.Story(), m.storyView.Comments())
	}
	cmd := m.panel.Toggle()
	if m.panel.IsOpen() {
		m.setFocus(FocusAssistant)
	} else if m.focus == FocusAssistant {
		m.setFocus(FocusStory)
	}
	m.updateSizes()
	return m, cmd
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	themes := ui.ThemeNames()
	themeIDs := make([]string, len(themes))
	themeDisplayNames := make([]string, len(themes))
	for i, name := range themes {
		themeIDs[i] = string(name)
		themeDisplayNames[i] = ui.GetTheme(name).Name
	}

	feeds := hn.Feeds()
	feedIDs := make([]string, len(feeds))
	feedDisplayNames := make([]string, len(feeds))
	for i, feed := range feeds {
		feedIDs[i] = string(feed)
		feedDisplayNames[i] = feed.DisplayName()
	}

	stats := m.hnClient.CacheStats()
	m.modal.Show(modals.NewSettingsState(
		themeIDs, themeDisplayNames, string(ui.CurrentThemeName()),
		feedIDs, feedDisplayNames, m.config.GetDefaultFeed(),
		m.config.GetPageSize(),
		m.config.GetNotificationsEnabled(),
		m.config.GetZenMode(),
		modals.CacheStats{Items: stats.Items, Feeds: stats.Feeds, Users: stats.Users},
	))
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpStateFromSections(m.getApplicableHelpSections()))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, m.quitCmd()
}

// activateSelectedFeed switches the story list to the feed highlighted
// in the sidebar and fetches its first page.
func (m *Model) activateSelectedFeed() tea.Cmd {
	feed := m.sidebar.Selected()
	if feed == m.sidebar.Active() && !m.storyList.IsLoading() && m.storyList.Len() > 0 {
		m.setFocus(FocusStories)
		return nil
	}

	m.sidebar.SetActive(feed)
	m.sidebar.SetLoading(true)
	m.storyList.SetFeed(feed)
	m.storyList.SetLoading(true)
	m.header.SetFeed(feed.DisplayName())
	m.setFocus(FocusStories)

	return tea.Batch(m.loadFeedCmd(feed), ui.StoriesTick())
}

// openInBrowser launches the platform browser for a URL.
func openInBrowser(url string) tea.Cmd {
	if url == "" {
		return nil
	}
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Start(); err != nil {
			logger.ComponentLogger("App").Error("Failed to open browser", "url", url, "error", err)
		}
		return nil
	}
}
