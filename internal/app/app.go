package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/pastelhq/pastel/internal/assistant"
	"github.com/pastelhq/pastel/internal/config"
	"github.com/pastelhq/pastel/internal/hn"
	"github.com/pastelhq/pastel/internal/logger"
	"github.com/pastelhq/pastel/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota // feed sidebar (stories view)
	FocusStories              // story list (stories view)
	FocusStory                // story detail pane (story view)
	FocusAssistant
)

// String returns a human-readable name for the focus state
func (f Focus) String() string {
	switch f {
	case FocusSidebar:
		return "Sidebar"
	case FocusStories:
		return "Stories"
	case FocusStory:
		return "Story"
	case FocusAssistant:
		return "Assistant"
	default:
		return "Unknown"
	}
}

// commentDepth is how many levels of the thread are fetched with a story.
const commentDepth = 4

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)

	header    *ui.Header
	footer    *ui.Footer
	sidebar   *ui.FeedSidebar
	storyList *ui.StoryList
	storyView *ui.StoryView
	panel     *ui.AssistantPanel
	modal     *ui.Modal

	hnClient *hn.Client

	width  int
	height int

	view    ui.View
	focus   Focus
	zenMode bool

	// pendingStoryID guards against a stale story fetch landing after
	// the user navigated elsewhere.
	pendingStoryID int
}

// New creates a new app model
func New(cfg *config.Config, version string, opts ...Option) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	feed, err := hn.ParseFeed(cfg.GetDefaultFeed())
	if err != nil {
		feed = hn.FeedTop
	}

	m := &Model{
		config:    cfg,
		version:   version,
		header:    ui.NewHeader(),
		footer:    ui.NewFooter(),
		sidebar:   ui.NewFeedSidebar(feed),
		storyList: ui.NewStoryList(feed),
		storyView: ui.NewStoryView(),
		modal:     ui.NewModal(),
		view:      ui.ViewStories,
		focus:     FocusStories,
		zenMode:   cfg.GetZenMode(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.hnClient == nil {
		m.hnClient = hn.New()
	}
	if m.panel == nil {
		m.panel = ui.NewAssistantPanel(assistant.New(nil))
	}

	m.header.SetFeed(feed.DisplayName())
	m.storyList.SetFocused(true)
	m.applyAssistantVisibility()

	return m
}

// Panel exposes the assistant panel.
func (m *Model) Panel() *ui.AssistantPanel {
	return m.panel
}

// applyAssistantVisibility re-evaluates the assistant eligibility policy
// after any zen or view transition, and keeps the story view's selection
// menu gated the same way.
func (m *Model) applyAssistantVisibility() {
	wasOpen := m.panel.IsOpen()
	m.panel.SetVisibility(m.zenMode, m.view)
	m.storyView.SetAssistantEligible(m.panel.Eligible())
	if wasOpen && !m.panel.IsOpen() && m.focus == FocusAssistant {
		m.focus = FocusStory
		m.storyView.SetFocused(true)
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	logger.ComponentLogger("App").Debug("Starting",
		"version", m.version,
		"feed", string(m.sidebar.Active()),
	)

	cmds := []tea.Cmd{
		m.loadFeedCmd(m.sidebar.Active()),
		m.panel.CheckCmd(),
		ui.StoriesTick(),
	}
	if !m.config.HasSeenWelcome() {
		cmds = append(cmds, func() tea.Msg { return StartupModalMsg{} })
	}
	return tea.Batch(cmds...)
}
