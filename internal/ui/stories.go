package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/pastelhq/pastel/internal/hn"
	"github.com/pastelhq/pastel/internal/keys"
)

// feedSpinnerFrames reuses the assistant panel's shimmering spinner.
var feedSpinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// feedSpinnerHoldTimes defines how long each frame is held (in ticks).
// First and last frames hold longer for a breathing effect.
var feedSpinnerHoldTimes = []int{3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 3}

// StoriesTickMsg advances the loading spinners on the stories view.
type StoriesTickMsg time.Time

// StoriesTick returns a command that sends a tick message after a delay.
func StoriesTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return StoriesTickMsg(t)
	})
}

// ============================================================================
// Feed sidebar
// ============================================================================

// FeedSidebar is the left panel listing the HN feeds. One feed is active
// (its stories fill the list panel); the selection moves independently
// until enter activates it.
type FeedSidebar struct {
	feeds       []hn.Feed
	selectedIdx int
	active      hn.Feed

	width   int
	height  int
	focused bool

	loading      bool
	spinnerFrame int
	spinnerTick  int
}

// NewFeedSidebar creates a sidebar with the selection on the active feed.
func NewFeedSidebar(active hn.Feed) *FeedSidebar {
	s := &FeedSidebar{feeds: hn.Feeds(), active: active}
	for i, f := range s.feeds {
		if f == active {
			s.selectedIdx = i
			break
		}
	}
	return s
}

// SetSize sets the sidebar dimensions.
func (s *FeedSidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width.
func (s *FeedSidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state.
func (s *FeedSidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *FeedSidebar) IsFocused() bool {
	return s.focused
}

// Selected returns the highlighted feed.
func (s *FeedSidebar) Selected() hn.Feed {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.feeds) {
		return hn.FeedTop
	}
	return s.feeds[s.selectedIdx]
}

// Active returns the feed whose stories are currently shown.
func (s *FeedSidebar) Active() hn.Feed {
	return s.active
}

// SetActive marks feed as the one being shown and moves the selection to it.
func (s *FeedSidebar) SetActive(feed hn.Feed) {
	s.active = feed
	for i, f := range s.feeds {
		if f == feed {
			s.selectedIdx = i
			break
		}
	}
}

// SetLoading toggles the spinner next to the active feed.
func (s *FeedSidebar) SetLoading(loading bool) {
	s.loading = loading
}

// IsLoading returns whether the active feed is being fetched.
func (s *FeedSidebar) IsLoading() bool {
	return s.loading
}

// Update handles messages.
func (s *FeedSidebar) Update(msg tea.Msg) (*FeedSidebar, tea.Cmd) {
	switch msg := msg.(type) {
	case StoriesTickMsg:
		if !s.loading {
			return s, nil
		}
		s.spinnerTick++
		holdTime := feedSpinnerHoldTimes[s.spinnerFrame%len(feedSpinnerHoldTimes)]
		if s.spinnerTick >= holdTime {
			s.spinnerTick = 0
			s.spinnerFrame = (s.spinnerFrame + 1) % len(feedSpinnerFrames)
		}
		return s, StoriesTick()

	case tea.KeyPressMsg:
		if !s.focused {
			return s, nil
		}
		switch msg.String() {
		case keys.Up, "k":
			if s.selectedIdx > 0 {
				s.selectedIdx--
			}
		case keys.Down, "j":
			if s.selectedIdx < len(s.feeds)-1 {
				s.selectedIdx++
			}
		}
	}

	return s, nil
}

// View renders the feed list.
func (s *FeedSidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height)

	markerStyle := lipgloss.NewStyle().Foreground(ColorPrimary)

	lines := make([]string, 0, len(s.feeds))
	for i, feed := range s.feeds {
		marker := "  "
		if feed == s.active {
			if s.loading {
				marker = feedSpinnerFrames[s.spinnerFrame] + " "
			} else {
				marker = "● "
			}
		}

		switch {
		case i == s.selectedIdx:
			lines = append(lines, SidebarSelectedStyle.Width(innerWidth).Render(marker+feed.DisplayName()))
		case feed == s.active:
			lines = append(lines, " "+markerStyle.Render(marker)+StoryTitleStyle.Render(feed.DisplayName()))
		default:
			lines = append(lines, SidebarItemStyle.Render(marker+feed.DisplayName()))
		}
	}

	if len(lines) > innerHeight && innerHeight > 0 {
		lines = lines[:innerHeight]
	}

	return style.Width(s.width).Height(s.height).Render(strings.Join(lines, "\n"))
}

// ============================================================================
// Story list
// ============================================================================

// StoryList is the main panel of the stories view: one two-line row per
// story (rank + title, then score/author/age/comments), scrolled to keep
// the selection visible.
type StoryList struct {
	stories     []*hn.Item
	selectedIdx int
	feed        hn.Feed

	width   int
	height  int
	focused bool

	scrollOffset int
	hasMore      bool
	loading      bool
	loadingMore  bool
	spinnerFrame int
	spinnerTick  int
}

// NewStoryList creates an empty list for the given feed.
func NewStoryList(feed hn.Feed) *StoryList {
	return &StoryList{feed: feed}
}

// SetSize sets the list dimensions.
func (l *StoryList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetFocused sets the focus state.
func (l *StoryList) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused returns the focus state.
func (l *StoryList) IsFocused() bool {
	return l.focused
}

// SetFeed records which feed the list shows, for loading and empty copy.
func (l *StoryList) SetFeed(feed hn.Feed) {
	l.feed = feed
}

// SetStories replaces the list contents, resetting selection and scroll.
// Used when a feed loads or reloads.
func (l *StoryList) SetStories(stories []*hn.Item, hasMore bool) {
	l.stories = stories
	l.hasMore = hasMore
	l.selectedIdx = 0
	l.scrollOffset = 0
	l.loading = false
	l.loadingMore = false
}

// AppendStories adds the next page, keeping selection and scroll.
func (l *StoryList) AppendStories(stories []*hn.Item, hasMore bool) {
	l.stories = append(l.stories, stories...)
	l.hasMore = hasMore
	l.loadingMore = false
}

// Stories returns the loaded stories.
func (l *StoryList) Stories() []*hn.Item {
	return l.stories
}

// Selected returns the highlighted story, or nil when the list is empty.
func (l *StoryList) Selected() *hn.Item {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.stories) {
		return nil
	}
	return l.stories[l.selectedIdx]
}

// SelectedIndex returns the highlighted row index.
func (l *StoryList) SelectedIndex() int {
	return l.selectedIdx
}

// Len returns how many stories are loaded.
func (l *StoryList) Len() int {
	return len(l.stories)
}

// HasMore reports whether another page can be fetched.
func (l *StoryList) HasMore() bool {
	return l.hasMore
}

// NearEnd reports whether the selection is close enough to the bottom
// that the next page should be fetched.
func (l *StoryList) NearEnd() bool {
	return len(l.stories) > 0 && l.selectedIdx >= len(l.stories)-LoadMoreThreshold
}

// SetLoading toggles the full-panel loading state (initial feed fetch).
func (l *StoryList) SetLoading(loading bool) {
	l.loading = loading
}

// IsLoading returns whether the initial fetch is in flight.
func (l *StoryList) IsLoading() bool {
	return l.loading
}

// SetLoadingMore toggles the bottom-row spinner for a page fetch.
func (l *StoryList) SetLoadingMore(loading bool) {
	l.loadingMore = loading
}

// IsLoadingMore returns whether a page fetch is in flight.
func (l *StoryList) IsLoadingMore() bool {
	return l.loadingMore
}

// visibleRows returns how many story rows fit in the panel.
func (l *StoryList) visibleRows() int {
	rows := GetViewContext().InnerHeight(l.height) / StoryRowHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Update handles messages.
func (l *StoryList) Update(msg tea.Msg) (*StoryList, tea.Cmd) {
	switch msg := msg.(type) {
	case StoriesTickMsg:
		if !l.loading && !l.loadingMore {
			return l, nil
		}
		l.spinnerTick++
		holdTime := feedSpinnerHoldTimes[l.spinnerFrame%len(feedSpinnerHoldTimes)]
		if l.spinnerTick >= holdTime {
			l.spinnerTick = 0
			l.spinnerFrame = (l.spinnerFrame + 1) % len(feedSpinnerFrames)
		}
		return l, StoriesTick()

	case tea.KeyPressMsg:
		if !l.focused {
			return l, nil
		}
		switch msg.String() {
		case keys.Up, "k":
			if l.selectedIdx > 0 {
				l.selectedIdx--
			}
		case keys.Down, "j":
			if l.selectedIdx < len(l.stories)-1 {
				l.selectedIdx++
			}
		case keys.PgUp:
			l.selectedIdx -= l.visibleRows()
			if l.selectedIdx < 0 {
				l.selectedIdx = 0
			}
		case keys.PgDown:
			l.selectedIdx += l.visibleRows()
			if l.selectedIdx > len(l.stories)-1 {
				l.selectedIdx = len(l.stories) - 1
			}
			if l.selectedIdx < 0 {
				l.selectedIdx = 0
			}
		case keys.Home, "g":
			l.selectedIdx = 0
		case keys.End, "G":
			if len(l.stories) > 0 {
				l.selectedIdx = len(l.stories) - 1
			}
		}
	}

	return l, nil
}

// View renders the story list.
func (l *StoryList) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if l.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(l.width)
	innerHeight := ctx.InnerHeight(l.height)

	var content string
	switch {
	case l.loading:
		frame := feedSpinnerFrames[l.spinnerFrame]
		content = StatusLoadingStyle.Render(fmt.Sprintf(" %s Loading %s stories...", frame, strings.ToLower(l.feed.DisplayName())))
	case len(l.stories) == 0:
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render(" No stories.")
	default:
		// Build actual rendered lines so scroll math survives styling.
		var allLines []string
		selectedStartLine := 0

		for i, item := range l.stories {
			selected := i == l.selectedIdx
			if selected {
				selectedStartLine = len(allLines)
			}
			allLines = append(allLines, l.renderStoryLines(item, i+1, selected, innerWidth)...)
		}
		if l.loadingMore {
			allLines = append(allLines, StatusLoadingStyle.Render(" "+feedSpinnerFrames[l.spinnerFrame]+" Loading more..."))
		}

		// Adjust scroll to keep the selected story visible.
		visibleHeight := innerHeight
		if selectedStartLine < l.scrollOffset {
			l.scrollOffset = selectedStartLine
		} else if selectedStartLine+StoryRowHeight > l.scrollOffset+visibleHeight {
			l.scrollOffset = selectedStartLine + StoryRowHeight - visibleHeight
		}

		if l.scrollOffset < 0 {
			l.scrollOffset = 0
		}
		maxScroll := len(allLines) - visibleHeight
		if maxScroll < 0 {
			maxScroll = 0
		}
		if l.scrollOffset > maxScroll {
			l.scrollOffset = maxScroll
		}

		if l.scrollOffset > 0 && l.scrollOffset < len(allLines) {
			allLines = allLines[l.scrollOffset:]
		}
		if len(allLines) > visibleHeight {
			allLines = allLines[:visibleHeight]
		}

		content = strings.Join(allLines, "\n")
	}

	return style.Width(l.width).Height(l.height).Render(content)
}

// renderStoryLines builds the two display lines for one story.
func (l *StoryList) renderStoryLines(item *hn.Item, rank int, selected bool, innerWidth int) []string {
	rankStr := fmt.Sprintf("%3d. ", rank)
	indent := strings.Repeat(" ", len(rankStr))

	title := item.Title
	if title == "" {
		title = "(untitled)"
	}
	domain := item.Domain()

	var metaParts []string
	if item.Score > 0 {
		metaParts = append(metaParts, fmt.Sprintf("%d points", item.Score))
	}
	if item.By != "" {
		metaParts = append(metaParts, "by "+item.By)
	}
	metaParts = append(metaParts, hn.RelativeTime(item.Time, time.Now()))
	meta := strings.Join(metaParts, " ")
	if item.Descendants > 0 {
		meta += fmt.Sprintf(" | %d comments", item.Descendants)
	}

	if selected {
		titleLine := rankStr + title
		if domain != "" {
			titleLine += " (" + domain + ")"
		}
		rowStyle := SidebarSelectedStyle.Width(innerWidth).Padding(0)
		return []string{
			rowStyle.Render(ansi.Truncate(titleLine, innerWidth, "…")),
			rowStyle.Render(ansi.Truncate(indent+meta, innerWidth, "…")),
		}
	}

	titleLine := StoryRankStyle.Render(rankStr) + StoryTitleStyle.Render(title)
	if domain != "" {
		titleLine += " " + StoryDomainStyle.Render("("+domain+")")
	}

	metaLine := indent
	if item.Score > 0 {
		rest := strings.TrimPrefix(meta, metaParts[0])
		metaLine += StoryScoreStyle.Render(metaParts[0]) + StoryMetaStyle.Render(rest)
	} else {
		metaLine += StoryMetaStyle.Render(meta)
	}

	return []string{
		ansi.Truncate(titleLine, innerWidth, "…"),
		ansi.Truncate(metaLine, innerWidth, "…"),
	}
}
