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

// Region markers for rendered lines. Values >= 0 index into the
// comment slice; the two sentinels mark the article block and chrome
// (separators, headers) where selections carry no actionable context.
const (
	lineRegionNone    = -2
	lineRegionArticle = -1
)

// StoryView is the story detail pane: article header and body followed
// by the threaded comments, with mouse text selection and the floating
// selection-action menu. Scrolling is manual line-slice scrolling so
// pane rows map to content lines by a single offset.
type StoryView struct {
	story    *hn.Item
	comments []*hn.Comment

	// article is the extracted text of the linked page, fetched on
	// demand for link posts.
	article        *hn.Article
	articleLoading bool

	width   int
	height  int
	focused bool

	loading      bool
	spinnerFrame int
	spinnerTick  int

	scrollOffset int

	// lines is the fully rendered content at the current width;
	// regions holds one region marker per line.
	lines   []string
	regions []int

	selection Selection
	menu      SelectionMenu

	// assistantEligible mirrors the app-level zen+story policy. The
	// selection menu never opens while it is false.
	assistantEligible bool
}

// NewStoryView creates an empty story view.
func NewStoryView() *StoryView {
	return &StoryView{
		selection: NewSelection(),
		menu:      NewSelectionMenu(),
	}
}

// SetSize sets the pane dimensions and re-wraps the content.
func (v *StoryView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.rebuildContent()
}

// SetFocused sets the focus state.
func (v *StoryView) SetFocused(focused bool) {
	v.focused = focused
}

// IsFocused returns the focus state.
func (v *StoryView) IsFocused() bool {
	return v.focused
}

// SetLoading toggles the full-pane loading state.
func (v *StoryView) SetLoading(loading bool) {
	v.loading = loading
}

// IsLoading returns whether the story fetch is in flight.
func (v *StoryView) IsLoading() bool {
	return v.loading
}

// SetAssistantEligible records whether the assistant surface is active
// for the current app state. While false, finishing a selection never
// opens the action menu.
func (v *StoryView) SetAssistantEligible(eligible bool) {
	v.assistantEligible = eligible
	if !eligible {
		v.menu.Hide()
	}
}

// SetStory binds the story and its comment thread, resetting scroll and
// any selection from the previous story.
func (v *StoryView) SetStory(story *hn.Item, comments []*hn.Comment) {
	v.story = story
	v.comments = comments
	v.article = nil
	v.articleLoading = false
	v.loading = false
	v.scrollOffset = 0
	v.selection.Clear()
	v.menu.Hide()
	v.rebuildContent()
}

// Story returns the bound story, or nil.
func (v *StoryView) Story() *hn.Item {
	return v.story
}

// Comments returns the bound comment thread.
func (v *StoryView) Comments() []*hn.Comment {
	return v.comments
}

// SetArticleLoading marks an article fetch in flight for the bound
// story.
func (v *StoryView) SetArticleLoading() {
	v.articleLoading = true
	v.rebuildContent()
}

// SetArticle binds the extracted article text. A nil article clears the
// loading indicator without adding content, which is how a failed fetch
// lands.
func (v *StoryView) SetArticle(article *hn.Article) {
	v.article = article
	v.articleLoading = false
	v.rebuildContent()
}

// Article returns the extracted article, or nil.
func (v *StoryView) Article() *hn.Article {
	return v.article
}

// IsArticleLoading returns whether an article fetch is in flight.
func (v *StoryView) IsArticleLoading() bool {
	return v.articleLoading
}

// Menu exposes the selection menu for the app's dispatch and dismissal
// handling.
func (v *StoryView) Menu() *SelectionMenu {
	return &v.menu
}

// ============================================================================
// Scrolling
// ============================================================================

func (v *StoryView) visibleHeight() int {
	h := GetViewContext().InnerHeight(v.height)
	if h < 1 {
		h = 1
	}
	return h
}

func (v *StoryView) maxScroll() int {
	m := len(v.lines) - v.visibleHeight()
	if m < 0 {
		m = 0
	}
	return m
}

func (v *StoryView) scrollBy(delta int) {
	v.scrollOffset += delta
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
	if max := v.maxScroll(); v.scrollOffset > max {
		v.scrollOffset = max
	}
}

// ScrollOffset returns the index of the first visible content line.
func (v *StoryView) ScrollOffset() int {
	return v.scrollOffset
}

// ============================================================================
// Update
// ============================================================================

// Update handles scroll keys, menu navigation, and spinner ticks.
func (v *StoryView) Update(msg tea.Msg) (*StoryView, tea.Cmd) {
	switch msg := msg.(type) {
	case StoriesTickMsg:
		if !v.loading {
			return v, nil
		}
		v.spinnerTick++
		holdTime := feedSpinnerHoldTimes[v.spinnerFrame%len(feedSpinnerHoldTimes)]
		if v.spinnerTick >= holdTime {
			v.spinnerTick = 0
			v.spinnerFrame = (v.spinnerFrame + 1) % len(feedSpinnerFrames)
		}
		return v, StoriesTick()

	case SelectionFlashTickMsg:
		return v, v.selection.AdvanceFlash()

	case tea.MouseWheelMsg:
		if msg.Y < 0 {
			v.scrollBy(-3)
		} else if msg.Y > 0 {
			v.scrollBy(3)
		}
		return v, nil

	case tea.KeyPressMsg:
		if !v.focused {
			return v, nil
		}
		if v.menu.Visible() {
			return v, v.handleMenuKey(msg)
		}
		switch msg.String() {
		case keys.Up, "k":
			v.scrollBy(-1)
		case keys.Down, "j":
			v.scrollBy(1)
		case keys.PgUp, keys.CtrlU:
			v.scrollBy(-v.visibleHeight())
		case keys.PgDown, keys.CtrlD:
			v.scrollBy(v.visibleHeight())
		case keys.Home, "g":
			v.scrollOffset = 0
		case keys.End, "G":
			v.scrollOffset = v.maxScroll()
		}
	}

	return v, nil
}

// handleMenuKey routes keys while the selection menu is open. Enter
// dispatches the highlighted action as a message.
func (v *StoryView) handleMenuKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Up, "k":
		v.menu.MoveUp()
	case keys.Down, "j":
		v.menu.MoveDown()
	case keys.Escape:
		v.menu.Hide()
	case keys.Enter:
		if action, ok := v.menu.Select(); ok {
			return func() tea.Msg { return action }
		}
	}
	return nil
}

// ============================================================================
// Mouse and selection
// ============================================================================

// HandleMousePress routes a press in pane-local cells. Presses inside
// an open menu dispatch the clicked action; presses outside dismiss
// the menu; everything else starts or extends a text selection.
func (v *StoryView) HandleMousePress(x, y int) tea.Cmd {
	px, py := v.contentX(x), v.contentY(y)

	if v.menu.Visible() {
		if action, ok := v.menu.ClickItem(px, py); ok {
			return func() tea.Msg { return action }
		}
		v.menu.Hide()
		return nil
	}

	return v.selection.HandleClick(px, py, v.visibleView())
}

// HandleMouseMotion extends an active drag selection.
func (v *StoryView) HandleMouseMotion(x, y int) {
	v.selection.Extend(v.contentX(x), v.contentY(y))
}

// HandleMouseRelease finishes a drag and, when the assistant surface
// is eligible and the selection qualifies, opens the action menu over
// it. Selections that fail validation leave any previous capture
// untouched.
func (v *StoryView) HandleMouseRelease() {
	v.selection.Stop()

	if !v.assistantEligible || !v.selection.HasSelection() {
		return
	}

	text := v.selection.Text(v.visibleView())
	if len(strings.TrimSpace(text)) < MinSelectionChars {
		return
	}

	_, startLine, _, _ := v.selection.Area()
	region, capture := v.regionAt(startLine + v.scrollOffset)
	if region == lineRegionNone {
		return
	}

	menuRegion := RegionArticle
	if region >= 0 {
		menuRegion = RegionComment
	}

	paneWidth := GetViewContext().InnerWidth(v.width)
	left, top, right, bottom := BoundsOf(&v.selection, paneWidth)
	v.menu.ShowForSelection(text, menuRegion, capture, left, top, right, bottom, paneWidth)
}

// CopySelection copies the current selection to the clipboard.
func (v *StoryView) CopySelection() tea.Cmd {
	return v.selection.Copy(v.visibleView())
}

// HasSelection reports whether a selection exists in the pane.
func (v *StoryView) HasSelection() bool {
	return v.selection.HasSelection()
}

// ClearSelection drops the selection and hides the menu.
func (v *StoryView) ClearSelection() {
	v.selection.Clear()
	v.menu.Hide()
}

// regionAt resolves a content line to its region and, for comment
// lines, the capture describing the enclosing comment.
func (v *StoryView) regionAt(line int) (int, *CommentCapture) {
	if line < 0 || line >= len(v.regions) {
		return lineRegionNone, nil
	}
	region := v.regions[line]
	if region < 0 {
		return region, nil
	}
	c := v.comments[region]
	return region, &CommentCapture{
		ID:     c.ID,
		Author: c.By,
		Body:   hn.Truncate(c.PlainText(), CommentCaptureLimit),
	}
}

// contentX converts a pane-local column to a content column, stepping
// over the left border.
func (v *StoryView) contentX(x int) int {
	return x - 1
}

// contentY converts a pane-local row to a visible content row,
// stepping over the top border.
func (v *StoryView) contentY(y int) int {
	return y - 1
}

// ============================================================================
// Content
// ============================================================================

// rebuildContent renders the article and comment thread into lines and
// parallel region markers at the current width.
func (v *StoryView) rebuildContent() {
	v.lines = nil
	v.regions = nil

	if v.story == nil {
		return
	}

	wrapWidth := GetViewContext().InnerWidth(v.width)
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	v.appendArticle(wrapWidth)
	v.appendComments(wrapWidth)

	if max := v.maxScroll(); v.scrollOffset > max {
		v.scrollOffset = max
	}
}

func (v *StoryView) appendLine(line string, region int) {
	v.lines = append(v.lines, line)
	v.regions = append(v.regions, region)
}

func (v *StoryView) appendWrapped(text string, style lipgloss.Style, wrapWidth, region int) {
	for _, line := range strings.Split(wrapText(text, wrapWidth), "\n") {
		v.appendLine(style.Render(line), region)
	}
}

func (v *StoryView) appendArticle(wrapWidth int) {
	story := v.story

	title := story.Title
	if title == "" {
		title = "(untitled)"
	}
	v.appendWrapped(title, StoryTitleStyle.Bold(true), wrapWidth, lineRegionNone)

	var metaParts []string
	if story.Score > 0 {
		metaParts = append(metaParts, fmt.Sprintf("%d points", story.Score))
	}
	if story.By != "" {
		metaParts = append(metaParts, "by "+story.By)
	}
	metaParts = append(metaParts, story.Age(time.Now()))
	if story.Descendants > 0 {
		metaParts = append(metaParts, fmt.Sprintf("%d comments", story.Descendants))
	}
	v.appendLine(StoryMetaStyle.Render(strings.Join(metaParts, " | ")), lineRegionNone)

	if story.URL != "" {
		v.appendLine(StoryDomainStyle.Render(ansi.Truncate(story.URL, wrapWidth, "…")), lineRegionNone)
	}

	if body := story.PlainText(); body != "" {
		v.appendLine("", lineRegionArticle)
		v.appendWrapped(body, ChatMessageStyle, wrapWidth, lineRegionArticle)
	}

	if v.articleLoading {
		v.appendLine("", lineRegionNone)
		v.appendLine(CommentMetaStyle.Render("Fetching article…"), lineRegionNone)
	}
	if v.article != nil {
		v.appendLine("", lineRegionNone)
		v.appendLine(StoryMetaStyle.Render(fmt.Sprintf("Article · %d words", v.article.WordCount)), lineRegionNone)
		if v.article.Title != "" && v.article.Title != story.Title {
			v.appendWrapped(v.article.Title, StoryTitleStyle, wrapWidth, lineRegionNone)
		}
		v.appendLine("", lineRegionArticle)
		v.appendWrapped(v.article.Text, ChatMessageStyle, wrapWidth, lineRegionArticle)
	}
}

func (v *StoryView) appendComments(wrapWidth int) {
	if len(v.comments) == 0 {
		v.appendLine("", lineRegionNone)
		v.appendLine(CommentMetaStyle.Render("No comments yet."), lineRegionNone)
		return
	}

	v.appendLine("", lineRegionNone)
	rule := strings.Repeat("─", max(wrapWidth, 1))
	v.appendLine(lipgloss.NewStyle().Foreground(ColorBorder).Render(rule), lineRegionNone)

	for i, c := range v.comments {
		indent := strings.Repeat(" ", c.Depth*CommentIndentWidth)
		bodyWidth := wrapWidth - c.Depth*CommentIndentWidth
		if bodyWidth < 16 {
			bodyWidth = 16
		}

		v.appendLine("", lineRegionNone)
		header := CommentAuthorStyle.Render(c.By) + CommentMetaStyle.Render(" · "+c.Age(time.Now()))
		v.appendLine(indent+header, i)
		for _, line := range strings.Split(wrapText(c.PlainText(), bodyWidth), "\n") {
			v.appendLine(indent+ChatMessageStyle.Render(line), i)
		}
	}
}

// visibleView returns the currently visible slice of content as one
// string, padded to the pane height. Selections and the menu operate
// in this coordinate space.
func (v *StoryView) visibleView() string {
	height := v.visibleHeight()
	start := v.scrollOffset
	if start > len(v.lines) {
		start = len(v.lines)
	}
	end := start + height
	if end > len(v.lines) {
		end = len(v.lines)
	}
	visible := make([]string, height)
	copy(visible, v.lines[start:end])
	return strings.Join(visible, "\n")
}

// ============================================================================
// View
// ============================================================================

// View renders the pane.
func (v *StoryView) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if v.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(v.width)
	innerHeight := ctx.InnerHeight(v.height)

	var content string
	switch {
	case v.loading:
		frame := feedSpinnerFrames[v.spinnerFrame]
		content = StatusLoadingStyle.Render(fmt.Sprintf(" %s Loading story...", frame))
	case v.story == nil:
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render(" Select a story to read it.")
	default:
		content = v.visibleView()
		if v.selection.HasSelection() {
			content = v.selection.Highlight(content, innerWidth, innerHeight)
		}
		content = v.menu.Overlay(content, innerWidth, innerHeight)
	}

	return style.Width(v.width).Height(v.height).Render(content)
}
