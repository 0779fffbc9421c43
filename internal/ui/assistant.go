package ui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"github.com/pastelhq/pastel/internal/assistant"
	"github.com/pastelhq/pastel/internal/bridge"
	"github.com/pastelhq/pastel/internal/hn"
)

// ============================================================================
// Transcript
// ============================================================================

// MessageRole identifies who authored a transcript message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single entry in the assistant transcript.
type Message struct {
	ID      uuid.UUID
	Role    MessageRole
	Content string
	Time    time.Time
}

// ResponseFallback is shown when a request completes without content.
const ResponseFallback = "Sorry, I encountered an error. Please try again."

// ============================================================================
// Quick actions
// ============================================================================

// QuickActionKind identifies a context-derived assistant shortcut.
type QuickActionKind int

const (
	QuickSummarize QuickActionKind = iota
	QuickAnalyzeDiscussion
	QuickAskAboutThis
)

// QuickAction is one entry in the bar between transcript and input,
// triggered with alt+1..alt+3.
type QuickAction struct {
	Label string
	Kind  QuickActionKind
}

// ============================================================================
// Messages
// ============================================================================

// AssistantStatusMsg carries the result of a bridge check or init.
type AssistantStatusMsg struct {
	Status bridge.Status
}

// AssistantResponseMsg carries the result of a content request.
// Content is nil when the request failed.
type AssistantResponseMsg struct {
	Content *string
}

// AssistantTickMsg drives the thinking spinner while a request is in flight.
type AssistantTickMsg time.Time

// AssistantTick schedules the next spinner frame.
func AssistantTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return AssistantTickMsg(t)
	})
}

// ============================================================================
// Spinner animation
// ============================================================================

var assistantSpinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

var thinkingVerbs = []string{
	"Thinking",
	"Reading",
	"Pondering",
	"Digesting",
	"Skimming",
	"Considering",
	"Analyzing",
	"Synthesizing",
	"Mulling",
	"Percolating",
}

func randomThinkingVerb() string {
	return thinkingVerbs[rand.Intn(len(thinkingVerbs))]
}

// formatElapsed renders a duration as a compact stopwatch reading.
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%ds", secs/60, secs%60)
}

// ============================================================================
// Panel
// ============================================================================

// AssistantPanel is the side panel hosting the AI conversation. It owns the
// transcript, the input textarea, the quick-action bar, and the request
// lifecycle against the bridge client. The panel only ever renders when the
// app has made it eligible (zen mode on the story view); a visibility change
// that revokes eligibility force-closes it.
type AssistantPanel struct {
	client *assistant.Client

	viewport viewport.Model
	input    textarea.Model

	width  int
	height int

	open     bool
	focused  bool
	eligible bool

	// forceClosed is set when a visibility change closes the panel while a
	// request may still be in flight, so the landing response can notify.
	forceClosed bool

	item        *hn.Item
	comments    []*hn.Comment
	lastBoundID int

	transcript []Message
	loading    bool
	startedAt  time.Time

	spinnerIdx   int
	thinkingVerb string

	selection Selection
}

// NewAssistantPanel creates a closed panel bound to the given client.
func NewAssistantPanel(client *assistant.Client) *AssistantPanel {
	ti := textarea.New()
	ti.Placeholder = "Ask about this story..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	p := &AssistantPanel{
		client:    client,
		viewport:  vp,
		input:     ti,
		selection: NewSelection(),
	}
	p.updateContent()
	return p
}

// ============================================================================
// Visibility
// ============================================================================

// AssistantEligible reports whether the panel may be shown for the given
// app state: zen mode on the story view, nowhere else.
func AssistantEligible(zenMode bool, view View) bool {
	return zenMode && view == ViewStory
}

// SetVisibility applies the eligibility policy for the current app state.
// When eligibility is revoked while the panel is open it closes immediately,
// no matter how it was opened.
func (p *AssistantPanel) SetVisibility(zenMode bool, view View) {
	p.eligible = AssistantEligible(zenMode, view)
	if !p.eligible && p.open {
		p.open = false
		p.focused = false
		p.forceClosed = true
		p.input.Blur()
	}
}

// Eligible reports whether the panel may currently be shown or opened.
func (p *AssistantPanel) Eligible() bool { return p.eligible }

// Toggle flips the panel open or closed. Opening focuses the input and, on
// first use, kicks off bridge initialization in the background.
func (p *AssistantPanel) Toggle() tea.Cmd {
	if !p.open && !p.eligible {
		return nil
	}
	p.open = !p.open
	if !p.open {
		p.focused = false
		p.input.Blur()
		return nil
	}
	p.focused = true
	p.forceClosed = false
	p.input.Focus()
	p.updateContent()
	if !p.client.IsInitialized() {
		return p.initCmd()
	}
	return nil
}

// Close closes the panel if open. Closing an already-closed panel is a no-op.
func (p *AssistantPanel) Close() {
	if !p.open {
		return
	}
	p.open = false
	p.focused = false
	p.input.Blur()
}

// IsOpen reports whether the panel is currently shown.
func (p *AssistantPanel) IsOpen() bool { return p.open }

func (p *AssistantPanel) initCmd() tea.Cmd {
	client := p.client
	return func() tea.Msg {
		return AssistantStatusMsg{Status: client.Init(context.Background())}
	}
}

// CheckCmd probes the bridge without initializing it, for startup status.
func (p *AssistantPanel) CheckCmd() tea.Cmd {
	client := p.client
	return func() tea.Msg {
		return AssistantStatusMsg{Status: client.Check(context.Background())}
	}
}

// openIfClosed opens the panel for selection-driven actions that need it
// visible before the request lands.
func (p *AssistantPanel) openIfClosed() tea.Cmd {
	if p.open {
		return nil
	}
	return p.Toggle()
}

// ============================================================================
// Context binding
// ============================================================================

// SetContext binds the story (and its loaded comments) the panel talks
// about. Binding a different story than the last one discards the
// transcript; re-binding the same story keeps it.
func (p *AssistantPanel) SetContext(item *hn.Item, comments []*hn.Comment) {
	if item != nil && p.lastBoundID != 0 && item.ID != p.lastBoundID {
		p.transcript = nil
	}
	if item != nil {
		p.lastBoundID = item.ID
	}
	p.item = item
	p.comments = comments
	p.updateContent()
}

// ClearContext unbinds the story but keeps the transcript, so a user
// returning to the same story picks up where they left off.
func (p *AssistantPanel) ClearContext() {
	p.item = nil
	p.comments = nil
	p.updateContent()
}

// BoundItem returns the story the panel is currently talking about.
func (p *AssistantPanel) BoundItem() *hn.Item { return p.item }

// ============================================================================
// Quick actions
// ============================================================================

// QuickActions derives the shortcut bar from the bound story: Summarize
// needs a URL, Analyze Discussion needs comments, Ask About This only needs
// a story.
func (p *AssistantPanel) QuickActions() []QuickAction {
	if p.item == nil {
		return nil
	}
	var actions []QuickAction
	if p.item.URL != "" {
		actions = append(actions, QuickAction{Label: "Summarize", Kind: QuickSummarize})
	}
	if p.item.Descendants > 0 {
		actions = append(actions, QuickAction{Label: "Analyze Discussion", Kind: QuickAnalyzeDiscussion})
	}
	actions = append(actions, QuickAction{Label: "Ask About This", Kind: QuickAskAboutThis})
	return actions
}

// RunQuickAction triggers the quick action at the given bar position.
// Ask About This focuses the input without sending anything.
func (p *AssistantPanel) RunQuickAction(idx int) tea.Cmd {
	actions := p.QuickActions()
	if idx < 0 || idx >= len(actions) {
		return nil
	}
	switch actions[idx].Kind {
	case QuickSummarize:
		return p.RunSummarize()
	case QuickAnalyzeDiscussion:
		return p.RunAnalyzeDiscussion()
	default:
		p.focused = true
		p.input.Focus()
		return nil
	}
}

// ============================================================================
// Requests
// ============================================================================

// startRequest flips the panel into its loading state and returns the
// command that performs the request plus the spinner tick. Callers must
// have verified no request is already in flight.
func (p *AssistantPanel) startRequest(fn func(context.Context) *string) tea.Cmd {
	p.loading = true
	p.startedAt = time.Now()
	p.spinnerIdx = 0
	p.thinkingVerb = randomThinkingVerb()
	p.updateContent()
	request := func() tea.Msg {
		return AssistantResponseMsg{Content: fn(context.Background())}
	}
	return tea.Batch(request, AssistantTick())
}

// SendFreeform submits the input textarea as a question. Empty input and
// in-flight requests are ignored. When a story is bound the prompt is
// prefixed with it so the conversation stays anchored.
func (p *AssistantPanel) SendFreeform() tea.Cmd {
	text := strings.TrimSpace(p.input.Value())
	if text == "" || p.loading {
		return nil
	}
	p.input.Reset()
	p.appendMessage(RoleUser, text)

	prompt := text
	if p.item != nil {
		prompt = contextAnnotation(p.item) + text
	}
	client := p.client
	return p.startRequest(func(ctx context.Context) *string {
		return client.Ask(ctx, prompt)
	})
}

// contextAnnotation anchors a freeform prompt to the bound story. Self
// posts have no domain, so the parenthetical is dropped for them.
func contextAnnotation(item *hn.Item) string {
	if domain := item.Domain(); domain != "" {
		return fmt.Sprintf("Regarding \"%s\" (%s): ", item.Title, domain)
	}
	return fmt.Sprintf("Regarding \"%s\": ", item.Title)
}

// RunSummarize asks for a summary of the bound story's linked article.
func (p *AssistantPanel) RunSummarize() tea.Cmd {
	if p.item == nil || p.loading {
		return nil
	}
	p.appendMessage(RoleUser, "Summarize this story")
	storyCtx := assistant.NewStoryContext(p.item)
	client := p.client
	return p.startRequest(func(ctx context.Context) *string {
		return client.Summarize(ctx, storyCtx)
	})
}

// RunAnalyzeDiscussion asks for the themes of the bound story's comments.
func (p *AssistantPanel) RunAnalyzeDiscussion() tea.Cmd {
	if p.item == nil || p.loading {
		return nil
	}
	p.appendMessage(RoleUser, "Analyze this discussion")
	discussionCtx := assistant.NewDiscussionContext(p.item, p.comments)
	client := p.client
	return p.startRequest(func(ctx context.Context) *string {
		return client.AnalyzeDiscussion(ctx, discussionCtx)
	})
}

// RunExplain asks for an explanation of selected text. The panel opens if
// it was closed so the answer has somewhere to land.
func (p *AssistantPanel) RunExplain(selected string) tea.Cmd {
	if p.loading {
		return nil
	}
	openCmd := p.openIfClosed()
	preview := hn.Truncate(hn.CollapseWhitespace(selected), 100)
	p.appendMessage(RoleUser, fmt.Sprintf("Explain this: \"%s\"", preview))
	contextLine := ""
	if p.item != nil {
		contextLine = p.item.Title
	}
	client := p.client
	return tea.Batch(openCmd, p.startRequest(func(ctx context.Context) *string {
		return client.Explain(ctx, selected, contextLine)
	}))
}

// RunDraftReply asks for a reply draft to the captured comment. Selections
// long enough to be a partial draft (over 10 characters) ride along as the
// user's starting point.
func (p *AssistantPanel) RunDraftReply(selected, author, body string) tea.Cmd {
	if p.loading {
		return nil
	}
	openCmd := p.openIfClosed()
	p.appendMessage(RoleUser, fmt.Sprintf("Draft a reply to %s", author))
	title := ""
	if p.item != nil {
		title = p.item.Title
	}
	replyCtx := assistant.NewReplyContext(author, body, title, selected)
	client := p.client
	return tea.Batch(openCmd, p.startRequest(func(ctx context.Context) *string {
		return client.DraftReply(ctx, replyCtx)
	}))
}

// HandleResponse lands a completed request in the transcript. The returned
// flag asks the app to fire a desktop notification: the panel was
// force-closed while this request was in flight, so the user never saw the
// answer arrive.
func (p *AssistantPanel) HandleResponse(msg AssistantResponseMsg) (notify bool) {
	p.loading = false
	content := ResponseFallback
	if msg.Content != nil {
		content = *msg.Content
	}
	p.appendMessage(RoleAssistant, content)
	if !p.open && p.forceClosed {
		p.forceClosed = false
		return true
	}
	return false
}

// HandleStatus refreshes the status row after a check or init completes.
func (p *AssistantPanel) HandleStatus(AssistantStatusMsg) {
	p.updateContent()
}

// HandleTick advances the spinner and reschedules while a request is in
// flight.
func (p *AssistantPanel) HandleTick() tea.Cmd {
	if !p.loading {
		return nil
	}
	p.spinnerIdx = (p.spinnerIdx + 1) % len(assistantSpinnerFrames)
	p.updateContent()
	return AssistantTick()
}

// IsLoading reports whether a request is in flight.
func (p *AssistantPanel) IsLoading() bool { return p.loading }

// Shutdown stops the host's assistant service. Called once, on program
// exit.
func (p *AssistantPanel) Shutdown(ctx context.Context) {
	p.client.Shutdown(ctx)
}

// ============================================================================
// Transcript access
// ============================================================================

func (p *AssistantPanel) appendMessage(role MessageRole, content string) {
	p.transcript = append(p.transcript, Message{
		ID:      uuid.New(),
		Role:    role,
		Content: content,
		Time:    time.Now(),
	})
	p.updateContent()
}

// Transcript returns the conversation so far, oldest first.
func (p *AssistantPanel) Transcript() []Message { return p.transcript }

// LastAssistantReply returns the content of the most recent assistant
// message, for the copy-reply shortcut.
func (p *AssistantPanel) LastAssistantReply() (string, bool) {
	for i := len(p.transcript) - 1; i >= 0; i-- {
		if p.transcript[i].Role == RoleAssistant {
			return p.transcript[i].Content, true
		}
	}
	return "", false
}

// ============================================================================
// Layout
// ============================================================================

// SetSize recalculates the panel layout for the given outer dimensions.
func (p *AssistantPanel) SetSize(width, height int) {
	p.width = width
	p.height = height

	ctx := GetViewContext()
	panelHeight := height - InputTotalHeight - QuickBarHeight
	viewportHeight := ctx.InnerHeight(panelHeight) - TitleHeight - SeparatorHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	p.viewport.SetWidth(ctx.InnerWidth(width))
	p.viewport.SetHeight(viewportHeight)
	p.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	ctx.Log("Assistant panel resized",
		"width", width,
		"height", height,
		"viewportHeight", viewportHeight,
	)
	p.updateContent()
}

// SetFocused moves keyboard focus to or away from the input textarea.
func (p *AssistantPanel) SetFocused(focused bool) {
	p.focused = focused
	if focused {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

// IsFocused reports whether the input textarea has keyboard focus.
func (p *AssistantPanel) IsFocused() bool { return p.focused }

// ============================================================================
// Content rendering
// ============================================================================

// updateContent rebuilds the transcript view and pins it to the bottom.
// Assistant messages render through the markdown renderer, user messages
// stay plain.
func (p *AssistantPanel) updateContent() {
	wrapWidth := p.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	var sb strings.Builder
	if len(p.transcript) == 0 && !p.loading {
		sb.WriteString(p.renderEmptyState(wrapWidth))
	} else {
		for i, msg := range p.transcript {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			if msg.Role == RoleUser {
				sb.WriteString(ChatUserStyle.Render("You"))
				sb.WriteString("\n")
				sb.WriteString(wrapText(msg.Content, wrapWidth))
			} else {
				sb.WriteString(ChatAssistantStyle.Render("Assistant"))
				sb.WriteString("\n")
				sb.WriteString(RenderMarkdown(msg.Content, wrapWidth))
			}
		}
		if p.loading {
			if len(p.transcript) > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(ChatAssistantStyle.Render("Assistant"))
			sb.WriteString("\n")
			sb.WriteString(p.renderThinking())
		}
	}

	p.viewport.SetContent(sb.String())
	p.viewport.GotoBottom()
}

func (p *AssistantPanel) renderThinking() string {
	frame := assistantSpinnerFrames[p.spinnerIdx%len(assistantSpinnerFrames)]
	spinner := lipgloss.NewStyle().Foreground(ColorUser).Bold(true).Render(frame)
	verb := lipgloss.NewStyle().Foreground(ColorPrimary).Italic(true).Render(p.thinkingVerb + "...")
	elapsed := lipgloss.NewStyle().Foreground(ColorTextMuted).Render("(" + formatElapsed(time.Since(p.startedAt)) + ")")
	return spinner + " " + verb + " " + elapsed
}

func (p *AssistantPanel) renderEmptyState(wrapWidth int) string {
	muted := lipgloss.NewStyle().Foreground(ColorTextMuted)
	if !p.client.IsAvailable() {
		return muted.Render(wrapText(p.client.LastStatus().Message, wrapWidth))
	}
	if p.item != nil {
		return muted.Render(wrapText("Ask anything about this story, or pick a quick action below.", wrapWidth))
	}
	return muted.Render(wrapText("Open a story to give the assistant something to read.", wrapWidth))
}

// renderHeader builds the title row with the bridge status pinned right.
func (p *AssistantPanel) renderHeader(innerWidth int) string {
	title := ChatAssistantStyle.Render("✦ Assistant")

	var status string
	switch {
	case p.loading:
		status = StatusLoadingStyle.Render("● thinking")
	case p.client.IsAvailable():
		status = StatusSuccessStyle.Render("● ready")
	default:
		status = StatusErrorStyle.Render("● offline")
	}

	gap := innerWidth - lipgloss.Width(title) - lipgloss.Width(status)
	if gap < 1 {
		return title
	}
	return title + strings.Repeat(" ", gap) + status
}

// renderQuickBar builds the single shortcut row. Bars wider than the
// panel are clipped rather than wrapped so the layout math holds.
func (p *AssistantPanel) renderQuickBar(width int) string {
	hint := lipgloss.NewStyle().Foreground(ColorTextMuted)
	actions := p.QuickActions()
	if len(actions) == 0 {
		return ansi.Truncate(hint.Render(" Open a story to unlock quick actions"), width, "…")
	}
	parts := make([]string, 0, len(actions))
	for i, action := range actions {
		key := QuickActionKeyStyle.Render(fmt.Sprintf("alt+%d", i+1))
		parts = append(parts, key+QuickActionStyle.Render(" "+action.Label))
	}
	return ansi.Truncate(" "+strings.Join(parts, hint.Render("  ·  ")), width, "…")
}

// ============================================================================
// Update and View
// ============================================================================

// Update routes messages while the panel is open. Scroll keys always go to
// the viewport; everything else goes to the input when focused.
func (p *AssistantPanel) Update(msg tea.Msg) (*AssistantPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case AssistantTickMsg:
		return p, p.HandleTick()
	case AssistantStatusMsg:
		p.HandleStatus(msg)
		return p, nil
	case SelectionFlashTickMsg:
		return p, p.selection.AdvanceFlash()
	}

	var cmd tea.Cmd
	if p.focused {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case "pgup", "pgdown", "ctrl+up", "ctrl+down", "home", "end",
				"page up", "page down", "ctrl+u", "ctrl+d":
				p.viewport, cmd = p.viewport.Update(msg)
				return p, cmd
			}
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}
	}

	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// HandleMousePress routes a click in panel-local coordinates into the
// transcript selection.
func (p *AssistantPanel) HandleMousePress(x, y int) tea.Cmd {
	return p.selection.HandleClick(p.transcriptX(x), p.transcriptY(y), p.viewport.View())
}

// HandleMouseMotion extends an active selection during a drag.
func (p *AssistantPanel) HandleMouseMotion(x, y int) {
	p.selection.Extend(p.transcriptX(x), p.transcriptY(y))
}

// HandleMouseRelease finishes a drag selection.
func (p *AssistantPanel) HandleMouseRelease() {
	p.selection.Stop()
}

// CopySelection copies the current transcript selection to the clipboard.
func (p *AssistantPanel) CopySelection() tea.Cmd {
	return p.selection.Copy(p.viewport.View())
}

// ClearSelection drops any transcript selection.
func (p *AssistantPanel) ClearSelection() {
	p.selection.Clear()
}

// transcriptX converts a panel-local column to a viewport column, stepping
// over the left border.
func (p *AssistantPanel) transcriptX(x int) int {
	return x - 1
}

// transcriptY converts a panel-local row to a viewport row, stepping over
// the top border, title, and separator.
func (p *AssistantPanel) transcriptY(y int) int {
	return y - 1 - TitleHeight - SeparatorHeight
}

// View renders the panel, quick-action bar, and input stacked vertically.
// Returns the empty string while closed.
func (p *AssistantPanel) View() string {
	if !p.open {
		return ""
	}

	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(p.width)

	transcriptView := p.viewport.View()
	if p.selection.HasSelection() {
		transcriptView = p.selection.Highlight(transcriptView, p.viewport.Width(), p.viewport.Height())
	}

	separator := lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("─", max(innerWidth, 1)))
	content := p.renderHeader(innerWidth) + "\n" + separator + "\n" + transcriptView

	panelStyle := PanelStyle
	if p.focused {
		panelStyle = PanelFocusedStyle
	}
	panelHeight := p.height - InputTotalHeight - QuickBarHeight
	panel := panelStyle.Width(p.width).Height(panelHeight).Render(content)

	quickBar := p.renderQuickBar(p.width)

	inputStyle := ChatInputStyle
	if p.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(p.width).Render(p.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, panel, quickBar, inputArea)
}
