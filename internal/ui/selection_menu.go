package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// SelectionAction identifies an action offered by the selection menu.
type SelectionAction int

const (
	ActionExplain SelectionAction = iota
	ActionDraftReply
)

// SelectionRegion identifies which part of the story view a selection
// was made in.
type SelectionRegion int

const (
	RegionArticle SelectionRegion = iota
	RegionComment
)

// CommentCapture holds the comment under a selection at capture time, so a
// reply can still be drafted after the list scrolls or refreshes.
type CommentCapture struct {
	ID     int
	Author string
	Body   string // plaintext, truncated to CommentCaptureLimit
}

// SelectionActionMsg is emitted when a selection menu action is chosen.
type SelectionActionMsg struct {
	Action  SelectionAction
	Text    string
	Region  SelectionRegion
	Capture *CommentCapture // nil for article selections
}

type menuItem struct {
	label  string
	action SelectionAction
}

// SelectionMenu is the floating action menu shown over a validated text
// selection. Hiding the menu keeps the captured selection data; only the
// next valid selection replaces it.
type SelectionMenu struct {
	visible  bool
	items    []menuItem
	selected int

	x, y          int
	width, height int

	text    string
	region  SelectionRegion
	capture *CommentCapture
}

// NewSelectionMenu returns a hidden menu with no captured selection.
func NewSelectionMenu() SelectionMenu {
	return SelectionMenu{}
}

// ShowForSelection validates the selection and, if it qualifies, captures it
// and positions the menu over the anchor box. Selections under
// MinSelectionChars after trimming are rejected and leave any previously
// captured data in place. The anchor coordinates are pane-relative cells;
// paneWidth bounds the horizontal clamp.
func (m *SelectionMenu) ShowForSelection(text string, region SelectionRegion, capture *CommentCapture, left, top, right, bottom, paneWidth int) bool {
	if len(strings.TrimSpace(text)) < MinSelectionChars {
		return false
	}

	items := []menuItem{{label: "Explain This", action: ActionExplain}}
	if region == RegionComment {
		items = append(items, menuItem{label: "Draft Reply", action: ActionDraftReply})
	}

	if capture != nil && len([]rune(capture.Body)) > CommentCaptureLimit {
		trimmedBody := *capture
		trimmedBody.Body = string([]rune(capture.Body)[:CommentCaptureLimit])
		capture = &trimmedBody
	}

	m.items = items
	m.selected = 0
	m.text = text
	m.region = region
	m.capture = capture
	m.visible = true

	view := m.View()
	m.width = lipgloss.Width(view)
	m.height = lipgloss.Height(view)
	m.x, m.y = computeMenuPosition(left, top, right, bottom, m.width, m.height, paneWidth)

	return true
}

// computeMenuPosition centers the menu above the anchor box with a
// MenuEdgeMargin gap, clamps it MenuEdgeMargin cells from the pane's left
// and right edges, and flips it below the anchor when it would cross the
// top edge.
func computeMenuPosition(left, top, right, bottom, menuWidth, menuHeight, paneWidth int) (x, y int) {
	x = (left+right)/2 - menuWidth/2
	if x > paneWidth-menuWidth-MenuEdgeMargin {
		x = paneWidth - menuWidth - MenuEdgeMargin
	}
	if x < MenuEdgeMargin {
		x = MenuEdgeMargin
	}

	y = top - menuHeight - MenuEdgeMargin
	if y < 0 {
		y = bottom + MenuEdgeMargin
	}
	return x, y
}

// BoundsOf returns the bounding box of a normalized selection within a pane
// of the given width. Single-line selections span their columns; multi-line
// selections span the full pane width.
func BoundsOf(sel *Selection, paneWidth int) (left, top, right, bottom int) {
	startCol, startLine, endCol, endLine := sel.Area()
	if startLine == endLine {
		return startCol, startLine, endCol, endLine
	}
	return 0, startLine, paneWidth, endLine
}

// Hide hides the menu. Captured selection data is retained until the next
// valid selection replaces it.
func (m *SelectionMenu) Hide() {
	m.visible = false
}

// Visible reports whether the menu is on screen
func (m *SelectionMenu) Visible() bool {
	return m.visible
}

// Text returns the captured selection text
func (m *SelectionMenu) Text() string {
	return m.text
}

// Capture returns the captured comment, nil for article selections
func (m *SelectionMenu) Capture() *CommentCapture {
	return m.capture
}

// Region returns the region of the captured selection
func (m *SelectionMenu) Region() SelectionRegion {
	return m.region
}

// Position returns the menu's top-left corner in pane coordinates
func (m *SelectionMenu) Position() (x, y int) {
	return m.x, m.y
}

// MoveUp moves the highlight up one item
func (m *SelectionMenu) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

// MoveDown moves the highlight down one item
func (m *SelectionMenu) MoveDown() {
	if m.selected < len(m.items)-1 {
		m.selected++
	}
}

// Select hides the menu, then returns the highlighted action with the
// captured selection data.
func (m *SelectionMenu) Select() (SelectionActionMsg, bool) {
	if !m.visible || len(m.items) == 0 {
		return SelectionActionMsg{}, false
	}

	item := m.items[m.selected]
	m.visible = false

	return SelectionActionMsg{
		Action:  item.action,
		Text:    m.text,
		Region:  m.region,
		Capture: m.capture,
	}, true
}

// Contains reports whether the pane-relative point is inside the menu box
func (m *SelectionMenu) Contains(x, y int) bool {
	return m.visible &&
		x >= m.x && x < m.x+m.width &&
		y >= m.y && y < m.y+m.height
}

// ClickItem selects and dispatches the item on the clicked row. Clicks on
// the border are swallowed without dispatching.
func (m *SelectionMenu) ClickItem(x, y int) (SelectionActionMsg, bool) {
	if !m.Contains(x, y) {
		return SelectionActionMsg{}, false
	}
	row := y - m.y - 1
	if row < 0 || row >= len(m.items) {
		return SelectionActionMsg{}, false
	}
	m.selected = row
	return m.Select()
}

// View renders the menu box
func (m *SelectionMenu) View() string {
	if !m.visible {
		return ""
	}

	labelWidth := 0
	for _, item := range m.items {
		if w := lipgloss.Width(item.label); w > labelWidth {
			labelWidth = w
		}
	}

	rows := make([]string, 0, len(m.items))
	for i, item := range m.items {
		label := item.label + strings.Repeat(" ", labelWidth-lipgloss.Width(item.label))
		if i == m.selected {
			rows = append(rows, MenuSelectedStyle.Render(label))
		} else {
			rows = append(rows, MenuItemStyle.Render(label))
		}
	}

	return MenuStyle.Render(strings.Join(rows, "\n"))
}

// Overlay composites the menu onto the rendered pane at its computed
// position using an ultraviolet screen buffer.
func (m *SelectionMenu) Overlay(view string, width, height int) string {
	if !m.visible || width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)
	uv.NewStyledString(m.View()).Draw(scr, uv.Rect(m.x, m.y, m.width, m.height))

	return scr.Render()
}
