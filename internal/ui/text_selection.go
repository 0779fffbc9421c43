// Package ui provides terminal user interface components for Pastel.
//
// # Text Selection Coordinate System
//
// Text selection uses a coordinate system relative to the hosting pane:
//
//	┌─────────────────────────────────────────────┐
//	│ ← 1px border                                │
//	│  ┌─────────────────────────────────────────┐│
//	│  │ (0,0)   Pane content area               ││
//	│  │                                         ││
//	│  │    Selection coordinates are            ││
//	│  │    relative to this inner area          ││
//	│  │                                         ││
//	│  │                             (width, height)
//	│  └─────────────────────────────────────────┘│
//	│                                 1px border → │
//	└─────────────────────────────────────────────┘
//
// Mouse events from Bubble Tea arrive in terminal coordinates (0,0 = top-left
// of terminal). Each pane that hosts a selection (the story view's comment
// area, the assistant panel transcript) adjusts incoming events to its own
// content origin before forwarding them here, subtracting its border and any
// chrome rows above the scrolling content.
//
// Selection coordinates are stored in pane-relative coordinates. When
// rendering the highlight, they index directly into the ultraviolet screen
// buffer, which operates in the same space. When extracting selected text,
// ANSI escape codes are stripped first so coordinates align with visible
// character positions.
package ui

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/pastelhq/pastel/internal/clipboard"
	"github.com/pastelhq/pastel/internal/logger"
	"github.com/rivo/uniseg"
)

// SelectionFlashTickMsg is sent to animate the copy confirmation flash
type SelectionFlashTickMsg time.Time

// ClipboardErrorMsg is sent when clipboard operations fail
type ClipboardErrorMsg struct {
	Error error
}

const (
	doubleClickThreshold = 500 * time.Millisecond
	clickTolerance       = 2 // cells
)

// SelectionFlashTick returns a command that sends a selection flash tick
func SelectionFlashTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return SelectionFlashTickMsg(t)
	})
}

// Selection tracks a mouse-driven text selection over a rendered pane.
//
// The zero value is not ready to use; call NewSelection. Hosts own the
// rendered view string and pass it in wherever extraction or word/paragraph
// expansion needs to read the visible text.
type Selection struct {
	startCol, startLine int
	endCol, endLine     int
	active              bool

	lastClickTime time.Time
	lastClickX    int
	lastClickY    int
	clickCount    int

	flashFrame int
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{
		startCol:   -1,
		startLine:  -1,
		endCol:     -1,
		endLine:    -1,
		flashFrame: -1,
	}
}

// Start begins a selection at the given coordinates
func (s *Selection) Start(col, line int) {
	s.startCol = col
	s.startLine = line
	s.endCol = col
	s.endLine = line
	s.active = true
}

// Extend updates the end position of the selection during drag
func (s *Selection) Extend(col, line int) {
	if !s.active {
		return
	}
	s.endCol = col
	s.endLine = line
}

// Stop ends the drag but keeps the selection visible
func (s *Selection) Stop() {
	s.active = false
}

// Clear clears the selection entirely
func (s *Selection) Clear() {
	s.startCol = -1
	s.startLine = -1
	s.endCol = -1
	s.endLine = -1
	s.active = false
}

// Active reports whether a drag is in progress
func (s *Selection) Active() bool {
	return s.active
}

// HasSelection returns true if there is an active or completed selection
func (s *Selection) HasSelection() bool {
	return s.startCol >= 0 && s.startLine >= 0 &&
		(s.endCol != s.startCol || s.endLine != s.startLine)
}

// HandleClick handles a press and detects double/triple clicks. Double click
// selects the word under the cursor, triple click the paragraph; both copy
// immediately. The view is the host's current rendered content.
func (s *Selection) HandleClick(x, y int, view string) tea.Cmd {
	now := time.Now()

	if now.Sub(s.lastClickTime) <= doubleClickThreshold &&
		abs(x-s.lastClickX) <= clickTolerance &&
		abs(y-s.lastClickY) <= clickTolerance {
		s.clickCount++
	} else {
		s.clickCount = 1
	}

	s.lastClickTime = now
	s.lastClickX = x
	s.lastClickY = y

	switch s.clickCount {
	case 1:
		s.Start(x, y)
	case 2:
		s.SelectWord(view, x, y)
		return s.Copy(view)
	case 3:
		s.SelectParagraph(view, x, y)
		s.clickCount = 0
		return s.Copy(view)
	}

	return nil
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SelectWord selects the word at the given position
func (s *Selection) SelectWord(view string, col, line int) {
	lines := strings.Split(view, "\n")
	if line < 0 || line >= len(lines) {
		return
	}

	currentLine := ansi.Strip(lines[line])
	if col < 0 || col >= len(currentLine) {
		return
	}

	// Walk the line once tracking the word containing col. uniseg reports a
	// boundary after each cluster that ends a word, so the word runs from
	// the last boundary at or before col to the first boundary past it.
	startCol := 0
	endCol := len(currentLine)
	pos := 0
	gr := uniseg.NewGraphemes(currentLine)
	for gr.Next() {
		next := pos + len(gr.Str())
		if gr.IsWordBoundary() {
			if next > col {
				endCol = next
				break
			}
			startCol = next
		}
		pos = next
	}

	s.startCol = startCol
	s.startLine = line
	s.endCol = endCol
	s.endLine = line
	s.active = false
}

// SelectParagraph selects the paragraph at the given position, bounded by
// blank lines in the rendered view.
func (s *Selection) SelectParagraph(view string, col, line int) {
	lines := strings.Split(view, "\n")
	if line < 0 || line >= len(lines) {
		return
	}

	startLine := line
	endLine := line

	for startLine > 0 {
		prevLine := ansi.Strip(lines[startLine-1])
		if strings.TrimSpace(prevLine) == "" {
			break
		}
		startLine--
	}

	for endLine < len(lines)-1 {
		nextLine := ansi.Strip(lines[endLine+1])
		if strings.TrimSpace(nextLine) == "" {
			break
		}
		endLine++
	}

	lastLineWidth := len(ansi.Strip(lines[endLine]))

	s.startCol = 0
	s.startLine = startLine
	s.endCol = lastLineWidth
	s.endLine = endLine
	s.active = false
}

// Area returns the normalized selection area (start before end).
//
// Selection can happen in any direction: the user might drag from
// bottom-right to top-left. The coordinates are normalized so that
// (startCol, startLine) always precedes (endCol, endLine) in reading order.
func (s *Selection) Area() (startCol, startLine, endCol, endLine int) {
	startCol = s.startCol
	startLine = s.startLine
	endCol = s.endCol
	endLine = s.endLine

	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}

	return
}

// Text returns the currently selected text extracted from the view.
//
// ANSI codes are stripped before slicing because selection coordinates
// correspond to visible character positions, not raw string positions. A
// bold "Hello" might be stored as "\x1b[1mHello\x1b[0m" (15 bytes) but
// displays as 5 characters; selecting characters 0-5 should yield "Hello",
// not a partial escape sequence.
func (s *Selection) Text(view string) string {
	if !s.HasSelection() {
		return ""
	}

	lines := strings.Split(view, "\n")
	startCol, startLine, endCol, endLine := s.Area()

	var result strings.Builder

	for y := startLine; y <= endLine && y < len(lines); y++ {
		if y < 0 {
			continue
		}
		line := ansi.Strip(lines[y])

		var lineStart, lineEnd int
		if y == startLine {
			lineStart = startCol
		} else {
			lineStart = 0
		}
		if y == endLine {
			lineEnd = endCol
		} else {
			lineEnd = len(line)
		}

		if lineStart < 0 {
			lineStart = 0
		}
		if lineEnd > len(line) {
			lineEnd = len(line)
		}
		if lineStart > lineEnd {
			lineStart = lineEnd
		}

		if lineStart < len(line) {
			result.WriteString(line[lineStart:lineEnd])
		}
		if y < endLine {
			result.WriteString("\n")
		}
	}

	return strings.TrimSpace(result.String())
}

// Copy copies the selected text to the clipboard and starts the confirmation
// flash. It emits both the OSC 52 sequence and a native clipboard write so
// at least one lands regardless of terminal support.
func (s *Selection) Copy(view string) tea.Cmd {
	if !s.HasSelection() {
		return nil
	}

	selectedText := s.Text(view)
	if selectedText == "" {
		return nil
	}

	s.flashFrame = 0

	return tea.Batch(
		tea.SetClipboard(selectedText),
		func() tea.Msg {
			if err := clipboard.WriteText(selectedText); err != nil {
				logger.Error("Failed to write to clipboard: %v", err)
				return ClipboardErrorMsg{Error: err}
			}
			return nil
		},
		SelectionFlashTick(),
	)
}

// IsFlashing returns whether the copy confirmation flash is active
func (s *Selection) IsFlashing() bool {
	return s.flashFrame >= 0
}

// AdvanceFlash advances the copy flash animation and schedules the next tick
// until the animation completes.
func (s *Selection) AdvanceFlash() tea.Cmd {
	if s.flashFrame < 0 {
		return nil
	}

	s.flashFrame++
	if s.flashFrame >= 3 {
		s.flashFrame = -1
		return nil
	}
	return SelectionFlashTick()
}

// Highlight applies selection highlighting to the rendered view using an
// ultraviolet screen buffer sized to the pane.
func (s *Selection) Highlight(view string, width, height int) string {
	if !s.HasSelection() {
		return view
	}
	if width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	startCol, startLine, endCol, endLine := s.Area()

	// The first flash frame swaps in the confirmation colors.
	var selBg, selFg color.Color
	if s.flashFrame == 0 {
		selBg = SelectionFlashStyle.GetBackground()
		selFg = SelectionFlashStyle.GetForeground()
	} else {
		selBg = TextSelectionStyle.GetBackground()
		selFg = TextSelectionStyle.GetForeground()
	}

	for y := startLine; y <= endLine && y < height; y++ {
		if y < 0 {
			continue
		}
		var xStart, xEnd int
		if y == startLine && y == endLine {
			xStart = startCol
			xEnd = endCol
		} else if y == startLine {
			xStart = startCol
			xEnd = width
		} else if y == endLine {
			xStart = 0
			xEnd = endCol
		} else {
			xStart = 0
			xEnd = width
		}

		for x := xStart; x < xEnd && x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell != nil {
				cell = cell.Clone()
				cell.Style.Bg = selBg
				cell.Style.Fg = selFg
				scr.SetCell(x, y, cell)
			}
		}
	}

	return scr.Render()
}
