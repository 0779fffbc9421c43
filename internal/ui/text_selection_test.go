package ui

import (
	"testing"
)

// =============================================================================
// Start / Extend / Stop / Clear
// =============================================================================

func TestSelection_Start(t *testing.T) {
	s := NewSelection()
	s.Start(5, 10)

	if s.startCol != 5 || s.startLine != 10 {
		t.Errorf("start position wrong: got (%d, %d)", s.startCol, s.startLine)
	}
	if s.endCol != 5 || s.endLine != 10 {
		t.Errorf("end position should match start: got (%d, %d)", s.endCol, s.endLine)
	}
	if !s.Active() {
		t.Error("expected active drag after Start")
	}
}

func TestSelection_Extend(t *testing.T) {
	s := NewSelection()
	s.Start(5, 10)
	s.Extend(20, 12)

	if s.endCol != 20 || s.endLine != 12 {
		t.Errorf("end position wrong: got (%d, %d)", s.endCol, s.endLine)
	}
	if !s.Active() {
		t.Error("expected active drag during Extend")
	}
}

func TestSelection_Extend_InactiveIsNoop(t *testing.T) {
	s := NewSelection()
	// No Start call
	s.Extend(20, 12)

	if s.endCol != -1 || s.endLine != -1 {
		t.Errorf("expected no change when inactive, got (%d, %d)", s.endCol, s.endLine)
	}
}

func TestSelection_Stop(t *testing.T) {
	s := NewSelection()
	s.Start(5, 10)
	s.Extend(20, 12)
	s.Stop()

	if s.Active() {
		t.Error("expected inactive after Stop")
	}
	if s.startCol != 5 || s.endCol != 20 {
		t.Error("positions should be preserved after Stop")
	}
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection()
	s.Start(5, 10)
	s.Extend(20, 12)
	s.Clear()

	if s.Active() {
		t.Error("expected inactive after Clear")
	}
	if s.startCol != -1 || s.startLine != -1 {
		t.Error("start should be (-1, -1) after clear")
	}
	if s.endCol != -1 || s.endLine != -1 {
		t.Error("end should be (-1, -1) after clear")
	}
}

// =============================================================================
// HasSelection
// =============================================================================

func TestSelection_HasSelection(t *testing.T) {
	tests := []struct {
		name                                 string
		startCol, startLine, endCol, endLine int
		want                                 bool
	}{
		{"no selection (default)", -1, -1, -1, -1, false},
		{"same point", 5, 5, 5, 5, false},
		{"different column same line", 5, 5, 10, 5, true},
		{"different line", 5, 5, 5, 6, true},
		{"full range", 0, 0, 20, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection()
			s.startCol = tt.startCol
			s.startLine = tt.startLine
			s.endCol = tt.endCol
			s.endLine = tt.endLine
			if got := s.HasSelection(); got != tt.want {
				t.Errorf("HasSelection() = %v, want %v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// Area (normalization)
// =============================================================================

func TestSelection_Area_ForwardUnchanged(t *testing.T) {
	s := NewSelection()
	s.startCol, s.startLine = 5, 2
	s.endCol, s.endLine = 15, 4

	startCol, startLine, endCol, endLine := s.Area()
	if startCol != 5 || startLine != 2 || endCol != 15 || endLine != 4 {
		t.Errorf("forward selection should be unchanged: got (%d,%d)-(%d,%d)",
			startCol, startLine, endCol, endLine)
	}
}

func TestSelection_Area_NormalizesBackward(t *testing.T) {
	s := NewSelection()
	// Drag from bottom to top
	s.startCol, s.startLine = 15, 4
	s.endCol, s.endLine = 5, 2

	startCol, startLine, endCol, endLine := s.Area()
	if startCol != 5 || startLine != 2 || endCol != 15 || endLine != 4 {
		t.Errorf("backward selection should be normalized: got (%d,%d)-(%d,%d)",
			startCol, startLine, endCol, endLine)
	}
}

func TestSelection_Area_NormalizesSameLineBackward(t *testing.T) {
	s := NewSelection()
	s.startCol, s.startLine = 20, 5
	s.endCol, s.endLine = 3, 5

	startCol, startLine, endCol, endLine := s.Area()
	if startCol != 3 || endCol != 20 || startLine != 5 || endLine != 5 {
		t.Errorf("same-line backward should swap columns: got (%d,%d)-(%d,%d)",
			startCol, startLine, endCol, endLine)
	}
}

// =============================================================================
// Text extraction
// =============================================================================

func TestSelection_Text_NoSelection(t *testing.T) {
	s := NewSelection()
	if text := s.Text("hello world"); text != "" {
		t.Errorf("expected empty string, got %q", text)
	}
}

func TestSelection_Text_SingleLine(t *testing.T) {
	s := NewSelection()
	s.startCol, s.startLine = 0, 0
	s.endCol, s.endLine = 5, 0

	if text := s.Text("hello world"); text != "hello" {
		t.Errorf("Text() = %q, want %q", text, "hello")
	}
}

func TestSelection_Text_MultiLine(t *testing.T) {
	s := NewSelection()
	s.startCol, s.startLine = 6, 0
	s.endCol, s.endLine = 5, 1

	if text := s.Text("alpha beta\ngamma delta"); text != "beta\ngamma" {
		t.Errorf("Text() = %q, want %q", text, "beta\ngamma")
	}
}

func TestSelection_Text_StripsANSI(t *testing.T) {
	s := NewSelection()
	s.startCol, s.startLine = 0, 0
	s.endCol, s.endLine = 5, 0

	if text := s.Text("\x1b[1mhello\x1b[0m world"); text != "hello" {
		t.Errorf("Text() = %q, want %q", text, "hello")
	}
}

// Dragging onto the pane border can yield a negative end line (mouse Y=0
// adjusted by the border offset). Extraction must tolerate it.
func TestSelection_Text_NegativeEndLine_NoPanic(t *testing.T) {
	s := NewSelection()
	s.startCol, s.startLine = 5, 0
	s.endCol, s.endLine = 0, -1

	if !s.HasSelection() {
		t.Fatal("expected HasSelection=true for this edge case")
	}

	_ = s.Text("hello\nworld\n")
}

// =============================================================================
// SelectWord / SelectParagraph
// =============================================================================

func TestSelection_SelectWord(t *testing.T) {
	tests := []struct {
		name string
		col  int
		want string
	}{
		{"word start", 0, "hello"},
		{"word interior", 2, "hello"},
		{"second word start", 6, "world"},
		{"second word end", 10, "world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection()
			s.SelectWord("hello world", tt.col, 0)

			if s.Active() {
				t.Error("expected inactive after SelectWord")
			}
			if got := s.Text("hello world"); got != tt.want {
				t.Errorf("selected %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelection_SelectWord_OutOfBounds(t *testing.T) {
	s := NewSelection()
	s.SelectWord("hello", -1, -1)
	if s.HasSelection() {
		t.Error("expected no selection on out-of-bounds")
	}
}

func TestSelection_SelectParagraph(t *testing.T) {
	view := "first para line one\nfirst para line two\n\nsecond para"

	s := NewSelection()
	s.SelectParagraph(view, 3, 1)

	want := "first para line one\nfirst para line two"
	if got := s.Text(view); got != want {
		t.Errorf("selected %q, want %q", got, want)
	}
	if s.Active() {
		t.Error("expected inactive after SelectParagraph")
	}
}

func TestSelection_SelectParagraph_OutOfBounds(t *testing.T) {
	s := NewSelection()
	s.SelectParagraph("hello", 0, -1)
	if s.HasSelection() {
		t.Error("expected no selection on out-of-bounds")
	}
}

// =============================================================================
// HandleClick (click counting)
// =============================================================================

func TestSelection_HandleClick_Single(t *testing.T) {
	s := NewSelection()
	s.HandleClick(5, 3, "some view content")

	if s.clickCount != 1 {
		t.Errorf("expected clickCount=1, got %d", s.clickCount)
	}
	if !s.Active() {
		t.Error("expected active drag after single click")
	}
}

func TestSelection_HandleClick_ResetOnDistantClick(t *testing.T) {
	s := NewSelection()
	s.HandleClick(5, 3, "some view content")
	s.HandleClick(50, 20, "some view content")

	if s.clickCount != 1 {
		t.Errorf("expected clickCount=1 after distant click, got %d", s.clickCount)
	}
}

func TestSelection_HandleClick_DoubleSelectsWord(t *testing.T) {
	view := "hello world"

	s := NewSelection()
	s.HandleClick(2, 0, view)
	cmd := s.HandleClick(2, 0, view)

	if s.clickCount != 2 {
		t.Errorf("expected clickCount=2, got %d", s.clickCount)
	}
	if got := s.Text(view); got != "hello" {
		t.Errorf("selected %q, want %q", got, "hello")
	}
	if cmd == nil {
		t.Error("expected copy command on double click")
	}
}

// =============================================================================
// abs helper
// =============================================================================

func TestAbsHelper(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{0, 0},
		{5, 5},
		{-5, 5},
		{-1, 1},
		{1, 1},
	}

	for _, tt := range tests {
		got := abs(tt.input)
		if got != tt.want {
			t.Errorf("abs(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// =============================================================================
// Copy / flash lifecycle
// =============================================================================

func TestSelection_Copy_NoSelection(t *testing.T) {
	s := NewSelection()
	if cmd := s.Copy("hello"); cmd != nil {
		t.Error("expected nil cmd when no selection")
	}
}

func TestSelection_Copy_ReturnsCmdAndStartsFlash(t *testing.T) {
	s := NewSelection()
	s.Start(0, 0)
	s.Extend(4, 0)
	s.Stop()

	if cmd := s.Copy("hello world"); cmd == nil {
		t.Fatal("expected clipboard cmd for an active selection")
	}
	if !s.IsFlashing() {
		t.Error("copy should begin the confirmation flash")
	}
}

func TestSelection_FlashLifecycle(t *testing.T) {
	s := NewSelection()
	if s.IsFlashing() {
		t.Fatal("fresh selection should not be flashing")
	}

	s.flashFrame = 0
	if !s.IsFlashing() {
		t.Fatal("expected flashing at frame 0")
	}

	if cmd := s.AdvanceFlash(); cmd == nil {
		t.Error("expected next tick at frame 1")
	}
	if cmd := s.AdvanceFlash(); cmd == nil {
		t.Error("expected next tick at frame 2")
	}
	if cmd := s.AdvanceFlash(); cmd != nil {
		t.Error("expected animation to finish at frame 3")
	}
	if s.IsFlashing() {
		t.Error("expected flash cleared after animation")
	}
}

// =============================================================================
// Highlight
// =============================================================================

func TestSelection_Highlight_NoSelectionReturnsView(t *testing.T) {
	s := NewSelection()
	view := "hello\nworld"
	if got := s.Highlight(view, 10, 2); got != view {
		t.Error("expected view unchanged without selection")
	}
}

func TestSelection_Highlight_NegativeEndLine_NoPanic(t *testing.T) {
	s := NewSelection()
	s.startCol, s.startLine = 5, 0
	s.endCol, s.endLine = 0, -1

	_ = s.Highlight("hello\nworld\n", 10, 3)
}
