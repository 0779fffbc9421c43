package ui

import (
	"sync"

	"github.com/pastelhq/pastel/internal/logger"
)

// ViewContext holds centralized layout calculations and provides debug logging.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight   int
	FooterHeight   int
	ContentHeight  int
	SidebarWidth   int // feed sidebar on the stories view
	ListWidth      int // story list next to the sidebar
	AssistantWidth int // assistant panel on the story view when open

	// ZenMode removes the header and footer from the layout
	ZenMode bool

	mu sync.Mutex
}

// Global view context instance
var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
		logger.ComponentLogger("UI").Debug("ViewContext initialized")
	})
	return ctx
}

// Log writes a debug message to the log file using slog structured logging.
func (v *ViewContext) Log(msg string, args ...interface{}) {
	logger.ComponentLogger("UI").Debug(msg, args...)
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
// This method is thread-safe and should be called from the main event loop
// when the terminal is resized.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Validate dimensions to prevent negative layout values
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height

	v.recalculate()

	logger.ComponentLogger("UI").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"sidebarWidth", v.SidebarWidth,
		"listWidth", v.ListWidth,
		"assistantWidth", v.AssistantWidth,
		"zenMode", v.ZenMode,
	)
}

// SetZenMode toggles chrome on or off and recomputes the content height.
func (v *ViewContext) SetZenMode(zen bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ZenMode = zen
	v.recalculate()
}

// recalculate derives all panel dimensions. Callers hold v.mu.
func (v *ViewContext) recalculate() {
	if v.ZenMode {
		v.HeaderHeight = 0
		v.FooterHeight = 0
	} else {
		v.HeaderHeight = HeaderHeight
		v.FooterHeight = FooterHeight
	}

	// Content area is everything between header and footer
	v.ContentHeight = v.TerminalHeight - v.HeaderHeight - v.FooterHeight

	// Stories view: feed sidebar takes 1/4, the story list gets the rest
	v.SidebarWidth = v.TerminalWidth / SidebarWidthRatio
	v.ListWidth = v.TerminalWidth - v.SidebarWidth

	// Story view: assistant panel takes 2/5 of the width when open
	v.AssistantWidth = v.TerminalWidth * 2 / AssistantWidthRatio
}

// StoryWidth returns the story pane width given whether the assistant panel is open.
func (v *ViewContext) StoryWidth(assistantOpen bool) int {
	if assistantOpen {
		return v.TerminalWidth - v.AssistantWidth
	}
	return v.TerminalWidth
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
