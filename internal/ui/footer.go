package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width            int
	view             View // Current view (stories or story detail)
	sidebarFocused   bool // Whether the feed sidebar has focus
	assistantOpen    bool // Whether the assistant panel is open
	assistantFocused bool // Whether the assistant panel has focus
	zenMode          bool // Whether zen mode is active
	hasSelection     bool // Whether a text selection exists
	menuVisible      bool // Whether the selection action menu is open
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(view View, sidebarFocused, assistantOpen, assistantFocused, zenMode, hasSelection, menuVisible bool) {
	f.view = view
	f.sidebarFocused = sidebarFocused
	f.assistantOpen = assistantOpen
	f.assistantFocused = assistantFocused
	f.zenMode = zenMode
	f.hasSelection = hasSelection
	f.menuVisible = menuVisible
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// bindings returns the shortcuts for the current context
func (f *Footer) bindings() []KeyBinding {
	// Selection menu open: it captures navigation keys
	if f.menuVisible {
		return []KeyBinding{
			{Key: "↑/↓", Desc: "choose"},
			{Key: "enter", Desc: "run"},
			{Key: "esc", Desc: "dismiss"},
		}
	}

	// Assistant panel focused: typing goes to the prompt
	if f.assistantFocused {
		bindings := []KeyBinding{
			{Key: "enter", Desc: "ask"},
			{Key: "alt+1-3", Desc: "quick action"},
		}
		if f.hasSelection {
			bindings = append(bindings, KeyBinding{Key: "ctrl+y", Desc: "copy selection"})
		}
		return append(bindings,
			KeyBinding{Key: "tab", Desc: "switch pane"},
			KeyBinding{Key: "esc", Desc: "close assistant"},
		)
	}

	if f.view == ViewStory {
		bindings := []KeyBinding{
			{Key: "↑/↓/j/k", Desc: "scroll"},
		}
		if f.zenMode {
			if f.assistantOpen {
				bindings = append(bindings, KeyBinding{Key: "tab", Desc: "assistant"})
			} else {
				bindings = append(bindings, KeyBinding{Key: "a", Desc: "assistant"})
			}
		}
		if f.hasSelection {
			bindings = append(bindings, KeyBinding{Key: "y", Desc: "copy"})
		}
		return append(bindings,
			KeyBinding{Key: "r", Desc: "read article"},
			KeyBinding{Key: "o", Desc: "open link"},
			KeyBinding{Key: "z", Desc: "zen"},
			KeyBinding{Key: "esc", Desc: "back"},
		)
	}

	// Stories view
	bindings := []KeyBinding{
		{Key: "↑/↓/j/k", Desc: "navigate"},
		{Key: "enter", Desc: "read"},
	}
	if f.sidebarFocused {
		bindings = append(bindings, KeyBinding{Key: "tab", Desc: "stories"})
	} else {
		bindings = append(bindings, KeyBinding{Key: "tab", Desc: "feeds"})
	}
	return append(bindings,
		KeyBinding{Key: "/", Desc: "search"},
		KeyBinding{Key: "s", Desc: "settings"},
		KeyBinding{Key: "?", Desc: "help"},
		KeyBinding{Key: "q", Desc: "quit"},
	)
}

// View renders the footer
func (f *Footer) View() string {
	var parts []string
	for _, b := range f.bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
