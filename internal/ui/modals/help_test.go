package modals

import (
	"strings"
	"testing"
)

func helpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Navigation",
			Shortcuts: []HelpShortcut{
				{Key: "tab", Desc: "switch pane"},
				{Key: "j/k", Desc: "move"},
			},
		},
		{
			Title: "Reading",
			Shortcuts: []HelpShortcut{
				{Key: "z", Desc: "zen mode"},
				{Key: "a", Desc: "assistant"},
			},
		},
	}
}

// =============================================================================
// HelpState Tests
// =============================================================================

func TestNewHelpStateFromSections(t *testing.T) {
	state := NewHelpStateFromSections(helpSections())

	shortcut := state.GetSelectedShortcut()
	if shortcut == nil {
		t.Fatal("expected initial selection on the first shortcut")
	}
	if shortcut.Key != "tab" {
		t.Errorf("expected first shortcut 'tab', got %q", shortcut.Key)
	}
}

func TestHelpState_RenderShowsSectionsAndShortcuts(t *testing.T) {
	state := NewHelpStateFromSections(helpSections())

	out := state.Render()

	for _, want := range []string{"Keyboard Shortcuts", "Navigation", "Reading", "zen mode"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected render to contain %q", want)
		}
	}
}

func TestHelpState_IsFiltering(t *testing.T) {
	state := NewHelpStateFromSections(helpSections())

	if state.IsFiltering() {
		t.Error("should not be filtering initially")
	}
}

func TestHelpState_SetSize(t *testing.T) {
	state := NewHelpStateFromSections(helpSections())

	// Should not panic even at tiny sizes
	state.SetSize(20, 3)
	state.SetSize(80, 30)
}
