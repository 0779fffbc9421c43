package ui

import (
	"strings"
	"testing"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()

	if footer == nil {
		t.Fatal("NewFooter() returned nil")
	}
}

func TestFooter_StoriesViewBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(120)
	footer.SetContext(ViewStories, false, false, false, false, false, false)

	view := stripANSI(footer.View())

	for _, want := range []string{"read", "search", "settings", "help", "quit", "feeds"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected stories footer to contain %q", want)
		}
	}
}

func TestFooter_SidebarFocusSwapsTabTarget(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(120)
	footer.SetContext(ViewStories, true, false, false, false, false, false)

	view := stripANSI(footer.View())

	if !strings.Contains(view, "stories") {
		t.Error("Expected tab binding to point at the story list")
	}
}

func TestFooter_StoryViewBindings(t *testing.T) {
	tests := []struct {
		name    string
		zen     bool
		open    bool
		want    string
		exclude string
	}{
		{"normal mode hides assistant", false, false, "back", "assistant"},
		{"article fetch offered", false, false, "read article", ""},
		{"zen mode offers assistant", true, false, "assistant", ""},
		{"open assistant offers tab", true, true, "tab", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(160)
			footer.SetContext(ViewStory, false, tt.open, false, tt.zen, false, false)

			view := stripANSI(footer.View())

			if !strings.Contains(view, tt.want) {
				t.Errorf("Expected story footer to contain %q", tt.want)
			}
			if tt.exclude != "" && strings.Contains(view, tt.exclude) {
				t.Errorf("Expected story footer to omit %q", tt.exclude)
			}
		})
	}
}

func TestFooter_SelectionAddsCopyBinding(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(160)
	footer.SetContext(ViewStory, false, false, false, false, true, false)

	view := stripANSI(footer.View())

	if !strings.Contains(view, "copy") {
		t.Error("Expected copy binding while a selection exists")
	}
}

func TestFooter_MenuBindingsTakePriority(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(160)
	footer.SetContext(ViewStory, false, true, true, true, true, true)

	view := stripANSI(footer.View())

	if !strings.Contains(view, "dismiss") {
		t.Error("Expected menu bindings while the selection menu is open")
	}
	if strings.Contains(view, "quick action") {
		t.Error("Menu bindings should replace assistant bindings")
	}
}

func TestFooter_AssistantFocusBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(160)
	footer.SetContext(ViewStory, false, true, true, true, false, false)

	view := stripANSI(footer.View())

	for _, want := range []string{"ask", "quick action", "close assistant"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected assistant footer to contain %q", want)
		}
	}
}
