package modals

import (
	"strings"
	"testing"
)

func newTestSettings() *SettingsState {
	return NewSettingsState(
		[]string{"pastel", "mono"}, []string{"Pastel", "Mono"}, "pastel",
		[]string{"top", "ask"}, []string{"Top Stories", "Ask HN"}, "top",
		30, true, false,
		CacheStats{Items: 12, Feeds: 3, Users: 2},
	)
}

// =============================================================================
// SettingsState Tests
// =============================================================================

func TestNewSettingsState_Defaults(t *testing.T) {
	s := newTestSettings()

	if s.GetSelectedTheme() != "pastel" {
		t.Errorf("expected theme 'pastel', got %q", s.GetSelectedTheme())
	}
	if s.ThemeChanged() {
		t.Error("theme should not be changed initially")
	}
	if s.GetDefaultFeed() != "top" {
		t.Errorf("expected feed 'top', got %q", s.GetDefaultFeed())
	}
	if s.GetPageSize() != 30 {
		t.Errorf("expected page size 30, got %d", s.GetPageSize())
	}
	if !s.GetNotificationsEnabled() {
		t.Error("expected notifications enabled")
	}
	if s.GetZenDefault() {
		t.Error("expected zen default off")
	}
}

func TestSettingsState_PageSizeFallback(t *testing.T) {
	s := newTestSettings()
	s.pageSize = "garbage"

	if s.GetPageSize() != 30 {
		t.Errorf("expected fallback page size 30, got %d", s.GetPageSize())
	}
}

func TestSettingsState_ThemeChanged(t *testing.T) {
	s := newTestSettings()
	s.selectedTheme = "mono"

	if !s.ThemeChanged() {
		t.Error("expected theme change to be detected")
	}
}

func TestSettingsState_RenderShowsCacheStats(t *testing.T) {
	s := newTestSettings()

	out := s.Render()

	if !strings.Contains(out, "12 items") {
		t.Error("expected cache item count in render")
	}
	if !strings.Contains(out, "Settings") {
		t.Error("expected title in render")
	}
}

func TestSettingsState_PreferredWidth(t *testing.T) {
	s := newTestSettings()
	if s.PreferredWidth() != ModalWidthWide {
		t.Errorf("expected wide modal, got %d", s.PreferredWidth())
	}
}
