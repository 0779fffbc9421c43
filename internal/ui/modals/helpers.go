package modals

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderSelectableList renders a simple list with selection highlighting.
// Returns the rendered list string. selectedIndex indicates which item is selected.
func RenderSelectableList(items []string, selectedIndex int) string {
	var result strings.Builder
	for i, item := range items {
		style := SidebarItemStyle
		prefix := "  "
		if i == selectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		}
		result.WriteString(style.Render(prefix+item) + "\n")
	}
	return result.String()
}

// RenderSelectableListWithFocus renders a list where selection is only shown when focused.
// When focus is true, the selected item is highlighted; otherwise all items use the normal style.
// marker is shown next to the selected item when not focused (e.g., "* ")
func RenderSelectableListWithFocus(items []string, selectedIndex int, focused bool, marker string) string {
	var result strings.Builder
	for i, item := range items {
		style := SidebarItemStyle
		prefix := "  "
		if focused && i == selectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		} else if i == selectedIndex {
			prefix = marker
		}
		result.WriteString(style.Render(prefix+item) + "\n")
	}
	return result.String()
}

// TruncateString truncates a string to maxLen display cells, appending
// an ellipsis when anything was cut.
func TruncateString(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	return runewidth.Truncate(s, maxLen, "...")
}
