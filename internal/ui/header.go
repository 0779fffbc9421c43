package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Header represents the top header bar
type Header struct {
	width      int
	feedName   string
	storyTitle string
	domain     string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetFeed sets the active feed name to display
func (h *Header) SetFeed(name string) {
	h.feedName = name
	h.storyTitle = ""
	h.domain = ""
}

// SetStory sets the open story's title and domain to display
func (h *Header) SetStory(title, domain string) {
	h.storyTitle = title
	h.domain = domain
}

// View renders the header
func (h *Header) View() string {
	// Build the content string (without styling)
	titleText := " pastel"
	var rightText string
	switch {
	case h.storyTitle != "":
		rightText = h.storyTitle
		if h.domain != "" {
			rightText += " (" + h.domain + ")"
		}
		rightText += " "
	case h.feedName != "":
		rightText = h.feedName + " "
	}

	// Truncate the right side before it collides with the title
	maxRight := h.width - len([]rune(titleText)) - 2
	if maxRight < 0 {
		maxRight = 0
	}
	if rightRunes := []rune(rightText); len(rightRunes) > maxRight {
		rightText = string(rightRunes[:maxRight])
	}

	// Calculate padding
	paddingLen := h.width - len([]rune(titleText)) - len([]rune(rightText))
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	// Render with gradient background
	return h.renderGradient(fullContent, h.domain)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// domain identifies the muted domain portion of the right-hand text.
func (h *Header) renderGradient(content string, domain string) string {
	if len(content) == 0 {
		return ""
	}

	// Get colors from current theme
	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	// Text color from theme
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	// Find where the domain portion starts (if present)
	domainStart := -1
	if domain != "" {
		domainMarker := "(" + domain + ")"
		domainStart = strings.Index(content, domainMarker)
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		// Calculate interpolation factor (0.0 to 1.0)
		t := float64(i) / float64(width)

		// Interpolate colors
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		// Create color string
		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		// Determine if this character is in the muted domain portion
		inDomain := domainStart >= 0 && i >= domainStart

		// Style for this character
		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 7) // Bold for the "pastel" title

		if inDomain {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
