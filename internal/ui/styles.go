package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/pastelhq/pastel/internal/ui/modals"
)

// Color palette - Purple + Cyan/Teal theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorUser        = lipgloss.Color("#A78BFA") // Light purple for user messages
	ColorAssistant   = lipgloss.Color("#22D3EE") // Bright cyan for assistant messages
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for degraded status
	ColorInfo        = lipgloss.Color("#06B6D4") // Cyan for info/hints
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for ready status
	ColorScore       = lipgloss.Color("#F59E0B") // Amber for story points
	ColorDomain      = lipgloss.Color("#2DD4BF") // Teal for link domains
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	HeaderFeedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HeaderFeedActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText).
				Underline(true)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// List styles shared by the feed sidebar, story list, and selection menus
var (
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	// SidebarSelectedStyle uses theme's BgSelected color - initialized properly in regenerateStyles()
	SidebarSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].Text)).
				Bold(true).
				Padding(0, 1)
)

// Story list styles
var (
	StoryRankStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StoryTitleStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	StoryMetaStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StoryScoreStyle = lipgloss.NewStyle().
			Foreground(ColorScore)

	StoryDomainStyle = lipgloss.NewStyle().
				Foreground(ColorDomain)
)

// Comment thread styles
var (
	CommentAuthorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorUser)

	CommentMetaStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	CommentMoreStyle = lipgloss.NewStyle().
				Foreground(ColorInfo).
				Italic(true)
)

// Assistant panel styles
var (
	ChatUserStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
				Foreground(ColorAssistant).
				Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)

	QuickActionStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	QuickActionKeyStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)
)

// Selection menu styles
var (
	MenuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderFocus).
			Padding(0, 1)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MenuSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].Text)).
				Bold(true)
)

// Markdown styles
var (
	MarkdownH1Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A78BFA")).
			MarginTop(1)

	MarkdownH2Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C4B5FD")).
			MarginTop(1)

	MarkdownH3Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#22D3EE"))

	MarkdownH4Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTextMuted)

	MarkdownBoldStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	MarkdownItalicStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(ColorText)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#67E8F9")).
				Background(lipgloss.Color("#1E1E2E"))

	MarkdownCodeBlockStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#1E1E2E"))

	MarkdownListBulletStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#06B6D4"))

	MarkdownBlockquoteStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true).
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(ColorMuted).
				PaddingLeft(1)

	MarkdownHRStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	MarkdownLinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#67E8F9")).
			Underline(true)
)

// Text selection styles
var (
	TextSelectionStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].TextSelectionBg)).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].TextSelectionFg))

	SelectionFlashStyle = lipgloss.NewStyle().
				Background(ColorSuccess).
				Foreground(ColorTextInverse)
)

// RefreshModalStyles pushes the current palette into the modals package.
// Called from SetTheme so modal dialogs track theme changes.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, SidebarItemStyle, SidebarSelectedStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorUser, ColorWarning, ColorSuccess,
		ModalInputWidth, ModalInputCharLimit, ModalWidth, ModalWidthWide, HelpModalMaxVisible, SearchModalMaxVisible,
	)
}
