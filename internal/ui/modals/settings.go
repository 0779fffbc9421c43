package modals

import (
	"fmt"
	"slices"
	"strconv"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

type SettingsState struct {
	// Bound form values
	selectedTheme string
	OriginalTheme string // To detect if theme changed
	selectedFeed  string
	pageSize      string

	// MultiSelect bindings
	generalOptions []string

	cacheStats CacheStats

	form *huh.Form

	// Size tracking
	availableWidth int
}

const (
	optionNotifications = "notifications"
	optionZenDefault    = "zen-default"
)

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 10
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	cacheLine := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render(fmt.Sprintf("Cache: %d items, %d feeds, %d users",
			s.cacheStats.Items, s.cacheStats.Feeds, s.cacheStats.Users))

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), cacheLine, help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetSelectedTheme returns the selected theme key.
func (s *SettingsState) GetSelectedTheme() string {
	return s.selectedTheme
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.OriginalTheme
}

// GetDefaultFeed returns the selected startup feed.
func (s *SettingsState) GetDefaultFeed() string {
	return s.selectedFeed
}

// GetPageSize returns the selected page size.
func (s *SettingsState) GetPageSize() int {
	n, err := strconv.Atoi(s.pageSize)
	if err != nil || n <= 0 {
		return 30
	}
	return n
}

// GetNotificationsEnabled returns whether desktop notifications are enabled.
func (s *SettingsState) GetNotificationsEnabled() bool {
	return slices.Contains(s.generalOptions, optionNotifications)
}

// GetZenDefault returns whether stories should open in zen mode.
func (s *SettingsState) GetZenDefault() bool {
	return slices.Contains(s.generalOptions, optionZenDefault)
}

// NewSettingsState creates the settings modal bound to the current
// configuration values.
func NewSettingsState(themes []string, themeDisplayNames []string, currentTheme string,
	feeds []string, feedDisplayNames []string, currentFeed string,
	pageSize int, notificationsEnabled, zenDefault bool,
	cacheStats CacheStats) *SettingsState {

	s := &SettingsState{
		selectedTheme:  currentTheme,
		OriginalTheme:  currentTheme,
		selectedFeed:   currentFeed,
		pageSize:       strconv.Itoa(pageSize),
		cacheStats:     cacheStats,
		availableWidth: ModalWidthWide,
	}

	// Build theme options
	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeDisplayNames[i], themes[i])
	}

	// Build feed options
	feedOptions := make([]huh.Option[string], len(feeds))
	for i := range feeds {
		feedOptions[i] = huh.NewOption(feedDisplayNames[i], feeds[i])
	}

	pageSizeOptions := []huh.Option[string]{
		huh.NewOption("15", "15"),
		huh.NewOption("30", "30"),
		huh.NewOption("50", "50"),
	}

	// Build general options MultiSelect
	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(notificationsEnabled),
		huh.NewOption("Open stories in zen mode", optionZenDefault).
			Selected(zenDefault),
	}
	if notificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}
	if zenDefault {
		s.generalOptions = append(s.generalOptions, optionZenDefault)
	}

	group := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewSelect[string]().
			Title("Startup feed").
			Options(feedOptions...).
			Value(&s.selectedFeed),
		huh.NewSelect[string]().
			Title("Stories per page").
			Options(pageSizeOptions...).
			Value(&s.pageSize),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.generalOptions),
	)

	s.form = huh.NewForm(group).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
