package modals

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pastelhq/pastel/internal/keys"
)

// =============================================================================
// UserState - State for the user profile modal
// =============================================================================

type UserState struct {
	Username string
	Karma    int
	Created  string // e.g. "March 2007"
	About    string // plaintext, may be empty

	Loading   bool
	LoadError string

	scrollOffset int
}

func (*UserState) modalState() {}

func (s *UserState) Title() string { return "Profile: " + s.Username }

func (s *UserState) Help() string {
	if s.aboutLines() != nil {
		return "up/down: scroll  Esc: close"
	}
	return "Esc: close"
}

// SetProfile installs a loaded profile.
func (s *UserState) SetProfile(karma int, created, about string) {
	s.Loading = false
	s.LoadError = ""
	s.Karma = karma
	s.Created = created
	s.About = about
}

// SetLoadError records a failed profile fetch.
func (s *UserState) SetLoadError(err string) {
	s.Loading = false
	s.LoadError = err
}

func (s *UserState) aboutLines() []string {
	if s.About == "" {
		return nil
	}
	wrapped := lipgloss.NewStyle().Width(ModalWidth - 6).Render(s.About)
	return strings.Split(wrapped, "\n")
}

const userAboutMaxVisible = 10

func (s *UserState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	lines := s.aboutLines()
	maxScroll := len(lines) - userAboutMaxVisible
	if maxScroll < 0 {
		maxScroll = 0
	}

	switch keyMsg.String() {
	case keys.Up:
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case keys.Down:
		if s.scrollOffset < maxScroll {
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *UserState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var body string
	switch {
	case s.Loading:
		body = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Loading profile...")
	case s.LoadError != "":
		body = StatusErrorStyle.Render(s.LoadError)
	default:
		meta := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Render(fmt.Sprintf("%d karma, joined %s", s.Karma, s.Created))

		body = meta
		if lines := s.aboutLines(); lines != nil {
			end := s.scrollOffset + userAboutMaxVisible
			if end > len(lines) {
				end = len(lines)
			}
			about := lipgloss.NewStyle().
				Foreground(ColorText).
				MarginTop(1).
				Render(strings.Join(lines[s.scrollOffset:end], "\n"))
			body = lipgloss.JoinVertical(lipgloss.Left, meta, about)
		}
	}

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

// NewUserState creates the profile modal in its loading state.
func NewUserState(username string) *UserState {
	return &UserState{
		Username: username,
		Loading:  true,
	}
}
