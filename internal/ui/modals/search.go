package modals

import (
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pastelhq/pastel/internal/keys"
)

// Search sort orders, matching the Algolia endpoints.
const (
	SearchSortRelevance = "relevance"
	SearchSortDate      = "date"
)

// =============================================================================
// SearchState - State for the story search modal (Algolia full-text search)
// =============================================================================

type SearchState struct {
	Input textinput.Model
	Sort  string // SearchSortRelevance or SearchSortDate

	// LastQuery is the query the current results belong to. Enter
	// re-runs the search when the input has diverged from it.
	LastQuery string

	Results       []StoryMatch
	TotalHits     int
	Searching     bool
	SearchError   string
	SelectedIndex int
	ScrollOffset  int
}

func (*SearchState) modalState() {}

func (s *SearchState) PreferredWidth() int { return ModalWidthWide }

func (s *SearchState) Title() string { return "Search Stories" }

func (s *SearchState) Help() string {
	if len(s.Results) > 0 {
		return "Enter: open story  up/down: navigate  ctrl+s: toggle sort  Esc: close"
	}
	return "Type a query, Enter: search  ctrl+s: toggle sort  Esc: close"
}

// Query returns the trimmed current input text.
func (s *SearchState) Query() string {
	return s.Input.Value()
}

// NeedsSearch reports whether Enter should run a search rather than
// open the selected result.
func (s *SearchState) NeedsSearch() bool {
	return s.Query() != "" && s.Query() != s.LastQuery
}

// ToggleSort flips between relevance and date ordering and invalidates
// the current results so the next Enter re-searches.
func (s *SearchState) ToggleSort() {
	if s.Sort == SearchSortDate {
		s.Sort = SearchSortRelevance
	} else {
		s.Sort = SearchSortDate
	}
	s.LastQuery = ""
}

// BeginSearch marks a search as in flight for the current query.
func (s *SearchState) BeginSearch() {
	s.Searching = true
	s.SearchError = ""
	s.LastQuery = s.Query()
}

// SetResults installs results for the in-flight search.
func (s *SearchState) SetResults(results []StoryMatch, totalHits int) {
	s.Searching = false
	s.SearchError = ""
	s.Results = results
	s.TotalHits = totalHits
	s.SelectedIndex = 0
	s.ScrollOffset = 0
}

// SetSearchError records a failed search.
func (s *SearchState) SetSearchError(err string) {
	s.Searching = false
	s.SearchError = err
	s.Results = nil
	s.TotalHits = 0
}

// Selected returns the highlighted result, or nil when there are none.
func (s *SearchState) Selected() *StoryMatch {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Results) {
		return nil
	}
	return &s.Results[s.SelectedIndex]
}

func (s *SearchState) moveSelection(delta int) {
	if len(s.Results) == 0 {
		return
	}
	s.SelectedIndex += delta
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= len(s.Results) {
		s.SelectedIndex = len(s.Results) - 1
	}

	// Keep the selection visible
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ScrollOffset+SearchModalMaxVisible {
		s.ScrollOffset = s.SelectedIndex - SearchModalMaxVisible + 1
	}
}

func (s *SearchState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up:
			s.moveSelection(-1)
			return s, nil
		case keys.Down:
			s.moveSelection(1)
			return s, nil
		case keys.Enter, keys.Escape, keys.CtrlS:
			// Handled by the app-layer modal handlers
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

func (s *SearchState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	sortLabel := "relevance"
	if s.Sort == SearchSortDate {
		sortLabel = "date"
	}
	inputLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Search (" + sortLabel + "):")

	inputStyle := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	inputView := inputStyle.Render(s.Input.View())

	var resultsSection string
	switch {
	case s.Searching:
		resultsSection = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1).
			Render("Searching...")
	case s.SearchError != "":
		resultsSection = StatusErrorStyle.
			MarginTop(1).
			Render(s.SearchError)
	case s.LastQuery == "":
		resultsSection = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1).
			Render("Search titles, URLs, and authors across all of Hacker News.")
	case len(s.Results) == 0:
		resultsSection = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1).
			Render("No matches found")
	default:
		countStyle := lipgloss.NewStyle().
			Foreground(ColorSecondary).
			MarginTop(1).
			MarginBottom(1)
		resultsSection = countStyle.Render(fmt.Sprintf("%d match(es)", s.TotalHits))

		visibleEnd := s.ScrollOffset + SearchModalMaxVisible
		if visibleEnd > len(s.Results) {
			visibleEnd = len(s.Results)
		}

		if s.ScrollOffset > 0 {
			resultsSection += "\n" + lipgloss.NewStyle().Foreground(ColorTextMuted).Render("  up more above")
		}

		for i := s.ScrollOffset; i < visibleEnd; i++ {
			result := s.Results[i]

			prefix := "  "
			style := SidebarItemStyle
			if i == s.SelectedIndex {
				prefix = "> "
				style = SidebarSelectedStyle
			}

			meta := lipgloss.NewStyle().Foreground(ColorTextMuted).Render(
				fmt.Sprintf("%d pts by %s, %s, %d comments",
					result.Points, result.Author, result.Age, result.NumComments))

			titleText := TruncateString(result.Title, ModalWidthWide-10)
			resultsSection += "\n" + style.Render(prefix+titleText) + "\n    " + meta
		}

		if visibleEnd < len(s.Results) {
			resultsSection += "\n" + lipgloss.NewStyle().Foreground(ColorTextMuted).Render("  down more below")
		}
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, inputLabel, inputView, resultsSection, help)
}

// NewSearchState creates the search modal with a focused query input.
func NewSearchState() *SearchState {
	input := textinput.New()
	input.Placeholder = "query"
	input.CharLimit = ModalInputCharLimit
	input.SetWidth(ModalInputWidth)
	input.Focus()

	return &SearchState{
		Input: input,
		Sort:  SearchSortRelevance,
	}
}
