package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pastelhq/pastel/internal/ui/modals"
)

// Modal is the popup dialog container. The state types live in the
// modals package; the container owns visibility, the error row, and
// centered placement over the screen.
// The State field is nil when no modal is visible.
type Modal struct {
	State modals.ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state modals.ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// width returns the modal width, honoring states with a preference.
func (m *Modal) width() int {
	if pw, ok := m.State.(modals.ModalWithPreferredWidth); ok {
		return pw.PreferredWidth()
	}
	return ModalWidth
}

// View renders the modal centered over the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	width := m.width()
	if width > screenWidth-4 {
		width = screenWidth - 4
	}

	if sizable, ok := m.State.(modals.ModalWithSize); ok {
		sizable.SetSize(width, screenHeight-6)
	}

	content := m.State.Render()

	// Add error if present
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Width(width).Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}
