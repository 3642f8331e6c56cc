package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avigneron/dexterm/internal/tui/styles"
)

// ConfirmModal asks a yes/no question before a destructive action.
// Additions never prompt; removals and resets do.
type ConfirmModal struct {
	visible bool
	title   string
	body    string
}

// NewConfirmModal creates a hidden confirmation modal.
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// Show displays the modal with a question.
func (m *ConfirmModal) Show(title, body string) {
	m.visible = true
	m.title = title
	m.body = body
}

// Hide dismisses the modal.
func (m *ConfirmModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown.
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// Update handles input. confirmed is true on y/enter; decided is true
// once the user answered either way.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, bool, bool) {
	if !m.visible {
		return m, false, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false, false
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.Hide()
		return m, true, true
	case "n", "N", "esc":
		m.Hide()
		return m, false, true
	}
	return m, false, false
}

// View renders the confirmation modal.
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(m.title),
		styles.SubtitleStyle.Render(m.body),
		"",
		styles.DimStyle.Render("y: confirm   n/esc: cancel"),
	)
	return styles.ActiveBorder.Padding(1, 2).Render(content)
}
