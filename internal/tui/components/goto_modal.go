package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avigneron/dexterm/internal/tui/styles"
)

// GotoModal is the jump-to-page input. Invalid input shows an inline
// error and keeps the modal open; navigation state is never touched
// until the value validates.
type GotoModal struct {
	visible    bool
	input      textinput.Model
	totalPages int
	errText    string
}

// NewGotoModal creates the goto-page modal.
func NewGotoModal() GotoModal {
	ti := textinput.New()
	ti.Placeholder = "Page number"
	ti.CharLimit = 4
	ti.Width = 12
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return GotoModal{input: ti}
}

// Show opens the modal for a page range of [1, totalPages].
func (m *GotoModal) Show(totalPages int) {
	m.visible = true
	m.totalPages = totalPages
	m.errText = ""
	m.input.SetValue("")
	m.input.Focus()
}

// Hide dismisses the modal.
func (m *GotoModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown.
func (m GotoModal) IsVisible() bool {
	return m.visible
}

// Update handles input events. On enter with a valid page it returns
// (page, true); anything invalid sets the inline error and keeps the
// modal open.
func (m GotoModal) Update(msg tea.Msg) (GotoModal, tea.Cmd, int, bool) {
	if !m.visible {
		return m, nil, 0, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			page, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
			if err != nil {
				m.errText = "Enter a number"
				return m, nil, 0, false
			}
			if page < 1 || page > m.totalPages {
				m.errText = fmt.Sprintf("Valid range: 1-%d", m.totalPages)
				return m, nil, 0, false
			}
			m.Hide()
			return m, nil, page, true
		case "esc":
			m.Hide()
			return m, nil, 0, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.errText = ""
	return m, cmd, 0, false
}

// View renders the goto modal.
func (m GotoModal) View() string {
	if !m.visible {
		return ""
	}

	title := styles.TitleStyle.Render(fmt.Sprintf("Go to page (1-%d)", m.totalPages))
	lines := []string{title, m.input.View()}
	if m.errText != "" {
		lines = append(lines, styles.ErrorStyle.Render(m.errText))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return styles.ActiveBorder.Padding(1, 2).Render(content)
}
