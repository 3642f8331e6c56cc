package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avigneron/dexterm/internal/search"
	"github.com/avigneron/dexterm/internal/tui/styles"
)

// SearchBar is the incremental search overlay: a text input over a
// navigable result list. Matching itself happens in the app after the
// debounce fires; the bar only holds input and result state.
type SearchBar struct {
	visible bool
	input   textinput.Model
	state   search.State
}

// NewSearchBar creates the search overlay.
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Name or number..."
	ti.CharLimit = 40
	ti.Width = 32
	ti.Prompt = "/ "
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Show opens the bar with an empty query.
func (s *SearchBar) Show() {
	s.visible = true
	s.input.SetValue("")
	s.input.Focus()
	s.state.Clear()
}

// Hide closes the bar and drops all state.
func (s *SearchBar) Hide() {
	s.visible = false
	s.input.Blur()
	s.state.Clear()
}

// IsVisible returns whether the bar is shown.
func (s SearchBar) IsVisible() bool {
	return s.visible
}

// Value returns the current query text.
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetResults installs a fresh result set (cursor resets).
func (s *SearchBar) SetResults(query string, results []search.Result) {
	s.state.SetResults(query, results)
}

// MoveUp moves the result cursor up, wrapping.
func (s *SearchBar) MoveUp() {
	s.state.MoveUp()
}

// MoveDown moves the result cursor down, wrapping.
func (s *SearchBar) MoveDown() {
	s.state.MoveDown()
}

// Selected returns the result under the cursor, if any.
func (s SearchBar) Selected() *search.Result {
	return s.state.Selected()
}

// Results returns the current result set.
func (s SearchBar) Results() []search.Result {
	return s.state.Results
}

// Update feeds a message to the text input. changed reports whether
// the query text changed, which is what arms the debounce timer.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.visible {
		return s, nil, false
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the input box and the result list beneath it.
func (s SearchBar) View() string {
	if !s.visible {
		return ""
	}

	lines := []string{s.input.View()}

	switch {
	case len(s.state.Results) == 0 && s.state.Query != "":
		lines = append(lines, styles.DimStyle.Render("No results"))
	default:
		for i, r := range s.state.Results {
			lines = append(lines, s.renderResult(i, r))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return styles.ActiveBorder.Padding(0, 1).Render(content)
}

func (s SearchBar) renderResult(i int, r search.Result) string {
	dot := styles.MissingDot
	if r.Captured {
		dot = styles.CapturedDot
	}

	name := r.Entry.Name
	if r.MatchStart >= 0 && r.MatchEnd <= len(name) {
		name = name[:r.MatchStart] +
			styles.AccentStyle.Render(name[r.MatchStart:r.MatchEnd]) +
			name[r.MatchEnd:]
	}

	line := fmt.Sprintf("%s %s %s", styles.DimStyle.Render(r.Entry.Code()), dot, name)
	if i == s.state.Cursor {
		return styles.HighlightStyle.Render(fmt.Sprintf("%s %s %s", r.Entry.Code(), dot, r.Entry.Name))
	}
	return line
}
