package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/avigneron/dexterm/internal/domain"
	"github.com/avigneron/dexterm/internal/tui/styles"
)

const (
	cardWidth  = 16
	cardGap    = 1
	minColumns = 2
)

// Grid renders one page of catalog entries as a card grid with a
// keyboard cursor. The entries slice is the current page only; paging
// is the caller's concern.
type Grid struct {
	width   int
	height  int
	columns int

	entries   []domain.CatalogEntry
	cursor    int
	highlight int // entry number to pulse after a search jump, 0 = none
	darkMode  bool
}

// NewGrid creates an empty grid.
func NewGrid(darkMode bool) Grid {
	return Grid{columns: minColumns, darkMode: darkMode}
}

// SetSize updates the grid dimensions and recomputes the column count.
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.columns = width / (cardWidth + cardGap + 2) // +2 for the card border
	if g.columns < minColumns {
		g.columns = minColumns
	}
}

// SetEntries replaces the page contents, keeping the cursor in range.
func (g *Grid) SetEntries(entries []domain.CatalogEntry) {
	g.entries = entries
	if g.cursor >= len(entries) {
		g.cursor = len(entries) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

// SetDarkMode flips the card palette.
func (g *Grid) SetDarkMode(on bool) {
	g.darkMode = on
}

// SetHighlight pulses the card for an entry number (0 clears).
func (g *Grid) SetHighlight(number int) {
	g.highlight = number
}

// Highlight returns the currently pulsed entry number.
func (g Grid) Highlight() int {
	return g.highlight
}

// Selected returns the entry under the cursor, nil on an empty page.
func (g Grid) Selected() *domain.CatalogEntry {
	if len(g.entries) == 0 || g.cursor >= len(g.entries) {
		return nil
	}
	return &g.entries[g.cursor]
}

// SelectNumber moves the cursor onto the entry with that number, if it
// is on this page.
func (g *Grid) SelectNumber(number int) {
	for i, e := range g.entries {
		if e.Number == number {
			g.cursor = i
			return
		}
	}
}

// CursorHome moves the cursor to the first card.
func (g *Grid) CursorHome() {
	g.cursor = 0
}

// MoveUp moves the cursor one row up, clamped at the top row.
func (g *Grid) MoveUp() {
	if g.cursor-g.columns >= 0 {
		g.cursor -= g.columns
	}
}

// MoveDown moves the cursor one row down, clamped at the bottom row.
func (g *Grid) MoveDown() {
	if g.cursor+g.columns < len(g.entries) {
		g.cursor += g.columns
	}
}

// MoveLeft moves the cursor left. It reports true when the cursor was
// already on the left edge, letting the caller flip to the previous
// page instead.
func (g *Grid) MoveLeft() bool {
	if len(g.entries) == 0 || g.cursor%g.columns == 0 {
		return true
	}
	g.cursor--
	return false
}

// MoveRight moves the cursor right. It reports true on the right edge
// (or the last card), letting the caller flip to the next page.
func (g *Grid) MoveRight() bool {
	if len(g.entries) == 0 {
		return true
	}
	if g.cursor == len(g.entries)-1 || (g.cursor+1)%g.columns == 0 {
		return true
	}
	g.cursor++
	return false
}

// View renders the page. captured reports capture status per entry
// number at render time.
func (g Grid) View(captured func(int) bool) string {
	if len(g.entries) == 0 {
		return styles.DimStyle.Render("Nothing to show on this page.")
	}

	rows := make([]string, 0, len(g.entries)/g.columns+1)
	for start := 0; start < len(g.entries); start += g.columns {
		end := start + g.columns
		if end > len(g.entries) {
			end = len(g.entries)
		}

		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, g.renderCard(i, captured(g.entries[i].Number)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (g Grid) renderCard(i int, captured bool) string {
	entry := g.entries[i]

	dot := styles.MissingDot
	if captured {
		dot = styles.CapturedDot
	}

	nameStyle := styles.SubtitleStyle
	if g.darkMode {
		nameStyle = lipgloss.NewStyle().Foreground(styles.White)
	}
	if captured {
		nameStyle = nameStyle.Bold(true)
	}

	name := entry.Name
	if runes := []rune(name); len(runes) > cardWidth {
		name = string(runes[:cardWidth-1]) + "…"
	}
	if entry.Number == g.highlight {
		name = styles.HighlightStyle.Render(name)
	} else {
		name = nameStyle.Render(name)
	}

	header := fmt.Sprintf("%s %s", styles.DimStyle.Render(entry.Code()), dot)
	content := lipgloss.JoinVertical(lipgloss.Left, header, name)

	border := styles.InactiveBorder
	if i == g.cursor {
		border = styles.ActiveBorder
	}
	return border.Width(cardWidth).MarginRight(cardGap).Render(content)
}
