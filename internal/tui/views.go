package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/avigneron/dexterm/internal/domain"
	"github.com/avigneron/dexterm/internal/paging"
	"github.com/avigneron/dexterm/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	switch m.State {
	case StateLoading:
		return m.loadingView()
	case StateMaintenance:
		return m.maintenanceView()
	case StateHelp:
		return m.helpView()
	case StateAdmin:
		return m.overlay(m.AdminPanel.View())
	case StateSearching:
		return m.overlay(m.SearchBar.View())
	case StateGoto:
		return m.overlay(m.GotoModal.View())
	case StateConfirm:
		return m.overlay(m.Confirm.View())
	default:
		return m.browsingView()
	}
}

// overlay centers a modal over the dimmed browsing view.
func (m Model) overlay(modal string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) loadingView() string {
	frame := styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)]
	text := fmt.Sprintf("%s Loading the Pokédex...", frame)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		styles.AccentStyle.Render(text))
}

func (m Model) maintenanceView() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render("Maintenance in progress"),
		"",
		styles.SubtitleStyle.Render("The Pokédex is temporarily unavailable."),
		styles.SubtitleStyle.Render("Please come back later."),
		"",
		styles.DimStyle.Render("q: quit"),
	)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		styles.ActiveBorder.Padding(1, 3).Render(content))
}

func (m Model) helpView() string {
	rows := []string{
		styles.TitleStyle.Render("Key bindings"),
		"",
		"  hjkl/arrows   move between cards",
		"  [ / ]         previous / next page",
		"  home / end    first / last page",
		"  space/enter   capture or release",
		"  /             search by name or number",
		"  f             toggle all / captured filter",
		"  g             go to page",
		"  s             cycle grid size",
		"  d             dark mode",
		"  r             reset collection",
		"  R             refresh catalog names",
		"  a             admin panel",
		"  q             quit",
		"",
		styles.DimStyle.Render("press any key to return"),
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		styles.ActiveBorder.Padding(1, 3).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func (m Model) browsingView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.Grid.View(m.CollectionSvc.Has),
		m.footerView(),
	)
}

func (m Model) headerView() string {
	title := styles.TitleStyle.Render("Pokédex")

	user := styles.SubtitleStyle.Render(fmt.Sprintf("%s (%s)", m.Session.Username, m.Session.Role))

	stats := m.CollectionSvc.Stats()
	progress := styles.ProgressStyle(stats.Percentage).Render(
		fmt.Sprintf("%d/%d · %d%%", stats.Count, domain.TotalEntries, stats.Percentage))

	banner := ""
	if m.Session.Maintenance.IsMaintenance {
		banner = "  " + styles.ErrorStyle.Render("[MAINTENANCE]")
	}

	left := fmt.Sprintf("%s  %s  %s%s", title, user, progress, banner)
	return lipgloss.NewStyle().Padding(0, 1).Render(left)
}

func (m Model) footerView() string {
	total := len(m.visibleEntries())
	pages := paging.TotalPages(total, m.Pager.PageSize)

	filter := "all"
	if m.Pager.Filter == domain.FilterCaptured {
		filter = "captured"
	}
	info := styles.DimStyle.Render(
		fmt.Sprintf("page %d/%d · filter: %s · ?: help", m.Pager.Page, pages, filter))

	status := ""
	if m.StatusText != "" {
		if m.StatusIsErr {
			status = "  " + styles.ErrorStyle.Render(m.StatusText)
		} else {
			status = "  " + styles.SuccessStyle.Render(m.StatusText)
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(info + status)
}
