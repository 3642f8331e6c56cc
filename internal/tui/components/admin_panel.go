package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avigneron/dexterm/internal/collection"
	"github.com/avigneron/dexterm/internal/domain"
	"github.com/avigneron/dexterm/internal/session"
	"github.com/avigneron/dexterm/internal/tui/styles"
)

// userItem adapts a user record for the bubbles list.
type userItem struct {
	rec     domain.UserRecord
	pending domain.Role
	staged  bool
}

func (i userItem) FilterValue() string { return i.rec.Username }

func (i userItem) Title() string {
	title := fmt.Sprintf("%s (%s)", i.rec.Username, i.rec.Role)
	if i.staged {
		title += styles.AccentStyle.Render(fmt.Sprintf("  → %s (staged)", i.pending))
	}
	return title
}

func (i userItem) Description() string {
	stats := collection.ComputeStats(len(i.rec.CapturedPokemon), domain.TotalEntries)
	return fmt.Sprintf("%s · %d captured · %d%%", i.rec.UID, stats.Count, stats.Percentage)
}

// AdminPanel is the user management view: a filterable user list with
// staged role changes, per-user reset, the maintenance switch and the
// data export. Filtering runs through the admin layer, not the list's
// built-in filter, so the fuzzy fallback applies.
type AdminPanel struct {
	visible   bool
	admin     *session.Admin
	list      list.Model
	filter    textinput.Model
	filtering bool
	stats     session.GlobalStats

	width  int
	height int
}

// NewAdminPanel creates the panel over the admin layer.
func NewAdminPanel(admin *session.Admin) AdminPanel {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Users"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	ti := textinput.New()
	ti.Placeholder = "Filter by name or role..."
	ti.CharLimit = 40
	ti.Width = 32
	ti.Prompt = "/ "

	return AdminPanel{admin: admin, list: l, filter: ti}
}

// Show opens the panel.
func (p *AdminPanel) Show() {
	p.visible = true
	p.filter.SetValue("")
	p.filtering = false
	p.Refresh()
}

// Hide closes the panel.
func (p *AdminPanel) Hide() {
	p.visible = false
	p.filter.Blur()
}

// IsVisible returns whether the panel is shown.
func (p AdminPanel) IsVisible() bool {
	return p.visible
}

// Filtering reports whether keystrokes belong to the filter input.
func (p AdminPanel) Filtering() bool {
	return p.filtering
}

// StartFiltering focuses the filter input.
func (p *AdminPanel) StartFiltering() {
	p.filtering = true
	p.filter.Focus()
}

// StopFiltering blurs the filter input, keeping the narrowed list.
func (p *AdminPanel) StopFiltering() {
	p.filtering = false
	p.filter.Blur()
}

// SetSize updates the panel dimensions.
func (p *AdminPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.list.SetSize(width-4, height-8)
}

// Refresh re-reads the snapshot, the filter and the staged marks.
func (p *AdminPanel) Refresh() {
	users := p.admin.FilterUsers(p.filter.Value())
	items := make([]list.Item, len(users))
	for i, rec := range users {
		item := userItem{rec: rec}
		item.pending, item.staged = p.admin.PendingRole(rec.UID)
		items[i] = item
	}
	p.list.SetItems(items)

	if stats, err := p.admin.Stats(); err == nil {
		p.stats = stats
	}
}

// SelectedUser returns the record under the cursor.
func (p AdminPanel) SelectedUser() (domain.UserRecord, bool) {
	item, ok := p.list.SelectedItem().(userItem)
	if !ok {
		return domain.UserRecord{}, false
	}
	return item.rec, true
}

// Update routes messages to the filter input or the list.
func (p AdminPanel) Update(msg tea.Msg) (AdminPanel, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	var cmd tea.Cmd
	if p.filtering {
		p.filter, cmd = p.filter.Update(msg)
		p.Refresh()
		return p, cmd
	}

	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View renders the stats header, the filter and the user list.
func (p AdminPanel) View() string {
	if !p.visible {
		return ""
	}

	maintenance := styles.DimStyle.Render("maintenance off")
	if p.stats.MaintenanceState {
		maintenance = styles.ErrorStyle.Render("MAINTENANCE ON")
	}
	header := fmt.Sprintf("%d users · %d captures · avg %d%% · %d complete · %s",
		p.stats.TotalUsers, p.stats.TotalCaptures, p.stats.AveragePercent,
		p.stats.CompletedUsers, maintenance)

	help := styles.DimStyle.Render("/: filter  t: stage role  enter: confirm  x: reset  m: maintenance  e: export  esc: back")

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Administration"),
		styles.SubtitleStyle.Render(header),
		p.filter.View(),
		p.list.View(),
		help,
	)
	return styles.ActiveBorder.Padding(1, 2).Width(p.width - 2).Render(content)
}
