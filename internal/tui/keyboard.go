package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avigneron/dexterm/internal/domain"
	"github.com/avigneron/dexterm/internal/paging"
)

// handleKeyMsg dispatches keys by application state.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateLoading, StateMaintenance:
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	case StateSearching:
		return m.handleSearchKeys(msg)
	case StateGoto:
		return m.handleGotoKeys(msg)
	case StateConfirm:
		return m.handleConfirmKeys(msg)
	case StateAdmin:
		return m.handleAdminKeys(msg)
	default:
		return m.handleBrowsingKeys(msg)
	}
}

func (m Model) handleBrowsingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		if m.dirty {
			return m, tea.Sequence(PersistCmd(m.CollectionSvc), tea.Quit)
		}
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.Grid.MoveUp()
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.Grid.MoveDown()
		return m, nil

	case key.Matches(msg, Keys.Left):
		if m.Grid.MoveLeft() && m.Pager.Page > 1 {
			m.Pager.Prev()
			m.refreshGrid()
			m.Grid.CursorHome()
		}
		return m, nil

	case key.Matches(msg, Keys.Right):
		if m.Grid.MoveRight() && m.Pager.Page < paging.TotalPages(len(m.visibleEntries()), m.Pager.PageSize) {
			m.Pager.Next(len(m.visibleEntries()))
			m.refreshGrid()
			m.Grid.CursorHome()
		}
		return m, nil

	case key.Matches(msg, Keys.PrevPage):
		m.Pager.Prev()
		m.refreshGrid()
		m.Grid.CursorHome()
		return m, nil

	case key.Matches(msg, Keys.NextPage):
		m.Pager.Next(len(m.visibleEntries()))
		m.refreshGrid()
		m.Grid.CursorHome()
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.Pager.Goto(1, len(m.visibleEntries()))
		m.refreshGrid()
		m.Grid.CursorHome()
		return m, nil

	case key.Matches(msg, Keys.End):
		total := len(m.visibleEntries())
		m.Pager.Goto(paging.TotalPages(total, m.Pager.PageSize), total)
		m.refreshGrid()
		m.Grid.CursorHome()
		return m, nil

	case key.Matches(msg, Keys.Toggle):
		return m.toggleSelected()

	case key.Matches(msg, Keys.Search):
		m.returnState = m.State
		m.State = StateSearching
		m.SearchBar.Show()
		return m, nil

	case key.Matches(msg, Keys.Filter):
		return m.toggleFilter()

	case key.Matches(msg, Keys.GotoPage):
		m.State = StateGoto
		m.GotoModal.Show(paging.TotalPages(len(m.visibleEntries()), m.Pager.PageSize))
		return m, nil

	case key.Matches(msg, Keys.GridSize):
		return m.cycleGridSize()

	case key.Matches(msg, Keys.DarkMode):
		m.DarkMode = !m.DarkMode
		m.Grid.SetDarkMode(m.DarkMode)
		if err := m.Store.SaveDarkMode(m.DarkMode); err != nil {
			m.Logger.Warn("failed to save dark mode", "error", err)
		}
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		m.CatalogSvc.Refresh()
		m.catalogReady = false
		m.State = StateLoading
		return m, tea.Batch(LoadCatalogCmd(m.CatalogSvc), TickCmd(100*time.Millisecond))

	case key.Matches(msg, Keys.ResetCollection):
		if m.CollectionSvc.Count() == 0 {
			return m, m.setStatus("Collection is already empty", false)
		}
		m.confirming = confirmResetOwn
		m.returnState = m.State
		m.State = StateConfirm
		m.Confirm.Show("Reset your collection?",
			fmt.Sprintf("All %d captures will be cleared.", m.CollectionSvc.Count()))
		return m, nil

	case key.Matches(msg, Keys.AdminPanel):
		if !m.Session.Can(domain.CapManageUsers) {
			return m, m.setStatus("Access denied", true)
		}
		return m, LoadUsersCmd(m.Admin)
	}
	return m, nil
}

// toggleSelected captures the card under the cursor, or asks for
// confirmation before releasing an already-captured entry.
func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	entry := m.Grid.Selected()
	if entry == nil {
		return m, nil
	}

	if m.CollectionSvc.Has(entry.Number) {
		m.confirming = confirmRelease
		m.confirmNumber = entry.Number
		m.returnState = m.State
		m.State = StateConfirm
		m.Confirm.Show("Release "+entry.Name+"?",
			fmt.Sprintf("%s will be removed from your collection.", entry.Code()))
		return m, nil
	}

	m.CollectionSvc.Toggle(entry.Number)
	m.dirty = true
	m.refreshGrid()
	return m, tea.Batch(
		PersistCmd(m.CollectionSvc),
		m.setStatus("Captured "+entry.Name+"!", false),
	)
}

// toggleFilter flips ALL <-> CAPTURED, restoring the page last viewed
// under the target filter.
func (m Model) toggleFilter() (tea.Model, tea.Cmd) {
	next := m.Pager.Filter.Toggle()
	m.CollectionSvc.SetFilter(next)
	m.Pager.SetFilter(next, m.totalFor(next))
	m.refreshGrid()
	m.Grid.CursorHome()
	m.dirty = true

	label := "Showing all entries"
	if next == domain.FilterCaptured {
		label = "Showing captured only"
	}
	return m, tea.Batch(PersistCmd(m.CollectionSvc), m.setStatus(label, false))
}

// cycleGridSize steps through the allowed page sizes.
func (m Model) cycleGridSize() (tea.Model, tea.Cmd) {
	sizes := paging.AllowedPageSizes
	next := sizes[0]
	for i, size := range sizes {
		if size == m.Pager.PageSize {
			next = sizes[(i+1)%len(sizes)]
			break
		}
	}

	if err := m.Pager.SetPageSize(next, len(m.visibleEntries())); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	if err := m.Store.SaveGridSize(next); err != nil {
		m.Logger.Warn("failed to save grid size", "error", err)
	}
	m.refreshGrid()
	m.Grid.CursorHome()
	return m, m.setStatus(fmt.Sprintf("Grid size: %d per page", next), false)
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.SearchBar.Hide()
		m.State = m.returnState
		return m, nil
	case "up", "ctrl+p":
		m.SearchBar.MoveUp()
		return m, nil
	case "down", "ctrl+n", "tab":
		m.SearchBar.MoveDown()
		return m, nil
	case "enter":
		if m.SearchBar.Selected() == nil {
			// Explicit submit skips the debounce wait; bumping the
			// sequence drops the still-armed tick.
			m.searchSeq++
			results := m.Searcher.Match(m.SearchBar.Value(), m.CollectionSvc.Has)
			m.SearchBar.SetResults(m.SearchBar.Value(), results)
			return m, nil
		}
		return m.commitSearch()
	}

	var cmd tea.Cmd
	var changed bool
	m.SearchBar, cmd, changed = m.SearchBar.Update(msg)
	if !changed {
		return m, cmd
	}

	m.searchSeq++
	return m, tea.Batch(cmd, DebounceCmd(m.searchSeq))
}

// commitSearch jumps the grid to the selected result: the filter is
// forced back to ALL so the target page exists, the pager lands on the
// entry's page, and the card pulses briefly.
func (m Model) commitSearch() (tea.Model, tea.Cmd) {
	sel := m.SearchBar.Selected()
	if sel == nil {
		return m, nil
	}

	var cmds []tea.Cmd
	if m.Pager.Filter != domain.FilterAll {
		m.CollectionSvc.SetFilter(domain.FilterAll)
		m.Pager.SetFilter(domain.FilterAll, len(m.entries))
		m.dirty = true
		cmds = append(cmds, PersistCmd(m.CollectionSvc))
	}

	// Catalog order means an entry's number is its 1-based position.
	page := paging.PageFor(sel.Entry.Number, m.Pager.PageSize)
	if err := m.Pager.Goto(page, len(m.entries)); err != nil {
		return m, m.setStatus(err.Error(), true)
	}

	m.refreshGrid()
	m.Grid.SelectNumber(sel.Entry.Number)
	m.Grid.SetHighlight(sel.Entry.Number)
	m.SearchBar.Hide()
	m.State = StateBrowsing

	cmds = append(cmds, ClearHighlightCmd(sel.Entry.Number))
	return m, tea.Batch(cmds...)
}

func (m Model) handleGotoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var page int
	var ok bool
	m.GotoModal, cmd, page, ok = m.GotoModal.Update(msg)

	if !m.GotoModal.IsVisible() {
		m.State = StateBrowsing
	}
	if ok {
		if err := m.Pager.Goto(page, len(m.visibleEntries())); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		m.refreshGrid()
		m.Grid.CursorHome()
	}
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var confirmed, decided bool
	m.Confirm, confirmed, decided = m.Confirm.Update(msg)
	if !decided {
		return m, nil
	}

	kind := m.confirming
	m.confirming = confirmNone
	m.State = m.returnState

	if !confirmed {
		return m, nil
	}

	switch kind {
	case confirmRelease:
		m.CollectionSvc.Toggle(m.confirmNumber)
		m.dirty = true
		m.refreshGrid()
		return m, tea.Batch(
			PersistCmd(m.CollectionSvc),
			m.setStatus(fmt.Sprintf("Released #%03d", m.confirmNumber), false),
		)
	case confirmResetOwn:
		m.CollectionSvc.Reset()
		m.dirty = true
		m.refreshGrid()
		m.Grid.CursorHome()
		return m, tea.Batch(
			PersistCmd(m.CollectionSvc),
			m.setStatus("Collection reset", false),
		)
	case confirmResetUser:
		return m, ResetUserCmd(m.Admin, m.confirmUID)
	}
	return m, nil
}

func (m Model) handleAdminKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.AdminPanel.Filtering() {
		switch msg.String() {
		case "esc", "enter":
			m.AdminPanel.StopFiltering()
			return m, nil
		}
		var cmd tea.Cmd
		m.AdminPanel, cmd = m.AdminPanel.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.AdminPanel):
		m.AdminPanel.Hide()
		m.State = StateBrowsing
		m.refreshGrid()
		return m, nil

	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Search):
		m.AdminPanel.StartFiltering()
		return m, nil

	case key.Matches(msg, Keys.CycleRole):
		return m.stageNextRole()

	case key.Matches(msg, Keys.CommitRole):
		if user, ok := m.AdminPanel.SelectedUser(); ok {
			return m, CommitRoleCmd(m.Admin, user.UID)
		}
		return m, nil

	case key.Matches(msg, Keys.ResetUser):
		user, ok := m.AdminPanel.SelectedUser()
		if !ok {
			return m, nil
		}
		m.confirming = confirmResetUser
		m.confirmUID = user.UID
		m.returnState = StateAdmin
		m.State = StateConfirm
		m.Confirm.Show("Reset "+user.Username+"?",
			"Their entire collection progress will be cleared.")
		return m, nil

	case key.Matches(msg, Keys.Maintenance):
		return m, ToggleMaintenanceCmd(m.Admin)

	case key.Matches(msg, Keys.Export):
		path := m.ExportPath
		if path == "" {
			path = filepath.Join(".", fmt.Sprintf("dexterm-export-%s.json", time.Now().Format("2006-01-02")))
		}
		return m, ExportCmd(m.Admin, path)
	}

	var cmd tea.Cmd
	m.AdminPanel, cmd = m.AdminPanel.Update(msg)
	return m, cmd
}

// stageNextRole cycles the selected user's staged role through the
// known roles. Cycling back to their current role clears the mark.
func (m Model) stageNextRole() (tea.Model, tea.Cmd) {
	user, ok := m.AdminPanel.SelectedUser()
	if !ok {
		return m, nil
	}

	roles := domain.Roles()
	current := user.Role
	if staged, ok := m.Admin.PendingRole(user.UID); ok {
		current = staged
	}

	next := roles[0]
	for i, r := range roles {
		if r == current {
			next = roles[(i+1)%len(roles)]
			break
		}
	}

	if err := m.Admin.StageRole(user.UID, next); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.AdminPanel.Refresh()
	return m, nil
}
