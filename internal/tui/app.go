package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avigneron/dexterm/internal/catalog"
	"github.com/avigneron/dexterm/internal/collection"
	"github.com/avigneron/dexterm/internal/domain"
	"github.com/avigneron/dexterm/internal/paging"
	"github.com/avigneron/dexterm/internal/search"
	"github.com/avigneron/dexterm/internal/session"
	"github.com/avigneron/dexterm/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading ApplicationState = iota
	StateBrowsing
	StateSearching
	StateGoto
	StateConfirm
	StateAdmin
	StateMaintenance
	StateHelp
)

// confirmKind identifies the destructive action awaiting confirmation
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmRelease
	confirmResetOwn
	confirmResetUser
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	CatalogSvc    *catalog.Service
	CollectionSvc *collection.Service
	Session       *session.Session
	Admin         *session.Admin
	Records       domain.RecordService
	Store         domain.Store
	Logger        *slog.Logger

	// Engines
	Searcher *search.Engine
	Pager    *paging.State

	// UI Components
	Grid       components.Grid
	SearchBar  components.SearchBar
	GotoModal  components.GotoModal
	Confirm    components.ConfirmModal
	AdminPanel components.AdminPanel

	// Data
	entries    []domain.CatalogEntry // full ordered catalog
	ExportPath string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusText   string
	StatusIsErr  bool
	SpinnerFrame int
	DarkMode     bool

	catalogReady bool
	recordReady  bool

	// Search debounce: only the latest keystroke's tick runs a match.
	searchSeq int

	// Collection writes: every toggle persists immediately; the sweep
	// only fires when a write failed and left the state dirty.
	dirty bool

	// Pending confirmation
	confirming    confirmKind
	confirmNumber int
	confirmUID    string

	// Pre-search position, restored when the search is dismissed.
	returnState ApplicationState
}

// NewModel creates a new application model
func NewModel(
	catalogSvc *catalog.Service,
	collectionSvc *collection.Service,
	sess *session.Session,
	admin *session.Admin,
	records domain.RecordService,
	store domain.Store,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	pageSize := paging.DefaultPageSize
	if size, ok := store.GetGridSize(); ok {
		pageSize = size
	}
	darkMode := true
	if on, ok := store.GetDarkMode(); ok {
		darkMode = on
	}

	return Model{
		State:         StateLoading,
		CatalogSvc:    catalogSvc,
		CollectionSvc: collectionSvc,
		Session:       sess,
		Admin:         admin,
		Records:       records,
		Store:         store,
		Logger:        logger,
		Searcher:      search.NewEngine(nil, logger),
		Pager:         paging.NewState(pageSize),
		Grid:          components.NewGrid(darkMode),
		SearchBar:     components.NewSearchBar(),
		GotoModal:     components.NewGotoModal(),
		Confirm:       components.NewConfirmModal(),
		AdminPanel:    components.NewAdminPanel(admin),
		DarkMode:      darkMode,
	}
}

// Init kicks off the startup loads: catalog names, the user's
// collection document, the maintenance flag and the sweep timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCatalogCmd(m.CatalogSvc),
		HydrateCmd(m.CollectionSvc, m.Session.UID),
		CheckMaintenanceCmd(m.Session, m.Records),
		SweepCmd(),
		TickCmd(100*time.Millisecond),
	)
}

// totalFor returns the entry count a filter would show.
func (m *Model) totalFor(f domain.Filter) int {
	if f == domain.FilterCaptured {
		return m.CollectionSvc.Count()
	}
	return len(m.entries)
}

// visibleEntries returns the catalog restricted to the active filter.
func (m *Model) visibleEntries() []domain.CatalogEntry {
	if m.Pager.Filter != domain.FilterCaptured {
		return m.entries
	}
	var out []domain.CatalogEntry
	for _, e := range m.entries {
		if m.CollectionSvc.Has(e.Number) {
			out = append(out, e)
		}
	}
	return out
}

// refreshGrid re-slices the current page into the grid.
func (m *Model) refreshGrid() {
	visible := m.visibleEntries()
	m.Pager.Clamp(len(visible))
	start, end := m.Pager.Slice(len(visible))
	m.Grid.SetEntries(visible[start:end])
}

// setStatus sets a transient status bar message.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusText = text
	m.StatusIsErr = isErr
	return ClearStatusCmd()
}

// enterBrowsing transitions out of loading once both startup loads are
// done, or into the maintenance screen when the user is locked out.
func (m *Model) enterBrowsing() {
	if !m.catalogReady || !m.recordReady {
		return
	}
	if m.Session.Blocked() {
		m.State = StateMaintenance
		return
	}
	if m.State == StateLoading || m.State == StateMaintenance {
		m.State = StateBrowsing
	}
	m.refreshGrid()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Grid.SetSize(msg.Width-4, msg.Height-6)
		m.AdminPanel.SetSize(msg.Width, msg.Height)
		m.refreshGrid()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if m.State == StateLoading {
			m.SpinnerFrame++
			return m, TickCmd(100 * time.Millisecond)
		}
		return m, nil

	case CatalogLoadedMsg:
		m.entries = msg.Entries
		m.Searcher.SetEntries(msg.Entries)
		m.catalogReady = true
		m.enterBrowsing()
		return m, nil

	case HydratedMsg:
		if msg.Record.Role.Valid() {
			m.Session.Role = msg.Record.Role
		}
		m.recordReady = true
		f := m.CollectionSvc.Filter()
		m.Pager.SetFilter(f, m.totalFor(f))
		m.enterBrowsing()
		return m, nil

	case MaintenanceCheckedMsg:
		m.Session.Maintenance = msg.Flag
		lastSeen, known := m.Store.GetMaintenanceSeen()
		if err := m.Store.SaveMaintenanceSeen(msg.Flag.IsMaintenance); err != nil {
			m.Logger.Warn("failed to save maintenance state", "error", err)
		}
		if m.Session.Blocked() {
			m.State = StateMaintenance
			return m, nil
		}
		// Admins ride through maintenance; surface transitions only.
		if msg.Flag.IsMaintenance && (!known || !lastSeen) {
			return m, m.setStatus("Maintenance mode is active", false)
		}
		if !msg.Flag.IsMaintenance && known && lastSeen {
			return m, m.setStatus("Maintenance has ended", false)
		}
		return m, nil

	case SweepTickMsg:
		// The sweep always writes, mutations or not: it is the backup
		// for immediate saves that failed or clobbered each other.
		m.dirty = false
		return m, tea.Batch(PersistCmd(m.CollectionSvc), SweepCmd())

	case PersistedMsg:
		m.dirty = false
		return m, nil

	case SearchDebounceMsg:
		if m.State != StateSearching || msg.Seq != m.searchSeq {
			return m, nil
		}
		results := m.Searcher.Match(m.SearchBar.Value(), m.CollectionSvc.Has)
		m.SearchBar.SetResults(m.SearchBar.Value(), results)
		return m, nil

	case HighlightClearMsg:
		if m.Grid.Highlight() == msg.Number {
			m.Grid.SetHighlight(0)
		}
		return m, nil

	case UsersLoadedMsg:
		m.State = StateAdmin
		m.AdminPanel.Show()
		return m, nil

	case RoleCommittedMsg:
		m.AdminPanel.Refresh()
		return m, m.setStatus(fmt.Sprintf("Role changed: %s is now %s", msg.UID, msg.Role), false)

	case UserResetMsg:
		m.AdminPanel.Refresh()
		return m, m.setStatus("Progress reset for "+msg.UID, false)

	case MaintenanceToggledMsg:
		m.Session.Maintenance.IsMaintenance = msg.On
		if err := m.Store.SaveMaintenanceSeen(msg.On); err != nil {
			m.Logger.Warn("failed to save maintenance state", "error", err)
		}
		m.AdminPanel.Refresh()
		text := "Maintenance mode disabled"
		if msg.On {
			text = "Maintenance mode enabled"
		}
		return m, m.setStatus(text, false)

	case ExportDoneMsg:
		return m, m.setStatus(fmt.Sprintf("Exported %d users to %s", msg.Count, msg.Path), false)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusText = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.Logger.Error("ui error", "context", msg.Context, "error", msg.Err)
		if m.State == StateLoading {
			// Startup loads are fatal for the view they feed.
			m.State = StateBrowsing
			m.catalogReady = true
			m.recordReady = true
		}
		return m, m.setStatus(msg.Error(), true)
	}

	// Delegate remaining messages to whichever component is active.
	return m.updateComponents(msg)
}

// updateComponents routes non-key messages to the active component.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.SearchBar.IsVisible() {
		var cmd tea.Cmd
		m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.AdminPanel.IsVisible() {
		var cmd tea.Cmd
		m.AdminPanel, cmd = m.AdminPanel.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}
