package tui

import (
	"github.com/avigneron/dexterm/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogLoadedMsg signals that the entry name list is available
type CatalogLoadedMsg struct {
	Entries []domain.CatalogEntry
}

// HydratedMsg signals that the user's collection has been loaded
type HydratedMsg struct {
	Record domain.UserRecord
}

// MaintenanceCheckedMsg carries the maintenance flag read at startup
type MaintenanceCheckedMsg struct {
	Flag domain.MaintenanceFlag
}

// PersistedMsg signals that a collection write completed
type PersistedMsg struct{}

// SweepTickMsg fires the periodic persistence sweep
type SweepTickMsg struct{}

// SearchDebounceMsg fires when the search input has been idle. Seq
// identifies the keystroke that armed it; stale ticks are dropped.
type SearchDebounceMsg struct {
	Seq int
}

// HighlightClearMsg removes the post-search highlight cue
type HighlightClearMsg struct {
	Number int
}

// UsersLoadedMsg signals that the admin user snapshot is ready
type UsersLoadedMsg struct{}

// RoleCommittedMsg signals that a staged role change was written
type RoleCommittedMsg struct {
	UID  string
	Role domain.Role
}

// UserResetMsg signals that a user's progress was cleared
type UserResetMsg struct {
	UID string
}

// MaintenanceToggledMsg signals that the maintenance flag was flipped
type MaintenanceToggledMsg struct {
	On bool
}

// ExportDoneMsg signals that the data export finished
type ExportDoneMsg struct {
	Path  string
	Count int
}

// TickMsg is a general tick message for the loading spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
