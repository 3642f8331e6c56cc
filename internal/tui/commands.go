package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avigneron/dexterm/internal/catalog"
	"github.com/avigneron/dexterm/internal/collection"
	"github.com/avigneron/dexterm/internal/domain"
	"github.com/avigneron/dexterm/internal/session"
)

// SearchDebounce is how long the search input must sit idle before a
// keystroke produces results.
const SearchDebounce = 300 * time.Millisecond

// Command factories for async operations

// LoadCatalogCmd resolves the full entry name list (cache or remote).
func LoadCatalogCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		// Cold cache means ~1k remote lookups; give it room.
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		entries, err := svc.Entries(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading catalog"}
		}
		return CatalogLoadedMsg{Entries: entries}
	}
}

// HydrateCmd loads the user's collection document.
func HydrateCmd(svc *collection.Service, uid string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.Hydrate(ctx, uid); err != nil {
			return ErrMsg{Err: err, Context: "loading collection"}
		}
		return HydratedMsg{Record: svc.Record()}
	}
}

// CheckMaintenanceCmd refreshes the session's maintenance flag. An
// unreadable flag never locks users out: the check degrades to "off".
func CheckMaintenanceCmd(sess *session.Session, records domain.RecordService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		sess.CheckMaintenance(ctx, records)
		return MaintenanceCheckedMsg{Flag: sess.Maintenance}
	}
}

// PersistCmd writes the collection to the record service, falling back
// to the local store when the server is unreachable.
func PersistCmd(svc *collection.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.Persist(ctx); err != nil {
			return ErrMsg{Err: err, Context: "saving collection"}
		}
		return PersistedMsg{}
	}
}

// SweepCmd schedules the periodic persistence sweep.
func SweepCmd() tea.Cmd {
	return tea.Tick(collection.SweepInterval, func(time.Time) tea.Msg {
		return SweepTickMsg{}
	})
}

// DebounceCmd arms the search debounce timer for one keystroke.
func DebounceCmd(seq int) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq}
	})
}

// ClearHighlightCmd removes the post-search highlight after a beat.
func ClearHighlightCmd(number int) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return HighlightClearMsg{Number: number}
	})
}

// ClearStatusCmd clears the status bar after a delay.
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// TickCmd creates a tick command for the loading spinner.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// LoadUsersCmd fetches the admin user snapshot.
func LoadUsersCmd(admin *session.Admin) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := admin.LoadUsers(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading users"}
		}
		return UsersLoadedMsg{}
	}
}

// CommitRoleCmd writes the staged role change for one user.
func CommitRoleCmd(admin *session.Admin, uid string) tea.Cmd {
	return func() tea.Msg {
		role, ok := admin.PendingRole(uid)
		if !ok {
			return StatusMsg{Message: "no staged role change", IsError: true}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := admin.ConfirmRole(ctx, uid); err != nil {
			return ErrMsg{Err: err, Context: "changing role"}
		}
		return RoleCommittedMsg{UID: uid, Role: role}
	}
}

// ResetUserCmd clears a user's collection progress.
func ResetUserCmd(admin *session.Admin, uid string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := admin.ResetUser(ctx, uid); err != nil {
			return ErrMsg{Err: err, Context: "resetting progress"}
		}
		return UserResetMsg{UID: uid}
	}
}

// ToggleMaintenanceCmd flips the maintenance flag.
func ToggleMaintenanceCmd(admin *session.Admin) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		on, err := admin.ToggleMaintenance(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "toggling maintenance"}
		}
		return MaintenanceToggledMsg{On: on}
	}
}

// ExportCmd writes the full data export to path.
func ExportCmd(admin *session.Admin, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		count, err := admin.Export(ctx, path)
		if err != nil {
			return ErrMsg{Err: err, Context: "exporting data"}
		}
		return ExportDoneMsg{Path: path, Count: count}
	}
}
