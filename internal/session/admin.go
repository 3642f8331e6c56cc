package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/avigneron/dexterm/internal/collection"
	"github.com/avigneron/dexterm/internal/domain"
)

// GlobalStats aggregates collection progress across every user record.
type GlobalStats struct {
	TotalUsers       int
	TotalCaptures    int
	AveragePercent   int
	CompletedUsers   int // users at 100%
	MaintenanceState bool
}

// Admin wraps the privileged record-service operations behind the
// session's capability gate. Every method requires manage_users and
// fails with ErrAccessDenied otherwise, with no further action.
type Admin struct {
	session *Session
	records domain.RecordService
	logger  *slog.Logger

	mu       sync.RWMutex
	snapshot []domain.UserRecord
	pending  map[string]domain.Role // staged role changes, confirmed per row
}

// NewAdmin creates the admin layer for a session.
func NewAdmin(s *Session, records domain.RecordService, logger *slog.Logger) *Admin {
	if logger == nil {
		logger = slog.Default()
	}
	return &Admin{
		session: s,
		records: records,
		logger:  logger,
		pending: make(map[string]domain.Role),
	}
}

func (a *Admin) gate() error {
	if !a.session.Can(domain.CapManageUsers) {
		a.logger.Warn("admin operation denied", "uid", a.session.UID, "role", a.session.Role)
		return domain.ErrAccessDenied
	}
	return nil
}

// LoadUsers fetches the user snapshot the panel filters client-side.
func (a *Admin) LoadUsers(ctx context.Context) error {
	if err := a.gate(); err != nil {
		return err
	}
	recs, err := a.records.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	a.mu.Lock()
	a.snapshot = recs
	a.pending = make(map[string]domain.Role)
	a.mu.Unlock()
	return nil
}

// Users returns the loaded snapshot.
func (a *Admin) Users() []domain.UserRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// FilterUsers narrows the snapshot by case-insensitive substring over
// username or role. When the substring pass is empty, a fuzzy pass
// over usernames catches near-misses.
func (a *Admin) FilterUsers(query string) []domain.UserRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return a.snapshot
	}

	var out []domain.UserRecord
	for _, rec := range a.snapshot {
		if strings.Contains(strings.ToLower(rec.Username), query) ||
			strings.Contains(strings.ToLower(string(rec.Role)), query) {
			out = append(out, rec)
		}
	}
	if len(out) > 0 {
		return out
	}

	names := make([]string, len(a.snapshot))
	for i, rec := range a.snapshot {
		names[i] = strings.ToLower(rec.Username)
	}
	for _, match := range fuzzy.Find(query, names) {
		out = append(out, a.snapshot[match.Index])
	}
	return out
}

// StageRole marks a pending role change for a user. Nothing is written
// until ConfirmRole runs for that row.
func (a *Admin) StageRole(uid string, role domain.Role) error {
	if err := a.gate(); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, rec := range a.snapshot {
		if rec.UID == uid {
			if rec.Role == role {
				delete(a.pending, uid) // staging back to current clears the mark
			} else {
				a.pending[uid] = role
			}
			return nil
		}
	}
	return fmt.Errorf("%w: no such user %q", domain.ErrRecordNotFound, uid)
}

// PendingRole returns the staged role for a user, if any.
func (a *Admin) PendingRole(uid string) (domain.Role, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	role, ok := a.pending[uid]
	return role, ok
}

// ConfirmRole commits the staged role change for one row.
func (a *Admin) ConfirmRole(ctx context.Context, uid string) error {
	if err := a.gate(); err != nil {
		return err
	}

	a.mu.Lock()
	role, ok := a.pending[uid]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("no pending role change for %q", uid)
	}

	if err := a.records.SetRole(ctx, uid, role); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	a.mu.Lock()
	delete(a.pending, uid)
	for i := range a.snapshot {
		if a.snapshot[i].UID == uid {
			a.snapshot[i].Role = role
		}
	}
	a.mu.Unlock()

	a.logger.Info("role changed", "uid", uid, "role", role, "by", a.session.UID)
	return nil
}

// ResetUser clears a user's collection progress.
func (a *Admin) ResetUser(ctx context.Context, uid string) error {
	if err := a.gate(); err != nil {
		return err
	}
	if err := a.records.ResetProgress(ctx, uid); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}

	a.mu.Lock()
	for i := range a.snapshot {
		if a.snapshot[i].UID == uid {
			a.snapshot[i].CapturedPokemon = nil
		}
	}
	a.mu.Unlock()

	a.logger.Info("progress reset", "uid", uid, "by", a.session.UID)
	return nil
}

// ToggleMaintenance flips the process-wide maintenance flag.
func (a *Admin) ToggleMaintenance(ctx context.Context) (bool, error) {
	if err := a.gate(); err != nil {
		return false, err
	}

	flag, err := a.records.GetMaintenance(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read maintenance flag: %w", err)
	}

	next := domain.MaintenanceFlag{
		IsMaintenance: !flag.IsMaintenance,
		UpdatedBy:     a.session.UID,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := a.records.SetMaintenance(ctx, next); err != nil {
		return false, fmt.Errorf("failed to set maintenance flag: %w", err)
	}

	a.logger.Info("maintenance toggled", "on", next.IsMaintenance, "by", a.session.UID)
	return next.IsMaintenance, nil
}

// Export writes the full data export to path.
func (a *Admin) Export(ctx context.Context, path string) (int, error) {
	if err := a.gate(); err != nil {
		return 0, err
	}
	return a.records.ExportAll(ctx, path)
}

// Stats aggregates global collection progress from the snapshot.
func (a *Admin) Stats() (GlobalStats, error) {
	if err := a.gate(); err != nil {
		return GlobalStats{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := GlobalStats{
		TotalUsers:       len(a.snapshot),
		MaintenanceState: a.session.Maintenance.IsMaintenance,
	}
	pctSum := 0
	for _, rec := range a.snapshot {
		count := len(rec.CapturedPokemon)
		stats.TotalCaptures += count
		userStats := collection.ComputeStats(count, domain.TotalEntries)
		pctSum += userStats.Percentage
		if userStats.Percentage >= 100 {
			stats.CompletedUsers++
		}
	}
	if len(a.snapshot) > 0 {
		stats.AveragePercent = pctSum / len(a.snapshot)
	}
	return stats, nil
}
