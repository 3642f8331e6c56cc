package session

import (
	"context"
	"log/slog"

	"github.com/avigneron/dexterm/internal/domain"
)

// Session is the in-memory state for one authenticated user. The role
// is read once at hydration and never re-checked against the server;
// the staleness window is accepted.
type Session struct {
	UID      string
	Username string
	Role     domain.Role

	// Maintenance holds the flag as read at login. Non-admin sessions
	// are blocked while it is set; admins bypass unconditionally.
	Maintenance domain.MaintenanceFlag

	logger *slog.Logger
}

// New builds a session from a hydrated user record.
func New(rec domain.UserRecord, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	role := rec.Role
	if !role.Valid() {
		role = domain.RoleMember
	}
	return &Session{
		UID:      rec.UID,
		Username: rec.Username,
		Role:     role,
		logger:   logger,
	}
}

// Can reports whether the session's role grants the capability. This
// is a UI gate, not a trust boundary: real enforcement has to live on
// the record service.
func (s *Session) Can(c domain.Capability) bool {
	return s.Role.Has(c)
}

// CheckMaintenance reads the maintenance flag once and stores it on
// the session. A read failure leaves the flag clear: an unreachable
// flag must not lock users out.
func (s *Session) CheckMaintenance(ctx context.Context, records domain.RecordService) {
	if records == nil {
		return
	}
	flag, err := records.GetMaintenance(ctx)
	if err != nil {
		s.logger.Warn("failed to read maintenance flag", "error", err)
		return
	}
	s.Maintenance = *flag
}

// Blocked reports whether the session is locked behind the maintenance
// notice.
func (s *Session) Blocked() bool {
	return s.Maintenance.IsMaintenance && s.Role != domain.RoleAdmin
}
