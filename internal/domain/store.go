package domain

import (
	"context"
	"time"
)

// Store is the local fallback store (bbolt + memory). It absorbs
// writes when the record service is unreachable and caches the catalog
// name list and UI preferences between runs.
type Store interface {
	// === Collection fallback ===
	GetCollection() (captured []int, lastSaved time.Time, ok bool)
	SaveCollection(captured []int, filter Filter) error

	// === Catalog cache ===
	GetCatalog() ([]CatalogEntry, bool)
	SaveCatalog(entries []CatalogEntry) error

	// === Preferences ===
	GetGridSize() (int, bool)
	SaveGridSize(size int) error
	GetDarkMode() (bool, bool)
	SaveDarkMode(on bool) error
	GetMaintenanceSeen() (bool, bool)
	SaveMaintenanceSeen(on bool) error

	InvalidateCatalog()
	Close() error
}

// RecordService is the remote per-user document store. Documents are
// read and written whole; concurrent writers clobber each other (no
// version token), which is an accepted limitation.
type RecordService interface {
	GetRecord(ctx context.Context, uid string) (*UserRecord, error)
	SaveRecord(ctx context.Context, rec *UserRecord) error

	// Admin surface. Callers gate these behind CapManageUsers; the
	// service itself enforces nothing.
	ListRecords(ctx context.Context) ([]UserRecord, error)
	SetRole(ctx context.Context, uid string, role Role) error
	ResetProgress(ctx context.Context, uid string) error

	GetMaintenance(ctx context.Context) (*MaintenanceFlag, error)
	SetMaintenance(ctx context.Context, flag MaintenanceFlag) error

	// ExportAll writes a snapshot of every record to a JSON file and
	// returns the exported user count.
	ExportAll(ctx context.Context, path string) (int, error)
}

// CatalogSource resolves the ordered entry name list from the remote
// species API. Implementations batch requests and tolerate per-item
// failures.
type CatalogSource interface {
	FetchEntries(ctx context.Context, total int) ([]CatalogEntry, error)
}
