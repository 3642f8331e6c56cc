package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avigneron/dexterm/internal/domain"
)

// SweepInterval is the fixed backup-save cadence. Sweep saves run
// regardless of mutation activity and may race immediate per-toggle
// saves; the record service is last-write-wins, which is accepted.
const SweepInterval = 30 * time.Second

// Service owns the capture set and the active filter for the current
// session, and persists both to the record service with a local
// fallback. Mutations update in-memory state first; persistence is
// fire-and-forget from the UI's point of view (optimistic, no
// rollback on save failure).
type Service struct {
	mu     sync.RWMutex
	set    Set
	filter domain.Filter
	record domain.UserRecord

	records domain.RecordService
	store   domain.Store
	logger  *slog.Logger
	total   int
}

// NewService creates a collection service for a catalog of total
// entries. records may be nil for a purely local session.
func NewService(records domain.RecordService, store domain.Store, total int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		set:     make(Set),
		filter:  domain.FilterAll,
		records: records,
		store:   store,
		logger:  logger,
		total:   total,
	}
}

// Hydrate loads the session state for uid: the remote record when it
// exists, else the local fallback, else an empty collection. A missing
// remote record is not an error; the first save creates it.
func (s *Service) Hydrate(ctx context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = domain.UserRecord{UID: uid, Role: domain.RoleMember}

	if s.records != nil {
		rec, err := s.records.GetRecord(ctx, uid)
		switch {
		case err == nil:
			s.record = *rec
			s.set = NewSet(rec.CapturedPokemon)
			s.filter = domain.ParseFilter(rec.CurrentFilter)
			s.logger.Info("hydrated from record service", "uid", uid, "captured", s.set.Len())
			return nil
		case errors.Is(err, domain.ErrRecordNotFound):
			s.logger.Info("no remote record yet, starting fresh", "uid", uid)
			s.set = make(Set)
			s.filter = domain.FilterAll
			return nil
		default:
			s.logger.Warn("record service unavailable, trying local fallback", "error", err)
		}
	}

	if captured, lastSaved, ok := s.store.GetCollection(); ok {
		s.set = NewSet(captured)
		s.filter = domain.FilterAll
		s.logger.Info("hydrated from local fallback", "captured", s.set.Len(), "lastSaved", lastSaved)
		return nil
	}

	s.set = make(Set)
	s.filter = domain.FilterAll
	return nil
}

// Record returns a copy of the hydrated user record.
func (s *Service) Record() domain.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}

// Toggle flips the capture state of entry n and reports whether it is
// now captured. The removal confirmation lives in the UI: by the time
// Toggle runs the user has already confirmed.
func (s *Service) Toggle(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Toggle(n)
}

// Has reports whether entry n is captured.
func (s *Service) Has(n int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Has(n)
}

// Count returns the number of captured entries.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Len()
}

// Sorted returns the captured entry numbers ascending.
func (s *Service) Sorted() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Sorted()
}

// Filter returns the active view filter.
func (s *Service) Filter() domain.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter records the active view filter for persistence.
func (s *Service) SetFilter(f domain.Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Reset empties the collection. The UI confirms first.
func (s *Service) Reset() {
	s.mu.Lock()
	s.set = make(Set)
	s.mu.Unlock()
}

// Stats derives count/percentage/remaining for the current set.
func (s *Service) Stats() domain.CollectionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.set.Len(), s.total)
}

// Persist writes the full collection + filter to the record service;
// on failure it falls back to the local store and logs, returning an
// error only when both writes fail. Called after every mutation and by
// the periodic sweep.
func (s *Service) Persist(ctx context.Context) error {
	s.mu.Lock()
	s.record.CapturedPokemon = s.set.Sorted()
	s.record.CurrentFilter = s.filter.String()
	s.record.LastSaved = time.Now().UTC()
	rec := s.record
	filter := s.filter
	s.mu.Unlock()

	var remoteErr error
	if s.records != nil {
		remoteErr = s.records.SaveRecord(ctx, &rec)
		if remoteErr == nil {
			return nil
		}
		s.logger.Warn("remote save failed, writing local fallback", "error", remoteErr)
	}

	if err := s.store.SaveCollection(rec.CapturedPokemon, filter); err != nil {
		if remoteErr != nil {
			return fmt.Errorf("remote save failed (%v); local fallback failed: %w", remoteErr, err)
		}
		return fmt.Errorf("local save failed: %w", err)
	}
	return nil
}
