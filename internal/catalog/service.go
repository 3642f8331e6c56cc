package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avigneron/dexterm/internal/domain"
)

// Service resolves the ordered catalog entry list, preferring the
// local cache over the remote source. The remote fetch is a one-time
// bulk operation; its result is cached for subsequent runs.
type Service struct {
	store  domain.Store
	source domain.CatalogSource
	logger *slog.Logger
}

// NewService creates a catalog service. source may be nil to force
// cache-only operation (tests, offline mode).
func NewService(store domain.Store, source domain.CatalogSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, source: source, logger: logger}
}

// Entries returns the full ordered catalog: cache hit if present,
// otherwise a remote bulk fetch whose result is cached.
func (s *Service) Entries(ctx context.Context) ([]domain.CatalogEntry, error) {
	if entries, ok := s.store.GetCatalog(); ok {
		s.logger.Debug("catalog served from cache", "entries", len(entries))
		return entries, nil
	}

	if s.source == nil {
		return nil, domain.ErrCatalogUnavailable
	}

	entries, err := s.source.FetchEntries(ctx, domain.TotalEntries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	if err := s.store.SaveCatalog(entries); err != nil {
		// Cache write failure degrades to refetch-next-run.
		s.logger.Warn("failed to cache catalog", "error", err)
	}
	return entries, nil
}

// Refresh drops the cached catalog so the next Entries call refetches.
func (s *Service) Refresh() {
	s.store.InvalidateCatalog()
}
