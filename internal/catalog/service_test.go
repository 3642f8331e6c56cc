package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avigneron/dexterm/internal/domain"
)

// memStore is a minimal in-memory domain.Store for catalog tests.
type memStore struct {
	catalog []domain.CatalogEntry
	saves   int
}

func (m *memStore) GetCollection() ([]int, time.Time, bool)            { return nil, time.Time{}, false }
func (m *memStore) SaveCollection([]int, domain.Filter) error          { return nil }
func (m *memStore) GetCatalog() ([]domain.CatalogEntry, bool)          { return m.catalog, m.catalog != nil }
func (m *memStore) SaveCatalog(entries []domain.CatalogEntry) error    { m.catalog = entries; m.saves++; return nil }
func (m *memStore) GetGridSize() (int, bool)                           { return 0, false }
func (m *memStore) SaveGridSize(int) error                             { return nil }
func (m *memStore) GetDarkMode() (bool, bool)                          { return false, false }
func (m *memStore) SaveDarkMode(bool) error                            { return nil }
func (m *memStore) GetMaintenanceSeen() (bool, bool)                   { return false, false }
func (m *memStore) SaveMaintenanceSeen(bool) error                     { return nil }
func (m *memStore) InvalidateCatalog()                                 { m.catalog = nil }
func (m *memStore) Close() error                                       { return nil }

type fakeSource struct {
	entries []domain.CatalogEntry
	err     error
	calls   int
}

func (f *fakeSource) FetchEntries(context.Context, int) ([]domain.CatalogEntry, error) {
	f.calls++
	return f.entries, f.err
}

func TestEntriesPrefersCache(t *testing.T) {
	cached := []domain.CatalogEntry{{Number: 1, Name: "Bulbizarre"}}
	src := &fakeSource{}
	svc := NewService(&memStore{catalog: cached}, src, nil)

	entries, err := svc.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "Bulbizarre" {
		t.Errorf("entries = %v, want cached list", entries)
	}
	if src.calls != 0 {
		t.Error("cache hit must not touch the remote source")
	}
}

func TestEntriesFetchesAndCachesOnMiss(t *testing.T) {
	fetched := []domain.CatalogEntry{{Number: 1, Name: "Bulbizarre"}, {Number: 2, Name: "Herbizarre"}}
	store := &memStore{}
	src := &fakeSource{entries: fetched}
	svc := NewService(store, src, nil)

	entries, err := svc.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %v", entries)
	}
	if store.saves != 1 {
		t.Error("fetched catalog should be cached")
	}

	// Second call hits the cache.
	if _, err := svc.Entries(context.Background()); err != nil {
		t.Fatal(err)
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
}

func TestEntriesUnavailable(t *testing.T) {
	src := &fakeSource{err: errors.New("network down")}
	svc := NewService(&memStore{}, src, nil)

	if _, err := svc.Entries(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestEntriesNilSource(t *testing.T) {
	svc := NewService(&memStore{}, nil, nil)
	if _, err := svc.Entries(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("error = %v, want ErrCatalogUnavailable", err)
	}
}
