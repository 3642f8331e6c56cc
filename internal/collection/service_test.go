package collection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avigneron/dexterm/internal/domain"
)

// fakeRecords is an in-memory RecordService for tests.
type fakeRecords struct {
	recs    map[string]domain.UserRecord
	failing bool
	saves   int
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{recs: make(map[string]domain.UserRecord)}
}

func (f *fakeRecords) GetRecord(_ context.Context, uid string) (*domain.UserRecord, error) {
	if f.failing {
		return nil, domain.ErrServerOffline
	}
	rec, ok := f.recs[uid]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &rec, nil
}

func (f *fakeRecords) SaveRecord(_ context.Context, rec *domain.UserRecord) error {
	if f.failing {
		return domain.ErrServerOffline
	}
	f.saves++
	f.recs[rec.UID] = *rec
	return nil
}

func (f *fakeRecords) ListRecords(context.Context) ([]domain.UserRecord, error) { return nil, nil }
func (f *fakeRecords) SetRole(context.Context, string, domain.Role) error      { return nil }
func (f *fakeRecords) ResetProgress(context.Context, string) error             { return nil }
func (f *fakeRecords) GetMaintenance(context.Context) (*domain.MaintenanceFlag, error) {
	return &domain.MaintenanceFlag{}, nil
}
func (f *fakeRecords) SetMaintenance(context.Context, domain.MaintenanceFlag) error { return nil }
func (f *fakeRecords) ExportAll(context.Context, string) (int, error)               { return 0, nil }

// fakeStore is an in-memory local fallback store.
type fakeStore struct {
	captured  []int
	saved     bool
	lastSaved time.Time
	failing   bool
}

func (f *fakeStore) GetCollection() ([]int, time.Time, bool) {
	if f.captured == nil {
		return nil, time.Time{}, false
	}
	return f.captured, f.lastSaved, true
}

func (f *fakeStore) SaveCollection(captured []int, _ domain.Filter) error {
	if f.failing {
		return errors.New("disk full")
	}
	f.captured = captured
	f.saved = true
	return nil
}

func (f *fakeStore) GetCatalog() ([]domain.CatalogEntry, bool)     { return nil, false }
func (f *fakeStore) SaveCatalog([]domain.CatalogEntry) error       { return nil }
func (f *fakeStore) GetGridSize() (int, bool)                      { return 0, false }
func (f *fakeStore) SaveGridSize(int) error                        { return nil }
func (f *fakeStore) GetDarkMode() (bool, bool)                     { return false, false }
func (f *fakeStore) SaveDarkMode(bool) error                       { return nil }
func (f *fakeStore) GetMaintenanceSeen() (bool, bool)              { return false, false }
func (f *fakeStore) SaveMaintenanceSeen(bool) error                { return nil }
func (f *fakeStore) InvalidateCatalog()                            {}
func (f *fakeStore) Close() error                                  { return nil }

func TestHydrateFromRemote(t *testing.T) {
	records := newFakeRecords()
	records.recs["u1"] = domain.UserRecord{
		UID:             "u1",
		Role:            domain.RoleTester,
		CapturedPokemon: []int{3, 1, 2},
		CurrentFilter:   "captured",
	}

	svc := NewService(records, &fakeStore{}, 1025, nil)
	if err := svc.Hydrate(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}

	if svc.Count() != 3 {
		t.Errorf("count = %d, want 3", svc.Count())
	}
	if svc.Filter() != domain.FilterCaptured {
		t.Errorf("filter = %v, want captured", svc.Filter())
	}
	if svc.Record().Role != domain.RoleTester {
		t.Errorf("role = %v, want tester", svc.Record().Role)
	}
}

func TestHydrateMissingRecordStartsFresh(t *testing.T) {
	svc := NewService(newFakeRecords(), &fakeStore{}, 1025, nil)
	if err := svc.Hydrate(context.Background(), "new-user"); err != nil {
		t.Fatal(err)
	}
	if svc.Count() != 0 {
		t.Errorf("count = %d, want 0", svc.Count())
	}
	if svc.Filter() != domain.FilterAll {
		t.Errorf("filter = %v, want all", svc.Filter())
	}
}

func TestHydrateFallsBackToLocal(t *testing.T) {
	records := newFakeRecords()
	records.failing = true
	store := &fakeStore{captured: []int{10, 20}, lastSaved: time.Now()}

	svc := NewService(records, store, 1025, nil)
	if err := svc.Hydrate(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}
	if svc.Count() != 2 {
		t.Errorf("count = %d, want 2 from local fallback", svc.Count())
	}
}

func TestPersistWritesRemote(t *testing.T) {
	records := newFakeRecords()
	svc := NewService(records, &fakeStore{}, 1025, nil)
	if err := svc.Hydrate(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}

	svc.Toggle(25)
	svc.SetFilter(domain.FilterCaptured)
	if err := svc.Persist(context.Background()); err != nil {
		t.Fatal(err)
	}

	rec := records.recs["u1"]
	if len(rec.CapturedPokemon) != 1 || rec.CapturedPokemon[0] != 25 {
		t.Errorf("persisted set = %v, want [25]", rec.CapturedPokemon)
	}
	if rec.CurrentFilter != "captured" {
		t.Errorf("persisted filter = %q, want captured", rec.CurrentFilter)
	}
	if rec.LastSaved.IsZero() {
		t.Error("LastSaved should be stamped")
	}
}

func TestPersistFallsBackOnRemoteFailure(t *testing.T) {
	records := newFakeRecords()
	records.failing = true
	store := &fakeStore{}

	svc := NewService(records, store, 1025, nil)
	svc.Toggle(7)

	// Remote down: fallback absorbs the write, not fatal.
	if err := svc.Persist(context.Background()); err != nil {
		t.Fatalf("Persist should degrade to local fallback, got %v", err)
	}
	if !store.saved {
		t.Error("fallback store should have been written")
	}
}

func TestPersistErrorsWhenBothFail(t *testing.T) {
	records := newFakeRecords()
	records.failing = true
	store := &fakeStore{failing: true}

	svc := NewService(records, store, 1025, nil)
	svc.Toggle(7)

	if err := svc.Persist(context.Background()); err == nil {
		t.Error("Persist should report failure when remote and fallback both fail")
	}
}

func TestResetEmptiesCollection(t *testing.T) {
	svc := NewService(newFakeRecords(), &fakeStore{}, 1025, nil)
	svc.Toggle(1)
	svc.Toggle(2)
	svc.Reset()
	if svc.Count() != 0 {
		t.Errorf("count = %d after reset, want 0", svc.Count())
	}
}

func TestCapturedRenderOrder(t *testing.T) {
	svc := NewService(newFakeRecords(), &fakeStore{}, 1025, nil)
	for _, n := range []int{3, 1, 2} {
		svc.Toggle(n)
	}
	got := svc.Sorted()
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted() = %v, want %v", got, want)
		}
	}
}
