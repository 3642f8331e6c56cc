package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avigneron/dexterm/internal/catalog"
	"github.com/avigneron/dexterm/internal/collection"
	"github.com/avigneron/dexterm/internal/domain"
	"github.com/avigneron/dexterm/internal/session"
)

// fakeRecords is an in-memory RecordService. Persist commands run on
// their own goroutines, so the save counter is mutex-guarded.
type fakeRecords struct {
	mu    sync.Mutex
	recs  map[string]domain.UserRecord
	saves int
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{recs: make(map[string]domain.UserRecord)}
}

func (f *fakeRecords) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func (f *fakeRecords) GetRecord(_ context.Context, uid string) (*domain.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[uid]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &rec, nil
}

func (f *fakeRecords) SaveRecord(_ context.Context, rec *domain.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
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

// fakeStore is an in-memory local store.
type fakeStore struct {
	captured []int
	seen     bool
	seenSet  bool
}

func (f *fakeStore) GetCollection() ([]int, time.Time, bool) { return nil, time.Time{}, false }
func (f *fakeStore) SaveCollection(captured []int, _ domain.Filter) error {
	f.captured = captured
	return nil
}
func (f *fakeStore) GetCatalog() ([]domain.CatalogEntry, bool) { return nil, false }
func (f *fakeStore) SaveCatalog([]domain.CatalogEntry) error   { return nil }
func (f *fakeStore) GetGridSize() (int, bool)                  { return 0, false }
func (f *fakeStore) SaveGridSize(int) error                    { return nil }
func (f *fakeStore) GetDarkMode() (bool, bool)                 { return false, false }
func (f *fakeStore) SaveDarkMode(bool) error                   { return nil }
func (f *fakeStore) GetMaintenanceSeen() (bool, bool)          { return f.seen, f.seenSet }
func (f *fakeStore) SaveMaintenanceSeen(on bool) error {
	f.seen = on
	f.seenSet = true
	return nil
}
func (f *fakeStore) InvalidateCatalog() {}
func (f *fakeStore) Close() error       { return nil }

func testCatalog() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{Number: 1, Name: "Bulbizarre"},
		{Number: 2, Name: "Herbizarre"},
		{Number: 3, Name: "Florizarre"},
		{Number: 25, Name: "Pikachu"},
		{Number: 26, Name: "Raichu"},
	}
}

func newTestModel(role domain.Role) (Model, *fakeRecords, *fakeStore) {
	records := newFakeRecords()
	st := &fakeStore{}

	catalogSvc := catalog.NewService(st, nil, nil)
	collectionSvc := collection.NewService(records, st, domain.TotalEntries, nil)
	sess := session.New(domain.UserRecord{UID: "u1", Username: "sacha", Role: role}, nil)
	admin := session.NewAdmin(sess, records, nil)

	m := NewModel(catalogSvc, collectionSvc, sess, admin, records, st, nil)
	m.Ready = true
	m.State = StateBrowsing
	m.entries = testCatalog()
	m.Searcher.SetEntries(m.entries)
	m.catalogReady = true
	m.recordReady = true
	m.refreshGrid()
	return m, records, st
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// waitForPersist runs every command in a batch and blocks until one of
// them reports a completed save.
func waitForPersist(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch command")
	}

	done := make(chan tea.Msg, len(batch))
	for _, c := range batch {
		c := c
		go func() { done <- c() }()
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-done:
			if _, ok := msg.(PersistedMsg); ok {
				return
			}
		case <-deadline:
			t.Fatal("no save completed")
		}
	}
}

func TestSweepPersistsWithoutMutations(t *testing.T) {
	m, records, _ := newTestModel(domain.RoleMember)

	// No toggle happened: the sweep still has to write, it is the
	// backup for immediate saves that went wrong silently.
	_, cmd := m.Update(SweepTickMsg{})
	waitForPersist(t, cmd)

	if records.saveCount() != 1 {
		t.Errorf("saves after sweep = %d, want 1", records.saveCount())
	}
}

func TestSearchEnterRunsImmediateMatch(t *testing.T) {
	m, _, _ := newTestModel(domain.RoleMember)

	updated, _ := m.Update(keyRunes("/"))
	m = updated.(Model)
	if m.State != StateSearching {
		t.Fatalf("state = %v, want searching", m.State)
	}

	updated, _ = m.Update(keyRunes("pika"))
	m = updated.(Model)

	// Enter with the cursor unset must not wait out the debounce.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	results := m.SearchBar.Results()
	if len(results) != 1 || results[0].Entry.Number != 25 {
		t.Fatalf("results after enter = %v, want Pikachu", results)
	}
}

func TestSearchEnterDropsStaleDebounce(t *testing.T) {
	m, _, _ := newTestModel(domain.RoleMember)

	updated, _ := m.Update(keyRunes("/"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("pika"))
	m = updated.(Model)
	staleSeq := m.searchSeq

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.searchSeq == staleSeq {
		t.Error("explicit submit should invalidate the armed debounce tick")
	}

	// The late tick for the pre-submit keystroke changes nothing.
	before := len(m.SearchBar.Results())
	updated, _ = m.Update(SearchDebounceMsg{Seq: staleSeq})
	m = updated.(Model)
	if len(m.SearchBar.Results()) != before {
		t.Error("stale debounce tick should be dropped")
	}
}

func TestResetCollectionConfirmFlow(t *testing.T) {
	m, records, _ := newTestModel(domain.RoleMember)
	m.CollectionSvc.Toggle(1)
	m.CollectionSvc.Toggle(25)

	updated, _ := m.Update(keyRunes("r"))
	m = updated.(Model)
	if m.State != StateConfirm {
		t.Fatalf("state = %v, want confirm", m.State)
	}
	if m.CollectionSvc.Count() != 2 {
		t.Fatal("nothing may be cleared before the confirmation")
	}

	updated, cmd := m.Update(keyRunes("y"))
	m = updated.(Model)
	if m.State != StateBrowsing {
		t.Errorf("state = %v, want browsing", m.State)
	}
	if m.CollectionSvc.Count() != 0 {
		t.Errorf("count = %d after reset, want 0", m.CollectionSvc.Count())
	}

	waitForPersist(t, cmd)
	if records.saveCount() != 1 {
		t.Errorf("saves after reset = %d, want 1", records.saveCount())
	}
}

func TestResetCollectionDenied(t *testing.T) {
	m, _, _ := newTestModel(domain.RoleMember)
	m.CollectionSvc.Toggle(1)

	updated, _ := m.Update(keyRunes("r"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("n"))
	m = updated.(Model)

	if m.State != StateBrowsing {
		t.Errorf("state = %v, want browsing", m.State)
	}
	if m.CollectionSvc.Count() != 1 {
		t.Error("declining the prompt must keep the collection")
	}
}

func TestMaintenanceCheckPersistsSeenState(t *testing.T) {
	m, _, st := newTestModel(domain.RoleMember)

	updated, _ := m.Update(MaintenanceCheckedMsg{Flag: domain.MaintenanceFlag{IsMaintenance: true}})
	m = updated.(Model)

	if m.State != StateMaintenance {
		t.Errorf("state = %v, want maintenance lockout for member", m.State)
	}
	if !st.seenSet || !st.seen {
		t.Error("last-seen maintenance state should be saved to the store")
	}
}

func TestMaintenanceEndNoticeForAdmin(t *testing.T) {
	m, _, st := newTestModel(domain.RoleAdmin)
	st.seen = true
	st.seenSet = true

	updated, _ := m.Update(MaintenanceCheckedMsg{Flag: domain.MaintenanceFlag{}})
	m = updated.(Model)

	if m.State != StateBrowsing {
		t.Errorf("state = %v, admin must keep browsing", m.State)
	}
	if m.StatusText != "Maintenance has ended" {
		t.Errorf("status = %q, want end-of-maintenance notice", m.StatusText)
	}
	if st.seen {
		t.Error("store should record that maintenance is off")
	}
}
