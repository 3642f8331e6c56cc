package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/avigneron/dexterm/internal/domain"
)

// Bucket names
var (
	bucketCollection = []byte("collection")
	bucketCatalog    = []byte("catalog")
	bucketPrefs      = []byte("prefs")
)

// Keys carried over from the web app's localStorage so an exported
// browser profile maps 1:1 onto the local store.
const (
	keyCollection  = "pokemonChallenge"
	keyCatalog     = "pokemonListFR"
	keyGridSize    = "gridSize"
	keyDarkMode    = "darkMode"
	keyMaintenance = "maintenanceMode"
)

// collectionDoc mirrors the localStorage fallback document shape.
type collectionDoc struct {
	CapturedPokemon []int  `json:"capturedPokemon"`
	CurrentFilter   string `json:"currentFilter,omitempty"`
	LastSaved       string `json:"lastSaved"`
}

// LocalStore implements domain.Store using BoltDB.
type LocalStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewLocalStore opens (or creates) the store under dataDir. An empty
// dataDir yields a memory-only store with no persistence.
func NewLocalStore(dataDir string) (*LocalStore, error) {
	if dataDir == "" {
		return &LocalStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "dexterm.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketCollection, bucketCatalog, bucketPrefs} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *LocalStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *LocalStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *LocalStore) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Collection fallback ===

func (s *LocalStore) GetCollection() ([]int, time.Time, bool) {
	var doc collectionDoc
	if !s.get(bucketCollection, keyCollection, &doc) {
		return nil, time.Time{}, false
	}
	lastSaved, _ := time.Parse(time.RFC3339, doc.LastSaved)
	return doc.CapturedPokemon, lastSaved, true
}

func (s *LocalStore) SaveCollection(captured []int, filter domain.Filter) error {
	if captured == nil {
		captured = []int{}
	}
	return s.set(bucketCollection, keyCollection, collectionDoc{
		CapturedPokemon: captured,
		CurrentFilter:   filter.String(),
		LastSaved:       time.Now().UTC().Format(time.RFC3339),
	})
}

// === Catalog cache ===

func (s *LocalStore) GetCatalog() ([]domain.CatalogEntry, bool) {
	var entries []domain.CatalogEntry
	ok := s.get(bucketCatalog, keyCatalog, &entries)
	return entries, ok && len(entries) > 0
}

func (s *LocalStore) SaveCatalog(entries []domain.CatalogEntry) error {
	return s.set(bucketCatalog, keyCatalog, entries)
}

func (s *LocalStore) InvalidateCatalog() {
	s.delete(bucketCatalog, keyCatalog)
}

// === Preferences ===

func (s *LocalStore) GetGridSize() (int, bool) {
	var size int
	ok := s.get(bucketPrefs, keyGridSize, &size)
	return size, ok
}

func (s *LocalStore) SaveGridSize(size int) error {
	return s.set(bucketPrefs, keyGridSize, size)
}

func (s *LocalStore) GetDarkMode() (bool, bool) {
	var on bool
	ok := s.get(bucketPrefs, keyDarkMode, &on)
	return on, ok
}

func (s *LocalStore) SaveDarkMode(on bool) error {
	return s.set(bucketPrefs, keyDarkMode, on)
}

func (s *LocalStore) GetMaintenanceSeen() (bool, bool) {
	var on bool
	ok := s.get(bucketPrefs, keyMaintenance, &on)
	return on, ok
}

func (s *LocalStore) SaveMaintenanceSeen(on bool) error {
	return s.set(bucketPrefs, keyMaintenance, on)
}
