package domain

import (
	"fmt"
	"time"
)

// TotalEntries is the size of the national catalog. Entry numbers are
// dense: every number in [1, TotalEntries] names exactly one entry.
const TotalEntries = 1025

// CatalogEntry is one Pokédex entry. The number is its own 1-based
// index into the ordered catalog; entries are immutable once loaded.
type CatalogEntry struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Code returns the zero-padded display code (e.g. "#025").
func (e CatalogEntry) Code() string {
	return fmt.Sprintf("#%03d", e.Number)
}

// ArtworkURL builds the official artwork URL for the entry against the
// fixed asset host. Callers fetch it themselves; a failed load degrades
// to a text-only card.
func (e CatalogEntry) ArtworkURL() string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png", e.Number)
}

// UserRecord is the per-user document held by the remote record
// service. Reads and writes are whole-document merges; there is no
// field-level transaction or version check (last write wins).
type UserRecord struct {
	UID             string    `json:"uid"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	CapturedPokemon []int     `json:"capturedPokemon"`
	CurrentFilter   string    `json:"currentFilter"`
	LastSaved       time.Time `json:"lastSaved"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MaintenanceFlag is the process-wide maintenance toggle shared by all
// sessions. It is read once per login; when set, non-admin sessions are
// blocked behind a maintenance notice.
type MaintenanceFlag struct {
	IsMaintenance bool      `json:"isMaintenance"`
	UpdatedBy     string    `json:"updatedBy"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CollectionStats are pure derivations of the capture set against the
// catalog size.
type CollectionStats struct {
	Count      int
	Percentage int // rounded to nearest, not floored
	Remaining  int
}
