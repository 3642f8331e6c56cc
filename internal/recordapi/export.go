package recordapi

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// exportDoc is the downloadable export format.
type exportDoc struct {
	ExportDate time.Time    `json:"exportDate"`
	TotalUsers int          `json:"totalUsers"`
	Users      []exportUser `json:"users"`
}

// exportUser flattens a user record; timestamps are nullable so a
// record that never saved exports as null, not the zero time.
type exportUser struct {
	UID             string  `json:"uid"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	CapturedPokemon []int   `json:"capturedPokemon"`
	CurrentFilter   string  `json:"currentFilter"`
	LastSaved       *string `json:"lastSaved"`
	CreatedAt       *string `json:"createdAt"`
}

func isoOrNull(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// ExportAll snapshots every user record into a JSON file at path and
// returns the number of exported users.
func (c *Client) ExportAll(ctx context.Context, path string) (int, error) {
	recs, err := c.ListRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list records for export: %w", err)
	}

	doc := exportDoc{
		ExportDate: time.Now().UTC(),
		TotalUsers: len(recs),
		Users:      make([]exportUser, len(recs)),
	}
	for i, rec := range recs {
		captured := rec.CapturedPokemon
		if captured == nil {
			captured = []int{}
		}
		doc.Users[i] = exportUser{
			UID:             rec.UID,
			Username:        rec.Username,
			Email:           rec.Email,
			Role:            string(rec.Role),
			CapturedPokemon: captured,
			CurrentFilter:   rec.CurrentFilter,
			LastSaved:       isoOrNull(rec.LastSaved),
			CreatedAt:       isoOrNull(rec.CreatedAt),
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write export file: %w", err)
	}

	c.logger.Info("exported user data", "users", len(recs), "path", path)
	return len(recs), nil
}
