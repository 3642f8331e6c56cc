package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avigneron/dexterm/internal/domain"
)

const (
	defaultTimeout = 60 * time.Second

	// batchSize caps concurrent species requests during the one-time
	// bulk fetch.
	batchSize = 50
)

// Client fetches entry names from the remote species API. It is only
// exercised when the local catalog cache is cold.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog API client. language selects the
// localized display name, falling back to the default name when the
// localization is missing.
func NewClient(baseURL, language string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// FetchEntries resolves names for entries 1..total in batches of
// batchSize concurrent requests. Per-item failures are logged and the
// entry keeps a numeric placeholder name; they never abort the batch.
func (c *Client) FetchEntries(ctx context.Context, total int) ([]domain.CatalogEntry, error) {
	entries := make([]domain.CatalogEntry, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchSize)

	for i := 0; i < total; i++ {
		number := i + 1
		g.Go(func() error {
			dto, err := c.fetchSpecies(ctx, number)
			if err != nil {
				c.logger.Warn("species fetch failed, using placeholder", "number", number, "error", err)
				entries[number-1] = domain.CatalogEntry{Number: number, Name: fmt.Sprintf("pokemon-%d", number)}
				return nil
			}
			entries[number-1] = mapSpecies(dto, number, c.language)
			return nil
		})
	}

	// Only context cancellation propagates; item errors were absorbed.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Info("catalog fetched", "entries", total, "language", c.language)
	return entries, nil
}

// fetchSpecies performs one species GET.
func (c *Client) fetchSpecies(ctx context.Context, number int) (*speciesDTO, error) {
	reqURL := fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var dto speciesDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse species %d: %w", number, err)
	}
	return &dto, nil
}
