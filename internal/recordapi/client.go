package recordapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avigneron/dexterm/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxRetries     = 3
	baseRetryDelay = 500 * time.Millisecond
)

// Client talks to the remote user-record document service. Documents
// are read and written whole; the service keeps no version token, so
// concurrent sessions clobber each other last-write-wins.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a record service client.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated request with retry on 5xx
// server errors. 401 responses map to ErrAuthFailed and are never
// retried.
func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var bodyBytes []byte
	if payload != nil {
		var err error
		bodyBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	reqURL := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(1<<(attempt-1)) // 500ms, 1s, 2s
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var body io.Reader
		if bodyBytes != nil {
			body = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if bodyBytes != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Error("record service request failed", "error", err)
			return nil, domain.ErrServerOffline
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, domain.ErrAuthFailed
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrRecordNotFound
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: %d - %s", resp.StatusCode, string(respBody))
			c.logger.Warn("record service server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"path", path,
			)
			continue
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("request rejected: %d - %s", resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// GetRecord fetches the user's document.
func (c *Client) GetRecord(ctx context.Context, uid string) (*domain.UserRecord, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/users/"+uid, nil)
	if err != nil {
		return nil, err
	}
	var rec domain.UserRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse user record: %w", err)
	}
	rec.UID = uid
	return &rec, nil
}

// SaveRecord writes the user's document whole (merge on the service
// side, no field-level transaction).
func (c *Client) SaveRecord(ctx context.Context, rec *domain.UserRecord) error {
	_, err := c.doRequest(ctx, http.MethodPut, "/users/"+rec.UID, rec)
	return err
}

// ListRecords fetches a snapshot of every user record. The admin panel
// filters this client-side; there is no server-side query.
func (c *Client) ListRecords(ctx context.Context) ([]domain.UserRecord, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	var recs []domain.UserRecord
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("failed to parse user list: %w", err)
	}
	return recs, nil
}

// SetRole reassigns a user's role.
func (c *Client) SetRole(ctx context.Context, uid string, role domain.Role) error {
	payload := map[string]string{"role": string(role)}
	_, err := c.doRequest(ctx, http.MethodPut, "/users/"+uid+"/role", payload)
	return err
}

// ResetProgress clears a user's captured set.
func (c *Client) ResetProgress(ctx context.Context, uid string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/users/"+uid+"/reset", nil)
	return err
}

// GetMaintenance reads the process-wide maintenance flag.
func (c *Client) GetMaintenance(ctx context.Context) (*domain.MaintenanceFlag, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/system/maintenance", nil)
	if err != nil {
		return nil, err
	}
	var flag domain.MaintenanceFlag
	if err := json.Unmarshal(body, &flag); err != nil {
		return nil, fmt.Errorf("failed to parse maintenance flag: %w", err)
	}
	return &flag, nil
}

// SetMaintenance writes the maintenance flag.
func (c *Client) SetMaintenance(ctx context.Context, flag domain.MaintenanceFlag) error {
	_, err := c.doRequest(ctx, http.MethodPut, "/system/maintenance", flag)
	return err
}
