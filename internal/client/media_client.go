package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MediaClient talks to the SmartMedia microservice. Deletion is best-effort
// from the caller's point of view: failures are logged by the caller and
// never abort the primary operation.
type MediaClient interface {
	BulkDelete(ctx context.Context, mediaIDs []string) error
}

type smartMediaClient struct {
	baseURL string
	client  *http.Client
}

// NewMediaClient creates a SmartMedia client. Calls are bounded by timeout.
func NewMediaClient(baseURL string, timeout time.Duration) MediaClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &smartMediaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BulkDelete removes a batch of media assets in one call
func (c *smartMediaClient) BulkDelete(ctx context.Context, mediaIDs []string) error {
	if len(mediaIDs) == 0 {
		return nil
	}

	payload, err := json.Marshal(mediaIDs)
	if err != nil {
		return fmt.Errorf("smartmedia marshal: %w", err)
	}

	url := c.baseURL + "/api/media/bulk-delete"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("smartmedia request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("smartmedia http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("smartmedia API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}
