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

// AIClient talks to the SmartAI microservice. It is a black-box collaborator:
// callers treat it as a pure request/response dependency with fallback
// behavior on empty results.
type AIClient interface {
	GenerateSlug(ctx context.Context, input string) (string, error)
}

type smartAIClient struct {
	baseURL string
	client  *http.Client
}

// NewAIClient creates a SmartAI client. Calls are bounded by timeout.
func NewAIClient(baseURL string, timeout time.Duration) AIClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &smartAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type slugRequest struct {
	Input string `json:"input"`
}

type slugResponse struct {
	Slug string `json:"slug"`
}

// GenerateSlug asks SmartAI for a slug derived from input text
func (c *smartAIClient) GenerateSlug(ctx context.Context, input string) (string, error) {
	payload, err := json.Marshal(slugRequest{Input: input})
	if err != nil {
		return "", fmt.Errorf("smartai marshal: %w", err)
	}

	url := c.baseURL + "/api/smartai/generate-slug"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("smartai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("smartai http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("smartai read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("smartai API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result slugResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("smartai unmarshal: %w", err)
	}
	return result.Slug, nil
}
