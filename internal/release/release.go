// Package release looks up the latest published ffmpeg build so the
// tools menu can tell the user whether their install is behind.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"convenient-cf/pkg/models"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a robust HTTP client with retries.
func NewClient(endpoint string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil // Silence default debug logger

	return &Client{
		endpoint:   endpoint,
		httpClient: retryClient.StandardClient(),
	}
}

// Latest fetches the most recent ffmpeg release record.
func (c *Client) Latest(ctx context.Context) (models.ReleaseInfo, error) {
	var info models.ReleaseInfo

	url := fmt.Sprintf("%s/version/latest", c.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return info, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return info, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("release API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, fmt.Errorf("failed to decode response: %w", err)
	}
	if info.Version == "" {
		return info, fmt.Errorf("release API response missing version")
	}
	return info, nil
}
