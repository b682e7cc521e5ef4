// YouTube Data API v3 client
//
// Request/response shapes based on https://developers.google.com/youtube/v3/docs
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// maxBatchIDs is the channels.list batch limit: at most 50 comma-joined ids
// per enrichment request.
const maxBatchIDs = 50

// Client performs authenticated calls against the YouTube Data API.
//
// All requests share a client-side rate limiter so a large subscription
// collection cannot burst the API quota.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a YouTube API client. An empty baseURL selects the
// production API; tests point it at an httptest server.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
	}
}

// SetToken attaches the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// apiError mirrors the error envelope the Data API returns on non-2xx.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// doRequest performs an authenticated request and decodes the JSON response
// into result when non-nil.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, result any) error {
	if c.token == "" {
		return fmt.Errorf("not authenticated: call SetToken first")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp apiError
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
