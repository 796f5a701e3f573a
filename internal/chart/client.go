package chart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/novalune/go-astro-backend/internal/domain"
)

// DefaultTimeout is the maximum time to wait for the chart service.
const DefaultTimeout = 15 * time.Second

// Client calls the chart computation service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a chart service client. A zero timeout selects
// DefaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Compute posts the birth facts and returns the computed chart.
func (c *Client) Compute(ctx context.Context, req ComputeRequest) (*domain.ChartFacts, error) {
	endpoint, err := buildURL(c.baseURL, "v1", "charts")
	if err != nil {
		return nil, fmt.Errorf("chart: build URL: %w", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("chart: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("chart: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chart: call service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("chart: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("chart service returned error")
		return nil, fmt.Errorf("chart: service returned status %d", resp.StatusCode)
	}

	// Response format: { "chart": { "sun_sign": "...", ... } }
	var response struct {
		Chart domain.ChartFacts `json:"chart"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("chart: parse response: %w", err)
	}
	if response.Chart.SunSign == "" {
		return nil, fmt.Errorf("chart: response missing sun sign")
	}
	if response.Chart.ComputedAt.IsZero() {
		response.Chart.ComputedAt = time.Now().UTC()
	}
	return &response.Chart, nil
}

// buildURL constructs a URL by parsing the base and joining path segments.
func buildURL(baseURL string, pathSegments ...string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	segments := append([]string{u.Path}, pathSegments...)
	u.Path = path.Join(segments...)
	return u.String(), nil
}
