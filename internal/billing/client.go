package billing

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
)

// DefaultTimeout is the maximum time to wait for the billing service.
const DefaultTimeout = 10 * time.Second

// Client charges users through the billing service's HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a billing client. A zero timeout selects DefaultTimeout.
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

type chargeRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int    `json:"amount_cents"`
	Reason      string `json:"reason"`
}

type chargeResponse struct {
	Status string `json:"status"`
}

// Charge posts a one-off charge and maps the service's status to a Result.
// A "declined" status is a successful call with a negative answer, not an
// error; errors mean the charge state is unknown.
func (c *Client) Charge(ctx context.Context, userID string, amountCents int) (Result, error) {
	endpoint, err := buildURL(c.baseURL, "v1", "charges")
	if err != nil {
		return "", fmt.Errorf("billing: build URL: %w", err)
	}

	payload, err := json.Marshal(chargeRequest{
		UserID:      userID,
		AmountCents: amountCents,
		Reason:      "content_regeneration",
	})
	if err != nil {
		return "", fmt.Errorf("billing: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("billing: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("billing: call service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("billing: read response: %w", err)
	}

	// 402 is the service's well-formed "card said no".
	if resp.StatusCode == http.StatusPaymentRequired {
		return ResultDeclined, nil
	}
	if resp.StatusCode != http.StatusOK {
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("billing service returned error")
		return "", fmt.Errorf("billing: service returned status %d", resp.StatusCode)
	}

	var decoded chargeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("billing: parse response: %w", err)
	}
	switch Result(decoded.Status) {
	case ResultApproved:
		return ResultApproved, nil
	case ResultDeclined:
		return ResultDeclined, nil
	default:
		return "", fmt.Errorf("billing: unknown charge status %q", decoded.Status)
	}
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
