package oracle

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// Config holds the OpenAI-compatible provider settings.
type Config struct {
	BaseURL      string
	APIKey       string
	Model        string
	MaxRetries   int
	RetryBackoff time.Duration
	Timeout      time.Duration
}

// Client implements Oracle over the chat completions API of any
// OpenAI-compatible provider.
type Client struct {
	api *openai.Client
	cfg Config
}

// NewClient builds a client, applying defaults for unset values.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api: openai.NewClientWithConfig(clientConfig),
		cfg: cfg,
	}
}

// Generate renders the prompt for req and runs one chat completion, retrying
// transient provider errors with exponential backoff. Whitespace-only
// completions are reported as ErrEmptyCompletion so callers treat them like
// any other failure.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	spec, ok := promptSpecs[req.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	completion := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: spec.temperature,
		MaxTokens:   spec.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: spec.system},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(req)},
		},
	}

	var text string
	err := c.doWithRetry(ctx, string(req.Kind), func() error {
		resp, err := c.api.CreateChatCompletion(ctx, completion)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return ErrEmptyCompletion
		}
		text = strings.TrimSpace(resp.Choices[0].Message.Content)
		if text == "" {
			return ErrEmptyCompletion
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("oracle: %s completion: %w", req.Kind, err)
	}
	return text, nil
}

// doWithRetry executes fn up to MaxRetries times with exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, kind string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < c.cfg.MaxRetries-1 {
				wait := c.cfg.RetryBackoff << attempt
				log.Debug().
					Str("kind", kind).
					Int("attempt", attempt+1).
					Dur("wait", wait).
					Err(err).
					Msg("oracle request failed, retrying")
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}
