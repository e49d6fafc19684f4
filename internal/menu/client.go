package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const (
	// DefaultModel is the Gemini model used for menu extraction.
	DefaultModel = "gemini-2.5-flash"

	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint. Unlike
	// standard OpenAI providers there is no /v1 path prefix.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
)

// ErrMissingAPIKey marks configuration failures: no Gemini credential is
// present. Reported by NewClient before any network use.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// Config configures the Gemini client.
type Config struct {
	// APIKey is the Gemini API credential. Required.
	APIKey string

	// Model is the model identifier. Empty means DefaultModel.
	Model string

	// BaseURL overrides the API endpoint, mainly for tests.
	// Empty means DefaultBaseURL.
	BaseURL string
}

// Client talks to Gemini's OpenAI-compatible chat completions endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient validates the configuration and builds a client. A missing API
// key fails with ErrMissingAPIKey; nothing is sent over the network here.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

const (
	maxRetries     = 3
	baseRetryDelay = 2 * time.Second
)

// retryableStatusCode returns true for HTTP status codes that warrant a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable ||
		code == http.StatusGatewayTimeout
}

// Complete submits a prompt in JSON response mode and returns the model's
// raw message content. Transient failures (429, 5xx, network errors) are
// retried with exponential backoff, honoring Retry-After; everything else
// fails immediately with the cause preserved.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := c.cfg.BaseURL + "/chat/completions"

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(1<<(attempt-1))
			slog.Warn("retrying gemini request",
				"attempt", attempt,
				"delay", delay,
				"error", lastErr,
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = fmt.Errorf("gemini request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading gemini response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return decodeContent(respBody)
		}

		lastErr = fmt.Errorf("gemini api error %d: %s", resp.StatusCode, string(respBody))
		if !retryableStatusCode(resp.StatusCode) {
			return "", lastErr
		}

		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
				select {
				case <-time.After(time.Duration(seconds) * time.Second):
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}
		}
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func decodeContent(respBody []byte) (string, error) {
	var resp chatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decoding gemini response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gemini response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
