// Package provider implements the external completion gateway: an
// OpenAI-compatible chat client with retry, timeout, and circuit breaker
// handling. Every error it returns is survivable; callers degrade to the
// locally composed fallback reply.
package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/rateflix/rateflix/internal/intent"
	"github.com/rateflix/rateflix/internal/profile"
)

const (
	defaultBaseURL = "https://api.deepseek.com/v1"
	defaultModel   = "deepseek-chat"
	defaultTimeout = 20 * time.Second
	maxTimeout     = 120 * time.Second

	temperature = 0.7
	maxTokens   = 700

	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond

	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// Settings configures one completion client.
type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
}

// NewClient creates a completion client. Zero-value settings fall back to
// the DeepSeek defaults; the timeout is clamped to two minutes.
func NewClient(s Settings) *Client {
	baseURL := strings.TrimRight(s.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(s.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if timeout > maxTimeout {
		timeout = maxTimeout
	}

	return &Client{
		apiKey:  strings.TrimSpace(s.APIKey),
		baseURL: baseURL,
		model:   model,
		timeout: timeout,
		// The per-request deadline is enforced via context; the transport
		// timeout is only a safety net above it.
		httpClient: &http.Client{Timeout: maxTimeout + 5*time.Second},
		breaker: gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:    "completion",
			Timeout: breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
		}),
	}
}

// Configured reports whether the client has an API key to authenticate with.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Complete runs one chat completion turn. The system prompt is always
// attached; the profile context system message only when the turn is
// media-related or asks for a recommendation. Returns ErrTimeout when the
// deadline wins the race, *ProviderError for structured non-2xx responses.
func (c *Client) Complete(ctx context.Context, history []ChatMessage, p profile.TasteProfile, signals intent.Signals) (string, error) {
	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: RoleSystem, Content: systemPrompt})
	if signals.IsMediaRelated || signals.AsksRecommendation {
		messages = append(messages, ChatMessage{
			Role:    RoleSystem,
			Content: "User taste profile:\n" + BuildProfileContext(p),
		})
	}
	messages = append(messages, history...)

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	return c.breaker.Execute(func() (string, error) {
		return c.completeWithRetry(ctx, body)
	})
}

// completeWithRetry retries HTTP 429 with exponential backoff; every other
// error is returned as is.
func (c *Client) completeWithRetry(ctx context.Context, body []byte) (string, error) {
	var lastErr error
	for attempt := range maxRetries {
		reply, err := c.doComplete(ctx, body)
		if err == nil {
			return reply, nil
		}

		var provErr *ProviderError
		if !errors.As(err, &provErr) || provErr.Status != http.StatusTooManyRequests {
			return "", err
		}

		lastErr = err
		if attempt < maxRetries-1 {
			backoff := time.Duration(float64(initialBackoff) * math.Pow(2, float64(attempt)))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return "", fmt.Errorf("rate limited after %d retries: %w", maxRetries, lastErr)
}

func (c *Client) doComplete(ctx context.Context, body []byte) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The deadline is authoritative: a response arriving after it is
		// discarded even when the transport would still deliver it.
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return "", fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
		}
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", parseErrorResponse(resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", &ProviderError{Status: resp.StatusCode, Detail: "response did not include a reply"}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// parseErrorResponse extracts the provider's error message, preferring the
// nested error.message field, then the flat message, then the status text.
func parseErrorResponse(resp *http.Response) error {
	detail := http.StatusText(resp.StatusCode)
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		var envelope errorResponse
		if json.Unmarshal(body, &envelope) == nil {
			switch {
			case envelope.Error.Message != "":
				detail = envelope.Error.Message
			case envelope.Message != "":
				detail = envelope.Message
			}
		}
	}
	return &ProviderError{Status: resp.StatusCode, Detail: detail}
}
