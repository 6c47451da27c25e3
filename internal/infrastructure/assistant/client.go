// Package assistant talks to an external recommendation service.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sareefinder/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultRPS         = 2.0
	defaultBurst       = 5
	defaultMaxAttempts = 3
	defaultBackoffBase = 500 * time.Millisecond
	maxErrorBodyBytes  = 1024
)

// ClientConfig holds configuration for the assistant client
type ClientConfig struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Logger            zerolog.Logger
}

// Client handles communication with the external recommendation service
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	maxAttempts int
	backoffBase time.Duration
	debug       bool
	logger      zerolog.Logger
}

// recommendRequest is the JSON body sent to the service
type recommendRequest struct {
	Query string `json:"query"`
}

// NewClient creates a new assistant API client
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
		logger:      cfg.Logger.With().Str("component", "assistant").Logger(),
	}
}

// SetDebug toggles logging of every request attempt
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retrying after the given attempt (1-based)
func exponentialBackoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base * time.Duration(1<<(attempt-1))
}

// Recommend asks the service for recommendations.
// Transport errors, 429 and 5xx responses are retried; other failures return immediately.
func (c *Client) Recommend(ctx context.Context, query string) (*domain.AssistantReply, error) {
	body, err := json.Marshal(recommendRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := c.baseURL + "/v1/recommendations"

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			wait := exponentialBackoff(c.backoffBase, attempt-1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		reply, retry, err := c.do(ctx, endpoint, body)
		if err == nil {
			if c.debug {
				c.logger.Debug().Int("attempt", attempt).Int("ids", len(reply.RecommendationIDs)).Msg("assistant replied")
			}
			return reply, nil
		}

		lastErr = err
		c.logger.Warn().Err(err).Int("attempt", attempt).Msg("assistant request failed")
		if !retry || ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

// do executes one attempt and reports whether a failure is worth retrying
func (c *Client) do(ctx context.Context, endpoint string, body []byte) (*domain.AssistantReply, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "SareeFinder/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", domain.ErrAssistantFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
		return nil, retry, fmt.Errorf("%w: status %d, body: %s", domain.ErrAssistantFailure, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var reply domain.AssistantReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, false, fmt.Errorf("%w: failed to decode response: %v", domain.ErrAssistantFailure, err)
	}

	return &reply, false, nil
}
