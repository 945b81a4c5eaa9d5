package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"

	// upstream pacing: 50 requests/second with burst capacity of 10
	defaultRateLimit = 50
	defaultRateBurst = 10

	// cap on error bodies kept in StatusError
	maxErrorBodyBytes = 4096
)

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string // full chat completions URL
	Model   string // used when a request leaves Model empty
	AppURL  string // sent as HTTP-Referer
	AppName string // sent as X-Title

	// optional overrides
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

type OpenRouterClient struct {
	config     OpenRouterConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// no client-level timeout: every attempt carries its own deadline through ctx
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

func NewOpenRouterClient(config OpenRouterConfig) *OpenRouterClient {
	if config.BaseURL == "" {
		config.BaseURL = defaultOpenRouterURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient()
	}

	limiter := config.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(defaultRateLimit, defaultRateBurst)
	}

	return &OpenRouterClient{
		config:     config,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

func (c *OpenRouterClient) Model() string {
	return c.config.Model
}

// sends one chat completion request. it never retries; classification and
// retries belong to the caller.
func (c *OpenRouterClient) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if c.config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if req.Model == "" {
		req.Model = c.config.Model
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	if c.config.AppURL != "" {
		httpReq.Header.Set("HTTP-Referer", c.config.AppURL)
	}

	if c.config.AppName != "" {
		httpReq.Header.Set("X-Title", c.config.AppName)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) //nolint:errcheck
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var apiResp completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := &ChatResponse{
		Model:         apiResp.Model,
		Usage:         apiResp.Usage,
		ProviderError: apiResp.Error,
	}

	if len(apiResp.Choices) > 0 {
		out.Content = apiResp.Choices[0].Message.Content

		if apiResp.Choices[0].Error != nil {
			out.ProviderError = apiResp.Choices[0].Error
		}
	}

	return out, nil
}
