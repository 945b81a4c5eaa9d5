package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/wexar/server/api/rest/generate"
	"codeberg.org/wexar/server/internal/auth"
	"codeberg.org/wexar/server/internal/errors"
	"codeberg.org/wexar/server/internal/generator"
)

const (
	DefaultEndpoint = "http://localhost:8080"

	// covers every upstream attempt plus backoff on the server side
	requestTimeout = 4 * time.Minute

	maxErrorBody = 4096
)

// creates a new generation REST client
func NewClient(endpoint, userID string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		userID:   userID,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.StatusCode, e.Code)
	}

	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// sends a generate request. history is the conversation before this prompt.
func (c *Client) Generate(ctx context.Context, prompt, currentCode string, history []generator.Message) (*generate.Response, error) {
	payload, err := json.Marshal(generate.Request{
		Prompt:              prompt,
		CurrentCode:         currentCode,
		ConversationHistory: history,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint + "/api/v1/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.userID != "" {
		req.Header.Set(auth.HeaderUserID, c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var result generate.Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

// returns a tea.Cmd that sends a generate request
func (c *Client) GenerateCmd(prompt, currentCode string, history []generator.Message) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := c.Generate(ctx, prompt, currentCode, history)
		if err != nil {
			return GenerateErrorMsg{prompt: prompt, err: err}
		}

		return GenerateResultMsg{
			prompt:      prompt,
			code:        resp.Code,
			explanation: resp.Explanation,
		}
	}
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck

	var envelope errors.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}
