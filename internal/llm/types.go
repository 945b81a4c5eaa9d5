package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
)

// returned before any network call when the client has no API key
var ErrMissingAPIKey = errors.New("OPENROUTER_API_KEY is not configured")

// performs a single chat completion against the upstream provider
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type Message struct {
	Role    string `json:"role"`    // "system", "user" or "assistant"
	Content string `json:"content"` // message content
}

// request body for the OpenAI-compatible chat completions endpoint
type ChatRequest struct {
	Model            string    `json:"model"`
	Messages         []Message `json:"messages"`
	Temperature      float64   `json:"temperature"`
	MaxTokens        int       `json:"max_tokens"`
	TopP             float64   `json:"top_p"`
	FrequencyPenalty float64   `json:"frequency_penalty"`
	PresencePenalty  float64   `json:"presence_penalty"`
}

// the parts of a completion the generator cares about.
// ProviderError is set when the provider embedded an error in a 2xx body.
type ChatResponse struct {
	Content       string
	ProviderError *ProviderError
	Model         string
	Usage         Usage
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// error object embedded in a choice by the provider
type ProviderError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error %s: %s", e.Code, e.Message)
	}

	return "provider error: " + e.Message
}

// provider error codes arrive as numbers or strings depending on the upstream
type ErrorCode string

func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("invalid error code %s: %w", data, err)
		}

		*c = ErrorCode(s)
		return nil
	}

	*c = ErrorCode(data)
	return nil
}

// numeric value of the code, if it has one
func (c ErrorCode) Int() (int, bool) {
	n, err := strconv.Atoi(string(c))
	if err != nil {
		return 0, false
	}

	return n, true
}

// non-2xx response from the upstream
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// raw wire format of a completion response
type completionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		Error *ProviderError `json:"error,omitempty"`
	} `json:"choices"`
	Usage Usage          `json:"usage"`
	Error *ProviderError `json:"error,omitempty"`
}
