package generator

import (
	"context"
	"strings"
	"time"

	"codeberg.org/wexar/server/internal/llm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// represents a single conversation turn
type Message struct {
	Role    string `json:"role"`    // "user", "assistant" or "system"
	Content string `json:"content"` // message content
}

// a generation request is either a CreateRequest or an EditRequest.
// the set is closed: only this package can add variants.
type Request interface {
	base() Base
}

// fields shared by both request variants
type Base struct {
	ID      string // request identifier, used for the cache key and logs
	Prompt  string
	History []Message
}

func (b Base) base() Base { return b }

// asks for a brand new site
type CreateRequest struct {
	Base
}

// asks for changes to an existing site
type EditRequest struct {
	Base
	CurrentCode string
}

// picks the request variant from the presence of current code
func NewRequest(id, prompt, currentCode string, history []Message) Request {
	b := Base{ID: id, Prompt: prompt, History: history}

	if strings.TrimSpace(currentCode) != "" {
		return EditRequest{Base: b, CurrentCode: currentCode}
	}

	return CreateRequest{Base: b}
}

func isEdit(req Request) bool {
	_, ok := req.(EditRequest)
	return ok
}

// the conversational result returned to callers and stored in the cache
type Result struct {
	Code           string `json:"code"`
	Explanation    string `json:"explanation"`
	Conversational bool   `json:"conversational"`
}

// code and explanation pulled out of raw model text
type Extracted struct {
	Code        string
	Explanation string
}

type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// memoizes results by key. implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, value Result, ttl time.Duration) error
}

// the generator's view of the upstream client
type Completer = llm.ChatCompleter

type Config struct {
	Model            string
	MaxRetries       int
	AttemptTimeout   time.Duration
	BackoffBase      time.Duration
	CacheTTL         time.Duration
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

type Generator struct {
	client Completer
	cache  Cache
	config Config

	// waits between attempts; replaced in tests
	sleep func(ctx context.Context, d time.Duration) error
}
