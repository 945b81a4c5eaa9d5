package sessions

import (
	"sync"
	"time"

	"codeberg.org/wexar/server/internal/generator"
)

// owner of sessions created without an identity
const AnonymousUser = "anonymous"

// a chat conversation about one generated site
type Session struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Title       string              `json:"title"`
	ProjectID   string              `json:"projectId,omitempty"`
	Messages    []generator.Message `json:"messages"`
	CurrentCode string              `json:"currentCode,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	ExpiresAt   time.Time           `json:"expiresAt"`
}

// listing view without messages and code
type Summary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ProjectID    string    `json:"projectId,omitempty"`
	MessageCount int       `json:"messageCount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// manages chat sessions in memory
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
	capacity int
	now      func() time.Time
	done     chan struct{}
	closed   bool
}
