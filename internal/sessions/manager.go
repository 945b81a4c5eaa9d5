package sessions

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeberg.org/wexar/server/internal/generator"
)

const (
	DefaultTTL      = 24 * time.Hour
	DefaultCapacity = 10000

	cleanupInterval = 5 * time.Minute
	defaultTitle    = "Nova conversa"
)

// returns a new session manager. callers must Close it.
func NewManager(ttl time.Duration, capacity int) *Manager {
	return newManager(ttl, capacity, time.Now)
}

func newManager(ttl time.Duration, capacity int, now func() time.Time) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		capacity: capacity,
		now:      now,
		done:     make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

// creates a new session owned by userID
func (m *Manager) Create(userID, title, projectID string) (*Session, error) {
	if userID == "" {
		userID = AnonymousUser
	}

	if title = strings.TrimSpace(title); title == "" {
		title = defaultTitle
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	if len(m.sessions) >= m.capacity {
		m.removeExpired(now)

		if len(m.sessions) >= m.capacity {
			return nil, ErrCapacityReached
		}
	}

	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		ProjectID: projectID,
		Messages:  []generator.Message{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.sessions[session.ID] = session

	return session.clone(), nil
}

// retrieves a copy of a session by ID
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.live(sessionID)
	if err != nil {
		return nil, err
	}

	return session.clone(), nil
}

// lists a user's live sessions, most recently updated first
func (m *Manager) ListByUser(userID string) []Summary {
	if userID == "" {
		userID = AnonymousUser
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	out := []Summary{}

	for _, s := range m.sessions {
		if s.UserID != userID || !now.Before(s.ExpiresAt) {
			continue
		}

		out = append(out, Summary{
			ID:           s.ID,
			Title:        s.Title,
			ProjectID:    s.ProjectID,
			MessageCount: len(s.Messages),
			UpdatedAt:    s.UpdatedAt,
		})
	}

	slices.SortFunc(out, func(a, b Summary) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return out
}

// appends a message and extends the session's lifetime
func (m *Manager) AddMessage(sessionID string, msg generator.Message) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.live(sessionID)
	if err != nil {
		return nil, err
	}

	session.Messages = append(session.Messages, msg)
	m.touch(session)

	return session.clone(), nil
}

// stores a completed generation turn: the prompt, the explanation
// as the assistant reply, and the code it produced
func (m *Manager) RecordTurn(sessionID, prompt string, result generator.Result) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.live(sessionID)
	if err != nil {
		return nil, err
	}

	session.Messages = append(session.Messages,
		generator.Message{Role: generator.RoleUser, Content: prompt},
		generator.Message{Role: generator.RoleAssistant, Content: result.Explanation},
	)
	session.CurrentCode = result.Code
	m.touch(session)

	return session.clone(), nil
}

// removes a session
func (m *Manager) Delete(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
}

// returns the number of stored sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// stops the cleanup goroutine
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)
	return nil
}

// caller holds the write lock; expired sessions are dropped on access
func (m *Manager) live(sessionID string) (*Session, error) {
	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	if !m.now().Before(session.ExpiresAt) {
		delete(m.sessions, sessionID)
		return nil, ErrSessionExpired
	}

	return session, nil
}

func (m *Manager) touch(session *Session) {
	now := m.now()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(m.ttl)
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.mu.Lock()
			m.removeExpired(m.now())
			m.mu.Unlock()
		}
	}
}

// caller holds the write lock
func (m *Manager) removeExpired(now time.Time) {
	for id, session := range m.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}

func (s *Session) clone() *Session {
	c := *s
	c.Messages = slices.Clone(s.Messages)

	return &c
}
