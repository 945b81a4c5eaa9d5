package sessions

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/wexar/server/internal/generator"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

func newTestManager(t *testing.T, ttl time.Duration, capacity int) (*Manager, *clock) {
	t.Helper()

	c := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newManager(ttl, capacity, c.now)
	t.Cleanup(func() { _ = m.Close() }) //nolint:errcheck // test cleanup

	return m, c
}

func TestManager_CreateAndGet(t *testing.T) {
	m, _ := newTestManager(t, time.Hour, 10)

	created, err := m.Create("user-1", "  Minha loja  ", "proj-1")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Minha loja", created.Title)
	assert.Equal(t, "proj-1", created.ProjectID)
	assert.Empty(t, created.Messages)

	got, err := m.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestManager_Defaults(t *testing.T) {
	m, _ := newTestManager(t, time.Hour, 10)

	s, err := m.Create("", "", "")
	require.NoError(t, err)

	assert.Equal(t, AnonymousUser, s.UserID)
	assert.Equal(t, defaultTitle, s.Title)
}

func TestManager_GetMissingAndExpired(t *testing.T) {
	m, c := newTestManager(t, time.Hour, 10)

	_, err := m.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	s, err := m.Create("user-1", "t", "")
	require.NoError(t, err)

	c.advance(time.Hour)

	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Zero(t, m.Count(), "expired session is dropped on access")
}

func TestManager_RecordTurn(t *testing.T) {
	m, c := newTestManager(t, time.Hour, 10)

	s, err := m.Create("user-1", "t", "")
	require.NoError(t, err)

	c.advance(30 * time.Minute)

	updated, err := m.RecordTurn(s.ID, "Crie um site", generator.Result{
		Code:        "<!DOCTYPE html><html></html>",
		Explanation: "Site criado!",
	})
	require.NoError(t, err)

	assert.Equal(t, []generator.Message{
		{Role: generator.RoleUser, Content: "Crie um site"},
		{Role: generator.RoleAssistant, Content: "Site criado!"},
	}, updated.Messages)
	assert.Equal(t, "<!DOCTYPE html><html></html>", updated.CurrentCode)
	assert.Equal(t, c.now().Add(time.Hour), updated.ExpiresAt, "activity extends the session")
}

func TestManager_ReturnsCopies(t *testing.T) {
	m, _ := newTestManager(t, time.Hour, 10)

	s, err := m.Create("user-1", "t", "")
	require.NoError(t, err)

	_, err = m.AddMessage(s.ID, generator.Message{Role: generator.RoleUser, Content: "oi"})
	require.NoError(t, err)

	got, err := m.Get(s.ID)
	require.NoError(t, err)

	got.Messages[0].Content = "changed"
	got.Title = "changed"

	again, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "oi", again.Messages[0].Content)
	assert.Equal(t, "t", again.Title)
}

func TestManager_ListByUser(t *testing.T) {
	m, c := newTestManager(t, time.Hour, 10)

	older, err := m.Create("user-1", "antiga", "")
	require.NoError(t, err)

	c.advance(time.Minute)

	newer, err := m.Create("user-1", "nova", "")
	require.NoError(t, err)

	_, err = m.Create("user-2", "outra", "")
	require.NoError(t, err)

	_, err = m.AddMessage(newer.ID, generator.Message{Role: generator.RoleUser, Content: "oi"})
	require.NoError(t, err)

	list := m.ListByUser("user-1")

	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, 1, list[0].MessageCount)
	assert.Equal(t, older.ID, list[1].ID)

	assert.Empty(t, m.ListByUser("user-3"))
}

func TestManager_Capacity(t *testing.T) {
	m, c := newTestManager(t, time.Hour, 2)

	_, err := m.Create("u", "a", "")
	require.NoError(t, err)
	_, err = m.Create("u", "b", "")
	require.NoError(t, err)

	_, err = m.Create("u", "c", "")
	assert.ErrorIs(t, err, ErrCapacityReached)

	c.advance(2 * time.Hour)

	_, err = m.Create("u", "d", "")
	assert.NoError(t, err, "expired sessions free up room")
	assert.Equal(t, 1, m.Count())
}

func TestManager_Delete(t *testing.T) {
	m, _ := newTestManager(t, time.Hour, 10)

	s, err := m.Create("u", "a", "")
	require.NoError(t, err)

	m.Delete(s.ID)

	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_CloseIsIdempotent(t *testing.T) {
	m := NewManager(0, 0)

	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}
