package journal

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwrite/stillwrite-backend/internal/models"
)

// memKV is an in-memory KV for tests.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) ScanPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte)
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}

func newTestStore() (*Store, *memKV) {
	kv := newMemKV()
	s := NewStore(kv)
	return s, kv
}

func TestSaveAndList_RoundTripSanitized(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_, err := s.Save(ctx, "owner-a", models.JournalEntry{
		Date:            "2025-06-01T09:00:00Z",
		Content:         "<script>alert(1)</script><b>hello</b>",
		WordCount:       2,
		DurationMinutes: 15,
	})
	require.NoError(t, err)

	entries, err := s.ListByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, "owner-a", got.OwnerID)
	assert.Equal(t, "2025-06-01T09:00:00Z", got.Date)
	assert.NotContains(t, got.Content, "<script")
	assert.Contains(t, got.Content, "hello")
	assert.Equal(t, 2, got.WordCount)
	assert.Equal(t, 15, got.DurationMinutes)
}

func TestSave_OverwriteKeepsCreatedAt(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	first, err := s.Save(ctx, "owner-a", models.JournalEntry{Date: "d1", Content: "v1"})
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(time.Hour) }
	second, err := s.Save(ctx, "owner-a", models.JournalEntry{Date: "d1", Content: "v2"})
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	entries, err := s.ListByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, entries, 1, "save is a full overwrite, not an append")
	assert.Contains(t, entries[0].Content, "v2")
}

func TestListByOwner_Isolation(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_, err := s.Save(ctx, "owner-a", models.JournalEntry{Date: "d1", Content: "a's entry"})
	require.NoError(t, err)

	entries, err := s.ListByOwner(ctx, "owner-b")
	require.NoError(t, err)
	assert.Empty(t, entries, "owner B must never see owner A's entries")

	// A prefix-shaped owner ID must not widen the scan
	entries, err = s.ListByOwner(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListByOwner_NewestFirst(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	for _, d := range []string{"2025-06-01", "2025-06-03", "2025-06-02"} {
		_, err := s.Save(ctx, "owner-a", models.JournalEntry{Date: d, Content: "x"})
		require.NoError(t, err)
	}

	entries, err := s.ListByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2025-06-03", entries[0].Date)
	assert.Equal(t, "2025-06-02", entries[1].Date)
	assert.Equal(t, "2025-06-01", entries[2].Date)
}

func TestRename(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_, err := s.Rename(ctx, "owner-a", "missing", "new title")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Save(ctx, "owner-a", models.JournalEntry{Date: "d1", Content: "body", Title: "old"})
	require.NoError(t, err)

	entry, err := s.Rename(ctx, "owner-a", "d1", "new title")
	require.NoError(t, err)
	assert.Equal(t, "new title", entry.Title)
	assert.Contains(t, entry.Content, "body")

	entries, err := s.ListByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new title", entries[0].Title)
}

func TestDelete_Idempotent(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	// Deleting a key that never existed is not an error
	assert.NoError(t, s.Delete(ctx, "owner-a", "never-existed"))

	_, err := s.Save(ctx, "owner-a", models.JournalEntry{Date: "d1", Content: "x"})
	require.NoError(t, err)

	assert.NoError(t, s.Delete(ctx, "owner-a", "d1"))
	assert.NoError(t, s.Delete(ctx, "owner-a", "d1"), "second delete still succeeds")

	entries, err := s.ListByOwner(ctx, "owner-a")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryKey(t *testing.T) {
	assert.Equal(t, "journal:u1:2025-06-01", entryKey("u1", "2025-06-01"))
}
