package journal

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/stillwrite/stillwrite-backend/internal/models"
	"github.com/stillwrite/stillwrite-backend/internal/sanitize"
)

// ErrNotFound means no entry exists at the addressed (owner, date) key.
var ErrNotFound = errors.New("journal entry not found")

// KeyPrefix namespaces all journal keys in the shared key-value store.
const KeyPrefix = "journal:"

// Store maps (ownerID, date) pairs onto key-value records. Owner isolation is
// enforced here, not by the store: every key is derived from the
// authenticated owner ID, never from client input.
type Store struct {
	kv  KV
	now func() time.Time
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// entryKey builds "journal:{ownerID}:{date}". The "journal:{ownerID}:" prefix
// scopes exactly the entries owned by that user.
func entryKey(ownerID, date string) string {
	return KeyPrefix + ownerID + ":" + date
}

// Save writes an entry, overwriting any previous one at the same date.
// Content is sanitized before it is persisted.
func (s *Store) Save(ctx context.Context, ownerID string, entry models.JournalEntry) (models.JournalEntry, error) {
	now := s.now()
	entry.OwnerID = ownerID
	entry.Content = sanitize.Clean(entry.Content)
	entry.UpdatedAt = now

	// Preserve CreatedAt across overwrites of an existing session
	if existing, err := s.get(ctx, ownerID, entry.Date); err == nil {
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.CreatedAt = now
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if err := s.kv.Set(ctx, entryKey(ownerID, entry.Date), data); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// Rename replaces the title of an existing entry. Content is re-sanitized in
// case the stored record predates a filter change.
func (s *Store) Rename(ctx context.Context, ownerID, date, newTitle string) (models.JournalEntry, error) {
	entry, err := s.get(ctx, ownerID, date)
	if err != nil {
		return models.JournalEntry{}, err
	}

	entry.Title = newTitle
	entry.Content = sanitize.Clean(entry.Content)
	entry.UpdatedAt = s.now()

	data, err := json.Marshal(entry)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if err := s.kv.Set(ctx, entryKey(ownerID, date), data); err != nil {
		return models.JournalEntry{}, err
	}

	entry.Content = sanitize.Display(entry.Content)
	return entry, nil
}

// ListByOwner returns all of one owner's entries, newest date first. Content
// passes through the display sanitizer before it leaves the store.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.JournalEntry, error) {
	records, err := s.kv.ScanPrefix(ctx, KeyPrefix+ownerID+":")
	if err != nil {
		return nil, err
	}

	entries := make([]models.JournalEntry, 0, len(records))
	for _, data := range records {
		var entry models.JournalEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue // skip unreadable records rather than failing the listing
		}
		entry.Content = sanitize.Display(entry.Content)
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}

// Delete removes an entry. Deleting a missing entry is not an error.
func (s *Store) Delete(ctx context.Context, ownerID, date string) error {
	return s.kv.Delete(ctx, entryKey(ownerID, date))
}

func (s *Store) get(ctx context.Context, ownerID, date string) (models.JournalEntry, error) {
	data, err := s.kv.Get(ctx, entryKey(ownerID, date))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return models.JournalEntry{}, ErrNotFound
		}
		return models.JournalEntry{}, err
	}
	var entry models.JournalEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}
