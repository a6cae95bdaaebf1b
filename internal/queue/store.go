package queue

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tuanmtrinh/streamrip-gui/internal/model"
)

var (
	// ErrEntryNotFound means the id does not exist in the store
	ErrEntryNotFound = errors.New("queue entry not found")

	// ErrInvalidTransition means a status update tried to move an entry
	// backward or out of a terminal state
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Store is the in-memory ordered collection of queue entries. It is safe for
// concurrent use; the UI appends and clears while the active job updates
// statuses and labels by id.
type Store struct {
	mu       sync.RWMutex
	entries  []*model.QueueEntry
	byID     map[int64]*model.QueueEntry
	nextID   int64
	onChange func(model.QueueEntry) // receives a copy of the changed entry
}

// NewStore creates an empty queue store
func NewStore() *Store {
	return &Store{byID: make(map[int64]*model.QueueEntry)}
}

// SetChangeCallback sets the callback invoked with a copy of every entry that
// is added or updated. Must be set before the store is shared across
// goroutines.
func (s *Store) SetChangeCallback(callback func(model.QueueEntry)) {
	s.onChange = callback
}

// Append creates one Pending entry per non-blank URL, trimming surrounding
// whitespace. Blank and whitespace-only lines are skipped. The created entries
// are returned in input order.
func (s *Store) Append(urls []string) []model.QueueEntry {
	s.mu.Lock()
	added := make([]model.QueueEntry, 0, len(urls))
	for _, raw := range urls {
		url := strings.TrimSpace(raw)
		if url == "" {
			continue
		}
		s.nextID++
		entry := &model.QueueEntry{
			ID:           s.nextID,
			SourceURL:    url,
			Platform:     model.InferPlatform(url),
			DisplayLabel: url,
			Status:       model.StatusPending,
			AddedAt:      time.Now(),
		}
		s.entries = append(s.entries, entry)
		s.byID[entry.ID] = entry
		added = append(added, *entry)
	}
	s.mu.Unlock()

	for _, entry := range added {
		s.notifyChange(entry)
	}
	return added
}

// Clear removes all entries. Ids are not reused afterwards. The caller is
// responsible for ensuring no job is updating entries concurrently.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.byID = make(map[int64]*model.QueueEntry)
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns copies of all entries in insertion order
func (s *Store) Entries() []model.QueueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.QueueEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, *entry)
	}
	return out
}

// Entry returns a copy of the entry with the given id
func (s *Store) Entry(id int64) (model.QueueEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, exists := s.byID[id]
	if !exists {
		return model.QueueEntry{}, false
	}
	return *entry, true
}

// SnapshotURLs returns the ordered source URLs of all entries. A job takes
// this snapshot at start and never observes later queue edits.
func (s *Store) SnapshotURLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	urls := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		urls = append(urls, entry.SourceURL)
	}
	return urls
}

// SnapshotIDs returns the ordered entry ids, positionally matching SnapshotURLs
func (s *Store) SnapshotIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.entries))
	for _, entry := range s.entries {
		ids = append(ids, entry.ID)
	}
	return ids
}

// SetStatus advances an entry's status. Backward transitions and updates to
// terminal entries fail with ErrInvalidTransition; setting the current status
// again is a silent no-op.
func (s *Store) SetStatus(id int64, status model.EntryStatus) error {
	s.mu.Lock()
	entry, exists := s.byID[id]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: id %d", ErrEntryNotFound, id)
	}
	if entry.Status == status {
		s.mu.Unlock()
		return nil
	}
	if !entry.Status.CanTransitionTo(status) {
		err := fmt.Errorf("%w: entry %d: %s -> %s", ErrInvalidTransition, id, entry.Status, status)
		s.mu.Unlock()
		return err
	}
	entry.Status = status
	changed := *entry
	s.mu.Unlock()

	s.notifyChange(changed)
	return nil
}

// SetLabel replaces an entry's display label
func (s *Store) SetLabel(id int64, label string) error {
	s.mu.Lock()
	entry, exists := s.byID[id]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: id %d", ErrEntryNotFound, id)
	}
	entry.DisplayLabel = label
	changed := *entry
	s.mu.Unlock()

	s.notifyChange(changed)
	return nil
}

// notifyChange calls the change callback if set
func (s *Store) notifyChange(entry model.QueueEntry) {
	if s.onChange != nil {
		s.onChange(entry)
	}
}
