// Package memory implements an in-process note store.
//
// Used by tests and by ephemeral mode (QUILL_BACKEND=memory), and it takes
// the provider slot a remote backend would occupy if one existed. Nothing is
// persisted; Close discards the collection.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/types"
)

// MemoryStore is a map-backed storage.Store.
type MemoryStore struct {
	mu     sync.Mutex
	notes  map[string]*types.Note
	config map[string]string
	now    func() time.Time
}

var _ storage.Store = (*MemoryStore)(nil)

// New returns an empty in-memory store.
func New() *MemoryStore {
	return &MemoryStore{
		notes:  make(map[string]*types.Note),
		config: make(map[string]string),
		now:    time.Now,
	}
}

func (m *MemoryStore) CreateNote(ctx context.Context, note *types.Note) error {
	if note.ID == "" {
		return storage.ErrInvalidID
	}
	note.Tags = types.NormalizeTags(note.Tags)
	if err := note.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.notes[note.ID]; exists {
		return fmt.Errorf("note %s: %w", note.ID, storage.ErrAlreadyExists)
	}
	m.notes[note.ID] = note.Clone()
	return nil
}

func (m *MemoryStore) GetNote(ctx context.Context, id string) (*types.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok {
		return nil, fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	return n.Clone(), nil
}

func (m *MemoryStore) ListNotes(ctx context.Context, filter types.NoteFilter) ([]*types.Note, error) {
	return m.SearchNotes(ctx, "", filter)
}

func (m *MemoryStore) SearchNotes(ctx context.Context, query string, filter types.NoteFilter) ([]*types.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]*types.Note, 0, len(m.notes))
	for _, n := range m.notes {
		if !n.MatchesSearch(query) || !filter.Matches(n) {
			continue
		}
		results = append(results, n.Clone())
	}
	types.SortNotes(results, nil)
	return results, nil
}

func (m *MemoryStore) UpdateNote(ctx context.Context, id string, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	updated := n.Clone()
	if err := storage.ApplyNoteUpdates(updated, updates, m.now()); err != nil {
		return err
	}
	m.notes[id] = updated
	return nil
}

func (m *MemoryStore) DeleteNote(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.notes[id]; !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	delete(m.notes, id)
	return nil
}

func (m *MemoryStore) AddTag(ctx context.Context, id, tag string) error {
	if err := types.ValidateTag(tag); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	norm := types.NormalizeTag(tag)
	if n.HasTag(norm) {
		return nil
	}
	updated := n.Clone()
	updated.Tags = types.NormalizeTags(append(updated.Tags, norm))
	updated.UpdatedAt = m.now()
	m.notes[id] = updated
	return nil
}

func (m *MemoryStore) RemoveTag(ctx context.Context, id, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	norm := types.NormalizeTag(tag)
	if !n.HasTag(norm) {
		return nil
	}
	updated := n.Clone()
	tags := make([]string, 0, len(updated.Tags))
	for _, t := range updated.Tags {
		if t != norm {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		tags = nil
	}
	updated.Tags = tags
	updated.UpdatedAt = m.now()
	m.notes[id] = updated
	return nil
}

func (m *MemoryStore) ListTags(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tags := make(map[string]int)
	for _, n := range m.notes {
		for _, t := range n.Tags {
			tags[t]++
		}
	}
	return tags, nil
}

func (m *MemoryStore) SetPinned(ctx context.Context, id string, pinned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	if n.Pinned == pinned {
		return nil
	}
	updated := n.Clone()
	updated.Pinned = pinned
	updated.UpdatedAt = m.now()
	m.notes[id] = updated
	return nil
}

func (m *MemoryStore) SetConfig(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config[key] = value
	return nil
}

func (m *MemoryStore) GetConfig(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.config[key], nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// SetClock overrides the timestamp source. Test hook.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.now = now
}
