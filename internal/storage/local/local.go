// Package local implements note storage as a single JSON document on disk.
//
// The whole collection lives in one file (notes.json by default). Loads and
// saves are whole-document: last write wins, one reader/writer. Writes go
// through a temp file and rename so a crash cannot leave a half-written
// collection behind.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/quillnotes/quill/internal/debug"
	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/types"
)

// DefaultFileName is the collection document name inside the quill directory.
const DefaultFileName = "notes.json"

// document is the on-disk shape: the full note collection plus config kv.
type document struct {
	Notes  []*types.Note     `json:"notes"`
	Config map[string]string `json:"config,omitempty"`
}

// LocalStore is a file-backed storage.Store.
type LocalStore struct {
	mu     sync.Mutex
	path   string
	notes  map[string]*types.Note
	config map[string]string
	now    func() time.Time
}

var _ storage.Store = (*LocalStore)(nil)

// New opens (or creates) the collection document at path.
//
// A missing file yields an empty collection. A file that fails to parse is
// preserved as <path>.corrupt and the store starts empty rather than failing
// open; this is the only recovery behavior the format supports.
func New(path string) (*LocalStore, error) {
	s := &LocalStore{
		path: path,
		now:  time.Now,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the collection document into memory, replacing the current
// maps. Caller holds s.mu (New needs no lock; the store has not escaped).
func (s *LocalStore) load() error {
	notes := make(map[string]*types.Note)
	config := make(map[string]string)

	data, err := os.ReadFile(s.path) // #nosec G304 - controlled path from config
	if os.IsNotExist(err) {
		s.notes, s.config = notes, config
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		// Preserve the unreadable blob before starting from empty.
		corruptPath := s.path + ".corrupt"
		if werr := os.WriteFile(corruptPath, data, 0600); werr != nil {
			return fmt.Errorf("parsing collection (%v) and preserving corrupt copy: %w", err, werr)
		}
		debug.Logf("quill: corrupt collection preserved at %s, starting empty: %v\n", corruptPath, err)
		s.notes, s.config = notes, config
		return nil
	}

	for _, n := range doc.Notes {
		if n == nil || n.ID == "" {
			continue
		}
		notes[n.ID] = n
	}
	if doc.Config != nil {
		config = doc.Config
	}
	s.notes, s.config = notes, config
	return nil
}

// Reload re-reads the collection document from disk, replacing the in-memory
// collection. For watch-style consumers reacting to another process writing
// the file; the store itself never needs it.
func (s *LocalStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Path returns the collection document path.
func (s *LocalStore) Path() string {
	return s.path
}

// save writes the whole collection atomically. Caller holds s.mu.
func (s *LocalStore) save() error {
	notes := make([]*types.Note, 0, len(s.notes))
	for _, n := range s.notes {
		notes = append(notes, n)
	}
	// Stable file order keeps diffs readable when the file is under version control.
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })

	doc := document{Notes: notes}
	if len(s.config) > 0 {
		doc.Config = s.config
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling collection: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	write := func() error {
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, data, 0600); err != nil {
			return err
		}
		return os.Rename(tmp, s.path)
	}

	// Editors and sync clients briefly hold the file on some platforms;
	// retry transient failures with capped exponential backoff.
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 20 * time.Millisecond
	bo.MaxElapsedTime = 2 * time.Second
	if err := backoff.Retry(write, bo); err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}
	return nil
}

// CreateNote validates and persists a new note.
func (s *LocalStore) CreateNote(ctx context.Context, note *types.Note) error {
	if note.ID == "" {
		return storage.ErrInvalidID
	}
	note.Tags = types.NormalizeTags(note.Tags)
	if err := note.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[note.ID]; exists {
		return fmt.Errorf("note %s: %w", note.ID, storage.ErrAlreadyExists)
	}
	s.notes[note.ID] = note.Clone()
	return s.save()
}

// GetNote returns the note with the given ID.
func (s *LocalStore) GetNote(ctx context.Context, id string) (*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	return n.Clone(), nil
}

// ListNotes returns all notes passing the filter, in default sort order.
func (s *LocalStore) ListNotes(ctx context.Context, filter types.NoteFilter) ([]*types.Note, error) {
	return s.SearchNotes(ctx, "", filter)
}

// SearchNotes returns notes matching the free-text query and the filter.
func (s *LocalStore) SearchNotes(ctx context.Context, query string, filter types.NoteFilter) ([]*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]*types.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if !n.MatchesSearch(query) || !filter.Matches(n) {
			continue
		}
		results = append(results, n.Clone())
	}
	types.SortNotes(results, nil)
	return results, nil
}

// UpdateNote applies a partial update to the note with the given ID.
func (s *LocalStore) UpdateNote(ctx context.Context, id string, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}

	updated := n.Clone()
	if err := storage.ApplyNoteUpdates(updated, updates, s.now()); err != nil {
		return err
	}
	s.notes[id] = updated
	return s.save()
}

// DeleteNote removes the note with the given ID.
func (s *LocalStore) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	delete(s.notes, id)
	return s.save()
}

// AddTag adds a tag to a note. Adding an existing tag is a no-op.
func (s *LocalStore) AddTag(ctx context.Context, id, tag string) error {
	if err := types.ValidateTag(tag); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	norm := types.NormalizeTag(tag)
	if n.HasTag(norm) {
		return nil
	}
	updated := n.Clone()
	updated.Tags = types.NormalizeTags(append(updated.Tags, norm))
	updated.UpdatedAt = s.now()
	s.notes[id] = updated
	return s.save()
}

// RemoveTag removes a tag from a note. Removing an absent tag is a no-op.
func (s *LocalStore) RemoveTag(ctx context.Context, id, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	norm := types.NormalizeTag(tag)
	if !n.HasTag(norm) {
		return nil
	}
	updated := n.Clone()
	tags := updated.Tags[:0]
	for _, t := range updated.Tags {
		if t != norm {
			tags = append(tags, t)
		}
	}
	updated.Tags = tags
	if len(updated.Tags) == 0 {
		updated.Tags = nil
	}
	updated.UpdatedAt = s.now()
	s.notes[id] = updated
	return s.save()
}

// ListTags returns every tag in the collection with its note count.
func (s *LocalStore) ListTags(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make(map[string]int)
	for _, n := range s.notes {
		for _, t := range n.Tags {
			tags[t]++
		}
	}
	return tags, nil
}

// SetPinned pins or unpins a note.
func (s *LocalStore) SetPinned(ctx context.Context, id string, pinned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	if n.Pinned == pinned {
		return nil
	}
	updated := n.Clone()
	updated.Pinned = pinned
	updated.UpdatedAt = s.now()
	s.notes[id] = updated
	return s.save()
}

// SetConfig stores a config key in the collection document.
func (s *LocalStore) SetConfig(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config[key] = value
	return s.save()
}

// GetConfig returns a config value, or "" when unset.
func (s *LocalStore) GetConfig(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.config[key], nil
}

// Close is a no-op for the file provider; every write is already flushed.
func (s *LocalStore) Close() error {
	return nil
}

// SetClock overrides the timestamp source. Test hook.
func (s *LocalStore) SetClock(now func() time.Time) {
	s.now = now
}
