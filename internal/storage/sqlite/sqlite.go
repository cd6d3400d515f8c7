// Package sqlite implements the storage interface using SQLite.
//
// The local JSON provider is the default; this backend exists for
// collections large enough that rewriting one blob per mutation hurts.
// Built on the pure-Go modernc driver so the binary stays cgo-free.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL CHECK(length(title) <= 500),
    body TEXT NOT NULL DEFAULT '',
    pinned INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS note_tags (
    note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    tag TEXT NOT NULL,
    PRIMARY KEY (note_id, tag)
);

CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_note_tags_tag ON note_tags(tag);
CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes(updated_at);
`

// SQLiteStore implements storage.Store on a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

var _ storage.Store = (*SQLiteStore)(nil)

// New opens (or creates) a SQLite note store at path. ":memory:" is accepted
// for an ephemeral database.
func New(ctx context.Context, path string) (*SQLiteStore, error) {
	connStr := path
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
		connStr = "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite in-memory databases are per-connection; keep the pool at one so
	// every query sees the same data.
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) CreateNote(ctx context.Context, note *types.Note) error {
	if note.ID == "" {
		return storage.ErrInvalidID
	}
	note.Tags = types.NormalizeTags(note.Tags)
	if err := note.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM notes WHERE id = ?`, note.ID).Scan(&exists); err != nil {
		return fmt.Errorf("checking note %s: %w", note.ID, err)
	}
	if exists > 0 {
		return fmt.Errorf("note %s: %w", note.ID, storage.ErrAlreadyExists)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO notes (id, title, body, pinned, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Body, boolToInt(note.Pinned),
		note.CreatedAt.UTC().Format(time.RFC3339Nano), note.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting note %s: %w", note.ID, err)
	}
	if err := replaceTags(ctx, tx, note.ID, note.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetNote(ctx context.Context, id string) (*types.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, body, pinned, created_at, updated_at FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading note %s: %w", id, err)
	}
	if n.Tags, err = s.tagsFor(ctx, id); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *SQLiteStore) ListNotes(ctx context.Context, filter types.NoteFilter) ([]*types.Note, error) {
	return s.SearchNotes(ctx, "", filter)
}

// SearchNotes loads the collection and filters in memory. The collection is
// bounded by what one person types, so a LIKE-query fast path is not worth
// diverging from the shared matching rules in types.
func (s *SQLiteStore) SearchNotes(ctx context.Context, query string, filter types.NoteFilter) ([]*types.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, body, pinned, created_at, updated_at FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var all []*types.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		all = append(all, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	for _, n := range all {
		if n.Tags, err = s.tagsFor(ctx, n.ID); err != nil {
			return nil, err
		}
	}

	results := make([]*types.Note, 0, len(all))
	for _, n := range all {
		if !n.MatchesSearch(query) || !filter.Matches(n) {
			continue
		}
		results = append(results, n)
	}
	types.SortNotes(results, nil)
	return results, nil
}

func (s *SQLiteStore) UpdateNote(ctx context.Context, id string, updates map[string]interface{}) error {
	n, err := s.GetNote(ctx, id)
	if err != nil {
		return err
	}
	if err := storage.ApplyNoteUpdates(n, updates, s.now()); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`UPDATE notes SET title = ?, body = ?, pinned = ?, updated_at = ? WHERE id = ?`,
		n.Title, n.Body, boolToInt(n.Pinned), n.UpdatedAt.UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("updating note %s: %w", id, err)
	}
	if err := replaceTags(ctx, tx, id, n.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	// Tags cascade via the foreign key, but the modernc driver only honors
	// that when foreign_keys is on; clean up explicitly to be safe.
	_, _ = s.db.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, id)
	return nil
}

func (s *SQLiteStore) AddTag(ctx context.Context, id, tag string) error {
	if err := types.ValidateTag(tag); err != nil {
		return err
	}
	if err := s.requireNote(ctx, id); err != nil {
		return err
	}
	norm := types.NormalizeTag(tag)
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO note_tags (note_id, tag) VALUES (?, ?)`, id, norm)
	if err != nil {
		return fmt.Errorf("adding tag %s to %s: %w", norm, id, err)
	}
	// Re-adding a present tag is a no-op across all backends: updated_at
	// must not move or --since filters and import's newer-wins check drift.
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("adding tag %s to %s: %w", norm, id, err)
	} else if n == 0 {
		return nil
	}
	return s.touch(ctx, id)
}

func (s *SQLiteStore) RemoveTag(ctx context.Context, id, tag string) error {
	if err := s.requireNote(ctx, id); err != nil {
		return err
	}
	norm := types.NormalizeTag(tag)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM note_tags WHERE note_id = ? AND tag = ?`, id, norm)
	if err != nil {
		return fmt.Errorf("removing tag %s from %s: %w", norm, id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("removing tag %s from %s: %w", norm, id, err)
	} else if n == 0 {
		return nil
	}
	return s.touch(ctx, id)
}

func (s *SQLiteStore) ListTags(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag, COUNT(*) FROM note_tags GROUP BY tag`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := make(map[string]int)
	for rows.Next() {
		var tag string
		var count int
		if err := rows.Scan(&tag, &count); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags[tag] = count
	}
	return tags, rows.Err()
}

func (s *SQLiteStore) SetPinned(ctx context.Context, id string, pinned bool) error {
	if err := s.requireNote(ctx, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE notes SET pinned = ?, updated_at = ? WHERE id = ?`,
		boolToInt(pinned), s.now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("pinning note %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO config (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("setting config %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading config %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SetClock overrides the timestamp source. Test hook.
func (s *SQLiteStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *SQLiteStore) requireNote(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM notes WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking note %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) touch(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE notes SET updated_at = ? WHERE id = ?`,
		s.now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("touching note %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) tagsFor(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag FROM note_tags WHERE note_id = ? ORDER BY tag`, id)
	if err != nil {
		return nil, fmt.Errorf("querying tags for %s: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (*types.Note, error) {
	var n types.Note
	var pinned int
	var createdAt, updatedAt string
	if err := row.Scan(&n.ID, &n.Title, &n.Body, &pinned, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	n.Pinned = pinned != 0
	var err error
	if n.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	if n.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at %q: %w", updatedAt, err)
	}
	return &n, nil
}

func replaceTags(ctx context.Context, tx *sql.Tx, id string, tags []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, id); err != nil {
		return fmt.Errorf("clearing tags for %s: %w", id, err)
	}
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO note_tags (note_id, tag) VALUES (?, ?)`, id, tag); err != nil {
			return fmt.Errorf("inserting tag %s for %s: %w", tag, id, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
